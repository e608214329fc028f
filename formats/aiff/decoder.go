// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/pcmdecode/audio"
	"github.com/ik5/pcmdecode/internal/seekable"
	"github.com/ik5/pcmdecode/utils"
)

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// stream re-packs big-endian AIFF samples as little-endian PCM.
type stream struct {
	dec    aiffReader
	format audio.Format
	intBuf *goaudio.IntBuffer
	out    []byte
	eof    bool
}

func (s *stream) NativeType() audio.MediaType {
	return audio.MediaType{Major: audio.MajorAudio, Subtype: audio.SubtypePCM}
}

func (s *stream) Format() audio.Format { return s.format.Clone() }
func (s *stream) Close() error         { return nil }

func (s *stream) SetOutput(sub audio.Subtype) error {
	if sub != audio.SubtypePCM {
		return fmt.Errorf("%w: no pcm to %s transform", audio.ErrUnsupportedFormat, sub)
	}
	return nil
}

func (s *stream) ReadChunk() ([]byte, error) {
	if s.eof {
		return nil, io.EOF
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w", err)
	}

	// If we got fewer samples than requested, we're at EOF
	if err == io.EOF || n < len(s.intBuf.Data) {
		s.eof = true
	}

	n -= n % s.format.Channels
	if n == 0 {
		if s.eof {
			return nil, io.EOF
		}
		return s.out[:0], nil
	}

	width := s.format.BlockAlign / s.format.Channels
	for i, v := range s.intBuf.Data[:n] {
		utils.PutSample(s.out[i*width:], int32(v), s.format.BitsPerSample)
	}

	return s.out[:n*width], nil
}

func newStream(dec aiffReader, format audio.Format, chunkFrames int) *stream {
	if chunkFrames <= 0 {
		chunkFrames = audio.DefaultChunkFrames
	}

	samples := chunkFrames * format.Channels
	return &stream{
		dec:    dec,
		format: format,
		intBuf: &goaudio.IntBuffer{
			Data:   make([]int, samples),
			Format: dec.Format(),
		},
		out: make([]byte, chunkFrames*format.BlockAlign),
	}
}

// Decoder opens AIFF and AIFF-C containers. Integer PCM is re-packed
// little-endian, float samples are byte-swapped, G.711 goes through the
// decoder transform and any other compression is exposed undecoded.
type Decoder struct {
	// ChunkFrames is the number of frames per chunk; 0 means audio.DefaultChunkFrames.
	ChunkFrames int
}

func (d Decoder) Decode(r io.Reader) (audio.Stream, error) {
	// go-audio requires io.ReadSeeker
	rs, err := seekable.Reader(r)
	if err != nil {
		return nil, fmt.Errorf("reading aiff data: %w", err)
	}

	dec := aiff.NewDecoder(rs)
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotAiffFile, err)
	}
	if dec.NumChans < 1 || dec.SampleRate < 1 {
		return nil, ErrUnsupportedAiffLayout
	}

	enc := string(dec.Encoding[:])
	if !linearPCM(enc) {
		return compressedStream(dec, enc, d.ChunkFrames)
	}

	switch dec.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, ErrUnsupportedBitDepth
	}

	native := audio.NewPCMFormat(dec.SampleRate, int(dec.NumChans), int(dec.BitDepth))
	return newStream(dec, native, d.ChunkFrames), nil
}
