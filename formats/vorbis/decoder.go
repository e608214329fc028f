// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/ik5/pcmdecode/audio"
	"github.com/jfreymuth/oggvorbis"
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }

// ReadSamples reads whole frames only; oggvorbis.Reader.Read counts
// interleaved values.
func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	want := len(dst) - len(dst)%s.channels
	if want == 0 {
		return 0, audio.ErrInvalidDstSize
	}

	n, err := s.dec.Read(dst[:want])
	if n == 0 {
		if err != nil {
			return 0, err
		}
		return 0, nil
	}

	return n, err
}

// Decoder opens Ogg Vorbis streams. Output is 16-bit PCM or float once
// selected with SetOutput.
type Decoder struct {
	// ChunkFrames is the number of frames per chunk; 0 means audio.DefaultChunkFrames.
	ChunkFrames int
}

func (d Decoder) Decode(r io.Reader) (audio.Stream, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return newStream(dec, d.ChunkFrames), nil
}

func newStream(dec oggReader, chunkFrames int) audio.Stream {
	src := &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
	}

	native := audio.Format{
		Subtype:    audio.SubtypeVorbis,
		SampleRate: src.sampleRate,
		Channels:   src.channels,
	}

	return audio.NewCodecStream(src, native, 16, chunkFrames)
}
