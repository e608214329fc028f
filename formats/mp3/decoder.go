// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/pcmdecode/audio"
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	channels   int
	buf        []byte
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	// go-mp3 returns 16-bit little-endian PCM bytes (stereo interleaved)
	// Each sample is 2 bytes, so we need len(dst) * 2 bytes
	bytesNeeded := len(dst) * 2
	if cap(s.buf) < bytesNeeded {
		s.buf = make([]byte, bytesNeeded)
	}
	s.buf = s.buf[:bytesNeeded]

	n, err := s.dec.Read(s.buf)
	if n == 0 {
		if err != nil {
			return 0, err
		}
		return 0, nil
	}

	// Each sample is 2 bytes (int16 little-endian)
	samples := n / 2
	for i := range samples {
		low := uint16(s.buf[2*i])
		high := uint16(s.buf[2*i+1])
		val := int16(low | (high << 8))
		dst[i] = float32(val) / 32768.0
	}

	return samples, err
}

// nativeFormat describes an MP3 stream before decoding.
func nativeFormat(sampleRate int) audio.Format {
	return audio.Format{
		Subtype:    audio.SubtypeMP3,
		SampleRate: sampleRate,
		Channels:   2,
	}
}

// Decoder opens MPEG-1/2 Layer III streams. Output is 16-bit PCM or float
// once selected with SetOutput.
type Decoder struct {
	// ChunkFrames is the number of frames per chunk; 0 means audio.DefaultChunkFrames.
	ChunkFrames int
}

func (d Decoder) Decode(r io.Reader) (audio.Stream, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return newStream(dec, d.ChunkFrames), nil
}

func newStream(dec mp3Reader, chunkFrames int) audio.Stream {
	// go-mp3 outputs stereo (2 channels) for every MP3 file
	src := &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   2,
		buf:        make([]byte, 8192),
	}

	return audio.NewCodecStream(src, nativeFormat(src.sampleRate), 16, chunkFrames)
}
