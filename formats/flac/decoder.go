// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"
	"io"

	"github.com/ik5/pcmdecode/audio"
	"github.com/ik5/pcmdecode/utils"
	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
)

// flacReader is an interface for flac.Stream to allow testing
type flacReader interface {
	ParseNext() (*frame.Frame, error)
}

type source struct {
	dec        flacReader
	sampleRate int
	channels   int
	bitDepth   int

	// interleaved samples of the current frame not yet handed out
	pending []int32
	frame   []int32
}

var _ audio.IntSource = (*source)(nil)

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }

// Close does not close the underlying reader; its owner does.
func (s *source) Close() error { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	return s.read(len(dst), func(n int, samples []int32) {
		for i, v := range samples {
			dst[n+i] = utils.IntToFloat(v, s.bitDepth)
		}
	})
}

// ReadInts hands out samples at the stream's bit depth, right aligned.
func (s *source) ReadInts(dst []int32) (int, error) {
	return s.read(len(dst), func(n int, samples []int32) {
		copy(dst[n:], samples)
	})
}

// read parses frames until want samples went through put or the stream ends.
func (s *source) read(want int, put func(n int, samples []int32)) (int, error) {
	n := 0
	for n < want {
		if len(s.pending) == 0 {
			f, err := s.dec.ParseNext()
			if err == io.EOF {
				return n, io.EOF
			}
			if err != nil {
				return n, fmt.Errorf("%w", err)
			}
			if err := s.interleave(f); err != nil {
				return n, err
			}
		}

		c := min(want-n, len(s.pending))
		put(n, s.pending[:c])
		s.pending = s.pending[c:]
		n += c
	}

	return n, nil
}

// interleave stores the decoded subframes of f as pending samples.
func (s *source) interleave(f *frame.Frame) error {
	if len(f.Subframes) != s.channels {
		return fmt.Errorf("%w: frame has %d channels, stream %d", ErrChannelMismatch, len(f.Subframes), s.channels)
	}

	blockSize := int(f.BlockSize)
	need := blockSize * s.channels
	if cap(s.frame) < need {
		s.frame = make([]int32, need)
	}
	s.frame = s.frame[:need]
	clear(s.frame)

	for ch, sub := range f.Subframes {
		for i := 0; i < blockSize && i < len(sub.Samples); i++ {
			s.frame[i*s.channels+ch] = sub.Samples[i]
		}
	}

	s.pending = s.frame
	return nil
}

// Decoder opens native FLAC streams. Output is integer PCM at the stream's
// bit depth (rounded up to whole bytes) or float once selected with SetOutput.
type Decoder struct {
	// ChunkFrames is the number of frames per chunk; 0 means audio.DefaultChunkFrames.
	ChunkFrames int
}

func (d Decoder) Decode(r io.Reader) (audio.Stream, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	info := stream.Info
	if info == nil || info.NChannels < 1 || info.SampleRate == 0 {
		return nil, ErrUnsupportedFlacLayout
	}

	return newStream(stream, int(info.SampleRate), int(info.NChannels), int(info.BitsPerSample), d.ChunkFrames)
}

func newStream(dec flacReader, sampleRate, channels, bitDepth, chunkFrames int) (audio.Stream, error) {
	if bitDepth < 4 || bitDepth > 32 {
		return nil, ErrUnsupportedBitDepth
	}

	src := &source{
		dec:        dec,
		sampleRate: sampleRate,
		channels:   channels,
		bitDepth:   bitDepth,
	}

	native := audio.Format{
		Subtype:       audio.SubtypeFLAC,
		SampleRate:    sampleRate,
		Channels:      channels,
		BitsPerSample: bitDepth,
	}

	return audio.NewCodecStream(src, native, bitDepth, chunkFrames), nil
}
