// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/pcmdecode/utils"
)

// DefaultChunkFrames is the number of frames a stream emits per chunk when
// the decoder was not told otherwise.
const DefaultChunkFrames = 4096

// codecStream is the decoder transform: it pulls float samples from a codec
// Source and packs them as PCM or float bytes once an output is selected.
type codecStream struct {
	src    Source
	native Format
	bits   int // integer PCM depth for SubtypePCM output
	frames int

	// ints is set when src can skip the float step for PCM output; shift
	// left-aligns its samples to bits.
	ints  IntSource
	shift int

	out     Format
	samples []float32
	intBuf  []int32
	buf     []byte
	eof     bool
}

// NewCodecStream wraps a compressed Source as a Stream. native describes
// the encoded layout, bits the integer depth emitted for SubtypePCM output.
// Nothing can be read until SetOutput succeeds.
func NewCodecStream(src Source, native Format, bits, chunkFrames int) Stream {
	if chunkFrames <= 0 {
		chunkFrames = DefaultChunkFrames
	}
	if bits <= 0 {
		bits = 16
	}
	bits = (bits + 7) / 8 * 8

	s := &codecStream{
		src:    src,
		native: native,
		bits:   bits,
		frames: chunkFrames,
		out:    native,
	}
	if is, ok := src.(IntSource); ok && native.BitsPerSample > 0 && native.BitsPerSample <= bits {
		s.ints = is
		s.shift = bits - native.BitsPerSample
	}

	return s
}

func (s *codecStream) NativeType() MediaType {
	return MediaType{Major: MajorAudio, Subtype: s.native.Subtype}
}

func (s *codecStream) Format() Format { return s.out.Clone() }

func (s *codecStream) SetOutput(sub Subtype) error {
	switch sub {
	case SubtypePCM:
		s.out = NewPCMFormat(s.src.SampleRate(), s.src.Channels(), s.bits)
	case SubtypeFloat:
		s.out = NewFloatFormat(s.src.SampleRate(), s.src.Channels())
	default:
		return fmt.Errorf("%w: no %s to %s transform", ErrUnsupportedFormat, s.native.Subtype, sub)
	}

	n := s.frames * s.src.Channels()
	s.samples = make([]float32, n)
	if s.ints != nil && sub == SubtypePCM {
		s.intBuf = make([]int32, n)
	} else {
		s.intBuf = nil
	}
	s.buf = make([]byte, n*s.out.BlockAlign/s.out.Channels)

	return nil
}

func (s *codecStream) ReadChunk() ([]byte, error) {
	if !s.out.Subtype.Uncompressed() {
		return nil, ErrNotConfigured
	}
	if s.eof {
		return nil, io.EOF
	}

	n, err := s.fill()
	if err != nil && err != io.EOF {
		return nil, err
	}
	if err == io.EOF {
		s.eof = true
	}

	// whole frames only
	n -= n % s.src.Channels()
	if n == 0 {
		if s.eof {
			return nil, io.EOF
		}
		return s.buf[:0], nil
	}

	width := s.out.BlockAlign / s.out.Channels
	switch {
	case s.intBuf != nil:
		for i, v := range s.intBuf[:n] {
			utils.PutSample(s.buf[i*width:], v<<s.shift, s.bits)
		}
	case s.out.Subtype == SubtypeFloat:
		for i, x := range s.samples[:n] {
			utils.PutFloat32(s.buf[i*width:], x)
		}
	default:
		for i, x := range s.samples[:n] {
			utils.PutSample(s.buf[i*width:], utils.FloatToInt(x, s.bits), s.bits)
		}
	}

	return s.buf[:n*width], nil
}

// fill reads from the source until the sample buffer is full or the source
// ends. Codec sources may return short reads at packet boundaries.
func (s *codecStream) fill() (int, error) {
	if s.intBuf != nil {
		return fillFrom(s.ints.ReadInts, s.intBuf)
	}
	return fillFrom(s.src.ReadSamples, s.samples)
}

func fillFrom[T int32 | float32](read func([]T) (int, error), dst []T) (int, error) {
	total := 0
	for total < len(dst) {
		n, err := read(dst[total:])
		total += n
		if err != nil {
			return total, err
		}
		if n == 0 {
			break
		}
	}
	return total, nil
}

func (s *codecStream) Close() error {
	return s.src.Close()
}
