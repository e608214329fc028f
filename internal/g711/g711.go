// SPDX-License-Identifier: EPL-2.0

// Package g711 expands ITU-T G.711 A-law and mu-law samples.
package g711

import (
	"fmt"
	"io"

	"github.com/ik5/pcmdecode/audio"
)

const muLawBias = 0x84

// MuLaw expands one mu-law byte to 16-bit PCM.
func MuLaw(sample byte) int16 {
	value := ^sample
	sign := value & 0x80
	exponent := (value >> 4) & 0x07
	mantissa := value & 0x0F

	decoded := ((int(mantissa)<<3)+muLawBias)<<exponent - muLawBias
	if sign != 0 {
		decoded = -decoded
	}

	return int16(decoded)
}

// ALaw expands one A-law byte to 16-bit PCM.
func ALaw(sample byte) int16 {
	value := sample ^ 0x55
	sign := value & 0x80
	exponent := (value >> 4) & 0x07
	mantissa := value & 0x0F

	decoded := int(mantissa) << 4
	switch exponent {
	case 0:
		decoded += 8
	case 1:
		decoded += 0x108
	default:
		decoded += 0x108
		decoded <<= exponent - 1
	}

	if sign == 0 {
		decoded = -decoded
	}

	return int16(decoded)
}

// source expands A-law or mu-law bytes to float samples.
type source struct {
	r          io.Reader
	decode     func(byte) int16
	sampleRate int
	channels   int
	buf        []byte
}

// NewSource returns an audio.Source reading one G.711 byte per sample from
// r. law is audio.SubtypeALaw or audio.SubtypeMuLaw.
func NewSource(r io.Reader, law audio.Subtype, sampleRate, channels int) (audio.Source, error) {
	s := &source{r: r, sampleRate: sampleRate, channels: channels}

	switch law {
	case audio.SubtypeMuLaw:
		s.decode = MuLaw
	case audio.SubtypeALaw:
		s.decode = ALaw
	default:
		return nil, fmt.Errorf("%w: %s is not G.711", audio.ErrUnsupportedFormat, law)
	}

	return s, nil
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(s.buf) < len(dst) {
		s.buf = make([]byte, len(dst))
	}

	n, err := io.ReadFull(s.r, s.buf[:len(dst)])
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	} else if err != nil && err != io.EOF {
		return 0, fmt.Errorf("%w", err)
	}

	for i, b := range s.buf[:n] {
		dst[i] = float32(s.decode(b)) / 32768.0
	}

	return n, err
}
