// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"
	"slices"

	"github.com/go-audio/aiff"
	"github.com/ik5/pcmdecode/audio"
	"github.com/ik5/pcmdecode/internal/g711"
)

// AIFF-C compression types, as stored in the COMM chunk.
const (
	encNotSet = "\x00\x00\x00\x00"
	encNone   = "NONE"
	encTwos   = "twos"
	encSowt   = "sowt"
	encIn24   = "in24"
	encIn32   = "in32"
	encFl32   = "fl32"
	encFL32   = "FL32"
	encFl64   = "fl64"
	encFL64   = "FL64"
	encUlaw   = "ulaw"
	encULAW   = "ULAW"
	encAlaw   = "alaw"
	encALAW   = "ALAW"
	encIma4   = "ima4"
)

// linearPCM reports whether go-audio can read samples of this encoding as
// integers.
func linearPCM(enc string) bool {
	switch enc {
	case encNotSet, encNone, encTwos, encSowt, encIn24, encIn32:
		return true
	}
	return false
}

// floatStream emits the samples of an fl32 or fl64 AIFF-C, swapped to
// little-endian.
type floatStream struct {
	r      io.Reader
	format audio.Format
	buf    []byte
	eof    bool
}

func (s *floatStream) NativeType() audio.MediaType {
	return audio.MediaType{Major: audio.MajorAudio, Subtype: audio.SubtypeFloat}
}

func (s *floatStream) Format() audio.Format { return s.format.Clone() }
func (s *floatStream) Close() error         { return nil }

func (s *floatStream) SetOutput(sub audio.Subtype) error {
	if sub != audio.SubtypeFloat {
		return fmt.Errorf("%w: no float to %s transform", audio.ErrUnsupportedFormat, sub)
	}
	return nil
}

func (s *floatStream) ReadChunk() ([]byte, error) {
	if s.eof {
		return nil, io.EOF
	}

	n, err := io.ReadFull(s.r, s.buf)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		s.eof = true
	} else if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	n -= n % s.format.BlockAlign
	if n == 0 && s.eof {
		return nil, io.EOF
	}

	width := s.format.BitsPerSample / 8
	for i := 0; i < n; i += width {
		slices.Reverse(s.buf[i : i+width])
	}

	return s.buf[:n], nil
}

func floatFormat(sampleRate, channels, bits int) audio.Format {
	f := audio.NewFloatFormat(sampleRate, channels)
	f.BitsPerSample = bits
	f.BlockAlign = channels * bits / 8
	f.AvgBytesPerSec = sampleRate * f.BlockAlign
	return f
}

// soundData positions dec at the sample data of the SSND chunk and limits it
// to the frame count of the COMM chunk.
func soundData(dec *aiff.Decoder, blockAlign int) (io.Reader, error) {
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotAiffFile, err)
	}
	if dec.PCMChunk == nil {
		return nil, fmt.Errorf("%w: no SSND chunk", ErrNotAiffFile)
	}

	// the chunk reader already skipped the offset and block size fields, but
	// go-audio counts the pad byte of an odd sized chunk
	data := dec.PCMChunk.R
	if dec.NumSampleFrames > 0 {
		data = io.LimitReader(data, int64(dec.NumSampleFrames)*int64(blockAlign))
	}
	return data, nil
}

// compressedStream builds the stream for an AIFF-C that go-audio does not
// decode itself.
func compressedStream(dec *aiff.Decoder, enc string, chunkFrames int) (audio.Stream, error) {
	rate, channels := dec.SampleRate, int(dec.NumChans)
	if chunkFrames <= 0 {
		chunkFrames = audio.DefaultChunkFrames
	}

	switch enc {
	case encFl32, encFL32, encFl64, encFL64:
		bits := 32
		if enc == encFl64 || enc == encFL64 {
			bits = 64
		}
		native := floatFormat(rate, channels, bits)

		data, err := soundData(dec, native.BlockAlign)
		if err != nil {
			return nil, err
		}
		return &floatStream{
			r:      data,
			format: native,
			buf:    make([]byte, chunkFrames*native.BlockAlign),
		}, nil

	case encUlaw, encULAW, encAlaw, encALAW:
		law := audio.SubtypeMuLaw
		if enc == encAlaw || enc == encALAW {
			law = audio.SubtypeALaw
		}
		// the COMM sample size names the expanded width, stored samples are one byte
		native := audio.Format{
			Subtype:        law,
			SampleRate:     rate,
			Channels:       channels,
			BitsPerSample:  8,
			BlockAlign:     channels,
			AvgBytesPerSec: rate * channels,
		}

		data, err := soundData(dec, native.BlockAlign)
		if err != nil {
			return nil, err
		}
		src, err := g711.NewSource(data, law, rate, channels)
		if err != nil {
			return nil, err
		}
		return audio.NewCodecStream(src, native, 16, chunkFrames), nil
	}

	sub := audio.SubtypeUnknown
	if enc == encIma4 {
		sub = audio.SubtypeADPCM
	}
	native := audio.Format{
		Subtype:       sub,
		SampleRate:    rate,
		Channels:      channels,
		BitsPerSample: int(dec.BitDepth),
		Extra:         []byte(enc),
	}
	return audio.NewOpaqueStream(native, nil), nil
}
