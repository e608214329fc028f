// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"time"
)

// MajorType is the coarse category of a media stream.
type MajorType string

const (
	MajorAudio   MajorType = "audio"
	MajorVideo   MajorType = "video"
	MajorImage   MajorType = "image"
	MajorUnknown MajorType = "unknown"
)

// Subtype is the codec or sample layout tag of a stream.
type Subtype string

const (
	SubtypePCM     Subtype = "pcm"
	SubtypeFloat   Subtype = "float"
	SubtypeALaw    Subtype = "alaw"
	SubtypeMuLaw   Subtype = "mulaw"
	SubtypeADPCM   Subtype = "adpcm"
	SubtypeMP3     Subtype = "mp3"
	SubtypeVorbis  Subtype = "vorbis"
	SubtypeFLAC    Subtype = "flac"
	SubtypeOpus    Subtype = "opus"
	SubtypeAAC     Subtype = "aac"
	SubtypeSpeex   Subtype = "speex"
	SubtypeUnknown Subtype = "unknown"
)

// WAVE format tags as written in a fmt chunk.
const (
	TagPCM        uint16 = 0x0001
	TagADPCM      uint16 = 0x0002
	TagFloat      uint16 = 0x0003
	TagALaw       uint16 = 0x0006
	TagMuLaw      uint16 = 0x0007
	TagIMAADPCM   uint16 = 0x0011
	TagMP3        uint16 = 0x0055
	TagAAC        uint16 = 0x00FF
	TagFLAC       uint16 = 0xF1AC
	TagExtensible uint16 = 0xFFFE
)

// Uncompressed reports whether samples of this subtype can be handed to a
// playback device as they are.
func (s Subtype) Uncompressed() bool {
	return s == SubtypePCM || s == SubtypeFloat
}

// Tag returns the WAVE format tag for s, or 0 when it has none.
func (s Subtype) Tag() uint16 {
	switch s {
	case SubtypePCM:
		return TagPCM
	case SubtypeFloat:
		return TagFloat
	case SubtypeALaw:
		return TagALaw
	case SubtypeMuLaw:
		return TagMuLaw
	case SubtypeADPCM:
		return TagADPCM
	case SubtypeMP3:
		return TagMP3
	case SubtypeAAC:
		return TagAAC
	case SubtypeFLAC:
		return TagFLAC
	}
	return 0
}

// SubtypeFromTag maps a WAVE format tag to a Subtype.
func SubtypeFromTag(tag uint16) Subtype {
	switch tag {
	case TagPCM:
		return SubtypePCM
	case TagFloat:
		return SubtypeFloat
	case TagALaw:
		return SubtypeALaw
	case TagMuLaw:
		return SubtypeMuLaw
	case TagADPCM, TagIMAADPCM:
		return SubtypeADPCM
	case TagMP3:
		return SubtypeMP3
	case TagAAC:
		return SubtypeAAC
	case TagFLAC:
		return SubtypeFLAC
	}
	return SubtypeUnknown
}

// MediaType describes a stream as major type plus subtype.
type MediaType struct {
	Major   MajorType
	Subtype Subtype
}

func (m MediaType) String() string {
	return string(m.Major) + "/" + string(m.Subtype)
}

// Format describes the layout of raw sample bytes.
// Values are treated as immutable once handed out; use Clone to derive one.
type Format struct {
	Subtype        Subtype
	SampleRate     int
	Channels       int
	BitsPerSample  int
	BlockAlign     int
	AvgBytesPerSec int
	// Extra holds format specific data, e.g. a codec header.
	Extra []byte
}

// NewPCMFormat returns an interleaved little-endian integer PCM layout.
func NewPCMFormat(sampleRate, channels, bits int) Format {
	return newLinearFormat(SubtypePCM, sampleRate, channels, bits)
}

// NewFloatFormat returns an interleaved little-endian float32 layout.
func NewFloatFormat(sampleRate, channels int) Format {
	return newLinearFormat(SubtypeFloat, sampleRate, channels, 32)
}

func newLinearFormat(sub Subtype, sampleRate, channels, bits int) Format {
	blockAlign := channels * ((bits + 7) / 8)
	return Format{
		Subtype:        sub,
		SampleRate:     sampleRate,
		Channels:       channels,
		BitsPerSample:  bits,
		BlockAlign:     blockAlign,
		AvgBytesPerSec: sampleRate * blockAlign,
	}
}

// Tag returns the WAVE format tag of the layout.
func (f Format) Tag() uint16 { return f.Subtype.Tag() }

// Clone returns a copy of f that shares no memory with it.
func (f Format) Clone() Format {
	c := f
	if f.Extra != nil {
		c.Extra = append([]byte(nil), f.Extra...)
	}
	return c
}

// Validate checks that f describes a consistent PCM or float layout.
func (f Format) Validate() error {
	if !f.Subtype.Uncompressed() {
		return fmt.Errorf("%w: subtype %s is not PCM", ErrUnsupportedFormat, f.Subtype)
	}
	if f.SampleRate <= 0 || f.Channels <= 0 {
		return fmt.Errorf("%w: %d Hz, %d channels", ErrUnsupportedFormat, f.SampleRate, f.Channels)
	}

	if f.Subtype == SubtypeFloat {
		if f.BitsPerSample != 32 && f.BitsPerSample != 64 {
			return fmt.Errorf("%w: %d-bit float", ErrUnsupportedFormat, f.BitsPerSample)
		}
	} else if f.BitsPerSample <= 0 || f.BitsPerSample > 32 {
		return fmt.Errorf("%w: %d-bit PCM", ErrUnsupportedFormat, f.BitsPerSample)
	}

	if f.BlockAlign != f.Channels*((f.BitsPerSample+7)/8) {
		return fmt.Errorf("%w: block align %d", ErrUnsupportedFormat, f.BlockAlign)
	}

	return nil
}

// Duration returns the play time of n bytes in this layout.
func (f Format) Duration(n int) time.Duration {
	if f.BlockAlign <= 0 || f.SampleRate <= 0 {
		return 0
	}
	frames := int64(n / f.BlockAlign)
	return time.Duration(frames) * time.Second / time.Duration(f.SampleRate)
}

func (f Format) String() string {
	return fmt.Sprintf("%s %d Hz %d ch %d bit", f.Subtype, f.SampleRate, f.Channels, f.BitsPerSample)
}

// Decoded is a fully decoded resource: its layout plus the raw sample bytes
// in playback order.
type Decoded struct {
	Format Format
	Data   []byte
}

// Frames returns the number of sample frames in Data.
func (d *Decoded) Frames() int {
	if d.Format.BlockAlign <= 0 {
		return 0
	}
	return len(d.Data) / d.Format.BlockAlign
}

// Duration returns the play time of Data.
func (d *Decoded) Duration() time.Duration {
	return d.Format.Duration(len(d.Data))
}
