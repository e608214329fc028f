// SPDX-License-Identifier: EPL-2.0

package sourcereader

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/ik5/pcmdecode/audio"
)

// oggPage wraps packet in a single-segment Ogg page header.
func oggPage(packet []byte) []byte {
	h := make([]byte, 27, 28+len(packet))
	copy(h, "OggS")
	h[5] = 0x02 // beginning of stream
	h[26] = 1
	h = append(h, byte(len(packet)))
	return append(h, packet...)
}

var (
	skeleton = []byte("fishead\x00\x00\x03\x00\x00")
	theora   = []byte("\x80theora\x03\x02\x01")
	vorbisID = []byte("\x01vorbis\x00\x00\x00\x00")
)

func concat(pages ...[]byte) []byte {
	var out []byte
	for _, p := range pages {
		out = append(out, p...)
	}
	return out
}

func opusHead(channels byte) []byte {
	p := make([]byte, 19)
	copy(p, "OpusHead")
	p[8] = 1
	p[9] = channels
	binary.LittleEndian.PutUint32(p[12:16], 44100)
	return p
}

func speexHeader(rate, channels uint32) []byte {
	p := make([]byte, 80)
	copy(p, "Speex   ")
	binary.LittleEndian.PutUint32(p[36:40], rate)
	binary.LittleEndian.PutUint32(p[48:52], channels)
	return p
}

func TestSniff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		header  []byte
		key     string
		major   audio.MajorType
		noAudio bool
		native  audio.Subtype
	}{
		{"wav", []byte("RIFF\x24\x00\x00\x00WAVEfmt "), keyWAV, audio.MajorAudio, false, ""},
		{"aiff", []byte("FORM\x00\x00\x00\x2eAIFFCOMM"), keyAIFF, audio.MajorAudio, false, ""},
		{"aifc", []byte("FORM\x00\x00\x00\x2eAIFCFVER"), keyAIFF, audio.MajorAudio, false, ""},
		{"flac", []byte("fLaC\x00\x00\x00\x22"), keyFLAC, audio.MajorAudio, false, ""},
		{"ogg vorbis", oggPage([]byte("\x01vorbis\x00\x00\x00\x00")), keyVorbis, audio.MajorAudio, false, ""},
		{"ogg opus", oggPage(opusHead(2)), "", audio.MajorAudio, false, audio.SubtypeOpus},
		{"ogg speex", oggPage(speexHeader(16000, 1)), "", audio.MajorAudio, false, audio.SubtypeSpeex},
		{"ogg flac", oggPage([]byte("\x7FFLAC\x01\x00\x00\x01fLaC")), "", audio.MajorAudio, false, audio.SubtypeFLAC},
		{"ogg theora", oggPage([]byte("\x80theora\x03\x02\x01")), "", audio.MajorVideo, true, ""},
		{"ogg theora with skeleton", concat(oggPage(skeleton), oggPage(theora)), "", audio.MajorVideo, true, ""},
		{"id3 tagged mp3", []byte("ID3\x04\x00\x00\x00\x00\x00\x00"), keyMP3, audio.MajorAudio, false, ""},
		{"mpeg layer 3", []byte{0xFF, 0xFB, 0x90, 0x00}, keyMP3, audio.MajorAudio, false, ""},
		{"adts aac", []byte{0xFF, 0xF1, 0x50, 0x80, 0x00}, "", audio.MajorAudio, false, audio.SubtypeAAC},
		{"mpeg layer 2", []byte{0xFF, 0xFD, 0x90, 0x00}, "", audio.MajorAudio, false, audio.SubtypeUnknown},
		{"png", []byte("\x89PNG\r\n\x1a\n"), "", audio.MajorImage, false, ""},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0}, "", audio.MajorImage, false, ""},
		{"gif", []byte("GIF89a"), "", audio.MajorImage, false, ""},
		{"text", []byte("hello, world"), "", audio.MajorUnknown, false, ""},
		{"empty", nil, "", audio.MajorUnknown, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := sniff(tt.header)
			if err != nil {
				t.Fatalf("sniff() error = %v", err)
			}
			if c.key != tt.key {
				t.Errorf("key = %q, want %q", c.key, tt.key)
			}
			if c.major != tt.major {
				t.Errorf("major = %q, want %q", c.major, tt.major)
			}
			if c.noAudio != tt.noAudio {
				t.Errorf("noAudio = %v, want %v", c.noAudio, tt.noAudio)
			}
			if c.native.Subtype != tt.native {
				t.Errorf("native subtype = %q, want %q", c.native.Subtype, tt.native)
			}
		})
	}
}

func TestSniff_NativeLayout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		header   []byte
		rate     int
		channels int
	}{
		{"opus decodes at 48 kHz", oggPage(opusHead(2)), 48000, 2},
		{"speex", oggPage(speexHeader(16000, 1)), 16000, 1},
		{"adts", []byte{0xFF, 0xF1, 0x50, 0x80}, 44100, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := sniff(tt.header)
			if err != nil {
				t.Fatalf("sniff() error = %v", err)
			}
			if c.native.SampleRate != tt.rate || c.native.Channels != tt.channels {
				t.Errorf("native = %d Hz %d ch, want %d Hz %d ch",
					c.native.SampleRate, c.native.Channels, tt.rate, tt.channels)
			}
		})
	}
}

func TestSniff_OggStopsAtDataPage(t *testing.T) {
	t.Parallel()

	// a vorbis stream followed by a data page of the same stream
	data := oggPage([]byte("\x03vorbis"))
	data[5] = 0
	c, err := sniff(concat(oggPage(vorbisID), data))
	if err != nil {
		t.Fatalf("sniff() error = %v", err)
	}
	if c.key != keyVorbis {
		t.Errorf("key = %q, want %q", c.key, keyVorbis)
	}
}

func TestSniff_UnsupportedContainers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header []byte
	}{
		{"avi", []byte("RIFF\x00\x00\x00\x00AVI LIST")},
		{"mp4", []byte("\x00\x00\x00\x18ftypmp42")},
		{"matroska", []byte{0x1A, 0x45, 0xDF, 0xA3, 0x01}},
		{"asf", []byte{0x30, 0x26, 0xB2, 0x75, 0x8E, 0x66, 0xCF, 0x11, 0xA6}},
		{"truncated ogg", []byte("OggS\x00\x02")},
		{"ogg unknown codec", oggPage([]byte("\x01mystery"))},
		{"ogg theora and vorbis", concat(oggPage(theora), oggPage(vorbisID))},
		{"ogg vorbis and theora", concat(oggPage(vorbisID), oggPage(theora))},
		{"ogg skeleton theora and opus", concat(oggPage(skeleton), oggPage(theora), oggPage(opusHead(2)))},
		{"ogg skeleton only", oggPage(skeleton)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := sniff(tt.header); !errors.Is(err, audio.ErrOpen) {
				t.Errorf("sniff() error = %v, want ErrOpen", err)
			}
		})
	}
}
