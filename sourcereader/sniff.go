// SPDX-License-Identifier: EPL-2.0

package sourcereader

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/ik5/pcmdecode/audio"
)

// sniffLen covers the beginning-of-stream pages of a multiplexed Ogg file,
// each a page header followed by a codec identification packet.
const sniffLen = 4096

// Registry keys of the bundled decoders.
const (
	keyWAV    = "wav"
	keyAIFF   = "aiff"
	keyMP3    = "mp3"
	keyVorbis = "ogg vorbis"
	keyFLAC   = "flac"
)

// container is what the first bytes of a resource say about it.
type container struct {
	// key selects the decoder in the registry; empty when none applies
	key   string
	major audio.MajorType
	// noAudio marks containers that were recognised but carry no audio stream
	noAudio bool
	// native describes an audio stream no decoder exists for
	native audio.Format
}

// adtsRates maps the ADTS sampling frequency index to Hz.
var adtsRates = [...]int{96000, 88200, 64000, 48000, 44100, 32000, 24000, 22050, 16000, 12000, 11025, 8000, 7350}

// sniff identifies a resource by its leading bytes. Unrecognised content is
// reported with an unknown major type rather than as an error; containers
// that are recognised but cannot be demuxed fail with audio.ErrOpen.
func sniff(h []byte) (container, error) {
	switch {
	case len(h) >= 12 && string(h[:4]) == "RIFF" && string(h[8:12]) == "WAVE":
		return container{key: keyWAV, major: audio.MajorAudio}, nil
	case len(h) >= 12 && string(h[:4]) == "RIFF" && string(h[8:12]) == "AVI ":
		return container{}, unsupportedContainer("avi")
	case len(h) >= 12 && string(h[:4]) == "FORM" && (string(h[8:12]) == "AIFF" || string(h[8:12]) == "AIFC"):
		return container{key: keyAIFF, major: audio.MajorAudio}, nil
	case bytes.HasPrefix(h, []byte("fLaC")):
		return container{key: keyFLAC, major: audio.MajorAudio}, nil
	case bytes.HasPrefix(h, []byte("OggS")):
		return sniffOgg(h)
	case bytes.HasPrefix(h, []byte("ID3")):
		return container{key: keyMP3, major: audio.MajorAudio}, nil
	case len(h) >= 8 && string(h[4:8]) == "ftyp":
		return container{}, unsupportedContainer("mp4")
	case bytes.HasPrefix(h, []byte{0x1A, 0x45, 0xDF, 0xA3}):
		return container{}, unsupportedContainer("matroska")
	case bytes.HasPrefix(h, []byte{0x30, 0x26, 0xB2, 0x75, 0x8E, 0x66, 0xCF, 0x11}):
		return container{}, unsupportedContainer("asf")
	case bytes.HasPrefix(h, []byte("\x89PNG")),
		bytes.HasPrefix(h, []byte{0xFF, 0xD8, 0xFF}),
		bytes.HasPrefix(h, []byte("GIF8")):
		return container{major: audio.MajorImage}, nil
	case len(h) >= 4 && h[0] == 0xFF && h[1]&0xE0 == 0xE0:
		return sniffMPEG(h), nil
	}

	return container{major: audio.MajorUnknown}, nil
}

// sniffMPEG tells MPEG audio layers and ADTS AAC apart by the frame header.
func sniffMPEG(h []byte) container {
	layer := (h[1] >> 1) & 0x03
	switch layer {
	case 0x01:
		return container{key: keyMP3, major: audio.MajorAudio}
	case 0x00:
		if h[1]&0xF6 != 0xF0 {
			break
		}
		f := audio.Format{
			Subtype:  audio.SubtypeAAC,
			Channels: int(h[2]&0x01)<<2 | int(h[3]>>6),
		}
		if idx := int(h[2]>>2) & 0x0F; idx < len(adtsRates) {
			f.SampleRate = adtsRates[idx]
		}
		return container{major: audio.MajorAudio, native: f}
	default:
		// layer I and II have no decoder
		return container{major: audio.MajorAudio, native: audio.Format{Subtype: audio.SubtypeUnknown}}
	}

	return container{major: audio.MajorUnknown}
}

// sniffOgg inspects the first packet of every logical stream. Those sit in
// the beginning-of-stream pages that open a physical Ogg stream.
func sniffOgg(h []byte) (container, error) {
	var (
		streams        []container
		audioN, videoN int
	)
	for off := 0; off < len(h); {
		p, next, ok := oggFirstPacket(h[off:], off == 0)
		if !ok {
			break
		}

		c := sniffOggPacket(p)
		switch c.major {
		case audio.MajorAudio:
			audioN++
		case audio.MajorVideo:
			videoN++
		}
		streams = append(streams, c)
		off += next
	}

	switch {
	case len(streams) == 1 && streams[0].major != audio.MajorUnknown:
		return streams[0], nil
	case len(streams) > 1 && audioN > 0:
		// the Vorbis decoder reads a single logical stream
		return container{}, unsupportedContainer("multiplexed ogg")
	case videoN > 0:
		return container{major: audio.MajorVideo, noAudio: true}, nil
	}

	return container{}, unsupportedContainer("ogg")
}

// oggFirstPacket returns the packet of the page at the start of h and the
// offset of the page after it. Pages after the first one count only when
// they open a logical stream.
func oggFirstPacket(h []byte, first bool) (packet []byte, next int, ok bool) {
	if len(h) < 27 || !bytes.HasPrefix(h, []byte("OggS")) {
		return nil, 0, false
	}
	if !first && h[5]&0x02 == 0 {
		return nil, 0, false
	}

	segs := int(h[26])
	body := 27 + segs
	if body > len(h) {
		return nil, 0, false
	}

	size := 0
	for _, lace := range h[27:body] {
		size += int(lace)
	}
	end := min(body+size, len(h))

	return h[body:end], body + size, true
}

// sniffOggPacket identifies a codec by its identification header. Other
// streams, such as Skeleton metadata, come back with an unknown major type.
func sniffOggPacket(p []byte) container {
	switch {
	case bytes.HasPrefix(p, []byte("\x01vorbis")):
		return container{key: keyVorbis, major: audio.MajorAudio}
	case bytes.HasPrefix(p, []byte("OpusHead")) && len(p) >= 19:
		// Opus always decodes at 48 kHz; the header carries the input rate only
		f := audio.Format{
			Subtype:    audio.SubtypeOpus,
			SampleRate: 48000,
			Channels:   int(p[9]),
			Extra:      append([]byte(nil), p[:19]...),
		}
		return container{major: audio.MajorAudio, native: f}
	case bytes.HasPrefix(p, []byte("Speex   ")) && len(p) >= 52:
		f := audio.Format{
			Subtype:    audio.SubtypeSpeex,
			SampleRate: int(binary.LittleEndian.Uint32(p[36:40])),
			Channels:   int(binary.LittleEndian.Uint32(p[48:52])),
		}
		return container{major: audio.MajorAudio, native: f}
	case bytes.HasPrefix(p, []byte("\x7FFLAC")):
		return container{major: audio.MajorAudio, native: audio.Format{Subtype: audio.SubtypeFLAC}}
	case bytes.HasPrefix(p, []byte("\x80theora")):
		return container{major: audio.MajorVideo, noAudio: true}
	}

	return container{major: audio.MajorUnknown}
}

func unsupportedContainer(name string) error {
	return fmt.Errorf("%w: unsupported container %s", audio.ErrOpen, name)
}
