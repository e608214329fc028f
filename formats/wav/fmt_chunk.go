// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/pcmdecode/audio"
)

// maxFmtChunkSize bounds the fmt chunk body we are willing to buffer.
const maxFmtChunkSize = 1 << 16

// fmtChunk is the content of a WAVE fmt chunk. go-audio/wav does not expose
// the block alignment or the extensible sub-format, so the chunk is read here.
type fmtChunk struct {
	tag        uint16 // effective tag, sub-format resolved for WAVE_FORMAT_EXTENSIBLE
	channels   int
	sampleRate int
	avgBytes   int
	blockAlign int
	bits       int
	extra      []byte
	dataSize   int64
}

func (f fmtChunk) format() audio.Format {
	return audio.Format{
		Subtype:        audio.SubtypeFromTag(f.tag),
		SampleRate:     f.sampleRate,
		Channels:       f.channels,
		BitsPerSample:  f.bits,
		BlockAlign:     f.blockAlign,
		AvgBytesPerSec: f.avgBytes,
		Extra:          f.extra,
	}
}

// readFmtChunk scans rs from the start for the fmt chunk and the size of
// the data chunk that follows it. The read position is left undefined.
func readFmtChunk(rs io.ReadSeeker) (fmtChunk, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return fmtChunk{}, fmt.Errorf("%w", err)
	}

	var hdr [12]byte
	if _, err := io.ReadFull(rs, hdr[:]); err != nil {
		return fmtChunk{}, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}
	if string(hdr[:4]) != "RIFF" || string(hdr[8:12]) != "WAVE" {
		return fmtChunk{}, ErrNotWavFile
	}

	var (
		fc    fmtChunk
		found bool
	)
	for {
		var ch [8]byte
		if _, err := io.ReadFull(rs, ch[:]); err != nil {
			if found {
				return fc, fmt.Errorf("%w: no data chunk", ErrUnsupportedWavChunks)
			}
			return fmtChunk{}, fmt.Errorf("%w: no fmt chunk", ErrUnsupportedWavLayout)
		}

		size := int64(binary.LittleEndian.Uint32(ch[4:8]))
		switch {
		case string(ch[:4]) == "fmt " && !found:
			if size < 16 || size > maxFmtChunkSize {
				return fmtChunk{}, fmt.Errorf("%w: fmt chunk of %d bytes", ErrUnsupportedWavLayout, size)
			}

			body := make([]byte, size)
			if _, err := io.ReadFull(rs, body); err != nil {
				return fmtChunk{}, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
			}
			fc = parseFmtChunk(body)
			found = true

			if size&1 == 1 {
				if _, err := rs.Seek(1, io.SeekCurrent); err != nil {
					return fmtChunk{}, fmt.Errorf("%w", err)
				}
			}
			continue

		case string(ch[:4]) == "data" && found:
			// the size excludes the pad byte of an odd sized chunk
			fc.dataSize = size
			return fc, nil
		}

		// chunks are word aligned
		if _, err := rs.Seek(size+size&1, io.SeekCurrent); err != nil {
			return fmtChunk{}, fmt.Errorf("%w", err)
		}
	}
}

func parseFmtChunk(body []byte) fmtChunk {
	f := fmtChunk{
		tag:        binary.LittleEndian.Uint16(body[0:2]),
		channels:   int(binary.LittleEndian.Uint16(body[2:4])),
		sampleRate: int(binary.LittleEndian.Uint32(body[4:8])),
		avgBytes:   int(binary.LittleEndian.Uint32(body[8:12])),
		blockAlign: int(binary.LittleEndian.Uint16(body[12:14])),
		bits:       int(binary.LittleEndian.Uint16(body[14:16])),
	}

	if len(body) >= 18 {
		cb := int(binary.LittleEndian.Uint16(body[16:18]))
		end := min(18+cb, len(body))
		if end > 18 {
			f.extra = append([]byte(nil), body[18:end]...)
		}
	}

	// valid bits (2), channel mask (4), then the sub-format GUID whose
	// first two bytes carry the tag
	if f.tag == audio.TagExtensible && len(f.extra) >= 22 {
		f.tag = binary.LittleEndian.Uint16(f.extra[6:8])
	}

	return f
}
