// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/pcmdecode/audio"
)

// WriteWAV writes data as a canonical 44-byte-header WAV in layout f.
// f must be a valid PCM or float layout.
func WriteWAV(w io.Writer, f audio.Format, data []byte) error {
	if err := f.Validate(); err != nil {
		return err
	}

	dataSize := uint32(len(data))
	pad := len(data) & 1
	riffSize := 36 + dataSize + uint32(pad)

	// Pre-allocate buffer for entire header (44 bytes)
	header := make([]byte, 44)

	// RIFF header (12 bytes)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], riffSize)
	copy(header[8:12], "WAVE")

	// fmt chunk (24 bytes)
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], f.Tag())
	binary.LittleEndian.PutUint16(header[22:24], uint16(f.Channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(f.SampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(f.SampleRate*f.BlockAlign))
	binary.LittleEndian.PutUint16(header[32:34], uint16(f.BlockAlign))
	binary.LittleEndian.PutUint16(header[34:36], uint16(f.BitsPerSample))

	// data chunk header (8 bytes)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("%w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%w", err)
	}

	if pad == 1 {
		if _, err := w.Write([]byte{0}); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

// WriteWAV16 writes a mono 16-bit PCM WAV at sampleRate.
func WriteWAV16(w io.Writer, sampleRate int, samples []int16) error {
	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[i*2:i*2+2], uint16(s))
	}

	return WriteWAV(w, audio.NewPCMFormat(sampleRate, 1, 16), data)
}
