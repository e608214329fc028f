// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	goaiff "github.com/go-audio/aiff"
	gowav "github.com/go-audio/wav"
)

// Ramp returns frames*channels interleaved 16-bit samples counting up from
// zero and wrapping at 1000.
func Ramp(frames, channels int) []int {
	data := make([]int, frames*channels)
	for i := range data {
		data[i] = i % 1000
	}
	return data
}

// LE16 packs 16-bit samples the way a PCM stream emits them.
func LE16(samples []int) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(s)))
	}
	return out
}

func intBuffer(sampleRate, channels, bits int, samples []int) *goaudio.IntBuffer {
	return &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           samples,
		SourceBitDepth: bits,
	}
}

// WriteWAVFile encodes samples as an integer PCM WAV in dir and returns its
// path.
func WriteWAVFile(t testing.TB, dir, name string, sampleRate, channels, bits int, samples []int) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	enc := gowav.NewEncoder(f, sampleRate, bits, channels, 1)
	if err := enc.Write(intBuffer(sampleRate, channels, bits, samples)); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("finish %s: %v", path, err)
	}

	return path
}

// WriteAIFFFile encodes samples as an AIFF in dir and returns its path.
func WriteAIFFFile(t testing.TB, dir, name string, sampleRate, channels, bits int, samples []int) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	enc := goaiff.NewEncoder(f, sampleRate, bits, channels)
	if err := enc.Write(intBuffer(sampleRate, channels, bits, samples)); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("finish %s: %v", path, err)
	}

	return path
}

// WriteFile stores raw bytes in dir and returns the path.
func WriteFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
