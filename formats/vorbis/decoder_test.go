// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/pcmdecode/audio"
	"github.com/ik5/pcmdecode/utils"
)

// mockOggVorbisReader simulates the oggvorbis.Reader for testing.
// Like the real reader, Read counts interleaved values and may stop at a
// packet boundary.
type mockOggVorbisReader struct {
	sampleRate   int
	channels     int
	samples      []float32
	offset       int
	packet       int // values per Read, 0 for unlimited
	returnErrors bool
}

func (m *mockOggVorbisReader) SampleRate() int {
	return m.sampleRate
}

func (m *mockOggVorbisReader) Channels() int {
	return m.channels
}

func (m *mockOggVorbisReader) Read(buf []float32) (int, error) {
	if m.returnErrors {
		return 0, io.ErrUnexpectedEOF
	}

	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	if m.packet > 0 && len(buf) > m.packet {
		buf = buf[:m.packet]
	}

	n := copy(buf, m.samples[m.offset:])
	m.offset += n

	return n, nil
}

func readAll(t *testing.T, s audio.Stream) []byte {
	t.Helper()

	var out []byte
	for {
		chunk, err := s.ReadChunk()
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadChunk() error = %v", err)
		}
		out = append(out, chunk...)
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	// Invalid Vorbis data
	invalidData := []byte("This is not Ogg Vorbis data")

	decoder := Decoder{}
	_, err := decoder.Decode(bytes.NewReader(invalidData))

	if err == nil {
		t.Error("Decode() error = nil, want error for invalid data")
	}
}

func TestDecoder_EmptyInput(t *testing.T) {
	t.Parallel()

	decoder := Decoder{}
	_, err := decoder.Decode(bytes.NewReader([]byte{}))

	if err == nil {
		t.Error("Decode() error = nil, want error for empty input")
	}
}

func TestSource_ReadSamples_WholeFrames(t *testing.T) {
	t.Parallel()

	src := &source{
		dec:        &mockOggVorbisReader{sampleRate: 44100, channels: 2, samples: make([]float32, 10)},
		sampleRate: 44100,
		channels:   2,
	}

	n, err := src.ReadSamples(make([]float32, 5))
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 4 {
		t.Errorf("ReadSamples() n = %d, want 4", n)
	}

	if _, err := src.ReadSamples(make([]float32, 1)); !errors.Is(err, audio.ErrInvalidDstSize) {
		t.Errorf("ReadSamples() with less than a frame error = %v, want ErrInvalidDstSize", err)
	}

	if n, err := src.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v; want 0, nil", n, err)
	}
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	src := &source{
		dec:        &mockOggVorbisReader{sampleRate: 44100, channels: 1, returnErrors: true},
		sampleRate: 44100,
		channels:   1,
	}

	if _, err := src.ReadSamples(make([]float32, 16)); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestStream_NativeType(t *testing.T) {
	t.Parallel()

	s := newStream(&mockOggVorbisReader{sampleRate: 48000, channels: 6}, 0)

	if got := s.NativeType(); got != (audio.MediaType{Major: audio.MajorAudio, Subtype: audio.SubtypeVorbis}) {
		t.Errorf("NativeType() = %v, want audio/vorbis", got)
	}

	f := s.Format()
	if f.SampleRate != 48000 || f.Channels != 6 {
		t.Errorf("Format() = %v, want 48000 Hz 6 ch", f)
	}

	if _, err := s.ReadChunk(); !errors.Is(err, audio.ErrNotConfigured) {
		t.Errorf("ReadChunk() before SetOutput error = %v, want ErrNotConfigured", err)
	}
}

func TestStream_DecodePCM(t *testing.T) {
	t.Parallel()

	samples := []float32{0, 0.5, -0.5, 1, -1, 0.25}
	dec := &mockOggVorbisReader{sampleRate: 44100, channels: 2, samples: samples, packet: 2}

	s := newStream(dec, 2)
	if err := s.SetOutput(audio.SubtypePCM); err != nil {
		t.Fatalf("SetOutput() error = %v", err)
	}

	data := readAll(t, s)
	if len(data) != len(samples)*2 {
		t.Fatalf("decoded %d bytes, want %d", len(data), len(samples)*2)
	}

	for i, x := range samples {
		want := utils.FloatToInt(x, 16)
		if got := utils.Sample(data[i*2:], 16); got != want {
			t.Errorf("sample %d = %d, want %d", i, got, want)
		}
	}
}

func TestStream_DecodeFloat(t *testing.T) {
	t.Parallel()

	samples := []float32{0.125, -0.125, 0.75}
	s := newStream(&mockOggVorbisReader{sampleRate: 22050, channels: 1, samples: samples}, 0)
	if err := s.SetOutput(audio.SubtypeFloat); err != nil {
		t.Fatalf("SetOutput() error = %v", err)
	}

	data := readAll(t, s)
	for i, x := range samples {
		if got := utils.Float32(data[i*4:]); got != x {
			t.Errorf("sample %d = %v, want %v", i, got, x)
		}
	}
}

func BenchmarkStream_DecodePCM(b *testing.B) {
	samples := make([]float32, 44100*2)

	b.ReportAllocs()

	for b.Loop() {
		s := newStream(&mockOggVorbisReader{sampleRate: 44100, channels: 2, samples: samples}, 0)
		_ = s.SetOutput(audio.SubtypePCM)
		for {
			if _, err := s.ReadChunk(); err != nil {
				break
			}
		}
	}
}
