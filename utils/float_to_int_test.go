// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestFloatToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float32
		want  int32
	}{
		{
			name:  "zero",
			input: 0.0,
			want:  0,
		},
		{
			name:  "max positive",
			input: 1.0,
			want:  math.MaxInt16,
		},
		{
			name:  "max negative",
			input: -1.0,
			want:  math.MinInt16,
		},
		{
			name:  "half positive",
			input: 0.5,
			want:  16384,
		},
		{
			name:  "half negative",
			input: -0.5,
			want:  -16384,
		},
		{
			name:  "quarter positive",
			input: 0.25,
			want:  8192,
		},
		{
			name:  "small positive",
			input: 0.001,
			want:  32, // 32.768 truncated
		},
		{
			name:  "small negative",
			input: -0.001,
			want:  -32,
		},
		{
			name:  "clamp over max",
			input: 1.5,
			want:  math.MaxInt16,
		},
		{
			name:  "clamp over min",
			input: -1.5,
			want:  math.MinInt16,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := FloatToInt(tt.input, 16)
			if got != tt.want {
				t.Errorf("FloatToInt(%v, 16) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFloatToInt_Widths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bits    int
		wantMax int32
		wantMin int32
	}{
		{8, math.MaxInt8, math.MinInt8},
		{16, math.MaxInt16, math.MinInt16},
		{24, 1<<23 - 1, -1 << 23},
		{32, math.MaxInt32, math.MinInt32},
	}

	for _, tt := range tests {
		if got := FloatToInt(1, tt.bits); got != tt.wantMax {
			t.Errorf("FloatToInt(1, %d) = %d, want %d", tt.bits, got, tt.wantMax)
		}
		if got := FloatToInt(-1, tt.bits); got != tt.wantMin {
			t.Errorf("FloatToInt(-1, %d) = %d, want %d", tt.bits, got, tt.wantMin)
		}
	}
}

func TestIntToFloat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v    int32
		bits int
		want float32
	}{
		{0, 16, 0},
		{math.MinInt16, 16, -1},
		{16384, 16, 0.5},
		{-64, 8, -0.5},
		{1 << 22, 24, 0.5},
	}

	for _, tt := range tests {
		if got := IntToFloat(tt.v, tt.bits); got != tt.want {
			t.Errorf("IntToFloat(%d, %d) = %v, want %v", tt.v, tt.bits, got, tt.want)
		}
	}
}

func TestFloatToInt_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, bits := range []int{8, 16, 24} {
		for _, v := range []int32{0, 1, -1, 100, -100} {
			got := FloatToInt(IntToFloat(v, bits), bits)
			if got != v {
				t.Errorf("FloatToInt(IntToFloat(%d, %d)) = %d, want %d", v, bits, got, v)
			}
		}
	}
}

func BenchmarkFloatToInt(b *testing.B) {
	b.ReportAllocs()

	for b.Loop() {
		_ = FloatToInt(0.5, 16)
	}
}
