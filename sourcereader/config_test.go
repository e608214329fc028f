// SPDX-License-Identifier: EPL-2.0

package sourcereader

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.ChunkFrames != 4096 {
		t.Errorf("ChunkFrames = %d, want 4096", cfg.ChunkFrames)
	}
	if cfg.LowLatency {
		t.Error("LowLatency = true, want false")
	}
	if cfg.HTTPClient == nil {
		t.Error("HTTPClient = nil")
	}
	if cfg.MaxRemoteBytes != 64<<20 {
		t.Errorf("MaxRemoteBytes = %d, want %d", cfg.MaxRemoteBytes, 64<<20)
	}
}

func TestConfig_ChunkFrames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
		want int
	}{
		{"zero value", Config{}, 4096},
		{"negative", Config{ChunkFrames: -1}, 4096},
		{"explicit", Config{ChunkFrames: 256}, 256},
		{"low latency wins", Config{ChunkFrames: 256, LowLatency: true}, 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.cfg.chunkFrames(); got != tt.want {
				t.Errorf("chunkFrames() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestConfig_WithDefaults(t *testing.T) {
	t.Parallel()

	cfg := Config{MaxRemoteBytes: 10}.withDefaults()
	if cfg.HTTPClient == nil {
		t.Error("HTTPClient = nil after withDefaults")
	}
	if cfg.MaxRemoteBytes != 10 {
		t.Errorf("MaxRemoteBytes = %d, want 10", cfg.MaxRemoteBytes)
	}

	if got := (Config{}).withDefaults().MaxRemoteBytes; got != 64<<20 {
		t.Errorf("MaxRemoteBytes = %d, want %d", got, 64<<20)
	}
}
