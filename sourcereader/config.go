// SPDX-License-Identifier: EPL-2.0

package sourcereader

import (
	"log"
	"net/http"
	"time"
)

// Config provides the settings of a Runtime.
type Config struct {
	// ChunkFrames is the number of frames each ReadNextSample returns
	// (defaults to 4096)
	ChunkFrames int

	// LowLatency trades throughput for smaller chunks (1024 frames)
	LowLatency bool

	// HTTPClient fetches http and https locators (defaults to a client with a 30s timeout)
	HTTPClient *http.Client

	// MaxRemoteBytes caps the size of a remote resource, which is buffered
	// in memory (defaults to 64 MiB)
	MaxRemoteBytes int64

	// Logger receives open/close traces (nil discards them)
	Logger *log.Logger
}

// DefaultConfig returns Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		ChunkFrames:    4096,
		LowLatency:     false,
		HTTPClient:     &http.Client{Timeout: 30 * time.Second},
		MaxRemoteBytes: 64 << 20,
	}
}

// chunkFrames returns the effective chunk size.
func (c Config) chunkFrames() int {
	if c.LowLatency {
		return 1024
	}
	if c.ChunkFrames <= 0 {
		return 4096
	}
	return c.ChunkFrames
}

// withDefaults fills the zero fields of c from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.HTTPClient == nil {
		c.HTTPClient = d.HTTPClient
	}
	if c.MaxRemoteBytes <= 0 {
		c.MaxRemoteBytes = d.MaxRemoteBytes
	}
	return c
}
