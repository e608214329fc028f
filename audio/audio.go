// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"sync"
)

// Source is a decoded float sample stream produced by a codec.
type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	// Close releases any resources.
	Close() error
}

// IntSource is a Source that can also hand out its samples as integers at
// the stream's own bit depth. Integer PCM output then never goes through
// float32, which would drop the low bits of samples wider than 24 bits.
type IntSource interface {
	Source
	// ReadInts fills dst with interleaved integer samples, like ReadSamples.
	ReadInts(dst []int32) (n int, err error)
}

// Stream is the first audio stream of an opened container.
type Stream interface {
	// NativeType reports the stream type as it is stored in the container.
	NativeType() MediaType
	// Format reports the layout ReadChunk currently produces.
	Format() Format
	// SetOutput selects the subtype ReadChunk emits. ErrUnsupportedFormat
	// is returned when no transform converts the native codec to sub.
	SetOutput(sub Subtype) error
	// ReadChunk returns the next chunk of bytes in playback order.
	// The slice is only valid until the next call. (nil, io.EOF) marks the end.
	ReadChunk() ([]byte, error)
	// Close releases any resources.
	Close() error
}

// Decoder constructs a Stream from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Stream, error)
}

// Registry for decoders by container key (e.g., "wav", "mp3", "ogg vorbis").
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[format]
	return d, ok
}

// Formats returns the number of registered container keys.
func (r *Registry) Formats() int {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	return len(r.codecs)
}
