// SPDX-License-Identifier: EPL-2.0

package mediasource

import (
	"context"

	"github.com/ik5/pcmdecode/audio"
)

// Reader is an opened resource as exposed by a decoding backend.
// It reads the first audio stream only.
type Reader interface {
	// NativeAudioType returns the type of the first audio stream as encoded.
	NativeAudioType() (audio.MediaType, error)
	// CurrentAudioType returns the layout ReadNextSample currently emits.
	CurrentAudioType() (audio.Format, error)
	// SetTargetAudioType activates a decoder transform so that reads emit sub.
	SetTargetAudioType(sub audio.Subtype) error
	// ReadNextSample returns the next chunk, or eos once the stream is exhausted.
	ReadNextSample() (chunk []byte, eos bool, err error)
	// Close releases the resource.
	Close() error
}

// Backend resolves resource locators into Readers.
type Backend interface {
	Open(ctx context.Context, locator string) (Reader, error)
}
