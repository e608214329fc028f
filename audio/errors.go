// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrOpen indicates the resource could not be resolved or no reader
	// could be built for it.
	ErrOpen = errors.New("cannot open media source")

	// ErrNoAudioStream indicates the resource exposes no audio stream.
	ErrNoAudioStream = errors.New("no audio stream")

	// ErrNotAudioFile indicates the content is not audio.
	ErrNotAudioFile = errors.New("not an audio file")

	// ErrUnsupportedFormat indicates no decoder transform exists for the codec.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrRead indicates an I/O failure in the middle of the stream.
	ErrRead = errors.New("media read failed")

	// ErrNotConfigured is returned when a compressed stream is read before
	// an output subtype was selected.
	ErrNotConfigured = errors.New("decoder output not configured")
)
