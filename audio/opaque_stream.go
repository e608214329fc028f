// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// opaqueStream is an audio stream that was identified but that no
// transform can decode.
type opaqueStream struct {
	native Format
	c      io.Closer
}

// NewOpaqueStream returns a Stream for a codec without a decoder. Every
// SetOutput call fails with ErrUnsupportedFormat. c may be nil.
func NewOpaqueStream(native Format, c io.Closer) Stream {
	return &opaqueStream{native: native, c: c}
}

func (s *opaqueStream) NativeType() MediaType {
	return MediaType{Major: MajorAudio, Subtype: s.native.Subtype}
}

func (s *opaqueStream) Format() Format { return s.native.Clone() }

func (s *opaqueStream) SetOutput(sub Subtype) error {
	return fmt.Errorf("%w: no %s to %s transform", ErrUnsupportedFormat, s.native.Subtype, sub)
}

func (s *opaqueStream) ReadChunk() ([]byte, error) {
	return nil, ErrNotConfigured
}

func (s *opaqueStream) Close() error {
	if s.c == nil {
		return nil
	}
	return s.c.Close()
}
