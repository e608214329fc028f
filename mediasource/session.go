// SPDX-License-Identifier: EPL-2.0

package mediasource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"
	"github.com/ik5/pcmdecode/audio"
)

// ErrClosed is returned by a Session used after Close.
var ErrClosed = fmt.Errorf("%w: session closed", audio.ErrRead)

// taxonomy holds the errors a Session reports unchanged.
var taxonomy = []error{
	audio.ErrOpen,
	audio.ErrNoAudioStream,
	audio.ErrNotAudioFile,
	audio.ErrUnsupportedFormat,
	audio.ErrRead,
	audio.ErrNotConfigured,
}

// classify returns err unchanged when it already belongs to the taxonomy,
// otherwise wrapped in fallback.
func classify(err, fallback error) error {
	for _, kind := range taxonomy {
		if errors.Is(err, kind) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", fallback, err)
}

// Option configures a Session.
type Option func(*Session)

// WithLogger logs session activity to l.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// Session is one opened resource together with its negotiated media types.
// A Session belongs to a single decode and is not safe for concurrent use.
type Session struct {
	id      uuid.UUID
	locator string
	r       Reader
	log     *log.Logger

	eos    bool
	closed bool
}

// Open resolves locator through b. Every failure is an audio.ErrOpen unless
// b already reported a more specific kind.
func Open(ctx context.Context, b Backend, locator string, opts ...Option) (*Session, error) {
	if locator == "" {
		return nil, fmt.Errorf("%w: empty locator", audio.ErrOpen)
	}

	s := &Session{
		id:      uuid.New(),
		locator: locator,
		log:     log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(s)
	}

	r, err := b.Open(ctx, locator)
	if err != nil {
		return nil, classify(err, audio.ErrOpen)
	}
	if r == nil {
		return nil, fmt.Errorf("%w: backend returned no reader for %s", audio.ErrOpen, locator)
	}
	s.r = r

	s.log.Printf("session %s: opened %s", s.id, locator)
	return s, nil
}

// ID identifies the session in logs.
func (s *Session) ID() uuid.UUID { return s.id }

// Locator returns the resource the session was opened for.
func (s *Session) Locator() string { return s.locator }

// GetNativeAudioType returns the type of the first audio stream as encoded.
// Backend failures other than audio.ErrNoAudioStream are read errors.
func (s *Session) GetNativeAudioType() (audio.MediaType, error) {
	if s.closed {
		return audio.MediaType{}, ErrClosed
	}

	mt, err := s.r.NativeAudioType()
	if err != nil {
		return audio.MediaType{}, classify(err, audio.ErrRead)
	}

	s.log.Printf("session %s: native type %s", s.id, mt)
	return mt, nil
}

// GetCurrentAudioType returns the layout samples are currently read as.
func (s *Session) GetCurrentAudioType() (audio.Format, error) {
	if s.closed {
		return audio.Format{}, ErrClosed
	}

	f, err := s.r.CurrentAudioType()
	if err != nil {
		return audio.Format{}, classify(err, audio.ErrRead)
	}

	return f.Clone(), nil
}

// SetTargetAudioType asks the backend to decode to sub, which must be
// audio.SubtypePCM or audio.SubtypeFloat.
func (s *Session) SetTargetAudioType(sub audio.Subtype) error {
	if s.closed {
		return ErrClosed
	}
	if !sub.Uncompressed() {
		return fmt.Errorf("%w: target %s is not PCM", audio.ErrUnsupportedFormat, sub)
	}

	if err := s.r.SetTargetAudioType(sub); err != nil {
		return classify(err, audio.ErrUnsupportedFormat)
	}

	s.log.Printf("session %s: decoder configured for %s", s.id, sub)
	return nil
}

// ReadNextSample returns the next chunk of the first audio stream. Once the
// stream is exhausted it keeps returning an empty chunk with eos set.
// The chunk is only valid until the next call.
func (s *Session) ReadNextSample() ([]byte, bool, error) {
	if s.closed {
		return nil, false, ErrClosed
	}
	if s.eos {
		return nil, true, nil
	}

	chunk, eos, err := s.r.ReadNextSample()
	if err != nil {
		return nil, false, classify(err, audio.ErrRead)
	}
	if eos {
		s.eos = true
		return nil, true, nil
	}

	return chunk, false, nil
}

// Close releases the resource. Calling Close more than once is a no-op.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	s.log.Printf("session %s: closed", s.id)
	return s.r.Close()
}
