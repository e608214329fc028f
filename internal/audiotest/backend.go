// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"context"
	"fmt"
	"sync"

	"github.com/ik5/pcmdecode/audio"
	"github.com/ik5/pcmdecode/mediasource"
)

// Reader is a scripted mediasource.Reader. It serves Chunks in order and
// records every call made to it.
type Reader struct {
	Native    audio.MediaType
	NativeErr error
	// Current is reported until SetTargetAudioType succeeds.
	Current    audio.Format
	CurrentErr error
	// Decoded is reported once SetTargetAudioType succeeds.
	Decoded audio.Format
	SetErr  error
	Chunks  [][]byte
	// ReadErr is returned once Chunks are exhausted instead of end of stream.
	ReadErr  error
	CloseErr error

	mtx        sync.Mutex
	configured bool
	next       int
	targets    []audio.Subtype
	reads      int
	closes     int
}

var _ mediasource.Reader = (*Reader)(nil)

// NewPCMReader returns a Reader for an uncompressed stream in layout f.
func NewPCMReader(f audio.Format, chunks ...[]byte) *Reader {
	return &Reader{
		Native:  audio.MediaType{Major: audio.MajorAudio, Subtype: f.Subtype},
		Current: f,
		Chunks:  chunks,
	}
}

// NewCodecReader returns a Reader for a compressed stream of subtype sub
// that decodes to layout decoded.
func NewCodecReader(sub audio.Subtype, decoded audio.Format, chunks ...[]byte) *Reader {
	return &Reader{
		Native:  audio.MediaType{Major: audio.MajorAudio, Subtype: sub},
		Current: audio.Format{Subtype: sub, SampleRate: decoded.SampleRate, Channels: decoded.Channels},
		Decoded: decoded,
		Chunks:  chunks,
	}
}

func (r *Reader) NativeAudioType() (audio.MediaType, error) {
	if r.NativeErr != nil {
		return audio.MediaType{}, r.NativeErr
	}
	return r.Native, nil
}

func (r *Reader) CurrentAudioType() (audio.Format, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if r.CurrentErr != nil {
		return audio.Format{}, r.CurrentErr
	}
	if r.configured {
		return r.Decoded, nil
	}
	return r.Current, nil
}

func (r *Reader) SetTargetAudioType(sub audio.Subtype) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.targets = append(r.targets, sub)
	if r.SetErr != nil {
		return r.SetErr
	}
	r.configured = true
	return nil
}

func (r *Reader) ReadNextSample() ([]byte, bool, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.reads++
	if !r.configured && !r.Current.Subtype.Uncompressed() {
		return nil, false, audio.ErrNotConfigured
	}
	if r.next < len(r.Chunks) {
		chunk := r.Chunks[r.next]
		r.next++
		return chunk, false, nil
	}
	if r.ReadErr != nil {
		return nil, false, r.ReadErr
	}
	return nil, true, nil
}

func (r *Reader) Close() error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.closes++
	return r.CloseErr
}

// Targets returns the subtypes SetTargetAudioType was called with.
func (r *Reader) Targets() []audio.Subtype {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	return append([]audio.Subtype(nil), r.targets...)
}

// Reads returns how many times ReadNextSample was called.
func (r *Reader) Reads() int {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	return r.reads
}

// Closes returns how many times Close was called.
func (r *Reader) Closes() int {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	return r.closes
}

// Backend is a mediasource.Backend that builds a fresh Reader per Open.
type Backend struct {
	// New builds the reader for a locator. A nil New fails every Open.
	New func(locator string) (*Reader, error)

	mtx    sync.Mutex
	opened []*Reader
}

var _ mediasource.Backend = (*Backend)(nil)

// Serve returns a Backend that hands out r for every locator.
func Serve(r *Reader) *Backend {
	return &Backend{New: func(string) (*Reader, error) { return r, nil }}
}

// Fail returns a Backend whose Open always returns err.
func Fail(err error) *Backend {
	return &Backend{New: func(string) (*Reader, error) { return nil, err }}
}

func (b *Backend) Open(ctx context.Context, locator string) (mediasource.Reader, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrOpen, err)
	}
	if b.New == nil {
		return nil, fmt.Errorf("%w: %s", audio.ErrOpen, locator)
	}

	r, err := b.New(locator)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, nil
	}

	b.mtx.Lock()
	b.opened = append(b.opened, r)
	b.mtx.Unlock()

	return r, nil
}

// Opened returns every reader handed out so far.
func (b *Backend) Opened() []*Reader {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	return append([]*Reader(nil), b.opened...)
}
