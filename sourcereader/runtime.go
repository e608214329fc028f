// SPDX-License-Identifier: EPL-2.0

package sourcereader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/ik5/pcmdecode/audio"
	"github.com/ik5/pcmdecode/formats/aiff"
	"github.com/ik5/pcmdecode/formats/flac"
	"github.com/ik5/pcmdecode/formats/mp3"
	"github.com/ik5/pcmdecode/formats/vorbis"
	"github.com/ik5/pcmdecode/formats/wav"
	"github.com/ik5/pcmdecode/mediasource"
)

var (
	// ErrNotStarted is returned by Open outside a Startup/Shutdown scope.
	ErrNotStarted = fmt.Errorf("%w: decoding runtime not started", audio.ErrOpen)

	// ErrUnbalancedShutdown is returned by Shutdown without a matching Startup.
	ErrUnbalancedShutdown = errors.New("shutdown without startup")
)

// Runtime is the decoding subsystem. It must be started before readers are
// opened and shut down once the last user is done; both calls are reference
// counted so independent pipelines can share one Runtime.
type Runtime struct {
	cfg Config
	log *log.Logger

	mtx      sync.Mutex
	refs     int
	registry *audio.Registry
	live     map[*reader]struct{}
}

var _ mediasource.Backend = (*Runtime)(nil)

// New returns a stopped Runtime.
func New(cfg Config) *Runtime {
	cfg = cfg.withDefaults()

	l := cfg.Logger
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}

	return &Runtime{
		cfg:  cfg,
		log:  l,
		live: make(map[*reader]struct{}),
	}
}

// Startup acquires a reference; the first one builds the decoder registry.
func (rt *Runtime) Startup() {
	rt.mtx.Lock()
	defer rt.mtx.Unlock()

	rt.refs++
	if rt.refs > 1 {
		return
	}

	frames := rt.cfg.chunkFrames()
	reg := audio.NewRegistry()
	reg.Register(keyWAV, wav.Decoder{ChunkFrames: frames})
	reg.Register(keyAIFF, aiff.Decoder{ChunkFrames: frames})
	reg.Register(keyMP3, mp3.Decoder{ChunkFrames: frames})
	reg.Register(keyVorbis, vorbis.Decoder{ChunkFrames: frames})
	reg.Register(keyFLAC, flac.Decoder{ChunkFrames: frames})
	rt.registry = reg

	rt.log.Printf("decoding runtime started (%d formats, %d frames per chunk)", reg.Formats(), frames)
}

// Shutdown releases a reference. The last one closes every reader still
// open and drops idle HTTP connections.
func (rt *Runtime) Shutdown() error {
	rt.mtx.Lock()
	if rt.refs == 0 {
		rt.mtx.Unlock()
		return ErrUnbalancedShutdown
	}

	rt.refs--
	if rt.refs > 0 {
		rt.mtx.Unlock()
		return nil
	}

	leaked := make([]*reader, 0, len(rt.live))
	for r := range rt.live {
		leaked = append(leaked, r)
	}
	rt.registry = nil
	rt.mtx.Unlock()

	var errs []error
	for _, r := range leaked {
		rt.log.Printf("closing reader for %s left open at shutdown", r.locator)
		errs = append(errs, r.Close())
	}
	rt.cfg.HTTPClient.CloseIdleConnections()

	rt.log.Printf("decoding runtime stopped")
	return errors.Join(errs...)
}

// Live returns the number of readers not yet closed.
func (rt *Runtime) Live() int {
	rt.mtx.Lock()
	defer rt.mtx.Unlock()

	return len(rt.live)
}

// Open resolves locator, identifies its container and builds a reader for
// the first audio stream.
func (rt *Runtime) Open(ctx context.Context, locator string) (mediasource.Reader, error) {
	rt.mtx.Lock()
	reg := rt.registry
	rt.mtx.Unlock()
	if reg == nil {
		return nil, ErrNotStarted
	}

	res, err := rt.resolve(ctx, locator)
	if err != nil {
		return nil, err
	}

	r, err := rt.newReader(reg, locator, res)
	if err != nil {
		res.Close()
		return nil, err
	}

	rt.mtx.Lock()
	if rt.refs == 0 {
		rt.mtx.Unlock()
		if r.stream != nil {
			r.stream.Close()
		}
		res.Close()
		return nil, ErrNotStarted
	}
	rt.live[r] = struct{}{}
	rt.mtx.Unlock()

	rt.log.Printf("opened %s as %s", locator, r.describe())
	return r, nil
}

func (rt *Runtime) newReader(reg *audio.Registry, locator string, res *resource) (*reader, error) {
	header := make([]byte, sniffLen)
	n, err := io.ReadFull(res, header)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("%w: %w", audio.ErrOpen, err)
	}
	if _, err := res.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrOpen, err)
	}

	c, err := sniff(header[:n])
	if err != nil {
		return nil, err
	}

	r := &reader{rt: rt, locator: locator, res: res, c: c}

	switch {
	case c.key != "":
		dec, ok := reg.Get(c.key)
		if !ok {
			return nil, fmt.Errorf("%w: no decoder registered for %s", audio.ErrOpen, c.key)
		}
		stream, err := dec.Decode(res)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", audio.ErrOpen, c.key, err)
		}
		r.stream = stream
	case c.major == audio.MajorAudio:
		r.stream = audio.NewOpaqueStream(c.native, nil)
	}

	return r, nil
}

// forget drops a closed reader from the live set.
func (rt *Runtime) forget(r *reader) {
	rt.mtx.Lock()
	defer rt.mtx.Unlock()

	delete(rt.live, r)
}
