// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/ik5/pcmdecode/audio"
	"github.com/ik5/pcmdecode/mediasource"
)

// State is a step of a single decode.
type State int

const (
	Unopened State = iota
	Opened
	Validated
	ConfiguredPCM
	NativePCM
	Extracting
	Done
	Failed
)

var stateNames = [...]string{
	Unopened:      "unopened",
	Opened:        "opened",
	Validated:     "validated",
	ConfiguredPCM: "configured-pcm",
	NativePCM:     "native-pcm",
	Extracting:    "extracting",
	Done:          "done",
	Failed:        "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger logs decode progress to l.
func WithLogger(l *log.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.log = l
		}
	}
}

// WithTarget selects the layout compressed resources are decoded to,
// audio.SubtypePCM (default) or audio.SubtypeFloat.
func WithTarget(sub audio.Subtype) Option {
	return func(p *Pipeline) {
		p.target = sub
	}
}

// WithObserver calls fn on every state transition of every decode.
func WithObserver(fn func(State)) Option {
	return func(p *Pipeline) {
		p.observe = fn
	}
}

// Pipeline decodes resources into PCM through a mediasource.Backend.
// A Pipeline holds no per-decode state; concurrent Decode calls each get
// their own session.
type Pipeline struct {
	backend mediasource.Backend
	log     *log.Logger
	target  audio.Subtype
	observe func(State)
}

func New(backend mediasource.Backend, opts ...Option) *Pipeline {
	p := &Pipeline{
		backend: backend,
		log:     log.New(io.Discard, "", 0),
		target:  audio.SubtypePCM,
		observe: func(State) {},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Decode opens locator, checks that it is audio, activates a decoder when
// the stream is compressed and reads every sample until end of stream.
// Nothing is retried; the session is closed on every path.
func (p *Pipeline) Decode(ctx context.Context, locator string) (*audio.Decoded, error) {
	d, err := p.decode(ctx, locator)
	if err != nil {
		p.observe(Failed)
		p.log.Printf("decode %s: %v", locator, err)
		return nil, err
	}
	return d, nil
}

func (p *Pipeline) decode(ctx context.Context, locator string) (*audio.Decoded, error) {
	p.observe(Unopened)

	s, err := mediasource.Open(ctx, p.backend, locator, mediasource.WithLogger(p.log))
	if err != nil {
		return nil, err
	}
	defer s.Close()
	p.observe(Opened)

	native, err := s.GetNativeAudioType()
	if err != nil {
		return nil, err
	}
	if native.Major != audio.MajorAudio {
		return nil, fmt.Errorf("%w: %s has major type %s", audio.ErrNotAudioFile, locator, native.Major)
	}
	p.observe(Validated)

	if isCompressed(native) {
		if err := s.SetTargetAudioType(p.target); err != nil {
			return nil, err
		}
		p.observe(ConfiguredPCM)
	} else {
		p.observe(NativePCM)
	}

	format, err := s.GetCurrentAudioType()
	if err != nil {
		return nil, err
	}
	if err := format.Validate(); err != nil {
		return nil, err
	}

	p.observe(Extracting)
	data, err := extract(s)
	if err != nil {
		return nil, err
	}

	p.observe(Done)
	p.log.Printf("session %s: decoded %d bytes (%s, %s)", s.ID(), len(data), format, format.Duration(len(data)))

	return &audio.Decoded{Format: format, Data: data}, nil
}

// isCompressed compares the native subtype, not the major type, against
// the uncompressed layouts.
func isCompressed(mt audio.MediaType) bool {
	return !mt.Subtype.Uncompressed()
}

// extract appends every chunk in arrival order until end of stream.
func extract(s *mediasource.Session) ([]byte, error) {
	var data []byte
	for {
		chunk, eos, err := s.ReadNextSample()
		if err != nil {
			return nil, err
		}
		if eos {
			return data, nil
		}
		data = append(data, chunk...)
	}
}
