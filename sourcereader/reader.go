// SPDX-License-Identifier: EPL-2.0

package sourcereader

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/ik5/pcmdecode/audio"
)

// reader implements mediasource.Reader over one resolved resource.
type reader struct {
	rt      *Runtime
	locator string
	res     *resource
	c       container
	// stream is nil when the resource carries no audio stream
	stream audio.Stream

	once     sync.Once
	closeErr error
}

func (r *reader) NativeAudioType() (audio.MediaType, error) {
	if r.c.noAudio {
		return audio.MediaType{}, fmt.Errorf("%w: %s", audio.ErrNoAudioStream, r.locator)
	}
	if r.stream == nil {
		return audio.MediaType{Major: r.c.major, Subtype: audio.SubtypeUnknown}, nil
	}
	return r.stream.NativeType(), nil
}

func (r *reader) CurrentAudioType() (audio.Format, error) {
	if r.stream == nil {
		return audio.Format{}, fmt.Errorf("%w: %s", audio.ErrNoAudioStream, r.locator)
	}
	return r.stream.Format(), nil
}

func (r *reader) SetTargetAudioType(sub audio.Subtype) error {
	if r.stream == nil {
		return fmt.Errorf("%w: %s", audio.ErrNoAudioStream, r.locator)
	}
	return r.stream.SetOutput(sub)
}

func (r *reader) ReadNextSample() ([]byte, bool, error) {
	if r.stream == nil {
		return nil, false, fmt.Errorf("%w: %s", audio.ErrNoAudioStream, r.locator)
	}

	chunk, err := r.stream.ReadChunk()
	switch {
	case err == io.EOF:
		return nil, true, nil
	case errors.Is(err, audio.ErrNotConfigured):
		return nil, false, err
	case err != nil:
		return nil, false, fmt.Errorf("%w: %s: %w", audio.ErrRead, r.locator, err)
	}

	return chunk, false, nil
}

func (r *reader) describe() string {
	if r.stream == nil {
		return string(r.c.major)
	}
	return r.stream.NativeType().String()
}

func (r *reader) Close() error {
	r.once.Do(func() {
		var errs []error
		if r.stream != nil {
			errs = append(errs, r.stream.Close())
		}
		errs = append(errs, r.res.Close())
		r.closeErr = errors.Join(errs...)

		r.rt.forget(r)
	})
	return r.closeErr
}
