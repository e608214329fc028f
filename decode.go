// SPDX-License-Identifier: EPL-2.0

package pcmdecode

import (
	"context"
	"errors"
	"sync"

	"github.com/ik5/pcmdecode/audio"
	"github.com/ik5/pcmdecode/pipeline"
	"github.com/ik5/pcmdecode/sourcereader"
)

var (
	defaultOnce    sync.Once
	defaultRuntime *sourcereader.Runtime
)

func runtime() *sourcereader.Runtime {
	defaultOnce.Do(func() {
		defaultRuntime = sourcereader.New(sourcereader.DefaultConfig())
	})
	return defaultRuntime
}

// Decode reads the resource at locator and returns its first audio stream
// as PCM, together with the format the samples are laid out in.
//
// The shared decoding runtime is started for the duration of the call.
// Callers decoding many resources should keep their own
// sourcereader.Runtime started and use the pipeline package directly.
//
// Example:
//
//	decoded, err := pcmdecode.Decode(ctx, "speech.mp3")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(decoded.Format, decoded.Duration())
func Decode(ctx context.Context, locator string) (*audio.Decoded, error) {
	return DecodeWith(ctx, locator)
}

// DecodeWith is Decode with pipeline options.
func DecodeWith(ctx context.Context, locator string, opts ...pipeline.Option) (*audio.Decoded, error) {
	rt := runtime()
	rt.Startup()

	decoded, err := pipeline.New(rt, opts...).Decode(ctx, locator)
	if serr := rt.Shutdown(); serr != nil && err == nil {
		return nil, errors.Join(audio.ErrRead, serr)
	}

	return decoded, err
}
