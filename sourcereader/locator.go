// SPDX-License-Identifier: EPL-2.0

package sourcereader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/ik5/pcmdecode/audio"
)

// resource is a resolved locator: seekable content plus the handle that
// has to be released.
type resource struct {
	rs io.ReadSeeker
	c  io.Closer
}

func (r *resource) Read(p []byte) (int, error)                { return r.rs.Read(p) }
func (r *resource) Seek(off int64, whence int) (int64, error) { return r.rs.Seek(off, whence) }

func (r *resource) Close() error {
	if r.c == nil {
		return nil
	}
	return r.c.Close()
}

// resolve turns a locator into a resource. Plain paths and file:// URLs are
// opened from disk, http and https URLs are fetched and buffered.
func (rt *Runtime) resolve(ctx context.Context, locator string) (*resource, error) {
	if u, err := url.Parse(locator); err == nil {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return rt.fetch(ctx, locator)
		case "file":
			return openFile(u.Path)
		}
	}

	return openFile(locator)
}

func openFile(path string) (*resource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrOpen, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %w", audio.ErrOpen, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", audio.ErrOpen, path)
	}

	return &resource{rs: f, c: f}, nil
}

func (rt *Runtime) fetch(ctx context.Context, locator string) (*resource, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrOpen, err)
	}

	resp, err := rt.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch HTTP resource: %w", audio.ErrOpen, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP error: %s", audio.ErrOpen, resp.Status)
	}

	limit := rt.cfg.MaxRemoteBytes
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrOpen, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", audio.ErrOpen, locator, limit)
	}

	rt.log.Printf("fetched %s (%d bytes, %s)", locator, len(data), resp.Header.Get("Content-Type"))
	return &resource{rs: bytes.NewReader(data)}, nil
}
