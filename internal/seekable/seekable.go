// SPDX-License-Identifier: EPL-2.0

// Package seekable adapts plain readers for decoders that need to seek.
package seekable

import (
	"bytes"
	"fmt"
	"io"
)

// Reader returns r itself when it can seek, otherwise r's remaining
// content buffered in memory.
func Reader(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering input: %w", err)
	}

	return bytes.NewReader(data), nil
}
