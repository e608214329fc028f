// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

var (
	// ErrUnsupportedFlacLayout indicates a missing or empty STREAMINFO block
	ErrUnsupportedFlacLayout = errors.New("unsupported FLAC layout")

	// ErrUnsupportedBitDepth indicates a sample size outside 4 to 32 bits
	ErrUnsupportedBitDepth = errors.New("unsupported FLAC bit depth")

	// ErrChannelMismatch indicates a frame whose channel count differs from STREAMINFO
	ErrChannelMismatch = errors.New("FLAC frame channel mismatch")
)
