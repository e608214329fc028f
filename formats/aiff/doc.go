// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff to decode AIFF files.
// AIFF is Apple's standard audio file format, commonly used on macOS.
//
// # Supported Formats
//
//   - AIFF and AIFF-C
//   - PCM 8, 16, 24 and 32 bit, big-endian (NONE, twos, in24, in32) or
//     little-endian (sowt)
//   - 32 and 64 bit IEEE float (fl32, fl64)
//   - G.711 mu-law and A-law (ulaw, alaw)
//   - Mono and multi-channel
//   - Any sample rate
//
// # Decoding AIFF Files
//
//	stream, err := aiff.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	defer stream.Close()
//
//	chunk, err := stream.ReadChunk()
//
// AIFF stores big-endian samples. The stream re-packs them as interleaved
// little-endian PCM at the file's own bit depth, so its native type is
// already audio/pcm and no decoder transform is needed. 8-bit samples are
// emitted unsigned, like WAV.
//
// Float AIFF-C data is byte-swapped and reported as audio/float. G.711 data
// has a compressed native type and decodes to 16-bit PCM once the output is
// set. Any other compression type, such as ima4, opens with its native type
// and the four character code in Format().Extra, but cannot be decoded.
//
// # Error Handling
//
// Decode returns ErrNotAiffFile for content go-audio cannot parse or an
// AIFF-C with no SSND chunk,
// ErrUnsupportedBitDepth for sample sizes it cannot re-pack and
// ErrUnsupportedAiffLayout when the COMM chunk describes no channels or
// no sample rate.
package aiff
