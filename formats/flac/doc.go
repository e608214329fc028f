// SPDX-License-Identifier: EPL-2.0

// Package flac provides native FLAC decoding.
//
// This package uses github.com/mewkiz/flac to parse the stream and decode
// its frames.
//
// # Decoding FLAC Files
//
//	stream, err := flac.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	defer stream.Close()
//
//	if err := stream.SetOutput(audio.SubtypePCM); err != nil {
//	    // Handle error
//	}
//
// # Output Format
//
//   - audio.SubtypePCM: signed little-endian at the STREAMINFO bit depth,
//     rounded up to whole bytes with the samples left aligned
//   - audio.SubtypeFloat: 32-bit IEEE float in [-1.0, 1.0)
//
// Samples go through float32 on their way out, which is exact up to 24 bits.
//
// FLAC inside Ogg is not handled by this package.
package flac
