// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio decoding.
//
// This package uses github.com/jfreymuth/oggvorbis, a pure Go decoder, for
// the first logical Vorbis stream of an Ogg file.
//
// # Decoding Ogg Vorbis Files
//
//	stream, err := vorbis.Decoder{}.Decode(file)
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
//   - audio.SubtypePCM: 16-bit signed little-endian
//   - audio.SubtypeFloat: 32-bit IEEE float, exactly as decoded
//   - Channels and sample rate: from the identification header
//
// Multi-channel streams keep the Vorbis channel order.
//
// # Limitations
//
//   - Opus, Speex and FLAC in Ogg are not handled here
package vorbis
