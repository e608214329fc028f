// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MPEG-1 and
// MPEG-2 Layer III streams, with or without a leading ID3v2 tag.
//
// # Decoding MP3 Files
//
//	stream, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	defer stream.Close()
//
//	if err := stream.SetOutput(audio.SubtypePCM); err != nil {
//	    // Handle error
//	}
//	chunk, err := stream.ReadChunk()
//
// The native type of the stream is audio/mp3, so reading it before
// SetOutput fails with audio.ErrNotConfigured.
//
// # Output Format
//
//   - audio.SubtypePCM: 16-bit signed little-endian, the precision go-mp3
//     decodes at, so no information is lost
//   - audio.SubtypeFloat: 32-bit IEEE float in [-1.0, 1.0]
//   - Channels: always 2, go-mp3 duplicates mono streams
//   - Sample rate: that of the MP3 frames
//
// # Limitations
//
//   - MP3 writing is not supported (decoding only)
//   - Layer I and II are not decoded
package mp3
