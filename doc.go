// SPDX-License-Identifier: EPL-2.0

// Package pcmdecode decodes audio resources into raw PCM.
//
// A locator is a local path, a file:// URL or an http(s) URL. The first
// audio stream of the resource is decoded and returned as one contiguous
// buffer of interleaved little-endian samples, along with the audio.Format
// describing it.
//
// # Supported Formats
//
//   - WAV (integer PCM 8 to 32 bit, IEEE float, A-law, µ-law) via formats/wav
//   - AIFF (PCM 8, 16, 24 and 32 bit) via formats/aiff
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - FLAC via formats/flac
//
// Uncompressed streams come back in their native layout. Compressed streams
// are decoded to 16-bit PCM unless pipeline.WithTarget asks for float.
//
// # Quick Start
//
//	decoded, err := pcmdecode.Decode(ctx, "audio.ogg")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(decoded.Format.SampleRate, decoded.Frames())
//
// # Errors
//
// Failures are classified by the sentinels in the audio package and can be
// tested with errors.Is:
//
//   - audio.ErrOpen: the resource could not be opened or demuxed
//   - audio.ErrNoAudioStream: the resource has no audio stream
//   - audio.ErrNotAudioFile: the first stream is not audio
//   - audio.ErrUnsupportedFormat: no decoder produces PCM for the stream
//   - audio.ErrRead: reading samples failed
//
// # Layers
//
// The sourcereader package is the decoding runtime, mediasource wraps one of
// its readers in a session and pipeline drives a session from open to end
// of stream. Writing the result back out as WAV is done with wav.WriteWAV.
package pcmdecode
