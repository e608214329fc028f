// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV container decoding and encoding.
//
// Chunk layout is handled by github.com/go-audio/wav; the fmt chunk is read
// directly so that block alignment and WAVE_FORMAT_EXTENSIBLE sub-formats
// are known.
//
// # Supported Formats
//
//   - PCM, 8 to 32 bits, emitted as stored
//   - IEEE float, 32 and 64 bits, emitted as stored
//   - G.711 A-law and mu-law, decoded to 16-bit PCM after SetOutput
//   - any other format tag is exposed with its subtype but cannot be decoded
//
// # Decoding WAV Files
//
//	decoder := wav.Decoder{}
//	file, _ := os.Open("audio.wav")
//	stream, err := decoder.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	chunk, err := stream.ReadChunk()
//
// Chunks hold whole frames; a trailing partial frame is dropped.
//
// # Writing WAV Files
//
//	decoded := &audio.Decoded{Format: audio.NewPCMFormat(44100, 2, 16), Data: pcm}
//	file, _ := os.Create("output.wav")
//	wav.WriteWAV(file, decoded.Format, decoded.Data)
//
// WriteWAV16 is a shortcut for mono 16-bit samples.
package wav
