// SPDX-License-Identifier: EPL-2.0

// Package audio holds the data model shared by the decoders, the media
// source session and the decode pipeline.
//
// This package contains:
//   - MediaType, Subtype and Format (the canonical format descriptor)
//   - Decoded, the result of a complete decode
//   - Stream and Decoder, implemented by the container formats
//   - Source, the float sample stream produced by codecs
//   - the decoder transform (NewCodecStream) and NewOpaqueStream
//   - Registry for decoder registration
//
// # Streams
//
// A Stream is the first audio stream of an opened container:
//
//	type Stream interface {
//	    NativeType() MediaType
//	    Format() Format
//	    SetOutput(sub Subtype) error
//	    ReadChunk() ([]byte, error)
//	    Close() error
//	}
//
// Uncompressed streams (PCM, IEEE float) emit their stored bytes directly.
// Compressed streams emit nothing until SetOutput selects SubtypePCM or
// SubtypeFloat; reading earlier fails with ErrNotConfigured.
//
// # Decoder Transform
//
// NewCodecStream turns a codec Source into a Stream:
//
//	stream := audio.NewCodecStream(src, native, 16, audio.DefaultChunkFrames)
//	if err := stream.SetOutput(audio.SubtypePCM); err != nil {
//	    return err
//	}
//	chunk, err := stream.ReadChunk()
//
// PCM output is little-endian, interleaved, at the requested bit depth
// (8-bit samples unsigned, as in WAV). Float output is 32-bit IEEE 754.
//
// # Format Registry
//
// The registry maps container keys to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, _ := registry.Get("wav")
//
// # Error Handling
//
// ReadChunk returns io.EOF when no more data is available. The error
// taxonomy of a decode (ErrOpen, ErrNoAudioStream, ErrNotAudioFile,
// ErrUnsupportedFormat, ErrRead) is defined here and matched with errors.Is:
//
//	for {
//	    chunk, err := stream.ReadChunk()
//	    if err == io.EOF {
//	        break // Normal end of stream
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    out = append(out, chunk...)
//	}
package audio
