// SPDX-License-Identifier: EPL-2.0

// Package pipeline turns a resource locator into decoded PCM.
//
// A decode walks these states:
//
//	Unopened → Opened → Validated → (ConfiguredPCM | NativePCM) → Extracting → Done
//
// Validation rejects resources whose first stream is not audio with
// audio.ErrNotAudioFile. Streams whose native subtype is PCM or IEEE float
// are read as they are; any other subtype is compressed and a decoder
// transform is requested first. The descriptor returned with the samples is
// the one the backend reports after that step, so it reflects the actual
// decoded layout.
//
//	rt := sourcereader.New(sourcereader.DefaultConfig())
//	rt.Startup()
//	defer rt.Shutdown()
//
//	decoded, err := pipeline.New(rt).Decode(ctx, "song.ogg")
//	if errors.Is(err, audio.ErrUnsupportedFormat) {
//	    // no decoder for this codec
//	}
//
// Every error is terminal for the call and no partial result is returned.
package pipeline
