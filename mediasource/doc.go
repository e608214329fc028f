// SPDX-License-Identifier: EPL-2.0

// Package mediasource wraps a decoding backend behind a per-resource
// Session.
//
// A Backend turns a locator into a Reader; the Session adds an ID for logs,
// end-of-stream bookkeeping and error classification, so that every failure
// matches one of audio.ErrOpen, audio.ErrNoAudioStream,
// audio.ErrNotAudioFile, audio.ErrUnsupportedFormat or audio.ErrRead:
//
//	s, err := mediasource.Open(ctx, backend, "song.mp3")
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	mt, err := s.GetNativeAudioType()
//	...
//	for {
//	    chunk, eos, err := s.ReadNextSample()
//	    if err != nil {
//	        return err
//	    }
//	    if eos {
//	        break
//	    }
//	    out = append(out, chunk...)
//	}
//
// Sessions are created per resource and never reused.
package mediasource
