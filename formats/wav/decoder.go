// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"
	"github.com/ik5/pcmdecode/audio"
	"github.com/ik5/pcmdecode/internal/g711"
	"github.com/ik5/pcmdecode/internal/seekable"
)

// pcmStream emits the data chunk of an uncompressed WAV as is.
type pcmStream struct {
	r      io.Reader
	format audio.Format
	buf    []byte
	eof    bool
}

func (s *pcmStream) NativeType() audio.MediaType {
	return audio.MediaType{Major: audio.MajorAudio, Subtype: s.format.Subtype}
}

func (s *pcmStream) Format() audio.Format { return s.format.Clone() }
func (s *pcmStream) Close() error         { return nil }

func (s *pcmStream) SetOutput(sub audio.Subtype) error {
	if sub != s.format.Subtype {
		return fmt.Errorf("%w: no %s to %s transform", audio.ErrUnsupportedFormat, s.format.Subtype, sub)
	}
	return nil
}

func (s *pcmStream) ReadChunk() ([]byte, error) {
	if s.eof {
		return nil, io.EOF
	}

	n, err := io.ReadFull(s.r, s.buf)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		// Partial chunk at the end of the data
		s.eof = true
	} else if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	// drop a trailing partial frame
	n -= n % s.format.BlockAlign
	if n == 0 && s.eof {
		return nil, io.EOF
	}

	return s.buf[:n], nil
}

// Decoder opens WAV containers. PCM and IEEE float data is emitted as
// stored, G.711 goes through the decoder transform, any other codec is
// exposed but cannot be decoded.
type Decoder struct {
	// ChunkFrames is the number of frames per chunk; 0 means audio.DefaultChunkFrames.
	ChunkFrames int
}

func (d Decoder) Decode(r io.Reader) (audio.Stream, error) {
	rs, err := seekable.Reader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	fc, err := readFmtChunk(rs)
	if err != nil {
		return nil, err
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	dec := gowav.NewDecoder(rs)
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}

	if dec.NumChans < 1 || dec.SampleRate == 0 || fc.blockAlign < 1 {
		return nil, ErrUnsupportedWavLayout
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavChunks, err)
	}
	if dec.PCMChunk == nil {
		return nil, fmt.Errorf("%w: no data chunk", ErrUnsupportedWavChunks)
	}

	// go-audio counts the pad byte of an odd sized data chunk
	size := fc.dataSize
	if chunk := int64(dec.PCMChunk.Size); chunk > 0 && chunk < size {
		size = chunk
	}
	data := io.LimitReader(dec.PCMChunk.R, size)

	frames := d.ChunkFrames
	if frames <= 0 {
		frames = audio.DefaultChunkFrames
	}

	native := fc.format()

	switch native.Subtype {
	case audio.SubtypePCM, audio.SubtypeFloat:
		if err := native.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedBitDepth, err)
		}

		return &pcmStream{
			r:      data,
			format: native,
			buf:    make([]byte, frames*native.BlockAlign),
		}, nil

	case audio.SubtypeALaw, audio.SubtypeMuLaw:
		if native.BitsPerSample != 8 {
			return nil, ErrUnsupportedBitDepth
		}

		src, err := g711.NewSource(data, native.Subtype, native.SampleRate, native.Channels)
		if err != nil {
			return nil, err
		}
		return audio.NewCodecStream(src, native, 16, frames), nil
	}

	return audio.NewOpaqueStream(native, nil), nil
}
