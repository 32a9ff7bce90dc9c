package audiofile

import (
	"fmt"
	"io"
	"math"

	"github.com/go-audio/wav"
)

// WAVE format tags from the fmt chunk.
const (
	wavFormatPCM        = 1
	wavFormatFloat      = 3
	wavFormatExtensible = 0xFFFE
)

func decodeWAV(r io.ReadSeeker) (pcm, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return pcm{}, fmt.Errorf("%w: not a readable WAV file", ErrInvalidFile)
	}

	depth := int(dec.BitDepth)
	isFloat := false

	switch dec.WavAudioFormat {
	case wavFormatPCM:
	case wavFormatFloat:
		if depth != 32 {
			return pcm{}, fmt.Errorf("%w: %d-bit float WAV", ErrUnsupportedFormat, depth)
		}
		isFloat = true
	case wavFormatExtensible:
		// The sub-format GUID is not exposed, so only integer-only depths
		// are unambiguous.
		if depth > 24 {
			return pcm{}, fmt.Errorf("%w: %d-bit extensible WAV", ErrUnsupportedFormat, depth)
		}
	default:
		return pcm{}, fmt.Errorf("%w: WAV format tag %d", ErrUnsupportedFormat, dec.WavAudioFormat)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return pcm{}, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	if buf.SourceBitDepth != 0 {
		depth = buf.SourceBitDepth
	}
	if depth <= 0 || depth > 32 {
		return pcm{}, fmt.Errorf("%w: bit depth %d", ErrInvalidFile, depth)
	}

	data := make([]float64, len(buf.Data))

	if isFloat {
		// The decoder stores each 32-bit word sign-extended; the low 32 bits
		// are the IEEE 754 pattern.
		for i, v := range buf.Data {
			data[i] = float64(math.Float32frombits(uint32(v)))
		}
	} else {
		// 8-bit WAV is unsigned.
		var offset float64
		if depth == 8 {
			offset = 128
		}
		scale := 1 / float64(int64(1)<<(depth-1))

		for i, v := range buf.Data {
			data[i] = (float64(v) - offset) * scale
		}
	}

	return pcm{
		data:     data,
		rate:     int(dec.SampleRate),
		channels: int(dec.NumChans),
	}, nil
}
