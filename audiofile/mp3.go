package audiofile

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
)

// go-mp3 always produces 16-bit little-endian stereo.
const mp3Channels = 2

func decodeMP3(r io.Reader) (pcm, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return pcm{}, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return pcm{}, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	data := make([]float64, len(raw)/2)
	for i := range data {
		data[i] = float64(int16(binary.LittleEndian.Uint16(raw[2*i:]))) / 32768
	}

	return pcm{
		data:     data,
		rate:     dec.SampleRate(),
		channels: mp3Channels,
	}, nil
}
