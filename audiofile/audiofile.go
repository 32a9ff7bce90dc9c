// Package audiofile decodes recordings into mono float64 samples at the
// analysis sample rate.
//
// WAV, MP3 and Ogg Vorbis are supported. Multi-channel audio is mixed to
// mono by averaging the channels, and audio at another rate is converted
// with [resample.ToRate].
package audiofile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Usama2015/Noise-Environment-Monitor-App/dsp/resample"
)

var (
	ErrUnsupportedFormat = errors.New("audiofile: unsupported format")
	ErrInvalidFile       = errors.New("audiofile: invalid file")
	ErrNoSamples         = errors.New("audiofile: no samples")
)

// Format identifies a container/codec.
type Format int

const (
	FormatUnknown Format = iota
	FormatWAV
	FormatMP3
	FormatOgg
)

func (f Format) String() string {
	switch f {
	case FormatWAV:
		return "wav"
	case FormatMP3:
		return "mp3"
	case FormatOgg:
		return "ogg"
	default:
		return "unknown"
	}
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return FormatWAV
	case ".mp3":
		return FormatMP3
	case ".ogg", ".oga":
		return FormatOgg
	default:
		return FormatUnknown
	}
}

// Clip is a decoded mono recording.
type Clip struct {
	Samples    []float64
	SampleRate int

	// SourceRate and SourceChannels describe the file before mixing and
	// resampling.
	SourceRate     int
	SourceChannels int
}

// Duration returns the length of the clip.
func (c Clip) Duration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(c.Samples)) / float64(c.SampleRate) * float64(time.Second))
}

// Load decodes the file at path. A targetRate of 0 keeps the file's rate.
func Load(path string, targetRate int) (Clip, error) {
	format := FormatFromPath(path)
	if format == FormatUnknown {
		return Clip{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return Clip{}, fmt.Errorf("audiofile: open %s: %w", path, err)
	}
	defer f.Close()

	clip, err := Decode(f, format, targetRate)
	if err != nil {
		return Clip{}, fmt.Errorf("%s: %w", path, err)
	}

	return clip, nil
}

// Decode reads a whole stream of the given format.
func Decode(r io.ReadSeeker, format Format, targetRate int) (Clip, error) {
	if targetRate < 0 {
		return Clip{}, fmt.Errorf("%w: %d", resample.ErrInvalidRate, targetRate)
	}

	var (
		p   pcm
		err error
	)

	switch format {
	case FormatWAV:
		p, err = decodeWAV(r)
	case FormatMP3:
		p, err = decodeMP3(r)
	case FormatOgg:
		p, err = decodeOgg(r)
	default:
		return Clip{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return Clip{}, err
	}

	if p.channels <= 0 || p.rate <= 0 {
		return Clip{}, fmt.Errorf("%w: %d channels at %d Hz", ErrInvalidFile, p.channels, p.rate)
	}

	mono := Mixdown(p.data, p.channels)
	if len(mono) == 0 {
		return Clip{}, ErrNoSamples
	}

	clip := Clip{
		Samples:        mono,
		SampleRate:     p.rate,
		SourceRate:     p.rate,
		SourceChannels: p.channels,
	}

	if targetRate > 0 && targetRate != p.rate {
		clip.Samples, err = resample.ToRate(mono, float64(p.rate), float64(targetRate))
		if err != nil {
			return Clip{}, err
		}
		clip.SampleRate = targetRate
	}

	return clip, nil
}

// pcm is interleaved audio normalised to [-1, 1).
type pcm struct {
	data     []float64
	rate     int
	channels int
}

// Mixdown averages interleaved frames into one channel. A trailing partial
// frame is dropped.
func Mixdown(interleaved []float64, channels int) []float64 {
	if channels <= 1 {
		return append([]float64(nil), interleaved...)
	}

	frames := len(interleaved) / channels
	out := make([]float64, frames)
	scale := 1 / float64(channels)

	for i := range out {
		var sum float64
		for _, v := range interleaved[i*channels : (i+1)*channels] {
			sum += v
		}
		out[i] = sum * scale
	}

	return out
}
