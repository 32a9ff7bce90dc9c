package analysis

import (
	"fmt"

	"github.com/Usama2015/Noise-Environment-Monitor-App/classify"
	"github.com/Usama2015/Noise-Environment-Monitor-App/dsp/core"
	"github.com/Usama2015/Noise-Environment-Monitor-App/dsp/smooth"
	"github.com/Usama2015/Noise-Environment-Monitor-App/dsp/spectrum"
	"github.com/Usama2015/Noise-Environment-Monitor-App/measure/loudness"
	frequencystats "github.com/Usama2015/Noise-Environment-Monitor-App/stats/frequency"
)

// Config holds every parameter of one analysis run.
type Config struct {
	SampleRate          int
	LoudnessWindow      int
	SmoothingWindow     int
	FFTSize             int
	CalibrationOffsetDB float64
	Thresholds          classify.Thresholds
	Bands               frequencystats.Bands

	// CompensateEdges averages only the samples inside the series at its
	// edges instead of treating the outside as zeros. Off by default so
	// levels match recordings labelled with the zero-padded smoother.
	CompensateEdges bool
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the 44.1 kHz defaults.
func DefaultConfig() Config {
	return Config{
		SampleRate:          int(core.DefaultSampleRate),
		LoudnessWindow:      loudness.DefaultWindowSize,
		SmoothingWindow:     smooth.DefaultWindow,
		FFTSize:             spectrum.DefaultFFTSize,
		CalibrationOffsetDB: loudness.CalibrationOffsetDB,
		Thresholds:          classify.DefaultThresholds(),
		Bands:               frequencystats.DefaultBands(),
	}
}

// WithSampleRate sets the sample rate of the input in Hz.
func WithSampleRate(sr int) Option {
	return func(cfg *Config) {
		cfg.SampleRate = sr
	}
}

// WithLoudnessWindow sets the loudness window in samples.
func WithLoudnessWindow(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.LoudnessWindow = n
		}
	}
}

// WithSmoothingWindow sets the moving-average length in windows.
func WithSmoothingWindow(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.SmoothingWindow = n
		}
	}
}

// WithFFTSize sets the transform length.
func WithFFTSize(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.FFTSize = n
		}
	}
}

// WithCalibrationOffset sets the dB offset applied to every level.
func WithCalibrationOffset(db float64) Option {
	return func(cfg *Config) {
		cfg.CalibrationOffsetDB = db
	}
}

// WithThresholds sets the classification boundaries.
func WithThresholds(t classify.Thresholds) Option {
	return func(cfg *Config) {
		cfg.Thresholds = t
	}
}

// WithBands sets the low/mid/high band edges.
func WithBands(b frequencystats.Bands) Option {
	return func(cfg *Config) {
		cfg.Bands = b
	}
}

// WithEdgeCompensation enables the edge-aware smoother.
func WithEdgeCompensation() Option {
	return func(cfg *Config) {
		cfg.CompensateEdges = true
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// Validate reports the first unusable parameter.
func (c Config) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrInvalidInput, c.SampleRate)
	case c.LoudnessWindow < 2:
		return fmt.Errorf("%w: loudness window %d", ErrInvalidInput, c.LoudnessWindow)
	case c.SmoothingWindow < 1:
		return fmt.Errorf("%w: smoothing window %d", ErrInvalidInput, c.SmoothingWindow)
	case c.FFTSize < 2:
		return fmt.Errorf("%w: fft size %d", ErrInvalidInput, c.FFTSize)
	case !core.IsFinite(c.CalibrationOffsetDB):
		return fmt.Errorf("%w: calibration offset %v", ErrInvalidInput, c.CalibrationOffsetDB)
	case c.Thresholds.NormalUpper < c.Thresholds.QuietUpper:
		return fmt.Errorf("%w: thresholds %v/%v", ErrInvalidInput, c.Thresholds.QuietUpper, c.Thresholds.NormalUpper)
	}

	if err := c.Bands.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return nil
}
