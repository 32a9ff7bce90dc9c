// Package loudness measures the level of a signal over half-overlapping
// windows, in decibels relative to an assumed calibration point.
package loudness

import (
	"errors"
	"fmt"

	"github.com/Usama2015/Noise-Environment-Monitor-App/dsp/core"
	timestats "github.com/Usama2015/Noise-Environment-Monitor-App/stats/time"
)

var (
	// ErrEmptySeries is returned when no complete window fits the input.
	ErrEmptySeries = errors.New("loudness: no windows")
	// ErrInvalidWindow is returned for window sizes below 2.
	ErrInvalidWindow = errors.New("loudness: window size must be >= 2")
)

// Level converts a window RMS to dB with the given offset:
// 20*log10(rms+1e-10) + offset.
func Level(rms, offsetDB float64) float64 {
	return core.GuardedDB(rms) + offsetDB
}

// Series returns one level per window.
//
// Inputs shorter than the window are zero-padded to one window. Windows
// advance by half a window; there are len/(W/2)-1 of them and a window
// that would run past the end is dropped.
func Series(samples []float64, opts ...Option) ([]float64, error) {
	return SeriesWithConfig(samples, ApplyOptions(opts...))
}

// SeriesWithConfig is Series with an explicit configuration.
func SeriesWithConfig(samples []float64, cfg Config) ([]float64, error) {
	w := cfg.WindowSize
	if w < 2 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindow, w)
	}

	if len(samples) < w {
		padded := make([]float64, w)
		copy(padded, samples)
		samples = padded
	}

	hop := w / 2
	count := len(samples)/hop - 1

	levels := make([]float64, 0, max(count, 0))
	for i := range count {
		start := i * hop
		if start+w > len(samples) {
			break
		}
		levels = append(levels, Level(timestats.RMS(samples[start:start+w]), cfg.CalibrationOffsetDB))
	}

	// Unreachable after padding with w >= 2; kept so callers can rely on a
	// non-empty result.
	if len(levels) == 0 {
		return nil, ErrEmptySeries
	}

	return levels, nil
}
