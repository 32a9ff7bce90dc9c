// Package time provides time-domain signal statistics and summaries of
// level series.
package time

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrEmptySeries is returned when a summary is requested for no values.
var ErrEmptySeries = errors.New("stats/time: empty series")

// RMS returns the root-mean-square of the signal, or 0 when empty.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	return math.Sqrt(floats.Dot(signal, signal) / float64(len(signal)))
}

// DC returns the mean (DC offset) of the signal.
func DC(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	return stat.Mean(signal, nil)
}

// Peak returns the peak absolute amplitude of the signal.
func Peak(signal []float64) float64 {
	var peak float64
	for _, x := range signal {
		if a := math.Abs(x); a > peak {
			peak = a
		}
	}

	return peak
}

// Summary describes a level series.
type Summary struct {
	Mean   float64
	Max    float64
	Min    float64
	StdDev float64 // population standard deviation
}

// Summarize returns the mean, extremes and population standard deviation
// of series.
func Summarize(series []float64) (Summary, error) {
	if len(series) == 0 {
		return Summary{}, ErrEmptySeries
	}

	mean, variance := stat.PopMeanVariance(series, nil)

	return Summary{
		Mean:   mean,
		Max:    floats.Max(series),
		Min:    floats.Min(series),
		StdDev: math.Sqrt(variance),
	}, nil
}
