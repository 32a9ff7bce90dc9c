// Package core holds the numeric constants and helpers shared by the
// analysis stages.
package core

import "math"

// DefaultSampleRate is the rate recordings are resampled to before analysis.
const DefaultSampleRate = 44100

// Epsilon is added to the operand of every logarithm and ratio in the
// feature pipeline, so silent input yields finite limit values.
const Epsilon = 1e-10

// GuardedDB returns 20*log10(linear+Epsilon). Zero maps to -200 dB.
func GuardedDB(linear float64) float64 {
	return 20 * math.Log10(linear+Epsilon)
}

// DBToLinear inverts the 20*log10 amplitude convention.
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// IsFinite reports whether x is neither NaN nor an infinity.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
