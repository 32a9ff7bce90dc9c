// Package testutil holds deterministic test signals and tolerance helpers
// shared by the package tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine is amplitude*sin(2*pi*freqHz*n/sampleRate) for n in [0, length).
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	x := make([]float64, length)
	w := 2 * math.Pi * freqHz / sampleRate

	for n := range x {
		x[n] = amplitude * math.Sin(w*float64(n))
	}

	return x
}

// DeterministicNoise is seeded uniform noise in [-amplitude, amplitude).
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	x := make([]float64, length)

	for n := range x {
		x[n] = amplitude * (2*rng.Float64() - 1)
	}

	return x
}

// DeterministicGaussianNoise is seeded zero-mean normal noise with deviation sigma.
func DeterministicGaussianNoise(seed int64, sigma float64, length int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	x := make([]float64, length)

	for n := range x {
		x[n] = sigma * rng.NormFloat64()
	}

	return x
}

// DC is a constant signal.
func DC(value float64, length int) []float64 {
	x := make([]float64, length)
	for n := range x {
		x[n] = value
	}

	return x
}

// Seconds converts a duration in seconds to a sample count, truncating.
func Seconds(d, sampleRate float64) int {
	return int(d * sampleRate)
}
