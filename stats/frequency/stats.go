// Package frequency derives scalar descriptors from a one-sided magnitude
// spectrum: shape (centroid, spread, rolloff, flatness, entropy), the
// dominant frequency, and the share of energy in low/mid/high bands.
//
// Every sum and logarithm is guarded with a small epsilon so silence and
// other degenerate spectra produce finite values. Callers that need to
// tell silence apart from a real measurement check [Features.Degenerate].
package frequency

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/Usama2015/Noise-Environment-Monitor-App/dsp/core"
)

const (
	// RolloffFraction is the cumulative share that defines the rolloff
	// frequency.
	RolloffFraction = 0.85

	// DegenerateThreshold is the total magnitude at or below which a
	// spectrum is reported as degenerate.
	DegenerateThreshold = 1e-9
)

var (
	ErrEmptySpectrum  = errors.New("frequency: empty spectrum")
	ErrLengthMismatch = errors.New("frequency: frequency and magnitude lengths differ")
	ErrInvalidBands   = errors.New("frequency: band edges must satisfy 0 < low < high")
)

// Bands splits the spectrum into low [0, Low), mid [Low, High) and
// high [High, ∞) regions, in Hz.
type Bands struct {
	Low  float64
	High float64
}

// DefaultBands returns the 250 Hz / 4 kHz split.
func DefaultBands() Bands {
	return Bands{Low: 250, High: 4000}
}

// Validate reports whether the band edges are usable.
func (b Bands) Validate() error {
	if !(b.Low > 0 && b.High > b.Low) {
		return fmt.Errorf("%w: low=%v high=%v", ErrInvalidBands, b.Low, b.High)
	}
	return nil
}

// Features holds the spectral descriptors of one spectrum.
type Features struct {
	Centroid          float64 // Hz
	Spread            float64 // Hz
	Rolloff           float64 // Hz
	Flatness          float64 // 0..1
	Entropy           float64 // bits
	DominantFrequency float64 // Hz

	LowRatio  float64
	MidRatio  float64
	HighRatio float64

	// TotalMagnitude is the sum of all magnitudes.
	TotalMagnitude float64
	// Degenerate is set when TotalMagnitude <= DegenerateThreshold.
	Degenerate bool
}

// Extract computes all features with the default bands.
func Extract(freqs, mags []float64) (Features, error) {
	return ExtractWithBands(freqs, mags, DefaultBands())
}

// ExtractWithBands computes all features with custom band edges.
func ExtractWithBands(freqs, mags []float64, bands Bands) (Features, error) {
	if err := check(freqs, mags); err != nil {
		return Features{}, err
	}
	if err := bands.Validate(); err != nil {
		return Features{}, err
	}

	total := floats.Sum(mags)
	p := normalize(mags, total)
	c := centroid(freqs, p)
	low, mid, high := bandRatios(freqs, mags, total, bands)

	return Features{
		Centroid:          c,
		Spread:            spread(freqs, p, c),
		Rolloff:           rolloff(freqs, p, RolloffFraction),
		Flatness:          Flatness(mags),
		Entropy:           entropy(p),
		DominantFrequency: freqs[floats.MaxIdx(mags)],
		LowRatio:          low,
		MidRatio:          mid,
		HighRatio:         high,
		TotalMagnitude:    total,
		Degenerate:        total <= DegenerateThreshold,
	}, nil
}

// Centroid returns the magnitude-weighted mean frequency. Mismatched or
// empty inputs give 0, as do the other two-slice helpers.
func Centroid(freqs, mags []float64) float64 {
	if !paired(freqs, mags) {
		return 0
	}
	return centroid(freqs, normalize(mags, floats.Sum(mags)))
}

// Spread returns the magnitude-weighted standard deviation around the
// centroid.
func Spread(freqs, mags []float64) float64 {
	if !paired(freqs, mags) {
		return 0
	}
	p := normalize(mags, floats.Sum(mags))
	return spread(freqs, p, centroid(freqs, p))
}

// Rolloff returns the first frequency at which the cumulative normalized
// magnitude reaches fraction, or the last frequency when it never does.
func Rolloff(freqs, mags []float64, fraction float64) float64 {
	if !paired(freqs, mags) {
		return 0
	}
	return rolloff(freqs, normalize(mags, floats.Sum(mags)), fraction)
}

// Flatness returns the ratio of the geometric to the arithmetic mean of
// the magnitudes. Tones approach 0, white noise approaches 1.
func Flatness(mags []float64) float64 {
	if len(mags) == 0 {
		return 0
	}

	var logSum float64
	for _, m := range mags {
		logSum += math.Log(m + core.Epsilon)
	}

	n := float64(len(mags))
	return math.Exp(logSum/n) / (floats.Sum(mags)/n + core.Epsilon)
}

// Entropy returns the Shannon entropy, in bits, of the normalized
// magnitudes.
func Entropy(mags []float64) float64 {
	return entropy(normalize(mags, floats.Sum(mags)))
}

// DominantFrequency returns the frequency of the largest magnitude. Ties
// resolve to the lowest frequency.
func DominantFrequency(freqs, mags []float64) float64 {
	if !paired(freqs, mags) {
		return 0
	}
	return freqs[floats.MaxIdx(mags)]
}

// BandRatios returns the share of total magnitude in the low, mid and
// high bands.
func BandRatios(freqs, mags []float64, bands Bands) (low, mid, high float64) {
	if !paired(freqs, mags) {
		return 0, 0, 0
	}
	return bandRatios(freqs, mags, floats.Sum(mags), bands)
}

func paired(freqs, mags []float64) bool {
	return len(mags) > 0 && len(freqs) == len(mags)
}

func check(freqs, mags []float64) error {
	if len(mags) == 0 {
		return ErrEmptySpectrum
	}
	if len(freqs) != len(mags) {
		return fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(freqs), len(mags))
	}
	return nil
}

func normalize(mags []float64, total float64) []float64 {
	p := make([]float64, len(mags))
	floats.ScaleTo(p, 1/(total+core.Epsilon), mags)
	return p
}

func centroid(freqs, p []float64) float64 {
	return floats.Dot(freqs, p)
}

func spread(freqs, p []float64, c float64) float64 {
	var v float64
	for i, f := range freqs {
		d := f - c
		v += d * d * p[i]
	}
	return math.Sqrt(v)
}

func rolloff(freqs, p []float64, fraction float64) float64 {
	var cum float64
	for i, v := range p {
		cum += v
		if cum >= fraction {
			return freqs[i]
		}
	}
	return freqs[len(freqs)-1]
}

func entropy(p []float64) float64 {
	var h float64
	for _, v := range p {
		h -= v * math.Log2(v+core.Epsilon)
	}
	return h
}

func bandRatios(freqs, mags []float64, total float64, bands Bands) (low, mid, high float64) {
	for i, f := range freqs {
		switch {
		case f < bands.Low:
			low += mags[i]
		case f < bands.High:
			mid += mags[i]
		default:
			high += mags[i]
		}
	}

	d := total + core.Epsilon
	return low / d, mid / d, high / d
}
