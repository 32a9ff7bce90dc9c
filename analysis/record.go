package analysis

import (
	"time"

	"github.com/Usama2015/Noise-Environment-Monitor-App/classify"
)

// FeatureRecord is one row of derived descriptors for a recording.
type FeatureRecord struct {
	AvgDB float64 `json:"avg_db"`
	MaxDB float64 `json:"max_db"`
	MinDB float64 `json:"min_db"`
	StdDB float64 `json:"std_db"`

	SpectralCentroid  float64 `json:"spectral_centroid"`
	SpectralSpread    float64 `json:"spectral_spread"`
	SpectralRolloff   float64 `json:"spectral_rolloff"`
	SpectralFlatness  float64 `json:"spectral_flatness"`
	SpectralEntropy   float64 `json:"spectral_entropy"`
	DominantFrequency float64 `json:"dominant_frequency"`
	LowFreqRatio      float64 `json:"low_freq_ratio"`
	MidFreqRatio      float64 `json:"mid_freq_ratio"`
	HighFreqRatio     float64 `json:"high_freq_ratio"`

	Label      classify.Label `json:"label"`
	Confidence float64        `json:"confidence"`
	NoiseType  string         `json:"noise_type"`
	Duration   time.Duration  `json:"duration"`

	// Degenerate marks a spectrum with no energy. Spectral values are then
	// limits of the guarded formulas, not measurements.
	Degenerate bool `json:"degenerate"`
}

var featureNames = []string{
	"avg_db",
	"max_db",
	"min_db",
	"std_db",
	"spectral_centroid",
	"spectral_spread",
	"spectral_rolloff",
	"spectral_flatness",
	"spectral_entropy",
	"dominant_frequency",
	"low_freq_ratio",
	"mid_freq_ratio",
	"high_freq_ratio",
}

// FeatureNames returns the numeric feature keys in column order.
func FeatureNames() []string {
	return append([]string(nil), featureNames...)
}

// Values returns the numeric features in FeatureNames order.
func (r FeatureRecord) Values() []float64 {
	return []float64{
		r.AvgDB,
		r.MaxDB,
		r.MinDB,
		r.StdDB,
		r.SpectralCentroid,
		r.SpectralSpread,
		r.SpectralRolloff,
		r.SpectralFlatness,
		r.SpectralEntropy,
		r.DominantFrequency,
		r.LowFreqRatio,
		r.MidFreqRatio,
		r.HighFreqRatio,
	}
}

// Map returns the numeric features keyed by name.
func (r FeatureRecord) Map() map[string]float64 {
	vals := r.Values()
	m := make(map[string]float64, len(vals))
	for i, name := range featureNames {
		m[name] = vals[i]
	}
	return m
}
