// Package dataset writes feature records as training tables (CSV or
// Parquet) and reads the labelled sample list that drives a training run.
package dataset

import (
	"errors"
	"path/filepath"

	"github.com/Usama2015/Noise-Environment-Monitor-App/analysis"
)

var (
	ErrMissingColumn = errors.New("dataset: missing column")
	ErrUnknownCodec  = errors.New("dataset: unknown compression codec")
)

// Row is one training example.
type Row struct {
	Filename string `parquet:"filename"`
	Category string `parquet:"category"`

	AvgDB             float64 `parquet:"avg_db"`
	MaxDB             float64 `parquet:"max_db"`
	MinDB             float64 `parquet:"min_db"`
	StdDB             float64 `parquet:"std_db"`
	SpectralCentroid  float64 `parquet:"spectral_centroid"`
	SpectralSpread    float64 `parquet:"spectral_spread"`
	SpectralRolloff   float64 `parquet:"spectral_rolloff"`
	SpectralFlatness  float64 `parquet:"spectral_flatness"`
	SpectralEntropy   float64 `parquet:"spectral_entropy"`
	DominantFrequency float64 `parquet:"dominant_frequency"`
	LowFreqRatio      float64 `parquet:"low_freq_ratio"`
	MidFreqRatio      float64 `parquet:"mid_freq_ratio"`
	HighFreqRatio     float64 `parquet:"high_freq_ratio"`

	Label      string  `parquet:"label"`
	Confidence float64 `parquet:"confidence"`
	NoiseType  string  `parquet:"noise_type"`
	Degenerate bool    `parquet:"degenerate"`
}

// FromRecord builds a Row. The filename is reduced to its base name.
func FromRecord(path, category string, rec analysis.FeatureRecord) Row {
	return Row{
		Filename:          filepath.Base(path),
		Category:          category,
		AvgDB:             rec.AvgDB,
		MaxDB:             rec.MaxDB,
		MinDB:             rec.MinDB,
		StdDB:             rec.StdDB,
		SpectralCentroid:  rec.SpectralCentroid,
		SpectralSpread:    rec.SpectralSpread,
		SpectralRolloff:   rec.SpectralRolloff,
		SpectralFlatness:  rec.SpectralFlatness,
		SpectralEntropy:   rec.SpectralEntropy,
		DominantFrequency: rec.DominantFrequency,
		LowFreqRatio:      rec.LowFreqRatio,
		MidFreqRatio:      rec.MidFreqRatio,
		HighFreqRatio:     rec.HighFreqRatio,
		Label:             rec.Label.String(),
		Confidence:        rec.Confidence,
		NoiseType:         rec.NoiseType,
		Degenerate:        rec.Degenerate,
	}
}

// Header returns the CSV column names in order.
func Header() []string {
	h := make([]string, 0, 2+len(analysis.FeatureNames())+4)
	h = append(h, "filename", "category")
	h = append(h, analysis.FeatureNames()...)
	return append(h, "label", "confidence", "noise_type", "degenerate")
}

func (r Row) features() []float64 {
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
