// Package analysis turns one mono recording into a feature record: level
// statistics of the smoothed loudness series, spectral descriptors of the
// whole recording, and a noise category.
//
// The loudness and spectral branches share no state and run concurrently.
// Neither writes to the input samples.
package analysis

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Usama2015/Noise-Environment-Monitor-App/dsp/core"
	"github.com/Usama2015/Noise-Environment-Monitor-App/dsp/smooth"
	"github.com/Usama2015/Noise-Environment-Monitor-App/dsp/spectrum"
	"github.com/Usama2015/Noise-Environment-Monitor-App/measure/loudness"
	frequencystats "github.com/Usama2015/Noise-Environment-Monitor-App/stats/frequency"
	timestats "github.com/Usama2015/Noise-Environment-Monitor-App/stats/time"
)

var (
	// ErrInvalidInput is returned for empty input or unusable parameters.
	ErrInvalidInput = errors.New("analysis: invalid input")
	// ErrEmptyInput is returned when a derived series has no values.
	ErrEmptyInput = errors.New("analysis: empty derived series")
)

// Result is the outcome of one analysis with the intermediates a plotting
// caller needs.
type Result struct {
	Record   FeatureRecord
	Loudness []float64 // raw per-window levels in dB
	Smoothed []float64
	Spectrum spectrum.Spectrum
}

// Analyze runs the pipeline with the given options.
func Analyze(samples []float64, opts ...Option) (Result, error) {
	return AnalyzeWithConfig(samples, ApplyOptions(opts...))
}

// AnalyzeWithConfig runs the pipeline with an explicit configuration.
// samples is only read.
func AnalyzeWithConfig(samples []float64, cfg Config) (Result, error) {
	if len(samples) == 0 {
		return Result{}, fmt.Errorf("%w: no samples", ErrInvalidInput)
	}
	for i, v := range samples {
		if !core.IsFinite(v) {
			return Result{}, fmt.Errorf("%w: sample %d is %v", ErrInvalidInput, i, v)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	var (
		wg      sync.WaitGroup
		spec    spectrum.Spectrum
		feats   frequencystats.Features
		specErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		spec, feats, specErr = spectralBranch(samples, cfg)
	}()

	levels, smoothed, summary, levelErr := loudnessBranch(samples, cfg)
	wg.Wait()

	if levelErr != nil {
		return Result{}, levelErr
	}
	if specErr != nil {
		return Result{}, specErr
	}

	verdict := cfg.Thresholds.ClassifyEnhanced(summary.Mean, feats)

	return Result{
		Record: FeatureRecord{
			AvgDB:             summary.Mean,
			MaxDB:             summary.Max,
			MinDB:             summary.Min,
			StdDB:             summary.StdDev,
			SpectralCentroid:  feats.Centroid,
			SpectralSpread:    feats.Spread,
			SpectralRolloff:   feats.Rolloff,
			SpectralFlatness:  feats.Flatness,
			SpectralEntropy:   feats.Entropy,
			DominantFrequency: feats.DominantFrequency,
			LowFreqRatio:      feats.LowRatio,
			MidFreqRatio:      feats.MidRatio,
			HighFreqRatio:     feats.HighRatio,
			Label:             verdict.Label,
			Confidence:        verdict.Confidence,
			NoiseType:         verdict.NoiseType,
			Duration:          duration(len(samples), cfg.SampleRate),
			Degenerate:        feats.Degenerate,
		},
		Loudness: levels,
		Smoothed: smoothed,
		Spectrum: spec,
	}, nil
}

func loudnessBranch(samples []float64, cfg Config) (levels, smoothed []float64, s timestats.Summary, err error) {
	levels, err = loudness.SeriesWithConfig(samples, loudness.Config{
		WindowSize:          cfg.LoudnessWindow,
		CalibrationOffsetDB: cfg.CalibrationOffsetDB,
	})
	if err != nil {
		return nil, nil, s, stageError(err)
	}

	if cfg.CompensateEdges {
		smoothed = smooth.MovingAverageCompensated(levels, cfg.SmoothingWindow)
	} else {
		smoothed = smooth.MovingAverage(levels, cfg.SmoothingWindow)
	}

	s, err = timestats.Summarize(smoothed)
	if err != nil {
		return nil, nil, s, stageError(err)
	}

	return levels, smoothed, s, nil
}

func spectralBranch(samples []float64, cfg Config) (spectrum.Spectrum, frequencystats.Features, error) {
	spec, err := spectrum.Transform(samples, float64(cfg.SampleRate), cfg.FFTSize)
	if err != nil {
		return spectrum.Spectrum{}, frequencystats.Features{}, stageError(err)
	}

	feats, err := frequencystats.ExtractWithBands(spec.Frequencies, spec.Magnitudes, cfg.Bands)
	if err != nil {
		return spec, feats, stageError(err)
	}

	return spec, feats, nil
}

// stageError maps a stage failure onto the package errors. The empty-series
// cases cannot occur with a validated config and non-empty input, since
// loudness pads to one window; they are mapped for stages used on their own.
func stageError(err error) error {
	switch {
	case errors.Is(err, loudness.ErrEmptySeries),
		errors.Is(err, timestats.ErrEmptySeries),
		errors.Is(err, frequencystats.ErrEmptySpectrum):
		return fmt.Errorf("%w: %w", ErrEmptyInput, err)
	default:
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
}

func duration(n, sampleRate int) time.Duration {
	return time.Duration(float64(n) / float64(sampleRate) * float64(time.Second))
}
