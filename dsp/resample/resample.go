package resample

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidRatio indicates an invalid up/down ratio.
	ErrInvalidRatio = errors.New("resample: invalid ratio")
	// ErrInvalidRate indicates an invalid input/output sample rate.
	ErrInvalidRate = errors.New("resample: invalid sample rate")
)

// Quality selects the anti-aliasing filter length.
type Quality int

const (
	QualityFast Quality = iota
	QualityBalanced
	QualityBest
)

func (q Quality) tapsPerPhase() int {
	switch q {
	case QualityFast:
		return 16
	case QualityBest:
		return 64
	default:
		return 32
	}
}

func (q Quality) kaiserBeta() float64 {
	switch q {
	case QualityFast:
		return 5
	case QualityBest:
		return 9
	default:
		return 7.5
	}
}

type config struct {
	quality      Quality
	tapsPerPhase int
	cutoffScale  float64
	maxDen       int
}

// Option configures a Converter.
type Option func(*config)

// WithQuality selects a predefined filter length.
func WithQuality(q Quality) Option {
	return func(cfg *config) {
		if q >= QualityFast && q <= QualityBest {
			cfg.quality = q
		}
	}
}

// WithTapsPerPhase overrides the taps per polyphase branch.
func WithTapsPerPhase(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.tapsPerPhase = n
		}
	}
}

// WithMaxDenominator caps the denominator when approximating a rate ratio.
func WithMaxDenominator(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.maxDen = n
		}
	}
}

func newConfig(opts []Option) config {
	cfg := config{
		quality:     QualityBalanced,
		cutoffScale: 0.92,
		maxDen:      4096,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.tapsPerPhase <= 0 {
		cfg.tapsPerPhase = cfg.quality.tapsPerPhase()
	}

	return cfg
}

// Converter performs streaming rational sample-rate conversion.
type Converter struct {
	up, down int

	phases     [][]float64
	maxPhaseLn int
	delay      float64

	phase      int
	inputIndex int
	totalIn    int
	history    []float64
}

// NewRational creates a converter for ratio up/down. The ratio is reduced.
func NewRational(up, down int, opts ...Option) (*Converter, error) {
	if up <= 0 || down <= 0 {
		return nil, fmt.Errorf("%w: %d/%d", ErrInvalidRatio, up, down)
	}

	g := gcd(up, down)
	up /= g
	down /= g

	cfg := newConfig(opts)

	taps, err := designLowpass(up, down, cfg)
	if err != nil {
		return nil, err
	}

	phases, maxLn := splitPhases(taps, up)

	return &Converter{
		up:         up,
		down:       down,
		phases:     phases,
		maxPhaseLn: maxLn,
		delay:      0.5 * float64(len(taps)-1),
		history:    make([]float64, 0, max(0, maxLn-1)),
	}, nil
}

// NewForRates creates a converter from inRate to outRate.
func NewForRates(inRate, outRate float64, opts ...Option) (*Converter, error) {
	if !validRate(inRate) || !validRate(outRate) {
		return nil, fmt.Errorf("%w: %v -> %v", ErrInvalidRate, inRate, outRate)
	}

	up, down := approximateRatio(outRate/inRate, newConfig(opts).maxDen)

	return NewRational(up, down, opts...)
}

// ToRate converts a complete signal from inRate to outRate.
//
// The result has ceil(len(input)*outRate/inRate) samples and is aligned
// with the input. Equal rates return a copy.
func ToRate(input []float64, inRate, outRate float64, opts ...Option) ([]float64, error) {
	if !validRate(inRate) || !validRate(outRate) {
		return nil, fmt.Errorf("%w: %v -> %v", ErrInvalidRate, inRate, outRate)
	}

	if inRate == outRate {
		return append([]float64(nil), input...), nil
	}

	if len(input) == 0 {
		return nil, nil
	}

	c, err := NewForRates(inRate, outRate, opts...)
	if err != nil {
		return nil, err
	}

	want := int(math.Ceil(float64(len(input)) * float64(c.up) / float64(c.down)))
	skip := int(math.Round(c.delay / float64(c.down)))

	out := c.Process(input)
	out = append(out, c.Process(make([]float64, int(math.Ceil(c.delay/float64(c.up)))+1))...)

	if skip > len(out) {
		skip = len(out)
	}
	out = out[skip:]

	if len(out) > want {
		out = out[:want]
	}
	for len(out) < want {
		out = append(out, 0)
	}

	return out, nil
}

// Reset clears filter state.
func (c *Converter) Reset() {
	c.phase = 0
	c.inputIndex = 0
	c.totalIn = 0
	c.history = c.history[:0]
}

// Process converts a block and keeps filter state for the next call.
func (c *Converter) Process(input []float64) []float64 {
	if len(input) == 0 {
		return nil
	}

	out := make([]float64, 0, c.outputLen(len(input)))

	work := make([]float64, len(c.history)+len(input))
	copy(work, c.history)
	copy(work[len(c.history):], input)

	base := c.totalIn - len(c.history)
	last := c.totalIn + len(input) - 1

	for c.inputIndex <= last {
		var y float64

		for k, h := range c.phases[c.phase] {
			idx := c.inputIndex - k
			if idx < base {
				break
			}
			y += h * work[idx-base]
		}

		out = append(out, y)

		c.phase += c.down
		c.inputIndex += c.phase / c.up
		c.phase %= c.up
	}

	c.totalIn += len(input)

	keep := min(max(0, c.maxPhaseLn-1), len(work))
	c.history = append(c.history[:0], work[len(work)-keep:]...)

	return out
}

func (c *Converter) outputLen(n int) int {
	last := c.totalIn + n - 1
	i, phase := c.inputIndex, c.phase

	count := 0
	for i <= last {
		count++
		phase += c.down
		i += phase / c.up
		phase %= c.up
	}

	return count
}

// Ratio returns the reduced up/down factors.
func (c *Converter) Ratio() (up, down int) {
	return c.up, c.down
}

func validRate(r float64) bool {
	return r > 0 && !math.IsNaN(r) && !math.IsInf(r, 0)
}
