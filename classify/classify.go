// Package classify maps a mean level in dB to a coarse noise category and,
// given spectral features, to a descriptive noise type.
package classify

import (
	"errors"
	"fmt"
	"math"
	"strings"

	frequencystats "github.com/Usama2015/Noise-Environment-Monitor-App/stats/frequency"
)

// ErrUnknownLabel is returned when parsing an unrecognised label.
var ErrUnknownLabel = errors.New("classify: unknown label")

// Label is a noise category.
type Label int

const (
	Quiet Label = iota
	Normal
	Noisy
)

var labelNames = [...]string{
	Quiet:  "Quiet",
	Normal: "Normal",
	Noisy:  "Noisy",
}

func (l Label) String() string {
	if l < Quiet || l > Noisy {
		return fmt.Sprintf("Label(%d)", int(l))
	}
	return labelNames[l]
}

// ParseLabel parses a label name, ignoring case.
func ParseLabel(s string) (Label, error) {
	for l, name := range labelNames {
		if strings.EqualFold(s, name) {
			return Label(l), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLabel, s)
}

// MarshalText implements encoding.TextMarshaler.
func (l Label) MarshalText() ([]byte, error) {
	if l < Quiet || l > Noisy {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLabel, int(l))
	}
	return []byte(labelNames[l]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Label) UnmarshalText(b []byte) error {
	v, err := ParseLabel(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// Description returns a short description of typical environments.
func (l Label) Description() string {
	switch l {
	case Quiet:
		return "Library, study room, quiet office (<50 dB)"
	case Normal:
		return "Conversation, cafeteria, normal office (50-70 dB)"
	case Noisy:
		return "Traffic, construction, loud environment (>70 dB)"
	default:
		return "Unknown category"
	}
}

// Thresholds holds the category boundaries in dB. Quiet is below
// QuietUpper, Noisy is at or above NormalUpper.
type Thresholds struct {
	QuietUpper  float64
	NormalUpper float64
}

// DefaultThresholds returns the 50/70 dB boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{QuietUpper: 50, NormalUpper: 70}
}

// Classify labels meanDB with the default thresholds.
func Classify(meanDB float64) Label {
	return DefaultThresholds().Classify(meanDB)
}

// Classify labels meanDB. Any value is accepted; NaN is labelled Noisy.
func (t Thresholds) Classify(meanDB float64) Label {
	switch {
	case meanDB < t.QuietUpper:
		return Quiet
	case meanDB < t.NormalUpper:
		return Normal
	default:
		return Noisy
	}
}

// Confidence returns a score in [0.5, 1] for label given meanDB.
//
// Quiet is most certain near 0 dB, Normal at the centre of its range and
// Noisy 30 dB above its lower edge.
func (t Thresholds) Confidence(meanDB float64, label Label) float64 {
	var c float64

	switch label {
	case Quiet:
		c = 1 - meanDB/t.QuietUpper
	case Normal:
		mid := (t.QuietUpper + t.NormalUpper) / 2
		half := (t.NormalUpper - t.QuietUpper) / 2
		c = 1 - math.Abs(meanDB-mid)/half
	case Noisy:
		c = (meanDB - t.NormalUpper) / 30
	}

	return clamp(c, 0.5, 1)
}

// Confidence scores label for meanDB with the default thresholds.
func Confidence(meanDB float64, label Label) float64 {
	return DefaultThresholds().Confidence(meanDB, label)
}

func clamp(v, lo, hi float64) float64 {
	if !(v > lo) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Spectral cut-offs used by NoiseType.
const (
	tonalUpper   = 0.4
	noisyLower   = 0.6
	lowDominant  = 0.5
	midDominant  = 0.6
	highDominant = 0.4
)

// Silence is the noise type of a degenerate, near-zero spectrum.
const Silence = "Silence"

// NoiseType describes the character of a sound from its spectral features.
func NoiseType(meanDB float64, f frequencystats.Features) string {
	switch {
	case f.Degenerate:
		return Silence
	case f.Flatness > noisyLower:
		return "White Noise / Static"
	case f.LowRatio > lowDominant:
		if meanDB > 70 {
			return "Traffic / Heavy Machinery"
		}
		return "Low Frequency Rumble"
	case f.MidRatio > midDominant:
		if f.Flatness < tonalUpper {
			return "Voice / Music"
		}
		return "General Environmental Noise"
	case f.HighRatio > highDominant:
		return "High-Frequency Noise"
	case f.Flatness < tonalUpper:
		return "Tonal Sound"
	default:
		return "Mixed Noise"
	}
}

// Result is a label with its supporting detail.
type Result struct {
	Label       Label
	MeanDB      float64
	Confidence  float64
	Description string
	NoiseType   string
}

// ClassifyEnhanced labels meanDB and refines the confidence with spectral
// evidence typical of each category.
func (t Thresholds) ClassifyEnhanced(meanDB float64, f frequencystats.Features) Result {
	label := t.Classify(meanDB)

	return Result{
		Label:       label,
		MeanDB:      meanDB,
		Confidence:  (t.Confidence(meanDB, label) + spectralConfidence(label, f)) / 2,
		Description: label.Description(),
		NoiseType:   NoiseType(meanDB, f),
	}
}

// ClassifyEnhanced uses the default thresholds.
func ClassifyEnhanced(meanDB float64, f frequencystats.Features) Result {
	return DefaultThresholds().ClassifyEnhanced(meanDB, f)
}

// spectralConfidence stays neutral at 0.5 for a degenerate spectrum.
func spectralConfidence(label Label, f frequencystats.Features) float64 {
	c := 0.5
	if f.Degenerate {
		return c
	}

	switch label {
	case Quiet:
		if f.Flatness < 0.3 || f.Flatness > 0.8 {
			c += 0.3
		}
	case Normal:
		if f.MidRatio > 0.4 {
			c += 0.3
		}
	case Noisy:
		if f.LowRatio > 0.3 || f.Flatness > 0.5 {
			c += 0.3
		}
	}

	return math.Min(1, c)
}
