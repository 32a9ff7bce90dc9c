package resample

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

// designLowpass returns the Kaiser-windowed sinc prototype at the
// upsampled rate, normalised to a DC gain of up.
func designLowpass(up, down int, cfg config) ([]float64, error) {
	n := cfg.tapsPerPhase * up
	fc := 0.5 / float64(max(up, down)) * cfg.cutoffScale
	beta := cfg.quality.kaiserBeta()

	taps := make([]float64, n)
	center := 0.5 * float64(n-1)
	for i := range taps {
		t := float64(i) - center
		taps[i] = 2 * fc * sinc(2*fc*t) * kaiser(i, n, beta)
	}

	sum := floats.Sum(taps)
	if sum == 0 {
		return nil, errors.New("resample: designed zero-sum filter")
	}
	floats.Scale(float64(up)/sum, taps)

	return taps, nil
}

// splitPhases decomposes taps into up polyphase branches.
func splitPhases(taps []float64, up int) ([][]float64, int) {
	phases := make([][]float64, up)
	longest := 0

	for p := range up {
		branch := make([]float64, 0, (len(taps)-p+up-1)/up)
		for i := p; i < len(taps); i += up {
			branch = append(branch, taps[i])
		}
		phases[p] = branch
		longest = max(longest, len(branch))
	}

	return phases, longest
}

// approximateRatio finds num/den close to v via continued fractions.
func approximateRatio(v float64, maxDen int) (num, den int) {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 1, 1
	}

	p0, q0 := 1.0, 0.0
	p1, q1 := math.Floor(v), 1.0
	x := v

	for {
		frac := x - math.Floor(x)
		if frac < 1e-12 {
			break
		}

		x = 1 / frac
		a := math.Floor(x)

		p2, q2 := a*p1+p0, a*q1+q0
		if q2 > float64(maxDen) {
			break
		}

		p0, q0, p1, q1 = p1, q1, p2, q2
	}

	num, den = int(math.Round(p1)), int(math.Round(q1))
	if num <= 0 || den <= 0 {
		return 1, 1
	}

	g := gcd(num, den)
	return num / g, den / g
}

func gcd(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

func sinc(x float64) float64 {
	if math.Abs(x) < 1e-12 {
		return 1
	}
	return math.Sin(math.Pi*x) / (math.Pi * x)
}

func kaiser(i, n int, beta float64) float64 {
	if n <= 1 || beta == 0 {
		return 1
	}

	t := 2*float64(i)/float64(n-1) - 1
	return besselI0(beta*math.Sqrt(math.Max(0, 1-t*t))) / besselI0(beta)
}

// besselI0 is the zeroth-order modified Bessel function of the first kind.
func besselI0(x float64) float64 {
	sum, term := 1.0, 1.0
	q := x * x / 4
	for k := 1; k < 64; k++ {
		term *= q / float64(k*k)
		sum += term
		if term < 1e-16*sum {
			break
		}
	}
	return sum
}
