package stats

import "math"

// HolderMean computes the generalized mean of values with the given power.
// Power 0 selects the geometric mean, 1 the arithmetic mean, -1 the harmonic
// mean. Negative values under a fractional power are a domain error.
func HolderMean(values []float64, power float64) (float64, error) {
	return WeightedHolderMean(values, nil, power)
}

// WeightedHolderMean is HolderMean with per-value weights. A nil weights
// slice means equal weighting.
func WeightedHolderMean(values, weights []float64, power float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrNoValues
	}

	if weights == nil {
		weights = uniformWeights(len(values))
	} else if len(weights) != len(values) {
		return 0, &ErrLengthMismatch{Values: len(values), Weights: len(weights)}
	}

	var wsum float64
	for _, w := range weights {
		wsum += w
	}

	if wsum == 0 {
		return 0, &ErrDomain{Op: "holder mean", Reason: "weights sum to zero"}
	}

	if power == 0 {
		return weightedGeometricMean(values, weights, wsum)
	}

	var acc float64

	for i, v := range values {
		switch {
		case v < 0 && !isInteger(power):
			return 0, &ErrDomain{Op: "holder mean", Reason: "negative value under fractional power"}
		case v == 0 && power < 0:
			return 0, &ErrDomain{Op: "holder mean", Reason: "zero value under negative power"}
		}

		acc += weights[i] * math.Pow(v, power)
	}

	mean := acc / wsum
	if mean < 0 && !isInteger(1/power) {
		return 0, &ErrDomain{Op: "holder mean", Reason: "negative power mean under fractional root"}
	}

	return math.Pow(mean, 1/power), nil
}

func weightedGeometricMean(values, weights []float64, wsum float64) (float64, error) {
	var (
		logsum  float64
		hasZero bool
	)

	for i, v := range values {
		if v < 0 {
			return 0, &ErrDomain{Op: "holder mean", Reason: "negative value under power 0"}
		}

		if v == 0 {
			if weights[i] > 0 {
				hasZero = true
			}

			continue
		}

		logsum += weights[i] * math.Log(v)
	}

	if hasZero {
		return 0, nil
	}

	return math.Exp(logsum / wsum), nil
}

// PNorm computes (sum(v**p))**(1/p) over values. The power must be strictly
// positive and all values nonnegative; callers give p == 0 its own meaning.
func PNorm(values []float64, p float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrNoValues
	}

	if p <= 0 {
		return 0, &ErrDomain{Op: "p-norm", Reason: "power must be positive"}
	}

	var acc float64

	for _, v := range values {
		if v < 0 {
			return 0, &ErrDomain{Op: "p-norm", Reason: "negative value"}
		}

		acc += math.Pow(v, p)
	}

	return math.Pow(acc, 1/p), nil
}

// WeightedMean computes sum(w*v)/sum(w). A nil weights slice means equal
// weighting, which reduces to the arithmetic mean.
func WeightedMean(values, weights []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrNoValues
	}

	if weights == nil {
		weights = uniformWeights(len(values))
	} else if len(weights) != len(values) {
		return 0, &ErrLengthMismatch{Values: len(values), Weights: len(weights)}
	}

	var acc, wsum float64

	for i, v := range values {
		acc += weights[i] * v
		wsum += weights[i]
	}

	if wsum == 0 {
		return 0, &ErrDomain{Op: "weighted mean", Reason: "weights sum to zero"}
	}

	return acc / wsum, nil
}

// SummaryStats is the six-number summary computed over a value sequence.
type SummaryStats struct {
	Min   float64
	Max   float64
	Range float64
	Mean  float64
	Std   float64
	Mode  float64
}

// Summary computes min, max, range, arithmetic mean, population standard
// deviation and mode over values. Mode ties go to the value that reaches the
// winning multiplicity first, which makes the result deterministic for a
// given input order.
func Summary(values []float64) (SummaryStats, error) {
	if len(values) == 0 {
		return SummaryStats{}, ErrNoValues
	}

	s := SummaryStats{Min: values[0], Max: values[0]}

	var sum float64

	counts := make(map[float64]int, len(values))
	best := 0

	for _, v := range values {
		if v < s.Min {
			s.Min = v
		}

		if v > s.Max {
			s.Max = v
		}

		sum += v

		counts[v]++
		if counts[v] > best {
			best = counts[v]
			s.Mode = v
		}
	}

	n := float64(len(values))
	s.Mean = sum / n
	s.Range = s.Max - s.Min

	var sq float64
	for _, v := range values {
		d := v - s.Mean
		sq += d * d
	}

	s.Std = math.Sqrt(sq / n)

	return s, nil
}

func uniformWeights(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}

	return w
}

func isInteger(f float64) bool {
	return f == math.Trunc(f)
}
