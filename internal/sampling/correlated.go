package sampling

import (
	"math"
	"math/rand"

	"patrimony-engine/internal/simerr"
)

// Correlation between gross wealth and income observed in household surveys.
const Correlation = 0.5

// Range is a closed interval of amounts.
type Range struct {
	Min float64
	Max float64
}

// Width returns Max - Min.
func (r Range) Width() float64 { return r.Max - r.Min }

// Reference is the income figure every asset amount is correlated with.
type Reference struct {
	Value float64
	Range Range
}

// Correlated draws an amount in target that is correlated with ref through a
// single-factor Gaussian copula.
func Correlated(rng *rand.Rand, ref Reference, target Range) (float64, error) {
	if ref.Range.Width() == 0 {
		return 0, simerr.Domain("sampling.correlated", "reference range [%v, %v] has zero width", ref.Range.Min, ref.Range.Max)
	}
	if target.Width() < 0 {
		return 0, simerr.Domain("sampling.correlated", "target range [%v, %v] is inverted", target.Min, target.Max)
	}
	return correlate(ref, target, rng.NormFloat64()), nil
}

func correlate(ref Reference, target Range, residual float64) float64 {
	normalized := (ref.Value - ref.Range.Min) / ref.Range.Width()
	z := Correlation*normalized + residual*math.Sqrt(1-Correlation*Correlation)
	return normalCDF(z)*target.Width() + target.Min
}

func normalCDF(z float64) float64 {
	return 0.5 * math.Erfc(-z/math.Sqrt2)
}

// IntBetween returns a uniform integer in [lo, hi].
func IntBetween(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// Distinct selects k distinct indices of [0, n) without replacement.
func Distinct(rng *rand.Rand, n, k int) []int {
	if k > n {
		k = n
	}
	if k <= 0 {
		return []int{}
	}
	return rng.Perm(n)[:k]
}
