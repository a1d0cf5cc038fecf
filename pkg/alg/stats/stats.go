// Package stats provides core statistical functions for numerical analysis.
// All standard deviation calculations use population stddev (÷n, not ÷(n−1)).
// Every function returns a zero value for empty input instead of an error.
package stats

import (
	"cmp"
	"math"
	"slices"
)

// Mean returns the arithmetic mean of values.
// Returns 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	return Sum(values) / float64(len(values))
}

// Median returns the middle value of values, or the average of the two
// central values for an even count. Returns 0 for an empty slice.
func Median(values []float64) float64 {
	count := len(values)
	if count == 0 {
		return 0
	}

	sorted := sortedCopy(values)
	mid := count / 2

	if count%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}

	return sorted[mid]
}

// StdDev returns the population standard deviation of values.
// Returns 0 for an empty slice.
func StdDev(values []float64) float64 {
	_, stddev := MeanStdDev(values)

	return stddev
}

// MeanStdDev returns the arithmetic mean and population standard deviation.
// Returns (0, 0) for an empty slice.
func MeanStdDev(values []float64) (mean, stddev float64) {
	count := len(values)
	if count == 0 {
		return 0, 0
	}

	mean = Mean(values)

	var sumSq float64

	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
	}

	return mean, math.Sqrt(sumSq / float64(count))
}

// Well-known percentile ranks, in percent.
const (
	PercentileQ1     = 25.0
	PercentileMedian = 50.0
	PercentileQ3     = 75.0
	PercentileP90    = 90.0

	percentScale = 100.0
)

// Percentile returns the p-th percentile of values using linear interpolation
// between closest ranks (R-7). p is a percentage in [0, 100].
// The input slice is not modified. Returns 0 for an empty slice.
func Percentile(values []float64, p float64) float64 {
	count := len(values)
	if count == 0 {
		return 0
	}

	sorted := sortedCopy(values)

	idx := Clamp(p, 0, percentScale) / percentScale * float64(count-1)
	lower := int(math.Floor(idx))
	upper := int(math.Ceil(idx))

	if upper >= count {
		return sorted[count-1]
	}

	if lower == upper {
		return sorted[lower]
	}

	frac := idx - float64(lower)

	return sorted[lower]*(1-frac) + sorted[upper]*frac
}

// Percentiles holds the quartiles plus the 90th percentile of a sample.
type Percentiles struct {
	P25 float64 `json:"p25"`
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
	P90 float64 `json:"p90"`
}

// Quartiles returns the 25th, 50th, 75th and 90th percentiles of values.
func Quartiles(values []float64) Percentiles {
	return Percentiles{
		P25: Percentile(values, PercentileQ1),
		P50: Percentile(values, PercentileMedian),
		P75: Percentile(values, PercentileQ3),
		P90: Percentile(values, PercentileP90),
	}
}

// Correlation returns the Pearson product-moment correlation of x and y.
// Returns 0 when the slices are empty, differ in length, or either is constant.
func Correlation(x, y []float64) float64 {
	count := len(x)
	if count == 0 || count != len(y) {
		return 0
	}

	var sumX, sumY, sumXY, sumX2, sumY2 float64

	for i := range count {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumX2 += x[i] * x[i]
		sumY2 += y[i] * y[i]
	}

	n := float64(count)
	numerator := n*sumXY - sumX*sumY
	denominator := math.Sqrt((n*sumX2 - sumX*sumX) * (n*sumY2 - sumY*sumY))

	if denominator == 0 || math.IsNaN(denominator) {
		return 0
	}

	return Clamp(numerator/denominator, -1, 1)
}

// Round returns v rounded half away from zero to the given number of decimals.
func Round(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))

	return math.Round(v*scale) / scale
}

// RoundInt returns v rounded half away from zero to the nearest integer.
func RoundInt(v float64) int {
	return int(math.Round(v))
}

// Ratio returns part/whole scaled to a percentage, or 0 when whole is zero.
func Ratio(part, whole int) float64 {
	if whole == 0 {
		return 0
	}

	return float64(part) / float64(whole) * percentScale
}

// Clamp restricts val to the range [lo, hi].
func Clamp[T cmp.Ordered](val, lo, hi T) T {
	return max(lo, min(val, hi))
}

// Min returns the smallest element in values.
// Returns the zero value of T for an empty slice.
func Min[T cmp.Ordered](values []T) T {
	if len(values) == 0 {
		var zero T

		return zero
	}

	return slices.Min(values)
}

// Max returns the largest element in values.
// Returns the zero value of T for an empty slice.
func Max[T cmp.Ordered](values []T) T {
	if len(values) == 0 {
		var zero T

		return zero
	}

	return slices.Max(values)
}

// Sum returns the sum of all elements in values.
// Returns the zero value of T for an empty slice.
func Sum[T cmp.Ordered](values []T) T {
	var result T

	for _, v := range values {
		result += v
	}

	return result
}

func sortedCopy(values []float64) []float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	return sorted
}
