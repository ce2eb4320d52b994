// Package stats computes descriptive statistics over recorded time samples.
package stats

import (
	"math"
	"sort"

	mstats "github.com/montanaflynn/stats"
)

// Percentile returns the p-th percentile (0-100) of samples. The rank of the
// p-th percentile is p/100 * (n-1), zero-indexed over the sorted samples.
// Without interpolation the lower neighbouring rank is picked; with
// interpolation the two neighbouring ranks are linearly interpolated.
func Percentile(samples []float64, p float64, interpolate bool) (float64, error) {
	if len(samples) == 0 {
		return math.NaN(), mstats.EmptyInputErr
	}
	if p < 0 || p > 100 {
		return math.NaN(), mstats.BoundsErr
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	rank := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	if !interpolate {
		return sorted[lower], nil
	}

	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower], nil
	}
	weight := rank - float64(lower)
	return sorted[lower] + weight*(sorted[upper]-sorted[lower]), nil
}

// Average returns the arithmetic mean of samples.
func Average(samples []float64) (float64, error) {
	return mstats.Mean(samples)
}

// Median returns the 50th percentile with interpolation: an even number of
// samples averages the two middle values.
func Median(samples []float64) (float64, error) {
	return mstats.Median(samples)
}

// StdDev returns the population standard deviation of samples (divisor n,
// not n-1).
func StdDev(samples []float64) (float64, error) {
	return mstats.StandardDeviationPopulation(samples)
}
