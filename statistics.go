package bmark

import (
	"errors"
	"fmt"

	"github.com/kcz17/bmark/stats"
)

// ErrNoSamples reports a statistics query for an identifier with nothing
// recorded under it. Callers that cannot rule out an empty bucket should
// check with Times first.
var ErrNoSamples = errors.New("no samples recorded for identifier")

// Percentile returns the p-th percentile (0-100) of the samples recorded
// under id. See stats.Percentile for the rank selection rules.
func (r *Registry) Percentile(id string, p float64, interpolate bool) (float64, error) {
	samples, ok := r.times[id]
	if !ok {
		return 0, fmt.Errorf("percentile of %q: %w", id, ErrNoSamples)
	}
	return stats.Percentile(samples, p, interpolate)
}

// Average returns the arithmetic mean of the samples recorded under id.
func (r *Registry) Average(id string) (float64, error) {
	samples, ok := r.times[id]
	if !ok {
		return 0, fmt.Errorf("average of %q: %w", id, ErrNoSamples)
	}
	return stats.Average(samples)
}

// Median returns the interpolated median of the samples recorded under id.
func (r *Registry) Median(id string) (float64, error) {
	samples, ok := r.times[id]
	if !ok {
		return 0, fmt.Errorf("median of %q: %w", id, ErrNoSamples)
	}
	return stats.Median(samples)
}

// StdDev returns the population standard deviation of the samples recorded
// under id.
func (r *Registry) StdDev(id string) (float64, error) {
	samples, ok := r.times[id]
	if !ok {
		return 0, fmt.Errorf("standard deviation of %q: %w", id, ErrNoSamples)
	}
	return stats.StdDev(samples)
}
