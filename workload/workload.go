// Package workload generates synthetic units of work with controlled timing
// characteristics for exercising a measurement registry.
package workload

import (
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/kcz17/bmark"
)

// SampleTruncatedNormal draws a workload duration in seconds from a normal
// distribution truncated to [lo, hi].
func SampleTruncatedNormal(lo, hi, mean, sigma float64) float64 {
	// Set the random seed to the current time for sufficient uniqueness.
	randSeed := uint64(time.Now().UTC().UnixNano())

	// Use an inverse transform method to sample from the distribution.
	// Reference: https://www.r-bloggers.com/2020/08/generating-data-from-a-truncated-distribution/
	norm := distuv.Normal{
		Mu:    mean,
		Sigma: sigma,
		Src:   rand.NewSource(randSeed),
	}

	a := norm.CDF(lo)
	b := norm.CDF(hi)
	u := distuv.Uniform{
		Min: a,
		Max: b,
		Src: rand.NewSource(randSeed),
	}.Rand()

	return norm.Quantile(u)
}

// Spin busy-loops until clock has advanced by the given number of seconds.
// Sleeping would not register on a process-time clock, so the work must burn
// CPU.
func Spin(clock bmark.Clock, seconds float64) {
	start := clock.Now()
	for clock.Now()-start < seconds {
	}
}
