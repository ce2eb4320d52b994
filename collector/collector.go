// Package collector aggregates measurement samples for live reporting while
// a benchmark run is still in progress.
package collector

import "time"

// Aggregation summarises the samples seen by a collector.
type Aggregation struct {
	Count int
	Avg   time.Duration
	P50   time.Duration // P50 is the 50th percentile sample.
	P95   time.Duration // P95 is the 95th percentile sample.
	Max   time.Duration
}

type Collector interface {
	Add(t time.Duration)     // Add sends a new sample to the collector.
	Aggregate() *Aggregation // Aggregate summarises the samples seen so far.
	Reset()                  // Reset resets the state of the collector for reuse.
}
