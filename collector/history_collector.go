package collector

import (
	"fmt"
	"sync"
	"time"

	"github.com/montanaflynn/stats"
)

// historyCollector keeps every sample it is given. Storage and computation
// are both O(n), so it suits bounded benchmark runs rather than long-lived
// monitoring.
type historyCollector struct {
	seconds []float64
	mux     sync.Mutex
}

func NewHistoryCollector() *historyCollector {
	return &historyCollector{}
}

func (c *historyCollector) Add(t time.Duration) {
	c.mux.Lock()
	c.seconds = append(c.seconds, t.Seconds())
	c.mux.Unlock()
}

func (c *historyCollector) Aggregate() *Aggregation {
	c.mux.Lock()
	defer c.mux.Unlock()

	// The stats package requires input arrays to be non-empty.
	if len(c.seconds) == 0 {
		return &Aggregation{}
	}

	avg, err := stats.Mean(c.seconds)
	if err != nil {
		panic(fmt.Errorf("unexpected err in historyCollector.Aggregate() while calculating avg: %w", err))
	}
	p50, err := stats.Median(c.seconds)
	if err != nil {
		panic(fmt.Errorf("unexpected err in historyCollector.Aggregate() while calculating p50: %w", err))
	}
	p95, err := stats.Percentile(c.seconds, 95)
	if err != nil {
		panic(fmt.Errorf("unexpected err in historyCollector.Aggregate() while calculating p95: %w", err))
	}
	max, err := stats.Max(c.seconds)
	if err != nil {
		panic(fmt.Errorf("unexpected err in historyCollector.Aggregate() while calculating max: %w", err))
	}

	return &Aggregation{
		Count: len(c.seconds),
		Avg:   durationOf(avg),
		P50:   durationOf(p50),
		P95:   durationOf(p95),
		Max:   durationOf(max),
	}
}

func (c *historyCollector) Reset() {
	c.mux.Lock()
	c.seconds = nil
	c.mux.Unlock()
}

func durationOf(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
