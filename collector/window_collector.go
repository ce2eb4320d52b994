package collector

import (
	"time"

	"github.com/jamiealquiza/tachymeter"
)

// windowCollector keeps only the most recent samples in a fixed-size window,
// using the jamiealquiza/tachymeter library. It suits long benchmark loops
// where only recent behaviour matters.
type windowCollector struct {
	tach *tachymeter.Tachymeter
}

func NewWindowCollector(window int) *windowCollector {
	return &windowCollector{tach: tachymeter.New(&tachymeter.Config{
		Size: window,
	})}
}

func (c *windowCollector) Add(t time.Duration) {
	c.tach.AddTime(t)
}

func (c *windowCollector) Aggregate() *Aggregation {
	metrics := c.tach.Calc()
	return &Aggregation{
		// Samples is the number of events still inside the window;
		// Count would include everything ever added.
		Count: metrics.Samples,
		Avg:   metrics.Time.Avg,
		P50:   metrics.Time.P50,
		P95:   metrics.Time.P95,
		Max:   metrics.Time.Max,
	}
}

func (c *windowCollector) Reset() {
	c.tach.Reset()
}
