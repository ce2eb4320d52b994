package workload

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kcz17/bmark"
)

func TestSampleTruncatedNormal_StaysWithinBounds(t *testing.T) {
	for i := 0; i < 1000; i++ {
		sample := SampleTruncatedNormal(0, 1, 0.5, 3)
		assert.GreaterOrEqual(t, sample, 0.0)
		assert.LessOrEqual(t, sample, 1.0)
	}
}

func TestSpin_AdvancesClock(t *testing.T) {
	clock := bmark.NewProcessClock()

	start := clock.Now()
	Spin(clock, 0.01)

	assert.GreaterOrEqual(t, clock.Now()-start, 0.01)
}
