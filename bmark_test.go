package bmark

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// simulatedClock provides us control over the exact time and seconds to advance by.
type simulatedClock struct {
	now float64
}

func (c *simulatedClock) Now() float64 { return c.now }

func (c *simulatedClock) advance(seconds float64) { c.now += seconds }

// recordingGC tracks the enable/disable calls made around measurements.
type recordingGC struct {
	enabled  bool
	disables int
	enables  int
}

func (g *recordingGC) Enabled() bool { return g.enabled }
func (g *recordingGC) Disable()     { g.enabled = false; g.disables++ }
func (g *recordingGC) Enable()      { g.enabled = true; g.enables++ }

func newTestRegistry() (*Registry, *simulatedClock, *recordingGC) {
	clock := &simulatedClock{}
	gc := &recordingGC{enabled: true}
	return NewWithComponents(clock, gc), clock, gc
}

func TestDefaults(t *testing.T) {
	registry, _, _ := newTestRegistry()

	_, ok := registry.LastTime()
	assert.False(t, ok)
	_, ok = registry.Times("f")
	assert.False(t, ok)
	_, ok = registry.LastOf("f")
	assert.False(t, ok)
	_, ok = registry.TimeSum()
	assert.False(t, ok)

	assert.False(t, registry.Accumulating())
	assert.True(t, registry.DisabledGC())
}

func TestMeasure_WithoutAccumulation(t *testing.T) {
	registry, clock, _ := newTestRegistry()

	for i := 0; i < 3; i++ {
		err := registry.Measure(func() error {
			clock.advance(1.5)
			return nil
		}, "f")
		require.NoError(t, err)
	}

	last, ok := registry.LastTime()
	assert.True(t, ok)
	assert.Equal(t, 1.5, last)

	// Accumulation is off by default, so the store stays empty.
	_, ok = registry.Times("f")
	assert.False(t, ok)
}

func TestMeasure_Accumulates(t *testing.T) {
	registry, clock, _ := newTestRegistry()
	registry.SetAccumulating(true)

	err := registry.Measure(func() error {
		clock.advance(2)
		return nil
	}, "f")
	require.NoError(t, err)

	times, ok := registry.Times("f")
	require.True(t, ok)
	assert.Equal(t, []float64{2}, times)

	last, ok := registry.LastTime()
	assert.True(t, ok)
	assert.Equal(t, 2.0, last)

	lastOf, ok := registry.LastOf("f")
	assert.True(t, ok)
	assert.Equal(t, 2.0, lastOf)
}

func TestMeasure_MultipleAndDuplicateIdentifiers(t *testing.T) {
	registry, clock, _ := newTestRegistry()
	registry.SetAccumulating(true)

	err := registry.Measure(func() error {
		clock.advance(1)
		return nil
	}, "a", "b", "a")
	require.NoError(t, err)

	a, ok := registry.Times("a")
	require.True(t, ok)
	assert.Len(t, a, 2)

	b, ok := registry.Times("b")
	require.True(t, ok)
	assert.Len(t, b, 1)
}

func TestMeasure_NoIdentifiers(t *testing.T) {
	registry, clock, _ := newTestRegistry()
	registry.SetAccumulating(true)

	err := registry.Measure(func() error {
		clock.advance(1)
		return nil
	})
	require.NoError(t, err)

	_, ok := registry.TimeSum()
	assert.False(t, ok)

	last, ok := registry.LastTime()
	assert.True(t, ok)
	assert.Equal(t, 1.0, last)
}

func TestMeasure_ErrorPassesThrough(t *testing.T) {
	registry, clock, gc := newTestRegistry()
	registry.SetAccumulating(true)

	failure := errors.New("unit of work failed")
	err := registry.Measure(func() error {
		clock.advance(0.5)
		return failure
	}, "f")
	assert.Equal(t, failure, err)

	// The failure must not suppress recording or collector restoration.
	times, ok := registry.Times("f")
	require.True(t, ok)
	assert.Equal(t, []float64{0.5}, times)
	assert.True(t, gc.enabled)
	assert.Equal(t, 1, gc.disables)
	assert.Equal(t, 1, gc.enables)
}

func TestMeasure_RecordsOnPanic(t *testing.T) {
	registry, clock, gc := newTestRegistry()

	assert.Panics(t, func() {
		_ = registry.Measure(func() error {
			clock.advance(1)
			panic("unit of work panicked")
		})
	})

	last, ok := registry.LastTime()
	assert.True(t, ok)
	assert.Equal(t, 1.0, last)
	assert.True(t, gc.enabled)
}

func TestMeasure_GCAlreadyDisabledStaysDisabled(t *testing.T) {
	registry, clock, gc := newTestRegistry()
	gc.enabled = false

	err := registry.Measure(func() error {
		clock.advance(1)
		return nil
	})
	require.NoError(t, err)

	assert.False(t, gc.enabled)
	assert.Equal(t, 0, gc.enables)
}

func TestMeasure_GCPausingDisabled(t *testing.T) {
	registry, clock, gc := newTestRegistry()
	registry.SetDisabledGC(false)

	err := registry.Measure(func() error {
		clock.advance(1)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 0, gc.disables)
	assert.Equal(t, 0, gc.enables)
}

func TestInstrument(t *testing.T) {
	registry, clock, _ := newTestRegistry()
	registry.SetAccumulating(true)

	instrumented := registry.Instrument(func() error {
		clock.advance(1)
		return nil
	}, "f")

	require.NoError(t, instrumented())
	require.NoError(t, instrumented())

	times, ok := registry.Times("f")
	require.True(t, ok)
	assert.Len(t, times, 2)
}

func TestTimeSum_Properties(t *testing.T) {
	registry, clock, _ := newTestRegistry()
	registry.SetAccumulating(true)

	record := func(id string, seconds float64) {
		err := registry.Measure(func() error {
			clock.advance(seconds)
			return nil
		}, id)
		require.NoError(t, err)
	}

	record("a", 1)
	record("a", 2)
	record("b", 4)

	sumA, ok := registry.TimeSum("a")
	require.True(t, ok)
	assert.Equal(t, 3.0, sumA)

	sumB, ok := registry.TimeSum("b")
	require.True(t, ok)
	assert.Equal(t, 4.0, sumB)

	sumAB, ok := registry.TimeSum("a", "b")
	require.True(t, ok)
	assert.Equal(t, sumA+sumB, sumAB)

	// The whole-store sum equals the sum over every identifier.
	sumAll, ok := registry.TimeSum()
	require.True(t, ok)
	assert.Equal(t, sumAB, sumAll)

	// A repeated identifier double-counts its contribution.
	sumAA, ok := registry.TimeSum("a", "a")
	require.True(t, ok)
	assert.Equal(t, 2*sumA, sumAA)

	// Unknown identifiers contribute nothing as long as one is present.
	sumMixed, ok := registry.TimeSum("a", "missing")
	require.True(t, ok)
	assert.Equal(t, sumA, sumMixed)

	_, ok = registry.TimeSum("missing", "also-missing")
	assert.False(t, ok)
}

func TestTimesMany(t *testing.T) {
	registry, clock, _ := newTestRegistry()
	registry.SetAccumulating(true)

	err := registry.Measure(func() error {
		clock.advance(1)
		return nil
	}, "a")
	require.NoError(t, err)

	times := registry.TimesMany("a", "missing")
	require.Len(t, times, 2)
	assert.Equal(t, []float64{1}, times["a"])

	missing, present := times["missing"]
	assert.True(t, present)
	assert.Nil(t, missing)
}

func TestClearTimes(t *testing.T) {
	registry, clock, _ := newTestRegistry()
	registry.SetAccumulating(true)

	record := func(id string) {
		err := registry.Measure(func() error {
			clock.advance(1)
			return nil
		}, id)
		require.NoError(t, err)
	}

	record("a")
	record("b")

	registry.ClearTimes("a")
	_, ok := registry.Times("a")
	assert.False(t, ok)
	_, ok = registry.Times("b")
	assert.True(t, ok)

	// A deleted identifier no longer contributes to the whole-store sum.
	sum, ok := registry.TimeSum()
	require.True(t, ok)
	assert.Equal(t, 1.0, sum)

	registry.ClearTimes()
	_, ok = registry.Times("b")
	assert.False(t, ok)
	_, ok = registry.TimeSum()
	assert.False(t, ok)
}

func TestRestoreDefaults(t *testing.T) {
	registry, clock, _ := newTestRegistry()
	registry.SetAccumulating(true)
	registry.SetDisabledGC(false)

	err := registry.Measure(func() error {
		clock.advance(1)
		return nil
	}, "f")
	require.NoError(t, err)

	registry.RestoreDefaults()

	_, ok := registry.Times("f")
	assert.False(t, ok)
	_, ok = registry.LastTime()
	assert.False(t, ok)
	assert.False(t, registry.Accumulating())
	assert.True(t, registry.DisabledGC())
}

func TestTimes_ReturnsCopy(t *testing.T) {
	registry, clock, _ := newTestRegistry()
	registry.SetAccumulating(true)

	err := registry.Measure(func() error {
		clock.advance(1)
		return nil
	}, "f")
	require.NoError(t, err)

	times, ok := registry.Times("f")
	require.True(t, ok)
	times[0] = 42

	unchanged, ok := registry.Times("f")
	require.True(t, ok)
	assert.Equal(t, []float64{1}, unchanged)
}

func TestBlock_QueriesBeforeStartFail(t *testing.T) {
	registry, _, _ := newTestRegistry()
	block := registry.Block("blk")

	_, err := block.Elapsed()
	assert.ErrorIs(t, err, ErrBlockNotStarted)
	_, err = block.Period()
	assert.ErrorIs(t, err, ErrBlockNotStarted)
}

func TestBlock_ElapsedAndPeriod(t *testing.T) {
	registry, clock, _ := newTestRegistry()
	block := registry.Block("blk")
	block.Start()

	clock.advance(2)
	period, err := block.Period()
	require.NoError(t, err)
	assert.Equal(t, 2.0, period)

	clock.advance(3)
	period, err = block.Period()
	require.NoError(t, err)
	assert.Equal(t, 3.0, period)

	elapsed, err := block.Elapsed()
	require.NoError(t, err)
	assert.Equal(t, 5.0, elapsed)
	assert.GreaterOrEqual(t, elapsed, period)
}

func TestBlock_EndRecords(t *testing.T) {
	registry, clock, gc := newTestRegistry()
	registry.SetAccumulating(true)

	block := registry.Block("blk")
	block.Start()
	assert.False(t, gc.enabled)

	clock.advance(4)
	block.End()

	assert.True(t, gc.enabled)

	last, ok := registry.LastTime()
	assert.True(t, ok)
	assert.Equal(t, 4.0, last)

	times, ok := registry.Times("blk")
	require.True(t, ok)
	assert.Equal(t, []float64{4}, times)

	// A finished block is queryable again only after a new Start.
	_, err := block.Elapsed()
	assert.ErrorIs(t, err, ErrBlockNotStarted)

	block.Start()
	clock.advance(1)
	block.End()

	times, ok = registry.Times("blk")
	require.True(t, ok)
	assert.Equal(t, []float64{4, 1}, times)
}

func TestBlock_EndWithoutStartIsNoop(t *testing.T) {
	registry, _, _ := newTestRegistry()
	block := registry.Block("blk")

	block.End()

	_, ok := registry.LastTime()
	assert.False(t, ok)
}

func TestRegistryStatistics(t *testing.T) {
	registry, clock, _ := newTestRegistry()
	registry.SetAccumulating(true)

	for _, seconds := range []float64{7, 5, 6, 6, 1, 2} {
		err := registry.Measure(func() error {
			clock.advance(seconds)
			return nil
		}, "f")
		require.NoError(t, err)
	}

	avg, err := registry.Average("f")
	require.NoError(t, err)
	assert.InDelta(t, 4.5, avg, 1e-9)

	median, err := registry.Median("f")
	require.NoError(t, err)
	assert.InDelta(t, 5.5, median, 1e-9)

	stdDev, err := registry.StdDev("f")
	require.NoError(t, err)
	assert.InDelta(t, 2.2174, stdDev, 1e-4)

	p100, err := registry.Percentile("f", 100, false)
	require.NoError(t, err)
	assert.Equal(t, 7.0, p100)
}

func TestRegistryStatistics_UnknownIdentifier(t *testing.T) {
	registry, _, _ := newTestRegistry()

	_, err := registry.Average("missing")
	assert.ErrorIs(t, err, ErrNoSamples)
	_, err = registry.Median("missing")
	assert.ErrorIs(t, err, ErrNoSamples)
	_, err = registry.StdDev("missing")
	assert.ErrorIs(t, err, ErrNoSamples)
	_, err = registry.Percentile("missing", 50, true)
	assert.ErrorIs(t, err, ErrNoSamples)
}
