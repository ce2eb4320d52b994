package bmark

import "errors"

// ErrBlockNotStarted is returned when a Block is queried before Start has
// been called, or after End.
var ErrBlockNotStarted = errors.New("measure block was not started beforehand")

// Measure runs fn exactly once, measuring the CPU process time it consumes.
// The last measurement is always updated; with accumulation on, the sample is
// also appended under every given identifier. fn's error is returned
// unchanged. The collector state is restored and the measurement recorded on
// every exit path, including a panic inside fn.
func (r *Registry) Measure(fn func() error, ids ...string) error {
	resume := r.pauseGC()
	start := r.clock.Now()
	defer func() {
		elapsed := r.clock.Now() - start
		resume()
		r.record(elapsed, ids)
	}()
	return fn()
}

// Instrument returns a wrapper around fn that measures every call the same
// way Measure does.
func (r *Registry) Instrument(fn func() error, ids ...string) func() error {
	return func() error {
		return r.Measure(fn, ids...)
	}
}

// pauseGC disables the collector when the registry is configured to do so and
// returns a function restoring the captured state. A collector that was
// already disabled is never re-enabled.
func (r *Registry) pauseGC() func() {
	if !r.disableGC {
		return func() {}
	}
	wasEnabled := r.gc.Enabled()
	r.gc.Disable()
	return func() {
		if wasEnabled {
			r.gc.Enable()
		}
	}
}

// Block measures an arbitrary code region. Unlike Measure, the caller marks
// the region out explicitly: Start, then End once done. While the block is
// open, Elapsed and Period expose intermediate timings.
type Block struct {
	registry *Registry
	ids      []string

	started     bool
	resumeGC    func()
	start       float64
	periodStart float64
}

// Block prepares a measured region recording under the given identifiers.
// The returned Block measures nothing until Start is called.
func (r *Registry) Block(ids ...string) *Block {
	return &Block{registry: r, ids: ids}
}

// Start opens the region, pausing the collector per the registry's
// configuration.
func (b *Block) Start() {
	b.resumeGC = b.registry.pauseGC()
	b.start = b.registry.clock.Now()
	b.periodStart = b.start
	b.started = true
}

// Elapsed returns the time since Start.
func (b *Block) Elapsed() (float64, error) {
	if !b.started {
		return 0, ErrBlockNotStarted
	}
	return b.registry.clock.Now() - b.start, nil
}

// Period returns the time since the previous Period call, or since Start on
// the first call.
func (b *Block) Period() (float64, error) {
	if !b.started {
		return 0, ErrBlockNotStarted
	}
	now := b.registry.clock.Now()
	period := now - b.periodStart
	b.periodStart = now
	return period, nil
}

// End closes the region: the collector state is restored, the elapsed time
// becomes the registry's last measurement and is accumulated under the
// block's identifiers. The block may be started again afterwards. End without
// a matching Start is a no-op.
func (b *Block) End() {
	if !b.started {
		return
	}
	elapsed := b.registry.clock.Now() - b.start
	b.started = false
	b.resumeGC()
	b.registry.record(elapsed, b.ids)
}
