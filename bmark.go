// Package bmark measures the CPU process time taken by function calls and
// code blocks and accumulates the samples under caller-chosen identifiers for
// later statistical queries.
//
// A Registry is not safe for concurrent use. It is designed for sequential,
// ad-hoc benchmarking during development, not for production telemetry.
package bmark

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// Registry owns the measurement store, the most recent measurement and the
// two behaviour flags. The zero value is not usable; use New.
type Registry struct {
	clock Clock
	gc    GCControl

	accumulate bool // Whether samples are appended to the store on measurement.
	disableGC  bool // Whether the collector is paused while measuring.

	lastTime    float64
	hasLastTime bool

	// times maps an identifier to its samples in recording order, in
	// seconds. An identifier present in the map always has at least one
	// sample.
	times map[string][]float64
}

// New returns a Registry backed by the process CPU clock and the runtime's
// collector, with accumulation off and collector pausing on.
func New() *Registry {
	return NewWithComponents(NewProcessClock(), NewRuntimeGC())
}

// NewWithComponents allows substituting the time source and the collector
// control, e.g. with simulated implementations under test.
func NewWithComponents(clock Clock, gc GCControl) *Registry {
	return &Registry{
		clock:     clock,
		gc:        gc,
		disableGC: true,
		times:     map[string][]float64{},
	}
}

// Times returns a copy of all samples recorded under id, or false when the
// identifier has none.
func (r *Registry) Times(id string) ([]float64, bool) {
	samples, ok := r.times[id]
	if !ok {
		return nil, false
	}
	times := make([]float64, len(samples))
	copy(times, samples)
	return times, true
}

// TimesMany returns the samples recorded under each requested identifier.
// Identifiers without samples map to nil rather than being omitted.
func (r *Registry) TimesMany(ids ...string) map[string][]float64 {
	result := make(map[string][]float64, len(ids))
	for _, id := range ids {
		samples, ok := r.Times(id)
		if !ok {
			result[id] = nil
			continue
		}
		result[id] = samples
	}
	return result
}

// LastOf returns the most recent sample recorded under id, or false when the
// identifier has none.
func (r *Registry) LastOf(id string) (float64, bool) {
	samples, ok := r.times[id]
	if !ok {
		return 0, false
	}
	return samples[len(samples)-1], true
}

// LastTime returns the most recent measurement made through the registry,
// regardless of accumulation, or false when nothing has been measured since
// the last reset.
func (r *Registry) LastTime() (float64, bool) {
	return r.lastTime, r.hasLastTime
}

// TimeSum sums all samples across the requested identifiers. With no
// identifiers it sums the entire store. The second return is false when
// nothing could be summed: an empty store for the zero-identifier form, or
// none of the requested identifiers having samples. Repeating an identifier
// counts its samples again.
func (r *Registry) TimeSum(ids ...string) (float64, bool) {
	if len(ids) == 0 {
		if len(r.times) == 0 {
			return 0, false
		}
		var total float64
		for id := range r.times {
			total += r.sumOf(id)
		}
		return total, true
	}

	var total float64
	found := false
	for _, id := range ids {
		if _, ok := r.times[id]; !ok {
			continue
		}
		total += r.sumOf(id)
		found = true
	}
	return total, found
}

func (r *Registry) sumOf(id string) float64 {
	sum, err := stats.Sum(r.times[id])
	if err != nil {
		// An identifier in the store always has at least one sample.
		panic(fmt.Errorf("unexpected err in Registry.TimeSum() while summing %q: %w", id, err))
	}
	return sum
}

// ClearTimes removes the samples stored under the given identifiers, or every
// identifier when none are given. Unknown identifiers are ignored.
func (r *Registry) ClearTimes(ids ...string) {
	if len(ids) == 0 {
		r.times = map[string][]float64{}
		return
	}
	for _, id := range ids {
		delete(r.times, id)
	}
}

// ClearLastTime forgets the most recent measurement.
func (r *Registry) ClearLastTime() {
	r.lastTime = 0
	r.hasLastTime = false
}

// RestoreDefaults empties the store, forgets the last measurement and resets
// both flags: accumulation off, collector pausing on.
func (r *Registry) RestoreDefaults() {
	r.ClearTimes()
	r.ClearLastTime()
	r.SetAccumulating(false)
	r.SetDisabledGC(true)
}

// SetAccumulating sets whether measured samples are retained in the store.
// The last measurement is updated either way.
func (r *Registry) SetAccumulating(accumulate bool) { r.accumulate = accumulate }

// Accumulating reports whether measured samples are retained in the store.
func (r *Registry) Accumulating() bool { return r.accumulate }

// SetDisabledGC sets whether the collector is paused while measuring.
func (r *Registry) SetDisabledGC(disabled bool) { r.disableGC = disabled }

// DisabledGC reports whether the collector is paused while measuring.
func (r *Registry) DisabledGC() bool { return r.disableGC }

// record stores a finished measurement. The last measurement is always
// overwritten; the store is only touched when accumulating. A repeated
// identifier is appended to once per occurrence.
func (r *Registry) record(elapsed float64, ids []string) {
	r.lastTime = elapsed
	r.hasLastTime = true
	if !r.accumulate {
		return
	}
	for _, id := range ids {
		r.times[id] = append(r.times[id], elapsed)
	}
}
