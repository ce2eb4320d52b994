package bmark

import "runtime/debug"

// GCControl switches the collector on and off around measurements.
type GCControl interface {
	Enabled() bool
	Disable()
	Enable()
}

// runtimeGC drives the Go collector through debug.SetGCPercent. The percent
// in force before Disable is kept so Enable restores it rather than assuming
// the default.
type runtimeGC struct {
	enabled bool
	percent int
}

// NewRuntimeGC returns a GCControl over the runtime's collector.
func NewRuntimeGC() *runtimeGC {
	// SetGCPercent is also the only way to read the current setting;
	// write the observed value straight back.
	percent := debug.SetGCPercent(100)
	debug.SetGCPercent(percent)

	gc := &runtimeGC{enabled: percent >= 0, percent: percent}
	if !gc.enabled {
		gc.percent = 100
	}
	return gc
}

func (g *runtimeGC) Enabled() bool { return g.enabled }

func (g *runtimeGC) Disable() {
	if !g.enabled {
		return
	}
	g.percent = debug.SetGCPercent(-1)
	g.enabled = false
}

func (g *runtimeGC) Enable() {
	if g.enabled {
		return
	}
	debug.SetGCPercent(g.percent)
	g.enabled = true
}
