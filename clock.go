package bmark

// Clock reads the current value of a time source, in seconds. Measurements
// are differences between two readings, so the epoch does not matter.
type Clock interface {
	Now() float64
}
