//go:build !unix

package bmark

import "time"

// wallClock stands in for process time on platforms without getrusage.
type wallClock struct{}

// NewProcessClock returns the platform's time source. Without getrusage the
// wall clock is the closest available approximation of process time.
func NewProcessClock() Clock {
	return wallClock{}
}

func (wallClock) Now() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}
