//go:build unix

package bmark

import "syscall"

// processClock reads the CPU time consumed by the process, user plus system,
// so time spent sleeping or blocked does not count towards measurements.
type processClock struct{}

// NewProcessClock returns the platform's CPU process-time source.
func NewProcessClock() Clock {
	return processClock{}
}

func (processClock) Now() float64 {
	var usage syscall.Rusage
	if err := syscall.Getrusage(syscall.RUSAGE_SELF, &usage); err != nil {
		// Getrusage on the calling process does not fail on any
		// supported platform.
		return 0
	}
	return timevalSeconds(usage.Utime) + timevalSeconds(usage.Stime)
}

func timevalSeconds(tv syscall.Timeval) float64 {
	return float64(tv.Sec) + float64(tv.Usec)/1e6
}
