// Package logging reports benchmark progress and results to a configurable
// destination.
package logging

import "github.com/kcz17/bmark/collector"

type Logger interface {
	LogSample(id string, t float64)                             // Takes in one measured sample in seconds.
	LogAggregate(id string, aggregation *collector.Aggregation) // Takes in a live aggregation over recent samples.
	LogSummary(id string, avg, median, p95, stdDev float64)     // Takes in whole-run statistics in seconds.
}

// noopLogger does not perform any logging.
type noopLogger struct{}

func NewNoopLogger() *noopLogger {
	return &noopLogger{}
}

func (*noopLogger) LogSample(string, float64) {
	return
}

func (*noopLogger) LogAggregate(string, *collector.Aggregation) {
	return
}

func (*noopLogger) LogSummary(string, float64, float64, float64, float64) {
	return
}
