package logging

import (
	"log"

	"github.com/kcz17/bmark/collector"
)

// stdoutLogger logs the output to standard output.
type stdoutLogger struct{}

func NewStdoutLogger() *stdoutLogger {
	return &stdoutLogger{}
}

func (*stdoutLogger) LogSample(_ string, _ float64) {
	// Do not log individual samples to stdout.
	return
}

func (*stdoutLogger) LogAggregate(id string, a *collector.Aggregation) {
	log.Printf("[%s] n: %d, avg: %v, p50: %v, p95: %v, max: %v\n",
		id, a.Count, a.Avg, a.P50, a.P95, a.Max)
}

func (*stdoutLogger) LogSummary(id string, avg, median, p95, stdDev float64) {
	log.Printf("[%s] avg: %.6fs, median: %.6fs, p95: %.6fs, stddev: %.6fs\n",
		id, avg, median, p95, stdDev)
}
