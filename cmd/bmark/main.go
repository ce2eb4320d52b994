package main

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/kcz17/bmark"
	"github.com/kcz17/bmark/collector"
	"github.com/kcz17/bmark/config"
	"github.com/kcz17/bmark/logging"
	"github.com/kcz17/bmark/report"
	"github.com/kcz17/bmark/serving"
	"github.com/kcz17/bmark/workload"
)

func main() {
	conf := config.ReadConfig()

	var logger logging.Logger
	switch *conf.Logging.Driver {
	case "noop":
		logger = logging.NewNoopLogger()
	case "stdout":
		logger = logging.NewStdoutLogger()
	case "influxdb":
		logger = logging.NewInfluxDBLogger(
			*conf.Logging.InfluxDB.Host,
			*conf.Logging.InfluxDB.Token,
			*conf.Logging.InfluxDB.Org,
			*conf.Logging.InfluxDB.Bucket,
		)
	default:
		log.Fatalf("expected logging.driver one of {noop, stdout, influxdb}; got %s", *conf.Logging.Driver)
	}

	registry := bmark.New()
	registry.SetAccumulating(*conf.Measurement.Accumulate)
	registry.SetDisabledGC(*conf.Measurement.DisableGC)

	clock := bmark.NewProcessClock()
	for _, w := range conf.Workloads {
		runWorkload(registry, clock, logger, *conf.Measurement.Window, w)
		summarise(registry, logger, *w.ID)
		if conf.Report.HistogramDir != nil {
			writeHistogram(registry, *conf.Report.HistogramDir, *w.ID)
		}
	}

	if *conf.Serving.Enabled {
		api := &serving.APIServer{Registry: registry}
		log.Printf("serving measurement API on %s\n", *conf.Serving.Addr)
		if err := api.ListenAndServe(*conf.Serving.Addr); err != nil {
			log.Fatalf("error serving measurement API: %v", err)
		}
	}
}

// runWorkload spins the CPU for durations drawn from the workload's
// truncated-normal distribution, measuring every iteration through the
// registry.
func runWorkload(registry *bmark.Registry, clock bmark.Clock, logger logging.Logger, window int, w config.Workload) {
	live := collector.NewWindowCollector(window)

	mean := *w.MeanMs / 1000
	sigma := *w.StdDevMs / 1000
	for i := 0; i < *w.Iterations; i++ {
		target := workload.SampleTruncatedNormal(0, mean+4*sigma, mean, sigma)
		err := registry.Measure(func() error {
			workload.Spin(clock, target)
			return nil
		}, *w.ID)
		if err != nil {
			log.Fatalf("expected nil err from Measure; got %v", err)
		}

		if last, ok := registry.LastTime(); ok {
			logger.LogSample(*w.ID, last)
			live.Add(time.Duration(last * float64(time.Second)))
		}
	}

	logger.LogAggregate(*w.ID, live.Aggregate())
}

func summarise(registry *bmark.Registry, logger logging.Logger, id string) {
	avg, err := registry.Average(id)
	if err != nil {
		// Accumulation may be configured off; the run still updates
		// the live aggregates and last measurement.
		log.Printf("no samples accumulated under %q; skipping summary\n", id)
		return
	}
	median, err := registry.Median(id)
	if err != nil {
		log.Fatalf("expected nil err calculating median of %q; got %v", id, err)
	}
	p95, err := registry.Percentile(id, 95, true)
	if err != nil {
		log.Fatalf("expected nil err calculating p95 of %q; got %v", id, err)
	}
	stdDev, err := registry.StdDev(id)
	if err != nil {
		log.Fatalf("expected nil err calculating stddev of %q; got %v", id, err)
	}

	logger.LogSummary(id, avg, median, p95, stdDev)
}

func writeHistogram(registry *bmark.Registry, dir, id string) {
	samples, ok := registry.Times(id)
	if !ok {
		return
	}

	path := filepath.Join(dir, fmt.Sprintf("%s.png", id))
	if err := report.Histogram(samples, 50, id, path); err != nil {
		log.Printf("could not write histogram for %q: %v\n", id, err)
	}
}
