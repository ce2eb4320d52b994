package logging

import (
	"log"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/kcz17/bmark/collector"
)

// influxDBLogger logs the output to an external InfluxDB instance.
type influxDBLogger struct {
	client      influxdb2.Client
	asyncWriter api.WriteAPI
}

func NewInfluxDBLogger(baseURL, authToken, org, bucket string) *influxDBLogger {
	options := influxdb2.DefaultOptions()
	options.WriteOptions().SetBatchSize(1000)
	options.WriteOptions().SetFlushInterval(250)

	client := influxdb2.NewClientWithOptions(baseURL, authToken, options)
	writeAPI := client.WriteAPI(org, bucket)

	// Create a goroutine for reading and logging async write errors.
	errorsCh := writeAPI.Errors()
	go func() {
		for err := range errorsCh {
			log.Printf("influxdb2 logging async write error: %v\n", err)
		}
	}()

	return &influxDBLogger{
		client:      client,
		asyncWriter: writeAPI,
	}
}

func (l *influxDBLogger) LogSample(id string, t float64) {
	p := influxdb2.NewPointWithMeasurement("bmark_sample").
		AddTag("id", id).
		AddField("t", t).
		SetTime(time.Now())
	l.asyncWriter.WritePoint(p)
}

func (l *influxDBLogger) LogAggregate(id string, a *collector.Aggregation) {
	p := influxdb2.NewPointWithMeasurement("bmark_aggregate").
		AddTag("id", id).
		AddField("n", a.Count).
		AddField("avg", a.Avg.Seconds()).
		AddField("p50", a.P50.Seconds()).
		AddField("p95", a.P95.Seconds()).
		AddField("max", a.Max.Seconds()).
		SetTime(time.Now())
	l.asyncWriter.WritePoint(p)
}

func (l *influxDBLogger) LogSummary(id string, avg, median, p95, stdDev float64) {
	p := influxdb2.NewPointWithMeasurement("bmark_summary").
		AddTag("id", id).
		AddField("avg", avg).
		AddField("median", median).
		AddField("p95", p95).
		AddField("stddev", stdDev).
		SetTime(time.Now())
	l.asyncWriter.WritePoint(p)
}
