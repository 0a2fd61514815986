package ingest

import "github.com/prometheus/client_golang/prometheus"

var (
	importRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sales_import_runs_total",
		Help: "CSV import runs by outcome",
	}, []string{"status"})
	importRows = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sales_import_rows_total",
		Help: "Rows inserted by CSV imports",
	})
	importCoerced = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sales_import_coerced_fields_total",
		Help: "Malformed CSV cells stored as null",
	})
	importLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sales_import_duration_seconds",
		Help:    "CSV import run duration",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	})
)

func init() {
	prometheus.MustRegister(importRuns, importRows, importCoerced, importLatency)
}
