package sales

import "github.com/prometheus/client_golang/prometheus"

var (
	listLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name: "sales_list_latency_seconds",
		Help: "Sales list query latency distribution",
	})
	listErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sales_list_errors_total",
		Help: "Sales list queries that failed in storage",
	})
)

func init() {
	prometheus.MustRegister(listLatency, listErrors)
}
