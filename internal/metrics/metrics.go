// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// CipherOps counts cipher runs by cipher, direction and outcome
	CipherOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cipherloom_cipher_operations_total",
			Help: "Total number of cipher operations",
		},
		[]string{"cipher", "direction", "status"},
	)

	// CipherDuration observes cipher run latency
	CipherDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cipherloom_cipher_duration_seconds",
			Help:    "Duration of cipher operations",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
		[]string{"cipher", "direction"},
	)

	// CacheLookups counts result cache lookups by outcome
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cipherloom_cache_lookups_total",
			Help: "Result cache lookups",
		},
		[]string{"result"},
	)

	// HTTPRequests counts API requests by route and status code
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cipherloom_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "code"},
	)
)

func init() {
	prometheus.MustRegister(CipherOps, CipherDuration, CacheLookups, HTTPRequests)
}

// ObserveCipher records one cipher run
func ObserveCipher(cipher, direction string, elapsed time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	CipherOps.WithLabelValues(cipher, direction, status).Inc()
	CipherDuration.WithLabelValues(cipher, direction).Observe(elapsed.Seconds())
}

// ObserveCache records a cache hit or miss
func ObserveCache(hit bool) {
	if hit {
		CacheLookups.WithLabelValues("hit").Inc()
		return
	}
	CacheLookups.WithLabelValues("miss").Inc()
}
