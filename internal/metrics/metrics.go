// Package metrics exposes Prometheus instrumentation for the gateway.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ConversionsTotal counts finished conversions by outcome
	// (success, failure, timeout).
	ConversionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_conversions_total",
		Help: "Number of conversion requests by terminal outcome.",
	}, []string{"outcome"})

	// RejectedUploadsTotal counts requests refused before a converter
	// process was spawned.
	RejectedUploadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gateway_rejected_uploads_total",
		Help: "Number of uploads rejected during validation.",
	})

	// ConversionDuration observes wall-clock converter runtime.
	ConversionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gateway_conversion_duration_seconds",
		Help:    "Wall-clock duration of converter subprocess runs.",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
	})
)
