// Package metrics defines the Prometheus instrumentation for the backend.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReceiptsIngested counts successfully ingested receipts.
	ReceiptsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "snapledger_receipts_ingested_total",
		Help: "Number of receipts successfully ingested.",
	})

	// RecognitionDuration observes one recognition-service round trip,
	// labeled by outcome (ok, error).
	RecognitionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "snapledger_recognition_request_duration_seconds",
		Help:    "Duration of recognition service calls.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})

	// ItemMutations counts expense item mutations by operation
	// (create, update, delete).
	ItemMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snapledger_item_mutations_total",
		Help: "Number of expense item mutations.",
	}, []string{"operation"})
)
