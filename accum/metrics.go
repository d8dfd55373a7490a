// SPDX-License-Identifier: MIT

package accum

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "flowacc"

// Mode labels for metrics, spans and log entries.
const (
	modeDirections  = "d8"
	modeProportions = "mfd"
)

// tracerName is resolved against the global provider on every run, so a
// provider installed after package init still receives engine spans.
const tracerName = "github.com/katalvlaran/flowacc/accum"

var (
	runDurationHistogram = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "run_duration_ms",
		Help:      "Wall time of a flow accumulation run, validation to finalization.",
		Buckets:   []float64{1, 5, 10, 50, 100, 500, 1000, 5000, 30000, 120000},
	}, []string{"mode"})

	cellsProcessedCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "cells_processed_total",
		Help:      "Number of cells finalized by the topological scheduler.",
	}, []string{"mode"})

	cyclesDetectedCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "cycles_detected_total",
		Help:      "Number of runs rejected because the flow field contained a cycle.",
	}, []string{"mode"})
)

// milliseconds converts d to fractional milliseconds, the histogram's unit.
func milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
