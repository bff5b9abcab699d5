// Package telemetry holds the process-wide Prometheus collectors.
// Everything registers against the default registry under the fresco
// namespace; the debug server exposes it at /metrics.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fresco"

var (
	// FramesRendered counts frames pushed through Draw+Flush.
	FramesRendered = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "frames_rendered_total",
		Help:      "Frames drawn and flushed to the active renderer.",
	})

	// CellsEmitted counts changed cells written by the diff protocol.
	CellsEmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cells_emitted_total",
		Help:      "Changed cells emitted across all flushed frames.",
	})

	// Reloads counts reload attempts by result (ok or failed).
	Reloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reloads_total",
		Help:      "Dashboard reload attempts by result.",
	}, []string{"result"})

	// ReloadDuration observes wall time of load+compile+swap.
	ReloadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "reload_duration_seconds",
		Help:      "Duration of a full reload cycle.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
	})

	// WatchEvents counts coalesced change sets delivered by the watcher.
	WatchEvents = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "watch_events_total",
		Help:      "Coalesced file change sets observed.",
	})

	// EngineState reports the reload engine state as a numeric gauge
	// (0 idle, 1 loading, 2 ready, 3 failed).
	EngineState = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "engine_state",
		Help:      "Current reload engine state (0 idle, 1 loading, 2 ready, 3 failed).",
	})
)

// ReloadResult label values.
const (
	ResultOK     = "ok"
	ResultFailed = "failed"
)
