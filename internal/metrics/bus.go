// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package metrics holds the Prometheus collectors exported by minibus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Handler invocation results.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultPanic   = "panic"
)

// Drop reasons.
const (
	DropReasonClosed = "closed"
)

var (
	BusPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "minibus_events_published_total",
		Help: "Total number of events accepted for dispatch by bus and event type",
	}, []string{"bus", "event_type"})

	BusDroppedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "minibus_events_dropped_total",
		Help: "Total number of events dropped before dispatch by bus and reason",
	}, []string{"bus", "reason"})

	HandlerInvocationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "minibus_handler_invocations_total",
		Help: "Total number of handler invocations by bus, event type and result",
	}, []string{"bus", "event_type", "result"})

	HandlerDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "minibus_handler_duration_seconds",
		Help:    "Handler execution time by bus and event type",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
	}, []string{"bus", "event_type"})

	BusQueueDepth = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "minibus_queue_depth",
		Help: "Number of published events not yet dequeued by the dispatch loop",
	}, []string{"bus"})

	SubscribersReclaimedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "minibus_subscribers_reclaimed_total",
		Help: "Total number of subscribers removed after being garbage collected",
	}, []string{"bus"})
)

func label(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}

// IncPublished records an event accepted by a bus.
func IncPublished(bus, eventType string) {
	BusPublishedTotal.WithLabelValues(label(bus), label(eventType)).Inc()
}

// IncDropped records an event dropped before dispatch.
func IncDropped(bus, reason string) {
	BusDroppedTotal.WithLabelValues(label(bus), label(reason)).Inc()
}

// ObserveHandler records the outcome and duration of one handler invocation.
func ObserveHandler(bus, eventType, result string, d time.Duration) {
	bus, eventType = label(bus), label(eventType)
	HandlerInvocationsTotal.WithLabelValues(bus, eventType, label(result)).Inc()
	HandlerDuration.WithLabelValues(bus, eventType).Observe(d.Seconds())
}

// SetQueueDepth publishes the current dispatch queue length of a bus.
func SetQueueDepth(bus string, depth int) {
	BusQueueDepth.WithLabelValues(label(bus)).Set(float64(depth))
}

// AddReclaimed records subscribers removed by reclamation.
func AddReclaimed(bus string, n int) {
	if n <= 0 {
		return
	}
	SubscribersReclaimedTotal.WithLabelValues(label(bus)).Add(float64(n))
}
