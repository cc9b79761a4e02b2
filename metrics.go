package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "query_events_processed_total",
		Help: "Total number of engine events projected into the read model, labelled by event type.",
	}, []string{"event_type"})

	eventsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "query_events_failed_total",
		Help: "Total number of engine events whose projection failed, labelled by event type.",
	}, []string{"event_type"})

	messagesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "query_messages_dropped_total",
		Help: "Total number of queue messages deleted after reaching the dequeue limit.",
	})

	messageProcessingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "query_message_processing_duration_ms",
		Help:    "Queue message processing latency in milliseconds.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	})
)
