package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"activiti-query/domain"
)

var tracer = otel.Tracer("activiti-query")

type eventRouter interface {
	Handle(ctx context.Context, ev domain.ProcessEngineEvent) error
}

// processMessage projects every event of a queue message, refreshes the
// variable cache of the touched process instances and announces the change.
func processMessage(ctx context.Context, h eventRouter, cache cacheRefresher, rc *redis.Client, channel, payload string) (err error) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "process-message", trace.WithSpanKind(trace.SpanKindConsumer))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		messageProcessingDuration.Observe(float64(time.Since(start)) / float64(time.Millisecond))
	}()

	evs, err := domain.DecodeEvents([]byte(payload))
	if err != nil {
		return err
	}
	span.SetAttributes(attribute.Int("events", len(evs)))

	touched := []string{}
	seen := map[string]struct{}{}
	for _, ev := range evs {
		label := eventLabel(ev)
		if err := h.Handle(ctx, ev); err != nil {
			eventsFailed.WithLabelValues(label).Inc()
			return fmt.Errorf("handle %s: %w", label, err)
		}
		eventsProcessed.WithLabelValues(label).Inc()
		if ev.Type() != domain.VariableCreatedEventType {
			continue
		}
		pid := ev.Base().ProcessInstanceID
		if _, ok := seen[pid]; !ok {
			seen[pid] = struct{}{}
			touched = append(touched, pid)
		}
	}
	if cache != nil {
		for _, pid := range touched {
			cache.RefreshVariables(ctx, pid)
		}
	}
	if rc != nil && channel != "" {
		if err := rc.Publish(ctx, channel, payload).Err(); err != nil {
			log.WithError(err).Errorf("Unable to publish updates to %s", channel)
		}
	}
	return nil
}

// eventLabel bounds the metric label set: unrecognised tags come straight from
// the payload.
func eventLabel(ev domain.ProcessEngineEvent) string {
	switch ev.(type) {
	case domain.UnknownEvent, *domain.UnknownEvent:
		return "unknown"
	}
	return string(ev.Type())
}
