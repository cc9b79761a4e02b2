package domain

import (
	"context"
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"
)

// EventHandler projects one type of engine event into the read model.
type EventHandler interface {
	Handle(ctx context.Context, ev ProcessEngineEvent) error
	HandledEventType() EventType
}

// EventHandlerContext routes events to the handler registered for their type.
type EventHandlerContext struct {
	handlers map[EventType]EventHandler
}

func NewEventHandlerContext(handlers ...EventHandler) (*EventHandlerContext, error) {
	byType := make(map[EventType]EventHandler, len(handlers))
	for _, h := range handlers {
		t := h.HandledEventType()
		if _, ok := byType[t]; ok {
			return nil, fmt.Errorf("%w for %s", ErrDuplicateHandler, t)
		}
		byType[t] = h
	}
	return &EventHandlerContext{handlers: byType}, nil
}

// Handle delegates the event to its handler. Events without a handler are
// skipped.
func (c *EventHandlerContext) Handle(ctx context.Context, ev ProcessEngineEvent) error {
	h, ok := c.handlers[ev.Type()]
	if !ok {
		log.WithFields(log.Fields{"eventType": ev.Type(), "processInstance": ev.Base().ProcessInstanceID}).Debug("no handler for event")
		return nil
	}
	return h.Handle(ctx, ev)
}

// HandledEventTypes lists the registered event types in sorted order.
func (c *EventHandlerContext) HandledEventTypes() []EventType {
	types := make([]EventType, 0, len(c.handlers))
	for t := range c.handlers {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
