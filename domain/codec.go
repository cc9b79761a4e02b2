package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/bytedance/sonic"
)

// DecodeEvents decodes a queue payload into typed events. The payload is
// either a JSON array of events or a single event object.
func DecodeEvents(payload []byte) ([]ProcessEngineEvent, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidEvent)
	}
	var raws []json.RawMessage
	if trimmed[0] == '[' {
		if err := sonic.ConfigStd.Unmarshal(trimmed, &raws); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
		}
	} else {
		raws = []json.RawMessage{trimmed}
	}
	events := make([]ProcessEngineEvent, 0, len(raws))
	for i, raw := range raws {
		ev, err := DecodeEvent(raw)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

// DecodeEvent decodes a single event object by its eventType tag.
func DecodeEvent(raw []byte) (ProcessEngineEvent, error) {
	var base BaseEvent
	if err := sonic.ConfigStd.Unmarshal(raw, &base); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if base.EventType == "" {
		return nil, fmt.Errorf("%w: missing eventType", ErrInvalidEvent)
	}
	switch eventTypeAliases[base.EventType] {
	case VariableCreatedEventType:
		var ev VariableCreatedEvent
		if err := sonic.ConfigStd.Unmarshal(raw, &ev); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
		}
		return ev, nil
	case ProcessStartedEventType:
		var ev ProcessStartedEvent
		if err := sonic.ConfigStd.Unmarshal(raw, &ev); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
		}
		return ev, nil
	case TaskCreatedEventType:
		var ev TaskCreatedEvent
		if err := sonic.ConfigStd.Unmarshal(raw, &ev); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
		}
		return ev, nil
	default:
		return UnknownEvent{BaseEvent: base}, nil
	}
}
