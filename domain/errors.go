package domain

import "errors"

var (
	// ErrUnexpectedEvent is returned when a handler receives an event type it is
	// not registered for.
	ErrUnexpectedEvent = errors.New("unexpected event type")
	// ErrInvalidEvent is returned for payloads that cannot be decoded or lack
	// mandatory identifiers.
	ErrInvalidEvent            = errors.New("invalid event")
	ErrProcessInstanceNotFound = errors.New("process instance not found")
	ErrTaskNotFound            = errors.New("task not found")
	ErrDuplicateHandler        = errors.New("duplicate event handler")
)
