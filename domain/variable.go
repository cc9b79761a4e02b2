package domain

import (
	"context"
	"time"
)

// Variable is the read-model view of a process or task variable.
type Variable struct {
	ID                string
	ExecutionID       string
	ProcessInstanceID string
	Name              string
	TaskID            *string
	Type              string
	Value             string
	CreateTime        time.Time
	LastUpdatedTime   time.Time
}

// VariableHandler consumes variables produced by the dispatcher.
type VariableHandler interface {
	Handle(ctx context.Context, v Variable) error
}
