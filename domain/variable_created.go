package domain

import (
	"context"
	"fmt"
	"time"
)

// VariableCreatedEventHandler turns variable-created events into variables and
// hands them to the task or process variable handler depending on whether the
// event names a task.
type VariableCreatedEventHandler struct {
	taskVariables    VariableHandler
	processVariables VariableHandler
}

func NewVariableCreatedEventHandler(taskVariables, processVariables VariableHandler) VariableCreatedEventHandler {
	return VariableCreatedEventHandler{
		taskVariables:    taskVariables,
		processVariables: processVariables,
	}
}

func (VariableCreatedEventHandler) HandledEventType() EventType { return VariableCreatedEventType }

// Handle forwards the variable carried by ev to exactly one downstream handler.
func (h VariableCreatedEventHandler) Handle(ctx context.Context, ev ProcessEngineEvent) error {
	var created VariableCreatedEvent
	switch e := ev.(type) {
	case VariableCreatedEvent:
		created = e
	case *VariableCreatedEvent:
		created = *e
	default:
		return fmt.Errorf("%w: %s", ErrUnexpectedEvent, ev.Type())
	}
	v := h.variableFrom(created)
	if created.TaskID != nil {
		if err := h.taskVariables.Handle(ctx, v); err != nil {
			return fmt.Errorf("task variable %s: %w", v.Name, err)
		}
		return nil
	}
	if err := h.processVariables.Handle(ctx, v); err != nil {
		return fmt.Errorf("process variable %s: %w", v.Name, err)
	}
	return nil
}

func (h VariableCreatedEventHandler) variableFrom(ev VariableCreatedEvent) Variable {
	ts := time.UnixMilli(ev.Timestamp).UTC()
	var taskID *string
	if ev.TaskID != nil {
		t := *ev.TaskID
		taskID = &t
	}
	return Variable{
		ID:                VariableID(ev.ProcessInstanceID, taskID, ev.VariableName),
		ExecutionID:       ev.ExecutionID,
		ProcessInstanceID: ev.ProcessInstanceID,
		Name:              ev.VariableName,
		TaskID:            taskID,
		Type:              ev.VariableType,
		Value:             ev.VariableValue,
		CreateTime:        ts,
		LastUpdatedTime:   ts,
	}
}
