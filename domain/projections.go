package domain

import (
	"context"
	"fmt"
)

// ProcessInstanceStorage defines methods required for projecting process instances.
type ProcessInstanceStorage interface {
	UpsertProcessInstance(ctx context.Context, ent ProcessInstanceEntity) error
}

// TaskStorage defines methods required for projecting tasks.
type TaskStorage interface {
	UpsertTask(ctx context.Context, ent TaskEntity) error
}

// ProcessStartedEventHandler records started process instances.
type ProcessStartedEventHandler struct{ st ProcessInstanceStorage }

func NewProcessStartedEventHandler(st ProcessInstanceStorage) ProcessStartedEventHandler {
	return ProcessStartedEventHandler{st: st}
}

func (ProcessStartedEventHandler) HandledEventType() EventType { return ProcessStartedEventType }

func (h ProcessStartedEventHandler) Handle(ctx context.Context, ev ProcessEngineEvent) error {
	started, ok := ev.(ProcessStartedEvent)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnexpectedEvent, ev.Type())
	}
	id := started.ProcessInstance.ID
	if id == "" {
		id = started.ProcessInstanceID
	}
	if id == "" {
		return fmt.Errorf("%w: process started without instance id", ErrInvalidEvent)
	}
	defID := started.ProcessInstance.ProcessDefinitionID
	if defID == "" {
		defID = started.ProcessDefinitionID
	}
	return h.st.UpsertProcessInstance(ctx, ProcessInstanceEntity{
		Entity:              Entity{PartitionKey: id, RowKey: id},
		ProcessDefinitionID: defID,
		BusinessKey:         started.ProcessInstance.BusinessKey,
		Name:                started.ProcessInstance.Name,
		Status:              ProcessInstanceStatusRunning,
		LastModified:        started.Timestamp,
		LastModifiedType:    EdmInt64,
	})
}

// TaskCreatedEventHandler records created tasks.
type TaskCreatedEventHandler struct{ st TaskStorage }

func NewTaskCreatedEventHandler(st TaskStorage) TaskCreatedEventHandler {
	return TaskCreatedEventHandler{st: st}
}

func (TaskCreatedEventHandler) HandledEventType() EventType { return TaskCreatedEventType }

func (h TaskCreatedEventHandler) Handle(ctx context.Context, ev ProcessEngineEvent) error {
	created, ok := ev.(TaskCreatedEvent)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnexpectedEvent, ev.Type())
	}
	task := created.Task
	pk := task.ProcessInstanceID
	if pk == "" {
		pk = created.ProcessInstanceID
	}
	if task.ID == "" || pk == "" {
		return fmt.Errorf("%w: task created without task or process instance id", ErrInvalidEvent)
	}
	defID := task.ProcessDefinitionID
	if defID == "" {
		defID = created.ProcessDefinitionID
	}
	return h.st.UpsertTask(ctx, TaskEntity{
		Entity:              Entity{PartitionKey: pk, RowKey: task.ID},
		Name:                task.Name,
		Assignee:            task.Assignee,
		Description:         task.Description,
		Priority:            task.Priority,
		PriorityType:        EdmInt32,
		ProcessDefinitionID: defID,
		Status:              TaskStatusCreated,
		LastModified:        created.Timestamp,
		LastModifiedType:    EdmInt64,
	})
}
