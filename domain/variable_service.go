package domain

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// ProcessVariableStorage defines methods required for storing process variables.
type ProcessVariableStorage interface {
	GetProcessInstance(ctx context.Context, id string) (*ProcessInstanceEntity, error)
	UpsertVariable(ctx context.Context, ent VariableEntity) error
}

// TaskVariableStorage defines methods required for storing task variables.
type TaskVariableStorage interface {
	GetTask(ctx context.Context, processInstanceID, taskID string) (*TaskEntity, error)
	UpsertVariable(ctx context.Context, ent VariableEntity) error
}

// ProcessVariableCreatedHandler stores variables that belong to a process
// instance.
type ProcessVariableCreatedHandler struct{ st ProcessVariableStorage }

func NewProcessVariableCreatedHandler(st ProcessVariableStorage) ProcessVariableCreatedHandler {
	return ProcessVariableCreatedHandler{st: st}
}

func (h ProcessVariableCreatedHandler) Handle(ctx context.Context, v Variable) error {
	pi, err := h.st.GetProcessInstance(ctx, v.ProcessInstanceID)
	if err != nil {
		return err
	}
	if pi == nil {
		log.WithFields(log.Fields{"processInstance": v.ProcessInstanceID, "variable": v.Name}).Error("variable created for missing process instance")
		return fmt.Errorf("%w: %s", ErrProcessInstanceNotFound, v.ProcessInstanceID)
	}
	return h.st.UpsertVariable(ctx, newVariableEntity(v))
}

// TaskVariableCreatedHandler stores variables that belong to a task.
type TaskVariableCreatedHandler struct{ st TaskVariableStorage }

func NewTaskVariableCreatedHandler(st TaskVariableStorage) TaskVariableCreatedHandler {
	return TaskVariableCreatedHandler{st: st}
}

func (h TaskVariableCreatedHandler) Handle(ctx context.Context, v Variable) error {
	if v.TaskID == nil {
		return fmt.Errorf("%w: task variable %s without task id", ErrInvalidEvent, v.Name)
	}
	task, err := h.st.GetTask(ctx, v.ProcessInstanceID, *v.TaskID)
	if err != nil {
		return err
	}
	if task == nil {
		log.WithFields(log.Fields{"task": *v.TaskID, "variable": v.Name}).Error("variable created for missing task")
		return fmt.Errorf("%w: %s", ErrTaskNotFound, *v.TaskID)
	}
	return h.st.UpsertVariable(ctx, newVariableEntity(v))
}
