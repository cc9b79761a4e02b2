package storage

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azqueue"

	"activiti-query/config"
	"activiti-query/domain"
)

// Storage wraps Azure clients used by the service.
type Storage struct {
	queue                *azqueue.QueueClient
	processInstanceTable *aztables.Client
	taskTable            *aztables.Client
	variableTable        *aztables.Client
}

// New creates a Storage from the service configuration.
func New(cfg *config.StorageConfig) (*Storage, error) {
	queue, err := azqueue.NewQueueClientFromConnectionString(cfg.StorageConnectionString, cfg.EventsQueue, nil)
	if err != nil {
		return nil, err
	}
	svc, err := aztables.NewServiceClientFromConnectionString(cfg.StorageConnectionString, nil)
	if err != nil {
		return nil, err
	}
	return &Storage{
		queue:                queue,
		processInstanceTable: svc.NewClient(cfg.ProcessInstancesTable),
		taskTable:            svc.NewClient(cfg.TasksTable),
		variableTable:        svc.NewClient(cfg.VariablesTable),
	}, nil
}

// Dequeue retrieves a single message from the events queue.
func (s *Storage) Dequeue(ctx context.Context) (*azqueue.DequeuedMessage, error) {
	resp, err := s.queue.DequeueMessage(ctx, nil)
	if err != nil {
		return nil, err
	}
	if len(resp.Messages) == 0 {
		return nil, nil
	}
	return resp.Messages[0], nil
}

// Delete removes a processed message from the queue.
func (s *Storage) Delete(ctx context.Context, id, receipt string) error {
	_, err := s.queue.DeleteMessage(ctx, id, receipt, nil)
	return err
}

// Ping checks that the events queue is reachable.
func (s *Storage) Ping(ctx context.Context) error {
	_, err := s.queue.GetProperties(ctx, nil)
	return err
}

// GetProcessInstance retrieves a process instance entity if present.
func (s *Storage) GetProcessInstance(ctx context.Context, id string) (*domain.ProcessInstanceEntity, error) {
	var ent domain.ProcessInstanceEntity
	found, err := getEntity(ctx, s.processInstanceTable, id, id, &ent)
	if err != nil || !found {
		return nil, err
	}
	return &ent, nil
}

// UpsertProcessInstance creates or replaces a process instance entity.
func (s *Storage) UpsertProcessInstance(ctx context.Context, ent domain.ProcessInstanceEntity) error {
	return upsertEntity(ctx, s.processInstanceTable, ent)
}

// GetTask retrieves a task entity if present.
func (s *Storage) GetTask(ctx context.Context, processInstanceID, taskID string) (*domain.TaskEntity, error) {
	var ent domain.TaskEntity
	found, err := getEntity(ctx, s.taskTable, processInstanceID, taskID, &ent)
	if err != nil || !found {
		return nil, err
	}
	return &ent, nil
}

// UpsertTask creates or replaces a task entity.
func (s *Storage) UpsertTask(ctx context.Context, ent domain.TaskEntity) error {
	return upsertEntity(ctx, s.taskTable, ent)
}

// UpsertVariable creates or replaces a variable entity.
func (s *Storage) UpsertVariable(ctx context.Context, ent domain.VariableEntity) error {
	return upsertEntity(ctx, s.variableTable, ent)
}

// ListVariables returns at most limit variables of a process instance.
func (s *Storage) ListVariables(ctx context.Context, processInstanceID string, limit int32) ([]domain.VariableEntity, error) {
	filter := "PartitionKey eq '" + escapeODataString(processInstanceID) + "'"
	pager := s.variableTable.NewListEntitiesPager(&aztables.ListEntitiesOptions{Filter: &filter, Top: &limit})
	vars := []domain.VariableEntity{}
	for pager.More() && int32(len(vars)) < limit {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range resp.Entities {
			var ent domain.VariableEntity
			if err := json.Unmarshal(raw, &ent); err != nil {
				return nil, err
			}
			vars = append(vars, ent)
			if int32(len(vars)) == limit {
				break
			}
		}
	}
	return vars, nil
}

func getEntity(ctx context.Context, table *aztables.Client, pk, rk string, out any) (bool, error) {
	resp, err := table.GetEntity(ctx, pk, rk, nil)
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(resp.Value, out); err != nil {
		return false, err
	}
	return true, nil
}

func upsertEntity(ctx context.Context, table *aztables.Client, ent any) error {
	payload, err := json.Marshal(ent)
	if err == nil {
		_, err = table.UpsertEntity(ctx, payload, nil)
	}
	return err
}

func escapeODataString(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\'' {
			out = append(out, '\'')
		}
		out = append(out, s[i])
	}
	return string(out)
}
