package domain

import (
	"encoding/base64"

	"github.com/google/uuid"
)

// Entity represents base table entity keys.
type Entity struct {
	PartitionKey string `json:"PartitionKey"`
	RowKey       string `json:"RowKey"`
}

const (
	EdmInt32 = "Edm.Int32"
	EdmInt64 = "Edm.Int64"
)

const (
	ProcessInstanceStatusRunning = "RUNNING"
	TaskStatusCreated            = "CREATED"
)

// ProcessInstanceEntity represents a process instance stored in the read model.
type ProcessInstanceEntity struct {
	Entity
	ProcessDefinitionID string `json:"ProcessDefinitionId,omitempty"`
	BusinessKey         string `json:"BusinessKey,omitempty"`
	Name                string `json:"Name,omitempty"`
	Status              string `json:"Status"`
	LastModified        int64  `json:"LastModified,string"`
	LastModifiedType    string `json:"LastModified@odata.type"`
}

// TaskEntity represents a task stored in the read model.
type TaskEntity struct {
	Entity
	Name                string `json:"Name,omitempty"`
	Assignee            string `json:"Assignee,omitempty"`
	Description         string `json:"Description,omitempty"`
	Priority            int    `json:"Priority"`
	PriorityType        string `json:"Priority@odata.type"`
	ProcessDefinitionID string `json:"ProcessDefinitionId,omitempty"`
	Status              string `json:"Status"`
	LastModified        int64  `json:"LastModified,string"`
	LastModifiedType    string `json:"LastModified@odata.type"`
}

// VariableEntity represents a variable stored in the read model.
type VariableEntity struct {
	Entity
	VariableID          string  `json:"VariableId"`
	Name                string  `json:"Name"`
	Type                string  `json:"Type,omitempty"`
	Value               string  `json:"Value,omitempty"`
	TaskID              *string `json:"TaskId,omitempty"`
	ExecutionID         string  `json:"ExecutionId,omitempty"`
	CreateTime          int64   `json:"CreateTime,string"`
	CreateTimeType      string  `json:"CreateTime@odata.type"`
	LastUpdatedTime     int64   `json:"LastUpdatedTime,string"`
	LastUpdatedTimeType string  `json:"LastUpdatedTime@odata.type"`
}

// VariableRowKey returns the row key of a variable within its process
// instance partition. Names and task ids are base64url encoded so the key never
// holds characters Azure Tables rejects in a RowKey (/ \ # ? and control
// characters). Process keys start with "p_", task keys with "t_" and separate
// the task id from the name with '.', which is outside the base64url alphabet.
func VariableRowKey(taskID *string, name string) string {
	if taskID == nil {
		return "p_" + encodeKeyPart(name)
	}
	return "t_" + encodeKeyPart(*taskID) + "." + encodeKeyPart(name)
}

// VariableID derives a stable identifier for a variable so that redelivered
// events rewrite the same row with the same id.
func VariableID(processInstanceID string, taskID *string, name string) string {
	key := processInstanceID + "/" + VariableRowKey(taskID, name)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String()
}

func encodeKeyPart(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

func newVariableEntity(v Variable) VariableEntity {
	return VariableEntity{
		Entity:              Entity{PartitionKey: v.ProcessInstanceID, RowKey: VariableRowKey(v.TaskID, v.Name)},
		VariableID:          v.ID,
		Name:                v.Name,
		Type:                v.Type,
		Value:               v.Value,
		TaskID:              v.TaskID,
		ExecutionID:         v.ExecutionID,
		CreateTime:          v.CreateTime.UnixMilli(),
		CreateTimeType:      EdmInt64,
		LastUpdatedTime:     v.LastUpdatedTime.UnixMilli(),
		LastUpdatedTimeType: EdmInt64,
	}
}
