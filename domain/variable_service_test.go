package domain

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func testVariable(taskID *string) Variable {
	ts := time.UnixMilli(1500).UTC()
	return Variable{
		ID:                "id1",
		ExecutionID:       "10",
		ProcessInstanceID: "30",
		Name:              "var",
		TaskID:            taskID,
		Type:              "java.lang.String",
		Value:             "content",
		CreateTime:        ts,
		LastUpdatedTime:   ts,
	}
}

func TestProcessVariableCreatedStoresVariable(t *testing.T) {
	fs := &fakeStore{processInstances: map[string]ProcessInstanceEntity{"30": {Entity: Entity{PartitionKey: "30", RowKey: "30"}}}}
	h := NewProcessVariableCreatedHandler(fs)
	if err := h.Handle(context.Background(), testVariable(nil)); err != nil {
		t.Fatalf("handle: %v", err)
	}
	ent := fs.upsertVariable
	if ent.PartitionKey != "30" || ent.RowKey != VariableRowKey(nil, "var") || ent.Name != "var" || ent.TaskID != nil {
		t.Fatalf("unexpected keys: %#v", ent)
	}
	if ent.VariableID != "id1" || ent.ExecutionID != "10" || ent.Value != "content" || ent.Type != "java.lang.String" {
		t.Fatalf("unexpected fields: %#v", ent)
	}
	if ent.CreateTime != 1500 || ent.LastUpdatedTime != 1500 || ent.CreateTimeType != EdmInt64 || ent.LastUpdatedTimeType != EdmInt64 {
		t.Fatalf("unexpected timestamps: %#v", ent)
	}
}

func TestProcessVariableCreatedMissingProcessInstance(t *testing.T) {
	fs := &fakeStore{}
	h := NewProcessVariableCreatedHandler(fs)
	err := h.Handle(context.Background(), testVariable(nil))
	if !errors.Is(err, ErrProcessInstanceNotFound) {
		t.Fatalf("expected ErrProcessInstanceNotFound, got %v", err)
	}
	if len(fs.variables) != 0 {
		t.Fatalf("variable stored for missing process instance")
	}
}

func TestProcessVariableCreatedPropagatesStorageError(t *testing.T) {
	boom := errors.New("boom")
	fs := &fakeStore{getErr: boom}
	h := NewProcessVariableCreatedHandler(fs)
	if err := h.Handle(context.Background(), testVariable(nil)); !errors.Is(err, boom) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestTaskVariableCreatedStoresVariable(t *testing.T) {
	fs := &fakeStore{tasks: map[string]TaskEntity{taskKey("30", "40"): {Entity: Entity{PartitionKey: "30", RowKey: "40"}}}}
	h := NewTaskVariableCreatedHandler(fs)
	if err := h.Handle(context.Background(), testVariable(ptrString("40"))); err != nil {
		t.Fatalf("handle: %v", err)
	}
	ent := fs.upsertVariable
	if ent.PartitionKey != "30" || ent.RowKey != VariableRowKey(ptrString("40"), "var") || ent.Name != "var" {
		t.Fatalf("unexpected keys: %#v", ent)
	}
	if ent.TaskID == nil || *ent.TaskID != "40" {
		t.Fatalf("unexpected task id: %#v", ent.TaskID)
	}
}

func TestTaskVariableCreatedMissingTask(t *testing.T) {
	fs := &fakeStore{}
	h := NewTaskVariableCreatedHandler(fs)
	err := h.Handle(context.Background(), testVariable(ptrString("40")))
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskVariableCreatedRequiresTaskID(t *testing.T) {
	h := NewTaskVariableCreatedHandler(&fakeStore{})
	if err := h.Handle(context.Background(), testVariable(nil)); !errors.Is(err, ErrInvalidEvent) {
		t.Fatalf("expected ErrInvalidEvent, got %v", err)
	}
}

func TestVariableRowKey(t *testing.T) {
	if got := VariableRowKey(nil, "var"); got != "p_dmFy" {
		t.Fatalf("process variable key: %s", got)
	}
	if got := VariableRowKey(ptrString("40"), "var"); got != "t_NDA.dmFy" {
		t.Fatalf("task variable key: %s", got)
	}
}

func TestVariableRowKeyDistinguishesLookalikes(t *testing.T) {
	keys := map[string]string{
		"process 40_var": VariableRowKey(nil, "40_var"),
		"task 40 var":    VariableRowKey(ptrString("40"), "var"),
		"task 4 0_var":   VariableRowKey(ptrString("4"), "0_var"),
		"task 40_ var":   VariableRowKey(ptrString("40_"), "var"),
		"task 40 _var":   VariableRowKey(ptrString("40"), "_var"),
		"process empty":  VariableRowKey(nil, ""),
		"task empty":     VariableRowKey(ptrString(""), ""),
	}
	seen := map[string]string{}
	for name, key := range keys {
		if other, ok := seen[key]; ok {
			t.Fatalf("%s and %s share row key %q", name, other, key)
		}
		seen[key] = name
	}
}

func TestVariableRowKeyIsTableSafe(t *testing.T) {
	names := []string{"a/b", "a\\b", "a#b", "a?b", "tab\tname", "line\nbreak", "\x7f", "ümlaut"}
	for _, name := range names {
		for _, taskID := range []*string{nil, ptrString("task/1#?")} {
			key := VariableRowKey(taskID, name)
			for _, r := range key {
				if strings.ContainsRune("/\\#?", r) || r < 0x20 || (r >= 0x7f && r <= 0x9f) {
					t.Fatalf("row key %q for %q contains %q", key, name, r)
				}
			}
		}
	}
}

func TestProcessVariableCreatedStoresNameWithReservedCharacters(t *testing.T) {
	fs := &fakeStore{processInstances: map[string]ProcessInstanceEntity{"30": {Entity: Entity{PartitionKey: "30", RowKey: "30"}}}}
	h := NewProcessVariableCreatedHandler(fs)
	v := testVariable(nil)
	v.Name = "a/b#c"
	if err := h.Handle(context.Background(), v); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if ent := fs.upsertVariable; ent.Name != "a/b#c" || strings.ContainsAny(ent.RowKey, "/#") {
		t.Fatalf("unexpected entity: %#v", ent)
	}
}
