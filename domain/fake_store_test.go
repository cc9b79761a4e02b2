package domain

import "context"

type fakeStore struct {
	processInstances map[string]ProcessInstanceEntity
	tasks            map[string]TaskEntity
	variables        map[string]VariableEntity
	upsertVariable   VariableEntity
	getErr           error
	upsertErr        error
}

func taskKey(pk, rk string) string { return pk + "/" + rk }

func (f *fakeStore) GetProcessInstance(ctx context.Context, id string) (*ProcessInstanceEntity, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	ent, ok := f.processInstances[id]
	if !ok {
		return nil, nil
	}
	return &ent, nil
}

func (f *fakeStore) UpsertProcessInstance(ctx context.Context, ent ProcessInstanceEntity) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	if f.processInstances == nil {
		f.processInstances = map[string]ProcessInstanceEntity{}
	}
	f.processInstances[ent.RowKey] = ent
	return nil
}

func (f *fakeStore) GetTask(ctx context.Context, processInstanceID, taskID string) (*TaskEntity, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	ent, ok := f.tasks[taskKey(processInstanceID, taskID)]
	if !ok {
		return nil, nil
	}
	return &ent, nil
}

func (f *fakeStore) UpsertTask(ctx context.Context, ent TaskEntity) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	if f.tasks == nil {
		f.tasks = map[string]TaskEntity{}
	}
	f.tasks[taskKey(ent.PartitionKey, ent.RowKey)] = ent
	return nil
}

func (f *fakeStore) UpsertVariable(ctx context.Context, ent VariableEntity) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	if f.variables == nil {
		f.variables = map[string]VariableEntity{}
	}
	f.variables[taskKey(ent.PartitionKey, ent.RowKey)] = ent
	f.upsertVariable = ent
	return nil
}

func ptrString(s string) *string { return &s }
