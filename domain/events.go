package domain

// EventType identifies the kind of a process engine event.
type EventType string

const (
	ProcessStartedEventType  EventType = "ProcessStartedEvent"
	TaskCreatedEventType     EventType = "TaskCreatedEvent"
	VariableCreatedEventType EventType = "VariableCreatedEvent"
)

// eventTypeAliases maps every accepted eventType tag to its canonical type.
var eventTypeAliases = map[string]EventType{
	string(ProcessStartedEventType):  ProcessStartedEventType,
	"processStarted":                 ProcessStartedEventType,
	string(TaskCreatedEventType):     TaskCreatedEventType,
	"taskCreated":                    TaskCreatedEventType,
	string(VariableCreatedEventType): VariableCreatedEventType,
	"variableCreated":                VariableCreatedEventType,
}

// ProcessEngineEvent is implemented by every event emitted by the engine.
type ProcessEngineEvent interface {
	Type() EventType
	Base() BaseEvent
}

// BaseEvent carries the fields shared by all engine events.
type BaseEvent struct {
	Timestamp           int64  `json:"timestamp"`
	EventType           string `json:"eventType"`
	ExecutionID         string `json:"executionId"`
	ProcessDefinitionID string `json:"processDefinitionId"`
	ProcessInstanceID   string `json:"processInstanceId"`
}

func (e BaseEvent) Base() BaseEvent { return e }

// VariableCreatedEvent is raised when a variable is set for the first time on
// a process instance or on one of its tasks. TaskID is nil for process
// variables.
type VariableCreatedEvent struct {
	BaseEvent
	VariableName  string  `json:"variableName"`
	VariableValue string  `json:"variableValue"`
	VariableType  string  `json:"variableType"`
	TaskID        *string `json:"taskId,omitempty"`
}

// NewVariableCreatedEvent builds a VariableCreatedEvent. taskID may be nil.
func NewVariableCreatedEvent(timestamp int64, eventType, executionID, processDefinitionID, processInstanceID, variableName, variableValue, variableType string, taskID *string) VariableCreatedEvent {
	return VariableCreatedEvent{
		BaseEvent: BaseEvent{
			Timestamp:           timestamp,
			EventType:           eventType,
			ExecutionID:         executionID,
			ProcessDefinitionID: processDefinitionID,
			ProcessInstanceID:   processInstanceID,
		},
		VariableName:  variableName,
		VariableValue: variableValue,
		VariableType:  variableType,
		TaskID:        taskID,
	}
}

func (VariableCreatedEvent) Type() EventType { return VariableCreatedEventType }

type ProcessInstanceData struct {
	ID                  string `json:"id"`
	ProcessDefinitionID string `json:"processDefinitionId"`
	BusinessKey         string `json:"businessKey"`
	Name                string `json:"name"`
}

// ProcessStartedEvent is raised when a new process instance starts.
type ProcessStartedEvent struct {
	BaseEvent
	ProcessInstance ProcessInstanceData `json:"processInstance"`
}

func (ProcessStartedEvent) Type() EventType { return ProcessStartedEventType }

type TaskData struct {
	ID                  string `json:"id"`
	Assignee            string `json:"assignee"`
	Name                string `json:"name"`
	Description         string `json:"description"`
	Priority            int    `json:"priority"`
	ProcessDefinitionID string `json:"processDefinitionId"`
	ProcessInstanceID   string `json:"processInstanceId"`
	CreatedDate         int64  `json:"createdDate"`
	DueDate             *int64 `json:"dueDate,omitempty"`
}

// TaskCreatedEvent is raised when a user task is created.
type TaskCreatedEvent struct {
	BaseEvent
	Task TaskData `json:"task"`
}

func (TaskCreatedEvent) Type() EventType { return TaskCreatedEventType }

// UnknownEvent holds an event whose tag is not recognised. It is decoded so
// that callers can log and skip it.
type UnknownEvent struct {
	BaseEvent
}

func (e UnknownEvent) Type() EventType { return EventType(e.EventType) }
