package execution

import (
	"fmt"
	"time"

	"github.com/viant/gitroast/internal/clock"
	"github.com/viant/gitroast/internal/idgen"
	"github.com/viant/gitroast/model/graph"
)

// Execution represents a single task execution
type Execution struct {
	ID          string      `json:"id"`
	ProcessID   string      `json:"processId"`
	TaskID      string      `json:"taskId"`
	State       TaskState   `json:"state"`
	Output      interface{} `json:"output,omitempty"`
	Error       string      `json:"error,omitempty"`
	ScheduledAt time.Time   `json:"scheduledAt"`
	StartedAt   *time.Time  `json:"startedAt,omitempty"`
	CompletedAt *time.Time  `json:"completedAt,omitempty"`
}

// NewExecution creates a new execution for a task
func NewExecution(processID string, task *graph.Task) *Execution {
	return &Execution{
		ID:          generateExecutionID(processID, task.ID),
		ProcessID:   processID,
		TaskID:      task.ID,
		State:       TaskStatePending,
		ScheduledAt: clock.Now(),
	}
}

// Start marks the execution as started
func (e *Execution) Start() {
	now := clock.Now()
	e.StartedAt = &now
	e.State = TaskStateRunning
}

// Complete marks the execution as completed with the supplied output. The
// output must be fully written before Complete is called so that readers
// gated on the terminal transition observe it.
func (e *Execution) Complete(output interface{}) {
	now := clock.Now()
	e.CompletedAt = &now
	e.Output = output
	e.State = TaskStateCompleted
}

// Fail marks the execution as failed
func (e *Execution) Fail(err error) {
	now := clock.Now()
	e.CompletedAt = &now
	if err != nil {
		e.Error = err.Error()
	}
	e.State = TaskStateFailed
}

// Cancel marks the execution as cancelled
func (e *Execution) Cancel() {
	now := clock.Now()
	e.CompletedAt = &now
	e.State = TaskStateCancelled
}

// generateExecutionID creates a unique ID for an execution
func generateExecutionID(processID, taskID string) string {
	return fmt.Sprintf("%s-%s-%s", processID, taskID, idgen.New())
}
