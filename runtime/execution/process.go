package execution

import (
	"sync"
	"time"

	"github.com/viant/gitroast/internal/clock"
	"github.com/viant/gitroast/internal/idgen"
	"github.com/viant/gitroast/model"
	"github.com/viant/gitroast/model/graph"
)

// Process state constants
const (
	StatePending   = "pending"
	StateRunning   = "running"
	StateCompleted = "completed"
	StateFailed    = "failed"
)

// Run phases reported while the process is running.
const (
	PhaseFetching   = "fetching"
	PhaseJoined     = "joined"
	PhaseAnalysis   = "analysis"
	PhaseGeneration = "generation"
)

// Process represents a single orchestration run. All entities it holds are
// created fresh per run and discarded when the run returns.
type Process struct {
	ID         string            `json:"id"`
	Subject    string            `json:"subject"`
	Name       string            `json:"name"`
	State      string            `json:"state"`
	Phase      string            `json:"phase,omitempty"`
	Workflow   *model.Workflow   `json:"workflow"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
	FinishedAt *time.Time        `json:"finishedAt,omitempty"`
	Errors     map[string]string `json:"errors,omitempty"`

	RunState RunState `json:"-"`

	mu         sync.RWMutex
	executions map[string]*Execution
	allTasks   map[string]*graph.Task
}

// NewProcess creates a new process for the given subject
func NewProcess(subject string, workflow *model.Workflow) *Process {
	now := clock.Now()
	return &Process{
		ID:         workflow.Name + "/" + idgen.New(),
		Subject:    subject,
		Name:       workflow.Name,
		State:      StatePending,
		Workflow:   workflow,
		CreatedAt:  now,
		UpdatedAt:  now,
		Errors:     make(map[string]string),
		executions: make(map[string]*Execution),
		allTasks:   workflow.AllTasks(),
	}
}

// LookupTask returns the task definition for the given ID.
func (p *Process) LookupTask(taskID string) *graph.Task {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.allTasks[taskID]
}

// Attach registers an execution with the process.
func (p *Process) Attach(exec *Execution) {
	p.mu.Lock()
	p.executions[exec.TaskID] = exec
	p.mu.Unlock()
}

// LookupExecution returns the execution for the given task ID.
func (p *Process) LookupExecution(taskID string) *Execution {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.executions[taskID]
}

// RecordError records a task error under the task namespace.
func (p *Process) RecordError(task *graph.Task, err error) {
	if err == nil {
		return
	}
	key := task.Namespace
	if key == "" {
		key = task.ID
	}
	p.mu.Lock()
	p.Errors[key] = err.Error()
	p.mu.Unlock()
}

// GetState returns the process state
func (p *Process) GetState() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.State
}

// SetState updates the process state
func (p *Process) SetState(state string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.State = state
	switch state {
	case StateCompleted, StateFailed:
		now := clock.Now()
		p.FinishedAt = &now
	}
	p.UpdatedAt = clock.Now()
}

// SetPhase records the current run phase.
func (p *Process) SetPhase(phase string) {
	p.mu.Lock()
	p.Phase = phase
	p.UpdatedAt = clock.Now()
	p.mu.Unlock()
}

// GetPhase returns the current run phase.
func (p *Process) GetPhase() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.Phase
}
