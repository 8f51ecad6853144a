package gitroast

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/viant/gitroast/internal/clock"
	"github.com/viant/gitroast/model"
	"github.com/viant/gitroast/progress"
	"github.com/viant/gitroast/runtime/execution"
	"github.com/viant/gitroast/runtime/orchestrator"
	"github.com/viant/gitroast/service/presenter"
)

// RunOutput is the product of a successful roast run.
type RunOutput = model.RunOutput

// Runtime executes roast runs. Processes it creates are held in memory for
// the lifetime of the Runtime only.
type Runtime struct {
	orchestrator *orchestrator.Service
	workflow     *model.Workflow
	output       presenter.Presenter

	mu        sync.RWMutex
	processes map[string]*execution.Process
	lastID    string
}

// Roast runs the full graph for the given username and blocks until the run
// reaches a terminal state. On success both the normalized profile and the
// generated artifact are returned; on failure the error matches exactly one
// of ErrSubjectNotFound, ErrJoinPrecondition or ErrGeneration.
func (r *Runtime) Roast(ctx context.Context, username string) (*RunOutput, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: empty username", ErrSubjectNotFound)
	}
	process := execution.NewProcess(username, r.workflow)
	r.mu.Lock()
	r.processes[process.ID] = process
	r.lastID = process.ID
	r.mu.Unlock()

	tracker := &progress.Progress{
		ProcessID: process.ID,
		Subject:   username,
		StartedAt: clock.Now(),
	}
	ctx = progress.WithProgress(ctx, tracker)

	output, err := r.orchestrator.Run(ctx, process)
	if err != nil {
		return nil, fmt.Errorf("roast of %s: %w", username, err)
	}
	return output, nil
}

// Present renders a run result through the configured presenter.
func (r *Runtime) Present(ctx context.Context, output *RunOutput) error {
	return r.output.Present(ctx, output)
}

// PresentError renders a run failure through the configured presenter.
func (r *Runtime) PresentError(ctx context.Context, subject string, err error) error {
	return r.output.PresentError(ctx, subject, err)
}

// Process returns the process with the given ID or nil.
func (r *Runtime) Process(id string) *execution.Process {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.processes[id]
}

// LastProcess returns the most recently started process or nil.
func (r *Runtime) LastProcess() *execution.Process {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.processes[r.lastID]
}
