package model

import (
	"fmt"

	"github.com/viant/gitroast/model/graph"
)

// Task identifiers of the fixed roast graph.
const (
	TaskFetchProfile = "fetchProfile"
	TaskFetchRepos   = "fetchRepos"
	TaskSynthesize   = "synthesize"
)

// Workflow represents a workflow definition
type Workflow struct {
	// Name is the unique identifier for the workflow
	Name string `json:"name" yaml:"name"`

	// Description provides a human-readable description of the workflow
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Tasks defines the execution graph of the workflow
	Tasks []*graph.Task `json:"tasks,omitempty" yaml:"tasks,omitempty"`
}

// AllTasks returns tasks indexed by ID and name.
func (w *Workflow) AllTasks() map[string]*graph.Task {
	ret := make(map[string]*graph.Task)
	for _, task := range w.Tasks {
		ret[task.ID] = task
		if task.Name != "" {
			ret[task.Name] = task
		}
	}
	return ret
}

// StartTasks returns the tasks with no upstream dependencies.
func (w *Workflow) StartTasks() []*graph.Task {
	var ret []*graph.Task
	for _, task := range w.Tasks {
		if task.IsStart() {
			ret = append(ret, task)
		}
	}
	return ret
}

// JoinTasks returns the tasks gated on upstream completion.
func (w *Workflow) JoinTasks() []*graph.Task {
	var ret []*graph.Task
	for _, task := range w.Tasks {
		if !task.IsStart() {
			ret = append(ret, task)
		}
	}
	return ret
}

// Validate performs a best-effort structural validation of the workflow. The
// returned slice is empty when the workflow is sound; otherwise it contains
// human-readable error descriptions.
func (w *Workflow) Validate() []error {
	var issues []error
	if len(w.Tasks) == 0 {
		issues = append(issues, fmt.Errorf("workflow %q has no tasks", w.Name))
		return issues
	}

	seen := map[string]bool{}
	for _, task := range w.Tasks {
		if task.ID == "" {
			issues = append(issues, fmt.Errorf("task with empty id in workflow %q", w.Name))
			continue
		}
		if seen[task.ID] {
			issues = append(issues, fmt.Errorf("duplicate task id %q", task.ID))
		}
		seen[task.ID] = true
	}

	for _, task := range w.Tasks {
		for _, dep := range task.DependsOn {
			if !seen[dep] {
				issues = append(issues, fmt.Errorf("task %q depends on unknown task %q", task.ID, dep))
			}
		}
	}

	if cycle := w.findCycle(); cycle != "" {
		issues = append(issues, fmt.Errorf("dependency cycle involving task %q", cycle))
	}
	return issues
}

// findCycle returns the ID of a task participating in a dependency cycle or
// an empty string.
func (w *Workflow) findCycle() string {
	byID := map[string]*graph.Task{}
	for _, task := range w.Tasks {
		byID[task.ID] = task
	}
	const (
		visiting = 1
		done     = 2
	)
	state := map[string]int{}
	var visit func(id string) bool
	visit = func(id string) bool {
		switch state[id] {
		case visiting:
			return true
		case done:
			return false
		}
		state[id] = visiting
		if task := byID[id]; task != nil {
			for _, dep := range task.DependsOn {
				if visit(dep) {
					return true
				}
			}
		}
		state[id] = done
		return false
	}
	for _, task := range w.Tasks {
		if visit(task.ID) {
			return task.ID
		}
	}
	return ""
}

// Roast returns the fixed roast graph: two start tasks fetching profile and
// repository data concurrently, joined by a synthesize task that runs the
// two-stage generation pipeline.
func Roast() *Workflow {
	fetchProfile := &graph.Task{ID: TaskFetchProfile, Name: TaskFetchProfile, Namespace: "userInfo"}
	fetchProfile.WithAction("github", "lookupProfile", nil)

	fetchRepos := &graph.Task{ID: TaskFetchRepos, Name: TaskFetchRepos, Namespace: "repos"}
	fetchRepos.WithAction("github", "lookupRepositories", nil)

	synthesize := &graph.Task{ID: TaskSynthesize, Name: TaskSynthesize, Namespace: "roast"}
	synthesize.WithAction("pipeline", "run", nil)
	synthesize.WithDependsOn(TaskFetchProfile).WithDependsOn(TaskFetchRepos)

	return &Workflow{
		Name:        "roast",
		Description: "Roast a GitHub profile from its public footprint",
		Tasks:       []*graph.Task{fetchProfile, fetchRepos, synthesize},
	}
}
