package graph

type (
	// Action binds a task to a registered service method.
	Action struct {
		Service string      `json:"service,omitempty" yaml:"service,omitempty"`
		Method  string      `json:"method,omitempty" yaml:"method,omitempty"`
		Input   interface{} `json:"input,omitempty" yaml:"input,omitempty"`
	}

	// Task is a node in the roast graph. A task with no DependsOn entries is
	// a start task; a task depending on others activates only once all of
	// them reached a terminal state.
	Task struct {
		ID        string   `json:"id,omitempty" yaml:"id,omitempty"`
		Name      string   `json:"name,omitempty" yaml:"name,omitempty"`
		Namespace string   `json:"namespace,omitempty" yaml:"namespace,omitempty"`
		Action    *Action  `json:"action,omitempty" yaml:"action,omitempty"`
		DependsOn []string `json:"dependsOn,omitempty" yaml:"dependsOn,omitempty"`
	}
)

// IsStart reports whether the task has no upstream dependencies.
func (t *Task) IsStart() bool {
	return len(t.DependsOn) == 0
}

// WithAction sets the action for the task
func (t *Task) WithAction(service string, method string, input interface{}) *Task {
	t.Action = &Action{
		Service: service,
		Method:  method,
		Input:   input,
	}
	return t
}

// WithDependsOn adds a dependency to the task
func (t *Task) WithDependsOn(taskID string) *Task {
	if t.DependsOn == nil {
		t.DependsOn = make([]string, 0)
	}
	t.DependsOn = append(t.DependsOn, taskID)
	return t
}

// Clone creates a deep copy of a task
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	clone := &Task{
		ID:        t.ID,
		Name:      t.Name,
		Namespace: t.Namespace,
	}
	if t.DependsOn != nil {
		clone.DependsOn = make([]string, len(t.DependsOn))
		copy(clone.DependsOn, t.DependsOn)
	}
	if t.Action != nil {
		clone.Action = &Action{
			Service: t.Action.Service,
			Method:  t.Action.Method,
			Input:   t.Action.Input,
		}
	}
	return clone
}
