package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"reflect"

	"github.com/viant/gitroast/extension"
	"github.com/viant/gitroast/internal/clock"
	"github.com/viant/gitroast/model"
	"github.com/viant/gitroast/model/graph"
	"github.com/viant/gitroast/model/types"
	"github.com/viant/gitroast/progress"
	"github.com/viant/gitroast/runtime/correlation"
	"github.com/viant/gitroast/runtime/execution"
	"github.com/viant/gitroast/service/github"
	"github.com/viant/gitroast/service/llm"
	"github.com/viant/gitroast/service/pipeline"
	"github.com/viant/gitroast/tracing"
)

// ErrJoinPrecondition is returned when the join task activates while either
// producer output is missing. This indicates an internal invariant failure,
// never bad user input; it is logged and not retried.
var ErrJoinPrecondition = errors.New("join precondition unmet")

// Service drives a single run of the roast graph: it fans the start tasks
// out on their own goroutines, gates the join task on the completion
// barrier, and triggers the generation pipeline exactly once per successful
// join.
type Service struct {
	actions *extension.Actions
}

// New creates an orchestrator resolving task actions from the supplied
// registry.
func New(actions *extension.Actions) *Service {
	return &Service{actions: actions}
}

// Run executes the process's workflow to a terminal state and returns the
// run product. Any failure is terminal for the whole run: a failed fetch
// branch surfaces as ErrSubjectNotFound once both branches settled, a join
// activation with missing state as ErrJoinPrecondition, and a pipeline
// failure as ErrGeneration. No partial output is ever returned.
func (s *Service) Run(ctx context.Context, process *execution.Process) (ret *model.RunOutput, err error) {
	ctx, span := tracing.StartSpan(ctx, "orchestrator.run", "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()
	span.WithAttributes(map[string]string{"process.id": process.ID, "process.subject": process.Subject})

	if issues := process.Workflow.Validate(); len(issues) > 0 {
		process.SetState(execution.StateFailed)
		return nil, fmt.Errorf("invalid workflow %q: %v", process.Workflow.Name, issues[0])
	}

	tracker := progress.FromContext(ctx)
	tracker.Update(progress.Delta{Total: len(process.Workflow.Tasks), Pending: len(process.Workflow.Tasks)})

	process.SetState(execution.StateRunning)
	process.SetPhase(execution.PhaseFetching)

	if err = s.fanOut(ctx, process); err != nil {
		process.SetState(execution.StateFailed)
		return nil, err
	}

	joined, err := s.join(ctx, process)
	if err != nil {
		process.SetState(execution.StateFailed)
		return nil, err
	}
	process.SetPhase(execution.PhaseJoined)

	output, err := s.synthesize(ctx, process, joined)
	if err != nil {
		process.SetState(execution.StateFailed)
		return nil, err
	}
	process.SetState(execution.StateCompleted)
	return &model.RunOutput{
		Profile:  joined.Profile,
		Artifact: output.Roast,
		Analysis: output.Analysis,
	}, nil
}

// fanOut launches every start task on its own goroutine and blocks until
// all of them settled. Both branches begin before either completes; the
// first branch failure cancels the sibling's fetch context, but the barrier
// still waits for the sibling to settle before the conjunction is evaluated.
func (s *Service) fanOut(ctx context.Context, process *execution.Process) error {
	startTasks := process.Workflow.StartTasks()
	group := correlation.New(process.ID, len(startTasks))
	fetchCtx, cancelFetch := context.WithCancel(ctx)
	defer cancelFetch()

	for _, task := range startTasks {
		exec := execution.NewExecution(process.ID, task)
		process.Attach(exec)
		go func(task *graph.Task, exec *execution.Execution) {
			err := s.runTask(fetchCtx, process, task, exec)
			if err != nil {
				cancelFetch()
			}
			group.MarkDone(err)
		}(task, exec)
	}

	if err := group.Wait(ctx); err != nil {
		return fmt.Errorf("run cancelled: %w", err)
	}
	if group.Failed() {
		errs := group.Errs()
		joinedErr := errors.Join(errs...)
		if errors.Is(joinedErr, github.ErrSubjectNotFound) {
			return joinedErr
		}
		return fmt.Errorf("%w: %v", github.ErrSubjectNotFound, joinedErr)
	}
	return nil
}

// runTask executes one start task: it resolves the action, invokes it, and
// writes the branch output into the run state strictly before the terminal
// transition.
func (s *Service) runTask(ctx context.Context, process *execution.Process, task *graph.Task, exec *execution.Execution) (err error) {
	ctx, span := tracing.StartSpan(ctx, "task."+task.ID, "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()

	tracker := progress.FromContext(ctx)
	exec.Start()
	tracker.Update(progress.Delta{Running: 1, Pending: -1})

	defer func() {
		if err != nil {
			process.RecordError(task, err)
			exec.Fail(err)
			tracker.Update(progress.Delta{Running: -1, Failed: 1})
			log.Printf("task %v of process %v failed: %v", task.ID, process.ID, err)
		}
	}()

	// The fetch itself observes cancellation once in flight; no fast-path
	// here, so a sibling's early failure never preempts this branch's
	// dispatch.
	output, err := s.dispatch(ctx, task, &github.LookupInput{Username: process.Subject})
	if err != nil {
		return err
	}
	switch ret := output.(type) {
	case *github.ProfileOutput:
		process.RunState.SetProfile(ret.Profile)
	case *github.ReposOutput:
		process.RunState.SetRepoDigest(ret.Digest)
	default:
		return fmt.Errorf("task %v produced unexpected output %T", task.ID, output)
	}
	exec.Complete(output)
	tracker.Update(progress.Delta{Running: -1, Completed: 1})
	return nil
}

// join re-checks the run state after the barrier released. Absence of either
// key at this point is an internal invariant failure.
func (s *Service) join(_ context.Context, process *execution.Process) (*execution.JoinedInput, error) {
	joined, ok := process.RunState.Joined()
	if !ok {
		err := fmt.Errorf("%w: process %v reached join with incomplete state", ErrJoinPrecondition, process.ID)
		log.Printf("%v", err)
		return nil, err
	}
	return joined, nil
}

// synthesize runs the join task, which triggers the two-stage pipeline.
func (s *Service) synthesize(ctx context.Context, process *execution.Process, joined *execution.JoinedInput) (ret *pipeline.Output, err error) {
	ctx, span := tracing.StartSpan(ctx, "task."+model.TaskSynthesize, "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()

	task := process.LookupTask(model.TaskSynthesize)
	if task == nil {
		return nil, fmt.Errorf("%w: workflow %q has no join task", ErrJoinPrecondition, process.Workflow.Name)
	}
	tracker := progress.FromContext(ctx)
	exec := execution.NewExecution(process.ID, task)
	process.Attach(exec)
	exec.Start()
	tracker.Update(progress.Delta{Running: 1, Pending: -1})

	ctx = pipeline.WithStageListener(ctx, func(stage string) {
		switch stage {
		case pipeline.StageAnalysis:
			process.SetPhase(execution.PhaseAnalysis)
		case pipeline.StageGeneration:
			process.SetPhase(execution.PhaseGeneration)
		}
	})
	output, err := s.dispatch(ctx, task, &pipeline.Input{
		Subject:    process.Subject,
		Profile:    joined.Profile,
		RepoDigest: joined.RepoDigest,
		Date:       clock.Date(),
	})
	if err != nil {
		process.RecordError(task, err)
		exec.Fail(err)
		tracker.Update(progress.Delta{Running: -1, Failed: 1})
		if errors.Is(err, llm.ErrGeneration) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", llm.ErrGeneration, err)
	}
	result, ok := output.(*pipeline.Output)
	if !ok {
		exec.Fail(fmt.Errorf("unexpected pipeline output %T", output))
		return nil, fmt.Errorf("%w: unexpected pipeline output %T", llm.ErrGeneration, output)
	}
	exec.Complete(result)
	tracker.Update(progress.Delta{Running: -1, Completed: 1})
	return result, nil
}

// dispatch resolves the task's action against the registry and invokes it
// with the supplied input, returning a freshly allocated typed output.
func (s *Service) dispatch(ctx context.Context, task *graph.Task, input interface{}) (interface{}, error) {
	if task.Action == nil {
		return nil, fmt.Errorf("task %v has no action", task.ID)
	}
	service := s.actions.Lookup(task.Action.Service)
	if service == nil {
		return nil, fmt.Errorf("unknown service %q for task %v", task.Action.Service, task.ID)
	}
	signature := service.Methods().Lookup(task.Action.Method)
	if signature == nil {
		return nil, types.NewMethodNotFoundError(task.Action.Method)
	}
	executable, err := service.Method(task.Action.Method)
	if err != nil {
		return nil, err
	}
	output := reflect.New(signature.Output.Elem()).Interface()
	if err := executable(ctx, input, output); err != nil {
		return nil, err
	}
	return output, nil
}
