// Package pipeline runs the strictly sequential two-stage generation: a
// profile analysis pass grounding a roast-writing pass.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"reflect"
	"strings"

	"github.com/viant/gitroast/model/profile"
	"github.com/viant/gitroast/model/types"
	"github.com/viant/gitroast/service/agent"
	"github.com/viant/gitroast/service/dao/persona"
	"github.com/viant/gitroast/service/llm"
	"github.com/viant/gitroast/tracing"
)

// Name of the service as used by graph actions.
const Name = "pipeline"

// Stage identifiers reported to the listener before each generation call.
const (
	StageAnalysis   = "analysis"
	StageGeneration = "generation"
)

// Task template names recognised in persona documents.
const (
	TaskAnalysis = "analysis"
	TaskRoast    = "roast"
)

// StageListener observes stage transitions; invoked before each stage
// dispatches.
type StageListener func(stage string)

type listenerKeyT struct{}

var listenerKey listenerKeyT

// WithStageListener embeds a per-run stage listener in ctx; it is invoked in
// addition to any listener the service was constructed with.
func WithStageListener(ctx context.Context, listener StageListener) context.Context {
	return context.WithValue(ctx, listenerKey, listener)
}

// ListenerFromContext extracts the per-run stage listener from ctx; nil when
// absent.
func ListenerFromContext(ctx context.Context) StageListener {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(listenerKey).(StageListener); ok {
		return v
	}
	return nil
}

// Service executes the two-stage pipeline against a single shared generator.
type Service struct {
	generator    llm.Generator
	analyst      agent.Agent
	comedian     agent.Agent
	analysisTask agent.TaskSpec
	roastTask    agent.TaskSpec
	listener     StageListener
}

// Option customises a pipeline service.
type Option func(*Service)

// WithPersonas overrides built-in personas and task templates with entries
// from the supplied document; absent entries keep their defaults.
func WithPersonas(document *persona.Document) Option {
	return func(s *Service) {
		if document == nil {
			return
		}
		if ret := document.Lookup(agent.AnalystName); ret != nil {
			s.analyst = *ret
		}
		if ret := document.Lookup(agent.ComedianName); ret != nil {
			s.comedian = *ret
		}
		if spec, ok := document.Task(TaskAnalysis); ok {
			s.analysisTask = spec
		}
		if spec, ok := document.Task(TaskRoast); ok {
			s.roastTask = spec
		}
	}
}

// WithListener registers a stage transition observer.
func WithListener(listener StageListener) Option {
	return func(s *Service) { s.listener = listener }
}

// New creates a pipeline service with the built-in personas.
func New(generator llm.Generator, options ...Option) *Service {
	ret := &Service{
		generator:    generator,
		analyst:      agent.Analyst(),
		comedian:     agent.Comedian(),
		analysisTask: agent.AnalysisTask(),
		roastTask:    agent.RoastTask(),
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Input carries the joined data the pipeline consumes.
type Input struct {
	Subject    string           `json:"subject"`
	Profile    *profile.Profile `json:"profile"`
	RepoDigest string           `json:"repoDigest"`
	Date       string           `json:"date"`
}

// Output carries the roast artifact together with the grounding analysis.
type Output struct {
	Analysis string `json:"analysis"`
	Roast    string `json:"roast"`
}

// Name returns the service name
func (s *Service) Name() string {
	return Name
}

// Methods returns the service methods
func (s *Service) Methods() types.Signatures {
	return []types.Signature{
		{
			Name:        "run",
			Description: "Runs the analysis stage followed by the roast generation stage.",
			Input:       reflect.TypeOf(&Input{}),
			Output:      reflect.TypeOf(&Output{}),
		},
	}
}

// Method returns the specified method
func (s *Service) Method(name string) (types.Executable, error) {
	switch strings.ToLower(name) {
	case "run":
		return s.run, nil
	default:
		return nil, types.NewMethodNotFoundError(name)
	}
}

func (s *Service) run(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*Input)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*Output)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	ret, err := s.Run(ctx, input)
	if err != nil {
		return err
	}
	*output = *ret
	return nil
}

// Run executes both stages in order: stage 2 is never dispatched before
// stage 1 returns, and a failed stage aborts the run discarding any stage-1
// output. Exactly two generator calls happen per successful run.
func (s *Service) Run(ctx context.Context, input *Input) (ret *Output, err error) {
	ctx, span := tracing.StartSpan(ctx, "pipeline.run", "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()
	span.WithAttributes(map[string]string{"pipeline.subject": input.Subject})

	if input.Profile == nil {
		return nil, fmt.Errorf("%w: missing profile for %s", llm.ErrGeneration, input.Subject)
	}
	userInfo := input.Profile.Summary()

	s.notify(ctx, StageAnalysis)
	analysis, err := s.generate(ctx, StageAnalysis, s.analyst, s.analysisTask, map[string]string{
		"date":      input.Date,
		"username":  input.Subject,
		"user_info": userInfo,
		"repos":     input.RepoDigest,
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, StageGeneration)
	instructions := s.roastTask.Description + "\n\nAnalysis of the profile:\n{analysis}"
	roast, err := s.generate(ctx, StageGeneration, s.comedian, agent.TaskSpec{
		Description:    instructions,
		ExpectedOutput: s.roastTask.ExpectedOutput,
	}, map[string]string{
		"date":      input.Date,
		"username":  input.Subject,
		"user_info": userInfo,
		"analysis":  analysis,
	})
	if err != nil {
		return nil, err
	}
	return &Output{Analysis: analysis, Roast: roast}, nil
}

func (s *Service) generate(ctx context.Context, stage string, persona agent.Agent, task agent.TaskSpec, fields map[string]string) (text string, err error) {
	ctx, span := tracing.StartSpan(ctx, "pipeline."+stage, "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()

	response, err := s.generator.Generate(ctx, &llm.Request{
		Agent:        persona,
		Instructions: task.Description,
		Fields:       fields,
	})
	if err != nil {
		log.Printf("pipeline stage %v failed: %v", stage, err)
		return "", fmt.Errorf("%s stage: %w", stage, wrapGeneration(err))
	}
	if strings.TrimSpace(response.Text()) == "" {
		return "", fmt.Errorf("%s stage: %w: empty output", stage, llm.ErrGeneration)
	}
	return response.Text(), nil
}

func (s *Service) notify(ctx context.Context, stage string) {
	if s.listener != nil {
		s.listener(stage)
	}
	if listener := ListenerFromContext(ctx); listener != nil {
		listener(stage)
	}
}

func wrapGeneration(err error) error {
	if errors.Is(err, llm.ErrGeneration) {
		return err
	}
	return fmt.Errorf("%w: %v", llm.ErrGeneration, err)
}
