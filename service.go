package gitroast

import (
	"context"
	"log"
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"

	"github.com/viant/gitroast/extension"
	"github.com/viant/gitroast/model"
	"github.com/viant/gitroast/model/types"
	"github.com/viant/gitroast/runtime/execution"
	"github.com/viant/gitroast/runtime/orchestrator"
	"github.com/viant/gitroast/service/dao/persona"
	"github.com/viant/gitroast/service/github"
	"github.com/viant/gitroast/service/llm"
	"github.com/viant/gitroast/service/pipeline"
	"github.com/viant/gitroast/service/presenter"
	"github.com/viant/gitroast/service/secret"
)

// Service assembles the roast runtime: the lookup client, the generation
// client, the persona documents and the action registry, each replaceable
// through options.
type Service struct {
	runtime           *Runtime
	config            *Config
	actions           *extension.Actions
	extensionServices []types.Service
	fetcher           github.Fetcher
	generator         llm.Generator
	output            presenter.Presenter
	secrets           *secret.Service
	personaService    *persona.Service
	personaFsOptions  []storage.Option
	pipelineOptions   []pipeline.Option
}

// New creates a service with real GitHub and generation backends unless
// options supply replacements.
func New(options ...Option) *Service {
	ret := &Service{runtime: &Runtime{}}
	ret.init(options)
	return ret
}

func (s *Service) init(options []Option) {
	for _, option := range options {
		option(s)
	}
	s.ensureBaseSetup()
	s.actions = extension.NewActions()
	s.actions.Register(github.New(s.fetcher))
	s.actions.Register(pipeline.New(s.generator, s.pipelineOptions...))
	for _, service := range s.extensionServices {
		s.actions.Register(service)
	}
	s.runtime.orchestrator = orchestrator.New(s.actions)
	s.runtime.workflow = model.Roast()
	s.runtime.output = s.output
	s.runtime.processes = make(map[string]*execution.Process)
}

func (s *Service) ensureBaseSetup() {
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if err := s.config.Validate(); err != nil {
		log.Printf("invalid config: %v", err)
		s.config = DefaultConfig()
	}
	if s.secrets == nil {
		s.secrets = secret.New()
	}
	if s.fetcher == nil {
		var clientOptions []github.ClientOption
		if s.config.GitHub.BaseURL != "" {
			clientOptions = append(clientOptions, github.WithBaseURL(s.config.GitHub.BaseURL))
		}
		if s.config.GitHub.TimeoutMs > 0 {
			clientOptions = append(clientOptions, github.WithTimeout(time.Duration(s.config.GitHub.TimeoutMs)*time.Millisecond))
		}
		if token := s.resolveSecret(s.config.GitHub.Token); token != "" {
			clientOptions = append(clientOptions, github.WithToken(token))
		}
		s.fetcher = github.NewClient(clientOptions...)
	}
	if s.generator == nil {
		var clientOptions []llm.ClientOption
		if s.config.Generator.BaseURL != "" {
			clientOptions = append(clientOptions, llm.WithBaseURL(s.config.Generator.BaseURL))
		}
		if s.config.Generator.Model != "" {
			clientOptions = append(clientOptions, llm.WithModel(s.config.Generator.Model))
		}
		if s.config.Generator.TimeoutMs > 0 {
			clientOptions = append(clientOptions, llm.WithTimeout(time.Duration(s.config.Generator.TimeoutMs)*time.Millisecond))
		}
		if apiKey := s.resolveSecret(s.config.Generator.APIKey); apiKey != "" {
			clientOptions = append(clientOptions, llm.WithAPIKey(apiKey))
		}
		s.generator = llm.NewClient(clientOptions...)
	}
	if s.output == nil {
		s.output = presenter.NewStdout(nil)
	}
	if s.config.Personas.Location != "" {
		if s.personaService == nil {
			s.personaService = persona.New(afs.New(), s.config.Personas.BaseURL, s.personaFsOptions...)
		}
		document, err := s.personaService.Load(context.Background(), s.config.Personas.Location)
		if err != nil {
			log.Printf("failed to load personas, using built-in ones: %v", err)
		} else {
			s.pipelineOptions = append(s.pipelineOptions, pipeline.WithPersonas(document))
		}
	}
}

// resolveSecret resolves a credential resource; resolution failures are
// logged and the credential treated as absent.
func (s *Service) resolveSecret(resource *secret.Resource) string {
	if resource.IsEmpty() {
		return ""
	}
	value, err := s.secrets.Resolve(context.Background(), resource)
	if err != nil {
		log.Printf("failed to resolve secret: %v", err)
		return ""
	}
	return value
}

// RegisterExtensionServices registers additional action services.
func (s *Service) RegisterExtensionServices(services ...types.Service) {
	for i := range services {
		s.actions.Register(services[i])
	}
}

// Runtime returns the assembled runtime.
func (s *Service) Runtime() *Runtime {
	return s.runtime
}
