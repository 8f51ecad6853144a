package gitroast

import (
	"github.com/viant/afs/storage"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/viant/gitroast/model/types"
	"github.com/viant/gitroast/service/dao/persona"
	"github.com/viant/gitroast/service/github"
	"github.com/viant/gitroast/service/llm"
	"github.com/viant/gitroast/service/pipeline"
	"github.com/viant/gitroast/service/presenter"
	"github.com/viant/gitroast/service/secret"
	"github.com/viant/gitroast/tracing"
)

// Option customises the service.
type Option func(s *Service)

// WithConfig sets the configuration.
func WithConfig(config *Config) Option {
	return func(s *Service) { s.config = config }
}

// WithFetcher replaces the GitHub lookup backend.
func WithFetcher(fetcher github.Fetcher) Option {
	return func(s *Service) { s.fetcher = fetcher }
}

// WithGenerator replaces the text-generation backend.
func WithGenerator(generator llm.Generator) Option {
	return func(s *Service) { s.generator = generator }
}

// WithPresenter replaces the result presenter.
func WithPresenter(p presenter.Presenter) Option {
	return func(s *Service) { s.output = p }
}

// WithSecretService replaces the credential resolver.
func WithSecretService(service *secret.Service) Option {
	return func(s *Service) { s.secrets = service }
}

// WithPersonaService replaces the persona document loader.
func WithPersonaService(service *persona.Service) Option {
	return func(s *Service) { s.personaService = service }
}

// WithPersonaFsOptions sets the file system options used to load persona
// documents (e.g. an embedded file system).
func WithPersonaFsOptions(options ...storage.Option) Option {
	return func(s *Service) { s.personaFsOptions = options }
}

// WithPipelineOptions passes additional options to the pipeline service.
func WithPipelineOptions(options ...pipeline.Option) Option {
	return func(s *Service) { s.pipelineOptions = append(s.pipelineOptions, options...) }
}

// WithExtensionServices sets additional action services.
func WithExtensionServices(services ...types.Service) Option {
	return func(s *Service) { s.extensionServices = services }
}

// WithTracing configures OpenTelemetry tracing for the service. If outputFile
// is empty the stdout exporter is used; otherwise traces are written to the
// supplied file path. The function is safe to call multiple times, the first
// successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom
// SpanExporter, enabling integrations with exporters other than the built-in
// stdout one. The first successful initialisation wins.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
