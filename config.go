package gitroast

import (
	"fmt"

	"github.com/viant/gitroast/service/github"
	"github.com/viant/gitroast/service/llm"
	"github.com/viant/gitroast/service/secret"
)

// Config is a serialisable representation of the service configuration. It
// can be populated from JSON or YAML; the zero-value is useful since all
// nested fields inherit their package defaults.
type Config struct {
	GitHub    GitHubConfig    `json:"github" yaml:"github"`
	Generator GeneratorConfig `json:"generator" yaml:"generator"`
	Personas  PersonasConfig  `json:"personas" yaml:"personas"`
}

// GitHubConfig configures the profile/repository lookup client.
type GitHubConfig struct {
	BaseURL   string           `json:"baseURL,omitempty" yaml:"baseURL,omitempty"`
	TimeoutMs int              `json:"timeoutMs,omitempty" yaml:"timeoutMs,omitempty"`
	Token     *secret.Resource `json:"token,omitempty" yaml:"token,omitempty"`
}

// GeneratorConfig configures the text-generation client.
type GeneratorConfig struct {
	BaseURL   string           `json:"baseURL,omitempty" yaml:"baseURL,omitempty"`
	Model     string           `json:"model,omitempty" yaml:"model,omitempty"`
	TimeoutMs int              `json:"timeoutMs,omitempty" yaml:"timeoutMs,omitempty"`
	APIKey    *secret.Resource `json:"apiKey,omitempty" yaml:"apiKey,omitempty"`
}

// PersonasConfig points at an optional persona override document.
type PersonasConfig struct {
	BaseURL  string `json:"baseURL,omitempty" yaml:"baseURL,omitempty"`
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
}

// DefaultConfig returns a Config populated with the package defaults.
// Callers may modify the returned struct before passing it to New.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			BaseURL:   github.DefaultBaseURL,
			TimeoutMs: int(github.DefaultTimeout.Milliseconds()),
		},
		Generator: GeneratorConfig{
			BaseURL:   llm.DefaultBaseURL,
			Model:     llm.DefaultModel,
			TimeoutMs: int(llm.DefaultTimeout.Milliseconds()),
		},
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.GitHub.TimeoutMs < 0 {
		return fmt.Errorf("github.timeoutMs must be >= 0")
	}
	if c.Generator.TimeoutMs < 0 {
		return fmt.Errorf("generator.timeoutMs must be >= 0")
	}
	if c.Personas.Location != "" && c.Personas.BaseURL == "" {
		return fmt.Errorf("personas.baseURL is required when personas.location is set")
	}
	return nil
}
