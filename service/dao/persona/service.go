// Package persona loads persona and task-template overrides from YAML
// documents addressable through the abstract file system (file, embed, URL).
package persona

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"

	"github.com/viant/gitroast/service/agent"
)

// Document holds persona definitions together with the named task templates
// they execute.
type Document struct {
	Agents []agent.Agent             `yaml:"agents,omitempty" json:"agents,omitempty"`
	Tasks  map[string]agent.TaskSpec `yaml:"tasks,omitempty" json:"tasks,omitempty"`
}

// Lookup returns the agent with the given name or nil.
func (d *Document) Lookup(name string) *agent.Agent {
	for i := range d.Agents {
		if d.Agents[i].Name == name {
			return &d.Agents[i]
		}
	}
	return nil
}

// Task returns the named task template; ok is false when absent.
func (d *Document) Task(name string) (agent.TaskSpec, bool) {
	spec, ok := d.Tasks[name]
	return spec, ok
}

// Service loads persona documents; loaded documents are cached per location.
type Service struct {
	fs        afs.Service
	baseURL   string
	fsOptions []storage.Option
	mu        sync.RWMutex
	cache     map[string]*Document
}

// New creates a persona service rooted at baseURL.
func New(fs afs.Service, baseURL string, options ...storage.Option) *Service {
	if fs == nil {
		fs = afs.New()
	}
	return &Service{
		fs:        fs,
		baseURL:   baseURL,
		fsOptions: options,
		cache:     make(map[string]*Document),
	}
}

// Load loads a persona document from YAML at the specified location; a
// missing extension defaults to .yaml.
func (s *Service) Load(ctx context.Context, location string) (*Document, error) {
	if filepath.Ext(location) == "" {
		location += ".yaml"
	}
	s.mu.RLock()
	cached, ok := s.cache[location]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	URL := location
	if s.baseURL != "" {
		URL = url.Join(s.baseURL, location)
	}
	data, err := s.fs.DownloadWithURL(ctx, URL, s.fsOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to load personas from %s: %w", URL, err)
	}
	document := &Document{}
	if err := yaml.Unmarshal(data, document); err != nil {
		return nil, fmt.Errorf("failed to parse personas from %s: %w", URL, err)
	}
	s.mu.Lock()
	s.cache[location] = document
	s.mu.Unlock()
	return document, nil
}

// Refresh discards any cached copy of the document at the given location so
// that the next Load reloads it.
func (s *Service) Refresh(location string) {
	if filepath.Ext(location) == "" {
		location += ".yaml"
	}
	s.mu.Lock()
	delete(s.cache, location)
	s.mu.Unlock()
}
