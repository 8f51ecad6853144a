package extension

import (
	"sync"

	"github.com/viant/gitroast/model/types"
)

// Actions provides action service lookup
type Actions struct {
	services map[string]types.Service
	mux      sync.RWMutex
}

// Lookup returns a service by name
func (s *Actions) Lookup(name string) types.Service {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.services[name]
}

// Register registers a service
func (s *Actions) Register(service types.Service) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.services[service.Name()] = service
}

// NewActions creates a new action service registry
func NewActions() *Actions {
	return &Actions{
		services: make(map[string]types.Service),
	}
}
