// Package secret resolves API credentials from scy-encrypted resources with
// literal fallbacks.
package secret

import (
	"context"
	"fmt"

	"github.com/viant/scy"
	"github.com/viant/scy/cred"
	"github.com/viant/toolbox"
)

// Resource locates one encrypted credential. A literal Value short-circuits
// resolution; otherwise SourceURL and Key address a scy resource.
type Resource struct {
	Value     string `json:"value,omitempty" yaml:"value,omitempty"`
	SourceURL string `json:"sourceURL,omitempty" yaml:"sourceURL,omitempty"`
	Target    string `json:"target,omitempty" yaml:"target,omitempty"`
	Key       string `json:"key,omitempty" yaml:"key,omitempty"`
}

// IsEmpty reports whether the resource carries neither a literal nor a
// source location.
func (r *Resource) IsEmpty() bool {
	return r == nil || (r.Value == "" && r.SourceURL == "")
}

// Service resolves credentials using viant/scy.
type Service struct {
	scyService *scy.Service
}

// New creates a secret service
func New() *Service {
	return &Service{scyService: scy.New()}
}

// Resolve returns the plain credential the resource describes. Structured
// secrets resolve to their password field.
func (s *Service) Resolve(ctx context.Context, resource *Resource) (string, error) {
	if resource.IsEmpty() {
		return "", nil
	}
	if resource.Value != "" {
		return resource.Value, nil
	}
	var target interface{}
	if resource.Target != "" && resource.Target != "raw" {
		targetType, err := cred.TargetType(resource.Target)
		if err != nil {
			return "", fmt.Errorf("invalid target type '%s': %w", resource.Target, err)
		}
		if targetType != nil {
			target = targetType
		}
	}
	secret, err := s.scyService.Load(ctx, scy.NewResource(target, resource.SourceURL, resource.Key))
	if err != nil {
		return "", fmt.Errorf("failed to load secret from %s: %w", resource.SourceURL, err)
	}
	if !secret.IsPlain && secret.Target != nil {
		aMap := map[string]interface{}{}
		if err := toolbox.DefaultConverter.AssignConverted(&aMap, secret.Target); err != nil {
			return "", fmt.Errorf("failed to convert secret data: %w", err)
		}
		aMap = toolbox.DeleteEmptyKeys(aMap)
		if value, ok := aMap["Password"]; ok {
			return toolbox.AsString(value), nil
		}
		if value, ok := aMap["password"]; ok {
			return toolbox.AsString(value), nil
		}
		return "", fmt.Errorf("secret from %s has no password field", resource.SourceURL)
	}
	return secret.String(), nil
}
