// Package llm provides the single text-generation capability shared by every
// pipeline stage, together with an OpenAI-compatible HTTP client.
package llm

import (
	"context"
	"errors"

	"github.com/viant/gitroast/service/agent"
)

// ErrGeneration is returned when a generation stage fails to produce output.
var ErrGeneration = errors.New("generation failed")

// Request carries one persona-scoped generation call.
type Request struct {
	Agent        agent.Agent       `json:"agent"`
	Instructions string            `json:"instructions"`
	Fields       map[string]string `json:"fields,omitempty"`
}

// Response carries the produced text.
type Response struct {
	Content string `json:"content"`
}

// Text returns the produced text.
func (r *Response) Text() string {
	return r.Content
}

// Generator produces text for a persona-scoped request. Implementations wrap
// every failure, including empty output, in ErrGeneration.
type Generator interface {
	Generate(ctx context.Context, request *Request) (*Response, error)
}

// Prompt renders the request's instruction template with its fields applied.
func (r *Request) Prompt() string {
	return agent.Interpolate(r.Instructions, r.Fields)
}
