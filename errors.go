package gitroast

import (
	"github.com/viant/gitroast/runtime/orchestrator"
	"github.com/viant/gitroast/service/github"
	"github.com/viant/gitroast/service/llm"
)

// Categorized run failures. Every fetch, join or generation failure
// surfaced by Runtime.Roast matches exactly one of these; caller-induced
// context cancellation is reported as the context's own error instead.
var (
	// ErrSubjectNotFound reports that either fetch branch failed; lookup
	// failure and nonexistent subject are not distinguished.
	ErrSubjectNotFound = github.ErrSubjectNotFound

	// ErrJoinPrecondition reports that the join activated with missing
	// state; an internal invariant failure, never bad user input.
	ErrJoinPrecondition = orchestrator.ErrJoinPrecondition

	// ErrGeneration reports that either pipeline stage failed or timed out.
	ErrGeneration = llm.ErrGeneration
)
