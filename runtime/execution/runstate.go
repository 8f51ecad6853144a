package execution

import (
	"sync"

	"github.com/viant/gitroast/model/profile"
)

// RunState is the shared state of a single run. Each field has exactly one
// writer (its producer task) and one reader (the join task); the join task
// reads only after the completion barrier released, which establishes the
// happens-before edge from each write.
type RunState struct {
	mu         sync.Mutex
	profile    *profile.Profile
	repoDigest string
	hasDigest  bool
}

// JoinedInput is the input of the join task; it can only be constructed once
// both producer outputs are present.
type JoinedInput struct {
	Profile    *profile.Profile
	RepoDigest string
}

// SetProfile records the profile branch output. Written exactly once per run.
func (s *RunState) SetProfile(p *profile.Profile) {
	s.mu.Lock()
	s.profile = p
	s.mu.Unlock()
}

// SetRepoDigest records the repository branch output. Written exactly once
// per run; an empty digest (user with no repositories) still counts as
// present.
func (s *RunState) SetRepoDigest(digest string) {
	s.mu.Lock()
	s.repoDigest = digest
	s.hasDigest = true
	s.mu.Unlock()
}

// Joined returns the join input when both producer outputs are present. The
// boolean is false while either key is missing; the join task treats that as
// an internal invariant failure.
func (s *RunState) Joined() (*JoinedInput, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil || !s.hasDigest {
		return nil, false
	}
	return &JoinedInput{Profile: s.profile, RepoDigest: s.repoDigest}, true
}
