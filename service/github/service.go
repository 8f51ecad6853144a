package github

import (
	"context"
	"reflect"
	"strings"

	"github.com/viant/gitroast/model/profile"
	"github.com/viant/gitroast/model/types"
)

// Name of the service as used by graph actions.
const Name = "github"

// Fetcher retrieves the two independent data sets about a subject. Both
// calls are read-only and idempotent; implementations collapse "does not
// exist" and access failure into ErrSubjectNotFound.
type Fetcher interface {
	LookupProfile(ctx context.Context, username string) (*profile.Profile, error)
	LookupRepositories(ctx context.Context, username string) ([]profile.Repository, error)
}

// Service exposes a Fetcher as an action service.
type Service struct {
	fetcher Fetcher
}

// New creates a github action service backed by the supplied fetcher.
func New(fetcher Fetcher) *Service {
	return &Service{fetcher: fetcher}
}

// LookupInput identifies the subject of a lookup.
type LookupInput struct {
	Username string `json:"username"`
}

// ProfileOutput carries the normalized profile record.
type ProfileOutput struct {
	Profile *profile.Profile `json:"profile,omitempty"`
}

// ReposOutput carries the normalized repository list together with its
// flattened textual rendering.
type ReposOutput struct {
	Repositories []profile.Repository `json:"repositories,omitempty"`
	Digest       string               `json:"digest,omitempty"`
}

// Name returns the service name
func (s *Service) Name() string {
	return Name
}

// Methods returns the service methods
func (s *Service) Methods() types.Signatures {
	return []types.Signature{
		{
			Name:        "lookupProfile",
			Description: "Fetches and normalizes the subject's profile record.",
			Input:       reflect.TypeOf(&LookupInput{}),
			Output:      reflect.TypeOf(&ProfileOutput{}),
		},
		{
			Name:        "lookupRepositories",
			Description: "Fetches and normalizes the subject's repository list.",
			Input:       reflect.TypeOf(&LookupInput{}),
			Output:      reflect.TypeOf(&ReposOutput{}),
		},
	}
}

// Method returns the specified method
func (s *Service) Method(name string) (types.Executable, error) {
	switch strings.ToLower(name) {
	case "lookupprofile":
		return s.lookupProfile, nil
	case "lookuprepositories":
		return s.lookupRepositories, nil
	default:
		return nil, types.NewMethodNotFoundError(name)
	}
}

func (s *Service) lookupProfile(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*LookupInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*ProfileOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	ret, err := s.fetcher.LookupProfile(ctx, input.Username)
	if err != nil {
		return err
	}
	output.Profile = ret
	return nil
}

func (s *Service) lookupRepositories(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*LookupInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*ReposOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	ret, err := s.fetcher.LookupRepositories(ctx, input.Username)
	if err != nil {
		return err
	}
	output.Repositories = ret
	output.Digest = profile.Digest(ret)
	return nil
}
