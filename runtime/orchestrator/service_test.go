package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/viant/gitroast/extension"
	"github.com/viant/gitroast/model"
	"github.com/viant/gitroast/model/profile"
	"github.com/viant/gitroast/progress"
	"github.com/viant/gitroast/runtime/execution"
	"github.com/viant/gitroast/service/github"
	"github.com/viant/gitroast/service/llm"
	"github.com/viant/gitroast/service/pipeline"
)

type fakeFetcher struct {
	mu         sync.Mutex
	calls      []string
	profile    *profile.Profile
	repos      []profile.Repository
	profileErr error
	reposErr   error
	onProfile  func(ctx context.Context)
	onRepos    func(ctx context.Context)
}

func (f *fakeFetcher) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

func (f *fakeFetcher) called(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, call := range f.calls {
		if call == name {
			return true
		}
	}
	return false
}

func (f *fakeFetcher) LookupProfile(ctx context.Context, username string) (*profile.Profile, error) {
	f.record("profile")
	if f.onProfile != nil {
		f.onProfile(ctx)
	}
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.profile, nil
}

func (f *fakeFetcher) LookupRepositories(ctx context.Context, username string) ([]profile.Repository, error) {
	f.record("repos")
	if f.onRepos != nil {
		f.onRepos(ctx)
	}
	if f.reposErr != nil {
		return nil, f.reposErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.repos, nil
}

type fakeGenerator struct {
	mu       sync.Mutex
	requests []*llm.Request
	err      error
}

func (f *fakeGenerator) Generate(_ context.Context, request *llm.Request) (*llm.Response, error) {
	f.mu.Lock()
	f.requests = append(f.requests, request)
	index := len(f.requests)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &llm.Response{Content: fmt.Sprintf("stage-%d output", index)}, nil
}

func (f *fakeGenerator) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func octocat() *profile.Profile {
	ret := &profile.Profile{Username: "octocat", Name: "The Octocat", PublicRepos: 2}
	ret.Normalize()
	return ret
}

func newHarness(fetcher *fakeFetcher, generator *fakeGenerator) (*Service, *execution.Process) {
	actions := extension.NewActions()
	actions.Register(github.New(fetcher))
	actions.Register(pipeline.New(generator))
	process := execution.NewProcess("octocat", model.Roast())
	return New(actions), process
}

func TestService_Run(t *testing.T) {
	fetcher := &fakeFetcher{
		profile: octocat(),
		repos:   []profile.Repository{{Name: "Hello-World"}},
	}
	generator := &fakeGenerator{}
	srv, process := newHarness(fetcher, generator)

	tracker := &progress.Progress{ProcessID: process.ID, Subject: process.Subject}
	ctx := progress.WithProgress(context.Background(), tracker)

	output, err := srv.Run(ctx, process)
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, "octocat", output.Profile.Username)
	assert.Equal(t, "stage-2 output", output.Artifact)
	assert.Equal(t, "stage-1 output", output.Analysis)
	assert.Equal(t, 2, generator.count())
	assert.Equal(t, execution.StateCompleted, process.GetState())

	for _, taskID := range []string{model.TaskFetchProfile, model.TaskFetchRepos, model.TaskSynthesize} {
		exec := process.LookupExecution(taskID)
		if assert.NotNil(t, exec, taskID) {
			assert.Equal(t, execution.TaskStateCompleted, exec.State, taskID)
		}
	}

	snapshot := tracker.Snapshot()
	assert.Equal(t, 3, snapshot.TotalTasks)
	assert.Equal(t, 3, snapshot.CompletedTasks)
	assert.Equal(t, 0, snapshot.RunningTasks)
}

func TestService_RunBothBranchesOverlap(t *testing.T) {
	bothStarted := make(chan struct{})
	var once sync.Once
	var started sync.WaitGroup
	started.Add(2)
	gate := func(context.Context) {
		started.Done()
		once.Do(func() {
			go func() {
				started.Wait()
				close(bothStarted)
			}()
		})
		select {
		case <-bothStarted:
		case <-time.After(2 * time.Second):
			panic("branches did not overlap")
		}
	}
	fetcher := &fakeFetcher{
		profile:   octocat(),
		repos:     []profile.Repository{{Name: "Hello-World"}},
		onProfile: gate,
		onRepos:   gate,
	}
	srv, process := newHarness(fetcher, &fakeGenerator{})
	_, err := srv.Run(context.Background(), process)
	assert.Nil(t, err)
}

func TestService_RunSubjectNotFound(t *testing.T) {
	fetcher := &fakeFetcher{
		profileErr: fmt.Errorf("%w: users/ghost returned 404", github.ErrSubjectNotFound),
		repos:      []profile.Repository{{Name: "Hello-World"}},
	}
	generator := &fakeGenerator{}
	srv, process := newHarness(fetcher, generator)

	_, err := srv.Run(context.Background(), process)
	assert.True(t, errors.Is(err, github.ErrSubjectNotFound))
	assert.Equal(t, 0, generator.count(), "pipeline must not start after a failed branch")
	assert.Equal(t, execution.StateFailed, process.GetState())
	assert.NotEmpty(t, process.Errors["userInfo"])
}

func TestService_RunWaitsForSiblingSettlement(t *testing.T) {
	reposSettled := make(chan struct{})
	fetcher := &fakeFetcher{
		profileErr: fmt.Errorf("%w: boom", github.ErrSubjectNotFound),
		repos:      []profile.Repository{{Name: "slow-repo"}},
		onRepos: func(context.Context) {
			time.Sleep(50 * time.Millisecond)
			close(reposSettled)
		},
	}
	srv, process := newHarness(fetcher, &fakeGenerator{})

	_, err := srv.Run(context.Background(), process)
	assert.True(t, errors.Is(err, github.ErrSubjectNotFound))
	assert.True(t, fetcher.called("repos"), "sibling fetch must be invoked despite the early failure")
	select {
	case <-reposSettled:
	default:
		t.Fatal("run returned before the sibling branch settled")
	}
	exec := process.LookupExecution(model.TaskFetchRepos)
	if assert.NotNil(t, exec) {
		assert.True(t, exec.State.IsTerminal())
	}
}

func TestService_RunFastFailureDoesNotPreemptSibling(t *testing.T) {
	for i := 0; i < 20; i++ {
		fetcher := &fakeFetcher{
			profileErr: fmt.Errorf("%w: boom", github.ErrSubjectNotFound),
			repos:      []profile.Repository{{Name: "Hello-World"}},
		}
		srv, process := newHarness(fetcher, &fakeGenerator{})
		_, err := srv.Run(context.Background(), process)
		assert.True(t, errors.Is(err, github.ErrSubjectNotFound))
		assert.True(t, fetcher.called("repos"), "iteration %d: repository branch was never dispatched", i)
		exec := process.LookupExecution(model.TaskFetchRepos)
		if assert.NotNil(t, exec) {
			assert.True(t, exec.State.IsTerminal())
		}
	}
}

func TestService_RunCancellation(t *testing.T) {
	release := make(chan struct{})
	fetcher := &fakeFetcher{
		profile: octocat(),
		repos:   []profile.Repository{{Name: "Hello-World"}},
		onProfile: func(ctx context.Context) {
			<-ctx.Done()
		},
		onRepos: func(context.Context) {
			<-release
		},
	}
	generator := &fakeGenerator{}
	srv, process := newHarness(fetcher, generator)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
		close(release)
	}()
	_, err := srv.Run(ctx, process)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, generator.count())
	assert.Equal(t, execution.StateFailed, process.GetState())
}

func TestService_RunGenerationFailure(t *testing.T) {
	fetcher := &fakeFetcher{
		profile: octocat(),
		repos:   []profile.Repository{{Name: "Hello-World"}},
	}
	generator := &fakeGenerator{err: errors.New("model offline")}
	srv, process := newHarness(fetcher, generator)

	_, err := srv.Run(context.Background(), process)
	assert.True(t, errors.Is(err, llm.ErrGeneration))
	assert.Equal(t, execution.StateFailed, process.GetState())
	exec := process.LookupExecution(model.TaskSynthesize)
	if assert.NotNil(t, exec) {
		assert.Equal(t, execution.TaskStateFailed, exec.State)
	}
}

func TestService_RunPhases(t *testing.T) {
	fetcher := &fakeFetcher{
		profile: octocat(),
		repos:   []profile.Repository{{Name: "Hello-World"}},
	}
	srv, process := newHarness(fetcher, &fakeGenerator{})
	_, err := srv.Run(context.Background(), process)
	assert.Nil(t, err)
	assert.Equal(t, execution.PhaseGeneration, process.GetPhase())
}

func TestService_JoinPrecondition(t *testing.T) {
	srv, process := newHarness(&fakeFetcher{}, &fakeGenerator{})
	_, err := srv.join(context.Background(), process)
	assert.True(t, errors.Is(err, ErrJoinPrecondition))

	process.RunState.SetProfile(octocat())
	_, err = srv.join(context.Background(), process)
	assert.True(t, errors.Is(err, ErrJoinPrecondition))

	process.RunState.SetRepoDigest("")
	joined, err := srv.join(context.Background(), process)
	assert.Nil(t, err)
	assert.Equal(t, "octocat", joined.Profile.Username)
}
