// Package correlation implements the rendez-vous primitive that gates join
// tasks on the terminal settlement of all their upstream executions.
package correlation

import (
	"context"
	"sync"
	"time"
)

// Group represents a rendez-vous for a set of concurrently running
// executions. The group tracks how many parties were expected and how many
// have already reported a terminal result; waiters are released only once
// every expected party settled, regardless of individual outcomes, so a fast
// failure in one branch never preempts the other branch's settlement.
type Group struct {
	ID       string
	Expected int

	mu        sync.Mutex
	completed int
	failed    int
	errs      []error
	done      chan struct{}
	doneAt    *time.Time
}

// New creates a group expecting the given number of parties.
func New(id string, expected int) *Group {
	return &Group{
		ID:       id,
		Expected: expected,
		done:     make(chan struct{}),
	}
}

// MarkDone registers the terminal settlement of one party and returns true
// when the rendez-vous condition (all parties settled) has been satisfied.
// Pass a non-nil err if the party ended in error. The write the party
// performed before calling MarkDone happens-before any Wait return.
func (g *Group) MarkDone(err error) (groupComplete bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err != nil {
		g.failed++
		g.errs = append(g.errs, err)
	}
	g.completed++
	if g.completed >= g.Expected && g.Expected > 0 && g.doneAt == nil {
		now := time.Now()
		g.doneAt = &now
		close(g.done)
		return true
	}
	return false
}

// Wait blocks until every expected party settled or the context is
// cancelled. It is a blocking wait on the group's channel, not a poll loop.
func (g *Group) Wait(ctx context.Context) error {
	select {
	case <-g.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Failed returns true when at least one party reported failure.
func (g *Group) Failed() bool {
	g.mu.Lock()
	f := g.failed > 0
	g.mu.Unlock()
	return f
}

// Errs returns the errors reported by settled parties, in settlement order.
func (g *Group) Errs() []error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]error(nil), g.errs...)
}

// Settled returns how many parties reported so far.
func (g *Group) Settled() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.completed
}
