// Package progress provides a lightweight tracker that keeps aggregated
// execution counters (tasks total, completed, failed, …) for a single
// roast run.  The tracker instance lives in the run context – every
// component that receives the context can atomically update the counters via
// the Delta helper without requiring a global registry.
package progress

import (
	"context"
	"sync"
	"time"
)

// Delta represents an incremental counter change emitted by the
// orchestrator. The fields are signed and therefore can be either positive
// (increment) or negative (decrement).
type Delta struct {
	Total     int
	Completed int
	Failed    int
	Running   int
	Pending   int
}

// Progress keeps aggregated task counters for a single run. It is safe for
// concurrent use.
type Progress struct {
	// Identification – informative only, filled when the run starts.
	ProcessID string
	Subject   string
	StartedAt time.Time

	// Counters – modified via Update().
	TotalTasks     int
	CompletedTasks int
	FailedTasks    int
	RunningTasks   int
	PendingTasks   int

	sync.Mutex
	onChange func(Progress)
}

// OnChange registers a callback invoked with a snapshot after every update.
// The callback runs outside the critical section so that it can perform slow
// operations (e.g. JSON encoding, I/O) without blocking engine internals.
func (p *Progress) OnChange(fn func(Progress)) {
	if p == nil {
		return
	}
	p.Lock()
	p.onChange = fn
	p.Unlock()
}

// Update applies the supplied delta to the tracker. It is safe to call from
// multiple goroutines.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}

	p.Lock()

	p.TotalTasks += d.Total
	p.CompletedTasks += d.Completed
	p.FailedTasks += d.Failed
	p.RunningTasks += d.Running
	p.PendingTasks += d.Pending

	// Value-copy for the callback while we still hold the lock to avoid
	// seeing partially updated counters.
	snapshot := *p
	cb := p.onChange

	p.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy of the tracker suitable for read-only inspection.
func (p *Progress) Snapshot() Progress {
	if p == nil {
		return Progress{}
	}
	p.Lock()
	snapshot := *p
	p.Unlock()
	return snapshot
}

type ctxKeyT struct{}

var ctxKey ctxKeyT

// WithProgress embeds the tracker in ctx.
func WithProgress(ctx context.Context, p *Progress) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey, p)
}

// FromContext extracts the tracker from ctx; it returns nil when absent so
// call sites can update unconditionally.
func FromContext(ctx context.Context) *Progress {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxKey).(*Progress); ok {
		return v
	}
	return nil
}
