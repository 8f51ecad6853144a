package correlation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGroup_MarkDone(t *testing.T) {
	group := New("run-1", 2)
	assert.False(t, group.MarkDone(nil))
	assert.Equal(t, 1, group.Settled())
	assert.True(t, group.MarkDone(nil))
	assert.Equal(t, 2, group.Settled())
	assert.False(t, group.Failed())

	err := group.Wait(context.Background())
	assert.Nil(t, err)
}

func TestGroup_NoShortCircuitOnFailure(t *testing.T) {
	group := New("run-2", 2)
	group.MarkDone(errors.New("branch failed"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := group.Wait(ctx)
	assert.NotNil(t, err, "a failure must not release the barrier early")

	group.MarkDone(nil)
	assert.Nil(t, group.Wait(context.Background()))
	assert.True(t, group.Failed())
	if errs := group.Errs(); assert.Equal(t, 1, len(errs)) {
		assert.Equal(t, "branch failed", errs[0].Error())
	}
}

func TestGroup_WaitBlocksUntilAllSettle(t *testing.T) {
	group := New("run-3", 2)
	released := make(chan error, 1)
	go func() {
		released <- group.Wait(context.Background())
	}()

	group.MarkDone(nil)
	select {
	case <-released:
		t.Fatal("barrier released with a party outstanding")
	case <-time.After(20 * time.Millisecond):
	}

	group.MarkDone(nil)
	select {
	case err := <-released:
		assert.Nil(t, err)
	case <-time.After(time.Second):
		t.Fatal("barrier never released")
	}
}

func TestGroup_WaitCancellation(t *testing.T) {
	group := New("run-4", 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := group.Wait(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestGroup_ConcurrentParties(t *testing.T) {
	group := New("run-5", 8)
	for i := 0; i < 8; i++ {
		go func(i int) {
			if i%2 == 0 {
				group.MarkDone(nil)
				return
			}
			group.MarkDone(errors.New("odd party"))
		}(i)
	}
	assert.Nil(t, group.Wait(context.Background()))
	assert.Equal(t, 8, group.Settled())
	assert.True(t, group.Failed())
	assert.Equal(t, 4, len(group.Errs()))
}
