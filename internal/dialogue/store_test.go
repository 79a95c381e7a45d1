package dialogue

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAcquireCreatesContext(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))
	store := NewStore(WithClock(clock))

	ctx, release := store.Acquire("user-1")
	require.NotNil(t, ctx)
	assert.Equal(t, StateIdle, ctx.State)
	release()

	assert.Equal(t, 1, store.Len())
}

func TestStoreExpiredContextResetsOnAcquire(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))
	store := NewStore(WithClock(clock))

	ctx, release := store.Acquire("user-1")
	ctx.Push(StateAwaitingAmount, clock.Now())
	ctx.SetScratch("amount", "25000", time.Hour, clock.Now())
	ctx.Touch(clock.Now())
	release()

	// Just inside the window the state survives.
	clock.Advance(4 * time.Minute)
	ctx, release = store.Acquire("user-1")
	assert.Equal(t, StateAwaitingAmount, ctx.State)
	ctx.Touch(clock.Now())
	release()

	// Past five idle minutes the context comes back fresh.
	clock.Advance(6 * time.Minute)
	ctx, release = store.Acquire("user-1")
	assert.Equal(t, StateIdle, ctx.State)
	assert.Empty(t, ctx.Stack)
	assert.Equal(t, 0, ctx.ScratchLen())
	release()
}

func TestStorePeek(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))
	store := NewStore(WithClock(clock))

	assert.Equal(t, StateIdle, store.Peek("nobody"))

	ctx, release := store.Acquire("user-1")
	ctx.Push(StateAwaitingConfirmation, clock.Now())
	ctx.Touch(clock.Now())
	release()

	assert.Equal(t, StateAwaitingConfirmation, store.Peek("user-1"))

	clock.Advance(10 * time.Minute)
	assert.Equal(t, StateIdle, store.Peek("user-1"))
}

func TestStoreSweepRemovesExpired(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))
	store := NewStore(WithClock(clock))

	for _, id := range []string{"a", "b", "c"} {
		_, release := store.Acquire(id)
		release()
	}
	require.Equal(t, 3, store.Len())

	clock.Advance(3 * time.Minute)
	// One user stays active.
	ctx, release := store.Acquire("b")
	ctx.Touch(clock.Now())
	release()

	clock.Advance(3 * time.Minute)
	removed := store.Sweep()
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, store.Len())
}

func TestStorePerUserSerialization(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))
	store := NewStore(WithClock(clock))

	const workers = 8
	const perWorker = 50

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				ctx, release := store.Acquire("shared")
				// Read-modify-write on the stack would race without the
				// per-user lock.
				ctx.Push(StateAwaitingAmount, clock.Now())
				ctx.Pop()
				release()
			}
		}()
	}
	wg.Wait()

	ctx, release := store.Acquire("shared")
	defer release()
	assert.Equal(t, StateIdle, ctx.State)
	assert.Empty(t, ctx.Stack)
}

func TestStoreSerializationHoldsUnderSweepEviction(t *testing.T) {
	// A near-zero expiry on the wall clock makes every released slot
	// immediately sweepable, so eviction constantly interleaves with
	// acquisition. Even then only one holder per user may be inside the
	// critical section at a time.
	store := NewStore(WithExpiry(time.Nanosecond))

	stop := make(chan struct{})
	var sweeper sync.WaitGroup
	sweeper.Add(1)
	go func() {
		defer sweeper.Done()
		for {
			select {
			case <-stop:
				return
			default:
				store.Sweep()
			}
		}
	}()

	const workers = 8
	const perWorker = 200

	var holders atomic.Int32
	var violations atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				ctx, release := store.Acquire("shared")
				if holders.Add(1) != 1 {
					violations.Add(1)
				}
				ctx.Push(StateAwaitingAmount, time.Now())
				ctx.Pop()
				holders.Add(-1)
				release()
			}
		}()
	}
	wg.Wait()
	close(stop)
	sweeper.Wait()

	assert.Zero(t, violations.Load(), "concurrent holders for the same user")
}

func TestStoreDistinctUsersIndependent(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))
	store := NewStore(WithClock(clock))

	a, releaseA := store.Acquire("alice")
	a.Push(StateAwaitingAmount, clock.Now())
	releaseA()

	b, releaseB := store.Acquire("bob")
	assert.Equal(t, StateIdle, b.State)
	releaseB()

	assert.Equal(t, StateAwaitingAmount, store.Peek("alice"))
	assert.Equal(t, StateIdle, store.Peek("bob"))
}
