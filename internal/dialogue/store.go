package dialogue

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/pandhu/duitbot/internal/common"
	"github.com/pandhu/duitbot/internal/service"
)

const shardCount = 16

type shard struct {
	mu       sync.Mutex
	contexts map[string]*userSlot
}

type userSlot struct {
	mu  sync.Mutex
	ctx *Context
}

// Store holds conversational contexts for all active users. Contexts are
// sharded to keep lock contention low, and each user carries their own
// processing mutex so messages from the same user are handled strictly
// one at a time while different users proceed in parallel.
type Store struct {
	clock  service.Clock
	shards [shardCount]*shard
	expiry time.Duration
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithExpiry overrides the idle expiry window.
func WithExpiry(d time.Duration) StoreOption {
	return func(s *Store) { s.expiry = d }
}

// WithClock overrides the time source, mainly for tests.
func WithClock(c service.Clock) StoreOption {
	return func(s *Store) { s.clock = c }
}

// NewStore creates an empty context store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		expiry: DefaultExpiry,
		clock:  service.SystemClock{},
	}
	for i := range s.shards {
		s.shards[i] = &shard{contexts: make(map[string]*userSlot)}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) shardFor(userID string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return s.shards[h.Sum32()%shardCount]
}

// Acquire locks the user's context for exclusive processing and returns it
// together with a release function. An expired context is reset to idle
// before it is handed out. The caller must invoke release exactly once.
func (s *Store) Acquire(userID string) (*Context, func()) {
	sh := s.shardFor(userID)

	for {
		sh.mu.Lock()
		slot, ok := sh.contexts[userID]
		if !ok {
			slot = &userSlot{ctx: newContext(s.clock.Now())}
			sh.contexts[userID] = slot
		}
		sh.mu.Unlock()

		slot.mu.Lock()

		// The sweeper may have evicted this slot between the map lookup
		// and the lock. Processing on an orphaned slot would let a second
		// message from the same user run concurrently on a fresh one, so
		// re-check and retry. A held slot is safe: Sweep's TryLock skips
		// it until release.
		sh.mu.Lock()
		current := sh.contexts[userID]
		sh.mu.Unlock()
		if current != slot {
			slot.mu.Unlock()
			continue
		}

		now := s.clock.Now()
		if slot.ctx.Expired(now, s.expiry) {
			slot.ctx.Reset(now)
		}
		return slot.ctx, slot.mu.Unlock
	}
}

// Peek returns a snapshot of the user's state without resetting or locking
// it for processing. Unknown users report idle.
func (s *Store) Peek(userID string) State {
	sh := s.shardFor(userID)
	sh.mu.Lock()
	slot, ok := sh.contexts[userID]
	sh.mu.Unlock()
	if !ok {
		return StateIdle
	}
	slot.mu.Lock()
	defer slot.mu.Unlock()
	if slot.ctx.Expired(s.clock.Now(), s.expiry) {
		return StateIdle
	}
	return slot.ctx.State
}

// Reset forcibly clears a user's context.
func (s *Store) Reset(userID string) {
	sh := s.shardFor(userID)
	sh.mu.Lock()
	slot, ok := sh.contexts[userID]
	sh.mu.Unlock()
	if !ok {
		return
	}
	slot.mu.Lock()
	slot.ctx.Reset(s.clock.Now())
	slot.mu.Unlock()
}

// Len reports the number of tracked contexts across all shards.
func (s *Store) Len() int {
	total := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		total += len(sh.contexts)
		sh.mu.Unlock()
	}
	return total
}

// Sweep drops contexts that have sat expired, shard by shard, so no
// global lock is ever held. Contexts currently being processed are
// skipped and picked up on a later pass.
func (s *Store) Sweep() int {
	now := s.clock.Now()
	removed := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		for userID, slot := range sh.contexts {
			if !slot.mu.TryLock() {
				continue
			}
			if slot.ctx.Expired(now, s.expiry) {
				delete(sh.contexts, userID)
				removed++
			}
			slot.mu.Unlock()
		}
		sh.mu.Unlock()
	}
	return removed
}

// Run sweeps the store on the given interval until ctx is cancelled.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				common.LogDebug("swept expired contexts", common.Fields{
					"component": "dialogue",
					"removed":   n,
				})
			}
		}
	}
}
