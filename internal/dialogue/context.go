package dialogue

import (
	"time"

	"github.com/pandhu/duitbot/internal/model"
)

// DefaultExpiry is how long a context may sit untouched before it is reset
// to its initial state.
const DefaultExpiry = 5 * time.Minute

// StackEntry records one level of the conversation stack.
type StackEntry struct {
	EnteredAt time.Time
	State     State
}

// PendingAction is a clarification or confirmation awaiting a user reply.
type PendingAction struct {
	QueuedAt time.Time
	Kind     string
	Intent   model.Intent
}

type scratchEntry struct {
	expiresAt time.Time
	value     any
}

// Context is the per-user conversational state. It lives in process-local
// memory only and is never persisted. All methods assume the caller holds
// the user's processing lock; Context itself is not goroutine-safe.
type Context struct {
	SessionStartedAt  time.Time
	LastInteractionAt time.Time
	scratch           map[string]scratchEntry
	LastEntities      model.ExtractedEntities
	LastIntent        model.Intent
	State             State
	Stack             []StackEntry
	Pending           []PendingAction
}

func newContext(now time.Time) *Context {
	return &Context{
		State:             StateIdle,
		scratch:           make(map[string]scratchEntry),
		SessionStartedAt:  now,
		LastInteractionAt: now,
	}
}

// Touch advances the last-interaction timestamp. It never moves the
// timestamp backwards.
func (c *Context) Touch(now time.Time) {
	if now.After(c.LastInteractionAt) {
		c.LastInteractionAt = now
	}
}

// Expired reports whether the context has been idle past the expiry window.
func (c *Context) Expired(now time.Time, expiry time.Duration) bool {
	return now.Sub(c.LastInteractionAt) > expiry
}

// Reset returns the context to its initial state, clearing the stack,
// pending actions, and scratch data. The session start is preserved.
func (c *Context) Reset(now time.Time) {
	c.State = StateIdle
	c.Stack = nil
	c.Pending = nil
	c.scratch = make(map[string]scratchEntry)
	c.LastIntent = ""
	c.LastEntities = model.ExtractedEntities{}
	c.Touch(now)
}

// Push enters a nested dialogue state.
func (c *Context) Push(state State, now time.Time) {
	c.Stack = append(c.Stack, StackEntry{State: state, EnteredAt: now})
	c.State = state
}

// Pop leaves the current dialogue state and restores the previous one, or
// idle when the stack empties.
func (c *Context) Pop() State {
	if len(c.Stack) == 0 {
		c.State = StateIdle
		return StateIdle
	}
	popped := c.Stack[len(c.Stack)-1]
	c.Stack = c.Stack[:len(c.Stack)-1]
	if len(c.Stack) > 0 {
		c.State = c.Stack[len(c.Stack)-1].State
	} else {
		c.State = StateIdle
	}
	return popped.State
}

// QueuePending appends a clarification request.
func (c *Context) QueuePending(action PendingAction) {
	c.Pending = append(c.Pending, action)
}

// NextPending dequeues the oldest pending action, or nil when none remain.
func (c *Context) NextPending() *PendingAction {
	if len(c.Pending) == 0 {
		return nil
	}
	next := c.Pending[0]
	c.Pending = c.Pending[1:]
	return &next
}

// SetScratch stores a short-lived value with its own expiry.
func (c *Context) SetScratch(key string, value any, ttl time.Duration, now time.Time) {
	c.scratch[key] = scratchEntry{value: value, expiresAt: now.Add(ttl)}
}

// Scratch reads a scratch value, lazily evicting it when expired. The
// second return reports whether a live value was present.
func (c *Context) Scratch(key string, now time.Time) (any, bool) {
	entry, ok := c.scratch[key]
	if !ok {
		return nil, false
	}
	if now.After(entry.expiresAt) {
		delete(c.scratch, key)
		return nil, false
	}
	return entry.value, true
}

// ScratchLen returns the number of stored scratch entries, including any
// not yet lazily evicted.
func (c *Context) ScratchLen() int {
	return len(c.scratch)
}
