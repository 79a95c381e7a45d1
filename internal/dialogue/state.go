// Package dialogue maintains per-user conversational state: the dialogue
// state machine, the conversation stack, pending clarifications, and
// short-lived scratch data with expiry.
package dialogue

// State is a node of the per-user dialogue state machine.
type State string

const (
	// StateIdle is the initial state; fresh commands are handled here.
	StateIdle State = "idle"
	// StateAwaitingAmount waits for the user to supply a missing amount.
	StateAwaitingAmount State = "awaiting_amount"
	// StateAwaitingCategory waits for the user to supply a missing category.
	StateAwaitingCategory State = "awaiting_category"
	// StateAwaitingConfirmation waits for a yes/no/cancel reply.
	StateAwaitingConfirmation State = "awaiting_confirmation"
	// StateError is entered on unhandled failures; any reply returns to idle.
	StateError State = "error"
)

// Awaiting reports whether the state is one of the clarification states
// that intercept the next message before fresh intent classification.
func (s State) Awaiting() bool {
	switch s {
	case StateAwaitingAmount, StateAwaitingCategory, StateAwaitingConfirmation:
		return true
	default:
		return false
	}
}
