package auth

import "lumen/internal/credstore"

// State is the authentication state of the process. Exactly one State value
// is live at a time, owned by the Authenticator.
type State int

const (
	// StateUnauthenticated means no credential is held.
	StateUnauthenticated State = iota

	// StateAuthenticating means a sign-in exchange is in flight.
	StateAuthenticating

	// StateAuthenticated means a credential is held for a known identity.
	StateAuthenticated

	// StateFailed means the last sign-in exchange failed. The state is
	// terminal until a new sign-in request is made.
	StateFailed
)

// String makes State satisfy the fmt.Stringer interface.
func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Status is an immutable snapshot of the live authentication state.
// External readers receive snapshots, never a mutable reference.
type Status struct {
	// State is the current authentication state.
	State State

	// User is the authenticated identity; set only when State is
	// StateAuthenticated.
	User *credstore.User

	// Reason carries the failure message; set only when State is StateFailed.
	Reason string
}
