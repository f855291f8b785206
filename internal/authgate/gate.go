// Package authgate defers cart actions that need an identity until the user
// has logged in. An anonymous add-to-cart parks the item in a pending slot;
// a successful login replays it exactly once; a cancelled login discards it.
package authgate

import (
	"github.com/noamani/perfume-shop-backend/internal/cart"
)

// State of a session with respect to the login gate.
type State int

const (
	// Anonymous: no identity, nothing deferred.
	Anonymous State = iota
	// PendingLogin: a gated action is parked waiting for a login.
	PendingLogin
	// Authenticated: identity established; the session stays here until an
	// explicit logout.
	Authenticated
)

func (s State) String() string {
	switch s {
	case PendingLogin:
		return "pending-login"
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Gate is the login-gate state machine for one session. It is a plain value
// type; persistence across requests happens through the session store.
type Gate struct {
	state   State
	pending *cart.Item
}

func NewGate() *Gate {
	return &Gate{state: Anonymous}
}

func (g *Gate) State() State {
	return g.state
}

// Defer parks a gated action. A second gated action before login replaces
// the slot; only one item is ever pending.
func (g *Gate) Defer(item cart.Item) {
	if g.state == Authenticated {
		return
	}
	g.state = PendingLogin
	g.pending = &item
}

// Complete records a successful login and hands back the deferred item, if
// any. The slot is cleared so the replay can only happen once.
func (g *Gate) Complete() *cart.Item {
	item := g.pending
	g.pending = nil
	g.state = Authenticated
	return item
}

// Cancel drops the deferred item and returns to Anonymous; the action is
// discarded, not retried.
func (g *Gate) Cancel() {
	if g.state != PendingLogin {
		return
	}
	g.pending = nil
	g.state = Anonymous
}

// Logout returns an authenticated session to Anonymous.
func (g *Gate) Logout() {
	g.pending = nil
	g.state = Anonymous
}
