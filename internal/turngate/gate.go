package turngate

import (
	"errors"
	"sync/atomic"
	"time"
)

var (
	// ErrWrongActor is returned when an action arrives from an identity other
	// than the one the gate expects
	ErrWrongActor = errors.New("action is not from the expected actor")

	// ErrExpired is returned when an action arrives after the gate's deadline
	ErrExpired = errors.New("the deadline for this action has passed")
)

// Gate guards a single phase of a session: it admits actions only from the
// expected actor, optionally enforces a deadline, and commits the phase's
// outcome at most once. Engines create a fresh gate on every phase transition
// that carries a deadline.
type Gate struct {
	expectedActor string
	deadline      time.Time
	resolved      atomic.Bool
}

// New creates a gate for the given actor. A zero deadline means no deadline.
func New(expectedActor string, deadline time.Time) *Gate {
	return &Gate{
		expectedActor: expectedActor,
		deadline:      deadline,
	}
}

// ExpectedActor returns the identity the gate admits
func (g *Gate) ExpectedActor() string {
	return g.expectedActor
}

// Deadline returns the gate's deadline, zero if none
func (g *Gate) Deadline() time.Time {
	return g.deadline
}

// Validate checks that the action comes from the expected actor and that the
// deadline, if any, has not passed.
func (g *Gate) Validate(actor string, now time.Time) error {
	if actor != g.expectedActor {
		return ErrWrongActor
	}

	if !g.deadline.IsZero() && now.After(g.deadline) {
		return ErrExpired
	}

	return nil
}

// ResolveOnce returns true exactly once per gate. A timeout handler and a
// late user action both call it before applying an outcome; whichever wins
// applies, the other treats false as a no-op.
func (g *Gate) ResolveOnce() bool {
	return g.resolved.CompareAndSwap(false, true)
}

// Resolved reports whether the gate's outcome has been committed
func (g *Gate) Resolved() bool {
	return g.resolved.Load()
}
