package blackjack

import "errors"

var (
	// ErrSessionNotFound is returned when no session exists for the ID
	ErrSessionNotFound = errors.New("blackjack session not found")

	// ErrInvalidState is returned when an action is not valid in the
	// session's current state
	ErrInvalidState = errors.New("action not valid in current state")

	// ErrAlreadyResolved is returned when a duplicate or late action
	// arrives after the turn's outcome has been committed
	ErrAlreadyResolved = errors.New("turn already resolved")

	// ErrInvalidWager is returned when the wager is zero or negative
	ErrInvalidWager = errors.New("wager must be positive")

	// ErrDoubleNotAllowed is returned when a double-down is requested with
	// more than two cards held
	ErrDoubleNotAllowed = errors.New("double is only allowed on the first two cards")
)
