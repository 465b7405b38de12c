package duel

import "errors"

var (
	// ErrSessionNotFound is returned when no session exists for the ID
	ErrSessionNotFound = errors.New("duel session not found")

	// ErrInvalidState is returned when an action is not valid in the
	// session's current state
	ErrInvalidState = errors.New("action not valid in current state")

	// ErrAlreadyResolved is returned when a duplicate or late action
	// arrives after the challenge has been committed
	ErrAlreadyResolved = errors.New("challenge already resolved")

	// ErrInvalidWager is returned when the wager is zero or negative
	ErrInvalidWager = errors.New("wager must be positive")

	// ErrSelfChallenge is returned when a participant challenges themselves
	ErrSelfChallenge = errors.New("cannot challenge yourself")

	// ErrNotInDuel is returned when the acting identity is neither duelist
	ErrNotInDuel = errors.New("participant is not part of this duel")

	// ErrInvalidChoice is returned for a value outside the three symbols
	ErrInvalidChoice = errors.New("invalid choice")

	// ErrChoiceAlreadyMade is returned when a participant submits a second
	// choice; the recorded choice is never overwritten
	ErrChoiceAlreadyMade = errors.New("choice already recorded")
)
