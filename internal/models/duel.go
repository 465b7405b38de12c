package models

import (
	"time"
)

// DuelState represents the current state of a duel session
type DuelState string

const (
	// DuelStateChallengePending indicates the challenged participant has not
	// yet accepted or declined
	DuelStateChallengePending DuelState = "challenge_pending"

	// DuelStateChoicesPending indicates both participants are choosing
	DuelStateChoicesPending DuelState = "choices_pending"

	// DuelStateSettled indicates the duel resolved and the pot was paid out
	DuelStateSettled DuelState = "settled"

	// DuelStateDeclined indicates the challenged participant declined
	DuelStateDeclined DuelState = "declined"

	// DuelStateTimedOut indicates the challenge expired unanswered
	DuelStateTimedOut DuelState = "timed_out"
)

// DuelChoice is one of the three symbols in the cyclic beats relation
type DuelChoice string

const (
	DuelChoiceRock     DuelChoice = "rock"
	DuelChoicePaper    DuelChoice = "paper"
	DuelChoiceScissors DuelChoice = "scissors"
)

// Beats reports whether the choice beats the other in the fixed rotation
// rock > scissors > paper > rock
func (c DuelChoice) Beats(other DuelChoice) bool {
	switch c {
	case DuelChoiceRock:
		return other == DuelChoiceScissors
	case DuelChoiceScissors:
		return other == DuelChoicePaper
	case DuelChoicePaper:
		return other == DuelChoiceRock
	default:
		return false
	}
}

// ValidDuelChoice reports whether the value is one of the three symbols
func ValidDuelChoice(c DuelChoice) bool {
	return c == DuelChoiceRock || c == DuelChoicePaper || c == DuelChoiceScissors
}

// DuelSession holds the state of one duel
type DuelSession struct {
	// ID is the unique identifier for the session
	ID string

	// ChannelID is the Discord channel the duel is being played in
	ChannelID string

	// Challenger is the participant who issued the challenge
	Challenger Participant

	// Challenged is the participant who was challenged
	Challenged Participant

	// Wager is the amount each side stakes
	Wager int64

	// State is the current state of the session
	State DuelState

	// Choices maps participant ID to their recorded choice. A recorded
	// choice is never overwritten.
	Choices map[string]DuelChoice

	// WinnerID is set when the duel settles with a winner; empty on a tie
	WinnerID string

	// CreatedAt is when the challenge was issued
	CreatedAt time.Time

	// Deadline is when the pending challenge expires
	Deadline time.Time

	// LastActivityAt is when the last accepted action touched the session
	LastActivityAt time.Time
}
