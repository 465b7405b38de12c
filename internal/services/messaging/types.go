package messaging

import (
	"github.com/pitboss-bot/pitboss/internal/models"
)

// ServiceConfig holds configuration for the messaging service
type ServiceConfig struct{}

// ErrorType identifies which rejection a message should soften
type ErrorType string

const (
	// ErrorTypeInsufficientFunds covers debits the balance cannot cover
	ErrorTypeInsufficientFunds ErrorType = "insufficient_funds"

	// ErrorTypeWrongActor covers actions from a non-authorized identity
	ErrorTypeWrongActor ErrorType = "wrong_actor"

	// ErrorTypeAlreadyActive covers a second concurrent session
	ErrorTypeAlreadyActive ErrorType = "already_active"

	// ErrorTypeExpired covers late or duplicate actions
	ErrorTypeExpired ErrorType = "expired"

	// ErrorTypeInvalidSelection covers malformed targets and wagers
	ErrorTypeInvalidSelection ErrorType = "invalid_selection"
)

// GetBlackjackOutcomeMessageInput contains parameters for a settled hand
type GetBlackjackOutcomeMessageInput struct {
	// PlayerName is the player's display name
	PlayerName string

	// Outcome is the hand's final outcome
	Outcome models.BlackjackOutcome

	// Payout is the amount credited, zero on a loss
	Payout int64

	// Wager is the hand's final wager
	Wager int64
}

// GetBlackjackOutcomeMessageOutput contains the rendered text
type GetBlackjackOutcomeMessageOutput struct {
	Title   string
	Message string
}

// GetDuelChallengeMessageInput contains parameters for a new challenge
type GetDuelChallengeMessageInput struct {
	// ChallengerName is the challenger's display name
	ChallengerName string

	// ChallengedName is the challenged participant's display name
	ChallengedName string

	// Wager is the per-side stake
	Wager int64
}

// GetDuelChallengeMessageOutput contains the rendered text
type GetDuelChallengeMessageOutput struct {
	Message string
}

// GetDuelOutcomeMessageInput contains parameters for a settled duel
type GetDuelOutcomeMessageInput struct {
	// WinnerName is the winner's display name; empty on a tie
	WinnerName string

	// LoserName is the loser's display name; empty on a tie
	LoserName string

	// Tie indicates both sides chose the same symbol
	Tie bool

	// Pot is the total amount at stake
	Pot int64
}

// GetDuelOutcomeMessageOutput contains the rendered text
type GetDuelOutcomeMessageOutput struct {
	Title   string
	Message string
}

// GetDraftPhaseMessageInput contains parameters for a phase announcement
type GetDraftPhaseMessageInput struct {
	// Phase is the phase just entered
	Phase models.DraftPhase

	// ActorName is the display name of the participant whose move it is,
	// where the phase has one
	ActorName string
}

// GetDraftPhaseMessageOutput contains the rendered text
type GetDraftPhaseMessageOutput struct {
	Message string
}

// GetErrorMessageInput contains parameters for an error message
type GetErrorMessageInput struct {
	// ErrorType is the rejection being reported
	ErrorType ErrorType
}

// GetErrorMessageOutput contains the rendered text
type GetErrorMessageOutput struct {
	Message string
}
