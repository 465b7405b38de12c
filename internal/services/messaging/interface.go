package messaging

import "context"

// Service produces the display text for game events
type Service interface {
	// GetBlackjackOutcomeMessage returns a title and message for a settled
	// blackjack hand
	GetBlackjackOutcomeMessage(ctx context.Context, input *GetBlackjackOutcomeMessageInput) (*GetBlackjackOutcomeMessageOutput, error)

	// GetDuelChallengeMessage returns the call-out text for a new challenge
	GetDuelChallengeMessage(ctx context.Context, input *GetDuelChallengeMessageInput) (*GetDuelChallengeMessageOutput, error)

	// GetDuelOutcomeMessage returns a title and message for a settled duel
	GetDuelOutcomeMessage(ctx context.Context, input *GetDuelOutcomeMessageInput) (*GetDuelOutcomeMessageOutput, error)

	// GetDraftPhaseMessage returns the announcement text for a draft lobby
	// phase transition
	GetDraftPhaseMessage(ctx context.Context, input *GetDraftPhaseMessageInput) (*GetDraftPhaseMessageOutput, error)

	// GetErrorMessage returns a user-friendly error message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
