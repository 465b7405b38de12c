package duel

import "context"

// Service is the duel engine: a timed challenge/accept flow followed by
// simultaneous hidden choices, settling the pot against the ledger
type Service interface {
	// Challenge opens a duel and reserves the challenger's wager by
	// debiting it immediately
	Challenge(ctx context.Context, input *ChallengeInput) (*ChallengeOutput, error)

	// Accept lets the challenged participant join, debiting their matching
	// wager
	Accept(ctx context.Context, input *AcceptInput) (*AcceptOutput, error)

	// Decline lets the challenged participant refuse; the challenger is
	// refunded
	Decline(ctx context.Context, input *DeclineInput) (*DeclineOutput, error)

	// SubmitChoice records a participant's hidden choice; the duel resolves
	// once both are present
	SubmitChoice(ctx context.Context, input *SubmitChoiceInput) (*SubmitChoiceOutput, error)

	// GetSession returns a snapshot of a live session for display
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)

	// ReapIdle sweeps away choices_pending duels with no recent submissions
	ReapIdle(ctx context.Context, input *ReapIdleInput) (*ReapIdleOutput, error)
}
