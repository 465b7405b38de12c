package blackjack

import "context"

// Service is the blackjack engine: a per-player state machine of
// dealt -> player_turn -> dealer_turn -> settled, settling against the ledger
type Service interface {
	// Deal opens a session for a player, drawing the opening hands. Naturals
	// settle immediately.
	Deal(ctx context.Context, input *DealInput) (*DealOutput, error)

	// Hit draws one card for the player; reaching 21 or busting ends the turn
	Hit(ctx context.Context, input *HitInput) (*HitOutput, error)

	// Stand ends the player's turn and runs the dealer
	Stand(ctx context.Context, input *StandInput) (*StandOutput, error)

	// Double doubles the wager, draws exactly one card and runs the dealer.
	// Only valid on the first two cards with balance covering the doubled
	// wager.
	Double(ctx context.Context, input *DoubleInput) (*DoubleOutput, error)

	// GetSession returns a snapshot of a live session for display
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)
}
