package models

import (
	"time"

	"github.com/pitboss-bot/pitboss/internal/cards"
)

// BlackjackState represents the current state of a blackjack session
type BlackjackState string

const (
	// BlackjackStateDealt indicates the opening hands have been drawn
	BlackjackStateDealt BlackjackState = "dealt"

	// BlackjackStatePlayerTurn indicates the player may hit, stand or double
	BlackjackStatePlayerTurn BlackjackState = "player_turn"

	// BlackjackStateDealerTurn indicates the dealer is auto-drawing
	BlackjackStateDealerTurn BlackjackState = "dealer_turn"

	// BlackjackStateSettled indicates the session is terminal and settled
	BlackjackStateSettled BlackjackState = "settled"
)

// BlackjackOutcome represents how a settled session ended
type BlackjackOutcome string

const (
	// BlackjackOutcomePlayerWin indicates the player won the wager
	BlackjackOutcomePlayerWin BlackjackOutcome = "player_win"

	// BlackjackOutcomePlayerNatural indicates the player won with a two-card 21
	BlackjackOutcomePlayerNatural BlackjackOutcome = "player_natural"

	// BlackjackOutcomeDealerWin indicates the dealer won the wager
	BlackjackOutcomeDealerWin BlackjackOutcome = "dealer_win"

	// BlackjackOutcomePush indicates equal totals, wager returned
	BlackjackOutcomePush BlackjackOutcome = "push"
)

// BlackjackSession holds the state of one blackjack game
type BlackjackSession struct {
	// ID is the unique identifier for the session
	ID string

	// ChannelID is the Discord channel the game is being played in
	ChannelID string

	// Player is the participant playing the hand
	Player Participant

	// Wager is the amount at stake; doubled by a double-down
	Wager int64

	// State is the current state of the session
	State BlackjackState

	// PlayerHand is the player's drawn cards
	PlayerHand cards.Hand

	// DealerHand is the dealer's drawn cards
	DealerHand cards.Hand

	// Outcome is set once the session reaches the settled state
	Outcome BlackjackOutcome

	// CreatedAt is when the session was created
	CreatedAt time.Time

	// Deadline is when the player's turn times out
	Deadline time.Time
}
