package blackjack

import (
	"time"

	"github.com/pitboss-bot/pitboss/internal/cards"
	"github.com/pitboss-bot/pitboss/internal/common/clock"
	"github.com/pitboss-bot/pitboss/internal/common/uuid"
	"github.com/pitboss-bot/pitboss/internal/models"
	"github.com/pitboss-bot/pitboss/internal/registry"
	"github.com/pitboss-bot/pitboss/internal/rng"
	ledgerService "github.com/pitboss-bot/pitboss/internal/services/ledger"
)

// Config holds configuration for the blackjack service
type Config struct {
	// TurnTimeout bounds the player's turn; expiry forces an implicit stand
	TurnTimeout time.Duration

	// NewDeck builds the session's shuffled deck; overridable for stacked
	// decks in tests and rehearsal games
	NewDeck func(random rng.Random) *cards.Deck

	// OnTimeout is called after a timeout-driven settlement so the display
	// layer can refresh; may be nil
	OnTimeout func(session *models.BlackjackSession)

	// Service dependencies
	Ledger        ledgerService.Service
	Registry      *registry.Registry
	Random        rng.Random
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// DealInput contains parameters for opening a session
type DealInput struct {
	// ChannelID is the Discord channel the game is played in
	ChannelID string

	// Player is the participant playing the hand
	Player models.Participant

	// Wager is the amount at stake
	Wager int64
}

// DealOutput contains the result of opening a session
type DealOutput struct {
	// Session is a snapshot of the session after the deal
	Session *models.BlackjackSession
}

// HitInput contains parameters for a hit
type HitInput struct {
	// SessionID is the session to act on
	SessionID string

	// PlayerID is the acting identity
	PlayerID string
}

// HitOutput contains the result of a hit
type HitOutput struct {
	// Session is a snapshot of the session after the hit
	Session *models.BlackjackSession
}

// StandInput contains parameters for a stand
type StandInput struct {
	// SessionID is the session to act on
	SessionID string

	// PlayerID is the acting identity
	PlayerID string
}

// StandOutput contains the result of a stand
type StandOutput struct {
	// Session is a snapshot of the settled session
	Session *models.BlackjackSession
}

// DoubleInput contains parameters for a double-down
type DoubleInput struct {
	// SessionID is the session to act on
	SessionID string

	// PlayerID is the acting identity
	PlayerID string
}

// DoubleOutput contains the result of a double-down
type DoubleOutput struct {
	// Session is a snapshot of the settled session
	Session *models.BlackjackSession
}

// GetSessionInput contains parameters for reading a session
type GetSessionInput struct {
	// SessionID is the session to read
	SessionID string
}

// GetSessionOutput contains a session snapshot
type GetSessionOutput struct {
	// Session is a snapshot of the session
	Session *models.BlackjackSession
}
