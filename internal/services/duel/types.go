package duel

import (
	"time"

	"github.com/pitboss-bot/pitboss/internal/common/clock"
	"github.com/pitboss-bot/pitboss/internal/common/uuid"
	"github.com/pitboss-bot/pitboss/internal/models"
	"github.com/pitboss-bot/pitboss/internal/registry"
	ledgerService "github.com/pitboss-bot/pitboss/internal/services/ledger"
)

// Config holds configuration for the duel service
type Config struct {
	// ChallengeTimeout bounds the pending challenge; expiry refunds the
	// challenger
	ChallengeTimeout time.Duration

	// IdleTimeout bounds a choices_pending duel with no submissions; reaped
	// duels refund both stakes
	IdleTimeout time.Duration

	// OnTimeout is called after a timeout-driven refund so the display
	// layer can refresh; may be nil
	OnTimeout func(session *models.DuelSession)

	// Service dependencies
	Ledger        ledgerService.Service
	Registry      *registry.Registry
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// ChallengeInput contains parameters for opening a duel
type ChallengeInput struct {
	// ChannelID is the Discord channel the duel is played in
	ChannelID string

	// Challenger is the participant issuing the challenge
	Challenger models.Participant

	// Challenged is the participant being challenged
	Challenged models.Participant

	// Wager is the amount each side stakes
	Wager int64
}

// ChallengeOutput contains the result of opening a duel
type ChallengeOutput struct {
	// Session is a snapshot of the pending challenge
	Session *models.DuelSession
}

// AcceptInput contains parameters for accepting a challenge
type AcceptInput struct {
	// SessionID is the duel to act on
	SessionID string

	// PlayerID is the acting identity; must be the challenged participant
	PlayerID string
}

// AcceptOutput contains the result of accepting a challenge
type AcceptOutput struct {
	// Session is a snapshot after the accept
	Session *models.DuelSession
}

// DeclineInput contains parameters for declining a challenge
type DeclineInput struct {
	// SessionID is the duel to act on
	SessionID string

	// PlayerID is the acting identity; must be the challenged participant
	PlayerID string
}

// DeclineOutput contains the result of declining a challenge
type DeclineOutput struct {
	// Session is a snapshot of the declined duel
	Session *models.DuelSession
}

// SubmitChoiceInput contains parameters for recording a choice
type SubmitChoiceInput struct {
	// SessionID is the duel to act on
	SessionID string

	// PlayerID is the acting identity; must be one of the two duelists
	PlayerID string

	// Choice is the symbol to record
	Choice models.DuelChoice
}

// SubmitChoiceOutput contains the result of recording a choice
type SubmitChoiceOutput struct {
	// Session is a snapshot after the submission
	Session *models.DuelSession

	// Resolved indicates the duel settled with this submission
	Resolved bool
}

// GetSessionInput contains parameters for reading a session
type GetSessionInput struct {
	// SessionID is the duel to read
	SessionID string
}

// GetSessionOutput contains a session snapshot
type GetSessionOutput struct {
	// Session is a snapshot of the session
	Session *models.DuelSession
}

// ReapIdleInput contains parameters for the idle sweep
type ReapIdleInput struct{}

// ReapIdleOutput contains the reaped sessions
type ReapIdleOutput struct {
	// Reaped are the duels removed by the sweep
	Reaped []*models.DuelSession
}
