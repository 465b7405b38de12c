package draft

import (
	"time"

	"github.com/pitboss-bot/pitboss/internal/common/clock"
	"github.com/pitboss-bot/pitboss/internal/common/uuid"
	"github.com/pitboss-bot/pitboss/internal/models"
	"github.com/pitboss-bot/pitboss/internal/rng"
)

// Config holds configuration for the draft service
type Config struct {
	// DefaultCapacity is the roster size when the creator does not choose
	DefaultCapacity int

	// IdleTimeout bounds lobby inactivity; idle lobbies are reaped
	IdleTimeout time.Duration

	// AllowSyntheticFill permits filling open slots with synthetic
	// participants for rehearsal lobbies
	AllowSyntheticFill bool

	// Service dependencies
	Random        rng.Random
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// CreateLobbyInput contains parameters for opening a lobby
type CreateLobbyInput struct {
	// ChannelID is the Discord channel the lobby lives in
	ChannelID string

	// Creator is the participant opening the lobby; joins the roster
	Creator models.Participant

	// Capacity overrides the default roster size when positive
	Capacity int

	// FillWithSynthetic fills the remaining slots with synthetic
	// participants; requires AllowSyntheticFill
	FillWithSynthetic bool
}

// CreateLobbyOutput contains the result of opening a lobby
type CreateLobbyOutput struct {
	// Lobby is a snapshot of the new lobby
	Lobby *models.DraftLobby
}

// JoinInput contains parameters for joining a lobby
type JoinInput struct {
	// LobbyID is the lobby to join
	LobbyID string

	// Participant is the joining participant
	Participant models.Participant
}

// JoinOutput contains the result of joining
type JoinOutput struct {
	// Lobby is a snapshot after the join
	Lobby *models.DraftLobby
}

// LeaveInput contains parameters for leaving a lobby
type LeaveInput struct {
	// LobbyID is the lobby to leave
	LobbyID string

	// ParticipantID is the leaving participant
	ParticipantID string
}

// LeaveOutput contains the result of leaving
type LeaveOutput struct {
	// Lobby is a snapshot after the leave
	Lobby *models.DraftLobby
}

// SelectCaptainsInput contains parameters for captain selection
type SelectCaptainsInput struct {
	// LobbyID is the lobby to act on
	LobbyID string

	// ActorID is the acting identity; must be the creator
	ActorID string

	// FirstCaptainID and SecondCaptainID are the chosen roster members;
	// the first-selected captain calls the coin flip
	FirstCaptainID  string
	SecondCaptainID string
}

// SelectCaptainsOutput contains the result of captain selection
type SelectCaptainsOutput struct {
	// Lobby is a snapshot after the selection
	Lobby *models.DraftLobby
}

// CallCoinInput contains parameters for calling the coin flip
type CallCoinInput struct {
	// LobbyID is the lobby to act on
	LobbyID string

	// ActorID is the acting identity; must be the first-selected captain
	ActorID string

	// Call is the face being called
	Call models.CoinFace
}

// CallCoinOutput contains the result of the coin flip
type CallCoinOutput struct {
	// Lobby is a snapshot after the flip
	Lobby *models.DraftLobby

	// CallWon indicates the caller guessed the drawn face
	CallWon bool
}

// ChooseSideInput contains parameters for the side choice
type ChooseSideInput struct {
	// LobbyID is the lobby to act on
	LobbyID string

	// ActorID is the acting identity; must be the call-winner
	ActorID string

	// Side is the chosen side; TeamSideRandom resolves uniformly
	Side models.TeamSide
}

// ChooseSideOutput contains the result of the side choice
type ChooseSideOutput struct {
	// Lobby is a snapshot after the choice
	Lobby *models.DraftLobby
}

// PickInput contains parameters for a draft pick
type PickInput struct {
	// LobbyID is the lobby to act on
	LobbyID string

	// ActorID is the acting identity; must be the current picker's captain
	ActorID string

	// PickID is the roster member being drafted
	PickID string
}

// PickOutput contains the result of a pick
type PickOutput struct {
	// Lobby is a snapshot after the pick
	Lobby *models.DraftLobby

	// AutoAssigned is set when the final member was auto-assigned as part
	// of this pick
	AutoAssigned *models.Participant
}

// GetLobbyInput contains parameters for reading a lobby
type GetLobbyInput struct {
	// LobbyID is the lobby to read
	LobbyID string
}

// GetLobbyOutput contains a lobby snapshot
type GetLobbyOutput struct {
	// Lobby is a snapshot of the lobby
	Lobby *models.DraftLobby
}

// ReapIdleInput contains parameters for the idle sweep
type ReapIdleInput struct{}

// ReapIdleOutput contains the reaped lobbies
type ReapIdleOutput struct {
	// Reaped are the lobbies removed by the sweep
	Reaped []*models.DraftLobby
}
