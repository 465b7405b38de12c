package models

import (
	"time"
)

// DraftPhase represents the current phase of a draft lobby
type DraftPhase string

const (
	// DraftPhaseAwaitingPlayers indicates the roster is still filling
	DraftPhaseAwaitingPlayers DraftPhase = "awaiting_players"

	// DraftPhaseCaptainSelection indicates the creator is picking captains
	DraftPhaseCaptainSelection DraftPhase = "captain_selection"

	// DraftPhaseCoinFlip indicates the first captain is calling the flip
	DraftPhaseCoinFlip DraftPhase = "coin_flip"

	// DraftPhaseSideChoice indicates the call-winner is choosing a side
	DraftPhaseSideChoice DraftPhase = "side_choice"

	// DraftPhaseDrafting indicates the snake draft is underway
	DraftPhaseDrafting DraftPhase = "drafting"

	// DraftPhaseComplete indicates the draft is terminal
	DraftPhaseComplete DraftPhase = "complete"
)

// CoinFace is one side of the coin
type CoinFace string

const (
	CoinFaceHeads CoinFace = "heads"
	CoinFaceTails CoinFace = "tails"
)

// TeamSide identifies which side of the map a team starts on
type TeamSide string

const (
	TeamSideBlue TeamSide = "blue"
	TeamSideRed  TeamSide = "red"

	// TeamSideRandom asks for a uniformly random side at selection time
	TeamSideRandom TeamSide = "random"
)

// DraftTeam is one captain's team
type DraftTeam struct {
	// Captain leads the team; never part of Members
	Captain Participant

	// Side is assigned during the side_choice phase
	Side TeamSide

	// Members are the drafted players
	Members []Participant
}

// DraftLobby holds the state of one team-draft workflow.
// Invariant: captains, both member lists and the unassigned pool partition
// the roster at all times.
type DraftLobby struct {
	// ID is the unique identifier for the lobby
	ID string

	// ChannelID is the Discord channel the lobby lives in
	ChannelID string

	// MessageID is the Discord message displaying the lobby. Display
	// lookup only, never an ownership edge.
	MessageID string

	// CreatorID is the participant who opened the lobby
	CreatorID string

	// Capacity is the fixed roster size
	Capacity int

	// Roster is the ordered list of joined participants
	Roster []Participant

	// Teams holds both captains and their picks; index 0 is the coin-flip
	// call winner once the flip has happened
	Teams [2]DraftTeam

	// CoinCall is the face called by the first-selected captain
	CoinCall CoinFace

	// CoinResult is the face actually drawn
	CoinResult CoinFace

	// CurrentPicker indexes Teams for the side whose pick it is
	CurrentPicker int

	// Round counts pick rounds; the first round draws one player, every
	// later round draws two
	Round int

	// PicksLeftInRound counts down the current round's picks
	PicksLeftInRound int

	// Phase is the current phase of the lobby
	Phase DraftPhase

	// CreatedAt is when the lobby was opened
	CreatedAt time.Time

	// LastActivityAt is bumped on every accepted action; drives idle reaping
	LastActivityAt time.Time
}

// IsCaptain reports whether the participant is one of the two captains
func (l *DraftLobby) IsCaptain(participantID string) bool {
	for _, t := range l.Teams {
		if t.Captain.ID == participantID {
			return true
		}
	}
	return false
}

// IsAssigned reports whether the participant is a captain or already drafted
func (l *DraftLobby) IsAssigned(participantID string) bool {
	if l.IsCaptain(participantID) {
		return true
	}
	for _, t := range l.Teams {
		for _, m := range t.Members {
			if m.ID == participantID {
				return true
			}
		}
	}
	return false
}

// Find returns the roster entry for the participant, if any
func (l *DraftLobby) Find(participantID string) (Participant, bool) {
	for _, p := range l.Roster {
		if p.ID == participantID {
			return p, true
		}
	}
	return Participant{}, false
}

// OnRoster reports whether the participant joined the lobby
func (l *DraftLobby) OnRoster(participantID string) bool {
	for _, p := range l.Roster {
		if p.ID == participantID {
			return true
		}
	}
	return false
}

// Unassigned returns roster members not yet a captain or team member,
// preserving roster order
func (l *DraftLobby) Unassigned() []Participant {
	var pool []Participant
	for _, p := range l.Roster {
		if !l.IsAssigned(p.ID) {
			pool = append(pool, p)
		}
	}
	return pool
}
