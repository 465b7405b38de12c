package draft

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pitboss-bot/pitboss/internal/models"
	"github.com/pitboss-bot/pitboss/internal/turngate"
)

const (
	// defaultCapacity is the roster size when the creator does not choose
	defaultCapacity = 10

	// defaultIdleTimeout bounds lobby inactivity
	defaultIdleTimeout = 30 * time.Minute

	// firstRoundPicks and laterRoundPicks define the snake schedule: one
	// pick in the opening round, two in every round after
	firstRoundPicks = 1
	laterRoundPicks = 2
)

// lobbyState pairs a lobby with the gate guarding its current phase
type lobbyState struct {
	mu    sync.Mutex
	lobby *models.DraftLobby
	gate  *turngate.Gate
}

// service implements the Service interface
type service struct {
	config *Config

	mu      sync.Mutex
	lobbies map[string]*lobbyState
}

// New creates a new draft service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Random == nil {
		return nil, errors.New("random source cannot be nil")
	}

	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	if cfg.UUIDGenerator == nil {
		return nil, errors.New("uuid generator cannot be nil")
	}

	if cfg.DefaultCapacity == 0 {
		cfg.DefaultCapacity = defaultCapacity
	}

	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = defaultIdleTimeout
	}

	return &service{
		config:  cfg,
		lobbies: make(map[string]*lobbyState),
	}, nil
}

// CreateLobby opens a lobby with the creator on the roster
func (s *service) CreateLobby(ctx context.Context, input *CreateLobbyInput) (*CreateLobbyOutput, error) {
	if input == nil || input.Creator.ID == "" {
		return nil, errors.New("input and creator cannot be empty")
	}

	capacity := input.Capacity
	if capacity == 0 {
		capacity = s.config.DefaultCapacity
	}
	if capacity < 4 {
		return nil, ErrInvalidCapacity
	}

	now := s.config.Clock.Now()
	lobby := &models.DraftLobby{
		ID:             s.config.UUIDGenerator.NewUUID(),
		ChannelID:      input.ChannelID,
		CreatorID:      input.Creator.ID,
		Capacity:       capacity,
		Roster:         []models.Participant{input.Creator},
		Phase:          models.DraftPhaseAwaitingPlayers,
		CreatedAt:      now,
		LastActivityAt: now,
	}

	st := &lobbyState{lobby: lobby}

	if input.FillWithSynthetic && s.config.AllowSyntheticFill {
		for i := len(lobby.Roster); i < capacity; i++ {
			lobby.Roster = append(lobby.Roster, models.Participant{
				ID:        fmt.Sprintf("synthetic-%d", i),
				Name:      fmt.Sprintf("Standin %d", i),
				Synthetic: true,
			})
		}
		s.rosterFilled(st)
	}

	s.mu.Lock()
	s.lobbies[lobby.ID] = st
	s.mu.Unlock()

	return &CreateLobbyOutput{Lobby: snapshot(lobby)}, nil
}

// Join adds a participant while the roster is filling
func (s *service) Join(ctx context.Context, input *JoinInput) (*JoinOutput, error) {
	if input == nil || input.LobbyID == "" || input.Participant.ID == "" {
		return nil, errors.New("input, lobby ID and participant cannot be empty")
	}

	st, err := s.lookup(input.LobbyID)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	lobby := st.lobby

	if lobby.Phase != models.DraftPhaseAwaitingPlayers {
		return nil, ErrWrongPhase
	}

	if lobby.OnRoster(input.Participant.ID) {
		return nil, ErrAlreadyJoined
	}

	if len(lobby.Roster) >= lobby.Capacity {
		return nil, ErrLobbyFull
	}

	lobby.Roster = append(lobby.Roster, input.Participant)
	s.touch(lobby)

	if len(lobby.Roster) == lobby.Capacity {
		s.rosterFilled(st)
	}

	return &JoinOutput{Lobby: snapshot(lobby)}, nil
}

// Leave removes a participant; only valid while the roster is filling
func (s *service) Leave(ctx context.Context, input *LeaveInput) (*LeaveOutput, error) {
	if input == nil || input.LobbyID == "" || input.ParticipantID == "" {
		return nil, errors.New("input, lobby ID and participant ID cannot be empty")
	}

	st, err := s.lookup(input.LobbyID)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	lobby := st.lobby

	if lobby.Phase != models.DraftPhaseAwaitingPlayers {
		return nil, ErrWrongPhase
	}

	if !lobby.OnRoster(input.ParticipantID) {
		return nil, ErrNotInLobby
	}

	roster := make([]models.Participant, 0, len(lobby.Roster)-1)
	for _, p := range lobby.Roster {
		if p.ID != input.ParticipantID {
			roster = append(roster, p)
		}
	}
	lobby.Roster = roster
	s.touch(lobby)

	return &LeaveOutput{Lobby: snapshot(lobby)}, nil
}

// SelectCaptains lets the creator pick two distinct roster members
func (s *service) SelectCaptains(ctx context.Context, input *SelectCaptainsInput) (*SelectCaptainsOutput, error) {
	if input == nil || input.LobbyID == "" {
		return nil, errors.New("input and lobby ID cannot be empty")
	}

	st, err := s.lookup(input.LobbyID)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	lobby := st.lobby

	if lobby.Phase != models.DraftPhaseCaptainSelection {
		return nil, ErrWrongPhase
	}

	if err := st.gate.Validate(input.ActorID, s.config.Clock.Now()); err != nil {
		return nil, err
	}

	if input.FirstCaptainID == input.SecondCaptainID {
		return nil, ErrInvalidSelection
	}

	first, ok := lobby.Find(input.FirstCaptainID)
	if !ok {
		return nil, ErrInvalidSelection
	}

	second, ok := lobby.Find(input.SecondCaptainID)
	if !ok {
		return nil, ErrInvalidSelection
	}

	lobby.Teams[0] = models.DraftTeam{Captain: first}
	lobby.Teams[1] = models.DraftTeam{Captain: second}

	lobby.Phase = models.DraftPhaseCoinFlip
	st.gate = turngate.New(first.ID, time.Time{})
	s.touch(lobby)

	return &SelectCaptainsOutput{Lobby: snapshot(lobby)}, nil
}

// CallCoin lets the first-selected captain call the flip
func (s *service) CallCoin(ctx context.Context, input *CallCoinInput) (*CallCoinOutput, error) {
	if input == nil || input.LobbyID == "" {
		return nil, errors.New("input and lobby ID cannot be empty")
	}

	if input.Call != models.CoinFaceHeads && input.Call != models.CoinFaceTails {
		return nil, ErrInvalidSelection
	}

	st, err := s.lookup(input.LobbyID)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	lobby := st.lobby

	if lobby.Phase != models.DraftPhaseCoinFlip {
		return nil, ErrWrongPhase
	}

	if err := st.gate.Validate(input.ActorID, s.config.Clock.Now()); err != nil {
		return nil, err
	}

	lobby.CoinCall = input.Call
	lobby.CoinResult = models.CoinFaceHeads
	if s.config.Random.Intn(2) == 1 {
		lobby.CoinResult = models.CoinFaceTails
	}

	callWon := lobby.CoinCall == lobby.CoinResult
	if !callWon {
		// Missed call: swap so the winner of the flip is always first
		lobby.Teams[0], lobby.Teams[1] = lobby.Teams[1], lobby.Teams[0]
	}

	lobby.Phase = models.DraftPhaseSideChoice
	st.gate = turngate.New(lobby.Teams[0].Captain.ID, time.Time{})
	s.touch(lobby)

	return &CallCoinOutput{
		Lobby:   snapshot(lobby),
		CallWon: callWon,
	}, nil
}

// ChooseSide lets the call-winner pick a side and become the first picker
func (s *service) ChooseSide(ctx context.Context, input *ChooseSideInput) (*ChooseSideOutput, error) {
	if input == nil || input.LobbyID == "" {
		return nil, errors.New("input and lobby ID cannot be empty")
	}

	st, err := s.lookup(input.LobbyID)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	lobby := st.lobby

	if lobby.Phase != models.DraftPhaseSideChoice {
		return nil, ErrWrongPhase
	}

	if err := st.gate.Validate(input.ActorID, s.config.Clock.Now()); err != nil {
		return nil, err
	}

	side := input.Side
	if side == models.TeamSideRandom {
		side = models.TeamSideBlue
		if s.config.Random.Intn(2) == 1 {
			side = models.TeamSideRed
		}
	}

	switch side {
	case models.TeamSideBlue:
		lobby.Teams[0].Side = models.TeamSideBlue
		lobby.Teams[1].Side = models.TeamSideRed
	case models.TeamSideRed:
		lobby.Teams[0].Side = models.TeamSideRed
		lobby.Teams[1].Side = models.TeamSideBlue
	default:
		return nil, ErrInvalidSelection
	}

	lobby.Phase = models.DraftPhaseDrafting
	lobby.CurrentPicker = 0
	lobby.Round = 1
	lobby.PicksLeftInRound = firstRoundPicks
	st.gate = turngate.New(lobby.Teams[0].Captain.ID, time.Time{})
	s.touch(lobby)

	s.maybeFinish(st)

	return &ChooseSideOutput{Lobby: snapshot(lobby)}, nil
}

// Pick drafts one unassigned roster member for the current picker's team
func (s *service) Pick(ctx context.Context, input *PickInput) (*PickOutput, error) {
	if input == nil || input.LobbyID == "" {
		return nil, errors.New("input and lobby ID cannot be empty")
	}

	st, err := s.lookup(input.LobbyID)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	lobby := st.lobby

	if lobby.Phase != models.DraftPhaseDrafting {
		return nil, ErrWrongPhase
	}

	if err := st.gate.Validate(input.ActorID, s.config.Clock.Now()); err != nil {
		return nil, err
	}

	pick, ok := lobby.Find(input.PickID)
	if !ok || lobby.IsAssigned(pick.ID) {
		return nil, ErrInvalidSelection
	}

	team := &lobby.Teams[lobby.CurrentPicker]
	team.Members = append(team.Members, pick)

	lobby.PicksLeftInRound--
	if lobby.PicksLeftInRound == 0 {
		lobby.CurrentPicker = 1 - lobby.CurrentPicker
		lobby.Round++
		lobby.PicksLeftInRound = laterRoundPicks
		st.gate = turngate.New(lobby.Teams[lobby.CurrentPicker].Captain.ID, time.Time{})
	}
	s.touch(lobby)

	autoAssigned := s.maybeFinish(st)

	return &PickOutput{
		Lobby:        snapshot(lobby),
		AutoAssigned: autoAssigned,
	}, nil
}

// GetLobby returns a snapshot of a live lobby
func (s *service) GetLobby(ctx context.Context, input *GetLobbyInput) (*GetLobbyOutput, error) {
	if input == nil || input.LobbyID == "" {
		return nil, errors.New("input and lobby ID cannot be empty")
	}

	st, err := s.lookup(input.LobbyID)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	return &GetLobbyOutput{Lobby: snapshot(st.lobby)}, nil
}

// ReapIdle removes lobbies with no accepted action within the idle timeout
func (s *service) ReapIdle(ctx context.Context, input *ReapIdleInput) (*ReapIdleOutput, error) {
	now := s.config.Clock.Now()

	s.mu.Lock()
	var stale []*lobbyState
	for _, st := range s.lobbies {
		stale = append(stale, st)
	}
	s.mu.Unlock()

	var reaped []*models.DraftLobby
	for _, st := range stale {
		st.mu.Lock()
		idle := now.Sub(st.lobby.LastActivityAt) >= s.config.IdleTimeout
		if idle {
			reaped = append(reaped, snapshot(st.lobby))
			s.mu.Lock()
			delete(s.lobbies, st.lobby.ID)
			s.mu.Unlock()
		}
		st.mu.Unlock()
	}

	return &ReapIdleOutput{Reaped: reaped}, nil
}

// rosterFilled advances a full roster into captain selection. The caller
// must hold the lobby lock or have exclusive access.
func (s *service) rosterFilled(st *lobbyState) {
	st.lobby.Phase = models.DraftPhaseCaptainSelection
	st.gate = turngate.New(st.lobby.CreatorID, time.Time{})
}

// maybeFinish auto-assigns the final unassigned member and completes the
// lobby once every slot is filled. The caller must hold the lobby lock.
func (s *service) maybeFinish(st *lobbyState) *models.Participant {
	lobby := st.lobby

	var autoAssigned *models.Participant

	if pool := lobby.Unassigned(); len(pool) == 1 {
		last := pool[0]
		team := &lobby.Teams[lobby.CurrentPicker]
		team.Members = append(team.Members, last)
		autoAssigned = &last
	}

	if len(lobby.Unassigned()) == 0 {
		lobby.Phase = models.DraftPhaseComplete
		st.gate = nil

		s.mu.Lock()
		delete(s.lobbies, lobby.ID)
		s.mu.Unlock()
	}

	return autoAssigned
}

// touch bumps the lobby's idle clock
func (s *service) touch(lobby *models.DraftLobby) {
	lobby.LastActivityAt = s.config.Clock.Now()
}

// lookup finds a live lobby by ID
func (s *service) lookup(lobbyID string) (*lobbyState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.lobbies[lobbyID]
	if !ok {
		return nil, ErrLobbyNotFound
	}
	return st, nil
}

// snapshot copies a lobby so callers never share the engine's mutable state
func snapshot(lobby *models.DraftLobby) *models.DraftLobby {
	copied := *lobby
	copied.Roster = append([]models.Participant{}, lobby.Roster...)
	for i := range lobby.Teams {
		copied.Teams[i].Members = append([]models.Participant{}, lobby.Teams[i].Members...)
	}
	return &copied
}
