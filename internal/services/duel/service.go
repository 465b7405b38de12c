package duel

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pitboss-bot/pitboss/internal/models"
	ledgerService "github.com/pitboss-bot/pitboss/internal/services/ledger"
	"github.com/pitboss-bot/pitboss/internal/turngate"
)

const (
	// defaultChallengeTimeout bounds the pending challenge
	defaultChallengeTimeout = 45 * time.Second

	// defaultIdleTimeout bounds a choices_pending duel with no submissions
	defaultIdleTimeout = 30 * time.Minute
)

// sessionState pairs a session with its gate and timer
type sessionState struct {
	mu      sync.Mutex
	session *models.DuelSession
	gate    *turngate.Gate
	timer   *time.Timer
}

// service implements the Service interface
type service struct {
	config *Config

	mu       sync.Mutex
	sessions map[string]*sessionState
}

// New creates a new duel service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Ledger == nil {
		return nil, errors.New("ledger service cannot be nil")
	}

	if cfg.Registry == nil {
		return nil, errors.New("registry cannot be nil")
	}

	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	if cfg.UUIDGenerator == nil {
		return nil, errors.New("uuid generator cannot be nil")
	}

	if cfg.ChallengeTimeout == 0 {
		cfg.ChallengeTimeout = defaultChallengeTimeout
	}

	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = defaultIdleTimeout
	}

	return &service{
		config:   cfg,
		sessions: make(map[string]*sessionState),
	}, nil
}

// Challenge opens a duel and reserves the challenger's wager
func (s *service) Challenge(ctx context.Context, input *ChallengeInput) (*ChallengeOutput, error) {
	if input == nil || input.Challenger.ID == "" || input.Challenged.ID == "" {
		return nil, errors.New("input and both participants cannot be empty")
	}

	if input.Challenger.ID == input.Challenged.ID {
		return nil, ErrSelfChallenge
	}

	if input.Wager <= 0 {
		return nil, ErrInvalidWager
	}

	sessionID := s.config.UUIDGenerator.NewUUID()

	if err := s.config.Registry.Acquire(sessionID, input.Challenger.ID); err != nil {
		return nil, err
	}

	// Debit on challenge, not on settlement: the challenger's stake is
	// held by the pot for the lifetime of the duel
	_, err := s.config.Ledger.Debit(ctx, &ledgerService.DebitInput{
		ParticipantID: input.Challenger.ID,
		Amount:        input.Wager,
	})
	if err != nil {
		s.config.Registry.Release(input.Challenger.ID)
		return nil, err
	}

	now := s.config.Clock.Now()
	session := &models.DuelSession{
		ID:             sessionID,
		ChannelID:      input.ChannelID,
		Challenger:     input.Challenger,
		Challenged:     input.Challenged,
		Wager:          input.Wager,
		State:          models.DuelStateChallengePending,
		Choices:        make(map[string]models.DuelChoice),
		CreatedAt:      now,
		Deadline:       now.Add(s.config.ChallengeTimeout),
		LastActivityAt: now,
	}

	st := &sessionState{
		session: session,
		gate:    turngate.New(input.Challenged.ID, session.Deadline),
	}
	st.timer = time.AfterFunc(s.config.ChallengeTimeout, func() {
		s.timeoutChallenge(sessionID)
	})

	s.mu.Lock()
	s.sessions[sessionID] = st
	s.mu.Unlock()

	return &ChallengeOutput{Session: snapshot(session)}, nil
}

// Accept lets the challenged participant join the duel
func (s *service) Accept(ctx context.Context, input *AcceptInput) (*AcceptOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	st, err := s.lookup(input.SessionID)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	session := st.session

	if session.State != models.DuelStateChallengePending {
		return nil, ErrInvalidState
	}

	if err := st.gate.Validate(input.PlayerID, s.config.Clock.Now()); err != nil {
		return nil, err
	}

	// The challenged participant may be busy in another wagering session
	if err := s.config.Registry.Acquire(session.ID, session.Challenged.ID); err != nil {
		return nil, err
	}

	if !st.gate.ResolveOnce() {
		s.config.Registry.Release(session.Challenged.ID)
		return nil, ErrAlreadyResolved
	}

	st.timer.Stop()

	_, err = s.config.Ledger.Debit(ctx, &ledgerService.DebitInput{
		ParticipantID: session.Challenged.ID,
		Amount:        session.Wager,
	})
	if err != nil {
		// The challenged side cannot stake: treat as a decline so the
		// challenger gets their reserve back
		s.refundChallenger(ctx, session)
		session.State = models.DuelStateDeclined
		s.destroy(st)
		return nil, err
	}

	session.State = models.DuelStateChoicesPending
	session.Deadline = time.Time{}
	session.LastActivityAt = s.config.Clock.Now()
	st.gate = nil

	return &AcceptOutput{Session: snapshot(session)}, nil
}

// Decline lets the challenged participant refuse the duel
func (s *service) Decline(ctx context.Context, input *DeclineInput) (*DeclineOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	st, err := s.lookup(input.SessionID)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	session := st.session

	if session.State != models.DuelStateChallengePending {
		return nil, ErrInvalidState
	}

	if err := st.gate.Validate(input.PlayerID, s.config.Clock.Now()); err != nil {
		return nil, err
	}

	if !st.gate.ResolveOnce() {
		return nil, ErrAlreadyResolved
	}

	st.timer.Stop()

	if err := s.refundChallenger(ctx, session); err != nil {
		return nil, err
	}

	session.State = models.DuelStateDeclined
	s.destroy(st)

	return &DeclineOutput{Session: snapshot(session)}, nil
}

// SubmitChoice records a participant's hidden choice
func (s *service) SubmitChoice(ctx context.Context, input *SubmitChoiceInput) (*SubmitChoiceOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	if !models.ValidDuelChoice(input.Choice) {
		return nil, ErrInvalidChoice
	}

	st, err := s.lookup(input.SessionID)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	session := st.session

	if session.State != models.DuelStateChoicesPending {
		return nil, ErrInvalidState
	}

	if input.PlayerID != session.Challenger.ID && input.PlayerID != session.Challenged.ID {
		return nil, ErrNotInDuel
	}

	if _, ok := session.Choices[input.PlayerID]; ok {
		return nil, ErrChoiceAlreadyMade
	}

	session.Choices[input.PlayerID] = input.Choice
	session.LastActivityAt = s.config.Clock.Now()

	if len(session.Choices) < 2 {
		return &SubmitChoiceOutput{Session: snapshot(session)}, nil
	}

	if err := s.resolve(ctx, st); err != nil {
		return nil, err
	}

	return &SubmitChoiceOutput{
		Session:  snapshot(session),
		Resolved: true,
	}, nil
}

// GetSession returns a snapshot of a live session
func (s *service) GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	st, err := s.lookup(input.SessionID)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	return &GetSessionOutput{Session: snapshot(st.session)}, nil
}

// ReapIdle removes choices_pending duels that have seen no submission for
// the idle timeout, refunding both stakes. Pending challenges are already
// bounded by their own deadline timer.
func (s *service) ReapIdle(ctx context.Context, input *ReapIdleInput) (*ReapIdleOutput, error) {
	now := s.config.Clock.Now()

	s.mu.Lock()
	var live []*sessionState
	for _, st := range s.sessions {
		live = append(live, st)
	}
	s.mu.Unlock()

	var reaped []*models.DuelSession
	for _, st := range live {
		st.mu.Lock()
		session := st.session
		if session.State == models.DuelStateChoicesPending &&
			now.Sub(session.LastActivityAt) >= s.config.IdleTimeout {
			// Stable order, challenger first
			for _, id := range []string{session.Challenger.ID, session.Challenged.ID} {
				_, err := s.config.Ledger.Credit(ctx, &ledgerService.CreditInput{
					ParticipantID: id,
					Amount:        session.Wager,
				})
				if err != nil {
					log.Error().Err(err).Str("session_id", session.ID).Str("participant_id", id).Msg("failed to refund reaped duel")
				}
			}
			session.State = models.DuelStateTimedOut
			s.destroy(st)
			reaped = append(reaped, snapshot(session))
		}
		st.mu.Unlock()
	}

	return &ReapIdleOutput{Reaped: reaped}, nil
}

// resolve applies the beats relation and settles the pot. The caller must
// hold the session lock.
func (s *service) resolve(ctx context.Context, st *sessionState) error {
	session := st.session

	challengerChoice := session.Choices[session.Challenger.ID]
	challengedChoice := session.Choices[session.Challenged.ID]

	switch {
	case challengerChoice.Beats(challengedChoice):
		session.WinnerID = session.Challenger.ID
	case challengedChoice.Beats(challengerChoice):
		session.WinnerID = session.Challenged.ID
	}

	if session.WinnerID == "" {
		// Tie: both stakes go back. Stable order, challenger first.
		for _, id := range []string{session.Challenger.ID, session.Challenged.ID} {
			_, err := s.config.Ledger.Credit(ctx, &ledgerService.CreditInput{
				ParticipantID: id,
				Amount:        session.Wager,
			})
			if err != nil {
				return fmt.Errorf("failed to refund tie: %w", err)
			}
		}
	} else {
		_, err := s.config.Ledger.Credit(ctx, &ledgerService.CreditInput{
			ParticipantID: session.WinnerID,
			Amount:        session.Wager * 2,
		})
		if err != nil {
			return fmt.Errorf("failed to credit pot: %w", err)
		}
	}

	session.State = models.DuelStateSettled
	s.destroy(st)

	return nil
}

// timeoutChallenge refunds the challenger when a challenge expires
// unanswered. The gate guarantees it cannot race a last-moment accept or
// decline into a double refund.
func (s *service) timeoutChallenge(sessionID string) {
	s.mu.Lock()
	st, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	session := st.session

	if session.State != models.DuelStateChallengePending {
		return
	}

	if !st.gate.ResolveOnce() {
		return
	}

	ctx := context.Background()
	if err := s.refundChallenger(ctx, session); err != nil {
		log.Error().Err(err).Str("session_id", session.ID).Msg("failed to refund expired challenge")
	}

	session.State = models.DuelStateTimedOut
	s.destroy(st)

	if s.config.OnTimeout != nil {
		s.config.OnTimeout(snapshot(session))
	}
}

// refundChallenger returns the challenger's stake
func (s *service) refundChallenger(ctx context.Context, session *models.DuelSession) error {
	_, err := s.config.Ledger.Credit(ctx, &ledgerService.CreditInput{
		ParticipantID: session.Challenger.ID,
		Amount:        session.Wager,
	})
	if err != nil {
		return fmt.Errorf("failed to refund challenger: %w", err)
	}
	return nil
}

// destroy releases both participants and removes the session. The caller
// must hold the session lock.
func (s *service) destroy(st *sessionState) {
	if st.timer != nil {
		st.timer.Stop()
	}

	s.config.Registry.Release(st.session.Challenger.ID, st.session.Challenged.ID)

	s.mu.Lock()
	delete(s.sessions, st.session.ID)
	s.mu.Unlock()
}

// lookup finds a live session by ID
func (s *service) lookup(sessionID string) (*sessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return st, nil
}

// snapshot copies a session so callers never share the engine's mutable state
func snapshot(session *models.DuelSession) *models.DuelSession {
	copied := *session
	copied.Choices = make(map[string]models.DuelChoice, len(session.Choices))
	for id, choice := range session.Choices {
		copied.Choices[id] = choice
	}
	return &copied
}
