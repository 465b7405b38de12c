package blackjack

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pitboss-bot/pitboss/internal/cards"
	"github.com/pitboss-bot/pitboss/internal/models"
	ledgerService "github.com/pitboss-bot/pitboss/internal/services/ledger"
	"github.com/pitboss-bot/pitboss/internal/turngate"
)

const (
	// defaultTurnTimeout bounds the player's turn
	defaultTurnTimeout = 60 * time.Second

	// dealerStandsAt is the total the dealer draws up to
	dealerStandsAt = 17
)

// sessionState pairs a session with the machinery that advances it. The deck
// and gate never leave the service; callers only see session snapshots.
type sessionState struct {
	mu      sync.Mutex
	session *models.BlackjackSession
	deck    *cards.Deck
	gate    *turngate.Gate
	timer   *time.Timer
}

// service implements the Service interface
type service struct {
	config *Config

	mu       sync.Mutex
	sessions map[string]*sessionState
}

// New creates a new blackjack service
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

	if cfg.Random == nil {
		return nil, errors.New("random source cannot be nil")
	}

	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	if cfg.UUIDGenerator == nil {
		return nil, errors.New("uuid generator cannot be nil")
	}

	if cfg.TurnTimeout == 0 {
		cfg.TurnTimeout = defaultTurnTimeout
	}

	if cfg.NewDeck == nil {
		cfg.NewDeck = cards.NewDeck
	}

	return &service{
		config:   cfg,
		sessions: make(map[string]*sessionState),
	}, nil
}

// Deal opens a session for a player, drawing the opening hands
func (s *service) Deal(ctx context.Context, input *DealInput) (*DealOutput, error) {
	if input == nil || input.Player.ID == "" {
		return nil, errors.New("input and player cannot be empty")
	}

	if input.Wager <= 0 {
		return nil, ErrInvalidWager
	}

	// The wager is reserved, not debited: it must be covered at deal time
	// and is only moved at settlement
	balance, err := s.config.Ledger.GetBalance(ctx, &ledgerService.GetBalanceInput{
		ParticipantID: input.Player.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to check balance: %w", err)
	}

	if balance.Balance < input.Wager {
		return nil, ledgerService.ErrInsufficientFunds
	}

	sessionID := s.config.UUIDGenerator.NewUUID()

	if err := s.config.Registry.Acquire(sessionID, input.Player.ID); err != nil {
		return nil, err
	}

	now := s.config.Clock.Now()
	deck := s.config.NewDeck(s.config.Random)

	session := &models.BlackjackSession{
		ID:         sessionID,
		ChannelID:  input.ChannelID,
		Player:     input.Player,
		Wager:      input.Wager,
		State:      models.BlackjackStateDealt,
		PlayerHand: cards.Hand{deck.Deal(), deck.Deal()},
		DealerHand: cards.Hand{deck.Deal(), deck.Deal()},
		CreatedAt:  now,
	}

	st := &sessionState{
		session: session,
		deck:    deck,
	}

	// Naturals settle straight from the deal
	playerNatural := session.PlayerHand.IsNatural()
	dealerNatural := session.DealerHand.IsNatural()

	if playerNatural || dealerNatural {
		var outcome models.BlackjackOutcome
		switch {
		case playerNatural && dealerNatural:
			outcome = models.BlackjackOutcomePush
		case playerNatural:
			outcome = models.BlackjackOutcomePlayerNatural
		default:
			outcome = models.BlackjackOutcomeDealerWin
		}

		if err := s.settle(ctx, st, outcome); err != nil {
			s.config.Registry.Release(input.Player.ID)
			return nil, err
		}

		return &DealOutput{Session: snapshot(session)}, nil
	}

	session.State = models.BlackjackStatePlayerTurn
	session.Deadline = now.Add(s.config.TurnTimeout)
	st.gate = turngate.New(input.Player.ID, session.Deadline)
	st.timer = time.AfterFunc(s.config.TurnTimeout, func() {
		s.timeoutStand(sessionID)
	})

	s.mu.Lock()
	s.sessions[sessionID] = st
	s.mu.Unlock()

	return &DealOutput{Session: snapshot(session)}, nil
}

// Hit draws one card for the player
func (s *service) Hit(ctx context.Context, input *HitInput) (*HitOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	st, err := s.lookup(input.SessionID)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.session.State != models.BlackjackStatePlayerTurn {
		return nil, ErrInvalidState
	}

	if err := st.gate.Validate(input.PlayerID, s.config.Clock.Now()); err != nil {
		return nil, err
	}

	if st.gate.Resolved() {
		return nil, ErrAlreadyResolved
	}

	st.session.PlayerHand = append(st.session.PlayerHand, st.deck.Deal())

	if st.session.PlayerHand.Value() >= 21 {
		if !st.gate.ResolveOnce() {
			return nil, ErrAlreadyResolved
		}
		if err := s.finishAgainstDealer(ctx, st); err != nil {
			return nil, err
		}
	}

	return &HitOutput{Session: snapshot(st.session)}, nil
}

// Stand ends the player's turn and runs the dealer
func (s *service) Stand(ctx context.Context, input *StandInput) (*StandOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	st, err := s.lookup(input.SessionID)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.session.State != models.BlackjackStatePlayerTurn {
		return nil, ErrInvalidState
	}

	if err := st.gate.Validate(input.PlayerID, s.config.Clock.Now()); err != nil {
		return nil, err
	}

	if !st.gate.ResolveOnce() {
		return nil, ErrAlreadyResolved
	}

	if err := s.finishAgainstDealer(ctx, st); err != nil {
		return nil, err
	}

	return &StandOutput{Session: snapshot(st.session)}, nil
}

// Double doubles the wager, draws exactly one card and runs the dealer
func (s *service) Double(ctx context.Context, input *DoubleInput) (*DoubleOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	st, err := s.lookup(input.SessionID)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.session.State != models.BlackjackStatePlayerTurn {
		return nil, ErrInvalidState
	}

	if err := st.gate.Validate(input.PlayerID, s.config.Clock.Now()); err != nil {
		return nil, err
	}

	if len(st.session.PlayerHand) != 2 {
		return nil, ErrDoubleNotAllowed
	}

	balance, err := s.config.Ledger.GetBalance(ctx, &ledgerService.GetBalanceInput{
		ParticipantID: input.PlayerID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to check balance: %w", err)
	}

	if balance.Balance < st.session.Wager*2 {
		return nil, ledgerService.ErrInsufficientFunds
	}

	if !st.gate.ResolveOnce() {
		return nil, ErrAlreadyResolved
	}

	st.session.Wager *= 2
	st.session.PlayerHand = append(st.session.PlayerHand, st.deck.Deal())

	if err := s.finishAgainstDealer(ctx, st); err != nil {
		return nil, err
	}

	return &DoubleOutput{Session: snapshot(st.session)}, nil
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

// timeoutStand applies the implicit stand when the player's turn expires.
// The gate guarantees it cannot race a last-moment action into a double
// settlement.
func (s *service) timeoutStand(sessionID string) {
	s.mu.Lock()
	st, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.session.State != models.BlackjackStatePlayerTurn {
		return
	}

	if !st.gate.ResolveOnce() {
		return
	}

	if err := s.finishAgainstDealer(context.Background(), st); err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("timeout settlement failed")
		return
	}

	if s.config.OnTimeout != nil {
		s.config.OnTimeout(snapshot(st.session))
	}
}

// finishAgainstDealer runs the dealer's auto-draw and settles. The caller
// must hold the session lock and have won the gate resolution.
func (s *service) finishAgainstDealer(ctx context.Context, st *sessionState) error {
	st.session.State = models.BlackjackStateDealerTurn

	playerValue := st.session.PlayerHand.Value()

	// The dealer only draws when the player can still win
	if playerValue <= 21 {
		for st.session.DealerHand.Value() < dealerStandsAt {
			st.session.DealerHand = append(st.session.DealerHand, st.deck.Deal())
		}
	}

	dealerValue := st.session.DealerHand.Value()

	var outcome models.BlackjackOutcome
	switch {
	case playerValue > 21:
		outcome = models.BlackjackOutcomeDealerWin
	case dealerValue > 21:
		outcome = models.BlackjackOutcomePlayerWin
	case playerValue > dealerValue:
		outcome = models.BlackjackOutcomePlayerWin
	case dealerValue > playerValue:
		outcome = models.BlackjackOutcomeDealerWin
	default:
		outcome = models.BlackjackOutcomePush
	}

	return s.settle(ctx, st, outcome)
}

// settle applies the outcome against the ledger and destroys the session.
// The ledger write completes before the session is reported settled.
func (s *service) settle(ctx context.Context, st *sessionState, outcome models.BlackjackOutcome) error {
	session := st.session

	switch outcome {
	case models.BlackjackOutcomePlayerWin:
		_, err := s.config.Ledger.Credit(ctx, &ledgerService.CreditInput{
			ParticipantID: session.Player.ID,
			Amount:        session.Wager,
		})
		if err != nil {
			return fmt.Errorf("failed to credit win: %w", err)
		}

	case models.BlackjackOutcomePlayerNatural:
		// Natural pays 3:2, rounded up
		_, err := s.config.Ledger.Credit(ctx, &ledgerService.CreditInput{
			ParticipantID: session.Player.ID,
			Amount:        (session.Wager*3 + 1) / 2,
		})
		if err != nil {
			return fmt.Errorf("failed to credit natural: %w", err)
		}

	case models.BlackjackOutcomeDealerWin:
		// The reserve may have been spent elsewhere mid-session, so the
		// settlement debit floors at zero rather than failing
		_, err := s.config.Ledger.DebitUpTo(ctx, &ledgerService.DebitUpToInput{
			ParticipantID: session.Player.ID,
			Amount:        session.Wager,
		})
		if err != nil {
			return fmt.Errorf("failed to debit loss: %w", err)
		}

	case models.BlackjackOutcomePush:
		// Wager was only reserved; nothing moves
	}

	session.State = models.BlackjackStateSettled
	session.Outcome = outcome

	if st.timer != nil {
		st.timer.Stop()
	}

	s.config.Registry.Release(session.Player.ID)

	s.mu.Lock()
	delete(s.sessions, session.ID)
	s.mu.Unlock()

	return nil
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
func snapshot(session *models.BlackjackSession) *models.BlackjackSession {
	copied := *session
	copied.PlayerHand = append(cards.Hand{}, session.PlayerHand...)
	copied.DealerHand = append(cards.Hand{}, session.DealerHand...)
	return &copied
}
