package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	ledgerRepo "github.com/pitboss-bot/pitboss/internal/repositories/ledger"
)

// service implements the Service interface
type service struct {
	config     *Config
	ledgerRepo ledgerRepo.Repository

	// locksMu guards locks; each participant's balance read-modify-write
	// runs under that participant's own mutex
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// New creates a new ledger service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.LedgerRepo == nil {
		return nil, errors.New("ledger repository cannot be nil")
	}

	if cfg.StartingBalance < 0 {
		return nil, errors.New("starting balance cannot be negative")
	}

	return &service{
		config:     cfg,
		ledgerRepo: cfg.LedgerRepo,
		locks:      make(map[string]*sync.Mutex),
	}, nil
}

// lockFor returns the mutex serializing mutations for one participant
func (s *service) lockFor(participantID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	mu, ok := s.locks[participantID]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[participantID] = mu
	}
	return mu
}

// loadBalance reads a participant's balance, treating an absent account as
// holding the starting balance. Must be called with the participant's lock held.
func (s *service) loadBalance(ctx context.Context, participantID string) (int64, error) {
	output, err := s.ledgerRepo.GetBalance(ctx, &ledgerRepo.GetBalanceInput{
		ParticipantID: participantID,
	})
	if err != nil {
		if errors.Is(err, ledgerRepo.ErrBalanceNotFound) {
			return s.config.StartingBalance, nil
		}
		return 0, fmt.Errorf("failed to load balance: %w", err)
	}

	return output.Balance, nil
}

// Credit adds amount to a participant's balance
func (s *service) Credit(ctx context.Context, input *CreditInput) (*CreditOutput, error) {
	if input == nil || input.ParticipantID == "" {
		return nil, errors.New("input and participant ID cannot be empty")
	}

	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	mu := s.lockFor(input.ParticipantID)
	mu.Lock()
	defer mu.Unlock()

	balance, err := s.loadBalance(ctx, input.ParticipantID)
	if err != nil {
		return nil, err
	}

	balance += input.Amount
	err = s.ledgerRepo.SaveBalance(ctx, &ledgerRepo.SaveBalanceInput{
		ParticipantID: input.ParticipantID,
		Balance:       balance,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist credit: %w", err)
	}

	return &CreditOutput{
		Balance: balance,
	}, nil
}

// Debit removes amount from a participant's balance, rejecting any debit
// that would take it negative
func (s *service) Debit(ctx context.Context, input *DebitInput) (*DebitOutput, error) {
	if input == nil || input.ParticipantID == "" {
		return nil, errors.New("input and participant ID cannot be empty")
	}

	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	mu := s.lockFor(input.ParticipantID)
	mu.Lock()
	defer mu.Unlock()

	balance, err := s.loadBalance(ctx, input.ParticipantID)
	if err != nil {
		return nil, err
	}

	if balance < input.Amount {
		return nil, ErrInsufficientFunds
	}

	balance -= input.Amount
	err = s.ledgerRepo.SaveBalance(ctx, &ledgerRepo.SaveBalanceInput{
		ParticipantID: input.ParticipantID,
		Balance:       balance,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist debit: %w", err)
	}

	return &DebitOutput{
		Balance: balance,
	}, nil
}

// DebitUpTo removes up to amount, flooring the balance at zero
func (s *service) DebitUpTo(ctx context.Context, input *DebitUpToInput) (*DebitUpToOutput, error) {
	if input == nil || input.ParticipantID == "" {
		return nil, errors.New("input and participant ID cannot be empty")
	}

	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	mu := s.lockFor(input.ParticipantID)
	mu.Lock()
	defer mu.Unlock()

	balance, err := s.loadBalance(ctx, input.ParticipantID)
	if err != nil {
		return nil, err
	}

	debited := input.Amount
	if debited > balance {
		debited = balance
	}

	balance -= debited
	err = s.ledgerRepo.SaveBalance(ctx, &ledgerRepo.SaveBalanceInput{
		ParticipantID: input.ParticipantID,
		Balance:       balance,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist debit: %w", err)
	}

	return &DebitUpToOutput{
		Debited: debited,
		Balance: balance,
	}, nil
}

// GetBalance returns a participant's balance, opening the account with the
// starting balance on first touch
func (s *service) GetBalance(ctx context.Context, input *GetBalanceInput) (*GetBalanceOutput, error) {
	if input == nil || input.ParticipantID == "" {
		return nil, errors.New("input and participant ID cannot be empty")
	}

	mu := s.lockFor(input.ParticipantID)
	mu.Lock()
	defer mu.Unlock()

	output, err := s.ledgerRepo.GetBalance(ctx, &ledgerRepo.GetBalanceInput{
		ParticipantID: input.ParticipantID,
	})
	if err == nil {
		return &GetBalanceOutput{
			Balance: output.Balance,
		}, nil
	}

	if !errors.Is(err, ledgerRepo.ErrBalanceNotFound) {
		return nil, fmt.Errorf("failed to load balance: %w", err)
	}

	// First touch: open the account with the starting balance
	err = s.ledgerRepo.SaveBalance(ctx, &ledgerRepo.SaveBalanceInput{
		ParticipantID: input.ParticipantID,
		Balance:       s.config.StartingBalance,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open account: %w", err)
	}

	return &GetBalanceOutput{
		Balance: s.config.StartingBalance,
	}, nil
}
