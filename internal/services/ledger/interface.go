package ledger

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/pitboss-bot/pitboss/internal/services/ledger Service

// Service is the economy ledger: per-participant integer balances with
// atomic credit/debit and a floor of zero. Every mutation is durably
// persisted before the call returns.
type Service interface {
	// Credit adds amount to a participant's balance
	Credit(ctx context.Context, input *CreditInput) (*CreditOutput, error)

	// Debit removes amount from a participant's balance. Fails with
	// ErrInsufficientFunds and performs no mutation if the balance does
	// not cover the amount.
	Debit(ctx context.Context, input *DebitInput) (*DebitOutput, error)

	// DebitUpTo removes up to amount, flooring the balance at zero, and
	// reports how much was actually taken. Used only for settlements whose
	// reserve was spent elsewhere mid-session.
	DebitUpTo(ctx context.Context, input *DebitUpToInput) (*DebitUpToOutput, error)

	// GetBalance returns a participant's balance, opening the account with
	// the starting balance on first touch
	GetBalance(ctx context.Context, input *GetBalanceInput) (*GetBalanceOutput, error)
}
