package ledger

import (
	ledgerRepo "github.com/pitboss-bot/pitboss/internal/repositories/ledger"
)

// Config holds configuration for the ledger service
type Config struct {
	// StartingBalance is the balance granted on first touch
	StartingBalance int64

	// Repository dependencies
	LedgerRepo ledgerRepo.Repository
}

// CreditInput contains parameters for crediting a participant
type CreditInput struct {
	// ParticipantID is the Discord user ID of the participant
	ParticipantID string

	// Amount is the amount to add; must be positive
	Amount int64
}

// CreditOutput contains the result of a credit
type CreditOutput struct {
	// Balance is the balance after the credit
	Balance int64
}

// DebitInput contains parameters for debiting a participant
type DebitInput struct {
	// ParticipantID is the Discord user ID of the participant
	ParticipantID string

	// Amount is the amount to remove; must be positive
	Amount int64
}

// DebitOutput contains the result of a debit
type DebitOutput struct {
	// Balance is the balance after the debit
	Balance int64
}

// DebitUpToInput contains parameters for a floored settlement debit
type DebitUpToInput struct {
	// ParticipantID is the Discord user ID of the participant
	ParticipantID string

	// Amount is the most to remove; must be positive
	Amount int64
}

// DebitUpToOutput contains the result of a floored settlement debit
type DebitUpToOutput struct {
	// Debited is the amount actually removed
	Debited int64

	// Balance is the balance after the debit
	Balance int64
}

// GetBalanceInput contains parameters for reading a balance
type GetBalanceInput struct {
	// ParticipantID is the Discord user ID of the participant
	ParticipantID string
}

// GetBalanceOutput contains the result of reading a balance
type GetBalanceOutput struct {
	// Balance is the participant's current balance
	Balance int64
}
