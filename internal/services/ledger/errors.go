package ledger

import "errors"

var (
	// ErrInsufficientFunds is returned when a debit exceeds the balance
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidAmount is returned when an amount is zero or negative
	ErrInvalidAmount = errors.New("amount must be positive")
)
