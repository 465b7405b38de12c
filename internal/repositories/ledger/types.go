package ledger

// GetBalanceInput contains parameters for retrieving a balance
type GetBalanceInput struct {
	// ParticipantID is the Discord user ID of the participant
	ParticipantID string
}

// GetBalanceOutput contains the result of retrieving a balance
type GetBalanceOutput struct {
	// Balance is the participant's current balance
	Balance int64
}

// SaveBalanceInput contains parameters for saving a balance
type SaveBalanceInput struct {
	// ParticipantID is the Discord user ID of the participant
	ParticipantID string

	// Balance is the balance to persist
	Balance int64
}
