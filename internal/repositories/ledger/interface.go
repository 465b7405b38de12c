package ledger

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/pitboss-bot/pitboss/internal/repositories/ledger Repository

// Repository persists participant balances. Every save is durable before it
// returns; callers rely on that to report an operation as complete.
type Repository interface {
	// GetBalance retrieves a participant's balance
	GetBalance(ctx context.Context, input *GetBalanceInput) (*GetBalanceOutput, error)

	// SaveBalance durably writes a participant's balance
	SaveBalance(ctx context.Context, input *SaveBalanceInput) error
}
