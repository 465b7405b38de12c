package rotation

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/pitboss-bot/pitboss/internal/repositories/rotation Repository

// Repository persists weighted-rotation bookkeeping: per-candidate
// last-selected times, the previous run's selectees and the last run time.
type Repository interface {
	// GetLastSelected retrieves last-selected times for the given candidates.
	// Candidates never selected are absent from the result.
	GetLastSelected(ctx context.Context, input *GetLastSelectedInput) (*GetLastSelectedOutput, error)

	// SaveRun durably records a completed run: the selectees' timestamps,
	// the selectee roster and the run time, in one write.
	SaveRun(ctx context.Context, input *SaveRunInput) error

	// GetPreviousSelectees retrieves the previous run's selectees
	GetPreviousSelectees(ctx context.Context, input *GetPreviousSelecteesInput) (*GetPreviousSelecteesOutput, error)

	// GetLastRun retrieves when the scheduler last completed a run
	GetLastRun(ctx context.Context, input *GetLastRunInput) (*GetLastRunOutput, error)
}
