package rotation

import "time"

// GetLastSelectedInput contains parameters for retrieving last-selected times
type GetLastSelectedInput struct {
	// CandidateIDs are the candidates to look up
	CandidateIDs []string
}

// GetLastSelectedOutput contains the result of retrieving last-selected times
type GetLastSelectedOutput struct {
	// LastSelected maps candidate ID to last-selected time. Candidates
	// never selected are absent.
	LastSelected map[string]time.Time
}

// SaveRunInput contains parameters for recording a completed run
type SaveRunInput struct {
	// SelectedIDs are this run's selectees
	SelectedIDs []string

	// RunAt is when the run executed
	RunAt time.Time
}

// GetPreviousSelecteesInput contains parameters for retrieving the previous
// run's selectees
type GetPreviousSelecteesInput struct{}

// GetPreviousSelecteesOutput contains the previous run's selectees
type GetPreviousSelecteesOutput struct {
	// SelectedIDs are the selectees of the most recent completed run
	SelectedIDs []string
}

// GetLastRunInput contains parameters for retrieving the last run time
type GetLastRunInput struct{}

// GetLastRunOutput contains the last run time
type GetLastRunOutput struct {
	// RunAt is when the scheduler last completed a run; zero if never
	RunAt time.Time
}
