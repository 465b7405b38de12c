package rotation

import (
	"time"

	"github.com/pitboss-bot/pitboss/internal/common/clock"
	rotationRepo "github.com/pitboss-bot/pitboss/internal/repositories/rotation"
	"github.com/pitboss-bot/pitboss/internal/rng"
)

// Config holds configuration for the rotation service
type Config struct {
	// CandidateIDs is the fixed candidate pool
	CandidateIDs []string

	// SelectionCount is how many candidates each run selects
	SelectionCount int

	// RecoveryWeeks is how long after a selection a candidate takes to
	// return to full weight
	RecoveryWeeks int

	// MinProbability is the selection probability floor for a candidate
	// picked in the immediately preceding run
	MinProbability float64

	// Weekday anchors the weekly run at midnight of this day
	Weekday time.Weekday

	// Location resolves the anchor's midnight; defaults to UTC
	Location *time.Location

	// Service dependencies
	RotationRepo rotationRepo.Repository
	RoleAssigner RoleAssigner
	Random       rng.Random
	Clock        clock.Clock
}

// RunInput contains parameters for an immediate run
type RunInput struct{}

// RunOutput contains the result of a run
type RunOutput struct {
	// SelectedIDs are this run's selectees, in draw order
	SelectedIDs []string

	// PreviousIDs are the selectees whose role was revoked
	PreviousIDs []string

	// RunAt is when the run executed
	RunAt time.Time
}

// RunIfDueInput contains parameters for a conditional run
type RunIfDueInput struct{}

// RunIfDueOutput contains the result of a conditional run
type RunIfDueOutput struct {
	// Ran indicates a round actually executed
	Ran bool

	// Run holds the round's result when Ran is true
	Run *RunOutput
}
