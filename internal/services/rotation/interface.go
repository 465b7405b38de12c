package rotation

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/pitboss-bot/pitboss/internal/services/rotation Service,RoleAssigner

// Service runs the weighted rotation that periodically selects candidates
// for a featured role.
type Service interface {
	// Run executes one selection round immediately: draws the configured
	// number of candidates, persists the run, then swaps role membership
	// from the previous selectees to the new ones
	Run(ctx context.Context, input *RunInput) (*RunOutput, error)

	// RunIfDue executes a round only when the most recent period boundary
	// has no completed run recorded; Output.Ran reports whether it did
	RunIfDue(ctx context.Context, input *RunIfDueInput) (*RunIfDueOutput, error)

	// Start blocks running the periodic schedule until the context is
	// cancelled, catching up a missed period on entry
	Start(ctx context.Context) error
}

// RoleAssigner applies and removes the rotation's durable role marker.
// Failures are logged and never unwind a persisted selection.
type RoleAssigner interface {
	// ApplyRole grants the rotation role to the given participants
	ApplyRole(ctx context.Context, participantIDs []string) error

	// RemoveRole revokes the rotation role from the given participants
	RemoveRole(ctx context.Context, participantIDs []string) error
}
