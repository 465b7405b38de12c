package draft

import "context"

// Service is the draft lobby engine: roster assembly, captain selection, a
// tie-broken coin flip, side selection and a snake draft
type Service interface {
	// CreateLobby opens a lobby with the creator on the roster
	CreateLobby(ctx context.Context, input *CreateLobbyInput) (*CreateLobbyOutput, error)

	// Join adds a participant while the roster is filling; reaching
	// capacity advances the lobby to captain selection
	Join(ctx context.Context, input *JoinInput) (*JoinOutput, error)

	// Leave removes a participant; only valid while the roster is filling
	Leave(ctx context.Context, input *LeaveInput) (*LeaveOutput, error)

	// SelectCaptains lets the creator pick two distinct roster members
	SelectCaptains(ctx context.Context, input *SelectCaptainsInput) (*SelectCaptainsOutput, error)

	// CallCoin lets the first-selected captain call the flip. On a missed
	// call the captain order swaps so the winner is always first.
	CallCoin(ctx context.Context, input *CallCoinInput) (*CallCoinOutput, error)

	// ChooseSide lets the call-winner pick a side, or ask for a random one
	ChooseSide(ctx context.Context, input *ChooseSideInput) (*ChooseSideOutput, error)

	// Pick drafts one unassigned roster member for the current picker's
	// team. The final unassigned member is auto-assigned.
	Pick(ctx context.Context, input *PickInput) (*PickOutput, error)

	// GetLobby returns a snapshot of a live lobby for display
	GetLobby(ctx context.Context, input *GetLobbyInput) (*GetLobbyOutput, error)

	// ReapIdle removes lobbies with no accepted action within the idle
	// timeout and returns the reaped lobbies
	ReapIdle(ctx context.Context, input *ReapIdleInput) (*ReapIdleOutput, error)
}
