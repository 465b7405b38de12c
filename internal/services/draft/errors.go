package draft

import "errors"

var (
	// ErrLobbyNotFound is returned when no lobby exists for the ID
	ErrLobbyNotFound = errors.New("draft lobby not found")

	// ErrWrongPhase is returned when an action is not valid in the lobby's
	// current phase
	ErrWrongPhase = errors.New("action not valid in current phase")

	// ErrLobbyFull is returned when joining a lobby at capacity
	ErrLobbyFull = errors.New("lobby is full")

	// ErrAlreadyJoined is returned when a roster member joins twice
	ErrAlreadyJoined = errors.New("participant already joined")

	// ErrNotInLobby is returned when the participant is not on the roster
	ErrNotInLobby = errors.New("participant is not in this lobby")

	// ErrInvalidSelection is returned for malformed captain or pick targets
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrInvalidCapacity is returned when the roster size is too small to
	// field two teams
	ErrInvalidCapacity = errors.New("capacity must be at least four")
)
