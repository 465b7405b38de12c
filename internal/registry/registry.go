package registry

import (
	"errors"
	"sync"
)

// ErrAlreadyActive is returned when a participant already has an open
// wagering session
var ErrAlreadyActive = errors.New("participant already has an active session")

// Registry tracks at most one active wagering session per participant.
// Draft lobbies are tracked by their own identifier and do not count
// against this limit.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]string // participant ID -> session ID
}

// New creates an empty registry
func New() *Registry {
	return &Registry{
		sessions: make(map[string]string),
	}
}

// Acquire registers a session for the given participants. Either all of them
// are registered or none: if any participant already has an active session,
// nothing changes and ErrAlreadyActive is returned.
func (r *Registry) Acquire(sessionID string, participantIDs ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range participantIDs {
		if _, ok := r.sessions[id]; ok {
			return ErrAlreadyActive
		}
	}

	for _, id := range participantIDs {
		r.sessions[id] = sessionID
	}

	return nil
}

// Release removes the participants' registrations. Unknown participants are
// ignored so terminal paths can release unconditionally.
func (r *Registry) Release(participantIDs ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range participantIDs {
		delete(r.sessions, id)
	}
}

// SessionFor returns the session ID a participant is registered to, if any
func (r *Registry) SessionFor(participantID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessionID, ok := r.sessions[participantID]
	return sessionID, ok
}
