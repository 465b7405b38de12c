package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireRejectsSecondSession(t *testing.T) {
	r := New()

	require.NoError(t, r.Acquire("session-1", "player-1"))

	err := r.Acquire("session-2", "player-1")
	assert.ErrorIs(t, err, ErrAlreadyActive)

	sessionID, ok := r.SessionFor("player-1")
	require.True(t, ok)
	assert.Equal(t, "session-1", sessionID)
}

func TestAcquireIsAllOrNothing(t *testing.T) {
	r := New()

	require.NoError(t, r.Acquire("session-1", "player-2"))

	// player-1 is free but player-2 is not; neither should be registered
	err := r.Acquire("session-2", "player-1", "player-2")
	assert.ErrorIs(t, err, ErrAlreadyActive)

	_, ok := r.SessionFor("player-1")
	assert.False(t, ok)
}

func TestReleaseFreesParticipants(t *testing.T) {
	r := New()

	require.NoError(t, r.Acquire("session-1", "player-1", "player-2"))

	r.Release("player-1", "player-2")

	assert.NoError(t, r.Acquire("session-2", "player-1"))
	assert.NoError(t, r.Acquire("session-3", "player-2"))
}

func TestReleaseUnknownParticipantIsNoOp(t *testing.T) {
	r := New()
	r.Release("player-1")

	assert.NoError(t, r.Acquire("session-1", "player-1"))
}
