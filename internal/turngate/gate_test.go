package turngate

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateWrongActor(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	gate := New("player-1", now.Add(time.Minute))

	err := gate.Validate("player-2", now)
	assert.ErrorIs(t, err, ErrWrongActor)

	err = gate.Validate("player-1", now)
	assert.NoError(t, err)
}

func TestValidateExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	gate := New("player-1", now.Add(45*time.Second))

	assert.NoError(t, gate.Validate("player-1", now.Add(44*time.Second)))
	assert.ErrorIs(t, gate.Validate("player-1", now.Add(46*time.Second)), ErrExpired)
}

func TestValidateZeroDeadlineNeverExpires(t *testing.T) {
	gate := New("player-1", time.Time{})

	farFuture := time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, gate.Validate("player-1", farFuture))
}

func TestResolveOnceSingleCaller(t *testing.T) {
	gate := New("player-1", time.Time{})

	assert.True(t, gate.ResolveOnce())
	assert.False(t, gate.ResolveOnce())
	assert.True(t, gate.Resolved())
}

func TestResolveOnceConcurrent(t *testing.T) {
	gate := New("player-1", time.Time{})

	const callers = 64
	var wins atomic.Int32
	var wg sync.WaitGroup

	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if gate.ResolveOnce() {
				wins.Add(1)
			}
		}()
	}

	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}
