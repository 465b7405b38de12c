package rng

import (
	"math/rand"
	"sync"
	"time"
)

// Random is the source of randomness used by the game engines. It is an
// interface so tests can substitute a deterministic implementation.
type Random interface {
	// Intn returns a uniform value in [0, n)
	Intn(n int) int

	// Float64 returns a uniform value in [0.0, 1.0)
	Float64() float64

	// Shuffle randomizes the order of n elements via the swap function
	Shuffle(n int, swap func(i, j int))
}

// Config for the default source
type Config struct {
	// Optional seed for testing
	Seed int64
}

// Source is the default Random backed by math/rand
type Source struct {
	mu     sync.Mutex
	random *rand.Rand
}

// New creates a new random source
func New(cfg *Config) *Source {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &Source{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Intn returns a uniform value in [0, n)
func (s *Source) Intn(n int) int {
	if n < 1 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.random.Intn(n)
}

// Float64 returns a uniform value in [0.0, 1.0)
func (s *Source) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.random.Float64()
}

// Shuffle randomizes the order of n elements via the swap function
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.random.Shuffle(n, swap)
}
