package rotation

import "errors"

var (
	// ErrNotEnoughCandidates is returned when the pool is smaller than the
	// selection count
	ErrNotEnoughCandidates = errors.New("not enough rotation candidates")
)
