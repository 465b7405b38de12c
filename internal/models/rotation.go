package models

import (
	"time"
)

// RotationCandidate is one entry in the weighted-rotation candidate pool
type RotationCandidate struct {
	// ID is the Discord user ID of the candidate
	ID string

	// LastSelected is when the candidate was last drawn. The zero value
	// means never selected, which counts as fully recovered.
	LastSelected time.Time
}
