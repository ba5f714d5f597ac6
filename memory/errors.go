package memory

import (
	"errors"
	"fmt"
)

var (
	// ErrConsistency means the position handed to the engine does not follow
	// from the one it tracked by a single placement.
	ErrConsistency = errors.New("board out of sync with game state")
	// ErrEmptyHistory means an undo was requested with nothing to undo.
	ErrEmptyHistory = errors.New("no move to undo")
)

// ConsistencyError carries the cells found changed by an update.
type ConsistencyError struct {
	Changed int
	Removed int
}

func (e *ConsistencyError) Error() string {
	if e.Removed > 0 {
		return fmt.Sprintf("%v: %d cells changed, %d stones removed", ErrConsistency, e.Changed, e.Removed)
	}
	return fmt.Sprintf("%v: %d cells changed", ErrConsistency, e.Changed)
}

func (e *ConsistencyError) Unwrap() error {
	return ErrConsistency
}
