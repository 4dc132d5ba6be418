package dungeon

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned when the generation parameters can never succeed
	ErrInvalidConfig = errors.New("invalid dungeon config")
	// ErrPlacementExhausted is returned when a room could not be placed within the attempt limit
	ErrPlacementExhausted = errors.New("room placement attempts exhausted")
	// ErrSpliceDefect marks an unexpected tile found while stitching a corridor into a room
	ErrSpliceDefect = errors.New("corridor splice defect")
	// ErrNoLadderCell is returned when the level has no floor cell that can hold the exit
	ErrNoLadderCell = errors.New("no cell available for ladder")
)

// SpliceError describes the cell where a corridor met a tile it did not expect
type SpliceError struct {
	X, Y     int
	Existing string
	Role     SpliceRole
}

func (e *SpliceError) Error() string {
	existing := e.Existing
	if existing == "" {
		existing = "<empty>"
	}
	return fmt.Sprintf("corridor splice at (%d,%d): unexpected tile %s for role %s", e.X, e.Y, existing, e.Role)
}

// Unwrap lets errors.Is match ErrSpliceDefect
func (e *SpliceError) Unwrap() error {
	return ErrSpliceDefect
}
