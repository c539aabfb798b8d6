package geometry

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCoordinates is returned by constructors for malformed input.
	ErrInvalidCoordinates = errors.New("geometry: invalid coordinates")
	// ErrPreparedMutation is returned when a write view is requested for a
	// geometry that has a prepared entry attached.
	ErrPreparedMutation = errors.New("geometry: cannot mutate a prepared geometry")
	// ErrViewMutation is returned when a write view is requested for a child
	// view that shares its parent's coordinate storage.
	ErrViewMutation = errors.New("geometry: cannot write through a child view, clone it first")
	// ErrKindMismatch is returned when a child does not fit its collection kind.
	ErrKindMismatch = errors.New("geometry: kind mismatch")
)

// IndexError reports a child index outside [-Len, Len).
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("geometry: index %d outside [-%d, %d)", e.Index, e.Len, e.Len)
}
