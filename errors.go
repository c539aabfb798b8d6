package geovec

import (
	"errors"
	"fmt"

	"github.com/hupe1980/geovec/coords"
	"github.com/hupe1980/geovec/geometry"
	"github.com/hupe1980/geovec/internal/arena"
	"github.com/hupe1980/geovec/internal/dispatch"
	"github.com/hupe1980/geovec/internal/resource"
	"github.com/hupe1980/geovec/kernel"
	"github.com/hupe1980/geovec/ndarray"
)

var (
	// ErrShape is returned when operand or buffer shapes are incompatible.
	// The detailed *ndarray.ShapeError is available via errors.As.
	ErrShape = errors.New("shape mismatch")

	// ErrType is returned when an operand has the wrong element kind.
	// The detailed *dispatch.TypeError is available via errors.As.
	ErrType = errors.New("invalid argument type")

	// ErrDomain is returned for well-typed but invalid input, such as a
	// relate pattern of the wrong length.
	ErrDomain = errors.New("invalid argument value")

	// ErrIndex is returned for an out-of-range child index.
	ErrIndex = errors.New("index out of range")

	// ErrTransformContract is returned when a transform function returns a
	// buffer that does not match its input.
	ErrTransformContract = errors.New("transform contract violated")

	// ErrPreparedMutation is returned when coordinates of a prepared geometry
	// would be overwritten.
	ErrPreparedMutation = errors.New("prepared geometry is immutable")

	// ErrViewMutation is returned when coordinates would be written through a
	// child view, such as a part returned by At, that shares its parent's
	// storage.
	ErrViewMutation = errors.New("child view is read-only")

	// ErrMemoryLimit is returned when the coordinate arena would exceed the
	// configured memory limit.
	ErrMemoryLimit = errors.New("memory limit exceeded")

	// ErrClosed is returned by operations on a closed Engine.
	ErrClosed = errors.New("engine closed")
)

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var se *ndarray.ShapeError
	if errors.As(err, &se) {
		return fmt.Errorf("%w: %w", ErrShape, err)
	}
	var te *dispatch.TypeError
	if errors.As(err, &te) {
		return fmt.Errorf("%w: %w", ErrType, err)
	}
	var de *kernel.DomainError
	if errors.As(err, &de) {
		return fmt.Errorf("%w: %w", ErrDomain, err)
	}
	var ie *geometry.IndexError
	if errors.As(err, &ie) {
		return fmt.Errorf("%w: %w", ErrIndex, err)
	}
	var tce *coords.TransformContractError
	if errors.As(err, &tce) {
		return fmt.Errorf("%w: %w", ErrTransformContract, err)
	}
	if errors.Is(err, geometry.ErrPreparedMutation) {
		return fmt.Errorf("%w: %w", ErrPreparedMutation, err)
	}
	if errors.Is(err, geometry.ErrViewMutation) {
		return fmt.Errorf("%w: %w", ErrViewMutation, err)
	}
	if errors.Is(err, resource.ErrMemoryLimitExceeded) {
		return fmt.Errorf("%w: %w", ErrMemoryLimit, err)
	}
	if errors.Is(err, arena.ErrClosed) {
		return fmt.Errorf("%w: %w", ErrClosed, err)
	}

	return err
}
