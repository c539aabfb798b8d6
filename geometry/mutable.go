package geometry

import (
	"fmt"
	"slices"
)

// Allocator supplies coordinate storage. A nil Allocator uses the heap.
type Allocator interface {
	Alloc(n int) ([]float64, error)
}

func alloc(a Allocator, n int) ([]float64, error) {
	if n == 0 {
		return nil, nil
	}
	if a == nil {
		return make([]float64, n), nil
	}
	return a.Alloc(n)
}

// Mutable is the write view over a geometry's coordinates. It is the only
// mutation path for a handle; it is not safe for concurrent use and must not
// run while other goroutines read the geometry.
type Mutable struct {
	g     *Geometry
	alloc Allocator

	// staged holds storage for the leaves a two-column write downgrades,
	// in walk order.
	staged     [][]float64
	stagedCols int
}

// Mutable returns a write view over g.
//
// It fails with ErrPreparedMutation when g, any collection member of g, or
// a collection g is a member of is prepared, and with ErrViewMutation when
// g or one of its members is a child view sharing a parent's storage. The allocator is used when
// a write changes the coordinate layout.
func (g *Geometry) Mutable(a Allocator) (*Mutable, error) {
	if g.anyView() {
		return nil, ErrViewMutation
	}
	if g.anyPrepared() {
		return nil, ErrPreparedMutation
	}
	return &Mutable{g: g, alloc: a}, nil
}

func (g *Geometry) anyView() bool {
	if g.parent != nil {
		return true
	}
	for _, m := range g.geoms {
		if m.anyView() {
			return true
		}
	}
	return false
}

func (g *Geometry) anyPrepared() bool {
	if g.IsPrepared() || g.pinned.Load() {
		return true
	}
	for _, m := range g.geoms {
		if m.anyPrepared() {
			return true
		}
	}
	return false
}

// Reserve allocates the storage a write with cols columns needs. After a
// successful Reserve, SetCoords with the same cols and a large enough buffer
// cannot fail. SetCoords reserves on its own when Reserve was not called.
func (m *Mutable) Reserve(cols int) error {
	if cols != 2 && cols != 3 {
		return fmt.Errorf("%w: %d columns", ErrInvalidCoordinates, cols)
	}
	if m.staged != nil && m.stagedCols == cols {
		return nil
	}
	staged := [][]float64{}
	if cols == 2 {
		var err error
		m.g.walkLeaves(func(leaf *Geometry) bool {
			if leaf.layout != XYZ {
				return true
			}
			var flat []float64
			flat, err = alloc(m.alloc, len(leaf.flat)/3*2)
			if err != nil {
				return false
			}
			staged = append(staged, flat)
			return true
		})
		if err != nil {
			return err
		}
	}
	m.staged, m.stagedCols = staged, cols
	return nil
}

// SetCoords overwrites the geometry's coordinates from rows of a row-major
// buffer with cols values per row and returns the number of rows consumed,
// which is always NumCoords().
//
// Two columns turn the geometry into XY. Three columns keep its layout: an
// XY geometry ignores the third column.
func (m *Mutable) SetCoords(rows []float64, cols int) (int, error) {
	if cols != 2 && cols != 3 {
		return 0, fmt.Errorf("%w: %d columns", ErrInvalidCoordinates, cols)
	}
	need := m.g.NumCoords()
	if len(rows) < need*cols {
		return 0, fmt.Errorf("%w: need %d rows, buffer holds %d", ErrInvalidCoordinates, need, len(rows)/cols)
	}
	if err := m.Reserve(cols); err != nil {
		return 0, err
	}
	staged := m.staged
	m.staged = nil
	setCoords(m.g, rows, cols, &staged)
	return need, nil
}

// walkLeaves calls fn for every non-collection geometry in coordinate order.
func (g *Geometry) walkLeaves(fn func(*Geometry) bool) bool {
	if g.kind == GeometryCollection {
		for _, m := range g.geoms {
			if !m.walkLeaves(fn) {
				return false
			}
		}
		return true
	}
	return fn(g)
}

func setCoords(g *Geometry, rows []float64, cols int, staged *[][]float64) {
	if g.kind == GeometryCollection {
		off := 0
		for _, member := range g.geoms {
			n := member.NumCoords()
			setCoords(member, rows[off*cols:(off+n)*cols], cols, staged)
			off += n
		}
		if cols == 2 {
			g.layout = XY
		}
		return
	}

	n := len(g.flat) / g.layout.Stride()
	switch {
	case g.layout.Stride() == cols:
		copy(g.flat, rows[:n*cols])
	case cols == 2:
		// XYZ downgraded to XY into storage staged by Reserve.
		flat := (*staged)[0]
		*staged = (*staged)[1:]
		copy(flat, rows[:n*2])
		g.flat = flat[: n*2 : n*2]
		g.layout = XY
	default:
		// XY geometry written from three columns keeps its layout.
		for i := range n {
			g.flat[i*2] = rows[i*3]
			g.flat[i*2+1] = rows[i*3+1]
		}
	}
}

// Clone returns a deep copy of g. Coordinate storage comes from a; the
// prepared entry is not copied and the copy is never a view.
func (g *Geometry) Clone(a Allocator) (*Geometry, error) {
	c := &Geometry{
		kind:   g.kind,
		layout: g.layout,
		ends:   slices.Clone(g.ends),
		parts:  slices.Clone(g.parts),
	}
	if g.kind == GeometryCollection {
		c.geoms = make([]*Geometry, len(g.geoms))
		for i, m := range g.geoms {
			mc, err := m.Clone(a)
			if err != nil {
				return nil, err
			}
			c.geoms[i] = mc
		}
		return c, nil
	}
	flat, err := alloc(a, len(g.flat))
	if err != nil {
		return nil, err
	}
	copy(flat, g.flat)
	c.flat = flat
	return c, nil
}
