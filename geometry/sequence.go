package geometry

import (
	"errors"
	"iter"
)

// ErrZeroStep is returned by Sequence.Slice for a zero step.
var ErrZeroStep = errors.New("geometry: slice step cannot be zero")

// Sequence is a read-only view over the direct children of a geometry.
// Non-collection geometries and nil have no children.
type Sequence struct {
	parent *Geometry
}

// Geoms returns the child sequence of g.
func (g *Geometry) Geoms() Sequence { return Sequence{parent: g} }

// Len returns the number of direct children.
func (s Sequence) Len() int {
	if s.parent == nil || !s.parent.kind.IsCollection() {
		return 0
	}
	return s.parent.numParts()
}

// At returns child i. Negative indices count from the end, so At(-1) is the
// last child. Indices outside [-Len, Len) give an *IndexError.
func (s Sequence) At(i int) (*Geometry, error) {
	n := s.Len()
	j := i
	if j < 0 {
		j += n
	}
	if j < 0 || j >= n {
		return nil, &IndexError{Index: i, Len: n}
	}
	return s.parent.part(j), nil
}

// Slice selects children with start:stop:step semantics, where negative
// bounds count from the end and out-of-range bounds are clamped. The result
// is a new geometry of the parent's kind; an empty selection gives the empty
// geometry of that kind.
func (s Sequence) Slice(start, stop, step int) (*Geometry, error) {
	if step == 0 {
		return nil, ErrZeroStep
	}
	if s.parent == nil {
		return nil, nil
	}
	n := s.Len()
	start, stop = adjustIndices(start, stop, step, n)

	var children []*Geometry
	for i := start; (step > 0 && i < stop) || (step < 0 && i > stop); i += step {
		children = append(children, s.parent.part(i))
	}

	if !s.parent.kind.IsCollection() {
		return NewEmpty(s.parent.kind), nil
	}
	if len(children) == 0 {
		return &Geometry{kind: s.parent.kind, layout: s.parent.layout}, nil
	}
	return NewMulti(s.parent.kind, children...)
}

// All iterates the children in ascending order. The iterator is restartable.
func (s Sequence) All() iter.Seq[*Geometry] {
	return func(yield func(*Geometry) bool) {
		n := s.Len()
		for i := range n {
			if !yield(s.parent.part(i)) {
				return
			}
		}
	}
}

// ToSlice returns the children as a plain slice.
func (s Sequence) ToSlice() []*Geometry {
	out := make([]*Geometry, 0, s.Len())
	for g := range s.All() {
		out = append(out, g)
	}
	return out
}

// adjustIndices clamps slice bounds the way sequence slicing does for a
// sequence of length n.
func adjustIndices(start, stop, step, n int) (int, int) {
	clamp := func(v int) int {
		if v < 0 {
			v += n
			if v < 0 {
				if step < 0 {
					return -1
				}
				return 0
			}
			return v
		}
		if v >= n {
			if step < 0 {
				return n - 1
			}
			return n
		}
		return v
	}
	return clamp(start), clamp(stop)
}
