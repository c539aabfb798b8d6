package geometry

// Prepared is an acceleration structure a kernel builds for one geometry.
type Prepared interface {
	// Source returns the geometry the entry was built for.
	Source() *Geometry
}

type preparedSlot struct {
	p Prepared
}

// Prepared returns the attached entry, or nil.
func (g *Geometry) Prepared() Prepared {
	if s := g.prepared.Load(); s != nil {
		return s.p
	}
	return nil
}

// IsPrepared reports whether an entry is attached.
func (g *Geometry) IsPrepared() bool { return g.prepared.Load() != nil }

// AttachPrepared attaches p unless an entry is already attached, and returns
// the entry that ends up attached. Concurrent callers race with
// compare-and-swap; exactly one entry wins and the others are dropped.
// Attaching to a collection pins its members against write views.
func (g *Geometry) AttachPrepared(p Prepared) Prepared {
	if p == nil {
		return g.Prepared()
	}
	if g.prepared.CompareAndSwap(nil, &preparedSlot{p: p}) {
		g.pinMembers()
		return p
	}
	return g.Prepared()
}

func (g *Geometry) pinMembers() {
	for _, m := range g.geoms {
		m.pinned.Store(true)
		m.pinMembers()
	}
}
