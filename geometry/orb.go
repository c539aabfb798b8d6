package geometry

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
	"github.com/paulmach/orb/encoding/wkt"
)

var wktNames = [...]string{
	Point:              "POINT",
	LineString:         "LINESTRING",
	LinearRing:         "LINEARRING",
	Polygon:            "POLYGON",
	MultiPoint:         "MULTIPOINT",
	MultiLineString:    "MULTILINESTRING",
	MultiPolygon:       "MULTIPOLYGON",
	GeometryCollection: "GEOMETRYCOLLECTION",
}

// ToOrb converts g to its orb counterpart, dropping z. A LinearRing becomes
// an orb.LineString. An empty point has no orb counterpart and converts to an
// empty orb.Collection; empty points inside collections are skipped.
func (g *Geometry) ToOrb() orb.Geometry {
	switch g.kind {
	case Point:
		if len(g.flat) == 0 {
			return orb.Collection{}
		}
		return orb.Point{g.flat[0], g.flat[1]}
	case LineString, LinearRing:
		return orb.LineString(g.points())
	case Polygon:
		return g.orbPolygon()
	case MultiPoint:
		return orb.MultiPoint(g.points())
	case MultiLineString:
		mls := make(orb.MultiLineString, 0, len(g.ends))
		for i := range len(g.ends) {
			mls = append(mls, orb.LineString(g.part(i).points()))
		}
		return mls
	case MultiPolygon:
		mp := make(orb.MultiPolygon, 0, len(g.parts))
		for i := range len(g.parts) {
			mp = append(mp, g.part(i).orbPolygon())
		}
		return mp
	default:
		c := make(orb.Collection, 0, len(g.geoms))
		for _, m := range g.geoms {
			if m.kind == Point && m.IsEmpty() {
				continue
			}
			c = append(c, m.ToOrb())
		}
		return c
	}
}

func (g *Geometry) points() []orb.Point {
	s := g.layout.Stride()
	pts := make([]orb.Point, 0, len(g.flat)/s)
	for i := 0; i+s <= len(g.flat); i += s {
		pts = append(pts, orb.Point{g.flat[i], g.flat[i+1]})
	}
	return pts
}

func (g *Geometry) orbPolygon() orb.Polygon {
	poly := make(orb.Polygon, 0, len(g.ends))
	for i := range len(g.ends) {
		r, _ := g.Ring(i)
		poly = append(poly, orb.Ring(r.points()))
	}
	return poly
}

// FromOrb converts an orb geometry. orb.Ring becomes a LinearRing and
// orb.Bound a rectangle polygon.
func FromOrb(og orb.Geometry) (*Geometry, error) {
	switch v := og.(type) {
	case orb.Point:
		return NewPoint(v[0], v[1]), nil
	case orb.MultiPoint:
		return NewMultiPoint(XY, flatten(v))
	case orb.LineString:
		return NewLineString(XY, flatten(v))
	case orb.Ring:
		return NewLinearRing(XY, flatten(v))
	case orb.Polygon:
		rings := make([][]float64, len(v))
		for i, r := range v {
			rings[i] = flatten(r)
		}
		return NewPolygon(XY, rings...)
	case orb.MultiLineString:
		lines := make([][]float64, len(v))
		for i, l := range v {
			lines[i] = flatten(l)
		}
		return NewMultiLineString(XY, lines...)
	case orb.MultiPolygon:
		polys := make([][][]float64, len(v))
		for i, p := range v {
			polys[i] = make([][]float64, len(p))
			for j, r := range p {
				polys[i][j] = flatten(r)
			}
		}
		return NewMultiPolygon(XY, polys...)
	case orb.Collection:
		members := make([]*Geometry, len(v))
		for i, m := range v {
			g, err := FromOrb(m)
			if err != nil {
				return nil, err
			}
			members[i] = g
		}
		return NewCollection(members...)
	case orb.Bound:
		return FromOrb(v.ToPolygon())
	case nil:
		return nil, fmt.Errorf("%w: nil orb geometry", ErrInvalidCoordinates)
	default:
		return nil, fmt.Errorf("%w: unsupported orb type %T", ErrKindMismatch, og)
	}
}

func flatten(pts []orb.Point) []float64 {
	flat := make([]float64, 0, 2*len(pts))
	for _, p := range pts {
		flat = append(flat, p[0], p[1])
	}
	return flat
}

// String returns the WKT form of g (XY only).
func (g *Geometry) String() string {
	if g == nil {
		return "<nil>"
	}
	if g.IsEmpty() {
		return wktNames[g.kind] + " EMPTY"
	}
	s := wkt.MarshalString(g.ToOrb())
	if g.kind == LinearRing {
		s = wktNames[LinearRing] + strings.TrimPrefix(s, wktNames[LineString])
	}
	return s
}

// ParseWKT parses a WKT string. Z ordinates are not supported.
func ParseWKT(s string) (*Geometry, error) {
	s = strings.TrimSpace(s)
	upper := strings.ToUpper(s)
	if name, ok := strings.CutSuffix(upper, " EMPTY"); ok {
		for k, n := range wktNames {
			if n == strings.TrimSpace(name) {
				return NewEmpty(Kind(k)), nil
			}
		}
		return nil, fmt.Errorf("%w: unknown type in %q", ErrKindMismatch, s)
	}
	if rest, ok := strings.CutPrefix(upper, wktNames[LinearRing]); ok {
		og, err := wkt.Unmarshal(wktNames[LineString] + rest)
		if err != nil {
			return nil, err
		}
		ls, ok := og.(orb.LineString)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrKindMismatch, s)
		}
		return NewLinearRing(XY, flatten(ls))
	}
	og, err := wkt.Unmarshal(s)
	if err != nil {
		return nil, err
	}
	return FromOrb(og)
}

// MustParseWKT is ParseWKT that panics on error.
func MustParseWKT(s string) *Geometry {
	return Must(ParseWKT(s))
}

// MarshalWKB returns the little-endian WKB form of g (XY only).
func (g *Geometry) MarshalWKB() ([]byte, error) {
	return wkb.Marshal(g.ToOrb())
}

// UnmarshalWKB decodes a WKB geometry.
func UnmarshalWKB(data []byte) (*Geometry, error) {
	og, err := wkb.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return FromOrb(og)
}
