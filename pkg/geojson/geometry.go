package geojson

import (
	"iter"
	"slices"
)

// GeometryType is the wire discriminator of a geometry.
type GeometryType string

// Geometry discriminators.
const (
	TypePoint              GeometryType = "Point"
	TypeMultiPoint         GeometryType = "MultiPoint"
	TypeLineString         GeometryType = "LineString"
	TypeMultiLineString    GeometryType = "MultiLineString"
	TypePolygon            GeometryType = "Polygon"
	TypeMultiPolygon       GeometryType = "MultiPolygon"
	TypeGeometryCollection GeometryType = "GeometryCollection"
)

// IsValid reports whether t is one of the seven geometry discriminators.
func (t GeometryType) IsValid() bool {
	switch t {
	case TypePoint, TypeMultiPoint, TypeLineString, TypeMultiLineString,
		TypePolygon, TypeMultiPolygon, TypeGeometryCollection:
		return true
	default:
		return false
	}
}

// String returns the discriminator.
func (t GeometryType) String() string { return string(t) }

// Geometry is one of Point, MultiPoint, LineString, MultiLineString,
// Polygon, MultiPolygon or GeometryCollection. The set is closed.
type Geometry interface {
	Type() GeometryType
	isGeometry()
}

type (
	// Point holds a single position.
	Point struct {
		Position
	}

	// MultiPoint holds any number of positions.
	MultiPoint []Position

	// MultiLineString holds any number of line strings.
	MultiLineString []LineString

	// Polygon holds linear rings. The first ring is the exterior boundary,
	// the remaining rings are holes.
	Polygon []LinearRing

	// MultiPolygon holds any number of polygons.
	MultiPolygon []Polygon

	// GeometryCollection holds any geometries, including nested
	// collections. It may be empty and must not contain nil.
	GeometryCollection []Geometry
)

var (
	_ Geometry = Point{}
	_ Geometry = MultiPoint{}
	_ Geometry = LineString{}
	_ Geometry = MultiLineString{}
	_ Geometry = Polygon{}
	_ Geometry = MultiPolygon{}
	_ Geometry = GeometryCollection{}
)

func (Point) Type() GeometryType              { return TypePoint }
func (MultiPoint) Type() GeometryType         { return TypeMultiPoint }
func (LineString) Type() GeometryType         { return TypeLineString }
func (MultiLineString) Type() GeometryType    { return TypeMultiLineString }
func (Polygon) Type() GeometryType            { return TypePolygon }
func (MultiPolygon) Type() GeometryType       { return TypeMultiPolygon }
func (GeometryCollection) Type() GeometryType { return TypeGeometryCollection }

func (Point) isGeometry()              {}
func (MultiPoint) isGeometry()         {}
func (LineString) isGeometry()         {}
func (MultiLineString) isGeometry()    {}
func (Polygon) isGeometry()            {}
func (MultiPolygon) isGeometry()       {}
func (GeometryCollection) isGeometry() {}

// Exterior returns the exterior ring, if the polygon has any ring.
func (p Polygon) Exterior() (LinearRing, bool) {
	if len(p) == 0 {
		return LinearRing{}, false
	}
	return p[0], true
}

// Holes returns the interior rings.
func (p Polygon) Holes() []LinearRing {
	if len(p) < 2 {
		return nil
	}
	return p[1:]
}

// EqualGeometry reports whether a and b are the same variant with equal
// payloads. A nil geometry only equals nil.
func EqualGeometry(a, b Geometry) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch a := a.(type) {
	case Point:
		b, ok := b.(Point)
		return ok && a == b
	case MultiPoint:
		b, ok := b.(MultiPoint)
		return ok && slices.Equal(a, b)
	case LineString:
		b, ok := b.(LineString)
		return ok && a.Equal(b)
	case MultiLineString:
		b, ok := b.(MultiLineString)
		return ok && slices.EqualFunc(a, b, LineString.Equal)
	case Polygon:
		b, ok := b.(Polygon)
		return ok && equalPolygon(a, b)
	case MultiPolygon:
		b, ok := b.(MultiPolygon)
		return ok && slices.EqualFunc(a, b, equalPolygon)
	case GeometryCollection:
		b, ok := b.(GeometryCollection)
		return ok && slices.EqualFunc(a, b, EqualGeometry)
	default:
		return false
	}
}

func equalPolygon(a, b Polygon) bool {
	return slices.EqualFunc(a, b, LinearRing.Equal)
}

// AllPositions iterates over every position of g in document order,
// descending into nested collections.
func AllPositions(g Geometry) iter.Seq[Position] {
	return func(yield func(Position) bool) {
		walkPositions(g, yield)
	}
}

func walkPositions(g Geometry, yield func(Position) bool) bool {
	switch g := g.(type) {
	case Point:
		return yield(g.Position)
	case MultiPoint:
		for _, p := range g {
			if !yield(p) {
				return false
			}
		}
	case LineString:
		return walkPath(g, yield)
	case MultiLineString:
		for _, l := range g {
			if !walkPath(l, yield) {
				return false
			}
		}
	case Polygon:
		return walkPolygon(g, yield)
	case MultiPolygon:
		for _, poly := range g {
			if !walkPolygon(poly, yield) {
				return false
			}
		}
	case GeometryCollection:
		for _, child := range g {
			if !walkPositions(child, yield) {
				return false
			}
		}
	}
	return true
}

func walkPolygon(p Polygon, yield func(Position) bool) bool {
	for _, r := range p {
		if !walkPath(r, yield) {
			return false
		}
	}
	return true
}

func walkPath(p Path, yield func(Position) bool) bool {
	for _, pos := range p.All() {
		if !yield(pos) {
			return false
		}
	}
	return true
}
