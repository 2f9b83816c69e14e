package geojson

import (
	"slices"
	"strconv"

	"github.com/woozymasta/geojson/pkg/jsontree"
)

// Object is a top-level GeoJSON object: *GeometryObject, *Feature or
// *FeatureCollection.
type Object interface {
	// Type returns the wire discriminator of the object.
	Type() string
	isObject()
}

var (
	_ Object = (*GeometryObject)(nil)
	_ Object = (*Feature)(nil)
	_ Object = (*FeatureCollection)(nil)
)

// BBox holds per-axis minimums followed by per-axis maximums. Valid boxes
// have an even length of at least 4. A nil BBox is absent.
type BBox []float64

// IsValid reports whether b has an even length of at least 4.
func (b BBox) IsValid() bool {
	return len(b) >= 4 && len(b)%2 == 0
}

// Equal reports whether both boxes hold the same numbers.
func (b BBox) Equal(o BBox) bool { return slices.Equal(b, o) }

type idKind uint8

const (
	idAbsent idKind = iota
	idString
	idNumber
)

// ID is an optional feature identifier, either a string or a number. The
// zero value is absent. IDs are comparable with ==.
type ID struct {
	kind idKind
	str  string
	num  float64
}

// StringID returns a string identifier.
func StringID(s string) ID { return ID{kind: idString, str: s} }

// NumberID returns a numeric identifier.
func NumberID(n float64) ID { return ID{kind: idNumber, num: n} }

// IsSet reports whether the identifier is present.
func (id ID) IsSet() bool { return id.kind != idAbsent }

// AsString returns a string identifier.
func (id ID) AsString() (string, bool) { return id.str, id.kind == idString }

// AsNumber returns a numeric identifier.
func (id ID) AsNumber() (float64, bool) { return id.num, id.kind == idNumber }

// String formats the identifier for logs. Absent identifiers are empty.
func (id ID) String() string {
	switch id.kind {
	case idString:
		return id.str
	case idNumber:
		return strconv.FormatFloat(id.num, 'g', -1, 64)
	default:
		return ""
	}
}

// Properties is the ordered member list of a feature's properties object.
// Keys are unique; order only affects encoding.
type Properties []jsontree.Member

// Get returns the value stored under key.
func (p Properties) Get(key string) (jsontree.Value, bool) {
	for _, m := range p {
		if m.Key == key {
			return m.Value, true
		}
	}
	return jsontree.Value{}, false
}

// Set stores v under key, replacing an existing member in place or
// appending a new one.
func (p *Properties) Set(key string, v jsontree.Value) {
	for i := range *p {
		if (*p)[i].Key == key {
			(*p)[i].Value = v
			return
		}
	}
	*p = append(*p, jsontree.Member{Key: key, Value: v})
}

// Delete removes key.
func (p *Properties) Delete(key string) {
	*p = slices.DeleteFunc(*p, func(m jsontree.Member) bool { return m.Key == key })
}

// Equal reports whether both property sets hold the same members,
// regardless of order. A nil set equals an empty one.
func (p Properties) Equal(o Properties) bool {
	return jsontree.EqualMembers(p, o)
}

// GeometryObject is a geometry at the top level of a document, where it may
// carry its own bounding box and reference system.
type GeometryObject struct {
	Geometry Geometry
	BBox     BBox
	CRS      CRS
}

// Type returns the geometry discriminator.
func (o *GeometryObject) Type() string {
	if o.Geometry == nil {
		return ""
	}
	return string(o.Geometry.Type())
}

func (*GeometryObject) isObject() {}

// Equal reports whether both objects hold equal members.
func (o GeometryObject) Equal(other GeometryObject) bool {
	return EqualGeometry(o.Geometry, other.Geometry) &&
		o.BBox.Equal(other.BBox) &&
		o.CRS == other.CRS
}

// Feature is a geometry, or none, with properties and optional metadata.
type Feature struct {
	ID         ID
	Geometry   Geometry // nil when the feature has no geometry
	Properties Properties
	BBox       BBox
	CRS        CRS
}

// Type returns "Feature".
func (*Feature) Type() string { return typeFeature }

func (*Feature) isObject() {}

// Equal reports whether both features hold equal members.
func (f Feature) Equal(o Feature) bool {
	return f.ID == o.ID &&
		EqualGeometry(f.Geometry, o.Geometry) &&
		f.Properties.Equal(o.Properties) &&
		f.BBox.Equal(o.BBox) &&
		f.CRS == o.CRS
}

// FeatureCollection is an ordered list of features with optional metadata.
type FeatureCollection struct {
	Features []Feature
	BBox     BBox
	CRS      CRS
}

// Type returns "FeatureCollection".
func (*FeatureCollection) Type() string { return typeFeatureCollection }

func (*FeatureCollection) isObject() {}

// Equal reports whether both collections hold equal features in the same
// order and equal metadata.
func (fc FeatureCollection) Equal(o FeatureCollection) bool {
	return slices.EqualFunc(fc.Features, o.Features, Feature.Equal) &&
		fc.BBox.Equal(o.BBox) &&
		fc.CRS == o.CRS
}
