package geojson

import (
	"github.com/woozymasta/geojson/pkg/jsontree"
)

// Encode returns the JSON tree of any top-level object.
func Encode(obj Object) jsontree.Value {
	switch obj := obj.(type) {
	case *Feature:
		return EncodeFeature(*obj)
	case *FeatureCollection:
		return EncodeFeatureCollection(*obj)
	case *GeometryObject:
		return EncodeGeometryObject(*obj)
	default:
		return jsontree.Null()
	}
}

// EncodeGeometry returns the JSON tree of g. A nil geometry encodes as null.
func EncodeGeometry(g Geometry) jsontree.Value {
	if g == nil {
		return jsontree.Null()
	}
	return jsontree.Object(geometryMembers(g, nil, CRS{})...)
}

// EncodeGeometryObject returns the JSON tree of a top-level geometry.
func EncodeGeometryObject(o GeometryObject) jsontree.Value {
	if o.Geometry == nil {
		return jsontree.Null()
	}
	return jsontree.Object(geometryMembers(o.Geometry, o.BBox, o.CRS)...)
}

// EncodeCRS returns the value of the crs member. It reports false for the
// default CRS, which is never written.
func EncodeCRS(c CRS) (jsontree.Value, bool) {
	switch c.kind {
	case CRSNone:
		return jsontree.Null(), true
	case CRSNamed:
		return jsontree.Object(
			jsontree.Member{Key: "type", Value: jsontree.String(crsTypeName)},
			jsontree.Member{Key: "properties", Value: jsontree.Object(
				jsontree.Member{Key: "name", Value: jsontree.String(c.name)},
			)},
		), true
	case CRSLinked:
		props := []jsontree.Member{{Key: "href", Value: jsontree.String(c.href)}}
		if c.hasLinkType {
			props = append(props, jsontree.Member{Key: "type", Value: jsontree.String(c.linkType)})
		}
		return jsontree.Object(
			jsontree.Member{Key: "type", Value: jsontree.String(crsTypeLink)},
			jsontree.Member{Key: "properties", Value: jsontree.Object(props...)},
		), true
	default:
		return jsontree.Value{}, false
	}
}

// EncodeFeature returns the JSON tree of f. geometry and properties are
// always written, as null and {} when empty.
func EncodeFeature(f Feature) jsontree.Value {
	members := []jsontree.Member{{Key: "type", Value: jsontree.String(typeFeature)}}

	switch {
	case !f.ID.IsSet():
	case f.ID.kind == idString:
		members = append(members, jsontree.Member{Key: "id", Value: jsontree.String(f.ID.str)})
	default:
		members = append(members, jsontree.Member{Key: "id", Value: jsontree.Number(f.ID.num)})
	}

	members = appendBBox(members, f.BBox)
	members = append(members,
		jsontree.Member{Key: "geometry", Value: EncodeGeometry(f.Geometry)},
		jsontree.Member{Key: "properties", Value: jsontree.Object(f.Properties...)},
	)
	members = appendCRS(members, f.CRS)

	return jsontree.Object(members...)
}

// EncodeFeatureCollection returns the JSON tree of fc.
func EncodeFeatureCollection(fc FeatureCollection) jsontree.Value {
	members := []jsontree.Member{{Key: "type", Value: jsontree.String(typeFeatureCollection)}}
	members = appendBBox(members, fc.BBox)

	features := make([]jsontree.Value, 0, len(fc.Features))
	for _, f := range fc.Features {
		features = append(features, EncodeFeature(f))
	}
	members = append(members, jsontree.Member{Key: "features", Value: jsontree.Array(features...)})
	members = appendCRS(members, fc.CRS)

	return jsontree.Object(members...)
}

func geometryMembers(g Geometry, bbox BBox, crs CRS) []jsontree.Member {
	members := []jsontree.Member{{Key: "type", Value: jsontree.String(string(g.Type()))}}
	members = appendBBox(members, bbox)

	if gc, ok := g.(GeometryCollection); ok {
		children := make([]jsontree.Value, 0, len(gc))
		for _, child := range gc {
			children = append(children, EncodeGeometry(child))
		}
		members = append(members, jsontree.Member{Key: "geometries", Value: jsontree.Array(children...)})
	} else {
		members = append(members, jsontree.Member{Key: "coordinates", Value: encodeCoordinates(g)})
	}

	return appendCRS(members, crs)
}

func encodeCoordinates(g Geometry) jsontree.Value {
	switch g := g.(type) {
	case Point:
		return encodePosition(g.Position)
	case MultiPoint:
		return encodePositions(g)
	case LineString:
		return encodePositions(g.positions)
	case MultiLineString:
		return encodeEach([]LineString(g), func(l LineString) jsontree.Value { return encodePositions(l.positions) })
	case Polygon:
		return encodePolygon(g)
	case MultiPolygon:
		return encodeEach([]Polygon(g), encodePolygon)
	default:
		return jsontree.Array()
	}
}

func encodeEach[T any](items []T, fn func(T) jsontree.Value) jsontree.Value {
	out := make([]jsontree.Value, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return jsontree.Array(out...)
}

func encodePosition(p Position) jsontree.Value {
	return encodeEach(p.Values(), jsontree.Number)
}

func encodePositions(ps []Position) jsontree.Value {
	return encodeEach(ps, encodePosition)
}

func encodePolygon(p Polygon) jsontree.Value {
	return encodeEach([]LinearRing(p), func(r LinearRing) jsontree.Value { return encodePositions(r.line.positions) })
}

func appendBBox(members []jsontree.Member, bbox BBox) []jsontree.Member {
	if bbox == nil {
		return members
	}
	return append(members, jsontree.Member{Key: "bbox", Value: encodeEach([]float64(bbox), jsontree.Number)})
}

func appendCRS(members []jsontree.Member, crs CRS) []jsontree.Member {
	v, ok := EncodeCRS(crs)
	if !ok {
		return members
	}
	return append(members, jsontree.Member{Key: "crs", Value: v})
}
