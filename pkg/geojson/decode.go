package geojson

import (
	"slices"
	"strconv"

	"github.com/woozymasta/geojson/pkg/jsontree"
	"go.uber.org/multierr"
)

const (
	typeFeature           = "Feature"
	typeFeatureCollection = "FeatureCollection"

	positionShape  = "position (array of 2 to 4 numbers)"
	positionsShape = "array of positions"
	ringsShape     = "array of linear rings"
	polygonsShape  = "array of polygons"
	linesShape     = "array of line strings"
	bboxShape      = "even-length array of at least 4 numbers"
)

// collect decodes every element with fn and returns either all values or
// the violations of every failed element, each prefixed with its index.
func collect[T any](elems []jsontree.Value, fn func(jsontree.Value) (T, error)) ([]T, error) {
	out := make([]T, 0, len(elems))

	var errs error
	for i, elem := range elems {
		v, err := fn(elem)
		if err != nil {
			errs = multierr.Append(errs, atIndex(err, i))
			continue
		}
		out = append(out, v)
	}

	if errs != nil {
		return nil, errs
	}
	return out, nil
}

// Decode decodes any top-level GeoJSON object, dispatching on its type
// member.
func Decode(v jsontree.Value) (Object, error) {
	if v.Kind() != jsontree.KindObject {
		return nil, wrongType("", "object", v.Kind().String())
	}

	typ, err := typeMember(v)
	if err != nil {
		return nil, err
	}

	switch typ {
	case typeFeature:
		f, err := DecodeFeature(v)
		if err != nil {
			return nil, err
		}
		return &f, nil

	case typeFeatureCollection:
		fc, err := DecodeFeatureCollection(v)
		if err != nil {
			return nil, err
		}
		return &fc, nil

	default:
		o, err := DecodeGeometryObject(v)
		if err != nil {
			return nil, err
		}
		return &o, nil
	}
}

// DecodeGeometry decodes a geometry object. Members other than type,
// coordinates and geometries are ignored.
func DecodeGeometry(v jsontree.Value) (Geometry, error) {
	if v.Kind() != jsontree.KindObject {
		return nil, wrongType("", "object", v.Kind().String())
	}

	typ, err := geometryType(v)
	if err != nil {
		return nil, err
	}

	if typ == TypeGeometryCollection {
		raw, ok := v.Get("geometries")
		if !ok {
			return nil, missing("geometries")
		}
		if raw.Kind() != jsontree.KindArray {
			return nil, wrongType("geometries", "array", raw.Kind().String())
		}
		children, err := collect(raw.Elements(), DecodeGeometry)
		if err != nil {
			return nil, at(err, "geometries")
		}
		return GeometryCollection(children), nil
	}

	raw, ok := v.Get("coordinates")
	if !ok {
		return nil, missing("coordinates")
	}
	g, err := decodeCoordinates(typ, raw)
	if err != nil {
		return nil, at(err, "coordinates")
	}
	return g, nil
}

// DecodeGeometryObject decodes a top-level geometry with its bbox and crs.
func DecodeGeometryObject(v jsontree.Value) (GeometryObject, error) {
	if v.Kind() != jsontree.KindObject {
		return GeometryObject{}, wrongType("", "object", v.Kind().String())
	}

	g, gErr := DecodeGeometry(v)
	bbox, bErr := decodeBBox(v)
	crs, cErr := decodeCRSMember(v)

	if err := multierr.Combine(gErr, bErr, cErr); err != nil {
		return GeometryObject{}, err
	}
	return GeometryObject{Geometry: g, BBox: bbox, CRS: crs}, nil
}

// DecodeFeature decodes a Feature object. Absent and null geometry both
// decode to a nil Geometry; absent and null properties both decode to empty
// properties.
func DecodeFeature(v jsontree.Value) (Feature, error) {
	if v.Kind() != jsontree.KindObject {
		return Feature{}, wrongType("", "object", v.Kind().String())
	}

	tErr := expectType(v, typeFeature)
	id, idErr := decodeID(v)
	g, gErr := decodeFeatureGeometry(v)
	props, pErr := decodeProperties(v)
	bbox, bErr := decodeBBox(v)
	crs, cErr := decodeCRSMember(v)

	if err := multierr.Combine(tErr, idErr, gErr, pErr, bErr, cErr); err != nil {
		return Feature{}, err
	}
	return Feature{ID: id, Geometry: g, Properties: props, BBox: bbox, CRS: crs}, nil
}

// DecodeFeatureCollection decodes a FeatureCollection object. Every feature
// is decoded and all of their violations are reported together.
func DecodeFeatureCollection(v jsontree.Value) (FeatureCollection, error) {
	if v.Kind() != jsontree.KindObject {
		return FeatureCollection{}, wrongType("", "object", v.Kind().String())
	}

	tErr := expectType(v, typeFeatureCollection)
	features, fErr := decodeFeatures(v)
	bbox, bErr := decodeBBox(v)
	crs, cErr := decodeCRSMember(v)

	if err := multierr.Combine(tErr, fErr, bErr, cErr); err != nil {
		return FeatureCollection{}, err
	}
	return FeatureCollection{Features: features, BBox: bbox, CRS: crs}, nil
}

// DecodeCRS decodes the value of a crs member. null decodes to NoCRS; an
// absent member is handled by the caller and means DefaultCRS.
func DecodeCRS(v jsontree.Value) (CRS, error) {
	switch v.Kind() {
	case jsontree.KindNull:
		return NoCRS(), nil
	case jsontree.KindObject:
	default:
		return CRS{}, wrongType("", "object or null", v.Kind().String())
	}

	raw, ok := v.Get("type")
	if !ok {
		return CRS{}, missing("type")
	}
	typ, ok := raw.AsString()
	if !ok {
		return CRS{}, wrongType("type", "string", raw.Kind().String())
	}

	props, ok := v.Get("properties")
	switch typ {
	case crsTypeName:
		if !ok || props.Kind() != jsontree.KindObject {
			return CRS{}, malformedCRS(`object with a "name" string`)
		}
		name, ok := stringMember(props, "name")
		if !ok {
			return CRS{}, malformedCRS(`"name" string`)
		}
		return NamedCRS(name), nil

	case crsTypeLink:
		if !ok || props.Kind() != jsontree.KindObject {
			return CRS{}, malformedCRS(`object with an "href" string`)
		}

		var errs error
		href, ok := stringMember(props, "href")
		if !ok {
			errs = multierr.Append(errs, malformedCRS(`"href" string`))
		}
		var linkType string
		raw, hasType := props.Get("type")
		if hasType {
			if linkType, ok = raw.AsString(); !ok {
				errs = multierr.Append(errs, malformedCRS(`"type" string`))
			}
		}
		if errs != nil {
			return CRS{}, errs
		}
		if hasType {
			return LinkedCRSWithType(href, linkType), nil
		}
		return LinkedCRS(href, ""), nil

	default:
		return CRS{}, &Error{Code: UnrecognizedCRSType, Got: typ}
	}
}

func malformedCRS(expected string) error {
	return &Error{Code: MalformedCRSProperties, Path: "/properties", Expected: expected}
}

func stringMember(obj jsontree.Value, key string) (string, bool) {
	raw, ok := obj.Get(key)
	if !ok {
		return "", false
	}
	return raw.AsString()
}

func decodeCRSMember(obj jsontree.Value) (CRS, error) {
	raw, ok := obj.Get("crs")
	if !ok {
		return DefaultCRS(), nil
	}
	if k := raw.Kind(); k != jsontree.KindObject && k != jsontree.KindNull {
		return CRS{}, wrongType("crs", "object or null", k.String())
	}

	crs, err := DecodeCRS(raw)
	if err != nil {
		return CRS{}, at(err, "crs")
	}
	return crs, nil
}

func typeMember(obj jsontree.Value) (string, error) {
	raw, ok := obj.Get("type")
	if !ok {
		return "", missing("type")
	}
	s, ok := raw.AsString()
	if !ok {
		return "", wrongType("type", "string", raw.Kind().String())
	}
	return s, nil
}

func geometryType(obj jsontree.Value) (GeometryType, error) {
	s, err := typeMember(obj)
	if err != nil {
		return "", err
	}
	typ := GeometryType(s)
	if !typ.IsValid() {
		return "", &Error{Code: UnknownGeometryType, Got: s}
	}
	return typ, nil
}

func expectType(obj jsontree.Value, want string) error {
	got, err := typeMember(obj)
	if err != nil {
		return err
	}
	if got != want {
		return wrongType("type", strconv.Quote(want), strconv.Quote(got))
	}
	return nil
}

func decodeCoordinates(typ GeometryType, raw jsontree.Value) (Geometry, error) {
	switch typ {
	case TypePoint:
		p, err := decodePosition(raw)
		if err != nil {
			return nil, err
		}
		return Point{p}, nil

	case TypeMultiPoint:
		ps, err := decodePositions(raw)
		if err != nil {
			return nil, err
		}
		return MultiPoint(ps), nil

	case TypeLineString:
		return decodeLineString(raw)

	case TypeMultiLineString:
		if raw.Kind() != jsontree.KindArray {
			return nil, malformed(linesShape)
		}
		lines, err := collect(raw.Elements(), decodeLineString)
		if err != nil {
			return nil, err
		}
		return MultiLineString(lines), nil

	case TypePolygon:
		return decodePolygon(raw)

	case TypeMultiPolygon:
		if raw.Kind() != jsontree.KindArray {
			return nil, malformed(polygonsShape)
		}
		polys, err := collect(raw.Elements(), decodePolygon)
		if err != nil {
			return nil, err
		}
		return MultiPolygon(polys), nil

	default:
		return nil, &Error{Code: UnknownGeometryType, Got: string(typ)}
	}
}

func decodePosition(raw jsontree.Value) (Position, error) {
	elems := raw.Elements()
	if raw.Kind() != jsontree.KindArray || len(elems) < 2 || len(elems) > 4 {
		return Position{}, malformed(positionShape)
	}

	values := make([]float64, len(elems))
	for i, elem := range elems {
		n, ok := elem.AsNumber()
		if !ok {
			return Position{}, malformed(positionShape)
		}
		values[i] = n
	}
	return PositionFromSlice(values)
}

func decodePositions(raw jsontree.Value) ([]Position, error) {
	if raw.Kind() != jsontree.KindArray {
		return nil, malformed(positionsShape)
	}
	return collect(raw.Elements(), decodePosition)
}

// decodeLineString only checks the length once every position parsed.
func decodeLineString(raw jsontree.Value) (LineString, error) {
	ps, err := decodePositions(raw)
	if err != nil {
		return LineString{}, err
	}
	return NewLineString(ps)
}

// decodeRing only checks length and closure once every position parsed.
func decodeRing(raw jsontree.Value) (LinearRing, error) {
	ps, err := decodePositions(raw)
	if err != nil {
		return LinearRing{}, err
	}
	return NewLinearRing(ps)
}

func decodePolygon(raw jsontree.Value) (Polygon, error) {
	if raw.Kind() != jsontree.KindArray {
		return nil, malformed(ringsShape)
	}
	rings, err := collect(raw.Elements(), decodeRing)
	if err != nil {
		return nil, err
	}
	return Polygon(rings), nil
}

func decodeBBox(obj jsontree.Value) (BBox, error) {
	raw, ok := obj.Get("bbox")
	if !ok || raw.IsNull() {
		return nil, nil
	}
	if raw.Kind() != jsontree.KindArray {
		return nil, wrongType("bbox", bboxShape, raw.Kind().String())
	}

	values, err := collect(raw.Elements(), bboxValue)
	if err != nil {
		return nil, at(err, "bbox")
	}
	box := BBox(values)
	if !box.IsValid() {
		return nil, wrongType("bbox", bboxShape, "array of "+strconv.Itoa(len(box))+" numbers")
	}
	return box, nil
}

func bboxValue(v jsontree.Value) (float64, error) {
	n, ok := v.AsNumber()
	if !ok {
		return 0, wrongType("", "number", v.Kind().String())
	}
	return n, nil
}

func decodeID(obj jsontree.Value) (ID, error) {
	raw, ok := obj.Get("id")
	if !ok {
		return ID{}, nil
	}
	switch raw.Kind() {
	case jsontree.KindString:
		s, _ := raw.AsString()
		return StringID(s), nil
	case jsontree.KindNumber:
		n, _ := raw.AsNumber()
		return NumberID(n), nil
	default:
		return ID{}, &Error{Code: InvalidIdentifierType, Got: raw.Kind().String()}
	}
}

func decodeFeatureGeometry(obj jsontree.Value) (Geometry, error) {
	raw, ok := obj.Get("geometry")
	if !ok || raw.IsNull() {
		return nil, nil
	}
	if raw.Kind() != jsontree.KindObject {
		return nil, wrongType("geometry", "object or null", raw.Kind().String())
	}

	g, err := DecodeGeometry(raw)
	if err != nil {
		return nil, at(err, "geometry")
	}
	return g, nil
}

func decodeProperties(obj jsontree.Value) (Properties, error) {
	raw, ok := obj.Get("properties")
	if !ok || raw.IsNull() {
		return nil, nil
	}
	if raw.Kind() != jsontree.KindObject {
		return nil, wrongType("properties", "object or null", raw.Kind().String())
	}
	if raw.Len() == 0 {
		return nil, nil
	}
	return Properties(slices.Clone(raw.Members())), nil
}

func decodeFeatures(obj jsontree.Value) ([]Feature, error) {
	raw, ok := obj.Get("features")
	if !ok {
		return nil, missing("features")
	}
	if raw.Kind() != jsontree.KindArray {
		return nil, wrongType("features", "array", raw.Kind().String())
	}

	features, err := collect(raw.Elements(), DecodeFeature)
	if err != nil {
		return nil, at(err, "features")
	}
	return features, nil
}
