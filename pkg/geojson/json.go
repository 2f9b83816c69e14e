package geojson

import (
	"github.com/woozymasta/geojson/pkg/jsontree"
)

// Unmarshal parses a JSON document and decodes its top-level object.
// Syntax errors are returned as is; structural violations can be listed
// with Violations.
func Unmarshal(data []byte) (Object, error) {
	v, err := jsontree.Parse(data)
	if err != nil {
		return nil, err
	}
	return Decode(v)
}

// UnmarshalYAML parses a YAML document and decodes its top-level object.
func UnmarshalYAML(data []byte) (Object, error) {
	v, err := jsontree.ParseYAML(data)
	if err != nil {
		return nil, err
	}
	return Decode(v)
}

// Marshal returns the compact JSON encoding of obj. It only fails when a
// number is NaN or infinite, or properties repeat a key.
func Marshal(obj Object) ([]byte, error) {
	return jsontree.Marshal(Encode(obj))
}

// MarshalIndent is like Marshal with one member or element per line.
func MarshalIndent(obj Object, indent string) ([]byte, error) {
	return jsontree.MarshalIndent(Encode(obj), indent)
}

// MarshalYAML returns the YAML encoding of obj.
func MarshalYAML(obj Object) ([]byte, error) {
	return jsontree.MarshalYAML(Encode(obj))
}

// MarshalJSON implements json.Marshaler.
func (o GeometryObject) MarshalJSON() ([]byte, error) {
	return jsontree.Marshal(EncodeGeometryObject(o))
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *GeometryObject) UnmarshalJSON(data []byte) error {
	return unmarshalInto(data, o, DecodeGeometryObject)
}

// MarshalJSON implements json.Marshaler.
func (f Feature) MarshalJSON() ([]byte, error) {
	return jsontree.Marshal(EncodeFeature(f))
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Feature) UnmarshalJSON(data []byte) error {
	return unmarshalInto(data, f, DecodeFeature)
}

// MarshalJSON implements json.Marshaler.
func (fc FeatureCollection) MarshalJSON() ([]byte, error) {
	return jsontree.Marshal(EncodeFeatureCollection(fc))
}

// UnmarshalJSON implements json.Unmarshaler.
func (fc *FeatureCollection) UnmarshalJSON(data []byte) error {
	return unmarshalInto(data, fc, DecodeFeatureCollection)
}

func unmarshalInto[T any](data []byte, dst *T, decode func(jsontree.Value) (T, error)) error {
	v, err := jsontree.Parse(data)
	if err != nil {
		return err
	}
	out, err := decode(v)
	if err != nil {
		return err
	}
	*dst = out
	return nil
}
