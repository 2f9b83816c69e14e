// Package geojson is a typed model of RFC 7946 GeoJSON documents and a
// validating codec between that model and jsontree values.
//
// Invalid values cannot be built: LineString and LinearRing only come out
// of validating constructors, and Geometry is a closed set of variants.
// Encoding is therefore total, while decoding reports every structural
// violation of a document in a single pass:
//
//	obj, err := geojson.Unmarshal(data)
//	if err != nil {
//		for _, v := range geojson.Violations(err) {
//			fmt.Println(v.Path, v.Code)
//		}
//	}
//
// Each violation is an *Error carrying a Code, the JSON Pointer of the
// offending value and, through errors.Is, one of the ErrXxx sentinels.
// Members the codec does not know are ignored and not written back.
//
// The zero LineString and LinearRing hold no positions. They are not
// produced by the constructors or the decoder, encode as empty arrays and
// are outside the round-trip guarantee: decoding that output fails.
//
// The legacy crs member of the 2008 GeoJSON format is supported for
// top-level objects. An absent crs decodes to the default CRS, and the
// default CRS is never encoded.
package geojson
