package geojson

import (
	"strconv"
	"strings"
)

// Position is a coordinate tuple of 2 to 4 components: longitude, latitude,
// an optional elevation and an optional extra measure. Values are not range
// checked. The zero value is the two-dimensional position (0, 0).
//
// Positions are comparable with ==.
type Position struct {
	Lon, Lat float64

	elevation float64
	measure   float64
	extra     uint8 // components beyond lon/lat
}

// Pos returns a two-dimensional position.
func Pos(lon, lat float64) Position {
	return Position{Lon: lon, Lat: lat}
}

// Pos3 returns a position with an elevation.
func Pos3(lon, lat, elevation float64) Position {
	return Position{Lon: lon, Lat: lat, elevation: elevation, extra: 1}
}

// Pos4 returns a position with an elevation and a measure.
func Pos4(lon, lat, elevation, measure float64) Position {
	return Position{Lon: lon, Lat: lat, elevation: elevation, measure: measure, extra: 2}
}

// PositionFromSlice builds a position from 2 to 4 components.
func PositionFromSlice(values []float64) (Position, error) {
	switch len(values) {
	case 2:
		return Pos(values[0], values[1]), nil
	case 3:
		return Pos3(values[0], values[1], values[2]), nil
	case 4:
		return Pos4(values[0], values[1], values[2], values[3]), nil
	default:
		return Position{}, &Error{
			Code:     MalformedCoordinates,
			Expected: positionShape,
			Got:      strconv.Itoa(len(values)) + " components",
		}
	}
}

// Dim returns the number of components, between 2 and 4.
func (p Position) Dim() int { return 2 + int(p.extra) }

// Elevation returns the third component, if present.
func (p Position) Elevation() (float64, bool) { return p.elevation, p.extra >= 1 }

// Measure returns the fourth component, if present.
func (p Position) Measure() (float64, bool) { return p.measure, p.extra >= 2 }

// Values returns the components in wire order.
func (p Position) Values() []float64 {
	out := make([]float64, 0, p.Dim())
	out = append(out, p.Lon, p.Lat)
	if p.extra >= 1 {
		out = append(out, p.elevation)
	}
	if p.extra >= 2 {
		out = append(out, p.measure)
	}
	return out
}

// Equal reports whether p and q have the same components.
func (p Position) Equal(q Position) bool { return p == q }

// String formats the position like its JSON encoding.
func (p Position) String() string {
	parts := make([]string, 0, p.Dim())
	for _, v := range p.Values() {
		parts = append(parts, strconv.FormatFloat(v, 'g', -1, 64))
	}
	return "[" + strings.Join(parts, ",") + "]"
}
