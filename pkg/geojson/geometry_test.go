package geojson

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEqualGeometry(t *testing.T) {
	t.Parallel()

	square := mustRing(t, Pos(0, 0), Pos(1, 0), Pos(1, 1), Pos(0, 1), Pos(0, 0))
	line := LineStringOf(Pos(0, 0), Pos(1, 1))

	tests := []struct {
		name string
		a, b Geometry
		want bool
	}{
		{"equal points", Point{Pos(1, 2)}, Point{Pos(1, 2)}, true},
		{"different points", Point{Pos(1, 2)}, Point{Pos(2, 1)}, false},
		{"point vs multipoint", Point{Pos(1, 2)}, MultiPoint{Pos(1, 2)}, false},
		{"line vs multiline", line, MultiLineString{line}, false},
		{"empty multipoints", MultiPoint{}, MultiPoint(nil), true},
		{"polygons", Polygon{square}, Polygon{square}, true},
		{"polygon vs multipolygon", Polygon{square}, MultiPolygon{{square}}, false},
		{"nested collections", GeometryCollection{GeometryCollection{line}}, GeometryCollection{GeometryCollection{line}}, true},
		{"collection order", GeometryCollection{line, Point{}}, GeometryCollection{Point{}, line}, false},
		{"nil vs nil", nil, nil, true},
		{"nil vs point", nil, Point{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, EqualGeometry(tt.a, tt.b))
			require.Equal(t, tt.want, EqualGeometry(tt.b, tt.a))
		})
	}
}

func TestAllPositions(t *testing.T) {
	t.Parallel()

	ring := mustRing(t, Pos(0, 0), Pos(1, 0), Pos(1, 1), Pos(0, 0))
	g := GeometryCollection{
		Point{Pos(9, 9)},
		GeometryCollection{MultiPoint{Pos(8, 8)}},
		Polygon{ring},
	}

	got := slices.Collect(AllPositions(g))
	require.Equal(t, []Position{Pos(9, 9), Pos(8, 8), Pos(0, 0), Pos(1, 0), Pos(1, 1), Pos(0, 0)}, got)

	var first []Position
	for p := range AllPositions(g) {
		first = append(first, p)
		if len(first) == 2 {
			break
		}
	}
	require.Equal(t, []Position{Pos(9, 9), Pos(8, 8)}, first)
}

func TestPolygonRings(t *testing.T) {
	t.Parallel()

	outer := mustRing(t, Pos(0, 0), Pos(10, 0), Pos(10, 10), Pos(0, 10), Pos(0, 0))
	hole := mustRing(t, Pos(2, 2), Pos(3, 2), Pos(3, 3), Pos(2, 2))

	_, ok := Polygon{}.Exterior()
	require.False(t, ok)

	p := Polygon{outer, hole}
	ext, ok := p.Exterior()
	require.True(t, ok)
	require.True(t, ext.Equal(outer))
	require.Len(t, p.Holes(), 1)
	require.Nil(t, Polygon{outer}.Holes())
}

func TestGeometryTypes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		g    Geometry
		want GeometryType
	}{
		{Point{}, TypePoint},
		{MultiPoint{}, TypeMultiPoint},
		{LineStringOf(Pos(0, 0), Pos(1, 1)), TypeLineString},
		{MultiLineString{}, TypeMultiLineString},
		{Polygon{}, TypePolygon},
		{MultiPolygon{}, TypeMultiPolygon},
		{GeometryCollection{}, TypeGeometryCollection},
	}

	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, tt.g.Type())
			require.True(t, tt.want.IsValid())
		})
	}

	require.False(t, GeometryType("Circle").IsValid())
}
