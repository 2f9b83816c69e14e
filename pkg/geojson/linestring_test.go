package geojson

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func codes(err error) []Code {
	var out []Code
	for _, v := range Violations(err) {
		out = append(out, v.Code)
	}
	return out
}

func mustRing(t *testing.T, ps ...Position) LinearRing {
	t.Helper()
	r, err := NewLinearRing(ps)
	require.NoError(t, err)
	return r
}

func TestNewLineString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		positions []Position
		wantErr   error
	}{
		{"empty", nil, ErrEmptySequence},
		{"singleton", []Position{Pos(1, 2)}, ErrSingletonSequence},
		{"two positions", []Position{Pos(1, 2), Pos(3, 4)}, nil},
		{"mixed dimensions", []Position{Pos(1, 2), Pos3(3, 4, 5), Pos4(6, 7, 8, 9)}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l, err := NewLineString(tt.positions)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Len(t, Violations(err), 1)
				return
			}
			require.NoError(t, err)
			require.Equal(t, len(tt.positions), l.Len())
			require.Equal(t, tt.positions[0], l.First())
			require.Equal(t, tt.positions[len(tt.positions)-1], l.Last())
			require.Equal(t, tt.positions, l.Positions())
		})
	}
}

func TestLineStringOfMatchesNewLineString(t *testing.T) {
	t.Parallel()

	a, b, c := Pos(0, 0), Pos(1, 1), Pos(2, 0)
	built, err := NewLineString([]Position{a, b, c})
	require.NoError(t, err)

	require.True(t, LineStringOf(a, b, c).Equal(built))
	require.False(t, LineStringOf(a, c, b).Equal(built))
	require.Equal(t, 2, LineStringOf(a, b).Len())
}

func TestLineStringOwnsPositions(t *testing.T) {
	t.Parallel()

	ps := []Position{Pos(0, 0), Pos(1, 1)}
	l, err := NewLineString(ps)
	require.NoError(t, err)

	ps[0] = Pos(9, 9)
	require.Equal(t, Pos(0, 0), l.First())

	out := l.Positions()
	out[1] = Pos(9, 9)
	require.Equal(t, Pos(1, 1), l.Last())
}

func TestLineStringMapAndFold(t *testing.T) {
	t.Parallel()

	l := LineStringOf(Pos(1, 1), Pos(2, 2), Pos(3, 3))
	shifted := l.Map(func(p Position) Position { return Pos(p.Lon+10, p.Lat) })

	require.Equal(t, 3, shifted.Len())
	require.Equal(t, Pos(11, 1), shifted.First())
	require.Equal(t, Pos(1, 1), l.First())

	sum := Fold(shifted, 0.0, func(acc float64, p Position) float64 { return acc + p.Lon })
	require.Equal(t, 36.0, sum)
}

func TestNewLinearRing(t *testing.T) {
	t.Parallel()

	a, b, c, d := Pos(0, 0), Pos(1, 0), Pos(1, 1), Pos(0, 1)

	tests := []struct {
		name      string
		positions []Position
		want      []Code
	}{
		{"closed square", []Position{a, b, c, d, a}, nil},
		{"closed triangle", []Position{a, b, c, a}, nil},
		{"open four", []Position{a, b, c, d}, []Code{RingNotClosed}},
		{"closed three", []Position{a, b, a}, []Code{RingTooShort}},
		{"open three", []Position{a, b, c}, []Code{RingTooShort, RingNotClosed}},
		{"open two", []Position{a, b}, []Code{RingTooShort, RingNotClosed}},
		{"singleton", []Position{a}, []Code{SingletonSequence, RingTooShort}},
		{"empty", nil, []Code{EmptySequence, RingTooShort}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, err := NewLinearRing(tt.positions)
			if tt.want == nil {
				require.NoError(t, err)
				require.Equal(t, len(tt.positions), r.Len())
				require.Equal(t, r.First(), r.Last())
				require.Equal(t, len(tt.positions), r.LineString().Len())
				return
			}
			require.Equal(t, tt.want, codes(err))
		})
	}
}

func TestLinearRingReportsBothViolations(t *testing.T) {
	t.Parallel()

	_, err := NewLinearRing([]Position{Pos(0, 0), Pos(1, 0), Pos(1, 1)})
	require.True(t, errors.Is(err, ErrRingTooShort))
	require.True(t, errors.Is(err, ErrRingNotClosed))
	require.False(t, errors.Is(err, ErrEmptySequence))
}

func TestLinearRingMap(t *testing.T) {
	t.Parallel()

	r := mustRing(t, Pos(0, 0), Pos(1, 0), Pos(1, 1), Pos(0, 0))

	moved, err := r.Map(func(p Position) Position { return Pos(p.Lon+1, p.Lat+1) })
	require.NoError(t, err)
	require.Equal(t, Pos(1, 1), moved.First())
	require.Equal(t, moved.First(), moved.Last())

	calls := 0
	_, err = r.Map(func(p Position) Position {
		calls++
		return Pos(float64(calls), 0)
	})
	require.ErrorIs(t, err, ErrRingNotClosed)
}

func TestPositionFromSlice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		values  []float64
		wantDim int
		wantErr bool
	}{
		{"too short", []float64{1}, 0, true},
		{"lon lat", []float64{1, 2}, 2, false},
		{"elevation", []float64{1, 2, 3}, 3, false},
		{"measure", []float64{1, 2, 3, 4}, 4, false},
		{"too long", []float64{1, 2, 3, 4, 5}, 0, true},
		{"out of range is not checked", []float64{500, -300}, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := PositionFromSlice(tt.values)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrMalformedCoordinates)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantDim, p.Dim())
			require.Equal(t, tt.values, p.Values())
		})
	}
}

func TestPositionAccessors(t *testing.T) {
	t.Parallel()

	_, ok := Pos(1, 2).Elevation()
	require.False(t, ok)

	elev, ok := Pos3(1, 2, 3).Elevation()
	require.True(t, ok)
	require.Equal(t, 3.0, elev)

	_, ok = Pos3(1, 2, 3).Measure()
	require.False(t, ok)

	m, ok := Pos4(1, 2, 3, 4).Measure()
	require.True(t, ok)
	require.Equal(t, 4.0, m)

	require.False(t, Pos(1, 2).Equal(Pos3(1, 2, 0)))
	require.Equal(t, "[1,2.5,-3]", Pos3(1, 2.5, -3).String())
}
