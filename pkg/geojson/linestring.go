package geojson

import (
	"iter"
	"slices"
	"strconv"

	"go.uber.org/multierr"
)

const (
	minLineStringLen = 2
	minRingLen       = 4
)

// Path is implemented by LineString and LinearRing.
type Path interface {
	Len() int
	All() iter.Seq2[int, Position]
}

// Fold reduces the positions of p in order.
func Fold[A any](p Path, acc A, fn func(A, Position) A) A {
	for _, pos := range p.All() {
		acc = fn(acc, pos)
	}
	return acc
}

// LineString is an immutable sequence of at least two positions.
//
// The zero value holds no positions and is not a valid line string; build
// line strings with NewLineString or LineStringOf. First and Last run in
// constant time and return the zero Position for the zero value.
type LineString struct {
	positions []Position
}

// NewLineString copies positions into a LineString. It fails with
// EmptySequence for no positions and SingletonSequence for one.
func NewLineString(positions []Position) (LineString, error) {
	switch len(positions) {
	case 0:
		return LineString{}, &Error{Code: EmptySequence}
	case 1:
		return LineString{}, &Error{Code: SingletonSequence}
	}
	return LineString{positions: slices.Clone(positions)}, nil
}

// LineStringOf builds a LineString from two leading positions and any
// number of further ones. It cannot fail.
func LineStringOf(first, second Position, rest ...Position) LineString {
	positions := make([]Position, 0, minLineStringLen+len(rest))
	positions = append(positions, first, second)
	positions = append(positions, rest...)
	return LineString{positions: positions}
}

// Len returns the number of positions.
func (l LineString) Len() int { return len(l.positions) }

// First returns the first position.
func (l LineString) First() Position {
	if len(l.positions) == 0 {
		return Position{}
	}
	return l.positions[0]
}

// Last returns the last position.
func (l LineString) Last() Position {
	if len(l.positions) == 0 {
		return Position{}
	}
	return l.positions[len(l.positions)-1]
}

// Positions returns a copy of the positions.
func (l LineString) Positions() []Position { return slices.Clone(l.positions) }

// All iterates over the positions in order.
func (l LineString) All() iter.Seq2[int, Position] { return slices.All(l.positions) }

// Map returns a LineString with fn applied to every position. The length is
// unchanged, so the result is always valid.
func (l LineString) Map(fn func(Position) Position) LineString {
	out := make([]Position, len(l.positions))
	for i, p := range l.positions {
		out[i] = fn(p)
	}
	return LineString{positions: out}
}

// Equal reports whether both line strings hold the same positions in the
// same order.
func (l LineString) Equal(o LineString) bool { return slices.Equal(l.positions, o.positions) }

// LinearRing is a closed LineString of at least four positions, used as a
// Polygon boundary. Len counts the closing position.
type LinearRing struct {
	line LineString
}

// NewLinearRing copies positions into a LinearRing. Every applicable
// violation is reported: the LineString length errors, RingTooShort and
// RingNotClosed.
func NewLinearRing(positions []Position) (LinearRing, error) {
	line, errs := NewLineString(positions)

	if len(positions) < minRingLen {
		errs = multierr.Append(errs, &Error{Code: RingTooShort, Got: strconv.Itoa(len(positions))})
	}
	if len(positions) > 0 && positions[0] != positions[len(positions)-1] {
		errs = multierr.Append(errs, &Error{Code: RingNotClosed})
	}

	if errs != nil {
		return LinearRing{}, errs
	}
	return LinearRing{line: line}, nil
}

// LineString returns the ring as a LineString.
func (r LinearRing) LineString() LineString { return r.line }

// Len returns the number of positions, including the closing one.
func (r LinearRing) Len() int { return r.line.Len() }

// First returns the first position.
func (r LinearRing) First() Position { return r.line.First() }

// Last returns the closing position, equal to First.
func (r LinearRing) Last() Position { return r.line.Last() }

// Positions returns a copy of the positions.
func (r LinearRing) Positions() []Position { return r.line.Positions() }

// All iterates over the positions in order.
func (r LinearRing) All() iter.Seq2[int, Position] { return r.line.All() }

// Map applies fn to every position and re-validates the result. fn must map
// equal positions to equal positions for the ring to stay closed; any other
// fn yields RingNotClosed.
func (r LinearRing) Map(fn func(Position) Position) (LinearRing, error) {
	return NewLinearRing(r.line.Map(fn).positions)
}

// Equal reports whether both rings hold the same positions in the same
// order.
func (r LinearRing) Equal(o LinearRing) bool { return r.line.Equal(o.line) }
