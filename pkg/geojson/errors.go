package geojson

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/multierr"
)

// Code classifies a structural violation.
type Code uint8

// Violation codes.
const (
	EmptySequence Code = iota + 1
	SingletonSequence
	RingNotClosed
	RingTooShort
	UnknownGeometryType
	MalformedCoordinates
	UnrecognizedCRSType
	MalformedCRSProperties
	MissingRequiredField
	WrongFieldType
	InvalidIdentifierType
)

// Sentinel errors, one per Code. Every *Error unwraps to the sentinel of its
// code, so errors.Is works on single and combined errors alike.
var (
	ErrEmptySequence          = errors.New("empty sequence")
	ErrSingletonSequence      = errors.New("singleton sequence")
	ErrRingNotClosed          = errors.New("ring not closed")
	ErrRingTooShort           = errors.New("ring too short")
	ErrUnknownGeometryType    = errors.New("unknown geometry type")
	ErrMalformedCoordinates   = errors.New("malformed coordinates")
	ErrUnrecognizedCRSType    = errors.New("unrecognized crs type")
	ErrMalformedCRSProperties = errors.New("malformed crs properties")
	ErrMissingRequiredField   = errors.New("missing required field")
	ErrWrongFieldType         = errors.New("wrong field type")
	ErrInvalidIdentifierType  = errors.New("invalid identifier type")
)

// String returns the name of the code.
func (c Code) String() string {
	switch c {
	case EmptySequence:
		return "EmptySequence"
	case SingletonSequence:
		return "SingletonSequence"
	case RingNotClosed:
		return "RingNotClosed"
	case RingTooShort:
		return "RingTooShort"
	case UnknownGeometryType:
		return "UnknownGeometryType"
	case MalformedCoordinates:
		return "MalformedCoordinates"
	case UnrecognizedCRSType:
		return "UnrecognizedCRSType"
	case MalformedCRSProperties:
		return "MalformedCRSProperties"
	case MissingRequiredField:
		return "MissingRequiredField"
	case WrongFieldType:
		return "WrongFieldType"
	case InvalidIdentifierType:
		return "InvalidIdentifierType"
	default:
		return "Code(" + strconv.Itoa(int(c)) + ")"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Code) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c Code) sentinel() error {
	switch c {
	case EmptySequence:
		return ErrEmptySequence
	case SingletonSequence:
		return ErrSingletonSequence
	case RingNotClosed:
		return ErrRingNotClosed
	case RingTooShort:
		return ErrRingTooShort
	case UnknownGeometryType:
		return ErrUnknownGeometryType
	case MalformedCoordinates:
		return ErrMalformedCoordinates
	case UnrecognizedCRSType:
		return ErrUnrecognizedCRSType
	case MalformedCRSProperties:
		return ErrMalformedCRSProperties
	case MissingRequiredField:
		return ErrMissingRequiredField
	case WrongFieldType:
		return ErrWrongFieldType
	case InvalidIdentifierType:
		return ErrInvalidIdentifierType
	default:
		return nil
	}
}

// Error is a single structural violation.
type Error struct {
	Code Code
	// Path is the JSON Pointer (RFC 6901) of the offending value, or of the
	// object owning the offending member. Empty for the document root and for
	// violations raised by constructors.
	Path string
	// Field names the member for MissingRequiredField and WrongFieldType.
	Field string
	// Expected describes the accepted shape.
	Expected string
	// Got describes what was found: a JSON kind or an unknown discriminator.
	Got string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Path == "" {
		return "geojson: " + e.message()
	}
	return "geojson: " + e.Path + ": " + e.message()
}

// Unwrap returns the sentinel for the error code.
func (e *Error) Unwrap() error { return e.Code.sentinel() }

func (e *Error) message() string {
	switch e.Code {
	case EmptySequence:
		return "line string has no positions"
	case SingletonSequence:
		return "line string has a single position, need at least 2"
	case RingNotClosed:
		return "linear ring is not closed: first and last positions differ"
	case RingTooShort:
		return "linear ring needs at least 4 positions, got " + e.Got
	case UnknownGeometryType:
		return fmt.Sprintf("unknown geometry type %q", e.Got)
	case MalformedCoordinates:
		return "malformed coordinates: expected " + e.Expected
	case UnrecognizedCRSType:
		return fmt.Sprintf("unrecognized crs type %q", e.Got)
	case MalformedCRSProperties:
		return "malformed crs properties: expected " + e.Expected
	case MissingRequiredField:
		return fmt.Sprintf("missing required member %q", e.Field)
	case WrongFieldType:
		if e.Field == "" {
			return fmt.Sprintf("expected %s, got %s", e.Expected, e.Got)
		}
		return fmt.Sprintf("member %q must be %s, got %s", e.Field, e.Expected, e.Got)
	case InvalidIdentifierType:
		return "id must be a string or a number, got " + e.Got
	default:
		return e.Code.String()
	}
}

// Violations flattens err into the ordered list of structural violations it
// carries. Errors that are not *Error values are skipped.
func Violations(err error) []*Error {
	var out []*Error
	for _, e := range multierr.Errors(err) {
		var v *Error
		if errors.As(e, &v) {
			out = append(out, v)
		}
	}
	return out
}

// at prefixes the path of every violation in err with seg.
func at(err error, seg string) error {
	if err == nil {
		return nil
	}

	prefix := "/" + escapePointer(seg)

	var out error
	for _, e := range multierr.Errors(err) {
		var v *Error
		if errors.As(e, &v) {
			moved := *v
			moved.Path = prefix + v.Path
			e = &moved
		}
		out = multierr.Append(out, e)
	}
	return out
}

func atIndex(err error, i int) error {
	return at(err, strconv.Itoa(i))
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func escapePointer(seg string) string {
	return pointerEscaper.Replace(seg)
}

func missing(field string) error {
	return &Error{Code: MissingRequiredField, Field: field}
}

func wrongType(field, expected, got string) error {
	return &Error{Code: WrongFieldType, Field: field, Expected: expected, Got: got}
}

func malformed(expected string) error {
	return &Error{Code: MalformedCoordinates, Expected: expected}
}
