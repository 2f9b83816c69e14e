package jsontree

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/go-json-experiment/json/jsontext"
)

// ErrTrailingData is returned by Parse when input continues after the
// top-level value.
var ErrTrailingData = errors.New("jsontree: unexpected data after top-level value")

// ErrNumberRange is returned by Parse for numbers a float64 cannot hold.
var ErrNumberRange = errors.New("jsontree: number out of float64 range")

// Parse decodes a single JSON document. Duplicate object keys and invalid
// UTF-8 are rejected.
func Parse(data []byte) (Value, error) {
	return Read(bytes.NewReader(data))
}

// Read decodes a single JSON document from r.
func Read(r io.Reader) (Value, error) {
	dec := jsontext.NewDecoder(r)

	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, err
	}

	if _, err := dec.ReadToken(); err != io.EOF {
		if err == nil {
			return Value{}, ErrTrailingData
		}
		return Value{}, err
	}

	return v, nil
}

func decodeValue(dec *jsontext.Decoder) (Value, error) {
	tok, err := dec.ReadToken()
	if err != nil {
		return Value{}, err
	}

	switch tok.Kind() {
	case 'n':
		return Null(), nil
	case 't', 'f':
		return Bool(tok.Bool()), nil
	case '"':
		return String(tok.String()), nil
	case '0':
		raw := tok.String()
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %s", ErrNumberRange, raw)
		}
		return Number(n), nil

	case '[':
		elems := make([]Value, 0)
		for dec.PeekKind() != ']' {
			elem, err := decodeValue(dec)
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, elem)
		}
		if _, err := dec.ReadToken(); err != nil {
			return Value{}, err
		}
		return Value{kind: KindArray, elems: elems}, nil

	case '{':
		members := make([]Member, 0)
		for dec.PeekKind() != '}' {
			name, err := dec.ReadToken()
			if err != nil {
				return Value{}, err
			}
			key := name.String()

			val, err := decodeValue(dec)
			if err != nil {
				return Value{}, err
			}
			members = append(members, Member{Key: key, Value: val})
		}
		if _, err := dec.ReadToken(); err != nil {
			return Value{}, err
		}
		return Value{kind: KindObject, members: members}, nil

	default:
		return Value{}, fmt.Errorf("jsontree: unexpected token %v", tok.Kind())
	}
}

// Marshal returns the compact JSON encoding of v.
func Marshal(v Value) ([]byte, error) {
	return marshal(v)
}

// MarshalIndent returns the JSON encoding of v with one member or element
// per line, indented by indent.
func MarshalIndent(v Value, indent string) ([]byte, error) {
	return marshal(v, jsontext.WithIndent(indent))
}

// Write encodes v as compact JSON followed by a newline.
func Write(w io.Writer, v Value) error {
	enc := jsontext.NewEncoder(w)
	return encodeValue(enc, v)
}

func marshal(v Value, opts ...jsontext.Options) ([]byte, error) {
	var buf bytes.Buffer

	enc := jsontext.NewEncoder(&buf, opts...)
	if err := encodeValue(enc, v); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func encodeValue(enc *jsontext.Encoder, v Value) error {
	switch v.kind {
	case KindNull:
		return enc.WriteToken(jsontext.Null)
	case KindBool:
		return enc.WriteToken(jsontext.Bool(v.boolean))
	case KindNumber:
		return enc.WriteToken(jsontext.Float(v.number))
	case KindString:
		return enc.WriteToken(jsontext.String(v.str))

	case KindArray:
		if err := enc.WriteToken(jsontext.BeginArray); err != nil {
			return err
		}
		for _, elem := range v.elems {
			if err := encodeValue(enc, elem); err != nil {
				return err
			}
		}
		return enc.WriteToken(jsontext.EndArray)

	case KindObject:
		if err := enc.WriteToken(jsontext.BeginObject); err != nil {
			return err
		}
		for _, m := range v.members {
			if err := enc.WriteToken(jsontext.String(m.Key)); err != nil {
				return err
			}
			if err := encodeValue(enc, m.Value); err != nil {
				return err
			}
		}
		return enc.WriteToken(jsontext.EndObject)

	default:
		return fmt.Errorf("jsontree: invalid kind %v", v.kind)
	}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return Marshal(v)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
