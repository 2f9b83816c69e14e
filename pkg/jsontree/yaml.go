package jsontree

import (
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a YAML document into a Value. Mapping order is kept.
// Only the JSON-compatible subset of YAML is accepted: mapping keys must be
// scalars and scalar tags must resolve to null, bool, int, float or str.
func ParseYAML(data []byte) (Value, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return Value{}, err
	}
	return FromYAML(&node)
}

// MarshalYAML returns the YAML encoding of v.
func MarshalYAML(v Value) ([]byte, error) {
	return yaml.Marshal(ToYAML(v))
}

// FromYAML converts a yaml.v3 node tree into a Value.
func FromYAML(node *yaml.Node) (Value, error) {
	// an empty document leaves the node zeroed
	if node == nil || node.Kind == 0 {
		return Null(), nil
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Null(), nil
		}
		return FromYAML(node.Content[0])

	case yaml.AliasNode:
		return FromYAML(node.Alias)

	case yaml.SequenceNode:
		elems := make([]Value, 0, len(node.Content))
		for _, child := range node.Content {
			elem, err := FromYAML(child)
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, elem)
		}
		return Value{kind: KindArray, elems: elems}, nil

	case yaml.MappingNode:
		members := make([]Member, 0, len(node.Content)/2)
		seen := make(map[string]struct{}, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valNode := node.Content[i], node.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode {
				return Value{}, fmt.Errorf("jsontree: line %d: mapping key must be a scalar", keyNode.Line)
			}
			if _, dup := seen[keyNode.Value]; dup {
				return Value{}, fmt.Errorf("jsontree: line %d: duplicate key %q", keyNode.Line, keyNode.Value)
			}
			seen[keyNode.Value] = struct{}{}

			val, err := FromYAML(valNode)
			if err != nil {
				return Value{}, err
			}
			members = append(members, Member{Key: keyNode.Value, Value: val})
		}
		return Value{kind: KindObject, members: members}, nil

	case yaml.ScalarNode:
		return scalarFromYAML(node)

	default:
		return Value{}, fmt.Errorf("jsontree: line %d: unsupported YAML node kind %d", node.Line, node.Kind)
	}
}

func scalarFromYAML(node *yaml.Node) (Value, error) {
	switch tag := node.ShortTag(); tag {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case "!!int", "!!float":
		var n float64
		if err := node.Decode(&n); err != nil {
			return Value{}, err
		}
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return Value{}, fmt.Errorf("jsontree: line %d: %q is not a JSON number", node.Line, node.Value)
		}
		return Number(n), nil
	case "!!str":
		return String(node.Value), nil
	default:
		return Value{}, fmt.Errorf("jsontree: line %d: unsupported YAML tag %s", node.Line, tag)
	}
}

// ToYAML converts v into a yaml.v3 node tree.
func ToYAML(v Value) *yaml.Node {
	switch v.kind {
	case KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.boolean)}
	case KindNumber:
		if v.number == math.Trunc(v.number) && math.Abs(v.number) < 1e15 {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatFloat(v.number, 'f', -1, 64)}
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(v.number, 'g', -1, 64)}
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.str}
	case KindArray:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, elem := range v.elems {
			node.Content = append(node.Content, ToYAML(elem))
		}
		return node
	case KindObject:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, m := range v.members {
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Key},
				ToYAML(m.Value))
		}
		return node
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

// MarshalYAML implements yaml.Marshaler.
func (v Value) MarshalYAML() (any, error) {
	return ToYAML(v), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := FromYAML(node)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
