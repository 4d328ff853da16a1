package parser

import (
	"math"
	"strconv"

	"go.yaml.in/yaml/v4"
)

// MarshalYAML encodes the object as a mapping node with keys in insertion order.
func (o *Object) MarshalYAML() (any, error) {
	return valueToNode(o)
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// valueToNode converts a model value to a yaml.Node.
func valueToNode(v any) (*yaml.Node, error) {
	switch val := v.(type) {
	case nil:
		return scalarNode("!!null", "null"), nil
	case bool:
		return scalarNode("!!bool", strconv.FormatBool(val)), nil
	case float64:
		if val == math.Trunc(val) && math.Abs(val) < 1e15 {
			return scalarNode("!!int", strconv.FormatFloat(val, 'f', -1, 64)), nil
		}
		return scalarNode("!!float", strconv.FormatFloat(val, 'g', -1, 64)), nil
	case string:
		return scalarNode("!!str", val), nil
	case []any:
		node := &yaml.Node{
			Kind:    yaml.SequenceNode,
			Content: make([]*yaml.Node, 0, len(val)),
		}
		for _, item := range val {
			child, err := valueToNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	case *Object:
		if val == nil {
			return scalarNode("!!null", "null"), nil
		}
		node := &yaml.Node{
			Kind:    yaml.MappingNode,
			Content: make([]*yaml.Node, 0, 2*val.Len()),
		}
		for k, item := range val.All() {
			child, err := valueToNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, scalarNode("!!str", k), child)
		}
		return node, nil
	default:
		n, err := Normalize(v)
		if err != nil {
			return nil, err
		}
		return valueToNode(n)
	}
}
