package parser

import (
	"errors"
	"fmt"

	"go.yaml.in/yaml/v4"

	"github.com/wordgrain/wgtools/wgerrors"
)

// maxAliasExpansion bounds alias resolution so a billion-laughs document
// cannot expand without limit.
const maxAliasExpansion = 10000

// DecodeYAML decodes the first YAML document in data into the value model,
// preserving mapping key order. Mapping keys must be scalars; timestamps
// are kept as strings.
func DecodeYAML(data []byte) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &wgerrors.ParseError{Message: "invalid YAML", Cause: err}
	}
	d := &yamlDecoder{}
	v, err := d.decode(&root, 0)
	if err != nil {
		return nil, err
	}
	return v, nil
}

type yamlDecoder struct {
	aliases int
}

func (d *yamlDecoder) decode(node *yaml.Node, depth int) (any, error) {
	if depth > maxNormalizeDepth {
		return nil, d.fail(node, fmt.Sprintf("document nested deeper than %d levels", maxNormalizeDepth))
	}
	switch node.Kind {
	case 0:
		// empty input
		return nil, nil
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return d.decode(node.Content[0], depth+1)
	case yaml.MappingNode:
		obj := NewObject(len(node.Content) / 2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valNode := node.Content[i], node.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, d.fail(keyNode, "mapping keys must be scalars")
			}
			val, err := d.decode(valNode, depth+1)
			if err != nil {
				return nil, err
			}
			obj.Set(keyNode.Value, val)
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := d.decode(item, depth+1)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.AliasNode:
		d.aliases++
		if d.aliases > maxAliasExpansion {
			return nil, d.fail(node, "too many alias expansions")
		}
		if node.Alias == nil {
			return nil, d.fail(node, "unknown alias")
		}
		return d.decode(node.Alias, depth+1)
	case yaml.ScalarNode:
		return d.scalar(node)
	default:
		return nil, d.fail(node, fmt.Sprintf("unsupported node kind %v", node.Kind))
	}
}

func (d *yamlDecoder) scalar(node *yaml.Node) (any, error) {
	switch node.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!str", "!!timestamp", "!!binary":
		return node.Value, nil
	case "!!bool", "!!int", "!!float":
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, d.fail(node, err.Error())
		}
		n, err := Normalize(v)
		if err != nil {
			return nil, d.fail(node, err.Error())
		}
		return n, nil
	default:
		return node.Value, nil
	}
}

func (d *yamlDecoder) fail(node *yaml.Node, msg string) error {
	return &wgerrors.ParseError{
		Line:    node.Line,
		Column:  node.Column,
		Message: msg,
		Cause:   errors.New("invalid YAML"),
	}
}
