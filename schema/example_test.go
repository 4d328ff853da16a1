package schema_test

import (
	"fmt"

	"github.com/wordgrain/wgtools/parser"
	"github.com/wordgrain/wgtools/schema"
)

func ExampleResolve() {
	raw, _ := parser.DecodeJSON([]byte(`{"$defs": {"Collocation": {"required": ["word", "score"]}}}`))
	node, ok := schema.Resolve("#/$defs/Collocation/required/1", raw)
	fmt.Println(node, ok)
	// Output: score true
}

func ExampleCompile() {
	raw, _ := parser.DecodeJSON([]byte(`{
		"type": "array",
		"items": {"$ref": "#/$defs/Word"},
		"$defs": {"Word": {"type": "string", "minLength": 1}}
	}`))
	s, err := schema.Compile(raw)
	if err != nil {
		fmt.Println(err)
		return
	}
	item := s.Array.Items
	fmt.Println(s.Kind(), item.Kind(), item.Deref().Kind(), *item.Deref().String.MinLength)
	// Output: array ref string 1
}
