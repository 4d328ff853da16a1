package parser_test

import (
	"fmt"

	"github.com/wordgrain/wgtools/parser"
)

func ExampleParseWithOptions() {
	result, err := parser.ParseWithOptions(
		parser.WithBytes([]byte(`{"word": "humble", "frequency": 12}`)),
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	obj, _ := result.Object()
	fmt.Println(result.SourceFormat, obj.Keys())
	// Output: json [word frequency]
}

func ExampleEqual() {
	a := parser.ObjectOf("word", "humble", "frequency", 12)
	b := parser.ObjectOf("frequency", 12.0, "word", "humble")
	fmt.Println(parser.Equal(a, b))
	fmt.Println(parser.Canonical(a))
	// Output:
	// true
	// {"frequency":12,"word":"humble"}
}
