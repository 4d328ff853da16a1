package formatter_test

import (
	"fmt"

	"github.com/wordgrain/wgtools/differ"
	"github.com/wordgrain/wgtools/formatter"
	"github.com/wordgrain/wgtools/parser"
)

func ExampleFlatten() {
	before, _ := parser.DecodeJSON([]byte(`{"grains": [{"word": "hustle", "frequency": 47}, {"word": "loyalty"}]}`))
	after, _ := parser.DecodeJSON([]byte(`{"grains": [{"word": "loyalty"}, {"word": "hustle", "frequency": 52}]}`))

	delta, _ := differ.Diff(before, after)
	for _, e := range formatter.Flatten(delta) {
		fmt.Printf("%*s%s\n", e.Depth*2, "", e)
	}
	// Output:
	// grains (array)
	//   [1]
	//     ~ frequency: 47 -> 52
	//   ↔ [0]: moved to index 1
	//   ↔ [1]: moved to index 0
}

func ExampleClassifyRaw() {
	wire, _ := parser.DecodeJSON([]byte(`["", 2, 3]`))
	c := formatter.ClassifyRaw(wire)
	fmt.Println(c.Kind, c.To)
	// Output:
	// moved 2
}
