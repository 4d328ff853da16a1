package wordgrain_test

import (
	"fmt"

	"github.com/wordgrain/wgtools/validator"
	"github.com/wordgrain/wgtools/wordgrain"
)

func ExampleSchema() {
	s, err := wordgrain.Schema()
	if err != nil {
		fmt.Println(err)
		return
	}

	doc := []byte(`{
		"$schema": "https://wordgrain.dev/schema/v0.1.0/wordgrain.schema.json",
		"meta": {"source": "genius", "artist": "Kendrick Lamar", "generated_at": "2026-02-08T12:00:00Z"},
		"grains": [{"word": "hustle", "pos": "gerund"}]
	}`)
	result := validator.New().ValidateBytes(s, doc)
	fmt.Println(result.Valid, result.Errors[0].Path)
	// Output:
	// false /grains/0/pos
}

func ExampleComputeStats() {
	doc, _ := wordgrain.Decode([]byte(`{
		"grains": [
			{"word": "hustle", "frequency": 47, "sentiment": "positive"},
			{"word": "pain", "frequency": 13, "sentiment": "negative"}
		]
	}`))
	stats := wordgrain.ComputeStats(doc)
	fmt.Println(stats.GrainCount, *stats.AvgFrequency, stats.AvgTFIDF == nil)
	// Output:
	// 2 30 true
}
