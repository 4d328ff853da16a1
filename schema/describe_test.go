package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	s, err := Compile(mustDecode(t, `{
		"$defs": {
			"Empty": {"type": "object"},
			"Grain": {
				"description": "A word",
				"type": "object",
				"required": ["word"],
				"properties": {
					"word": {"type": "string", "minLength": 1, "description": "The word"},
					"pos": {"type": "string", "enum": ["noun", "verb"]},
					"score": {"type": "number", "minimum": -1, "maximum": 1},
					"first_seen": {"type": "string", "format": "date"},
					"contexts": {"type": "array", "items": {"$ref": "#/$defs/Context"}},
					"categories": {"type": "array", "items": {"type": "string"}},
					"anything": {"type": "array", "items": {}},
					"meta": {"$ref": "#/$defs/Context"},
					"position": {"type": "string", "enum": ["before", "after"], "default": "after"},
					"ts": {"type": "string", "pattern": "^\\d{1,2}:\\d{2}$", "maxLength": 5},
					"free": {}
				}
			},
			"Context": {"type": "object", "properties": {"line": {"type": "string"}}}
		}
	}`))
	require.NoError(t, err)

	defs := Describe(s)
	require.Len(t, defs, 2, "definitions without properties are skipped")
	assert.Equal(t, "Grain", defs[0].Name)
	assert.Equal(t, "A word", defs[0].Description)
	assert.Equal(t, "Context", defs[1].Name)

	want := []PropertyRow{
		{Name: "word", Type: "string", Required: true, Constraints: "minLength: 1", Description: "The word"},
		{Name: "pos", Type: "enum", Constraints: "noun, verb"},
		{Name: "score", Type: "number", Constraints: "min: -1; max: 1"},
		{Name: "first_seen", Type: "string (date)"},
		{Name: "contexts", Type: "Context[]"},
		{Name: "categories", Type: "string[]"},
		{Name: "anything", Type: "any[]"},
		{Name: "meta", Type: "Context"},
		{Name: "position", Type: "enum", Constraints: `before, after; default: "after"`},
		{Name: "ts", Type: "string", Constraints: `maxLength: 5; pattern: ^\d{1,2}:\d{2}$`},
		{Name: "free", Type: "any"},
	}
	assert.Equal(t, want, defs[0].Rows)
}

func TestDescribeNil(t *testing.T) {
	assert.Nil(t, Describe(nil))
}
