package validator

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordgrain/wgtools/parser"
	"github.com/wordgrain/wgtools/schema"
)

const testSchema = `{
	"$id": "https://example.test/doc.json",
	"type": "object",
	"required": ["meta", "grains"],
	"properties": {
		"meta": {
			"type": "object",
			"required": ["source", "artist", "generated_at"],
			"properties": {
				"source": {"type": "string"},
				"artist": {"type": "string"},
				"generated_at": {"type": "string", "format": "date-time"},
				"language": {"type": "string", "pattern": "^[a-z]{2}(-[A-Z]{2})?$"}
			}
		},
		"grains": {"type": "array", "items": {"$ref": "#/$defs/Grain"}}
	},
	"$defs": {
		"Grain": {
			"type": "object",
			"required": ["word"],
			"properties": {
				"word": {"type": "string", "minLength": 1, "maxLength": 12},
				"pos": {"type": "string", "enum": ["noun", "verb"]},
				"frequency": {"type": "integer", "minimum": 0},
				"score": {"type": "number", "minimum": -1, "maximum": 1},
				"tags": {"type": "array", "items": {"type": "string"}},
				"note": {"type": ["string", "null"]}
			}
		}
	}
}`

func compileTestSchema(t *testing.T, src string) *schema.Schema {
	t.Helper()
	raw, err := parser.DecodeJSON([]byte(src))
	require.NoError(t, err)
	s, err := schema.Compile(raw)
	require.NoError(t, err)
	return s
}

func validDoc() string {
	return `{
		"meta": {"source": "genius", "artist": "Someone", "generated_at": "2024-01-15T10:30:00Z", "language": "en-US"},
		"grains": [
			{"word": "hustle", "pos": "noun", "frequency": 47, "score": 0.5, "tags": ["work"], "note": null},
			{"word": "grind"}
		]
	}`
}

func paths(errs []ValidationError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Path
	}
	return out
}

func TestValidateValidDocument(t *testing.T) {
	s := compileTestSchema(t, testSchema)
	result := New().ValidateBytes(s, []byte(validDoc()))

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.NotNil(t, result.Errors, "errors is an empty list, not null")
	assert.Zero(t, result.ErrorCount)
	assert.Equal(t, "https://example.test/doc.json", result.SchemaID)
	assert.Equal(t, parser.SourceFormatJSON, result.SourceFormat)
}

func TestValidateViolations(t *testing.T) {
	s := compileTestSchema(t, testSchema)

	tests := []struct {
		name    string
		doc     string
		path    string
		keyword string
		message string
	}{
		{
			name:    "wrong type",
			doc:     `{"meta": {"source": "s", "artist": "a", "generated_at": "2024-01-15T10:30:00Z"}, "grains": [{"word": "w", "frequency": "47"}]}`,
			path:    "/grains/0/frequency",
			keyword: "type",
			message: "must be integer",
		},
		{
			name:    "fractional integer",
			doc:     `{"meta": {"source": "s", "artist": "a", "generated_at": "2024-01-15T10:30:00Z"}, "grains": [{"word": "w", "frequency": 4.5}]}`,
			path:    "/grains/0/frequency",
			keyword: "type",
			message: "must be integer",
		},
		{
			name:    "enum",
			doc:     `{"meta": {"source": "s", "artist": "a", "generated_at": "2024-01-15T10:30:00Z"}, "grains": [{"word": "w"}, {"word": "x", "pos": "gerund"}]}`,
			path:    "/grains/1/pos",
			keyword: "enum",
			message: "must be equal to one of the allowed values: noun, verb",
		},
		{
			name:    "minimum",
			doc:     `{"meta": {"source": "s", "artist": "a", "generated_at": "2024-01-15T10:30:00Z"}, "grains": [{"word": "w", "frequency": -1}]}`,
			path:    "/grains/0/frequency",
			keyword: "minimum",
			message: "must be >= 0",
		},
		{
			name:    "maximum",
			doc:     `{"meta": {"source": "s", "artist": "a", "generated_at": "2024-01-15T10:30:00Z"}, "grains": [{"word": "w", "score": 1.5}]}`,
			path:    "/grains/0/score",
			keyword: "maximum",
			message: "must be <= 1",
		},
		{
			name:    "minLength",
			doc:     `{"meta": {"source": "s", "artist": "a", "generated_at": "2024-01-15T10:30:00Z"}, "grains": [{"word": ""}]}`,
			path:    "/grains/0/word",
			keyword: "minLength",
			message: "must NOT have fewer than 1 characters",
		},
		{
			name:    "maxLength counts code points",
			doc:     `{"meta": {"source": "s", "artist": "a", "generated_at": "2024-01-15T10:30:00Z"}, "grains": [{"word": "ééééééééééééé"}]}`,
			path:    "/grains/0/word",
			keyword: "maxLength",
			message: "must NOT have more than 12 characters",
		},
		{
			name:    "pattern",
			doc:     `{"meta": {"source": "s", "artist": "a", "generated_at": "2024-01-15T10:30:00Z", "language": "EN"}, "grains": []}`,
			path:    "/meta/language",
			keyword: "pattern",
			message: `must match pattern "^[a-z]{2}(-[A-Z]{2})?$"`,
		},
		{
			name:    "format",
			doc:     `{"meta": {"source": "s", "artist": "a", "generated_at": "yesterday"}, "grains": []}`,
			path:    "/meta/generated_at",
			keyword: "format",
			message: `must match format "date-time"`,
		},
		{
			name:    "required",
			doc:     `{"meta": {"source": "s", "artist": "a", "generated_at": "2024-01-15T10:30:00Z"}, "grains": [{"pos": "noun"}]}`,
			path:    "/grains/0/word",
			keyword: "required",
			message: "must have required property 'word'",
		},
		{
			name:    "array items type",
			doc:     `{"meta": {"source": "s", "artist": "a", "generated_at": "2024-01-15T10:30:00Z"}, "grains": [{"word": "w", "tags": ["ok", 3]}]}`,
			path:    "/grains/0/tags/1",
			keyword: "type",
			message: "must be string",
		},
		{
			name:    "union type",
			doc:     `{"meta": {"source": "s", "artist": "a", "generated_at": "2024-01-15T10:30:00Z"}, "grains": [{"word": "w", "note": 1}]}`,
			path:    "/grains/0/note",
			keyword: "type",
			message: "must be string,null",
		},
		{
			name:    "root type",
			doc:     `[]`,
			path:    "/",
			keyword: "type",
			message: "must be object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := New().ValidateBytes(s, []byte(tt.doc))
			require.False(t, result.Valid)
			require.Len(t, result.Errors, 1, "errors: %v", result.Errors)
			e := result.Errors[0]
			assert.Equal(t, tt.path, e.Path)
			assert.Equal(t, tt.keyword, e.Keyword)
			assert.Equal(t, tt.message, e.Message)
			assert.Equal(t, SeverityError, e.Severity)
			assert.Equal(t, 1, result.ErrorCount)
		})
	}
}

func TestValidateIsExhaustive(t *testing.T) {
	s := compileTestSchema(t, testSchema)
	doc := `{
		"meta": {"generated_at": "nope"},
		"grains": [
			{"word": "", "pos": "gerund", "frequency": -2},
			{"frequency": "x"}
		]
	}`
	result := New().ValidateBytes(s, []byte(doc))

	assert.False(t, result.Valid)
	assert.Equal(t, []string{
		"/meta/source",
		"/meta/artist",
		"/meta/generated_at",
		"/grains/0/word",
		"/grains/0/pos",
		"/grains/0/frequency",
		"/grains/1/word",
		"/grains/1/frequency",
	}, paths(result.Errors))
	assert.Equal(t, 8, result.ErrorCount)
}

func TestValidateMissingRequiredCount(t *testing.T) {
	s := compileTestSchema(t, testSchema)
	result := New().ValidateBytes(s, []byte(`{"meta": {}, "grains": []}`))

	var required int
	for _, e := range result.Errors {
		if e.Keyword == "required" {
			required++
			assert.True(t, strings.HasPrefix(e.Path, "/meta/"))
		}
	}
	assert.Equal(t, 3, required)
	assert.Len(t, result.Errors, 3)
}

func TestValidateInvalidJSON(t *testing.T) {
	s := compileTestSchema(t, testSchema)
	for _, input := range []string{``, `{`, `{"meta": }`, `not json`, `{} trailing`} {
		t.Run(input, func(t *testing.T) {
			result := New().ValidateBytes(s, []byte(input))
			require.False(t, result.Valid)
			require.Len(t, result.Errors, 1)
			assert.Equal(t, "/", result.Errors[0].Path)
			assert.Equal(t, InvalidJSONMessage, result.Errors[0].Message)
			assert.Equal(t, "syntax", result.Errors[0].Keyword)
		})
	}
}

func TestValidateNativeValues(t *testing.T) {
	s := compileTestSchema(t, `{"type": "object", "properties": {"n": {"type": "integer"}}}`)

	result := New().Validate(s, map[string]any{"n": 3})
	assert.True(t, result.Valid)

	result = New().Validate(s, map[string]any{"n": 3.5})
	assert.False(t, result.Valid)

	result = New().Validate(s, map[string]any{"n": make(chan int)})
	require.Len(t, result.Errors, 1)
	assert.Equal(t, SeverityCritical, result.Errors[0].Severity)
}

func TestValidateUnresolvedRefWarns(t *testing.T) {
	s := compileTestSchema(t, `{
		"type": "array",
		"items": {"$ref": "#/$defs/Missing"}
	}`)

	result := New().Validate(s, []any{1.0, "two"})
	assert.True(t, result.Valid)
	require.Len(t, result.Warnings, 1, "reported once per reference")
	assert.Equal(t, "/0", result.Warnings[0].Path)
	assert.Equal(t, "$ref", result.Warnings[0].Keyword)
	assert.Equal(t, 1, result.WarningCount)

	v := New()
	v.IncludeWarnings = false
	assert.Empty(t, v.Validate(s, []any{1.0}).Warnings)
}

func TestValidateBooleanSchemas(t *testing.T) {
	s := compileTestSchema(t, `{"properties": {"yes": true, "no": false}}`)
	result := New().Validate(s, parser.ObjectOf("yes", 1.0, "no", 2.0))
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "/no", result.Errors[0].Path)
	assert.Equal(t, "boolean schema is false", result.Errors[0].Message)
}

func TestValidateRefWithSiblings(t *testing.T) {
	s := compileTestSchema(t, `{
		"$defs": {"Short": {"type": "string", "maxLength": 3}},
		"properties": {"code": {"$ref": "#/$defs/Short", "pattern": "^[A-Z]+$"}}
	}`)
	result := New().Validate(s, parser.ObjectOf("code", "abcd"))
	assert.Equal(t, []string{"maxLength", "pattern"}, []string{result.Errors[0].Keyword, result.Errors[1].Keyword})
}

func TestValidateRecursiveSchema(t *testing.T) {
	s := compileTestSchema(t, `{
		"$ref": "#/$defs/Node",
		"$defs": {"Node": {"type": "object", "required": ["name"], "properties": {
			"name": {"type": "string"},
			"children": {"type": "array", "items": {"$ref": "#/$defs/Node"}}
		}}}
	}`)
	doc := `{"name": "a", "children": [{"name": "b", "children": [{"children": []}]}]}`
	result := New().ValidateBytes(s, []byte(doc))
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "/children/0/children/0/name", result.Errors[0].Path)
}

func TestValidateMaxDepth(t *testing.T) {
	s := compileTestSchema(t, `{"$ref": "#/$defs/N", "$defs": {"N": {"type": "array", "items": {"$ref": "#/$defs/N"}}}}`)
	deep := strings.Repeat("[", 10) + strings.Repeat("]", 10)

	v := New()
	v.MaxDepth = 5
	result := v.ValidateBytes(s, []byte(deep))
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "depth", result.Errors[0].Keyword)
	assert.Equal(t, "/0/0/0/0/0/0", result.Errors[0].Path)

	assert.True(t, New().ValidateBytes(s, []byte(deep)).Valid)
}

func TestValidateEscapedPaths(t *testing.T) {
	s := compileTestSchema(t, `{"properties": {"a/b": {"type": "string"}, "m~n": {"type": "string"}}}`)
	result := New().Validate(s, parser.ObjectOf("a/b", 1.0, "m~n", 2.0))
	assert.Equal(t, []string{"/a~1b", "/m~0n"}, paths(result.Errors))
}

func TestValidateRaw(t *testing.T) {
	raw, err := parser.DecodeJSON([]byte(testSchema))
	require.NoError(t, err)

	v := New()
	doc, err := parser.DecodeJSON([]byte(validDoc()))
	require.NoError(t, err)

	result, err := v.ValidateRaw(raw, doc)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, 1, v.Cache.Len())

	_, err = v.ValidateRaw([]any{}, doc)
	require.Error(t, err)
}

func TestValidationResultJSON(t *testing.T) {
	s := compileTestSchema(t, testSchema)
	result := New().ValidateBytes(s, []byte(`{"meta": {"source": "s", "artist": "a", "generated_at": "2024-01-15T10:30:00Z"}, "grains": [{"word": "w", "pos": "gerund"}]}`))

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded struct {
		Valid  bool `json:"valid"`
		Errors []struct {
			Path    string `json:"path"`
			Message string `json:"message"`
			Keyword string `json:"keyword"`
			Value   any    `json:"value"`
		} `json:"errors"`
		ErrorCount int `json:"error_count"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.False(t, decoded.Valid)
	require.Len(t, decoded.Errors, 1)
	assert.Equal(t, "/grains/0/pos", decoded.Errors[0].Path)
	assert.Equal(t, "gerund", decoded.Errors[0].Value)
	assert.Equal(t, 1, decoded.ErrorCount)
}
