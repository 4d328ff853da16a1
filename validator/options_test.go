package validator

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordgrain/wgtools/parser"
	"github.com/wordgrain/wgtools/schema"
	"github.com/wordgrain/wgtools/wgerrors"
)

func TestValidateWithOptionsInputs(t *testing.T) {
	s := compileTestSchema(t, testSchema)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/docs/good.wg.json", []byte(validDoc()), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/docs/broken.wg.json", []byte(`{"meta":`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/docs/good.yaml", []byte("meta:\n  source: s\n  artist: a\n  generated_at: \"2024-01-15T10:30:00Z\"\ngrains: []\n"), 0o644))

	t.Run("file", func(t *testing.T) {
		result, err := ValidateWithOptions(WithFilePath("/docs/good.wg.json"), WithFS(fs), WithSchema(s))
		require.NoError(t, err)
		assert.True(t, result.Valid)
		assert.Equal(t, "/docs/good.wg.json", result.SourcePath)
		assert.Equal(t, parser.SourceFormatJSON, result.SourceFormat)
		assert.Positive(t, result.SourceSize)
	})

	t.Run("yaml file", func(t *testing.T) {
		result, err := ValidateWithOptions(WithFilePath("/docs/good.yaml"), WithFS(fs), WithSchema(s))
		require.NoError(t, err)
		assert.True(t, result.Valid, "errors: %v", result.Errors)
		assert.Equal(t, parser.SourceFormatYAML, result.SourceFormat)
	})

	t.Run("syntax error in file", func(t *testing.T) {
		result, err := ValidateWithOptions(WithFilePath("/docs/broken.wg.json"), WithFS(fs), WithSchema(s))
		require.NoError(t, err)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, InvalidJSONMessage, result.Errors[0].Message)
		assert.Equal(t, "/docs/broken.wg.json", result.SourcePath)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ValidateWithOptions(WithFilePath("/docs/missing.json"), WithFS(fs), WithSchema(s))
		require.Error(t, err)
	})

	t.Run("bytes", func(t *testing.T) {
		result, err := ValidateWithOptions(WithData([]byte(validDoc())), WithSchema(s))
		require.NoError(t, err)
		assert.True(t, result.Valid)
	})

	t.Run("value", func(t *testing.T) {
		result, err := ValidateWithOptions(WithValue(map[string]any{"grains": []any{}}), WithSchema(s))
		require.NoError(t, err)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, "/meta", result.Errors[0].Path)
	})

	t.Run("parsed", func(t *testing.T) {
		pr, err := parser.ParseWithOptions(parser.WithBytes([]byte(validDoc())))
		require.NoError(t, err)
		result, err := ValidateWithOptions(WithParsed(*pr), WithSchema(s))
		require.NoError(t, err)
		assert.True(t, result.Valid)
	})
}

func TestValidateWithOptionsRawSchema(t *testing.T) {
	raw, err := parser.DecodeJSON([]byte(testSchema))
	require.NoError(t, err)
	cache := schema.NewCache()

	for range 2 {
		result, err := ValidateWithOptions(WithData([]byte(validDoc())), WithRawSchema(raw), WithCache(cache))
		require.NoError(t, err)
		assert.True(t, result.Valid)
	}
	assert.Equal(t, 1, cache.Len())

	_, err = ValidateWithOptions(WithData([]byte(`{}`)), WithRawSchema("not a schema"))
	require.Error(t, err)
	assert.ErrorIs(t, err, wgerrors.ErrSchema)
}

func TestValidateWithOptionsSettings(t *testing.T) {
	s := compileTestSchema(t, `{"type": "array", "items": {"$ref": "#/$defs/Gone"}}`)

	result, err := ValidateWithOptions(WithValue([]any{1.0}), WithSchema(s), WithIncludeWarnings(false))
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)

	nested := compileTestSchema(t, `{"$ref": "#/$defs/N", "$defs": {"N": {"items": {"$ref": "#/$defs/N"}}}}`)
	result, err = ValidateWithOptions(WithData([]byte(`[[[[]]]]`)), WithSchema(nested), WithMaxDepth(2))
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "depth", result.Errors[0].Keyword)
}

func TestValidateWithOptionsErrors(t *testing.T) {
	s := compileTestSchema(t, `{}`)

	tests := []struct {
		name string
		opts []Option
	}{
		{"no input", []Option{WithSchema(s)}},
		{"two inputs", []Option{WithData([]byte(`{}`)), WithValue(1), WithSchema(s)}},
		{"no schema", []Option{WithData([]byte(`{}`))}},
		{"two schemas", []Option{WithData([]byte(`{}`)), WithSchema(s), WithRawSchema(map[string]any{})}},
		{"nil data", []Option{WithData(nil), WithSchema(s)}},
		{"nil schema", []Option{WithData([]byte(`{}`)), WithSchema(nil)}},
		{"bad depth", []Option{WithData([]byte(`{}`)), WithSchema(s), WithMaxDepth(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateWithOptions(tt.opts...)
			require.Error(t, err)
			assert.ErrorIs(t, err, wgerrors.ErrConfig)
		})
	}
}
