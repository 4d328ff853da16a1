package testutil

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"

	"github.com/wordgrain/wgtools/validator"
	"github.com/wordgrain/wgtools/wordgrain"
)

func TestFixturesExist(t *testing.T) {
	for _, name := range []string{MinimalFixture, KendrickFixture, RevisedFixture, InvalidFixture} {
		t.Run(name, func(t *testing.T) {
			_, err := os.Stat(FixturePath(name))
			require.NoError(t, err)
			assert.True(t, wordgrain.IsDocumentFile(name))
		})
	}
}

func TestBuiltDocumentsAreValid(t *testing.T) {
	s, err := wordgrain.Schema()
	require.NoError(t, err)

	for name, doc := range map[string]*wordgrain.Document{
		"minimal":  NewMinimalDocument(),
		"detailed": NewDetailedDocument(),
	} {
		t.Run(name, func(t *testing.T) {
			data, err := json.Marshal(doc)
			require.NoError(t, err)
			result := validator.New().ValidateBytes(s, data)
			assert.True(t, result.Valid, "errors: %v", result.Errors)
		})
	}
}

func TestWriteMemFS(t *testing.T) {
	fs := WriteMemFS(t, map[string]any{
		"/a.wg.json": NewMinimalDocument(),
		"/b.json":    `{"raw": true}`,
	})

	data, err := afero.ReadFile(fs, "/a.wg.json")
	require.NoError(t, err)
	var doc wordgrain.Document
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "hello", doc.Grains[0].Word)

	data, err = afero.ReadFile(fs, "/b.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"raw": true}`, string(data))
}

func TestWriteTempFiles(t *testing.T) {
	doc := NewMinimalDocument()

	jsonPath := WriteTempJSON(t, doc)
	assert.True(t, wordgrain.IsDocumentFile(jsonPath))
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"word": "hello"`)

	yamlPath := WriteTempYAML(t, doc)
	data, err = os.ReadFile(yamlPath)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "grains")
}
