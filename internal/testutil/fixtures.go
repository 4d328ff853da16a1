// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/afero"
	"go.yaml.in/yaml/v4"

	"github.com/wordgrain/wgtools/parser"
	"github.com/wordgrain/wgtools/wordgrain"
)

// Fixture file names under the repository's testdata directory.
const (
	MinimalFixture  = "minimal.wg.json"
	KendrickFixture = "kendrick-lamar.wg.json"
	RevisedFixture  = "kendrick-lamar-revised.wg.json"
	InvalidFixture  = "invalid.wg.json"
)

// FixturePath returns the absolute path of a file in the repository's
// testdata directory, independent of the calling package's directory.
func FixturePath(name string) string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "testdata", name)
}

// ReadFixture returns the contents of a testdata file.
func ReadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(FixturePath(name))
	if err != nil {
		t.Fatalf("Failed to read fixture %s: %v", name, err)
	}
	return data
}

// DecodeFixture parses a testdata file into the ordered value model.
func DecodeFixture(t *testing.T, name string) any {
	t.Helper()
	v, err := parser.DecodeJSON(ReadFixture(t, name))
	if err != nil {
		t.Fatalf("Failed to decode fixture %s: %v", name, err)
	}
	return v
}

func int64Ptr(n int64) *int64       { return &n }
func float64Ptr(f float64) *float64 { return &f }

// NewMinimalDocument creates the smallest valid WordGrain document: the
// required meta fields and a single grain.
func NewMinimalDocument() *wordgrain.Document {
	return &wordgrain.Document{
		Schema: wordgrain.SchemaID,
		Meta: wordgrain.Meta{
			Source:      "manual",
			Artist:      "Unknown",
			GeneratedAt: "2026-02-08T12:00:00Z",
		},
		Grains: []wordgrain.Grain{{Word: "hello"}},
	}
}

// NewDetailedDocument creates a valid document with frequencies, tf-idf
// scores, sentiments, contexts and collocations.
func NewDetailedDocument() *wordgrain.Document {
	year := 2012
	doc := NewMinimalDocument()
	doc.Meta.Source = "genius"
	doc.Meta.Artist = "Kendrick Lamar"
	doc.Meta.Language = "en"
	doc.Meta.CorpusSize = int64Ptr(142)
	doc.Grains = []wordgrain.Grain{
		{
			Word:      "hustle",
			POS:       wordgrain.POSNoun,
			Frequency: int64Ptr(47),
			TFIDF:     float64Ptr(0.82),
			Sentiment: wordgrain.SentimentPositive,
			Contexts: []wordgrain.Context{{
				Line:  "The hustle never sleeps, I grind until the sun comes up",
				Track: "Money Trees",
				Year:  &year,
			}},
			Collocations: []wordgrain.Collocation{{Word: "grind", Score: 0.44}},
		},
		{
			Word:      "loyalty",
			POS:       wordgrain.POSNoun,
			Frequency: int64Ptr(31),
			TFIDF:     float64Ptr(0.77),
			Sentiment: wordgrain.SentimentPositive,
		},
		{
			Word:      "pain",
			POS:       wordgrain.POSNoun,
			Sentiment: wordgrain.SentimentNegative,
		},
	}
	return doc
}

// WriteMemFS writes each document, marshaled as JSON, to a new in-memory
// filesystem under its map key.
func WriteMemFS(t *testing.T, docs map[string]any) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, doc := range docs {
		var data []byte
		switch d := doc.(type) {
		case []byte:
			data = d
		case string:
			data = []byte(d)
		default:
			var err error
			data, err = json.MarshalIndent(doc, "", "  ")
			if err != nil {
				t.Fatalf("Failed to marshal %s: %v", name, err)
			}
		}
		if err := afero.WriteFile(fs, name, data, 0o600); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return fs
}

// WriteTempYAML marshals a document to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempYAML(t *testing.T, doc any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "test.yaml")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary YAML file: %v", err)
	}

	return tmpFile
}

// WriteTempJSON marshals a document to JSON and writes it to a temporary
// *.wg.json file. The file is removed when the test completes.
func WriteTempJSON(t *testing.T, doc any) string {
	t.Helper()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "test"+wordgrain.FileExtension)
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary JSON file: %v", err)
	}

	return tmpFile
}
