package wordgrain

import (
	_ "embed"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/wordgrain/wgtools/parser"
	"github.com/wordgrain/wgtools/schema"
)

const (
	// SchemaVersion is the version of the embedded schema.
	SchemaVersion = "v0.1.0"
	// SchemaID is the $id of the embedded schema.
	SchemaID = "https://wordgrain.dev/schema/" + SchemaVersion + "/wordgrain.schema.json"
	// FileExtension is the conventional suffix of WordGrain documents.
	FileExtension = ".wg.json"
)

//go:embed schema/v0.1.0/wordgrain.schema.json
var rawSchema []byte

// RawSchema returns a copy of the embedded schema document.
func RawSchema() []byte {
	out := make([]byte, len(rawSchema))
	copy(out, rawSchema)
	return out
}

var compiled = sync.OnceValues(func() (*schema.Schema, error) {
	raw, err := parser.DecodeJSON(rawSchema)
	if err != nil {
		return nil, fmt.Errorf("wordgrain: decoding embedded schema: %w", err)
	}
	s, err := schema.Compile(raw)
	if err != nil {
		return nil, fmt.Errorf("wordgrain: compiling embedded schema: %w", err)
	}
	return s, nil
})

// Schema returns the compiled embedded schema. It is compiled on first use
// and shared afterwards; callers must not modify it.
func Schema() (*schema.Schema, error) {
	return compiled()
}

// IsDocumentFile reports whether name follows the *.wg.json convention.
func IsDocumentFile(name string) bool {
	base := strings.ToLower(path.Base(strings.ReplaceAll(name, "\\", "/")))
	return strings.HasSuffix(base, FileExtension) && len(base) > len(FileExtension)
}
