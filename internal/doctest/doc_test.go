// Package doctest checks that package documentation stays in step with the
// exported API.
package doctest

import (
	"go/ast"
	goparser "go/parser"
	"go/token"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repoRoot(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	require.True(t, ok, "runtime.Caller(0) failed to retrieve file path")
	return filepath.Join(filepath.Dir(thisFile), "..", "..")
}

// parsePackage parses the non-test Go files of dir.
func parsePackage(t *testing.T, dir string, mode goparser.Mode) map[string]*ast.File {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	fset := token.NewFileSet()
	files := make(map[string]*ast.File)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := goparser.ParseFile(fset, filepath.Join(dir, name), nil, mode)
		require.NoError(t, err, "parsing %s", name)
		files[name] = f
	}
	return files
}

// TestPackageDocs verifies that each package has exactly one package comment
// and that it opens with "Package <name>".
func TestPackageDocs(t *testing.T) {
	root := repoRoot(t)

	packages := []string{
		"parser",
		"schema",
		"validator",
		"differ",
		"formatter",
		"wordgrain",
		"wgerrors",
		"internal/mcpserver",
		"cmd/wgtools/commands",
	}

	for _, dir := range packages {
		t.Run(dir, func(t *testing.T) {
			files := parsePackage(t, filepath.Join(root, dir), goparser.PackageClauseOnly|goparser.ParseComments)
			require.NotEmpty(t, files)

			var docs []string
			var name string
			for file, f := range files {
				name = f.Name.Name
				if f.Doc != nil {
					docs = append(docs, file)
					assert.True(t, strings.HasPrefix(f.Doc.Text(), "Package "+name+" "),
						"%s: package comment should start with %q", file, "Package "+name)
				}
			}
			assert.Len(t, docs, 1, "package %s should have exactly one package comment, found in %v", name, docs)
		})
	}
}

// TestOptionsDocumented verifies that every exported With* option function is
// mentioned in its package's doc.go.
func TestOptionsDocumented(t *testing.T) {
	root := repoRoot(t)

	for _, dir := range []string{"parser", "schema", "validator", "differ"} {
		t.Run(dir, func(t *testing.T) {
			pkgDir := filepath.Join(root, dir)
			doc, err := os.ReadFile(filepath.Join(pkgDir, "doc.go"))
			require.NoError(t, err)

			var options []string
			for _, f := range parsePackage(t, pkgDir, goparser.SkipObjectResolution) {
				for _, decl := range f.Decls {
					fn, ok := decl.(*ast.FuncDecl)
					if !ok || fn.Recv != nil || !fn.Name.IsExported() || !strings.HasPrefix(fn.Name.Name, "With") {
						continue
					}
					options = append(options, fn.Name.Name)
				}
			}
			require.NotEmpty(t, options, "expected option functions in %s", dir)

			for _, name := range options {
				assert.Contains(t, string(doc), name, "%s/doc.go does not mention %s", dir, name)
			}
		})
	}
}
