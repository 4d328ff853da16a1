//go:build integration

package harness

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordgrain/wgtools/differ"
	"github.com/wordgrain/wgtools/formatter"
	"github.com/wordgrain/wgtools/parser"
	"github.com/wordgrain/wgtools/validator"
	"github.com/wordgrain/wgtools/wordgrain"
)

// pipelineState carries the loaded documents between steps.
type pipelineState struct {
	source *parser.ParseResult
	target *parser.ParseResult
}

// Run loads the scenario's documents from docsDir, injects their problems and
// executes every pipeline step as a subtest.
func Run(t *testing.T, s *Scenario, docsDir string) {
	t.Helper()
	if s.Skip != "" {
		t.Skip(s.Skip)
	}

	state := &pipelineState{source: loadInput(t, s.Source, docsDir)}
	if s.Target != nil {
		state.target = loadInput(t, *s.Target, docsDir)
	}

	for i, step := range s.Pipeline {
		t.Run(fmt.Sprintf("%02d-%s", i+1, step.Name), func(t *testing.T) {
			switch step.Name {
			case "validate":
				runValidate(t, state, step.Expect)
			case "diff":
				runDiff(t, state, step)
			case "stats":
				runStats(t, state, step.Expect)
			}
		})
	}
}

func loadInput(t *testing.T, in Input, docsDir string) *parser.ParseResult {
	t.Helper()
	pr, err := parser.ParseWithOptions(parser.WithFilePath(filepath.Join(docsDir, in.Doc)))
	require.NoError(t, err, "loading %s", in.Doc)
	require.NoError(t, InjectProblems(pr.Data, in.Problems), "injecting problems into %s", in.Doc)
	return pr
}

func runValidate(t *testing.T, state *pipelineState, want Expectation) {
	s, err := wordgrain.Schema()
	require.NoError(t, err)

	result, err := validator.ValidateWithOptions(
		validator.WithSchema(s),
		validator.WithParsed(*state.source),
	)
	require.NoError(t, err)

	if want.Valid != nil {
		if *want.Valid {
			AssertValid(t, result)
		} else {
			AssertInvalid(t, result)
		}
	}
	if want.ErrorCount != nil {
		AssertErrorCount(t, result, *want.ErrorCount)
	}
	for _, p := range want.ErrorPaths {
		AssertHasErrorAt(t, result, p)
	}
}

func runDiff(t *testing.T, state *pipelineState, step Step) {
	alignment := differ.AlignIdentity
	if step.Align != "" {
		var err error
		alignment, err = differ.ParseAlignment(step.Align)
		require.NoError(t, err)
	}
	identity := differ.IdentityFunc(wordgrain.Identity)
	if step.Normalized {
		identity = wordgrain.NormalizedIdentity
	}

	result, err := differ.DiffWithOptions(
		differ.WithSourceParsed(*state.source),
		differ.WithTargetParsed(*state.target),
		differ.WithAlignment(alignment),
		differ.WithIdentity(identity),
	)
	require.NoError(t, err)

	entries := formatter.Flatten(result.Delta)
	assert.Equal(t, result.Summary, formatter.Summarize(entries), "formatter and differ counts agree")

	want := step.Expect
	if want.HasChanges != nil {
		assert.Equal(t, *want.HasChanges, result.HasChanges, "has changes")
	}
	assertCount(t, "added", want.Added, result.Summary.Added)
	assertCount(t, "deleted", want.Deleted, result.Summary.Deleted)
	assertCount(t, "modified", want.Modified, result.Summary.Modified)
	assertCount(t, "moved", want.Moved, result.Summary.Moved)
	for _, p := range want.ChangedPaths {
		AssertChangedPath(t, entries, p)
	}
}

func runStats(t *testing.T, state *pipelineState, want Expectation) {
	doc, err := wordgrain.Decode(state.source.Data)
	require.NoError(t, err)
	stats := wordgrain.ComputeStats(doc)
	assertCount(t, "grain count", want.GrainCount, stats.GrainCount)

	if want.CommonCount != nil {
		require.NotNil(t, state.target, "common-count needs a target document")
		other, err := wordgrain.Decode(state.target.Data)
		require.NoError(t, err)
		assert.Len(t, wordgrain.CommonWords(doc, other), *want.CommonCount, "common words")
	}
}

func assertCount(t *testing.T, what string, want *int, got int) {
	t.Helper()
	if want != nil {
		assert.Equal(t, *want, got, what)
	}
}
