package mcpserver

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wordgrain/wgtools/differ"
	"github.com/wordgrain/wgtools/formatter"
	"github.com/wordgrain/wgtools/parser"
	"github.com/wordgrain/wgtools/wordgrain"
)

type diffInput struct {
	Base       documentInput `json:"base"                 jsonschema:"The base/original WordGrain document"`
	Revision   documentInput `json:"revision"             jsonschema:"The revised WordGrain document to compare against the base"`
	Align      string        `json:"align,omitempty"      jsonschema:"Array alignment: identity (default, grains matched by word) or lcs"`
	Normalized *bool         `json:"normalized,omitempty" jsonschema:"Match grains by their case-folded normalized form instead of the exact word"`
	Offset     int           `json:"offset,omitempty"     jsonschema:"Skip the first N changes (for pagination)"`
	Limit      int           `json:"limit,omitempty"      jsonschema:"Maximum number of changes to return (default 100)"`
}

type diffChange struct {
	Kind string `json:"kind"`
	Path string `json:"path"`
	Old  any    `json:"old,omitempty"`
	New  any    `json:"new,omitempty"`
	To   *int   `json:"to,omitempty"`
}

type diffOutput struct {
	HasChanges   bool           `json:"has_changes"`
	TotalChanges int            `json:"total_changes"`
	Counts       differ.Summary `json:"counts"`
	Returned     int            `json:"returned"`
	Changes      []diffChange   `json:"changes,omitempty"`
	Delta        any            `json:"delta,omitempty"`
	Summary      string         `json:"summary"`
}

func handleDiff(_ context.Context, _ *mcp.CallToolRequest, input diffInput) (*mcp.CallToolResult, diffOutput, error) {
	alignment := cfg.DiffAlignment
	if input.Align != "" {
		a, err := differ.ParseAlignment(input.Align)
		if err != nil {
			return errResult(err), diffOutput{}, nil
		}
		alignment = a
	}
	identity := differ.IdentityFunc(wordgrain.Identity)
	normalized := cfg.DiffNormalized
	if input.Normalized != nil {
		normalized = *input.Normalized
	}
	if normalized {
		identity = wordgrain.NormalizedIdentity
	}

	base, err := loadValidDocument("base", input.Base)
	if err != nil {
		return errResult(err), diffOutput{}, nil
	}
	revision, err := loadValidDocument("revision", input.Revision)
	if err != nil {
		return errResult(err), diffOutput{}, nil
	}

	result, err := differ.DiffWithOptions(
		differ.WithSourceParsed(*base),
		differ.WithTargetParsed(*revision),
		differ.WithAlignment(alignment),
		differ.WithIdentity(identity),
	)
	if err != nil {
		return errResult(err), diffOutput{}, nil
	}

	output := diffOutput{
		HasChanges:   result.HasChanges,
		TotalChanges: result.Summary.Total(),
		Counts:       result.Summary,
	}
	if result.HasChanges {
		output.Delta = result.Delta
	}

	var changes []diffChange
	for _, e := range formatter.Flatten(result.Delta) {
		if !e.Kind.IsLeaf() {
			continue
		}
		c := diffChange{Kind: string(e.Kind), Path: e.Path, Old: e.Old, New: e.New}
		if e.Kind == formatter.KindMoved {
			to := e.To
			c.To = &to
		}
		changes = append(changes, c)
	}
	output.Changes = paginate(changes, input.Offset, input.Limit)
	output.Returned = len(output.Changes)
	output.Summary = buildDiffSummary(result.Summary)

	return nil, output, nil
}

// loadValidDocument loads d and returns an error describing the first few
// violations when it does not conform to the schema.
func loadValidDocument(role string, d documentInput) (*parser.ParseResult, error) {
	pr, result, err := validateDocument(d, false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", role, err)
	}
	if !result.Valid {
		const shown = 3
		msgs := make([]string, 0, shown)
		for _, e := range result.Errors[:min(shown, len(result.Errors))] {
			msgs = append(msgs, e.Path+": "+e.Message)
		}
		return nil, fmt.Errorf("%s document is not a valid WordGrain document (%s): %s",
			role, formatCount(result.ErrorCount, "error"), strings.Join(msgs, "; "))
	}
	return pr, nil
}

func buildDiffSummary(s differ.Summary) string {
	if s.Total() == 0 {
		return "No changes detected."
	}
	var parts []string
	for _, p := range []struct {
		n    int
		noun string
	}{
		{s.Added, "added"},
		{s.Deleted, "deleted"},
		{s.Modified, "modified"},
		{s.Moved, "moved"},
	} {
		if p.n > 0 {
			parts = append(parts, strconv.Itoa(p.n)+" "+p.noun)
		}
	}
	return formatCount(s.Total(), "change") + " found (" + strings.Join(parts, ", ") + ")."
}

func formatCount(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
