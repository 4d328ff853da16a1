package differ

import (
	"fmt"

	"github.com/wordgrain/wgtools/parser"
	"github.com/wordgrain/wgtools/wgerrors"
)

// DefaultMaxDepth is the deepest nesting Diff descends into.
const DefaultMaxDepth = 1000

// Alignment selects how array elements on both sides are paired.
type Alignment int

const (
	// AlignIdentity pairs each old element with the first unclaimed new element
	// of the same identity. Any element whose index changed is reported as moved.
	AlignIdentity Alignment = iota
	// AlignLCS keeps the longest common subsequence of identities in place and
	// reports moves only for elements that left it.
	AlignLCS
)

// String returns the name used on the command line.
func (a Alignment) String() string {
	switch a {
	case AlignIdentity:
		return "identity"
	case AlignLCS:
		return "lcs"
	default:
		return fmt.Sprintf("Alignment(%d)", int(a))
	}
}

// ParseAlignment parses "identity" or "lcs".
func ParseAlignment(s string) (Alignment, error) {
	switch s {
	case "identity", "":
		return AlignIdentity, nil
	case "lcs":
		return AlignLCS, nil
	default:
		return 0, &wgerrors.ConfigError{Option: "alignment", Value: s, Message: "must be identity or lcs"}
	}
}

// Summary counts the leaves of a delta.
type Summary struct {
	Added    int `json:"added"`
	Deleted  int `json:"deleted"`
	Modified int `json:"modified"`
	Moved    int `json:"moved"`
}

// Total returns the number of leaves.
func (s Summary) Total() int {
	return s.Added + s.Deleted + s.Modified + s.Moved
}

// DiffResult contains the result of comparing two documents.
type DiffResult struct {
	// Delta is the diff tree; nil when the documents are equal
	Delta Delta `json:"delta"`
	// Summary counts the leaves of Delta
	Summary Summary `json:"summary"`
	// HasChanges is true when Delta is non-nil
	HasChanges bool `json:"has_changes"`
	// SourcePath is the path of the old document, when it was loaded from one
	SourcePath string `json:"source_path,omitempty"`
	// TargetPath is the path of the new document, when it was loaded from one
	TargetPath string `json:"target_path,omitempty"`
}

// Differ compares JSON values. A Differ holds no per-call state and may be
// used from several goroutines.
type Differ struct {
	// Alignment selects the array pairing strategy. Default: AlignIdentity
	Alignment Alignment
	// Identity keys array elements. If nil, DefaultIdentity is used.
	Identity IdentityFunc
	// MaxDepth bounds nesting. Default: 1000
	MaxDepth int
	// Logger is the structured logger for debug output
	Logger parser.Logger
}

// New creates a new Differ instance with default settings
func New() *Differ {
	return &Differ{
		Alignment: AlignIdentity,
		Identity:  DefaultIdentity,
		MaxDepth:  DefaultMaxDepth,
	}
}

// Diff compares a and b with default settings.
func Diff(a, b any) (Delta, error) {
	return New().Diff(a, b)
}

// Diff returns the delta that turns a into b. A nil Delta with a nil error
// means the values are equal; an error means no diff is available.
func (d *Differ) Diff(a, b any) (Delta, error) {
	na, err := parser.Normalize(a)
	if err != nil {
		return nil, fmt.Errorf("differ: old value: %w", err)
	}
	nb, err := parser.Normalize(b)
	if err != nil {
		return nil, fmt.Errorf("differ: new value: %w", err)
	}
	delta, err := d.diff(na, nb, 0)
	if err != nil {
		return nil, fmt.Errorf("differ: %w", err)
	}
	parser.OrNop(d.Logger).Debug("computed diff",
		"alignment", d.Alignment.String(), "changed", delta != nil)
	return delta, nil
}

// DiffParsed compares the documents held by two ParseResults.
func (d *Differ) DiffParsed(source, target parser.ParseResult) (*DiffResult, error) {
	delta, err := d.Diff(source.Data, target.Data)
	if err != nil {
		return nil, err
	}
	result := NewResult(delta)
	result.SourcePath = source.SourcePath
	result.TargetPath = target.SourcePath
	return result, nil
}

// NewResult wraps delta in a DiffResult with its summary filled in.
func NewResult(delta Delta) *DiffResult {
	return &DiffResult{
		Delta:      delta,
		Summary:    Summarize(delta),
		HasChanges: delta != nil,
	}
}

// Summarize counts the leaves of delta by kind.
func Summarize(delta Delta) Summary {
	var s Summary
	summarize(delta, &s)
	return s
}

func summarize(delta Delta, s *Summary) {
	switch x := delta.(type) {
	case *Added:
		s.Added++
	case *Deleted:
		s.Deleted++
	case *Modified:
		s.Modified++
	case *Moved:
		s.Moved++
	case *ObjectDelta:
		for _, f := range x.Fields {
			summarize(f.Delta, s)
		}
	case *ArrayDelta:
		for _, e := range x.Entries {
			summarize(e.Delta, s)
		}
	}
}

func (d *Differ) maxDepth() int {
	if d.MaxDepth > 0 {
		return d.MaxDepth
	}
	return DefaultMaxDepth
}

func (d *Differ) identity() IdentityFunc {
	if d.Identity != nil {
		return d.Identity
	}
	return DefaultIdentity
}

// diff compares two model values at the given nesting depth.
func (d *Differ) diff(a, b any, depth int) (Delta, error) {
	if depth > d.maxDepth() {
		return nil, &wgerrors.ResourceLimitError{
			ResourceType: "nesting depth",
			Limit:        int64(d.maxDepth()),
			Actual:       int64(depth),
		}
	}

	switch x := a.(type) {
	case *parser.Object:
		if y, ok := b.(*parser.Object); ok {
			return d.diffObject(x, y, depth)
		}
	case []any:
		if y, ok := b.([]any); ok {
			if d.Alignment == AlignLCS {
				return d.diffArrayLCS(x, y, depth)
			}
			return d.diffArrayIdentity(x, y, depth)
		}
	}

	if parser.Equal(a, b) {
		return nil, nil
	}
	return &Modified{Old: a, New: b}, nil
}

func (d *Differ) diffObject(a, b *parser.Object, depth int) (Delta, error) {
	out := &ObjectDelta{}
	for key, av := range a.All() {
		bv, ok := b.Get(key)
		if !ok {
			out.Fields = append(out.Fields, Field{Name: key, Delta: &Deleted{Value: av}})
			continue
		}
		child, err := d.diff(av, bv, depth+1)
		if err != nil {
			return nil, err
		}
		if child != nil {
			out.Fields = append(out.Fields, Field{Name: key, Delta: child})
		}
	}
	for key, bv := range b.All() {
		if !a.Has(key) {
			out.Fields = append(out.Fields, Field{Name: key, Delta: &Added{Value: bv}})
		}
	}
	if len(out.Fields) == 0 {
		return nil, nil
	}
	return out, nil
}
