package formatter

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/wordgrain/wgtools/differ"
	"github.com/wordgrain/wgtools/parser"
)

// DefaultMaxValueLength is the length at which FormatValue output is truncated
// when rendering entries.
const DefaultMaxValueLength = 80

// Entry is one row of a flattened delta.
type Entry struct {
	// Path locates the node, e.g. "grains[1].frequency"; empty for the root
	Path string `json:"path"`
	// Name is the last path segment: a field name or "[N]"
	Name string `json:"name"`
	// Depth is the nesting level, 0 for children of the root
	Depth int `json:"depth"`
	// Kind is the node variant
	Kind Kind `json:"kind"`
	// Old is the previous value of deleted and modified nodes
	Old any `json:"old,omitempty"`
	// New is the current value of added and modified nodes
	New any `json:"new,omitempty"`
	// To is the destination index of moved nodes
	To int `json:"to,omitempty"`
}

// Flatten walks delta depth first and returns one entry per node. Container
// nodes precede their children. A nil delta yields no entries.
func Flatten(delta differ.Delta) []Entry {
	if Classify(delta).Kind == KindUnknown {
		return nil
	}
	var out []Entry
	switch x := delta.(type) {
	case *differ.ObjectDelta:
		flattenObject(x, "", 0, &out)
	case *differ.ArrayDelta:
		flattenArray(x, "", 0, &out)
	default:
		out = append(out, entry("", "", 0, delta))
	}
	return out
}

func flatten(name, path string, depth int, d differ.Delta, out *[]Entry) {
	*out = append(*out, entry(name, path, depth, d))
	switch x := d.(type) {
	case *differ.ObjectDelta:
		flattenObject(x, path, depth+1, out)
	case *differ.ArrayDelta:
		flattenArray(x, path, depth+1, out)
	}
}

func flattenObject(d *differ.ObjectDelta, parent string, depth int, out *[]Entry) {
	for _, f := range d.Fields {
		path := f.Name
		if parent != "" {
			path = parent + "." + f.Name
		}
		flatten(f.Name, path, depth, f.Delta, out)
	}
}

func flattenArray(d *differ.ArrayDelta, parent string, depth int, out *[]Entry) {
	for _, e := range d.Entries {
		name := "[" + strconv.Itoa(e.Key.Index) + "]"
		flatten(name, parent+name, depth, e.Delta, out)
	}
}

func entry(name, path string, depth int, d differ.Delta) Entry {
	c := Classify(d)
	return Entry{
		Path:  path,
		Name:  name,
		Depth: depth,
		Kind:  c.Kind,
		Old:   c.Old,
		New:   c.New,
		To:    c.To,
	}
}

// Summarize counts the leaf entries by kind.
func Summarize(entries []Entry) differ.Summary {
	var s differ.Summary
	for _, e := range entries {
		switch e.Kind {
		case KindAdded:
			s.Added++
		case KindDeleted:
			s.Deleted++
		case KindModified:
			s.Modified++
		case KindMoved:
			s.Moved++
		}
	}
	return s
}

// String renders the entry as a single line with its values truncated to
// DefaultMaxValueLength.
func (e Entry) String() string {
	return e.Format(DefaultMaxValueLength)
}

// Format renders the entry with values truncated to maxLen; maxLen <= 0
// disables truncation.
func (e Entry) Format(maxLen int) string {
	name := e.Name
	if name == "" {
		name = "(root)"
	}
	switch e.Kind {
	case KindAdded:
		return fmt.Sprintf("+ %s: %s", name, Truncate(FormatValue(e.New), maxLen))
	case KindDeleted:
		return fmt.Sprintf("- %s: %s", name, Truncate(FormatValue(e.Old), maxLen))
	case KindModified:
		return fmt.Sprintf("~ %s: %s -> %s", name,
			Truncate(FormatValue(e.Old), maxLen), Truncate(FormatValue(e.New), maxLen))
	case KindMoved:
		return fmt.Sprintf("↔ %s: moved to index %d", name, e.To)
	case KindArray:
		return name + " (array)"
	default:
		return name
	}
}

// FormatValue renders a value for display: strings quoted, containers as
// indented JSON, everything else in its JSON form.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(x)
	case *parser.Object, []any, map[string]any:
		out, err := json.MarshalIndent(x, "", "  ")
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(out)
	default:
		return parser.Canonical(x)
	}
}

// Truncate shortens s to maxLen characters followed by "..." when it is
// longer. maxLen <= 0 returns s unchanged.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	n := 0
	for _, r := range s {
		if n == maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	b.WriteString("...")
	return b.String()
}
