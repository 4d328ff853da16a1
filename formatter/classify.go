package formatter

import (
	"math"

	"github.com/wordgrain/wgtools/differ"
	"github.com/wordgrain/wgtools/parser"
)

// Kind names the variant of a delta node.
type Kind string

// Delta node kinds.
const (
	KindAdded    Kind = "added"
	KindDeleted  Kind = "deleted"
	KindModified Kind = "modified"
	KindMoved    Kind = "moved"
	KindObject   Kind = "object"
	KindArray    Kind = "array"
	KindUnknown  Kind = "unknown"
)

// IsLeaf reports whether k is one of the four change kinds.
func (k Kind) IsLeaf() bool {
	switch k {
	case KindAdded, KindDeleted, KindModified, KindMoved:
		return true
	}
	return false
}

// Classification describes a single delta node.
type Classification struct {
	Kind Kind
	// Old is the previous value of deleted and modified nodes
	Old any
	// New is the current value of added and modified nodes
	New any
	// To is the destination index of moved nodes
	To int
}

// Classify reports the kind of a typed delta node. A nil delta is unknown.
func Classify(d differ.Delta) Classification {
	switch x := d.(type) {
	case *differ.Added:
		if x != nil {
			return Classification{Kind: KindAdded, New: x.Value}
		}
	case *differ.Deleted:
		if x != nil {
			return Classification{Kind: KindDeleted, Old: x.Value}
		}
	case *differ.Modified:
		if x != nil {
			return Classification{Kind: KindModified, Old: x.Old, New: x.New}
		}
	case *differ.Moved:
		if x != nil {
			return Classification{Kind: KindMoved, To: x.To}
		}
	case *differ.ObjectDelta:
		if x != nil {
			return Classification{Kind: KindObject}
		}
	case *differ.ArrayDelta:
		if x != nil {
			return Classification{Kind: KindArray}
		}
	}
	return Classification{Kind: KindUnknown}
}

// ClassifyRaw reports the kind of a delta node in wire form:
//
//	[v]           added
//	[old, new]    modified
//	[old, 0, 0]   deleted
//	[_, to, 3]    moved
//	{"_t": "a"}   array
//	{...}         object
//
// Native Go values are normalized first. Anything else, including values
// that cannot be normalized, is unknown.
func ClassifyRaw(v any) Classification {
	n, err := parser.Normalize(v)
	if err != nil {
		return Classification{Kind: KindUnknown}
	}

	switch x := n.(type) {
	case []any:
		return classifyLeaf(x)
	case *parser.Object:
		if t, ok := x.Get("_t"); ok {
			if t == "a" {
				return Classification{Kind: KindArray}
			}
			return Classification{Kind: KindUnknown}
		}
		return Classification{Kind: KindObject}
	}
	return Classification{Kind: KindUnknown}
}

func classifyLeaf(x []any) Classification {
	switch len(x) {
	case 1:
		return Classification{Kind: KindAdded, New: x[0]}
	case 2:
		return Classification{Kind: KindModified, Old: x[0], New: x[1]}
	case 3:
		if x[1] == 0.0 && x[2] == 0.0 {
			return Classification{Kind: KindDeleted, Old: x[0]}
		}
		if x[2] == 3.0 {
			if to, ok := index(x[1]); ok {
				return Classification{Kind: KindMoved, To: to}
			}
		}
	}
	return Classification{Kind: KindUnknown}
}

func index(v any) (int, bool) {
	f, ok := v.(float64)
	if !ok || f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
