package wordgrain

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/wordgrain/wgtools/differ"
	"github.com/wordgrain/wgtools/parser"
)

var wordIdentity = differ.FieldIdentity("word")

// Identity keys an array element for the differ: the "word" of a grain, or
// the canonical JSON form of anything else.
func Identity(elem any) string {
	return wordIdentity(elem)
}

// NormalizedIdentity keys grains by the folded form of "normalized", or of
// "word" when "normalized" is absent. Other elements use their canonical
// JSON form.
func NormalizedIdentity(elem any) string {
	obj, ok := elem.(*parser.Object)
	if !ok {
		return parser.Canonical(elem)
	}
	for _, field := range []string{"normalized", "word"} {
		if v, ok := obj.Get(field); ok {
			if s, ok := v.(string); ok && s != "" {
				return FoldWord(s)
			}
		}
	}
	return parser.Canonical(elem)
}

// FoldWord returns the NFC, case-folded form of w used to match words across
// documents.
func FoldWord(w string) string {
	return cases.Fold().String(norm.NFC.String(w))
}
