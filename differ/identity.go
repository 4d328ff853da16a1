package differ

import "github.com/wordgrain/wgtools/parser"

// IdentityFunc returns the key that identifies an array element across the
// two sides of a diff. Elements with equal keys are treated as the same
// logical entity, so a collision between distinct elements pairs them up.
type IdentityFunc func(elem any) string

// FieldIdentity identifies object elements by the string value of the named
// field and everything else by its canonical JSON form.
func FieldIdentity(name string) IdentityFunc {
	return func(elem any) string {
		if obj, ok := elem.(*parser.Object); ok {
			if v, ok := obj.Get(name); ok {
				if s, ok := v.(string); ok {
					return s
				}
			}
		}
		return parser.Canonical(elem)
	}
}

// CanonicalIdentity identifies an element by its canonical JSON form, so only
// deeply equal elements match.
func CanonicalIdentity(elem any) string {
	return parser.Canonical(elem)
}

// DefaultIdentity matches WordGrain grains by their "word" field.
var DefaultIdentity = FieldIdentity("word")
