package schema

import (
	"github.com/grafana/regexp"
)

// Kinds reported by Schema.Kind.
const (
	KindRef     = "ref"
	KindEnum    = "enum"
	KindObject  = "object"
	KindArray   = "array"
	KindString  = "string"
	KindNumber  = "number"
	KindInteger = "integer"
	KindBoolean = "boolean"
	KindNull    = "null"
	KindAny     = "any"
	KindNever   = "never"
)

// Schema is one compiled schema node. Only the facets its keywords need are set.
// A Schema is immutable after Compile returns and may be shared between goroutines.
type Schema struct {
	// Pointer locates the node in its root document, as a URI fragment ("#", "#/$defs/Grain").
	Pointer string

	// Types lists the accepted JSON types; empty means any type.
	Types []string
	// Enum lists the allowed values; nil means the keyword is absent.
	Enum []any

	Object *ObjectFacet
	Array  *ArrayFacet
	String *StringFacet
	Number *NumberFacet

	// Ref is the $ref string as written.
	Ref string
	// Target is the node Ref points at, or nil when it did not resolve.
	Target *Schema

	// Never is set for the boolean schema false.
	Never bool

	Description string
	Default     any
	HasDefault  bool

	// The following are populated on the root node only.

	// ID is the $id of the root schema.
	ID string
	// Dialect is the $schema of the root schema.
	Dialect string
	// Defs holds the compiled $defs entries in document order.
	Defs []Property
	// Unresolved lists each $ref that did not resolve, once.
	Unresolved []string
}

// Property is a named child schema.
type Property struct {
	Name   string
	Schema *Schema
}

// ObjectFacet holds the keywords that apply to objects.
type ObjectFacet struct {
	// Properties are in document order.
	Properties []Property
	Required   []string
}

// Property returns the schema of the named property.
func (f *ObjectFacet) Property(name string) (*Schema, bool) {
	for _, p := range f.Properties {
		if p.Name == name {
			return p.Schema, true
		}
	}
	return nil, false
}

// IsRequired reports whether name is listed in required.
func (f *ObjectFacet) IsRequired(name string) bool {
	for _, r := range f.Required {
		if r == name {
			return true
		}
	}
	return false
}

// ArrayFacet holds the keywords that apply to arrays.
type ArrayFacet struct {
	// Items applies to every element; nil when absent.
	Items *Schema
}

// StringFacet holds the keywords that apply to strings.
type StringFacet struct {
	MinLength *int
	MaxLength *int
	// Pattern is the source of the pattern keyword.
	Pattern string
	// Format is the format keyword, checked by the validator's format registry.
	Format string

	re *regexp.Regexp
}

// Regexp returns the compiled pattern, or nil when there is none or it failed to compile.
func (f *StringFacet) Regexp() *regexp.Regexp {
	return f.re
}

// NumberFacet holds the keywords that apply to numbers. Bounds are inclusive.
type NumberFacet struct {
	Minimum *float64
	Maximum *float64
}

// Kind reports the primary variant of the node.
func (s *Schema) Kind() string {
	switch {
	case s == nil:
		return KindAny
	case s.Never:
		return KindNever
	case s.Ref != "":
		return KindRef
	case s.Enum != nil:
		return KindEnum
	case len(s.Types) == 1:
		return s.Types[0]
	case s.Object != nil:
		return KindObject
	case s.Array != nil:
		return KindArray
	case s.String != nil:
		return KindString
	case s.Number != nil:
		return KindNumber
	default:
		return KindAny
	}
}

// Def returns the compiled $defs entry with the given name.
func (s *Schema) Def(name string) (*Schema, bool) {
	for _, d := range s.Defs {
		if d.Name == name {
			return d.Schema, true
		}
	}
	return nil, false
}

// Deref follows Ref links to the first node without one. Unresolved refs
// stop the walk at the referring node.
func (s *Schema) Deref() *Schema {
	for i := 0; s != nil && s.Target != nil && i < DefaultMaxRefDepth; i++ {
		s = s.Target
	}
	return s
}
