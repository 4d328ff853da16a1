package validator

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/wordgrain/wgtools/internal/pathutil"
	"github.com/wordgrain/wgtools/parser"
	"github.com/wordgrain/wgtools/schema"
)

// walker carries the state of one validation pass.
type walker struct {
	v      *Validator
	result *ValidationResult
	path   *pathutil.PointerBuilder
	// warned records unresolved refs already reported
	warned map[string]bool
	// refHops counts consecutive $ref links followed at the current position
	refHops int
}

func (w *walker) errorf(keyword string, value any, format string, args ...any) {
	w.v.addError(w.result, w.path.String(), fmt.Sprintf(format, args...),
		withKeyword(keyword), withValue(value))
}

// validate checks value against s at the current path. Every applicable
// keyword is evaluated; none short-circuits another.
func (w *walker) validate(s *schema.Schema, value any) {
	if s == nil {
		return
	}
	if s.Never {
		w.errorf("false schema", value, "boolean schema is false")
		return
	}

	if s.Ref != "" {
		w.validateRef(s, value)
	}

	if len(s.Types) > 0 && !matchesAnyType(s.Types, value) {
		w.errorf("type", value, "must be %s", strings.Join(s.Types, ","))
	}

	if s.Enum != nil {
		w.validateEnum(s.Enum, value)
	}

	// the remaining keywords apply only to the JSON type they constrain
	switch x := value.(type) {
	case float64:
		if s.Number != nil {
			w.validateNumber(s.Number, x)
		}
	case string:
		if s.String != nil {
			w.validateString(s.String, x)
		}
	case *parser.Object:
		if s.Object != nil {
			w.validateObject(s.Object, x)
		}
	case []any:
		if s.Array != nil && s.Array.Items != nil {
			w.validateArray(s.Array.Items, x)
		}
	}
}

func (w *walker) validateRef(s *schema.Schema, value any) {
	if s.Target == nil {
		if !w.warned[s.Ref] {
			w.warned[s.Ref] = true
			w.v.addWarning(w.result, w.path.String(),
				fmt.Sprintf("unresolved reference %s; no constraint applied", s.Ref),
				withKeyword("$ref"))
		}
		return
	}
	// Compile rejects ref loops; the hop limit guards hand-built graphs.
	if w.refHops >= schema.DefaultMaxRefDepth {
		w.errorf("$ref", nil, "reference chain exceeds %d links", schema.DefaultMaxRefDepth)
		return
	}
	w.refHops++
	w.validate(s.Target, value)
	w.refHops--
}

func (w *walker) validateEnum(allowed []any, value any) {
	for _, candidate := range allowed {
		if parser.Equal(candidate, value) {
			return
		}
	}
	w.errorf("enum", value, "must be equal to one of the allowed values: %s", enumList(allowed))
}

func enumList(allowed []any) string {
	parts := make([]string, len(allowed))
	for i, a := range allowed {
		if s, ok := a.(string); ok {
			parts[i] = s
		} else {
			parts[i] = parser.Canonical(a)
		}
	}
	return strings.Join(parts, ", ")
}

func (w *walker) validateNumber(f *schema.NumberFacet, n float64) {
	if f.Minimum != nil && n < *f.Minimum {
		w.errorf("minimum", n, "must be >= %s", formatNumber(*f.Minimum))
	}
	if f.Maximum != nil && n > *f.Maximum {
		w.errorf("maximum", n, "must be <= %s", formatNumber(*f.Maximum))
	}
}

func (w *walker) validateString(f *schema.StringFacet, s string) {
	length := utf8.RuneCountInString(s)
	if f.MinLength != nil && length < *f.MinLength {
		w.errorf("minLength", s, "must NOT have fewer than %d characters", *f.MinLength)
	}
	if f.MaxLength != nil && length > *f.MaxLength {
		w.errorf("maxLength", s, "must NOT have more than %d characters", *f.MaxLength)
	}
	if re := f.Regexp(); re != nil && !re.MatchString(s) {
		w.errorf("pattern", s, "must match pattern %q", f.Pattern)
	}
	if f.Format != "" {
		if ok, _ := w.v.formats().Check(f.Format, s); !ok {
			w.errorf("format", s, "must match format %q", f.Format)
		}
	}
}

func (w *walker) validateObject(f *schema.ObjectFacet, obj *parser.Object) {
	for _, name := range f.Required {
		if !obj.Has(name) {
			w.v.addError(w.result, w.path.Child(name),
				fmt.Sprintf("must have required property '%s'", name),
				withKeyword("required"))
		}
	}
	for _, p := range f.Properties {
		child, ok := obj.Get(p.Name)
		if !ok {
			continue
		}
		w.descend(p.Name, -1, p.Schema, child)
	}
}

func (w *walker) validateArray(items *schema.Schema, arr []any) {
	for i, item := range arr {
		w.descend("", i, items, item)
	}
}

// descend validates a child value one level down. Pass index >= 0 for array
// elements and a key otherwise.
func (w *walker) descend(key string, index int, s *schema.Schema, value any) {
	if index >= 0 {
		w.path.PushIndex(index)
	} else {
		w.path.Push(key)
	}
	defer w.path.Pop()

	if w.path.Depth() > w.v.maxDepth() {
		w.errorf("depth", nil, "exceeds maximum nesting depth of %d", w.v.maxDepth())
		return
	}

	hops := w.refHops
	w.refHops = 0
	w.validate(s, value)
	w.refHops = hops
}

func matchesAnyType(types []string, value any) bool {
	for _, t := range types {
		if matchesType(t, value) {
			return true
		}
	}
	return false
}

func matchesType(name string, value any) bool {
	switch name {
	case schema.KindNull:
		return value == nil
	case schema.KindBoolean:
		_, ok := value.(bool)
		return ok
	case schema.KindNumber:
		_, ok := value.(float64)
		return ok
	case schema.KindInteger:
		n, ok := value.(float64)
		return ok && n == math.Trunc(n) && !math.IsInf(n, 0)
	case schema.KindString:
		_, ok := value.(string)
		return ok
	case schema.KindArray:
		_, ok := value.([]any)
		return ok
	case schema.KindObject:
		_, ok := value.(*parser.Object)
		return ok
	default:
		return false
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
