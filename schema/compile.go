package schema

import (
	"fmt"
	"math"
	"strings"

	"github.com/grafana/regexp"

	"github.com/wordgrain/wgtools/internal/pathutil"
	"github.com/wordgrain/wgtools/parser"
	"github.com/wordgrain/wgtools/wgerrors"
)

// DefaultMaxRefDepth is the longest $ref chain Compile follows.
const DefaultMaxRefDepth = 100

var knownTypes = map[string]bool{
	KindObject:  true,
	KindArray:   true,
	KindString:  true,
	KindNumber:  true,
	KindInteger: true,
	KindBoolean: true,
	KindNull:    true,
}

// CompileOption configures Compile.
type CompileOption func(*compiler) error

// WithLogger sets the logger used to report unresolved references and bad
// keywords. Default: parser.NopLogger
func WithLogger(l parser.Logger) CompileOption {
	return func(c *compiler) error {
		c.log = parser.OrNop(l)
		return nil
	}
}

// WithMaxRefDepth bounds the length of a $ref chain.
// Default: 100
func WithMaxRefDepth(n int) CompileOption {
	return func(c *compiler) error {
		if n <= 0 {
			return &wgerrors.ConfigError{Option: "WithMaxRefDepth", Value: n, Message: "must be positive"}
		}
		c.maxRefDepth = n
		return nil
	}
}

type compiler struct {
	root        any
	log         parser.Logger
	maxRefDepth int

	// nodes memoises compiled nodes by pointer so that refs share targets
	nodes      map[string]*Schema
	chains     map[string]error
	unresolved []string
	seenRefs   map[string]bool
}

// Compile turns a raw schema tree into a Schema graph. root must be a JSON
// object (a *parser.Object, or a map that Normalize accepts); anything else
// fails with a *wgerrors.SchemaError. Circular $ref chains fail with a
// *wgerrors.ReferenceError and overlong chains with a *wgerrors.ResourceLimitError.
func Compile(root any, opts ...CompileOption) (*Schema, error) {
	c := &compiler{
		log:         parser.NopLogger{},
		maxRefDepth: DefaultMaxRefDepth,
		nodes:       make(map[string]*Schema),
		chains:      make(map[string]error),
		seenRefs:    make(map[string]bool),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("schema: invalid options: %w", err)
		}
	}

	if _, ok := root.(*parser.Object); !ok && root != nil {
		if n, err := parser.Normalize(root); err == nil {
			root = n
		}
	}
	obj, ok := root.(*parser.Object)
	if !ok {
		return nil, &wgerrors.SchemaError{
			Pointer: "#",
			Message: fmt.Sprintf("schema root must be an object, got %s", kindName(root)),
		}
	}
	c.root = obj

	s, err := c.compile(obj, nil)
	if err != nil {
		return nil, err
	}
	s.ID = stringKeyword(obj, "$id")
	s.Dialect = stringKeyword(obj, "$schema")

	if defs, ok := obj.Get("$defs"); ok {
		if defsObj, ok := defs.(*parser.Object); ok {
			for name, raw := range defsObj.All() {
				ds, err := c.compile(raw, []string{"$defs", name})
				if err != nil {
					return nil, err
				}
				s.Defs = append(s.Defs, Property{Name: name, Schema: ds})
			}
		}
	}
	s.Unresolved = c.unresolved
	return s, nil
}

func kindName(v any) string {
	if k := parser.Kind(v); k != "" {
		return k
	}
	return fmt.Sprintf("%T", v)
}

// pointerKey renders tokens as a URI fragment pointer.
func pointerKey(tokens []string) string {
	var b strings.Builder
	b.WriteByte('#')
	for _, t := range tokens {
		b.WriteByte('/')
		b.WriteString(pathutil.EscapeToken(t))
	}
	return b.String()
}

func (c *compiler) compile(raw any, tokens []string) (*Schema, error) {
	ptr := pointerKey(tokens)
	if s, ok := c.nodes[ptr]; ok {
		return s, nil
	}
	s := &Schema{Pointer: ptr}
	c.nodes[ptr] = s

	switch node := raw.(type) {
	case bool:
		s.Never = !node
		return s, nil
	case *parser.Object:
		if err := c.fill(s, node, tokens); err != nil {
			return nil, err
		}
		return s, nil
	default:
		c.log.Warn("schema node is not an object or boolean, treating as permissive",
			"pointer", ptr, "kind", kindName(raw))
		return s, nil
	}
}

func (c *compiler) fill(s *Schema, node *parser.Object, tokens []string) error {
	if ref, ok := node.Get("$ref"); ok {
		refStr, isStr := ref.(string)
		if !isStr {
			c.warnKeyword(s, "$ref", ref)
		} else {
			s.Ref = refStr
			target, err := c.compileRef(refStr, s.Pointer)
			if err != nil {
				return err
			}
			s.Target = target
		}
	}

	s.Description = stringKeyword(node, "description")
	if def, ok := node.Get("default"); ok {
		s.Default = def
		s.HasDefault = true
	}

	if t, ok := node.Get("type"); ok {
		s.Types = c.types(s, t)
	}
	if e, ok := node.Get("enum"); ok {
		if arr, isArr := e.([]any); isArr {
			s.Enum = arr
		} else {
			c.warnKeyword(s, "enum", e)
		}
	}

	if err := c.fillObject(s, node, tokens); err != nil {
		return err
	}
	if items, ok := node.Get("items"); ok {
		is, err := c.compile(items, append(cloneTokens(tokens), "items"))
		if err != nil {
			return err
		}
		s.Array = &ArrayFacet{Items: is}
	}
	c.fillString(s, node)
	c.fillNumber(s, node)
	return nil
}

func (c *compiler) fillObject(s *Schema, node *parser.Object, tokens []string) error {
	props, hasProps := node.Get("properties")
	req, hasReq := node.Get("required")
	if !hasProps && !hasReq {
		return nil
	}
	f := &ObjectFacet{}
	if hasProps {
		if po, ok := props.(*parser.Object); ok {
			base := append(cloneTokens(tokens), "properties")
			for name, raw := range po.All() {
				ps, err := c.compile(raw, append(cloneTokens(base), name))
				if err != nil {
					return err
				}
				f.Properties = append(f.Properties, Property{Name: name, Schema: ps})
			}
		} else {
			c.warnKeyword(s, "properties", props)
		}
	}
	if hasReq {
		if arr, ok := req.([]any); ok {
			for _, r := range arr {
				if name, ok := r.(string); ok {
					f.Required = append(f.Required, name)
				} else {
					c.warnKeyword(s, "required", r)
				}
			}
		} else {
			c.warnKeyword(s, "required", req)
		}
	}
	s.Object = f
	return nil
}

func (c *compiler) fillString(s *Schema, node *parser.Object) {
	var f StringFacet
	set := false
	if v, ok := node.Get("minLength"); ok {
		if n, ok := c.nonNegativeInt(s, "minLength", v); ok {
			f.MinLength = &n
			set = true
		}
	}
	if v, ok := node.Get("maxLength"); ok {
		if n, ok := c.nonNegativeInt(s, "maxLength", v); ok {
			f.MaxLength = &n
			set = true
		}
	}
	if v, ok := node.Get("pattern"); ok {
		if p, isStr := v.(string); isStr {
			f.Pattern = p
			set = true
			re, err := regexp.Compile(p)
			if err != nil {
				c.log.Warn("invalid pattern, treating as permissive",
					"pointer", s.Pointer, "pattern", p, "error", err)
			} else {
				f.re = re
			}
		} else {
			c.warnKeyword(s, "pattern", v)
		}
	}
	if v, ok := node.Get("format"); ok {
		if fm, isStr := v.(string); isStr {
			f.Format = fm
			set = true
		} else {
			c.warnKeyword(s, "format", v)
		}
	}
	if set {
		s.String = &f
	}
}

func (c *compiler) fillNumber(s *Schema, node *parser.Object) {
	var f NumberFacet
	set := false
	if v, ok := node.Get("minimum"); ok {
		if n, isNum := v.(float64); isNum {
			f.Minimum = &n
			set = true
		} else {
			c.warnKeyword(s, "minimum", v)
		}
	}
	if v, ok := node.Get("maximum"); ok {
		if n, isNum := v.(float64); isNum {
			f.Maximum = &n
			set = true
		} else {
			c.warnKeyword(s, "maximum", v)
		}
	}
	if set {
		s.Number = &f
	}
}

func (c *compiler) types(s *Schema, v any) []string {
	var names []string
	switch t := v.(type) {
	case string:
		names = []string{t}
	case []any:
		for _, item := range t {
			if name, ok := item.(string); ok {
				names = append(names, name)
			} else {
				c.warnKeyword(s, "type", item)
			}
		}
	default:
		c.warnKeyword(s, "type", v)
		return nil
	}
	for _, name := range names {
		if !knownTypes[name] {
			c.log.Warn("unknown type name", "pointer", s.Pointer, "type", name)
		}
	}
	return names
}

func (c *compiler) nonNegativeInt(s *Schema, keyword string, v any) (int, bool) {
	n, ok := v.(float64)
	if !ok || n < 0 || n != math.Trunc(n) || n > math.MaxInt32 {
		c.warnKeyword(s, keyword, v)
		return 0, false
	}
	return int(n), true
}

func (c *compiler) warnKeyword(s *Schema, keyword string, v any) {
	c.log.Warn("ignoring malformed keyword", "pointer", s.Pointer, "keyword", keyword, "value", v)
}

// compileRef returns the compiled target of ref, or nil when it does not resolve.
func (c *compiler) compileRef(ref, from string) (*Schema, error) {
	tokens, local := pathutil.SplitPointer(ref)
	if !local {
		c.markUnresolved(ref, from, "only local references are supported")
		return nil, nil
	}
	if err := c.checkChain(ref); err != nil {
		return nil, err
	}
	target, ok := resolveTokens(tokens, c.root)
	if !ok {
		c.markUnresolved(ref, from, "target not found")
		return nil, nil
	}
	return c.compile(target, tokens)
}

func (c *compiler) markUnresolved(ref, from, reason string) {
	c.log.Warn("unresolved reference, treating as permissive", "ref", ref, "pointer", from, "reason", reason)
	if c.seenRefs[ref] {
		return
	}
	c.seenRefs[ref] = true
	c.unresolved = append(c.unresolved, ref)
}

// checkChain follows ref through consecutive $ref keywords and fails when the
// chain returns to a node it already visited or grows past maxRefDepth.
// Such a loop never descends into the instance, so validation could not end.
func (c *compiler) checkChain(ref string) error {
	if err, ok := c.chains[ref]; ok {
		return err
	}
	var (
		chain   []string
		visited = make(map[string]bool)
		cur     = ref
		err     error
	)
	for {
		tokens, local := pathutil.SplitPointer(cur)
		if !local {
			break
		}
		key := pointerKey(tokens)
		chain = append(chain, cur)
		if visited[key] {
			err = &wgerrors.ReferenceError{
				Ref:        ref,
				Chain:      chain,
				IsCircular: true,
				Message:    "reference chain loops without descending into the instance",
			}
			break
		}
		visited[key] = true
		if len(chain) > c.maxRefDepth {
			err = &wgerrors.ResourceLimitError{
				ResourceType: "ref depth",
				Limit:        int64(c.maxRefDepth),
				Actual:       int64(len(chain)),
				Message:      "reference chain starting at " + ref,
			}
			break
		}
		target, ok := resolveTokens(tokens, c.root)
		if !ok {
			break
		}
		obj, ok := target.(*parser.Object)
		if !ok {
			break
		}
		next, ok := obj.Get("$ref")
		if !ok {
			break
		}
		nextStr, ok := next.(string)
		if !ok {
			break
		}
		cur = nextStr
	}
	c.chains[ref] = err
	return err
}

func stringKeyword(node *parser.Object, key string) string {
	v, _ := node.Get(key)
	s, _ := v.(string)
	return s
}

func cloneTokens(tokens []string) []string {
	out := make([]string, len(tokens), len(tokens)+2)
	copy(out, tokens)
	return out
}
