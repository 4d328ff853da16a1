package pathutil

import (
	"net/url"
	"strconv"
	"strings"
)

// PointerBuilder provides efficient incremental JSON Pointer construction.
// Segments are stored unescaped and escaped once in String().
type PointerBuilder struct {
	segments []string
}

// Push adds an object key segment.
func (p *PointerBuilder) Push(segment string) {
	p.segments = append(p.segments, segment)
}

// PushIndex adds an array index segment.
func (p *PointerBuilder) PushIndex(i int) {
	p.segments = append(p.segments, strconv.Itoa(i))
}

// Pop removes the last segment.
func (p *PointerBuilder) Pop() {
	if len(p.segments) == 0 {
		return
	}
	p.segments = p.segments[:len(p.segments)-1]
}

// Reset clears the builder for reuse.
func (p *PointerBuilder) Reset() {
	p.segments = p.segments[:0]
}

// Depth returns the number of segments.
func (p *PointerBuilder) Depth() int {
	return len(p.segments)
}

// String materializes the pointer. The root is "/".
func (p *PointerBuilder) String() string {
	if len(p.segments) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, seg := range p.segments {
		b.WriteByte('/')
		b.WriteString(EscapeToken(seg))
	}
	return b.String()
}

// Child returns the pointer of segment beneath the current position
// without modifying the builder.
func (p *PointerBuilder) Child(segment string) string {
	p.Push(segment)
	s := p.String()
	p.Pop()
	return s
}

var (
	tokenEscaper   = strings.NewReplacer("~", "~0", "/", "~1")
	tokenUnescaper = strings.NewReplacer("~1", "/", "~0", "~")
)

// EscapeToken escapes a reference token: "~" becomes "~0" and "/" becomes "~1".
func EscapeToken(s string) string {
	if !strings.ContainsAny(s, "~/") {
		return s
	}
	return tokenEscaper.Replace(s)
}

// UnescapeToken reverses EscapeToken.
func UnescapeToken(s string) string {
	if !strings.Contains(s, "~") {
		return s
	}
	return tokenUnescaper.Replace(s)
}

// SplitPointer decodes a local reference ("#", "#/a/b", "/a/b") into its
// unescaped tokens. Percent-escapes from URI fragments are decoded first;
// a token that is not valid percent-encoding is kept as written.
// The second return is false when ref is not a local pointer.
func SplitPointer(ref string) ([]string, bool) {
	ref = strings.TrimPrefix(ref, "#")
	if ref == "" {
		return nil, true
	}
	if ref[0] != '/' {
		return nil, false
	}
	raw := strings.Split(ref[1:], "/")
	tokens := make([]string, len(raw))
	for i, tok := range raw {
		if strings.Contains(tok, "%") {
			if dec, err := url.PathUnescape(tok); err == nil {
				tok = dec
			}
		}
		tokens[i] = UnescapeToken(tok)
	}
	return tokens, true
}

// JoinPointer builds a JSON Pointer from unescaped tokens. No tokens yields "/".
func JoinPointer(tokens ...string) string {
	p := PointerBuilder{segments: tokens}
	return p.String()
}
