package schema

import (
	"strconv"

	"github.com/wordgrain/wgtools/internal/pathutil"
	"github.com/wordgrain/wgtools/parser"
)

// Resolve walks a local reference ("#", "#/$defs/Grain") through root and
// returns the node it names. Tokens are unescaped (~1, ~0, percent-escapes);
// objects are walked by key and arrays by decimal index. It returns false as
// soon as a token is absent or the current node cannot be indexed.
func Resolve(ref string, root any) (any, bool) {
	tokens, ok := pathutil.SplitPointer(ref)
	if !ok {
		return nil, false
	}
	return resolveTokens(tokens, root)
}

func resolveTokens(tokens []string, root any) (any, bool) {
	cur := root
	for _, tok := range tokens {
		switch node := cur.(type) {
		case *parser.Object:
			next, ok := node.Get(tok)
			if !ok {
				return nil, false
			}
			cur = next
		case map[string]any:
			next, ok := node[tok]
			if !ok {
				return nil, false
			}
			cur = next
		case []any:
			i, ok := arrayIndex(tok)
			if !ok || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

// arrayIndex parses a reference token as an array index: decimal digits only,
// no sign and no leading zero.
func arrayIndex(tok string) (int, bool) {
	if tok == "" || (len(tok) > 1 && tok[0] == '0') {
		return 0, false
	}
	for _, c := range tok {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	i, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false
	}
	return i, true
}
