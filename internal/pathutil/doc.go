// Package pathutil provides JSON Pointer (RFC 6901) utilities used while
// walking documents and schemas.
//
// The primary type is [PointerBuilder], which uses push/pop semantics to build
// pointers incrementally without allocating intermediate strings. Recursive
// validators push a segment on the way down and pop it on the way back; the
// pointer is only materialized when a violation is reported.
//
// # PointerBuilder Usage
//
// Use [Get] to obtain a pooled PointerBuilder, and [Put] to return it:
//
//	ptr := pathutil.Get()
//	defer pathutil.Put(ptr)
//
//	ptr.Push("grains")
//	ptr.PushIndex(2)
//	ptr.Push("pos")
//	ptr.String() // "/grains/2/pos"
//
// An empty builder renders as "/", the document root.
//
// # Tokens
//
// [EscapeToken] and [UnescapeToken] apply the "~0"/"~1" escaping rules, and
// [SplitPointer] decodes a "#/a/b" fragment into its reference tokens.
package pathutil
