// Package schema resolves and compiles JSON Schema documents.
//
// The supported dialect is the 2020-12 subset used by WordGrain: type, properties,
// required, items, enum, minimum, maximum, minLength, maxLength, pattern, format,
// default, description, $ref (local "#/..." pointers only), $defs, $id and $schema.
// Boolean schemas are accepted as well.
//
// # Resolving References
//
// [Resolve] walks a "#/..." JSON Pointer through a raw schema tree. It never
// panics and keeps no state:
//
//	node, ok := schema.Resolve("#/$defs/Grain", raw)
//
// # Compiling
//
// [Compile] turns a raw schema tree into a [Schema] graph in a single pass.
// Every $ref is resolved once and memoised by pointer, so a recursive schema
// becomes a finite graph with shared nodes. A chain of $ref links that loops
// without descending into properties or items is rejected with a
// *wgerrors.ReferenceError. A $ref that does not resolve compiles to a
// permissive node; it is logged and listed in [Schema.Unresolved].
//
//	s, err := schema.Compile(raw, schema.WithLogger(logger))
//
// [WithMaxRefDepth] bounds the length of a $ref chain (100 by default).
//
// # Caching
//
// [Cache] stores compiled schemas by $id. It is safe for concurrent use and
// collapses concurrent compilations of the same $id into one.
//
// # Describing
//
// [Describe] produces a property table for every $defs entry, the same rows the
// CLI's schema command prints.
package schema
