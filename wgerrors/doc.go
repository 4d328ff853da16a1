// Package wgerrors provides structured error types for the wgtools library.
//
// Import path: github.com/wordgrain/wgtools/wgerrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to tell a broken schema apart from unreadable input or a
// resource limit.
//
// # Error Types
//
//   - [ParseError]: JSON/YAML parsing failures
//   - [ReferenceError]: $ref resolution failures and circular reference chains
//   - [SchemaError]: a schema document that cannot be compiled at all
//   - [ResourceLimitError]: depth and size limits
//   - [ConfigError]: invalid options
//
// # Sentinel Errors
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrReference]: Matches any [ReferenceError]
//   - [ErrCircularReference]: Matches [ReferenceError] with IsCircular=true
//   - [ErrSchema]: Matches any [SchemaError]
//   - [ErrResourceLimit]: Matches any [ResourceLimitError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// Data problems are never reported through these types. A document that fails
// validation produces a result with errors, not a Go error.
//
//	s, err := schema.Compile(raw)
//	if errors.Is(err, wgerrors.ErrCircularReference) {
//	    // the schema author wrote a $ref loop
//	}
package wgerrors
