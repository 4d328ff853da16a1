// Package validator checks JSON values against compiled JSON Schemas.
//
// Validation is exhaustive: every constraint reachable from the root schema is
// evaluated, following each $ref, and a violation in one branch never hides a
// violation in a sibling. Each violation is reported with a JSON Pointer path
// ("/" is the document root) and an ajv-compatible message:
//
//	/grains/0/pos       must be equal to one of the allowed values: noun, verb, ...
//	/grains/3/frequency must be integer
//	/meta/artist        must have required property 'artist'
//
// # Quick Start
//
//	s, _ := wordgrain.Schema()
//	v := validator.New()
//	result := v.ValidateBytes(s, data)
//	if !result.Valid {
//		for _, e := range result.Errors {
//			fmt.Println(e.Path, e.Message)
//		}
//	}
//
// Input that is not valid JSON yields exactly one error at "/" with the message
// "Invalid JSON syntax". It is never returned as a Go error.
//
// # Functional Options
//
//	result, err := validator.ValidateWithOptions(
//	    validator.WithFilePath("doc.wg.json"),
//	    validator.WithRawSchema(raw),
//	)
//
// Options select exactly one input (WithFilePath, WithData, WithValue or
// WithParsed) and exactly one schema (WithSchema or WithRawSchema). Raw schemas
// are compiled through a schema.Cache keyed by $id.
//
// Other options:
//
//	WithFormatRegistry   format keyword checks (default DefaultFormats())
//	WithMaxDepth         instance nesting limit (default 100)
//	WithIncludeWarnings  report unresolved references (default true)
//	WithCache            schema cache used by WithRawSchema
//	WithFS               filesystem used by WithFilePath
//	WithLogger           structured logger
//
// # Formats
//
// The format keyword is delegated to a [FormatRegistry]. The default registry
// checks date-time strictly against RFC 3339 and hands every other name to the
// go-openapi/strfmt registry (date, email, uri, uuid, hostname, ipv4, ipv6 and
// more). Unknown formats pass.
//
// # Warnings
//
// A $ref that did not resolve when the schema was compiled imposes no
// constraint. The first time validation reaches one, a warning is added to
// the result; warnings never affect Valid.
package validator
