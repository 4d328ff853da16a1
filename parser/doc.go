// Package parser loads JSON and YAML documents into an order-preserving value tree.
//
// # Value Model
//
// Every decoded document is built from six Go types:
//
//	nil       JSON null
//	bool      JSON true/false
//	float64   JSON number
//	string    JSON string
//	[]any     JSON array
//	*Object   JSON object, keys in document order
//
// [Object] keeps the order in which keys first appeared so that consumers such as
// the differ can produce deterministic output that follows the source document.
// [Normalize] converts native Go values (map[string]any, int, json.Number, typed
// slices) into this model, [Equal] compares two values structurally and
// [Canonical] renders a value as sorted-key JSON for identity comparisons.
//
// # Loading Documents
//
// Use [ParseWithOptions] to load a file, reader or byte slice:
//
//	result, err := parser.ParseWithOptions(
//	    parser.WithFilePath("kendrick-lamar.wg.json"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.SourceFormat, parser.FormatBytes(result.SourceSize))
//
// Exactly one of [WithFilePath], [WithReader] or [WithBytes] selects the input.
// [WithSourceName] overrides the reported SourcePath, [WithMaxFileSize] caps the
// input size (10 MiB by default) and [WithLogger] enables debug logging.
//
// Files are read through an [afero.Fs], which defaults to the operating system
// filesystem. Tests and embedders can substitute an in-memory filesystem with
// [WithFS].
//
// # Logging
//
// The [Logger] interface is shared by the parser, schema and validator packages.
// It defaults to [NopLogger]; wrap a *slog.Logger with [NewSlogAdapter] to enable
// output.
//
// # Errors
//
// Syntax errors are returned as *wgerrors.ParseError carrying the line and column
// of the failure when they are known.
package parser
