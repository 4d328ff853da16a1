package mcpserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wordgrain/wgtools/parser"
	"github.com/wordgrain/wgtools/validator"
	"github.com/wordgrain/wgtools/wgerrors"
	"github.com/wordgrain/wgtools/wordgrain"
)

type validateInput struct {
	Document   documentInput `json:"document"              jsonschema:"The WordGrain document to validate"`
	NoWarnings *bool         `json:"no_warnings,omitempty" jsonschema:"Suppress warnings from output"`
	Offset     int           `json:"offset,omitempty"      jsonschema:"Skip the first N errors/warnings (for pagination)"`
	Limit      int           `json:"limit,omitempty"       jsonschema:"Maximum number of errors/warnings to return (default 100). Applied independently to errors and warnings arrays."`
}

type validateIssue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Keyword string `json:"keyword,omitempty"`
}

type validateOutput struct {
	Valid        bool            `json:"valid"`
	SchemaID     string          `json:"schema_id"`
	ErrorCount   int             `json:"error_count"`
	WarningCount int             `json:"warning_count"`
	Returned     int             `json:"returned"`
	Errors       []validateIssue `json:"errors,omitempty"`
	Warnings     []validateIssue `json:"warnings,omitempty"`
}

func handleValidate(_ context.Context, _ *mcp.CallToolRequest, input validateInput) (*mcp.CallToolResult, validateOutput, error) {
	noWarnings := cfg.ValidateNoWarnings
	if input.NoWarnings != nil {
		noWarnings = *input.NoWarnings
	}

	_, result, err := validateDocument(input.Document, !noWarnings)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	output := validateOutput{
		Valid:        result.Valid,
		SchemaID:     result.SchemaID,
		ErrorCount:   result.ErrorCount,
		WarningCount: result.WarningCount,
		Errors:       toIssues(result.Errors),
		Warnings:     toIssues(result.Warnings),
	}

	output.Errors = paginate(output.Errors, input.Offset, input.Limit)
	output.Warnings = paginate(output.Warnings, input.Offset, input.Limit)
	output.Returned = len(output.Errors) + len(output.Warnings)

	return nil, output, nil
}

func toIssues(list []validator.ValidationError) []validateIssue {
	out := makeSlice[validateIssue](len(list))
	for _, e := range list {
		out = append(out, validateIssue{Path: e.Path, Message: e.Message, Keyword: e.Keyword})
	}
	return out
}

// validateDocument loads d and validates it against the WordGrain schema.
// A document that fails to parse yields a result holding the single syntax
// error and a nil ParseResult.
func validateDocument(d documentInput, includeWarnings bool) (*parser.ParseResult, *validator.ValidationResult, error) {
	s, err := wordgrain.Schema()
	if err != nil {
		return nil, nil, err
	}
	opts := []validator.Option{
		validator.WithSchema(s),
		validator.WithIncludeWarnings(includeWarnings),
	}

	pr, err := d.resolve()
	switch {
	case err == nil:
		opts = append(opts, validator.WithParsed(*pr))
	case errors.Is(err, wgerrors.ErrParse) && d.Content != "":
		opts = append(opts, validator.WithData([]byte(d.Content)))
	case errors.Is(err, wgerrors.ErrParse):
		opts = append(opts, validator.WithFilePath(d.File))
	default:
		return nil, nil, err
	}

	result, err := validator.ValidateWithOptions(opts...)
	if err != nil {
		return nil, nil, err
	}
	return pr, result, nil
}
