package validator

import (
	"fmt"
	"time"

	"github.com/wordgrain/wgtools/internal/issues"
	"github.com/wordgrain/wgtools/internal/pathutil"
	"github.com/wordgrain/wgtools/internal/severity"
	"github.com/wordgrain/wgtools/parser"
	"github.com/wordgrain/wgtools/schema"
)

// Severity indicates the severity level of a validation issue
type Severity = severity.Severity

const (
	// SeverityError indicates a constraint violation that makes the document invalid
	SeverityError = severity.SeverityError
	// SeverityWarning indicates a problem that does not affect validity
	SeverityWarning = severity.SeverityWarning
	// SeverityInfo indicates informational messages
	SeverityInfo = severity.SeverityInfo
	// SeverityCritical indicates input that could not be validated at all
	SeverityCritical = severity.SeverityCritical
)

const (
	// DefaultMaxDepth is the deepest instance nesting the validator descends into.
	DefaultMaxDepth = 100

	// InvalidJSONMessage is the message of the single error reported for unparseable input.
	InvalidJSONMessage = "Invalid JSON syntax"
)

// ValidationError represents a single validation issue
type ValidationError = issues.Issue

// ValidationResult contains the results of validating a value against a schema.
type ValidationResult struct {
	// Valid is true if no errors were found (warnings are allowed)
	Valid bool `json:"valid"`
	// Errors contains all validation errors; empty when Valid
	Errors []ValidationError `json:"errors"`
	// Warnings contains issues that do not affect validity
	Warnings []ValidationError `json:"warnings,omitempty"`
	// ErrorCount is the total number of errors
	ErrorCount int `json:"error_count"`
	// WarningCount is the total number of warnings
	WarningCount int `json:"warning_count,omitempty"`
	// SchemaID is the $id of the schema used
	SchemaID string `json:"schema_id,omitempty"`
	// SourcePath is the path of the validated document, when it was loaded from one
	SourcePath string `json:"source_path,omitempty"`
	// SourceFormat is the format of the validated document
	SourceFormat parser.SourceFormat `json:"source_format,omitempty"`
	// SourceSize is the size of the source data in bytes
	SourceSize int64 `json:"source_size,omitempty"`
	// LoadTime is the time taken to load the source data
	LoadTime time.Duration `json:"-"`
}

// Validator validates values against compiled schemas. A Validator holds no
// per-call state and may be used from several goroutines.
type Validator struct {
	// Formats checks the format keyword. If nil, DefaultFormats() is used.
	Formats *FormatRegistry
	// MaxDepth bounds instance nesting. Default: 100
	MaxDepth int
	// IncludeWarnings determines whether unresolved-reference warnings are reported.
	IncludeWarnings bool
	// Cache compiles raw schemas for ValidateRaw. If nil, a private cache is created by New.
	Cache *schema.Cache
	// Logger is the structured logger for debug output
	Logger parser.Logger
}

// New creates a new Validator instance with default settings
func New() *Validator {
	return &Validator{
		Formats:         DefaultFormats(),
		MaxDepth:        DefaultMaxDepth,
		IncludeWarnings: true,
		Cache:           schema.NewCache(),
	}
}

func (v *Validator) formats() *FormatRegistry {
	if v.Formats != nil {
		return v.Formats
	}
	return DefaultFormats()
}

func (v *Validator) maxDepth() int {
	if v.MaxDepth > 0 {
		return v.MaxDepth
	}
	return DefaultMaxDepth
}

// Validate checks value against s. Native Go values are normalized first; a
// value with no JSON form is reported as a single critical error at "/".
func (v *Validator) Validate(s *schema.Schema, value any) *ValidationResult {
	result := newResult(s)
	normalized, err := parser.Normalize(value)
	if err != nil {
		v.addError(result, "/", "value cannot be represented as JSON",
			withKeyword("value"), withSeverity(SeverityCritical))
		return result.finish()
	}

	w := &walker{
		v:      v,
		result: result,
		path:   pathutil.Get(),
		warned: make(map[string]bool),
	}
	defer pathutil.Put(w.path)
	w.validate(s, normalized)

	parser.OrNop(v.Logger).Debug("validated value",
		"schema", result.SchemaID, "errors", len(result.Errors), "warnings", len(result.Warnings))
	return result.finish()
}

// ValidateBytes parses data as JSON and validates it. Unparseable input yields
// a single error at "/" with the message "Invalid JSON syntax".
func (v *Validator) ValidateBytes(s *schema.Schema, data []byte) *ValidationResult {
	value, err := parser.DecodeJSON(data)
	if err != nil {
		return v.syntaxResult(s, err)
	}
	result := v.Validate(s, value)
	result.SourceFormat = parser.SourceFormatJSON
	result.SourceSize = int64(len(data))
	return result
}

// ValidateParsed validates the document held by a ParseResult.
func (v *Validator) ValidateParsed(s *schema.Schema, pr parser.ParseResult) *ValidationResult {
	result := v.Validate(s, pr.Data)
	result.SourcePath = pr.SourcePath
	result.SourceFormat = pr.SourceFormat
	result.SourceSize = pr.SourceSize
	result.LoadTime = pr.LoadTime
	return result
}

// ValidateRaw compiles rawSchema through the validator's cache and validates
// value against it. Only schema compilation failures are returned as errors.
func (v *Validator) ValidateRaw(rawSchema, value any) (*ValidationResult, error) {
	cache := v.Cache
	if cache == nil {
		cache = schema.NewCache(schema.WithLogger(v.Logger))
	}
	s, err := cache.Compile(rawSchema)
	if err != nil {
		return nil, fmt.Errorf("validator: %w", err)
	}
	return v.Validate(s, value), nil
}

func (v *Validator) syntaxResult(s *schema.Schema, cause error) *ValidationResult {
	parser.OrNop(v.Logger).Debug("input is not valid JSON", "error", cause)
	result := newResult(s)
	v.addError(result, "/", InvalidJSONMessage, withKeyword("syntax"))
	return result.finish()
}

func newResult(s *schema.Schema) *ValidationResult {
	r := &ValidationResult{Errors: make([]ValidationError, 0)}
	if s != nil {
		r.SchemaID = s.ID
	}
	return r
}

func (r *ValidationResult) finish() *ValidationResult {
	r.ErrorCount = len(r.Errors)
	r.WarningCount = len(r.Warnings)
	r.Valid = r.ErrorCount == 0
	return r
}

// addError appends a validation error.
func (v *Validator) addError(result *ValidationResult, path, message string, opts ...func(*ValidationError)) {
	err := ValidationError{
		Path:     path,
		Message:  message,
		Severity: SeverityError,
	}
	for _, opt := range opts {
		opt(&err)
	}
	result.Errors = append(result.Errors, err)
}

// addWarning appends a validation warning.
func (v *Validator) addWarning(result *ValidationResult, path, message string, opts ...func(*ValidationError)) {
	if !v.IncludeWarnings {
		return
	}
	warn := ValidationError{
		Path:     path,
		Message:  message,
		Severity: SeverityWarning,
	}
	for _, opt := range opts {
		opt(&warn)
	}
	result.Warnings = append(result.Warnings, warn)
}

// withKeyword sets the Keyword on a ValidationError.
func withKeyword(keyword string) func(*ValidationError) {
	return func(e *ValidationError) { e.Keyword = keyword }
}

// withValue sets the Value on a ValidationError.
func withValue(value any) func(*ValidationError) {
	return func(e *ValidationError) { e.Value = value }
}

func withSeverity(s Severity) func(*ValidationError) {
	return func(e *ValidationError) { e.Severity = s }
}
