package validator

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"

	"github.com/wordgrain/wgtools/internal/options"
	"github.com/wordgrain/wgtools/parser"
	"github.com/wordgrain/wgtools/schema"
	"github.com/wordgrain/wgtools/wgerrors"
)

// Option is a function that configures a validation operation
type Option func(*validateConfig) error

// validateConfig holds configuration for a validation operation
type validateConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	data     []byte
	value    *any
	parsed   *parser.ParseResult

	// Schema source (exactly one must be set)
	schema    *schema.Schema
	rawSchema any

	// Configuration options
	formats         *FormatRegistry
	maxDepth        int
	includeWarnings bool
	cache           *schema.Cache
	fs              afero.Fs
	logger          parser.Logger
}

// ValidateWithOptions validates a document using functional options.
//
// Example:
//
//	result, err := validator.ValidateWithOptions(
//	    validator.WithFilePath("doc.wg.json"),
//	    validator.WithSchema(s),
//	)
//
// Errors are returned for option misuse, unreadable files and schemas that
// fail to compile. Invalid documents, including unparseable ones, are reported
// in the result.
func ValidateWithOptions(opts ...Option) (*ValidationResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("validator: invalid options: %w", err)
	}

	v := &Validator{
		Formats:         cfg.formats,
		MaxDepth:        cfg.maxDepth,
		IncludeWarnings: cfg.includeWarnings,
		Cache:           cfg.cache,
		Logger:          cfg.logger,
	}

	s := cfg.schema
	if s == nil {
		cache := cfg.cache
		if cache == nil {
			cache = schema.NewCache(schema.WithLogger(cfg.logger))
		}
		s, err = cache.Compile(cfg.rawSchema)
		if err != nil {
			return nil, fmt.Errorf("validator: %w", err)
		}
	}

	switch {
	case cfg.parsed != nil:
		return v.ValidateParsed(s, *cfg.parsed), nil
	case cfg.value != nil:
		return v.Validate(s, *cfg.value), nil
	case cfg.data != nil:
		return v.ValidateBytes(s, cfg.data), nil
	default:
		return v.validateFile(s, *cfg.filePath, cfg.fs)
	}
}

// validateFile loads path and validates it. Syntax errors become the single
// "Invalid JSON syntax" issue; read failures are returned.
func (v *Validator) validateFile(s *schema.Schema, path string, fs afero.Fs) (*ValidationResult, error) {
	pr, err := parser.ParseWithOptions(
		parser.WithFilePath(path),
		parser.WithFS(fs),
		parser.WithLogger(v.Logger),
	)
	if err != nil {
		if errors.Is(err, wgerrors.ErrParse) {
			result := v.syntaxResult(s, err)
			result.SourcePath = path
			return result, nil
		}
		return nil, fmt.Errorf("validator: %w", err)
	}
	return v.ValidateParsed(s, *pr), nil
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*validateConfig, error) {
	cfg := &validateConfig{
		includeWarnings: true,
		maxDepth:        DefaultMaxDepth,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"must specify an input source (use WithFilePath, WithData, WithValue, or WithParsed)",
		"must specify exactly one input source",
		cfg.filePath != nil, cfg.data != nil, cfg.value != nil, cfg.parsed != nil,
	); err != nil {
		return nil, err
	}
	if err := options.ValidateSingleInputSource(
		"must specify a schema (use WithSchema or WithRawSchema)",
		"must specify exactly one schema",
		cfg.schema != nil, cfg.rawSchema != nil,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithFilePath specifies a JSON or YAML file as the input source
func WithFilePath(path string) Option {
	return func(cfg *validateConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithData specifies raw JSON bytes as the input source
func WithData(data []byte) Option {
	return func(cfg *validateConfig) error {
		if data == nil {
			return &wgerrors.ConfigError{Option: "WithData", Message: "data cannot be nil"}
		}
		cfg.data = data
		return nil
	}
}

// WithValue specifies an already decoded value as the input source
func WithValue(value any) Option {
	return func(cfg *validateConfig) error {
		cfg.value = &value
		return nil
	}
}

// WithParsed specifies a parsed ParseResult as the input source
func WithParsed(result parser.ParseResult) Option {
	return func(cfg *validateConfig) error {
		cfg.parsed = &result
		return nil
	}
}

// WithSchema specifies a compiled schema
func WithSchema(s *schema.Schema) Option {
	return func(cfg *validateConfig) error {
		if s == nil {
			return &wgerrors.ConfigError{Option: "WithSchema", Message: "schema cannot be nil"}
		}
		cfg.schema = s
		return nil
	}
}

// WithRawSchema specifies a raw schema tree, compiled through the schema cache
func WithRawSchema(raw any) Option {
	return func(cfg *validateConfig) error {
		if raw == nil {
			return &wgerrors.ConfigError{Option: "WithRawSchema", Message: "schema cannot be nil"}
		}
		cfg.rawSchema = raw
		return nil
	}
}

// WithFormatRegistry sets the registry used for the format keyword
// Default: DefaultFormats()
func WithFormatRegistry(r *FormatRegistry) Option {
	return func(cfg *validateConfig) error {
		cfg.formats = r
		return nil
	}
}

// WithMaxDepth bounds instance nesting
// Default: 100
func WithMaxDepth(depth int) Option {
	return func(cfg *validateConfig) error {
		if depth <= 0 {
			return &wgerrors.ConfigError{Option: "WithMaxDepth", Value: depth, Message: "must be positive"}
		}
		cfg.maxDepth = depth
		return nil
	}
}

// WithIncludeWarnings enables or disables unresolved-reference warnings
// Default: true
func WithIncludeWarnings(enabled bool) Option {
	return func(cfg *validateConfig) error {
		cfg.includeWarnings = enabled
		return nil
	}
}

// WithCache sets the cache raw schemas are compiled through
func WithCache(c *schema.Cache) Option {
	return func(cfg *validateConfig) error {
		cfg.cache = c
		return nil
	}
}

// WithFS sets the filesystem used by WithFilePath
// Default: the operating system filesystem
func WithFS(fs afero.Fs) Option {
	return func(cfg *validateConfig) error {
		cfg.fs = fs
		return nil
	}
}

// WithLogger sets the structured logger
func WithLogger(l parser.Logger) Option {
	return func(cfg *validateConfig) error {
		cfg.logger = l
		return nil
	}
}
