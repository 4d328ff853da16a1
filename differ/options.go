package differ

import (
	"fmt"

	"github.com/wordgrain/wgtools/internal/options"
	"github.com/wordgrain/wgtools/parser"
	"github.com/wordgrain/wgtools/wgerrors"
)

// Option is a function that configures a diff operation
type Option func(*diffConfig) error

// diffConfig holds configuration for a diff operation
type diffConfig struct {
	// Input sources (exactly one source and one target must be set)
	sourceValue  *any
	sourceParsed *parser.ParseResult
	targetValue  *any
	targetParsed *parser.ParseResult

	// Configuration options
	alignment Alignment
	identity  IdentityFunc
	maxDepth  int
	logger    parser.Logger
}

// DiffWithOptions compares two documents using functional options.
//
// Example:
//
//	result, err := differ.DiffWithOptions(
//	    differ.WithSourceParsed(*before),
//	    differ.WithTargetParsed(*after),
//	    differ.WithAlignment(differ.AlignLCS),
//	)
func DiffWithOptions(opts ...Option) (*DiffResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("differ: invalid options: %w", err)
	}

	d := &Differ{
		Alignment: cfg.alignment,
		Identity:  cfg.identity,
		MaxDepth:  cfg.maxDepth,
		Logger:    cfg.logger,
	}

	source := parser.ParseResult{}
	if cfg.sourceParsed != nil {
		source = *cfg.sourceParsed
	} else {
		source.Data = *cfg.sourceValue
	}
	target := parser.ParseResult{}
	if cfg.targetParsed != nil {
		target = *cfg.targetParsed
	} else {
		target.Data = *cfg.targetValue
	}

	return d.DiffParsed(source, target)
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*diffConfig, error) {
	cfg := &diffConfig{
		alignment: AlignIdentity,
		identity:  DefaultIdentity,
		maxDepth:  DefaultMaxDepth,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"must specify a source (use WithSourceValue or WithSourceParsed)",
		"must specify exactly one source",
		cfg.sourceValue != nil, cfg.sourceParsed != nil,
	); err != nil {
		return nil, err
	}
	if err := options.ValidateSingleInputSource(
		"must specify a target (use WithTargetValue or WithTargetParsed)",
		"must specify exactly one target",
		cfg.targetValue != nil, cfg.targetParsed != nil,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithSourceValue specifies a decoded value as the old document
func WithSourceValue(v any) Option {
	return func(cfg *diffConfig) error {
		cfg.sourceValue = &v
		return nil
	}
}

// WithSourceParsed specifies a parsed ParseResult as the old document
func WithSourceParsed(result parser.ParseResult) Option {
	return func(cfg *diffConfig) error {
		cfg.sourceParsed = &result
		return nil
	}
}

// WithTargetValue specifies a decoded value as the new document
func WithTargetValue(v any) Option {
	return func(cfg *diffConfig) error {
		cfg.targetValue = &v
		return nil
	}
}

// WithTargetParsed specifies a parsed ParseResult as the new document
func WithTargetParsed(result parser.ParseResult) Option {
	return func(cfg *diffConfig) error {
		cfg.targetParsed = &result
		return nil
	}
}

// WithAlignment sets the array pairing strategy
// Default: AlignIdentity
func WithAlignment(a Alignment) Option {
	return func(cfg *diffConfig) error {
		if a != AlignIdentity && a != AlignLCS {
			return &wgerrors.ConfigError{Option: "WithAlignment", Value: int(a), Message: "unknown alignment"}
		}
		cfg.alignment = a
		return nil
	}
}

// WithIdentity sets the function that keys array elements
// Default: DefaultIdentity
func WithIdentity(fn IdentityFunc) Option {
	return func(cfg *diffConfig) error {
		if fn == nil {
			return &wgerrors.ConfigError{Option: "WithIdentity", Message: "identity function cannot be nil"}
		}
		cfg.identity = fn
		return nil
	}
}

// WithMaxDepth bounds nesting
// Default: 1000
func WithMaxDepth(depth int) Option {
	return func(cfg *diffConfig) error {
		if depth <= 0 {
			return &wgerrors.ConfigError{Option: "WithMaxDepth", Value: depth, Message: "must be positive"}
		}
		cfg.maxDepth = depth
		return nil
	}
}

// WithLogger sets the structured logger
func WithLogger(l parser.Logger) Option {
	return func(cfg *diffConfig) error {
		cfg.logger = l
		return nil
	}
}
