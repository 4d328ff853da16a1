package wgerrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrParse             = errors.New("parse error")
	ErrReference         = errors.New("reference error")
	ErrCircularReference = errors.New("circular reference")
	ErrSchema            = errors.New("schema error")
	ErrResourceLimit     = errors.New("resource limit exceeded")
	ErrConfig            = errors.New("configuration error")
)

// message builds "<head><where>: <detail>: <cause>", leaving out empty parts.
func message(head, where, detail string, cause error) string {
	var b strings.Builder
	b.WriteString(head)
	b.WriteString(where)
	if detail != "" {
		b.WriteString(": ")
		b.WriteString(detail)
	}
	if cause != nil {
		b.WriteString(": ")
		b.WriteString(cause.Error())
	}
	return b.String()
}

// ParseError reports a document that is not well-formed JSON or YAML.
type ParseError struct {
	// Path names the file or input the document came from
	Path string
	// Line and Column locate the failure; zero when unknown
	Line   int
	Column int
	// Message describes the failure
	Message string
	// Cause is the decoder error, if any
	Cause error
}

func (e *ParseError) Error() string {
	var where string
	if e.Path != "" {
		where = " in " + e.Path
	}
	switch {
	case e.Line > 0 && e.Column > 0:
		where += fmt.Sprintf(" at line %d, column %d", e.Line, e.Column)
	case e.Line > 0:
		where += fmt.Sprintf(" at line %d", e.Line)
	}
	return message(ErrParse.Error(), where, e.Message, e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// ReferenceError reports a $ref that could not be followed. A circular chain
// also matches ErrCircularReference.
type ReferenceError struct {
	// Ref is the reference that failed
	Ref string
	// Chain lists the refs followed before the failure, in order
	Chain      []string
	IsCircular bool
	Message    string
	Cause      error
}

func (e *ReferenceError) Error() string {
	head := ErrReference.Error()
	if e.IsCircular {
		head = ErrCircularReference.Error()
	}
	var where string
	if e.Ref != "" {
		where = ": " + e.Ref
	}
	return message(head, where, e.Message, e.Cause)
}

func (e *ReferenceError) Unwrap() error { return e.Cause }

func (e *ReferenceError) Is(target error) bool {
	return target == ErrReference || (e.IsCircular && target == ErrCircularReference)
}

// SchemaError reports a schema document that cannot be compiled.
type SchemaError struct {
	// Pointer locates the offending schema node; empty for the root
	Pointer string
	Message string
	Cause   error
}

func (e *SchemaError) Error() string {
	var where string
	if e.Pointer != "" {
		where = " at " + e.Pointer
	}
	return message(ErrSchema.Error(), where, e.Message, e.Cause)
}

func (e *SchemaError) Unwrap() error { return e.Cause }
func (e *SchemaError) Is(target error) bool { return target == ErrSchema }

// ResourceLimitError reports input that exceeded a configured bound such as
// "ref_depth", "nesting_depth" or "file_size".
type ResourceLimitError struct {
	ResourceType string
	Limit        int64
	// Actual is the observed value; zero when unknown
	Actual  int64
	Message string
}

func (e *ResourceLimitError) Error() string {
	var where string
	if e.ResourceType != "" {
		where = ": " + e.ResourceType
	}
	if e.Limit > 0 {
		if e.Actual > 0 {
			where += fmt.Sprintf(" (limit: %d, actual: %d)", e.Limit, e.Actual)
		} else {
			where += fmt.Sprintf(" (limit: %d)", e.Limit)
		}
	}
	return message(ErrResourceLimit.Error(), where, e.Message, nil)
}

func (e *ResourceLimitError) Unwrap() error { return nil }
func (e *ResourceLimitError) Is(target error) bool { return target == ErrResourceLimit }

// ConfigError reports a rejected option or setting.
type ConfigError struct {
	// Option names the option, e.g. "WithMaxDepth"
	Option string
	// Value is the rejected value, if any
	Value   any
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	var where string
	if e.Option != "" {
		where = ": " + e.Option
	}
	if e.Value != nil {
		where += fmt.Sprintf("=%v", e.Value)
	}
	return message(ErrConfig.Error(), where, e.Message, e.Cause)
}

func (e *ConfigError) Unwrap() error { return e.Cause }
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }
