// Package issues provides a unified issue type for validation problems.
package issues

import (
	"fmt"

	"github.com/wordgrain/wgtools/internal/severity"
)

// Issue represents a single problem found during validation.
type Issue struct {
	// Path is the JSON pointer to the offending value (e.g., "/grains/2/pos").
	// The document root is "/".
	Path string `json:"path"`
	// Message is a human-readable description of the issue
	Message string `json:"message"`
	// Severity indicates the severity level of the issue
	Severity severity.Severity `json:"severity"`
	// Keyword is the schema keyword that failed (type, required, enum, ...)
	Keyword string `json:"keyword,omitempty"`
	// Value is the offending value (optional)
	Value any `json:"value,omitempty"`
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error or Critical severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError, severity.SeverityCritical:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	if i.Keyword != "" {
		return fmt.Sprintf("%s %s: %s (%s)", symbol, i.Path, i.Message, i.Keyword)
	}
	return fmt.Sprintf("%s %s: %s", symbol, i.Path, i.Message)
}

// IsError reports whether the issue affects validity.
func (i Issue) IsError() bool {
	return i.Severity == severity.SeverityError || i.Severity == severity.SeverityCritical
}

// Count returns the number of errors and warnings in list.
func Count(list []Issue) (errors, warnings int) {
	for _, i := range list {
		switch {
		case i.IsError():
			errors++
		case i.Severity == severity.SeverityWarning:
			warnings++
		}
	}
	return errors, warnings
}
