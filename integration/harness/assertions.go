//go:build integration

package harness

import (
	"testing"

	"github.com/wordgrain/wgtools/formatter"
	"github.com/wordgrain/wgtools/validator"
)

// AssertValid asserts that a validation result indicates a valid document.
func AssertValid(t *testing.T, result *validator.ValidationResult) {
	t.Helper()
	if !result.Valid {
		t.Errorf("expected valid document, got %d errors:", result.ErrorCount)
		for _, e := range result.Errors {
			t.Errorf("  - %s", e.String())
		}
	}
}

// AssertInvalid asserts that a validation result indicates an invalid document.
func AssertInvalid(t *testing.T, result *validator.ValidationResult) {
	t.Helper()
	if result.Valid {
		t.Error("expected invalid document, but validation passed")
	}
}

// AssertErrorCount asserts the exact number of validation errors.
func AssertErrorCount(t *testing.T, result *validator.ValidationResult, expected int) {
	t.Helper()
	if result.ErrorCount != expected {
		t.Errorf("expected %d errors, got %d", expected, result.ErrorCount)
		for _, e := range result.Errors {
			t.Logf("  - %s", e.String())
		}
	}
}

// AssertHasErrorAt asserts that some error is reported at the JSON pointer path.
func AssertHasErrorAt(t *testing.T, result *validator.ValidationResult, path string) {
	t.Helper()
	for _, e := range result.Errors {
		if e.Path == path {
			return
		}
	}
	t.Errorf("expected an error at %s", path)
	for _, e := range result.Errors {
		t.Logf("  - %s", e.String())
	}
}

// AssertChangedPath asserts that a leaf change is reported at the dotted path.
func AssertChangedPath(t *testing.T, entries []formatter.Entry, path string) {
	t.Helper()
	for _, e := range entries {
		if e.Path == path && e.Kind.IsLeaf() {
			return
		}
	}
	t.Errorf("expected a change at %s", path)
	for _, e := range entries {
		if e.Kind.IsLeaf() {
			t.Logf("  - %s %s", e.Kind, e.Path)
		}
	}
}
