package validator

import (
	"strings"
	"sync"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/grafana/regexp"
)

// FormatChecker reports whether value conforms to a format.
type FormatChecker func(value string) bool

// FormatRegistry maps format names to checkers. Names that are not registered
// fall back to the strfmt registry; names unknown to both always pass.
// It is safe for concurrent use.
type FormatRegistry struct {
	mu       sync.RWMutex
	checkers map[string]FormatChecker
	fallback strfmt.Registry
}

// NewFormatRegistry returns a registry with a strict RFC 3339 date-time checker
// backed by strfmt.Default.
func NewFormatRegistry() *FormatRegistry {
	r := &FormatRegistry{
		checkers: make(map[string]FormatChecker),
		fallback: strfmt.Default,
	}
	r.Register("date-time", IsDateTime)
	return r
}

// Register adds or replaces the checker for name.
func (r *FormatRegistry) Register(name string, fn FormatChecker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers[name] = fn
}

// Check validates value against the named format. known is false when no
// checker exists for name, in which case ok is always true.
func (r *FormatRegistry) Check(name, value string) (ok, known bool) {
	r.mu.RLock()
	fn, found := r.checkers[name]
	r.mu.RUnlock()
	if found {
		return fn(value), true
	}
	if r.fallback != nil && r.fallback.ContainsName(name) {
		return r.fallback.Validates(name, value), true
	}
	return true, false
}

var defaultFormats = sync.OnceValue(NewFormatRegistry)

// DefaultFormats returns the shared registry used when a Validator has none.
func DefaultFormats() *FormatRegistry {
	return defaultFormats()
}

var dateTimePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[Tt]\d{2}:\d{2}:\d{2}(\.\d+)?([Zz]|[+-]\d{2}:\d{2})$`)

// IsDateTime reports whether s is an RFC 3339 date-time: a full date, "T",
// a full time with optional fraction, and a "Z" or numeric offset.
// A leap second (":60") is accepted.
func IsDateTime(s string) bool {
	if !dateTimePattern.MatchString(s) {
		return false
	}
	s = strings.ToUpper(s)
	if s[17:19] == "60" {
		s = s[:17] + "59" + s[19:]
	}
	_, err := time.Parse(time.RFC3339Nano, s)
	return err == nil
}
