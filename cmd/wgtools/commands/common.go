// Package commands provides CLI command handlers for wgtools.
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"go.yaml.in/yaml/v4"

	"github.com/wordgrain/wgtools/parser"
	"github.com/wordgrain/wgtools/schema"
	"github.com/wordgrain/wgtools/validator"
	"github.com/wordgrain/wgtools/wgerrors"
	"github.com/wordgrain/wgtools/wordgrain"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

var (
	// ErrInvalid is returned after a failed validation has been reported.
	// The caller should exit with status 1 without printing anything more.
	ErrInvalid = errors.New("commands: document is invalid")
	// ErrDifferent is returned by diff when the documents differ.
	ErrDifferent = errors.New("commands: documents differ")
)

// Env holds the streams and filesystem a command works with.
type Env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	FS     afero.Fs
}

// DefaultEnv returns an Env bound to the process streams and the OS filesystem.
func DefaultEnv() *Env {
	return &Env{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		FS:     afero.NewOsFs(),
	}
}

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured writes data to w in the specified format (json or yaml).
func OutputStructured(w io.Writer, data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = marshalYAML(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	Writef(w, "%s\n", bytes)
	return nil
}

// marshalYAML renders data as YAML through its JSON form, so custom
// MarshalJSON methods are honoured and object keys keep their order.
func marshalYAML(data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	v, err := parser.DecodeJSON(raw)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(v)
}

// FormatDocPath returns a display-friendly path for a document.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatDocPath(path string) string {
	if path == StdinFilePath {
		return "<stdin>"
	}
	return path
}

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// readInput loads the document at path, or stdin when path is "-". The raw
// stdin bytes are returned too so syntax errors can be reported against them.
func (e *Env) readInput(path string) (*parser.ParseResult, []byte, error) {
	if path != StdinFilePath {
		pr, err := parser.ParseWithOptions(
			parser.WithFilePath(path),
			parser.WithFS(e.FS),
		)
		return pr, nil, err
	}
	data, err := io.ReadAll(e.Stdin)
	if err != nil {
		return nil, nil, fmt.Errorf("reading stdin: %w", err)
	}
	pr, err := parser.ParseWithOptions(
		parser.WithBytes(data),
		parser.WithSourceName(FormatDocPath(path)),
	)
	return pr, data, err
}

// validateDocument loads path and validates it against s. A document that
// cannot be parsed yields a result holding the single syntax error and a nil
// ParseResult; read failures are returned as errors.
func (e *Env) validateDocument(s *schema.Schema, path string, includeWarnings bool) (*parser.ParseResult, *validator.ValidationResult, error) {
	opts := []validator.Option{
		validator.WithSchema(s),
		validator.WithIncludeWarnings(includeWarnings),
	}

	pr, stdin, err := e.readInput(path)
	switch {
	case err == nil:
		opts = append(opts, validator.WithParsed(*pr))
	case !errors.Is(err, wgerrors.ErrParse):
		return nil, nil, err
	case stdin != nil:
		opts = append(opts, validator.WithData(stdin))
	default:
		opts = append(opts, validator.WithFilePath(path), validator.WithFS(e.FS))
	}

	result, err := validator.ValidateWithOptions(opts...)
	if err != nil {
		return nil, nil, err
	}
	if result.SourcePath == "" {
		result.SourcePath = FormatDocPath(path)
	}
	return pr, result, nil
}

// loadSchema compiles the schema at path, or returns the embedded WordGrain
// schema when path is empty.
func (e *Env) loadSchema(path string) (*schema.Schema, error) {
	if path == "" {
		return wordgrain.Schema()
	}
	pr, _, err := e.readInput(path)
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}
	s, err := schema.Compile(pr.Data, schema.WithLogger(parser.NewSlogAdapter(nil)))
	if err != nil {
		return nil, fmt.Errorf("compiling schema %s: %w", path, err)
	}
	return s, nil
}

// printIssues writes each issue on its own indented line.
func printIssues(w io.Writer, title string, list []validator.ValidationError) {
	if len(list) == 0 {
		return
	}
	Writef(w, "%s (%d):\n", title, len(list))
	for _, i := range list {
		Writef(w, "  %s\n", i.String())
	}
	Writef(w, "\n")
}
