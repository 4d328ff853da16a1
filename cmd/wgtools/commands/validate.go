package commands

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/wordgrain/wgtools"
	"github.com/wordgrain/wgtools/parser"
)

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	Schema     string
	NoWarnings bool
	Quiet      bool
	Format     string
}

// SetupValidateFlags creates and configures a FlagSet for the validate command.
// Returns the FlagSet and a ValidateFlags struct with bound flag variables.
func SetupValidateFlags() (*flag.FlagSet, *ValidateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &ValidateFlags{}

	fs.StringVar(&flags.Schema, "schema", "", "validate against this JSON Schema file instead of the embedded WordGrain schema")
	fs.BoolVar(&flags.NoWarnings, "no-warnings", false, "suppress warning messages (only show errors)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only set the exit status, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only set the exit status, no diagnostic messages")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: wgtools validate [flags] <file|->\n\n")
		Writef(fs.Output(), "Validate a WordGrain document (JSON or YAML) against the WordGrain schema.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nOutput Formats:\n")
		Writef(fs.Output(), "  text (default)  Human-readable text output\n")
		Writef(fs.Output(), "  json            JSON format for programmatic processing\n")
		Writef(fs.Output(), "  yaml            YAML format for programmatic processing\n")
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  wgtools validate kendrick-lamar.wg.json\n")
		Writef(fs.Output(), "  wgtools validate --schema custom.schema.json vocab.yaml\n")
		Writef(fs.Output(), "  cat vocab.wg.json | wgtools validate -q -\n")
		Writef(fs.Output(), "  wgtools validate --format json vocab.wg.json | jq '.errors[].path'\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Document is valid\n")
		Writef(fs.Output(), "  1    Document is invalid, or could not be read\n")
	}

	return fs, flags
}

// HandleValidate executes the validate command
func HandleValidate(env *Env, args []string) error {
	fs, flags := SetupValidateFlags()
	fs.SetOutput(env.Stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("validate command requires exactly one file path or '-' for stdin")
	}
	docPath := fs.Arg(0)

	// Validate format flag early to fail fast before expensive operations
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	s, err := env.loadSchema(flags.Schema)
	if err != nil {
		return err
	}

	startTime := time.Now()
	pr, result, err := env.validateDocument(s, docPath, !flags.NoWarnings)
	if err != nil {
		return fmt.Errorf("validating %s: %w", FormatDocPath(docPath), err)
	}
	totalTime := time.Since(startTime)

	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		if err := OutputStructured(env.Stdout, result, flags.Format); err != nil {
			return err
		}
		if !result.Valid {
			return ErrInvalid
		}
		return nil
	}

	if !flags.Quiet {
		w := env.Stderr
		Writef(w, "WordGrain Validator\n")
		Writef(w, "===================\n\n")
		Writef(w, "wgtools version: %s\n", wgtools.Version())
		Writef(w, "Document: %s\n", FormatDocPath(docPath))
		Writef(w, "Schema: %s\n", result.SchemaID)
		if pr != nil {
			Writef(w, "Source Size: %s\n", parser.FormatBytes(pr.SourceSize))
			if n, ok := grainCount(pr); ok {
				Writef(w, "Grains: %s\n", humanize.Comma(int64(n)))
			}
			Writef(w, "Load Time: %v\n", pr.LoadTime)
		}
		Writef(w, "Total Time: %v\n\n", totalTime)

		printIssues(w, "Errors", result.Errors)
		printIssues(w, "Warnings", result.Warnings)

		if result.Valid {
			Writef(w, "✓ Validation passed")
			if result.WarningCount > 0 {
				Writef(w, " with %d warning(s)", result.WarningCount)
			}
			Writef(w, "\n")
		} else {
			Writef(w, "✗ Validation failed: %d error(s)", result.ErrorCount)
			if result.WarningCount > 0 {
				Writef(w, ", %d warning(s)", result.WarningCount)
			}
			Writef(w, "\n")
		}
	}

	if !result.Valid {
		return ErrInvalid
	}
	return nil
}

// grainCount returns the length of the document's grains array, if it has one.
func grainCount(pr *parser.ParseResult) (int, bool) {
	obj, ok := pr.Object()
	if !ok {
		return 0, false
	}
	v, ok := obj.Get("grains")
	if !ok {
		return 0, false
	}
	grains, ok := v.([]any)
	return len(grains), ok
}
