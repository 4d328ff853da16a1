package commands

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/wordgrain/wgtools"
	"github.com/wordgrain/wgtools/differ"
	"github.com/wordgrain/wgtools/formatter"
	"github.com/wordgrain/wgtools/parser"
	"github.com/wordgrain/wgtools/schema"
	"github.com/wordgrain/wgtools/wordgrain"
)

// DiffFlags contains flags for the diff command
type DiffFlags struct {
	Align      string
	Normalized bool
	Format     string
	NoColor    bool
	Width      int
}

// SetupDiffFlags creates and configures a FlagSet for the diff command.
// Returns the FlagSet and a DiffFlags struct with bound flag variables.
func SetupDiffFlags() (*flag.FlagSet, *DiffFlags) {
	fs := flag.NewFlagSet("diff", flag.ContinueOnError)
	flags := &DiffFlags{}

	fs.StringVar(&flags.Align, "align", differ.AlignIdentity.String(), "array alignment: identity or lcs")
	fs.BoolVar(&flags.Normalized, "normalized", false, "match grains by their case-folded normalized form")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.NoColor, "no-color", false, "disable colored output")
	fs.IntVar(&flags.Width, "width", formatter.DefaultMaxValueLength, "truncate rendered values to this many characters")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: wgtools diff [flags] <source> <target>\n\n")
		Writef(fs.Output(), "Compare two WordGrain documents and report a structural delta.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nOutput Formats:\n")
		Writef(fs.Output(), "  text (default)  One line per change, colored by kind\n")
		Writef(fs.Output(), "  json            The delta in jsondiffpatch form with summary counts\n")
		Writef(fs.Output(), "  yaml            The same as json, in YAML\n")
		Writef(fs.Output(), "\nAlignment:\n")
		Writef(fs.Output(), "  identity (default)\n")
		Writef(fs.Output(), "    Grains are matched by word. Any grain whose index changed is reported as moved.\n\n")
		Writef(fs.Output(), "  lcs\n")
		Writef(fs.Output(), "    The longest common run of grains stays in place; only grains that left it are moved.\n")
		Writef(fs.Output(), "\nText Symbols:\n")
		Writef(fs.Output(), "  +  added     (green)\n")
		Writef(fs.Output(), "  -  deleted   (red)\n")
		Writef(fs.Output(), "  ~  modified  (yellow)\n")
		Writef(fs.Output(), "  ↔  moved     (blue)\n")
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  wgtools diff old.wg.json new.wg.json\n")
		Writef(fs.Output(), "  wgtools diff --align lcs --no-color old.wg.json new.wg.json\n")
		Writef(fs.Output(), "  wgtools diff --format json old.wg.json new.wg.json | jq '.summary'\n")
		Writef(fs.Output(), "\nExit Status:\n")
		Writef(fs.Output(), "  0    No differences found\n")
		Writef(fs.Output(), "  1    Differences found, or a document is invalid\n")
		Writef(fs.Output(), "\nNotes:\n")
		Writef(fs.Output(), "  - Both documents are validated first; invalid documents are not compared\n")
	}

	return fs, flags
}

// HandleDiff executes the diff command
func HandleDiff(env *Env, args []string) error {
	fs, flags := SetupDiffFlags()
	fs.SetOutput(env.Stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("diff command requires exactly two file paths")
	}
	sourcePath, targetPath := fs.Arg(0), fs.Arg(1)
	if sourcePath == StdinFilePath && targetPath == StdinFilePath {
		return fmt.Errorf("only one document can be read from stdin")
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	alignment, err := differ.ParseAlignment(flags.Align)
	if err != nil {
		return err
	}
	identity := differ.IdentityFunc(wordgrain.Identity)
	if flags.Normalized {
		identity = wordgrain.NormalizedIdentity
	}

	s, err := wordgrain.Schema()
	if err != nil {
		return err
	}
	source, err := env.loadValid(s, sourcePath)
	if err != nil {
		return err
	}
	target, err := env.loadValid(s, targetPath)
	if err != nil {
		return err
	}

	result, err := differ.DiffWithOptions(
		differ.WithSourceParsed(*source),
		differ.WithTargetParsed(*target),
		differ.WithAlignment(alignment),
		differ.WithIdentity(identity),
	)
	if err != nil {
		return fmt.Errorf("comparing documents: %w", err)
	}

	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		if err := OutputStructured(env.Stdout, result, flags.Format); err != nil {
			return err
		}
	} else {
		Writef(env.Stderr, "WordGrain Differ\n")
		Writef(env.Stderr, "================\n\n")
		Writef(env.Stderr, "wgtools version: %s\n", wgtools.Version())
		Writef(env.Stderr, "Source: %s\n", FormatDocPath(sourcePath))
		Writef(env.Stderr, "Target: %s\n", FormatDocPath(targetPath))
		Writef(env.Stderr, "Alignment: %s\n\n", alignment)

		renderDelta(env, result, newPalette(flags.NoColor), flags.Width)
	}

	if result.HasChanges {
		return ErrDifferent
	}
	return nil
}

// loadValid loads path and reports its validation errors when it is not a
// valid WordGrain document.
func (e *Env) loadValid(s *schema.Schema, path string) (*parser.ParseResult, error) {
	pr, result, err := e.validateDocument(s, path, false)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", FormatDocPath(path), err)
	}
	if !result.Valid {
		printIssues(e.Stderr, FormatDocPath(path), result.Errors)
		return nil, fmt.Errorf("%s is not a valid WordGrain document: %d error(s)", FormatDocPath(path), result.ErrorCount)
	}
	return pr, nil
}

func renderDelta(env *Env, result *differ.DiffResult, p palette, width int) {
	if !result.HasChanges {
		Writef(env.Stderr, "✓ No differences\n")
		return
	}
	for _, e := range formatter.Flatten(result.Delta) {
		line := strings.Repeat("  ", e.Depth) + e.Format(width)
		Writef(env.Stdout, "%s\n", p.paint(e.Kind, line))
	}
	s := result.Summary
	Writef(env.Stderr, "\n%d change(s): %d added, %d deleted, %d modified, %d moved\n",
		s.Total(), s.Added, s.Deleted, s.Modified, s.Moved)
}

// palette colors rendered lines by change kind.
type palette struct {
	added, deleted, modified, moved func(a ...any) string
}

func newPalette(noColor bool) palette {
	mk := func(attr color.Attribute) func(a ...any) string {
		c := color.New(attr)
		if noColor {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return palette{
		added:    mk(color.FgGreen),
		deleted:  mk(color.FgRed),
		modified: mk(color.FgYellow),
		moved:    mk(color.FgBlue),
	}
}

func (p palette) paint(k formatter.Kind, s string) string {
	switch k {
	case formatter.KindAdded:
		return p.added(s)
	case formatter.KindDeleted:
		return p.deleted(s)
	case formatter.KindModified:
		return p.modified(s)
	case formatter.KindMoved:
		return p.moved(s)
	default:
		return s
	}
}
