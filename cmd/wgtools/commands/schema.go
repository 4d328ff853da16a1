package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/wordgrain/wgtools/schema"
)

// SchemaFlags contains flags for the schema command
type SchemaFlags struct {
	Schema     string
	Definition string
	Format     string
}

// SetupSchemaFlags creates and configures a FlagSet for the schema command.
// Returns the FlagSet and a SchemaFlags struct with bound flag variables.
func SetupSchemaFlags() (*flag.FlagSet, *SchemaFlags) {
	fs := flag.NewFlagSet("schema", flag.ContinueOnError)
	flags := &SchemaFlags{}

	fs.StringVar(&flags.Schema, "schema", "", "describe this JSON Schema file instead of the embedded WordGrain schema")
	fs.StringVar(&flags.Definition, "definition", "", "only describe the named definition, e.g. Grain")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: wgtools schema [flags]\n\n")
		Writef(fs.Output(), "Print a property table for each definition of the schema.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  wgtools schema\n")
		Writef(fs.Output(), "  wgtools schema --definition Grain\n")
		Writef(fs.Output(), "  wgtools schema --schema custom.schema.json --format yaml\n")
	}

	return fs, flags
}

// HandleSchema executes the schema command
func HandleSchema(env *Env, args []string) error {
	fs, flags := SetupSchemaFlags()
	fs.SetOutput(env.Stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("schema command takes no arguments")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	s, err := env.loadSchema(flags.Schema)
	if err != nil {
		return err
	}
	defs := schema.Describe(s)
	if flags.Definition != "" {
		defs, err = selectDefinition(defs, flags.Definition)
		if err != nil {
			return err
		}
	}

	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		return OutputStructured(env.Stdout, defs, flags.Format)
	}
	for i, d := range defs {
		if i > 0 {
			Writef(env.Stdout, "\n")
		}
		if err := renderDefinition(env.Stdout, d); err != nil {
			return err
		}
	}
	return nil
}

func selectDefinition(defs []schema.Definition, name string) ([]schema.Definition, error) {
	names := make([]string, 0, len(defs))
	for _, d := range defs {
		if d.Name == name {
			return []schema.Definition{d}, nil
		}
		names = append(names, d.Name)
	}
	return nil, fmt.Errorf("unknown definition %q; valid values: %s", name, strings.Join(names, ", "))
}

func renderDefinition(w io.Writer, d schema.Definition) error {
	Writef(w, "%s\n", d.Name)
	if d.Description != "" {
		Writef(w, "%s\n", d.Description)
	}
	table := tablewriter.NewWriter(w)
	table.Header("Property", "Type", "Required", "Constraints", "Description")
	for _, r := range d.Rows {
		required := ""
		if r.Required {
			required = "yes"
		}
		if err := table.Append([]string{r.Name, r.Type, required, r.Constraints, r.Description}); err != nil {
			return err
		}
	}
	return table.Render()
}
