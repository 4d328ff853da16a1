package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/wordgrain/wgtools"
	"github.com/wordgrain/wgtools/cmd/wgtools/commands"
)

// commandNames lists every subcommand, in the order suggestions prefer them.
var commandNames = []string{"validate", "diff", "stats", "schema", "mcp", "version", "help"}

func main() {
	os.Exit(run(os.Args[1:], commands.DefaultEnv()))
}

func run(args []string, env *commands.Env) int {
	if len(args) < 1 {
		printUsage(env)
		return 1
	}

	command, rest := args[0], args[1:]
	var err error
	switch command {
	case "version", "-v", "--version":
		commands.Writef(env.Stdout, "wgtools v%s\n", wgtools.Version())
		if len(rest) > 0 && (rest[0] == "-verbose" || rest[0] == "--verbose") {
			commands.Writef(env.Stdout, "%s", wgtools.BuildInfo())
		}
		return 0
	case "help", "-h", "--help":
		printUsage(env)
		return 0
	case "validate":
		err = commands.HandleValidate(env, rest)
	case "diff":
		err = commands.HandleDiff(env, rest)
	case "stats":
		err = commands.HandleStats(env, rest)
	case "schema":
		err = commands.HandleSchema(env, rest)
	case "mcp":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		err = commands.HandleMCP(ctx, env, rest)
		stop()
	default:
		commands.Writef(env.Stderr, "Unknown command: %s\n", command)
		if s := suggestCommand(command); s != "" {
			commands.Writef(env.Stderr, "Did you mean: %s?\n", s)
		}
		commands.Writef(env.Stderr, "\n")
		printUsage(env)
		return 1
	}
	return exitCode(env, err)
}

// exitCode maps a command error to the process exit status. Invalid
// documents and found differences have already been reported by the command.
func exitCode(env *commands.Env, err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, commands.ErrInvalid), errors.Is(err, commands.ErrDifferent):
		return 1
	default:
		commands.Writef(env.Stderr, "Error: %v\n", err)
		return 1
	}
}

func printUsage(env *commands.Env) {
	commands.Writef(env.Stderr, `wgtools - WordGrain vocabulary tools

Usage:
  wgtools <command> [options]

Commands:
  validate    Validate a WordGrain document against the schema
  diff        Compare two WordGrain documents
  stats       Summarize a document, or the words two documents share
  schema      Describe the definitions of the WordGrain schema
  mcp         Serve the tools over the Model Context Protocol (stdio)
  version     Show version information (--verbose for build details)
  help        Show this help message

Run 'wgtools <command> --help' for more information on a command.

Examples:
  wgtools validate kendrick-lamar.wg.json
  wgtools diff old.wg.json new.wg.json
  wgtools stats kendrick-lamar.wg.json j-cole.wg.json
  wgtools schema --definition Grain
`)
}

// suggestCommand returns the closest command name within edit distance 2 of
// input, or "" when none is that close.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := levenshtein(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
