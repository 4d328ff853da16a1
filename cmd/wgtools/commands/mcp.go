package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/wordgrain/wgtools/internal/mcpserver"
)

// HandleMCP runs the MCP server over stdin/stdout until ctx is cancelled or
// the client disconnects.
func HandleMCP(ctx context.Context, env *Env, args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	fs.Usage = func() {
		Writef(fs.Output(), "Usage: wgtools mcp\n\n")
		Writef(fs.Output(), "Serve the validate, diff, stats and describe_schema tools over the\n")
		Writef(fs.Output(), "Model Context Protocol on stdin/stdout.\n\n")
		Writef(fs.Output(), "Environment:\n")
		Writef(fs.Output(), "  WGTOOLS_CACHE_ENABLED         cache parsed documents (default true)\n")
		Writef(fs.Output(), "  WGTOOLS_CACHE_MAX_SIZE        maximum cached documents (default 32)\n")
		Writef(fs.Output(), "  WGTOOLS_CACHE_TTL             cache entry lifetime (default 15m)\n")
		Writef(fs.Output(), "  WGTOOLS_MAX_INLINE_SIZE       maximum inline content bytes (default 10485760)\n")
		Writef(fs.Output(), "  WGTOOLS_RESULT_LIMIT          default page size (default 100)\n")
		Writef(fs.Output(), "  WGTOOLS_MAX_LIMIT             maximum page size (default 1000)\n")
		Writef(fs.Output(), "  WGTOOLS_VALIDATE_NO_WARNINGS  omit warnings by default (default false)\n")
		Writef(fs.Output(), "  WGTOOLS_DIFF_ALIGN            default diff alignment (default identity)\n")
		Writef(fs.Output(), "  WGTOOLS_DIFF_NORMALIZED       match grains by normalized form (default false)\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}
	return mcpserver.Run(ctx)
}
