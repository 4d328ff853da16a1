// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes wgtools capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"

	"github.com/grafana/regexp"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wordgrain/wgtools"
)

const serverInstructions = `wgtools MCP server: validates, diffs, summarizes and describes WordGrain vocabulary documents.

Every tool takes documents as {"file": "<path>"} or {"content": "<inline JSON or YAML>"}.

Configuration: defaults are configurable via WGTOOLS_* environment variables set in your MCP client config.

Key settings:
- WGTOOLS_CACHE_ENABLED (default: true) - cache loaded documents per session
- WGTOOLS_CACHE_MAX_SIZE (default: 32) - maximum number of cached documents
- WGTOOLS_CACHE_TTL (default: 15m) - cache entry lifetime
- WGTOOLS_MAX_INLINE_SIZE (default: 10485760) - maximum inline content size in bytes
- WGTOOLS_RESULT_LIMIT (default: 100) - default page size for errors and changes
- WGTOOLS_MAX_LIMIT (default: 1000) - upper bound for any requested page size
- WGTOOLS_VALIDATE_NO_WARNINGS (default: false) - suppress warnings by default
- WGTOOLS_DIFF_ALIGN (default: identity) - array alignment for diff (identity or lcs)
- WGTOOLS_DIFF_NORMALIZED (default: false) - match grains by folded normalized form

Caching: file entries are keyed by path, modification time and size, so edits are picked up. Inline content is keyed by its hash.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "wgtools", Version: wgtools.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Validate a WordGrain document against the embedded WordGrain JSON Schema. Returns every violation with its JSON pointer path, message and failing keyword, in document order. Use offset/limit to paginate through long error lists. Unparseable input is reported as a single error at \"/\".",
	}, handleValidate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "diff",
		Description: "Compare two WordGrain documents and report a structural delta. Grains are matched by word, so reordered grains are reported as moves rather than edits. Both documents are validated first; invalid documents are rejected. Use align=lcs for purely positional alignment and normalized=true to match grains by their case-folded normalized form. Returns summary counts, a flat change list and the raw delta.",
	}, handleDiff)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "stats",
		Description: "Summarize a WordGrain document: grain count, average frequency, average tf-idf and sentiment distribution. When compare is given, also lists the words both documents share, ranked by combined frequency.",
	}, handleStats)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "describe_schema",
		Description: "Describe the WordGrain schema: one property table per definition (Meta, Grain, Context, Collocation) with types, required flags, constraints and descriptions. Use definition to select a single table.",
	}, handleDescribeSchema)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ResultLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ResultLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
