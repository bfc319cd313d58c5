// Package mcpserver implements an MCP (Model Context Protocol) server that
// exposes restitch capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/restitch/restitch"
)

const serverInstructions = `restitch MCP server — generates Go records and HTTP clients from a REST-API model, parses generated source back into the model, and merges fresh model fragments into existing source.

Configuration: All defaults are configurable via RESTITCH_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- RESTITCH_CACHE_FILE_TTL (default: 15m) — cache TTL for local model files
- RESTITCH_CACHE_URL_TTL (default: 5m) — cache TTL for URL-fetched models
- RESTITCH_CACHE_ENABLED (default: true) — disable model caching entirely
- RESTITCH_MAX_INLINE_SIZE (default: 10MiB) — inline content size limit
- RESTITCH_ALLOW_PRIVATE_IPS (default: false) — allow url inputs on private networks

Caching: Loaded model documents are cached per session. File entries use path+mtime as key (auto-invalidated on change). URL entries are cached with a shorter TTL. A background sweeper removes expired entries every 60s.`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		docCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "restitch", Version: restitch.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate",
		Description: "Generate Go source from a model document: a types file with one declaration per named schema, and a typed HTTP client with one method per operation. Provide the model via file, url, or content. With output_dir the files are written to disk and a manifest is returned; without it the file contents come back inline.",
	}, handleGenerate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_dto",
		Description: "Generate the Go declaration for one named schema from a model document. Returns the formatted source fragment. Use schema to pick the component schema by name.",
	}, handleGenerateDto)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "parse_source",
		Description: "Parse previously generated Go source back into the model. Returns recovered schemas (from record declarations) and endpoints (from tagged client methods). Hand-written declarations are skipped, not errors.",
	}, handleParseSource)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "merge_dto",
		Description: "Merge one named schema from a model document into existing Go source. Properties missing from the struct declaration are appended as optional fields; all other bytes are untouched. Provide the source inline or via source_file; with output (or source_file and write=true) the patched text is written to disk.",
	}, handleMergeDto)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "merge_api",
		Description: "Merge a model document's operations into an existing generated client. Missing interface entries and methods are appended; existing method bodies are untouched byte-for-byte. Provide the source inline or via source_file.",
	}, handleMergeAPI)
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
