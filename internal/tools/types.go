// Package tools provides shared types for the MCP tools served by git-sitemap.
package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/d-kuro/git-sitemap/internal/history"
	"github.com/d-kuro/git-sitemap/internal/logging"
	"github.com/d-kuro/git-sitemap/internal/security"
)

// Context contains common dependencies needed by tools.
type Context struct {
	Logger    *logging.Logger
	Validator security.Validator

	// Lookup overrides the git history lookup. Nil uses git.
	Lookup history.Lookup
}

// ServerTool pairs a tool schema with the function that registers its handler.
type ServerTool struct {
	Tool         *mcp.Tool
	RegisterFunc func(server *mcp.Server)
}
