// Package sitemaptool exposes sitemap generation as an MCP tool.
package sitemaptool

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/d-kuro/git-sitemap/internal/collector"
	"github.com/d-kuro/git-sitemap/internal/generate"
	"github.com/d-kuro/git-sitemap/internal/history"
	"github.com/d-kuro/git-sitemap/internal/logging"
	"github.com/d-kuro/git-sitemap/internal/prompts"
	"github.com/d-kuro/git-sitemap/internal/tools"
)

// ToolName is the name the tool is registered under.
const ToolName = "generate_sitemap"

// GenerateArgs represents the arguments for the generate_sitemap tool.
type GenerateArgs struct {
	Root           string  `json:"root"`
	BaseURL        string  `json:"base_url"`
	Output         *string `json:"output,omitempty"`
	RespectNoindex bool    `json:"respect_noindex,omitempty"`
	Timestamp      string  `json:"timestamp,omitempty"`
}

type handlerFunc = func(context.Context, *mcp.ServerSession, *mcp.CallToolParamsFor[GenerateArgs]) (*mcp.CallToolResultFor[any], error)

// CreateGenerateTool creates the generate_sitemap tool.
func CreateGenerateTool(ctx *tools.Context) *tools.ServerTool {
	handler := newHandler(ctx)

	tool := &mcp.Tool{
		Name:        ToolName,
		Description: prompts.Default().GenerateSitemap,
	}

	return &tools.ServerTool{
		Tool: tool,
		RegisterFunc: func(server *mcp.Server) {
			mcp.AddTool(server, tool, handler)
		},
	}
}

func newHandler(ctx *tools.Context) handlerFunc {
	return func(ctxReq context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[GenerateArgs]) (*mcp.CallToolResultFor[any], error) {
		args := params.Arguments

		logger := ctx.Logger
		if logger == nil {
			logger = logging.Discard()
		}
		logger = logger.WithComponent(ToolName)

		if args.Root == "" {
			return tools.ErrorResponse("root cannot be empty"), nil
		}
		root, err := absPath(args.Root)
		if err != nil {
			return tools.ErrorResponsef("failed to resolve root: %v", err), nil
		}
		root, err = ctx.Validator.SanitizePath(root)
		if err != nil {
			return tools.ErrorResponsef("invalid root: %v", err), nil
		}

		if err := ctx.Validator.ValidateURL(args.BaseURL); err != nil {
			return tools.ErrorResponsef("invalid base_url: %v", err), nil
		}

		timestamp := history.AuthorDate
		if args.Timestamp != "" {
			timestamp = history.TimestampSource(args.Timestamp)
			if !timestamp.Valid() {
				return tools.ErrorResponse(`timestamp must be "author" or "committer"`), nil
			}
		}

		cfg := collector.DefaultConfig()
		cfg.BaseURL = args.BaseURL
		cfg.RespectNoindex = args.RespectNoindex

		opts := generate.Options{
			Root:       root,
			Collector:  cfg,
			Lookup:     ctx.Lookup,
			Timestamp:  timestamp,
			GitTimeout: history.DefaultGitTimeout,
			Logger:     logger,
		}

		var buf bytes.Buffer
		if args.Output != nil && *args.Output != "" {
			output, err := absPath(*args.Output)
			if err != nil {
				return tools.ErrorResponsef("failed to resolve output: %v", err), nil
			}
			output, err = ctx.Validator.SanitizePath(output)
			if err != nil {
				return tools.ErrorResponsef("invalid output: %v", err), nil
			}
			opts.Output = output
		} else {
			opts.Writer = &buf
		}

		res, err := generate.Run(ctxReq, opts)
		if err != nil {
			return tools.ErrorResponse(err.Error()), nil
		}

		meta := map[string]any{
			"run_id": res.RunID,
			"urls":   len(res.URLs),
		}
		if res.Output != "" {
			meta["output"] = res.Output
			return tools.ResponseWithMeta(fmt.Sprintf("Wrote %d URL(s) to %s", len(res.URLs), res.Output), meta), nil
		}
		return tools.ResponseWithMeta(buf.String(), meta), nil
	}
}

// absPath resolves path against the working directory.
func absPath(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}
	return filepath.Join(cwd, path), nil
}
