package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/d-kuro/git-sitemap/internal/config"
	"github.com/d-kuro/git-sitemap/internal/logging"
	"github.com/d-kuro/git-sitemap/internal/server"
	"github.com/d-kuro/git-sitemap/pkg/version"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdio",
		Long:  `Serve starts a Model Context Protocol server on stdin/stdout that exposes the generate_sitemap tool.`,
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	v := config.New()
	if flag := cmd.Flags().Lookup(flagLogLevel); flag != nil {
		if err := v.BindPFlag(config.KeyLogLevel, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", flagLogLevel, err)
		}
	}

	// Logs go to stderr; stdout carries the protocol.
	logger := logging.NewLoggerWithWriter(cmd.ErrOrStderr(), v.GetString(config.KeyLogLevel))

	srv, err := server.New(&server.Options{Logger: logger})
	if err != nil {
		logger.Error("Failed to create server", slog.Any("error", err))
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("git-sitemap MCP server starting",
		slog.String("version", version.GetVersion().Version),
		slog.Int("tools_available", srv.GetRegistry().Count()))

	if err := srv.Serve(ctx, mcp.NewStdioTransport()); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Server error", slog.Any("error", err))
		return err
	}

	logger.Info("git-sitemap MCP server stopped")
	return nil
}
