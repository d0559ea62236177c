// Package server implements the MCP server that exposes sitemap generation.
package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/d-kuro/git-sitemap/internal/logging"
	"github.com/d-kuro/git-sitemap/internal/security"
	"github.com/d-kuro/git-sitemap/internal/tools"
	"github.com/d-kuro/git-sitemap/internal/tools/sitemaptool"
	"github.com/d-kuro/git-sitemap/pkg/version"
)

// Server represents the git-sitemap MCP server.
type Server struct {
	mcpServer *mcp.Server
	registry  *tools.Registry
	logger    *logging.Logger
	validator security.Validator
}

// Options configures the server instance.
type Options struct {
	Logger    *logging.Logger
	Validator security.Validator
}

// New creates a new MCP server with the given options.
func New(opts *Options) (*Server, error) {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewLogger("info")
	}
	if opts.Validator == nil {
		opts.Validator = security.NewDefaultValidator()
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "git-sitemap",
		Version: version.GetVersion().Version,
	}, nil)

	server := &Server{
		mcpServer: mcpServer,
		registry:  tools.NewRegistry(),
		logger:    opts.Logger,
		validator: opts.Validator,
	}

	if err := server.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return server, nil
}

// GetRegistry returns the tool registry.
func (s *Server) GetRegistry() *tools.Registry {
	return s.registry
}

// registerTools registers all tools with the server.
func (s *Server) registerTools() error {
	toolCtx := &tools.Context{
		Logger:    s.logger,
		Validator: s.validator,
	}

	if err := s.registry.Register(sitemaptool.CreateSitemapTools(toolCtx)...); err != nil {
		return err
	}
	s.registry.Apply(s.mcpServer)

	s.logger.Debug("Registered tools",
		slog.Int("count", s.registry.Count()),
		slog.Any("tools", s.registry.List()),
	)

	return nil
}

// Serve runs the MCP server with the specified transport.
// It connects the MCP server to the transport and waits for either
// the session to complete or the context to be cancelled.
func (s *Server) Serve(ctx context.Context, transport mcp.Transport) error {
	s.logger.Info("Starting MCP server transport",
		slog.String("version", version.GetVersion().Version),
		slog.String("transport", fmt.Sprintf("%T", transport)),
	)

	session, err := s.mcpServer.Connect(ctx, transport)
	if err != nil {
		return fmt.Errorf("failed to connect MCP server: %w", err)
	}

	sessionDone := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("MCP session goroutine panicked",
					slog.Any("panic", r))
				sessionDone <- fmt.Errorf("session panicked: %v", r)
			}
		}()
		sessionDone <- session.Wait()
	}()

	select {
	case err := <-sessionDone:
		s.logger.Info("MCP session finished")
		return err
	case <-ctx.Done():
		s.logger.Info("MCP server shutting down due to context cancellation")
		return ctx.Err()
	}
}
