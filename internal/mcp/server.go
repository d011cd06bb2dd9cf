// Package mcp exposes the perception-action core over the Model Context
// Protocol so external agents can capture the screen and dispatch
// actions without running the built-in loop.
package mcp

import (
	"context"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/deskloop/internal/capture"
	"github.com/1broseidon/deskloop/internal/config"
	"github.com/1broseidon/deskloop/internal/dispatch"
)

const (
	ServerName    = "deskloop"
	ServerVersion = "0.1.0"
)

// Server is the MCP server for desktop perception and action dispatch.
type Server struct {
	mcpServer  *mcpsdk.Server
	config     *config.Config
	renderer   *capture.Renderer
	dispatcher *dispatch.Dispatcher
	logger     *slog.Logger
}

// NewServer creates an MCP server on top of an already wired renderer
// and dispatcher.
func NewServer(cfg *config.Config, renderer *capture.Renderer, dispatcher *dispatch.Dispatcher, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		config:     cfg,
		renderer:   renderer,
		dispatcher: dispatcher,
		logger:     logger,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "capture_screen",
		Description: "Capture the desktop (or the persistent sandbox canvas) as a base64 PNG, optionally resized and annotated with markers for a list of actions. Coordinates in actions are integers in 0..1000 relative to the frame.",
	}, s.handleCaptureScreen)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "dispatch_actions",
		Description: "Parse action lines out of model text (honoring an optional ACTIONS section), execute the recognized ones, and return the executed/noted split plus an annotated screenshot. In sandbox mode drag strokes draw onto a persistent canvas instead of moving the pointer.",
	}, s.handleDispatchActions)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "reset_sandbox",
		Description: "Reinitialize the persistent sandbox canvas to black at the given dimensions (default: screen size). Returns the canvas file path.",
	}, s.handleResetSandbox)
}
