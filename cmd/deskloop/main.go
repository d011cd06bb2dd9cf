package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/1broseidon/deskloop/internal/capture"
	"github.com/1broseidon/deskloop/internal/config"
	"github.com/1broseidon/deskloop/internal/dispatch"
	"github.com/1broseidon/deskloop/internal/input"
	"github.com/1broseidon/deskloop/internal/runtimepath"
	"github.com/1broseidon/deskloop/internal/sandbox"
	"github.com/1broseidon/deskloop/internal/x11"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runRun(os.Args[2:]))
	case "capture":
		os.Exit(runCapture(os.Args[2:]))
	case "dispatch":
		os.Exit(runDispatch(os.Args[2:]))
	case "panel":
		os.Exit(runPanel(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: deskloop <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run                 Run the perception-action loop (foreground)")
	fmt.Fprintln(w, "  capture             One-shot screenshot: JSON request on stdin, JSON on stdout")
	fmt.Fprintln(w, "  dispatch            One-shot action dispatch: JSON request on stdin, JSON on stdout")
	fmt.Fprintln(w, "  panel               Start the intercept debug panel")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'deskloop <command> --help' for command-specific options.")
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	// Logs go to stderr; stdout is reserved for command output.
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// app bundles the wired pipeline shared by run, capture, and dispatch.
type app struct {
	cfg        *config.Config
	conn       *x11.Connection
	renderer   *capture.Renderer
	dispatcher *dispatch.Dispatcher
	logger     *slog.Logger
}

func newApp(cfgPath string) (*app, error) {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger := newLogger(cfg)

	conn, err := x11.NewConnection(x11.Options{
		Display:    cfg.Display,
		XAuthority: cfg.XAuthority,
	})
	if err != nil {
		return nil, err
	}

	canvasPath := cfg.SandboxCanvas
	if canvasPath == "" {
		canvasPath, err = runtimepath.SandboxCanvasPath()
		if err != nil {
			conn.Close()
			return nil, err
		}
	}

	renderer := &capture.Renderer{
		Screen:  conn,
		Resizer: &capture.BiLinearResizer{},
		Store:   sandbox.NewStore(canvasPath),
		Log:     logger,
	}
	dispatcher := &dispatch.Dispatcher{
		Input:    input.NewDevice(conn),
		Renderer: renderer,
		Log:      logger,
	}

	return &app{
		cfg:        cfg,
		conn:       conn,
		renderer:   renderer,
		dispatcher: dispatcher,
		logger:     logger,
	}, nil
}

func (a *app) Close() {
	a.conn.Close()
}
