package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/1broseidon/deskloop/internal/loop"
	"github.com/1broseidon/deskloop/internal/runtimepath"
)

func runRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	cfgPath := fs.String("config", "", "Config file path (default: ~/.config/deskloop/config.yaml)")
	goal := fs.String("goal", "", "Override the configured goal for this run")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskloop run [--config PATH] [--goal TEXT] [reply.json ...]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Runs the closed perception-action loop against the configured model")
		fmt.Fprintln(os.Stderr, "endpoint. Positional arguments are chat-completion JSON files whose")
		fmt.Fprintln(os.Stderr, "assistant content is injected one per turn instead of calling the")
		fmt.Fprintln(os.Stderr, "endpoint; the loop stops when they run out.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	app, err := newApp(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer app.Close()
	if *goal != "" {
		app.cfg.Goal = *goal
	}

	var injected []string
	for _, path := range fs.Args() {
		content, err := loadInjectedReply(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		injected = append(injected, content)
	}

	var dumpDir string
	if app.cfg.DebugDump {
		root, err := runtimepath.DumpDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		dumpDir = filepath.Join(root, time.Now().Format("run_20060102_150405"))
	}

	l := &loop.Loop{
		Config:     app.cfg,
		Dispatcher: app.dispatcher,
		Client: &loop.HTTPClient{
			API:      app.cfg.API,
			Model:    app.cfg.Model,
			Prompt:   app.cfg.EffectivePrompt(),
			Sampling: app.cfg.Sampling,
		},
		Injected:   injected,
		Out:        os.Stdout,
		DumpDir:    dumpDir,
		StartDelay: 3 * time.Second,
		Log:        app.logger,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := l.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		app.logger.Error("loop stopped", "error", err)
		return 1
	}
	return 0
}

// loadInjectedReply extracts the assistant content from a recorded chat
// completion response file.
func loadInjectedReply(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("injected reply %s: %w", path, err)
	}
	var body struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return "", fmt.Errorf("injected reply %s: %w", path, err)
	}
	if len(body.Choices) == 0 {
		return "", fmt.Errorf("injected reply %s: no choices", path)
	}
	return body.Choices[0].Message.Content, nil
}
