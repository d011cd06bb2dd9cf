// Package loop drives the closed perception-action cycle: dispatch the
// prior model reply, capture the resulting screenshot, infer the next
// reply from (story + screenshot), repeat. The story is the prior raw
// model output verbatim, so each turn the model sees its own last reply
// together with marks for the actions that actually ran.
package loop

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/1broseidon/deskloop/internal/config"
	"github.com/1broseidon/deskloop/internal/dispatch"
)

// State is the single source of truth carried between turns.
type State struct {
	Story string
	Turn  int
}

// Loop runs the turn cycle until the context ends or the injected
// replies run out.
type Loop struct {
	Config     *config.Config
	Dispatcher *dispatch.Dispatcher
	Client     Client

	// Injected replies are consumed one per turn instead of calling the
	// model; the loop stops when they run out. Used for replaying
	// recorded sessions and bring-up without an endpoint.
	Injected []string

	// Out receives each raw model reply verbatim.
	Out io.Writer

	// DumpDir, when set, receives a PNG per turn plus a state.json
	// snapshot overwritten each turn.
	DumpDir string

	// StartDelay is a grace period before the first turn so the user
	// can move focus away from the launching terminal.
	StartDelay time.Duration

	Log *slog.Logger
}

func (l *Loop) logger() *slog.Logger {
	if l.Log != nil {
		return l.Log
	}
	return slog.Default()
}

// Run executes turns until ctx is done. With injected replies it
// returns nil once they are exhausted; otherwise it only returns on
// context cancellation or a non-retryable inference failure.
func (l *Loop) Run(ctx context.Context) error {
	if l.StartDelay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.StartDelay):
		}
	}

	state := State{}
	injected := l.Injected

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		state.Turn++

		res := l.dispatchStory(state.Story)

		var raw string
		if l.Injected != nil {
			if len(injected) == 0 {
				l.logger().Info("injected replies exhausted", "turns", state.Turn-1)
				return nil
			}
			raw = injected[0]
			injected = injected[1:]
		} else {
			reply, err := l.Client.Complete(ctx, state.Story, res.ScreenshotB64)
			if err != nil {
				return fmt.Errorf("turn %d: %w", state.Turn, err)
			}
			raw = reply
		}

		if l.Out != nil {
			fmt.Fprint(l.Out, raw)
		}
		state.Story = raw

		if l.DumpDir != "" {
			if err := l.dump(state, raw, res); err != nil {
				l.logger().Warn("debug dump failed", "dir", l.DumpDir, "error", err)
			}
		}

		l.logger().Info("turn complete",
			"turn", state.Turn,
			"executed", len(res.Executed),
			"noted", len(res.Noted))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.Config.LoopDelay):
		}
	}
}

func (l *Loop) dispatchStory(story string) dispatch.Result {
	cfg := l.Config
	marks := cfg.Marks
	execute := cfg.ExecuteActions
	return l.Dispatcher.Dispatch(dispatch.Request{
		Raw:               story,
		Tools:             cfg.Tools,
		Execute:           &execute,
		PhysicalExecution: cfg.PhysicalExecution,
		Sandbox:           cfg.Sandbox,
		SandboxReset:      cfg.SandboxReset,
		Width:             cfg.Width,
		Height:            cfg.Height,
		Marks:             &marks,
	})
}

// turnSnapshot mirrors the per-turn dump record.
type turnSnapshot struct {
	Turn            int             `json:"turn"`
	Story           string          `json:"story"`
	ModelRaw        string          `json:"vlm_raw"`
	Executed        []string        `json:"executed"`
	Noted           []string        `json:"noted"`
	WantsScreenshot bool            `json:"wants_screenshot"`
	ExecuteActions  bool            `json:"execute_actions"`
	Tools           map[string]bool `json:"tools"`
	Timestamp       string          `json:"timestamp"`
}

func (l *Loop) dump(state State, raw string, res dispatch.Result) error {
	if err := os.MkdirAll(l.DumpDir, 0755); err != nil {
		return err
	}

	if res.ScreenshotB64 != "" {
		png, err := base64.StdEncoding.DecodeString(res.ScreenshotB64)
		if err != nil {
			return fmt.Errorf("decode screenshot: %w", err)
		}
		name := fmt.Sprintf("%d.png", time.Now().UnixMilli())
		if err := os.WriteFile(filepath.Join(l.DumpDir, name), png, 0644); err != nil {
			return err
		}
	}

	snap := turnSnapshot{
		Turn:            state.Turn,
		Story:           state.Story,
		ModelRaw:        raw,
		Executed:        res.Executed,
		Noted:           res.Noted,
		WantsScreenshot: res.WantsScreenshot,
		ExecuteActions:  l.Config.ExecuteActions,
		Tools:           l.Config.Tools,
		Timestamp:       time.Now().Format(time.RFC3339),
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(l.DumpDir, "state.json"), data, 0644)
}
