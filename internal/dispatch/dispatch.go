// Package dispatch classifies parsed action lines into executed and noted
// sets, optionally drives the physical input device, and renders the
// follow-up screenshot. Only lines that were genuinely carried through
// reach the annotation stage, so marks always match reality: an action
// whose input call fails is demoted to noted and draws nothing.
package dispatch

import (
	"fmt"
	"log/slog"

	"github.com/1broseidon/deskloop/internal/action"
	"github.com/1broseidon/deskloop/internal/capture"
)

// Button identifies a pointer button for the input device.
type Button int

const (
	ButtonLeft  Button = 1
	ButtonRight Button = 3
)

// InputDevice is the physical input capability: eased pointer movement,
// button transitions, and single-character key injection with shift-state
// handling. Implementations own their own pacing delays.
type InputDevice interface {
	MoveSmoothly(x, y int) error
	Press(b Button) error
	Release(b Button) error
	SendKey(ch rune) error
}

// Request is the dispatch request payload. Execute defaults to true when
// omitted; a nil tools map enables every tool.
type Request struct {
	Raw               string          `json:"raw"`
	Tools             map[string]bool `json:"tools"`
	Execute           *bool           `json:"execute"`
	PhysicalExecution bool            `json:"physical_execution"`
	Sandbox           bool            `json:"sandbox"`
	SandboxReset      bool            `json:"sandbox_reset"`
	Width             int             `json:"width"`
	Height            int             `json:"height"`
	Marks             *bool           `json:"marks"`
}

func (r *Request) executeEnabled() bool {
	return r.Execute == nil || *r.Execute
}

func (r *Request) toolEnabled(name string) bool {
	enabled, ok := r.Tools[name]
	return !ok || enabled
}

// Result is the dispatch outcome. Executed lines were genuinely attempted
// and are the only ones annotated on the screenshot; noted lines were
// recorded but deliberately not attempted.
type Result struct {
	Executed        []string `json:"executed"`
	Noted           []string `json:"noted"`
	WantsScreenshot bool     `json:"wants_screenshot"`
	ScreenshotB64   string   `json:"screenshot_b64"`
}

// Dispatcher binds classification to the input device and the renderer.
// Input may be nil as long as physical execution stays off.
type Dispatcher struct {
	Input    InputDevice
	Renderer *capture.Renderer
	Log      *slog.Logger
}

func (d *Dispatcher) logger() *slog.Logger {
	if d.Log != nil {
		return d.Log
	}
	return slog.Default()
}

// Dispatch runs one pass over the ACTIONS section of the raw model
// response. Sandbox mode unconditionally forces physical execution off:
// the sandbox is a pure simulation surface.
func (d *Dispatcher) Dispatch(req Request) Result {
	res := Result{Executed: []string{}, Noted: []string{}}

	physical := req.PhysicalExecution && !req.Sandbox

	for _, line := range action.ExtractActions(req.Raw) {
		a, ok := action.Decode(line)
		if !ok {
			continue
		}
		name, _, _ := action.ParseCall(line)
		if !knownTool(name) {
			// Unknown names vanish: neither executed nor noted.
			continue
		}

		switch a.Kind {
		case action.Screenshot:
			res.WantsScreenshot = true
			res.Noted = append(res.Noted, line)
			continue
		case action.Focus:
			// Recognized but always inert.
			res.Noted = append(res.Noted, line)
			continue
		}

		if !req.executeEnabled() || !req.toolEnabled(name) {
			res.Noted = append(res.Noted, line)
			continue
		}
		if a.Kind == action.Unrecognized {
			// Known tool, unusable arguments.
			res.Noted = append(res.Noted, line)
			continue
		}

		if physical {
			if err := d.perform(a); err != nil {
				d.logger().Warn("action failed", "action", line, "error", err)
				res.Noted = append(res.Noted, line)
				continue
			}
		}
		res.Executed = append(res.Executed, line)
	}

	// The follow-up screenshot annotates executed lines only. A render
	// failure leaves the screenshot empty but never voids the dispatch
	// outcome.
	b64, err := d.Renderer.Render(capture.Request{
		Actions:      res.Executed,
		Width:        req.Width,
		Height:       req.Height,
		Marks:        req.Marks,
		Sandbox:      req.Sandbox,
		SandboxReset: req.SandboxReset,
	})
	if err != nil {
		d.logger().Warn("screenshot render failed", "error", err)
	}
	res.ScreenshotB64 = b64
	return res
}

func knownTool(name string) bool {
	switch name {
	case "left_click", "right_click", "double_left_click", "drag", "type", "screenshot", "focus":
		return true
	}
	return false
}

// perform drives the input device for one action, mapping normalized
// coordinates to the native screen extent.
func (d *Dispatcher) perform(a action.Action) error {
	if d.Input == nil {
		return fmt.Errorf("no input device configured")
	}
	sw, sh := d.Renderer.Screen.Size()
	px := action.MapCoord(a.X, sw)
	py := action.MapCoord(a.Y, sh)

	switch a.Kind {
	case action.LeftClick:
		return d.click(px, py, ButtonLeft, 1)
	case action.RightClick:
		return d.click(px, py, ButtonRight, 1)
	case action.DoubleLeftClick:
		return d.click(px, py, ButtonLeft, 2)
	case action.Drag:
		if err := d.Input.MoveSmoothly(px, py); err != nil {
			return err
		}
		if err := d.Input.Press(ButtonLeft); err != nil {
			return err
		}
		if err := d.Input.MoveSmoothly(action.MapCoord(a.X2, sw), action.MapCoord(a.Y2, sh)); err != nil {
			// Leaving a button held would wedge the desktop.
			d.Input.Release(ButtonLeft)
			return err
		}
		return d.Input.Release(ButtonLeft)
	case action.Type:
		for _, ch := range a.Text {
			if err := d.Input.SendKey(ch); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("action %v is not executable", a.Kind)
}

func (d *Dispatcher) click(x, y int, b Button, times int) error {
	if err := d.Input.MoveSmoothly(x, y); err != nil {
		return err
	}
	for i := 0; i < times; i++ {
		if err := d.Input.Press(b); err != nil {
			return err
		}
		if err := d.Input.Release(b); err != nil {
			return err
		}
	}
	return nil
}
