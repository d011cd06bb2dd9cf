// Package capture services render requests: it composes a base frame from
// the live screen or the persistent sandbox canvas, annotates it with the
// executed-action history, scales it to the requested size, and returns it
// as a base64-encoded PNG.
package capture

import (
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/1broseidon/deskloop/internal/annotate"
	"github.com/1broseidon/deskloop/internal/pngenc"
	"github.com/1broseidon/deskloop/internal/raster"
	"github.com/1broseidon/deskloop/internal/sandbox"
)

// ScreenSource captures the desktop at native resolution.
type ScreenSource interface {
	Size() (w, h int)
	Capture() (*raster.Frame, error)
}

// Resizer scales a frame to a new size with smooth filtering.
type Resizer interface {
	Scale(f *raster.Frame, w, h int) *raster.Frame
}

// Request is the render request payload. Missing or invalid fields
// default rather than reject: a nil action list renders an unannotated
// frame, zero dimensions keep the native size, and omitted marks default
// to on.
type Request struct {
	Actions      []string `json:"actions"`
	Width        int      `json:"width"`
	Height       int      `json:"height"`
	Marks        *bool    `json:"marks"`
	Sandbox      bool     `json:"sandbox"`
	SandboxReset bool     `json:"sandbox_reset"`
}

// MarksEnabled reports the effective marks flag.
func (r *Request) MarksEnabled() bool {
	return r.Marks == nil || *r.Marks
}

// Renderer binds the render pipeline to its capabilities.
type Renderer struct {
	Screen  ScreenSource
	Resizer Resizer
	Store   *sandbox.Store
	Log     *slog.Logger
}

func (r *Renderer) logger() *slog.Logger {
	if r.Log != nil {
		return r.Log
	}
	return slog.Default()
}

// Render executes one render request and returns the base64 PNG.
//
// In sandbox mode the base frame is the persistent canvas: drag actions
// are replayed onto it and, when anything changed, saved back before
// annotation. Annotation always runs on a copy so marks never leak into
// the persisted surface. Sandbox persistence failures degrade to a fresh
// in-memory canvas instead of failing the request.
func (r *Renderer) Render(req Request) (string, error) {
	sw, sh := r.Screen.Size()

	var base *raster.Frame
	if req.Sandbox {
		canvas, status := r.Store.Load(sw, sh, req.SandboxReset)
		if status == sandbox.StatusWriteFailed {
			r.logger().Warn("sandbox canvas not persisted", "path", r.Store.Path())
		}
		if sandbox.Apply(canvas, req.Actions) {
			if err := r.Store.Save(canvas); err != nil {
				r.logger().Warn("sandbox save failed", "path", r.Store.Path(), "error", err)
			}
		}
		base = canvas.Clone()
	} else {
		frame, err := r.Screen.Capture()
		if err != nil {
			return "", fmt.Errorf("capture screen: %w", err)
		}
		base = frame
	}

	if req.MarksEnabled() && len(req.Actions) > 0 {
		annotate.Apply(base, req.Actions)
	}

	dw, dh := req.Width, req.Height
	if dw <= 0 || dh <= 0 {
		dw, dh = sw, sh
	}
	if dw != base.W || dh != base.H {
		base = r.Resizer.Scale(base, dw, dh)
	}

	png, err := pngenc.Encode(base)
	if err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
