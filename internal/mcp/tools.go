package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/deskloop/internal/capture"
	"github.com/1broseidon/deskloop/internal/dispatch"
	"github.com/1broseidon/deskloop/internal/sandbox"
)

// resolveDims applies the configured defaults. Zero falls back to the
// config; -1 requests native size.
func (s *Server) resolveDims(w, h int) (int, int) {
	if w == 0 {
		w = s.config.Width
	}
	if h == 0 {
		h = s.config.Height
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return w, h
}

func (s *Server) handleCaptureScreen(_ context.Context, _ *mcpsdk.CallToolRequest, args CaptureScreenInput) (*mcpsdk.CallToolResult, CaptureScreenOutput, error) {
	w, h := s.resolveDims(args.Width, args.Height)

	img, err := s.renderer.Render(capture.Request{
		Actions:      args.Actions,
		Width:        w,
		Height:       h,
		Marks:        args.Marks,
		Sandbox:      args.Sandbox,
		SandboxReset: args.SandboxReset,
	})
	if err != nil {
		s.logger.Error("capture_screen failed", "err", err)
		return nil, CaptureScreenOutput{}, err
	}

	s.logger.Debug("capture_screen", "sandbox", args.Sandbox, "actions", len(args.Actions))
	return nil, CaptureScreenOutput{
		ImageB64: img,
		Width:    w,
		Height:   h,
	}, nil
}

func (s *Server) handleDispatchActions(_ context.Context, _ *mcpsdk.CallToolRequest, args DispatchActionsInput) (*mcpsdk.CallToolResult, DispatchActionsOutput, error) {
	if args.Text == "" {
		return nil, DispatchActionsOutput{}, fmt.Errorf("text is required")
	}

	physical := s.config.PhysicalExecution
	if args.Physical != nil {
		physical = *args.Physical
	}
	tools := args.Tools
	if tools == nil {
		tools = s.config.Tools
	}
	w, h := s.resolveDims(args.Width, args.Height)

	res := s.dispatcher.Dispatch(dispatch.Request{
		Raw:               args.Text,
		Tools:             tools,
		Execute:           args.Execute,
		PhysicalExecution: physical,
		Sandbox:           args.Sandbox,
		SandboxReset:      args.SandboxReset,
		Width:             w,
		Height:            h,
		Marks:             args.Marks,
	})

	s.logger.Info("dispatch_actions",
		"executed", len(res.Executed),
		"noted", len(res.Noted),
		"wants_screenshot", res.WantsScreenshot)

	return nil, DispatchActionsOutput{
		Executed:        res.Executed,
		Noted:           res.Noted,
		WantsScreenshot: res.WantsScreenshot,
		ScreenshotB64:   res.ScreenshotB64,
	}, nil
}

func (s *Server) handleResetSandbox(_ context.Context, _ *mcpsdk.CallToolRequest, args ResetSandboxInput) (*mcpsdk.CallToolResult, ResetSandboxOutput, error) {
	store := s.renderer.Store
	if store == nil {
		return nil, ResetSandboxOutput{}, fmt.Errorf("no sandbox store configured")
	}

	w, h := args.Width, args.Height
	if w <= 0 || h <= 0 {
		if s.renderer.Screen == nil {
			return nil, ResetSandboxOutput{}, fmt.Errorf("width and height are required without a screen")
		}
		sw, sh := s.renderer.Screen.Size()
		if w <= 0 {
			w = sw
		}
		if h <= 0 {
			h = sh
		}
	}

	_, status := store.Load(w, h, true)
	if status == sandbox.StatusWriteFailed {
		return nil, ResetSandboxOutput{}, fmt.Errorf("failed to write canvas at %s", store.Path())
	}

	s.logger.Info("reset_sandbox", "path", store.Path(), "width", w, "height", h)
	return nil, ResetSandboxOutput{
		Path:   store.Path(),
		Width:  w,
		Height: h,
	}, nil
}
