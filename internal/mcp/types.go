package mcp

// CaptureScreenInput is the input for the capture_screen tool.
type CaptureScreenInput struct {
	Width        int      `json:"width,omitempty" jsonschema:"Output width in pixels (default: configured width; 0 keeps native size)"`
	Height       int      `json:"height,omitempty" jsonschema:"Output height in pixels (default: configured height; 0 keeps native size)"`
	Marks        *bool    `json:"marks,omitempty" jsonschema:"Overlay annotation markers for the given actions (default: true)"`
	Actions      []string `json:"actions,omitempty" jsonschema:"Action lines to annotate onto the screenshot, e.g. left_click(500,500)"`
	Sandbox      bool     `json:"sandbox,omitempty" jsonschema:"Capture the persistent drawing canvas instead of the live screen"`
	SandboxReset bool     `json:"sandbox_reset,omitempty" jsonschema:"Reinitialize the sandbox canvas to black before capturing. Only used when sandbox is true."`
}

// CaptureScreenOutput is the output for the capture_screen tool.
type CaptureScreenOutput struct {
	ImageB64 string `json:"image_b64"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// DispatchActionsInput is the input for the dispatch_actions tool.
type DispatchActionsInput struct {
	Text         string          `json:"text" jsonschema:"required,Model reply text. Only lines under an ACTIONS header are parsed as action calls; text without that header yields no actions."`
	Execute      *bool           `json:"execute,omitempty" jsonschema:"Master switch; when false every recognized action is noted instead of executed (default: true)"`
	Tools        map[string]bool `json:"tools,omitempty" jsonschema:"Per-action gating by name. Names missing from the map stay enabled."`
	Physical     *bool           `json:"physical,omitempty" jsonschema:"Drive the real pointer and keyboard (default: configured physical_execution). Forced off in sandbox mode."`
	Sandbox      bool            `json:"sandbox,omitempty" jsonschema:"Run against the persistent drawing canvas instead of the live screen"`
	SandboxReset bool            `json:"sandbox_reset,omitempty" jsonschema:"Reinitialize the sandbox canvas before this dispatch. Only used when sandbox is true."`
	Width        int             `json:"width,omitempty" jsonschema:"Width of the returned screenshot (default: configured width)"`
	Height       int             `json:"height,omitempty" jsonschema:"Height of the returned screenshot (default: configured height)"`
	Marks        *bool           `json:"marks,omitempty" jsonschema:"Annotate executed actions on the returned screenshot (default: true)"`
}

// DispatchActionsOutput is the output for the dispatch_actions tool.
type DispatchActionsOutput struct {
	Executed        []string `json:"executed"`
	Noted           []string `json:"noted"`
	WantsScreenshot bool     `json:"wants_screenshot"`
	ScreenshotB64   string   `json:"screenshot_b64,omitempty"`
}

// ResetSandboxInput is the input for the reset_sandbox tool.
type ResetSandboxInput struct {
	Width  int `json:"width,omitempty" jsonschema:"Canvas width in pixels (default: screen width)"`
	Height int `json:"height,omitempty" jsonschema:"Canvas height in pixels (default: screen height)"`
}

// ResetSandboxOutput is the output for the reset_sandbox tool.
type ResetSandboxOutput struct {
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}
