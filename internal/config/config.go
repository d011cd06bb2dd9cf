// Package config holds the runtime configuration for the perception-action
// loop: model endpoint, screenshot dimensions, tool gating, sandbox
// behavior, and X11 connection overrides. Every field has a working
// default so a missing config file is not an error.
package config

import (
	"fmt"
	"time"
)

// KnownTools lists every action name the dispatcher understands. Tool
// gating keys must come from this set.
var KnownTools = []string{
	"left_click",
	"right_click",
	"double_left_click",
	"drag",
	"type",
	"screenshot",
	"focus",
}

// Sampling holds the generation parameters sent with each model request.
type Sampling struct {
	Temperature float64 `yaml:"temperature"`
	TopP        float64 `yaml:"top_p"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// Panel configures the human-in-the-loop intercept panel.
type Panel struct {
	Addr     string `yaml:"addr"`     // listen address for browsers and the loop
	Upstream string `yaml:"upstream"` // real model endpoint behind the panel
}

// Config is the effective runtime configuration.
type Config struct {
	API   string `yaml:"api"`   // chat-completions endpoint
	Model string `yaml:"model"` // model name sent with each request

	// Screenshot dimensions handed to the model. Zero keeps native size.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	Marks             bool `yaml:"marks"`
	ExecuteActions    bool `yaml:"execute_actions"`
	PhysicalExecution bool `yaml:"physical_execution"`
	Sandbox           bool `yaml:"sandbox"`
	SandboxReset      bool `yaml:"sandbox_reset"`

	// Tools maps action names to enabled state. Names missing from the
	// map are enabled.
	Tools map[string]bool `yaml:"tools,omitempty"`

	LoopDelay time.Duration `yaml:"loop_delay"`
	DebugDump bool          `yaml:"debug_dump"`

	// SandboxCanvas overrides the canvas file path. Empty uses the
	// state directory.
	SandboxCanvas string `yaml:"sandbox_canvas,omitempty"`

	// SystemPrompt replaces the built-in prompt when set. Goal is
	// appended to whichever prompt is active.
	SystemPrompt string `yaml:"system_prompt,omitempty"`
	Goal         string `yaml:"goal,omitempty"`

	Sampling Sampling `yaml:"sampling"`

	// X11 connection overrides, useful under nested or headless servers.
	Display    string `yaml:"display,omitempty"`
	XAuthority string `yaml:"xauthority,omitempty"`

	Panel Panel `yaml:"panel"`

	LogLevel string `yaml:"log_level"`
}

// DefaultSystemPrompt is the instruction block sent to the model when no
// override is configured. The action vocabulary must stay in sync with
// KnownTools.
const DefaultSystemPrompt = `You control a desktop using these functions:
left_click(x,y), right_click(x,y), double_left_click(x,y), drag(x1,y1,x2,y2), type(text), screenshot().
Coordinates are integers in 0..1000 relative to the current screenshot (0,0 top-left; 1000,1000 bottom-right).
Marks on the screenshot show the actions that were actually executed last turn.

Reply in exactly two sections:

NARRATIVE:
Briefly describe what you are doing and what you will do next. No coordinates here.

ACTIONS:
One function call per line, nothing else. Use screenshot() whenever you need a fresh view.
If there is nothing left to do, output screenshot().`

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		API:            "http://localhost:1234/v1/chat/completions",
		Model:          "qwen3-vl-2b-instruct-1m",
		Width:          512,
		Height:         288,
		Marks:          true,
		ExecuteActions: true,
		LoopDelay:      time.Second,
		Sampling: Sampling{
			Temperature: 0.7,
			TopP:        0.9,
			MaxTokens:   1024,
		},
		Panel: Panel{
			Addr:     "0.0.0.0:1234",
			Upstream: "http://127.0.0.1:1235/v1/chat/completions",
		},
		LogLevel: "info",
	}
}

// EffectivePrompt returns the system prompt with the goal appended.
func (c *Config) EffectivePrompt() string {
	prompt := c.SystemPrompt
	if prompt == "" {
		prompt = DefaultSystemPrompt
	}
	if c.Goal != "" {
		prompt += "\n\nULTIMATE GOAL: " + c.Goal
	}
	return prompt
}

// ToolEnabled reports whether an action name is enabled under the tool
// gating map. Names absent from the map are enabled.
func (c *Config) ToolEnabled(name string) bool {
	if c.Tools == nil {
		return true
	}
	enabled, ok := c.Tools[name]
	if !ok {
		return true
	}
	return enabled
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	if c.API == "" {
		return &ValidationError{Path: "api", Err: fmt.Errorf("api endpoint is required")}
	}
	if c.Model == "" {
		return &ValidationError{Path: "model", Err: fmt.Errorf("model is required")}
	}
	if c.Width < 0 || c.Height < 0 {
		return &ValidationError{Path: "width", Err: fmt.Errorf("width/height must be >= 0 (got %dx%d)", c.Width, c.Height)}
	}
	if c.LoopDelay < 0 {
		return &ValidationError{Path: "loop_delay", Err: fmt.Errorf("loop_delay must be >= 0")}
	}
	if c.Sampling.MaxTokens <= 0 {
		return &ValidationError{Path: "sampling.max_tokens", Err: fmt.Errorf("max_tokens must be > 0")}
	}
	if c.Sampling.Temperature < 0 || c.Sampling.Temperature > 2 {
		return &ValidationError{Path: "sampling.temperature", Err: fmt.Errorf("temperature must be between 0 and 2")}
	}
	if c.Sampling.TopP < 0 || c.Sampling.TopP > 1 {
		return &ValidationError{Path: "sampling.top_p", Err: fmt.Errorf("top_p must be between 0 and 1")}
	}
	for name := range c.Tools {
		if !isKnownTool(name) {
			return &ValidationError{Path: "tools." + name, Err: fmt.Errorf("unknown action name %q", name)}
		}
	}
	if c.Panel.Addr == "" {
		return &ValidationError{Path: "panel.addr", Err: fmt.Errorf("panel addr is required")}
	}
	if c.Panel.Upstream == "" {
		return &ValidationError{Path: "panel.upstream", Err: fmt.Errorf("panel upstream is required")}
	}
	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	return nil
}

func isKnownTool(name string) bool {
	for _, t := range KnownTools {
		if t == name {
			return true
		}
	}
	return false
}
