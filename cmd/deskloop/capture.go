package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/1broseidon/deskloop/internal/capture"
)

func runCapture(args []string) int {
	fs := flag.NewFlagSet("capture", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	cfgPath := fs.String("config", "", "Config file path (default: ~/.config/deskloop/config.yaml)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskloop capture [--config PATH] < request.json")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Reads a JSON render request on stdin and writes the base64 PNG to")
		fmt.Fprintln(os.Stderr, "stdout. An empty stdin captures the screen at native size.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Request fields: actions, width, height, marks, sandbox, sandbox_reset.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	var req capture.Request
	if len(data) > 0 {
		if err := json.Unmarshal(data, &req); err != nil {
			fmt.Fprintf(os.Stderr, "bad request: %v\n", err)
			return 1
		}
	}

	app, err := newApp(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer app.Close()

	img, err := app.renderer.Render(req)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Print(img)
	return 0
}
