package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/1broseidon/deskloop/internal/dispatch"
)

func runDispatch(args []string) int {
	fs := flag.NewFlagSet("dispatch", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	cfgPath := fs.String("config", "", "Config file path (default: ~/.config/deskloop/config.yaml)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskloop dispatch [--config PATH] < request.json")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Reads a JSON dispatch request on stdin, executes the recognized")
		fmt.Fprintln(os.Stderr, "actions, and writes the result JSON to stdout.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Request fields: raw, tools, execute, physical_execution, sandbox,")
		fmt.Fprintln(os.Stderr, "sandbox_reset, width, height, marks.")
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
	var req dispatch.Request
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

	res := app.dispatcher.Dispatch(req)
	enc := json.NewEncoder(os.Stdout)
	if err := enc.Encode(res); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
