package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/1broseidon/deskloop/internal/panel"
)

func runPanel(args []string) int {
	fs := flag.NewFlagSet("panel", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	cfgPath := fs.String("config", "", "Config file path (default: ~/.config/deskloop/config.yaml)")
	addr := fs.String("addr", "", "Listen address (default: config panel.addr)")
	upstream := fs.String("upstream", "", "Upstream chat completions URL (default: config panel.upstream)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskloop panel [--config PATH] [--addr ADDR] [--upstream URL]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Starts the man-in-the-middle debug panel. Point the loop's api at the")
		fmt.Fprintln(os.Stderr, "panel address; every request parks in the browser for review before")
		fmt.Fprintln(os.Stderr, "being forwarded upstream or answered by hand.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *addr == "" {
		*addr = cfg.Panel.Addr
	}
	if *upstream == "" {
		*upstream = cfg.Panel.Upstream
	}

	s := panel.NewServer(*addr, *upstream, newLogger(cfg))
	if err := s.ListenAndServe(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
