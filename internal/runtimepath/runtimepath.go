package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
)

// StateDir returns the directory deskloop keeps persistent state in
// (sandbox canvas, debug dumps). Priority:
// 1) XDG_STATE_HOME/deskloop (if XDG_STATE_HOME is set)
// 2) ~/.local/state/deskloop
// 3) /tmp/deskloop-state-<uid> (created)
func StateDir() (string, error) {
	var base string
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		base = stateHome
	} else if home, err := os.UserHomeDir(); err == nil && home != "" {
		base = filepath.Join(home, ".local", "state")
	} else {
		base = fmt.Sprintf("/tmp/deskloop-state-%d", os.Getuid())
	}

	dir := filepath.Join(base, "deskloop")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create state dir: %w", err)
	}
	return dir, nil
}

// SandboxCanvasPath returns the default sandbox canvas file path.
func SandboxCanvasPath() (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sandbox.bmp"), nil
}

// DumpDir returns the directory debug dumps of loop turns are written to.
func DumpDir() (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	dump := filepath.Join(dir, "dumps")
	if err := os.MkdirAll(dump, 0700); err != nil {
		return "", fmt.Errorf("failed to create dump dir: %w", err)
	}
	return dump, nil
}
