package runtimepath

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStateDir_UsesXDGStateHomeWhenSet(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_STATE_HOME", td)

	got, err := StateDir()
	if err != nil {
		t.Fatalf("StateDir() error: %v", err)
	}
	want := filepath.Join(td, "deskloop")
	if got != want {
		t.Fatalf("StateDir() = %q, want %q", got, want)
	}
	if info, err := os.Stat(got); err != nil || !info.IsDir() {
		t.Fatalf("StateDir() did not create %q", got)
	}
}

func TestStateDir_FallsBackToHome(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("HOME", t.TempDir())

	got, err := StateDir()
	if err != nil {
		t.Fatalf("StateDir() error: %v", err)
	}
	if !strings.HasSuffix(got, filepath.Join(".local", "state", "deskloop")) {
		t.Fatalf("StateDir() = %q, want ~/.local/state/deskloop", got)
	}
}

func TestDerivedPaths(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	canvas, err := SandboxCanvasPath()
	if err != nil {
		t.Fatalf("SandboxCanvasPath() error: %v", err)
	}
	if !strings.HasSuffix(canvas, "/sandbox.bmp") {
		t.Fatalf("SandboxCanvasPath() = %q, missing suffix", canvas)
	}

	dump, err := DumpDir()
	if err != nil {
		t.Fatalf("DumpDir() error: %v", err)
	}
	if info, statErr := os.Stat(dump); statErr != nil || !info.IsDir() {
		t.Fatalf("DumpDir() did not create %q", dump)
	}
}
