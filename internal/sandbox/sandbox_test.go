package sandbox

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/1broseidon/deskloop/internal/bmp"
	"github.com/1broseidon/deskloop/internal/raster"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "canvas.bmp"))
}

func allBlackOpaque(f *raster.Frame) bool {
	for i := 0; i < len(f.Pix); i += 4 {
		if f.Pix[i] != 0 || f.Pix[i+1] != 0 || f.Pix[i+2] != 0 || f.Pix[i+3] != 255 {
			return false
		}
	}
	return true
}

func TestLoad_MissingFileInitializesBlack(t *testing.T) {
	s := newTestStore(t)
	f, status := s.Load(20, 10, false)
	if status != StatusReinitialized {
		t.Fatalf("expected reinitialized status, got %v", status)
	}
	if f.W != 20 || f.H != 10 || !allBlackOpaque(f) {
		t.Fatalf("expected 20x10 opaque black canvas")
	}
	if _, err := os.Stat(s.Path()); err != nil {
		t.Fatalf("expected backing file to be written: %v", err)
	}
}

func TestLoad_SecondLoadSeesSavedStrokes(t *testing.T) {
	s := newTestStore(t)
	f, _ := s.Load(16, 16, false)
	if !Apply(f, []string{"drag(0,0,1000,1000)"}) {
		t.Fatalf("expected drag to mark the canvas dirty")
	}
	if err := s.Save(f); err != nil {
		t.Fatalf("save: %v", err)
	}

	g, status := s.Load(16, 16, false)
	if status != StatusLoaded {
		t.Fatalf("expected loaded status, got %v", status)
	}
	if !bytes.Equal(g.Pix, f.Pix) {
		t.Fatalf("expected reloaded canvas to match saved strokes")
	}
}

func TestLoad_ResetDiscardsHistory(t *testing.T) {
	s := newTestStore(t)
	f, _ := s.Load(16, 16, false)
	Apply(f, []string{"drag(0,0,1000,1000)"})
	if err := s.Save(f); err != nil {
		t.Fatalf("save: %v", err)
	}

	g, status := s.Load(16, 16, true)
	if status != StatusReinitialized {
		t.Fatalf("expected reset to report reinitialized, got %v", status)
	}
	if !allBlackOpaque(g) {
		t.Fatalf("expected reset canvas to be pure black")
	}
	// And the file on disk was rewritten too.
	onDisk, err := bmp.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !allBlackOpaque(onDisk) {
		t.Fatalf("expected backing file to be reset to black")
	}
}

func TestLoad_DimensionMismatchReinitializes(t *testing.T) {
	s := newTestStore(t)
	f, _ := s.Load(8, 8, false)
	Apply(f, []string{"drag(0,0,1000,0)"})
	if err := s.Save(f); err != nil {
		t.Fatalf("save: %v", err)
	}

	g, status := s.Load(12, 12, false)
	if status != StatusReinitialized {
		t.Fatalf("expected mismatch to reinitialize, got %v", status)
	}
	if g.W != 12 || g.H != 12 || !allBlackOpaque(g) {
		t.Fatalf("expected fresh 12x12 black canvas")
	}
}

func TestLoad_CorruptFileFallsBack(t *testing.T) {
	s := newTestStore(t)
	if err := os.WriteFile(s.Path(), []byte("not a bitmap"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, status := s.Load(6, 6, false)
	if status != StatusReinitialized {
		t.Fatalf("expected corrupt file to reinitialize, got %v", status)
	}
	if !allBlackOpaque(f) {
		t.Fatalf("expected fallback canvas to be black")
	}
}

func TestApply_OnlyDragsDraw(t *testing.T) {
	f := raster.NewOpaqueFrame(16, 16, raster.Color{R: 0, G: 0, B: 0, A: 255})
	dirty := Apply(f, []string{
		"left_click(500,500)",
		"double_left_click(100,100)",
		`type("hi")`,
		"screenshot()",
		"focus(0,0,1000,1000)",
		"garbage",
	})
	if dirty {
		t.Fatalf("expected click-only list to leave canvas clean")
	}
	if !allBlackOpaque(f) {
		t.Fatalf("expected no pixels drawn")
	}
}

func TestApply_DiagonalStroke(t *testing.T) {
	w, h := 32, 32
	f := raster.NewOpaqueFrame(w, h, raster.Color{R: 0, G: 0, B: 0, A: 255})
	if !Apply(f, []string{"drag(0,0,1000,1000)"}) {
		t.Fatalf("expected dirty")
	}
	// Pure, unblended white along the diagonal.
	for _, p := range []raster.Point{{X: 1, Y: 1}, {X: 15, Y: 15}, {X: 30, Y: 30}} {
		if got := f.At(p.X, p.Y); got != (raster.Color{R: 255, G: 255, B: 255, A: 255}) {
			t.Fatalf("expected pure white at (%d,%d), got %+v", p.X, p.Y, got)
		}
	}
	// Far off the stroke stays black.
	if got := f.At(30, 1); got != (raster.Color{R: 0, G: 0, B: 0, A: 255}) {
		t.Fatalf("expected corner to stay black, got %+v", got)
	}
}

func TestSaveGating_AllClickListLeavesFileUnchanged(t *testing.T) {
	s := newTestStore(t)
	f, _ := s.Load(10, 10, true)
	before, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if dirty := Apply(f, []string{"left_click(500,500)", "right_click(1,2)"}); dirty {
		t.Fatalf("expected no dirty flag")
	}
	// Caller contract: no save without dirty. File must be byte-identical.
	after, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Fatalf("expected backing file untouched")
	}
}
