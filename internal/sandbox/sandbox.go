// Package sandbox persists a drawing canvas across invocations. The canvas
// is a bitmap file at a fixed path; only executed drag actions mutate it,
// as pure opaque white strokes. Click annotations never reach the file.
//
// Persistence is best-effort: the canvas exists to keep the
// perception-action loop alive, so every failure mode degrades to a fresh
// opaque-black surface instead of an error. Callers that care can inspect
// the load status. Nothing here locks the backing file; invocations are
// assumed to be serialized by the surrounding loop.
package sandbox

import (
	"os"

	"github.com/1broseidon/deskloop/internal/action"
	"github.com/1broseidon/deskloop/internal/bmp"
	"github.com/1broseidon/deskloop/internal/raster"
)

// Status reports how a load was satisfied.
type Status int

const (
	// StatusLoaded means the backing file decoded at the expected size.
	StatusLoaded Status = iota
	// StatusReinitialized means the file was absent, unreadable, size
	// mismatched, or a reset was requested: the canvas restarted black.
	StatusReinitialized
	// StatusWriteFailed means reinitialization could not be persisted;
	// the returned canvas is in-memory only.
	StatusWriteFailed
)

var (
	black = raster.Color{R: 0, G: 0, B: 0, A: 255}
	white = raster.Color{R: 255, G: 255, B: 255, A: 255}
)

// strokeThickness is the fixed width of persisted drag strokes.
const strokeThickness = 4

// Store is the persistent canvas at one fixed path.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) writeBlack(w, h int) Status {
	if err := bmp.WriteFile(s.path, raster.NewOpaqueFrame(w, h, black)); err != nil {
		return StatusWriteFailed
	}
	return StatusReinitialized
}

// Load returns a w×h canvas. A reset request, a missing or undecodable
// file, or a dimension mismatch all reinitialize the canvas to opaque
// black. A mismatched file is discarded, not rescaled, so a resolution
// change loses prior history. Load never fails: when even the
// reinitialization write fails, an in-memory black canvas is returned.
func (s *Store) Load(w, h int, reset bool) (*raster.Frame, Status) {
	status := StatusLoaded
	if reset {
		status = s.writeBlack(w, h)
	} else if _, err := os.Stat(s.path); err != nil {
		status = s.writeBlack(w, h)
	}

	f, err := bmp.ReadFile(s.path)
	if err != nil || f.W != w || f.H != h {
		if st := s.writeBlack(w, h); st == StatusWriteFailed {
			status = StatusWriteFailed
		} else if status == StatusLoaded {
			status = StatusReinitialized
		}
		return raster.NewOpaqueFrame(w, h, black), status
	}
	return f, status
}

// Apply replays the drag actions in the list onto the canvas, mapping
// normalized coordinates to the canvas extent and stroking opaque white.
// Every other action kind is ignored here. The return value reports
// whether anything was drawn and therefore whether a save is due.
func Apply(f *raster.Frame, actions []string) bool {
	dirty := false
	for _, line := range actions {
		a, ok := action.Decode(line)
		if !ok || a.Kind != action.Drag {
			continue
		}
		x1 := action.MapCoord(a.X, f.W)
		y1 := action.MapCoord(a.Y, f.H)
		x2 := action.MapCoord(a.X2, f.W)
		y2 := action.MapCoord(a.Y2, f.H)
		f.Line(x1, y1, x2, y2, white, strokeThickness, false)
		dirty = true
	}
	return dirty
}

// Save persists the canvas. Callers gate this on Apply's dirty result so
// an unchanged canvas never touches the file.
func (s *Store) Save(f *raster.Frame) error {
	return bmp.WriteFile(s.path, f)
}
