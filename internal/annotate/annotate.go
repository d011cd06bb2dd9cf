// Package annotate paints the visual history of executed actions onto a
// frame: numbered click markers, drag arrows, type badges, and connecting
// trails. The frame is drawn in place; callers pass a copy whenever the
// underlying buffer must stay pristine (the sandbox canvas in particular).
package annotate

import (
	"github.com/1broseidon/deskloop/internal/action"
	"github.com/1broseidon/deskloop/internal/raster"
)

var (
	markFill    = raster.Color{R: 255, G: 0, B: 0, A: 180}
	markOutline = raster.Color{R: 255, G: 255, B: 255, A: 230}
	markText    = raster.Color{R: 255, G: 255, B: 255, A: 255}
	trailColor  = raster.Color{R: 255, G: 0, B: 0, A: 120}
	glyphShadow = raster.Color{R: 0, G: 0, B: 0, A: 255}
)

// trailDistance is the Manhattan distance between consecutive markers
// beyond which a connecting trail segment is drawn.
const trailDistance = 30

type renderer struct {
	f     *raster.Frame
	label int
	prev  *raster.Point
}

// Apply renders markers for every recognizable action line, in order.
// Labels start at 1 and increment once per rendered marker; lines that do
// not parse or do not produce a visual are skipped without consuming a
// label.
func Apply(f *raster.Frame, actions []string) {
	r := renderer{f: f, label: 1}
	for _, line := range actions {
		a, ok := action.Decode(line)
		if !ok {
			continue
		}
		switch a.Kind {
		case action.LeftClick:
			r.click(a, nil)
		case action.RightClick:
			r.click(a, r.rightClickBadge)
		case action.DoubleLeftClick:
			r.click(a, r.doubleClickRing)
		case action.Drag:
			r.drag(a)
		case action.Type:
			r.typeBadge()
		}
	}
}

// trailTo draws a thin connecting segment from the previous marker when
// the jump is large enough to be worth showing.
func (r *renderer) trailTo(x, y int) {
	if r.prev == nil {
		return
	}
	if abs(x-r.prev.X)+abs(y-r.prev.Y) <= trailDistance {
		return
	}
	r.f.Line(r.prev.X, r.prev.Y, x, y, trailColor, 4, true)
}

// click renders the shared click marker (outline disc, fill disc, label),
// then the kind-specific extra, and advances the reference point.
func (r *renderer) click(a action.Action, extra func(x, y int)) {
	x := action.MapCoord(a.X, r.f.W)
	y := action.MapCoord(a.Y, r.f.H)
	r.trailTo(x, y)
	r.f.Circle(x, y, 32, markOutline, true, 3)
	r.f.Circle(x, y, 28, markFill, true, 3)
	if extra != nil {
		extra(x, y)
	}
	r.f.DrawNumber(x, y, r.label, markText, glyphShadow, 4)
	r.prev = &raster.Point{X: x, Y: y}
	r.label++
}

// rightClickBadge is the small outline square offset up-right of the disc.
func (r *renderer) rightClickBadge(x, y int) {
	r.f.Rect(x+20, y-36, 16, 16, markText, 3)
}

// doubleClickRing is the additional outer ring marking the second click.
func (r *renderer) doubleClickRing(x, y int) {
	r.f.Circle(x, y, 42, markOutline, false, 3)
}

// drag renders a small start marker, the arrow to the end point, and an
// unfilled double ring at the destination. The reference point moves to
// the drag end.
func (r *renderer) drag(a action.Action) {
	x1 := action.MapCoord(a.X, r.f.W)
	y1 := action.MapCoord(a.Y, r.f.H)
	x2 := action.MapCoord(a.X2, r.f.W)
	y2 := action.MapCoord(a.Y2, r.f.H)
	r.trailTo(x1, y1)
	r.f.Circle(x1, y1, 20, markOutline, true, 3)
	r.f.Circle(x1, y1, 16, markFill, true, 3)
	r.f.DrawNumber(x1, y1, r.label, markText, glyphShadow, 3)
	r.f.Arrow(x1, y1, x2, y2, markFill, 6)
	r.f.Circle(x2, y2, 20, markOutline, false, 4)
	r.f.Circle(x2, y2, 16, markFill, false, 3)
	r.prev = &raster.Point{X: x2, Y: y2}
	r.label++
}

// typeBadge renders the keyboard-entry badge centered on the previous
// reference point. Without a previous point there is nowhere meaningful
// to anchor it, so the action leaves no visual and consumes no label.
// The reference point itself does not move.
func (r *renderer) typeBadge() {
	if r.prev == nil {
		return
	}
	const pad = 30
	px, py := r.prev.X, r.prev.Y
	r.f.Rect(px-pad, py-pad/2, pad*2, pad, markFill, 4)
	r.f.Rect(px-pad-2, py-pad/2-2, pad*2+4, pad+4, markOutline, 2)
	r.f.DrawNumber(px, py, r.label, markText, glyphShadow, 3)
	r.label++
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
