package annotate

import (
	"testing"

	"github.com/1broseidon/deskloop/internal/raster"
)

// Tests run on 1000×1000 frames so normalized coordinates map 1:1 to
// pixels and expected blend results stay exact.
func blackFrame() *raster.Frame {
	return raster.NewOpaqueFrame(1000, 1000, raster.Color{R: 0, G: 0, B: 0, A: 255})
}

var (
	// markOutline (255,255,255,230) over opaque black.
	outlineOnBlack = raster.Color{R: 230, G: 230, B: 230, A: 255}
	// markFill (255,0,0,180) over outlineOnBlack.
	fillOnOutline = raster.Color{R: 247, G: 67, B: 67, A: 255}
	// trail (255,0,0,120) over opaque black, one blend.
	trailOnBlack = raster.Color{R: 120, G: 0, B: 0, A: 255}

	// Thick strokes stamp a 5×5 square at every Bresenham step, so an
	// interior pixel is re-blended once per overlapping stamp. Iterating
	// out = (src*a + out*(255-a))/255 from black: the trail alpha 120
	// climbs 120, 183, 216, 234, 243 and holds 243 from the fifth stamp;
	// the fill alpha 180 climbs 180, 232, 248, 252 and holds 254 from the
	// fifth.
	trailStamped = raster.Color{R: 243, G: 0, B: 0, A: 255}
	fillStamped  = raster.Color{R: 254, G: 0, B: 0, A: 255}
)

func TestClickMarker_CenterAndDisc(t *testing.T) {
	f := blackFrame()
	Apply(f, []string{"left_click(500,500)"})

	// The label "1" glyph has its center bit set, rendered opaque white.
	if got := f.At(500, 500); got != (raster.Color{R: 255, G: 255, B: 255, A: 255}) {
		t.Fatalf("expected white glyph pixel at center, got %+v", got)
	}
	// Inside the fill disc but clear of the glyph: fill over outline.
	if got := f.At(524, 500); got != fillOnOutline {
		t.Fatalf("expected fill-over-outline at disc interior, got %+v", got)
	}
	// Between fill and outline radii: outline only.
	if got := f.At(500, 530); got != outlineOnBlack {
		t.Fatalf("expected outline ring, got %+v", got)
	}
	// Just outside the outline radius: untouched.
	if got := f.At(500, 533); got != (raster.Color{R: 0, G: 0, B: 0, A: 255}) {
		t.Fatalf("expected black outside the marker, got %+v", got)
	}
}

func TestTrail_DrawnWhenFarApart(t *testing.T) {
	f := blackFrame()
	Apply(f, []string{"left_click(100,100)", "left_click(500,100)"})
	// Midpoint of the jump is far from both discs: saturated trail blend.
	if got := f.At(300, 100); got != trailStamped {
		t.Fatalf("expected trail segment at midpoint, got %+v", got)
	}
}

func TestTrail_SkippedAtThreshold(t *testing.T) {
	f := blackFrame()
	// Manhattan distance exactly 30: no trail anywhere in the frame. A
	// drawn trail would show saturated pixels in its interior and
	// single-blend pixels at its stamp corners, so probe for both.
	Apply(f, []string{"left_click(500,500)", "left_click(515,515)"})
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			if got := f.At(x, y); got == trailOnBlack || got == trailStamped {
				t.Fatalf("unexpected trail pixel at (%d,%d)", x, y)
			}
		}
	}
}

func TestLabel_IncrementsPerMarker(t *testing.T) {
	// Marker at the same position carries "1" when rendered alone and "2"
	// when a marker precedes it. Probe a glyph cell lit by "2" only.
	solo := blackFrame()
	Apply(solo, []string{"left_click(600,400)"})
	pair := blackFrame()
	Apply(pair, []string{"left_click(100,100)", "left_click(600,400)"})

	// Top row of the glyph box: "2" lights its second column, "1" leaves
	// the disc fill showing through.
	probeX, probeY := 594, 386
	if got := pair.At(probeX, probeY); got != (raster.Color{R: 255, G: 255, B: 255, A: 255}) {
		t.Fatalf("expected lit glyph cell for label 2, got %+v", got)
	}
	if got := solo.At(probeX, probeY); got != fillOnOutline {
		t.Fatalf("expected disc fill under unlit glyph cell for label 1, got %+v", got)
	}
}

func TestLabel_UnrecognizedLinesConsumeNothing(t *testing.T) {
	withNoise := blackFrame()
	Apply(withNoise, []string{
		"foobar(1,2)",
		"screenshot()",
		"focus(0,0,1000,1000)",
		"not even a call",
		"left_click(600,400)",
	})
	clean := blackFrame()
	Apply(clean, []string{"left_click(600,400)"})

	for i := range withNoise.Pix {
		if withNoise.Pix[i] != clean.Pix[i] {
			t.Fatalf("expected noise lines to leave no visuals and keep label at 1")
		}
	}
}

func TestTypeBadge_AnchoredOnPreviousPoint(t *testing.T) {
	f := blackFrame()
	Apply(f, []string{"left_click(500,500)", `type("hello")`})
	// Badge corner clear of the click discs: the rect's top and left
	// strokes overlap here, saturating the fill blend.
	if got := f.At(470, 487); got != fillStamped {
		t.Fatalf("expected badge edge pixel, got %+v", got)
	}
}

func TestTypeBadge_SkippedWithoutReferencePoint(t *testing.T) {
	f := blackFrame()
	Apply(f, []string{`type("hello")`})
	for i := 0; i < len(f.Pix); i += 4 {
		if f.Pix[i] != 0 || f.Pix[i+1] != 0 || f.Pix[i+2] != 0 {
			t.Fatalf("expected no visual for type without a previous marker")
		}
	}
}

func TestDrag_ReferencePointMovesToEnd(t *testing.T) {
	f := blackFrame()
	Apply(f, []string{"drag(100,100,600,600)", `type("x")`})
	// Badge anchors on the drag end point, clear of rings and arrow head.
	if got := f.At(570, 587); got != fillStamped {
		t.Fatalf("expected badge anchored at drag end, got %+v", got)
	}
}

func TestDrag_EndRingsUnfilled(t *testing.T) {
	f := blackFrame()
	Apply(f, []string{"drag(100,900,600,900)"})
	// Between the two end rings the base shows through.
	if got := f.At(600, 918); got != outlineOnBlack {
		t.Fatalf("expected outer end ring, got %+v", got)
	}
	if got := f.At(600, 908); got != (raster.Color{R: 0, G: 0, B: 0, A: 255}) {
		t.Fatalf("expected unpainted gap inside end rings, got %+v", got)
	}
}
