package raster

import (
	"math"
	"sort"
)

// Stamp fills a thickness×thickness square centered on (x, y). Lines are
// built from overlapping square stamps rather than round caps; the square
// shape is part of the rendered output's identity and must not change.
func (f *Frame) Stamp(x, y int, c Color, thickness int, blended bool) {
	half := thickness >> 1
	for dy := -half; dy <= half; dy++ {
		for dx := -half; dx <= half; dx++ {
			if blended {
				f.PutBlend(x+dx, y+dy, c)
			} else {
				f.PutOpaque(x+dx, y+dy, c)
			}
		}
	}
}

// Line draws a Bresenham line from (x1, y1) to (x2, y2), stamping at
// every step.
func (f *Frame) Line(x1, y1, x2, y2 int, c Color, thickness int, blended bool) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx := 1
	if x1 >= x2 {
		sx = -1
	}
	sy := 1
	if y1 >= y2 {
		sy = -1
	}
	err := dx - dy
	x, y := x1, y1
	for {
		f.Stamp(x, y, c, thickness, blended)
		if x == x2 && y == y2 {
			return
		}
		e2 := err << 1
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// Circle plots a filled disc (filled=true) or a ring whose band spans
// radii [r-thickness, r], testing squared distance against the band.
func (f *Frame) Circle(cx, cy, r int, c Color, filled bool, thickness int) {
	outer := r * r
	inner := r - thickness
	if inner < 0 {
		inner = 0
	}
	inner *= inner
	for oy := -r; oy <= r; oy++ {
		for ox := -r; ox <= r; ox++ {
			d2 := ox*ox + oy*oy
			if d2 > outer {
				continue
			}
			if filled || d2 >= inner {
				f.PutBlend(cx+ox, cy+oy, c)
			}
		}
	}
}

// Rect draws the outline of a w×h rectangle with top-left corner (x, y).
func (f *Frame) Rect(x, y, w, h int, c Color, thickness int) {
	f.Line(x, y, x+w, y, c, thickness, true)
	f.Line(x+w, y, x+w, y+h, c, thickness, true)
	f.Line(x+w, y+h, x, y+h, c, thickness, true)
	f.Line(x, y+h, x, y, c, thickness, true)
}

// FillPolygon scanline-fills the polygon described by pts. Edge inclusion
// is half-open (yi < y <= yj or the reverse) so a scanline passing through
// a shared vertex counts it exactly once.
func (f *Frame) FillPolygon(pts []Point, c Color) {
	if len(pts) < 3 {
		return
	}
	lo, hi := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		if p.Y < lo {
			lo = p.Y
		}
		if p.Y > hi {
			hi = p.Y
		}
	}
	if lo < 0 {
		lo = 0
	}
	if hi >= f.H {
		hi = f.H - 1
	}
	n := len(pts)
	nodes := make([]int, 0, n)
	for y := lo; y <= hi; y++ {
		nodes = nodes[:0]
		j := n - 1
		for i := 0; i < n; i++ {
			yi, yj := pts[i].Y, pts[j].Y
			if (yi < y && y <= yj) || (yj < y && y <= yi) {
				x := float64(pts[i].X) + float64(y-yi)/float64(yj-yi)*float64(pts[j].X-pts[i].X)
				nodes = append(nodes, int(x))
			}
			j = i
		}
		sort.Ints(nodes)
		for k := 0; k+1 < len(nodes); k += 2 {
			x0, x1 := nodes[k], nodes[k+1]
			if x0 < 0 {
				x0 = 0
			}
			if x1 >= f.W {
				x1 = f.W - 1
			}
			for x := x0; x <= x1; x++ {
				f.PutBlend(x, y, c)
			}
		}
	}
}

const (
	arrowHeadAngle  = 25.0 * math.Pi / 180.0
	arrowHeadLength = 28.0
)

// Arrow draws a shaft from (x1, y1) to (x2, y2) and a filled triangular
// head at the tip, wings swept back 28 units at ±25° off the shaft.
func (f *Frame) Arrow(x1, y1, x2, y2 int, c Color, thickness int) {
	f.Line(x1, y1, x2, y2, c, thickness, true)
	ang := math.Atan2(float64(y2-y1), float64(x2-x1))
	lx := int(float64(x2) - arrowHeadLength*math.Cos(ang-arrowHeadAngle))
	ly := int(float64(y2) - arrowHeadLength*math.Sin(ang-arrowHeadAngle))
	rx := int(float64(x2) - arrowHeadLength*math.Cos(ang+arrowHeadAngle))
	ry := int(float64(y2) - arrowHeadLength*math.Sin(ang+arrowHeadAngle))
	f.FillPolygon([]Point{{x2, y2}, {lx, ly}, {rx, ry}}, c)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
