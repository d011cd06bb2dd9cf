package raster

import "strconv"

// digitRows holds a 5×7 bit matrix per digit, one row per element, bit 4
// the leftmost column.
var digitRows = [10][7]uint8{
	{0b01110, 0b10001, 0b10011, 0b10101, 0b11001, 0b10001, 0b01110}, // 0
	{0b00100, 0b01100, 0b00100, 0b00100, 0b00100, 0b00100, 0b01110}, // 1
	{0b01110, 0b10001, 0b00001, 0b00110, 0b01000, 0b10000, 0b11111}, // 2
	{0b01110, 0b10001, 0b00001, 0b00110, 0b00001, 0b10001, 0b01110}, // 3
	{0b00010, 0b00110, 0b01010, 0b10010, 0b11111, 0b00010, 0b00010}, // 4
	{0b11111, 0b10000, 0b11110, 0b00001, 0b00001, 0b10001, 0b01110}, // 5
	{0b00110, 0b01000, 0b10000, 0b11110, 0b10001, 0b10001, 0b01110}, // 6
	{0b11111, 0b00001, 0b00010, 0b00100, 0b01000, 0b01000, 0b01000}, // 7
	{0b01110, 0b10001, 0b10001, 0b01110, 0b10001, 0b10001, 0b01110}, // 8
	{0b01110, 0b10001, 0b10001, 0b01111, 0b00001, 0b00010, 0b01100}, // 9
}

const (
	glyphCols = 5
	glyphRows = 7
)

// drawGlyphBits stamps every on-bit of one digit as a scale×scale opaque
// block with the glyph centered on (cx+ox, cy+oy).
func (f *Frame) drawGlyphBits(cx, cy, d int, c Color, scale, ox, oy int) {
	gw := glyphCols * scale
	gh := glyphRows * scale
	left := cx - gw/2 + ox
	top := cy - gh/2 + oy
	for ri := 0; ri < glyphRows; ri++ {
		row := digitRows[d][ri]
		for ci := 0; ci < glyphCols; ci++ {
			if row&(1<<(glyphCols-1-ci)) == 0 {
				continue
			}
			for sy := 0; sy < scale; sy++ {
				for sx := 0; sx < scale; sx++ {
					f.PutOpaque(left+ci*scale+sx, top+ri*scale+sy, c)
				}
			}
		}
	}
}

// DrawDigit renders one digit centered on (cx, cy): an outline pass first,
// stamping the glyph at the eight ±2px neighbor offsets in the outline
// color, then the fill pass on top.
func (f *Frame) DrawDigit(cx, cy, d int, fill, outline Color, scale int) {
	for oy := -1; oy <= 1; oy++ {
		for ox := -1; ox <= 1; ox++ {
			if ox == 0 && oy == 0 {
				continue
			}
			f.drawGlyphBits(cx, cy, d, outline, scale, ox*2, oy*2)
		}
	}
	f.drawGlyphBits(cx, cy, d, fill, scale, 0, 0)
}

// DrawNumber renders n centered horizontally on (cx, cy) with one scaled
// unit of gap between digits.
func (f *Frame) DrawNumber(cx, cy, n int, fill, outline Color, scale int) {
	s := strconv.Itoa(n)
	gw := glyphCols * scale
	gap := scale
	total := len(s)*gw + (len(s)-1)*gap
	start := cx - total/2 + gw/2
	for i, ch := range s {
		f.DrawDigit(start+i*(gw+gap), cy, int(ch-'0'), fill, outline, scale)
	}
}
