// Package raster implements the RGBA8 pixel surface and the integer
// drawing primitives used for action annotation and the sandbox canvas.
// All primitives are bounds-checked and silently skip pixels outside the
// surface; coordinates arrive pre-mapped from normalized space and may
// legitimately land on or past an edge.
package raster

// Color is an RGBA8 quad. Alpha acts only as the source coefficient when
// blending; destination alpha is forced opaque by every write.
type Color struct {
	R, G, B, A uint8
}

// Point is an integer pixel position.
type Point struct {
	X, Y int
}

// Frame is a mutable RGBA8 pixel buffer, row-major top-to-bottom with a
// stride of W*4 bytes.
type Frame struct {
	W, H int
	Pix  []byte
}

// NewFrame returns a transparent-black frame of the given size.
func NewFrame(w, h int) *Frame {
	return &Frame{W: w, H: h, Pix: make([]byte, w*h*4)}
}

// NewOpaqueFrame returns a frame filled with the given color at full alpha.
func NewOpaqueFrame(w, h int, c Color) *Frame {
	f := NewFrame(w, h)
	for i := 0; i < len(f.Pix); i += 4 {
		f.Pix[i] = c.R
		f.Pix[i+1] = c.G
		f.Pix[i+2] = c.B
		f.Pix[i+3] = 255
	}
	return f
}

// FromPix wraps an existing RGBA buffer. The buffer must be exactly
// w*h*4 bytes; ownership passes to the frame.
func FromPix(pix []byte, w, h int) *Frame {
	return &Frame{W: w, H: h, Pix: pix}
}

// Clone returns a deep copy. Annotation always runs on a clone so the
// persisted sandbox surface is never polluted by marks.
func (f *Frame) Clone() *Frame {
	pix := make([]byte, len(f.Pix))
	copy(pix, f.Pix)
	return &Frame{W: f.W, H: f.H, Pix: pix}
}

// At returns the color stored at (x, y). Out-of-bounds reads return zero.
func (f *Frame) At(x, y int) Color {
	if x < 0 || y < 0 || x >= f.W || y >= f.H {
		return Color{}
	}
	i := (y*f.W + x) * 4
	return Color{f.Pix[i], f.Pix[i+1], f.Pix[i+2], f.Pix[i+3]}
}

// PutBlend writes one pixel with source-over blending. A fully opaque
// source overwrites; anything else interpolates per channel. Destination
// alpha always ends up 255.
func (f *Frame) PutBlend(x, y int, c Color) {
	if x < 0 || y < 0 || x >= f.W || y >= f.H {
		return
	}
	i := (y*f.W + x) * 4
	if c.A >= 255 {
		f.Pix[i] = c.R
		f.Pix[i+1] = c.G
		f.Pix[i+2] = c.B
		f.Pix[i+3] = 255
		return
	}
	sa := int(c.A)
	da := 255 - sa
	f.Pix[i] = uint8((int(c.R)*sa + int(f.Pix[i])*da) / 255)
	f.Pix[i+1] = uint8((int(c.G)*sa + int(f.Pix[i+1])*da) / 255)
	f.Pix[i+2] = uint8((int(c.B)*sa + int(f.Pix[i+2])*da) / 255)
	f.Pix[i+3] = 255
}

// PutOpaque writes one pixel unconditionally at full alpha. Sandbox
// strokes use this: persisted marks must be pure, never blended.
func (f *Frame) PutOpaque(x, y int, c Color) {
	if x < 0 || y < 0 || x >= f.W || y >= f.H {
		return
	}
	i := (y*f.W + x) * 4
	f.Pix[i] = c.R
	f.Pix[i+1] = c.G
	f.Pix[i+2] = c.B
	f.Pix[i+3] = 255
}
