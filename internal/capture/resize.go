package capture

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/1broseidon/deskloop/internal/raster"
)

// BiLinearResizer scales frames with x/image's bilinear kernel. Frames are
// opaque, so premultiplied RGBA and straight RGBA coincide and the buffer
// can be wrapped without conversion.
type BiLinearResizer struct{}

func (BiLinearResizer) Scale(f *raster.Frame, w, h int) *raster.Frame {
	src := &image.RGBA{Pix: f.Pix, Stride: f.W * 4, Rect: image.Rect(0, 0, f.W, f.H)}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Rect, src, src.Rect, draw.Src, nil)
	return raster.FromPix(dst.Pix, w, h)
}
