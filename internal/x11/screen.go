package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/deskloop/internal/raster"
)

// Size returns the root window dimensions in pixels.
func (c *Connection) Size() (int, int) {
	screen := c.XUtil.Screen()
	return int(screen.WidthInPixels), int(screen.HeightInPixels)
}

// Capture grabs the full root window as an RGBA frame.
func (c *Connection) Capture() (*raster.Frame, error) {
	w, h := c.Size()

	reply, err := xproto.GetImage(
		c.XUtil.Conn(),
		xproto.ImageFormatZPixmap,
		xproto.Drawable(c.Root),
		0, 0, uint16(w), uint16(h),
		0xffffffff,
	).Reply()
	if err != nil {
		return nil, fmt.Errorf("GetImage failed: %w", err)
	}

	switch reply.Depth {
	case 24, 32:
	default:
		return nil, fmt.Errorf("unsupported root depth %d", reply.Depth)
	}
	if len(reply.Data) < w*h*4 {
		return nil, fmt.Errorf("short image reply: %d bytes for %dx%d", len(reply.Data), w, h)
	}

	// ZPixmap at depth 24/32 packs pixels as little-endian BGRX words.
	f := raster.NewFrame(w, h)
	for i := 0; i < w*h; i++ {
		f.Pix[i*4+0] = reply.Data[i*4+2]
		f.Pix[i*4+1] = reply.Data[i*4+1]
		f.Pix[i*4+2] = reply.Data[i*4+0]
		f.Pix[i*4+3] = 255
	}
	return f, nil
}
