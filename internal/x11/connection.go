package x11

import (
	"fmt"
	"os"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgb/xtest"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
)

// Options carry connection overrides, useful under nested or headless
// X servers (Xephyr, Xvfb).
type Options struct {
	Display    string // empty uses $DISPLAY
	XAuthority string // empty uses $XAUTHORITY
}

// Connection manages the X11 connection and core X resources.
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window
}

// NewConnection establishes a connection to the X11 server and
// initializes the extensions deskloop needs (XTEST for synthetic input,
// keybind for keysym lookups).
func NewConnection(opts Options) (*Connection, error) {
	if opts.XAuthority != "" {
		os.Setenv("XAUTHORITY", opts.XAuthority)
	}

	xu, err := xgbutil.NewConnDisplay(opts.Display)
	if err != nil {
		return nil, fmt.Errorf("x11 connect failed: %w", err)
	}

	if err := xtest.Init(xu.Conn()); err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("xtest init failed: %w", err)
	}
	keybind.Initialize(xu)

	return &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// Close cleanly disconnects from the X11 server.
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}
