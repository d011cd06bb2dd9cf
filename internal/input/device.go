// Package input synthesizes pointer and keyboard events through the
// XTEST extension. Pointer moves are eased over several steps so target
// applications see a plausible motion path instead of a teleport.
package input

import (
	"fmt"
	"math"
	"time"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgb/xtest"
	"github.com/BurntSushi/xgbutil/keybind"

	"github.com/1broseidon/deskloop/internal/dispatch"
	"github.com/1broseidon/deskloop/internal/x11"
)

const (
	moveSteps    = 24
	moveDuration = 300 * time.Millisecond
	keyDelay     = 15 * time.Millisecond
)

// Device drives the X server's pointer and keyboard.
type Device struct {
	conn *x11.Connection
}

func NewDevice(conn *x11.Connection) *Device {
	return &Device{conn: conn}
}

// MoveSmoothly eases the pointer from its current position to (x, y)
// with a smoothstep curve.
func (d *Device) MoveSmoothly(x, y int) error {
	ptr, err := xproto.QueryPointer(d.conn.XUtil.Conn(), d.conn.Root).Reply()
	if err != nil {
		return fmt.Errorf("query pointer failed: %w", err)
	}
	sx, sy := float64(ptr.RootX), float64(ptr.RootY)
	dx, dy := float64(x)-sx, float64(y)-sy

	stepPause := moveDuration / moveSteps
	for i := 1; i <= moveSteps; i++ {
		t := float64(i) / moveSteps
		e := t * t * (3 - 2*t)
		px := int16(math.Round(sx + dx*e))
		py := int16(math.Round(sy + dy*e))
		if err := d.fakeMotion(px, py); err != nil {
			return err
		}
		time.Sleep(stepPause)
	}
	return nil
}

func (d *Device) Press(b dispatch.Button) error {
	return d.fakeButton(xproto.ButtonPress, byte(b))
}

func (d *Device) Release(b dispatch.Button) error {
	return d.fakeButton(xproto.ButtonRelease, byte(b))
}

// SendKey types a single rune, holding Shift where the US layout needs
// it. Runes without a keysym mapping are reported, not silently skipped.
func (d *Device) SendKey(r rune) error {
	name, shift, ok := keysymForRune(r)
	if !ok {
		return fmt.Errorf("no keysym mapping for %q", r)
	}
	codes := keybind.StrToKeycodes(d.conn.XUtil, name)
	if len(codes) == 0 {
		return fmt.Errorf("keysym %q has no keycode on this keyboard", name)
	}
	code := byte(codes[0])

	if shift {
		shiftCodes := keybind.StrToKeycodes(d.conn.XUtil, "Shift_L")
		if len(shiftCodes) == 0 {
			return fmt.Errorf("no keycode for Shift_L")
		}
		shiftCode := byte(shiftCodes[0])
		if err := d.fakeKey(xproto.KeyPress, shiftCode); err != nil {
			return err
		}
		defer d.fakeKey(xproto.KeyRelease, shiftCode)
	}

	if err := d.fakeKey(xproto.KeyPress, code); err != nil {
		return err
	}
	if err := d.fakeKey(xproto.KeyRelease, code); err != nil {
		return err
	}
	time.Sleep(keyDelay)
	return nil
}

func (d *Device) fakeMotion(x, y int16) error {
	// Detail 0 makes the motion absolute in root coordinates.
	return xtest.FakeInputChecked(
		d.conn.XUtil.Conn(),
		xproto.MotionNotify, 0, 0, d.conn.Root, x, y, 0,
	).Check()
}

func (d *Device) fakeButton(kind byte, button byte) error {
	return xtest.FakeInputChecked(
		d.conn.XUtil.Conn(),
		kind, button, 0, d.conn.Root, 0, 0, 0,
	).Check()
}

func (d *Device) fakeKey(kind byte, code byte) error {
	return xtest.FakeInputChecked(
		d.conn.XUtil.Conn(),
		kind, code, 0, d.conn.Root, 0, 0, 0,
	).Check()
}
