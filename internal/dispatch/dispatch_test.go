package dispatch

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/1broseidon/deskloop/internal/capture"
	"github.com/1broseidon/deskloop/internal/raster"
	"github.com/1broseidon/deskloop/internal/sandbox"
)

type fakeScreen struct{ w, h int }

func (s fakeScreen) Size() (int, int) { return s.w, s.h }

func (s fakeScreen) Capture() (*raster.Frame, error) {
	return raster.NewOpaqueFrame(s.w, s.h, raster.Color{R: 0, G: 0, B: 0, A: 255}), nil
}

// recordingDevice logs every capability call; failOn makes one call kind
// return an error.
type recordingDevice struct {
	calls  []string
	failOn string
}

func (d *recordingDevice) record(call string) error {
	d.calls = append(d.calls, call)
	if d.failOn != "" && len(call) >= len(d.failOn) && call[:len(d.failOn)] == d.failOn {
		return errors.New("injected failure")
	}
	return nil
}

func (d *recordingDevice) MoveSmoothly(x, y int) error {
	return d.record(fmt.Sprintf("move(%d,%d)", x, y))
}
func (d *recordingDevice) Press(b Button) error   { return d.record(fmt.Sprintf("press(%d)", b)) }
func (d *recordingDevice) Release(b Button) error { return d.record(fmt.Sprintf("release(%d)", b)) }
func (d *recordingDevice) SendKey(ch rune) error  { return d.record(fmt.Sprintf("key(%c)", ch)) }

func newDispatcher(t *testing.T, dev InputDevice) *Dispatcher {
	t.Helper()
	return &Dispatcher{
		Input: dev,
		Renderer: &capture.Renderer{
			Screen:  fakeScreen{w: 100, h: 100},
			Resizer: capture.BiLinearResizer{},
			Store:   sandbox.NewStore(filepath.Join(t.TempDir(), "canvas.bmp")),
		},
	}
}

func rawActions(lines ...string) string {
	out := "ACTIONS:\n"
	for _, l := range lines {
		out += l + "\n"
	}
	return out
}

func TestDispatch_Classification(t *testing.T) {
	d := newDispatcher(t, &recordingDevice{})
	res := d.Dispatch(Request{Raw: rawActions(
		"left_click(500,500)",
		"screenshot()",
		"focus(0,0,1000,1000)",
		"foobar(1,2)",
		"drag(0,0,1000,1000)",
		"plain narrative line",
	)})

	wantExecuted := []string{"left_click(500,500)", "drag(0,0,1000,1000)"}
	if !reflect.DeepEqual(res.Executed, wantExecuted) {
		t.Fatalf("executed: expected %v, got %v", wantExecuted, res.Executed)
	}
	wantNoted := []string{"screenshot()", "focus(0,0,1000,1000)"}
	if !reflect.DeepEqual(res.Noted, wantNoted) {
		t.Fatalf("noted: expected %v, got %v", wantNoted, res.Noted)
	}
	if !res.WantsScreenshot {
		t.Fatalf("expected wants_screenshot")
	}
	if res.ScreenshotB64 == "" {
		t.Fatalf("expected a screenshot to be rendered")
	}
}

func TestDispatch_UnknownNameVanishes(t *testing.T) {
	d := newDispatcher(t, &recordingDevice{})
	res := d.Dispatch(Request{Raw: rawActions("foobar(1,2)")})
	if len(res.Executed) != 0 || len(res.Noted) != 0 {
		t.Fatalf("expected empty outcome, got executed=%v noted=%v", res.Executed, res.Noted)
	}
}

func TestDispatch_ExecuteDisabledNotesEverything(t *testing.T) {
	d := newDispatcher(t, &recordingDevice{})
	off := false
	res := d.Dispatch(Request{
		Raw:     rawActions("left_click(1,2)", `type("hi")`),
		Execute: &off,
	})
	if len(res.Executed) != 0 {
		t.Fatalf("expected nothing executed, got %v", res.Executed)
	}
	if len(res.Noted) != 2 {
		t.Fatalf("expected both lines noted, got %v", res.Noted)
	}
}

func TestDispatch_ToolGating(t *testing.T) {
	d := newDispatcher(t, &recordingDevice{})
	res := d.Dispatch(Request{
		Raw:   rawActions("left_click(1,2)", "drag(1,2,3,4)"),
		Tools: map[string]bool{"drag": false},
	})
	if !reflect.DeepEqual(res.Executed, []string{"left_click(1,2)"}) {
		t.Fatalf("expected only left_click executed, got %v", res.Executed)
	}
	if !reflect.DeepEqual(res.Noted, []string{"drag(1,2,3,4)"}) {
		t.Fatalf("expected drag noted, got %v", res.Noted)
	}
}

func TestDispatch_BadArityKnownToolIsNoted(t *testing.T) {
	d := newDispatcher(t, &recordingDevice{})
	res := d.Dispatch(Request{Raw: rawActions("left_click(5)")})
	if len(res.Executed) != 0 {
		t.Fatalf("expected nothing executed, got %v", res.Executed)
	}
	if !reflect.DeepEqual(res.Noted, []string{"left_click(5)"}) {
		t.Fatalf("expected bad-arity line noted, got %v", res.Noted)
	}
}

func TestDispatch_PhysicalExecutionDrivesDevice(t *testing.T) {
	dev := &recordingDevice{}
	d := newDispatcher(t, dev)
	res := d.Dispatch(Request{
		Raw:               rawActions("drag(0,0,1000,1000)"),
		PhysicalExecution: true,
	})
	if len(res.Executed) != 1 {
		t.Fatalf("expected drag executed, got %v", res.Executed)
	}
	// Screen is 100x100: normalized 1000 maps to 100.
	want := []string{"move(0,0)", "press(1)", "move(100,100)", "release(1)"}
	if !reflect.DeepEqual(dev.calls, want) {
		t.Fatalf("expected gesture %v, got %v", want, dev.calls)
	}
}

func TestDispatch_SandboxForcesPhysicalOff(t *testing.T) {
	dev := &recordingDevice{}
	d := newDispatcher(t, dev)
	res := d.Dispatch(Request{
		Raw:               rawActions("left_click(500,500)"),
		PhysicalExecution: true,
		Sandbox:           true,
	})
	if len(dev.calls) != 0 {
		t.Fatalf("expected no device calls in sandbox mode, got %v", dev.calls)
	}
	if len(res.Executed) != 1 {
		t.Fatalf("expected action still recorded as executed, got %v", res.Executed)
	}
}

func TestDispatch_DeviceFailureDemotesToNoted(t *testing.T) {
	dev := &recordingDevice{failOn: "press"}
	d := newDispatcher(t, dev)
	res := d.Dispatch(Request{
		Raw:               rawActions("left_click(500,500)", "right_click(100,100)"),
		PhysicalExecution: true,
	})
	if len(res.Executed) != 0 {
		t.Fatalf("expected failed actions out of executed, got %v", res.Executed)
	}
	want := []string{"left_click(500,500)", "right_click(100,100)"}
	if !reflect.DeepEqual(res.Noted, want) {
		t.Fatalf("expected failed actions noted, got %v", res.Noted)
	}
}

func TestDispatch_TypeSendsEachRune(t *testing.T) {
	dev := &recordingDevice{}
	d := newDispatcher(t, dev)
	d.Dispatch(Request{
		Raw:               rawActions(`type("ab")`),
		PhysicalExecution: true,
	})
	want := []string{"key(a)", "key(b)"}
	if !reflect.DeepEqual(dev.calls, want) {
		t.Fatalf("expected %v, got %v", want, dev.calls)
	}
}

func TestDispatch_NoInputDeviceFailsGracefully(t *testing.T) {
	d := newDispatcher(t, nil)
	res := d.Dispatch(Request{
		Raw:               rawActions("left_click(1,1)"),
		PhysicalExecution: true,
	})
	if len(res.Executed) != 0 {
		t.Fatalf("expected no execution without a device, got %v", res.Executed)
	}
	if len(res.Noted) != 1 {
		t.Fatalf("expected action noted, got %v", res.Noted)
	}
}

func TestDispatch_EmptyRawDefaults(t *testing.T) {
	d := newDispatcher(t, &recordingDevice{})
	res := d.Dispatch(Request{})
	if res.Executed == nil || res.Noted == nil {
		t.Fatalf("expected empty, non-nil slices")
	}
	if len(res.Executed) != 0 || len(res.Noted) != 0 || res.WantsScreenshot {
		t.Fatalf("expected empty outcome, got %+v", res)
	}
}
