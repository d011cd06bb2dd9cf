// Package action parses one line of model-generated text into a typed
// desktop action. The grammar is deliberately closed: a call name followed
// by a parenthesized list of literal arguments (integers, floats, quoted
// strings). Nothing is ever evaluated; malformed input parses to nothing.
package action

// Kind identifies the action named by a parsed line.
type Kind int

const (
	Unrecognized Kind = iota
	LeftClick
	RightClick
	DoubleLeftClick
	Drag
	Type
	Screenshot
	Focus
)

// String returns the wire name of the action kind.
func (k Kind) String() string {
	switch k {
	case LeftClick:
		return "left_click"
	case RightClick:
		return "right_click"
	case DoubleLeftClick:
		return "double_left_click"
	case Drag:
		return "drag"
	case Type:
		return "type"
	case Screenshot:
		return "screenshot"
	case Focus:
		return "focus"
	}
	return "unrecognized"
}

// Action is one decoded call. Coordinate fields are normalized values,
// nominally 0..1000; out-of-range values are clamped at use time, never
// rejected here.
type Action struct {
	Kind Kind
	Raw  string // original line, preserved for result reporting

	X, Y   int // click point, or drag start
	X2, Y2 int // drag end
	Text   string
}

// Decode parses a line and validates arity for the kinds that carry
// arguments. Lines that parse as calls but name an unknown function or
// carry too few arguments decode to Kind Unrecognized. Lines that do not
// parse as calls at all return ok=false.
func Decode(line string) (Action, bool) {
	name, args, ok := ParseCall(line)
	if !ok {
		return Action{}, false
	}
	a := Action{Kind: Unrecognized, Raw: line}
	switch name {
	case "left_click", "right_click", "double_left_click":
		x, okX := args.Int(0)
		y, okY := args.Int(1)
		if !okX || !okY {
			return a, true
		}
		switch name {
		case "left_click":
			a.Kind = LeftClick
		case "right_click":
			a.Kind = RightClick
		default:
			a.Kind = DoubleLeftClick
		}
		a.X, a.Y = x, y
	case "drag":
		x1, ok1 := args.Int(0)
		y1, ok2 := args.Int(1)
		x2, ok3 := args.Int(2)
		y2, ok4 := args.Int(3)
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return a, true
		}
		a.Kind = Drag
		a.X, a.Y, a.X2, a.Y2 = x1, y1, x2, y2
	case "type":
		if len(args) == 0 {
			return a, true
		}
		a.Kind = Type
		a.Text = args[0].Text()
	case "screenshot":
		a.Kind = Screenshot
	case "focus":
		a.Kind = Focus
	}
	return a, true
}
