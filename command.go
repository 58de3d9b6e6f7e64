package vecedit

import "slices"

// CommandOp identifies the kind of a path command.
type CommandOp uint8

const (
	// MoveTo starts a new subpath at Position without drawing.
	MoveTo CommandOp = iota + 1
	// LineTo draws a straight line to Position.
	LineTo
	// CubicTo draws a cubic Bézier to Position using Control1 and Control2.
	CubicTo
	// ClosePath closes the current subpath back to its MoveTo point.
	ClosePath
)

// Letter returns the path-syntax letter for the command kind.
func (op CommandOp) Letter() string {
	switch op {
	case MoveTo:
		return "M"
	case LineTo:
		return "L"
	case CubicTo:
		return "C"
	case ClosePath:
		return "Z"
	default:
		return "?"
	}
}

func (op CommandOp) String() string { return op.Letter() }

// Command is one path instruction. A valid subpath begins with MoveTo and
// a ClosePath only follows at least one point-bearing command.
//
// Control1 and Control2 are meaningful for CubicTo only; Position is
// meaningful for everything except ClosePath.
type Command struct {
	Op       CommandOp
	Control1 Point
	Control2 Point
	Position Point
}

// Move creates a MoveTo command.
func Move(p Point) Command { return Command{Op: MoveTo, Position: p} }

// Line creates a LineTo command.
func Line(p Point) Command { return Command{Op: LineTo, Position: p} }

// Cubic creates a CubicTo command.
func Cubic(c1, c2, p Point) Command {
	return Command{Op: CubicTo, Control1: c1, Control2: c2, Position: p}
}

// Close creates a ClosePath command.
func Close() Command { return Command{Op: ClosePath} }

// PointCount returns the number of addressable points in the command:
// 1 for MoveTo/LineTo, 3 for CubicTo, 0 for ClosePath.
func (c Command) PointCount() int {
	switch c.Op {
	case MoveTo, LineTo:
		return 1
	case CubicTo:
		return 3
	default:
		return 0
	}
}

// Point returns the addressable point at index i. For CubicTo the order is
// Control1 (0), Control2 (1), Position (2); MoveTo and LineTo expose only
// Position at index 0. Out-of-range indexes return the zero Point.
func (c Command) Point(i int) Point {
	switch c.Op {
	case MoveTo, LineTo:
		if i == 0 {
			return c.Position
		}
	case CubicTo:
		switch i {
		case 0:
			return c.Control1
		case 1:
			return c.Control2
		case 2:
			return c.Position
		}
	}
	return Point{}
}

// SetPoint replaces the addressable point at index i. Out-of-range indexes
// are ignored.
func (c *Command) SetPoint(i int, p Point) {
	switch c.Op {
	case MoveTo, LineTo:
		if i == 0 {
			c.Position = p
		}
	case CubicTo:
		switch i {
		case 0:
			c.Control1 = p
		case 1:
			c.Control2 = p
		case 2:
			c.Position = p
		}
	}
}

// IsFinite reports whether every coordinate carried by the command is a
// finite number.
func (c Command) IsFinite() bool {
	switch c.Op {
	case MoveTo, LineTo:
		return c.Position.IsFinite()
	case CubicTo:
		return c.Control1.IsFinite() && c.Control2.IsFinite() && c.Position.IsFinite()
	default:
		return true
	}
}

// CloneCommands returns a copy of the command list. Command is a value
// type, so a slice clone is a deep copy.
func CloneCommands(commands []Command) []Command {
	return slices.Clone(commands)
}

// ControlPoint is a projection of one addressable point out of a command
// list: the point itself plus enough addressing to write it back.
type ControlPoint struct {
	// Position is the current location of the point.
	Position Point
	// CommandIndex and PointIndex address the point within the command
	// list (see Command.Point for the index convention).
	CommandIndex int
	PointIndex   int
	// Anchor is the geometric point this handle pivots around: the
	// segment start for an outgoing handle, the segment end for an
	// incoming one. For non-control points Anchor equals Position.
	Anchor Point
	// IsControl is true for Bézier handles, false for on-curve points.
	IsControl bool
	// AssociatedCommandIndex/AssociatedPointIndex address the on-curve
	// point the handle belongs to, or -1 when not applicable.
	AssociatedCommandIndex int
	AssociatedPointIndex   int
}

// Ref returns the (commandIndex, pointIndex) address of the point.
func (cp ControlPoint) Ref() (int, int) {
	return cp.CommandIndex, cp.PointIndex
}

// HandleVec returns the displacement of the handle from its anchor.
func (cp ControlPoint) HandleVec() Vec2 {
	return cp.Position.Sub(cp.Anchor)
}

// FillRule selects the algorithm used to decide path interiors.
type FillRule uint8

const (
	// FillNonZero is the non-zero winding rule.
	FillNonZero FillRule = iota
	// FillEvenOdd is the even-odd rule.
	FillEvenOdd
)

// PathData is a complete editable path: its commands in paint order plus
// the style attributes that affect geometry queries (stroke width expands
// measured bounds).
type PathData struct {
	Commands    []Command
	StrokeWidth float64
	Stroke      string
	Fill        string
	FillRule    FillRule
	// Transform optionally caches the gesture transform last applied to
	// the path. It is a snapshot for callers, never consulted by the
	// geometry itself.
	Transform *Matrix
}

// Clone returns a deep copy of the path data.
func (d PathData) Clone() PathData {
	out := d
	out.Commands = CloneCommands(d.Commands)
	if d.Transform != nil {
		t := *d.Transform
		out.Transform = &t
	}
	return out
}

// String serializes the commands to path text.
func (d PathData) String() string {
	return CommandsToString(d.Commands)
}

// Element pairs a stable identity with path data. Visibility and locking
// live outside the core; spatial queries take an ElementPredicate to
// filter eligible elements.
type Element struct {
	ID   string
	Path PathData
}

// ElementPredicate reports whether an element participates in a spatial
// query (typically: visible and not locked).
type ElementPredicate func(Element) bool

// UpdateElementFunc is the injected "update element" collaborator: it
// receives revised path data for the element with the given id.
type UpdateElementFunc func(id string, data PathData)

// ClearFeedbackFunc is the injected "clear transient feedback"
// collaborator, invoked when a gesture is cancelled.
type ClearFeedbackFunc func()

// Viewport describes the caller's current view: zoom factor and pan
// offsets. The core uses it only to convert screen-space thresholds into
// path space.
type Viewport struct {
	Zoom       float64
	PanX, PanY float64
}

// PathDistance converts a screen-space distance (pixels) to path space.
// A zero or negative zoom is treated as 1.
func (v Viewport) PathDistance(px float64) float64 {
	if v.Zoom <= 0 {
		return px
	}
	return px / v.Zoom
}

// Modifiers is the set of modifier keys held during a pointer event.
type Modifiers uint8

const (
	// ModEdit requests point/handle editing instead of placement while
	// the pen tool is active.
	ModEdit Modifiers = 1 << iota
	// ModToggle merges a new selection into the existing one instead of
	// replacing it.
	ModToggle
)

// Has reports whether all bits of m are set.
func (mods Modifiers) Has(m Modifiers) bool { return mods&m == m }
