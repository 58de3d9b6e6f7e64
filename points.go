package vecedit

// ExtractEditablePoints walks the commands in order and produces every
// addressable point. MoveTo/LineTo contribute one on-curve point; CubicTo
// contributes its two handles and its end point. Handle anchors are
// recomputed from the current geometry on every call: the outgoing handle
// (Control1) anchors to the previous command's end point — or to the
// subpath's MoveTo when the previous command is a ClosePath — and the
// incoming handle (Control2) anchors to the segment's end.
func ExtractEditablePoints(commands []Command) []ControlPoint {
	points := make([]ControlPoint, 0, len(commands))

	var (
		prevEnd   Point
		prevCmd   = -1
		prevPoint = -1
		start     Point
		startCmd  = -1
	)
	for i, c := range commands {
		switch c.Op {
		case MoveTo:
			points = append(points, onCurvePoint(c.Position, i, 0))
			start = c.Position
			startCmd = i
			prevEnd, prevCmd, prevPoint = c.Position, i, 0
		case LineTo:
			points = append(points, onCurvePoint(c.Position, i, 0))
			prevEnd, prevCmd, prevPoint = c.Position, i, 0
		case CubicTo:
			points = append(points,
				ControlPoint{
					Position:               c.Control1,
					CommandIndex:           i,
					PointIndex:             0,
					Anchor:                 prevEnd,
					IsControl:              true,
					AssociatedCommandIndex: prevCmd,
					AssociatedPointIndex:   prevPoint,
				},
				ControlPoint{
					Position:               c.Control2,
					CommandIndex:           i,
					PointIndex:             1,
					Anchor:                 c.Position,
					IsControl:              true,
					AssociatedCommandIndex: i,
					AssociatedPointIndex:   2,
				},
				onCurvePoint(c.Position, i, 2),
			)
			prevEnd, prevCmd, prevPoint = c.Position, i, 2
		case ClosePath:
			// The pen returns to the subpath start; a handle on a
			// following command pivots around the MoveTo point.
			prevEnd, prevCmd, prevPoint = start, startCmd, 0
		}
	}
	return points
}

func onCurvePoint(p Point, commandIndex, pointIndex int) ControlPoint {
	return ControlPoint{
		Position:               p,
		CommandIndex:           commandIndex,
		PointIndex:             pointIndex,
		Anchor:                 p,
		AssociatedCommandIndex: -1,
		AssociatedPointIndex:   -1,
	}
}

// UpdateCommands applies point updates by (commandIndex, pointIndex)
// address and returns a new command list; the input is never mutated.
// Updates with out-of-range addresses are ignored, and unaddressed points
// are left untouched.
func UpdateCommands(commands []Command, updates []ControlPoint) []Command {
	out := CloneCommands(commands)
	for _, u := range updates {
		if u.CommandIndex < 0 || u.CommandIndex >= len(out) {
			continue
		}
		c := &out[u.CommandIndex]
		if u.PointIndex < 0 || u.PointIndex >= c.PointCount() {
			continue
		}
		c.SetPoint(u.PointIndex, u.Position)
	}
	return out
}
