package vecedit

import "math"

// AlignmentType classifies the relationship between two control handles
// sharing an anchor. It is always derived from current positions, never
// stored: persisting it would create a second source of truth that desyncs
// from geometry after any edit.
type AlignmentType uint8

const (
	// AlignIndependent handles move freely.
	AlignIndependent AlignmentType = iota
	// AlignAligned handles share an axis through the anchor but keep
	// visibly different lengths.
	AlignAligned
	// AlignMirrored handles share an axis and have equal lengths.
	AlignMirrored
)

func (a AlignmentType) String() string {
	switch a {
	case AlignAligned:
		return "aligned"
	case AlignMirrored:
		return "mirrored"
	default:
		return "independent"
	}
}

const (
	// alignmentDotTolerance is cos of roughly 10 degrees: handles whose
	// directions from the anchor are this close to opposite count as
	// aligned or mirrored.
	alignmentDotTolerance = 0.985
	// alignmentLengthRatio separates mirrored (near-equal lengths) from
	// merely aligned pairs.
	alignmentLengthRatio = 0.9
	// closingSeamTolerance is how close a subpath's last point must sit
	// to its MoveTo before handles pair across the closing seam.
	closingSeamTolerance = 0.1

	// Construction rule for the aligned relationship.
	alignedLengthFactor = 0.7
	minAlignedLength    = 15.0
	minLengthContrast   = 5.0

	// Nudge applied when breaking an aligned pair apart.
	independentNudgeMin    = 10.0
	independentNudgeFactor = 0.2
)

// commandStart returns the start point of the segment drawn by
// commands[i]: the end of the previous command, with ClosePath resolving
// to the subpath's MoveTo position.
func commandStart(commands []Command, i int) Point {
	var start, cur Point
	for j := 0; j < i && j < len(commands); j++ {
		switch commands[j].Op {
		case MoveTo:
			start = commands[j].Position
			cur = start
		case LineTo, CubicTo:
			cur = commands[j].Position
		case ClosePath:
			cur = start
		}
	}
	return cur
}

// subpathMoveIndex returns the index of the MoveTo opening the subpath
// containing commands[i], or -1 if there is none.
func subpathMoveIndex(commands []Command, i int) int {
	for j := i; j >= 0; j-- {
		if commands[j].Op == MoveTo {
			return j
		}
	}
	return -1
}

// subpathEnd returns the exclusive end index of the subpath starting at
// the MoveTo at index mi.
func subpathEnd(commands []Command, mi int) int {
	for j := mi + 1; j < len(commands); j++ {
		if commands[j].Op == MoveTo {
			return j
		}
	}
	return len(commands)
}

// FindPairedControlPoint locates the handle paired with the handle at
// (commandIndex, pointIndex) across their shared anchor. An incoming
// handle (pointIndex 1) pairs with the outgoing handle of the next curve
// command; an outgoing handle (pointIndex 0) pairs with the incoming
// handle of the previous one. When no adjacent curve exists, the
// subpath-closing seam is tried: if the current segment endpoint lies
// within closingSeamTolerance of the subpath's MoveTo, the handle pairs
// with the curve on the other side of the seam. The second return value is
// false when the handle is an open endpoint.
func FindPairedControlPoint(commands []Command, commandIndex, pointIndex int) (ControlPoint, bool) {
	if commandIndex < 0 || commandIndex >= len(commands) {
		return ControlPoint{}, false
	}
	c := commands[commandIndex]
	if c.Op != CubicTo {
		return ControlPoint{}, false
	}
	switch pointIndex {
	case 1:
		return findForwardPair(commands, commandIndex)
	case 0:
		return findBackwardPair(commands, commandIndex)
	default:
		return ControlPoint{}, false
	}
}

// findForwardPair pairs the incoming handle of commands[ci] with the
// outgoing handle of the next curve, anchored at commands[ci].Position.
func findForwardPair(commands []Command, ci int) (ControlPoint, bool) {
	anchor := commands[ci].Position

	j := ci + 1
	for j < len(commands) && commands[j].Op == ClosePath {
		j++
	}
	if j < len(commands) && commands[j].Op == CubicTo {
		return pairedHandle(commands, j, 0, anchor), true
	}

	// Closing seam: the subpath's last point coincides with its MoveTo.
	mi := subpathMoveIndex(commands, ci)
	if mi < 0 {
		return ControlPoint{}, false
	}
	mpos := commands[mi].Position
	if anchor.Distance(mpos) > closingSeamTolerance {
		return ControlPoint{}, false
	}
	end := subpathEnd(commands, mi)
	for k := mi + 1; k < end; k++ {
		if commands[k].Op != CubicTo {
			continue
		}
		if k == ci {
			return ControlPoint{}, false
		}
		// Guard against open paths whose last point coincidentally
		// matches the start: the first curve must truly leave the
		// MoveTo point.
		if commandStart(commands, k).Distance(mpos) > closingSeamTolerance {
			return ControlPoint{}, false
		}
		return pairedHandle(commands, k, 0, mpos), true
	}
	return ControlPoint{}, false
}

// findBackwardPair pairs the outgoing handle of commands[ci] with the
// incoming handle of the previous curve, anchored at the segment start.
func findBackwardPair(commands []Command, ci int) (ControlPoint, bool) {
	anchor := commandStart(commands, ci)

	j := ci - 1
	for j >= 0 && commands[j].Op == ClosePath {
		j--
	}
	if j >= 0 && commands[j].Op == CubicTo {
		return pairedHandle(commands, j, 1, anchor), true
	}

	mi := subpathMoveIndex(commands, ci)
	if mi < 0 {
		return ControlPoint{}, false
	}
	mpos := commands[mi].Position
	if anchor.Distance(mpos) > closingSeamTolerance {
		return ControlPoint{}, false
	}
	// Pair with the last curve in the subpath whose end point returns to
	// the MoveTo position.
	end := subpathEnd(commands, mi)
	for k := end - 1; k > mi; k-- {
		if commands[k].Op != CubicTo || k == ci {
			continue
		}
		if commands[k].Position.Distance(mpos) > closingSeamTolerance {
			return ControlPoint{}, false
		}
		return pairedHandle(commands, k, 1, mpos), true
	}
	return ControlPoint{}, false
}

func pairedHandle(commands []Command, ci, pi int, anchor Point) ControlPoint {
	assocCmd, assocPt := ci, 2
	if pi == 0 {
		// The outgoing handle belongs to the point the segment starts
		// from; resolve through the extracted points for the address.
		assocCmd, assocPt = -1, -1
	}
	return ControlPoint{
		Position:               commands[ci].Point(pi),
		CommandIndex:           ci,
		PointIndex:             pi,
		Anchor:                 anchor,
		IsControl:              true,
		AssociatedCommandIndex: assocCmd,
		AssociatedPointIndex:   assocPt,
	}
}

// DetermineControlPointAlignment classifies the relationship of two paired
// handles around their shared anchor. Zero-length handles are independent;
// near-opposite directions (within alignmentDotTolerance) are mirrored
// when their lengths match within alignmentLengthRatio and aligned
// otherwise.
func DetermineControlPointAlignment(point, paired ControlPoint, anchor Point) AlignmentType {
	v1 := point.Position.Sub(anchor)
	v2 := paired.Position.Sub(anchor)
	l1 := v1.Length()
	l2 := v2.Length()
	if l1 == 0 || l2 == 0 {
		return AlignIndependent
	}
	dot := v1.Normalize().Dot(v2.Normalize().Neg())
	if dot <= alignmentDotTolerance {
		return AlignIndependent
	}
	if math.Min(l1, l2)/math.Max(l1, l2) > alignmentLengthRatio {
		return AlignMirrored
	}
	return AlignAligned
}

// AdjustControlPointForAlignment recomputes point's position so that its
// relationship to pairedPoint around anchor satisfies target:
//
//   - AlignMirrored: opposite direction, equal length.
//   - AlignAligned: opposite direction, alignedLengthFactor of the paired
//     length, at least minAlignedLength and differing from the paired
//     length by at least minLengthContrast so the pair stays visually
//     distinct from mirrored.
//   - AlignIndependent: no-op unless the pair is currently aligned, in
//     which case the point is nudged perpendicular to the shared axis.
func AdjustControlPointForAlignment(point, pairedPoint ControlPoint, anchor Point, target AlignmentType) ControlPoint {
	pv := pairedPoint.Position.Sub(anchor)
	pl := pv.Length()
	if pl == 0 {
		return point
	}
	dir := pv.Normalize().Neg()

	switch target {
	case AlignMirrored:
		point.Position = anchor.Add(dir.Mul(pl))
	case AlignAligned:
		point.Position = anchor.Add(dir.Mul(alignedLength(pl)))
	case AlignIndependent:
		cur := point.Position.Sub(anchor)
		if cur.IsZero() {
			return point
		}
		if cur.Normalize().Dot(dir) <= alignmentDotTolerance {
			return point
		}
		nudge := math.Max(independentNudgeMin, independentNudgeFactor*cur.Length())
		point.Position = point.Position.Add(pv.Normalize().Perp().Mul(nudge))
	}
	point.Anchor = anchor
	return point
}

// alignedLength derives the aligned handle length from the paired handle
// length: 70% of it, floored at minAlignedLength, kept at least
// minLengthContrast away from the paired length.
func alignedLength(pairedLen float64) float64 {
	l := alignedLengthFactor * pairedLen
	if l < minAlignedLength {
		l = minAlignedLength
	}
	if math.Abs(pairedLen-l) < minLengthContrast {
		if pairedLen-minLengthContrast >= minAlignedLength {
			l = pairedLen - minLengthContrast
		} else {
			l = pairedLen + minLengthContrast
		}
	}
	return l
}

// PropagateAlignment applies a dragged handle position and, while the pair
// is aligned or mirrored, recomputes the paired handle so the relationship
// holds continuously during the drag rather than only at drag end.
func PropagateAlignment(commands []Command, dragged ControlPoint, target AlignmentType) []Command {
	out := UpdateCommands(commands, []ControlPoint{dragged})
	if target == AlignIndependent {
		return out
	}
	paired, ok := FindPairedControlPoint(out, dragged.CommandIndex, dragged.PointIndex)
	if !ok {
		return out
	}
	current := dragged
	current.Anchor = paired.Anchor
	adjusted := AdjustControlPointForAlignment(paired, current, paired.Anchor, target)
	return UpdateCommands(out, []ControlPoint{adjusted})
}
