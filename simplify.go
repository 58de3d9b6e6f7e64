package vecedit

import "slices"

// SimplifyPoints reduces a freehand point run in two passes. Pass 1 keeps
// the first point and then every on-curve point at least minDistance from
// the last kept on-curve point. Pass 2 is recursive Douglas-Peucker: the
// on-curve point furthest (perpendicular) from the chord between the run's
// first and last point splits the run when that distance exceeds
// tolerance; below tolerance the run collapses to its endpoints.
//
// Control points are never dropped and never serve as distance references;
// they pass through both passes untouched. The first and last point of the
// input always survive.
func SimplifyPoints(points []ControlPoint, tolerance, minDistance float64) []ControlPoint {
	if len(points) <= 2 {
		return slices.Clone(points)
	}
	kept := distanceFilter(points, minDistance)
	if len(kept) <= 2 {
		return kept
	}
	return douglasPeucker(kept, tolerance)
}

func distanceFilter(points []ControlPoint, minDistance float64) []ControlPoint {
	kept := make([]ControlPoint, 0, len(points))
	kept = append(kept, points[0])
	lastRef := points[0].Position
	for i := 1; i < len(points); i++ {
		p := points[i]
		switch {
		case p.IsControl:
			kept = append(kept, p)
		case i == len(points)-1:
			// The final point survives regardless of spacing.
			kept = append(kept, p)
		case p.Position.Distance(lastRef) >= minDistance:
			kept = append(kept, p)
			lastRef = p.Position
		}
	}
	return kept
}

func douglasPeucker(run []ControlPoint, tolerance float64) []ControlPoint {
	if len(run) <= 2 {
		return slices.Clone(run)
	}
	first := run[0]
	last := run[len(run)-1]

	maxDist := 0.0
	maxIdx := -1
	for i := 1; i < len(run)-1; i++ {
		if run[i].IsControl {
			continue
		}
		d := perpendicularDistance(run[i].Position, first.Position, last.Position)
		if d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}

	if maxIdx >= 0 && maxDist > tolerance {
		left := douglasPeucker(run[:maxIdx+1], tolerance)
		right := douglasPeucker(run[maxIdx:], tolerance)
		// The junction point appears in both halves; drop one copy.
		return append(left, right[1:]...)
	}

	// Collapse: endpoints plus any control points riding along.
	out := make([]ControlPoint, 0, len(run))
	out = append(out, first)
	for i := 1; i < len(run)-1; i++ {
		if run[i].IsControl {
			out = append(out, run[i])
		}
	}
	return append(out, last)
}

// perpendicularDistance returns the distance from p to the infinite line
// through a and b, or the distance to a when the chord is degenerate.
func perpendicularDistance(p, a, b Point) float64 {
	chord := b.Sub(a)
	length := chord.Length()
	if length == 0 {
		return p.Distance(a)
	}
	return abs(chord.Cross(p.Sub(a))) / length
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
