package vecedit

import "math"

// Segment primitives used by spatial queries. Only lines and cubic Béziers
// exist here because the path model is restricted to M/L/C/Z.

// -------------------------------------------------------------------
// Line
// -------------------------------------------------------------------

// LineSeg is a straight segment from P0 to P1.
type LineSeg struct {
	P0, P1 Point
}

// Eval evaluates the segment at parameter t in [0, 1].
func (l LineSeg) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// Midpoint returns the arithmetic midpoint of the segment.
func (l LineSeg) Midpoint() Point {
	return l.Eval(0.5)
}

// Length returns the segment length.
func (l LineSeg) Length() float64 {
	return l.P0.Distance(l.P1)
}

// BoundingBox returns the axis-aligned bounding box of the segment.
func (l LineSeg) BoundingBox() Rect {
	return NewRect(l.P0, l.P1)
}

// Nearest returns the point on the segment closest to p and its distance.
func (l LineSeg) Nearest(p Point) (Point, float64) {
	d := l.P1.Sub(l.P0)
	lenSq := d.LengthSq()
	if lenSq == 0 {
		return l.P0, l.P0.Distance(p)
	}
	t := p.Sub(l.P0).Dot(d) / lenSq
	t = math.Max(0, math.Min(1, t))
	q := l.Eval(t)
	return q, q.Distance(p)
}

// Intersect computes the exact parametric intersection of two segments.
// It returns the intersection point and true only when both parameters
// fall inside [0, 1]; parallel and degenerate segments report false.
func (l LineSeg) Intersect(other LineSeg) (Point, bool) {
	r := l.P1.Sub(l.P0)
	s := other.P1.Sub(other.P0)
	denom := r.Cross(s)
	if denom == 0 {
		return Point{}, false
	}
	qp := other.P0.Sub(l.P0)
	t := qp.Cross(s) / denom
	u := qp.Cross(r) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Point{}, false
	}
	return l.Eval(t), true
}

// -------------------------------------------------------------------
// CubicSeg
// -------------------------------------------------------------------

// CubicSeg is a cubic Bézier segment: start P0, control points P1 and P2,
// end P3.
type CubicSeg struct {
	P0, P1, P2, P3 Point
}

// Eval evaluates the curve at parameter t in [0, 1] using the Bernstein
// basis.
func (c CubicSeg) Eval(t float64) Point {
	mt := 1.0 - t
	mt2 := mt * mt
	mt3 := mt2 * mt
	t2 := t * t
	t3 := t2 * t
	return Point{
		X: mt3*c.P0.X + 3*mt2*t*c.P1.X + 3*mt*t2*c.P2.X + t3*c.P3.X,
		Y: mt3*c.P0.Y + 3*mt2*t*c.P1.Y + 3*mt*t2*c.P2.Y + t3*c.P3.Y,
	}
}

// Midpoint returns the curve point at t = 0.5.
func (c CubicSeg) Midpoint() Point {
	return c.Eval(0.5)
}

// extrema returns the parameters in (0, 1) where the derivative of one
// coordinate is zero. The derivative of a cubic is a quadratic in t:
//
//	B'(t) = 3[(P1-P0)(1-t)^2 + 2(P2-P1)(1-t)t + (P3-P2)t^2]
func (c CubicSeg) extrema() []float64 {
	var out []float64
	for _, axis := range [2][4]float64{
		{c.P0.X, c.P1.X, c.P2.X, c.P3.X},
		{c.P0.Y, c.P1.Y, c.P2.Y, c.P3.Y},
	} {
		d0 := axis[1] - axis[0]
		d1 := axis[2] - axis[1]
		d2 := axis[3] - axis[2]
		// Quadratic coefficients of the derivative.
		a := d0 - 2*d1 + d2
		b := 2 * (d1 - d0)
		out = append(out, solveQuadraticInUnitInterval(a, b, d0)...)
	}
	return out
}

// BoundingBox returns the tight axis-aligned bounding box of the curve,
// including interior extrema.
func (c CubicSeg) BoundingBox() Rect {
	bbox := NewRect(c.P0, c.P3)
	for _, t := range c.extrema() {
		bbox = bbox.ExpandToPoint(c.Eval(t))
	}
	return bbox
}

// nearestSamples is the sampling density for CubicSeg.Nearest. Snapping
// tolerances are several path units wide, so a coarse scan with one
// refinement pass is plenty.
const nearestSamples = 32

// Nearest returns an approximation of the point on the curve closest to p
// and its distance, by sampling followed by local refinement.
func (c CubicSeg) Nearest(p Point) (Point, float64) {
	bestT := 0.0
	bestDist := c.P0.Distance(p)
	for i := 1; i <= nearestSamples; i++ {
		t := float64(i) / nearestSamples
		if d := c.Eval(t).Distance(p); d < bestDist {
			bestDist = d
			bestT = t
		}
	}
	// Refine around the best sample with a shrinking window.
	step := 1.0 / nearestSamples
	for range 8 {
		step /= 2
		for _, t := range [2]float64{bestT - step, bestT + step} {
			if t < 0 || t > 1 {
				continue
			}
			if d := c.Eval(t).Distance(p); d < bestDist {
				bestDist = d
				bestT = t
			}
		}
	}
	return c.Eval(bestT), bestDist
}
