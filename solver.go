package vecedit

import "math"

// Quadratic root solving for cubic-segment extrema. Numerical robustness
// follows kurbo's approach: coefficients are scaled first, degenerate and
// overflowing inputs fall back to the linear case.

// solveQuadratic finds real roots of ax^2 + bx + c = 0, sorted ascending.
func solveQuadratic(a, b, c float64) []float64 {
	sc0 := c / a
	sc1 := b / a
	if !isFinite(sc0) || !isFinite(sc1) {
		return solveQuadraticLinear(b, c)
	}

	arg := sc1*sc1 - 4.0*sc0
	if !isFinite(arg) {
		// Discriminant overflow: one root from sc1*x + x^2 = 0, the
		// other from the product of roots.
		return orderedRoots(-sc1, sc0/-sc1)
	}
	if arg < 0.0 {
		return nil
	}
	if arg == 0.0 {
		return []float64{-0.5 * sc1}
	}

	// Stable formula avoiding cancellation between -sc1 and the root of
	// the discriminant.
	root1 := -0.5 * (sc1 + math.Copysign(math.Sqrt(arg), sc1))
	return orderedRoots(root1, sc0/root1)
}

func orderedRoots(root1, root2 float64) []float64 {
	if !isFinite(root2) {
		return []float64{root1}
	}
	if root1 > root2 {
		return []float64{root2, root1}
	}
	return []float64{root1, root2}
}

// solveQuadraticLinear handles a == 0 (or effectively zero).
func solveQuadraticLinear(b, c float64) []float64 {
	root := -c / b
	if isFinite(root) {
		return []float64{root}
	}
	if c == 0.0 && b == 0.0 {
		return []float64{0.0}
	}
	return nil
}

// solveQuadraticInUnitInterval returns only the roots lying strictly
// inside (0, 1), which is what extrema computations need.
func solveQuadraticInUnitInterval(a, b, c float64) []float64 {
	var out []float64
	for _, t := range solveQuadratic(a, b, c) {
		if t > 0 && t < 1 {
			out = append(out, t)
		}
	}
	return out
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
