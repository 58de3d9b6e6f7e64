package vecedit

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
)

// DistortCommands maps the shape's axis-aligned corner rectangle src onto
// four arbitrary destination corners, given in top-left, top-right,
// bottom-right, bottom-left order.
//
// The mapping is a documented approximation, not a true homography: the
// affine part is derived from three corner pairs (top-left, top-right,
// bottom-left) and the fourth corner only contributes a scalar homogeneous
// divide fitted by least squares. Large, non-rectangular distortions are
// therefore geometrically inexact by design. Degenerate inputs (zero-size
// src) return the commands unchanged.
func DistortCommands(commands []Command, src Rect, corners [4]Point) []Command {
	w := src.Width()
	h := src.Height()
	if w == 0 || h == 0 {
		Logger().Debug("distort source degenerate, skipping",
			slog.Float64("width", w), slog.Float64("height", h))
		return CloneCommands(commands)
	}

	m := distortMatrix(corners)
	out := CloneCommands(commands)
	for i := range out {
		c := &out[i]
		for p := range c.PointCount() {
			pt := c.Point(p)
			u := (pt.X - src.Min.X) / w
			v := (pt.Y - src.Min.Y) / h
			mapped := m.Mul3x1(mgl64.Vec3{u, v, 1})
			z := mapped.Z()
			if z == 0 || !isFinite(z) {
				continue
			}
			c.SetPoint(p, Pt(mapped.X()/z, mapped.Y()/z).Round())
		}
	}
	return out
}

// distortMatrix builds the unit-square-to-quad matrix. Columns carry the
// top edge vector, the left edge vector, and the top-left corner; the
// bottom row holds the perspective terms derived from the bottom-right
// corner.
func distortMatrix(corners [4]Point) mgl64.Mat3 {
	c0, c1, c2, c3 := corners[0], corners[1], corners[2], corners[3]

	// Affine image of (1,1) from the three fitted corners.
	ax := c1.X + c3.X - c0.X
	ay := c1.Y + c3.Y - c0.Y

	// Scalar s minimizing |(ax,ay)/s - c2| in the least-squares sense;
	// the divide at (u,v)=(1,1) then pulls the affine corner toward the
	// actual fourth corner.
	g, h := 0.0, 0.0
	dot := ax*c2.X + ay*c2.Y
	if dot > 0 {
		s := (ax*ax + ay*ay) / dot
		g = (s - 1) / 2
		h = g
	}

	return mgl64.Mat3FromCols(
		mgl64.Vec3{c1.X - c0.X, c1.Y - c0.Y, g},
		mgl64.Vec3{c3.X - c0.X, c3.Y - c0.Y, h},
		mgl64.Vec3{c0.X, c0.Y, 1},
	)
}
