package vecedit

import (
	"log/slog"
	"math"
)

// TransformParams describes a resize/rotate gesture: scaling about one
// origin followed by rotation (degrees, clockwise in screen coordinates)
// about a possibly different center.
type TransformParams struct {
	ScaleX, ScaleY   float64
	OriginX, OriginY float64
	Rotation         float64
	RotationCenterX  float64
	RotationCenterY  float64
}

// Matrix returns the composed affine transform of the gesture.
func (p TransformParams) Matrix() Matrix {
	m := ScaleAbout(p.ScaleX, p.ScaleY, p.OriginX, p.OriginY)
	if p.Rotation != 0 {
		rad := p.Rotation * math.Pi / 180
		m = RotateAbout(rad, p.RotationCenterX, p.RotationCenterY).Multiply(m)
	}
	return m
}

// TransformCommands applies the gesture to every point of every command —
// both control points and end positions — and returns a new command list.
// ClosePath commands pass through untouched. Outputs are rounded to the
// package's fixed precision so repeated transforms cannot accumulate
// drift.
func TransformCommands(commands []Command, p TransformParams) []Command {
	return applyToCommands(commands, p.Matrix())
}

// TranslateCommands shifts every point by (dx, dy).
func TranslateCommands(commands []Command, dx, dy float64) []Command {
	return applyToCommands(commands, Translate(dx, dy))
}

// SkewCommandsX shears each point horizontally by tan(angleDegrees) times
// its distance from the horizontal line y = originY. Near-vertical angles
// are degenerate and leave the commands unchanged.
func SkewCommandsX(commands []Command, angleDegrees, originY float64) []Command {
	k, ok := shearFactor(angleDegrees)
	if !ok {
		return CloneCommands(commands)
	}
	m := Translate(0, originY).Multiply(ShearX(k)).Multiply(Translate(0, -originY))
	return applyToCommands(commands, m)
}

// SkewCommandsY shears each point vertically by tan(angleDegrees) times
// its distance from the vertical line x = originX.
func SkewCommandsY(commands []Command, angleDegrees, originX float64) []Command {
	k, ok := shearFactor(angleDegrees)
	if !ok {
		return CloneCommands(commands)
	}
	m := Translate(originX, 0).Multiply(ShearY(k)).Multiply(Translate(-originX, 0))
	return applyToCommands(commands, m)
}

func shearFactor(angleDegrees float64) (float64, bool) {
	rad := angleDegrees * math.Pi / 180
	k := math.Tan(rad)
	if !isFinite(k) || math.Abs(k) > 1e6 {
		Logger().Debug("skew angle degenerate, skipping", slog.Float64("angle", angleDegrees))
		return 0, false
	}
	return k, true
}

func applyToCommands(commands []Command, m Matrix) []Command {
	out := CloneCommands(commands)
	for i := range out {
		c := &out[i]
		for p := range c.PointCount() {
			c.SetPoint(p, m.Apply(c.Point(p)).Round())
		}
	}
	return out
}

// CalculateScaledStrokeWidth derives the stroke width after scaling:
// rounded width times the smaller absolute scale factor, floored at 1 so a
// visible stroke never vanishes. A width of exactly 0 stays 0 — paths
// without a stroke remain strokeless.
func CalculateScaledStrokeWidth(width, scaleX, scaleY float64) float64 {
	if width == 0 {
		return 0
	}
	scaled := math.Round(width * math.Min(math.Abs(scaleX), math.Abs(scaleY)))
	if scaled < 1 {
		return 1
	}
	return scaled
}
