package vecedit

import (
	"testing"
)

func onCurve(x, y float64) ControlPoint {
	return ControlPoint{Position: Pt(x, y)}
}

func control(x, y float64) ControlPoint {
	return ControlPoint{Position: Pt(x, y), IsControl: true}
}

func positionsOf(points []ControlPoint) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = p.Position
	}
	return out
}

func TestSimplifyPointsCollinearCollapse(t *testing.T) {
	// Points on a straight line collapse to their endpoints.
	in := []ControlPoint{
		onCurve(0, 0),
		onCurve(10, 0.1),
		onCurve(20, -0.1),
		onCurve(30, 0),
	}
	got := SimplifyPoints(in, 1.0, 0)
	want := []Point{Pt(0, 0), Pt(30, 0)}
	if len(got) != len(want) {
		t.Fatalf("got %d points, want %d: %v", len(got), len(want), positionsOf(got))
	}
	for i := range want {
		if got[i].Position != want[i] {
			t.Errorf("point %d = %v, want %v", i, got[i].Position, want[i])
		}
	}
}

func TestSimplifyPointsKeepsCorner(t *testing.T) {
	// A sharp corner well above tolerance survives.
	in := []ControlPoint{
		onCurve(0, 0),
		onCurve(10, 0),
		onCurve(10, 10),
	}
	got := SimplifyPoints(in, 1.0, 0)
	if len(got) != 3 {
		t.Fatalf("got %d points, want 3: %v", len(got), positionsOf(got))
	}
	if got[1].Position != Pt(10, 0) {
		t.Errorf("corner = %v, want (10,0)", got[1].Position)
	}
}

func TestSimplifyPointsMinDistance(t *testing.T) {
	// Jittery points closer than minDistance to the last kept point drop
	// in the first pass; the final point always survives.
	in := []ControlPoint{
		onCurve(0, 0),
		onCurve(1, 3),
		onCurve(2, -3),
		onCurve(20, 3),
		onCurve(21, 0),
	}
	got := SimplifyPoints(in, 0.1, 5)
	want := []Point{Pt(0, 0), Pt(20, 3), Pt(21, 0)}
	if len(got) != len(want) {
		t.Fatalf("got %d points, want %d: %v", len(got), len(want), positionsOf(got))
	}
	for i := range want {
		if got[i].Position != want[i] {
			t.Errorf("point %d = %v, want %v", i, got[i].Position, want[i])
		}
	}
}

func TestSimplifyPointsControlsPassThrough(t *testing.T) {
	// Control points are neither dropped nor used as distance references.
	in := []ControlPoint{
		onCurve(0, 0),
		control(5, 0.01),
		onCurve(10, 0.01),
		control(15, 0),
		onCurve(20, 0),
	}
	got := SimplifyPoints(in, 1.0, 0)

	controls := 0
	for _, p := range got {
		if p.IsControl {
			controls++
		}
	}
	if controls != 2 {
		t.Fatalf("got %d control points, want 2: %v", controls, positionsOf(got))
	}
	// The nearly collinear interior on-curve point collapses away.
	for _, p := range got {
		if !p.IsControl && p.Position == Pt(10, 0.01) {
			t.Errorf("interior on-curve point survived collapse: %v", positionsOf(got))
		}
	}
}

func TestSimplifyPointsShortInput(t *testing.T) {
	in := []ControlPoint{onCurve(0, 0), onCurve(1, 1)}
	got := SimplifyPoints(in, 10, 10)
	if len(got) != 2 {
		t.Fatalf("got %d points, want 2", len(got))
	}
	// The result is a copy, not the input slice.
	got[0].Position = Pt(99, 99)
	if in[0].Position != Pt(0, 0) {
		t.Error("SimplifyPoints mutated its input")
	}
}
