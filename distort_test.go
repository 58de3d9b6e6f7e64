package vecedit

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDistortCommandsIdentity(t *testing.T) {
	src := NewRect(Pt(0, 0), Pt(100, 100))
	cmds := []Command{
		Move(Pt(0, 0)),
		Line(Pt(100, 0)),
		Cubic(Pt(60, 40), Pt(40, 60), Pt(0, 100)),
		Close(),
	}
	out := DistortCommands(cmds, src, src.Corners())
	if diff := cmp.Diff(cmds, out); diff != "" {
		t.Errorf("identity distort changed commands (-want +got):\n%s", diff)
	}
}

func TestDistortCommandsTranslation(t *testing.T) {
	src := NewRect(Pt(0, 0), Pt(100, 100))
	corners := [4]Point{Pt(10, 5), Pt(110, 5), Pt(110, 105), Pt(10, 105)}
	cmds := []Command{Move(Pt(0, 0)), Line(Pt(50, 50))}
	out := DistortCommands(cmds, src, corners)
	if out[0].Position != Pt(10, 5) {
		t.Errorf("got %v, want (10,5)", out[0].Position)
	}
	if out[1].Position != Pt(60, 55) {
		t.Errorf("got %v, want (60,55)", out[1].Position)
	}
}

func TestDistortCommandsPinchedCorner(t *testing.T) {
	// Pull the bottom-right corner inward; the homogeneous divide carries
	// the pinch into the interior instead of ignoring the fourth corner.
	src := NewRect(Pt(0, 0), Pt(100, 100))
	corners := [4]Point{Pt(0, 0), Pt(100, 0), Pt(80, 80), Pt(0, 100)}
	cmds := []Command{
		Move(Pt(0, 0)),
		Line(Pt(100, 100)),
		Line(Pt(100, 0)),
	}
	out := DistortCommands(cmds, src, corners)

	if out[0].Position != Pt(0, 0) {
		t.Errorf("top-left = %v, want (0,0)", out[0].Position)
	}
	// The symmetric pinch maps the far corner exactly.
	if out[1].Position != Pt(80, 80) {
		t.Errorf("bottom-right = %v, want (80,80)", out[1].Position)
	}
	// Edge corners feel the divide: 100 / 1.125 rounded to two decimals.
	if out[2].Position != Pt(88.89, 0) {
		t.Errorf("top-right = %v, want (88.89,0)", out[2].Position)
	}
}

func TestDistortCommandsDegenerateSource(t *testing.T) {
	cmds := []Command{Move(Pt(1, 2)), Line(Pt(3, 4))}
	src := NewRect(Pt(5, 5), Pt(5, 9)) // zero width
	corners := [4]Point{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)}
	out := DistortCommands(cmds, src, corners)
	if diff := cmp.Diff(cmds, out); diff != "" {
		t.Errorf("degenerate distort changed commands (-want +got):\n%s", diff)
	}
	// Still a copy, never the same backing array.
	out[0].Position = Pt(99, 99)
	if cmds[0].Position != Pt(1, 2) {
		t.Error("DistortCommands returned its input slice")
	}
}
