package vecedit

import (
	"testing"
)

func TestMeasurePathLines(t *testing.T) {
	m := NewMeasurer()
	data := PathData{Commands: []Command{
		Move(Pt(10, 20)),
		Line(Pt(110, 20)),
		Line(Pt(110, 80)),
		Close(),
	}}
	got, ok := m.MeasurePath(data, 1)
	if !ok {
		t.Fatal("expected measurable geometry")
	}
	want := NewRect(Pt(10, 20), Pt(110, 80))
	if got != want {
		t.Errorf("bounds = %v, want %v", got, want)
	}
}

func TestMeasurePathStrokeExpansion(t *testing.T) {
	m := NewMeasurer()
	data := PathData{
		Commands:    []Command{Move(Pt(0, 0)), Line(Pt(100, 0)), Line(Pt(100, 100))},
		StrokeWidth: 4,
	}
	got, ok := m.MeasurePath(data, 1)
	if !ok {
		t.Fatal("expected measurable geometry")
	}
	want := NewRect(Pt(-2, -2), Pt(102, 102))
	if got != want {
		t.Errorf("bounds = %v, want %v", got, want)
	}
}

func TestMeasurePathCubicExtrema(t *testing.T) {
	m := NewMeasurer()
	// Symmetric bow: control points at y=30 push the curve's apex to
	// y=22.5, well past the endpoints at y=0. Control points themselves
	// are not part of the bounds.
	data := PathData{Commands: []Command{
		Move(Pt(0, 0)),
		Cubic(Pt(25, 30), Pt(75, 30), Pt(100, 0)),
	}}
	got, ok := m.MeasurePath(data, 1)
	if !ok {
		t.Fatal("expected measurable geometry")
	}
	if got.Max.Y < 22.5 || got.Max.Y >= 30 {
		t.Errorf("curve apex = %v, want in [22.5, 30)", got.Max.Y)
	}
	if got.Min.Y != 0 {
		t.Errorf("Min.Y = %v, want 0", got.Min.Y)
	}
}

func TestMeasurePathEmpty(t *testing.T) {
	m := NewMeasurer()
	if _, ok := m.MeasurePath(PathData{}, 1); ok {
		t.Error("empty path reported measurable bounds")
	}
	if _, ok := m.MeasurePath(PathData{Commands: []Command{Close()}}, 1); ok {
		t.Error("close-only path reported measurable bounds")
	}
}

func TestMeasurePathMemoization(t *testing.T) {
	calls := 0
	m := NewMeasurer(WithSurface(countingSurface{&calls}))
	data := PathData{Commands: []Command{Move(Pt(0, 0)), Line(Pt(10, 10))}}

	m.MeasurePath(data, 1)
	m.MeasurePath(data, 1)
	if calls != 1 {
		t.Errorf("surface measured %d times, want 1", calls)
	}

	// A different zoom is a different memo entry.
	m.MeasurePath(data, 2)
	if calls != 2 {
		t.Errorf("surface measured %d times after zoom change, want 2", calls)
	}

	m.Invalidate()
	m.MeasurePath(data, 1)
	if calls != 3 {
		t.Errorf("surface measured %d times after invalidation, want 3", calls)
	}
}

type countingSurface struct {
	calls *int
}

func (s countingSurface) Measure(commands []Command) (Rect, bool) {
	*s.calls++
	return commandsBounds(commands)
}

func TestAccumulateBounds(t *testing.T) {
	a := []Command{Move(Pt(0, 0)), Line(Pt(10, 10))}
	b := []Command{Move(Pt(50, -5)), Line(Pt(60, 5))}

	got, ok := AccumulateBounds(a, b)
	if !ok {
		t.Fatal("expected accumulated bounds")
	}
	want := NewRect(Pt(0, -5), Pt(60, 10))
	if got != want {
		t.Errorf("bounds = %v, want %v", got, want)
	}

	// Adding geometry never shrinks the accumulated box.
	single, _ := AccumulateBounds(a)
	if !got.ContainsRect(single) {
		t.Errorf("accumulated box %v does not contain %v", got, single)
	}

	// Empty sets contribute nothing.
	if _, ok := AccumulateBounds(nil, []Command{Close()}); ok {
		t.Error("bounds reported for sets without geometry")
	}
}

func TestMeasureSubpathBounds(t *testing.T) {
	m := NewMeasurer()
	cmds := []Command{
		Move(Pt(0, 0)), Line(Pt(10, 0)), Close(),
		Move(Pt(100, 100)), Line(Pt(120, 110)),
	}
	subs := ExtractSubpaths(cmds)
	if len(subs) != 2 {
		t.Fatalf("got %d subpaths, want 2", len(subs))
	}
	got, ok := m.MeasureSubpathBounds(subs[1], 2, 1)
	if !ok {
		t.Fatal("expected measurable subpath")
	}
	want := NewRect(Pt(99, 99), Pt(121, 111))
	if got != want {
		t.Errorf("bounds = %v, want %v", got, want)
	}
}

func TestMeasureElementTree(t *testing.T) {
	m := NewMeasurer()
	elements := map[string]struct {
		el       Element
		children []string
	}{
		"group": {Element{ID: "group"}, []string{"a", "b"}},
		"a": {Element{ID: "a", Path: PathData{
			Commands: []Command{Move(Pt(0, 0)), Line(Pt(10, 10))},
		}}, nil},
		"b": {Element{ID: "b", Path: PathData{
			Commands: []Command{Move(Pt(50, 50)), Line(Pt(60, 60))},
		}}, nil},
	}
	lookup := func(id string) (Element, []string, bool) {
		e, ok := elements[id]
		return e.el, e.children, ok
	}

	got, ok := m.MeasureElementTree("group", lookup, 1)
	if !ok {
		t.Fatal("expected measurable tree")
	}
	want := NewRect(Pt(0, 0), Pt(60, 60))
	if got != want {
		t.Errorf("bounds = %v, want %v", got, want)
	}

	if _, ok := m.MeasureElementTree("missing", lookup, 1); ok {
		t.Error("unknown id reported bounds")
	}
}

func TestMeasureElementTreeCycle(t *testing.T) {
	m := NewMeasurer()
	elements := map[string]struct {
		el       Element
		children []string
	}{
		"x": {Element{ID: "x", Path: PathData{
			Commands: []Command{Move(Pt(0, 0)), Line(Pt(5, 5))},
		}}, []string{"y"}},
		"y": {Element{ID: "y"}, []string{"x"}},
	}
	lookup := func(id string) (Element, []string, bool) {
		e, ok := elements[id]
		return e.el, e.children, ok
	}

	// The cycle x -> y -> x terminates and yields x's own bounds.
	got, ok := m.MeasureElementTree("x", lookup, 1)
	if !ok {
		t.Fatal("expected measurable tree despite cycle")
	}
	want := NewRect(Pt(0, 0), Pt(5, 5))
	if got != want {
		t.Errorf("bounds = %v, want %v", got, want)
	}
}
