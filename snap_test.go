package vecedit

import (
	"testing"
)

func newTestSnapper(opts SnapOptions) *Snapper {
	return NewSnapper(NewMeasurer(), opts)
}

func snapKinds(points []SnapPoint) map[SnapKind]int {
	counts := map[SnapKind]int{}
	for _, p := range points {
		counts[p.Kind]++
	}
	return counts
}

func TestCollectSnapPointsLine(t *testing.T) {
	s := newTestSnapper(DefaultSnapOptions())
	el := Element{ID: "line", Path: PathData{Commands: []Command{
		Move(Pt(0, 0)),
		Line(Pt(100, 0)),
	}}}
	points := s.CollectSnapPoints([]Element{el}, 1)

	counts := snapKinds(points)
	if counts[SnapEndpoint] != 2 {
		t.Errorf("endpoints = %d, want 2", counts[SnapEndpoint])
	}
	if counts[SnapMidpoint] != 1 {
		t.Errorf("midpoints = %d, want 1", counts[SnapMidpoint])
	}
	if counts[SnapBBoxCorner] != 4 {
		t.Errorf("bbox corners = %d, want 4", counts[SnapBBoxCorner])
	}
	if counts[SnapBBoxCenter] != 1 {
		t.Errorf("bbox centers = %d, want 1", counts[SnapBBoxCenter])
	}

	for _, p := range points {
		if p.Kind == SnapMidpoint && p.Position != Pt(50, 0) {
			t.Errorf("line midpoint = %v, want (50,0)", p.Position)
		}
	}
}

func TestCollectSnapPointsCubic(t *testing.T) {
	s := newTestSnapper(DefaultSnapOptions())
	el := Element{ID: "curve", Path: PathData{Commands: []Command{
		Move(Pt(0, 0)),
		Cubic(Pt(25, 30), Pt(75, 30), Pt(100, 0)),
	}}}
	points := s.CollectSnapPoints([]Element{el}, 1)

	counts := snapKinds(points)
	if counts[SnapControl] != 2 {
		t.Errorf("controls = %d, want 2", counts[SnapControl])
	}
	// The curve midpoint is the point at t=0.5, not the chord midpoint.
	for _, p := range points {
		if p.Kind == SnapMidpoint && p.Position != Pt(50, 22.5) {
			t.Errorf("curve midpoint = %v, want (50,22.5)", p.Position)
		}
	}
}

func TestCollectSnapPointsClosingMidpoint(t *testing.T) {
	s := newTestSnapper(DefaultSnapOptions())
	el := Element{ID: "tri", Path: PathData{Commands: []Command{
		Move(Pt(0, 0)), Line(Pt(100, 0)), Line(Pt(100, 100)), Close(),
	}}}
	points := s.CollectSnapPoints([]Element{el}, 1)

	found := false
	for _, p := range points {
		if p.Kind == SnapMidpoint && p.Position == Pt(50, 50) {
			found = true
		}
	}
	if !found {
		t.Error("closing segment midpoint (50,50) missing")
	}
}

func TestCollectSnapPointsIntersections(t *testing.T) {
	s := newTestSnapper(DefaultSnapOptions())
	a := Element{ID: "h", Path: PathData{Commands: []Command{
		Move(Pt(0, 50)), Line(Pt(100, 50)),
	}}}
	b := Element{ID: "v", Path: PathData{Commands: []Command{
		Move(Pt(50, 0)), Line(Pt(50, 100)),
	}}}
	points := s.CollectSnapPoints([]Element{a, b}, 1)

	var inter []SnapPoint
	for _, p := range points {
		if p.Kind == SnapIntersection {
			inter = append(inter, p)
		}
	}
	if len(inter) != 1 {
		t.Fatalf("intersections = %d, want 1", len(inter))
	}
	if inter[0].Position != Pt(50, 50) {
		t.Errorf("intersection at %v, want (50,50)", inter[0].Position)
	}
}

func TestCollectSnapPointsRespectsOptions(t *testing.T) {
	opts := DefaultSnapOptions()
	opts.Controls = false
	opts.BBox = false
	s := newTestSnapper(opts)

	el := Element{ID: "curve", Path: PathData{Commands: []Command{
		Move(Pt(0, 0)),
		Cubic(Pt(25, 30), Pt(75, 30), Pt(100, 0)),
	}}}
	counts := snapKinds(s.CollectSnapPoints([]Element{el}, 1))
	if counts[SnapControl] != 0 {
		t.Errorf("controls = %d, want 0 when disabled", counts[SnapControl])
	}
	if counts[SnapBBoxCorner] != 0 || counts[SnapBBoxCenter] != 0 {
		t.Error("bbox candidates present when disabled")
	}
	if counts[SnapEndpoint] == 0 {
		t.Error("endpoints missing")
	}
}

func TestApplyObjectSnapPriority(t *testing.T) {
	// BBox candidates off so the endpoint is the unambiguous nearest
	// candidate (a degenerate bbox corner coincides with it).
	opts := DefaultSnapOptions()
	opts.BBox = false
	s := newTestSnapper(opts)
	el := Element{ID: "line", Path: PathData{Commands: []Command{
		Move(Pt(0, 0)), Line(Pt(100, 0)),
	}}}
	vp := Viewport{Zoom: 1}

	// Near the endpoint: anchor candidates always beat the edge fallback.
	got, snap, ok := s.ApplyObjectSnap(Pt(3, 3), []Element{el}, nil, nil, vp)
	if !ok {
		t.Fatal("expected a snap")
	}
	if snap.Kind != SnapEndpoint || got != Pt(0, 0) {
		t.Errorf("snapped to %v (%v), want endpoint (0,0)", got, snap.Kind)
	}

	// Mid-segment but away from any anchor: the edge fallback engages.
	got, snap, ok = s.ApplyObjectSnap(Pt(30, 5), []Element{el}, nil, nil, vp)
	if !ok {
		t.Fatal("expected an edge snap")
	}
	if snap.Kind != SnapEdge || got != Pt(30, 0) {
		t.Errorf("snapped to %v (%v), want edge (30,0)", got, snap.Kind)
	}

	// Out of range: unchanged.
	got, _, ok = s.ApplyObjectSnap(Pt(30, 50), []Element{el}, nil, nil, vp)
	if ok || got != Pt(30, 50) {
		t.Errorf("snap out of range returned %v, %v", got, ok)
	}
}

func TestApplyObjectSnapExcludesAndDisables(t *testing.T) {
	el := Element{ID: "line", Path: PathData{Commands: []Command{
		Move(Pt(0, 0)), Line(Pt(100, 0)),
	}}}
	vp := Viewport{Zoom: 1}

	s := newTestSnapper(DefaultSnapOptions())
	// The dragged element contributes no candidates against itself.
	_, _, ok := s.ApplyObjectSnap(Pt(3, 3), []Element{el}, map[string]bool{"line": true}, nil, vp)
	if ok {
		t.Error("excluded element still produced a snap")
	}

	// The eligibility predicate filters the same way.
	none := func(Element) bool { return false }
	_, _, ok = s.ApplyObjectSnap(Pt(3, 3), []Element{el}, nil, none, vp)
	if ok {
		t.Error("ineligible element still produced a snap")
	}

	// Disabled snapping is a pass-through.
	opts := DefaultSnapOptions()
	opts.Enabled = false
	s = newTestSnapper(opts)
	got, _, ok := s.ApplyObjectSnap(Pt(3, 3), []Element{el}, nil, nil, vp)
	if ok || got != Pt(3, 3) {
		t.Errorf("disabled snap returned %v, %v", got, ok)
	}
}

func TestApplyObjectSnapViewportThreshold(t *testing.T) {
	s := newTestSnapper(DefaultSnapOptions())
	el := Element{ID: "line", Path: PathData{Commands: []Command{
		Move(Pt(0, 0)), Line(Pt(100, 0)),
	}}}

	// At 4x zoom the 8px radius covers only 2 path units.
	vp := Viewport{Zoom: 4}
	_, _, ok := s.ApplyObjectSnap(Pt(3, 3), []Element{el}, nil, nil, vp)
	if ok {
		t.Error("snap succeeded outside the zoom-scaled radius")
	}
	got, _, ok := s.ApplyObjectSnap(Pt(1, 1), []Element{el}, nil, nil, vp)
	if !ok || got != Pt(0, 0) {
		t.Errorf("snap inside the zoom-scaled radius = %v, %v; want (0,0), true", got, ok)
	}
}

func TestSnapperInvalidation(t *testing.T) {
	s := newTestSnapper(DefaultSnapOptions())
	el := Element{ID: "a", Path: PathData{Commands: []Command{
		Move(Pt(0, 0)), Line(Pt(10, 0)),
	}}}

	before := s.CollectSnapPoints([]Element{el}, 1)

	// Same id set hits the cache even with changed geometry: the owner
	// must invalidate on edits.
	el.Path.Commands = []Command{Move(Pt(0, 0)), Line(Pt(500, 0))}
	cached := s.CollectSnapPoints([]Element{el}, 1)
	if len(cached) != len(before) {
		t.Fatal("candidate cache missed unexpectedly")
	}
	stale := true
	for _, p := range cached {
		if p.Position == Pt(500, 0) {
			stale = false
		}
	}
	if !stale {
		t.Error("cache returned recomputed candidates without invalidation")
	}

	s.Invalidate()
	fresh := s.CollectSnapPoints([]Element{el}, 1)
	found := false
	for _, p := range fresh {
		if p.Position == Pt(500, 0) {
			found = true
		}
	}
	if !found {
		t.Error("invalidation did not refresh candidates")
	}

	// Changing options invalidates too.
	opts := s.Options()
	opts.Midpoints = false
	s.SetOptions(opts)
	counts := snapKinds(s.CollectSnapPoints([]Element{el}, 1))
	if counts[SnapMidpoint] != 0 {
		t.Errorf("midpoints = %d after disabling, want 0", counts[SnapMidpoint])
	}
}
