package vecedit

import "slices"

// RegionKind distinguishes rectangle and lasso selection regions.
type RegionKind uint8

const (
	// RegionRect is an axis-aligned selection rectangle.
	RegionRect RegionKind = iota
	// RegionLasso is a freehand polygon, open or closed.
	RegionLasso
)

// Region is a selection area: either an axis-aligned rectangle or a lasso
// polygon. Rectangle tests are plain AABB arithmetic; lasso tests use
// even-odd point-in-polygon and polygon-rectangle overlap. An open lasso
// is treated as implicitly closed by the seam from its last vertex back to
// its first.
type Region struct {
	Kind    RegionKind
	Rect    Rect
	Polygon []Point
	Closed  bool
}

// RectRegion creates a rectangular region.
func RectRegion(r Rect) Region {
	return Region{Kind: RegionRect, Rect: r}
}

// LassoRegion creates a lasso region from a polygon outline.
func LassoRegion(points []Point, closed bool) Region {
	return Region{Kind: RegionLasso, Polygon: points, Closed: closed}
}

// ContainsPoint reports whether p lies inside the region.
func (r Region) ContainsPoint(p Point) bool {
	switch r.Kind {
	case RegionRect:
		return r.Rect.Contains(p)
	default:
		return pointInPolygon(p, r.Polygon)
	}
}

// IntersectsBounds reports whether the region overlaps the bounding box.
func (r Region) IntersectsBounds(b Rect) bool {
	switch r.Kind {
	case RegionRect:
		return r.Rect.Intersects(b)
	default:
		return polygonIntersectsRect(r.Polygon, b)
	}
}

// pointInPolygon is the even-odd rule: count edge crossings of a ray cast
// rightward from p.
func pointInPolygon(p Point, polygon []Point) bool {
	if len(polygon) < 3 {
		return false
	}
	inside := false
	j := len(polygon) - 1
	for i := range polygon {
		pi, pj := polygon[i], polygon[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) &&
			p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// polygonIntersectsRect reports overlap between a polygon and a rectangle:
// a polygon vertex inside the rectangle, a rectangle corner inside the
// polygon, or any pair of crossing edges.
func polygonIntersectsRect(polygon []Point, r Rect) bool {
	if len(polygon) < 2 {
		return false
	}
	for _, p := range polygon {
		if r.Contains(p) {
			return true
		}
	}
	for _, corner := range r.Corners() {
		if pointInPolygon(corner, polygon) {
			return true
		}
	}
	corners := r.Corners()
	rectEdges := [4]LineSeg{
		{P0: corners[0], P1: corners[1]},
		{P0: corners[1], P1: corners[2]},
		{P0: corners[2], P1: corners[3]},
		{P0: corners[3], P1: corners[0]},
	}
	j := len(polygon) - 1
	for i := range polygon {
		edge := LineSeg{P0: polygon[j], P1: polygon[i]}
		for _, re := range rectEdges {
			if _, ok := edge.Intersect(re); ok {
				return true
			}
		}
		j = i
	}
	return false
}

// SubpathHit identifies one subpath of an element.
type SubpathHit struct {
	ElementID string
	Index     int
}

// PointHit identifies one editable point of an element.
type PointHit struct {
	ElementID    string
	CommandIndex int
	PointIndex   int
}

// HitTestElements returns the ids of eligible elements whose measured
// bounding box overlaps the region, in element order.
func HitTestElements(elements []Element, region Region, m *Measurer, vp Viewport, eligible ElementPredicate) []string {
	var hits []string
	for _, el := range elements {
		if eligible != nil && !eligible(el) {
			continue
		}
		bbox, ok := m.MeasurePath(el.Path, vp.Zoom)
		if !ok {
			continue
		}
		if region.IntersectsBounds(bbox) {
			hits = append(hits, el.ID)
		}
	}
	return hits
}

// HitTestSubpaths returns every eligible subpath whose measured bounds
// overlap the region.
func HitTestSubpaths(elements []Element, region Region, m *Measurer, vp Viewport, eligible ElementPredicate) []SubpathHit {
	var hits []SubpathHit
	for _, el := range elements {
		if eligible != nil && !eligible(el) {
			continue
		}
		for i, sp := range ExtractSubpaths(el.Path.Commands) {
			bbox, ok := m.MeasureSubpathBounds(sp, el.Path.StrokeWidth, vp.Zoom)
			if !ok {
				continue
			}
			if region.IntersectsBounds(bbox) {
				hits = append(hits, SubpathHit{ElementID: el.ID, Index: i})
			}
		}
	}
	return hits
}

// HitTestPoints returns every eligible editable point lying inside the
// region. Control handles participate like on-curve points.
func HitTestPoints(elements []Element, region Region, eligible ElementPredicate) []PointHit {
	var hits []PointHit
	for _, el := range elements {
		if eligible != nil && !eligible(el) {
			continue
		}
		for _, cp := range ExtractEditablePoints(el.Path.Commands) {
			if region.ContainsPoint(cp.Position) {
				hits = append(hits, PointHit{
					ElementID:    el.ID,
					CommandIndex: cp.CommandIndex,
					PointIndex:   cp.PointIndex,
				})
			}
		}
	}
	return hits
}

// MergeSelection combines a hit-test result with the existing selection.
// Without additive the hits replace the selection; with it they merge by
// stable identity, keeping the existing order and appending new hits.
func MergeSelection[T comparable](existing, hits []T, additive bool) []T {
	if !additive {
		return slices.Clone(hits)
	}
	out := slices.Clone(existing)
	for _, h := range hits {
		if !slices.Contains(out, h) {
			out = append(out, h)
		}
	}
	return out
}
