package vecedit

import (
	"slices"
	"strings"

	"github.com/vecedit/vecedit/cache"
)

// SnapKind classifies a snap candidate.
type SnapKind uint8

const (
	// SnapEndpoint is an on-curve command end point.
	SnapEndpoint SnapKind = iota
	// SnapControl is a Bézier handle position.
	SnapControl
	// SnapMidpoint is a segment midpoint: arithmetic for lines, the
	// curve point at t=0.5 for cubics.
	SnapMidpoint
	// SnapBBoxCorner is a corner of the element's measured bounds.
	SnapBBoxCorner
	// SnapBBoxCenter is the center of the element's measured bounds.
	SnapBBoxCenter
	// SnapIntersection is an exact intersection of two line-type
	// segments from different elements.
	SnapIntersection
	// SnapEdge is the low-priority fallback: the nearest point on any
	// segment. Edge candidates are computed on demand, never cached.
	SnapEdge
)

func (k SnapKind) String() string {
	switch k {
	case SnapEndpoint:
		return "endpoint"
	case SnapControl:
		return "control"
	case SnapMidpoint:
		return "midpoint"
	case SnapBBoxCorner:
		return "bbox-corner"
	case SnapBBoxCenter:
		return "bbox-center"
	case SnapIntersection:
		return "intersection"
	default:
		return "edge"
	}
}

// SnapPoint is an ephemeral snap candidate. Candidates are regenerated
// whenever the contributing element set or its geometry changes; they are
// never stored on the geometry itself.
type SnapPoint struct {
	Position  Point
	Kind      SnapKind
	ElementID string
	// CommandIndex/PointIndex identify the owning point for endpoint and
	// control candidates, -1 otherwise.
	CommandIndex int
	PointIndex   int
}

// SnapOptions selects which candidate kinds participate and the
// screen-space snap radius.
type SnapOptions struct {
	Enabled       bool
	Threshold     float64 // screen px
	Endpoints     bool
	Controls      bool
	Midpoints     bool
	BBox          bool
	Intersections bool
	Edges         bool
}

// DefaultSnapOptions enables every candidate kind with an 8px radius.
func DefaultSnapOptions() SnapOptions {
	return SnapOptions{
		Enabled:       true,
		Threshold:     8,
		Endpoints:     true,
		Controls:      true,
		Midpoints:     true,
		BBox:          true,
		Intersections: true,
		Edges:         true,
	}
}

// Snapper extracts snap candidates from elements and resolves drag
// positions against them. Candidate sets are cached by the sorted ids of
// the contributing elements; call Invalidate on geometry edits.
type Snapper struct {
	opts     SnapOptions
	measurer *Measurer
	memo     *cache.Sharded[string, []SnapPoint]
}

// NewSnapper creates a Snapper sharing the given Measurer for bbox
// candidates.
func NewSnapper(m *Measurer, opts SnapOptions) *Snapper {
	return &Snapper{
		opts:     opts,
		measurer: m,
		memo:     cache.NewSharded[string, []SnapPoint](0, cache.StringHasher),
	}
}

// Options returns the current snap options.
func (s *Snapper) Options() SnapOptions { return s.opts }

// SetOptions replaces the snap options. Toggling options invalidates the
// candidate cache.
func (s *Snapper) SetOptions(opts SnapOptions) {
	if opts != s.opts {
		s.opts = opts
		s.Invalidate()
	}
}

// Invalidate drops all cached candidate sets. Call after any geometry
// edit.
func (s *Snapper) Invalidate() {
	Logger().Debug("snap cache invalidated")
	s.memo.Clear()
}

// CollectSnapPoints produces the candidate set for the given elements.
func (s *Snapper) CollectSnapPoints(elements []Element, zoom float64) []SnapPoint {
	ids := make([]string, len(elements))
	for i, el := range elements {
		ids[i] = el.ID
	}
	slices.Sort(ids)
	key := strings.Join(ids, ",")

	return s.memo.GetOrCreate(key, func() []SnapPoint {
		var points []SnapPoint
		for _, el := range elements {
			points = append(points, s.elementCandidates(el, zoom)...)
		}
		if s.opts.Intersections {
			points = append(points, s.intersectionCandidates(elements)...)
		}
		return points
	})
}

func (s *Snapper) elementCandidates(el Element, zoom float64) []SnapPoint {
	var points []SnapPoint

	var current, start Point
	for i, c := range el.Path.Commands {
		switch c.Op {
		case MoveTo:
			if s.opts.Endpoints {
				points = append(points, snapAt(c.Position, SnapEndpoint, el.ID, i, 0))
			}
			start = c.Position
			current = c.Position
		case LineTo:
			if s.opts.Endpoints {
				points = append(points, snapAt(c.Position, SnapEndpoint, el.ID, i, 0))
			}
			if s.opts.Midpoints {
				mid := LineSeg{P0: current, P1: c.Position}.Midpoint()
				points = append(points, snapAt(mid, SnapMidpoint, el.ID, -1, -1))
			}
			current = c.Position
		case CubicTo:
			if s.opts.Controls {
				points = append(points,
					snapAt(c.Control1, SnapControl, el.ID, i, 0),
					snapAt(c.Control2, SnapControl, el.ID, i, 1))
			}
			if s.opts.Endpoints {
				points = append(points, snapAt(c.Position, SnapEndpoint, el.ID, i, 2))
			}
			if s.opts.Midpoints {
				seg := CubicSeg{P0: current, P1: c.Control1, P2: c.Control2, P3: c.Position}
				points = append(points, snapAt(seg.Midpoint(), SnapMidpoint, el.ID, -1, -1))
			}
			current = c.Position
		case ClosePath:
			if s.opts.Midpoints && current != start {
				mid := current.Midpoint(start)
				points = append(points, snapAt(mid, SnapMidpoint, el.ID, -1, -1))
			}
			current = start
		}
	}

	if s.opts.BBox {
		if bbox, ok := s.measurer.MeasurePath(el.Path, zoom); ok {
			for _, corner := range bbox.Corners() {
				points = append(points, snapAt(corner, SnapBBoxCorner, el.ID, -1, -1))
			}
			points = append(points, snapAt(bbox.Center(), SnapBBoxCenter, el.ID, -1, -1))
		}
	}
	return points
}

// intersectionCandidates intersects line-type segments across element
// pairs. Curve segments are deliberately excluded; only their chords would
// be available and a chord intersection is not a real curve intersection.
func (s *Snapper) intersectionCandidates(elements []Element) []SnapPoint {
	segs := make([][]LineSeg, len(elements))
	for i, el := range elements {
		segs[i] = lineSegments(el.Path.Commands)
	}
	var points []SnapPoint
	for i := range elements {
		for j := i + 1; j < len(elements); j++ {
			for _, a := range segs[i] {
				for _, b := range segs[j] {
					if p, ok := a.Intersect(b); ok {
						points = append(points, snapAt(p, SnapIntersection, elements[i].ID, -1, -1))
					}
				}
			}
		}
	}
	return points
}

func snapAt(p Point, kind SnapKind, id string, ci, pi int) SnapPoint {
	return SnapPoint{Position: p, Kind: kind, ElementID: id, CommandIndex: ci, PointIndex: pi}
}

// lineSegments returns the straight segments of a command list, including
// the implicit segment drawn by ClosePath.
func lineSegments(commands []Command) []LineSeg {
	var segs []LineSeg
	var current, start Point
	for _, c := range commands {
		switch c.Op {
		case MoveTo:
			start = c.Position
			current = c.Position
		case LineTo:
			segs = append(segs, LineSeg{P0: current, P1: c.Position})
			current = c.Position
		case CubicTo:
			current = c.Position
		case ClosePath:
			if current != start {
				segs = append(segs, LineSeg{P0: current, P1: start})
			}
			current = start
		}
	}
	return segs
}

// ApplyObjectSnap snaps p to the nearest candidate within the snap radius.
// High-priority candidates (anchors, midpoints, bbox features,
// intersections) win over the edge-snap fallback, which only runs when
// none of them is in range. Elements whose id is in excludeIDs — typically
// the ones being dragged — contribute no candidates. When snapping is
// disabled or nothing is in range, p comes back unchanged.
func (s *Snapper) ApplyObjectSnap(p Point, elements []Element, excludeIDs map[string]bool, eligible ElementPredicate, vp Viewport) (Point, SnapPoint, bool) {
	if !s.opts.Enabled {
		return p, SnapPoint{}, false
	}
	threshold := vp.PathDistance(s.opts.Threshold)

	contributing := make([]Element, 0, len(elements))
	for _, el := range elements {
		if excludeIDs[el.ID] {
			continue
		}
		if eligible != nil && !eligible(el) {
			continue
		}
		contributing = append(contributing, el)
	}

	best := SnapPoint{}
	bestDist := threshold
	found := false
	for _, cand := range s.CollectSnapPoints(contributing, vp.Zoom) {
		if d := cand.Position.Distance(p); d <= bestDist {
			best = cand
			bestDist = d
			found = true
		}
	}
	if found {
		return best.Position, best, true
	}

	if s.opts.Edges {
		if q, ok := nearestOnSegments(p, contributing, threshold); ok {
			return q, SnapPoint{Position: q, Kind: SnapEdge}, true
		}
	}
	return p, SnapPoint{}, false
}

// nearestOnSegments finds the closest point on any segment of any element
// within maxDist.
func nearestOnSegments(p Point, elements []Element, maxDist float64) (Point, bool) {
	best := p
	bestDist := maxDist
	found := false
	consider := func(q Point, d float64) {
		if d <= bestDist {
			best = q
			bestDist = d
			found = true
		}
	}
	for _, el := range elements {
		var current, start Point
		for _, c := range el.Path.Commands {
			switch c.Op {
			case MoveTo:
				start = c.Position
				current = c.Position
			case LineTo:
				q, d := LineSeg{P0: current, P1: c.Position}.Nearest(p)
				consider(q, d)
				current = c.Position
			case CubicTo:
				seg := CubicSeg{P0: current, P1: c.Control1, P2: c.Control2, P3: c.Position}
				q, d := seg.Nearest(p)
				consider(q, d)
				current = c.Position
			case ClosePath:
				if current != start {
					q, d := LineSeg{P0: current, P1: start}.Nearest(p)
					consider(q, d)
				}
				current = start
			}
		}
	}
	return best, found
}
