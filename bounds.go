package vecedit

import (
	"math"
	"strconv"

	"golang.org/x/image/math/fixed"

	"github.com/vecedit/vecedit/cache"
)

// MeasurementSurface turns commands into a geometric bounding box. It
// stands in for the off-document canvas the editor renders against: the
// default implementation measures analytically on a 1/64-unit raster grid,
// but callers may inject a surface backed by a real rasterizer.
type MeasurementSurface interface {
	// Measure returns the bounding box of the commands and false when
	// the commands contain no point-bearing geometry.
	Measure(commands []Command) (Rect, bool)
}

// rasterSurface measures analytically (line endpoints, cubic extrema) and
// snaps the result outward to the raster grid, matching what a rendering
// surface would report for the same geometry.
type rasterSurface struct{}

func (rasterSurface) Measure(commands []Command) (Rect, bool) {
	bbox, ok := commandsBounds(commands)
	if !ok {
		return Rect{}, false
	}
	return Rect{
		Min: Point{X: floorGrid(bbox.Min.X), Y: floorGrid(bbox.Min.Y)},
		Max: Point{X: ceilGrid(bbox.Max.X), Y: ceilGrid(bbox.Max.Y)},
	}, true
}

// floorGrid and ceilGrid round a coordinate outward to the 26.6
// fixed-point raster grid.
func floorGrid(v float64) float64 {
	return float64(fixed.Int26_6(math.Floor(v*64))) / 64
}

func ceilGrid(v float64) float64 {
	return float64(fixed.Int26_6(math.Ceil(v*64))) / 64
}

// commandsBounds accumulates the tight bounding box of the command list.
func commandsBounds(commands []Command) (Rect, bool) {
	var (
		bbox    Rect
		current Point
		seeded  bool
	)
	expand := func(r Rect) {
		if !seeded {
			bbox = r
			seeded = true
			return
		}
		bbox = bbox.Union(r)
	}
	for _, c := range commands {
		switch c.Op {
		case MoveTo, LineTo:
			expand(NewRect(c.Position, c.Position))
			current = c.Position
		case CubicTo:
			seg := CubicSeg{P0: current, P1: c.Control1, P2: c.Control2, P3: c.Position}
			expand(seg.BoundingBox())
			current = c.Position
		}
	}
	return bbox, seeded
}

// AccumulateBounds folds multiple command sets into one enclosing box.
// The second return value is false when none of the sets contained
// geometry.
func AccumulateBounds(sets ...[]Command) (Rect, bool) {
	var (
		total Rect
		any   bool
	)
	for _, cmds := range sets {
		b, ok := commandsBounds(cmds)
		if !ok {
			continue
		}
		if !any {
			total = b
			any = true
			continue
		}
		total = total.Union(b)
	}
	return total, any
}

type measuredBounds struct {
	rect Rect
	ok   bool
}

// Measurer measures path bounds against a MeasurementSurface and memoizes
// the results by (serialized geometry, stroke width, zoom). Invalidate
// whenever geometry changes; results never expire on their own.
type Measurer struct {
	surface MeasurementSurface
	memo    *cache.Sharded[string, measuredBounds]
}

// MeasurerOption configures a Measurer.
type MeasurerOption func(*Measurer)

// WithSurface injects a custom measurement surface.
func WithSurface(s MeasurementSurface) MeasurerOption {
	return func(m *Measurer) { m.surface = s }
}

// NewMeasurer creates a Measurer with the default analytic surface.
func NewMeasurer(opts ...MeasurerOption) *Measurer {
	m := &Measurer{
		surface: rasterSurface{},
		memo:    cache.NewSharded[string, measuredBounds](0, cache.StringHasher),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// MeasurePath returns the bounding box of the path's geometry expanded by
// half the stroke width on every side. zoom participates only in the memo
// key, mirroring surfaces whose measurement granularity follows the view.
func (m *Measurer) MeasurePath(data PathData, zoom float64) (Rect, bool) {
	return m.measure(data.Commands, data.StrokeWidth, zoom)
}

// MeasureSubpathBounds measures one subpath with the owning path's stroke
// width applied.
func (m *Measurer) MeasureSubpathBounds(sp SubPath, strokeWidth, zoom float64) (Rect, bool) {
	return m.measure(sp.Commands, strokeWidth, zoom)
}

func (m *Measurer) measure(commands []Command, strokeWidth, zoom float64) (Rect, bool) {
	key := CommandsToString(commands) + "|" +
		strconv.FormatFloat(strokeWidth, 'f', -1, 64) + "|" +
		strconv.FormatFloat(zoom, 'f', -1, 64)
	got := m.memo.GetOrCreate(key, func() measuredBounds {
		bbox, ok := m.surface.Measure(commands)
		if !ok {
			return measuredBounds{}
		}
		return measuredBounds{rect: bbox.Expand(strokeWidth / 2), ok: true}
	})
	return got.rect, got.ok
}

// Invalidate drops every memoized measurement.
func (m *Measurer) Invalidate() {
	Logger().Debug("bounds cache invalidated")
	m.memo.Clear()
}

// MeasureElementTree measures an element and, recursively, its children as
// reported by lookup (id -> element, child ids, found). Group containers
// contribute only their children. A visited set guards against reference
// cycles: an id already on the current recursion path is skipped.
func (m *Measurer) MeasureElementTree(id string, lookup func(string) (Element, []string, bool), zoom float64) (Rect, bool) {
	return m.measureTree(id, lookup, zoom, map[string]bool{})
}

func (m *Measurer) measureTree(id string, lookup func(string) (Element, []string, bool), zoom float64, visited map[string]bool) (Rect, bool) {
	if visited[id] {
		return Rect{}, false
	}
	visited[id] = true
	defer delete(visited, id)

	el, children, found := lookup(id)
	if !found {
		return Rect{}, false
	}

	total, any := m.MeasurePath(el.Path, zoom)
	for _, child := range children {
		b, ok := m.measureTree(child, lookup, zoom, visited)
		if !ok {
			continue
		}
		if !any {
			total = b
			any = true
			continue
		}
		total = total.Union(b)
	}
	return total, any
}
