package vecedit

import (
	"log/slog"
	"math"
	"time"
)

// PenState is the current mode of the pen tool.
type PenState uint8

const (
	// PenInactive: the tool is not engaged.
	PenInactive PenState = iota
	// PenCreating: clicks append points to the path under construction.
	PenCreating
	// PenEditing: a modifier-click selected an existing point or handle;
	// a drag has been armed but the pointer has not moved yet.
	PenEditing
	// PenDraggingPoint: an existing point is being moved.
	PenDraggingPoint
	// PenDraggingHandle: a single handle is being moved.
	PenDraggingHandle
)

func (s PenState) String() string {
	switch s {
	case PenCreating:
		return "creating"
	case PenEditing:
		return "editing"
	case PenDraggingPoint:
		return "dragging_point"
	case PenDraggingHandle:
		return "dragging_handle"
	default:
		return "inactive"
	}
}

// PenPoint is one authored point: its position, optional incoming and
// outgoing handles, and whether it is smooth (handles synthesized) or a
// corner.
type PenPoint struct {
	Position  Point
	HandleIn  *Point
	HandleOut *Point
	Smooth    bool
}

type penDragKind uint8

const (
	penDragNone penDragKind = iota
	penDragCurvature
	penDragLastSegment
	penDragClosingSegment
	penDragPoint
	penDragHandle
)

// penDrag is the single-variant descriptor of the in-flight gesture. At
// most one drag is ever active; replacing the value is the only way to
// start another.
type penDrag struct {
	kind penDragKind
	// ref and anchor are point indexes: the segment runs from ref to
	// anchor for curvature drags; anchor is the grabbed point for point
	// and handle drags.
	ref, anchor int
	handleOut   bool
}

// PenOption configures a PenTool.
type PenOption func(*penOptions)

type penOptions struct {
	pointHitRadius     float64
	handleHitRadius    float64
	doubleClickWindow  time.Duration
	doubleClickRadius  float64
	curvatureThreshold float64
	handleOffsetFactor float64
	curvatureClamp     float64
	moveInterval       time.Duration
	strokeWidth        float64
	stroke             string
	fill               string
}

func defaultPenOptions() penOptions {
	return penOptions{
		pointHitRadius:     10,
		handleHitRadius:    8,
		doubleClickWindow:  300 * time.Millisecond,
		doubleClickRadius:  5,
		curvatureThreshold: 5,
		handleOffsetFactor: 0.3,
		curvatureClamp:     0.5,
		moveInterval:       16 * time.Millisecond,
		strokeWidth:        1,
		stroke:             "#000000",
	}
}

// WithPenStyle sets the style attributes of finished paths.
func WithPenStyle(strokeWidth float64, stroke, fill string) PenOption {
	return func(o *penOptions) {
		o.strokeWidth = strokeWidth
		o.stroke = stroke
		o.fill = fill
	}
}

// WithPenHitRadii overrides the screen-space point and handle hit radii.
func WithPenHitRadii(point, handle float64) PenOption {
	return func(o *penOptions) {
		o.pointHitRadius = point
		o.handleHitRadius = handle
	}
}

// PenTool is the interactive protocol for authoring a new path by clicking
// and dragging points and handles. It is single-threaded and event-driven:
// feed it pointer events in path space, and it emits a finished PathData
// through the callback passed to NewPenTool.
type PenTool struct {
	state    PenState
	points   []PenPoint
	drag     penDrag
	selected int
	closing  bool

	lastClickAt  time.Time
	lastClickPos Point
	lastMoveAt   time.Time

	viewport Viewport
	opts     penOptions
	onFinish func(PathData)
}

// NewPenTool creates a pen tool in the inactive state. onFinish receives
// every finished path; a nil callback discards them.
func NewPenTool(onFinish func(PathData), opts ...PenOption) *PenTool {
	o := defaultPenOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &PenTool{
		state:    PenInactive,
		selected: -1,
		viewport: Viewport{Zoom: 1},
		opts:     o,
		onFinish: onFinish,
	}
}

// State returns the current state.
func (t *PenTool) State() PenState { return t.state }

// Points returns the points authored so far. The slice is shared; callers
// must not mutate it.
func (t *PenTool) Points() []PenPoint { return t.points }

// SelectedPoint returns the index of the selected point, or -1.
func (t *PenTool) SelectedPoint() int { return t.selected }

// SetViewport updates the zoom used to convert screen-space hit radii to
// path space.
func (t *PenTool) SetViewport(v Viewport) { t.viewport = v }

// Activate engages the tool and enters the creating state.
func (t *PenTool) Activate() {
	t.reset()
	t.state = PenCreating
}

// Deactivate clears all transient state without producing a path.
func (t *PenTool) Deactivate() {
	t.reset()
	t.state = PenInactive
}

// Cancel clears the authored points but stays in the creating state — a
// mid-session reset.
func (t *PenTool) Cancel() {
	if t.state == PenInactive {
		return
	}
	t.reset()
	t.state = PenCreating
}

// CancelGesture force-clears only the in-flight drag. Call this for
// pointer-cancel, focus loss, and similar interruptions; authored points
// survive.
func (t *PenTool) CancelGesture() {
	if t.drag.kind == penDragNone {
		return
	}
	Logger().Debug("pen gesture cancelled", slog.String("state", t.state.String()))
	t.drag = penDrag{}
	if t.state != PenInactive {
		t.state = PenCreating
	}
	t.closing = false
}

func (t *PenTool) reset() {
	t.points = nil
	t.drag = penDrag{}
	t.selected = -1
	t.closing = false
	t.lastClickAt = time.Time{}
}

// PointerDown handles a pointer press at p (path space) with the given
// modifiers.
func (t *PenTool) PointerDown(p Point, mods Modifiers, at time.Time) {
	if t.state == PenInactive {
		return
	}
	defer func() {
		t.lastClickAt = at
		t.lastClickPos = p
	}()

	if mods.Has(ModEdit) {
		if idx := t.hitPoint(p, t.opts.pointHitRadius); idx >= 0 {
			t.selected = idx
			t.drag = penDrag{kind: penDragPoint, anchor: idx}
			t.state = PenEditing
			return
		}
		if idx, out := t.hitHandle(p, t.opts.handleHitRadius); idx >= 0 {
			t.selected = idx
			t.drag = penDrag{kind: penDragHandle, anchor: idx, handleOut: out}
			t.state = PenEditing
			return
		}
	}

	if t.isDoubleClick(p, at) && len(t.points) >= 3 {
		t.FinishPath()
		return
	}

	if len(t.points) >= 3 && t.hitsExisting(p, 0) {
		// Clicking the first point arms the closing drag; the path
		// actually closes on pointer-up.
		t.drag = penDrag{kind: penDragClosingSegment, ref: len(t.points) - 1, anchor: 0}
		t.closing = true
		return
	}

	if len(t.points) >= 2 && t.hitsExisting(p, len(t.points)-1) {
		t.drag = penDrag{kind: penDragLastSegment, ref: len(t.points) - 2, anchor: len(t.points) - 1}
		return
	}

	t.points = append(t.points, PenPoint{Position: p})
	t.selected = len(t.points) - 1
	if len(t.points) >= 2 {
		t.drag = penDrag{kind: penDragCurvature, ref: len(t.points) - 2, anchor: len(t.points) - 1}
	}
}

// PointerMove handles pointer motion. Updates are rate-limited to bound
// recomputation, not for correctness.
func (t *PenTool) PointerMove(p Point, at time.Time) {
	if t.drag.kind == penDragNone {
		return
	}
	if at.Sub(t.lastMoveAt) < t.opts.moveInterval {
		return
	}
	t.lastMoveAt = at

	switch t.drag.kind {
	case penDragCurvature, penDragLastSegment, penDragClosingSegment:
		t.adjustCurvature(p)
	case penDragPoint:
		t.state = PenDraggingPoint
		t.movePoint(p)
	case penDragHandle:
		t.state = PenDraggingHandle
		t.moveHandle(p)
	}
}

// PointerUp ends the in-flight drag. A drag marked for closing finishes
// the path.
func (t *PenTool) PointerUp(Point, time.Time) {
	if t.closing && t.drag.kind == penDragClosingSegment {
		t.FinishPath()
		return
	}
	t.drag = penDrag{}
	if t.state == PenEditing || t.state == PenDraggingPoint || t.state == PenDraggingHandle {
		t.state = PenCreating
	}
}

// adjustCurvature shapes the active segment: the pointer offset from the
// grabbed point is projected onto the segment's perpendicular and clamped
// to half the segment length. Beyond the curvature threshold both segment
// ends get a symmetric handle pair and become smooth; below it the handles
// clear and both ends are corners.
func (t *PenTool) adjustCurvature(p Point) {
	a := &t.points[t.drag.ref]
	b := &t.points[t.drag.anchor]

	seg := b.Position.Sub(a.Position)
	segLen := seg.Length()
	if segLen == 0 {
		return
	}
	perp := seg.Normalize().Perp()

	k := p.Sub(b.Position).Dot(perp)
	clamp := t.opts.curvatureClamp * segLen
	k = math.Max(-clamp, math.Min(clamp, k))

	if math.Abs(k) <= t.opts.curvatureThreshold {
		a.HandleOut = nil
		b.HandleIn = nil
		a.Smooth = false
		b.Smooth = false
		return
	}

	offset := seg.Mul(t.opts.handleOffsetFactor)
	bow := perp.Mul(k)
	out := a.Position.Add(offset).Add(bow)
	in := b.Position.Add(offset.Neg()).Add(bow)
	a.HandleOut = &out
	b.HandleIn = &in
	a.Smooth = true
	b.Smooth = true
}

// movePoint translates the grabbed point and both of its handles by the
// same delta.
func (t *PenTool) movePoint(p Point) {
	pt := &t.points[t.drag.anchor]
	delta := p.Sub(pt.Position)
	pt.Position = p
	if pt.HandleIn != nil {
		h := pt.HandleIn.Add(delta)
		pt.HandleIn = &h
	}
	if pt.HandleOut != nil {
		h := pt.HandleOut.Add(delta)
		pt.HandleOut = &h
	}
}

// moveHandle moves only the grabbed handle. When the owning point lacks
// the opposing handle, one is synthesized by mirroring through the point
// so the curve stays visually smooth on both sides.
func (t *PenTool) moveHandle(p Point) {
	pt := &t.points[t.drag.anchor]
	mirror := Pt(2*pt.Position.X-p.X, 2*pt.Position.Y-p.Y)
	if t.drag.handleOut {
		pt.HandleOut = &p
		if pt.HandleIn == nil {
			pt.HandleIn = &mirror
		}
	} else {
		pt.HandleIn = &p
		if pt.HandleOut == nil {
			pt.HandleOut = &mirror
		}
	}
}

// FinishPath serializes the authored points into commands — a cubic
// segment wherever both adjacent handles exist, a straight line otherwise
// — closes the path when marked for closing, emits the result, and resets
// to an empty creating state.
func (t *PenTool) FinishPath() {
	defer func() {
		t.points = nil
		t.drag = penDrag{}
		t.selected = -1
		t.closing = false
		t.state = PenCreating
	}()

	if len(t.points) < 2 {
		return
	}

	cmds := make([]Command, 0, len(t.points)+1)
	cmds = append(cmds, Move(t.points[0].Position))
	for i := 1; i < len(t.points); i++ {
		cmds = append(cmds, segmentCommand(t.points[i-1], t.points[i]))
	}
	if t.closing {
		cmds = append(cmds, segmentCommand(t.points[len(t.points)-1], t.points[0]))
		cmds = append(cmds, Close())
	}

	// Round-trip through text so the emitted path carries exactly the
	// precision every other consumer will see.
	parsed := NormalizeCommands(Parse(CommandsToString(cmds)))
	if t.onFinish != nil {
		t.onFinish(PathData{
			Commands:    parsed,
			StrokeWidth: t.opts.strokeWidth,
			Stroke:      t.opts.stroke,
			Fill:        t.opts.fill,
		})
	}
	Logger().Debug("pen path finished",
		slog.Int("points", len(t.points)), slog.Bool("closed", t.closing))
}

func segmentCommand(a, b PenPoint) Command {
	if a.HandleOut != nil && b.HandleIn != nil {
		return Cubic(*a.HandleOut, *b.HandleIn, b.Position)
	}
	return Line(b.Position)
}

// DeleteSelectedPoint removes the selected point and repairs exactly the
// one dangling handle left on a neighbor: deleting the first point clears
// the new first point's incoming handle, deleting the last point clears
// the new last point's outgoing handle, and an interior deletion clears
// the previous point's outgoing and the next point's incoming handle.
func (t *PenTool) DeleteSelectedPoint() {
	i := t.selected
	if i < 0 || i >= len(t.points) {
		return
	}
	last := len(t.points) - 1
	t.points = append(t.points[:i], t.points[i+1:]...)
	switch {
	case len(t.points) == 0:
	case i == 0:
		t.points[0].HandleIn = nil
	case i == last:
		t.points[len(t.points)-1].HandleOut = nil
	default:
		t.points[i-1].HandleOut = nil
		t.points[i].HandleIn = nil
	}
	t.selected = -1
}

// hitPoint returns the index of the first point within radius (screen px)
// of p, or -1.
func (t *PenTool) hitPoint(p Point, radius float64) int {
	r := t.viewport.PathDistance(radius)
	for i := range t.points {
		if t.points[i].Position.Distance(p) <= r {
			return i
		}
	}
	return -1
}

// hitHandle returns the owner index and side of the first handle within
// radius of p, or (-1, false).
func (t *PenTool) hitHandle(p Point, radius float64) (int, bool) {
	r := t.viewport.PathDistance(radius)
	for i := range t.points {
		if h := t.points[i].HandleOut; h != nil && h.Distance(p) <= r {
			return i, true
		}
		if h := t.points[i].HandleIn; h != nil && h.Distance(p) <= r {
			return i, false
		}
	}
	return -1, false
}

func (t *PenTool) hitsExisting(p Point, idx int) bool {
	r := t.viewport.PathDistance(t.opts.pointHitRadius)
	return t.points[idx].Position.Distance(p) <= r
}

func (t *PenTool) isDoubleClick(p Point, at time.Time) bool {
	if t.lastClickAt.IsZero() {
		return false
	}
	return at.Sub(t.lastClickAt) <= t.opts.doubleClickWindow &&
		p.Distance(t.lastClickPos) <= t.viewport.PathDistance(t.opts.doubleClickRadius)
}
