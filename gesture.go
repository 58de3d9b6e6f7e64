package vecedit

import (
	"log/slog"
	"time"
)

// GestureKind identifies the active editing gesture.
type GestureKind uint8

const (
	GestureNone GestureKind = iota
	// GestureEditPoint drags a single editable point, propagating handle
	// alignment live.
	GestureEditPoint
	// GestureDragSelection translates whole elements.
	GestureDragSelection
	// GestureDragSubpaths translates a subset of an element's subpaths.
	GestureDragSubpaths
)

// gesture is the single-variant descriptor of the active edit. Holding the
// whole description in one value enforces structurally that at most one
// gesture is ever in flight.
type gesture struct {
	kind      GestureKind
	elementID string
	// Snapshot of the geometry at gesture start; every update derives
	// from it so throttled updates never compound.
	original map[string][]Command
	strokes  map[string]PathData

	point     ControlPoint
	alignment AlignmentType

	subpaths []SubPath
	start    Point
}

// defaultUpdateInterval bounds how often Move produces an update. This is
// purely to limit recomputation frequency; correctness never depends on
// which moves are dropped.
const defaultUpdateInterval = 16 * time.Millisecond

// EditSession applies editing gestures to existing elements. Updates flow
// out through the injected UpdateElementFunc; cancellation clears all
// transient state and fires the ClearFeedbackFunc. Reverting geometry
// after a cancel is the caller's concern (its history mechanism), not the
// session's.
type EditSession struct {
	update   UpdateElementFunc
	clear    ClearFeedbackFunc
	g        gesture
	interval time.Duration
	lastMove time.Time
}

// NewEditSession creates a session bound to the given collaborators.
// Either callback may be nil.
func NewEditSession(update UpdateElementFunc, clear ClearFeedbackFunc) *EditSession {
	return &EditSession{
		update:   update,
		clear:    clear,
		interval: defaultUpdateInterval,
	}
}

// Active returns the kind of the in-flight gesture, GestureNone when idle.
func (s *EditSession) Active() GestureKind { return s.g.kind }

// BeginPointEdit starts dragging one editable point of an element. The
// point's current alignment relationship is derived once at gesture start
// and then enforced on every update.
func (s *EditSession) BeginPointEdit(el Element, cp ControlPoint) {
	alignment := AlignIndependent
	if cp.IsControl {
		if paired, ok := FindPairedControlPoint(el.Path.Commands, cp.CommandIndex, cp.PointIndex); ok {
			alignment = DetermineControlPointAlignment(cp, paired, paired.Anchor)
		}
	}
	s.g = gesture{
		kind:      GestureEditPoint,
		elementID: el.ID,
		original:  map[string][]Command{el.ID: CloneCommands(el.Path.Commands)},
		strokes:   map[string]PathData{el.ID: el.Path},
		point:     cp,
		alignment: alignment,
	}
}

// BeginSelectionDrag starts translating whole elements from their current
// positions.
func (s *EditSession) BeginSelectionDrag(els []Element, start Point) {
	g := gesture{
		kind:     GestureDragSelection,
		original: make(map[string][]Command, len(els)),
		strokes:  make(map[string]PathData, len(els)),
		start:    start,
	}
	for _, el := range els {
		g.original[el.ID] = CloneCommands(el.Path.Commands)
		g.strokes[el.ID] = el.Path
	}
	s.g = g
}

// BeginSubpathDrag starts translating the given subpaths of one element.
func (s *EditSession) BeginSubpathDrag(el Element, subpaths []SubPath, start Point) {
	s.g = gesture{
		kind:      GestureDragSubpaths,
		elementID: el.ID,
		original:  map[string][]Command{el.ID: CloneCommands(el.Path.Commands)},
		strokes:   map[string]PathData{el.ID: el.Path},
		subpaths:  subpaths,
		start:     start,
	}
}

// Move applies the pointer position to the active gesture. Calls closer
// together than the update interval are dropped.
func (s *EditSession) Move(p Point, at time.Time) {
	if s.g.kind == GestureNone {
		return
	}
	if at.Sub(s.lastMove) < s.interval {
		return
	}
	s.lastMove = at

	switch s.g.kind {
	case GestureEditPoint:
		s.movePoint(p)
	case GestureDragSelection:
		delta := p.Sub(s.g.start)
		for id, cmds := range s.g.original {
			s.emit(id, TranslateCommands(cmds, delta.X, delta.Y))
		}
	case GestureDragSubpaths:
		delta := p.Sub(s.g.start)
		s.emit(s.g.elementID, s.translateSubpaths(delta))
	}
}

func (s *EditSession) movePoint(p Point) {
	cmds := s.g.original[s.g.elementID]
	cp := s.g.point
	cp.Position = p
	updated := PropagateAlignment(cmds, cp, s.g.alignment)
	s.emit(s.g.elementID, updated)
}

func (s *EditSession) translateSubpaths(delta Vec2) []Command {
	out := CloneCommands(s.g.original[s.g.elementID])
	for _, sp := range s.g.subpaths {
		for i := sp.StartIndex; i <= sp.EndIndex && i < len(out); i++ {
			c := &out[i]
			for pi := range c.PointCount() {
				c.SetPoint(pi, c.Point(pi).Translate(delta.X, delta.Y).Round())
			}
		}
	}
	return out
}

func (s *EditSession) emit(id string, cmds []Command) {
	if s.update == nil {
		return
	}
	data := s.g.strokes[id]
	data.Commands = cmds
	s.update(id, data)
}

// Finish ends the gesture, keeping the last applied update.
func (s *EditSession) Finish() {
	s.g = gesture{}
}

// CancelGesture force-clears the active gesture and its geometry snapshot.
// Call it for pointer-cancel, context-menu, focus or visibility loss, and
// unload. After cancellation the session produces no further updates; it
// does not restore prior geometry.
func (s *EditSession) CancelGesture() {
	if s.g.kind == GestureNone {
		return
	}
	Logger().Debug("edit gesture cancelled", slog.Int("kind", int(s.g.kind)))
	s.g = gesture{}
	if s.clear != nil {
		s.clear()
	}
}
