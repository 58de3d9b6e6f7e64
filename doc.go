// Package vecedit implements the geometry core of an interactive vector
// path editor.
//
// # Overview
//
// vecedit models paths as sequences of absolute M/L/C/Z commands and
// provides everything an editor needs between the pointer and the screen:
// parsing and serialization of path text, extraction and update of editable
// points, control-handle alignment (independent/aligned/mirrored),
// affine/skew/perspective transforms, a pen-tool state machine for
// authoring new paths, and spatial queries (bounds, snapping, selection
// hit-testing).
//
// The package is deliberately free of rendering, storage, and event
// plumbing. Callers feed it path-space points and modifier flags and get
// back pure values. The heavy operations are (near-)pure functions over
// command slices that are cloned before mutation; caches for bounds and
// snap points are explicit and invalidated on input change, never by time.
//
// # Quick Start
//
//	cmds := vecedit.Parse("M 0 0 L 10 0 C 15 5 20 5 25 0 Z")
//	points := vecedit.ExtractEditablePoints(cmds)
//	moved := vecedit.UpdateCommands(cmds, []vecedit.ControlPoint{pt})
//	text := vecedit.CommandsToString(moved)
//
// # Coordinate System
//
// All coordinates are in path space: origin at top-left, X increasing
// right, Y increasing down. Screen-space thresholds (snap radii, hit
// radii) are converted through a Viewport's zoom factor.
//
// # Concurrency
//
// The core is single-threaded and event-driven. Types with transient
// gesture state (PenTool, EditSession) must be confined to one goroutine;
// the value types and pure functions are safe to use from anywhere.
package vecedit

// Version is the current version of the library.
const Version = "0.1.0"
