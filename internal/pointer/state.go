// Package pointer implements the gesture interpreter: it turns per-frame
// hand landmark detections into a smoothed cursor position and a discrete
// stream of interaction events.
package pointer

import "github.com/arjunmn/mudra/internal/detector"

// Mode is the interaction mode of the cursor for one step.
// Exactly one mode applies per step.
type Mode string

const (
	ModeNone   Mode = "none"
	ModeClick  Mode = "click"
	ModeDrag   Mode = "drag"
	ModeRotate Mode = "rotate"
	ModeScroll Mode = "scroll"
)

// Event names emitted by the interpreter.
type Event string

const (
	EventIdle            Event = "IDLE"
	EventPointerMove     Event = "POINTER_MOVE"
	EventClick           Event = "CLICK"
	EventDoubleClick     Event = "DOUBLE_CLICK"
	EventDragStart       Event = "DRAG_START"
	EventDragMove        Event = "DRAG_MOVE"
	EventDragEnd         Event = "DRAG_END"
	EventDragMiddleStart Event = "DRAG_MIDDLE_START"
	EventDragMiddleMove  Event = "DRAG_MIDDLE_MOVE"
	EventDragMiddleEnd   Event = "DRAG_MIDDLE_END"
)

// Point is a position in normalized [0,1] output space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Cursor is the pointer position in viewport pixels.
// Active is true iff a qualifying hand was present in the most recent
// non-null detection.
type Cursor struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Active bool    `json:"active"`
	Mode   Mode    `json:"mode"`
}

// Debug carries per-step metadata for overlays and diagnostics.
type Debug struct {
	Root         Point              `json:"root"`
	Scale        float64            `json:"scale"`
	BaseROI      float64            `json:"base_roi"`
	EffectiveROI float64            `json:"effective_roi"`
	Handedness   string             `json:"handedness"`
	Landmarks    []detector.Point3D `json:"landmarks,omitempty"`
}

// State is the immutable output snapshot of one interpreter step.
type State struct {
	Cursor Cursor         `json:"cursor"`
	Label  string         `json:"label"`
	Events map[Event]bool `json:"events"`
	Debug  Debug          `json:"debug"`
}

// Has reports whether the event fired this step.
func (s State) Has(e Event) bool {
	return s.Events[e]
}
