package pointer

import (
	"time"

	"github.com/arjunmn/mudra/internal/config"
	"github.com/arjunmn/mudra/internal/detector"
)

// Gesture state machine thresholds.
const (
	// PinchThreshold is the normalized fingertip distance below which two
	// tips count as pinched.
	PinchThreshold = 0.05

	// HoldToDrag is how long an index pinch must be held before it becomes
	// a drag instead of a click.
	HoldToDrag = 200 * time.Millisecond

	// DoubleClickWindow is how long after a click a second click counts as
	// a double click.
	DoubleClickWindow = 300 * time.Millisecond
)

// interactionState is the interpreter's only memory across steps.
// It is created when the interpreter starts and cleared on hand loss.
type interactionState struct {
	smoother       *Smoother
	pinchStart     time.Time // zero when no hold timer is running
	dragging       bool
	middleDragging bool
	clickCount     int
	clickDeadline  time.Time
	lastPos        Point
	hasPos         bool
}

// Interpreter converts one detection result per step into a State snapshot.
//
// It is not safe for concurrent use: the frame pump steps it from a single
// goroutine, which is why interactionState needs no locking.
type Interpreter struct {
	cfg *config.Config
	now func() time.Time
	st  interactionState
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithClock injects a monotonic clock, used by tests to drive the
// hold-to-drag and double-click thresholds without real delays.
func WithClock(now func() time.Time) Option {
	return func(it *Interpreter) { it.now = now }
}

// New creates an Interpreter reading the given configuration each step.
func New(cfg *config.Config, opts ...Option) *Interpreter {
	it := &Interpreter{
		cfg: cfg,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(it)
	}
	it.st.smoother = NewSmoother(cfg.Snapshot().Smoothing.Window())
	return it
}

// Step consumes one detection result (nil for a null detection) and returns
// a fresh State snapshot, updating the interaction state in place.
func (it *Interpreter) Step(res *detector.Result) State {
	s := it.cfg.Snapshot()

	hand := selectHand(res, s.Hand)
	if hand == nil {
		return it.Reset()
	}

	// ROI mapping and smoothing.
	scale := HandScale(hand)
	roi := EffectiveROI(s.BaseROI, scale)
	mapped := MapToROI(hand.Points[detector.IndexTip], roi)

	it.st.smoother.Resize(s.Smoothing.Window())
	smoothed := it.st.smoother.Push(mapped)
	it.st.lastPos = smoothed
	it.st.hasPos = true

	now := it.now()

	// A double-click window that elapsed without a second press expires
	// silently; the eager CLICK already fired.
	if it.st.clickCount > 0 && now.After(it.st.clickDeadline) {
		it.st.clickCount = 0
		it.st.clickDeadline = time.Time{}
	}

	indexPinch := detector.ImageDistance(
		hand.Points[detector.IndexTip], hand.Points[detector.ThumbTip]) < PinchThreshold
	middlePinch := detector.ImageDistance(
		hand.Points[detector.MiddleTip], hand.Points[detector.ThumbTip]) < PinchThreshold

	events := make(map[Event]bool)
	mode := ModeNone

	switch {
	case middlePinch:
		// Middle pinch preempts index pinch: rotate wins over drag.
		if it.st.middleDragging {
			events[EventDragMiddleMove] = true
		} else {
			events[EventDragMiddleStart] = true
			it.st.middleDragging = true
			// Abandon a pending index hold so releasing both pinches
			// later does not register a phantom click.
			it.st.pinchStart = time.Time{}
		}
		mode = ModeRotate

	case it.st.middleDragging:
		events[EventDragMiddleEnd] = true
		it.st.middleDragging = false
		if it.st.dragging {
			mode = ModeDrag
		}

	case indexPinch:
		if it.st.dragging {
			events[EventDragMove] = true
			mode = ModeDrag
		} else {
			if it.st.pinchStart.IsZero() {
				it.st.pinchStart = now
			}
			if now.Sub(it.st.pinchStart) >= HoldToDrag {
				events[EventDragStart] = true
				it.st.dragging = true
				mode = ModeDrag
			}
			// Below the hold threshold the timer keeps running with no
			// event; mode stays none until the pinch resolves.
		}

	case it.st.dragging:
		events[EventDragEnd] = true
		it.st.dragging = false
		it.st.pinchStart = time.Time{}

	case !it.st.pinchStart.IsZero():
		// Pinch released before the hold threshold: a short press.
		it.st.pinchStart = time.Time{}
		if it.st.clickCount == 0 {
			// Single click fires eagerly, not after the window.
			it.st.clickCount = 1
			it.st.clickDeadline = now.Add(DoubleClickWindow)
			events[EventClick] = true
		} else {
			it.st.clickCount = 0
			it.st.clickDeadline = time.Time{}
			events[EventDoubleClick] = true
		}
		mode = ModeClick

	default:
		events[EventPointerMove] = true
	}

	return State{
		Cursor: Cursor{
			X:      smoothed.X * float64(s.ViewportW),
			Y:      smoothed.Y * float64(s.ViewportH),
			Active: true,
			Mode:   mode,
		},
		Label:  hand.TopCategory(),
		Events: events,
		Debug: Debug{
			Root:         Point{X: hand.Points[detector.Wrist].X, Y: hand.Points[detector.Wrist].Y},
			Scale:        scale,
			BaseROI:      s.BaseROI,
			EffectiveROI: roi,
			Handedness:   hand.Handedness,
			Landmarks:    hand.Points[:],
		},
	}
}

// Reset forces the interpreter into the idle state: the smoothing buffer is
// cleared and all flags drop. If a drag was active the matching end event is
// synthesized so downstream consumers never hold a stuck pressed state.
func (it *Interpreter) Reset() State {
	events := make(map[Event]bool)
	if it.st.dragging {
		events[EventDragEnd] = true
	}
	if it.st.middleDragging {
		events[EventDragMiddleEnd] = true
	}
	events[EventIdle] = true

	it.st.smoother.Reset()
	it.st.pinchStart = time.Time{}
	it.st.dragging = false
	it.st.middleDragging = false
	it.st.clickCount = 0
	it.st.clickDeadline = time.Time{}

	s := it.cfg.Snapshot()
	cursor := Cursor{Active: false, Mode: ModeNone}
	if it.st.hasPos {
		// Keep the last known position so renderers do not jump to origin.
		cursor.X = it.st.lastPos.X * float64(s.ViewportW)
		cursor.Y = it.st.lastPos.Y * float64(s.ViewportH)
	}

	return State{
		Cursor: cursor,
		Label:  "None",
		Events: events,
	}
}

// selectHand applies the hand-preference filter. Preference Both selects the
// primary hand; Left or Right require an exact handedness match and act as a
// hard filter, never a fallback.
func selectHand(res *detector.Result, pref config.HandPreference) *detector.HandLandmarks {
	if res == nil || len(res.Hands) == 0 {
		return nil
	}
	if pref == config.HandBoth {
		return &res.Hands[0]
	}
	for i := range res.Hands {
		if res.Hands[i].Handedness == string(pref) {
			return &res.Hands[i]
		}
	}
	return nil
}
