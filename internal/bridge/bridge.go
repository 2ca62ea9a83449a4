// Package bridge translates interpreter output into pointer driver actions.
// It tracks which events in each state are new work for the driver and
// throttles raw cursor moves so slow drivers are not flooded.
package bridge

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/arjunmn/mudra/internal/plugin"
	"github.com/arjunmn/mudra/internal/pointer"
)

// DefaultMoveInterval is the minimum gap between cursor move actions
// sent to the driver. Discrete events are never throttled.
const DefaultMoveInterval = 16 * time.Millisecond

// Bridge applies interpreter states to an output device.
type Bridge interface {
	Apply(state pointer.State) error
}

// runner abstracts plugin execution so tests can substitute a fake.
type runner interface {
	Execute(p *plugin.Plugin, req *plugin.Request) (*plugin.Response, error)
}

// DriverBridge forwards interaction events to an external driver plugin.
type DriverBridge struct {
	driver       *plugin.Plugin
	exec         runner
	moveInterval time.Duration
	lastMove     time.Time
	now          func() time.Time
}

// Option configures a DriverBridge.
type Option func(*DriverBridge)

// WithMoveInterval overrides the cursor move throttle interval.
func WithMoveInterval(d time.Duration) Option {
	return func(b *DriverBridge) { b.moveInterval = d }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(b *DriverBridge) { b.now = now }
}

// NewDriverBridge creates a bridge that executes the given driver plugin.
func NewDriverBridge(driver *plugin.Plugin, exec *plugin.Executor, opts ...Option) *DriverBridge {
	b := &DriverBridge{
		driver:       driver,
		exec:         exec,
		moveInterval: DefaultMoveInterval,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// moveParams is the JSON payload for cursor positioning actions.
type moveParams struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// eventActions maps each discrete interaction event to the driver action
// that realizes it. POINTER_MOVE and the *_MOVE events are handled
// separately as throttled moves.
var eventActions = map[pointer.Event]string{
	pointer.EventClick:           "click",
	pointer.EventDoubleClick:     "double-click",
	pointer.EventDragStart:       "button-down",
	pointer.EventDragEnd:         "button-up",
	pointer.EventDragMiddleStart: "middle-down",
	pointer.EventDragMiddleEnd:   "middle-up",
}

// dispatch order for the discrete events. End events come before start
// events so a single state carrying both releases before pressing.
var eventOrder = []pointer.Event{
	pointer.EventDragEnd,
	pointer.EventDragMiddleEnd,
	pointer.EventClick,
	pointer.EventDoubleClick,
	pointer.EventDragStart,
	pointer.EventDragMiddleStart,
}

// Apply sends the state's events to the driver. Discrete events are
// always forwarded; cursor moves are rate limited to moveInterval.
func (b *DriverBridge) Apply(state pointer.State) error {
	if state.Has(pointer.EventIdle) && !state.Has(pointer.EventDragEnd) && !state.Has(pointer.EventDragMiddleEnd) {
		return nil
	}

	for _, ev := range eventOrder {
		if !state.Has(ev) {
			continue
		}
		if err := b.run(eventActions[ev], ev, state.Cursor.X, state.Cursor.Y); err != nil {
			return err
		}
	}

	if b.wantsMove(state) {
		now := b.now()
		if now.Sub(b.lastMove) < b.moveInterval {
			return nil
		}
		b.lastMove = now
		return b.run("move", pointer.EventPointerMove, state.Cursor.X, state.Cursor.Y)
	}

	return nil
}

func (b *DriverBridge) wantsMove(state pointer.State) bool {
	return state.Has(pointer.EventPointerMove) ||
		state.Has(pointer.EventDragMove) ||
		state.Has(pointer.EventDragMiddleMove)
}

func (b *DriverBridge) run(action string, ev pointer.Event, x, y float64) error {
	params, err := json.Marshal(moveParams{X: x, Y: y})
	if err != nil {
		return fmt.Errorf("failed to marshal driver params: %w", err)
	}

	resp, err := b.exec.Execute(b.driver, &plugin.Request{
		Action: action,
		Event:  string(ev),
		Params: params,
	})
	if err != nil {
		return fmt.Errorf("driver %s: %w", action, err)
	}
	if !resp.Success {
		return fmt.Errorf("driver %s: %s", action, resp.Error)
	}
	return nil
}

// NopBridge discards every state. Used when no driver is configured.
type NopBridge struct{}

// Apply implements Bridge.
func (NopBridge) Apply(pointer.State) error { return nil }
