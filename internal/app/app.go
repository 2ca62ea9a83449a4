// Package app provides the main application logic for the Mudra pointer daemon.
package app

import (
	"sync"

	"github.com/arjunmn/mudra/internal/bridge"
	"github.com/arjunmn/mudra/internal/capture"
	"github.com/arjunmn/mudra/internal/config"
	"github.com/arjunmn/mudra/internal/detector"
	"github.com/arjunmn/mudra/internal/logsink"
	"github.com/arjunmn/mudra/internal/plugin"
	"github.com/arjunmn/mudra/internal/pointer"
	"github.com/arjunmn/mudra/internal/store"
)

// Pump timing constants.
const (
	// IdleFPS is the frame submission rate when no hand or motion is present.
	IdleFPS = 5
	// ActiveFPS is the frame submission rate during active tracking.
	ActiveFPS = 60
	// IdleTimeoutMs is the time in milliseconds without activity before
	// dropping back to the idle cadence.
	IdleTimeoutMs = 2000
)

// Config holds configuration options for the application.
type Config struct {
	Settings     *config.Config
	Store        *store.Store
	Sink         *logsink.Sink
	PluginDir    string
	MotionThresh float64
}

// App orchestrates the capture pump, hand detection, interaction
// interpretation, and event delivery to the output bridge.
type App struct {
	config     Config
	settings   *config.Config
	camera     capture.Camera
	motion     *capture.MotionDetector
	detector   detector.Detector
	interp     *pointer.Interpreter
	bridge     bridge.Bridge
	pluginMgr  *plugin.Manager
	pluginExec *plugin.Executor
	sink       *logsink.Sink

	enabled bool
	mu      sync.RWMutex
	stopCh  chan struct{}
	wg      sync.WaitGroup

	stateMu   sync.RWMutex
	latest    pointer.State
	listeners []func(pointer.State)
}

// New creates a new App instance with the given configuration.
func New(cfg Config) *App {
	motionThreshold := cfg.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}

	settings := cfg.Settings
	if settings == nil {
		settings = config.Load()
	}
	sink := cfg.Sink
	if sink == nil {
		sink = logsink.New()
	}

	a := &App{
		config:     cfg,
		settings:   settings,
		camera:     capture.NewCamera(settings.Snapshot().CameraID),
		motion:     capture.NewMotionDetector(motionThreshold),
		bridge:     bridge.NopBridge{},
		pluginMgr:  plugin.NewManager(cfg.PluginDir),
		pluginExec: plugin.NewExecutor(5000), // 5 second timeout for driver execution
		sink:       sink,
		enabled:    false,
		stopCh:     nil,
	}
	a.interp = pointer.New(settings)
	a.latest = a.interp.Reset()

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		sink.Infof("Using MediaPipe hand detection")
	} else {
		sink.Warnf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables hand tracking. Disabling parks the
// pump; the interpreter is reset and an idle state published on the
// next pump cycle.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether hand tracking is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// DiscoverPlugins scans the driver directory and loads available drivers.
func (a *App) DiscoverPlugins() error {
	return a.pluginMgr.Discover()
}

// UseDriver routes interaction events to the named driver plugin.
// Passing an empty name disconnects the output.
func (a *App) UseDriver(name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if name == "" {
		a.bridge = bridge.NopBridge{}
		return nil
	}

	drv, err := a.pluginMgr.Get(name)
	if err != nil {
		return err
	}
	a.bridge = bridge.NewDriverBridge(drv, a.pluginExec)
	a.sink.Infof("Using pointer driver %q", name)
	return nil
}

// SetBridge replaces the output bridge directly. Used by tests and by
// callers that want an in-process output instead of a driver plugin.
func (a *App) SetBridge(b bridge.Bridge) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.bridge = b
}

// SetCamera replaces the capture source. Only safe while the pump is
// stopped.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// Start begins the frame pump.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}
	a.camera.SetFPS(capture.DefaultFPS)

	a.stopCh = make(chan struct{})
	a.wg.Add(1)
	go a.runPump(a.stopCh)

	a.sink.Infof("Frame pump started")
	return nil
}

// Stop halts the frame pump and releases the camera. The detector
// stays open so tracking can be restarted; use Close for full shutdown.
func (a *App) Stop() {
	a.mu.Lock()
	if a.stopCh == nil {
		a.mu.Unlock()
		return
	}
	close(a.stopCh)
	a.stopCh = nil
	a.mu.Unlock()

	a.wg.Wait()

	if err := a.camera.Close(); err != nil {
		a.sink.Errorf("Error closing camera: %v", err)
	}
	a.motion.Reset()

	// Any latched drag is released and the cursor deactivated
	a.publish(a.interp.Reset())

	a.sink.Infof("Frame pump stopped")
}

// Close stops the pump and shuts down the detector.
func (a *App) Close() {
	a.Stop()

	a.motion.Close()

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			a.sink.Errorf("Error closing detector: %v", err)
		}
	}
}

// SetVideoSource switches to a different camera device. If the pump is
// running it is restarted on the new device.
func (a *App) SetVideoSource(deviceID int) error {
	a.mu.RLock()
	running := a.stopCh != nil
	a.mu.RUnlock()

	if running {
		a.Stop()
	}

	a.mu.Lock()
	a.camera = capture.NewCamera(deviceID)
	a.mu.Unlock()
	a.settings.SetCameraID(deviceID)

	if running {
		return a.Start()
	}
	return nil
}

// Subscribe registers a listener invoked with every published state.
// Listeners run on the pump goroutine and must not block.
func (a *App) Subscribe(fn func(pointer.State)) {
	a.stateMu.Lock()
	defer a.stateMu.Unlock()
	a.listeners = append(a.listeners, fn)
}

// LatestState returns the most recently published interaction state.
func (a *App) LatestState() pointer.State {
	a.stateMu.RLock()
	defer a.stateMu.RUnlock()
	return a.latest
}

// publish records the state, forwards it to the bridge, persists any
// discrete events, and notifies subscribers.
func (a *App) publish(state pointer.State) {
	a.stateMu.Lock()
	a.latest = state
	listeners := a.listeners
	a.stateMu.Unlock()

	a.mu.RLock()
	out := a.bridge
	a.mu.RUnlock()

	if err := out.Apply(state); err != nil {
		a.sink.Errorf("Driver error: %v", err)
	}

	a.recordEvents(state)

	for _, fn := range listeners {
		fn(state)
	}
}

// persistedEvents are the discrete events worth keeping in history.
// Continuous move events would flood the table.
var persistedEvents = []pointer.Event{
	pointer.EventClick,
	pointer.EventDoubleClick,
	pointer.EventDragStart,
	pointer.EventDragEnd,
	pointer.EventDragMiddleStart,
	pointer.EventDragMiddleEnd,
}

func (a *App) recordEvents(state pointer.State) {
	for _, ev := range persistedEvents {
		if !state.Has(ev) {
			continue
		}

		a.sink.Infof("%s at (%.0f, %.0f)", ev, state.Cursor.X, state.Cursor.Y)

		if a.config.Store == nil {
			continue
		}
		err := a.config.Store.Events().Insert(&store.InteractionEvent{
			Kind: string(ev),
			X:    state.Cursor.X,
			Y:    state.Cursor.Y,
		})
		if err != nil {
			a.sink.Errorf("Failed to record %s event: %v", ev, err)
		}
	}
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// PluginManager returns the driver plugin manager.
func (a *App) PluginManager() *plugin.Manager {
	return a.pluginMgr
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// Settings returns the live configuration.
func (a *App) Settings() *config.Config {
	return a.settings
}

// Sink returns the in-memory log sink.
func (a *App) Sink() *logsink.Sink {
	return a.sink
}
