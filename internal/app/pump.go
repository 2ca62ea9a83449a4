package app

import (
	"time"

	"gocv.io/x/gocv"

	"github.com/arjunmn/mudra/internal/detector"
	"github.com/arjunmn/mudra/internal/pointer"
)

// detectOutcome carries one detection result back to the pump loop.
type detectOutcome struct {
	res *detector.Result
	err error
}

// runPump is the main capture loop. It submits frames to the detector
// with at most one detection in flight; ticks that land while a
// detection is pending drop their frame. Cadence moves between
// ActiveFPS and IdleFPS based on recent motion and hand visibility.
func (a *App) runPump(stopCh chan struct{}) {
	defer a.wg.Done()

	activeInterval := time.Second / time.Duration(ActiveFPS)
	idleInterval := time.Second / time.Duration(IdleFPS)
	idleTimeout := time.Duration(IdleTimeoutMs) * time.Millisecond

	ticker := time.NewTicker(activeInterval)
	defer ticker.Stop()

	results := make(chan detectOutcome, 1)
	busy := false
	activeMode := true
	parked := false
	lastActivity := time.Now()

	for {
		select {
		case <-stopCh:
			return

		case out := <-results:
			busy = false

			if !a.IsEnabled() {
				continue
			}

			var state pointer.State
			if out.err != nil {
				a.sink.Errorf("Error detecting hands: %v", out.err)
				state = a.interp.Step(nil)
			} else {
				state = a.interp.Step(out.res)
			}

			if out.err == nil && out.res != nil && len(out.res.Hands) > 0 {
				lastActivity = time.Now()
			}

			a.publish(state)

		case <-ticker.C:
			if !a.IsEnabled() {
				// Park once the in-flight detection has drained
				if !parked && !busy {
					parked = true
					a.publish(a.interp.Reset())
				}
				continue
			}
			parked = false

			if busy {
				continue // Detection still in flight, drop this frame
			}

			frame, err := a.Camera().ReadFrame()
			if err != nil {
				a.sink.Errorf("Error reading frame: %v", err)
				continue
			}

			if motion, _ := a.motion.Detect(frame); motion {
				lastActivity = time.Now()
			}

			// Cadence transitions
			if activeMode && time.Since(lastActivity) > idleTimeout {
				activeMode = false
				ticker.Reset(idleInterval)
				a.sink.Debugf("Pump switched to idle cadence")
			} else if !activeMode && time.Since(lastActivity) <= idleTimeout {
				activeMode = true
				ticker.Reset(activeInterval)
				a.sink.Debugf("Pump switched to active cadence")
			}

			busy = true
			go a.detect(frame, results)
		}
	}
}

// detect runs one detection off the pump goroutine and posts the outcome.
func (a *App) detect(frame *gocv.Mat, results chan<- detectOutcome) {
	d := a.Detector()
	if d == nil {
		frame.Close()
		results <- detectOutcome{}
		return
	}

	res, err := d.Detect(frame)
	frame.Close()
	results <- detectOutcome{res: res, err: err}
}
