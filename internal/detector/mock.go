package detector

import (
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results, either as a fixed
// result or as a scripted FIFO of per-frame results.
type MockDetector struct {
	mu     sync.Mutex
	result *Result
	script []*Result
	err    error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetResult sets the result that will be returned by Detect.
func (m *MockDetector) SetResult(r *Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.result = r
}

// SetHands is a convenience wrapper that sets a result containing the
// given hands with a current timestamp. An empty slice sets a null result.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	if len(hands) == 0 {
		m.SetResult(nil)
		return
	}
	m.SetResult(&Result{Hands: hands, Timestamp: time.Now().UnixMilli()})
}

// Enqueue appends a result to the scripted sequence. While the script is
// non-empty, Detect pops from it in order before falling back to the fixed
// result.
func (m *MockDetector) Enqueue(r *Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, r)
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Detect returns the next scripted result, the fixed result, or the error.
func (m *MockDetector) Detect(frame *gocv.Mat) (*Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	if len(m.script) > 0 {
		r := m.script[0]
		m.script = m.script[1:]
		return r, nil
	}
	return m.result, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Fixture hands for tests. All presets share the same neutral layout,
// centered at (cx, cy) in normalized image space, with the wrist to
// middle-MCP distance at exactly 0.10 so the hand-scale proxy evaluates
// to the reference scale.

// NeutralHandLandmarks returns a relaxed open hand with no fingertips
// pinched. Index tip sits at (cx+0.05, cy-0.14).
func NeutralHandLandmarks(handedness string, cx, cy float64) HandLandmarks {
	lm := HandLandmarks{
		Handedness: handedness,
		Score:      0.95,
		Categories: []Category{{Name: "Open_Palm", Score: 0.9}},
	}

	set := func(i int, dx, dy, z float64) {
		lm.Points[i] = Point3D{X: cx + dx, Y: cy + dy, Z: z}
	}

	set(Wrist, 0, 0.05, 0)

	set(ThumbCMC, 0.03, 0.03, -0.01)
	set(ThumbMCP, 0.05, 0.01, -0.01)
	set(ThumbIP, 0.07, 0.00, -0.01)
	set(ThumbTip, 0.08, -0.02, -0.01)

	set(IndexMCP, 0.03, -0.05, 0)
	set(IndexPIP, 0.04, -0.09, 0)
	set(IndexDIP, 0.05, -0.12, 0)
	set(IndexTip, 0.05, -0.14, 0)

	set(MiddleMCP, 0, -0.05, 0)
	set(MiddlePIP, -0.01, -0.10, 0)
	set(MiddleDIP, -0.015, -0.14, 0)
	set(MiddleTip, -0.02, -0.18, 0)

	set(RingMCP, -0.03, -0.045, 0)
	set(RingPIP, -0.04, -0.09, 0)
	set(RingDIP, -0.05, -0.12, 0)
	set(RingTip, -0.055, -0.14, 0)

	set(PinkyMCP, -0.055, -0.04, 0)
	set(PinkyPIP, -0.065, -0.07, 0)
	set(PinkyDIP, -0.075, -0.09, 0)
	set(PinkyTip, -0.08, -0.11, 0)

	return lm
}

// IndexPinchLandmarks returns a hand with the thumb tip touching the index
// tip (distance ~0.014) while staying clear of the middle tip.
func IndexPinchLandmarks(handedness string, cx, cy float64) HandLandmarks {
	lm := NeutralHandLandmarks(handedness, cx, cy)
	idx := lm.Points[IndexTip]
	lm.Points[ThumbTip] = Point3D{X: idx.X + 0.01, Y: idx.Y + 0.01, Z: idx.Z}
	lm.Categories = []Category{{Name: "Pinch", Score: 0.85}}
	return lm
}

// MiddlePinchLandmarks returns a hand with the thumb tip touching the middle
// tip while staying clear of the index tip.
func MiddlePinchLandmarks(handedness string, cx, cy float64) HandLandmarks {
	lm := NeutralHandLandmarks(handedness, cx, cy)
	mid := lm.Points[MiddleTip]
	lm.Points[ThumbTip] = Point3D{X: mid.X + 0.01, Y: mid.Y + 0.01, Z: mid.Z}
	lm.Categories = []Category{{Name: "Pinch", Score: 0.8}}
	return lm
}

// BothPinchLandmarks returns a hand with the thumb tip within the pinch
// threshold of both the index and the middle tips, used to exercise the
// middle-over-index precedence rule.
func BothPinchLandmarks(handedness string, cx, cy float64) HandLandmarks {
	lm := NeutralHandLandmarks(handedness, cx, cy)
	idx := lm.Points[IndexTip]
	mid := lm.Points[MiddleTip]
	lm.Points[ThumbTip] = Point3D{
		X: (idx.X + mid.X) / 2,
		Y: (idx.Y + mid.Y) / 2,
		Z: idx.Z,
	}
	return lm
}
