package detector

import (
	"errors"
	"math"
	"testing"
)

func TestImageDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Point3D
		want float64
	}{
		{
			name: "same point",
			a:    Point3D{X: 0.5, Y: 0.5},
			b:    Point3D{X: 0.5, Y: 0.5},
			want: 0,
		},
		{
			name: "axis aligned",
			a:    Point3D{X: 0.2, Y: 0.5},
			b:    Point3D{X: 0.5, Y: 0.5},
			want: 0.3,
		},
		{
			name: "diagonal",
			a:    Point3D{X: 0, Y: 0},
			b:    Point3D{X: 0.3, Y: 0.4},
			want: 0.5,
		},
		{
			name: "z is ignored",
			a:    Point3D{X: 0.1, Y: 0.1, Z: -0.5},
			b:    Point3D{X: 0.1, Y: 0.1, Z: 0.5},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ImageDistance(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ImageDistance() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestTopCategory(t *testing.T) {
	tests := []struct {
		name       string
		categories []Category
		want       string
	}{
		{
			name:       "no categories defaults to None",
			categories: nil,
			want:       "None",
		},
		{
			name:       "single category",
			categories: []Category{{Name: "Open_Palm", Score: 0.9}},
			want:       "Open_Palm",
		},
		{
			name: "highest score wins regardless of order",
			categories: []Category{
				{Name: "Closed_Fist", Score: 0.3},
				{Name: "Pinch", Score: 0.8},
				{Name: "Open_Palm", Score: 0.5},
			},
			want: "Pinch",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &HandLandmarks{Categories: tt.categories}
			if got := h.TopCategory(); got != tt.want {
				t.Errorf("TopCategory() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTopCategory_NilHand(t *testing.T) {
	var h *HandLandmarks
	if got := h.TopCategory(); got != "None" {
		t.Errorf("TopCategory() on nil hand = %q, want \"None\"", got)
	}
}

func TestFixtures_ScaleProxy(t *testing.T) {
	// Every preset keeps the wrist to middle-MCP distance at the 0.10
	// reference scale so ROI math is predictable in interpreter tests.
	fixtures := map[string]HandLandmarks{
		"neutral":      NeutralHandLandmarks(HandednessRight, 0.5, 0.5),
		"index pinch":  IndexPinchLandmarks(HandednessRight, 0.5, 0.5),
		"middle pinch": MiddlePinchLandmarks(HandednessRight, 0.5, 0.5),
		"both pinch":   BothPinchLandmarks(HandednessRight, 0.5, 0.5),
	}

	for name, lm := range fixtures {
		scale := ImageDistance(lm.Points[Wrist], lm.Points[MiddleMCP])
		if math.Abs(scale-0.10) > 1e-9 {
			t.Errorf("%s: scale proxy = %f, want 0.10", name, scale)
		}
	}
}

func TestFixtures_PinchDistances(t *testing.T) {
	const threshold = 0.05

	tests := []struct {
		name       string
		hand       HandLandmarks
		wantIndex  bool
		wantMiddle bool
	}{
		{
			name:       "neutral has no pinch",
			hand:       NeutralHandLandmarks(HandednessRight, 0.5, 0.5),
			wantIndex:  false,
			wantMiddle: false,
		},
		{
			name:       "index pinch only",
			hand:       IndexPinchLandmarks(HandednessRight, 0.5, 0.5),
			wantIndex:  true,
			wantMiddle: false,
		},
		{
			name:       "middle pinch only",
			hand:       MiddlePinchLandmarks(HandednessRight, 0.5, 0.5),
			wantIndex:  false,
			wantMiddle: true,
		},
		{
			name:       "both pinches",
			hand:       BothPinchLandmarks(HandednessRight, 0.5, 0.5),
			wantIndex:  true,
			wantMiddle: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			indexDist := ImageDistance(tt.hand.Points[IndexTip], tt.hand.Points[ThumbTip])
			middleDist := ImageDistance(tt.hand.Points[MiddleTip], tt.hand.Points[ThumbTip])

			if got := indexDist < threshold; got != tt.wantIndex {
				t.Errorf("index pinch = %v (dist %f), want %v", got, indexDist, tt.wantIndex)
			}
			if got := middleDist < threshold; got != tt.wantMiddle {
				t.Errorf("middle pinch = %v (dist %f), want %v", got, middleDist, tt.wantMiddle)
			}
		})
	}
}

func TestMockDetector(t *testing.T) {
	m := NewMockDetector()

	// Default: null result
	res, err := m.Detect(nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if res != nil {
		t.Errorf("Detect() = %v, want nil result", res)
	}

	// Fixed hands
	m.SetHands([]HandLandmarks{NeutralHandLandmarks(HandednessRight, 0.5, 0.5)})
	res, err = m.Detect(nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if res == nil || len(res.Hands) != 1 {
		t.Fatalf("Detect() = %v, want 1 hand", res)
	}

	// Script takes precedence over the fixed result
	m.Enqueue(nil)
	m.Enqueue(&Result{Hands: []HandLandmarks{IndexPinchLandmarks(HandednessLeft, 0.4, 0.4)}})

	res, _ = m.Detect(nil)
	if res != nil {
		t.Errorf("first scripted Detect() = %v, want nil", res)
	}
	res, _ = m.Detect(nil)
	if res == nil || res.Hands[0].Handedness != HandednessLeft {
		t.Errorf("second scripted Detect() = %v, want Left hand", res)
	}

	// Script drained: back to the fixed result
	res, _ = m.Detect(nil)
	if res == nil || len(res.Hands) != 1 {
		t.Errorf("post-script Detect() = %v, want fixed result", res)
	}

	// Error path
	m.SetError(errors.New("backend down"))
	if _, err := m.Detect(nil); err == nil {
		t.Error("Detect() error = nil, want error")
	}
}

func TestJSONHandConversion_Defensive(t *testing.T) {
	// A hand with too few points must be droppable without panic.
	h := jsonHand{
		Points:     []jsonPoint{{X: 0.1, Y: 0.2}},
		Handedness: "",
		Score:      0.5,
	}

	lm := h.toHandLandmarks()
	if lm.Handedness != HandednessUnknown {
		t.Errorf("empty handedness converted to %q, want %q", lm.Handedness, HandednessUnknown)
	}
	if lm.Points[0].X != 0.1 {
		t.Errorf("point 0 not copied: %v", lm.Points[0])
	}
	// Remaining landmark slots stay zero-valued.
	if lm.Points[IndexTip] != (Point3D{}) {
		t.Errorf("unfilled landmark = %v, want zero", lm.Points[IndexTip])
	}
}
