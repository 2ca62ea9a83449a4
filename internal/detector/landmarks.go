// Package detector provides hand landmark types and detection backends.
package detector

import "math"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Handedness labels assigned by the inference backend.
const (
	HandednessLeft    = "Left"
	HandednessRight   = "Right"
	HandednessUnknown = "Unknown"
)

// Point3D represents a landmark in normalized image space.
// X and Y are in [0,1]; Z is a relative depth proxy, not a metric distance.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Category is one gesture classification assigned to a hand, ranked by score.
type Category struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// HandLandmarks represents the 21 hand landmarks detected for a single hand.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left", "Right" or "Unknown"
	Score      float64               `json:"score"`
	Categories []Category            `json:"categories,omitempty"`
}

// Result is one detection produced for one frame. A nil *Result is a null
// detection (nothing returned by the backend for that frame).
type Result struct {
	Hands     []HandLandmarks `json:"hands"`
	Timestamp int64           `json:"timestamp"` // milliseconds
}

// TopCategory returns the name of the highest-ranked gesture classification
// for this hand, or "None" when the backend produced no classification.
func (h *HandLandmarks) TopCategory() string {
	if h == nil || len(h.Categories) == 0 {
		return "None"
	}
	best := h.Categories[0]
	for _, c := range h.Categories[1:] {
		if c.Score > best.Score {
			best = c
		}
	}
	return best.Name
}

// ImageDistance returns the Euclidean distance between two landmarks in the
// image plane. Z is ignored: it is only a depth proxy and its scale is not
// comparable to the normalized X/Y axes.
func ImageDistance(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}
