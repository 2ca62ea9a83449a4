package pointer

import "github.com/arjunmn/mudra/internal/detector"

// ROI heuristic constants. The scale proxy is a usability heuristic, not a
// depth measurement: a hand that looks smaller (farther away) shrinks the
// active region so small physical motions still cover the full output range.
const (
	// ReferenceScale is the wrist to middle-MCP distance of a hand at
	// "normal" distance from the camera.
	ReferenceScale = 0.10

	// Clamp range for the distance factor applied to the base ROI.
	minROIFactor = 0.5
	maxROIFactor = 1.2
)

// HandScale returns the hand-scale proxy: the image-plane distance between
// the wrist and the middle-finger MCP joint.
func HandScale(h *detector.HandLandmarks) float64 {
	return detector.ImageDistance(h.Points[detector.Wrist], h.Points[detector.MiddleMCP])
}

// EffectiveROI derives the side length of the active region from the base
// ROI fraction and the hand-scale proxy. The result never exceeds 1.0.
func EffectiveROI(base, scale float64) float64 {
	factor := scale / ReferenceScale
	if factor < minROIFactor {
		factor = minROIFactor
	} else if factor > maxROIFactor {
		factor = maxROIFactor
	}

	roi := base * factor
	if roi > 1 {
		roi = 1
	}
	return roi
}

// MapToROI mirrors the X axis and maps the point from the square region of
// side length roi centered on (0.5, 0.5) onto the full [0,1]x[0,1] output
// range. Points outside the region saturate at the nearest edge.
func MapToROI(p detector.Point3D, roi float64) Point {
	// Mirror X to match the front-facing camera's left/right expectation.
	x := 1 - p.X
	y := p.Y

	half := roi / 2
	out := Point{
		X: clamp01((x - (0.5 - half)) / roi),
		Y: clamp01((y - (0.5 - half)) / roi),
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
