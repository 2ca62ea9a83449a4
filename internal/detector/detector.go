package detector

import "gocv.io/x/gocv"

// Delegate selects the compute backend used by the inference service.
type Delegate string

const (
	DelegateCPU Delegate = "CPU"
	DelegateGPU Delegate = "GPU"
)

// Detector defines the interface for hand detection implementations.
//
// Detect is the only operation that crosses the inference boundary. Callers
// are expected to keep at most one Detect outstanding at a time; the frame
// pump enforces this with its busy flag.
type Detector interface {
	// Detect analyzes a video frame and returns the detection result.
	// A nil result with a nil error means the backend returned nothing
	// for this frame.
	Detect(frame *gocv.Mat) (*Result, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for hand detection.
type Config struct {
	// Delegate is the compute backend requested from the inference service.
	Delegate Delegate

	// ModelPath overrides the hand landmarker model file used by the
	// inference service. Empty means the service default.
	ModelPath string

	// MaxHands is the maximum number of hands to detect (default: 2).
	MaxHands int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Delegate:      DelegateCPU,
		MaxHands:      2,
		MinConfidence: 0.5,
	}
}
