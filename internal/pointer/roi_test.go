package pointer

import (
	"math"
	"testing"

	"github.com/arjunmn/mudra/internal/detector"
)

func TestHandScale(t *testing.T) {
	hand := detector.NeutralHandLandmarks(detector.HandednessRight, 0.5, 0.5)
	if got := HandScale(&hand); math.Abs(got-0.10) > 1e-9 {
		t.Errorf("HandScale() = %f, want 0.10", got)
	}
}

func TestEffectiveROI(t *testing.T) {
	tests := []struct {
		name  string
		base  float64
		scale float64
		want  float64
	}{
		{"reference scale keeps base", 0.8, 0.10, 0.8},
		{"closer hand grows region", 0.8, 0.11, 0.88},
		{"farther hand shrinks region", 0.8, 0.08, 0.64},
		{"factor clamps low at 0.5", 0.8, 0.02, 0.4},
		{"factor clamps high at 1.2", 0.8, 0.5, 0.96},
		{"result clamps at 1.0", 0.9, 0.12, 1.0},
		{"full base at reference", 1.0, 0.10, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectiveROI(tt.base, tt.scale)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("EffectiveROI(%f, %f) = %f, want %f", tt.base, tt.scale, got, tt.want)
			}
		})
	}
}

func TestEffectiveROI_Monotonic(t *testing.T) {
	// Within the clamp range the effective ROI must be non-decreasing in
	// the scale proxy, saturating outside it.
	const base = 0.8
	prev := 0.0
	for scale := 0.01; scale <= 0.30; scale += 0.005 {
		roi := EffectiveROI(base, scale)
		if roi < prev {
			t.Fatalf("EffectiveROI decreased at scale %f: %f < %f", scale, roi, prev)
		}
		prev = roi
	}

	if got := EffectiveROI(base, 0.001); got != EffectiveROI(base, 0.05) {
		t.Errorf("low saturation broken: %f", got)
	}
	if got := EffectiveROI(base, 10); got != EffectiveROI(base, 0.12) {
		t.Errorf("high saturation broken: %f", got)
	}
}

func TestMapToROI_CenterFixedPoint(t *testing.T) {
	center := detector.Point3D{X: 0.5, Y: 0.5}
	for _, roi := range []float64{0.1, 0.4, 0.8, 1.0} {
		got := MapToROI(center, roi)
		if math.Abs(got.X-0.5) > 1e-9 || math.Abs(got.Y-0.5) > 1e-9 {
			t.Errorf("MapToROI(center, %f) = %+v, want (0.5, 0.5)", roi, got)
		}
	}
}

func TestMapToROI(t *testing.T) {
	tests := []struct {
		name  string
		p     detector.Point3D
		roi   float64
		wantX float64
		wantY float64
	}{
		{
			name:  "identity region still mirrors X",
			p:     detector.Point3D{X: 0.3, Y: 0.4},
			roi:   1.0,
			wantX: 0.7,
			wantY: 0.4,
		},
		{
			name:  "half region doubles offsets from center",
			p:     detector.Point3D{X: 0.4, Y: 0.6},
			roi:   0.5,
			wantX: 0.7, // mirrored to 0.6, then (0.6-0.25)/0.5
			wantY: 0.7,
		},
		{
			name:  "outside region saturates low",
			p:     detector.Point3D{X: 0.95, Y: 0.5},
			roi:   0.5,
			wantX: 0,
			wantY: 0.5,
		},
		{
			name:  "outside region saturates high",
			p:     detector.Point3D{X: 0.02, Y: 0.98},
			roi:   0.5,
			wantX: 1,
			wantY: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapToROI(tt.p, tt.roi)
			if math.Abs(got.X-tt.wantX) > 1e-9 || math.Abs(got.Y-tt.wantY) > 1e-9 {
				t.Errorf("MapToROI(%+v, %f) = %+v, want (%f, %f)",
					tt.p, tt.roi, got, tt.wantX, tt.wantY)
			}
		})
	}
}
