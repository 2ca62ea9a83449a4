// Package testdata provides synthetic camera frames for tests that
// exercise the capture path without recorded footage.
package testdata

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// SolidFrame returns a uniformly colored camera-sized frame.
// The caller owns the returned Mat and must close it.
func SolidFrame(w, h int, c color.RGBA) *gocv.Mat {
	mat := gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(float64(c.B), float64(c.G), float64(c.R), 0),
		h, w, gocv.MatTypeCV8UC3,
	)
	return &mat
}

// DotFrame returns a dark frame with a bright square at (x, y), useful
// for driving the motion detector deterministically.
func DotFrame(w, h, x, y, size int) *gocv.Mat {
	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC3)
	rect := image.Rect(x, y, x+size, y+size)
	region := mat.Region(rect)
	region.SetTo(gocv.NewScalar(255, 255, 255, 0))
	region.Close()
	return &mat
}

// MovingDotSequence returns frames with a square sliding across the
// image, so consecutive frames differ enough to register as motion.
// The caller owns the frames and must close each one.
func MovingDotSequence(w, h, steps int) []*gocv.Mat {
	frames := make([]*gocv.Mat, 0, steps)
	size := 40
	for i := 0; i < steps; i++ {
		x := (w - size) * i / maxInt(steps-1, 1)
		frames = append(frames, DotFrame(w, h, x, h/2, size))
	}
	return frames
}

// CloseFrames closes every frame in the slice.
func CloseFrames(frames []*gocv.Mat) {
	for _, f := range frames {
		f.Close()
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
