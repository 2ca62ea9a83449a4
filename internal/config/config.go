// Package config holds the runtime-mutable tracker configuration.
//
// Settings are mutated by the settings surface (HTTP API, tray) while the
// interpreter reads them once per processing step. Snapshot returns a value
// copy under the lock so a step never observes a partially updated
// configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
)

// HandPreference selects which detected hand drives the pointer.
type HandPreference string

const (
	HandLeft  HandPreference = "Left"
	HandRight HandPreference = "Right"
	HandBoth  HandPreference = "Both"
)

// SmoothingProfile selects the length of the position smoothing buffer.
type SmoothingProfile string

const (
	SmoothingFast     SmoothingProfile = "Fast"
	SmoothingBalanced SmoothingProfile = "Balanced"
	SmoothingSmooth   SmoothingProfile = "Smooth"
)

// Window returns the smoothing buffer length for the profile.
func (p SmoothingProfile) Window() int {
	switch p {
	case SmoothingFast:
		return 2
	case SmoothingSmooth:
		return 10
	default:
		return 5
	}
}

// Default values.
const (
	DefaultBaseROI   = 0.8
	DefaultViewportW = 1920
	DefaultViewportH = 1080
)

// Settings is a value snapshot of the configuration.
type Settings struct {
	Hand      HandPreference   `json:"hand"`
	Smoothing SmoothingProfile `json:"smoothing"`
	BaseROI   float64          `json:"base_roi"`
	CameraID  int              `json:"camera_id"`
	ViewportW int              `json:"viewport_w"`
	ViewportH int              `json:"viewport_h"`
	Driver    string           `json:"driver"`
}

// Config guards a Settings value for concurrent readers and one writer.
type Config struct {
	mu sync.RWMutex
	s  Settings
}

// Load builds a Config from environment variables, falling back to defaults.
// Invalid values are replaced with their defaults field by field, so one bad
// variable cannot leave the tracker with a never-matching hand filter or a
// zero ROI.
func Load() *Config {
	return &Config{
		s: sanitize(Settings{
			Hand:      HandPreference(getEnv("MUDRA_HAND", string(HandBoth))),
			Smoothing: SmoothingProfile(getEnv("MUDRA_SMOOTHING", string(SmoothingBalanced))),
			BaseROI:   getEnvFloat("MUDRA_BASE_ROI", DefaultBaseROI),
			CameraID:  getEnvInt("MUDRA_CAMERA_ID", 0),
			ViewportW: getEnvInt("MUDRA_VIEWPORT_W", DefaultViewportW),
			ViewportH: getEnvInt("MUDRA_VIEWPORT_H", DefaultViewportH),
			Driver:    getEnv("MUDRA_DRIVER", "pointer"),
		}),
	}
}

// sanitize resets any field that would fail Validate to its default.
func sanitize(s Settings) Settings {
	switch s.Hand {
	case HandLeft, HandRight, HandBoth:
	default:
		s.Hand = HandBoth
	}
	switch s.Smoothing {
	case SmoothingFast, SmoothingBalanced, SmoothingSmooth:
	default:
		s.Smoothing = SmoothingBalanced
	}
	if s.BaseROI <= 0 || s.BaseROI > 1 {
		s.BaseROI = DefaultBaseROI
	}
	if s.CameraID < 0 {
		s.CameraID = 0
	}
	if s.ViewportW <= 0 {
		s.ViewportW = DefaultViewportW
	}
	if s.ViewportH <= 0 {
		s.ViewportH = DefaultViewportH
	}
	return s
}

// Snapshot returns a consistent copy of the current settings.
func (c *Config) Snapshot() Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.s
}

// Apply validates and replaces the current settings.
func (c *Config) Apply(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s = s
	return nil
}

// SetHand updates the hand preference.
func (c *Config) SetHand(h HandPreference) error {
	switch h {
	case HandLeft, HandRight, HandBoth:
	default:
		return fmt.Errorf("invalid hand preference %q", h)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.Hand = h
	return nil
}

// SetSmoothing updates the smoothing profile.
func (c *Config) SetSmoothing(p SmoothingProfile) error {
	switch p {
	case SmoothingFast, SmoothingBalanced, SmoothingSmooth:
	default:
		return fmt.Errorf("invalid smoothing profile %q", p)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.Smoothing = p
	return nil
}

// SetBaseROI updates the base region-of-interest fraction.
func (c *Config) SetBaseROI(v float64) error {
	if v <= 0 || v > 1 {
		return fmt.Errorf("base ROI %f outside (0,1]", v)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.BaseROI = v
	return nil
}

// SetCameraID updates the video source identifier. The caller is
// responsible for restarting capture when it changes.
func (c *Config) SetCameraID(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.CameraID = id
}

// SetViewport updates the output viewport dimensions in pixels.
func (c *Config) SetViewport(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("invalid viewport %dx%d", w, h)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.ViewportW = w
	c.s.ViewportH = h
	return nil
}

// Validate checks a settings value for internal consistency.
func (s Settings) Validate() error {
	switch s.Hand {
	case HandLeft, HandRight, HandBoth:
	default:
		return fmt.Errorf("invalid hand preference %q", s.Hand)
	}
	switch s.Smoothing {
	case SmoothingFast, SmoothingBalanced, SmoothingSmooth:
	default:
		return fmt.Errorf("invalid smoothing profile %q", s.Smoothing)
	}
	if s.BaseROI <= 0 || s.BaseROI > 1 {
		return fmt.Errorf("base ROI %f outside (0,1]", s.BaseROI)
	}
	if s.ViewportW <= 0 || s.ViewportH <= 0 {
		return fmt.Errorf("invalid viewport %dx%d", s.ViewportW, s.ViewportH)
	}
	if s.CameraID < 0 {
		return fmt.Errorf("invalid camera id %d", s.CameraID)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
