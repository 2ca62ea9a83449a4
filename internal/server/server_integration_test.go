package server

import (
	"bytes"
	"encoding/json"
	"image/color"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"gocv.io/x/gocv"

	"github.com/arjunmn/mudra/internal/app"
	"github.com/arjunmn/mudra/internal/capture"
	"github.com/arjunmn/mudra/internal/config"
	"github.com/arjunmn/mudra/internal/detector"
	"github.com/arjunmn/mudra/internal/logsink"
	"github.com/arjunmn/mudra/internal/store"
	"github.com/arjunmn/mudra/testdata"
)

// TestAPI_TrackingWorkflow drives the whole daemon through the HTTP
// surface: configure, enable tracking, watch the pump publish pinch
// events, and read them back from the history endpoint.
func TestAPI_TrackingWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	tmpDir := t.TempDir()
	s, err := store.New(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	a := app.New(app.Config{
		Settings:     config.Load(),
		Store:        s,
		Sink:         logsink.NewSilent(),
		PluginDir:    tmpDir,
		MotionThresh: 0.05,
	})

	frame := testdata.SolidFrame(capture.DefaultWidth, capture.DefaultHeight, color.RGBA{})
	defer frame.Close()
	a.SetCamera(capture.NewMockCamera([]*gocv.Mat{frame}, true))

	// Script a short index pinch: neutral frames first, two pinched
	// frames (well under the hold-to-drag threshold at the pump
	// cadence), then neutral for the rest of the run. The release
	// produces a click.
	neutral := detector.NeutralHandLandmarks(detector.HandednessRight, 0.5, 0.5)
	pinch := detector.IndexPinchLandmarks(detector.HandednessRight, 0.5, 0.5)
	mock := detector.NewMockDetector()
	for i := 0; i < 3; i++ {
		mock.Enqueue(&detector.Result{Hands: []detector.HandLandmarks{neutral}, Timestamp: time.Now().UnixMilli()})
	}
	for i := 0; i < 2; i++ {
		mock.Enqueue(&detector.Result{Hands: []detector.HandLandmarks{pinch}, Timestamp: time.Now().UnixMilli()})
	}
	mock.SetHands([]detector.HandLandmarks{neutral})
	a.SetDetector(mock)

	if err := a.Start(); err != nil {
		t.Fatalf("app.Start() error = %v", err)
	}
	defer a.Close()

	srv := New(Config{Store: s, App: a})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	// 1. Read the current configuration
	resp, err := client.Get(ts.URL + "/api/config")
	if err != nil {
		t.Fatalf("GET /api/config error = %v", err)
	}
	var settings config.Settings
	json.NewDecoder(resp.Body).Decode(&settings)
	resp.Body.Close()
	if settings.Hand != config.HandBoth {
		t.Errorf("expected default hand Both, got %q", settings.Hand)
	}

	// 2. Switch the smoothing profile
	body := bytes.NewBufferString(`{"smoothing": "Fast"}`)
	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/config", body)
	resp, err = client.Do(req)
	if err != nil {
		t.Fatalf("PUT /api/config error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT /api/config status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	// 3. Enable tracking
	req, _ = http.NewRequest(http.MethodPut, ts.URL+"/api/state", bytes.NewBufferString(`{"enabled": true}`))
	resp, err = client.Do(req)
	if err != nil {
		t.Fatalf("PUT /api/state error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT /api/state status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	// 4. Wait for the scripted pinch to surface as a CLICK in history
	deadline := time.Now().Add(3 * time.Second)
	var clickSeen bool
	for time.Now().Before(deadline) && !clickSeen {
		resp, err := client.Get(ts.URL + "/api/events")
		if err != nil {
			t.Fatalf("GET /api/events error = %v", err)
		}
		var events struct {
			Events []struct {
				Kind string `json:"kind"`
			} `json:"events"`
		}
		json.NewDecoder(resp.Body).Decode(&events)
		resp.Body.Close()

		for _, e := range events.Events {
			if e.Kind == "CLICK" {
				clickSeen = true
				break
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	if !clickSeen {
		t.Fatal("expected a CLICK event in history")
	}

	// 5. The latest snapshot reflects an active cursor on the neutral hand
	resp, err = client.Get(ts.URL + "/api/state")
	if err != nil {
		t.Fatalf("GET /api/state error = %v", err)
	}
	var state struct {
		Enabled bool `json:"enabled"`
		State   struct {
			Cursor struct {
				Active bool `json:"active"`
			} `json:"cursor"`
		} `json:"state"`
	}
	json.NewDecoder(resp.Body).Decode(&state)
	resp.Body.Close()
	if !state.Enabled {
		t.Error("expected tracking enabled")
	}
	if !state.State.Cursor.Active {
		t.Error("expected an active cursor while the hand is visible")
	}

	// 6. Log endpoint carries the recorded click
	resp, err = client.Get(ts.URL + "/api/log")
	if err != nil {
		t.Fatalf("GET /api/log error = %v", err)
	}
	var logBody struct {
		Entries []struct {
			Message string `json:"message"`
		} `json:"entries"`
	}
	json.NewDecoder(resp.Body).Decode(&logBody)
	resp.Body.Close()
	if len(logBody.Entries) == 0 {
		t.Error("expected log entries after tracking activity")
	}
}
