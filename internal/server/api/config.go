// Package api provides HTTP API handlers for the Mudra pointer daemon.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/arjunmn/mudra/internal/config"
	"github.com/arjunmn/mudra/internal/logsink"
	"github.com/arjunmn/mudra/internal/store"
)

// ConfigHandler handles HTTP requests for the tracker configuration.
type ConfigHandler struct {
	cfg *config.Config
	// store is optional; applied settings are persisted when present
	store *store.Store
	// sink is optional; persistence failures are reported there
	sink *logsink.Sink

	// OnCameraChange is invoked after a successful camera ID change so
	// the capture pipeline can be restarted on the new device.
	OnCameraChange func(int) error
	// OnDriverChange is invoked after a successful driver change so the
	// running bridge is rewired to the new driver plugin.
	OnDriverChange func(string) error
}

// NewConfigHandler creates a new ConfigHandler.
func NewConfigHandler(cfg *config.Config, s *store.Store, sink *logsink.Sink) *ConfigHandler {
	return &ConfigHandler{cfg: cfg, store: s, sink: sink}
}

// ServeHTTP implements the http.Handler interface.
func (h *ConfigHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// updateConfigRequest carries a partial settings update. Pointer fields
// distinguish "absent" from zero values.
type updateConfigRequest struct {
	Hand      *string  `json:"hand"`
	Smoothing *string  `json:"smoothing"`
	BaseROI   *float64 `json:"base_roi"`
	CameraID  *int     `json:"camera_id"`
	ViewportW *int     `json:"viewport_w"`
	ViewportH *int     `json:"viewport_h"`
	Driver    *string  `json:"driver"`
}

// get handles GET /api/config and returns the current settings.
func (h *ConfigHandler) get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cfg.Snapshot())
}

// update handles PUT /api/config. The request may carry any subset of
// settings; the merged result is validated before anything is applied.
func (h *ConfigHandler) update(w http.ResponseWriter, r *http.Request) {
	var req updateConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	current := h.cfg.Snapshot()
	next := current

	if req.Hand != nil {
		next.Hand = config.HandPreference(*req.Hand)
	}
	if req.Smoothing != nil {
		next.Smoothing = config.SmoothingProfile(*req.Smoothing)
	}
	if req.BaseROI != nil {
		next.BaseROI = *req.BaseROI
	}
	if req.CameraID != nil {
		next.CameraID = *req.CameraID
	}
	if req.ViewportW != nil {
		next.ViewportW = *req.ViewportW
	}
	if req.ViewportH != nil {
		next.ViewportH = *req.ViewportH
	}
	if req.Driver != nil {
		next.Driver = *req.Driver
	}

	if err := h.cfg.Apply(next); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.persist(next)

	if req.CameraID != nil && *req.CameraID != current.CameraID && h.OnCameraChange != nil {
		if err := h.OnCameraChange(*req.CameraID); err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to switch camera: %v", err))
			return
		}
	}

	if req.Driver != nil && *req.Driver != current.Driver && h.OnDriverChange != nil {
		if err := h.OnDriverChange(*req.Driver); err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to switch driver: %v", err))
			return
		}
	}

	writeJSON(w, http.StatusOK, h.cfg.Snapshot())
}

// persist writes the applied settings to the store. Persistence
// failures are not surfaced to the client; the live config already
// carries the new values. They are logged so a read-only database
// shows up in the log surface.
func (h *ConfigHandler) persist(s config.Settings) {
	if h.store == nil {
		return
	}

	pairs := []struct {
		key, value string
	}{
		{"hand", string(s.Hand)},
		{"smoothing", string(s.Smoothing)},
		{"base_roi", strconv.FormatFloat(s.BaseROI, 'f', -1, 64)},
		{"camera_id", strconv.Itoa(s.CameraID)},
		{"viewport_w", strconv.Itoa(s.ViewportW)},
		{"viewport_h", strconv.Itoa(s.ViewportH)},
		{"driver", s.Driver},
	}

	repo := h.store.Settings()
	for _, p := range pairs {
		if err := repo.Set(p.key, p.value); err != nil && h.sink != nil {
			h.sink.Errorf("Failed to persist setting %s: %v", p.key, err)
		}
	}
}
