package api

import (
	"encoding/json"
	"net/http"

	"github.com/arjunmn/mudra/internal/pointer"
)

// Tracker is the slice of the application the state handler needs.
type Tracker interface {
	LatestState() pointer.State
	IsEnabled() bool
	SetEnabled(bool)
}

// StateHandler exposes the latest interaction state and the tracking toggle.
type StateHandler struct {
	tracker Tracker
}

// NewStateHandler creates a new StateHandler.
func NewStateHandler(tracker Tracker) *StateHandler {
	return &StateHandler{tracker: tracker}
}

// stateResponse wraps the latest snapshot with the tracking flag.
type stateResponse struct {
	Enabled bool          `json:"enabled"`
	State   pointer.State `json:"state"`
}

type updateStateRequest struct {
	Enabled *bool `json:"enabled"`
}

// ServeHTTP implements the http.Handler interface.
func (h *StateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, stateResponse{
			Enabled: h.tracker.IsEnabled(),
			State:   h.tracker.LatestState(),
		})
	case http.MethodPut:
		var req updateStateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if req.Enabled == nil {
			writeError(w, http.StatusBadRequest, "Field 'enabled' is required")
			return
		}
		h.tracker.SetEnabled(*req.Enabled)
		writeJSON(w, http.StatusOK, stateResponse{
			Enabled: h.tracker.IsEnabled(),
			State:   h.tracker.LatestState(),
		})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
