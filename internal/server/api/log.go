package api

import (
	"net/http"

	"github.com/arjunmn/mudra/internal/logsink"
)

// LogHandler exposes the in-memory log ring.
type LogHandler struct {
	sink *logsink.Sink
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(sink *logsink.Sink) *LogHandler {
	return &LogHandler{sink: sink}
}

type logResponse struct {
	Entries []logsink.Entry `json:"entries"`
}

// ServeHTTP handles GET /api/log, returning entries newest first.
func (h *LogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, logResponse{Entries: h.sink.Entries()})
}
