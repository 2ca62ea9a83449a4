// Package server provides the HTTP control surface for the Mudra pointer daemon.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/arjunmn/mudra/internal/app"
	"github.com/arjunmn/mudra/internal/server/api"
	"github.com/arjunmn/mudra/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	App       *app.App
}

// Server represents the HTTP server for the Mudra application.
type Server struct {
	config Config
	mux    *http.ServeMux
	hub    *StateHub
	start  time.Time
}

// New creates a new Server with the given configuration. When an App is
// provided, the server subscribes its state hub to the pump's
// published snapshots.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		hub:    NewStateHub(),
		start:  time.Now(),
	}
	s.setupRoutes()

	if config.App != nil {
		config.App.Subscribe(s.hub.Publish)
	}

	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.App != nil {
		a := s.config.App

		configHandler := api.NewConfigHandler(a.Settings(), s.config.Store, a.Sink())
		configHandler.OnCameraChange = a.SetVideoSource
		configHandler.OnDriverChange = a.UseDriver
		s.mux.Handle("/api/config", configHandler)
		s.mux.Handle("/api/state", api.NewStateHandler(a))
		s.mux.Handle("/api/log", api.NewLogHandler(a.Sink()))
		s.mux.Handle("/api/stream", NewStreamHandler(a.Camera()))
		s.mux.Handle("/api/ws", s.hub)
	}

	if s.config.Store != nil {
		s.mux.Handle("/api/events", api.NewEventsHandler(s.config.Store))
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// Hub returns the WebSocket state hub.
func (s *Server) Hub() *StateHub {
	return s.hub
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
