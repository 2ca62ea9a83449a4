// Package plugin provides discovery and execution of pointer driver plugins
// for the Mudra daemon. Drivers are external executables that translate
// interaction events into OS-level pointer actions.
package plugin

import "encoding/json"

// Manifest describes a driver plugin's metadata and capabilities.
type Manifest struct {
	Name         string          `json:"name"`
	Version      string          `json:"version"`
	Description  string          `json:"description"`
	Executable   string          `json:"executable"`
	Actions      []string        `json:"actions"`
	ConfigSchema json.RawMessage `json:"configSchema,omitempty"`
}

// Request represents a request sent to a driver for execution.
type Request struct {
	Action string          `json:"action"`
	Event  string          `json:"event"`
	Config json.RawMessage `json:"config"`
	Params json.RawMessage `json:"params"`
}

// Response represents the response from a driver execution.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Plugin represents a discovered driver with its manifest and location.
type Plugin struct {
	Manifest   Manifest
	Path       string
	Executable string
}
