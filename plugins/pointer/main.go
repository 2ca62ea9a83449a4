// Package main provides the reference pointer driver for Mudra.
// It moves the OS cursor and presses mouse buttons via xdotool on
// Linux and cliclick on macOS.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Request represents the input from the plugin executor.
type Request struct {
	Action string          `json:"action"`
	Event  string          `json:"event"`
	Config json.RawMessage `json:"config"`
	Params json.RawMessage `json:"params"`
}

// Response represents the output to the plugin executor.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// PointerParams carries the cursor position for every action.
type PointerParams struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	var p PointerParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &p); err != nil {
			writeErrorResponse(fmt.Sprintf("failed to parse params: %v", err))
			return
		}
	}

	if err := dispatch(req.Action, p); err != nil {
		writeErrorResponse(fmt.Sprintf("action %s failed: %v", req.Action, err))
		return
	}

	writeSuccessResponse()
}

// dispatch runs the platform command for one driver action.
func dispatch(action string, p PointerParams) error {
	switch runtime.GOOS {
	case "darwin":
		return dispatchCliclick(action, p)
	default:
		return dispatchXdotool(action, p)
	}
}

func dispatchXdotool(action string, p PointerParams) error {
	x := fmt.Sprintf("%.0f", p.X)
	y := fmt.Sprintf("%.0f", p.Y)

	switch action {
	case "move":
		return run("xdotool", "mousemove", x, y)
	case "click":
		return run("xdotool", "mousemove", x, y, "click", "1")
	case "double-click":
		return run("xdotool", "mousemove", x, y, "click", "--repeat", "2", "1")
	case "button-down":
		return run("xdotool", "mousemove", x, y, "mousedown", "1")
	case "button-up":
		return run("xdotool", "mouseup", "1")
	case "middle-down":
		return run("xdotool", "mousemove", x, y, "mousedown", "2")
	case "middle-up":
		return run("xdotool", "mouseup", "2")
	default:
		return fmt.Errorf("unknown action: %s", action)
	}
}

func dispatchCliclick(action string, p PointerParams) error {
	pos := fmt.Sprintf("%.0f,%.0f", p.X, p.Y)

	switch action {
	case "move":
		return run("cliclick", "m:"+pos)
	case "click":
		return run("cliclick", "c:"+pos)
	case "double-click":
		return run("cliclick", "dc:"+pos)
	case "button-down":
		return run("cliclick", "dd:"+pos)
	case "button-up":
		return run("cliclick", "du:"+pos)
	case "middle-down", "middle-up":
		// cliclick has no middle-button hold; a single middle click on
		// the down edge is the closest available behavior
		if action == "middle-down" {
			return run("cliclick", "tc:"+pos)
		}
		return nil
	default:
		return fmt.Errorf("unknown action: %s", action)
	}
}

// run executes a platform command and folds its output into the error.
func run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, string(output))
	}
	return nil
}

// writeErrorResponse writes an error response to stdout.
func writeErrorResponse(errMsg string) {
	resp := Response{
		Success: false,
		Error:   errMsg,
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}

// writeSuccessResponse writes a success response to stdout.
func writeSuccessResponse() {
	resp := Response{
		Success: true,
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}
