package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandReload      CommandType = "RELOAD"
	CommandGetStatus   CommandType = "GET_STATUS"
	CommandGetLayout   CommandType = "GET_LAYOUT"
	CommandGetMonitors CommandType = "GET_MONITORS"
	CommandRelayout    CommandType = "RELAYOUT"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	DaemonRunning  bool   `json:"daemon_running"`
	UptimeSeconds  int64  `json:"uptime_seconds"`
	Display        string `json:"display,omitempty"`
	TargetWindows  int    `json:"target_windows"`
	LayoutPasses   int    `json:"layout_passes"`
	StackingPasses int    `json:"stacking_passes"`
	DroppedEvents  int    `json:"dropped_events"`
	KeepAbove      bool   `json:"keep_above"`
	LastPassUnix   int64  `json:"last_pass_unix,omitempty"`
	LastError      string `json:"last_error,omitempty"`
}

// PlacementInfo describes the geometry one window received.
type PlacementInfo struct {
	WindowID uint32 `json:"window_id"`
	Class    string `json:"class"`
	Output   string `json:"output"`
	Players  int    `json:"players"`
	Index    int    `json:"index"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// SkipInfo describes a target window left untouched.
type SkipInfo struct {
	WindowID uint32 `json:"window_id"`
	Output   string `json:"output,omitempty"`
	Reason   string `json:"reason"`
}

// LayoutData represents the data returned by GET_LAYOUT and RELAYOUT
type LayoutData struct {
	Placements []PlacementInfo `json:"placements"`
	Skipped    []SkipInfo      `json:"skipped,omitempty"`
	KeepAbove  bool            `json:"keep_above"`
}

// MonitorInfo represents information about a single monitor
type MonitorInfo struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Players int    `json:"players"`
}

// MonitorsData represents the data returned by GET_MONITORS
type MonitorsData struct {
	Monitors []MonitorInfo `json:"monitors"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
