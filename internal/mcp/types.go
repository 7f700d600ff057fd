package mcp

import "github.com/1broseidon/splitscreen/internal/ipc"

// GetStatusInput is the input for the get_status tool.
type GetStatusInput struct{}

// GetStatusOutput is the output for the get_status tool.
type GetStatusOutput struct {
	ipc.StatusData
}

// GetLayoutInput is the input for the get_layout tool.
type GetLayoutInput struct {
	Output string `json:"output,omitempty" jsonschema:"Only return windows on this output (RandR name, e.g. DP-1)"`
}

// LayoutOutput is the output for the get_layout and relayout tools.
type LayoutOutput struct {
	Placements []ipc.PlacementInfo `json:"placements"`
	Skipped    []ipc.SkipInfo      `json:"skipped,omitempty"`
	KeepAbove  bool                `json:"keep_above"`
}

// RelayoutInput is the input for the relayout tool.
type RelayoutInput struct{}

// ListMonitorsInput is the input for the list_monitors tool.
type ListMonitorsInput struct{}

// ListMonitorsOutput is the output for the list_monitors tool.
type ListMonitorsOutput struct {
	Monitors []ipc.MonitorInfo `json:"monitors"`
}
