package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/splitscreen/internal/ipc"
)

const (
	ServerName    = "splitscreen"
	ServerVersion = "0.1.0"
)

// DaemonClient is the subset of the IPC client the tools use.
type DaemonClient interface {
	GetStatus() (*ipc.StatusData, error)
	GetLayout() (*ipc.LayoutData, error)
	Relayout() (*ipc.LayoutData, error)
	GetMonitors() (*ipc.MonitorsData, error)
}

// Server is the MCP server exposing the split-screen daemon.
type Server struct {
	mcpServer *mcpsdk.Server
	client    DaemonClient
}

// NewServer creates an MCP server that forwards tool calls to the daemon.
func NewServer(client DaemonClient) *Server {
	s := &Server{client: client}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Report whether the splitscreen daemon is running, how many gamescope windows it manages, pass counters and the last error.",
	}, s.handleGetStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_layout",
		Description: "Return the geometry each gamescope window received in the most recent layout pass, grouped by output, plus windows that were left in place and why.",
	}, s.handleGetLayout)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "relayout",
		Description: "Run a layout pass now and return the resulting placements. Use after moving a gamescope window to another output.",
	}, s.handleRelayout)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_monitors",
		Description: "List outputs known to the daemon with their geometry and how many players each currently hosts.",
	}, s.handleListMonitors)
}

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetStatusInput) (*mcpsdk.CallToolResult, GetStatusOutput, error) {
	status, err := s.client.GetStatus()
	if err != nil {
		return nil, GetStatusOutput{}, fmt.Errorf("get_status: %w", err)
	}
	return nil, GetStatusOutput{StatusData: *status}, nil
}

func (s *Server) handleGetLayout(_ context.Context, _ *mcpsdk.CallToolRequest, args GetLayoutInput) (*mcpsdk.CallToolResult, LayoutOutput, error) {
	data, err := s.client.GetLayout()
	if err != nil {
		return nil, LayoutOutput{}, fmt.Errorf("get_layout: %w", err)
	}
	return nil, layoutOutput(data, args.Output), nil
}

func (s *Server) handleRelayout(_ context.Context, _ *mcpsdk.CallToolRequest, _ RelayoutInput) (*mcpsdk.CallToolResult, LayoutOutput, error) {
	data, err := s.client.Relayout()
	if err != nil {
		return nil, LayoutOutput{}, fmt.Errorf("relayout: %w", err)
	}
	return nil, layoutOutput(data, ""), nil
}

func (s *Server) handleListMonitors(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListMonitorsInput) (*mcpsdk.CallToolResult, ListMonitorsOutput, error) {
	data, err := s.client.GetMonitors()
	if err != nil {
		return nil, ListMonitorsOutput{}, fmt.Errorf("list_monitors: %w", err)
	}
	out := ListMonitorsOutput{Monitors: data.Monitors}
	if out.Monitors == nil {
		out.Monitors = []ipc.MonitorInfo{}
	}
	return nil, out, nil
}

func layoutOutput(data *ipc.LayoutData, output string) LayoutOutput {
	out := LayoutOutput{
		Placements: []ipc.PlacementInfo{},
		KeepAbove:  data.KeepAbove,
	}
	for _, p := range data.Placements {
		if output == "" || p.Output == output {
			out.Placements = append(out.Placements, p)
		}
	}
	for _, sk := range data.Skipped {
		if output == "" || sk.Output == output {
			out.Skipped = append(out.Skipped, sk)
		}
	}
	return out
}
