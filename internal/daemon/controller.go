package daemon

import (
	"context"
	"fmt"
	"time"

	"github.com/1broseidon/splitscreen/internal/ipc"
	"github.com/1broseidon/splitscreen/internal/platform"
	"github.com/1broseidon/splitscreen/internal/splitscreen"
)

// OutputLister reports the host's current outputs.
type OutputLister interface {
	Outputs() ([]platform.Output, error)
}

// Controller answers IPC requests from dispatcher state.
type Controller struct {
	dispatcher *Dispatcher
	outputs    OutputLister
	reload     func() error
	display    string
}

var _ ipc.Controller = (*Controller)(nil)

// NewController wires the IPC surface. reload may be nil.
func NewController(d *Dispatcher, outputs OutputLister, display string, reload func() error) *Controller {
	return &Controller{
		dispatcher: d,
		outputs:    outputs,
		reload:     reload,
		display:    display,
	}
}

func (c *Controller) Status() ipc.StatusData {
	st := c.dispatcher.Stats()
	data := ipc.StatusData{
		DaemonRunning:  true,
		UptimeSeconds:  int64(time.Since(st.StartedAt).Seconds()),
		Display:        c.display,
		TargetWindows:  len(st.LastResult.Placements) + len(st.LastResult.Skipped),
		LayoutPasses:   st.LayoutPasses,
		StackingPasses: st.StackingPasses,
		DroppedEvents:  st.Dropped,
		KeepAbove:      st.KeepAbove,
		LastError:      st.LastError,
	}
	if !st.LastPass.IsZero() {
		data.LastPassUnix = st.LastPass.Unix()
	}
	return data
}

func (c *Controller) Layout() ipc.LayoutData {
	st := c.dispatcher.Stats()
	data := LayoutData(st.LastResult)
	data.KeepAbove = st.KeepAbove
	return data
}

func (c *Controller) Monitors() (ipc.MonitorsData, error) {
	outputs, err := c.outputs.Outputs()
	if err != nil {
		return ipc.MonitorsData{}, err
	}

	players := make(map[string]int)
	for _, p := range c.dispatcher.Stats().LastResult.Placements {
		players[p.Output]++
	}

	infos := make([]ipc.MonitorInfo, 0, len(outputs))
	for _, o := range outputs {
		infos = append(infos, ipc.MonitorInfo{
			ID:      o.ID,
			Name:    o.Name,
			X:       o.Bounds.X,
			Y:       o.Bounds.Y,
			Width:   o.Bounds.Width,
			Height:  o.Bounds.Height,
			Players: players[o.Name],
		})
	}
	return ipc.MonitorsData{Monitors: infos}, nil
}

func (c *Controller) Relayout(ctx context.Context) (ipc.LayoutData, error) {
	res, err := c.dispatcher.Relayout(ctx)
	if err != nil {
		return ipc.LayoutData{}, err
	}
	return LayoutData(res), nil
}

func (c *Controller) Reload() error {
	if c.reload == nil {
		return fmt.Errorf("reload not supported")
	}
	return c.reload()
}

// LayoutData converts a pass result to its wire form.
func LayoutData(res splitscreen.Result) ipc.LayoutData {
	data := ipc.LayoutData{
		Placements: make([]ipc.PlacementInfo, 0, len(res.Placements)),
		KeepAbove:  res.KeepAbove,
	}
	for _, p := range res.Placements {
		data.Placements = append(data.Placements, ipc.PlacementInfo{
			WindowID: uint32(p.Window),
			Class:    p.Class,
			Output:   p.Output,
			Players:  p.Count,
			Index:    p.Index,
			X:        p.Bounds.X,
			Y:        p.Bounds.Y,
			Width:    p.Bounds.Width,
			Height:   p.Bounds.Height,
		})
	}
	for _, s := range res.Skipped {
		data.Skipped = append(data.Skipped, ipc.SkipInfo{
			WindowID: uint32(s.Window),
			Output:   s.Output,
			Reason:   string(s.Reason),
		})
	}
	return data
}
