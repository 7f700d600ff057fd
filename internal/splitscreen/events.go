package splitscreen

import "context"

// Events is the subscription surface a host exposes. Callbacks carry no
// payload; handlers re-read host state when they run.
type Events interface {
	OnWindowAdded(fn func())
	OnWindowRemoved(fn func())
	OnWindowActivated(fn func())
}

// Handler reacts to host events.
type Handler interface {
	// Topology runs after a window was added or removed.
	Topology()
	// Focus runs after the active window changed.
	Focus()
}

// Bind subscribes h to events. Geometry changes are not a trigger: a pass
// must never re-enter itself through its own writes.
func Bind(events Events, h Handler) {
	events.OnWindowAdded(h.Topology)
	events.OnWindowRemoved(h.Topology)
	events.OnWindowActivated(h.Focus)
}

// Handler returns a Handler that runs passes inline on the calling goroutine.
// Errors are logged; the next event converges the layout again.
func (a *Arranger) Handler(ctx context.Context) Handler {
	return inlineHandler{ctx: ctx, a: a}
}

type inlineHandler struct {
	ctx context.Context
	a   *Arranger
}

func (h inlineHandler) Topology() {
	if _, err := h.a.Arrange(h.ctx); err != nil {
		h.a.logger.Error("layout pass failed", "error", err)
	}
}

func (h inlineHandler) Focus() {
	if _, err := h.a.SyncStacking(h.ctx); err != nil {
		h.a.logger.Error("stacking pass failed", "error", err)
	}
}
