package splitscreen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/1broseidon/splitscreen/internal/platform"
)

// Result summarizes one layout pass.
type Result struct {
	Placements []Placement
	Skipped    []Skip
	Applied    int // placements written without error
	KeepAbove  bool
}

// Arranger applies split-screen placements and the stacking policy through a
// backend. It keeps no state between calls; every pass re-reads the host.
type Arranger struct {
	backend platform.Backend
	logger  *slog.Logger
}

// NewArranger creates an arranger. A nil logger discards output.
func NewArranger(backend platform.Backend, logger *slog.Logger) *Arranger {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Arranger{
		backend: backend,
		logger:  logger,
	}
}

// Arrange places every target window on its output, then reconciles
// keep-above for the active window. Geometry is written on every pass even
// when unchanged.
func (a *Arranger) Arrange(ctx context.Context) (Result, error) {
	outputs, err := a.backend.Outputs()
	if err != nil {
		return Result{}, fmt.Errorf("list outputs: %w", err)
	}
	windows, err := a.backend.Windows()
	if err != nil {
		return Result{}, fmt.Errorf("list windows: %w", err)
	}

	placements, skipped := Plan(windows, outputs)
	res := Result{
		Placements: placements,
		Skipped:    skipped,
	}

	for _, s := range skipped {
		a.logger.Debug("window left in place",
			"window_id", s.Window,
			"output", s.Output,
			"reason", s.Reason)
	}

	for _, p := range placements {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := a.apply(p); err != nil {
			if errors.Is(err, platform.ErrWindowGone) {
				a.logger.Debug("window vanished during pass", "window_id", p.Window)
				continue
			}
			a.logger.Warn("failed to place window",
				"window_id", p.Window,
				"output", p.Output,
				"error", err)
			continue
		}
		res.Applied++
		a.logger.Debug("placed window",
			"window_id", p.Window,
			"output", p.Output,
			"players", p.Count,
			"index", p.Index,
			"x", p.Bounds.X,
			"y", p.Bounds.Y,
			"width", p.Bounds.Width,
			"height", p.Bounds.Height)
	}

	above, err := a.syncStacking(windows)
	if err != nil {
		return res, err
	}
	res.KeepAbove = above

	return res, nil
}

func (a *Arranger) apply(p Placement) error {
	if err := a.backend.SetUndecorated(p.Window); err != nil {
		return fmt.Errorf("suppress border: %w", err)
	}
	if err := a.backend.MoveResize(p.Window, p.Bounds); err != nil {
		return fmt.Errorf("move/resize: %w", err)
	}
	return nil
}

// SyncStacking keeps target windows above all others while a target window
// has focus and drops that privilege otherwise. It returns the flag value
// written to every target window.
func (a *Arranger) SyncStacking(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	windows, err := a.backend.Windows()
	if err != nil {
		return false, fmt.Errorf("list windows: %w", err)
	}
	return a.syncStacking(windows)
}

func (a *Arranger) syncStacking(windows []platform.Window) (bool, error) {
	// An unreadable active window counts as a non-target, so targets drop
	// keep-above instead of staying on top of it.
	active, ok, err := a.backend.ActiveWindow()
	if err != nil {
		a.logger.Warn("failed to read active window", "error", err)
		ok = false
	}
	above := ok && IsTarget(active.Class)

	for _, w := range FilterTargets(windows) {
		if err := a.backend.SetKeepAbove(w.ID, above); err != nil {
			if errors.Is(err, platform.ErrWindowGone) {
				continue
			}
			a.logger.Warn("failed to update keep-above",
				"window_id", w.ID,
				"above", above,
				"error", err)
		}
	}
	return above, nil
}
