package splitscreen

import (
	"fmt"

	"github.com/1broseidon/splitscreen/internal/platform"
)

// fakeHost is an in-memory compositor: a window list, outputs, an active
// window and the three event hooks.
type fakeHost struct {
	outputs []platform.Output
	windows []platform.Window
	active  platform.WindowID
	// activeErr is returned by ActiveWindow, as for a focused window
	// whose properties cannot be read.
	activeErr error

	geometry   map[platform.WindowID]platform.Rect
	undecor    map[platform.WindowID]bool
	above      map[platform.WindowID]bool
	moveWrites int
	gone       map[platform.WindowID]bool

	added     []func()
	removed   []func()
	activated []func()
}

func newFakeHost(outputs ...platform.Output) *fakeHost {
	return &fakeHost{
		outputs:  outputs,
		geometry: make(map[platform.WindowID]platform.Rect),
		undecor:  make(map[platform.WindowID]bool),
		above:    make(map[platform.WindowID]bool),
		gone:     make(map[platform.WindowID]bool),
	}
}

func (h *fakeHost) Outputs() ([]platform.Output, error) {
	return append([]platform.Output(nil), h.outputs...), nil
}

func (h *fakeHost) Windows() ([]platform.Window, error) {
	return append([]platform.Window(nil), h.windows...), nil
}

func (h *fakeHost) ActiveWindow() (platform.Window, bool, error) {
	if h.activeErr != nil {
		return platform.Window{}, false, h.activeErr
	}
	for _, w := range h.windows {
		if w.ID == h.active {
			return w, true, nil
		}
	}
	return platform.Window{}, false, nil
}

func (h *fakeHost) MoveResize(id platform.WindowID, bounds platform.Rect) error {
	if h.gone[id] {
		return fmt.Errorf("configure %d: %w", id, platform.ErrWindowGone)
	}
	h.geometry[id] = bounds
	h.moveWrites++
	return nil
}

func (h *fakeHost) SetUndecorated(id platform.WindowID) error {
	if h.gone[id] {
		return fmt.Errorf("motif hints %d: %w", id, platform.ErrWindowGone)
	}
	h.undecor[id] = true
	return nil
}

func (h *fakeHost) SetKeepAbove(id platform.WindowID, above bool) error {
	if h.gone[id] {
		return fmt.Errorf("wm state %d: %w", id, platform.ErrWindowGone)
	}
	h.above[id] = above
	return nil
}

func (h *fakeHost) OnWindowAdded(fn func())     { h.added = append(h.added, fn) }
func (h *fakeHost) OnWindowRemoved(fn func())   { h.removed = append(h.removed, fn) }
func (h *fakeHost) OnWindowActivated(fn func()) { h.activated = append(h.activated, fn) }

func (h *fakeHost) add(w platform.Window) {
	h.windows = append(h.windows, w)
	for _, fn := range h.added {
		fn()
	}
}

func (h *fakeHost) remove(id platform.WindowID) {
	kept := h.windows[:0]
	for _, w := range h.windows {
		if w.ID != id {
			kept = append(kept, w)
		}
	}
	h.windows = kept
	for _, fn := range h.removed {
		fn()
	}
}

func (h *fakeHost) activate(id platform.WindowID) {
	h.active = id
	for _, fn := range h.activated {
		fn()
	}
}

func gamescope(id platform.WindowID, output string) platform.Window {
	return platform.Window{ID: id, Class: ClassGamescope, Output: output}
}

func other(id platform.WindowID, class, output string) platform.Window {
	return platform.Window{ID: id, Class: class, Output: output}
}
