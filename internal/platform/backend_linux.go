//go:build linux

package platform

import (
	"errors"
	"fmt"
	"sort"

	"github.com/1broseidon/splitscreen/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// LinuxBackend wraps an existing X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn    *x11.Connection
	watcher *x11.RootWatcher
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{
		conn:    conn,
		watcher: x11.NewRootWatcher(conn),
	}
}

// NewLinuxBackendFromDisplay creates a new Linux backend by opening a fresh
// X11 connection. An empty display uses $DISPLAY.
func NewLinuxBackendFromDisplay(display string) (*LinuxBackend, error) {
	conn, err := x11.NewConnection(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return NewLinuxBackend(conn), nil
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// Watch starts delivering root window events to registered callbacks.
func (b *LinuxBackend) Watch() error {
	if b == nil || b.watcher == nil {
		return fmt.Errorf("x11 backend connection is nil")
	}
	return b.watcher.Start()
}

// EventLoop starts the X11 event loop (blocking).
func (b *LinuxBackend) EventLoop() {
	if b != nil && b.conn != nil {
		b.conn.EventLoop()
	}
}

// Quit detaches the root watcher and stops a running EventLoop.
func (b *LinuxBackend) Quit() {
	if b == nil || b.conn == nil {
		return
	}
	if b.watcher != nil {
		b.watcher.Stop()
	}
	b.conn.Quit()
}

// XUtil returns the underlying xgbutil connection for X11-specific operations.
func (b *LinuxBackend) XUtil() *xgbutil.XUtil {
	if b == nil || b.conn == nil {
		return nil
	}
	return b.conn.XUtil
}

// RootWindow returns the X11 root window ID.
func (b *LinuxBackend) RootWindow() xproto.Window {
	if b == nil || b.conn == nil {
		return 0
	}
	return b.conn.Root
}

// OnWindowAdded registers fn for windows entering the client list.
func (b *LinuxBackend) OnWindowAdded(fn func()) {
	b.watcher.OnAdded(func(xproto.Window) { fn() })
}

// OnWindowRemoved registers fn for windows leaving the client list.
func (b *LinuxBackend) OnWindowRemoved(fn func()) {
	b.watcher.OnRemoved(func(xproto.Window) { fn() })
}

// OnWindowActivated registers fn for focus changes.
func (b *LinuxBackend) OnWindowActivated(fn func()) {
	b.watcher.OnActivated(func(xproto.Window) { fn() })
}

// Outputs returns all active outputs ordered by ID.
func (b *LinuxBackend) Outputs() ([]Output, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	monitors, err := conn.GetMonitors()
	if err != nil {
		return nil, err
	}

	outputs := make([]Output, 0, len(monitors))
	for _, m := range monitors {
		outputs = append(outputs, outputFromMonitor(m))
	}

	sort.Slice(outputs, func(i, j int) bool {
		return outputs[i].ID < outputs[j].ID
	})

	return outputs, nil
}

// Windows lists normal managed windows in client-list order. Windows that
// vanish while being read are left out.
func (b *LinuxBackend) Windows() ([]Window, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	outputs, err := b.Outputs()
	if err != nil {
		return nil, err
	}

	clients, err := conn.ClientList()
	if err != nil {
		return nil, fmt.Errorf("read client list: %w", err)
	}

	windows := make([]Window, 0, len(clients))
	for _, windowID := range clients {
		if !conn.IsNormalWindow(windowID) {
			continue
		}
		w, err := b.describe(windowID, outputs)
		if err != nil {
			continue
		}
		windows = append(windows, w)
	}

	return windows, nil
}

// ActiveWindow returns the focused window. ok is false when nothing has focus.
// Only ID, PID, Class and Title are filled in. A window without a readable
// WM_CLASS has an empty Class.
func (b *LinuxBackend) ActiveWindow() (Window, bool, error) {
	conn, err := b.connection()
	if err != nil {
		return Window{}, false, err
	}

	wid, err := conn.GetActiveWindow()
	if err != nil || wid == 0 {
		return Window{}, false, nil
	}

	class, err := b.windowClass(wid)
	if err != nil {
		if errors.Is(err, ErrWindowGone) {
			return Window{}, false, nil
		}
		return Window{}, false, err
	}
	return Window{
		ID:    WindowID(wid),
		PID:   conn.WindowPID(wid),
		Class: class,
		Title: conn.WindowTitle(wid),
	}, true, nil
}

// MoveResize moves and resizes a window's frame to the specified bounds.
func (b *LinuxBackend) MoveResize(windowID WindowID, bounds Rect) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}

	return mapWindowErr(conn.MoveResizeWindow(
		xproto.Window(windowID),
		bounds.X,
		bounds.Y,
		bounds.Width,
		bounds.Height,
	))
}

// SetUndecorated removes the window manager border and title bar.
func (b *LinuxBackend) SetUndecorated(windowID WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return mapWindowErr(conn.SetUndecorated(xproto.Window(windowID)))
}

// SetKeepAbove toggles the keep-above state.
func (b *LinuxBackend) SetKeepAbove(windowID WindowID, above bool) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return mapWindowErr(conn.SetKeepAbove(xproto.Window(windowID), above))
}

func (b *LinuxBackend) describe(windowID xproto.Window, outputs []Output) (Window, error) {
	conn := b.conn

	class, err := b.windowClass(windowID)
	if err != nil {
		return Window{}, err
	}
	geom, err := conn.FrameGeometry(windowID)
	if err != nil {
		return Window{}, mapWindowErr(err)
	}

	bounds := Rect{
		X:      geom.X(),
		Y:      geom.Y(),
		Width:  geom.Width(),
		Height: geom.Height(),
	}

	w := Window{
		ID:     WindowID(windowID),
		PID:    conn.WindowPID(windowID),
		Class:  class,
		Title:  conn.WindowTitle(windowID),
		Bounds: bounds,
	}
	if out, ok := OutputFor(outputs, bounds); ok {
		w.Output = out.Name
	}
	return w, nil
}

// windowClass reads the WM_CLASS class. A live window with a missing or
// malformed WM_CLASS reports "".
func (b *LinuxBackend) windowClass(windowID xproto.Window) (string, error) {
	class, err := b.conn.WindowClass(windowID)
	if err != nil {
		if errors.Is(err, x11.ErrBadWindow) {
			return "", mapWindowErr(err)
		}
		return "", nil
	}
	return class, nil
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}

func mapWindowErr(err error) error {
	if err != nil && errors.Is(err, x11.ErrBadWindow) {
		return fmt.Errorf("%w: %v", ErrWindowGone, err)
	}
	return err
}

func outputFromMonitor(m x11.Monitor) Output {
	return Output{
		ID:   m.ID,
		Name: m.Name,
		Bounds: Rect{
			X:      m.X,
			Y:      m.Y,
			Width:  m.Width,
			Height: m.Height,
		},
	}
}
