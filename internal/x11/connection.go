package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
)

// ErrBadWindow is returned (wrapped) when the server no longer knows a window.
var ErrBadWindow = errors.New("x11: bad window")

const wakeAtom = "_SPLITSCREEN_WAKE"

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window
}

// NewConnection connects to display, or to $DISPLAY when display is empty.
func NewConnection(display string) (*Connection, error) {
	var (
		xu  *xgbutil.XUtil
		err error
	)
	if display == "" {
		xu, err = xgbutil.NewConn()
	} else {
		xu, err = xgbutil.NewConnDisplay(display)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}

	// Required before any global key grab.
	keybind.Initialize(xu)

	return &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// EventLoop runs the xgbutil event loop until Quit is called (blocking).
func (c *Connection) EventLoop() {
	xevent.Main(c.XUtil)
}

// Quit stops a running EventLoop. xevent.Quit only sets a flag the loop
// checks between reads, so a throwaway property write on the root window
// wakes a loop blocked waiting for the next event.
func (c *Connection) Quit() {
	xevent.Quit(c.XUtil)
	c.wake()
}

func (c *Connection) wake() {
	atom, err := xprop.Atm(c.XUtil, wakeAtom)
	if err != nil {
		return
	}
	xproto.ChangeProperty(c.XUtil.Conn(), xproto.PropModeReplace, c.Root,
		atom, xproto.AtomCardinal, 32, 1, []byte{0, 0, 0, 0})
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}

// checkWindow turns a failed request into ErrBadWindow when the window is gone.
// ewmh/icccm helpers flatten X errors into strings, so existence is probed
// with a fresh GetWindowAttributes round trip.
func (c *Connection) checkWindow(windowID xproto.Window, err error) error {
	if err == nil {
		return nil
	}
	if _, aerr := xproto.GetWindowAttributes(c.XUtil.Conn(), windowID).Reply(); aerr != nil {
		var bad xproto.WindowError
		if errors.As(aerr, &bad) {
			return fmt.Errorf("window 0x%x: %w: %v", uint32(windowID), ErrBadWindow, err)
		}
	}
	return err
}
