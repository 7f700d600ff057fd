package platform

import "errors"

// ErrWindowGone is returned (wrapped) by backends when a window disappeared
// between enumeration and a read or write against it.
var ErrWindowGone = errors.New("window no longer exists")

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Output describes a physical display in root-window coordinates.
type Output struct {
	ID     int
	Name   string
	Bounds Rect
}

// Window contains metadata and frame geometry for a top-level window.
type Window struct {
	ID     WindowID
	PID    int
	Class  string
	Title  string
	Output string // name of the output holding the frame center, "" if none
	Bounds Rect
}

// Backend abstracts the window-system operations the arranger needs.
type Backend interface {
	Outputs() ([]Output, error)
	Windows() ([]Window, error)
	ActiveWindow() (Window, bool, error)
	MoveResize(windowID WindowID, bounds Rect) error
	SetUndecorated(windowID WindowID) error
	SetKeepAbove(windowID WindowID, above bool) error
}

// OutputFor returns the output whose bounds contain the center of r.
func OutputFor(outputs []Output, r Rect) (Output, bool) {
	cx, cy := r.Center()
	for _, o := range outputs {
		if o.Bounds.Contains(cx, cy) {
			return o, true
		}
	}
	return Output{}, false
}
