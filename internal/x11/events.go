package x11

import (
	"fmt"
	"slices"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// RootWatcher turns root-window property changes into window lifecycle
// callbacks: _NET_CLIENT_LIST changes are diffed into added/removed, and
// _NET_ACTIVE_WINDOW changes report activation. Callbacks run on the
// goroutine executing EventLoop.
type RootWatcher struct {
	conn *Connection

	mu        sync.Mutex
	known     map[xproto.Window]struct{}
	added     []func(xproto.Window)
	removed   []func(xproto.Window)
	activated []func(xproto.Window)
}

// NewRootWatcher creates a watcher seeded with the current client list so
// windows that already exist are not reported as added.
func NewRootWatcher(conn *Connection) *RootWatcher {
	w := &RootWatcher{
		conn:  conn,
		known: make(map[xproto.Window]struct{}),
	}
	if clients, err := conn.ClientList(); err == nil {
		w.known, _, _ = diffClients(nil, clients)
	}
	return w
}

// OnAdded registers fn for windows appearing in _NET_CLIENT_LIST.
func (w *RootWatcher) OnAdded(fn func(xproto.Window)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.added = append(w.added, fn)
}

// OnRemoved registers fn for windows leaving _NET_CLIENT_LIST.
func (w *RootWatcher) OnRemoved(fn func(xproto.Window)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.removed = append(w.removed, fn)
}

// OnActivated registers fn for _NET_ACTIVE_WINDOW changes.
func (w *RootWatcher) OnActivated(fn func(xproto.Window)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.activated = append(w.activated, fn)
}

// Start selects PropertyChange on the root window and attaches the handler.
// Events are delivered once EventLoop runs.
func (w *RootWatcher) Start() error {
	root := xwindow.New(w.conn.XUtil, w.conn.Root)
	if err := root.Listen(xproto.EventMaskPropertyChange); err != nil {
		return fmt.Errorf("listen on root window: %w", err)
	}

	xevent.PropertyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
		name, err := xprop.AtomName(xu, ev.Atom)
		if err != nil {
			return
		}
		switch name {
		case "_NET_CLIENT_LIST":
			w.clientListChanged()
		case "_NET_ACTIVE_WINDOW":
			w.activeWindowChanged()
		}
	}).Connect(w.conn.XUtil, w.conn.Root)

	return nil
}

// Stop detaches the root handler.
func (w *RootWatcher) Stop() {
	xevent.Detach(w.conn.XUtil, w.conn.Root)
}

func (w *RootWatcher) clientListChanged() {
	clients, err := w.conn.ClientList()
	if err != nil {
		return
	}
	w.applyClients(clients)
}

// applyClients records a new client list and fires added/removed callbacks.
func (w *RootWatcher) applyClients(clients []xproto.Window) {
	w.mu.Lock()
	current, added, removed := diffClients(w.known, clients)
	w.known = current
	addedFns := slices.Clone(w.added)
	removedFns := slices.Clone(w.removed)
	w.mu.Unlock()

	for _, win := range removed {
		for _, fn := range removedFns {
			fn(win)
		}
	}
	for _, win := range added {
		for _, fn := range addedFns {
			fn(win)
		}
	}
}

func (w *RootWatcher) activeWindowChanged() {
	win, err := w.conn.GetActiveWindow()
	if err != nil {
		win = 0
	}
	w.notifyActivated(win)
}

func (w *RootWatcher) notifyActivated(win xproto.Window) {
	w.mu.Lock()
	fns := slices.Clone(w.activated)
	w.mu.Unlock()

	for _, fn := range fns {
		fn(win)
	}
}

// diffClients compares a new client list against the known set. added keeps
// the order of clients; removed is unordered.
func diffClients(known map[xproto.Window]struct{}, clients []xproto.Window) (current map[xproto.Window]struct{}, added, removed []xproto.Window) {
	current = make(map[xproto.Window]struct{}, len(clients))
	for _, win := range clients {
		current[win] = struct{}{}
		if _, ok := known[win]; !ok {
			added = append(added, win)
		}
	}
	for win := range known {
		if _, ok := current[win]; !ok {
			removed = append(removed, win)
		}
	}
	return current, added, removed
}
