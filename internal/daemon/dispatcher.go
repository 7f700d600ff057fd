package daemon

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/splitscreen/internal/splitscreen"
)

// ErrStopped is returned by Relayout once the dispatcher has stopped.
var ErrStopped = errors.New("dispatcher stopped")

// EventKind identifies a queued dispatcher event.
type EventKind int

const (
	EventTopology EventKind = iota // window added or removed
	EventFocus                     // active window changed
	EventRelayout                  // manual request (hotkey, IPC, startup)
)

func (k EventKind) String() string {
	switch k {
	case EventTopology:
		return "topology"
	case EventFocus:
		return "focus"
	case EventRelayout:
		return "relayout"
	default:
		return "unknown"
	}
}

// Arranger runs layout and stacking passes.
type Arranger interface {
	Arrange(ctx context.Context) (splitscreen.Result, error)
	SyncStacking(ctx context.Context) (bool, error)
}

// Stats is a snapshot of dispatcher activity.
type Stats struct {
	StartedAt      time.Time
	LayoutPasses   int
	StackingPasses int
	Dropped        int
	KeepAbove      bool
	LastPass       time.Time
	LastResult     splitscreen.Result
	LastError      string
}

type passReply struct {
	result splitscreen.Result
	err    error
}

type event struct {
	kind  EventKind
	reply chan passReply
}

const queueSize = 64

// Dispatcher runs every pass on one goroutine, one at a time, in the order
// events were posted.
type Dispatcher struct {
	arranger Arranger
	logger   *slog.Logger
	queue    chan event
	done     chan struct{}
	doneOnce sync.Once

	mu    sync.Mutex
	stats Stats
}

// NewDispatcher creates a dispatcher. A nil logger discards output.
func NewDispatcher(arranger Arranger, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{
		arranger: arranger,
		logger:   logger,
		queue:    make(chan event, queueSize),
		done:     make(chan struct{}),
		stats:    Stats{StartedAt: time.Now()},
	}
}

// String names the dispatcher for supervisor logs.
func (d *Dispatcher) String() string {
	return "dispatcher"
}

// Post queues an event without blocking. It reports false when the queue is
// full and the event was dropped; every pass re-reads the host, so a queued
// event of the same kind already covers it.
func (d *Dispatcher) Post(kind EventKind) bool {
	select {
	case d.queue <- event{kind: kind}:
		return true
	default:
		d.mu.Lock()
		d.stats.Dropped++
		d.mu.Unlock()
		d.logger.Warn("event queue full, dropping event", "kind", kind)
		return false
	}
}

// Relayout queues a layout pass and waits for its result.
func (d *Dispatcher) Relayout(ctx context.Context) (splitscreen.Result, error) {
	reply := make(chan passReply, 1)
	select {
	case d.queue <- event{kind: EventRelayout, reply: reply}:
	case <-d.done:
		return splitscreen.Result{}, ErrStopped
	case <-ctx.Done():
		return splitscreen.Result{}, ctx.Err()
	}

	select {
	case r := <-reply:
		return r.result, r.err
	case <-d.done:
		return splitscreen.Result{}, ErrStopped
	case <-ctx.Done():
		return splitscreen.Result{}, ctx.Err()
	}
}

// Handler returns a splitscreen.Handler that posts to the queue.
func (d *Dispatcher) Handler() splitscreen.Handler {
	return postHandler{d: d}
}

type postHandler struct {
	d *Dispatcher
}

func (h postHandler) Topology() { h.d.Post(EventTopology) }
func (h postHandler) Focus()    { h.d.Post(EventFocus) }

// Serve drains the queue until ctx is cancelled.
func (d *Dispatcher) Serve(ctx context.Context) error {
	d.logger.Info("dispatcher started")
	for {
		select {
		case <-ctx.Done():
			d.doneOnce.Do(func() { close(d.done) })
			d.logger.Info("dispatcher stopped")
			return ctx.Err()
		case ev := <-d.queue:
			d.handle(ctx, ev)
		}
	}
}

// Stats returns a copy of the current counters.
func (d *Dispatcher) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats
}

func (d *Dispatcher) handle(ctx context.Context, ev event) {
	// A panicking pass must not take the queue down with it.
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("pass panic recovered", "kind", ev.kind, "panic", r)
			if ev.reply != nil {
				ev.reply <- passReply{err: errors.New("pass panicked")}
			}
		}
	}()

	switch ev.kind {
	case EventFocus:
		above, err := d.arranger.SyncStacking(ctx)
		d.mu.Lock()
		d.stats.StackingPasses++
		d.stats.LastPass = time.Now()
		if err == nil {
			d.stats.KeepAbove = above
		}
		d.recordErrLocked(err)
		d.mu.Unlock()
		if err != nil {
			d.logger.Error("stacking pass failed", "error", err)
		}
	default:
		res, err := d.arranger.Arrange(ctx)
		d.mu.Lock()
		d.stats.LayoutPasses++
		d.stats.LastPass = time.Now()
		if err == nil {
			d.stats.LastResult = res
			d.stats.KeepAbove = res.KeepAbove
		}
		d.recordErrLocked(err)
		d.mu.Unlock()
		if err != nil {
			d.logger.Error("layout pass failed", "kind", ev.kind, "error", err)
		} else {
			d.logger.Debug("layout pass complete",
				"kind", ev.kind,
				"placed", res.Applied,
				"skipped", len(res.Skipped))
		}
		if ev.reply != nil {
			ev.reply <- passReply{result: res, err: err}
		}
	}
}

func (d *Dispatcher) recordErrLocked(err error) {
	if err != nil {
		d.stats.LastError = err.Error()
	} else {
		d.stats.LastError = ""
	}
}
