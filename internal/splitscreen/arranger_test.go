package splitscreen

import (
	"context"
	"errors"
	"testing"

	"github.com/1broseidon/splitscreen/internal/platform"
)

func bindFake(h *fakeHost) *Arranger {
	a := NewArranger(h, nil)
	Bind(h, a.Handler(context.Background()))
	return a
}

func TestArrange_NoTargetsWritesNothing(t *testing.T) {
	h := newFakeHost(primary)
	h.windows = []platform.Window{other(1, "firefox", "DP-1")}
	a := NewArranger(h, nil)

	res, err := a.Arrange(context.Background())
	if err != nil {
		t.Fatalf("arrange: %v", err)
	}
	if h.moveWrites != 0 || res.Applied != 0 {
		t.Fatalf("expected no geometry writes, got %d", h.moveWrites)
	}
	if len(h.undecor) != 0 {
		t.Fatalf("expected no border writes, got %v", h.undecor)
	}
}

func TestArrange_TwoWindowsAddedSequentially(t *testing.T) {
	h := newFakeHost(primary)
	bindFake(h)

	h.add(gamescope(1, "DP-1"))
	if got := h.geometry[1]; got != primary.Bounds {
		t.Fatalf("single window = %+v, want full output", got)
	}

	h.add(gamescope(2, "DP-1"))
	if got, want := h.geometry[1], (platform.Rect{X: 0, Y: 0, Width: 960, Height: 1080}); got != want {
		t.Fatalf("first window = %+v, want %+v", got, want)
	}
	if got, want := h.geometry[2], (platform.Rect{X: 960, Y: 0, Width: 960, Height: 1080}); got != want {
		t.Fatalf("second window = %+v, want %+v", got, want)
	}
	if !h.undecor[1] || !h.undecor[2] {
		t.Fatalf("expected both windows undecorated, got %v", h.undecor)
	}
}

func TestArrange_FourWindowsGetQuadrants(t *testing.T) {
	h := newFakeHost(primary)
	bindFake(h)
	for id := platform.WindowID(1); id <= 4; id++ {
		h.add(gamescope(id, "DP-1"))
	}

	want := map[platform.WindowID]platform.Rect{
		1: {X: 0, Y: 0, Width: 960, Height: 540},
		2: {X: 960, Y: 0, Width: 960, Height: 540},
		3: {X: 0, Y: 540, Width: 960, Height: 540},
		4: {X: 960, Y: 540, Width: 960, Height: 540},
	}
	for id, r := range want {
		if h.geometry[id] != r {
			t.Fatalf("window %d = %+v, want %+v", id, h.geometry[id], r)
		}
	}
}

func TestArrange_FifthWindowLeavesGeometryUntouched(t *testing.T) {
	h := newFakeHost(primary)
	bindFake(h)
	for id := platform.WindowID(1); id <= 4; id++ {
		h.add(gamescope(id, "DP-1"))
	}
	before := make(map[platform.WindowID]platform.Rect, len(h.geometry))
	for id, r := range h.geometry {
		before[id] = r
	}
	writes := h.moveWrites

	h.add(gamescope(5, "DP-1"))

	if h.moveWrites != writes {
		t.Fatalf("expected no geometry writes for a 5-window group, got %d more", h.moveWrites-writes)
	}
	if _, ok := h.geometry[5]; ok {
		t.Fatalf("fifth window should not be placed")
	}
	for id, r := range before {
		if h.geometry[id] != r {
			t.Fatalf("window %d moved from %+v to %+v", id, r, h.geometry[id])
		}
	}
}

func TestArrange_RemovalReflowsGroup(t *testing.T) {
	h := newFakeHost(primary)
	bindFake(h)
	h.add(gamescope(1, "DP-1"))
	h.add(gamescope(2, "DP-1"))
	h.add(gamescope(3, "DP-1"))

	h.remove(1)

	if got, want := h.geometry[2], (platform.Rect{X: 0, Y: 0, Width: 960, Height: 1080}); got != want {
		t.Fatalf("window 2 = %+v, want %+v", got, want)
	}
	if got, want := h.geometry[3], (platform.Rect{X: 960, Y: 0, Width: 960, Height: 1080}); got != want {
		t.Fatalf("window 3 = %+v, want %+v", got, want)
	}
}

func TestArrange_Idempotent(t *testing.T) {
	h := newFakeHost(primary, secondary)
	h.windows = []platform.Window{
		gamescope(1, "DP-1"),
		gamescope(2, "HDMI-1"),
		gamescope(3, "DP-1"),
		gamescope(4, "HDMI-1"),
		gamescope(5, "HDMI-1"),
	}
	a := NewArranger(h, nil)

	if _, err := a.Arrange(context.Background()); err != nil {
		t.Fatalf("first pass: %v", err)
	}
	first := make(map[platform.WindowID]platform.Rect)
	for id, r := range h.geometry {
		first[id] = r
	}

	if _, err := a.Arrange(context.Background()); err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if len(first) != len(h.geometry) {
		t.Fatalf("placement count changed: %d -> %d", len(first), len(h.geometry))
	}
	for id, r := range first {
		if h.geometry[id] != r {
			t.Fatalf("window %d changed between passes: %+v -> %+v", id, r, h.geometry[id])
		}
	}
	if h.moveWrites != 10 {
		t.Fatalf("expected every placement written on both passes (10), got %d", h.moveWrites)
	}
}

func TestArrange_OutputIsolation(t *testing.T) {
	h := newFakeHost(primary, secondary)
	h.windows = []platform.Window{
		gamescope(1, "HDMI-1"),
		gamescope(2, "DP-1"),
		gamescope(3, "HDMI-1"),
		gamescope(4, "HDMI-1"),
	}
	a := NewArranger(h, nil)
	if _, err := a.Arrange(context.Background()); err != nil {
		t.Fatalf("arrange: %v", err)
	}

	if h.geometry[2] != primary.Bounds {
		t.Fatalf("DP-1 window = %+v, want %+v", h.geometry[2], primary.Bounds)
	}
	for _, id := range []platform.WindowID{1, 3, 4} {
		r := h.geometry[id]
		cx, cy := r.Center()
		if !secondary.Bounds.Contains(cx, cy) || r.X < secondary.Bounds.X {
			t.Fatalf("HDMI-1 window %d placed outside its output: %+v", id, r)
		}
	}
	if got, want := h.geometry[1], (platform.Rect{X: 1920, Y: 0, Width: 2560, Height: 720}); got != want {
		t.Fatalf("HDMI-1 player 0 = %+v, want %+v", got, want)
	}
}

func TestArrange_SkipsVanishedWindow(t *testing.T) {
	h := newFakeHost(primary)
	h.windows = []platform.Window{gamescope(1, "DP-1"), gamescope(2, "DP-1")}
	h.gone[1] = true
	a := NewArranger(h, nil)

	res, err := a.Arrange(context.Background())
	if err != nil {
		t.Fatalf("arrange should not fail on a vanished window: %v", err)
	}
	if res.Applied != 1 {
		t.Fatalf("expected 1 applied placement, got %d", res.Applied)
	}
	if got, want := h.geometry[2], (platform.Rect{X: 960, Y: 0, Width: 960, Height: 1080}); got != want {
		t.Fatalf("window 2 = %+v, want %+v", got, want)
	}
}

func TestStacking_FollowsActiveWindowClass(t *testing.T) {
	h := newFakeHost(primary)
	bindFake(h)
	h.add(gamescope(1, "DP-1"))
	h.add(platform.Window{ID: 2, Class: ClassGamescopeKBM, Output: "DP-1"})
	h.add(other(3, "firefox", "DP-1"))

	h.activate(3)
	for _, id := range []platform.WindowID{1, 2} {
		if h.above[id] {
			t.Fatalf("window %d should not be kept above while firefox is focused", id)
		}
	}
	if _, touched := h.above[3]; touched {
		t.Fatalf("non-target window must not be touched")
	}

	h.activate(2)
	for _, id := range []platform.WindowID{1, 2} {
		if !h.above[id] {
			t.Fatalf("window %d should be kept above while a gamescope window is focused", id)
		}
	}
}

func TestArrange_ReportsStackingResult(t *testing.T) {
	h := newFakeHost(primary)
	h.windows = []platform.Window{gamescope(1, "DP-1")}
	h.active = 1
	a := NewArranger(h, nil)

	res, err := a.Arrange(context.Background())
	if err != nil {
		t.Fatalf("arrange: %v", err)
	}
	if !res.KeepAbove || !h.above[1] {
		t.Fatalf("expected keep-above after arrange with focused target")
	}
}

func TestSyncStacking_NoActiveWindow(t *testing.T) {
	h := newFakeHost(primary)
	h.windows = []platform.Window{gamescope(1, "DP-1")}
	h.above[1] = true
	a := NewArranger(h, nil)

	above, err := a.SyncStacking(context.Background())
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if above || h.above[1] {
		t.Fatalf("expected keep-above cleared without an active window")
	}
}

func TestStacking_UnreadableActiveWindowClearsKeepAbove(t *testing.T) {
	h := newFakeHost(primary)
	bindFake(h)
	h.add(gamescope(1, "DP-1"))
	h.add(gamescope(2, "DP-1"))

	h.activate(1)
	if !h.above[1] || !h.above[2] {
		t.Fatalf("expected keep-above while gamescope is focused, got %v", h.above)
	}

	h.activeErr = errors.New("window 0x63: no such property WM_CLASS")
	h.activate(99)
	for _, id := range []platform.WindowID{1, 2} {
		if h.above[id] {
			t.Fatalf("window %d still kept above while an unreadable window has focus", id)
		}
	}
}

func TestArrange_SucceedsWhenActiveWindowUnreadable(t *testing.T) {
	h := newFakeHost(primary)
	h.windows = []platform.Window{gamescope(1, "DP-1")}
	h.above[1] = true
	h.activeErr = errors.New("no such property")
	a := NewArranger(h, nil)

	res, err := a.Arrange(context.Background())
	if err != nil {
		t.Fatalf("arrange: %v", err)
	}
	if res.Applied != 1 || res.KeepAbove || h.above[1] {
		t.Fatalf("result=%+v above=%v, want one placement and keep-above cleared", res, h.above)
	}
}
