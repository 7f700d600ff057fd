package x11

import (
	"sort"
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

func TestDiffClients(t *testing.T) {
	known := map[xproto.Window]struct{}{1: {}, 2: {}, 3: {}}
	current, added, removed := diffClients(known, []xproto.Window{2, 5, 3, 4})

	if len(current) != 4 {
		t.Fatalf("expected 4 current clients, got %d", len(current))
	}
	if len(added) != 2 || added[0] != 5 || added[1] != 4 {
		t.Fatalf("added = %v, want [5 4]", added)
	}
	if len(removed) != 1 || removed[0] != 1 {
		t.Fatalf("removed = %v, want [1]", removed)
	}
}

func TestDiffClients_SeedFromNil(t *testing.T) {
	current, added, removed := diffClients(nil, []xproto.Window{9, 8})
	if len(current) != 2 {
		t.Fatalf("expected 2 current clients, got %d", len(current))
	}
	if len(removed) != 0 {
		t.Fatalf("expected nothing removed, got %v", removed)
	}
	sort.Slice(added, func(i, j int) bool { return added[i] < added[j] })
	if len(added) != 2 || added[0] != 8 || added[1] != 9 {
		t.Fatalf("added = %v, want [8 9]", added)
	}
}

func TestDiffClients_Unchanged(t *testing.T) {
	known := map[xproto.Window]struct{}{1: {}, 2: {}}
	_, added, removed := diffClients(known, []xproto.Window{2, 1})
	if len(added) != 0 || len(removed) != 0 {
		t.Fatalf("expected no changes, got added=%v removed=%v", added, removed)
	}
}

func TestRootWatcher_ApplyClientsFiresCallbacks(t *testing.T) {
	w := &RootWatcher{known: map[xproto.Window]struct{}{1: {}, 2: {}}}

	var added, removed []xproto.Window
	w.OnAdded(func(win xproto.Window) { added = append(added, win) })
	w.OnRemoved(func(win xproto.Window) { removed = append(removed, win) })

	w.applyClients([]xproto.Window{2, 7})

	if len(added) != 1 || added[0] != 7 {
		t.Fatalf("added = %v, want [7]", added)
	}
	if len(removed) != 1 || removed[0] != 1 {
		t.Fatalf("removed = %v, want [1]", removed)
	}

	w.applyClients([]xproto.Window{2, 7})
	if len(added) != 1 || len(removed) != 1 {
		t.Fatalf("unchanged list fired callbacks: added=%v removed=%v", added, removed)
	}
}

func TestRootWatcher_NotifyActivated(t *testing.T) {
	w := &RootWatcher{}
	var got []xproto.Window
	w.OnActivated(func(win xproto.Window) { got = append(got, win) })
	w.OnActivated(func(win xproto.Window) { got = append(got, win+100) })

	w.notifyActivated(4)

	if len(got) != 2 || got[0] != 4 || got[1] != 104 {
		t.Fatalf("activated calls = %v, want [4 104]", got)
	}
}
