package splitscreen

import (
	"testing"

	"github.com/1broseidon/splitscreen/internal/platform"
)

func TestIsTarget(t *testing.T) {
	tests := []struct {
		class string
		want  bool
	}{
		{"gamescope", true},
		{"gamescope-kbm", true},
		{"Gamescope", false},
		{"gamescope-", false},
		{"steam", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsTarget(tt.class); got != tt.want {
			t.Errorf("IsTarget(%q) = %v, want %v", tt.class, got, tt.want)
		}
	}
}

func TestFilterTargets_PreservesOrder(t *testing.T) {
	windows := []platform.Window{
		gamescope(3, "DP-1"),
		other(1, "firefox", "DP-1"),
		{ID: 7, Class: ClassGamescopeKBM, Output: "DP-2"},
		gamescope(2, "DP-1"),
	}

	got := FilterTargets(windows)
	want := []platform.WindowID{3, 7, 2}
	if len(got) != len(want) {
		t.Fatalf("expected %d targets, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("target %d = %d, want %d", i, got[i].ID, id)
		}
	}
}

func TestCountOnOutput(t *testing.T) {
	targets := []platform.Window{
		gamescope(1, "DP-1"),
		gamescope(2, "DP-2"),
		gamescope(3, "DP-1"),
	}
	if got := CountOnOutput(targets, "DP-1"); got != 2 {
		t.Fatalf("DP-1 count = %d, want 2", got)
	}
	if got := CountOnOutput(targets, "DP-2"); got != 1 {
		t.Fatalf("DP-2 count = %d, want 1", got)
	}
	if got := CountOnOutput(targets, "HDMI-1"); got != 0 {
		t.Fatalf("HDMI-1 count = %d, want 0", got)
	}
}
