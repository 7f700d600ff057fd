package splitscreen

import "github.com/1broseidon/splitscreen/internal/platform"

// Resource classes gamescope sets on its nested compositor windows. The -kbm
// variant is used when keyboard and mouse input is passed through.
const (
	ClassGamescope    = "gamescope"
	ClassGamescopeKBM = "gamescope-kbm"
)

// IsTarget reports whether class marks a window for split-screen placement.
func IsTarget(class string) bool {
	return class == ClassGamescope || class == ClassGamescopeKBM
}

// FilterTargets returns the target windows in their original order.
func FilterTargets(windows []platform.Window) []platform.Window {
	var targets []platform.Window
	for _, w := range windows {
		if IsTarget(w.Class) {
			targets = append(targets, w)
		}
	}
	return targets
}

// CountOnOutput returns how many of targets are assigned to output.
func CountOnOutput(targets []platform.Window, output string) int {
	count := 0
	for _, w := range targets {
		if w.Output == output {
			count++
		}
	}
	return count
}
