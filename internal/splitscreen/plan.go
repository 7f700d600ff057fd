package splitscreen

import (
	"github.com/1broseidon/splitscreen/internal/layout"
	"github.com/1broseidon/splitscreen/internal/platform"
)

// SkipReason explains why a target window received no placement.
type SkipReason string

const (
	SkipNoOutput         SkipReason = "no-output"
	SkipUnknownOutput    SkipReason = "unknown-output"
	SkipUnsupportedCount SkipReason = "unsupported-count"
)

// Placement is the geometry one target window should receive.
type Placement struct {
	Window platform.WindowID
	Class  string
	Output string
	Count  int // target windows sharing Output
	Index  int // 0-based ordinal within Output, in enumeration order
	Bounds platform.Rect
}

// Skip records a target window left untouched by a pass.
type Skip struct {
	Window platform.WindowID
	Output string
	Reason SkipReason
}

// Plan maps the current windows and outputs to split-screen placements.
//
// Ordinals follow the order of windows, per output. Groups larger than
// layout.MaxPlayers have no table row; every window in such a group is
// skipped so its geometry stays as it is.
func Plan(windows []platform.Window, outputs []platform.Output) ([]Placement, []Skip) {
	targets := FilterTargets(windows)
	if len(targets) == 0 {
		return nil, nil
	}

	byName := make(map[string]platform.Output, len(outputs))
	placed := make(map[string]int, len(outputs))
	for _, o := range outputs {
		byName[o.Name] = o
		placed[o.Name] = 0
	}

	var placements []Placement
	var skipped []Skip
	for _, w := range targets {
		if w.Output == "" {
			skipped = append(skipped, Skip{Window: w.ID, Reason: SkipNoOutput})
			continue
		}
		out, ok := byName[w.Output]
		if !ok {
			skipped = append(skipped, Skip{Window: w.ID, Output: w.Output, Reason: SkipUnknownOutput})
			continue
		}

		count := CountOnOutput(targets, out.Name)
		index := placed[out.Name]
		placed[out.Name] = index + 1

		slot, ok := layout.Slot(count, index)
		if !ok {
			skipped = append(skipped, Skip{Window: w.ID, Output: out.Name, Reason: SkipUnsupportedCount})
			continue
		}

		placements = append(placements, Placement{
			Window: w.ID,
			Class:  w.Class,
			Output: out.Name,
			Count:  count,
			Index:  index,
			Bounds: slot.Within(out.Bounds),
		})
	}

	return placements, skipped
}
