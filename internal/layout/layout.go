package layout

import (
	"math"

	"github.com/1broseidon/splitscreen/internal/platform"
)

// MaxPlayers is the largest group size the split table covers.
const MaxPlayers = 4

// Fraction is a rectangle expressed as fractions of an output's bounds.
type Fraction struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// table is indexed by [player count][player index].
//
//	1: full screen
//	2: left / right halves
//	3: top half, bottom-left, bottom-right
//	4: quadrants, row major
var table = [MaxPlayers + 1][]Fraction{
	{},
	{
		{X: 0, Y: 0, Width: 1, Height: 1},
	},
	{
		{X: 0, Y: 0, Width: 0.5, Height: 1},
		{X: 0.5, Y: 0, Width: 0.5, Height: 1},
	},
	{
		{X: 0, Y: 0, Width: 1, Height: 0.5},
		{X: 0, Y: 0.5, Width: 0.5, Height: 0.5},
		{X: 0.5, Y: 0.5, Width: 0.5, Height: 0.5},
	},
	{
		{X: 0, Y: 0, Width: 0.5, Height: 0.5},
		{X: 0.5, Y: 0, Width: 0.5, Height: 0.5},
		{X: 0, Y: 0.5, Width: 0.5, Height: 0.5},
		{X: 0.5, Y: 0.5, Width: 0.5, Height: 0.5},
	},
}

// supported reports whether a group of count windows has a table row.
func supported(count int) bool {
	return count >= 0 && count <= MaxPlayers
}

// Slot returns the normalized rectangle for player index within a group of
// count windows. ok is false when either value falls outside the table.
func Slot(count, index int) (Fraction, bool) {
	if !supported(count) || index < 0 || index >= len(table[count]) {
		return Fraction{}, false
	}
	return table[count][index], true
}

// Within converts f into absolute coordinates inside bounds. Edges are
// computed first and sizes derived from them so neighbouring slots share an
// edge even when bounds has an odd width or height.
func (f Fraction) Within(bounds platform.Rect) platform.Rect {
	x1 := bounds.X + scale(f.X, bounds.Width)
	y1 := bounds.Y + scale(f.Y, bounds.Height)
	x2 := bounds.X + scale(f.X+f.Width, bounds.Width)
	y2 := bounds.Y + scale(f.Y+f.Height, bounds.Height)

	return platform.Rect{
		X:      x1,
		Y:      y1,
		Width:  x2 - x1,
		Height: y2 - y1,
	}
}

func scale(frac float64, size int) int {
	return int(math.Floor(frac * float64(size)))
}
