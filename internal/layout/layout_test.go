package layout

import (
	"math"
	"testing"

	"github.com/1broseidon/splitscreen/internal/platform"
)

func TestSlots_FitInsideUnitSquare(t *testing.T) {
	for count := 1; count <= MaxPlayers; count++ {
		row := tableRow(count)
		if len(row) != count {
			t.Fatalf("count %d: expected %d slots, got %d", count, count, len(row))
		}
		for i, f := range row {
			if f.X < 0 || f.Y < 0 || f.X+f.Width > 1 || f.Y+f.Height > 1 {
				t.Fatalf("count %d slot %d escapes unit square: %+v", count, i, f)
			}
			if f.Width <= 0 || f.Height <= 0 {
				t.Fatalf("count %d slot %d is empty: %+v", count, i, f)
			}
		}
	}
}

func TestSlots_TileUnitSquare(t *testing.T) {
	for count := 1; count <= MaxPlayers; count++ {
		row := tableRow(count)

		var total float64
		for _, f := range row {
			total += area(f)
		}
		if math.Abs(total-1) > 1e-9 {
			t.Fatalf("count %d: area sum = %v, want 1", count, total)
		}

		for i := range row {
			for j := i + 1; j < len(row); j++ {
				if overlaps(row[i], row[j]) {
					t.Fatalf("count %d: slots %d and %d overlap: %+v %+v", count, i, j, row[i], row[j])
				}
			}
		}
	}
}

func TestSlot_KnownValues(t *testing.T) {
	tests := []struct {
		count, index int
		want         Fraction
	}{
		{1, 0, Fraction{0, 0, 1, 1}},
		{2, 0, Fraction{0, 0, 0.5, 1}},
		{2, 1, Fraction{0.5, 0, 0.5, 1}},
		{3, 0, Fraction{0, 0, 1, 0.5}},
		{3, 1, Fraction{0, 0.5, 0.5, 0.5}},
		{3, 2, Fraction{0.5, 0.5, 0.5, 0.5}},
		{4, 0, Fraction{0, 0, 0.5, 0.5}},
		{4, 1, Fraction{0.5, 0, 0.5, 0.5}},
		{4, 2, Fraction{0, 0.5, 0.5, 0.5}},
		{4, 3, Fraction{0.5, 0.5, 0.5, 0.5}},
	}
	for _, tt := range tests {
		got, ok := Slot(tt.count, tt.index)
		if !ok {
			t.Fatalf("Slot(%d, %d) not found", tt.count, tt.index)
		}
		if got != tt.want {
			t.Fatalf("Slot(%d, %d) = %+v, want %+v", tt.count, tt.index, got, tt.want)
		}
	}
}

func TestSlot_OutOfRange(t *testing.T) {
	tests := []struct {
		name         string
		count, index int
	}{
		{"empty group", 0, 0},
		{"five players", 5, 0},
		{"negative count", -1, 0},
		{"index past group", 2, 2},
		{"negative index", 3, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Slot(tt.count, tt.index); ok {
				t.Fatalf("Slot(%d, %d) should be out of range", tt.count, tt.index)
			}
		})
	}
	if tableRow(MaxPlayers+1) != nil {
		t.Fatalf("expected no row beyond MaxPlayers")
	}
}

func TestWithin_ScalesToOutputOrigin(t *testing.T) {
	out := platform.Rect{X: 1920, Y: 0, Width: 2560, Height: 1440}
	f, _ := Slot(4, 3)

	got := f.Within(out)
	want := platform.Rect{X: 1920 + 1280, Y: 720, Width: 1280, Height: 720}
	if got != want {
		t.Fatalf("Within = %+v, want %+v", got, want)
	}
}

func TestWithin_OddSizesStayGapFree(t *testing.T) {
	out := platform.Rect{X: 0, Y: 0, Width: 1921, Height: 1081}
	left, _ := Slot(2, 0)
	right, _ := Slot(2, 1)

	l := left.Within(out)
	r := right.Within(out)
	if l.X+l.Width != r.X {
		t.Fatalf("gap between halves: left ends %d, right starts %d", l.X+l.Width, r.X)
	}
	if l.Width+r.Width != out.Width {
		t.Fatalf("halves cover %d px, want %d", l.Width+r.Width, out.Width)
	}
	if l.Height != out.Height || r.Height != out.Height {
		t.Fatalf("expected full height, got %d and %d", l.Height, r.Height)
	}
}

func tableRow(count int) []Fraction {
	if !supported(count) {
		return nil
	}
	return table[count]
}

func area(f Fraction) float64 {
	return f.Width * f.Height
}

// overlaps reports whether two fractions share any interior area.
func overlaps(a, b Fraction) bool {
	return a.X < b.X+b.Width && b.X < a.X+a.Width &&
		a.Y < b.Y+b.Height && b.Y < a.Y+a.Height
}
