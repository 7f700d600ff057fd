package hotkeys

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

func TestIgnoreMasks(t *testing.T) {
	caps := uint16(xproto.ModMaskLock)
	num := uint16(xproto.ModMask2)
	scroll := uint16(xproto.ModMask5)

	tests := []struct {
		name       string
		num        uint16
		scroll     uint16
		wantLength int
		mustHave   []uint16
	}{
		{"caps only", 0, 0, 2, []uint16{0, caps}},
		{"caps and numlock", num, 0, 4, []uint16{0, caps, num, caps | num}},
		{"all three", num, scroll, 8, []uint16{0, caps | num | scroll, num | scroll}},
		{"numlock aliases caps", caps, 0, 2, []uint16{0, caps}},
		{"scroll aliases numlock", num, num, 4, []uint16{caps | num}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ignoreMasks(tt.num, tt.scroll)
			if len(got) != tt.wantLength {
				t.Fatalf("ignoreMasks() = %v, want %d masks", got, tt.wantLength)
			}
			set := make(map[uint16]bool, len(got))
			for i, m := range got {
				if i > 0 && got[i-1] >= m {
					t.Fatalf("masks not sorted and unique: %v", got)
				}
				set[m] = true
			}
			for _, m := range tt.mustHave {
				if !set[m] {
					t.Fatalf("missing mask %#x in %v", m, got)
				}
			}
		})
	}
}

func TestRegisterFunc_WithoutConnection(t *testing.T) {
	h := &Handler{}
	if err := h.RegisterFunc("Mod4-g", func() {}); err == nil {
		t.Fatalf("expected error without X connection")
	}
}
