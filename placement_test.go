package perch

import "testing"

func TestPlacements_Clockwise(t *testing.T) {
	got := Placements()
	if len(got) != 15 {
		t.Fatalf("expected 15 placements, got %d", len(got))
	}
	if got[0] != AutoStart || got[4] != Top || got[14] != LeftStart {
		t.Errorf("unexpected order %v", got)
	}

	got[0] = Top
	if Placements()[0] != AutoStart {
		t.Error("expected Placements to return a copy")
	}
}

func TestPlacement_Parts(t *testing.T) {
	tests := []struct {
		p         Placement
		side      Placement
		variation string
		opposite  Placement
		vertical  bool
	}{
		{Top, Top, "", Bottom, true},
		{TopStart, Top, "start", BottomStart, true},
		{RightEnd, Right, "end", LeftEnd, false},
		{BottomEnd, Bottom, "end", TopEnd, true},
		{LeftStart, Left, "start", RightStart, false},
		{Auto, Auto, "", Auto, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.p), func(t *testing.T) {
			if got := tt.p.Side(); got != tt.side {
				t.Errorf("Side() = %q, want %q", got, tt.side)
			}
			if got := tt.p.Variation(); got != tt.variation {
				t.Errorf("Variation() = %q, want %q", got, tt.variation)
			}
			if got := tt.p.Opposite(); got != tt.opposite {
				t.Errorf("Opposite() = %q, want %q", got, tt.opposite)
			}
			if got := tt.p.Vertical(); got != tt.vertical {
				t.Errorf("Vertical() = %v, want %v", got, tt.vertical)
			}
		})
	}
}

func TestPlacement_Valid(t *testing.T) {
	for _, p := range Placements() {
		if !p.Valid() {
			t.Errorf("expected %q valid", p)
		}
	}
	if Placement("middle").Valid() {
		t.Error("expected middle invalid")
	}
	if !AutoEnd.IsAuto() || Top.IsAuto() {
		t.Error("unexpected IsAuto")
	}
}
