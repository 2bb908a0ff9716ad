package perch

import (
	"errors"
	"testing"
)

func modifierData(placement Placement, ref, pop Rect) *Data {
	d := newData(nil)
	d.Placement = placement
	d.OriginalPlacement = placement
	d.Boundaries = Rect{Width: 1000, Height: 800}
	d.Offsets.Reference = ref
	d.Offsets.Popper = pop
	return d
}

func TestShift(t *testing.T) {
	ref := Rect{X: 100, Y: 100, Width: 50, Height: 20}
	pop := Rect{X: 85, Y: 70, Width: 80, Height: 30}

	tests := []struct {
		placement Placement
		wantX     float64
		wantY     float64
	}{
		{Top, 85, 70},
		{TopStart, 100, 70},
		{TopEnd, 70, 70},
		{RightStart, 85, 100},
		{RightEnd, 85, 90},
	}
	for _, tt := range tests {
		t.Run(string(tt.placement), func(t *testing.T) {
			d, err := shift(modifierData(tt.placement, ref, pop), &Modifier{})
			if err != nil {
				t.Fatalf("shift() error = %v", err)
			}
			if d.Offsets.Popper.X != tt.wantX || d.Offsets.Popper.Y != tt.wantY {
				t.Errorf("expected (%v, %v), got (%v, %v)", tt.wantX, tt.wantY, d.Offsets.Popper.X, d.Offsets.Popper.Y)
			}
		})
	}
}

func TestOffset_Numbers(t *testing.T) {
	d := modifierData(Left, Rect{}, Rect{X: 50, Y: 50, Width: 10, Height: 10})
	m := &Modifier{Settings: Settings{"offset": 10, "skid": -5}}

	d, err := offset(d, m)
	if err != nil {
		t.Fatalf("offset() error = %v", err)
	}
	if d.Offsets.Popper.X != 40 || d.Offsets.Popper.Y != 45 {
		t.Errorf("expected (40, 45), got (%v, %v)", d.Offsets.Popper.X, d.Offsets.Popper.Y)
	}
}

func TestOffset_Expressions(t *testing.T) {
	s := newScene(Rect{X: 100, Y: 100, Width: 50, Height: 20})

	p, err := s.newPopper(WithModifierSettings(ModifierOffset, Settings{
		"offset": "reference.height / 2",
		"skid":   "popper.width / 4",
	}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got := p.Data().Offsets.Popper
	if got.X != 105 || got.Y != 130 {
		t.Errorf("expected (105, 130), got (%v, %v)", got.X, got.Y)
	}
}

func TestOffset_InvalidExpression(t *testing.T) {
	s := newScene(Rect{X: 100, Y: 100, Width: 50, Height: 20})

	_, err := s.newPopper(WithModifierSettings(ModifierOffset, Settings{"offset": "reference.("}))

	var hookErr *HookError
	if !errors.As(err, &hookErr) || hookErr.Modifier != ModifierOffset {
		t.Fatalf("expected offset hook error, got %v", err)
	}
}

func TestOffset_UnsupportedType(t *testing.T) {
	d := modifierData(Bottom, Rect{}, Rect{})
	if _, err := offset(d, &Modifier{Settings: Settings{"offset": true}}); err == nil {
		t.Error("expected error for boolean offset")
	}
}

func TestOffset_MergeKeepsDefaults(t *testing.T) {
	s := newScene(Rect{X: 100, Y: 100, Width: 50, Height: 20})

	p, err := s.newPopper(WithModifierSettings(ModifierOffset, Settings{"offset": 10}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	opts := p.Options()
	m, ok := opts.Modifier(ModifierOffset)
	if !ok {
		t.Fatal("expected offset modifier")
	}
	if m.Settings["offset"] != 10 {
		t.Errorf("expected offset 10, got %v", m.Settings["offset"])
	}
	if m.Settings["skid"] != 0 {
		t.Errorf("expected default skid kept, got %v", m.Settings["skid"])
	}
	if m.Order != 200 || !m.Enabled || m.Fn == nil {
		t.Errorf("expected default order, enabled and fn kept, got %+v", m)
	}
	if y := p.Data().Offsets.Popper.Y; y != 130 {
		t.Errorf("expected popper Y 130, got %v", y)
	}
}

func TestPreventOverflow(t *testing.T) {
	d := modifierData(Bottom, Rect{}, Rect{X: -20, Y: 190, Width: 50, Height: 30})
	d.Boundaries = Rect{Width: 200, Height: 200}

	d, err := preventOverflow(d, &Modifier{Settings: Settings{"padding": 5}})
	if err != nil {
		t.Fatalf("preventOverflow() error = %v", err)
	}
	if d.Offsets.Popper.X != 5 || d.Offsets.Popper.Y != 165 {
		t.Errorf("expected (5, 165), got (%v, %v)", d.Offsets.Popper.X, d.Offsets.Popper.Y)
	}
}

func TestPreventOverflow_UnknownEdge(t *testing.T) {
	d := modifierData(Bottom, Rect{}, Rect{Width: 10, Height: 10})
	m := &Modifier{Settings: Settings{"priority": []any{"left", "middle"}}}

	if _, err := preventOverflow(d, m); err == nil {
		t.Error("expected error for unknown edge")
	}
}

func TestKeepTogether(t *testing.T) {
	d := modifierData(Bottom,
		Rect{X: 100, Y: 100, Width: 50, Height: 20},
		Rect{X: 300, Y: 120, Width: 80, Height: 30},
	)

	d, err := keepTogether(d, &Modifier{})
	if err != nil {
		t.Fatalf("keepTogether() error = %v", err)
	}
	if d.Offsets.Popper.X != 150 {
		t.Errorf("expected X 150, got %v", d.Offsets.Popper.X)
	}
}

func TestInner(t *testing.T) {
	d := modifierData(Bottom,
		Rect{X: 100, Y: 100, Width: 200, Height: 100},
		Rect{X: 160, Y: 200, Width: 80, Height: 30},
	)

	d, err := inner(d, &Modifier{})
	if err != nil {
		t.Fatalf("inner() error = %v", err)
	}
	if d.Offsets.Popper.Y != 170 {
		t.Errorf("expected Y 170, got %v", d.Offsets.Popper.Y)
	}
	if d.Placement != Top {
		t.Errorf("expected placement top, got %q", d.Placement)
	}
}

func TestArrow(t *testing.T) {
	s := newScene(Rect{X: 100, Y: 100, Width: 50, Height: 20})
	tip := newFake(Rect{Width: 10, Height: 10}, s.popper)

	p, err := s.newPopper(WithModifierSettings(ModifierArrow, Settings{"element": tip}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	a := p.Data().Offsets.Arrow
	if a == nil || a.X != 35 {
		t.Fatalf("expected arrow at X 35, got %+v", a)
	}
	if got := tip.styles["left"]; got != "35px" {
		t.Errorf("expected arrow left 35px, got %q", got)
	}
}

func TestFlip(t *testing.T) {
	s := newScene(Rect{X: 100, Y: 760, Width: 50, Height: 20})

	p, err := s.newPopper()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	data := p.Data()
	if data.Placement != Top || !data.Flipped {
		t.Fatalf("expected flip to top, got %q (flipped=%v)", data.Placement, data.Flipped)
	}
	if data.OriginalPlacement != Bottom {
		t.Errorf("expected original placement bottom, got %q", data.OriginalPlacement)
	}
	if data.Offsets.Popper.Y != 730 {
		t.Errorf("expected popper Y 730, got %v", data.Offsets.Popper.Y)
	}
	if got := s.popper.attrs[AttrPlacement]; got != "top" {
		t.Errorf("expected x-placement top, got %q", got)
	}
}

func TestFlip_Disabled(t *testing.T) {
	s := newScene(Rect{X: 100, Y: 760, Width: 50, Height: 20})

	p, err := s.newPopper(WithModifierEnabled(ModifierFlip, false))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	data := p.Data()
	if data.Placement != Bottom || data.Flipped {
		t.Errorf("expected bottom without flip, got %q", data.Placement)
	}
	if data.Offsets.Popper.Y != 765 {
		t.Errorf("expected popper held at Y 765, got %v", data.Offsets.Popper.Y)
	}
}

func TestHide(t *testing.T) {
	s := newScene(Rect{X: 2000, Y: 2000, Width: 50, Height: 20})

	p, err := s.newPopper()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if !p.Data().Hide {
		t.Error("expected hide when the reference is off screen")
	}
	if _, ok := s.popper.attrs[AttrOutOfBoundaries]; !ok {
		t.Error("expected x-out-of-boundaries attribute")
	}

	s.reference.rect = Rect{X: 100, Y: 100, Width: 50, Height: 20}
	if err := p.ForceUpdate(); err != nil {
		t.Fatalf("ForceUpdate() error = %v", err)
	}
	if p.Data().Hide {
		t.Error("expected reference visible again")
	}
	if _, ok := s.popper.attrs[AttrOutOfBoundaries]; ok {
		t.Error("expected x-out-of-boundaries removed")
	}
}

func TestComputeStyle_Rounds(t *testing.T) {
	d := modifierData(Bottom, Rect{}, Rect{X: 10.4, Y: 20.6})

	d, err := computeStyle(d, &Modifier{Settings: Settings{"gpuAcceleration": true}})
	if err != nil {
		t.Fatalf("computeStyle() error = %v", err)
	}
	if got := d.Styles["transform"]; got != "translate3d(10px, 21px, 0)" {
		t.Errorf("unexpected transform %q", got)
	}
	if d.Attributes[AttrPlacement] != "bottom" {
		t.Errorf("expected x-placement bottom, got %q", d.Attributes[AttrPlacement])
	}
}

func TestComputeStyle_WithoutGPU(t *testing.T) {
	s := newScene(Rect{X: 100, Y: 100, Width: 50, Height: 20})

	_, err := s.newPopper(
		WithPositionFixed(true),
		WithModifierSettings(ModifierComputeStyle, Settings{"gpuAcceleration": false}),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if got := s.popper.styles["position"]; got != "fixed" {
		t.Errorf("expected fixed position, got %q", got)
	}
	if s.popper.styles["top"] != "120px" || s.popper.styles["left"] != "85px" {
		t.Errorf("expected top 120px and left 85px, got %q and %q", s.popper.styles["top"], s.popper.styles["left"])
	}
	if _, ok := s.popper.styles["transform"]; ok {
		t.Error("expected no transform without gpu acceleration")
	}
}

func TestAutoPlacement(t *testing.T) {
	s := newScene(Rect{X: 100, Y: 10, Width: 50, Height: 20})

	p, err := s.newPopper(WithPlacement(AutoStart))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	data := p.Data()
	if data.Placement != BottomStart {
		t.Errorf("expected bottom-start, got %q", data.Placement)
	}
	if data.OriginalPlacement != AutoStart {
		t.Errorf("expected original auto-start, got %q", data.OriginalPlacement)
	}
}
