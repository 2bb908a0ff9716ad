package perch

import "strings"

// Placement names where the popper sits relative to the reference: a side,
// optionally followed by a "-start" or "-end" variation.
type Placement string

// Placement values.
const (
	AutoStart   Placement = "auto-start"
	Auto        Placement = "auto"
	AutoEnd     Placement = "auto-end"
	TopStart    Placement = "top-start"
	Top         Placement = "top"
	TopEnd      Placement = "top-end"
	RightStart  Placement = "right-start"
	Right       Placement = "right"
	RightEnd    Placement = "right-end"
	BottomEnd   Placement = "bottom-end"
	Bottom      Placement = "bottom"
	BottomStart Placement = "bottom-start"
	LeftEnd     Placement = "left-end"
	Left        Placement = "left"
	LeftStart   Placement = "left-start"
)

// placements lists every placement clockwise, starting from auto.
var placements = []Placement{
	AutoStart, Auto, AutoEnd,
	TopStart, Top, TopEnd,
	RightStart, Right, RightEnd,
	BottomEnd, Bottom, BottomStart,
	LeftEnd, Left, LeftStart,
}

// Placements returns every supported placement in clockwise order.
// The returned slice is a copy.
func Placements() []Placement {
	out := make([]Placement, len(placements))
	copy(out, placements)
	return out
}

// Side returns the base placement without its variation ("top" for "top-end").
func (p Placement) Side() Placement {
	side, _, _ := strings.Cut(string(p), "-")
	return Placement(side)
}

// Variation returns "start", "end" or "".
func (p Placement) Variation() string {
	_, v, _ := strings.Cut(string(p), "-")
	return v
}

// Opposite mirrors the side and keeps the variation.
func (p Placement) Opposite() Placement {
	var side Placement
	switch p.Side() {
	case Top:
		side = Bottom
	case Bottom:
		side = Top
	case Left:
		side = Right
	case Right:
		side = Left
	default:
		return p
	}
	if v := p.Variation(); v != "" {
		return Placement(string(side) + "-" + v)
	}
	return side
}

// Vertical reports whether the popper sits above or below the reference.
func (p Placement) Vertical() bool {
	s := p.Side()
	return s == Top || s == Bottom
}

// IsAuto reports whether the side must be resolved at measure time.
func (p Placement) IsAuto() bool {
	return p.Side() == Auto
}

// Valid reports whether p is one of the supported placements.
func (p Placement) Valid() bool {
	for _, known := range placements {
		if p == known {
			return true
		}
	}
	return false
}

// withSide swaps the side while keeping the variation.
func (p Placement) withSide(side Placement) Placement {
	if v := p.Variation(); v != "" {
		return Placement(string(side) + "-" + v)
	}
	return side
}
