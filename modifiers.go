package perch

import (
	"fmt"
	"math"
)

// shift aligns the popper with the start or end edge of the reference when
// the placement has a variation.
func shift(data *Data, _ *Modifier) (*Data, error) {
	ref := data.Offsets.Reference
	pop := &data.Offsets.Popper

	v := data.Placement.Variation()
	switch {
	case v == "":
	case data.Placement.Vertical() && v == "start":
		pop.X = ref.Left()
	case data.Placement.Vertical() && v == "end":
		pop.X = ref.Right() - pop.Width
	case v == "start":
		pop.Y = ref.Top()
	case v == "end":
		pop.Y = ref.Bottom() - pop.Height
	}
	return data, nil
}

// preventOverflow keeps the popper inside the boundaries, checking edges in
// priority order. Later edges win when the popper cannot fit.
func preventOverflow(data *Data, m *Modifier) (*Data, error) {
	bounds := data.Boundaries.Inset(m.Settings.Float("padding", 5))
	pop := &data.Offsets.Popper

	for _, edge := range m.Settings.Strings("priority", []string{"left", "right", "top", "bottom"}) {
		switch edge {
		case "left":
			pop.X = math.Max(pop.X, bounds.Left())
		case "right":
			pop.X = math.Min(pop.X, bounds.Right()-pop.Width)
		case "top":
			pop.Y = math.Max(pop.Y, bounds.Top())
		case "bottom":
			pop.Y = math.Min(pop.Y, bounds.Bottom()-pop.Height)
		default:
			return nil, fmt.Errorf("unknown priority edge %q", edge)
		}
	}
	return data, nil
}

// keepTogether stops the popper drifting off the reference along the
// cross axis.
func keepTogether(data *Data, _ *Modifier) (*Data, error) {
	ref := data.Offsets.Reference
	pop := &data.Offsets.Popper

	if data.Placement.Vertical() {
		if pop.Right() < ref.Left() {
			pop.X = ref.Left() - pop.Width
		}
		if pop.Left() > ref.Right() {
			pop.X = ref.Right()
		}
		return data, nil
	}
	if pop.Bottom() < ref.Top() {
		pop.Y = ref.Top() - pop.Height
	}
	if pop.Top() > ref.Bottom() {
		pop.Y = ref.Bottom()
	}
	return data, nil
}

// arrow points an arrow element at the reference's center, clamped to the
// popper's edge.
func arrow(data *Data, m *Modifier) (*Data, error) {
	el, ok := m.Settings["element"].(Element)
	if !ok || el == nil {
		return data, nil
	}

	size := el.Bounds()
	ref := data.Offsets.Reference
	pop := data.Offsets.Popper
	center := ref.Center()

	var at Point
	if data.Placement.Vertical() {
		at.X = clamp(center.X-pop.X-size.Width/2, 0, pop.Width-size.Width)
	} else {
		at.Y = clamp(center.Y-pop.Y-size.Height/2, 0, pop.Height-size.Height)
	}
	data.Offsets.Arrow = &at
	return data, nil
}

// inner moves the popper inside the reference, against the edge named by
// the placement.
func inner(data *Data, _ *Modifier) (*Data, error) {
	ref := data.Offsets.Reference
	pop := &data.Offsets.Popper

	switch data.Placement.Side() {
	case Top:
		pop.Y = ref.Top()
	case Bottom:
		pop.Y = ref.Bottom() - pop.Height
	case Left:
		pop.X = ref.Left()
	case Right:
		pop.X = ref.Right() - pop.Width
	}
	data.Placement = data.Placement.Opposite()
	return data, nil
}

// hide flags the pass when the reference has left the boundaries.
func hide(data *Data, _ *Modifier) (*Data, error) {
	if data.Offsets.Reference.Intersects(data.Boundaries) {
		data.Hide = false
		delete(data.Attributes, AttrOutOfBoundaries)
		return data, nil
	}
	data.Hide = true
	data.Attributes[AttrOutOfBoundaries] = ""
	return data, nil
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return math.Min(math.Max(v, lo), hi)
}
