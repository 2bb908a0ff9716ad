package perch

// measure seeds a fresh Data from the current geometry of the elements.
func (p *Popper) measure() *Data {
	data := newData(p)

	reference := p.reference.Bounds()
	popper := p.popper.Bounds()
	boundaries := p.boundaries()

	placement := p.options.Placement
	if placement.IsAuto() {
		placement = autoPlacement(placement, reference, popper, boundaries)
	}

	data.OriginalPlacement = p.options.Placement
	data.Placement = placement
	data.PositionFixed = p.options.PositionFixed
	data.Boundaries = boundaries
	data.Offsets.Reference = reference
	data.Offsets.Popper = popperOffsets(popper, reference, placement)

	return data
}

// boundaries returns the viewport bounds, or Unbounded without a viewport.
func (p *Popper) boundaries() Rect {
	if p.viewport == nil {
		return Unbounded
	}
	return p.viewport.Bounds()
}

// popperOffsets places a box of popper's size against the side of reference
// named by placement, centered on the cross axis.
func popperOffsets(popper, reference Rect, placement Placement) Rect {
	out := Rect{Width: popper.Width, Height: popper.Height}

	switch placement.Side() {
	case Top:
		out.X = reference.X + reference.Width/2 - popper.Width/2
		out.Y = reference.Y - popper.Height
	case Left:
		out.X = reference.X - popper.Width
		out.Y = reference.Y + reference.Height/2 - popper.Height/2
	case Right:
		out.X = reference.Right()
		out.Y = reference.Y + reference.Height/2 - popper.Height/2
	default:
		out.X = reference.X + reference.Width/2 - popper.Width/2
		out.Y = reference.Bottom()
	}
	return out
}

// autoPlacement picks the side with the most room that fits the popper,
// keeping the requested variation. Sides are tried clockwise from the top.
func autoPlacement(requested Placement, reference, popper, boundaries Rect) Placement {
	type side struct {
		placement Placement
		width     float64
		height    float64
	}
	sides := []side{
		{Top, boundaries.Width, reference.Top() - boundaries.Top()},
		{Right, boundaries.Right() - reference.Right(), boundaries.Height},
		{Bottom, boundaries.Width, boundaries.Bottom() - reference.Bottom()},
		{Left, reference.Left() - boundaries.Left(), boundaries.Height},
	}

	best := -1
	bestArea := -1.0
	fallback := 0
	fallbackArea := -1.0
	for i, s := range sides {
		area := s.width * s.height
		if area > fallbackArea {
			fallback, fallbackArea = i, area
		}
		if s.width >= popper.Width && s.height >= popper.Height && area > bestArea {
			best, bestArea = i, area
		}
	}
	if best < 0 {
		best = fallback
	}
	return requested.withSide(sides[best].placement)
}
