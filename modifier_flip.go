package perch

// flip moves the popper to the opposite side when, after the earlier
// modifiers ran, it overlaps the reference on its own side and the opposite
// side has room. The modifiers ordered before flip are then re-run for the
// new placement.
func flip(data *Data, m *Modifier) (*Data, error) {
	if data.Flipped || data.Instance == nil {
		return data, nil
	}

	ref := data.Offsets.Reference
	pop := data.Offsets.Popper
	if !overlapsReference(data.Placement, pop, ref) {
		return data, nil
	}

	opposite := data.Placement.Opposite()
	candidate := popperOffsets(pop, ref, opposite)
	if !fitsMainAxis(opposite, candidate, data.Boundaries.Inset(m.Settings.Float("padding", 5))) {
		return data, nil
	}

	data.Placement = opposite
	data.Flipped = true
	data.Offsets.Popper = candidate
	return data.Instance.RunModifiers(data, m.Name)
}

// overlapsReference reports whether pop has been pushed over the reference
// edge it is meant to sit against.
func overlapsReference(placement Placement, pop, ref Rect) bool {
	switch placement.Side() {
	case Top:
		return pop.Bottom() > ref.Top()
	case Bottom:
		return pop.Top() < ref.Bottom()
	case Left:
		return pop.Right() > ref.Left()
	case Right:
		return pop.Left() < ref.Right()
	}
	return false
}

// fitsMainAxis reports whether pop stays inside bounds on the edge facing
// away from the reference.
func fitsMainAxis(placement Placement, pop, bounds Rect) bool {
	switch placement.Side() {
	case Top:
		return pop.Top() >= bounds.Top()
	case Bottom:
		return pop.Bottom() <= bounds.Bottom()
	case Left:
		return pop.Left() >= bounds.Left()
	case Right:
		return pop.Right() <= bounds.Right()
	}
	return false
}
