package perch

// Offsets are the measured and computed boxes of a pass.
type Offsets struct {
	// Reference is the reference's box in viewport coordinates.
	Reference Rect `json:"reference"`

	// Popper is where the popper will be placed.
	Popper Rect `json:"popper"`

	// Arrow is the arrow's position relative to the popper, when an arrow
	// element is configured.
	Arrow *Point `json:"arrow,omitempty"`
}

// Data is the positioning record threaded through one pass. A new Data is
// measured for every pass and must not be retained by modifiers.
type Data struct {
	// Instance is the Popper running the pass.
	Instance *Popper `json:"-"`

	// Placement is the current placement; modifiers such as flip change it.
	Placement Placement `json:"placement"`

	// OriginalPlacement is the placement requested in the options.
	OriginalPlacement Placement `json:"originalPlacement"`

	// PositionFixed selects fixed rather than absolute positioning.
	PositionFixed bool `json:"positionFixed"`

	Offsets Offsets `json:"offsets"`

	// Boundaries is the box the popper should stay inside.
	Boundaries Rect `json:"boundaries"`

	Styles      map[string]string `json:"styles"`
	ArrowStyles map[string]string `json:"arrowStyles,omitempty"`
	Attributes  map[string]string `json:"attributes"`

	// Flipped is set when the flip modifier moved the popper to the opposite side.
	Flipped bool `json:"flipped"`

	// Hide is set when the reference is outside the boundaries.
	Hide bool `json:"hide"`
}

// newData returns an empty record for instance.
func newData(instance *Popper) *Data {
	return &Data{
		Instance:    instance,
		Styles:      map[string]string{},
		ArrowStyles: map[string]string{},
		Attributes:  map[string]string{},
	}
}

// Clone returns a deep copy of d.
func (d *Data) Clone() *Data {
	if d == nil {
		return nil
	}
	out := *d
	out.Styles = cloneStrings(d.Styles)
	out.ArrowStyles = cloneStrings(d.ArrowStyles)
	out.Attributes = cloneStrings(d.Attributes)
	if d.Offsets.Arrow != nil {
		a := *d.Offsets.Arrow
		out.Offsets.Arrow = &a
	}
	return &out
}

func cloneStrings(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
