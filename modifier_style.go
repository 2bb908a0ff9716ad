package perch

import (
	"math"
	"strconv"
)

// Attributes written to the popper element.
const (
	AttrPlacement       = "x-placement"
	AttrOutOfBoundaries = "x-out-of-boundaries"
)

// positionStyles are the style properties computeStyle may produce.
var positionStyles = []string{"position", "top", "left", "transform", "will-change"}

// computeStyle turns the popper offsets into style properties and records the
// final placement as an attribute. Nothing is written to the element here.
func computeStyle(data *Data, m *Modifier) (*Data, error) {
	pop := data.Offsets.Popper
	x := math.Round(pop.X)
	y := math.Round(pop.Y)

	position := "absolute"
	if data.PositionFixed {
		position = "fixed"
	}
	data.Styles["position"] = position

	if m.Settings.Bool("gpuAcceleration", true) {
		data.Styles["transform"] = "translate3d(" + px(x) + ", " + px(y) + ", 0)"
		data.Styles["top"] = "0"
		data.Styles["left"] = "0"
		data.Styles["will-change"] = "transform"
	} else {
		data.Styles["top"] = px(y)
		data.Styles["left"] = px(x)
	}

	data.Attributes[AttrPlacement] = string(data.Placement)

	if a := data.Offsets.Arrow; a != nil {
		if a.X != 0 || data.Placement.Vertical() {
			data.ArrowStyles["left"] = px(math.Round(a.X))
		}
		if a.Y != 0 || !data.Placement.Vertical() {
			data.ArrowStyles["top"] = px(math.Round(a.Y))
		}
	}
	return data, nil
}

// applyStyle writes the computed styles and attributes to the popper, and
// the arrow styles to the arrow element, when they accept them.
func applyStyle(data *Data, _ *Modifier) (*Data, error) {
	if data.Instance == nil {
		return data, nil
	}

	if s, ok := data.Instance.popper.(Styler); ok {
		for name, value := range data.Styles {
			s.SetStyle(name, value)
		}
		for _, name := range []string{AttrPlacement, AttrOutOfBoundaries} {
			if value, ok := data.Attributes[name]; ok {
				s.SetAttribute(name, value)
			} else {
				s.RemoveAttribute(name)
			}
		}
		for name, value := range data.Attributes {
			if name != AttrPlacement && name != AttrOutOfBoundaries {
				s.SetAttribute(name, value)
			}
		}
	}

	if len(data.ArrowStyles) > 0 {
		if s, ok := data.Instance.arrowElement().(Styler); ok {
			for name, value := range data.ArrowStyles {
				s.SetStyle(name, value)
			}
		}
	}
	return data, nil
}

// applyStyleOnLoad stamps the position mode and the initial placement on the
// popper so it can be laid out before the first pass.
func applyStyleOnLoad(reference, popper Element, opts *Options, _ *Modifier, _ *State) error {
	s, ok := popper.(Styler)
	if !ok {
		return nil
	}

	placement := opts.Placement
	if placement.IsAuto() {
		boundaries := Unbounded
		if vp := viewportOf(reference); vp != nil {
			boundaries = vp.Bounds()
		}
		placement = autoPlacement(placement, reference.Bounds(), popper.Bounds(), boundaries)
	}

	position := "absolute"
	if opts.PositionFixed {
		position = "fixed"
	}
	s.SetStyle("position", position)
	s.SetAttribute(AttrPlacement, string(placement))
	return nil
}

// applyStyleOnDestroy clears what applyStyle wrote.
func applyStyleOnDestroy(p *Popper) error {
	s, ok := p.popper.(Styler)
	if !ok {
		return nil
	}
	for _, name := range positionStyles {
		s.RemoveStyle(name)
	}
	s.RemoveAttribute(AttrPlacement)
	s.RemoveAttribute(AttrOutOfBoundaries)
	return nil
}

// arrowElement returns the element configured on the arrow modifier, or nil.
func (p *Popper) arrowElement() Element {
	for _, m := range p.modifiers {
		if m.Name != ModifierArrow || !m.Enabled {
			continue
		}
		el, _ := m.Settings["element"].(Element)
		return el
	}
	return nil
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
