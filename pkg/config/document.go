package config

import (
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/zoobzio/perch"
)

// validate is the shared validator instance.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("placement", func(fl validator.FieldLevel) bool { //nolint:errcheck // Tag name is constant
		return perch.Placement(fl.Field().String()).Valid()
	})
	return v
}

// Document is a placement file. Every field is optional; absent fields keep
// the defaults.
//
//	placement: top-start
//	modifiers:
//	  offset:
//	    settings:
//	      offset: 8
//	  flip:
//	    enabled: false
type Document struct {
	Placement       string `yaml:"placement" json:"placement" toml:"placement" validate:"omitempty,placement"`
	PositionFixed   *bool  `yaml:"positionFixed" json:"positionFixed" toml:"positionFixed"`
	EventsEnabled   *bool  `yaml:"eventsEnabled" json:"eventsEnabled" toml:"eventsEnabled"`
	RemoveOnDestroy *bool  `yaml:"removeOnDestroy" json:"removeOnDestroy" toml:"removeOnDestroy"`

	// Modifiers configures built-in modifiers by name.
	Modifiers map[string]ModifierDoc `yaml:"modifiers" json:"modifiers" toml:"modifiers" validate:"dive"`

	// Layout describes a scene to place, used by the command line tool.
	Layout *Layout `yaml:"layout" json:"layout" toml:"layout"`
}

// ModifierDoc overrides one built-in modifier.
type ModifierDoc struct {
	Enabled  *bool          `yaml:"enabled" json:"enabled" toml:"enabled"`
	Order    *int           `yaml:"order" json:"order" toml:"order" validate:"omitempty,min=0"`
	Settings map[string]any `yaml:"settings" json:"settings" toml:"settings"`
}

// Layout is a static scene: a viewport, a reference and a popper.
type Layout struct {
	Viewport  Box `yaml:"viewport" json:"viewport" toml:"viewport"`
	Reference Box `yaml:"reference" json:"reference" toml:"reference"`
	Popper    Box `yaml:"popper" json:"popper" toml:"popper"`
}

// Box is a rectangle in a Layout.
type Box struct {
	X      float64 `yaml:"x" json:"x" toml:"x"`
	Y      float64 `yaml:"y" json:"y" toml:"y"`
	Width  float64 `yaml:"width" json:"width" toml:"width" validate:"gte=0"`
	Height float64 `yaml:"height" json:"height" toml:"height" validate:"gte=0"`
}

// Rect converts b to a perch.Rect.
func (b Box) Rect() perch.Rect {
	return perch.Rect{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
}

// Decode unmarshals data with codec, or detects the format when codec is
// nil, and validates the result.
func Decode(data []byte, codec Codec) (Document, error) {
	if codec == nil {
		codec = detect(data)
	}
	var doc Document
	if err := codec.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("decode %s: %w", codec.ContentType(), err)
	}
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Validate checks field constraints and that every modifier named is built in.
func (d Document) Validate() error {
	if err := validate.Struct(d); err != nil {
		return err
	}
	defaults := perch.Defaults()
	for _, name := range d.modifierNames() {
		if _, ok := defaults.Modifier(name); !ok {
			return fmt.Errorf("unknown modifier %q", name)
		}
	}
	return nil
}

// Options converts d to Popper options. Modifier overrides are emitted in
// name order so equal documents produce equal options.
func (d Document) Options() []perch.Option {
	var opts []perch.Option
	if d.Placement != "" {
		opts = append(opts, perch.WithPlacement(perch.Placement(d.Placement)))
	}
	if d.PositionFixed != nil {
		opts = append(opts, perch.WithPositionFixed(*d.PositionFixed))
	}
	if d.EventsEnabled != nil {
		opts = append(opts, perch.WithEventsEnabled(*d.EventsEnabled))
	}
	if d.RemoveOnDestroy != nil {
		opts = append(opts, perch.WithRemoveOnDestroy(*d.RemoveOnDestroy))
	}
	for _, name := range d.modifierNames() {
		md := d.Modifiers[name]
		opts = append(opts, perch.WithModifier(name, perch.ModifierConfig{
			Order:    md.Order,
			Enabled:  md.Enabled,
			Settings: perch.Settings(md.Settings),
		}))
	}
	return opts
}

func (d Document) modifierNames() []string {
	names := make([]string, 0, len(d.Modifiers))
	for name := range d.Modifiers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
