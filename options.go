package perch

import (
	"github.com/zoobzio/clockz"
)

// Options is a complete configuration, the result of merging a Config over
// the defaults.
type Options struct {
	// Placement is the requested placement.
	Placement Placement

	// PositionFixed selects fixed rather than absolute positioning.
	PositionFixed bool

	// EventsEnabled attaches scroll and resize listeners at construction.
	EventsEnabled bool

	// RemoveOnDestroy detaches the popper element when the Popper is destroyed.
	RemoveOnDestroy bool

	// OnCreate is called with the data of the first successful pass.
	OnCreate func(*Data)

	// OnUpdate is called with the data of every later successful pass.
	OnUpdate func(*Data)

	// Modifiers holds every modifier in merge order: defaults first, then
	// modifiers only the caller named.
	Modifiers []Modifier
}

// Modifier returns the named modifier.
func (o *Options) Modifier(name string) (*Modifier, bool) {
	for i := range o.Modifiers {
		if o.Modifiers[i].Name == name {
			return &o.Modifiers[i], true
		}
	}
	return nil, false
}

// clone returns a copy that shares nothing mutable with o.
func (o Options) clone() Options {
	mods := make([]Modifier, len(o.Modifiers))
	for i, m := range o.Modifiers {
		mods[i] = m.clone()
	}
	o.Modifiers = mods
	return o
}

// Scheduler runs deferred work. *loop.Loop satisfies it.
type Scheduler interface {
	// Post runs fn on the next turn.
	Post(fn func())

	// RequestFrame runs fn at the next rendering opportunity.
	RequestFrame(fn func())
}

// Config is the caller's partial configuration. Zero fields keep defaults.
type Config struct {
	Placement       Placement
	PositionFixed   *bool
	EventsEnabled   *bool
	RemoveOnDestroy *bool
	OnCreate        func(*Data)
	OnUpdate        func(*Data)

	// Modifiers are overrides in the order given. Entries naming a default
	// modifier patch it; other names add custom modifiers.
	Modifiers []ModifierConfig

	// Instance wiring, not part of the merged Options.
	Scheduler        Scheduler
	Viewport         Viewport
	Clock            clockz.Clock
	Metrics          MetricsProvider
	ErrorHistorySize int
}

// Option configures a Popper.
type Option func(*Config)

// WithPlacement sets the requested placement.
func WithPlacement(p Placement) Option {
	return func(c *Config) {
		c.Placement = p
	}
}

// WithPositionFixed selects fixed positioning.
func WithPositionFixed(fixed bool) Option {
	return func(c *Config) {
		c.PositionFixed = &fixed
	}
}

// WithEventsEnabled controls whether listeners are attached at construction.
func WithEventsEnabled(enabled bool) Option {
	return func(c *Config) {
		c.EventsEnabled = &enabled
	}
}

// WithRemoveOnDestroy detaches the popper element on Destroy.
func WithRemoveOnDestroy(remove bool) Option {
	return func(c *Config) {
		c.RemoveOnDestroy = &remove
	}
}

// WithOnCreate sets the callback for the first successful pass.
func WithOnCreate(fn func(*Data)) Option {
	return func(c *Config) {
		c.OnCreate = fn
	}
}

// WithOnUpdate sets the callback for later successful passes.
func WithOnUpdate(fn func(*Data)) Option {
	return func(c *Config) {
		c.OnUpdate = fn
	}
}

// WithModifier adds an override for the named modifier. Repeated overrides
// for the same name merge, later ones winning.
func WithModifier(name string, mc ModifierConfig) Option {
	return func(c *Config) {
		mc.Name = name
		c.Modifiers = append(c.Modifiers, mc)
	}
}

// WithModifierSettings patches settings of the named modifier.
func WithModifierSettings(name string, s Settings) Option {
	return WithModifier(name, ModifierConfig{Settings: s})
}

// WithModifierEnabled turns the named modifier on or off.
func WithModifierEnabled(name string, enabled bool) Option {
	return WithModifier(name, ModifierConfig{Enabled: &enabled})
}

// WithScheduler sets the scheduler that runs debounced and frame updates.
func WithScheduler(s Scheduler) Option {
	return func(c *Config) {
		c.Scheduler = s
	}
}

// WithViewport sets the viewport instead of discovering it from the
// reference's ancestors.
func WithViewport(v Viewport) Option {
	return func(c *Config) {
		c.Viewport = v
	}
}

// WithClock sets the clock used to time passes and stamp failures.
// Use this with clockz.FakeClock for deterministic tests.
func WithClock(clock clockz.Clock) Option {
	return func(c *Config) {
		c.Clock = clock
	}
}

// WithMetrics sets a metrics provider.
func WithMetrics(m MetricsProvider) Option {
	return func(c *Config) {
		c.Metrics = m
	}
}

// WithErrorHistory retains the last n update failures for ErrorHistory.
func WithErrorHistory(n int) Option {
	return func(c *Config) {
		c.ErrorHistorySize = n
	}
}

// NewConfig applies opts to an empty Config.
func NewConfig(opts ...Option) Config {
	var c Config
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}

// Merge overlays cfg onto defaults and returns a new Options.
//
// Top-level fields set in cfg win. Every default modifier is kept; a
// ModifierConfig with the same name overrides it field by field and its
// Settings key by key. Names the defaults do not know are appended in the
// order cfg lists them. defaults is not modified.
func Merge(defaults Options, cfg Config) Options {
	out := defaults.clone()

	if cfg.Placement != "" {
		out.Placement = cfg.Placement
	}
	if cfg.PositionFixed != nil {
		out.PositionFixed = *cfg.PositionFixed
	}
	if cfg.EventsEnabled != nil {
		out.EventsEnabled = *cfg.EventsEnabled
	}
	if cfg.RemoveOnDestroy != nil {
		out.RemoveOnDestroy = *cfg.RemoveOnDestroy
	}
	if cfg.OnCreate != nil {
		out.OnCreate = cfg.OnCreate
	}
	if cfg.OnUpdate != nil {
		out.OnUpdate = cfg.OnUpdate
	}

	// Collapse repeated overrides, keeping first-seen order.
	var names []string
	overrides := make(map[string]ModifierConfig, len(cfg.Modifiers))
	for _, mc := range cfg.Modifiers {
		prev, seen := overrides[mc.Name]
		if !seen {
			names = append(names, mc.Name)
			overrides[mc.Name] = mc
			continue
		}
		overrides[mc.Name] = prev.merge(mc)
	}

	for _, name := range names {
		mc := overrides[name]
		if m, ok := out.Modifier(name); ok {
			*m = mc.apply(*m)
			continue
		}
		out.Modifiers = append(out.Modifiers, mc.apply(Modifier{Name: name, Enabled: true}))
	}

	return out
}
