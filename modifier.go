package perch

import (
	"fmt"
	"strconv"
)

// OnLoadFunc runs once while a Popper is constructed, before the first pass.
// It may stamp initial presentation on the elements or record into state.
type OnLoadFunc func(reference, popper Element, opts *Options, m *Modifier, state *State) error

// ModifierFunc transforms the positioning data for one pass. Returning a nil
// *Data means data was changed in place. Returning ErrHalt ends the pass.
type ModifierFunc func(data *Data, m *Modifier) (*Data, error)

// OnDestroyFunc runs once when the Popper is destroyed so the modifier can
// undo what its OnLoad did.
type OnDestroyFunc func(p *Popper) error

// Modifier is one named, ordered step of the positioning pipeline.
// Absent hooks are nil; a modifier may carry only some of them.
type Modifier struct {
	Name    string
	Order   int
	Enabled bool

	OnLoad    OnLoadFunc
	Fn        ModifierFunc
	OnDestroy OnDestroyFunc

	// Settings holds modifier-specific configuration.
	Settings Settings
}

// clone copies m, including its settings map.
func (m Modifier) clone() Modifier {
	m.Settings = m.Settings.clone()
	return m
}

// ModifierConfig is a caller's partial override of a modifier. Unset fields
// keep the default's value; Settings merge key by key.
type ModifierConfig struct {
	Name    string
	Order   *int
	Enabled *bool

	OnLoad    OnLoadFunc
	Fn        ModifierFunc
	OnDestroy OnDestroyFunc

	Settings Settings
}

// apply overlays c onto m field by field.
func (c ModifierConfig) apply(m Modifier) Modifier {
	if c.Order != nil {
		m.Order = *c.Order
	}
	if c.Enabled != nil {
		m.Enabled = *c.Enabled
	}
	if c.OnLoad != nil {
		m.OnLoad = c.OnLoad
	}
	if c.Fn != nil {
		m.Fn = c.Fn
	}
	if c.OnDestroy != nil {
		m.OnDestroy = c.OnDestroy
	}
	if len(c.Settings) > 0 {
		merged := m.Settings.clone()
		if merged == nil {
			merged = Settings{}
		}
		for k, v := range c.Settings {
			merged[k] = cloneValue(v)
		}
		m.Settings = merged
	}
	return m
}

// merge folds a later override for the same name into c.
func (c ModifierConfig) merge(later ModifierConfig) ModifierConfig {
	if later.Order != nil {
		c.Order = later.Order
	}
	if later.Enabled != nil {
		c.Enabled = later.Enabled
	}
	if later.OnLoad != nil {
		c.OnLoad = later.OnLoad
	}
	if later.Fn != nil {
		c.Fn = later.Fn
	}
	if later.OnDestroy != nil {
		c.OnDestroy = later.OnDestroy
	}
	if len(later.Settings) > 0 {
		merged := c.Settings.clone()
		if merged == nil {
			merged = Settings{}
		}
		for k, v := range later.Settings {
			merged[k] = cloneValue(v)
		}
		c.Settings = merged
	}
	return c
}

// Settings is a modifier's own configuration.
type Settings map[string]any

func (s Settings) clone() Settings {
	if s == nil {
		return nil
	}
	out := make(Settings, len(s))
	for k, v := range s {
		out[k] = cloneValue(v)
	}
	return out
}

// cloneValue copies the containers a setting can hold. Other values,
// elements included, are kept as they are.
func cloneValue(v any) any {
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case Settings:
		return t.clone()
	}
	return v
}

// Float returns the numeric setting key, or def when it is missing or not a number.
func (s Settings) Float(key string, def float64) float64 {
	f, ok := toFloat(s[key])
	if !ok {
		return def
	}
	return f
}

// Bool returns the boolean setting key, or def.
func (s Settings) Bool(key string, def bool) bool {
	switch v := s[key].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// String returns the setting key formatted as a string, or def.
func (s Settings) String(key string, def string) string {
	v, ok := s[key]
	if !ok || v == nil {
		return def
	}
	if str, ok := v.(string); ok {
		return str
	}
	return fmt.Sprint(v)
}

// Strings returns a list setting, or def.
func (s Settings) Strings(key string, def []string) []string {
	switch v := s[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	}
	return def
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

// Ptr returns a pointer to v, for filling optional ModifierConfig fields.
func Ptr[T any](v T) *T {
	return &v
}
