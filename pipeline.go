package perch

import (
	"errors"
	"fmt"
	"sort"
)

// checkOrders returns ErrMissingOrder when cfg adds a modifier the defaults
// do not know without giving it an order.
func checkOrders(defaults Options, cfg Config) error {
	ordered := map[string]bool{}
	for _, m := range defaults.Modifiers {
		ordered[m.Name] = true
	}
	for _, mc := range cfg.Modifiers {
		if mc.Order != nil {
			ordered[mc.Name] = true
		}
	}
	for _, mc := range cfg.Modifiers {
		if !ordered[mc.Name] {
			return fmt.Errorf("%w: %s", ErrMissingOrder, mc.Name)
		}
	}
	return nil
}

// buildModifiers returns the modifiers sorted by ascending order. Equal
// orders keep merge order. No hook is called.
func buildModifiers(opts *Options) []*Modifier {
	out := make([]*Modifier, len(opts.Modifiers))
	for i := range opts.Modifiers {
		m := opts.Modifiers[i].clone()
		out[i] = &m
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

// loadModifiers calls OnLoad for every enabled modifier, stopping at the
// first error.
func loadModifiers(mods []*Modifier, reference, popper Element, opts *Options, state *State) error {
	for _, m := range mods {
		if !m.Enabled || m.OnLoad == nil {
			continue
		}
		if err := m.OnLoad(reference, popper, opts, m, state); err != nil {
			return &HookError{Modifier: m.Name, Phase: PhaseLoad, Err: err}
		}
	}
	return nil
}

// runModifiers threads data through every enabled modifier's Fn in order.
// When until is non-empty, it stops before the modifier with that name.
// It reports halted when a modifier returned ErrHalt.
func runModifiers(mods []*Modifier, data *Data, until string) (out *Data, halted bool, err error) {
	for _, m := range mods {
		if until != "" && m.Name == until {
			break
		}
		if !m.Enabled || m.Fn == nil {
			continue
		}
		next, err := m.Fn(data, m)
		if next != nil {
			data = next
		}
		if errors.Is(err, ErrHalt) {
			return data, true, nil
		}
		if err != nil {
			return data, false, &HookError{Modifier: m.Name, Phase: PhaseRun, Err: err}
		}
	}
	return data, false, nil
}

// destroyModifiers calls OnDestroy for every enabled modifier, stopping at
// the first error.
func destroyModifiers(mods []*Modifier, p *Popper) error {
	for _, m := range mods {
		if !m.Enabled || m.OnDestroy == nil {
			continue
		}
		if err := m.OnDestroy(p); err != nil {
			return &HookError{Modifier: m.Name, Phase: PhaseDestroy, Err: err}
		}
	}
	return nil
}
