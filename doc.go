/*
Package perch positions a floating element (the popper) next to an anchor
element (the reference) and keeps it there as the reference scrolls or the
viewport resizes.

perch does not draw anything. Elements are supplied by the host through the
Element interface family, and placement is computed by an ordered pipeline of
modifiers that each transform a Data record. The last default modifier writes
the result back to the popper through the Styler interface.

# Basic Usage

	p, err := perch.New(
	    perch.Direct(button),
	    perch.Direct(tooltip),
	    perch.WithPlacement(perch.TopStart),
	    perch.WithModifierSettings(perch.ModifierOffset, perch.Settings{"offset": 8}),
	)
	if err != nil {
	    return err
	}
	defer p.Destroy()

New runs every OnLoad hook and the first pass before returning, so styles
are already applied when it succeeds.

# Modifiers

The defaults, in order, are shift, offset, preventOverflow, keepTogether,
arrow, flip, inner (disabled), hide, computeStyle and applyStyle. Options
override them field by field:

	perch.WithModifierEnabled(perch.ModifierFlip, false)
	perch.WithModifierSettings(perch.ModifierOffset, perch.Settings{
	    "offset": "reference.height / 4",
	})

Custom modifiers need a name and an order:

	perch.WithModifier("snap", perch.ModifierConfig{
	    Order: perch.Ptr(450),
	    Fn: func(d *perch.Data, _ *perch.Modifier) (*perch.Data, error) {
	        d.Offsets.Popper.X = math.Round(d.Offsets.Popper.X/8) * 8
	        return d, nil
	    },
	})

A modifier returns ErrHalt to end the pass early. Any other error stops the
pass and is reported as a *HookError.

# Updates

Update is debounced: every call made during one turn of the Scheduler
collapses into a single pass on the next turn. ForceUpdate runs a pass
immediately and returns its error. Scroll and resize listeners call Update.

The default Scheduler is the process-wide loop from pkg/loop, which the host
must drive:

	go loop.Default().Run(ctx)

Tests drive a private loop by hand:

	l := loop.New()
	p, _ := perch.New(ref, pop, perch.WithScheduler(l))
	p.Update()
	l.Turn()

# Observability

Lifecycle events are emitted as capitan signals (PopperCreated,
PopperUpdated, PopperUpdateFailed and others) carrying the field keys in
fields.go. A MetricsProvider receives pass timings.
*/
package perch
