package perch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"

	"github.com/zoobzio/perch/pkg/loop"
)

// Popper keeps a floating element positioned against a reference element.
//
// A Popper is not safe for concurrent use. Call its methods from the
// goroutine that drives its Scheduler; Update alone may be called from any
// goroutine, since it only queues work.
type Popper struct {
	id        string
	reference Element
	popper    Element
	viewport  Viewport

	options   Options
	modifiers []*Modifier
	state     *State

	scheduler Scheduler
	debounced *debouncer
	removers  []func()

	clock    clockz.Clock
	metrics  MetricsProvider
	failures *failureRing

	data       *Data
	lastError  error
	destroying bool
}

// New creates a Popper positioning popper against reference.
//
// The options are merged over Defaults, the modifiers are sorted by order,
// every enabled OnLoad hook runs, and the first pass runs before New
// returns. A hook error aborts construction and is returned as a *HookError.
// Listeners are attached when EventsEnabled is set.
//
// Example:
//
//	p, err := perch.New(
//	    perch.Direct(button),
//	    perch.Direct(tooltip),
//	    perch.WithPlacement(perch.Top),
//	    perch.WithModifierSettings("offset", perch.Settings{"offset": 8}),
//	    perch.WithScheduler(uiLoop),
//	)
func New(reference, popper Ref, opts ...Option) (*Popper, error) {
	ref, err := reference.Element()
	if err != nil {
		return nil, fmt.Errorf("reference: %w", err)
	}
	pop, err := popper.Element()
	if err != nil {
		return nil, fmt.Errorf("popper: %w", err)
	}

	cfg := NewConfig(opts...)
	defaults := Defaults()
	if err := checkOrders(defaults, cfg); err != nil {
		return nil, err
	}

	p := &Popper{
		id:        uuid.NewString(),
		reference: ref,
		popper:    pop,
		viewport:  cfg.Viewport,
		scheduler: cfg.Scheduler,
		clock:     cfg.Clock,
		metrics:   cfg.Metrics,
		failures:  newFailureRing(cfg.ErrorHistorySize),
		state:     &State{},
	}
	if p.viewport == nil {
		p.viewport = viewportOf(ref)
	}
	if p.scheduler == nil {
		p.scheduler = loop.Default()
	}
	if p.clock == nil {
		p.clock = clockz.RealClock
	}
	p.debounced = newDebouncer(p.scheduler, p.update)

	p.options = Merge(defaults, cfg)
	p.modifiers = buildModifiers(&p.options)

	if err := loadModifiers(p.modifiers, p.reference, p.popper, &p.options, p.state); err != nil {
		return nil, err
	}

	if err := p.ForceUpdate(); err != nil {
		return nil, err
	}

	if p.options.EventsEnabled {
		p.EnableEventListeners()
	}

	return p, nil
}

// ID returns the instance ID used in emitted events.
func (p *Popper) ID() string { return p.id }

// Reference returns the anchor element.
func (p *Popper) Reference() Element { return p.reference }

// Element returns the floating element.
func (p *Popper) Element() Element { return p.popper }

// Viewport returns the viewport, or nil when none was found.
func (p *Popper) Viewport() Viewport { return p.viewport }

// Options returns a copy of the merged options.
func (p *Popper) Options() Options { return p.options.clone() }

// Modifiers returns the modifiers in execution order. The descriptors are
// shared with the Popper and must not be changed.
func (p *Popper) Modifiers() []*Modifier {
	out := make([]*Modifier, len(p.modifiers))
	copy(out, p.modifiers)
	return out
}

// State returns a snapshot of the lifecycle state.
func (p *Popper) State() State { return p.state.snapshot() }

// Data returns a copy of the data from the last successful pass, or nil.
func (p *Popper) Data() *Data { return p.data.Clone() }

// LastError returns the error of the most recent pass, or nil if it succeeded.
func (p *Popper) LastError() error { return p.lastError }

// ErrorHistory returns recent update failures, oldest first.
// Returns nil unless WithErrorHistory was used.
func (p *Popper) ErrorHistory() []Failure { return p.failures.all() }

// ClearErrorHistory forgets recorded failures.
func (p *Popper) ClearErrorHistory() { p.failures.clear() }

// Update requests a pass. Calls made within one scheduler turn collapse into
// a single pass on the next turn. Errors from that pass are reported through
// LastError, ErrorHistory and the PopperUpdateFailed signal.
func (p *Popper) Update() {
	if p.metrics != nil {
		p.metrics.OnUpdateRequested()
	}
	p.debounced.call()
}

// UpdateQueued reports whether a debounced pass is waiting for the next turn.
func (p *Popper) UpdateQueued() bool { return p.debounced.queued() }

// ScheduleUpdate requests an Update at the scheduler's next frame.
func (p *Popper) ScheduleUpdate() {
	p.scheduler.RequestFrame(p.Update)
}

// ForceUpdate runs a pass now and returns its error. It does nothing once
// the Popper is destroyed.
func (p *Popper) ForceUpdate() error {
	return p.pass(context.Background())
}

// RunModifiers runs the enabled modifiers ordered before the one named until
// over data and returns the result. Modifiers use this to recompute after
// changing the placement, as flip does. A halt inside the run is returned as
// ErrHalt so the calling modifier ends the outer pass too.
func (p *Popper) RunModifiers(data *Data, until string) (*Data, error) {
	out, halted, err := runModifiers(p.modifiers, data, until)
	if halted {
		return out, ErrHalt
	}
	return out, err
}

// Destroy runs every enabled OnDestroy hook in order, detaches listeners,
// removes the popper element when RemoveOnDestroy is set, and marks the
// Popper destroyed. Later calls do nothing. A hook error stops the remaining
// hooks and is returned, but the Popper is still destroyed.
//
// An update already queued when Destroy runs is not canceled; it finds the
// Popper destroyed and does nothing.
func (p *Popper) Destroy() error {
	if p.state.IsDestroyed || p.destroying {
		return nil
	}
	p.destroying = true

	hookErr := destroyModifiers(p.modifiers, p)

	p.DisableEventListeners()

	if p.options.RemoveOnDestroy {
		if r, ok := p.popper.(Remover); ok {
			r.Remove()
		}
	}
	p.state.IsDestroyed = true

	capitan.Emit(context.Background(), PopperDestroyed, KeyInstance.Field(p.id))
	return hookErr
}

// update is the debounced body of Update.
func (p *Popper) update() {
	_ = p.pass(context.Background()) //nolint:errcheck // Errors stored via recordFailure
}

// pass measures, runs the modifiers and publishes the result.
func (p *Popper) pass(ctx context.Context) error {
	if p.state.IsDestroyed {
		capitan.Emit(ctx, PopperUpdateSkipped, KeyInstance.Field(p.id))
		return nil
	}

	start := p.clock.Now()
	data, halted, err := runModifiers(p.modifiers, p.measure(), "")
	if err != nil {
		p.recordFailure(ctx, err, start)
		return err
	}
	if halted {
		capitan.Emit(ctx, PopperHalted,
			KeyInstance.Field(p.id),
			KeyPlacement.Field(string(data.Placement)),
		)
	}

	p.data = data
	p.lastError = nil

	if !p.state.IsCreated {
		p.state.IsCreated = true
		if p.options.OnCreate != nil {
			p.options.OnCreate(data)
		}
		capitan.Emit(ctx, PopperCreated,
			KeyInstance.Field(p.id),
			KeyPlacement.Field(string(data.Placement)),
		)
	} else if p.options.OnUpdate != nil {
		p.options.OnUpdate(data)
	}

	elapsed := p.clock.Since(start)
	capitan.Emit(ctx, PopperUpdated,
		KeyInstance.Field(p.id),
		KeyPlacement.Field(string(data.Placement)),
		KeyDuration.Field(elapsed),
	)
	if p.metrics != nil {
		p.metrics.OnPass(elapsed)
	}
	return nil
}

// recordFailure stores err and reports it.
func (p *Popper) recordFailure(ctx context.Context, err error, start time.Time) {
	now := p.clock.Now()
	p.lastError = err
	p.failures.push(err, now)

	var (
		modifier string
		phase    Phase
		hookErr  *HookError
	)
	if errors.As(err, &hookErr) {
		modifier = hookErr.Modifier
		phase = hookErr.Phase
	}

	capitan.Emit(ctx, PopperUpdateFailed,
		KeyInstance.Field(p.id),
		KeyModifier.Field(modifier),
		KeyPhase.Field(string(phase)),
		KeyError.Field(err.Error()),
	)
	if p.metrics != nil {
		p.metrics.OnPassFailure(modifier, now.Sub(start))
	}
}
