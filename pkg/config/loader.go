package config

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// DefaultDebounce is the default debounce duration for change processing.
const DefaultDebounce = 100 * time.Millisecond

// Loader watches a source for placement documents, decodes and validates
// them, and hands each valid one to the apply callback. A failed change
// leaves the previous document in place.
type Loader struct {
	watcher  Watcher
	apply    func(Document) error
	debounce time.Duration
	syncMode bool
	clock    clockz.Clock
	codec    Codec

	state     atomic.Int32
	current   atomic.Pointer[Document]
	lastError atomic.Pointer[error]

	mu      sync.Mutex
	started bool

	// For sync mode: channel to receive changes
	changes <-chan []byte
}

// loaderConfig holds configuration options for a Loader.
type loaderConfig struct {
	debounce time.Duration
	syncMode bool
	clock    clockz.Clock
	codec    Codec
}

// Option configures a Loader.
type Option func(*loaderConfig)

// WithDebounce sets the debounce duration for change processing.
// Changes arriving within this duration are coalesced into a single update.
func WithDebounce(d time.Duration) Option {
	return func(c *loaderConfig) {
		c.debounce = d
	}
}

// WithSyncMode enables synchronous processing for testing.
// In sync mode, changes are processed only through Process, without
// debouncing or goroutines.
func WithSyncMode() Option {
	return func(c *loaderConfig) {
		c.syncMode = true
	}
}

// WithClock sets a custom clock for time operations.
// Use this with clockz.FakeClock for deterministic debounce testing.
func WithClock(clock clockz.Clock) Option {
	return func(c *loaderConfig) {
		c.clock = clock
	}
}

// WithCodec fixes the document format. Without it the format is detected
// from content.
func WithCodec(codec Codec) Option {
	return func(c *loaderConfig) {
		c.codec = codec
	}
}

// NewLoader creates a Loader reading documents from watcher.
//
// Example:
//
//	loader := config.NewLoader(
//	    config.NewFileWatcher("tooltip.yaml"),
//	    func(doc config.Document) error {
//	        return rebuild(doc.Options()...)
//	    },
//	    config.WithCodec(config.YAMLCodec{}),
//	)
func NewLoader(watcher Watcher, apply func(Document) error, opts ...Option) *Loader {
	cfg := &loaderConfig{
		debounce: DefaultDebounce,
		clock:    clockz.RealClock,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	l := &Loader{
		watcher:  watcher,
		apply:    apply,
		debounce: cfg.debounce,
		syncMode: cfg.syncMode,
		clock:    cfg.clock,
		codec:    cfg.codec,
	}
	l.state.Store(int32(StateLoading))
	return l
}

// State returns the current state of the Loader.
func (l *Loader) State() State {
	return State(l.state.Load())
}

// Current returns the applied document and true, or false if none has been
// applied.
func (l *Loader) Current() (Document, bool) {
	ptr := l.current.Load()
	if ptr == nil {
		return Document{}, false
	}
	return *ptr, true
}

// LastError returns the last error encountered, or nil.
func (l *Loader) LastError() error {
	ptr := l.lastError.Load()
	if ptr == nil {
		return nil
	}
	return *ptr
}

// Start begins watching. It blocks until the first document is processed,
// then keeps watching in the background. If the first document fails, Start
// returns the error but keeps watching for a valid one.
//
// In sync mode, Start only processes the first document; call Process for
// later ones.
func (l *Loader) Start(ctx context.Context) error {
	l.mu.Lock()
	if l.started {
		l.mu.Unlock()
		return fmt.Errorf("loader already started")
	}
	l.started = true
	l.mu.Unlock()

	capitan.Emit(ctx, LoaderStarted,
		KeyDebounce.Field(l.debounce),
	)

	changes, err := l.watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	var initialErr error
	select {
	case <-ctx.Done():
		return ctx.Err()
	case raw, ok := <-changes:
		if !ok {
			return fmt.Errorf("watcher closed before emitting initial value")
		}
		capitan.Emit(ctx, ChangeReceived)
		initialErr = l.process(ctx, raw)
	}

	if l.syncMode {
		l.changes = changes
		return initialErr
	}

	go l.watch(ctx, changes)

	return initialErr
}

// Process reads and processes the next pending document. It only works in
// sync mode and reports false when nothing was available.
func (l *Loader) Process(ctx context.Context) bool {
	if !l.syncMode {
		return false
	}

	select {
	case raw, ok := <-l.changes:
		if !ok {
			return false
		}
		capitan.Emit(ctx, ChangeReceived)
		_ = l.process(ctx, raw) //nolint:errcheck // Errors stored via fail
		return true
	default:
		return false
	}
}

// process decodes, validates and applies one document.
func (l *Loader) process(ctx context.Context, raw []byte) error {
	oldState := l.State()

	codec := l.codec
	if codec == nil {
		codec = detect(raw)
	}

	var doc Document
	if err := codec.Unmarshal(raw, &doc); err != nil {
		l.fail(ctx, oldState, err)
		capitan.Emit(ctx, DecodeFailed,
			KeyContentType.Field(codec.ContentType()),
			KeyError.Field(err.Error()),
		)
		return fmt.Errorf("decode failed: %w", err)
	}

	if err := doc.Validate(); err != nil {
		l.fail(ctx, oldState, err)
		capitan.Emit(ctx, ValidationFailed,
			KeyError.Field(err.Error()),
		)
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := l.apply(doc); err != nil {
		l.fail(ctx, oldState, err)
		capitan.Emit(ctx, ApplyFailed,
			KeyError.Field(err.Error()),
		)
		return fmt.Errorf("apply failed: %w", err)
	}

	l.current.Store(&doc)
	l.lastError.Store(nil)
	l.transitionState(ctx, oldState, StateHealthy)
	capitan.Emit(ctx, ApplySucceeded,
		KeyContentType.Field(codec.ContentType()),
	)
	return nil
}

// fail records err and moves to the failure state.
func (l *Loader) fail(ctx context.Context, oldState State, err error) {
	e := err
	l.lastError.Store(&e)
	l.transitionState(ctx, oldState, l.failureState())
}

// failureState is StateEmpty until a document has been applied, then
// StateDegraded.
func (l *Loader) failureState() State {
	if l.current.Load() == nil {
		return StateEmpty
	}
	return StateDegraded
}

// transitionState updates the state and emits a change event if it changed.
func (l *Loader) transitionState(ctx context.Context, oldState, newState State) {
	if oldState == newState {
		return
	}
	l.state.Store(int32(newState))
	capitan.Emit(ctx, LoaderStateChanged,
		KeyOldState.Field(oldState.String()),
		KeyNewState.Field(newState.String()),
	)
}

// watch processes changes from the watcher channel with debouncing.
func (l *Loader) watch(ctx context.Context, changes <-chan []byte) {
	defer func() {
		capitan.Emit(ctx, LoaderStopped,
			KeyState.Field(l.State().String()),
		)
	}()

	var (
		timer      clockz.Timer
		pending    []byte
		hasPending bool
	)

	for {
		var timerC <-chan time.Time
		if timer != nil {
			timerC = timer.C()
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case raw, ok := <-changes:
			if !ok {
				if hasPending {
					_ = l.process(ctx, pending) //nolint:errcheck // Errors stored via fail
				}
				return
			}

			capitan.Emit(ctx, ChangeReceived)
			pending = raw
			hasPending = true

			if timer == nil {
				timer = l.clock.NewTimer(l.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C():
					default:
					}
				}
				timer.Reset(l.debounce)
			}

		case <-timerC:
			if hasPending {
				_ = l.process(ctx, pending) //nolint:errcheck // Errors stored via fail
				hasPending = false
			}
		}
	}
}
