package perch

import "time"

// MetricsProvider allows integration with metrics systems like Prometheus, StatsD, etc.
// Implement this interface to receive callbacks on key Popper events.
type MetricsProvider interface {
	// OnPass is called after a successful pass with its duration.
	OnPass(duration time.Duration)

	// OnPassFailure is called when a pass fails. Modifier names the failing
	// modifier, or is empty when the failure did not come from a hook.
	OnPassFailure(modifier string, duration time.Duration)

	// OnUpdateRequested is called for every debounced Update call, including
	// those that coalesce into an already queued pass.
	OnUpdateRequested()

	// OnListenersChanged is called when listeners are attached or detached.
	OnListenersChanged(enabled bool)
}

// NoOpMetricsProvider is a no-op implementation of MetricsProvider.
// Use this as an embedded type to implement only the methods you need.
type NoOpMetricsProvider struct{}

func (NoOpMetricsProvider) OnPass(_ time.Duration)                  {}
func (NoOpMetricsProvider) OnPassFailure(_ string, _ time.Duration) {}
func (NoOpMetricsProvider) OnUpdateRequested()                      {}
func (NoOpMetricsProvider) OnListenersChanged(_ bool)               {}
