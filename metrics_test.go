package perch

import (
	"testing"
	"time"
)

func TestNoOpMetricsProvider_DoesNotPanic(_ *testing.T) {
	var m NoOpMetricsProvider

	m.OnPass(100 * time.Millisecond)
	m.OnPassFailure("flip", 50*time.Millisecond)
	m.OnUpdateRequested()
	m.OnListenersChanged(true)
}

func TestNoOpMetricsProvider_Embeddable(t *testing.T) {
	var m MetricsProvider = &countingMetrics{}
	m.OnPass(time.Millisecond)

	if m.(*countingMetrics).passes != 1 {
		t.Error("expected overridden method to be called")
	}
}
