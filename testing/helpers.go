// Package testing provides helpers for tests that drive perch Poppers and
// config Loaders.
package testing

import (
	"testing"
	"time"

	"github.com/zoobzio/perch"
	"github.com/zoobzio/perch/pkg/config"
	"github.com/zoobzio/perch/pkg/loop"
	"github.com/zoobzio/perch/pkg/scene"
)

// Stage is a ready-made scene: a viewport, a scrolling container holding the
// reference, and a popper attached to the viewport. Its loop is driven by
// hand.
type Stage struct {
	Viewport  *scene.Node
	Scroller  *scene.Node
	Reference *scene.Node
	Popper    *scene.Node
	Loop      *loop.Loop
}

// NewStage builds a Stage with an 800x600 viewport.
func NewStage(reference, popper perch.Rect) *Stage {
	vp := scene.NewViewport(800, 600)
	scroller := vp.Append("scroller", perch.Rect{Width: 800, Height: 600}).SetScrollable(true)
	return &Stage{
		Viewport:  vp,
		Scroller:  scroller,
		Reference: scroller.Append("reference", reference),
		Popper:    vp.Append("popper", popper),
		Loop:      loop.New(),
	}
}

// NewPopper creates a Popper on the stage using its loop, failing the test
// on error.
func (s *Stage) NewPopper(t *testing.T, opts ...perch.Option) *perch.Popper {
	t.Helper()
	opts = append([]perch.Option{perch.WithScheduler(s.Loop)}, opts...)
	p, err := perch.New(perch.Direct(s.Reference), perch.Direct(s.Popper), opts...)
	if err != nil {
		t.Fatalf("perch.New() error = %v", err)
	}
	t.Cleanup(func() { _ = p.Destroy() }) //nolint:errcheck // Cleanup best effort
	return p
}

// WaitFor polls a condition until it returns true or timeout is reached.
// Returns true if the condition was met, false if timeout occurred.
func WaitFor(t *testing.T, timeout time.Duration, condition func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

// WaitForState waits until the loader reaches the expected state or timeout occurs.
func WaitForState(t *testing.T, l *config.Loader, expected config.State, timeout time.Duration) bool {
	t.Helper()
	return WaitFor(t, timeout, func() bool {
		return l.State() == expected
	})
}

// RequireState fails the test immediately if the loader is not in the expected state.
func RequireState(t *testing.T, l *config.Loader, expected config.State) {
	t.Helper()
	if got := l.State(); got != expected {
		t.Fatalf("expected state %s, got %s", expected, got)
	}
}

// RequirePlacement fails the test unless the last pass settled on expected.
func RequirePlacement(t *testing.T, p *perch.Popper, expected perch.Placement) {
	t.Helper()
	data := p.Data()
	if data == nil {
		t.Fatal("expected positioning data, got none")
	}
	if data.Placement != expected {
		t.Fatalf("expected placement %s, got %s", expected, data.Placement)
	}
}

// RequireStyle fails the test unless the popper element carries style name
// with value.
func RequireStyle(t *testing.T, n *scene.Node, name, value string) {
	t.Helper()
	got, ok := n.Style(name)
	if !ok {
		t.Fatalf("expected style %s, got none", name)
	}
	if got != value {
		t.Fatalf("expected style %s=%q, got %q", name, value, got)
	}
}

// NewTestLoader creates a sync-mode loader over a channel for testing.
// Returns the loader and a channel for sending documents.
func NewTestLoader(t *testing.T, apply func(config.Document) error) (*config.Loader, chan<- []byte) {
	t.Helper()
	ch := make(chan []byte, 10)
	l := config.NewLoader(
		config.NewSyncChannelWatcher(ch),
		apply,
		config.WithSyncMode(),
	)
	return l, ch
}
