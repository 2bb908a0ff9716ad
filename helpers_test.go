package perch

import (
	"sync"
	"time"

	"github.com/zoobzio/perch/pkg/loop"
)

// fakeElement is a measurable, stylable element that can also scroll and
// deliver events. The topmost fakeElement of a tree acts as the viewport.
type fakeElement struct {
	rect       Rect
	parent     Element
	scrollable bool
	removed    bool

	styles map[string]string
	attrs  map[string]string

	nextID    int
	listeners map[Event]map[int]func()
}

func newFake(rect Rect, parent Element) *fakeElement {
	return &fakeElement{
		rect:      rect,
		parent:    parent,
		styles:    map[string]string{},
		attrs:     map[string]string{},
		listeners: map[Event]map[int]func(){},
	}
}

func (f *fakeElement) Bounds() Rect { return f.rect }

func (f *fakeElement) Parent() Element {
	if f.parent == nil {
		return nil
	}
	return f.parent
}

func (f *fakeElement) Scrollable() bool { return f.scrollable }

func (f *fakeElement) Listen(event Event, fn func()) func() {
	id := f.nextID
	f.nextID++
	if f.listeners[event] == nil {
		f.listeners[event] = map[int]func(){}
	}
	f.listeners[event][id] = fn
	return func() { delete(f.listeners[event], id) }
}

func (f *fakeElement) dispatch(event Event) {
	for _, fn := range f.listeners[event] {
		fn()
	}
}

func (f *fakeElement) listenerCount(event Event) int { return len(f.listeners[event]) }

func (f *fakeElement) SetStyle(name, value string)     { f.styles[name] = value }
func (f *fakeElement) RemoveStyle(name string)         { delete(f.styles, name) }
func (f *fakeElement) SetAttribute(name, value string) { f.attrs[name] = value }
func (f *fakeElement) RemoveAttribute(name string)     { delete(f.attrs, name) }
func (f *fakeElement) Remove()                         { f.removed = true }

// bareElement only has bounds.
type bareElement struct {
	rect Rect
}

func (b bareElement) Bounds() Rect    { return b.rect }
func (b bareElement) Parent() Element { return nil }

// fakeCollection is a query result.
type fakeCollection []Element

func (c fakeCollection) Len() int         { return len(c) }
func (c fakeCollection) At(i int) Element { return c[i] }

// scene is a screen with a scrolling container holding the reference, and
// the popper attached to the screen.
type scene struct {
	screen    *fakeElement
	scroller  *fakeElement
	reference *fakeElement
	popper    *fakeElement
	loop      *loop.Loop
}

func newScene(ref Rect) *scene {
	screen := newFake(Rect{Width: 1000, Height: 800}, nil)
	scroller := newFake(Rect{Width: 1000, Height: 800}, screen)
	scroller.scrollable = true
	return &scene{
		screen:    screen,
		scroller:  scroller,
		reference: newFake(ref, scroller),
		popper:    newFake(Rect{Width: 80, Height: 30}, screen),
		loop:      loop.New(),
	}
}

func (s *scene) newPopper(opts ...Option) (*Popper, error) {
	opts = append([]Option{WithScheduler(s.loop)}, opts...)
	return New(Direct(s.reference), Direct(s.popper), opts...)
}

// trace records modifier calls.
type trace struct {
	mu    sync.Mutex
	calls []string
}

func (tr *trace) modifier(name string) ModifierFunc {
	return func(data *Data, _ *Modifier) (*Data, error) {
		tr.add(name)
		return data, nil
	}
}

func (tr *trace) destroy(name string) OnDestroyFunc {
	return func(_ *Popper) error {
		tr.add(name)
		return nil
	}
}

func (tr *trace) add(name string) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.calls = append(tr.calls, name)
}

func (tr *trace) all() []string {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return append([]string(nil), tr.calls...)
}

// countingMetrics counts MetricsProvider callbacks.
type countingMetrics struct {
	NoOpMetricsProvider
	passes    int
	failures  []string
	requested int
	listeners []bool
}

func (m *countingMetrics) OnPass(_ time.Duration) { m.passes++ }

func (m *countingMetrics) OnPassFailure(modifier string, _ time.Duration) {
	m.failures = append(m.failures, modifier)
}

func (m *countingMetrics) OnUpdateRequested() { m.requested++ }

func (m *countingMetrics) OnListenersChanged(enabled bool) {
	m.listeners = append(m.listeners, enabled)
}
