package perch

import "testing"

func TestEventListeners_ScrollTriggersUpdate(t *testing.T) {
	s := newScene(Rect{X: 100, Y: 100, Width: 50, Height: 20})

	var updates int
	p, err := s.newPopper(WithOnUpdate(func(_ *Data) { updates++ }))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if n := len(p.State().ScrollParents); n != 2 {
		t.Fatalf("expected 2 scroll parents, got %d", n)
	}
	if s.scroller.listenerCount(EventScroll) != 1 || s.screen.listenerCount(EventResize) != 1 {
		t.Fatal("expected scroll and resize listeners")
	}

	s.scroller.dispatch(EventScroll)
	s.screen.dispatch(EventResize)
	if tasks, _ := s.loop.Pending(); tasks != 1 {
		t.Errorf("expected events to collapse into 1 task, got %d", tasks)
	}
	s.loop.Turn()
	if updates != 1 {
		t.Errorf("expected 1 pass, got %d", updates)
	}
}

func TestEventListeners_DisableEnable(t *testing.T) {
	s := newScene(Rect{X: 100, Y: 100, Width: 50, Height: 20})

	var updates int
	p, err := s.newPopper(WithOnUpdate(func(_ *Data) { updates++ }))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	p.DisableEventListeners()
	p.DisableEventListeners()

	st := p.State()
	if st.EventsEnabled || st.ScrollParents != nil {
		t.Errorf("expected listeners detached, got %s", st)
	}
	if s.scroller.listenerCount(EventScroll) != 0 || s.screen.listenerCount(EventResize) != 0 {
		t.Error("expected listeners removed from elements")
	}
	s.scroller.dispatch(EventScroll)
	if tasks, _ := s.loop.Pending(); tasks != 0 {
		t.Errorf("expected no update after disable, got %d tasks", tasks)
	}

	p.EnableEventListeners()
	p.EnableEventListeners()
	if s.scroller.listenerCount(EventScroll) != 1 {
		t.Errorf("expected one scroll listener after enable, got %d", s.scroller.listenerCount(EventScroll))
	}
	if st := p.State(); !st.EventsEnabled || len(st.ScrollParents) != 2 {
		t.Errorf("expected listening state, got %s", st)
	}

	s.scroller.dispatch(EventScroll)
	s.scroller.dispatch(EventScroll)
	s.loop.Turn()
	if updates != 1 {
		t.Errorf("expected exactly 1 pass after re-enabling, got %d", updates)
	}
}

func TestEventListeners_DisabledAtConstruction(t *testing.T) {
	s := newScene(Rect{X: 100, Y: 100, Width: 50, Height: 20})

	p, err := s.newPopper(WithEventsEnabled(false))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if p.State().EventsEnabled {
		t.Error("expected listeners off")
	}
	if s.scroller.listenerCount(EventScroll) != 0 {
		t.Error("expected no listeners attached")
	}
}

func TestEventListeners_NotAfterDestroy(t *testing.T) {
	s := newScene(Rect{X: 100, Y: 100, Width: 50, Height: 20})

	p, err := s.newPopper()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := p.Destroy(); err != nil {
		t.Fatalf("Destroy() error = %v", err)
	}

	p.EnableEventListeners()
	if p.State().EventsEnabled {
		t.Error("expected enable to do nothing after destroy")
	}
}
