package perch

import (
	"context"

	"github.com/zoobzio/capitan"
)

// EnableEventListeners attaches scroll listeners to the reference's scroll
// parents and a resize listener to the viewport. Each event requests a
// debounced Update. Calling it while listeners are attached does nothing.
func (p *Popper) EnableEventListeners() {
	if p.state.EventsEnabled || p.state.IsDestroyed || p.destroying {
		return
	}

	p.state.ScrollParents = ScrollParents(p.reference)
	for _, sp := range p.state.ScrollParents {
		if target, ok := sp.(EventTarget); ok {
			p.removers = append(p.removers, target.Listen(EventScroll, p.Update))
		}
	}
	if p.viewport != nil {
		p.removers = append(p.removers, p.viewport.Listen(EventResize, p.Update))
	}
	p.state.EventsEnabled = true

	capitan.Emit(context.Background(), ListenersEnabled,
		KeyInstance.Field(p.id),
		KeyScrollParents.Field(len(p.state.ScrollParents)),
	)
	if p.metrics != nil {
		p.metrics.OnListenersChanged(true)
	}
}

// DisableEventListeners detaches every listener attached by
// EnableEventListeners and forgets the scroll parents. Calling it while no
// listeners are attached does nothing.
func (p *Popper) DisableEventListeners() {
	if !p.state.EventsEnabled {
		return
	}

	for _, remove := range p.removers {
		if remove != nil {
			remove()
		}
	}
	p.removers = nil
	p.state.ScrollParents = nil
	p.state.EventsEnabled = false

	capitan.Emit(context.Background(), ListenersDisabled, KeyInstance.Field(p.id))
	if p.metrics != nil {
		p.metrics.OnListenersChanged(false)
	}
}
