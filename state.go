package perch

import "fmt"

// State is the long-lived record shared by every pass of a Popper.
// Modifiers may read and write it from their hooks.
type State struct {
	// IsDestroyed is set once Destroy has run.
	IsDestroyed bool

	// IsCreated is set after the first successful pass.
	IsCreated bool

	// ScrollParents are the containers whose scroll events trigger updates.
	// The event layer fills it when listeners are enabled.
	ScrollParents []Element

	// EventsEnabled reports whether scroll and resize listeners are attached.
	EventsEnabled bool
}

// snapshot returns a copy that does not share the scroll parents slice.
func (s *State) snapshot() State {
	out := *s
	if s.ScrollParents != nil {
		out.ScrollParents = append([]Element(nil), s.ScrollParents...)
	}
	return out
}

// String returns a short lifecycle summary.
func (s State) String() string {
	switch {
	case s.IsDestroyed:
		return "destroyed"
	case !s.IsCreated:
		return "loading"
	case s.EventsEnabled:
		return fmt.Sprintf("listening(%d)", len(s.ScrollParents))
	default:
		return "created"
	}
}
