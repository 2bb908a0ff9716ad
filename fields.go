package perch

import "github.com/zoobzio/capitan"

// Field keys for Popper events.
var (
	// KeyInstance is the Popper's instance ID.
	KeyInstance = capitan.NewStringKey("instance")

	// KeyPlacement is the placement a pass settled on.
	KeyPlacement = capitan.NewStringKey("placement")

	// KeyModifier names the modifier involved in the event.
	KeyModifier = capitan.NewStringKey("modifier")

	// KeyPhase is the hook phase of a failure.
	KeyPhase = capitan.NewStringKey("phase")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")

	// KeyDuration is how long a pass took.
	KeyDuration = capitan.NewDurationKey("duration")

	// KeyScrollParents is the number of scroll parents listened on.
	KeyScrollParents = capitan.NewIntKey("scroll_parents")
)
