package perch

import "github.com/zoobzio/capitan"

// Popper lifecycle signals.
var (
	// PopperCreated is emitted after the first successful pass.
	PopperCreated = capitan.NewSignal(
		"perch.popper.created",
		"Popper constructed and positioned",
	)

	// PopperDestroyed is emitted when a Popper is torn down.
	PopperDestroyed = capitan.NewSignal(
		"perch.popper.destroyed",
		"Popper destroyed",
	)
)

// Pass signals.
var (
	// PopperUpdated is emitted after every successful pass.
	PopperUpdated = capitan.NewSignal(
		"perch.popper.updated",
		"Positioning pass completed",
	)

	// PopperUpdateFailed is emitted when a pass fails.
	PopperUpdateFailed = capitan.NewSignal(
		"perch.popper.update.failed",
		"Positioning pass failed",
	)

	// PopperHalted is emitted when a modifier ends a pass early.
	PopperHalted = capitan.NewSignal(
		"perch.popper.halted",
		"Positioning pass halted by modifier",
	)

	// PopperUpdateSkipped is emitted when a queued update reaches a destroyed Popper.
	PopperUpdateSkipped = capitan.NewSignal(
		"perch.popper.update.skipped",
		"Update skipped after destroy",
	)
)

// Listener signals.
var (
	// ListenersEnabled is emitted when scroll and resize listeners are attached.
	ListenersEnabled = capitan.NewSignal(
		"perch.listeners.enabled",
		"Event listeners attached",
	)

	// ListenersDisabled is emitted when listeners are detached.
	ListenersDisabled = capitan.NewSignal(
		"perch.listeners.disabled",
		"Event listeners detached",
	)
)
