package config

import "github.com/zoobzio/capitan"

// Loader lifecycle signals.
var (
	// LoaderStarted is emitted when a Loader begins watching.
	LoaderStarted = capitan.NewSignal(
		"perch.config.started",
		"Config loader watching started",
	)

	// LoaderStopped is emitted when a Loader stops watching.
	LoaderStopped = capitan.NewSignal(
		"perch.config.stopped",
		"Config loader watching stopped",
	)

	// LoaderStateChanged is emitted when a Loader transitions between states.
	LoaderStateChanged = capitan.NewSignal(
		"perch.config.state.changed",
		"Config loader state transition",
	)
)

// Change processing signals.
var (
	// ChangeReceived is emitted when raw data arrives from the watcher.
	ChangeReceived = capitan.NewSignal(
		"perch.config.change.received",
		"Raw change received from watcher",
	)

	// DecodeFailed is emitted when a document cannot be decoded.
	DecodeFailed = capitan.NewSignal(
		"perch.config.decode.failed",
		"Document decoding failed",
	)

	// ValidationFailed is emitted when a document fails validation.
	ValidationFailed = capitan.NewSignal(
		"perch.config.validation.failed",
		"Document validation failed",
	)

	// ApplyFailed is emitted when the apply callback fails.
	ApplyFailed = capitan.NewSignal(
		"perch.config.apply.failed",
		"Apply callback failed",
	)

	// ApplySucceeded is emitted when a document is applied.
	ApplySucceeded = capitan.NewSignal(
		"perch.config.apply.succeeded",
		"Document applied successfully",
	)
)
