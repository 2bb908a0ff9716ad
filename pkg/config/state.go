package config

// State represents the current state of a Loader.
type State int32

const (
	// StateLoading indicates no document has been processed yet.
	StateLoading State = iota

	// StateHealthy indicates a valid document is applied.
	StateHealthy

	// StateDegraded indicates the last change failed. The previous document
	// remains applied.
	StateDegraded

	// StateEmpty indicates the initial document failed and none has been
	// applied since.
	StateEmpty
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateHealthy:
		return "healthy"
	case StateDegraded:
		return "degraded"
	case StateEmpty:
		return "empty"
	default:
		return "unknown"
	}
}
