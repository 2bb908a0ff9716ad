package perch

import (
	"errors"
	"sync"
	"time"
)

// Failure is one recorded update failure.
type Failure struct {
	// Err is the error returned by the pass.
	Err error

	// Modifier names the modifier whose hook failed, if any.
	Modifier string

	// At is when the failure was recorded.
	At time.Time
}

// failureRing keeps the most recent update failures, oldest first.
// A nil ring records nothing.
type failureRing struct {
	mu      sync.RWMutex
	entries []Failure
	head    int
	count   int
}

// newFailureRing creates a ring holding up to size failures.
// If size is 0, the ring is disabled.
func newFailureRing(size int) *failureRing {
	if size <= 0 {
		return nil
	}
	return &failureRing{entries: make([]Failure, size)}
}

// push records err at time at.
func (r *failureRing) push(err error, at time.Time) {
	if r == nil {
		return
	}
	f := Failure{Err: err, At: at}
	var hookErr *HookError
	if errors.As(err, &hookErr) {
		f.Modifier = hookErr.Modifier
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[r.head] = f
	r.head = (r.head + 1) % len(r.entries)
	if r.count < len(r.entries) {
		r.count++
	}
}

// clear forgets every recorded failure.
func (r *failureRing) clear() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.entries {
		r.entries[i] = Failure{}
	}
	r.head = 0
	r.count = 0
}

// all returns the recorded failures, oldest first.
func (r *failureRing) all() []Failure {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.count == 0 {
		return nil
	}

	size := len(r.entries)
	result := make([]Failure, r.count)
	start := (r.head - r.count + size) % size
	for i := 0; i < r.count; i++ {
		result[i] = r.entries[(start+i)%size]
	}
	return result
}
