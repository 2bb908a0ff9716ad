package perch

import "sync/atomic"

// debouncer coalesces calls made within one scheduler turn into a single
// run of fn on the next turn. fn reads its inputs when it runs, so the most
// recent call's state wins and earlier calls are simply absorbed.
type debouncer struct {
	scheduler Scheduler
	fn        func()
	pending   atomic.Bool
}

func newDebouncer(s Scheduler, fn func()) *debouncer {
	return &debouncer{scheduler: s, fn: fn}
}

// call requests a run. It reports whether a new run was queued.
func (d *debouncer) call() bool {
	if !d.pending.CompareAndSwap(false, true) {
		return false
	}
	d.scheduler.Post(func() {
		d.pending.Store(false)
		d.fn()
	})
	return true
}

// queued reports whether a run is waiting for the next turn.
func (d *debouncer) queued() bool {
	return d.pending.Load()
}
