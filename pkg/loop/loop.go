// Package loop provides a cooperative, single-goroutine scheduler.
//
// Work is queued with Post (runs on the next turn) or RequestFrame (runs on
// the next frame). A host either drives the loop by hand with Turn and Frame,
// which keeps tests deterministic, or hands it a goroutine with Run.
//
//	l := loop.New()
//	go l.Run(ctx)
//
//	l.Post(func() { fmt.Println("next turn") })
//	l.RequestFrame(func() { fmt.Println("next frame") })
//
// Everything the loop runs executes on the goroutine that called Turn, Frame
// or Run. Post and RequestFrame are safe to call from any goroutine.
package loop

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/zoobzio/clockz"
)

// DefaultFrameInterval is the pacing used by Run for frame callbacks.
const DefaultFrameInterval = 16 * time.Millisecond

// maxDrainTurns bounds Drain so a task that keeps re-posting itself cannot
// spin forever.
const maxDrainTurns = 1024

var (
	// ErrAlreadyRunning is returned when Run is called on a loop that is running.
	ErrAlreadyRunning = errors.New("loop: already running")
)

// Loop queues tasks and frame callbacks and runs them cooperatively.
type Loop struct {
	clock         clockz.Clock
	frameInterval time.Duration

	mu      sync.Mutex
	tasks   []func()
	frames  []func()
	running bool

	wake chan struct{}
}

// New creates a Loop using the real clock and the default frame interval.
func New() *Loop {
	return &Loop{
		clock:         clockz.RealClock,
		frameInterval: DefaultFrameInterval,
		wake:          make(chan struct{}, 1),
	}
}

// Clock sets the clock used by Run for frame pacing.
// Use this with clockz.FakeClock for deterministic tests. Must be called before Run().
func (l *Loop) Clock(clock clockz.Clock) *Loop {
	l.clock = clock
	return l
}

// FrameInterval sets the delay between frames when driven by Run.
// Must be called before Run().
func (l *Loop) FrameInterval(d time.Duration) *Loop {
	if d > 0 {
		l.frameInterval = d
	}
	return l
}

// Post queues fn to run on the next turn.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()
	l.signal()
}

// RequestFrame queues fn to run on the next frame.
func (l *Loop) RequestFrame(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.frames = append(l.frames, fn)
	l.mu.Unlock()
	l.signal()
}

// Pending returns the number of queued tasks and frame callbacks.
func (l *Loop) Pending() (tasks, frames int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks), len(l.frames)
}

// Turn runs every task queued before the call and returns how many ran.
// Tasks posted while the turn is running wait for the next turn.
func (l *Loop) Turn() int {
	l.mu.Lock()
	batch := l.tasks
	l.tasks = nil
	l.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Frame runs every pending frame callback and returns how many ran.
// Tasks those callbacks post are left for the next turn.
func (l *Loop) Frame() int {
	l.mu.Lock()
	batch := l.frames
	l.frames = nil
	l.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Drain runs turns until no tasks remain and returns the total number run.
func (l *Loop) Drain() int {
	total := 0
	for i := 0; i < maxDrainTurns; i++ {
		n := l.Turn()
		if n == 0 {
			break
		}
		total += n
	}
	return total
}

// Run drives the loop on the calling goroutine until ctx is canceled.
// Tasks run as soon as they are posted; frame callbacks run once per frame
// interval while any are pending.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return ErrAlreadyRunning
	}
	l.running = true
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.running = false
		l.mu.Unlock()
	}()

	var timer clockz.Timer

	for {
		l.Drain()

		var timerC <-chan time.Time
		if _, frames := l.Pending(); frames > 0 {
			if timer == nil {
				timer = l.clock.NewTimer(l.frameInterval)
			}
			timerC = timer.C()
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()

		case <-l.wake:

		case <-timerC:
			timer = nil
			l.Frame()
		}
	}
}

// signal wakes Run without blocking.
func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

var (
	defaultOnce sync.Once
	defaultLoop *Loop
)

// Default returns the process-wide loop. Nothing drives it automatically;
// the host calls Run, Turn or Frame on it from its UI goroutine.
func Default() *Loop {
	defaultOnce.Do(func() {
		defaultLoop = New()
	})
	return defaultLoop
}
