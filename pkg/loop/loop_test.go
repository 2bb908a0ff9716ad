package loop

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/zoobzio/clockz"
)

func TestLoop_TurnRunsQueuedTasksInOrder(t *testing.T) {
	l := New()

	var order []int
	l.Post(func() { order = append(order, 1) })
	l.Post(func() { order = append(order, 2) })
	l.Post(func() { order = append(order, 3) })

	if n := l.Turn(); n != 3 {
		t.Fatalf("expected 3 tasks, got %d", n)
	}
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("unexpected order %v", order)
	}
}

func TestLoop_TasksPostedDuringTurnWaitForNextTurn(t *testing.T) {
	l := New()

	ran := 0
	l.Post(func() {
		ran++
		l.Post(func() { ran++ })
	})

	if n := l.Turn(); n != 1 {
		t.Fatalf("expected 1 task in first turn, got %d", n)
	}
	if ran != 1 {
		t.Fatalf("expected nested task to wait, ran=%d", ran)
	}
	if n := l.Turn(); n != 1 {
		t.Fatalf("expected 1 task in second turn, got %d", n)
	}
	if ran != 2 {
		t.Errorf("expected 2 runs, got %d", ran)
	}
}

func TestLoop_NilTasksIgnored(t *testing.T) {
	l := New()
	l.Post(nil)
	l.RequestFrame(nil)

	tasks, frames := l.Pending()
	if tasks != 0 || frames != 0 {
		t.Errorf("expected nothing pending, got %d tasks %d frames", tasks, frames)
	}
}

func TestLoop_FrameIsSeparateFromTurn(t *testing.T) {
	l := New()

	framed := false
	l.RequestFrame(func() { framed = true })

	if n := l.Turn(); n != 0 {
		t.Errorf("expected no tasks, got %d", n)
	}
	if framed {
		t.Fatal("frame callback ran during turn")
	}
	if n := l.Frame(); n != 1 {
		t.Errorf("expected 1 frame callback, got %d", n)
	}
	if !framed {
		t.Error("frame callback did not run")
	}
}

func TestLoop_DrainRunsUntilEmpty(t *testing.T) {
	l := New()

	depth := 0
	var post func()
	post = func() {
		depth++
		if depth < 5 {
			l.Post(post)
		}
	}
	l.Post(post)

	if n := l.Drain(); n != 5 {
		t.Errorf("expected 5 tasks drained, got %d", n)
	}
}

func TestLoop_DrainIsBounded(t *testing.T) {
	l := New()

	var forever func()
	forever = func() { l.Post(forever) }
	l.Post(forever)

	if n := l.Drain(); n != maxDrainTurns {
		t.Errorf("expected drain to stop at %d, got %d", maxDrainTurns, n)
	}
}

func TestLoop_RunExecutesPostedTasks(t *testing.T) {
	l := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		_ = l.Run(ctx) //nolint:errcheck // canceled below
	}()

	l.Post(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task was not run")
	}
}

func TestLoop_RunPacesFramesWithClock(t *testing.T) {
	clock := clockz.NewFakeClock()
	l := New().Clock(clock).FrameInterval(10 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var frames atomic.Int32
	go func() {
		_ = l.Run(ctx) //nolint:errcheck // canceled below
	}()

	l.RequestFrame(func() { frames.Add(1) })

	// Allow the loop to arm its frame timer
	time.Sleep(10 * time.Millisecond)
	if frames.Load() != 0 {
		t.Fatal("frame ran before the frame interval elapsed")
	}

	clock.Advance(15 * time.Millisecond)
	clock.BlockUntilReady()

	deadline := time.Now().Add(time.Second)
	for frames.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if frames.Load() != 1 {
		t.Errorf("expected 1 frame, got %d", frames.Load())
	}
}

func TestLoop_RunTwice(t *testing.T) {
	l := New()
	ctx, cancel := context.WithCancel(context.Background())

	started := make(chan struct{})
	stopped := make(chan error, 1)
	go func() {
		l.Post(func() { close(started) })
		stopped <- l.Run(ctx)
	}()
	<-started

	if err := l.Run(ctx); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("expected ErrAlreadyRunning, got %v", err)
	}

	cancel()
	if err := <-stopped; !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
