package config

import (
	"context"
	"testing"
	"time"
)

func TestChannelWatcher_ForwardsValues(t *testing.T) {
	source := make(chan []byte, 3)
	source <- []byte("one")
	source <- []byte("two")
	source <- []byte("three")

	watcher := NewChannelWatcher(source)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	out, err := watcher.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	for _, exp := range []string{"one", "two", "three"} {
		select {
		case v := <-out:
			if string(v) != exp {
				t.Errorf("expected %s, got %s", exp, string(v))
			}
		case <-ctx.Done():
			t.Fatal("timed out waiting for value")
		}
	}
}

func TestChannelWatcher_ClosesWithSource(t *testing.T) {
	source := make(chan []byte)
	close(source)

	out, err := NewChannelWatcher(source).Watch(context.Background())
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	select {
	case _, ok := <-out:
		if ok {
			t.Error("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for close")
	}
}

func TestSyncChannelWatcher_ReturnsSource(t *testing.T) {
	source := make(chan []byte, 1)
	source <- []byte("direct")

	out, err := NewSyncChannelWatcher(source).Watch(context.Background())
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	if v := <-out; string(v) != "direct" {
		t.Errorf("expected direct, got %s", v)
	}
}

func TestChannelWatcher_CopiesDocuments(t *testing.T) {
	source := make(chan []byte, 1)
	buf := []byte("placement: top")
	source <- buf

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	out, err := NewChannelWatcher(source).Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	var got []byte
	select {
	case got = <-out:
	case <-ctx.Done():
		t.Fatal("timed out waiting for document")
	}
	copy(buf, "placement: xxx")

	if string(got) != "placement: top" {
		t.Errorf("expected document detached from the sender's buffer, got %q", got)
	}
}

func TestEmit_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if emit(ctx, make(chan []byte), []byte("x")) {
		t.Error("expected emit to give up once the context is done")
	}
}
