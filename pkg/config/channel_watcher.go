package config

import (
	"bytes"
	"context"
)

// ChannelWatcher feeds layout documents pushed by the host into a Loader.
// Each value on the channel is one complete document.
type ChannelWatcher struct {
	src    <-chan []byte
	direct bool
}

// NewChannelWatcher creates a ChannelWatcher. Each document is copied before
// it is handed on, so the sender may reuse its buffer while the Loader holds
// a pending document through its debounce window.
func NewChannelWatcher(src <-chan []byte) *ChannelWatcher {
	return &ChannelWatcher{src: src}
}

// NewSyncChannelWatcher creates a ChannelWatcher whose Watch returns src
// itself. Pair it with WithSyncMode and drive the Loader with Process.
func NewSyncChannelWatcher(src <-chan []byte) *ChannelWatcher {
	return &ChannelWatcher{src: src, direct: true}
}

// Watch implements Watcher.
func (w *ChannelWatcher) Watch(ctx context.Context) (<-chan []byte, error) {
	if w.direct {
		return w.src, nil
	}

	out := make(chan []byte)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case doc, ok := <-w.src:
				if !ok {
					return
				}
				if !emit(ctx, out, bytes.Clone(doc)) {
					return
				}
			}
		}
	}()
	return out, nil
}

// emit hands data to out, reporting false if ctx ended first.
func emit(ctx context.Context, out chan<- []byte, data []byte) bool {
	select {
	case out <- data:
		return true
	case <-ctx.Done():
		return false
	}
}
