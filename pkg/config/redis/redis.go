// Package redis provides a config.Watcher that reads layout documents from
// a Redis key using keyspace notifications.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Watcher watches a Redis key for changes using keyspace notifications.
// Requires Redis to have keyspace notifications enabled:
//
//	CONFIG SET notify-keyspace-events KEA
type Watcher struct {
	client *redis.Client
	key    string
	db     int
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDB sets the database number used in the keyspace channel. It must
// match the client's database.
func WithDB(db int) Option {
	return func(w *Watcher) {
		w.db = db
	}
}

// New creates a Watcher for key.
func New(client *redis.Client, key string, opts ...Option) *Watcher {
	w := &Watcher{
		client: client,
		key:    key,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Key returns the watched key.
func (w *Watcher) Key() string { return w.key }

// Channel returns the keyspace notification channel for the key.
func (w *Watcher) Channel() string {
	return fmt.Sprintf("__keyspace@%d__:%s", w.db, w.key)
}

// Watch subscribes to the key and emits its value on every write. The
// current value, if any, is emitted first.
func (w *Watcher) Watch(ctx context.Context) (<-chan []byte, error) {
	pubsub := w.client.Subscribe(ctx, w.Channel())

	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close() //nolint:errcheck // Subscribe already failed
		return nil, fmt.Errorf("failed to subscribe to keyspace notifications: %w", err)
	}

	out := make(chan []byte)

	go func() {
		defer close(out)
		defer pubsub.Close()

		if val, ok := w.get(ctx); ok {
			select {
			case out <- val:
			case <-ctx.Done():
				return
			}
		}

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				if !isWrite(msg.Payload) {
					continue
				}
				val, ok := w.get(ctx)
				if !ok {
					continue
				}
				select {
				case out <- val:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

func (w *Watcher) get(ctx context.Context) ([]byte, bool) {
	val, err := w.client.Get(ctx, w.key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

// isWrite reports whether a keyspace event replaces the key's value.
func isWrite(event string) bool {
	switch event {
	case "set", "setex", "psetex", "setnx", "mset", "setrange", "append":
		return true
	}
	return false
}

// ErrNoAddress is returned by Dial for an empty address.
var ErrNoAddress = errors.New("redis address is required")

// Dial connects to addr, verifies the connection and enables keyspace
// notifications.
func Dial(ctx context.Context, addr string) (*redis.Client, error) {
	if addr == "" {
		return nil, ErrNoAddress
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close() //nolint:errcheck // Ping already failed
		return nil, fmt.Errorf("failed to reach redis at %s: %w", addr, err)
	}
	if err := client.ConfigSet(ctx, "notify-keyspace-events", "KEA").Err(); err != nil {
		_ = client.Close() //nolint:errcheck // ConfigSet already failed
		return nil, fmt.Errorf("failed to enable keyspace notifications: %w", err)
	}
	return client, nil
}
