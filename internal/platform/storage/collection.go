package storage

import (
	"context"
	"errors"
	"sync"
)

// ErrUnchanged lets a mutation report that nothing needs persisting.
var ErrUnchanged = errors.New("collection unchanged")

type sizeObserver interface {
	SetCollectionSize(collection string, size int)
}

// Collection holds one persisted entity list in memory. Every mutation runs
// under the lock and is persisted in full before it becomes visible; a
// failed persist leaves the previous contents in place.
type Collection[T any] struct {
	mu    sync.Mutex
	store *Store
	key   string
	items []T
}

func OpenCollection[T any](ctx context.Context, store *Store, key string, seed func() []T) (*Collection[T], error) {
	items, err := LoadOrSeed(ctx, store, key, seed)
	if err != nil {
		return nil, err
	}
	c := &Collection[T]{store: store, key: key, items: items}
	c.reportSize()
	return c, nil
}

func (c *Collection[T]) Key() string {
	return c.key
}

// Snapshot returns a copy of the current items in insertion order.
func (c *Collection[T]) Snapshot() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Mutate hands fn a copy of the items and persists whatever it returns.
// fn returning ErrUnchanged skips the write and Mutate returns nil.
// committed callbacks run after a successful write while the lock is still
// held, so whatever they publish follows persist order.
func (c *Collection[T]) Mutate(ctx context.Context, fn func(items []T) ([]T, error), committed ...func()) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	working := make([]T, len(c.items))
	copy(working, c.items)
	next, err := fn(working)
	if errors.Is(err, ErrUnchanged) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := c.store.Save(ctx, c.key, next); err != nil {
		return err
	}
	c.items = next
	c.reportSize()
	for _, hook := range committed {
		hook()
	}
	return nil
}

func (c *Collection[T]) reportSize() {
	if so, ok := c.store.observer.(sizeObserver); ok {
		so.SetCollectionSize(c.key, len(c.items))
	}
}
