package local

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"

	"carrental-portal/internal/logger"
	"carrental-portal/internal/storage"
)

// collection is one view's cached copy of a stored JSON array. Mutations are
// read-modify-write of the whole array and are written through immediately.
// seen holds the bytes last read from or successfully written to the store,
// so reload can tell another writer's change from our own.
type collection[T any] struct {
	mu    sync.RWMutex
	key   string
	store *storage.Adapter
	items []T
	seen  []byte
	idOf  func(*T) string
	clone func(T) T
}

func newCollection[T any](ctx context.Context, store *storage.Adapter, key string, idOf func(*T) string, clone func(T) T) *collection[T] {
	c := &collection[T]{
		key:   key,
		store: store,
		items: []T{},
		idOf:  idOf,
		clone: clone,
	}
	c.reload(ctx)
	return c
}

// reload replaces the cached copy wholesale when the stored bytes differ
// from what this view last saw. A failed read keeps the cached copy.
func (c *collection[T]) reload(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := c.store.ReadRaw(ctx, c.key)
	if err != nil {
		logger.Warn("Poll skipped, keeping cached collection", "key", c.key, "items", len(c.items), "error", err)
		return false
	}
	if bytes.Equal(data, c.seen) {
		return false
	}
	c.items = storage.DecodeList[T](c.key, data)
	c.seen = data
	return true
}

// persist must be called with mu held. A failed write leaves the cached copy
// authoritative; the next successful write or a foreign change resolves it.
func (c *collection[T]) persist(ctx context.Context) bool {
	data, err := json.Marshal(c.items)
	if err != nil {
		logger.Error("Failed to serialize collection", "key", c.key, "error", err)
		return false
	}
	if !c.store.WriteRaw(ctx, c.key, data) {
		logger.Warn("Collection kept in memory only", "key", c.key, "items", len(c.items))
		return false
	}
	c.seen = data
	return true
}

func (c *collection[T]) indexOf(id string) int {
	for i := range c.items {
		if c.idOf(&c.items[i]) == id {
			return i
		}
	}
	return -1
}

func (c *collection[T]) get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var zero T
	i := c.indexOf(id)
	if i < 0 {
		return zero, false
	}
	return c.clone(c.items[i]), true
}

func (c *collection[T]) list(keep func(*T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.items))
	for i := range c.items {
		if keep == nil || keep(&c.items[i]) {
			out = append(out, c.clone(c.items[i]))
		}
	}
	return out
}

// insert appends item; false when the id is already taken
func (c *collection[T]) insert(ctx context.Context, item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.indexOf(c.idOf(&item)) >= 0 {
		return false
	}
	c.items = append(c.items, c.clone(item))
	c.persist(ctx)
	return true
}

// replace swaps the record with item's id; false when absent
func (c *collection[T]) replace(ctx context.Context, item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(c.idOf(&item))
	if i < 0 {
		return false
	}
	c.items[i] = c.clone(item)
	c.persist(ctx)
	return true
}

// remove deletes id; absent ids do not touch the store
func (c *collection[T]) remove(ctx context.Context, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.items = append(c.items[:i:i], c.items[i+1:]...)
	c.persist(ctx)
	return true
}
