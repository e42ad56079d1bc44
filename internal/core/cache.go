package core

import "sync"

// Cache owns one lazily computed value. It is scoped to the component that
// creates it and is only cleared by an explicit Invalidate.
type Cache[T any] struct {
	mu    sync.Mutex
	value T
	set   bool
}

func (c *Cache[T]) Get() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value, c.set
}

func (c *Cache[T]) Set(value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = value
	c.set = true
}

func (c *Cache[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	c.value = zero
	c.set = false
}
