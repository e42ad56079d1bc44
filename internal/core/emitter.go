package core

import "sync"

// Emitter is a minimal event stream. Listeners run synchronously on the
// goroutine that calls Fire, in registration order.
type Emitter[T any] struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]func(T)
	order     []int
}

// Subscribe registers listener and returns a function that removes it.
func (e *Emitter[T]) Subscribe(listener func(T)) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.listeners == nil {
		e.listeners = map[int]func(T){}
	}
	id := e.nextID
	e.nextID++
	e.listeners[id] = listener
	e.order = append(e.order, id)
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.listeners, id)
	}
}

func (e *Emitter[T]) Fire(value T) {
	e.mu.Lock()
	listeners := make([]func(T), 0, len(e.listeners))
	live := e.order[:0]
	for _, id := range e.order {
		if listener, ok := e.listeners[id]; ok {
			listeners = append(listeners, listener)
			live = append(live, id)
		}
	}
	e.order = live
	e.mu.Unlock()

	for _, listener := range listeners {
		listener(value)
	}
}
