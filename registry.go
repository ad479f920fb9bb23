package coro

import (
	"sync"

	"github.com/petermattis/goid"
)

// registry maps a runner goroutine id to the coroutine it executes.
// Entries are stored by the runner before it waits for its first
// request and deleted when it exits, so a lookup from any other
// goroutine misses.
var registry sync.Map

func register(c *core) int64 {
	id := goid.Get()
	registry.Store(id, c)
	return id
}

func unregister(id int64) {
	registry.Delete(id)
}

// current returns the coroutine whose runner is the calling goroutine.
func current() (*core, error) {
	v, ok := registry.Load(goid.Get())
	if !ok {
		return nil, ErrOutside
	}
	c := v.(*core)
	if c.Status() != Running {
		return nil, ErrOutside
	}
	return c, nil
}

// Inside reports whether the calling goroutine is executing the body of
// a coroutine, i.e. whether Yield would succeed.
func Inside() bool {
	_, err := current()
	return err == nil
}
