// SPDX-License-Identifier: Unlicense OR MIT

package glue

import (
	"fmt"
	"runtime"
	"sync"
)

// bindings maps OS threads to the context current on them. A GL context
// is current on at most one thread, and a thread has at most one current
// context.
var bindings struct {
	mu       sync.Mutex
	byThread map[uint64]*Context
}

// Current returns the context current on the calling OS thread, or nil.
func Current() *Context {
	tid := threadID()
	bindings.mu.Lock()
	defer bindings.mu.Unlock()
	return bindings.byThread[tid]
}

// bind makes c current on the calling thread, replacing any other context
// current there. The thread stays locked to the calling goroutine until
// unbind.
func bind(c *Context) error {
	runtime.LockOSThread()
	tid := threadID()
	bindings.mu.Lock()
	defer bindings.mu.Unlock()
	switch c.thread {
	case tid:
		// Already current; drop the extra lock.
		runtime.UnlockOSThread()
		return nil
	case 0:
	default:
		runtime.UnlockOSThread()
		return fmt.Errorf("glue: context is current on thread %d", c.thread)
	}
	if prev := bindings.byThread[tid]; prev != nil {
		prev.thread = 0
		prev.backend.ReleaseCurrent()
		runtime.UnlockOSThread()
	}
	delete(bindings.byThread, tid)
	if err := c.backend.MakeCurrent(); err != nil {
		runtime.UnlockOSThread()
		return err
	}
	if bindings.byThread == nil {
		bindings.byThread = make(map[uint64]*Context)
	}
	bindings.byThread[tid] = c
	c.thread = tid
	return nil
}

// unbind releases c from the calling thread.
func unbind(c *Context) error {
	tid := threadID()
	bindings.mu.Lock()
	defer bindings.mu.Unlock()
	switch c.thread {
	case 0:
		return nil
	case tid:
	default:
		return fmt.Errorf("glue: context is current on thread %d, not %d", c.thread, tid)
	}
	delete(bindings.byThread, tid)
	c.thread = 0
	err := c.backend.ReleaseCurrent()
	runtime.UnlockOSThread()
	return err
}

// forget drops the binding of c without touching the platform context.
// It is used for lost and released contexts, which may be bound on
// another thread.
func forget(c *Context) {
	tid := threadID()
	bindings.mu.Lock()
	defer bindings.mu.Unlock()
	if c.thread == 0 {
		return
	}
	if bindings.byThread[c.thread] == c {
		delete(bindings.byThread, c.thread)
	}
	if c.thread == tid {
		runtime.UnlockOSThread()
	}
	c.thread = 0
}
