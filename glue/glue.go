// SPDX-License-Identifier: Unlicense OR MIT

/*
Package glue creates GL rendering contexts for native windows.

Load turns a window.Handle into a Context: a WGL context on Windows, a
GLX context on X11 and a WebGL2 context in the browser. Every Context
carries a dispatch table implementing gl.API with the same call surface
on all platforms.

# Current context

A GL context is process state bound to an OS thread. Load returns the
context current on the calling thread, which is locked to the calling
goroutine until ReleaseCurrent. Use Do for scoped access from other
goroutines. A thread has at most one current context, and a context is
current on at most one thread.
*/
package glue

import (
	"errors"
	"image"
	"runtime"

	"gfx/internal/gl"
	"gfx/window"
)

// Backend is a platform rendering context.
type Backend interface {
	// MakeCurrent binds the context to the calling thread.
	MakeCurrent() error
	// ReleaseCurrent unbinds the context from the calling thread.
	ReleaseCurrent() error
	// SwapBuffers presents the back buffer.
	SwapBuffers() error
	// SetSwapInterval sets the number of display refreshes per swap.
	SetSwapInterval(interval int) error
	// Lost reports whether the platform has revoked the context.
	Lost() bool
	// Release destroys the context.
	Release()
}

// resizer is implemented by backends that observe the size of their
// window.
type resizer interface {
	Resizes() <-chan image.Point
}

// Context is a GL context bound to a window.
type Context struct {
	backend Backend
	funcs   gl.API
	cfg     Config

	// thread is the OS thread the context is current on, or 0. It is
	// guarded by bindings.mu.
	thread   uint64
	lost     bool
	released bool
}

// newBackend creates the platform context for a window. The calling
// goroutine is locked to its thread. The returned context must not be
// left current.
var newBackend func(win window.Handle, cfg Config) (Backend, gl.API, error)

// NewContext wraps a platform context and its dispatch table. It is
// useful for embedding contexts created elsewhere and for tests.
func NewContext(b Backend, f gl.API, cfg Config) *Context {
	return &Context{backend: b, funcs: f, cfg: cfg}
}

// Load creates a context for win matching cfg and makes it current on
// the calling thread.
//
// Load fails with ErrInvalidWindowHandle for a nil or null handle, with
// ErrInvalidConfig if cfg does not validate, with ErrUnsupportedBackend if
// the platform cannot create GL contexts for win, and with
// ErrContextCreation if no pixel format matches cfg or the driver refuses
// the context.
func Load(win window.Handle, cfg Config) (*Context, error) {
	if win == nil || !win.Valid() {
		return nil, ErrInvalidWindowHandle
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	b, f, err := newBackend(win, cfg)
	if err != nil {
		Logger().Debug("glue: context creation failed", "platform", win.Platform(), "error", err)
		return nil, err
	}
	c := NewContext(b, f, cfg)
	if err := c.MakeCurrent(); err != nil {
		b.Release()
		return nil, creationError(err, nil)
	}
	if err := c.SetSwapInterval(cfg.SwapInterval()); err != nil {
		Logger().Debug("glue: swap interval not set", "error", err)
	}
	Logger().Debug("glue: context created",
		"platform", win.Platform(),
		"version", cfg.Version,
		"profile", cfg.Profile,
		"depth", cfg.DepthBits,
		"stencil", cfg.StencilBits,
		"samples", cfg.Samples,
	)
	return c, nil
}

// LoadRelaxed is like Load, but retries with cfg.Relax while context
// creation fails with ErrContextCreation. Context.Config reports the
// configuration that succeeded.
func LoadRelaxed(win window.Handle, cfg Config) (*Context, error) {
	for {
		c, err := Load(win, cfg)
		if err == nil || !errors.Is(err, ErrContextCreation) {
			return c, err
		}
		next, ok := cfg.Relax()
		if !ok {
			return nil, err
		}
		Logger().Debug("glue: retrying with relaxed config", "error", err)
		cfg = next
	}
}

// Functions returns the dispatch table of c. Calls are only valid while c
// is current on the calling thread.
func (c *Context) Functions() gl.API {
	return c.funcs
}

// Config returns the configuration c was created with.
func (c *Context) Config() Config {
	return c.cfg
}

// MakeCurrent makes c current on the calling OS thread and locks the
// calling goroutine to it. Any other context current on the thread is
// released. It fails if c is current on another thread.
func (c *Context) MakeCurrent() error {
	if err := c.check(); err != nil {
		return err
	}
	if err := bind(c); err != nil {
		if c.Lost() {
			return ErrContextLost
		}
		return err
	}
	return nil
}

// ReleaseCurrent releases c from the calling thread and unlocks it.
func (c *Context) ReleaseCurrent() error {
	return unbind(c)
}

// Do runs f with c current on the calling thread. If c was not already
// current, it is released afterwards.
func (c *Context) Do(f func() error) error {
	if Current() == c {
		return f()
	}
	if err := c.MakeCurrent(); err != nil {
		return err
	}
	defer c.ReleaseCurrent()
	return f()
}

// SwapBuffers presents the back buffer. A failed swap means the context
// is gone: it returns ErrContextLost, as will every later call.
func (c *Context) SwapBuffers() error {
	if err := c.check(); err != nil {
		return err
	}
	if err := c.backend.SwapBuffers(); err != nil {
		c.markLost(err)
		return ErrContextLost
	}
	return nil
}

// SetSwapInterval sets the number of display refreshes between swaps.
func (c *Context) SetSwapInterval(interval int) error {
	if err := c.check(); err != nil {
		return err
	}
	return c.backend.SetSwapInterval(interval)
}

// Lost reports whether the platform has revoked c.
func (c *Context) Lost() bool {
	if !c.lost && !c.released && c.backend.Lost() {
		c.markLost(nil)
	}
	return c.lost
}

// Resizes returns a channel of window size notifications, or nil if the
// platform does not observe the window.
func (c *Context) Resizes() <-chan image.Point {
	if r, ok := c.backend.(resizer); ok {
		return r.Resizes()
	}
	return nil
}

// Release destroys c. It is released from the calling thread if current
// there.
func (c *Context) Release() {
	if c.released {
		return
	}
	if Current() == c {
		unbind(c)
	} else {
		forget(c)
	}
	c.released = true
	c.backend.Release()
}

func (c *Context) check() error {
	switch {
	case c.released:
		return errReleased
	case c.Lost():
		return ErrContextLost
	}
	return nil
}

func (c *Context) markLost(cause error) {
	if c.lost {
		return
	}
	c.lost = true
	forget(c)
	if cause != nil {
		Logger().Warn("glue: context lost", "error", cause)
	} else {
		Logger().Warn("glue: context lost")
	}
}
