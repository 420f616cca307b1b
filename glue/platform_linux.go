// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux && cgo

package glue

import (
	"fmt"
	"image"

	"gfx/internal/gl"
	"gfx/internal/glx"
	"gfx/internal/x11"
	"gfx/window"
)

// glxBackend is a GLX context with an optional observer of its window.
type glxBackend struct {
	*glx.Context
	obs *x11.Observer
}

func init() {
	newBackend = newGLXBackend
}

func newGLXBackend(win window.Handle, cfg Config) (Backend, gl.API, error) {
	h, ok := win.(window.Xlib)
	if !ok {
		if p, isPtr := win.(*window.Xlib); isPtr {
			h, ok = *p, true
		}
	}
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s windows", ErrUnsupportedBackend, win.Platform())
	}
	ctx, err := glx.NewContext(h.Display, h.Window, h.Screen, glx.Config{
		Major:        cfg.Version.Major,
		Minor:        cfg.Version.Minor,
		Core:         cfg.Profile == ProfileCore,
		RedBits:      cfg.RedBits,
		GreenBits:    cfg.GreenBits,
		BlueBits:     cfg.BlueBits,
		AlphaBits:    cfg.AlphaBits,
		DepthBits:    cfg.DepthBits,
		StencilBits:  cfg.StencilBits,
		Samples:      cfg.Samples,
		SRGB:         cfg.SRGB,
		DoubleBuffer: cfg.DoubleBuffer,
	})
	if err != nil {
		return nil, nil, creationError(err, glx.ErrUnsupported)
	}
	procs, err := gl.LoadProcs(glx.ProcAddress)
	if err != nil {
		ctx.Release()
		return nil, nil, creationError(err, nil)
	}
	b := &glxBackend{Context: ctx}
	obs, err := x11.Observe(h.DisplayName, uint32(h.Window))
	if err != nil {
		Logger().Debug("glue: window not observed", "error", err)
	} else {
		b.obs = obs
	}
	return b, gl.NewFunctions(procs), nil
}

// Lost reports whether the window was destroyed.
func (b *glxBackend) Lost() bool {
	if b.obs != nil && b.obs.Gone() {
		b.Context.MarkLost()
	}
	return b.Context.Lost()
}

func (b *glxBackend) Resizes() <-chan image.Point {
	if b.obs == nil {
		return nil
	}
	return b.obs.Resizes()
}

func (b *glxBackend) Release() {
	if b.obs != nil {
		b.obs.Close()
		b.obs = nil
	}
	b.Context.Release()
}
