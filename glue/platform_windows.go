// SPDX-License-Identifier: Unlicense OR MIT

package glue

import (
	"fmt"

	"gfx/internal/gl"
	"gfx/internal/wgl"
	"gfx/window"
)

func init() {
	newBackend = newWGLBackend
}

func newWGLBackend(win window.Handle, cfg Config) (Backend, gl.API, error) {
	h, ok := win.(window.Win32)
	if !ok {
		if p, isPtr := win.(*window.Win32); isPtr {
			h, ok = *p, true
		}
	}
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s windows", ErrUnsupportedBackend, win.Platform())
	}
	ctx, err := wgl.NewContext(h.HWND, wgl.Config{
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
		return nil, nil, creationError(err, wgl.ErrUnsupported)
	}
	// Entry points are resolved through the current context.
	if err := ctx.MakeCurrent(); err != nil {
		ctx.Release()
		return nil, nil, creationError(err, nil)
	}
	procs, err := gl.LoadProcs(wgl.ProcAddress)
	ctx.ReleaseCurrent()
	if err != nil {
		ctx.Release()
		return nil, nil, creationError(err, nil)
	}
	return ctx, gl.NewFunctions(procs), nil
}
