// SPDX-License-Identifier: Unlicense OR MIT

package glue

import (
	"errors"
	"fmt"
	"image"
	"syscall/js"

	"gfx/internal/gl"
	"gfx/window"
)

// webglBackend is a WebGL2 context. The browser presents the canvas after
// every animation frame, so binding and swapping are no-ops.
type webglBackend struct {
	ctx    js.Value
	canvas js.Value

	lost     bool
	onLost   js.Func
	resize   js.Func
	observer js.Value
	resizes  chan image.Point
}

func init() {
	newBackend = newWebGLBackend
}

func newWebGLBackend(win window.Handle, cfg Config) (Backend, gl.API, error) {
	h, ok := win.(window.WebCanvas)
	if !ok {
		if p, isPtr := win.(*window.WebCanvas); isPtr {
			h, ok = *p, true
		}
	}
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s windows", ErrUnsupportedBackend, win.Platform())
	}
	cnv := h.Element
	if cnv.IsUndefined() || cnv.IsNull() {
		cnv = js.Global().Get("document").Call("getElementById", h.ElementID)
		if cnv.IsNull() {
			return nil, nil, fmt.Errorf("%w: no element with id %q", ErrInvalidWindowHandle, h.ElementID)
		}
	}
	attrs := map[string]any{
		"alpha":     cfg.AlphaBits > 0,
		"depth":     cfg.DepthBits > 0,
		"stencil":   cfg.StencilBits > 0,
		"antialias": cfg.Multisampled(),
		// Enable low latency rendering.
		// See https://developers.google.com/web/updates/2019/05/desynchronized.
		"desynchronized":        true,
		"preserveDrawingBuffer": !cfg.DoubleBuffer,
	}
	ctx := cnv.Call("getContext", "webgl2", attrs)
	if ctx.IsNull() {
		return nil, nil, fmt.Errorf("%w: webgl2 is not supported", ErrUnsupportedBackend)
	}
	f, err := gl.NewFunctions(ctx)
	if err != nil {
		return nil, nil, creationError(err, nil)
	}
	b := &webglBackend{
		ctx:     ctx,
		canvas:  cnv,
		resizes: make(chan image.Point, 1),
	}
	b.onLost = js.FuncOf(func(this js.Value, args []js.Value) any {
		b.lost = true
		return nil
	})
	cnv.Call("addEventListener", "webglcontextlost", b.onLost)
	b.observeSize()
	return b, f, nil
}

// observeSize forwards canvas size changes through a ResizeObserver, if
// the browser has one.
func (b *webglBackend) observeSize() {
	ctor := js.Global().Get("ResizeObserver")
	if ctor.IsUndefined() {
		return
	}
	b.resize = js.FuncOf(func(this js.Value, args []js.Value) any {
		sz := image.Pt(b.canvas.Get("clientWidth").Int(), b.canvas.Get("clientHeight").Int())
		select {
		case <-b.resizes:
		default:
		}
		b.resizes <- sz
		return nil
	})
	b.observer = ctor.New(b.resize)
	b.observer.Call("observe", b.canvas)
}

func (b *webglBackend) MakeCurrent() error {
	if b.Lost() {
		return errors.New("webgl: context lost")
	}
	return nil
}

func (b *webglBackend) ReleaseCurrent() error {
	return nil
}

func (b *webglBackend) SwapBuffers() error {
	if b.Lost() {
		return errors.New("webgl: context lost")
	}
	return nil
}

// SetSwapInterval is a no-op: the browser paces presentation.
func (b *webglBackend) SetSwapInterval(interval int) error {
	return nil
}

func (b *webglBackend) Lost() bool {
	if !b.lost && b.ctx.Call("isContextLost").Bool() {
		b.lost = true
	}
	return b.lost
}

func (b *webglBackend) Resizes() <-chan image.Point {
	if b.resize.IsUndefined() {
		return nil
	}
	return b.resizes
}

func (b *webglBackend) Release() {
	b.canvas.Call("removeEventListener", "webglcontextlost", b.onLost)
	b.onLost.Release()
	if !b.observer.IsUndefined() {
		b.observer.Call("disconnect")
		b.resize.Release()
	}
	if ext := b.ctx.Call("getExtension", "WEBGL_lose_context"); !ext.IsNull() {
		ext.Call("loseContext")
	}
}
