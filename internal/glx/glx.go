// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux && cgo

// Package glx creates OpenGL contexts for X11 windows through
// GLX_ARB_create_context.
package glx

/*
#cgo LDFLAGS: -lGL -lX11
#include <stdlib.h>
#include <X11/Xlib.h>
#include <GL/glx.h>

typedef GLXContext (*gfx_glXCreateContextAttribsARB)(Display *, GLXFBConfig, GLXContext, Bool, const int *);
typedef void (*gfx_glXSwapIntervalEXT)(Display *, GLXDrawable, int);

static int gfx_ignore_error(Display *dpy, XErrorEvent *ev) {
	return 0;
}

static XErrorHandler gfx_silence_errors(void) {
	return XSetErrorHandler(gfx_ignore_error);
}

static void gfx_restore_errors(XErrorHandler h) {
	XSetErrorHandler(h);
}

static GLXContext gfx_create_context(void *fn, Display *dpy, GLXFBConfig cfg, const int *attribs) {
	return ((gfx_glXCreateContextAttribsARB)fn)(dpy, cfg, NULL, True, attribs);
}

static void gfx_swap_interval(void *fn, Display *dpy, GLXDrawable d, int interval) {
	((gfx_glXSwapIntervalEXT)fn)(dpy, d, interval);
}

static GLXFBConfig gfx_config_at(GLXFBConfig *cfgs, int i) {
	return cfgs[i];
}
*/
import "C"

import (
	"errors"
	"fmt"
	"unsafe"
)

// Config is the framebuffer configuration and context to request.
type Config struct {
	Major, Minor int
	Core         bool

	RedBits, GreenBits, BlueBits, AlphaBits int
	DepthBits, StencilBits                  int
	Samples                                 int
	SRGB                                    bool
	DoubleBuffer                            bool
}

// Context is a GLX context bound to a window.
type Context struct {
	dpy          *C.Display
	win          C.Window
	ctx          C.GLXContext
	swapInterval unsafe.Pointer
	lost         bool
}

const (
	_GLX_FRAMEBUFFER_SRGB_CAPABLE_ARB      = 0x20B2
	_GLX_CONTEXT_MAJOR_VERSION_ARB         = 0x2091
	_GLX_CONTEXT_MINOR_VERSION_ARB         = 0x2092
	_GLX_CONTEXT_PROFILE_MASK_ARB          = 0x9126
	_GLX_CONTEXT_CORE_PROFILE_BIT_ARB      = 0x1
	_GLX_CONTEXT_COMPATIBILITY_PROFILE_BIT = 0x2
)

var (
	// ErrUnsupported is returned when the server lacks the ARB context
	// creation extension.
	ErrUnsupported = errors.New("glx: GLX_ARB_create_context not supported")
	// ErrNoFBConfig is returned when no framebuffer configuration matches
	// the Config.
	ErrNoFBConfig = errors.New("glx: no matching framebuffer config")
)

// NewContext creates a context for the window win on display. The context
// is not current on return.
func NewContext(display unsafe.Pointer, win uintptr, screen int, cfg Config) (*Context, error) {
	dpy := (*C.Display)(display)
	// Context creation failures are reported as X errors, which abort
	// the process with the default handler.
	prev := C.gfx_silence_errors()
	defer C.gfx_restore_errors(prev)

	createAttribs := procAddr("glXCreateContextAttribsARB")
	if createAttribs == nil {
		return nil, ErrUnsupported
	}
	attribs := []C.int{
		C.GLX_X_RENDERABLE, C.True,
		C.GLX_X_VISUAL_TYPE, C.GLX_TRUE_COLOR,
		C.GLX_DRAWABLE_TYPE, C.GLX_WINDOW_BIT,
		C.GLX_RENDER_TYPE, C.GLX_RGBA_BIT,
		C.GLX_RED_SIZE, C.int(cfg.RedBits),
		C.GLX_GREEN_SIZE, C.int(cfg.GreenBits),
		C.GLX_BLUE_SIZE, C.int(cfg.BlueBits),
		C.GLX_ALPHA_SIZE, C.int(cfg.AlphaBits),
		C.GLX_DEPTH_SIZE, C.int(cfg.DepthBits),
		C.GLX_STENCIL_SIZE, C.int(cfg.StencilBits),
		C.GLX_DOUBLEBUFFER, boolAttrib(cfg.DoubleBuffer),
	}
	if cfg.Samples > 1 {
		attribs = append(attribs,
			C.GLX_SAMPLE_BUFFERS, 1,
			C.GLX_SAMPLES, C.int(cfg.Samples),
		)
	}
	if cfg.SRGB {
		attribs = append(attribs, _GLX_FRAMEBUFFER_SRGB_CAPABLE_ARB, C.True)
	}
	attribs = append(attribs, C.None)
	cattribs := (*C.int)(C.malloc(C.size_t(len(attribs)) * C.size_t(unsafe.Sizeof(attribs[0]))))
	defer C.free(unsafe.Pointer(cattribs))
	copy(unsafe.Slice(cattribs, len(attribs)), attribs)

	var n C.int
	cfgs := C.glXChooseFBConfig(dpy, C.int(screen), cattribs, &n)
	if cfgs == nil || n == 0 {
		return nil, ErrNoFBConfig
	}
	fbcfg := C.gfx_config_at(cfgs, 0)
	C.XFree(unsafe.Pointer(cfgs))

	profile := C.int(_GLX_CONTEXT_COMPATIBILITY_PROFILE_BIT)
	if cfg.Core {
		profile = _GLX_CONTEXT_CORE_PROFILE_BIT_ARB
	}
	ctxAttribs := []C.int{
		_GLX_CONTEXT_MAJOR_VERSION_ARB, C.int(cfg.Major),
		_GLX_CONTEXT_MINOR_VERSION_ARB, C.int(cfg.Minor),
		_GLX_CONTEXT_PROFILE_MASK_ARB, profile,
		C.None,
	}
	cctx := (*C.int)(C.malloc(C.size_t(len(ctxAttribs)) * C.size_t(unsafe.Sizeof(ctxAttribs[0]))))
	defer C.free(unsafe.Pointer(cctx))
	copy(unsafe.Slice(cctx, len(ctxAttribs)), ctxAttribs)

	ctx := C.gfx_create_context(createAttribs, dpy, fbcfg, cctx)
	C.XSync(dpy, C.False)
	if ctx == nil {
		return nil, fmt.Errorf("glx: glXCreateContextAttribsARB(%d.%d) failed", cfg.Major, cfg.Minor)
	}
	c := &Context{
		dpy:          dpy,
		win:          C.Window(win),
		ctx:          ctx,
		swapInterval: procAddr("glXSwapIntervalEXT"),
	}
	// Check that the context can be bound before handing it out.
	if err := c.MakeCurrent(); err != nil {
		c.Release()
		return nil, err
	}
	c.ReleaseCurrent()
	return c, nil
}

func (c *Context) MakeCurrent() error {
	if c.lost {
		return errors.New("glx: context lost")
	}
	if C.glXMakeCurrent(c.dpy, C.GLXDrawable(c.win), c.ctx) == C.False {
		return errors.New("glx: glXMakeCurrent failed")
	}
	return nil
}

func (c *Context) ReleaseCurrent() error {
	if C.glXMakeCurrent(c.dpy, C.None, nil) == C.False {
		return errors.New("glx: glXMakeCurrent(None) failed")
	}
	return nil
}

// SwapBuffers presents the back buffer. GLX reports no failure, so a lost
// window is detected through Lost.
func (c *Context) SwapBuffers() error {
	if c.lost {
		return errors.New("glx: context lost")
	}
	C.glXSwapBuffers(c.dpy, C.GLXDrawable(c.win))
	return nil
}

// SetSwapInterval calls glXSwapIntervalEXT.
func (c *Context) SetSwapInterval(interval int) error {
	if c.swapInterval == nil {
		return errors.New("glx: GLX_EXT_swap_control not supported")
	}
	C.gfx_swap_interval(c.swapInterval, c.dpy, C.GLXDrawable(c.win), C.int(interval))
	return nil
}

// Lost reports whether MarkLost was called.
func (c *Context) Lost() bool {
	return c.lost
}

// MarkLost records that the window is gone. Later calls to MakeCurrent
// and SwapBuffers fail.
func (c *Context) MarkLost() {
	c.lost = true
}

func (c *Context) Release() {
	if c.ctx == nil {
		return
	}
	C.glXDestroyContext(c.dpy, c.ctx)
	c.ctx = nil
}

// ProcAddress returns the address of a GL or GLX entry point, or 0.
func ProcAddress(name string) uintptr {
	return uintptr(procAddr(name))
}

func procAddr(name string) unsafe.Pointer {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return unsafe.Pointer(C.glXGetProcAddressARB((*C.GLubyte)(unsafe.Pointer(cname))))
}

func boolAttrib(b bool) C.int {
	if b {
		return C.True
	}
	return C.False
}
