// SPDX-License-Identifier: Unlicense OR MIT

package wgl

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Config is the pixel format and context to request.
type Config struct {
	Major, Minor int
	Core         bool

	RedBits, GreenBits, BlueBits, AlphaBits int
	DepthBits, StencilBits                  int
	Samples                                 int
	SRGB                                    bool
	DoubleBuffer                            bool
}

// Context is a WGL context bound to a window.
type Context struct {
	hwnd  windows.Handle
	hdc   windows.Handle
	hglrc windows.Handle
	ext   extensions
	lost  bool
}

// extensions are the WGL extension entry points. They are only available
// through a current context, so they are looked up with a throwaway
// context on a dummy window.
type extensions struct {
	choosePixelFormat    uintptr
	createContextAttribs uintptr
	swapInterval         uintptr
}

type pixelFormatDescriptor struct {
	nSize           uint16
	nVersion        uint16
	dwFlags         uint32
	iPixelType      byte
	cColorBits      byte
	cRedBits        byte
	cRedShift       byte
	cGreenBits      byte
	cGreenShift     byte
	cBlueBits       byte
	cBlueShift      byte
	cAlphaBits      byte
	cAlphaShift     byte
	cAccumBits      byte
	cAccumRedBits   byte
	cAccumGreenBits byte
	cAccumBlueBits  byte
	cAccumAlphaBits byte
	cDepthBits      byte
	cStencilBits    byte
	cAuxBuffers     byte
	iLayerType      byte
	bReserved       byte
	dwLayerMask     uint32
	dwVisibleMask   uint32
	dwDamageMask    uint32
}

type wndClassEx struct {
	cbSize        uint32
	style         uint32
	lpfnWndProc   uintptr
	cbClsExtra    int32
	cbWndExtra    int32
	hInstance     windows.Handle
	hIcon         windows.Handle
	hCursor       windows.Handle
	hbrBackground windows.Handle
	lpszMenuName  *uint16
	lpszClassName *uint16
	hIconSm       windows.Handle
}

const (
	_PFD_DOUBLEBUFFER   = 0x00000001
	_PFD_DRAW_TO_WINDOW = 0x00000004
	_PFD_SUPPORT_OPENGL = 0x00000020
	_PFD_TYPE_RGBA      = 0

	_CS_OWNDC = 0x0020

	_WGL_DRAW_TO_WINDOW_ARB          = 0x2001
	_WGL_ACCELERATION_ARB            = 0x2003
	_WGL_SUPPORT_OPENGL_ARB          = 0x2010
	_WGL_DOUBLE_BUFFER_ARB           = 0x2011
	_WGL_PIXEL_TYPE_ARB              = 0x2013
	_WGL_RED_BITS_ARB                = 0x2015
	_WGL_GREEN_BITS_ARB              = 0x2017
	_WGL_BLUE_BITS_ARB               = 0x2019
	_WGL_ALPHA_BITS_ARB              = 0x201B
	_WGL_DEPTH_BITS_ARB              = 0x2022
	_WGL_STENCIL_BITS_ARB            = 0x2023
	_WGL_FULL_ACCELERATION_ARB       = 0x2027
	_WGL_TYPE_RGBA_ARB               = 0x202B
	_WGL_SAMPLE_BUFFERS_ARB          = 0x2041
	_WGL_SAMPLES_ARB                 = 0x2042
	_WGL_FRAMEBUFFER_SRGB_CAPABLE    = 0x20A9
	_WGL_CONTEXT_MAJOR_VERSION_ARB   = 0x2091
	_WGL_CONTEXT_MINOR_VERSION_ARB   = 0x2092
	_WGL_CONTEXT_PROFILE_MASK_ARB    = 0x9126
	_WGL_CONTEXT_CORE_PROFILE_BIT    = 0x1
)

const _WGL_CONTEXT_COMPATIBILITY_PROFILE_BIT = 0x2

var (
	// ErrUnsupported is returned when the driver lacks the ARB context
	// creation extensions.
	ErrUnsupported = errors.New("wgl: WGL_ARB_create_context not supported")
	// ErrNoPixelFormat is returned when no pixel format matches the
	// Config.
	ErrNoPixelFormat = errors.New("wgl: no matching pixel format")
)

var (
	kernel32          = windows.NewLazySystemDLL("kernel32.dll")
	_GetModuleHandleW = kernel32.NewProc("GetModuleHandleW")

	user32            = windows.NewLazySystemDLL("user32.dll")
	_CreateWindowEx   = user32.NewProc("CreateWindowExW")
	_DefWindowProc    = user32.NewProc("DefWindowProcW")
	_DestroyWindow    = user32.NewProc("DestroyWindow")
	_GetDC            = user32.NewProc("GetDC")
	_IsWindow         = user32.NewProc("IsWindow")
	_RegisterClassExW = user32.NewProc("RegisterClassExW")
	_ReleaseDC        = user32.NewProc("ReleaseDC")

	gdi32                = windows.NewLazySystemDLL("gdi32.dll")
	_ChoosePixelFormat   = gdi32.NewProc("ChoosePixelFormat")
	_DescribePixelFormat = gdi32.NewProc("DescribePixelFormat")
	_SetPixelFormat      = gdi32.NewProc("SetPixelFormat")
	_SwapBuffers         = gdi32.NewProc("SwapBuffers")

	opengl32           = windows.NewLazySystemDLL("opengl32.dll")
	_wglCreateContext  = opengl32.NewProc("wglCreateContext")
	_wglDeleteContext  = opengl32.NewProc("wglDeleteContext")
	_wglGetProcAddress = opengl32.NewProc("wglGetProcAddress")
	_wglMakeCurrent    = opengl32.NewProc("wglMakeCurrent")
)

var (
	dummyClassOnce sync.Once
	dummyClass     uint16
	dummyClassErr  error
)

// NewContext creates a context for hwnd. The context is not current on
// return. The calling goroutine must be locked to its thread.
func NewContext(hwnd uintptr, cfg Config) (*Context, error) {
	ext, err := loadExtensions()
	if err != nil {
		return nil, err
	}
	c := &Context{hwnd: windows.Handle(hwnd), ext: ext}
	c.hdc, err = getDC(c.hwnd)
	if err != nil {
		return nil, err
	}
	if err := c.setPixelFormat(cfg); err != nil {
		releaseDC(c.hwnd, c.hdc)
		return nil, err
	}
	profile := _WGL_CONTEXT_COMPATIBILITY_PROFILE_BIT
	if cfg.Core {
		profile = _WGL_CONTEXT_CORE_PROFILE_BIT
	}
	attribs := []int32{
		_WGL_CONTEXT_MAJOR_VERSION_ARB, int32(cfg.Major),
		_WGL_CONTEXT_MINOR_VERSION_ARB, int32(cfg.Minor),
		_WGL_CONTEXT_PROFILE_MASK_ARB, int32(profile),
		0,
	}
	r, _, err := syscall.SyscallN(ext.createContextAttribs, uintptr(c.hdc), 0, uintptr(unsafe.Pointer(&attribs[0])))
	runtime.KeepAlive(attribs)
	if r == 0 {
		releaseDC(c.hwnd, c.hdc)
		return nil, fmt.Errorf("wgl: wglCreateContextAttribsARB(%d.%d) failed: %v", cfg.Major, cfg.Minor, err)
	}
	c.hglrc = windows.Handle(r)
	return c, nil
}

func (c *Context) setPixelFormat(cfg Config) error {
	attribs := []int32{
		_WGL_DRAW_TO_WINDOW_ARB, 1,
		_WGL_SUPPORT_OPENGL_ARB, 1,
		_WGL_ACCELERATION_ARB, _WGL_FULL_ACCELERATION_ARB,
		_WGL_PIXEL_TYPE_ARB, _WGL_TYPE_RGBA_ARB,
		_WGL_DOUBLE_BUFFER_ARB, boolAttrib(cfg.DoubleBuffer),
		_WGL_RED_BITS_ARB, int32(cfg.RedBits),
		_WGL_GREEN_BITS_ARB, int32(cfg.GreenBits),
		_WGL_BLUE_BITS_ARB, int32(cfg.BlueBits),
		_WGL_ALPHA_BITS_ARB, int32(cfg.AlphaBits),
		_WGL_DEPTH_BITS_ARB, int32(cfg.DepthBits),
		_WGL_STENCIL_BITS_ARB, int32(cfg.StencilBits),
	}
	if cfg.Samples > 1 {
		attribs = append(attribs,
			_WGL_SAMPLE_BUFFERS_ARB, 1,
			_WGL_SAMPLES_ARB, int32(cfg.Samples),
		)
	}
	if cfg.SRGB {
		attribs = append(attribs, _WGL_FRAMEBUFFER_SRGB_CAPABLE, 1)
	}
	attribs = append(attribs, 0)
	var format int32
	var n uint32
	r, _, _ := syscall.SyscallN(c.ext.choosePixelFormat,
		uintptr(c.hdc),
		uintptr(unsafe.Pointer(&attribs[0])),
		0,
		1,
		uintptr(unsafe.Pointer(&format)),
		uintptr(unsafe.Pointer(&n)),
	)
	runtime.KeepAlive(attribs)
	if r == 0 || n == 0 {
		return ErrNoPixelFormat
	}
	var pfd pixelFormatDescriptor
	describePixelFormat(c.hdc, format, &pfd)
	return setPixelFormat(c.hdc, format, &pfd)
}

func (c *Context) MakeCurrent() error {
	if c.lost {
		return errors.New("wgl: context lost")
	}
	if err := wglMakeCurrent(c.hdc, c.hglrc); err != nil {
		if !isWindow(c.hwnd) {
			c.lost = true
		}
		return err
	}
	return nil
}

func (c *Context) ReleaseCurrent() error {
	return wglMakeCurrent(0, 0)
}

func (c *Context) SwapBuffers() error {
	r, _, err := _SwapBuffers.Call(uintptr(c.hdc))
	if r == 0 {
		if !isWindow(c.hwnd) {
			c.lost = true
		}
		return fmt.Errorf("wgl: SwapBuffers failed: %v", err)
	}
	return nil
}

// SetSwapInterval calls wglSwapIntervalEXT.
func (c *Context) SetSwapInterval(interval int) error {
	if c.ext.swapInterval == 0 {
		return errors.New("wgl: WGL_EXT_swap_control not supported")
	}
	r, _, err := syscall.SyscallN(c.ext.swapInterval, uintptr(interval))
	if r == 0 {
		return fmt.Errorf("wgl: wglSwapIntervalEXT failed: %v", err)
	}
	return nil
}

// Lost reports whether the window of c is gone.
func (c *Context) Lost() bool {
	if !c.lost && !isWindow(c.hwnd) {
		c.lost = true
	}
	return c.lost
}

func (c *Context) Release() {
	if c.hglrc != 0 {
		_wglDeleteContext.Call(uintptr(c.hglrc))
		c.hglrc = 0
	}
	if c.hdc != 0 {
		releaseDC(c.hwnd, c.hdc)
		c.hdc = 0
	}
}

// ProcAddress returns the address of a GL entry point, or 0. Core 1.1
// functions are only exported by opengl32.dll.
func ProcAddress(name string) uintptr {
	cname, err := windows.BytePtrFromString(name)
	if err != nil {
		return 0
	}
	r, _, _ := _wglGetProcAddress.Call(uintptr(unsafe.Pointer(cname)))
	runtime.KeepAlive(cname)
	switch int(r) {
	case 0, 1, 2, 3, -1:
	default:
		return r
	}
	p := opengl32.NewProc(name)
	if p.Find() != nil {
		return 0
	}
	return p.Addr()
}

func loadExtensions() (extensions, error) {
	var ext extensions
	cls, err := registerDummyClass()
	if err != nil {
		return ext, err
	}
	hInst, err := getModuleHandle()
	if err != nil {
		return ext, err
	}
	hwnd, err := createWindowEx(0, cls, "gfx", 0, 0, 0, 1, 1, 0, 0, hInst, 0)
	if err != nil {
		return ext, err
	}
	defer _DestroyWindow.Call(uintptr(hwnd))
	hdc, err := getDC(hwnd)
	if err != nil {
		return ext, err
	}
	defer releaseDC(hwnd, hdc)
	pfd := pixelFormatDescriptor{
		nVersion:     1,
		dwFlags:      _PFD_DRAW_TO_WINDOW | _PFD_SUPPORT_OPENGL | _PFD_DOUBLEBUFFER,
		iPixelType:   _PFD_TYPE_RGBA,
		cColorBits:   32,
		cAlphaBits:   8,
		cDepthBits:   24,
		cStencilBits: 8,
	}
	pfd.nSize = uint16(unsafe.Sizeof(pfd))
	r, _, err := _ChoosePixelFormat.Call(uintptr(hdc), uintptr(unsafe.Pointer(&pfd)))
	if r == 0 {
		return ext, fmt.Errorf("wgl: ChoosePixelFormat failed: %v", err)
	}
	if err := setPixelFormat(hdc, int32(r), &pfd); err != nil {
		return ext, err
	}
	hglrc, _, err := _wglCreateContext.Call(uintptr(hdc))
	if hglrc == 0 {
		return ext, fmt.Errorf("wgl: wglCreateContext failed: %v", err)
	}
	defer _wglDeleteContext.Call(hglrc)
	if err := wglMakeCurrent(hdc, windows.Handle(hglrc)); err != nil {
		return ext, err
	}
	defer wglMakeCurrent(0, 0)
	ext.choosePixelFormat = ProcAddress("wglChoosePixelFormatARB")
	ext.createContextAttribs = ProcAddress("wglCreateContextAttribsARB")
	ext.swapInterval = ProcAddress("wglSwapIntervalEXT")
	if ext.choosePixelFormat == 0 || ext.createContextAttribs == 0 {
		return ext, ErrUnsupported
	}
	return ext, nil
}

func registerDummyClass() (uint16, error) {
	dummyClassOnce.Do(func() {
		hInst, err := getModuleHandle()
		if err != nil {
			dummyClassErr = err
			return
		}
		wcls := wndClassEx{
			style:         _CS_OWNDC,
			lpfnWndProc:   _DefWindowProc.Addr(),
			hInstance:     hInst,
			lpszClassName: windows.StringToUTF16Ptr("GfxDummyWindow"),
		}
		wcls.cbSize = uint32(unsafe.Sizeof(wcls))
		r, _, err := _RegisterClassExW.Call(uintptr(unsafe.Pointer(&wcls)))
		if r == 0 {
			dummyClassErr = fmt.Errorf("wgl: RegisterClassExW failed: %v", err)
			return
		}
		dummyClass = uint16(r)
	})
	return dummyClass, dummyClassErr
}

func boolAttrib(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func getModuleHandle() (windows.Handle, error) {
	h, _, err := _GetModuleHandleW.Call(uintptr(0))
	if h == 0 {
		return 0, fmt.Errorf("wgl: GetModuleHandleW failed: %v", err)
	}
	return windows.Handle(h), nil
}

func createWindowEx(dwExStyle uint32, lpClassName uint16, lpWindowName string, dwStyle uint32, x, y, w, h int32, hWndParent, hMenu, hInstance windows.Handle, lpParam uintptr) (windows.Handle, error) {
	hwnd, _, err := _CreateWindowEx.Call(
		uintptr(dwExStyle),
		uintptr(lpClassName),
		uintptr(unsafe.Pointer(windows.StringToUTF16Ptr(lpWindowName))),
		uintptr(dwStyle),
		uintptr(x), uintptr(y),
		uintptr(w), uintptr(h),
		uintptr(hWndParent),
		uintptr(hMenu),
		uintptr(hInstance),
		uintptr(lpParam))
	if hwnd == 0 {
		return 0, fmt.Errorf("wgl: CreateWindowEx failed: %v", err)
	}
	return windows.Handle(hwnd), nil
}

func getDC(hwnd windows.Handle) (windows.Handle, error) {
	hdc, _, err := _GetDC.Call(uintptr(hwnd))
	if hdc == 0 {
		return 0, fmt.Errorf("wgl: GetDC failed: %v", err)
	}
	return windows.Handle(hdc), nil
}

func releaseDC(hwnd, hdc windows.Handle) {
	_ReleaseDC.Call(uintptr(hwnd), uintptr(hdc))
}

func isWindow(hwnd windows.Handle) bool {
	r, _, _ := _IsWindow.Call(uintptr(hwnd))
	return r != 0
}

func describePixelFormat(hdc windows.Handle, format int32, pfd *pixelFormatDescriptor) {
	_DescribePixelFormat.Call(uintptr(hdc), uintptr(format), unsafe.Sizeof(*pfd), uintptr(unsafe.Pointer(pfd)))
}

func setPixelFormat(hdc windows.Handle, format int32, pfd *pixelFormatDescriptor) error {
	r, _, err := _SetPixelFormat.Call(uintptr(hdc), uintptr(format), uintptr(unsafe.Pointer(pfd)))
	if r == 0 {
		return fmt.Errorf("wgl: SetPixelFormat failed: %v", err)
	}
	return nil
}

func wglMakeCurrent(hdc, hglrc windows.Handle) error {
	r, _, err := _wglMakeCurrent.Call(uintptr(hdc), uintptr(hglrc))
	if r == 0 {
		return fmt.Errorf("wgl: wglMakeCurrent failed: %v", err)
	}
	return nil
}
