// SPDX-License-Identifier: Unlicense OR MIT

// Package window describes native window handles. Handles are borrowed:
// the caller creates the window, keeps it alive while a context uses it
// and destroys it afterwards.
package window

import (
	"fmt"
	"unsafe"
)

// Platform identifies the windowing system of a Handle.
type Platform uint8

const (
	PlatformWin32 Platform = iota + 1
	PlatformXlib
	PlatformWeb
)

// Handle is a reference to a native window. It is implemented by Win32,
// Xlib and WebCanvas.
type Handle interface {
	// Platform returns the windowing system of the handle.
	Platform() Platform
	// Valid reports whether the handle refers to a window.
	Valid() bool
	implementsHandle()
}

// Win32 is a handle to a Windows window.
type Win32 struct {
	// HWND is the window handle.
	HWND uintptr
	// HINSTANCE is the module instance that registered the window class.
	// It may be zero.
	HINSTANCE uintptr
}

// Xlib is a handle to an X11 window.
type Xlib struct {
	// Display is a pointer to the X11 Display created by XOpenDisplay.
	Display unsafe.Pointer
	// Window is the X11 window ID as returned by XCreateWindow.
	Window uintptr
	// Screen is the screen number of the window.
	Screen int
	// DisplayName is the name passed to XOpenDisplay. It is used to open a
	// separate connection for observing window events; empty means
	// $DISPLAY.
	DisplayName string
}

// WebCanvas is a handle to an HTML canvas element.
type WebCanvas struct {
	// Element is the canvas element. If it is unset, the element is looked
	// up by ElementID.
	Element Canvas
	// ElementID is the id attribute of the canvas element.
	ElementID string
}

func (Win32) Platform() Platform     { return PlatformWin32 }
func (Xlib) Platform() Platform      { return PlatformXlib }
func (WebCanvas) Platform() Platform { return PlatformWeb }

func (h Win32) Valid() bool { return h.HWND != 0 }
func (h Xlib) Valid() bool  { return h.Display != nil && h.Window != 0 }
func (h WebCanvas) Valid() bool {
	return h.ElementID != "" || validCanvas(h.Element)
}

func (Win32) implementsHandle()     {}
func (Xlib) implementsHandle()      {}
func (WebCanvas) implementsHandle() {}

func (p Platform) String() string {
	switch p {
	case PlatformWin32:
		return "win32"
	case PlatformXlib:
		return "xlib"
	case PlatformWeb:
		return "web"
	default:
		return fmt.Sprintf("Platform(%d)", uint8(p))
	}
}
