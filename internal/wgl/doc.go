// SPDX-License-Identifier: Unlicense OR MIT

// Package wgl creates OpenGL contexts for Win32 windows through the
// WGL_ARB_pixel_format and WGL_ARB_create_context extensions.
package wgl
