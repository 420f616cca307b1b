// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux && cgo

package gl

/*
#cgo CFLAGS: -Werror
#include <stdint.h>
#include <stdlib.h>

// Entry points are called through the addresses in the dispatch table, so
// no GL headers or link-time GL library are needed. The trampolines are
// grouped by signature: u is a 32 bit integer or enum, b a GLboolean,
// f a float, d a double, z a pointer sized integer and p a pointer.

typedef unsigned char gfx_bool;

__attribute__ ((visibility ("hidden"))) void gfx_v(uintptr_t fn) {
	((void (*)(void))fn)();
}
__attribute__ ((visibility ("hidden"))) uint32_t gfx_u(uintptr_t fn) {
	return ((uint32_t (*)(void))fn)();
}
__attribute__ ((visibility ("hidden"))) void gfx_v_u(uintptr_t fn, uint32_t a) {
	((void (*)(uint32_t))fn)(a);
}
__attribute__ ((visibility ("hidden"))) uint32_t gfx_u_u(uintptr_t fn, uint32_t a) {
	return ((uint32_t (*)(uint32_t))fn)(a);
}
__attribute__ ((visibility ("hidden"))) void gfx_v_uu(uintptr_t fn, uint32_t a, uint32_t b) {
	((void (*)(uint32_t, uint32_t))fn)(a, b);
}
__attribute__ ((visibility ("hidden"))) void gfx_v_uuu(uintptr_t fn, uint32_t a, uint32_t b, uint32_t c) {
	((void (*)(uint32_t, uint32_t, uint32_t))fn)(a, b, c);
}
__attribute__ ((visibility ("hidden"))) void gfx_v_uuuu(uintptr_t fn, uint32_t a, uint32_t b, uint32_t c, uint32_t d) {
	((void (*)(uint32_t, uint32_t, uint32_t, uint32_t))fn)(a, b, c, d);
}
__attribute__ ((visibility ("hidden"))) void gfx_v_uuuuu(uintptr_t fn, uint32_t a, uint32_t b, uint32_t c, uint32_t d, uint32_t e) {
	((void (*)(uint32_t, uint32_t, uint32_t, uint32_t, uint32_t))fn)(a, b, c, d, e);
}
__attribute__ ((visibility ("hidden"))) void gfx_v_b(uintptr_t fn, gfx_bool a) {
	((void (*)(gfx_bool))fn)(a);
}
__attribute__ ((visibility ("hidden"))) void gfx_v_bbbb(uintptr_t fn, gfx_bool a, gfx_bool b, gfx_bool c, gfx_bool d) {
	((void (*)(gfx_bool, gfx_bool, gfx_bool, gfx_bool))fn)(a, b, c, d);
}
__attribute__ ((visibility ("hidden"))) void gfx_v_ffff(uintptr_t fn, float a, float b, float c, float d) {
	((void (*)(float, float, float, float))fn)(a, b, c, d);
}
__attribute__ ((visibility ("hidden"))) void gfx_v_d(uintptr_t fn, double a) {
	((void (*)(double))fn)(a);
}
__attribute__ ((visibility ("hidden"))) void gfx_v_up(uintptr_t fn, uint32_t a, void *p) {
	((void (*)(uint32_t, void *))fn)(a, p);
}
__attribute__ ((visibility ("hidden"))) void gfx_v_uup(uintptr_t fn, uint32_t a, uint32_t b, void *p) {
	((void (*)(uint32_t, uint32_t, void *))fn)(a, b, p);
}
__attribute__ ((visibility ("hidden"))) void gfx_v_uupp(uintptr_t fn, uint32_t a, uint32_t b, void *p, void *q) {
	((void (*)(uint32_t, uint32_t, void *, void *))fn)(a, b, p, q);
}
__attribute__ ((visibility ("hidden"))) void gfx_v_uubp(uintptr_t fn, uint32_t a, uint32_t b, gfx_bool c, void *p) {
	((void (*)(uint32_t, uint32_t, gfx_bool, void *))fn)(a, b, c, p);
}
__attribute__ ((visibility ("hidden"))) int32_t gfx_i_up(uintptr_t fn, uint32_t a, void *p) {
	return ((int32_t (*)(uint32_t, void *))fn)(a, p);
}
__attribute__ ((visibility ("hidden"))) const char *gfx_p_u(uintptr_t fn, uint32_t a) {
	return ((const char *(*)(uint32_t))fn)(a);
}
__attribute__ ((visibility ("hidden"))) void gfx_v_uzpu(uintptr_t fn, uint32_t a, intptr_t b, void *p, uint32_t c) {
	((void (*)(uint32_t, intptr_t, void *, uint32_t))fn)(a, b, p, c);
}
__attribute__ ((visibility ("hidden"))) void gfx_v_uzzp(uintptr_t fn, uint32_t a, intptr_t b, intptr_t c, void *p) {
	((void (*)(uint32_t, intptr_t, intptr_t, void *))fn)(a, b, c, p);
}
__attribute__ ((visibility ("hidden"))) void gfx_v_uuuz(uintptr_t fn, uint32_t a, uint32_t b, uint32_t c, uintptr_t off) {
	((void (*)(uint32_t, uint32_t, uint32_t, const void *))fn)(a, b, c, (const void *)off);
}
__attribute__ ((visibility ("hidden"))) void gfx_v_uuuzu(uintptr_t fn, uint32_t a, uint32_t b, uint32_t c, uintptr_t off, uint32_t d) {
	((void (*)(uint32_t, uint32_t, uint32_t, const void *, uint32_t))fn)(a, b, c, (const void *)off, d);
}
__attribute__ ((visibility ("hidden"))) void gfx_v_uuubuz(uintptr_t fn, uint32_t a, uint32_t b, uint32_t c, gfx_bool d, uint32_t e, uintptr_t off) {
	((void (*)(uint32_t, uint32_t, uint32_t, gfx_bool, uint32_t, const void *))fn)(a, b, c, d, e, (const void *)off);
}
__attribute__ ((visibility ("hidden"))) void gfx_v_uuuuuup(uintptr_t fn, uint32_t a, uint32_t b, uint32_t c, uint32_t d, uint32_t e, uint32_t f, void *p) {
	((void (*)(uint32_t, uint32_t, uint32_t, uint32_t, uint32_t, uint32_t, void *))fn)(a, b, c, d, e, f, p);
}
__attribute__ ((visibility ("hidden"))) void gfx_v_uuuuuuuup(uintptr_t fn, uint32_t a, uint32_t b, uint32_t c, uint32_t d, uint32_t e, uint32_t f, uint32_t g, uint32_t h, void *p) {
	((void (*)(uint32_t, uint32_t, uint32_t, uint32_t, uint32_t, uint32_t, uint32_t, uint32_t, void *))fn)(a, b, c, d, e, f, g, h, p);
}
*/
import "C"

import (
	"unsafe"

	gunsafe "gfx/internal/unsafe"
)

// Functions calls GL entry points through a Procs table.
type Functions struct {
	p *Procs

	// Query caches.
	ints [100]C.int32_t
	ptrs [1]*C.char
}

var _ API = (*Functions)(nil)

// NewFunctions returns a caller for the entry points in p.
func NewFunctions(p *Procs) *Functions {
	return &Functions{p: p}
}

// Procs returns the dispatch table backing f.
func (f *Functions) Procs() *Procs {
	return f.p
}

func (f *Functions) fn(p proc) C.uintptr_t {
	return C.uintptr_t(f.p.addrs[p])
}

func u(v int) C.uint32_t {
	return C.uint32_t(v)
}

func b(v bool) C.gfx_bool {
	if v {
		return TRUE
	}
	return FALSE
}

func ptr(data []byte) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Pointer(&data[0])
}

func (f *Functions) ActiveTexture(t Enum) {
	C.gfx_v_u(f.fn(procActiveTexture), C.uint32_t(t))
}

func (f *Functions) AttachShader(p Program, s Shader) {
	C.gfx_v_uu(f.fn(procAttachShader), C.uint32_t(p.V), C.uint32_t(s.V))
}

func (f *Functions) BindAttribLocation(p Program, a Attrib, name string) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	C.gfx_v_uup(f.fn(procBindAttribLocation), C.uint32_t(p.V), C.uint32_t(a), unsafe.Pointer(cname))
}

func (f *Functions) BindBuffer(target Enum, buf Buffer) {
	C.gfx_v_uu(f.fn(procBindBuffer), C.uint32_t(target), C.uint32_t(buf.V))
}

func (f *Functions) BindFramebuffer(target Enum, fb Framebuffer) {
	C.gfx_v_uu(f.fn(procBindFramebuffer), C.uint32_t(target), C.uint32_t(fb.V))
}

func (f *Functions) BindTexture(target Enum, t Texture) {
	C.gfx_v_uu(f.fn(procBindTexture), C.uint32_t(target), C.uint32_t(t.V))
}

func (f *Functions) BindVertexArray(a VertexArray) {
	C.gfx_v_u(f.fn(procBindVertexArray), C.uint32_t(a.V))
}

func (f *Functions) BlendEquationSeparate(modeRGB, modeAlpha Enum) {
	C.gfx_v_uu(f.fn(procBlendEquationSeparate), C.uint32_t(modeRGB), C.uint32_t(modeAlpha))
}

func (f *Functions) BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA Enum) {
	C.gfx_v_uuuu(f.fn(procBlendFuncSeparate), C.uint32_t(srcRGB), C.uint32_t(dstRGB), C.uint32_t(srcA), C.uint32_t(dstA))
}

func (f *Functions) BufferData(target Enum, size int, usage Enum, data []byte) {
	C.gfx_v_uzpu(f.fn(procBufferData), C.uint32_t(target), C.intptr_t(size), ptr(data), C.uint32_t(usage))
}

func (f *Functions) BufferSubData(target Enum, offset int, src []byte) {
	if len(src) == 0 {
		return
	}
	C.gfx_v_uzzp(f.fn(procBufferSubData), C.uint32_t(target), C.intptr_t(offset), C.intptr_t(len(src)), ptr(src))
}

func (f *Functions) CheckFramebufferStatus(target Enum) Enum {
	return Enum(C.gfx_u_u(f.fn(procCheckFramebufferStatus), C.uint32_t(target)))
}

func (f *Functions) Clear(mask Enum) {
	C.gfx_v_u(f.fn(procClear), C.uint32_t(mask))
}

func (f *Functions) ClearColor(red, green, blue, alpha float32) {
	C.gfx_v_ffff(f.fn(procClearColor), C.float(red), C.float(green), C.float(blue), C.float(alpha))
}

func (f *Functions) ClearDepthf(d float32) {
	C.gfx_v_d(f.fn(procClearDepth), C.double(d))
}

func (f *Functions) ClearStencil(s int) {
	C.gfx_v_u(f.fn(procClearStencil), u(s))
}

func (f *Functions) ColorMask(red, green, blue, alpha bool) {
	C.gfx_v_bbbb(f.fn(procColorMask), b(red), b(green), b(blue), b(alpha))
}

func (f *Functions) CompileShader(s Shader) {
	C.gfx_v_u(f.fn(procCompileShader), C.uint32_t(s.V))
}

func (f *Functions) CreateBuffer() Buffer {
	C.gfx_v_up(f.fn(procGenBuffers), 1, unsafe.Pointer(&f.ints[0]))
	return Buffer{uint(f.ints[0])}
}

func (f *Functions) CreateFramebuffer() Framebuffer {
	C.gfx_v_up(f.fn(procGenFramebuffers), 1, unsafe.Pointer(&f.ints[0]))
	return Framebuffer{uint(f.ints[0])}
}

func (f *Functions) CreateProgram() Program {
	return Program{uint(C.gfx_u(f.fn(procCreateProgram)))}
}

func (f *Functions) CreateShader(ty Enum) Shader {
	return Shader{uint(C.gfx_u_u(f.fn(procCreateShader), C.uint32_t(ty)))}
}

func (f *Functions) CreateTexture() Texture {
	C.gfx_v_up(f.fn(procGenTextures), 1, unsafe.Pointer(&f.ints[0]))
	return Texture{uint(f.ints[0])}
}

func (f *Functions) CreateVertexArray() VertexArray {
	C.gfx_v_up(f.fn(procGenVertexArrays), 1, unsafe.Pointer(&f.ints[0]))
	return VertexArray{uint(f.ints[0])}
}

func (f *Functions) CullFace(mode Enum) {
	C.gfx_v_u(f.fn(procCullFace), C.uint32_t(mode))
}

func (f *Functions) DeleteBuffer(v Buffer) {
	f.ints[0] = C.int32_t(v.V)
	C.gfx_v_up(f.fn(procDeleteBuffers), 1, unsafe.Pointer(&f.ints[0]))
}

func (f *Functions) DeleteFramebuffer(v Framebuffer) {
	f.ints[0] = C.int32_t(v.V)
	C.gfx_v_up(f.fn(procDeleteFramebuffers), 1, unsafe.Pointer(&f.ints[0]))
}

func (f *Functions) DeleteProgram(p Program) {
	C.gfx_v_u(f.fn(procDeleteProgram), C.uint32_t(p.V))
}

func (f *Functions) DeleteShader(s Shader) {
	C.gfx_v_u(f.fn(procDeleteShader), C.uint32_t(s.V))
}

func (f *Functions) DeleteTexture(v Texture) {
	f.ints[0] = C.int32_t(v.V)
	C.gfx_v_up(f.fn(procDeleteTextures), 1, unsafe.Pointer(&f.ints[0]))
}

func (f *Functions) DeleteVertexArray(a VertexArray) {
	f.ints[0] = C.int32_t(a.V)
	C.gfx_v_up(f.fn(procDeleteVertexArrays), 1, unsafe.Pointer(&f.ints[0]))
}

func (f *Functions) DepthFunc(fn Enum) {
	C.gfx_v_u(f.fn(procDepthFunc), C.uint32_t(fn))
}

func (f *Functions) DepthMask(mask bool) {
	C.gfx_v_b(f.fn(procDepthMask), b(mask))
}

func (f *Functions) Disable(cap Enum) {
	C.gfx_v_u(f.fn(procDisable), C.uint32_t(cap))
}

func (f *Functions) DisableVertexAttribArray(a Attrib) {
	C.gfx_v_u(f.fn(procDisableVertexAttribArray), C.uint32_t(a))
}

func (f *Functions) DrawArrays(mode Enum, first, count int) {
	C.gfx_v_uuu(f.fn(procDrawArrays), C.uint32_t(mode), u(first), u(count))
}

func (f *Functions) DrawArraysInstanced(mode Enum, first, count, primcount int) {
	C.gfx_v_uuuu(f.fn(procDrawArraysInstanced), C.uint32_t(mode), u(first), u(count), u(primcount))
}

func (f *Functions) DrawElements(mode Enum, count int, ty Enum, offset int) {
	C.gfx_v_uuuz(f.fn(procDrawElements), C.uint32_t(mode), u(count), C.uint32_t(ty), C.uintptr_t(offset))
}

func (f *Functions) DrawElementsInstanced(mode Enum, count int, ty Enum, offset, primcount int) {
	C.gfx_v_uuuzu(f.fn(procDrawElementsInstanced), C.uint32_t(mode), u(count), C.uint32_t(ty), C.uintptr_t(offset), u(primcount))
}

func (f *Functions) Enable(cap Enum) {
	C.gfx_v_u(f.fn(procEnable), C.uint32_t(cap))
}

func (f *Functions) EnableVertexAttribArray(a Attrib) {
	C.gfx_v_u(f.fn(procEnableVertexAttribArray), C.uint32_t(a))
}

func (f *Functions) Flush() {
	C.gfx_v(f.fn(procFlush))
}

func (f *Functions) FramebufferTexture2D(target, attachment, texTarget Enum, t Texture, level int) {
	C.gfx_v_uuuuu(f.fn(procFramebufferTexture2D), C.uint32_t(target), C.uint32_t(attachment), C.uint32_t(texTarget), C.uint32_t(t.V), u(level))
}

func (f *Functions) FrontFace(mode Enum) {
	C.gfx_v_u(f.fn(procFrontFace), C.uint32_t(mode))
}

func (f *Functions) GetAttribLocation(p Program, name string) int {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return int(C.gfx_i_up(f.fn(procGetAttribLocation), C.uint32_t(p.V), unsafe.Pointer(cname)))
}

func (f *Functions) GetBinding(pname Enum) Object {
	return Object{uint(f.GetInteger(pname))}
}

func (f *Functions) GetError() Enum {
	return Enum(C.gfx_u(f.fn(procGetError)))
}

func (f *Functions) GetInteger(pname Enum) int {
	C.gfx_v_up(f.fn(procGetIntegerv), C.uint32_t(pname), unsafe.Pointer(&f.ints[0]))
	return int(f.ints[0])
}

func (f *Functions) GetProgrami(p Program, pname Enum) int {
	C.gfx_v_uup(f.fn(procGetProgramiv), C.uint32_t(p.V), C.uint32_t(pname), unsafe.Pointer(&f.ints[0]))
	return int(f.ints[0])
}

func (f *Functions) GetProgramInfoLog(p Program) string {
	n := f.GetProgrami(p, INFO_LOG_LENGTH)
	if n == 0 {
		return ""
	}
	buf := make([]byte, n)
	C.gfx_v_uupp(f.fn(procGetProgramInfoLog), C.uint32_t(p.V), u(len(buf)), nil, ptr(buf))
	return gunsafe.GoString(buf)
}

func (f *Functions) GetShaderi(s Shader, pname Enum) int {
	C.gfx_v_uup(f.fn(procGetShaderiv), C.uint32_t(s.V), C.uint32_t(pname), unsafe.Pointer(&f.ints[0]))
	return int(f.ints[0])
}

func (f *Functions) GetShaderInfoLog(s Shader) string {
	n := f.GetShaderi(s, INFO_LOG_LENGTH)
	if n == 0 {
		return ""
	}
	buf := make([]byte, n)
	C.gfx_v_uupp(f.fn(procGetShaderInfoLog), C.uint32_t(s.V), u(len(buf)), nil, ptr(buf))
	return gunsafe.GoString(buf)
}

func (f *Functions) GetString(pname Enum) string {
	s := C.gfx_p_u(f.fn(procGetString), C.uint32_t(pname))
	if s == nil {
		return ""
	}
	return C.GoString(s)
}

func (f *Functions) GetUniformLocation(p Program, name string) Uniform {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return Uniform{int(C.gfx_i_up(f.fn(procGetUniformLocation), C.uint32_t(p.V), unsafe.Pointer(cname)))}
}

func (f *Functions) LinkProgram(p Program) {
	C.gfx_v_u(f.fn(procLinkProgram), C.uint32_t(p.V))
}

func (f *Functions) PixelStorei(pname Enum, param int) {
	C.gfx_v_uu(f.fn(procPixelStorei), C.uint32_t(pname), u(param))
}

func (f *Functions) ReadPixels(x, y, width, height int, format, ty Enum, data []byte) {
	if len(data) == 0 {
		return
	}
	C.gfx_v_uuuuuup(f.fn(procReadPixels), u(x), u(y), u(width), u(height), C.uint32_t(format), C.uint32_t(ty), ptr(data))
}

func (f *Functions) Scissor(x, y, width, height int) {
	C.gfx_v_uuuu(f.fn(procScissor), u(x), u(y), u(width), u(height))
}

func (f *Functions) ShaderSource(s Shader, src string) {
	csrc := C.CString(src)
	defer C.free(unsafe.Pointer(csrc))
	f.ptrs[0] = csrc
	C.gfx_v_uupp(f.fn(procShaderSource), C.uint32_t(s.V), 1, unsafe.Pointer(&f.ptrs[0]), nil)
	f.ptrs[0] = nil
}

func (f *Functions) StencilFuncSeparate(face, fn Enum, ref int, mask uint) {
	C.gfx_v_uuuu(f.fn(procStencilFuncSeparate), C.uint32_t(face), C.uint32_t(fn), u(ref), C.uint32_t(mask))
}

func (f *Functions) StencilMaskSeparate(face Enum, mask uint) {
	C.gfx_v_uu(f.fn(procStencilMaskSeparate), C.uint32_t(face), C.uint32_t(mask))
}

func (f *Functions) StencilOpSeparate(face, sfail, dpfail, dppass Enum) {
	C.gfx_v_uuuu(f.fn(procStencilOpSeparate), C.uint32_t(face), C.uint32_t(sfail), C.uint32_t(dpfail), C.uint32_t(dppass))
}

func (f *Functions) TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, ty Enum, data []byte) {
	C.gfx_v_uuuuuuuup(f.fn(procTexImage2D), C.uint32_t(target), u(level), C.uint32_t(internalFormat), u(width), u(height), 0, C.uint32_t(format), C.uint32_t(ty), ptr(data))
}

func (f *Functions) TexParameteri(target, pname Enum, param int) {
	C.gfx_v_uuu(f.fn(procTexParameteri), C.uint32_t(target), C.uint32_t(pname), u(param))
}

func (f *Functions) TexSubImage2D(target Enum, level, x, y, width, height int, format, ty Enum, data []byte) {
	if len(data) == 0 {
		return
	}
	C.gfx_v_uuuuuuuup(f.fn(procTexSubImage2D), C.uint32_t(target), u(level), u(x), u(y), u(width), u(height), C.uint32_t(format), C.uint32_t(ty), ptr(data))
}

func (f *Functions) Uniform1fv(dst Uniform, v []float32) {
	f.uniformfv(procUniform1fv, dst, v, 1)
}

func (f *Functions) Uniform2fv(dst Uniform, v []float32) {
	f.uniformfv(procUniform2fv, dst, v, 2)
}

func (f *Functions) Uniform3fv(dst Uniform, v []float32) {
	f.uniformfv(procUniform3fv, dst, v, 3)
}

func (f *Functions) Uniform4fv(dst Uniform, v []float32) {
	f.uniformfv(procUniform4fv, dst, v, 4)
}

func (f *Functions) uniformfv(p proc, dst Uniform, v []float32, n int) {
	if len(v) < n {
		return
	}
	C.gfx_v_uup(f.fn(p), u(dst.V), u(len(v)/n), unsafe.Pointer(&v[0]))
}

func (f *Functions) Uniform1iv(dst Uniform, v []int32) {
	if len(v) == 0 {
		return
	}
	C.gfx_v_uup(f.fn(procUniform1iv), u(dst.V), u(len(v)), unsafe.Pointer(&v[0]))
}

func (f *Functions) UniformMatrix4fv(dst Uniform, v []float32) {
	if len(v) < 16 {
		return
	}
	C.gfx_v_uubp(f.fn(procUniformMatrix4fv), u(dst.V), u(len(v)/16), FALSE, unsafe.Pointer(&v[0]))
}

func (f *Functions) UseProgram(p Program) {
	C.gfx_v_u(f.fn(procUseProgram), C.uint32_t(p.V))
}

func (f *Functions) VertexAttribDivisor(a Attrib, divisor int) {
	C.gfx_v_uu(f.fn(procVertexAttribDivisor), C.uint32_t(a), u(divisor))
}

func (f *Functions) VertexAttribPointer(dst Attrib, size int, ty Enum, normalized bool, stride, offset int) {
	C.gfx_v_uuubuz(f.fn(procVertexAttribPointer), C.uint32_t(dst), u(size), C.uint32_t(ty), b(normalized), u(stride), C.uintptr_t(offset))
}

func (f *Functions) Viewport(x, y, width, height int) {
	C.gfx_v_uuuu(f.fn(procViewport), u(x), u(y), u(width), u(height))
}
