// SPDX-License-Identifier: Unlicense OR MIT

package gl

import (
	"math"
	"runtime"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	gunsafe "gfx/internal/unsafe"
)

// Functions calls GL entry points through a Procs table with the Windows
// system calling convention.
type Functions struct {
	p *Procs

	// Query cache.
	int32s [100]int32
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

func (f *Functions) call(p proc, args ...uintptr) uintptr {
	r, _, _ := syscall.SyscallN(f.p.addrs[p], args...)
	return r
}

func (f *Functions) ActiveTexture(t Enum) {
	f.call(procActiveTexture, uintptr(t))
}

func (f *Functions) AttachShader(p Program, s Shader) {
	f.call(procAttachShader, uintptr(p.V), uintptr(s.V))
}

func (f *Functions) BindAttribLocation(p Program, a Attrib, name string) {
	cname := cString(name)
	f.call(procBindAttribLocation, uintptr(p.V), uintptr(a), uintptr(unsafe.Pointer(&cname[0])))
	runtime.KeepAlive(cname)
}

func (f *Functions) BindBuffer(target Enum, b Buffer) {
	f.call(procBindBuffer, uintptr(target), uintptr(b.V))
}

func (f *Functions) BindFramebuffer(target Enum, fb Framebuffer) {
	f.call(procBindFramebuffer, uintptr(target), uintptr(fb.V))
}

func (f *Functions) BindTexture(target Enum, t Texture) {
	f.call(procBindTexture, uintptr(target), uintptr(t.V))
}

func (f *Functions) BindVertexArray(a VertexArray) {
	f.call(procBindVertexArray, uintptr(a.V))
}

func (f *Functions) BlendEquationSeparate(modeRGB, modeAlpha Enum) {
	f.call(procBlendEquationSeparate, uintptr(modeRGB), uintptr(modeAlpha))
}

func (f *Functions) BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA Enum) {
	f.call(procBlendFuncSeparate, uintptr(srcRGB), uintptr(dstRGB), uintptr(srcA), uintptr(dstA))
}

func (f *Functions) BufferData(target Enum, size int, usage Enum, data []byte) {
	var p unsafe.Pointer
	if len(data) > 0 {
		p = unsafe.Pointer(&data[0])
	}
	f.call(procBufferData, uintptr(target), uintptr(size), uintptr(p), uintptr(usage))
	runtime.KeepAlive(data)
}

func (f *Functions) BufferSubData(target Enum, offset int, src []byte) {
	if len(src) == 0 {
		return
	}
	f.call(procBufferSubData, uintptr(target), uintptr(offset), uintptr(len(src)), uintptr(unsafe.Pointer(&src[0])))
	runtime.KeepAlive(src)
}

func (f *Functions) CheckFramebufferStatus(target Enum) Enum {
	return Enum(f.call(procCheckFramebufferStatus, uintptr(target)))
}

func (f *Functions) Clear(mask Enum) {
	f.call(procClear, uintptr(mask))
}

func (f *Functions) ClearColor(red, green, blue, alpha float32) {
	f.call(procClearColor,
		uintptr(math.Float32bits(red)), uintptr(math.Float32bits(green)),
		uintptr(math.Float32bits(blue)), uintptr(math.Float32bits(alpha)))
}

func (f *Functions) ClearDepthf(d float32) {
	// Desktop GL only has the double precision variant.
	f.call(procClearDepth, uintptr(math.Float64bits(float64(d))))
}

func (f *Functions) ClearStencil(s int) {
	f.call(procClearStencil, uintptr(s))
}

func (f *Functions) ColorMask(red, green, blue, alpha bool) {
	f.call(procColorMask, boolArg(red), boolArg(green), boolArg(blue), boolArg(alpha))
}

func (f *Functions) CompileShader(s Shader) {
	f.call(procCompileShader, uintptr(s.V))
}

func (f *Functions) CreateBuffer() Buffer {
	var buf uint32
	f.call(procGenBuffers, 1, uintptr(unsafe.Pointer(&buf)))
	return Buffer{uint(buf)}
}

func (f *Functions) CreateFramebuffer() Framebuffer {
	var fb uint32
	f.call(procGenFramebuffers, 1, uintptr(unsafe.Pointer(&fb)))
	return Framebuffer{uint(fb)}
}

func (f *Functions) CreateProgram() Program {
	return Program{uint(f.call(procCreateProgram))}
}

func (f *Functions) CreateShader(ty Enum) Shader {
	return Shader{uint(f.call(procCreateShader, uintptr(ty)))}
}

func (f *Functions) CreateTexture() Texture {
	var t uint32
	f.call(procGenTextures, 1, uintptr(unsafe.Pointer(&t)))
	return Texture{uint(t)}
}

func (f *Functions) CreateVertexArray() VertexArray {
	var t uint32
	f.call(procGenVertexArrays, 1, uintptr(unsafe.Pointer(&t)))
	return VertexArray{uint(t)}
}

func (f *Functions) CullFace(mode Enum) {
	f.call(procCullFace, uintptr(mode))
}

func (f *Functions) DeleteBuffer(v Buffer) {
	n := uint32(v.V)
	f.call(procDeleteBuffers, 1, uintptr(unsafe.Pointer(&n)))
}

func (f *Functions) DeleteFramebuffer(v Framebuffer) {
	n := uint32(v.V)
	f.call(procDeleteFramebuffers, 1, uintptr(unsafe.Pointer(&n)))
}

func (f *Functions) DeleteProgram(p Program) {
	f.call(procDeleteProgram, uintptr(p.V))
}

func (f *Functions) DeleteShader(s Shader) {
	f.call(procDeleteShader, uintptr(s.V))
}

func (f *Functions) DeleteTexture(v Texture) {
	n := uint32(v.V)
	f.call(procDeleteTextures, 1, uintptr(unsafe.Pointer(&n)))
}

func (f *Functions) DeleteVertexArray(a VertexArray) {
	n := uint32(a.V)
	f.call(procDeleteVertexArrays, 1, uintptr(unsafe.Pointer(&n)))
}

func (f *Functions) DepthFunc(fn Enum) {
	f.call(procDepthFunc, uintptr(fn))
}

func (f *Functions) DepthMask(mask bool) {
	f.call(procDepthMask, boolArg(mask))
}

func (f *Functions) Disable(cap Enum) {
	f.call(procDisable, uintptr(cap))
}

func (f *Functions) DisableVertexAttribArray(a Attrib) {
	f.call(procDisableVertexAttribArray, uintptr(a))
}

func (f *Functions) DrawArrays(mode Enum, first, count int) {
	f.call(procDrawArrays, uintptr(mode), uintptr(first), uintptr(count))
}

func (f *Functions) DrawArraysInstanced(mode Enum, first, count, primcount int) {
	f.call(procDrawArraysInstanced, uintptr(mode), uintptr(first), uintptr(count), uintptr(primcount))
}

func (f *Functions) DrawElements(mode Enum, count int, ty Enum, offset int) {
	f.call(procDrawElements, uintptr(mode), uintptr(count), uintptr(ty), uintptr(offset))
}

func (f *Functions) DrawElementsInstanced(mode Enum, count int, ty Enum, offset, primcount int) {
	f.call(procDrawElementsInstanced, uintptr(mode), uintptr(count), uintptr(ty), uintptr(offset), uintptr(primcount))
}

func (f *Functions) Enable(cap Enum) {
	f.call(procEnable, uintptr(cap))
}

func (f *Functions) EnableVertexAttribArray(a Attrib) {
	f.call(procEnableVertexAttribArray, uintptr(a))
}

func (f *Functions) Flush() {
	f.call(procFlush)
}

func (f *Functions) FramebufferTexture2D(target, attachment, texTarget Enum, t Texture, level int) {
	f.call(procFramebufferTexture2D, uintptr(target), uintptr(attachment), uintptr(texTarget), uintptr(t.V), uintptr(level))
}

func (f *Functions) FrontFace(mode Enum) {
	f.call(procFrontFace, uintptr(mode))
}

func (f *Functions) GetAttribLocation(p Program, name string) int {
	cname := cString(name)
	r := f.call(procGetAttribLocation, uintptr(p.V), uintptr(unsafe.Pointer(&cname[0])))
	runtime.KeepAlive(cname)
	return int(int32(r))
}

func (f *Functions) GetBinding(pname Enum) Object {
	return Object{uint(f.GetInteger(pname))}
}

func (f *Functions) GetError() Enum {
	return Enum(f.call(procGetError))
}

func (f *Functions) GetInteger(pname Enum) int {
	f.call(procGetIntegerv, uintptr(pname), uintptr(unsafe.Pointer(&f.int32s[0])))
	return int(f.int32s[0])
}

func (f *Functions) GetProgrami(p Program, pname Enum) int {
	f.call(procGetProgramiv, uintptr(p.V), uintptr(pname), uintptr(unsafe.Pointer(&f.int32s[0])))
	return int(f.int32s[0])
}

func (f *Functions) GetProgramInfoLog(p Program) string {
	n := f.GetProgrami(p, INFO_LOG_LENGTH)
	if n == 0 {
		return ""
	}
	buf := make([]byte, n)
	f.call(procGetProgramInfoLog, uintptr(p.V), uintptr(len(buf)), 0, uintptr(unsafe.Pointer(&buf[0])))
	return gunsafe.GoString(buf)
}

func (f *Functions) GetShaderi(s Shader, pname Enum) int {
	f.call(procGetShaderiv, uintptr(s.V), uintptr(pname), uintptr(unsafe.Pointer(&f.int32s[0])))
	return int(f.int32s[0])
}

func (f *Functions) GetShaderInfoLog(s Shader) string {
	n := f.GetShaderi(s, INFO_LOG_LENGTH)
	if n == 0 {
		return ""
	}
	buf := make([]byte, n)
	f.call(procGetShaderInfoLog, uintptr(s.V), uintptr(len(buf)), 0, uintptr(unsafe.Pointer(&buf[0])))
	return gunsafe.GoString(buf)
}

func (f *Functions) GetString(pname Enum) string {
	s := f.call(procGetString, uintptr(pname))
	return windows.BytePtrToString((*byte)(unsafe.Pointer(s)))
}

func (f *Functions) GetUniformLocation(p Program, name string) Uniform {
	cname := cString(name)
	r := f.call(procGetUniformLocation, uintptr(p.V), uintptr(unsafe.Pointer(&cname[0])))
	runtime.KeepAlive(cname)
	return Uniform{int(int32(r))}
}

func (f *Functions) LinkProgram(p Program) {
	f.call(procLinkProgram, uintptr(p.V))
}

func (f *Functions) PixelStorei(pname Enum, param int) {
	f.call(procPixelStorei, uintptr(pname), uintptr(param))
}

func (f *Functions) ReadPixels(x, y, width, height int, format, ty Enum, data []byte) {
	if len(data) == 0 {
		return
	}
	f.call(procReadPixels, uintptr(x), uintptr(y), uintptr(width), uintptr(height), uintptr(format), uintptr(ty), uintptr(unsafe.Pointer(&data[0])))
	runtime.KeepAlive(data)
}

func (f *Functions) Scissor(x, y, width, height int) {
	f.call(procScissor, uintptr(x), uintptr(y), uintptr(width), uintptr(height))
}

func (f *Functions) ShaderSource(s Shader, src string) {
	csrc := cString(src)
	ptr := &csrc[0]
	f.call(procShaderSource, uintptr(s.V), 1, uintptr(unsafe.Pointer(&ptr)), 0)
	runtime.KeepAlive(csrc)
}

func (f *Functions) StencilFuncSeparate(face, fn Enum, ref int, mask uint) {
	f.call(procStencilFuncSeparate, uintptr(face), uintptr(fn), uintptr(ref), uintptr(mask))
}

func (f *Functions) StencilMaskSeparate(face Enum, mask uint) {
	f.call(procStencilMaskSeparate, uintptr(face), uintptr(mask))
}

func (f *Functions) StencilOpSeparate(face, sfail, dpfail, dppass Enum) {
	f.call(procStencilOpSeparate, uintptr(face), uintptr(sfail), uintptr(dpfail), uintptr(dppass))
}

func (f *Functions) TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, ty Enum, data []byte) {
	var p unsafe.Pointer
	if len(data) > 0 {
		p = unsafe.Pointer(&data[0])
	}
	f.call(procTexImage2D, uintptr(target), uintptr(level), uintptr(internalFormat), uintptr(width), uintptr(height), 0, uintptr(format), uintptr(ty), uintptr(p))
	runtime.KeepAlive(data)
}

func (f *Functions) TexParameteri(target, pname Enum, param int) {
	f.call(procTexParameteri, uintptr(target), uintptr(pname), uintptr(param))
}

func (f *Functions) TexSubImage2D(target Enum, level, x, y, width, height int, format, ty Enum, data []byte) {
	if len(data) == 0 {
		return
	}
	f.call(procTexSubImage2D, uintptr(target), uintptr(level), uintptr(x), uintptr(y), uintptr(width), uintptr(height), uintptr(format), uintptr(ty), uintptr(unsafe.Pointer(&data[0])))
	runtime.KeepAlive(data)
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
	f.call(p, uintptr(dst.V), uintptr(len(v)/n), uintptr(unsafe.Pointer(&v[0])))
	runtime.KeepAlive(v)
}

func (f *Functions) Uniform1iv(dst Uniform, v []int32) {
	if len(v) == 0 {
		return
	}
	f.call(procUniform1iv, uintptr(dst.V), uintptr(len(v)), uintptr(unsafe.Pointer(&v[0])))
	runtime.KeepAlive(v)
}

func (f *Functions) UniformMatrix4fv(dst Uniform, v []float32) {
	if len(v) < 16 {
		return
	}
	f.call(procUniformMatrix4fv, uintptr(dst.V), uintptr(len(v)/16), FALSE, uintptr(unsafe.Pointer(&v[0])))
	runtime.KeepAlive(v)
}

func (f *Functions) UseProgram(p Program) {
	f.call(procUseProgram, uintptr(p.V))
}

func (f *Functions) VertexAttribDivisor(a Attrib, divisor int) {
	f.call(procVertexAttribDivisor, uintptr(a), uintptr(divisor))
}

func (f *Functions) VertexAttribPointer(dst Attrib, size int, ty Enum, normalized bool, stride, offset int) {
	f.call(procVertexAttribPointer, uintptr(dst), uintptr(size), uintptr(ty), boolArg(normalized), uintptr(stride), uintptr(offset))
}

func (f *Functions) Viewport(x, y, width, height int) {
	f.call(procViewport, uintptr(x), uintptr(y), uintptr(width), uintptr(height))
}

func boolArg(b bool) uintptr {
	if b {
		return TRUE
	}
	return FALSE
}

func cString(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b
}
