// SPDX-License-Identifier: Unlicense OR MIT

package gl

import (
	"fmt"
	"strings"
	"syscall/js"

	gunsafe "gfx/internal/unsafe"
)

// Functions dispatches GL calls to the methods of a
// WebGL2RenderingContext. The methods are looked up and bound once, which
// makes the bound table the WebGL counterpart of the native Procs.
type Functions struct {
	Ctx js.Value

	fns [numProcs]js.Value

	// Cached reference to the Uint8Array JS type.
	uint8Array js.Value
	// Cached JS arrays.
	arrayBuf js.Value
}

var _ API = (*Functions)(nil)

// NewFunctions binds every method of the WebGL2 context ctx. It fails if a
// required method is missing, which means ctx is not a WebGL2 context.
func NewFunctions(ctx js.Value) (*Functions, error) {
	f := &Functions{
		Ctx:        ctx,
		uint8Array: js.Global().Get("Uint8Array"),
	}
	for i, e := range procTable {
		m := ctx.Get(e.method)
		if m.Type() != js.TypeFunction {
			return nil, fmt.Errorf("%w: %s", ErrMissingProc, e.method)
		}
		f.fns[i] = m.Call("bind", ctx)
	}
	return f, nil
}

// Methods returns the names of the bound context methods.
func (f *Functions) Methods() []string {
	names := make([]string, 0, numProcs)
	for _, e := range procTable {
		names = append(names, e.method)
	}
	return names
}

func (f *Functions) call(p proc, args ...any) js.Value {
	return f.fns[p].Invoke(args...)
}

func (f *Functions) ActiveTexture(t Enum) {
	f.call(procActiveTexture, int(t))
}

func (f *Functions) AttachShader(p Program, s Shader) {
	f.call(procAttachShader, js.Value(p), js.Value(s))
}

func (f *Functions) BindAttribLocation(p Program, a Attrib, name string) {
	f.call(procBindAttribLocation, js.Value(p), int(a), name)
}

func (f *Functions) BindBuffer(target Enum, b Buffer) {
	f.call(procBindBuffer, int(target), nullable(js.Value(b)))
}

func (f *Functions) BindFramebuffer(target Enum, fb Framebuffer) {
	f.call(procBindFramebuffer, int(target), nullable(js.Value(fb)))
}

func (f *Functions) BindTexture(target Enum, t Texture) {
	f.call(procBindTexture, int(target), nullable(js.Value(t)))
}

func (f *Functions) BindVertexArray(a VertexArray) {
	f.call(procBindVertexArray, nullable(js.Value(a)))
}

func (f *Functions) BlendEquationSeparate(modeRGB, modeAlpha Enum) {
	f.call(procBlendEquationSeparate, int(modeRGB), int(modeAlpha))
}

func (f *Functions) BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA Enum) {
	f.call(procBlendFuncSeparate, int(srcRGB), int(dstRGB), int(srcA), int(dstA))
}

func (f *Functions) BufferData(target Enum, size int, usage Enum, data []byte) {
	if data == nil {
		f.call(procBufferData, int(target), size, int(usage))
		return
	}
	f.call(procBufferData, int(target), f.byteArrayOf(data), int(usage))
}

func (f *Functions) BufferSubData(target Enum, offset int, src []byte) {
	if len(src) == 0 {
		return
	}
	f.call(procBufferSubData, int(target), offset, f.byteArrayOf(src))
}

func (f *Functions) CheckFramebufferStatus(target Enum) Enum {
	return Enum(f.call(procCheckFramebufferStatus, int(target)).Int())
}

func (f *Functions) Clear(mask Enum) {
	f.call(procClear, int(mask))
}

func (f *Functions) ClearColor(red, green, blue, alpha float32) {
	f.call(procClearColor, red, green, blue, alpha)
}

func (f *Functions) ClearDepthf(d float32) {
	f.call(procClearDepth, d)
}

func (f *Functions) ClearStencil(s int) {
	f.call(procClearStencil, s)
}

func (f *Functions) ColorMask(red, green, blue, alpha bool) {
	f.call(procColorMask, red, green, blue, alpha)
}

func (f *Functions) CompileShader(s Shader) {
	f.call(procCompileShader, js.Value(s))
}

func (f *Functions) CreateBuffer() Buffer {
	return Buffer(f.call(procGenBuffers))
}

func (f *Functions) CreateFramebuffer() Framebuffer {
	return Framebuffer(f.call(procGenFramebuffers))
}

func (f *Functions) CreateProgram() Program {
	return Program(f.call(procCreateProgram))
}

func (f *Functions) CreateShader(ty Enum) Shader {
	return Shader(f.call(procCreateShader, int(ty)))
}

func (f *Functions) CreateTexture() Texture {
	return Texture(f.call(procGenTextures))
}

func (f *Functions) CreateVertexArray() VertexArray {
	return VertexArray(f.call(procGenVertexArrays))
}

func (f *Functions) CullFace(mode Enum) {
	f.call(procCullFace, int(mode))
}

func (f *Functions) DeleteBuffer(v Buffer) {
	f.call(procDeleteBuffers, js.Value(v))
}

func (f *Functions) DeleteFramebuffer(v Framebuffer) {
	f.call(procDeleteFramebuffers, js.Value(v))
}

func (f *Functions) DeleteProgram(p Program) {
	f.call(procDeleteProgram, js.Value(p))
}

func (f *Functions) DeleteShader(s Shader) {
	f.call(procDeleteShader, js.Value(s))
}

func (f *Functions) DeleteTexture(v Texture) {
	f.call(procDeleteTextures, js.Value(v))
}

func (f *Functions) DeleteVertexArray(a VertexArray) {
	f.call(procDeleteVertexArrays, js.Value(a))
}

func (f *Functions) DepthFunc(fn Enum) {
	f.call(procDepthFunc, int(fn))
}

func (f *Functions) DepthMask(mask bool) {
	f.call(procDepthMask, mask)
}

func (f *Functions) Disable(cap Enum) {
	f.call(procDisable, int(cap))
}

func (f *Functions) DisableVertexAttribArray(a Attrib) {
	f.call(procDisableVertexAttribArray, int(a))
}

func (f *Functions) DrawArrays(mode Enum, first, count int) {
	f.call(procDrawArrays, int(mode), first, count)
}

func (f *Functions) DrawArraysInstanced(mode Enum, first, count, primcount int) {
	f.call(procDrawArraysInstanced, int(mode), first, count, primcount)
}

func (f *Functions) DrawElements(mode Enum, count int, ty Enum, offset int) {
	f.call(procDrawElements, int(mode), count, int(ty), offset)
}

func (f *Functions) DrawElementsInstanced(mode Enum, count int, ty Enum, offset, primcount int) {
	f.call(procDrawElementsInstanced, int(mode), count, int(ty), offset, primcount)
}

func (f *Functions) Enable(cap Enum) {
	f.call(procEnable, int(cap))
}

func (f *Functions) EnableVertexAttribArray(a Attrib) {
	f.call(procEnableVertexAttribArray, int(a))
}

func (f *Functions) Flush() {
	f.call(procFlush)
}

func (f *Functions) FramebufferTexture2D(target, attachment, texTarget Enum, t Texture, level int) {
	f.call(procFramebufferTexture2D, int(target), int(attachment), int(texTarget), js.Value(t), level)
}

func (f *Functions) FrontFace(mode Enum) {
	f.call(procFrontFace, int(mode))
}

func (f *Functions) GetAttribLocation(p Program, name string) int {
	return f.call(procGetAttribLocation, js.Value(p), name).Int()
}

func (f *Functions) GetBinding(pname Enum) Object {
	obj := f.call(procGetIntegerv, int(pname))
	if !valid(obj) {
		return Object{}
	}
	return Object(obj)
}

func (f *Functions) GetError() Enum {
	// Avoid slow getError calls. Context loss is reported by
	// isContextLost instead.
	return 0
}

func (f *Functions) GetInteger(pname Enum) int {
	return paramVal(f.call(procGetIntegerv, int(pname)))
}

func (f *Functions) GetProgrami(p Program, pname Enum) int {
	return paramVal(f.call(procGetProgramiv, js.Value(p), int(pname)))
}

func (f *Functions) GetProgramInfoLog(p Program) string {
	return f.call(procGetProgramInfoLog, js.Value(p)).String()
}

func (f *Functions) GetShaderi(s Shader, pname Enum) int {
	return paramVal(f.call(procGetShaderiv, js.Value(s), int(pname)))
}

func (f *Functions) GetShaderInfoLog(s Shader) string {
	return f.call(procGetShaderInfoLog, js.Value(s)).String()
}

func (f *Functions) GetString(pname Enum) string {
	if pname == EXTENSIONS {
		extsjs := f.Ctx.Call("getSupportedExtensions")
		var exts []string
		for i := 0; i < extsjs.Length(); i++ {
			exts = append(exts, "GL_"+extsjs.Index(i).String())
		}
		return strings.Join(exts, " ")
	}
	v := f.call(procGetString, int(pname))
	if v.Type() != js.TypeString {
		return ""
	}
	return v.String()
}

func (f *Functions) GetUniformLocation(p Program, name string) Uniform {
	return Uniform(f.call(procGetUniformLocation, js.Value(p), name))
}

func (f *Functions) LinkProgram(p Program) {
	f.call(procLinkProgram, js.Value(p))
}

func (f *Functions) PixelStorei(pname Enum, param int) {
	f.call(procPixelStorei, int(pname), param)
}

func (f *Functions) ReadPixels(x, y, width, height int, format, ty Enum, data []byte) {
	if len(data) == 0 {
		return
	}
	ba := f.byteArrayOf(data)
	f.call(procReadPixels, x, y, width, height, int(format), int(ty), ba)
	js.CopyBytesToGo(data, ba)
}

func (f *Functions) Scissor(x, y, width, height int) {
	f.call(procScissor, x, y, width, height)
}

func (f *Functions) ShaderSource(s Shader, src string) {
	f.call(procShaderSource, js.Value(s), src)
}

func (f *Functions) StencilFuncSeparate(face, fn Enum, ref int, mask uint) {
	f.call(procStencilFuncSeparate, int(face), int(fn), ref, mask)
}

func (f *Functions) StencilMaskSeparate(face Enum, mask uint) {
	f.call(procStencilMaskSeparate, int(face), mask)
}

func (f *Functions) StencilOpSeparate(face, sfail, dpfail, dppass Enum) {
	f.call(procStencilOpSeparate, int(face), int(sfail), int(dpfail), int(dppass))
}

func (f *Functions) TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, ty Enum, data []byte) {
	f.call(procTexImage2D, int(target), level, int(internalFormat), width, height, 0, int(format), int(ty), f.byteArrayOf(data))
}

func (f *Functions) TexParameteri(target, pname Enum, param int) {
	f.call(procTexParameteri, int(target), int(pname), param)
}

func (f *Functions) TexSubImage2D(target Enum, level, x, y, width, height int, format, ty Enum, data []byte) {
	if len(data) == 0 {
		return
	}
	f.call(procTexSubImage2D, int(target), level, x, y, width, height, int(format), int(ty), f.byteArrayOf(data))
}

func (f *Functions) Uniform1fv(dst Uniform, v []float32) {
	f.call(procUniform1fv, js.Value(dst), f.float32ArrayOf(v))
}

func (f *Functions) Uniform2fv(dst Uniform, v []float32) {
	f.call(procUniform2fv, js.Value(dst), f.float32ArrayOf(v))
}

func (f *Functions) Uniform3fv(dst Uniform, v []float32) {
	f.call(procUniform3fv, js.Value(dst), f.float32ArrayOf(v))
}

func (f *Functions) Uniform4fv(dst Uniform, v []float32) {
	f.call(procUniform4fv, js.Value(dst), f.float32ArrayOf(v))
}

func (f *Functions) Uniform1iv(dst Uniform, v []int32) {
	f.call(procUniform1iv, js.Value(dst), f.int32ArrayOf(v))
}

func (f *Functions) UniformMatrix4fv(dst Uniform, v []float32) {
	f.call(procUniformMatrix4fv, js.Value(dst), false, f.float32ArrayOf(v))
}

func (f *Functions) UseProgram(p Program) {
	f.call(procUseProgram, nullable(js.Value(p)))
}

func (f *Functions) VertexAttribDivisor(a Attrib, divisor int) {
	f.call(procVertexAttribDivisor, int(a), divisor)
}

func (f *Functions) VertexAttribPointer(dst Attrib, size int, ty Enum, normalized bool, stride, offset int) {
	f.call(procVertexAttribPointer, int(dst), size, int(ty), normalized, stride, offset)
}

func (f *Functions) Viewport(x, y, width, height int) {
	f.call(procViewport, x, y, width, height)
}

func (f *Functions) byteArrayOf(data []byte) js.Value {
	if len(data) == 0 {
		return js.Null()
	}
	f.resizeByteBuffer(len(data))
	ba := f.uint8Array.New(f.arrayBuf, int(0), int(len(data)))
	js.CopyBytesToJS(ba, data)
	return ba
}

func (f *Functions) float32ArrayOf(v []float32) js.Value {
	f.byteArrayOf(gunsafe.BytesView(v))
	return js.Global().Get("Float32Array").New(f.arrayBuf, 0, len(v))
}

func (f *Functions) int32ArrayOf(v []int32) js.Value {
	f.byteArrayOf(gunsafe.BytesView(v))
	return js.Global().Get("Int32Array").New(f.arrayBuf, 0, len(v))
}

func (f *Functions) resizeByteBuffer(n int) {
	if n == 0 {
		return
	}
	if !f.arrayBuf.IsUndefined() && f.arrayBuf.Get("byteLength").Int() >= n {
		return
	}
	f.arrayBuf = js.Global().Get("ArrayBuffer").New(n)
}

// nullable maps the zero object to null, which WebGL uses for unbinding.
func nullable(v js.Value) js.Value {
	if !valid(v) {
		return js.Null()
	}
	return v
}

func paramVal(v js.Value) int {
	switch v.Type() {
	case js.TypeBoolean:
		if v.Bool() {
			return 1
		}
		return 0
	case js.TypeNumber:
		return v.Int()
	default:
		return 0
	}
}
