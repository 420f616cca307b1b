// SPDX-License-Identifier: Unlicense OR MIT

package gl

// API is the GL command surface shared by every backend: desktop OpenGL
// through a loaded procedure table, WebGL2 through the browser context and
// the in-memory implementation used by tests.
//
// All methods operate on the context current on the calling thread.
type API interface {
	ActiveTexture(texture Enum)
	AttachShader(p Program, s Shader)
	BindAttribLocation(p Program, a Attrib, name string)
	BindBuffer(target Enum, b Buffer)
	BindFramebuffer(target Enum, fb Framebuffer)
	BindTexture(target Enum, t Texture)
	BindVertexArray(a VertexArray)
	BlendEquationSeparate(modeRGB, modeAlpha Enum)
	BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA Enum)
	// BufferData allocates size bytes for the buffer bound to target and
	// fills them from data if data is non-nil.
	BufferData(target Enum, size int, usage Enum, data []byte)
	BufferSubData(target Enum, offset int, src []byte)
	CheckFramebufferStatus(target Enum) Enum
	Clear(mask Enum)
	ClearColor(red, green, blue, alpha float32)
	ClearDepthf(d float32)
	ClearStencil(s int)
	ColorMask(red, green, blue, alpha bool)
	CompileShader(s Shader)
	CreateBuffer() Buffer
	CreateFramebuffer() Framebuffer
	CreateProgram() Program
	CreateShader(ty Enum) Shader
	CreateTexture() Texture
	CreateVertexArray() VertexArray
	CullFace(mode Enum)
	DeleteBuffer(v Buffer)
	DeleteFramebuffer(v Framebuffer)
	DeleteProgram(p Program)
	DeleteShader(s Shader)
	DeleteTexture(v Texture)
	DeleteVertexArray(a VertexArray)
	DepthFunc(f Enum)
	DepthMask(mask bool)
	Disable(cap Enum)
	DisableVertexAttribArray(a Attrib)
	DrawArrays(mode Enum, first, count int)
	DrawArraysInstanced(mode Enum, first, count, primcount int)
	DrawElements(mode Enum, count int, ty Enum, offset int)
	DrawElementsInstanced(mode Enum, count int, ty Enum, offset, primcount int)
	Enable(cap Enum)
	EnableVertexAttribArray(a Attrib)
	Flush()
	FramebufferTexture2D(target, attachment, texTarget Enum, t Texture, level int)
	FrontFace(mode Enum)
	// GetAttribLocation returns -1 for unknown or inactive attributes.
	GetAttribLocation(p Program, name string) int
	GetBinding(pname Enum) Object
	GetError() Enum
	GetInteger(pname Enum) int
	GetProgrami(p Program, pname Enum) int
	GetProgramInfoLog(p Program) string
	GetShaderi(s Shader, pname Enum) int
	GetShaderInfoLog(s Shader) string
	GetString(pname Enum) string
	GetUniformLocation(p Program, name string) Uniform
	LinkProgram(p Program)
	PixelStorei(pname Enum, param int)
	ReadPixels(x, y, width, height int, format, ty Enum, data []byte)
	Scissor(x, y, width, height int)
	ShaderSource(s Shader, src string)
	StencilFuncSeparate(face, fn Enum, ref int, mask uint)
	StencilMaskSeparate(face Enum, mask uint)
	StencilOpSeparate(face, sfail, dpfail, dppass Enum)
	TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, ty Enum, data []byte)
	TexParameteri(target, pname Enum, param int)
	TexSubImage2D(target Enum, level, x, y, width, height int, format, ty Enum, data []byte)
	Uniform1fv(dst Uniform, v []float32)
	Uniform2fv(dst Uniform, v []float32)
	Uniform3fv(dst Uniform, v []float32)
	Uniform4fv(dst Uniform, v []float32)
	Uniform1iv(dst Uniform, v []int32)
	UniformMatrix4fv(dst Uniform, v []float32)
	UseProgram(p Program)
	VertexAttribDivisor(a Attrib, divisor int)
	VertexAttribPointer(dst Attrib, size int, ty Enum, normalized bool, stride, offset int)
	Viewport(x, y, width, height int)
}
