// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"gfx/internal/gl"
)

const (
	maxAttribs  = 16
	maxTexUnits = 16
)

// glState tracks the GL state set by a Device to elide redundant calls.
// The Device must be the only user of its context.
type glState struct {
	drawFBO     gl.Framebuffer
	vertAttribs [maxAttribs]struct {
		obj        gl.Buffer
		enabled    bool
		size       int
		typ        gl.Enum
		normalized bool
		stride     int
		offset     int
		divisor    int
	}
	prog     gl.Program
	texUnits struct {
		active gl.Enum
		binds  [maxTexUnits]gl.Texture
	}
	arrayBuf  gl.Buffer
	elemBuf   gl.Buffer
	vertArray gl.VertexArray
	depthMask bool
	depthFunc gl.Enum
	colorMask [4]bool
	blend     struct {
		enable         bool
		eqRGB, eqA     gl.Enum
		srcRGB, dstRGB gl.Enum
		srcA, dstA     gl.Enum
	}
	stencil struct {
		enable    bool
		funcs     [2][3]int
		ops       [2][3]gl.Enum
		writeMask [2]uint
	}
	depthTest    bool
	cullTest     bool
	scissorTest  bool
	cullFace     gl.Enum
	frontFace    gl.Enum
	clearColor   [4]float32
	clearDepth   float32
	clearStencil int
	viewport     [4]int
	scissor      [4]int
}

// newGLState returns the state of a fresh context.
func newGLState() glState {
	s := glState{
		depthMask:  true,
		depthFunc:  gl.LESS,
		colorMask:  [4]bool{true, true, true, true},
		cullFace:   gl.BACK,
		frontFace:  gl.CCW,
		clearDepth: 1,
	}
	s.texUnits.active = gl.TEXTURE0
	s.blend.eqRGB, s.blend.eqA = gl.FUNC_ADD, gl.FUNC_ADD
	s.blend.srcRGB, s.blend.dstRGB = gl.ONE, gl.ZERO
	s.blend.srcA, s.blend.dstA = gl.ONE, gl.ZERO
	for i := range s.stencil.funcs {
		s.stencil.funcs[i] = [3]int{gl.ALWAYS, 0, 0xff}
		s.stencil.ops[i] = [3]gl.Enum{gl.KEEP, gl.KEEP, gl.KEEP}
		s.stencil.writeMask[i] = 0xff
	}
	return s
}

func (s *glState) setVertexAttribArray(f gl.API, idx int, enabled bool) {
	a := &s.vertAttribs[idx]
	if enabled != a.enabled {
		if enabled {
			f.EnableVertexAttribArray(gl.Attrib(idx))
		} else {
			f.DisableVertexAttribArray(gl.Attrib(idx))
		}
		a.enabled = enabled
	}
}

func (s *glState) vertexAttribPointer(f gl.API, buf gl.Buffer, idx, size int, typ gl.Enum, normalized bool, stride, offset int) {
	a := &s.vertAttribs[idx]
	if buf.Equal(a.obj) && a.size == size && a.typ == typ && a.normalized == normalized && a.stride == stride && a.offset == offset {
		return
	}
	s.bindBuffer(f, gl.ARRAY_BUFFER, buf)
	a.obj = buf
	a.size = size
	a.typ = typ
	a.normalized = normalized
	a.stride = stride
	a.offset = offset
	f.VertexAttribPointer(gl.Attrib(idx), a.size, a.typ, a.normalized, a.stride, a.offset)
}

func (s *glState) vertexAttribDivisor(f gl.API, idx, divisor int) {
	a := &s.vertAttribs[idx]
	if divisor != a.divisor {
		f.VertexAttribDivisor(gl.Attrib(idx), divisor)
		a.divisor = divisor
	}
}

func (s *glState) activeTexture(f gl.API, unit gl.Enum) {
	if unit != s.texUnits.active {
		f.ActiveTexture(unit)
		s.texUnits.active = unit
	}
}

func (s *glState) bindTexture(f gl.API, unit int, t gl.Texture) {
	s.activeTexture(f, gl.TEXTURE0+gl.Enum(unit))
	if !t.Equal(s.texUnits.binds[unit]) {
		f.BindTexture(gl.TEXTURE_2D, t)
		s.texUnits.binds[unit] = t
	}
}

func (s *glState) bindVertexArray(f gl.API, a gl.VertexArray) {
	if !a.Equal(s.vertArray) {
		f.BindVertexArray(a)
		s.vertArray = a
	}
}

func (s *glState) deleteFramebuffer(f gl.API, fbo gl.Framebuffer) {
	f.DeleteFramebuffer(fbo)
	if fbo.Equal(s.drawFBO) {
		s.drawFBO = gl.Framebuffer{}
	}
}

func (s *glState) deleteBuffer(f gl.API, b gl.Buffer) {
	f.DeleteBuffer(b)
	if b.Equal(s.arrayBuf) {
		s.arrayBuf = gl.Buffer{}
	}
	if b.Equal(s.elemBuf) {
		s.elemBuf = gl.Buffer{}
	}
	for i := range s.vertAttribs {
		if a := &s.vertAttribs[i]; b.Equal(a.obj) {
			a.obj = gl.Buffer{}
		}
	}
}

func (s *glState) deleteProgram(f gl.API, p gl.Program) {
	f.DeleteProgram(p)
	if p.Equal(s.prog) {
		s.prog = gl.Program{}
	}
}

func (s *glState) deleteVertexArray(f gl.API, a gl.VertexArray) {
	f.DeleteVertexArray(a)
	if a.Equal(s.vertArray) {
		s.vertArray = gl.VertexArray{}
	}
}

func (s *glState) deleteTexture(f gl.API, t gl.Texture) {
	f.DeleteTexture(t)
	binds := &s.texUnits.binds
	for i, obj := range binds {
		if t.Equal(obj) {
			binds[i] = gl.Texture{}
		}
	}
}

func (s *glState) useProgram(f gl.API, p gl.Program) {
	if !p.Equal(s.prog) {
		f.UseProgram(p)
		s.prog = p
	}
}

func (s *glState) bindFramebuffer(f gl.API, fbo gl.Framebuffer) {
	if !fbo.Equal(s.drawFBO) {
		f.BindFramebuffer(gl.FRAMEBUFFER, fbo)
		s.drawFBO = fbo
	}
}

func (s *glState) bindBuffer(f gl.API, target gl.Enum, buf gl.Buffer) {
	switch target {
	case gl.ARRAY_BUFFER:
		if buf.Equal(s.arrayBuf) {
			return
		}
		s.arrayBuf = buf
	case gl.ELEMENT_ARRAY_BUFFER:
		if buf.Equal(s.elemBuf) {
			return
		}
		s.elemBuf = buf
	default:
		panic("unknown buffer target")
	}
	f.BindBuffer(target, buf)
}

func (s *glState) setClearDepth(f gl.API, d float32) {
	if d != s.clearDepth {
		f.ClearDepthf(d)
		s.clearDepth = d
	}
}

func (s *glState) setClearColor(f gl.API, c [4]float32) {
	if c != s.clearColor {
		f.ClearColor(c[0], c[1], c[2], c[3])
		s.clearColor = c
	}
}

func (s *glState) setClearStencil(f gl.API, v int) {
	if v != s.clearStencil {
		f.ClearStencil(v)
		s.clearStencil = v
	}
}

func (s *glState) setViewport(f gl.API, x, y, width, height int) {
	view := [4]int{x, y, width, height}
	if view != s.viewport {
		f.Viewport(x, y, width, height)
		s.viewport = view
	}
}

func (s *glState) setScissor(f gl.API, x, y, width, height int) {
	r := [4]int{x, y, width, height}
	if r != s.scissor {
		f.Scissor(x, y, width, height)
		s.scissor = r
	}
}

func (s *glState) setDepthFunc(f gl.API, df gl.Enum) {
	if df != s.depthFunc {
		f.DepthFunc(df)
		s.depthFunc = df
	}
}

func (s *glState) setBlendEquationSeparate(f gl.API, modeRGB, modeA gl.Enum) {
	if modeRGB != s.blend.eqRGB || modeA != s.blend.eqA {
		s.blend.eqRGB = modeRGB
		s.blend.eqA = modeA
		f.BlendEquationSeparate(modeRGB, modeA)
	}
}

func (s *glState) setBlendFuncSeparate(f gl.API, srcRGB, dstRGB, srcA, dstA gl.Enum) {
	if srcRGB != s.blend.srcRGB || dstRGB != s.blend.dstRGB || srcA != s.blend.srcA || dstA != s.blend.dstA {
		s.blend.srcRGB = srcRGB
		s.blend.dstRGB = dstRGB
		s.blend.srcA = srcA
		s.blend.dstA = dstA
		f.BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA)
	}
}

func (s *glState) setDepthMask(f gl.API, enable bool) {
	if enable != s.depthMask {
		f.DepthMask(enable)
		s.depthMask = enable
	}
}

func (s *glState) setColorMask(f gl.API, mask [4]bool) {
	if mask != s.colorMask {
		f.ColorMask(mask[0], mask[1], mask[2], mask[3])
		s.colorMask = mask
	}
}

func (s *glState) setCullFace(f gl.API, mode gl.Enum) {
	if mode != s.cullFace {
		f.CullFace(mode)
		s.cullFace = mode
	}
}

func (s *glState) setFrontFace(f gl.API, mode gl.Enum) {
	if mode != s.frontFace {
		f.FrontFace(mode)
		s.frontFace = mode
	}
}

// stencil face indices.
const (
	faceFront = iota
	faceBack
)

func faceEnum(face int) gl.Enum {
	if face == faceBack {
		return gl.BACK
	}
	return gl.FRONT
}

func (s *glState) setStencilFunc(f gl.API, face int, fn gl.Enum, ref int, mask uint) {
	v := [3]int{int(fn), ref, int(mask)}
	if v != s.stencil.funcs[face] {
		f.StencilFuncSeparate(faceEnum(face), fn, ref, mask)
		s.stencil.funcs[face] = v
	}
}

func (s *glState) setStencilOp(f gl.API, face int, sfail, dpfail, dppass gl.Enum) {
	v := [3]gl.Enum{sfail, dpfail, dppass}
	if v != s.stencil.ops[face] {
		f.StencilOpSeparate(faceEnum(face), sfail, dpfail, dppass)
		s.stencil.ops[face] = v
	}
}

func (s *glState) setStencilMask(f gl.API, face int, mask uint) {
	if mask != s.stencil.writeMask[face] {
		f.StencilMaskSeparate(faceEnum(face), mask)
		s.stencil.writeMask[face] = mask
	}
}

func (s *glState) set(f gl.API, target gl.Enum, enable bool) {
	switch target {
	case gl.BLEND:
		if enable == s.blend.enable {
			return
		}
		s.blend.enable = enable
	case gl.DEPTH_TEST:
		if enable == s.depthTest {
			return
		}
		s.depthTest = enable
	case gl.CULL_FACE:
		if enable == s.cullTest {
			return
		}
		s.cullTest = enable
	case gl.SCISSOR_TEST:
		if enable == s.scissorTest {
			return
		}
		s.scissorTest = enable
	case gl.STENCIL_TEST:
		if enable == s.stencil.enable {
			return
		}
		s.stencil.enable = enable
	default:
		panic("unknown enable")
	}
	if enable {
		f.Enable(target)
	} else {
		f.Disable(target)
	}
}
