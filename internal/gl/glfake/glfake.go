// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

// Package glfake implements gl.API in memory. It tracks object lifetimes,
// bindings and draw calls so device code can be tested without a driver.
package glfake

import (
	"fmt"
	"strings"

	"gfx/internal/gl"
)

// GL is an in-memory OpenGL implementation. It is not safe for concurrent
// use, just like a real context.
type GL struct {
	// Version is returned for GL_VERSION.
	Version string
	// MaxTextureSize is returned for GL_MAX_TEXTURE_SIZE.
	MaxTextureSize int

	// Calls counts invocations per method name.
	Calls map[string]int
	// Draws records every draw call in order.
	Draws []Draw

	next         uint
	buffers      map[uint]*Buffer
	textures     map[uint]*Texture
	shaders      map[uint]*shader
	programs     map[uint]*program
	framebuffers map[uint]*framebuffer
	vertexArrays map[uint]bool

	bindings     map[gl.Enum]uint
	texUnit      int
	units        map[int]uint
	program      uint
	vertexArray  uint
	caps         map[gl.Enum]bool
	viewport     [4]int
	scissor      [4]int
	clearColor   [4]float32
	attribs      map[gl.Attrib]*Attrib
	uniforms     map[int][]float32
	errs         []gl.Enum
	lost         bool
	nextUniform  int
	unpackAlign  int
	packAlign    int
	depthMask    bool
	colorMask    [4]bool
	depthFunc    gl.Enum
	cullFace     gl.Enum
	frontFace    gl.Enum
	blendEq      [2]gl.Enum
	blendFunc    [4]gl.Enum
	stencilFunc  map[gl.Enum][3]int
	stencilOp    map[gl.Enum][3]gl.Enum
	stencilMask  map[gl.Enum]uint
	clearDepth   float32
	clearStencil int
	flushes      int
}

// Buffer is the state of a buffer object.
type Buffer struct {
	Data  []byte
	Usage gl.Enum
}

// Texture is the state of a texture object.
type Texture struct {
	Width, Height  int
	InternalFormat gl.Enum
	Format, Type   gl.Enum
	Data           []byte
	Params         map[gl.Enum]int
}

// Attrib is the state of a vertex attribute.
type Attrib struct {
	Enabled    bool
	Size       int
	Type       gl.Enum
	Normalized bool
	Stride     int
	Offset     int
	Divisor    int
	Buffer     uint
}

// Draw records a draw call.
type Draw struct {
	Mode      gl.Enum
	First     int
	Count     int
	Indexed   bool
	IndexType gl.Enum
	Instances int
	Program   uint
}

type shader struct {
	ty       gl.Enum
	src      string
	compiled bool
	log      string
}

type program struct {
	shaders  []uint
	linked   bool
	log      string
	attribs  map[string]int
	uniforms map[string]int
}

type framebuffer struct {
	color uint
	depth uint
}

var _ gl.API = (*GL)(nil)

// New returns a GL that reports version 3.3.
func New() *GL {
	return &GL{
		Version:        "3.3.0 glfake",
		MaxTextureSize: 4096,
		Calls:          make(map[string]int),
		buffers:        make(map[uint]*Buffer),
		textures:       make(map[uint]*Texture),
		shaders:        make(map[uint]*shader),
		programs:       make(map[uint]*program),
		framebuffers:   make(map[uint]*framebuffer),
		vertexArrays:   make(map[uint]bool),
		bindings:       make(map[gl.Enum]uint),
		units:          make(map[int]uint),
		caps:           make(map[gl.Enum]bool),
		attribs:        make(map[gl.Attrib]*Attrib),
		uniforms:       make(map[int][]float32),
		stencilFunc:    make(map[gl.Enum][3]int),
		stencilOp:      make(map[gl.Enum][3]gl.Enum),
		stencilMask:    make(map[gl.Enum]uint),
		unpackAlign:    4,
		packAlign:      4,
		clearDepth:     1,
		depthMask:      true,
		colorMask:      [4]bool{true, true, true, true},
		depthFunc:      gl.LESS,
		cullFace:       gl.BACK,
		frontFace:      gl.CCW,
	}
}

// Lose simulates a lost context: GetError reports CONTEXT_LOST from now
// on and every command is ignored.
func (f *GL) Lose() {
	f.lost = true
}

// PushError queues e to be returned by the next GetError.
func (f *GL) PushError(e gl.Enum) {
	f.errs = append(f.errs, e)
}

// Buffer returns the buffer object named v, or nil.
func (f *GL) Buffer(v gl.Buffer) *Buffer {
	return f.buffers[v.V]
}

// Texture returns the texture object named v, or nil.
func (f *GL) Texture(v gl.Texture) *Texture {
	return f.textures[v.V]
}

// Attrib returns the state of vertex attribute a.
func (f *GL) Attrib(a gl.Attrib) Attrib {
	if s := f.attribs[a]; s != nil {
		return *s
	}
	return Attrib{}
}

// Uniform returns the values last set for the uniform at loc.
func (f *GL) Uniform(loc gl.Uniform) []float32 {
	return f.uniforms[loc.V]
}

// Live returns the number of live objects of every kind.
func (f *GL) Live() int {
	return len(f.buffers) + len(f.textures) + len(f.shaders) + len(f.programs) + len(f.framebuffers) + len(f.vertexArrays)
}

// ViewportBox returns the current viewport.
func (f *GL) ViewportBox() [4]int {
	return f.viewport
}

// ScissorBox returns the current scissor box.
func (f *GL) ScissorBox() [4]int {
	return f.scissor
}

// Enabled reports whether cap is enabled.
func (f *GL) Enabled(cap gl.Enum) bool {
	return f.caps[cap]
}

// Bound returns the object bound to target.
func (f *GL) Bound(target gl.Enum) uint {
	if target == gl.TEXTURE_2D {
		return f.units[f.texUnit]
	}
	return f.bindings[target]
}

// CurrentProgram returns the program in use.
func (f *GL) CurrentProgram() uint {
	return f.program
}

// BlendFunc returns the blend factors last set.
func (f *GL) BlendFunc() [4]gl.Enum {
	return f.blendFunc
}

// ColorMaskState returns the color write mask.
func (f *GL) ColorMaskState() [4]bool {
	return f.colorMask
}

// DepthState returns the depth function and write mask.
func (f *GL) DepthState() (gl.Enum, bool) {
	return f.depthFunc, f.depthMask
}

// CullState returns the cull face and front face modes.
func (f *GL) CullState() (gl.Enum, gl.Enum) {
	return f.cullFace, f.frontFace
}

// ClearValues returns the clear color, depth and stencil.
func (f *GL) ClearValues() ([4]float32, float32, int) {
	return f.clearColor, f.clearDepth, f.clearStencil
}

func (f *GL) record(name string) bool {
	f.Calls[name]++
	return !f.lost
}

func (f *GL) fail(e gl.Enum) {
	f.errs = append(f.errs, e)
}

func (f *GL) alloc() uint {
	f.next++
	return f.next
}

func (f *GL) ActiveTexture(t gl.Enum) {
	if !f.record("ActiveTexture") {
		return
	}
	f.texUnit = int(t - gl.TEXTURE0)
}

func (f *GL) AttachShader(p gl.Program, s gl.Shader) {
	if !f.record("AttachShader") {
		return
	}
	prog, sh := f.programs[p.V], f.shaders[s.V]
	if prog == nil || sh == nil {
		f.fail(gl.INVALID_VALUE)
		return
	}
	prog.shaders = append(prog.shaders, s.V)
}

func (f *GL) BindAttribLocation(p gl.Program, a gl.Attrib, name string) {
	if !f.record("BindAttribLocation") {
		return
	}
	prog := f.programs[p.V]
	if prog == nil {
		f.fail(gl.INVALID_VALUE)
		return
	}
	prog.attribs[name] = int(a)
}

func (f *GL) BindBuffer(target gl.Enum, b gl.Buffer) {
	if !f.record("BindBuffer") {
		return
	}
	if b.V != 0 && f.buffers[b.V] == nil {
		f.fail(gl.INVALID_OPERATION)
		return
	}
	f.bindings[target] = b.V
}

func (f *GL) BindFramebuffer(target gl.Enum, fb gl.Framebuffer) {
	if !f.record("BindFramebuffer") {
		return
	}
	if fb.V != 0 && f.framebuffers[fb.V] == nil {
		f.fail(gl.INVALID_OPERATION)
		return
	}
	f.bindings[target] = fb.V
}

func (f *GL) BindTexture(target gl.Enum, t gl.Texture) {
	if !f.record("BindTexture") {
		return
	}
	if t.V != 0 && f.textures[t.V] == nil {
		f.fail(gl.INVALID_OPERATION)
		return
	}
	f.units[f.texUnit] = t.V
}

func (f *GL) BindVertexArray(a gl.VertexArray) {
	if !f.record("BindVertexArray") {
		return
	}
	f.vertexArray = a.V
}

func (f *GL) BlendEquationSeparate(modeRGB, modeAlpha gl.Enum) {
	if !f.record("BlendEquationSeparate") {
		return
	}
	f.blendEq = [2]gl.Enum{modeRGB, modeAlpha}
}

func (f *GL) BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA gl.Enum) {
	if !f.record("BlendFuncSeparate") {
		return
	}
	f.blendFunc = [4]gl.Enum{srcRGB, dstRGB, srcA, dstA}
}

func (f *GL) boundBuffer(target gl.Enum) *Buffer {
	b := f.buffers[f.bindings[target]]
	if b == nil {
		f.fail(gl.INVALID_OPERATION)
	}
	return b
}

func (f *GL) BufferData(target gl.Enum, size int, usage gl.Enum, data []byte) {
	if !f.record("BufferData") {
		return
	}
	b := f.boundBuffer(target)
	if b == nil {
		return
	}
	b.Data = make([]byte, size)
	copy(b.Data, data)
	b.Usage = usage
}

func (f *GL) BufferSubData(target gl.Enum, offset int, src []byte) {
	if !f.record("BufferSubData") {
		return
	}
	b := f.boundBuffer(target)
	if b == nil {
		return
	}
	if offset < 0 || offset+len(src) > len(b.Data) {
		f.fail(gl.INVALID_VALUE)
		return
	}
	copy(b.Data[offset:], src)
}

func (f *GL) CheckFramebufferStatus(target gl.Enum) gl.Enum {
	if !f.record("CheckFramebufferStatus") {
		return 0
	}
	fb := f.framebuffers[f.bindings[target]]
	if fb == nil || fb.color != 0 || fb.depth != 0 {
		return gl.FRAMEBUFFER_COMPLETE
	}
	return 0
}

func (f *GL) Clear(mask gl.Enum) {
	f.record("Clear")
}

func (f *GL) ClearColor(red, green, blue, alpha float32) {
	if !f.record("ClearColor") {
		return
	}
	f.clearColor = [4]float32{red, green, blue, alpha}
}

func (f *GL) ClearDepthf(d float32) {
	if !f.record("ClearDepthf") {
		return
	}
	f.clearDepth = d
}

func (f *GL) ClearStencil(s int) {
	if !f.record("ClearStencil") {
		return
	}
	f.clearStencil = s
}

func (f *GL) ColorMask(red, green, blue, alpha bool) {
	if !f.record("ColorMask") {
		return
	}
	f.colorMask = [4]bool{red, green, blue, alpha}
}

func (f *GL) CompileShader(s gl.Shader) {
	if !f.record("CompileShader") {
		return
	}
	sh := f.shaders[s.V]
	if sh == nil {
		f.fail(gl.INVALID_VALUE)
		return
	}
	if i := strings.Index(sh.src, "#error"); i >= 0 {
		msg := strings.TrimSpace(strings.SplitN(sh.src[i+len("#error"):], "\n", 2)[0])
		sh.compiled = false
		sh.log = fmt.Sprintf("0:1: error: %s\n", msg)
		return
	}
	sh.compiled = true
	sh.log = ""
}

func (f *GL) CreateBuffer() gl.Buffer {
	if !f.record("CreateBuffer") {
		return gl.Buffer{}
	}
	id := f.alloc()
	f.buffers[id] = &Buffer{}
	return gl.Buffer{V: id}
}

func (f *GL) CreateFramebuffer() gl.Framebuffer {
	if !f.record("CreateFramebuffer") {
		return gl.Framebuffer{}
	}
	id := f.alloc()
	f.framebuffers[id] = &framebuffer{}
	return gl.Framebuffer{V: id}
}

func (f *GL) CreateProgram() gl.Program {
	if !f.record("CreateProgram") {
		return gl.Program{}
	}
	id := f.alloc()
	f.programs[id] = &program{attribs: make(map[string]int), uniforms: make(map[string]int)}
	return gl.Program{V: id}
}

func (f *GL) CreateShader(ty gl.Enum) gl.Shader {
	if !f.record("CreateShader") {
		return gl.Shader{}
	}
	id := f.alloc()
	f.shaders[id] = &shader{ty: ty}
	return gl.Shader{V: id}
}

func (f *GL) CreateTexture() gl.Texture {
	if !f.record("CreateTexture") {
		return gl.Texture{}
	}
	id := f.alloc()
	f.textures[id] = &Texture{Params: make(map[gl.Enum]int)}
	return gl.Texture{V: id}
}

func (f *GL) CreateVertexArray() gl.VertexArray {
	if !f.record("CreateVertexArray") {
		return gl.VertexArray{}
	}
	id := f.alloc()
	f.vertexArrays[id] = true
	return gl.VertexArray{V: id}
}

func (f *GL) CullFace(mode gl.Enum) {
	if !f.record("CullFace") {
		return
	}
	f.cullFace = mode
}

func (f *GL) DeleteBuffer(v gl.Buffer) {
	if !f.record("DeleteBuffer") {
		return
	}
	delete(f.buffers, v.V)
	for t, b := range f.bindings {
		if b == v.V && (t == gl.ARRAY_BUFFER || t == gl.ELEMENT_ARRAY_BUFFER) {
			f.bindings[t] = 0
		}
	}
}

func (f *GL) DeleteFramebuffer(v gl.Framebuffer) {
	if !f.record("DeleteFramebuffer") {
		return
	}
	delete(f.framebuffers, v.V)
	if f.bindings[gl.FRAMEBUFFER] == v.V {
		f.bindings[gl.FRAMEBUFFER] = 0
	}
}

func (f *GL) DeleteProgram(p gl.Program) {
	if !f.record("DeleteProgram") {
		return
	}
	delete(f.programs, p.V)
	if f.program == p.V {
		f.program = 0
	}
}

func (f *GL) DeleteShader(s gl.Shader) {
	if !f.record("DeleteShader") {
		return
	}
	delete(f.shaders, s.V)
}

func (f *GL) DeleteTexture(v gl.Texture) {
	if !f.record("DeleteTexture") {
		return
	}
	delete(f.textures, v.V)
	for u, t := range f.units {
		if t == v.V {
			f.units[u] = 0
		}
	}
}

func (f *GL) DeleteVertexArray(a gl.VertexArray) {
	if !f.record("DeleteVertexArray") {
		return
	}
	delete(f.vertexArrays, a.V)
}

func (f *GL) DepthFunc(fn gl.Enum) {
	if !f.record("DepthFunc") {
		return
	}
	f.depthFunc = fn
}

func (f *GL) DepthMask(mask bool) {
	if !f.record("DepthMask") {
		return
	}
	f.depthMask = mask
}

func (f *GL) Disable(cap gl.Enum) {
	if !f.record("Disable") {
		return
	}
	f.caps[cap] = false
}

func (f *GL) attrib(a gl.Attrib) *Attrib {
	s := f.attribs[a]
	if s == nil {
		s = new(Attrib)
		f.attribs[a] = s
	}
	return s
}

func (f *GL) DisableVertexAttribArray(a gl.Attrib) {
	if !f.record("DisableVertexAttribArray") {
		return
	}
	f.attrib(a).Enabled = false
}

func (f *GL) draw(d Draw) {
	if f.programs[f.program] == nil || !f.programs[f.program].linked {
		f.fail(gl.INVALID_OPERATION)
		return
	}
	d.Program = f.program
	f.Draws = append(f.Draws, d)
}

func (f *GL) DrawArrays(mode gl.Enum, first, count int) {
	if !f.record("DrawArrays") {
		return
	}
	f.draw(Draw{Mode: mode, First: first, Count: count, Instances: 1})
}

func (f *GL) DrawArraysInstanced(mode gl.Enum, first, count, primcount int) {
	if !f.record("DrawArraysInstanced") {
		return
	}
	f.draw(Draw{Mode: mode, First: first, Count: count, Instances: primcount})
}

func (f *GL) DrawElements(mode gl.Enum, count int, ty gl.Enum, offset int) {
	if !f.record("DrawElements") {
		return
	}
	f.draw(Draw{Mode: mode, First: offset, Count: count, Indexed: true, IndexType: ty, Instances: 1})
}

func (f *GL) DrawElementsInstanced(mode gl.Enum, count int, ty gl.Enum, offset, primcount int) {
	if !f.record("DrawElementsInstanced") {
		return
	}
	f.draw(Draw{Mode: mode, First: offset, Count: count, Indexed: true, IndexType: ty, Instances: primcount})
}

func (f *GL) Enable(cap gl.Enum) {
	if !f.record("Enable") {
		return
	}
	f.caps[cap] = true
}

func (f *GL) EnableVertexAttribArray(a gl.Attrib) {
	if !f.record("EnableVertexAttribArray") {
		return
	}
	f.attrib(a).Enabled = true
}

func (f *GL) Flush() {
	if !f.record("Flush") {
		return
	}
	f.flushes++
}

func (f *GL) FramebufferTexture2D(target, attachment, texTarget gl.Enum, t gl.Texture, level int) {
	if !f.record("FramebufferTexture2D") {
		return
	}
	fb := f.framebuffers[f.bindings[target]]
	if fb == nil || (t.V != 0 && f.textures[t.V] == nil) {
		f.fail(gl.INVALID_OPERATION)
		return
	}
	switch attachment {
	case gl.COLOR_ATTACHMENT0:
		fb.color = t.V
	case gl.DEPTH_ATTACHMENT:
		fb.depth = t.V
	default:
		f.fail(gl.INVALID_ENUM)
	}
}

func (f *GL) FrontFace(mode gl.Enum) {
	if !f.record("FrontFace") {
		return
	}
	f.frontFace = mode
}

func (f *GL) GetAttribLocation(p gl.Program, name string) int {
	if !f.record("GetAttribLocation") {
		return -1
	}
	prog := f.programs[p.V]
	if prog == nil || !prog.linked {
		return -1
	}
	if loc, ok := prog.attribs[name]; ok {
		return loc
	}
	return -1
}

func (f *GL) GetBinding(pname gl.Enum) gl.Object {
	if !f.record("GetBinding") {
		return gl.Object{}
	}
	switch pname {
	case gl.FRAMEBUFFER_BINDING:
		return gl.Object{V: f.bindings[gl.FRAMEBUFFER]}
	}
	return gl.Object{}
}

func (f *GL) GetError() gl.Enum {
	f.Calls["GetError"]++
	if f.lost {
		return gl.CONTEXT_LOST
	}
	if len(f.errs) == 0 {
		return gl.NO_ERROR
	}
	e := f.errs[0]
	f.errs = f.errs[1:]
	return e
}

func (f *GL) GetInteger(pname gl.Enum) int {
	if !f.record("GetInteger") {
		return 0
	}
	switch pname {
	case gl.MAX_TEXTURE_SIZE:
		return f.MaxTextureSize
	case gl.UNPACK_ALIGNMENT:
		return f.unpackAlign
	case gl.PACK_ALIGNMENT:
		return f.packAlign
	case gl.FRAMEBUFFER_BINDING:
		return int(f.bindings[gl.FRAMEBUFFER])
	}
	return 0
}

func (f *GL) GetProgrami(p gl.Program, pname gl.Enum) int {
	if !f.record("GetProgrami") {
		return 0
	}
	prog := f.programs[p.V]
	if prog == nil {
		f.fail(gl.INVALID_VALUE)
		return 0
	}
	switch pname {
	case gl.LINK_STATUS:
		if prog.linked {
			return gl.TRUE
		}
		return gl.FALSE
	case gl.INFO_LOG_LENGTH:
		return len(prog.log)
	}
	return 0
}

func (f *GL) GetProgramInfoLog(p gl.Program) string {
	if !f.record("GetProgramInfoLog") {
		return ""
	}
	if prog := f.programs[p.V]; prog != nil {
		return prog.log
	}
	return ""
}

func (f *GL) GetShaderi(s gl.Shader, pname gl.Enum) int {
	if !f.record("GetShaderi") {
		return 0
	}
	sh := f.shaders[s.V]
	if sh == nil {
		f.fail(gl.INVALID_VALUE)
		return 0
	}
	switch pname {
	case gl.COMPILE_STATUS:
		if sh.compiled {
			return gl.TRUE
		}
		return gl.FALSE
	case gl.INFO_LOG_LENGTH:
		return len(sh.log)
	}
	return 0
}

func (f *GL) GetShaderInfoLog(s gl.Shader) string {
	if !f.record("GetShaderInfoLog") {
		return ""
	}
	if sh := f.shaders[s.V]; sh != nil {
		return sh.log
	}
	return ""
}

func (f *GL) GetString(pname gl.Enum) string {
	if !f.record("GetString") {
		return ""
	}
	switch pname {
	case gl.VERSION:
		return f.Version
	case gl.VENDOR:
		return "gfx"
	case gl.RENDERER:
		return "glfake"
	}
	return ""
}

func (f *GL) GetUniformLocation(p gl.Program, name string) gl.Uniform {
	if !f.record("GetUniformLocation") {
		return gl.Uniform{V: -1}
	}
	prog := f.programs[p.V]
	if prog == nil || !prog.linked {
		return gl.Uniform{V: -1}
	}
	if loc, ok := prog.uniforms[name]; ok {
		return gl.Uniform{V: loc}
	}
	return gl.Uniform{V: -1}
}

func (f *GL) LinkProgram(p gl.Program) {
	if !f.record("LinkProgram") {
		return
	}
	prog := f.programs[p.V]
	if prog == nil {
		f.fail(gl.INVALID_VALUE)
		return
	}
	prog.linked = false
	var stages [2]bool
	var src strings.Builder
	for _, id := range prog.shaders {
		sh := f.shaders[id]
		if sh == nil || !sh.compiled {
			prog.log = "link error: attached shader not compiled\n"
			return
		}
		switch sh.ty {
		case gl.VERTEX_SHADER:
			stages[0] = true
		case gl.FRAGMENT_SHADER:
			stages[1] = true
		}
		src.WriteString(sh.src)
		src.WriteByte('\n')
	}
	if !stages[0] || !stages[1] {
		prog.log = "link error: missing shader stage\n"
		return
	}
	prog.linked = true
	prog.log = ""
	// Declarations are recognized line by line: "attribute|in <type> <name>;"
	// in the vertex stage and "uniform <type> <name>;" anywhere.
	next := len(prog.attribs)
	for _, line := range strings.Split(src.String(), "\n") {
		fields := strings.Fields(strings.TrimSuffix(strings.TrimSpace(line), ";"))
		if len(fields) < 3 {
			continue
		}
		name := strings.TrimSuffix(fields[len(fields)-1], ";")
		if i := strings.IndexByte(name, '['); i >= 0 {
			name = name[:i]
		}
		switch fields[0] {
		case "uniform":
			if _, ok := prog.uniforms[name]; !ok {
				prog.uniforms[name] = f.nextUniform
				f.nextUniform++
			}
		case "attribute", "in":
			if _, ok := prog.attribs[name]; !ok {
				prog.attribs[name] = next
				next++
			}
		}
	}
}

func (f *GL) PixelStorei(pname gl.Enum, param int) {
	if !f.record("PixelStorei") {
		return
	}
	switch pname {
	case gl.UNPACK_ALIGNMENT:
		f.unpackAlign = param
	case gl.PACK_ALIGNMENT:
		f.packAlign = param
	}
}

func (f *GL) ReadPixels(x, y, width, height int, format, ty gl.Enum, data []byte) {
	if !f.record("ReadPixels") {
		return
	}
	fb := f.framebuffers[f.bindings[gl.FRAMEBUFFER]]
	if fb == nil {
		return
	}
	t := f.textures[fb.color]
	if t == nil {
		f.fail(gl.INVALID_FRAMEBUFFER_OPERATION)
		return
	}
	bpp := pixelSize(format, ty)
	for row := 0; row < height; row++ {
		src := ((y+row)*t.Width + x) * pixelSize(t.Format, t.Type)
		dst := row * width * bpp
		if src+width*bpp > len(t.Data) || dst+width*bpp > len(data) {
			f.fail(gl.INVALID_VALUE)
			return
		}
		copy(data[dst:dst+width*bpp], t.Data[src:])
	}
}

func (f *GL) Scissor(x, y, width, height int) {
	if !f.record("Scissor") {
		return
	}
	f.scissor = [4]int{x, y, width, height}
}

func (f *GL) ShaderSource(s gl.Shader, src string) {
	if !f.record("ShaderSource") {
		return
	}
	sh := f.shaders[s.V]
	if sh == nil {
		f.fail(gl.INVALID_VALUE)
		return
	}
	sh.src = src
}

func (f *GL) StencilFuncSeparate(face, fn gl.Enum, ref int, mask uint) {
	if !f.record("StencilFuncSeparate") {
		return
	}
	f.stencilFunc[face] = [3]int{int(fn), ref, int(mask)}
}

func (f *GL) StencilMaskSeparate(face gl.Enum, mask uint) {
	if !f.record("StencilMaskSeparate") {
		return
	}
	f.stencilMask[face] = mask
}

func (f *GL) StencilOpSeparate(face, sfail, dpfail, dppass gl.Enum) {
	if !f.record("StencilOpSeparate") {
		return
	}
	f.stencilOp[face] = [3]gl.Enum{sfail, dpfail, dppass}
}

func (f *GL) boundTexture() *Texture {
	t := f.textures[f.units[f.texUnit]]
	if t == nil {
		f.fail(gl.INVALID_OPERATION)
	}
	return t
}

func (f *GL) TexImage2D(target gl.Enum, level int, internalFormat gl.Enum, width, height int, format, ty gl.Enum, data []byte) {
	if !f.record("TexImage2D") {
		return
	}
	t := f.boundTexture()
	if t == nil {
		return
	}
	if width < 0 || height < 0 || width > f.MaxTextureSize || height > f.MaxTextureSize {
		f.fail(gl.INVALID_VALUE)
		return
	}
	t.Width, t.Height = width, height
	t.InternalFormat, t.Format, t.Type = internalFormat, format, ty
	t.Data = make([]byte, width*height*pixelSize(format, ty))
	copy(t.Data, data)
}

func (f *GL) TexParameteri(target, pname gl.Enum, param int) {
	if !f.record("TexParameteri") {
		return
	}
	if t := f.boundTexture(); t != nil {
		t.Params[pname] = param
	}
}

func (f *GL) TexSubImage2D(target gl.Enum, level, x, y, width, height int, format, ty gl.Enum, data []byte) {
	if !f.record("TexSubImage2D") {
		return
	}
	t := f.boundTexture()
	if t == nil {
		return
	}
	if x < 0 || y < 0 || x+width > t.Width || y+height > t.Height {
		f.fail(gl.INVALID_VALUE)
		return
	}
	bpp := pixelSize(format, ty)
	for row := 0; row < height; row++ {
		dst := ((y+row)*t.Width + x) * bpp
		src := row * width * bpp
		copy(t.Data[dst:dst+width*bpp], data[src:])
	}
}

func (f *GL) setUniform(name string, dst gl.Uniform, v []float32) {
	if !f.record(name) {
		return
	}
	if dst.V < 0 || f.programs[f.program] == nil {
		f.fail(gl.INVALID_OPERATION)
		return
	}
	f.uniforms[dst.V] = append([]float32(nil), v...)
}

func (f *GL) Uniform1fv(dst gl.Uniform, v []float32) {
	f.setUniform("Uniform1fv", dst, v)
}

func (f *GL) Uniform2fv(dst gl.Uniform, v []float32) {
	f.setUniform("Uniform2fv", dst, v)
}

func (f *GL) Uniform3fv(dst gl.Uniform, v []float32) {
	f.setUniform("Uniform3fv", dst, v)
}

func (f *GL) Uniform4fv(dst gl.Uniform, v []float32) {
	f.setUniform("Uniform4fv", dst, v)
}

func (f *GL) Uniform1iv(dst gl.Uniform, v []int32) {
	fv := make([]float32, len(v))
	for i, x := range v {
		fv[i] = float32(x)
	}
	f.setUniform("Uniform1iv", dst, fv)
}

func (f *GL) UniformMatrix4fv(dst gl.Uniform, v []float32) {
	f.setUniform("UniformMatrix4fv", dst, v)
}

func (f *GL) UseProgram(p gl.Program) {
	if !f.record("UseProgram") {
		return
	}
	if p.V != 0 && f.programs[p.V] == nil {
		f.fail(gl.INVALID_OPERATION)
		return
	}
	f.program = p.V
}

func (f *GL) VertexAttribDivisor(a gl.Attrib, divisor int) {
	if !f.record("VertexAttribDivisor") {
		return
	}
	f.attrib(a).Divisor = divisor
}

func (f *GL) VertexAttribPointer(dst gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int) {
	if !f.record("VertexAttribPointer") {
		return
	}
	s := f.attrib(dst)
	s.Size, s.Type, s.Normalized, s.Stride, s.Offset = size, ty, normalized, stride, offset
	s.Buffer = f.bindings[gl.ARRAY_BUFFER]
}

func (f *GL) Viewport(x, y, width, height int) {
	if !f.record("Viewport") {
		return
	}
	f.viewport = [4]int{x, y, width, height}
}

func pixelSize(format, ty gl.Enum) int {
	n := 4
	switch format {
	case gl.RGB:
		n = 3
	case gl.DEPTH_COMPONENT, gl.RED, gl.ALPHA:
		n = 1
	}
	switch ty {
	case gl.UNSIGNED_SHORT:
		n *= 2
	case gl.UNSIGNED_INT, gl.FLOAT:
		n *= 4
	}
	return n
}
