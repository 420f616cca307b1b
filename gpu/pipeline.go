// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"gfx/glue"
	"gfx/internal/gl"
)

type gpuPipeline struct {
	prog    Program
	layouts []BufferLayout
	attribs []pipelineAttrib
	mode    gl.Enum

	blend      *BlendState
	alphaBlend *BlendState
	depthTest  Comparison
	depthWrite bool
	stencil    *StencilState
	cull       CullFace
	front      FrontFace
	colorMask  [4]bool
}

// pipelineAttrib is a vertex attribute resolved against a program.
type pipelineAttrib struct {
	loc     int
	buffer  int
	format  VertexFormat
	offset  int
	stride  int
	divisor int
}

// CreatePipeline validates desc against its program and records the vertex
// layout and fixed function state.
func (d *Device) CreatePipeline(desc PipelineDesc) (Pipeline, error) {
	if err := d.check(); err != nil {
		return Pipeline{}, err
	}
	prog, err := d.programs.get(desc.Program.h)
	if err != nil {
		return Pipeline{}, err
	}
	p := &gpuPipeline{
		prog:       desc.Program,
		layouts:    append([]BufferLayout(nil), desc.Layouts...),
		mode:       desc.Primitive.glMode(),
		depthTest:  desc.DepthTest,
		depthWrite: desc.DepthWrite,
		cull:       desc.Cull,
		front:      desc.Front,
	}
	if desc.Primitive > Points {
		return Pipeline{}, invalidArg("primitive type %d", desc.Primitive)
	}
	if desc.DepthTest > CompareAlways {
		return Pipeline{}, invalidArg("depth test %d", desc.DepthTest)
	}
	if desc.Blend != nil {
		b := *desc.Blend
		p.blend = &b
	}
	if desc.AlphaBlend != nil {
		b := *desc.AlphaBlend
		p.alphaBlend = &b
	}
	if desc.Stencil != nil {
		s := *desc.Stencil
		p.stencil = &s
	}
	for i, c := range []ColorMask{ColorR, ColorG, ColorB, ColorA} {
		p.colorMask[i] = desc.DisableColorWrite&c == 0
	}
	// Pack attributes per buffer.
	offsets := make([]int, len(desc.Layouts))
	for _, a := range desc.Attributes {
		if a.BufferIndex < 0 || a.BufferIndex >= len(desc.Layouts) {
			return Pipeline{}, invalidArg("attribute %q in buffer %d of %d", a.Name, a.BufferIndex, len(desc.Layouts))
		}
		if a.Format > VertexShort4 {
			return Pipeline{}, invalidArg("attribute %q format %d", a.Name, a.Format)
		}
		off := offsets[a.BufferIndex]
		offsets[a.BufferIndex] += a.Format.size()
		loc, ok := prog.attribs[a.Name]
		if !ok {
			glue.Logger().Debug("gpu: vertex attribute not used by program", "name", a.Name)
			continue
		}
		p.attribs = append(p.attribs, pipelineAttrib{
			loc:    loc,
			buffer: a.BufferIndex,
			format: a.Format,
			offset: off,
		})
	}
	for i := range p.layouts {
		l := &p.layouts[i]
		if l.Stride < 0 || l.StepRate < 0 {
			return Pipeline{}, invalidArg("buffer layout %d", i)
		}
		if l.Stride == 0 {
			l.Stride = offsets[i]
		}
		if l.Step == StepPerInstance && !d.caps.Instancing {
			return Pipeline{}, invalidArg("per instance layout %d without instancing support", i)
		}
	}
	for i := range p.attribs {
		a := &p.attribs[i]
		l := p.layouts[a.buffer]
		a.stride = l.Stride
		if l.Step == StepPerInstance {
			a.divisor = max(l.StepRate, 1)
		}
	}
	return Pipeline{d.pipelines.insert(p)}, nil
}

// DestroyPipeline deletes p. The program of p is not affected.
func (d *Device) DestroyPipeline(p Pipeline) error {
	if err := d.check(); err != nil {
		return err
	}
	_, err := d.pipelines.remove(p.h)
	return err
}

// ApplyPipeline binds the program of p and sets its fixed function state.
// Bindings must be applied again afterwards.
func (d *Device) ApplyPipeline(p Pipeline) error {
	if err := d.check(); err != nil {
		return err
	}
	pl, err := d.pipelines.get(p.h)
	if err != nil {
		return err
	}
	prog, err := d.programs.get(pl.prog.h)
	if err != nil {
		return err
	}
	f := d.funcs
	s := &d.state
	s.useProgram(f, prog.obj)

	s.set(f, gl.BLEND, pl.blend != nil)
	if b := pl.blend; b != nil {
		a := b
		if pl.alphaBlend != nil {
			a = pl.alphaBlend
		}
		s.setBlendEquationSeparate(f, b.Equation.glEquation(), a.Equation.glEquation())
		s.setBlendFuncSeparate(f, b.Src.glFactor(), b.Dst.glFactor(), a.Src.glFactor(), a.Dst.glFactor())
	}

	s.set(f, gl.DEPTH_TEST, pl.depthTest != 0)
	if pl.depthTest != 0 {
		s.setDepthFunc(f, pl.depthTest.glFunc())
	}
	s.setDepthMask(f, pl.depthWrite)

	s.set(f, gl.STENCIL_TEST, pl.stencil != nil)
	if st := pl.stencil; st != nil {
		for face, fs := range [2]StencilFaceState{faceFront: st.Front, faceBack: st.Back} {
			s.setStencilFunc(f, face, fs.Test.glFunc(), st.Ref, st.ReadMask)
			s.setStencilOp(f, face, fs.Fail.glOp(), fs.DepthFail.glOp(), fs.Pass.glOp())
			s.setStencilMask(f, face, st.WriteMask)
		}
	}

	s.set(f, gl.CULL_FACE, pl.cull != CullNothing)
	switch pl.cull {
	case CullFront:
		s.setCullFace(f, gl.FRONT)
	case CullBack:
		s.setCullFace(f, gl.BACK)
	}
	if pl.front == FrontCW {
		s.setFrontFace(f, gl.CW)
	} else {
		s.setFrontFace(f, gl.CCW)
	}
	s.setColorMask(f, pl.colorMask)

	d.cur.prog = pl.prog
	d.cur.pipeline = p
	d.cur.bound = false
	d.cur.vertex = d.cur.vertex[:0]
	d.cur.index = Buffer{}
	d.cur.images = d.cur.images[:0]
	return nil
}

// ApplyBindings binds vertex buffers, the index buffer and images for the
// current pipeline. Every handle is resolved before any state changes.
func (d *Device) ApplyBindings(b Bindings) error {
	if err := d.check(); err != nil {
		return err
	}
	if d.cur.pipeline.IsNull() {
		return invalidArg("no pipeline applied")
	}
	pl, prog, err := d.currentPipeline()
	if err != nil {
		return err
	}
	if len(b.VertexBuffers) < len(pl.layouts) {
		return invalidArg("%d vertex buffers for %d layouts", len(b.VertexBuffers), len(pl.layouts))
	}
	if len(b.Images) > prog.images {
		return invalidArg("%d images for %d samplers", len(b.Images), prog.images)
	}
	vbufs := make([]*gpuBuffer, len(b.VertexBuffers))
	for i, h := range b.VertexBuffers {
		buf, err := d.buffers.get(h.h)
		if err != nil {
			return err
		}
		if buf.typ != VertexBuffer {
			return invalidArg("%s buffer %s bound as vertex buffer", buf.typ, h)
		}
		vbufs[i] = buf
	}
	var ibuf *gpuBuffer
	if !b.IndexBuffer.IsNull() {
		buf, err := d.buffers.get(b.IndexBuffer.h)
		if err != nil {
			return err
		}
		if buf.typ != IndexBuffer {
			return invalidArg("%s buffer %s bound as index buffer", buf.typ, b.IndexBuffer)
		}
		ibuf = buf
	}
	texs := make([]*gpuTexture, len(b.Images))
	for i, h := range b.Images {
		tex, err := d.textures.get(h.h)
		if err != nil {
			return err
		}
		texs[i] = tex
	}

	f := d.funcs
	s := &d.state
	var used [maxAttribs]bool
	for _, a := range pl.attribs {
		buf := vbufs[a.buffer]
		s.vertexAttribPointer(f, buf.obj, a.loc, a.format.components(), a.format.glType(), a.format.normalized(), a.stride, a.offset)
		if d.caps.Instancing {
			s.vertexAttribDivisor(f, a.loc, a.divisor)
		}
		s.setVertexAttribArray(f, a.loc, true)
		used[a.loc] = true
	}
	for i, u := range used {
		if !u {
			s.setVertexAttribArray(f, i, false)
		}
	}
	if ibuf != nil {
		s.bindBuffer(f, gl.ELEMENT_ARRAY_BUFFER, ibuf.obj)
	}
	for i, tex := range texs {
		s.bindTexture(f, i, tex.obj)
	}
	d.cur.vertex = append(d.cur.vertex[:0], b.VertexBuffers...)
	d.cur.index = b.IndexBuffer
	d.cur.images = append(d.cur.images[:0], b.Images...)
	d.cur.bound = true
	return nil
}

// currentPipeline resolves the applied pipeline and its program.
func (d *Device) currentPipeline() (*gpuPipeline, *gpuProgram, error) {
	pl, err := d.pipelines.get(d.cur.pipeline.h)
	if err != nil {
		return nil, nil, err
	}
	prog, err := d.programs.get(pl.prog.h)
	if err != nil {
		return nil, nil, err
	}
	return pl, prog, nil
}
