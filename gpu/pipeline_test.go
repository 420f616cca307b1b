// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

package gpu

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gfx/internal/gl"
)

type testVertex struct {
	Pos   [2]float32
	Color [4]uint8
}

func newTestPipeline(t *testing.T, d *Device, desc PipelineDesc) (Pipeline, Buffer) {
	t.Helper()
	desc.Program = newTestProgram(t, d)
	if desc.Layouts == nil {
		desc.Layouts = []BufferLayout{{}}
	}
	desc.Attributes = []VertexAttribute{
		{Name: "pos", Format: VertexFloat2},
		{Name: "color", Format: VertexByte4},
	}
	p, err := d.CreatePipeline(desc)
	require.NoError(t, err)
	vbuf, err := NewBufferFrom(d, VertexBuffer, Immutable, []testVertex{
		{Pos: [2]float32{0, 0}, Color: [4]uint8{255, 0, 0, 255}},
		{Pos: [2]float32{1, 0}, Color: [4]uint8{0, 255, 0, 255}},
		{Pos: [2]float32{0, 1}, Color: [4]uint8{0, 0, 255, 255}},
	})
	require.NoError(t, err)
	return p, vbuf
}

func TestDraw(t *testing.T) {
	d, f, _ := newTestDevice(t)
	p, vbuf := newTestPipeline(t, d, PipelineDesc{})
	require.NoError(t, d.ApplyPipeline(p))
	require.NoError(t, d.ApplyBindings(Bindings{VertexBuffers: []Buffer{vbuf}}))
	require.NoError(t, d.Draw(0, 3, 1))

	require.Len(t, f.Draws, 1)
	draw := f.Draws[0]
	assert.Equal(t, gl.Enum(gl.TRIANGLES), draw.Mode)
	assert.Equal(t, 3, draw.Count)
	assert.Equal(t, 1, draw.Instances)
	assert.NotZero(t, draw.Program)

	pos := f.Attrib(0)
	assert.True(t, pos.Enabled)
	assert.Equal(t, 2, pos.Size)
	assert.Equal(t, gl.Enum(gl.FLOAT), pos.Type)
	assert.Equal(t, 12, pos.Stride)
	assert.Equal(t, 0, pos.Offset)
	color := f.Attrib(1)
	assert.True(t, color.Enabled)
	assert.Equal(t, gl.Enum(gl.UNSIGNED_BYTE), color.Type)
	assert.True(t, color.Normalized)
	assert.Equal(t, 8, color.Offset)
	assert.Equal(t, pos.Buffer, color.Buffer)
}

func TestDrawIndexed(t *testing.T) {
	d, f, _ := newTestDevice(t)
	p, vbuf := newTestPipeline(t, d, PipelineDesc{Primitive: TriangleStrip})
	ibuf, err := NewBufferFrom(d, IndexBuffer, Immutable, []uint32{0, 1, 2, 2, 1, 0})
	require.NoError(t, err)
	require.NoError(t, d.ApplyPipeline(p))
	require.NoError(t, d.ApplyBindings(Bindings{VertexBuffers: []Buffer{vbuf}, IndexBuffer: ibuf}))
	require.NoError(t, d.DrawIndexed(3, 3, 1))

	require.Len(t, f.Draws, 1)
	draw := f.Draws[0]
	assert.True(t, draw.Indexed)
	assert.Equal(t, gl.Enum(gl.TRIANGLE_STRIP), draw.Mode)
	assert.Equal(t, gl.Enum(gl.UNSIGNED_INT), draw.IndexType)
	assert.Equal(t, 12, draw.First)

	assert.ErrorIs(t, d.DrawIndexed(4, 3, 1), ErrInvalidArgument)
}

func TestDrawInstanced(t *testing.T) {
	d, f, _ := newTestDevice(t)
	p, vbuf := newTestPipeline(t, d, PipelineDesc{
		Layouts: []BufferLayout{{Step: StepPerInstance, StepRate: 2}},
	})
	require.NoError(t, d.ApplyPipeline(p))
	require.NoError(t, d.ApplyBindings(Bindings{VertexBuffers: []Buffer{vbuf}}))
	require.NoError(t, d.Draw(0, 3, 6))
	require.Len(t, f.Draws, 1)
	assert.Equal(t, 6, f.Draws[0].Instances)
	assert.Equal(t, 2, f.Attrib(0).Divisor)

	// 7 instances need a fourth element.
	assert.ErrorIs(t, d.Draw(0, 3, 7), ErrInvalidArgument)
	assert.Len(t, f.Draws, 1)
}

func TestDrawErrors(t *testing.T) {
	d, f, _ := newTestDevice(t)
	assert.ErrorIs(t, d.Draw(0, 3, 1), ErrInvalidArgument, "no pipeline")

	p, vbuf := newTestPipeline(t, d, PipelineDesc{})
	require.NoError(t, d.ApplyPipeline(p))
	assert.ErrorIs(t, d.Draw(0, 3, 1), ErrInvalidArgument, "no bindings")
	assert.ErrorIs(t, d.ApplyBindings(Bindings{}), ErrInvalidArgument)
	assert.ErrorIs(t, d.ApplyBindings(Bindings{VertexBuffers: []Buffer{vbuf}, IndexBuffer: vbuf}), ErrInvalidArgument)

	require.NoError(t, d.ApplyBindings(Bindings{VertexBuffers: []Buffer{vbuf}}))
	assert.ErrorIs(t, d.Draw(-1, 3, 1), ErrInvalidArgument)
	assert.ErrorIs(t, d.DrawIndexed(0, 3, 1), ErrInvalidArgument, "no index buffer")
	require.NoError(t, d.Draw(0, 0, 1))
	assert.Empty(t, f.Draws)
}

func TestDrawRange(t *testing.T) {
	d, f, _ := newTestDevice(t)
	p, vbuf := newTestPipeline(t, d, PipelineDesc{})
	ibuf, err := NewBufferFrom(d, IndexBuffer, Immutable, []uint16{0, 1, 2})
	require.NoError(t, err)
	require.NoError(t, d.ApplyPipeline(p))
	require.NoError(t, d.ApplyBindings(Bindings{VertexBuffers: []Buffer{vbuf}, IndexBuffer: ibuf}))

	const huge = math.MaxInt / 2
	tests := []struct {
		name string
		draw func() error
	}{
		{"vertices past end", func() error { return d.Draw(1, 3, 1) }},
		{"huge vertex range", func() error { return d.Draw(huge, huge, 1) }},
		{"indices past end", func() error { return d.DrawIndexed(2, 2, 1) }},
		{"huge index range", func() error { return d.DrawIndexed(huge, huge, 1) }},
		{"huge index count", func() error { return d.DrawIndexed(1, math.MaxInt, 1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.draw(), ErrInvalidArgument)
		})
	}
	assert.Empty(t, f.Draws)

	require.NoError(t, d.Draw(1, 2, 1))
	require.NoError(t, d.DrawIndexed(0, 3, 1))
	assert.Len(t, f.Draws, 2)
}

type drawObjects struct {
	pipeline   Pipeline
	program    Program
	vbuf, ibuf Buffer
	tex        Texture
}

func TestDrawAfterDestroy(t *testing.T) {
	tests := []struct {
		name    string
		destroy func(d *Device, o drawObjects) error
	}{
		{"vertex buffer", func(d *Device, o drawObjects) error { return d.DestroyBuffer(o.vbuf) }},
		{"index buffer", func(d *Device, o drawObjects) error { return d.DestroyBuffer(o.ibuf) }},
		{"program", func(d *Device, o drawObjects) error { return d.DestroyProgram(o.program) }},
		{"pipeline", func(d *Device, o drawObjects) error { return d.DestroyPipeline(o.pipeline) }},
		{"texture", func(d *Device, o drawObjects) error { return d.DestroyTexture(o.tex) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, f, _ := newTestDevice(t)
			var o drawObjects
			o.pipeline, o.vbuf = newTestPipeline(t, d, PipelineDesc{})
			pl, err := d.pipelines.get(o.pipeline.h)
			require.NoError(t, err)
			o.program = pl.prog
			o.ibuf, err = NewBufferFrom(d, IndexBuffer, Immutable, []uint16{0, 1, 2})
			require.NoError(t, err)
			o.tex, err = d.CreateTexture(TextureParams{Width: 1, Height: 1}, nil)
			require.NoError(t, err)
			require.NoError(t, d.ApplyPipeline(o.pipeline))
			require.NoError(t, d.ApplyBindings(Bindings{
				VertexBuffers: []Buffer{o.vbuf},
				IndexBuffer:   o.ibuf,
				Images:        []Texture{o.tex},
			}))

			require.NoError(t, tt.destroy(d, o))
			assert.ErrorIs(t, d.Draw(0, 3, 1), ErrInvalidHandle)
			assert.ErrorIs(t, d.DrawIndexed(0, 3, 1), ErrInvalidHandle)
			assert.Empty(t, f.Draws)
		})
	}
}

func TestDrawUsesPipelineProgram(t *testing.T) {
	d, f, _ := newTestDevice(t)
	p, vbuf := newTestPipeline(t, d, PipelineDesc{})
	other := newTestProgram(t, d)
	require.NoError(t, d.ApplyPipeline(p))
	require.NoError(t, d.ApplyBindings(Bindings{VertexBuffers: []Buffer{vbuf}}))
	require.NoError(t, d.BindProgram(other))
	require.NoError(t, d.Draw(0, 3, 1))

	pl, err := d.pipelines.get(p.h)
	require.NoError(t, err)
	prog, err := d.programs.get(pl.prog.h)
	require.NoError(t, err)
	require.Len(t, f.Draws, 1)
	assert.Equal(t, prog.obj.V, f.Draws[0].Program)
}

func TestApplyBindingsStaleHandle(t *testing.T) {
	d, f, _ := newTestDevice(t)
	p, vbuf := newTestPipeline(t, d, PipelineDesc{})
	tex, err := d.CreateTexture(TextureParams{Width: 1, Height: 1}, nil)
	require.NoError(t, err)
	require.NoError(t, d.DestroyTexture(tex))
	require.NoError(t, d.ApplyPipeline(p))

	calls := f.Calls["VertexAttribPointer"]
	err = d.ApplyBindings(Bindings{VertexBuffers: []Buffer{vbuf}, Images: []Texture{tex}})
	assert.ErrorIs(t, err, ErrInvalidHandle)
	assert.Equal(t, calls, f.Calls["VertexAttribPointer"])
}

func TestPipelineState(t *testing.T) {
	d, f, _ := newTestDevice(t)
	p, _ := newTestPipeline(t, d, PipelineDesc{
		Blend: &BlendState{Src: BlendSrcAlpha, Dst: BlendOneMinusSrcAlpha},
		AlphaBlend: &BlendState{
			Src: BlendOne,
			Dst: BlendOneMinusSrcAlpha,
		},
		DepthTest:         CompareLessEqual,
		DepthWrite:        true,
		Cull:              CullBack,
		Front:             FrontCW,
		DisableColorWrite: ColorA,
	})
	require.NoError(t, d.ApplyPipeline(p))
	assert.True(t, f.Enabled(gl.BLEND))
	assert.Equal(t, [4]gl.Enum{gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.ONE, gl.ONE_MINUS_SRC_ALPHA}, f.BlendFunc())
	assert.True(t, f.Enabled(gl.DEPTH_TEST))
	fn, mask := f.DepthState()
	assert.Equal(t, gl.Enum(gl.LEQUAL), fn)
	assert.True(t, mask)
	assert.True(t, f.Enabled(gl.CULL_FACE))
	cull, front := f.CullState()
	assert.Equal(t, gl.Enum(gl.BACK), cull)
	assert.Equal(t, gl.Enum(gl.CW), front)
	assert.Equal(t, [4]bool{true, true, true, false}, f.ColorMaskState())

	plain, _ := newTestPipeline(t, d, PipelineDesc{})
	require.NoError(t, d.ApplyPipeline(plain))
	assert.False(t, f.Enabled(gl.BLEND))
	assert.False(t, f.Enabled(gl.DEPTH_TEST))
	assert.False(t, f.Enabled(gl.CULL_FACE))
	assert.Equal(t, [4]bool{true, true, true, true}, f.ColorMaskState())
}

func TestRedundantStateElided(t *testing.T) {
	d, f, _ := newTestDevice(t)
	p, _ := newTestPipeline(t, d, PipelineDesc{})

	require.NoError(t, d.SetViewport(0, 0, 10, 10))
	viewports := f.Calls["Viewport"]
	require.NoError(t, d.SetViewport(0, 0, 10, 10))
	assert.Equal(t, viewports, f.Calls["Viewport"])

	require.NoError(t, d.ApplyPipeline(p))
	programs := f.Calls["UseProgram"]
	enables := f.Calls["Enable"] + f.Calls["Disable"]
	require.NoError(t, d.ApplyPipeline(p))
	assert.Equal(t, programs, f.Calls["UseProgram"])
	assert.Equal(t, enables, f.Calls["Enable"]+f.Calls["Disable"])
}

func TestPipelineErrors(t *testing.T) {
	d, _, _ := newTestDevice(t)
	prog := newTestProgram(t, d)
	_, err := d.CreatePipeline(PipelineDesc{
		Program:    prog,
		Attributes: []VertexAttribute{{Name: "pos", Format: VertexFloat2, BufferIndex: 1}},
		Layouts:    []BufferLayout{{}},
	})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = d.CreatePipeline(PipelineDesc{})
	assert.ErrorIs(t, err, ErrInvalidHandle)

	p, err := d.CreatePipeline(PipelineDesc{Program: prog})
	require.NoError(t, err)
	require.NoError(t, d.DestroyProgram(prog))
	assert.ErrorIs(t, d.ApplyPipeline(p), ErrInvalidHandle)
	require.NoError(t, d.DestroyPipeline(p))
	assert.ErrorIs(t, d.DestroyPipeline(p), ErrInvalidHandle)
}

func TestScissor(t *testing.T) {
	d, f, _ := newTestDevice(t)
	require.NoError(t, d.SetScissor(1, 2, 3, 4))
	assert.True(t, f.Enabled(gl.SCISSOR_TEST))
	assert.Equal(t, [4]int{1, 2, 3, 4}, f.ScissorBox())
	assert.ErrorIs(t, d.SetScissor(0, 0, -1, 1), ErrInvalidArgument)

	require.NoError(t, d.BeginDefaultPass(PassAction{}))
	assert.False(t, f.Enabled(gl.SCISSOR_TEST))
}
