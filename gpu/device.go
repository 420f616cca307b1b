// SPDX-License-Identifier: Unlicense OR MIT

/*
Package gpu is a thin, handle based façade over a GL context.

A Device owns every object it creates. Objects are referred to by typed
handles that are valid only for the Device that created them and only
until destroyed; using a stale or foreign handle fails with
ErrInvalidHandle instead of touching GL.

A Device is not safe for concurrent use, and its context must be current
on the calling thread. Devices for different windows may be used from
different goroutines, each locked to its own thread.
*/
package gpu

import (
	"fmt"
	"image"

	"gfx/glue"
	"gfx/internal/gl"
	"gfx/window"
)

// Device issues resource and draw commands to a context.
type Device struct {
	ctx   *glue.Context
	funcs gl.API
	caps  Caps

	state      glState
	vertArray  gl.VertexArray
	defaultFBO gl.Framebuffer

	buffers      table[*gpuBuffer]
	textures     table[*gpuTexture]
	shaders      table[*gpuShader]
	programs     table[*gpuProgram]
	framebuffers table[*gpuFramebuffer]
	pipelines    table[*gpuPipeline]

	cur      drawState
	surface  Surface
	lost     bool
	released bool

	// Scratch space for uniform uploads and draws.
	floats   []float32
	ints     []int32
	drawBufs []*gpuBuffer
}

// drawState is the state of the current pass. Objects are kept by handle
// and resolved again by every draw.
type drawState struct {
	inPass   bool
	target   image.Point
	prog     Program
	pipeline Pipeline

	bound  bool
	vertex []Buffer
	index  Buffer
	images []Texture
}

// Open creates a context for win and a Device on top of it. The context is
// current on the calling thread on return, and is released together with
// the Device.
func Open(win window.Handle, cfg glue.Config) (*Device, error) {
	ctx, err := glue.Load(win, cfg)
	if err != nil {
		return nil, err
	}
	d, err := NewDevice(ctx)
	if err != nil {
		ctx.Release()
		return nil, err
	}
	return d, nil
}

// NewDevice creates a Device for ctx, which must be current on the calling
// thread. The Device takes ownership of ctx.
func NewDevice(ctx *glue.Context) (*Device, error) {
	if ctx == nil {
		return nil, invalidArg("nil context")
	}
	if ctx.Lost() {
		return nil, ErrContextLost
	}
	f := ctx.Functions()
	glVer := f.GetString(gl.VERSION)
	ver, err := gl.ParseGLVersion(glVer)
	if err != nil {
		return nil, err
	}
	es := gl.IsES(glVer)
	caps := Caps{
		Version:        ver,
		ES:             es,
		Instancing:     ver[0] >= 3,
		MaxTextureSize: f.GetInteger(gl.MAX_TEXTURE_SIZE),
		Vendor:         f.GetString(gl.VENDOR),
		Renderer:       f.GetString(gl.RENDERER),
	}
	vertArrays := ver[0] >= 3
	if p, ok := f.(interface{ Procs() *gl.Procs }); ok {
		caps.Instancing = p.Procs().Instanced()
		vertArrays = p.Procs().VertexArrays()
	}
	id := lastDevice.Add(1)
	d := &Device{
		ctx:          ctx,
		funcs:        f,
		caps:         caps,
		state:        newGLState(),
		defaultFBO:   gl.Framebuffer(f.GetBinding(gl.FRAMEBUFFER_BINDING)),
		buffers:      newTable[*gpuBuffer](id, KindBuffer),
		textures:     newTable[*gpuTexture](id, KindTexture),
		shaders:      newTable[*gpuShader](id, KindShader),
		programs:     newTable[*gpuProgram](id, KindProgram),
		framebuffers: newTable[*gpuFramebuffer](id, KindFramebuffer),
		pipelines:    newTable[*gpuPipeline](id, KindPipeline),
	}
	d.state.drawFBO = d.defaultFBO
	d.surface.d = d
	// Rows of RGB8 and Alpha textures are tightly packed.
	f.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	f.PixelStorei(gl.PACK_ALIGNMENT, 1)
	// Core profiles require a bound vertex array.
	if vertArrays && ver[0] >= 3 {
		d.vertArray = f.CreateVertexArray()
		if err := glErr(f); err != nil {
			return nil, fmt.Errorf("gpu: vertex array: %w", err)
		}
		d.state.bindVertexArray(f, d.vertArray)
	}
	glue.Logger().Debug("gpu: device created",
		"version", fmt.Sprintf("%d.%d", ver[0], ver[1]),
		"es", es,
		"instancing", caps.Instancing,
		"max_texture_size", caps.MaxTextureSize,
		"renderer", caps.Renderer,
	)
	return d, nil
}

// Caps returns the capabilities of d.
func (d *Device) Caps() Caps {
	return d.caps
}

// Context returns the context of d.
func (d *Device) Context() *glue.Context {
	return d.ctx
}

// Surface returns the presenter of the default framebuffer.
func (d *Device) Surface() *Surface {
	return &d.surface
}

// Release destroys every object created by d, then the context. It is
// safe to call Release more than once.
func (d *Device) Release() {
	if d.released {
		return
	}
	d.released = true
	lost := d.lost || d.ctx.Lost()
	f := d.funcs
	// GL objects vanish with a lost context.
	if lost {
		f = nil
	}
	d.pipelines.drain(func(*gpuPipeline) {})
	d.framebuffers.drain(func(fb *gpuFramebuffer) {
		if f != nil {
			d.state.deleteFramebuffer(f, fb.obj)
		}
	})
	d.programs.drain(func(p *gpuProgram) {
		if f != nil {
			d.state.deleteProgram(f, p.obj)
		}
	})
	d.shaders.drain(func(s *gpuShader) {
		if f != nil {
			f.DeleteShader(s.obj)
		}
	})
	d.textures.drain(func(t *gpuTexture) {
		if f != nil {
			d.state.deleteTexture(f, t.obj)
		}
	})
	d.buffers.drain(func(b *gpuBuffer) {
		if f != nil {
			d.state.deleteBuffer(f, b.obj)
		}
	})
	if f != nil && d.vertArray.Valid() {
		d.state.deleteVertexArray(f, d.vertArray)
	}
	d.cur = drawState{}
	d.ctx.Release()
}

// check returns the error of a Device that can no longer be used.
func (d *Device) check() error {
	switch {
	case d.released:
		return ErrReleased
	case d.lost:
		return ErrContextLost
	case d.ctx.Lost():
		d.markLost()
		return ErrContextLost
	}
	return nil
}

func (d *Device) markLost() {
	d.lost = true
	d.cur = drawState{}
}

// allocErr checks for errors after object allocation. A lost context is
// recorded.
func (d *Device) allocErr() error {
	err := glErr(d.funcs)
	if err == ErrContextLost {
		d.markLost()
	}
	return err
}
