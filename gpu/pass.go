// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"errors"
	"fmt"
	"image"

	"gfx/internal/gl"
)

type gpuFramebuffer struct {
	obj   gl.Framebuffer
	color Texture
	depth Texture
}

// CreateFramebuffer creates a render target drawing to color and, if not
// null, depth. Both textures must have the same size.
func (d *Device) CreateFramebuffer(color, depth Texture) (Framebuffer, error) {
	if err := d.check(); err != nil {
		return Framebuffer{}, err
	}
	ctex, err := d.textures.get(color.h)
	if err != nil {
		return Framebuffer{}, err
	}
	if ctex.params.Format == TextureFormatDepth {
		return Framebuffer{}, invalidArg("depth texture %s as color attachment", color)
	}
	var dtex *gpuTexture
	if !depth.IsNull() {
		dtex, err = d.textures.get(depth.h)
		if err != nil {
			return Framebuffer{}, err
		}
		if dtex.params.Format != TextureFormatDepth {
			return Framebuffer{}, invalidArg("%s texture %s as depth attachment", dtex.params.Format, depth)
		}
		if dtex.params.size() != ctex.params.size() {
			return Framebuffer{}, invalidArg("depth attachment size %v differs from color size %v", dtex.params.size(), ctex.params.size())
		}
	}
	f := d.funcs
	glErr(f)
	fbo := f.CreateFramebuffer()
	if !fbo.Valid() {
		if err := d.allocErr(); err != nil {
			return Framebuffer{}, err
		}
		return Framebuffer{}, errors.New("gpu: glCreateFramebuffer failed")
	}
	prev := d.state.drawFBO
	d.state.bindFramebuffer(f, fbo)
	f.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, ctex.obj, 0)
	if dtex != nil {
		f.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, dtex.obj, 0)
	}
	st := f.CheckFramebufferStatus(gl.FRAMEBUFFER)
	d.state.bindFramebuffer(f, prev)
	if st != gl.FRAMEBUFFER_COMPLETE {
		d.state.deleteFramebuffer(f, fbo)
		if err := d.allocErr(); err == ErrContextLost {
			return Framebuffer{}, err
		}
		return Framebuffer{}, fmt.Errorf("gpu: incomplete framebuffer (status - 0x%x)", st)
	}
	fb := &gpuFramebuffer{obj: fbo, color: color, depth: depth}
	return Framebuffer{d.framebuffers.insert(fb)}, nil
}

// FramebufferTexture returns the color attachment of fb.
func (d *Device) FramebufferTexture(fb Framebuffer) (Texture, error) {
	if err := d.check(); err != nil {
		return Texture{}, err
	}
	f, err := d.framebuffers.get(fb.h)
	if err != nil {
		return Texture{}, err
	}
	return f.color, nil
}

// DestroyFramebuffer deletes fb. Its textures are not affected.
func (d *Device) DestroyFramebuffer(fb Framebuffer) error {
	if err := d.check(); err != nil {
		return err
	}
	f, err := d.framebuffers.remove(fb.h)
	if err != nil {
		return err
	}
	if d.cur.inPass && d.state.drawFBO.Equal(f.obj) {
		d.cur.inPass = false
	}
	d.state.deleteFramebuffer(d.funcs, f.obj)
	if !d.state.drawFBO.Valid() {
		d.state.bindFramebuffer(d.funcs, d.defaultFBO)
	}
	return nil
}

// BeginDefaultPass starts rendering to the window. The viewport is reset to
// the surface size.
func (d *Device) BeginDefaultPass(action PassAction) error {
	if err := d.check(); err != nil {
		return err
	}
	if d.cur.inPass {
		return invalidArg("pass already begun")
	}
	d.state.bindFramebuffer(d.funcs, d.defaultFBO)
	d.begin(action, d.surface.size)
	return nil
}

// BeginPass starts rendering to fb. The viewport is reset to the size of
// its color attachment.
func (d *Device) BeginPass(fb Framebuffer, action PassAction) error {
	if err := d.check(); err != nil {
		return err
	}
	if d.cur.inPass {
		return invalidArg("pass already begun")
	}
	f, err := d.framebuffers.get(fb.h)
	if err != nil {
		return err
	}
	ctex, err := d.textures.get(f.color.h)
	if err != nil {
		return fmt.Errorf("gpu: color attachment of %s: %w", fb, err)
	}
	if !f.depth.IsNull() {
		if _, err := d.textures.get(f.depth.h); err != nil {
			return fmt.Errorf("gpu: depth attachment of %s: %w", fb, err)
		}
	}
	d.state.bindFramebuffer(d.funcs, f.obj)
	d.begin(action, ctex.params.size())
	return nil
}

func (d *Device) begin(action PassAction, size image.Point) {
	f := d.funcs
	s := &d.state
	// An unknown surface size keeps the viewport set by the platform.
	if size != (image.Point{}) {
		s.setViewport(f, 0, 0, size.X, size.Y)
	}
	s.set(f, gl.SCISSOR_TEST, false)
	var mask gl.Enum
	if action.Clear&ClearColor != 0 {
		mask |= gl.COLOR_BUFFER_BIT
		s.setColorMask(f, [4]bool{true, true, true, true})
		s.setClearColor(f, action.Color)
	}
	if action.Clear&ClearDepth != 0 {
		mask |= gl.DEPTH_BUFFER_BIT
		s.setDepthMask(f, true)
		s.setClearDepth(f, action.Depth)
	}
	if action.Clear&ClearStencil != 0 {
		mask |= gl.STENCIL_BUFFER_BIT
		s.setStencilMask(f, faceFront, 0xff)
		s.setStencilMask(f, faceBack, 0xff)
		s.setClearStencil(f, action.Stencil)
	}
	if mask != 0 {
		f.Clear(mask)
	}
	d.cur.inPass = true
	d.cur.target = size
}

// EndPass ends the current pass and binds the default framebuffer.
func (d *Device) EndPass() error {
	if err := d.check(); err != nil {
		return err
	}
	if !d.cur.inPass {
		return invalidArg("no pass begun")
	}
	d.cur.inPass = false
	d.state.bindFramebuffer(d.funcs, d.defaultFBO)
	return nil
}
