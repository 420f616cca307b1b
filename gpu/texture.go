// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"errors"
	"fmt"

	"gfx/internal/gl"
)

type gpuTexture struct {
	obj    gl.Texture
	triple textureTriple
	params TextureParams
}

// textureTriple holds the type settings for
// a TexImage2D call.
type textureTriple struct {
	internalFormat gl.Enum
	format         gl.Enum
	typ            gl.Enum
}

func (d *Device) tripleFor(f TextureFormat) textureTriple {
	switch f {
	case TextureFormatRGB8:
		return textureTriple{gl.RGB, gl.RGB, gl.UNSIGNED_BYTE}
	case TextureFormatDepth:
		if d.caps.ES {
			return textureTriple{gl.DEPTH_COMPONENT16, gl.DEPTH_COMPONENT, gl.UNSIGNED_SHORT}
		}
		return textureTriple{gl.DEPTH_COMPONENT, gl.DEPTH_COMPONENT, gl.UNSIGNED_SHORT}
	case TextureFormatAlpha:
		return alphaTripleFor(d.caps.ES)
	default:
		return textureTriple{gl.RGBA, gl.RGBA, gl.UNSIGNED_BYTE}
	}
}

// alphaTripleFor returns the single channel format. Desktop core profiles
// lack ALPHA; they store RED and swizzle it into alpha.
func alphaTripleFor(es bool) textureTriple {
	if es {
		return textureTriple{gl.ALPHA, gl.ALPHA, gl.UNSIGNED_BYTE}
	}
	return textureTriple{gl.R8, gl.RED, gl.UNSIGNED_BYTE}
}

func (d *Device) checkTextureSize(w, h int) error {
	if w <= 0 || h <= 0 || w > d.caps.MaxTextureSize || h > d.caps.MaxTextureSize {
		return invalidArg("texture size %dx%d (max %d)", w, h, d.caps.MaxTextureSize)
	}
	return nil
}

func checkPixels(format TextureFormat, w, h int, pixels []byte) error {
	if pixels != nil && len(pixels) != format.Size(w, h) {
		return invalidArg("%d bytes of pixels for %dx%d %s texture", len(pixels), w, h, format)
	}
	return nil
}

// CreateTexture creates a texture described by params. If pixels is not
// nil, its length must be params.Format.Size(params.Width, params.Height).
func (d *Device) CreateTexture(params TextureParams, pixels []byte) (Texture, error) {
	if err := d.check(); err != nil {
		return Texture{}, err
	}
	if params.Format > TextureFormatAlpha {
		return Texture{}, invalidArg("texture format %s", params.Format)
	}
	if err := d.checkTextureSize(params.Width, params.Height); err != nil {
		return Texture{}, err
	}
	if err := checkPixels(params.Format, params.Width, params.Height, pixels); err != nil {
		return Texture{}, err
	}
	f := d.funcs
	glErr(f)
	obj := f.CreateTexture()
	if !obj.Valid() {
		if err := d.allocErr(); err != nil {
			return Texture{}, err
		}
		return Texture{}, errors.New("gpu: glCreateTexture failed")
	}
	tex := &gpuTexture{obj: obj, triple: d.tripleFor(params.Format), params: params}
	d.withTexture(tex, func() {
		tr := tex.triple
		f.TexImage2D(gl.TEXTURE_2D, 0, tr.internalFormat, params.Width, params.Height, tr.format, tr.typ, pixels)
		d.texParams(tex)
		if params.Format == TextureFormatAlpha && !d.caps.ES {
			f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_SWIZZLE_A, gl.RED)
		}
	})
	if err := d.allocErr(); err != nil {
		d.state.deleteTexture(f, obj)
		return Texture{}, fmt.Errorf("gpu: %dx%d %s texture: %w", params.Width, params.Height, params.Format, err)
	}
	return Texture{d.textures.insert(tex)}, nil
}

// withTexture binds t to unit 0 while running fn, then restores the
// previous binding.
func (d *Device) withTexture(t *gpuTexture, fn func()) {
	prev := d.state.texUnits.binds[0]
	d.state.bindTexture(d.funcs, 0, t.obj)
	fn()
	d.state.bindTexture(d.funcs, 0, prev)
}

func (d *Device) texParams(t *gpuTexture) {
	f := d.funcs
	filter := t.params.Filter.glFilter()
	wrap := t.params.Wrap.glWrap()
	f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter)
	f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter)
	f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)
}

// UpdateTexture replaces the contents of t.
func (d *Device) UpdateTexture(t Texture, pixels []byte) error {
	if err := d.check(); err != nil {
		return err
	}
	tex, err := d.textures.get(t.h)
	if err != nil {
		return err
	}
	return d.updateRegion(tex, 0, 0, tex.params.Width, tex.params.Height, pixels)
}

// UpdateTextureRegion replaces the w×h rectangle at (x, y) of t.
func (d *Device) UpdateTextureRegion(t Texture, x, y, w, h int, pixels []byte) error {
	if err := d.check(); err != nil {
		return err
	}
	tex, err := d.textures.get(t.h)
	if err != nil {
		return err
	}
	return d.updateRegion(tex, x, y, w, h, pixels)
}

func (d *Device) updateRegion(tex *gpuTexture, x, y, w, h int, pixels []byte) error {
	p := tex.params
	if x < 0 || y < 0 || w <= 0 || h <= 0 || x+w > p.Width || y+h > p.Height {
		return invalidArg("region (%d,%d) %dx%d outside %dx%d texture", x, y, w, h, p.Width, p.Height)
	}
	if pixels == nil {
		return invalidArg("nil pixels")
	}
	if err := checkPixels(p.Format, w, h, pixels); err != nil {
		return err
	}
	d.withTexture(tex, func() {
		tr := tex.triple
		d.funcs.TexSubImage2D(gl.TEXTURE_2D, 0, x, y, w, h, tr.format, tr.typ, pixels)
	})
	return nil
}

// ResizeTexture reallocates t with a new size. The previous contents are
// discarded; pixels, if not nil, initialize the texture.
func (d *Device) ResizeTexture(t Texture, w, h int, pixels []byte) error {
	if err := d.check(); err != nil {
		return err
	}
	tex, err := d.textures.get(t.h)
	if err != nil {
		return err
	}
	if err := d.checkTextureSize(w, h); err != nil {
		return err
	}
	if err := checkPixels(tex.params.Format, w, h, pixels); err != nil {
		return err
	}
	d.withTexture(tex, func() {
		tr := tex.triple
		d.funcs.TexImage2D(gl.TEXTURE_2D, 0, tr.internalFormat, w, h, tr.format, tr.typ, pixels)
	})
	tex.params.Width, tex.params.Height = w, h
	return nil
}

// SetTextureFilter sets the minification and magnification filter of t.
func (d *Device) SetTextureFilter(t Texture, filter TextureFilter) error {
	if err := d.check(); err != nil {
		return err
	}
	tex, err := d.textures.get(t.h)
	if err != nil {
		return err
	}
	if tex.params.Filter == filter {
		return nil
	}
	tex.params.Filter = filter
	d.withTexture(tex, func() { d.texParams(tex) })
	return nil
}

// SetTextureWrap sets the wrap mode of t in both directions.
func (d *Device) SetTextureWrap(t Texture, wrap TextureWrap) error {
	if err := d.check(); err != nil {
		return err
	}
	tex, err := d.textures.get(t.h)
	if err != nil {
		return err
	}
	if tex.params.Wrap == wrap {
		return nil
	}
	tex.params.Wrap = wrap
	d.withTexture(tex, func() { d.texParams(tex) })
	return nil
}

// TextureParams returns the current parameters of t.
func (d *Device) TextureParams(t Texture) (TextureParams, error) {
	if err := d.check(); err != nil {
		return TextureParams{}, err
	}
	tex, err := d.textures.get(t.h)
	if err != nil {
		return TextureParams{}, err
	}
	return tex.params, nil
}

// ReadTexture copies the contents of t into dst, whose length must be the
// byte size of t. Depth textures cannot be read.
func (d *Device) ReadTexture(t Texture, dst []byte) error {
	if err := d.check(); err != nil {
		return err
	}
	tex, err := d.textures.get(t.h)
	if err != nil {
		return err
	}
	p := tex.params
	if p.Format == TextureFormatDepth {
		return invalidArg("read of depth texture %s", t)
	}
	if len(dst) != p.Format.Size(p.Width, p.Height) {
		return invalidArg("%d byte buffer for %dx%d %s texture", len(dst), p.Width, p.Height, p.Format)
	}
	f := d.funcs
	glErr(f)
	fbo := f.CreateFramebuffer()
	if !fbo.Valid() {
		if err := d.allocErr(); err != nil {
			return err
		}
		return errors.New("gpu: glCreateFramebuffer failed")
	}
	prev := d.state.drawFBO
	defer func() {
		d.state.bindFramebuffer(f, prev)
		d.state.deleteFramebuffer(f, fbo)
	}()
	d.state.bindFramebuffer(f, fbo)
	f.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, tex.obj, 0)
	if st := f.CheckFramebufferStatus(gl.FRAMEBUFFER); st != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("gpu: reading %s texture: incomplete framebuffer (status - 0x%x, error - 0x%x)", p.Format, st, f.GetError())
	}
	f.ReadPixels(0, 0, p.Width, p.Height, tex.triple.format, tex.triple.typ, dst)
	return d.allocErr()
}

// DestroyTexture deletes t. Framebuffers using t fail when used.
func (d *Device) DestroyTexture(t Texture) error {
	if err := d.check(); err != nil {
		return err
	}
	tex, err := d.textures.remove(t.h)
	if err != nil {
		return err
	}
	d.state.deleteTexture(d.funcs, tex.obj)
	return nil
}
