// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gfx/internal/gl"
	"gfx/internal/gl/glfake"
)

func TestCreateTextureValidation(t *testing.T) {
	d, _, _ := newTestDevice(t)
	tests := []struct {
		name   string
		params TextureParams
		pixels []byte
	}{
		{"empty", TextureParams{}, nil},
		{"negative", TextureParams{Width: -1, Height: 4}, nil},
		{"too wide", TextureParams{Width: 4097, Height: 1}, nil},
		{"short pixels", TextureParams{Width: 2, Height: 2}, make([]byte, 15)},
		{"long pixels", TextureParams{Format: TextureFormatRGB8, Width: 2, Height: 2}, make([]byte, 16)},
		{"bad format", TextureParams{Format: 99, Width: 1, Height: 1}, nil},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := d.CreateTexture(test.params, test.pixels)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestTextureFormats(t *testing.T) {
	d, f, _ := newTestDevice(t)
	tests := []struct {
		format   TextureFormat
		internal gl.Enum
		size     int
	}{
		{TextureFormatRGBA8, gl.RGBA, 4 * 6},
		{TextureFormatRGB8, gl.RGB, 3 * 6},
		{TextureFormatDepth, gl.DEPTH_COMPONENT, 2 * 6},
		{TextureFormatAlpha, gl.R8, 6},
	}
	for _, test := range tests {
		t.Run(test.format.String(), func(t *testing.T) {
			assert.Equal(t, test.size, test.format.Size(3, 2))
			tex, err := d.CreateTexture(TextureParams{Format: test.format, Width: 3, Height: 2}, make([]byte, test.size))
			require.NoError(t, err)
			gt, err := d.textures.get(tex.h)
			require.NoError(t, err)
			ft := f.Texture(gt.obj)
			assert.Equal(t, test.internal, ft.InternalFormat)
			assert.Len(t, ft.Data, test.size)
		})
	}
}

func TestAlphaTextureSwizzle(t *testing.T) {
	d, f, _ := newTestDevice(t)
	tex, err := d.CreateTexture(TextureParams{Format: TextureFormatAlpha, Width: 1, Height: 1}, []byte{7})
	require.NoError(t, err)
	gt, _ := d.textures.get(tex.h)
	assert.Equal(t, gl.RED, f.Texture(gt.obj).Params[gl.TEXTURE_SWIZZLE_A])

	es := glfake.New()
	es.Version = "OpenGL ES 3.0 glfake"
	d, f, _ = newTestDeviceGL(t, es)
	tex, err = d.CreateTexture(TextureParams{Format: TextureFormatAlpha, Width: 1, Height: 1}, []byte{7})
	require.NoError(t, err)
	gt, _ = d.textures.get(tex.h)
	ft := f.Texture(gt.obj)
	assert.Equal(t, gl.Enum(gl.ALPHA), ft.InternalFormat)
	assert.NotContains(t, ft.Params, gl.Enum(gl.TEXTURE_SWIZZLE_A))
}

func TestTextureUpdateAndRead(t *testing.T) {
	d, _, _ := newTestDevice(t)
	pixels := []byte{
		1, 1, 1, 1, 2, 2, 2, 2,
		3, 3, 3, 3, 4, 4, 4, 4,
	}
	tex, err := d.CreateTexture(TextureParams{Width: 2, Height: 2}, pixels)
	require.NoError(t, err)
	require.NoError(t, d.UpdateTextureRegion(tex, 1, 1, 1, 1, []byte{9, 9, 9, 9}))

	got := make([]byte, 16)
	require.NoError(t, d.ReadTexture(tex, got))
	assert.Equal(t, []byte{
		1, 1, 1, 1, 2, 2, 2, 2,
		3, 3, 3, 3, 9, 9, 9, 9,
	}, got)

	assert.ErrorIs(t, d.UpdateTextureRegion(tex, 1, 1, 2, 1, make([]byte, 8)), ErrInvalidArgument)
	assert.ErrorIs(t, d.UpdateTexture(tex, make([]byte, 4)), ErrInvalidArgument)
	assert.ErrorIs(t, d.ReadTexture(tex, make([]byte, 4)), ErrInvalidArgument)
}

func TestReadTextureRestoresFramebuffer(t *testing.T) {
	d, f, _ := newTestDevice(t)
	tex, err := d.CreateTexture(TextureParams{Width: 1, Height: 1}, nil)
	require.NoError(t, err)
	before := f.Live()
	require.NoError(t, d.ReadTexture(tex, make([]byte, 4)))
	assert.Equal(t, before, f.Live())
	assert.Zero(t, f.Bound(gl.FRAMEBUFFER))

	depth, err := d.CreateTexture(TextureParams{Format: TextureFormatDepth, Width: 1, Height: 1}, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, d.ReadTexture(depth, make([]byte, 2)), ErrInvalidArgument)
}

func TestTextureParams(t *testing.T) {
	d, f, _ := newTestDevice(t)
	tex, err := d.CreateTexture(TextureParams{Width: 2, Height: 2}, nil)
	require.NoError(t, err)
	gt, _ := d.textures.get(tex.h)
	ft := f.Texture(gt.obj)
	assert.Equal(t, gl.LINEAR, ft.Params[gl.TEXTURE_MIN_FILTER])
	assert.Equal(t, gl.CLAMP_TO_EDGE, ft.Params[gl.TEXTURE_WRAP_S])

	require.NoError(t, d.SetTextureFilter(tex, FilterNearest))
	require.NoError(t, d.SetTextureWrap(tex, WrapRepeat))
	assert.Equal(t, gl.NEAREST, ft.Params[gl.TEXTURE_MAG_FILTER])
	assert.Equal(t, gl.REPEAT, ft.Params[gl.TEXTURE_WRAP_T])

	p, err := d.TextureParams(tex)
	require.NoError(t, err)
	assert.Equal(t, TextureParams{Wrap: WrapRepeat, Filter: FilterNearest, Width: 2, Height: 2}, p)
}

func TestResizeTexture(t *testing.T) {
	d, f, _ := newTestDevice(t)
	tex, err := d.CreateTexture(TextureParams{Format: TextureFormatRGB8, Width: 2, Height: 2}, nil)
	require.NoError(t, err)
	require.NoError(t, d.ResizeTexture(tex, 4, 1, nil))
	gt, _ := d.textures.get(tex.h)
	assert.Equal(t, 4, f.Texture(gt.obj).Width)
	p, err := d.TextureParams(tex)
	require.NoError(t, err)
	assert.Equal(t, 4, p.Width)
	assert.Equal(t, 1, p.Height)

	assert.ErrorIs(t, d.ResizeTexture(tex, 0, 1, nil), ErrInvalidArgument)
	assert.ErrorIs(t, d.ResizeTexture(tex, 1, 1, make([]byte, 4)), ErrInvalidArgument)
}

func TestDestroyTextureUnbinds(t *testing.T) {
	d, f, _ := newTestDevice(t)
	tex, err := d.CreateTexture(TextureParams{Width: 1, Height: 1}, nil)
	require.NoError(t, err)
	require.NoError(t, d.DestroyTexture(tex))
	assert.Zero(t, f.Bound(gl.TEXTURE_2D))
	assert.ErrorIs(t, d.UpdateTexture(tex, make([]byte, 4)), ErrInvalidHandle)
}
