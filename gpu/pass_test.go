// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gfx/internal/gl"
)

func newTestFramebuffer(t *testing.T, d *Device, w, h int) (Framebuffer, Texture) {
	t.Helper()
	color, err := d.CreateTexture(TextureParams{Width: w, Height: h}, nil)
	require.NoError(t, err)
	depth, err := d.CreateTexture(TextureParams{Format: TextureFormatDepth, Width: w, Height: h}, nil)
	require.NoError(t, err)
	fb, err := d.CreateFramebuffer(color, depth)
	require.NoError(t, err)
	return fb, color
}

func TestOffscreenPass(t *testing.T) {
	d, f, _ := newTestDevice(t)
	fb, color := newTestFramebuffer(t, d, 4, 3)
	got, err := d.FramebufferTexture(fb)
	require.NoError(t, err)
	assert.Equal(t, color, got)
	assert.Zero(t, f.Bound(gl.FRAMEBUFFER))

	require.NoError(t, d.BeginPass(fb, ClearAll([4]float32{0.5, 0, 0, 1})))
	assert.NotZero(t, f.Bound(gl.FRAMEBUFFER))
	assert.Equal(t, [4]int{0, 0, 4, 3}, f.ViewportBox())
	col, depth, stencil := f.ClearValues()
	assert.Equal(t, [4]float32{0.5, 0, 0, 1}, col)
	assert.Equal(t, float32(1), depth)
	assert.Zero(t, stencil)
	assert.Equal(t, 1, f.Calls["Clear"])

	assert.ErrorIs(t, d.BeginDefaultPass(PassAction{}), ErrInvalidArgument)
	require.NoError(t, d.EndPass())
	assert.Zero(t, f.Bound(gl.FRAMEBUFFER))
	assert.ErrorIs(t, d.EndPass(), ErrInvalidArgument)
}

func TestPassWithoutClear(t *testing.T) {
	d, f, _ := newTestDevice(t)
	require.NoError(t, d.BeginDefaultPass(PassAction{}))
	require.NoError(t, d.EndPass())
	assert.Zero(t, f.Calls["Clear"])
}

func TestFramebufferErrors(t *testing.T) {
	d, _, _ := newTestDevice(t)
	color, err := d.CreateTexture(TextureParams{Width: 4, Height: 4}, nil)
	require.NoError(t, err)
	depth, err := d.CreateTexture(TextureParams{Format: TextureFormatDepth, Width: 2, Height: 2}, nil)
	require.NoError(t, err)

	_, err = d.CreateFramebuffer(color, depth)
	assert.ErrorIs(t, err, ErrInvalidArgument, "size mismatch")
	_, err = d.CreateFramebuffer(depth, Texture{})
	assert.ErrorIs(t, err, ErrInvalidArgument, "depth as color")
	_, err = d.CreateFramebuffer(color, color)
	assert.ErrorIs(t, err, ErrInvalidArgument, "color as depth")
	_, err = d.CreateFramebuffer(Texture{}, Texture{})
	assert.ErrorIs(t, err, ErrInvalidHandle)

	fb, err := d.CreateFramebuffer(color, Texture{})
	require.NoError(t, err)
	require.NoError(t, d.DestroyTexture(color))
	assert.ErrorIs(t, d.BeginPass(fb, PassAction{}), ErrInvalidHandle)
	require.NoError(t, d.DestroyFramebuffer(fb))
	assert.ErrorIs(t, d.BeginPass(fb, PassAction{}), ErrInvalidHandle)
}

func TestRenderToTexture(t *testing.T) {
	d, f, _ := newTestDevice(t)
	fb, color := newTestFramebuffer(t, d, 2, 2)
	p, vbuf := newTestPipeline(t, d, PipelineDesc{})
	require.NoError(t, d.BeginPass(fb, PassAction{}))
	require.NoError(t, d.ApplyPipeline(p))
	require.NoError(t, d.ApplyBindings(Bindings{VertexBuffers: []Buffer{vbuf}, Images: []Texture{color}}))
	require.NoError(t, d.Draw(0, 3, 1))
	require.NoError(t, d.EndPass())
	require.Len(t, f.Draws, 1)
	require.NoError(t, d.DestroyFramebuffer(fb))
}
