// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

package gpu

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresent(t *testing.T) {
	d, _, b := newTestDevice(t)
	s := d.Surface()
	require.NoError(t, s.Present())
	require.NoError(t, s.Present())
	assert.Equal(t, 2, b.Swaps)
}

func TestPresentAppliesResizes(t *testing.T) {
	d, f, b := newTestDevice(t)
	s := d.Surface()
	b.Resize(320, 200)
	b.Resize(640, 480)
	require.NoError(t, s.Present())
	assert.Equal(t, image.Pt(640, 480), s.Size())
	assert.Equal(t, [4]int{0, 0, 640, 480}, f.ViewportBox())
}

func TestPresentResetsBindings(t *testing.T) {
	d, _, _ := newTestDevice(t)
	p, vbuf := newTestPipeline(t, d, PipelineDesc{})
	require.NoError(t, d.ApplyPipeline(p))
	require.NoError(t, d.ApplyBindings(Bindings{VertexBuffers: []Buffer{vbuf}}))
	require.NoError(t, d.Surface().Present())
	assert.ErrorIs(t, d.Draw(0, 3, 1), ErrInvalidArgument)
}

func TestResize(t *testing.T) {
	d, f, _ := newTestDevice(t)
	s := d.Surface()
	assert.ErrorIs(t, s.Resize(-1, 10), ErrInvalidArgument)
	require.NoError(t, s.Resize(100, 50))
	assert.Equal(t, image.Pt(100, 50), s.Size())
	assert.Equal(t, [4]int{0, 0, 100, 50}, f.ViewportBox())

	calls := f.Calls["Viewport"]
	require.NoError(t, s.Resize(100, 50))
	assert.Equal(t, calls, f.Calls["Viewport"])

	require.NoError(t, d.BeginDefaultPass(PassAction{}))
	assert.Equal(t, [4]int{0, 0, 100, 50}, f.ViewportBox())
}

func TestContextLossIsTerminal(t *testing.T) {
	d, _, b := newTestDevice(t)
	buf, err := d.CreateBuffer(VertexBuffer, Dynamic, 64)
	require.NoError(t, err)
	b.Lose()

	s := d.Surface()
	assert.ErrorIs(t, s.Present(), ErrContextLost)
	assert.ErrorIs(t, s.Present(), ErrContextLost)
	assert.ErrorIs(t, s.Resize(10, 10), ErrContextLost)
	assert.ErrorIs(t, d.Upload(buf, make([]byte, 64)), ErrContextLost)
	_, err = d.CreateBuffer(VertexBuffer, Dynamic, 64)
	assert.ErrorIs(t, err, ErrContextLost)
	_, err = d.CreateTexture(TextureParams{Width: 1, Height: 1}, nil)
	assert.ErrorIs(t, err, ErrContextLost)
	assert.ErrorIs(t, d.BeginDefaultPass(PassAction{}), ErrContextLost)
	assert.Equal(t, 0, b.Swaps)
}

func TestLossAfterPresent(t *testing.T) {
	d, _, b := newTestDevice(t)
	require.NoError(t, d.Surface().Present())
	b.Lose()
	assert.ErrorIs(t, d.Surface().Present(), ErrContextLost)
	assert.ErrorIs(t, d.SetViewport(0, 0, 1, 1), ErrContextLost)
}
