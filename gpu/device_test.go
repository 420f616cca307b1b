// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gfx/glue"
	"gfx/internal/gl"
	"gfx/internal/gl/glfake"
)

// newTestDevice returns a Device on an in-memory GL, current on the
// calling thread until the test ends.
func newTestDevice(t *testing.T) (*Device, *glfake.GL, *glfake.Backend) {
	t.Helper()
	return newTestDeviceGL(t, glfake.New())
}

func newTestDeviceGL(t *testing.T, f *glfake.GL) (*Device, *glfake.GL, *glfake.Backend) {
	t.Helper()
	b := glfake.NewBackend(f)
	ctx := glue.NewContext(b, f, glue.DefaultConfig())
	require.NoError(t, ctx.MakeCurrent())
	d, err := NewDevice(ctx)
	require.NoError(t, err)
	t.Cleanup(d.Release)
	return d, f, b
}

func TestNewDeviceCaps(t *testing.T) {
	d, f, _ := newTestDevice(t)
	caps := d.Caps()
	assert.Equal(t, [2]int{3, 3}, caps.Version)
	assert.False(t, caps.ES)
	assert.True(t, caps.Instancing)
	assert.Equal(t, 4096, caps.MaxTextureSize)
	assert.Equal(t, "glfake", caps.Renderer)
	assert.Equal(t, 1, f.Calls["CreateVertexArray"])
	assert.Equal(t, 1, f.Calls["BindVertexArray"])
}

func TestNewDeviceES(t *testing.T) {
	f := glfake.New()
	f.Version = "OpenGL ES 3.0 glfake"
	d, _, _ := newTestDeviceGL(t, f)
	assert.True(t, d.Caps().ES)
	assert.Equal(t, [2]int{3, 0}, d.Caps().Version)
}

func TestNewDeviceErrors(t *testing.T) {
	_, err := NewDevice(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	f := glfake.New()
	f.Version = "bogus"
	ctx := glue.NewContext(glfake.NewBackend(f), f, glue.DefaultConfig())
	_, err = NewDevice(ctx)
	assert.Error(t, err)
}

func TestRelease(t *testing.T) {
	d, f, b := newTestDevice(t)
	_, err := d.CreateBuffer(VertexBuffer, Dynamic, 16)
	require.NoError(t, err)
	_, err = d.CreateTexture(TextureParams{Width: 4, Height: 4}, nil)
	require.NoError(t, err)
	vs, err := d.CreateShader(StageVertex, testVS)
	require.NoError(t, err)
	fs, err := d.CreateShader(StageFragment, testFS)
	require.NoError(t, err)
	_, err = d.CreateProgram(vs, fs, testProgramDesc)
	require.NoError(t, err)

	d.Release()
	assert.Zero(t, f.Live())
	assert.True(t, b.Released)
	d.Release()

	_, err = d.CreateBuffer(VertexBuffer, Dynamic, 16)
	assert.ErrorIs(t, err, ErrReleased)
	assert.ErrorIs(t, d.Surface().Present(), ErrReleased)
}

func TestReleaseLost(t *testing.T) {
	d, f, b := newTestDevice(t)
	_, err := d.CreateBuffer(VertexBuffer, Dynamic, 16)
	require.NoError(t, err)
	b.Lose()
	deletes := f.Calls["DeleteBuffer"]
	d.Release()
	assert.Equal(t, deletes, f.Calls["DeleteBuffer"])
	assert.True(t, b.Released)
}

func TestDefaultFramebufferRecorded(t *testing.T) {
	d, _, _ := newTestDevice(t)
	assert.Equal(t, gl.Framebuffer{}, d.defaultFBO)
}
