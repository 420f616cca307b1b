// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferHandleLifecycle(t *testing.T) {
	d, _, _ := newTestDevice(t)
	b, err := d.CreateBuffer(VertexBuffer, Dynamic, 64)
	require.NoError(t, err)
	require.NoError(t, d.Upload(b, make([]byte, 64)))
	require.NoError(t, d.DestroyBuffer(b))

	assert.ErrorIs(t, d.Upload(b, make([]byte, 64)), ErrInvalidHandle)
	assert.ErrorIs(t, d.DestroyBuffer(b), ErrInvalidHandle)
	_, err = d.BufferSize(b)
	assert.ErrorIs(t, err, ErrInvalidHandle)
}

func TestHandleNotReused(t *testing.T) {
	d, _, _ := newTestDevice(t)
	b1, err := d.CreateBuffer(VertexBuffer, Dynamic, 4)
	require.NoError(t, err)
	require.NoError(t, d.DestroyBuffer(b1))
	b2, err := d.CreateBuffer(VertexBuffer, Dynamic, 8)
	require.NoError(t, err)
	assert.NotEqual(t, b1, b2)
	assert.ErrorIs(t, d.Upload(b1, make([]byte, 4)), ErrInvalidHandle)
	sz, err := d.BufferSize(b2)
	require.NoError(t, err)
	assert.Equal(t, 8, sz)
}

func TestNullHandles(t *testing.T) {
	d, _, _ := newTestDevice(t)
	assert.True(t, Buffer{}.IsNull())
	assert.ErrorIs(t, d.DestroyBuffer(Buffer{}), ErrInvalidHandle)
	assert.ErrorIs(t, d.DestroyTexture(Texture{}), ErrInvalidHandle)
	assert.ErrorIs(t, d.DestroyShader(Shader{}), ErrInvalidHandle)
	assert.ErrorIs(t, d.DestroyProgram(Program{}), ErrInvalidHandle)
	assert.ErrorIs(t, d.DestroyFramebuffer(Framebuffer{}), ErrInvalidHandle)
	assert.ErrorIs(t, d.DestroyPipeline(Pipeline{}), ErrInvalidHandle)
	assert.ErrorIs(t, d.ApplyPipeline(Pipeline{}), ErrInvalidHandle)
}

func TestForeignHandle(t *testing.T) {
	d1, _, _ := newTestDevice(t)
	d2, _, _ := newTestDevice(t)
	b, err := d1.CreateBuffer(VertexBuffer, Dynamic, 16)
	require.NoError(t, err)
	assert.ErrorIs(t, d2.Upload(b, make([]byte, 16)), ErrInvalidHandle)
	assert.ErrorIs(t, d2.DestroyBuffer(b), ErrInvalidHandle)
	require.NoError(t, d1.DestroyBuffer(b))
}

func TestWrongKind(t *testing.T) {
	d, _, _ := newTestDevice(t)
	tex, err := d.CreateTexture(TextureParams{Width: 1, Height: 1}, nil)
	require.NoError(t, err)
	err = d.DestroyBuffer(Buffer{tex.h})
	assert.ErrorIs(t, err, ErrInvalidHandle)
	require.NoError(t, d.DestroyTexture(tex))
}

func TestTableDrain(t *testing.T) {
	tbl := newTable[int](7, KindBuffer)
	h1 := tbl.insert(1)
	tbl.insert(2)
	var sum int
	tbl.drain(func(v int) { sum += v })
	assert.Equal(t, 3, sum)
	assert.Zero(t, tbl.len())
	_, err := tbl.get(h1)
	assert.ErrorIs(t, err, ErrInvalidHandle)
}
