// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

package glue

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gfx/internal/gl"
	"gfx/internal/gl/glfake"
	"gfx/window"
)

var testWindow = window.Win32{HWND: 1}

// fakePlatform replaces the platform backend with glfake contexts. It
// refuses configurations with more than maxSamples samples.
func fakePlatform(t *testing.T, maxSamples int) *[]*glfake.Backend {
	t.Helper()
	var created []*glfake.Backend
	prev := newBackend
	newBackend = func(win window.Handle, cfg Config) (Backend, gl.API, error) {
		if cfg.Samples > maxSamples {
			return nil, nil, creationError(fmt.Errorf("no pixel format with %d samples", cfg.Samples), nil)
		}
		b := glfake.NewBackend(glfake.New())
		created = append(created, b)
		return b, b.GL, nil
	}
	t.Cleanup(func() { newBackend = prev })
	return &created
}

func TestLoadInvalidHandle(t *testing.T) {
	fakePlatform(t, 16)
	_, err := Load(nil, DefaultConfig())
	assert.ErrorIs(t, err, ErrInvalidWindowHandle)
	_, err = Load(window.Win32{}, DefaultConfig())
	assert.ErrorIs(t, err, ErrInvalidWindowHandle)
	_, err = Load(window.Xlib{Window: 5}, DefaultConfig())
	assert.ErrorIs(t, err, ErrInvalidWindowHandle)
}

func TestLoadInvalidConfig(t *testing.T) {
	fakePlatform(t, 16)
	_, err := Load(testWindow, NewConfig(WithSamples(3)))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadMinimalConfig(t *testing.T) {
	created := fakePlatform(t, 16)
	cfg := NewConfig(WithDepthBits(0), WithStencilBits(0), WithSamples(1))
	c, err := Load(testWindow, cfg)
	require.NoError(t, err)
	defer c.Release()

	b := (*created)[0]
	assert.True(t, b.Current)
	assert.Equal(t, 1, b.Interval)
	assert.Same(t, c, Current())
	assert.Equal(t, cfg, c.Config())
	assert.Equal(t, gl.API(b.GL), c.Functions())
}

func TestLoadUnsupported(t *testing.T) {
	prev := newBackend
	newBackend = func(win window.Handle, cfg Config) (Backend, gl.API, error) {
		return nil, nil, creationError(fmt.Errorf("%w: glCreateShader", gl.ErrMissingProc), nil)
	}
	defer func() { newBackend = prev }()
	_, err := LoadRelaxed(testWindow, DefaultConfig())
	assert.ErrorIs(t, err, ErrUnsupportedBackend)
	assert.NotErrorIs(t, err, ErrContextCreation)
}

func TestLoadRelaxed(t *testing.T) {
	created := fakePlatform(t, 4)
	_, err := Load(testWindow, DefaultConfig())
	require.ErrorIs(t, err, ErrContextCreation)

	c, err := LoadRelaxed(testWindow, DefaultConfig())
	require.NoError(t, err)
	defer c.Release()
	assert.Equal(t, 4, c.Config().Samples)
	assert.True(t, c.Config().SRGB)
	assert.Len(t, *created, 1)
}

func TestLoadRelaxedVersion(t *testing.T) {
	prev := newBackend
	newBackend = func(win window.Handle, cfg Config) (Backend, gl.API, error) {
		if cfg.Version.AtLeast(3, 0) {
			return nil, nil, creationError(fmt.Errorf("no %s context", cfg.Version), nil)
		}
		f := glfake.New()
		f.Version = "2.1 glfake"
		b := glfake.NewBackend(f)
		return b, b.GL, nil
	}
	t.Cleanup(func() { newBackend = prev })

	c, err := LoadRelaxed(testWindow, DefaultConfig())
	require.NoError(t, err)
	defer c.Release()
	assert.Equal(t, Version{2, 1}, c.Config().Version)
	assert.Equal(t, ProfileCompatibility, c.Config().Profile)
}

func TestLoadRelaxedExhausted(t *testing.T) {
	fakePlatform(t, -1)
	_, err := LoadRelaxed(testWindow, DefaultConfig())
	assert.ErrorIs(t, err, ErrContextCreation)
}

func TestMakeCurrentReplaces(t *testing.T) {
	created := fakePlatform(t, 16)
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	c1, err := Load(testWindow, DefaultConfig())
	require.NoError(t, err)
	defer c1.Release()
	c2, err := Load(testWindow, DefaultConfig())
	require.NoError(t, err)
	defer c2.Release()

	b1, b2 := (*created)[0], (*created)[1]
	assert.False(t, b1.Current)
	assert.True(t, b2.Current)
	assert.Same(t, c2, Current())

	require.NoError(t, c1.MakeCurrent())
	assert.True(t, b1.Current)
	assert.False(t, b2.Current)
	assert.Same(t, c1, Current())

	require.NoError(t, c1.ReleaseCurrent())
	assert.False(t, b1.Current)
	assert.Nil(t, Current())
}

func TestMakeCurrentOtherThread(t *testing.T) {
	if runtime.GOOS != "linux" && runtime.GOOS != "windows" {
		t.Skip("thread ids not available")
	}
	fakePlatform(t, 16)
	ready := make(chan *Context)
	done := make(chan struct{})
	go func() {
		c, err := Load(testWindow, DefaultConfig())
		if err != nil {
			close(ready)
			return
		}
		ready <- c
		<-done
		c.Release()
	}()
	c := <-ready
	require.NotNil(t, c)
	defer close(done)

	// The goroutine above holds its thread, so this one runs elsewhere.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	assert.Error(t, c.MakeCurrent())
	assert.Error(t, c.ReleaseCurrent())
	assert.Nil(t, Current())
}

func TestDo(t *testing.T) {
	created := fakePlatform(t, 16)
	c, err := Load(testWindow, DefaultConfig())
	require.NoError(t, err)
	defer c.Release()
	require.NoError(t, c.ReleaseCurrent())
	b := (*created)[0]

	err = c.Do(func() error {
		assert.True(t, b.Current)
		assert.Same(t, c, Current())
		return nil
	})
	require.NoError(t, err)
	assert.False(t, b.Current)

	errTest := errors.New("test")
	assert.ErrorIs(t, c.Do(func() error { return errTest }), errTest)

	// Do keeps an already current context current.
	require.NoError(t, c.MakeCurrent())
	require.NoError(t, c.Do(func() error { return nil }))
	assert.True(t, b.Current)
	require.NoError(t, c.ReleaseCurrent())
}

func TestSwapBuffers(t *testing.T) {
	created := fakePlatform(t, 16)
	c, err := Load(testWindow, DefaultConfig())
	require.NoError(t, err)
	defer c.Release()
	b := (*created)[0]

	require.NoError(t, c.SwapBuffers())
	require.NoError(t, c.SwapBuffers())
	assert.Equal(t, 2, b.Swaps)
	require.NoError(t, c.SetSwapInterval(0))
	assert.Equal(t, 0, b.Interval)
}

func TestContextLost(t *testing.T) {
	created := fakePlatform(t, 16)
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	c, err := Load(testWindow, DefaultConfig())
	require.NoError(t, err)
	defer c.Release()
	b := (*created)[0]
	b.Lose()

	assert.ErrorIs(t, c.SwapBuffers(), ErrContextLost)
	assert.True(t, c.Lost())
	assert.ErrorIs(t, c.MakeCurrent(), ErrContextLost)
	assert.ErrorIs(t, c.SetSwapInterval(1), ErrContextLost)
	assert.Nil(t, Current())
	assert.Contains(t, buf.String(), "context lost")
	assert.Contains(t, buf.String(), "context created")
}

func TestRelease(t *testing.T) {
	created := fakePlatform(t, 16)
	c, err := Load(testWindow, DefaultConfig())
	require.NoError(t, err)
	b := (*created)[0]
	c.Release()
	c.Release()
	assert.True(t, b.Released)
	assert.Nil(t, Current())
	assert.ErrorIs(t, c.MakeCurrent(), errReleased)
	assert.ErrorIs(t, c.SwapBuffers(), errReleased)
}

func TestResizes(t *testing.T) {
	created := fakePlatform(t, 16)
	c, err := Load(testWindow, DefaultConfig())
	require.NoError(t, err)
	defer c.Release()
	(*created)[0].Resize(320, 200)
	assert.Equal(t, image.Pt(320, 200), <-c.Resizes())
}
