// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

package glfake

import (
	"errors"
	"image"
)

// Backend is a platform context backed by a GL. It records presentation
// and binding calls and can simulate context loss and window resizes.
type Backend struct {
	GL *GL

	Current  bool
	Swaps    int
	Interval int
	Released bool

	lost    bool
	resizes chan image.Point
}

var errLost = errors.New("glfake: context lost")

// NewBackend returns a Backend for f.
func NewBackend(f *GL) *Backend {
	return &Backend{
		GL:      f,
		resizes: make(chan image.Point, 8),
	}
}

func (b *Backend) MakeCurrent() error {
	if b.lost {
		return errLost
	}
	b.Current = true
	return nil
}

func (b *Backend) ReleaseCurrent() error {
	b.Current = false
	return nil
}

func (b *Backend) SwapBuffers() error {
	if b.lost {
		return errLost
	}
	b.Swaps++
	return nil
}

func (b *Backend) SetSwapInterval(interval int) error {
	b.Interval = interval
	return nil
}

func (b *Backend) Lost() bool {
	return b.lost
}

func (b *Backend) Release() {
	b.Released = true
	b.Current = false
}

// Resizes returns the channel of window size notifications.
func (b *Backend) Resizes() <-chan image.Point {
	return b.resizes
}

// Resize simulates the window being resized to (w, h). The notification
// is dropped if the channel is full.
func (b *Backend) Resize(w, h int) {
	select {
	case b.resizes <- image.Pt(w, h):
	default:
	}
}

// Lose simulates the platform revoking the context.
func (b *Backend) Lose() {
	b.lost = true
	b.GL.Lose()
}
