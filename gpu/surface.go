// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"errors"
	"image"

	"gfx/glue"
)

// Surface presents the default framebuffer of a Device.
type Surface struct {
	d    *Device
	size image.Point
}

// Present shows the frame rendered to the default framebuffer. It returns
// ErrContextLost if the context is gone, after which every method of the
// Device fails the same way.
//
// Size changes reported by the platform are applied after presenting, and
// the current pipeline and bindings are forgotten: the next frame must
// apply them again.
func (s *Surface) Present() error {
	d := s.d
	if err := d.check(); err != nil {
		return err
	}
	if err := d.ctx.SwapBuffers(); err != nil {
		if errors.Is(err, ErrContextLost) {
			d.markLost()
		}
		return err
	}
	if sz, ok := latest(d.ctx.Resizes()); ok {
		glue.Logger().Debug("gpu: surface resized", "width", sz.X, "height", sz.Y)
		s.resize(sz)
	}
	d.cur = drawState{}
	return nil
}

// latest drains ch and returns the last value received.
func latest(ch <-chan image.Point) (image.Point, bool) {
	var sz image.Point
	got := false
	for {
		select {
		case v, ok := <-ch:
			if !ok {
				return sz, got
			}
			sz, got = v, true
		default:
			return sz, got
		}
	}
}

// Resize sets the size of the default framebuffer. The viewport follows
// unless an offscreen pass is active.
func (s *Surface) Resize(w, h int) error {
	if err := s.d.check(); err != nil {
		return err
	}
	if w < 0 || h < 0 {
		return invalidArg("surface size %dx%d", w, h)
	}
	s.resize(image.Pt(w, h))
	return nil
}

func (s *Surface) resize(sz image.Point) {
	if sz == s.size {
		return
	}
	s.size = sz
	d := s.d
	if d.state.drawFBO.Equal(d.defaultFBO) {
		d.state.setViewport(d.funcs, 0, 0, sz.X, sz.Y)
	}
}

// Size returns the size of the default framebuffer, or the zero size if
// it was never set.
func (s *Surface) Size() image.Point {
	return s.size
}
