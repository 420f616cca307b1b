// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"gfx/internal/gl"
)

// SetViewport sets the viewport of the current pass.
func (d *Device) SetViewport(x, y, w, h int) error {
	if err := d.check(); err != nil {
		return err
	}
	if w < 0 || h < 0 {
		return invalidArg("viewport size %dx%d", w, h)
	}
	d.state.setViewport(d.funcs, x, y, w, h)
	return nil
}

// SetScissor restricts drawing to a rectangle until the next pass begins.
func (d *Device) SetScissor(x, y, w, h int) error {
	if err := d.check(); err != nil {
		return err
	}
	if w < 0 || h < 0 {
		return invalidArg("scissor size %dx%d", w, h)
	}
	d.state.set(d.funcs, gl.SCISSOR_TEST, true)
	d.state.setScissor(d.funcs, x, y, w, h)
	return nil
}

// Draw draws count vertices starting at first with the current pipeline
// and bindings. Instances greater than 1 require Caps.Instancing.
func (d *Device) Draw(first, count, instances int) error {
	pl, _, err := d.prepareDraw(first, count, instances, false)
	if err != nil {
		return err
	}
	if count == 0 || instances == 0 {
		return nil
	}
	f := d.funcs
	if instances == 1 {
		f.DrawArrays(pl.mode, first, count)
	} else {
		f.DrawArraysInstanced(pl.mode, first, count, instances)
	}
	return nil
}

// DrawIndexed draws count indices of the bound index buffer starting at
// index first.
func (d *Device) DrawIndexed(first, count, instances int) error {
	pl, ib, err := d.prepareDraw(first, count, instances, true)
	if err != nil {
		return err
	}
	if count == 0 || instances == 0 {
		return nil
	}
	typ := gl.Enum(gl.UNSIGNED_SHORT)
	if ib.stride == 4 {
		typ = gl.UNSIGNED_INT
	}
	f := d.funcs
	off := first * ib.stride
	if instances == 1 {
		f.DrawElements(pl.mode, count, typ, off)
	} else {
		f.DrawElementsInstanced(pl.mode, count, typ, off, instances)
	}
	return nil
}

// prepareDraw resolves the applied pipeline and bindings and checks the
// draw range against the bound buffers.
func (d *Device) prepareDraw(first, count, instances int, indexed bool) (*gpuPipeline, *gpuBuffer, error) {
	if err := d.check(); err != nil {
		return nil, nil, err
	}
	switch {
	case d.cur.pipeline.IsNull():
		return nil, nil, invalidArg("no pipeline applied")
	case first < 0 || count < 0 || instances < 0:
		return nil, nil, invalidArg("draw of %d elements at %d, %d instances", count, first, instances)
	case instances > 1 && !d.caps.Instancing:
		return nil, nil, invalidArg("%d instances without instancing support", instances)
	}
	pl, prog, err := d.currentPipeline()
	if err != nil {
		return nil, nil, err
	}
	if len(pl.attribs) > 0 && !d.cur.bound {
		return nil, nil, invalidArg("no bindings applied")
	}
	vbufs := d.drawBufs[:0]
	for _, h := range d.cur.vertex {
		buf, err := d.buffers.get(h.h)
		if err != nil {
			return nil, nil, err
		}
		vbufs = append(vbufs, buf)
	}
	d.drawBufs = vbufs
	for _, h := range d.cur.images {
		if _, err := d.textures.get(h.h); err != nil {
			return nil, nil, err
		}
	}
	var ib *gpuBuffer
	if !d.cur.index.IsNull() {
		if ib, err = d.buffers.get(d.cur.index.h); err != nil {
			return nil, nil, err
		}
	}
	if indexed {
		if ib == nil {
			return nil, nil, invalidArg("no index buffer bound")
		}
		if n := ib.size / ib.stride; !inRange(first, count, n) {
			return nil, nil, invalidArg("indices [%d, +%d) outside buffer of %d", first, count, n)
		}
	}
	for _, a := range pl.attribs {
		n := elements(vbufs[a.buffer].size, a)
		switch {
		case a.divisor > 0:
			if instances > 0 && (instances-1)/a.divisor >= n {
				return nil, nil, invalidArg("%d instances outside buffer %d of %d elements", instances, a.buffer, n)
			}
		case !indexed:
			if count > 0 && !inRange(first, count, n) {
				return nil, nil, invalidArg("vertices [%d, +%d) outside buffer %d of %d", first, count, a.buffer, n)
			}
		}
	}
	// BindProgram may have replaced the pipeline's program.
	d.state.useProgram(d.funcs, prog.obj)
	d.cur.prog = pl.prog
	return pl, ib, nil
}

// inRange reports whether [first, first+count) lies within [0, n) without
// overflowing.
func inRange(first, count, n int) bool {
	return first <= n && count <= n-first
}

// elements returns the number of complete elements of a in a buffer of
// size bytes.
func elements(size int, a pipelineAttrib) int {
	end := a.offset + a.format.size()
	if size < end {
		return 0
	}
	return (size-end)/a.stride + 1
}
