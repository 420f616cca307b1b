// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"errors"

	"gfx/internal/gl"
	gunsafe "gfx/internal/unsafe"
)

type gpuBuffer struct {
	obj   gl.Buffer
	typ   BufferType
	usage Usage
	size  int
	// stride is the element size, or 0 for untyped vertex data.
	stride int
}

// CreateBuffer creates an uninitialized buffer of size bytes. Immutable
// buffers must be created with data, see NewBufferFrom. Index buffers
// created by CreateBuffer hold 16-bit indices.
func (d *Device) CreateBuffer(typ BufferType, usage Usage, size int) (Buffer, error) {
	if err := d.check(); err != nil {
		return Buffer{}, err
	}
	if usage == Immutable {
		return Buffer{}, invalidArg("immutable buffers need initial data")
	}
	if size <= 0 {
		return Buffer{}, invalidArg("buffer size %d", size)
	}
	stride := 0
	if typ == IndexBuffer {
		stride = 2
	}
	return d.newBuffer(typ, usage, size, stride, nil)
}

// NewBufferFrom creates a buffer initialized with data. The element size
// of T is recorded as the buffer stride; index buffers accept 2 or 4 byte
// elements only.
func NewBufferFrom[T any](d *Device, typ BufferType, usage Usage, data []T) (Buffer, error) {
	if err := d.check(); err != nil {
		return Buffer{}, err
	}
	stride := gunsafe.ElemSize[T]()
	if typ == IndexBuffer && stride != 2 && stride != 4 {
		return Buffer{}, invalidArg("index element size %d", stride)
	}
	if len(data) == 0 {
		return Buffer{}, invalidArg("empty buffer data")
	}
	return d.newBuffer(typ, usage, len(data)*stride, stride, gunsafe.BytesView(data))
}

func (d *Device) newBuffer(typ BufferType, usage Usage, size, stride int, data []byte) (Buffer, error) {
	f := d.funcs
	glErr(f)
	obj := f.CreateBuffer()
	if !obj.Valid() {
		if err := d.allocErr(); err != nil {
			return Buffer{}, err
		}
		return Buffer{}, errors.New("gpu: glCreateBuffer failed")
	}
	target := typ.glTarget()
	d.state.bindBuffer(f, target, obj)
	f.BufferData(target, size, usage.glUsage(), data)
	if err := d.allocErr(); err != nil {
		d.state.deleteBuffer(f, obj)
		return Buffer{}, err
	}
	b := &gpuBuffer{obj: obj, typ: typ, usage: usage, size: size, stride: stride}
	return Buffer{d.buffers.insert(b)}, nil
}

// Upload replaces the contents of b, starting at offset 0. It fails for
// immutable buffers and for data larger than the buffer.
func (d *Device) Upload(b Buffer, data []byte) error {
	if err := d.check(); err != nil {
		return err
	}
	buf, err := d.buffers.get(b.h)
	if err != nil {
		return err
	}
	if buf.usage == Immutable {
		return invalidArg("upload to immutable buffer %s", b)
	}
	if len(data) > buf.size {
		return invalidArg("upload of %d bytes to %d byte buffer", len(data), buf.size)
	}
	if buf.stride != 0 && len(data)%buf.stride != 0 {
		return invalidArg("upload of %d bytes to buffer of %d byte elements", len(data), buf.stride)
	}
	if len(data) == 0 {
		return nil
	}
	f := d.funcs
	target := buf.typ.glTarget()
	d.state.bindBuffer(f, target, buf.obj)
	if len(data) == buf.size {
		// Respecify the whole buffer to avoid an implicit synchronization.
		f.BufferData(target, buf.size, buf.usage.glUsage(), data)
	} else {
		f.BufferSubData(target, 0, data)
	}
	return nil
}

// UploadSlice is like Upload for typed data. It fails if the element size
// of T differs from the stride of the buffer.
func UploadSlice[T any](d *Device, b Buffer, data []T) error {
	if err := d.check(); err != nil {
		return err
	}
	buf, err := d.buffers.get(b.h)
	if err != nil {
		return err
	}
	if sz := gunsafe.ElemSize[T](); buf.stride != 0 && sz != buf.stride {
		return invalidArg("element size %d does not match buffer stride %d", sz, buf.stride)
	}
	return d.Upload(b, gunsafe.BytesView(data))
}

// BufferSize returns the size of b in bytes.
func (d *Device) BufferSize(b Buffer) (int, error) {
	if err := d.check(); err != nil {
		return 0, err
	}
	buf, err := d.buffers.get(b.h)
	if err != nil {
		return 0, err
	}
	return buf.size, nil
}

// DestroyBuffer deletes b. Later uses of b fail with ErrInvalidHandle.
func (d *Device) DestroyBuffer(b Buffer) error {
	if err := d.check(); err != nil {
		return err
	}
	buf, err := d.buffers.remove(b.h)
	if err != nil {
		return err
	}
	d.state.deleteBuffer(d.funcs, buf.obj)
	return nil
}
