// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"fmt"
	"sync/atomic"

	"gfx/internal/slotmap"
)

// Kind identifies the object type a handle refers to.
type Kind uint8

const (
	KindBuffer Kind = iota + 1
	KindTexture
	KindShader
	KindProgram
	KindFramebuffer
	KindPipeline
)

// handle is the representation shared by every typed handle. It is valid
// only for the Device that created it, and only until the object is
// destroyed. The zero handle never resolves.
type handle struct {
	dev  uint32
	kind Kind
	key  slotmap.Key
}

type (
	// Buffer is a handle to a vertex or index buffer.
	Buffer struct{ h handle }
	// Texture is a handle to a 2D texture.
	Texture struct{ h handle }
	// Shader is a handle to a compiled shader stage.
	Shader struct{ h handle }
	// Program is a handle to a linked program.
	Program struct{ h handle }
	// Framebuffer is a handle to an offscreen render target.
	Framebuffer struct{ h handle }
	// Pipeline is a handle to a program together with its vertex layout
	// and fixed function state.
	Pipeline struct{ h handle }
)

// lastDevice numbers devices, so handles of one Device fail on another.
var lastDevice atomic.Uint32

func (k Kind) String() string {
	switch k {
	case KindBuffer:
		return "buffer"
	case KindTexture:
		return "texture"
	case KindShader:
		return "shader"
	case KindProgram:
		return "program"
	case KindFramebuffer:
		return "framebuffer"
	case KindPipeline:
		return "pipeline"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

func (h handle) String() string {
	if h.key.IsZero() {
		return "null"
	}
	return fmt.Sprintf("%s %s (device %d)", h.kind, h.key, h.dev)
}

// IsNull reports whether b is the zero handle.
func (b Buffer) IsNull() bool { return b.h.key.IsZero() }

// IsNull reports whether t is the zero handle.
func (t Texture) IsNull() bool { return t.h.key.IsZero() }

// IsNull reports whether s is the zero handle.
func (s Shader) IsNull() bool { return s.h.key.IsZero() }

// IsNull reports whether p is the zero handle.
func (p Program) IsNull() bool { return p.h.key.IsZero() }

// IsNull reports whether f is the zero handle.
func (f Framebuffer) IsNull() bool { return f.h.key.IsZero() }

// IsNull reports whether p is the zero handle.
func (p Pipeline) IsNull() bool { return p.h.key.IsZero() }

func (b Buffer) String() string      { return b.h.String() }
func (t Texture) String() string     { return t.h.String() }
func (s Shader) String() string      { return s.h.String() }
func (p Program) String() string     { return p.h.String() }
func (f Framebuffer) String() string { return f.h.String() }
func (p Pipeline) String() string    { return p.h.String() }

// table stores the objects of one kind for one device.
type table[T any] struct {
	dev  uint32
	kind Kind
	m    slotmap.Map[T]
}

func newTable[T any](dev uint32, kind Kind) table[T] {
	return table[T]{dev: dev, kind: kind}
}

func (t *table[T]) insert(v T) handle {
	return handle{dev: t.dev, kind: t.kind, key: t.m.Insert(v)}
}

func (t *table[T]) get(h handle) (T, error) {
	if err := t.check(h); err != nil {
		var zero T
		return zero, err
	}
	v, ok := t.m.Get(h.key)
	if !ok {
		return v, fmt.Errorf("%w: stale %s", ErrInvalidHandle, h)
	}
	return v, nil
}

func (t *table[T]) remove(h handle) (T, error) {
	if err := t.check(h); err != nil {
		var zero T
		return zero, err
	}
	v, ok := t.m.Remove(h.key)
	if !ok {
		return v, fmt.Errorf("%w: stale %s", ErrInvalidHandle, h)
	}
	return v, nil
}

func (t *table[T]) check(h handle) error {
	switch {
	case h.key.IsZero():
		return fmt.Errorf("%w: null %s", ErrInvalidHandle, t.kind)
	case h.kind != t.kind:
		return fmt.Errorf("%w: %s used as %s", ErrInvalidHandle, h, t.kind)
	case h.dev != t.dev:
		return fmt.Errorf("%w: %s belongs to another device", ErrInvalidHandle, h)
	}
	return nil
}

// drain removes every object, calling f for each.
func (t *table[T]) drain(f func(v T)) {
	t.m.Range(func(k slotmap.Key, v T) bool {
		f(v)
		return true
	})
	t.m.Clear()
}

func (t *table[T]) len() int {
	return t.m.Len()
}
