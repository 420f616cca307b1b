// SPDX-License-Identifier: Unlicense OR MIT

// Package unsafe reinterprets typed slices as raw bytes without copying.
package unsafe

import (
	"fmt"
	"unsafe"
)

// BytesView returns a byte slice view of s. The view aliases the memory of
// s; it is only valid while s is.
func BytesView[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	sz := int(unsafe.Sizeof(zero))
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*sz)
}

// ElemSize returns the size in bytes of one element of a []T.
func ElemSize[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// Cast reinterprets b as a slice of T. It fails if the length of b is not a
// multiple of the size of T or if b is not suitably aligned for T.
func Cast[T any](b []byte) ([]T, error) {
	sz := ElemSize[T]()
	if sz == 0 {
		return nil, fmt.Errorf("unsafe: zero-sized element type %T", *new(T))
	}
	if len(b)%sz != 0 {
		return nil, fmt.Errorf("unsafe: %d bytes is not a multiple of the %d byte stride", len(b), sz)
	}
	if len(b) == 0 {
		return nil, nil
	}
	var zero T
	if uintptr(unsafe.Pointer(&b[0]))%unsafe.Alignof(zero) != 0 {
		return nil, fmt.Errorf("unsafe: misaligned data for %T", zero)
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), len(b)/sz), nil
}

// GoString convert a NUL-terminated C string
// to a Go string.
func GoString(s []byte) string {
	for i, v := range s {
		if v == 0 {
			return string(s[:i])
		}
	}
	return string(s)
}
