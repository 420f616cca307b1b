// SPDX-License-Identifier: Unlicense OR MIT

// Package slotmap implements a generation-counted, array-backed map.
//
// Keys carry the generation of the slot they were issued for, so a key
// whose value was removed is rejected even after its slot is reused.
package slotmap

import (
	"fmt"
	"math"
)

// Key identifies a value in a Map. The zero Key is never valid.
type Key struct {
	Index uint32
	Gen   uint32
}

type slot[V any] struct {
	gen      uint32
	occupied bool
	val      V
}

// Map is a generation-counted slot map. The zero Map is ready to use.
type Map[V any] struct {
	slots []slot[V]
	free  []uint32
	n     int
}

// IsZero reports whether k is the null key.
func (k Key) IsZero() bool {
	return k.Gen == 0
}

func (k Key) String() string {
	return fmt.Sprintf("%d@%d", k.Index, k.Gen)
}

// Insert stores v and returns a fresh key for it.
func (m *Map[V]) Insert(v V) Key {
	var idx uint32
	if n := len(m.free); n > 0 {
		idx = m.free[n-1]
		m.free = m.free[:n-1]
	} else {
		if len(m.slots) == math.MaxUint32 {
			panic("slotmap: out of slots")
		}
		idx = uint32(len(m.slots))
		m.slots = append(m.slots, slot[V]{gen: 1})
	}
	s := &m.slots[idx]
	s.occupied = true
	s.val = v
	m.n++
	return Key{Index: idx, Gen: s.gen}
}

// Get returns the value for k, or false if k is stale or unknown.
func (m *Map[V]) Get(k Key) (V, bool) {
	s := m.lookup(k)
	if s == nil {
		var zero V
		return zero, false
	}
	return s.val, true
}

// Contains reports whether k refers to a live value.
func (m *Map[V]) Contains(k Key) bool {
	return m.lookup(k) != nil
}

// Remove deletes the value for k and returns it. The slot's generation is
// advanced so k and every copy of it stop resolving.
func (m *Map[V]) Remove(k Key) (V, bool) {
	var zero V
	s := m.lookup(k)
	if s == nil {
		return zero, false
	}
	v := s.val
	s.val = zero
	s.occupied = false
	m.n--
	if s.gen == math.MaxUint32 {
		// Retire the slot; reusing it would wrap the generation and
		// resurrect old keys.
		return v, true
	}
	s.gen++
	m.free = append(m.free, k.Index)
	return v, true
}

// Len returns the number of live values.
func (m *Map[V]) Len() int {
	return m.n
}

// Range calls f for every live value in slot order until f returns false.
func (m *Map[V]) Range(f func(k Key, v V) bool) {
	for i := range m.slots {
		s := &m.slots[i]
		if !s.occupied {
			continue
		}
		if !f(Key{Index: uint32(i), Gen: s.gen}, s.val) {
			return
		}
	}
}

// Clear removes every value, invalidating all outstanding keys.
func (m *Map[V]) Clear() {
	m.Range(func(k Key, _ V) bool {
		m.Remove(k)
		return true
	})
}

func (m *Map[V]) lookup(k Key) *slot[V] {
	if k.IsZero() || int(k.Index) >= len(m.slots) {
		return nil
	}
	s := &m.slots[k.Index]
	if !s.occupied || s.gen != k.Gen {
		return nil
	}
	return s
}
