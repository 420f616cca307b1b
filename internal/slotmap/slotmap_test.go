// SPDX-License-Identifier: Unlicense OR MIT

package slotmap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertGetRemove(t *testing.T) {
	var m Map[string]
	k := m.Insert("buffer")
	require.False(t, k.IsZero())

	v, ok := m.Get(k)
	require.True(t, ok)
	assert.Equal(t, "buffer", v)
	assert.Equal(t, 1, m.Len())

	v, ok = m.Remove(k)
	require.True(t, ok)
	assert.Equal(t, "buffer", v)
	assert.Equal(t, 0, m.Len())

	_, ok = m.Get(k)
	assert.False(t, ok, "removed key still resolves")
	_, ok = m.Remove(k)
	assert.False(t, ok, "double remove succeeded")
}

func TestStaleKeyDoesNotAlias(t *testing.T) {
	var m Map[int]
	old := m.Insert(1)
	m.Remove(old)
	fresh := m.Insert(2)

	assert.Equal(t, old.Index, fresh.Index, "slot was not reused")
	assert.NotEqual(t, old.Gen, fresh.Gen)

	_, ok := m.Get(old)
	assert.False(t, ok, "stale key resolved to the new occupant")
	v, ok := m.Get(fresh)
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestZeroKey(t *testing.T) {
	var m Map[int]
	m.Insert(7)
	_, ok := m.Get(Key{})
	assert.False(t, ok)
	assert.False(t, m.Contains(Key{}))
}

func TestUnknownIndex(t *testing.T) {
	var m Map[int]
	_, ok := m.Get(Key{Index: 12, Gen: 1})
	assert.False(t, ok)
}

func TestRetireExhaustedSlot(t *testing.T) {
	var m Map[int]
	k := m.Insert(1)
	m.slots[k.Index].gen = math.MaxUint32
	k.Gen = math.MaxUint32
	_, ok := m.Remove(k)
	require.True(t, ok)

	next := m.Insert(2)
	assert.NotEqual(t, k.Index, next.Index, "exhausted slot was reused")
	_, ok = m.Get(k)
	assert.False(t, ok)
}

func TestRangeAndClear(t *testing.T) {
	var m Map[int]
	keys := make([]Key, 5)
	for i := range keys {
		keys[i] = m.Insert(i)
	}
	m.Remove(keys[2])

	sum := 0
	m.Range(func(_ Key, v int) bool {
		sum += v
		return true
	})
	assert.Equal(t, 0+1+3+4, sum)

	m.Clear()
	assert.Equal(t, 0, m.Len())
	for _, k := range keys {
		assert.False(t, m.Contains(k))
	}
}

func TestHandlesUniqueWhileAlive(t *testing.T) {
	var m Map[int]
	seen := make(map[Key]bool)
	for i := 0; i < 100; i++ {
		k := m.Insert(i)
		require.False(t, seen[k], "duplicate live key %v", k)
		seen[k] = true
		if i%3 == 0 {
			m.Remove(k)
			delete(seen, k)
		}
	}
}
