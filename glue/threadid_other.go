// SPDX-License-Identifier: Unlicense OR MIT

//go:build !linux && !windows

package glue

// threadID is constant where the thread id is not available. Every
// goroutine then maps to the same binding, which is exact on js/wasm.
func threadID() uint64 {
	return 1
}
