// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

package window

// Canvas is a canvas element. It only exists in the browser.
type Canvas struct{}

func validCanvas(Canvas) bool { return false }
