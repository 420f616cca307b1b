// SPDX-License-Identifier: Unlicense OR MIT

package window

import "syscall/js"

// Canvas is a canvas element.
type Canvas = js.Value

func validCanvas(c Canvas) bool {
	return !c.IsUndefined() && !c.IsNull()
}
