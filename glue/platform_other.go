// SPDX-License-Identifier: Unlicense OR MIT

//go:build !windows && !js && !(linux && cgo)

package glue

import (
	"fmt"
	"runtime"

	"gfx/internal/gl"
	"gfx/window"
)

func init() {
	newBackend = func(win window.Handle, cfg Config) (Backend, gl.API, error) {
		return nil, nil, fmt.Errorf("%w: no GL context support on %s", ErrUnsupportedBackend, runtime.GOOS)
	}
}
