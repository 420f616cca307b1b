// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"errors"
	"fmt"

	"gfx/glue"
	"gfx/internal/gl"
)

var (
	// ErrContextLost is returned by every Device and Surface method once
	// the underlying context is gone. The Device must be released and
	// recreated.
	ErrContextLost = glue.ErrContextLost
	// ErrInvalidHandle is returned for null, stale or foreign handles, and
	// for handles of the wrong kind.
	ErrInvalidHandle = errors.New("gpu: invalid handle")
	// ErrInvalidArgument is returned for out of range sizes, mismatched
	// data lengths and calls made in the wrong order.
	ErrInvalidArgument = errors.New("gpu: invalid argument")
	// ErrReleased is returned by methods of a released Device.
	ErrReleased = errors.New("gpu: device released")
)

// ShaderError reports a failed shader compilation or program link.
type ShaderError struct {
	// Op describes the failed step, such as "vertex shader compilation".
	Op string
	// Log is the driver's info log.
	Log string
}

func (e *ShaderError) Error() string {
	if e.Log == "" {
		return fmt.Sprintf("gpu: %s failed", e.Op)
	}
	return fmt.Sprintf("gpu: %s failed: %s", e.Op, e.Log)
}

func shaderError(err error) error {
	var berr *gl.BuildError
	if errors.As(err, &berr) {
		return &ShaderError{Op: berr.Op, Log: berr.Log}
	}
	return err
}

func invalidArg(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func glErr(f gl.API) error {
	switch st := f.GetError(); st {
	case gl.NO_ERROR:
		return nil
	case gl.CONTEXT_LOST:
		return ErrContextLost
	default:
		return fmt.Errorf("glGetError: %#x", st)
	}
}
