// SPDX-License-Identifier: Unlicense OR MIT

package glue

import (
	"errors"
	"fmt"

	"gfx/internal/gl"
)

var (
	// ErrContextCreation is returned when no pixel format matches the
	// Config or the platform refuses to create the context. Retrying
	// with a relaxed Config may succeed.
	ErrContextCreation = errors.New("glue: context creation failed")
	// ErrUnsupportedBackend is returned when the platform lacks a required
	// capability, such as WebGL2 or the ARB context creation extensions.
	ErrUnsupportedBackend = errors.New("glue: unsupported backend")
	// ErrContextLost is returned when the platform has revoked the
	// context. The context must be recreated.
	ErrContextLost = errors.New("glue: context lost")
	// ErrInvalidWindowHandle is returned for nil or null window handles.
	ErrInvalidWindowHandle = errors.New("glue: invalid window handle")
	// ErrInvalidConfig is returned for malformed or out of range
	// configurations.
	ErrInvalidConfig = errors.New("glue: invalid config")

	errReleased = errors.New("glue: context released")
)

// creationError classifies a platform error. Errors matching unsupported
// and missing GL entry points mean the platform cannot ever satisfy the
// request; anything else may succeed with another configuration.
func creationError(err error, unsupported error) error {
	if errors.Is(err, ErrContextCreation) || errors.Is(err, ErrUnsupportedBackend) {
		return err
	}
	if (unsupported != nil && errors.Is(err, unsupported)) || errors.Is(err, gl.ErrMissingProc) {
		return fmt.Errorf("%w: %v", ErrUnsupportedBackend, err)
	}
	return fmt.Errorf("%w: %v", ErrContextCreation, err)
}
