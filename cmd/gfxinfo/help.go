// SPDX-License-Identifier: Unlicense OR MIT

package main

const mainUsage = `The gfxinfo command inspects the configuration and platform
interfaces used to create GL contexts.

Usage:

	gfxinfo [flags]

With no flags, gfxinfo prints the default context configuration as TOML.

The -config flag loads and validates a TOML context configuration and
prints it with defaults filled in. Unknown keys and out of range values
are reported as errors.

The -procs flag lists the GL entry points of the dispatch table. Optional
entry points are marked; a context missing any other entry point fails
to load.

The -x11-window flag queries the size of an X11 window, given by its
decimal or 0x prefixed hexadecimal id. The -display flag selects the X
display, defaulting to $DISPLAY.

The -v flag enables debug logging.
`
