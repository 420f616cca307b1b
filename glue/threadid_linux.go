// SPDX-License-Identifier: Unlicense OR MIT

package glue

import "golang.org/x/sys/unix"

func threadID() uint64 {
	return uint64(unix.Gettid())
}
