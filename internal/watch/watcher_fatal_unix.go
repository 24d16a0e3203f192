// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package watch

import "syscall"

// fatalErrnos mark inotify resource exhaustion: the watch limit
// (fs.inotify.max_user_watches) and the per-process and system-wide
// descriptor limits.
var fatalErrnos = []syscall.Errno{syscall.ENOSPC, syscall.EMFILE, syscall.ENFILE}
