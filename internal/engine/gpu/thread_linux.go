//go:build linux

package gpu

import "golang.org/x/sys/unix"

// CurrentThreadID returns the kernel thread id of the caller.
func CurrentThreadID() ThreadID {
	return ThreadID(unix.Gettid())
}
