//go:build windows

package gpu

import "golang.org/x/sys/windows"

// CurrentThreadID returns the Win32 thread id of the caller.
func CurrentThreadID() ThreadID {
	return ThreadID(windows.GetCurrentThreadId())
}
