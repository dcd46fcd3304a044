//go:build !linux && !windows

package gpu

// CurrentThreadID returns a single process-wide key. On these platforms GL
// must already be driven from the main thread, which is the only render
// thread the shell ever creates.
func CurrentThreadID() ThreadID {
	return 1
}
