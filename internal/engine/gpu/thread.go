package gpu

// ThreadID identifies the OS thread a GL context is current on. The render
// loop locks its goroutine to one thread with runtime.LockOSThread, so the
// id stays stable for the process lifetime.
type ThreadID uint64
