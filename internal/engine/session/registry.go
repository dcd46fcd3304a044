package session

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/goonie-buddy/internal/engine/gpu"
	"github.com/Faultbox/goonie-buddy/internal/logger"
)

// DeviceFactory creates the GPU device for the calling thread.
type DeviceFactory func() (Device, error)

// Registry holds at most one Session per render thread. Entries live for the
// process lifetime.
//
// A session returned by Resolve must only be used on the thread whose key
// resolved it. The mutex guards the map, not the sessions.
type Registry struct {
	mu       sync.Mutex
	opts     Options
	sessions map[gpu.ThreadID]*Session
}

// NewRegistry returns an empty registry that builds sessions with opts.
func NewRegistry(opts Options) *Registry {
	return &Registry{
		opts:     opts,
		sessions: make(map[gpu.ThreadID]*Session),
	}
}

// Resolve returns the session for key, creating it with newDevice on first
// use. A failed creation is not cached, but callers treat it as fatal.
func (r *Registry) Resolve(key gpu.ThreadID, newDevice DeviceFactory) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[key]; ok {
		return s, nil
	}

	device, err := newDevice()
	if err != nil {
		return nil, fmt.Errorf("create device for thread %d: %w", key, err)
	}
	s, err := New(device, r.opts)
	if err != nil {
		return nil, fmt.Errorf("create session for thread %d: %w", key, err)
	}
	r.sessions[key] = s

	logger.Named("session").Debug("session created", zap.Uint64("thread", uint64(key)))
	return s, nil
}

// ResolveCurrent resolves the session for the calling OS thread. The caller
// must have locked its goroutine to that thread.
func (r *Registry) ResolveCurrent(newDevice DeviceFactory) (*Session, error) {
	return r.Resolve(gpu.CurrentThreadID(), newDevice)
}

// Len returns the number of sessions created so far.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
