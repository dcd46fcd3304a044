package shell

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/goonie-buddy/internal/engine/gpu"
	"github.com/Faultbox/goonie-buddy/internal/engine/session"
	"github.com/Faultbox/goonie-buddy/internal/engine/viewport"
	"github.com/Faultbox/goonie-buddy/internal/logger"
)

// Signals are the per-frame events a host forwards to the core.
type Signals struct {
	Quit           bool
	SecondaryClick bool
	Snapshot       bool
}

// Compositor is the paint callback both shells share: resolve the calling
// thread's session and draw one frame.
type Compositor struct {
	registry  *session.Registry
	newDevice session.DeviceFactory
	log       *zap.Logger
}

// NewCompositor creates a compositor drawing through sessions from registry.
func NewCompositor(registry *session.Registry, newDevice session.DeviceFactory) *Compositor {
	return &Compositor{
		registry:  registry,
		newDevice: newDevice,
		log:       logger.Named("shell"),
	}
}

// Paint draws one frame for the panel described by in. The error is only
// non-nil when the session could not be created, which is fatal.
func (c *Compositor) Paint(target gpu.Target, in viewport.Input, sig Signals) (gpu.Target, error) {
	if sig.SecondaryClick {
		c.log.Info("secondary click")
	}

	s, err := c.registry.ResolveCurrent(c.newDevice)
	if err != nil {
		return target, fmt.Errorf("resolve session: %w", err)
	}
	return s.Paint(target, in), nil
}
