package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/goonie-buddy/internal/engine/debug"
	"github.com/Faultbox/goonie-buddy/internal/engine/framebuffer"
	"github.com/Faultbox/goonie-buddy/internal/engine/session"
	"github.com/Faultbox/goonie-buddy/internal/engine/viewport"
	"github.com/Faultbox/goonie-buddy/internal/logger"
)

// capture renders one extra frame of the calling thread's session into an
// offscreen target the size of the panel and saves it as a PNG. Failures
// are logged; a missed snapshot never stops the buddy.
func capture(registry *session.Registry, snapshots *debug.Snapshot, in viewport.Input) {
	path, err := renderSnapshot(registry, snapshots, in)
	if err != nil {
		logger.Warn("snapshot failed", zap.Error(err))
		return
	}
	logger.Info("snapshot saved", zap.String("path", path))
}

func renderSnapshot(registry *session.Registry, snapshots *debug.Snapshot, in viewport.Input) (string, error) {
	view, _ := viewport.Map(in)
	if view.Empty() {
		return "", fmt.Errorf("panel has no area")
	}

	s, err := registry.ResolveCurrent(newDevice)
	if err != nil {
		return "", err
	}

	fb, err := framebuffer.New(view.Width, view.Height)
	if err != nil {
		return "", err
	}
	defer fb.Destroy()

	// The offscreen target holds only the panel, so the panel becomes the
	// whole framebuffer with nothing clipped.
	whole := viewport.Input{
		Panel:             viewport.Logical{Width: float32(view.Width), Height: float32(view.Height)},
		Clip:              viewport.Logical{Width: float32(view.Width), Height: float32(view.Height)},
		PixelsPerPoint:    1,
		FramebufferHeight: view.Height,
	}
	s.Paint(fb.Target(), whole)

	w, h := fb.Size()
	return snapshots.Capture(fb.ReadPixels(), int(w), int(h))
}
