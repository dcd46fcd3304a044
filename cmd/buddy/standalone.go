package main

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/goonie-buddy/internal/config"
	"github.com/Faultbox/goonie-buddy/internal/engine/debug"
	"github.com/Faultbox/goonie-buddy/internal/engine/gpu"
	"github.com/Faultbox/goonie-buddy/internal/engine/input"
	"github.com/Faultbox/goonie-buddy/internal/engine/session"
	"github.com/Faultbox/goonie-buddy/internal/engine/window"
	"github.com/Faultbox/goonie-buddy/internal/logger"
	"github.com/Faultbox/goonie-buddy/internal/shell"
)

// runStandalone owns the window and clears everything outside the model to
// the color key, which the window manager then drops.
func runStandalone(cfg *config.Config, key shell.ColorKey) error {
	win, err := window.New(window.Config{
		Title:       cfg.Window.Title,
		Width:       cfg.Window.Width,
		Height:      cfg.Window.Height,
		VSync:       cfg.Window.VSync,
		Borderless:  cfg.Window.Borderless,
		AlwaysOnTop: cfg.Window.AlwaysOnTop,
	})
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer win.Close()

	if err := win.SetColorKey(key.COLORREF()); err != nil {
		if !errors.Is(err, window.ErrColorKeyUnsupported) {
			return fmt.Errorf("apply color key: %w", err)
		}
		logger.Warn("color-key transparency unavailable, background stays visible",
			zap.String("color_key", key.String()),
		)
	}

	registry := session.NewRegistry(sessionOptions(cfg, key))
	compositor := shell.NewCompositor(registry, newDevice)
	snapshots := debug.NewSnapshot(cfg.Debug.SnapshotDir, "buddy", key.RGBA())
	events := input.New()

	for {
		sig := events.Poll()
		if sig.Quit {
			return nil
		}

		w, h := win.Size()
		fbW, fbH := win.DrawableSize()
		target := gpu.Target{Width: fbW, Height: fbH}

		if events.Resized() {
			logger.Debug("window resized",
				zap.Int32("width", w), zap.Int32("height", h),
				zap.Int32("fb_width", fbW), zap.Int32("fb_height", fbH),
			)
		}

		in := shell.WindowInput(w, h, fbW, fbH)
		if _, err := compositor.Paint(target, in, sig); err != nil {
			return err
		}
		if sig.Snapshot {
			capture(registry, snapshots, in)
		}
		win.SwapBuffers()
	}
}
