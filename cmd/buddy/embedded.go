package main

import (
	"fmt"

	"github.com/Faultbox/goonie-buddy/internal/config"
	"github.com/Faultbox/goonie-buddy/internal/engine/debug"
	"github.com/Faultbox/goonie-buddy/internal/engine/gpu"
	"github.com/Faultbox/goonie-buddy/internal/engine/session"
	"github.com/Faultbox/goonie-buddy/internal/engine/ui"
	"github.com/Faultbox/goonie-buddy/internal/shell"
)

// runEmbedded lets the ImGui host own the window and composite a
// transparent canvas; the session only clears inside the panel.
func runEmbedded(cfg *config.Config, key shell.ColorKey) error {
	host, err := ui.NewHost(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
	if err != nil {
		return fmt.Errorf("create ui host: %w", err)
	}

	registry := session.NewRegistry(sessionOptions(cfg, key))
	compositor := shell.NewCompositor(registry, newDevice)
	snapshots := debug.NewSnapshot(cfg.Debug.SnapshotDir, "buddy", key.RGBA())

	return host.Run(func(req ui.PaintRequest) error {
		in := req.Geometry.Input()
		target := gpu.Target{
			Width:  int32(req.Geometry.DisplaySize.X*in.PixelsPerPoint + 0.5),
			Height: in.FramebufferHeight,
		}
		if _, err := compositor.Paint(target, in, req.Signals); err != nil {
			return err
		}
		if req.Signals.Snapshot {
			capture(registry, snapshots, in)
		}
		return nil
	})
}
