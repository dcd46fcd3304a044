// Package main is the entry point for the Goonie Buddy desktop overlay.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/chewxy/math32"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/goonie-buddy/internal/config"
	"github.com/Faultbox/goonie-buddy/internal/engine/camera"
	"github.com/Faultbox/goonie-buddy/internal/engine/gpu"
	"github.com/Faultbox/goonie-buddy/internal/engine/model"
	"github.com/Faultbox/goonie-buddy/internal/engine/renderer"
	"github.com/Faultbox/goonie-buddy/internal/engine/scene"
	"github.com/Faultbox/goonie-buddy/internal/engine/session"
	"github.com/Faultbox/goonie-buddy/internal/logger"
	"github.com/Faultbox/goonie-buddy/internal/shell"
)

func init() {
	// GL contexts are current on one OS thread; the whole render loop stays
	// on the main thread.
	runtime.LockOSThread()
}

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fatal(fmt.Errorf("config: %w", err))
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fatal(fmt.Errorf("logger: %w", err))
	}
	defer logger.Sync()

	if config.SaveRequested() {
		if err := cfg.Save(); err != nil {
			fatal(fmt.Errorf("save config: %w", err))
		}
		logger.Info("config saved", zap.String("dir", config.ConfigDir()))
		return
	}

	logger.Info("=== Goonie Buddy ===",
		zap.String("mode", cfg.Shell.Mode),
		zap.String("model", cfg.Model.Path),
	)
	logger.Sugar.Debugf("Config: %+v", cfg)

	key, err := shell.ParseColorKey(cfg.Shell.ColorKey)
	if err != nil {
		fatal(err)
	}

	switch cfg.Shell.Mode {
	case config.ModeEmbedded:
		err = runEmbedded(cfg, key)
	default:
		err = runStandalone(cfg, key)
	}
	if err != nil {
		fatal(err)
	}
	logger.Info("buddy closed normally")
}

// sessionOptions builds what every render session needs. Standalone mode
// clears to the color key; embedded mode leaves compositing to the host.
func sessionOptions(cfg *config.Config, key shell.ColorKey) session.Options {
	clearColor := gpu.Transparent
	if cfg.Shell.Mode == config.ModeStandalone {
		clearColor = key.ClearColor()
	}

	handleOpts := model.Options{
		CullBackFaces: cfg.Model.CullBackFaces,
		ShowBounds:    cfg.Debug.ShowBounds,
		KeyGuard:      true,
		ColorKey:      key.Floats(),
		Ambient:       [3]float32{0.2, 0.2, 0.2},
	}

	return session.Options{
		LoadScene: func(session.Device) (session.Scene, error) {
			desc, err := scene.Load(cfg.Model.Path)
			if err != nil {
				return nil, err
			}
			return model.Upload(desc, handleOpts)
		},
		Camera:     cameraConfig(cfg.Camera),
		ClearColor: clearColor,
		Lights:     scene.DefaultLights(),
	}
}

func cameraConfig(c config.CameraConfig) camera.Config {
	out := camera.DefaultConfig()
	if c.Projection == config.ProjectionPerspective {
		out.Projection = camera.Perspective
	}
	if c.HeightPolicy == config.HeightScaled {
		out.HeightPolicy = camera.ScaledHeight
	}
	out.BaselineHeight = c.BaselineHeight
	out.HeightScale = c.HeightScale
	out.Epsilon = c.Epsilon
	out.FOV = c.FOVDegrees * math32.Pi / 180
	return out
}

// newDevice loads GL for the context current on the calling thread.
func newDevice() (session.Device, error) {
	return renderer.NewContext()
}

// fatal reports an unrecoverable error and exits. There is nothing to show
// without a model or a GL context, so no retry is attempted.
func fatal(err error) {
	logger.Error("fatal", zap.Error(err))
	logger.Sync()
	fmt.Fprintf(os.Stderr, "goonie-buddy: %v\n", err)
	dialog.Message("%v", err).Title("Goonie Buddy").Error()
	os.Exit(1)
}
