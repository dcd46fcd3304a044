// Package config handles buddy configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Shell modes.
const (
	ModeStandalone = "standalone"
	ModeEmbedded   = "embedded"
)

// Camera projections and orthographic height policies.
const (
	ProjectionOrthographic = "orthographic"
	ProjectionPerspective  = "perspective"

	HeightFixed  = "fixed"
	HeightScaled = "scaled"
)

// Config holds all buddy settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Shell   ShellConfig   `yaml:"shell"`
	Model   ModelConfig   `yaml:"model"`
	Camera  CameraConfig  `yaml:"camera"`
	Logging LoggingConfig `yaml:"logging"`
	Debug   DebugConfig   `yaml:"debug"`
}

// WindowConfig holds the host window settings.
type WindowConfig struct {
	Title       string `yaml:"title"`
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	VSync       bool   `yaml:"vsync"`
	Borderless  bool   `yaml:"borderless"`
	AlwaysOnTop bool   `yaml:"always_on_top"`
}

// ShellConfig selects how the canvas is composited onto the desktop.
type ShellConfig struct {
	Mode     string `yaml:"mode"`      // standalone or embedded
	ColorKey string `yaml:"color_key"` // #RRGGBB, red must equal blue
}

// ModelConfig points at the model to show.
type ModelConfig struct {
	Path          string `yaml:"path"`
	CullBackFaces bool   `yaml:"cull_back_faces"`
}

// CameraConfig controls the auto-fit camera.
type CameraConfig struct {
	Projection     string  `yaml:"projection"`
	HeightPolicy   string  `yaml:"height_policy"`
	BaselineHeight float32 `yaml:"baseline_height"`
	HeightScale    float32 `yaml:"height_scale"`
	Epsilon        float32 `yaml:"epsilon"`
	FOVDegrees     float32 `yaml:"fov_degrees"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// DebugConfig holds developer aids.
type DebugConfig struct {
	ShowBounds  bool   `yaml:"show_bounds"`
	SnapshotDir string `yaml:"snapshot_dir"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:       "Goonie Buddy",
			Width:       400,
			Height:      400,
			VSync:       true,
			Borderless:  true,
			AlwaysOnTop: true,
		},
		Shell: ShellConfig{
			Mode:     ModeStandalone,
			ColorKey: "#FFB2FF",
		},
		Model: ModelConfig{
			Path:          "assets/buddy.glb",
			CullBackFaces: true,
		},
		Camera: CameraConfig{
			Projection:     ProjectionOrthographic,
			HeightPolicy:   HeightFixed,
			BaselineHeight: 100,
			HeightScale:    1.5,
			Epsilon:        10,
			FOVDegrees:     90,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Debug: DebugConfig{
			SnapshotDir: "snapshots",
		},
	}
}

// Validate reports every setting that cannot be used as is.
func (c *Config) Validate() error {
	var errs []error

	switch c.Shell.Mode {
	case ModeStandalone, ModeEmbedded:
	default:
		errs = append(errs, fmt.Errorf("shell.mode: unknown mode %q", c.Shell.Mode))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window: invalid size %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Model.Path == "" {
		errs = append(errs, errors.New("model.path: empty"))
	}

	switch c.Camera.Projection {
	case ProjectionOrthographic, ProjectionPerspective:
	default:
		errs = append(errs, fmt.Errorf("camera.projection: unknown projection %q", c.Camera.Projection))
	}
	switch c.Camera.HeightPolicy {
	case HeightFixed, HeightScaled:
	default:
		errs = append(errs, fmt.Errorf("camera.height_policy: unknown policy %q", c.Camera.HeightPolicy))
	}
	if c.Camera.BaselineHeight <= 0 {
		errs = append(errs, fmt.Errorf("camera.baseline_height: must be positive, got %v", c.Camera.BaselineHeight))
	}
	if c.Camera.HeightScale <= 0 {
		errs = append(errs, fmt.Errorf("camera.height_scale: must be positive, got %v", c.Camera.HeightScale))
	}
	if c.Camera.Epsilon < 0 {
		errs = append(errs, fmt.Errorf("camera.epsilon: must not be negative, got %v", c.Camera.Epsilon))
	}
	if c.Camera.FOVDegrees <= 0 || c.Camera.FOVDegrees >= 180 {
		errs = append(errs, fmt.Errorf("camera.fov_degrees: out of range, got %v", c.Camera.FOVDegrees))
	}

	return errors.Join(errs...)
}
