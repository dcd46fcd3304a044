package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging and the bounds overlay")
	flagModel       = flag.String("model", "", "Path to the .glb/.gltf model")
	flagMode        = flag.String("mode", "", "Shell mode: standalone or embedded")
	flagWidth       = flag.Int("width", 0, "Window width")
	flagHeight      = flag.Int("height", 0, "Window height")
	flagSnapshotDir = flag.String("snapshot-dir", "", "Directory for F12 snapshots")
	flagSaveConfig  = flag.Bool("save-config", false, "Write the effective config to the user config dir and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// SaveRequested reports whether -save-config was given.
func SaveRequested() bool {
	return *flagSaveConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Debug.ShowBounds = true
	}
	if *flagModel != "" {
		cfg.Model.Path = *flagModel
	}
	if *flagMode != "" {
		cfg.Shell.Mode = *flagMode
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagSnapshotDir != "" {
		cfg.Debug.SnapshotDir = *flagSnapshotDir
	}
}
