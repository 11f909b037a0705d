package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/collide.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level: "info",
		},
		Storage: StorageConfig{
			Path:     "~/.collide/runs.db",
			SaveRuns: true,
		},
		Viewer: ViewerConfig{
			TickRate:       30,
			MoveStep:       0.25,
			RotateStepDeg:  5,
			SizeStep:       0.25,
			SpinDegPerTick: 2,
			Scale:          4,
			CaptureDir:     "~/.collide/captures",
		},
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        23234,
			HostKey:     "~/.collide/host_key",
			IdleTimeout: 10 * time.Minute,
		},
		Runner: RunnerConfig{
			Workers: 0,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
