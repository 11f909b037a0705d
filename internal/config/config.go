// Package config provides YAML-based configuration loading for collide.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Config is the complete collide configuration.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Storage StorageConfig `yaml:"storage"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Server  ServerConfig  `yaml:"server"`
	Runner  RunnerConfig  `yaml:"runner"`
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// StorageConfig controls the run history database.
type StorageConfig struct {
	Path     string `yaml:"path"`
	SaveRuns bool   `yaml:"save_runs"`
}

// ViewerConfig tunes the interactive playground.
type ViewerConfig struct {
	TickRate       int     `yaml:"tick_rate"`
	MoveStep       float64 `yaml:"move_step"`         // World units per key press
	RotateStepDeg  float64 `yaml:"rotate_step_deg"`   // Degrees per key press
	SizeStep       float64 `yaml:"size_step"`         // World units per grow/shrink
	SpinDegPerTick float64 `yaml:"spin_deg_per_tick"` // Auto-spin speed
	Scale          float64 `yaml:"scale"`             // Terminal rows per world unit
	CaptureDir     string  `yaml:"capture_dir"`
}

// ServerConfig configures the SSH playground server.
type ServerConfig struct {
	Host        string        `yaml:"host"`
	Port        int           `yaml:"port"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RunnerConfig controls concurrent scenario evaluation.
type RunnerConfig struct {
	Workers int `yaml:"workers"` // 0 = GOMAXPROCS
}

// Validate checks values the rest of the program relies on.
func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	if c.Viewer.TickRate <= 0 {
		return fmt.Errorf("config: viewer.tick_rate must be positive, got %d", c.Viewer.TickRate)
	}
	if c.Viewer.Scale <= 0 {
		return fmt.Errorf("config: viewer.scale must be positive, got %v", c.Viewer.Scale)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port out of range: %d", c.Server.Port)
	}
	if c.Runner.Workers < 0 {
		return fmt.Errorf("config: runner.workers must not be negative, got %d", c.Runner.Workers)
	}
	return nil
}

// LogLevel returns the configured level, or info if it does not parse.
func (c LogConfig) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
