package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	DefaultServer       = "127.0.0.1:8080"
	DefaultScrollback   = 1000
	DefaultHistoryLimit = 500
)

type Config struct {
	// Server is the address the client dials and the server listens on.
	Server string `yaml:"server"`
	// Scrollback caps the per-pane scrollback line count.
	Scrollback int `yaml:"scrollback"`
	// HistoryLimit bounds how many persisted history rows are loaded on
	// startup.
	HistoryLimit int `yaml:"history_limit"`
	// LogPath, when set, makes the server log to this file as well as
	// stderr.
	LogPath string `yaml:"log_path"`
}

// Load reads the config from ~/.config/remmux/config.yaml.
// Returns defaults if the file doesn't exist.
func Load() (*Config, error) {
	cfg := &Config{
		Server:       DefaultServer,
		Scrollback:   DefaultScrollback,
		HistoryLimit: DefaultHistoryLimit,
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, nil
	}

	path := filepath.Join(home, ".config", "remmux", "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if cfg.Server == "" {
		cfg.Server = DefaultServer
	}
	if cfg.Scrollback <= 0 {
		cfg.Scrollback = DefaultScrollback
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = DefaultHistoryLimit
	}

	return cfg, nil
}
