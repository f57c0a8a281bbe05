// Package config loads file paths and logging options from
// $XDG_CONFIG_HOME/pomodoro-cli/config.toml and the environment. Timer
// preferences live in the history database instead.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jkallio/pomodoro-cli/internal/store"
)

const (
	EnvStateFile = "POMODORO_STATE_FILE"
	EnvHistoryDB = "POMODORO_HISTORY_DB"
	EnvLogLevel  = "POMODORO_LOG_LEVEL"

	DefaultLogLevel = "warn"
)

type Config struct {
	Dir       string // config directory, home of alarm and icon files
	StateFile string
	HistoryDB string
	AlarmFile string
	IconFile  string
	LogLevel  string
}

type fileConfig struct {
	StateFile string `toml:"state_file"`
	HistoryDB string `toml:"history_db"`
	AlarmFile string `toml:"alarm_file"`
	IconFile  string `toml:"icon_file"`
	LogLevel  string `toml:"log_level"`
}

// Load reads the config file in the default location, if present.
func Load() (*Config, error) {
	dir, err := store.ConfigDir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(dir)
}

// LoadFrom reads dir/config.toml, if present, over the defaults and then
// applies environment overrides.
func LoadFrom(dir string) (*Config, error) {
	cfg, err := defaults(dir)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		var fc fileConfig
		if _, err := toml.DecodeFile(path, &fc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if fc.StateFile != "" {
			cfg.StateFile = expandTilde(fc.StateFile)
		}
		if fc.HistoryDB != "" {
			cfg.HistoryDB = expandTilde(fc.HistoryDB)
		}
		if fc.AlarmFile != "" {
			cfg.AlarmFile = expandTilde(fc.AlarmFile)
		}
		if fc.IconFile != "" {
			cfg.IconFile = expandTilde(fc.IconFile)
		}
		if fc.LogLevel != "" {
			cfg.LogLevel = fc.LogLevel
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func defaults(dir string) (*Config, error) {
	statePath, err := store.DefaultRecordPath()
	if err != nil {
		return nil, err
	}
	return &Config{
		Dir:       dir,
		StateFile: statePath,
		HistoryDB: filepath.Join(dir, "history.db"),
		LogLevel:  DefaultLogLevel,
	}, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvStateFile); v != "" {
		cfg.StateFile = expandTilde(v)
	}
	if v := os.Getenv(EnvHistoryDB); v != "" {
		cfg.HistoryDB = expandTilde(v)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
