package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	PageSize int    `toml:"page_size"`
	Player   string `toml:"player"` // "" = auto-detect
	LogFile  string `toml:"log_file"`
	LogLevel string `toml:"log_level"`
	ReviewDB string `toml:"review_db"`
}

// Dir returns the directory holding the config file, log and review store.
func Dir(home string) string {
	return filepath.Join(home, ".config", "ttsb")
}

func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	dir := Dir(home)
	cfg := &Config{
		PageSize: 25,
		LogFile:  filepath.Join(dir, "ttsb.log"),
		LogLevel: "info",
		ReviewDB: filepath.Join(dir, "reviews.db"),
	}

	cfgPath := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	if cfg.PageSize <= 0 {
		return nil, fmt.Errorf("config %s: page_size must be positive, got %d", cfgPath, cfg.PageSize)
	}

	// expand ~ in paths
	cfg.Player = expandHome(strings.TrimSpace(cfg.Player), home)
	cfg.LogFile = expandHome(cfg.LogFile, home)
	cfg.ReviewDB = expandHome(cfg.ReviewDB, home)

	return cfg, nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
