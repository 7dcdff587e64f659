// Package config loads Pokédeck configuration from a TOML file, with a
// .env file and POKEDECK_* environment variables layered on top.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything pokedeck needs to run.
type Config struct {
	APIURL   string
	DataDir  string
	PageSize int
}

const (
	defaultConfigPath = "~/.config/pokedeck/config.toml"
	defaultDataDir    = "~/.local/share/pokedeck"
	defaultAPIURL     = "http://localhost:3000"
	defaultPageSize   = 20

	// Environment overrides, applied after the file. A .env file in the
	// working directory is honored too.
	envAPIURL  = "POKEDECK_API_URL"
	envDataDir = "POKEDECK_DATA_DIR"
)

// Load locates and parses the config file, falling back to defaults when
// missing, then applies environment overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{APIURL: defaultAPIURL, DataDir: defaultDataDir, PageSize: defaultPageSize}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL   string `toml:"api_url"`
		DataDir  string `toml:"data_dir"`
		PageSize int    `toml:"page_size"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(raw.DataDir); v != "" {
		cfg.DataDir = v
	}
	if raw.PageSize > 0 {
		cfg.PageSize = raw.PageSize
	}

	return applyEnv(cfg), nil
}

// applyEnv layers .env and process environment values over the file and
// normalizes the data directory.
func applyEnv(cfg Config) Config {
	_ = godotenv.Load() // a missing .env is the normal case

	if v := strings.TrimSpace(os.Getenv(envAPIURL)); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv(envDataDir)); v != "" {
		cfg.DataDir = v
	}
	cfg.DataDir = mustExpand(cfg.DataDir)
	return cfg
}

// FavoritesPath returns the favorites storage file path.
func (c Config) FavoritesPath() string {
	return filepath.Join(c.DataDir, "favorites.json")
}

// LogPath returns the diagnostic log file path.
func (c Config) LogPath() string {
	return filepath.Join(c.DataDir, "pokedeck.log")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
