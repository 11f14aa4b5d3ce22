package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the settings claimdesk reads from its config file.
type Config struct {
	APIBase    string
	StateDir   string
	PollEvery  time.Duration
	DebounceMS int
}

const (
	defaultConfigPath  = "~/.config/claimdesk/config.toml"
	defaultStateDir    = "~/.local/share/claimdesk"
	defaultAPIBase     = "http://127.0.0.1:8080"
	defaultPollSeconds = 30
	defaultDebounceMS  = 500
)

// Load locates and parses the claimdesk config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIBase:    defaultAPIBase,
		StateDir:   mustExpand(defaultStateDir),
		PollEvery:  defaultPollSeconds * time.Second,
		DebounceMS: defaultDebounceMS,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase     string `toml:"api_base"`
		StateDir    string `toml:"state_dir"`
		PollSeconds int    `toml:"poll_seconds"`
		DebounceMS  int    `toml:"debounce_ms"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if base := strings.TrimSpace(raw.APIBase); base != "" {
		cfg.APIBase = base
	}
	if dir := strings.TrimSpace(raw.StateDir); dir != "" {
		cfg.StateDir = mustExpand(dir)
	}
	if raw.PollSeconds > 0 {
		cfg.PollEvery = time.Duration(raw.PollSeconds) * time.Second
	}
	if raw.DebounceMS > 0 {
		cfg.DebounceMS = raw.DebounceMS
	}

	return cfg, nil
}

// LogPath returns the path to the claimdesk log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.StateDir) == "" {
		return mustExpand(defaultStateDir + "/claimdesk.log")
	}
	return filepath.Join(c.StateDir, "claimdesk.log")
}

// Debounce returns the configured debounce window as a duration.
func (c Config) Debounce() time.Duration {
	if c.DebounceMS <= 0 {
		return defaultDebounceMS * time.Millisecond
	}
	return time.Duration(c.DebounceMS) * time.Millisecond
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
