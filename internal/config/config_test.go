package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != defaultAPIBase {
		t.Fatalf("APIBase = %q, want %q", cfg.APIBase, defaultAPIBase)
	}

	wantStateDir, err := expandPath(defaultStateDir)
	if err != nil {
		t.Fatalf("expandPath(defaultStateDir) returned error: %v", err)
	}
	if cfg.StateDir != wantStateDir {
		t.Fatalf("StateDir = %q, want %q", cfg.StateDir, wantStateDir)
	}
	if cfg.PollEvery != defaultPollSeconds*time.Second {
		t.Fatalf("PollEvery = %v, want %v", cfg.PollEvery, defaultPollSeconds*time.Second)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_base = "  https://claims.example.com  "
state_dir = "~/claimdesk-state"
poll_seconds = 5
debounce_ms = 250
`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != "https://claims.example.com" {
		t.Fatalf("APIBase = %q, want trimmed value", cfg.APIBase)
	}
	if cfg.StateDir != filepath.Join(home, "claimdesk-state") {
		t.Fatalf("StateDir = %q, want expanded home path", cfg.StateDir)
	}
	if cfg.PollEvery != 5*time.Second {
		t.Fatalf("PollEvery = %v, want 5s", cfg.PollEvery)
	}
	if cfg.Debounce() != 250*time.Millisecond {
		t.Fatalf("Debounce = %v, want 250ms", cfg.Debounce())
	}
}

func TestLoad_InvalidTOMLReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not valid toml {{{\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("Load accepted invalid TOML")
	}
}

func TestLogPath_DerivedFromStateDir(t *testing.T) {
	cfg := Config{StateDir: "/tmp/claimdesk"}
	if got := cfg.LogPath(); got != filepath.Join("/tmp/claimdesk", "claimdesk.log") {
		t.Fatalf("LogPath = %q", got)
	}
}

func TestDebounce_ZeroFallsBackToDefault(t *testing.T) {
	cfg := Config{}
	if got := cfg.Debounce(); got != defaultDebounceMS*time.Millisecond {
		t.Fatalf("Debounce = %v, want default", got)
	}
}
