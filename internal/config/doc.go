// Package config handles loading and parsing the claimdesk configuration file.
//
// # Overview
//
// Claimdesk reads a small TOML file to discover the claims API endpoint and
// where to keep local state (persisted view layouts, the auth token, logs).
// Everything has a sensible default so the console works with no config file
// at all.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/claimdesk/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # TOML Format
//
// Example config.toml:
//
//	api_base = "https://claims.example.com"
//	state_dir = "~/.local/share/claimdesk"
//	poll_seconds = 30
//	debounce_ms = 500
//
// All fields are optional. Tilde expansion is performed automatically.
//
// # Error Handling
//
// Load returns errors for path expansion failures, file read errors, and
// TOML parsing errors. A missing config file is NOT an error - defaults are
// used instead.
package config
