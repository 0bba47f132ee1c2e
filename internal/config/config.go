// Package config loads and provides application configuration.
//
// On first run, a default YAML config is written to ~/.apu.yaml. Subsequent
// runs read and merge that file with built-in defaults.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all user-configurable settings.
type Config struct {
	// GamePort is the TCP port a driving program connects to and sends
	// display commands on.
	GamePort int `yaml:"game_port"`

	// ClientPort is the TCP port telnet clients connect to.
	ClientPort int `yaml:"client_port"`

	// GameBind is the address the game listener binds to. Defaults to
	// loopback-only, since the game protocol carries no authentication.
	GameBind string `yaml:"game_bind"`

	// ClientBind is the address the client listener binds to.
	ClientBind string `yaml:"client_bind"`

	// Renderer names the display protocol clients are rendered with.
	// Currently only "ansi-ibm" exists.
	Renderer string `yaml:"renderer"`

	// ScrollbackLines bounds how much history a terminal window's emulator
	// keeps (1-10000).
	ScrollbackLines int `yaml:"scrollback_lines"`

	// LogLevel controls log verbosity: "debug", "info", "warn", or "error".
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		GamePort:        6122,
		ClientPort:      6123,
		GameBind:        "127.0.0.1",
		ClientBind:      "0.0.0.0",
		Renderer:        "ansi-ibm",
		ScrollbackLines: 1000,
		LogLevel:        "info",
	}
}

// configPath returns the path to ~/.apu.yaml.
func configPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".apu.yaml")
}

// Load reads the config file, falling back to defaults for missing fields.
func Load() Config {
	cfg := DefaultConfig()

	p := configPath()
	if p == "" {
		return cfg
	}

	data, err := os.ReadFile(p)
	if err != nil {
		// No config file yet – write defaults for future editing
		writeDefaults(p, cfg)
		return cfg
	}

	_ = yaml.Unmarshal(data, &cfg)

	// Apply sensible bounds
	if cfg.GamePort < 1 || cfg.GamePort > 65535 {
		cfg.GamePort = 6122
	}
	if cfg.ClientPort < 1 || cfg.ClientPort > 65535 {
		cfg.ClientPort = 6123
	}
	if cfg.GameBind == "" {
		cfg.GameBind = "127.0.0.1"
	}
	if cfg.ClientBind == "" {
		cfg.ClientBind = "0.0.0.0"
	}
	if cfg.ScrollbackLines < 1 {
		cfg.ScrollbackLines = 1
	}
	if cfg.ScrollbackLines > 10000 {
		cfg.ScrollbackLines = 10000
	}

	validRenderers := map[string]bool{"ansi-ibm": true}
	if !validRenderers[cfg.Renderer] {
		cfg.Renderer = "ansi-ibm"
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.LogLevel] {
		cfg.LogLevel = "info"
	}

	return cfg
}

// writeDefaults persists the default configuration to disk.
func writeDefaults(path string, cfg Config) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return
	}
	header := []byte("# APU configuration\n# Edit this file to customise defaults.\n\n")
	_ = os.WriteFile(path, append(header, data...), 0644)
}
