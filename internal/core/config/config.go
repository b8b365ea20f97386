package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultServerURL is where the answering service listens
const DefaultServerURL = "http://127.0.0.1:8000/ask"

// DefaultSystemPrompt accompanies every ask call
const DefaultSystemPrompt = "Assistant"

// DefaultUser identifies the single local user when none is configured
const DefaultUser = "user@example.com"

type Config struct {
	ServerURL      string
	SystemPrompt   string
	User           string
	AskTimeout     time.Duration
	ExportTemplate string // Custom export header template (optional)
}

type tomlConfig struct {
	ServerURL      string `toml:"server_url"`
	SystemPrompt   string `toml:"system_prompt"`
	User           string `toml:"user"`
	AskTimeoutSecs int    `toml:"ask_timeout_secs"`
}

// Dir returns the askdeck config directory
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "askdeck")
}

// DefaultDBPath is where the session database lives
func DefaultDBPath() string {
	return filepath.Join(Dir(), "askdeck.db")
}

// Load reads config from ~/.config/askdeck/
func Load() (*Config, error) {
	cfg := &Config{
		ServerURL:    DefaultServerURL,
		SystemPrompt: DefaultSystemPrompt,
		User:         DefaultUser,
		AskTimeout:   60 * time.Second,
	}

	configDir := Dir()
	tomlPath := filepath.Join(configDir, "config.toml")
	templatePath := filepath.Join(configDir, "export_template.txt")

	// Load TOML config if it exists
	if _, err := os.Stat(tomlPath); err == nil {
		var tc tomlConfig
		if _, err := toml.DecodeFile(tomlPath, &tc); err == nil {
			if tc.ServerURL != "" {
				cfg.ServerURL = tc.ServerURL
			}
			if tc.SystemPrompt != "" {
				cfg.SystemPrompt = tc.SystemPrompt
			}
			if tc.User != "" {
				cfg.User = tc.User
			}
			if tc.AskTimeoutSecs > 0 {
				cfg.AskTimeout = time.Duration(tc.AskTimeoutSecs) * time.Second
			}
		}
	}

	// If a custom export header template exists, use it
	if data, err := os.ReadFile(templatePath); err == nil {
		cfg.ExportTemplate = string(data)
	}

	return cfg, nil
}
