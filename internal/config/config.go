package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode"
)

// Version is the config file format version written by SaveConfig.
const Version = "1"

// Environment variables that override file values.
const (
	EnvUser    = "XDPLAY_USER"
	EnvTeamDir = "TEAMDIR"
)

// Config represents the flat xdplay configuration
type Config struct {
	Version      string  `json:"version"`
	User         string  `json:"user,omitempty"`          // journal author name
	TeamDir      string  `json:"team_dir,omitempty"`      // shared journal directory
	RebusSymbols string  `json:"rebus_symbols,omitempty"` // one symbol per rune
	Options      Options `json:"options"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Version:      Version,
		RebusSymbols: "123456789",
		Options:      DefaultOptions(),
	}
}

// DefaultPath returns ~/.xdplay/config.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".xdplay", "config.json"), nil
}

// LoadConfig reads the config file at path.
// Returns error if the file is missing - use Resolve for defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes cfg to path, creating its directory.
func SaveConfig(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Resolve loads path if it exists, falls back to defaults otherwise, then
// applies environment overrides read through getenv.
func Resolve(path string, getenv func(string) string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = Default(), nil
	}
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides the user and team directory from the environment.
// XDPLAY_USER wins over the file; USER only fills an unset user.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if u := getenv(EnvUser); u != "" {
		c.User = u
	} else if c.User == "" {
		c.User = getenv("USER")
	}
	if d := getenv(EnvTeamDir); d != "" {
		c.TeamDir = d
	}
}

// JournalDir returns the team directory, or the current directory if unset.
func (c *Config) JournalDir() string {
	if c.TeamDir == "" {
		return "."
	}
	return c.TeamDir
}

// Validate checks that the rebus symbols can never be mistaken for grid
// content or typed letters.
func (c *Config) Validate() error {
	seen := make(map[rune]bool)
	for _, r := range c.RebusSymbols {
		switch {
		case r == '#' || r == '.' || r == '_':
			return fmt.Errorf("rebus symbol %q is reserved", r)
		case unicode.IsSpace(r) || unicode.IsLetter(r):
			return fmt.Errorf("rebus symbol %q must not be a letter or space", r)
		case seen[r]:
			return fmt.Errorf("rebus symbol %q listed twice", r)
		}
		seen[r] = true
	}
	return nil
}
