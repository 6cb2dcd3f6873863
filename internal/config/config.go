package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Config represents the markdata configuration
type Config struct {
	SourceDir       string   `json:"source_dir"`
	OutputDir       string   `json:"output_dir,omitempty"`
	LogFile         string   `json:"log_file"`
	Format          string   `json:"format"`
	Indent          int      `json:"indent"`
	Spacer          int      `json:"spacer"`
	Workers         int      `json:"workers"`
	ExcludePatterns []string `json:"exclude_patterns,omitempty"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		SourceDir:       filepath.Join(home, "notes"),
		OutputDir:       "", // Alongside the source file
		LogFile:         "/tmp/markdata.log",
		Format:          "json",
		Indent:          2,
		Spacer:          1,
		Workers:         4,
		ExcludePatterns: []string{},
	}
}

// ConfigPath returns the path to the config file
// Uses ~/.config on all platforms for consistency
// Can be overridden for testing
var ConfigPath = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to XDG if home dir unavailable
		return filepath.Join(xdg.ConfigHome, "markdata", "config.json")
	}
	return filepath.Join(home, ".config", "markdata", "config.json")
}

// StateFilePath returns the path to the state file
// Uses platform-specific XDG data directory
// Can be overridden for testing
var StateFilePath = func() string {
	return filepath.Join(xdg.DataHome, "markdata", "state.json")
}

// Load reads configuration from the XDG config directory
func Load() (*Config, error) {
	configPath := ConfigPath()
	data, err := os.ReadFile(configPath)
	if err != nil {
		// Return default config if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	// Pointer fields distinguish an absent key from an explicit zero
	var raw struct {
		SourceDir       string   `json:"source_dir"`
		OutputDir       string   `json:"output_dir"`
		LogFile         string   `json:"log_file"`
		Format          string   `json:"format"`
		Indent          *int     `json:"indent"`
		Spacer          *int     `json:"spacer"`
		Workers         *int     `json:"workers"`
		ExcludePatterns []string `json:"exclude_patterns"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	defaults := DefaultConfig()

	cfg := &Config{
		SourceDir:       raw.SourceDir,
		OutputDir:       raw.OutputDir,
		LogFile:         raw.LogFile,
		Format:          raw.Format,
		Indent:          defaults.Indent,
		Spacer:          defaults.Spacer,
		Workers:         defaults.Workers,
		ExcludePatterns: raw.ExcludePatterns,
	}
	if cfg.LogFile == "" {
		cfg.LogFile = defaults.LogFile
	}
	if cfg.Format == "" {
		cfg.Format = defaults.Format
	}
	if raw.Indent != nil {
		cfg.Indent = *raw.Indent
	}
	if raw.Spacer != nil {
		cfg.Spacer = *raw.Spacer
	}
	if raw.Workers != nil {
		cfg.Workers = *raw.Workers
	}
	if cfg.ExcludePatterns == nil {
		cfg.ExcludePatterns = []string{}
	}

	// Validate config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Expand paths
	if err := cfg.ExpandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to the XDG config directory
func (c *Config) Save() error {
	configPath := ConfigPath()
	configDir := filepath.Dir(configPath)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.SourceDir == "" {
		return fmt.Errorf("source_dir cannot be empty")
	}
	if c.LogFile == "" {
		return fmt.Errorf("log_file cannot be empty")
	}

	validFormats := map[string]bool{
		"json": true,
		"yaml": true,
		"md":   true,
	}
	if !validFormats[c.Format] {
		return fmt.Errorf("invalid format '%s': must be one of: json, yaml, md", c.Format)
	}

	if c.Indent < 0 {
		return fmt.Errorf("indent cannot be negative")
	}
	if c.Spacer < 0 {
		return fmt.Errorf("spacer cannot be negative")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}

	return nil
}

// ExpandPaths expands any ~ or relative paths to absolute paths
func (c *Config) ExpandPaths() error {
	var err error

	c.SourceDir, err = expandPath(c.SourceDir)
	if err != nil {
		return fmt.Errorf("failed to expand source_dir: %w", err)
	}

	c.OutputDir, err = expandPath(c.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to expand output_dir: %w", err)
	}

	c.LogFile, err = expandPath(c.LogFile)
	if err != nil {
		return fmt.Errorf("failed to expand log_file: %w", err)
	}

	return nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}

	// Expand ~ to home directory
	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		path = filepath.Join(homeDir, path[1:])
	}

	// Convert to absolute path
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return absPath, nil
}
