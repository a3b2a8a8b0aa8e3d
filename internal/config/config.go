// Package config loads and persists the gram application configuration.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/solvere/gram/internal/errors"
)

// DefaultFrameRate is the number of render events emitted per second.
const DefaultFrameRate = 60.0

// MaxFrameRate caps the configurable frame rate. Anything above this burns
// CPU without a visible difference on a terminal.
const MaxFrameRate = 240.0

// DefaultChatPageSize is how many chats one LoadChats request asks for.
const DefaultChatPageSize = 20

// Config holds the application configuration
type Config struct {
	FrameRate            float64 `json:"frame_rate,omitempty"`            // Render events per second
	MouseEnabled         bool    `json:"mouse_enabled,omitempty"`         // Enable mouse capture
	PasteEnabled         bool    `json:"paste_enabled,omitempty"`         // Enable bracketed paste
	Theme                string  `json:"theme,omitempty"`                 // UI theme name (e.g., "dark", "nord")
	NotificationsEnabled bool    `json:"notifications_enabled,omitempty"` // Desktop notifications for unread traffic
	ChatPageSize         int     `json:"chat_page_size,omitempty"`        // Chats fetched per LoadChats request

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".gram"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Default returns a config populated with default values, not bound to a
// file on disk.
func Default() *Config {
	return &Config{
		FrameRate:            DefaultFrameRate,
		PasteEnabled:         true,
		NotificationsEnabled: true,
		ChatPageSize:         DefaultChatPageSize,
	}
}

// Load reads the config from disk, or creates a new one if it doesn't exist
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, errors.ConfigLoadFailed("", err)
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from the given path. Missing file yields a
// default config bound to that path.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	cfg.filePath = path

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}

	// Fill zero values left by older config files before validating
	cfg.ensureInitialized()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ensureInitialized fills zero-valued fields with defaults. Only called
// during single-threaded initialization in LoadFrom.
func (c *Config) ensureInitialized() {
	if c.FrameRate == 0 {
		c.FrameRate = DefaultFrameRate
	}
	if c.ChatPageSize == 0 {
		c.ChatPageSize = DefaultChatPageSize
	}
}

// Validate checks that the config is internally consistent.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.FrameRate <= 0 {
		return errors.ConfigInvalid("frame_rate must be positive")
	}
	if c.FrameRate > MaxFrameRate {
		return errors.ConfigInvalid("frame_rate exceeds maximum of 240")
	}
	if c.ChatPageSize < 1 {
		return errors.ConfigInvalid("chat_page_size must be at least 1")
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	path := c.filePath
	if path == "" {
		var err error
		path, err = configPath()
		if err != nil {
			return errors.ConfigSaveFailed("", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.ConfigSaveFailed(path, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.ConfigSaveFailed(path, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.ConfigSaveFailed(path, err)
	}
	return nil
}

// GetTheme returns the configured theme name.
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme updates the theme name.
func (c *Config) SetTheme(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = name
}
