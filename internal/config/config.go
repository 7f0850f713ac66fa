// Package config persists user preferences and the cached conversation list,
// and resolves runtime settings from flags, environment, and an env file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/zhubert/codechat/internal/conversation"
	pErrors "github.com/zhubert/codechat/internal/errors"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Config holds the persisted UI preferences. Each key is independent: a
// missing or unreadable one falls back to its default without affecting
// the others.
type Config struct {
	Theme                string                      `json:"theme,omitempty"`             // "light" or "dark"
	SidebarCollapsed     string                      `json:"sidebar_collapsed,omitempty"` // "true" or "false"
	Conversations        []conversation.Conversation `json:"conversations"`               // Newest first
	NotificationsEnabled bool                        `json:"notifications_enabled,omitempty"`

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".codechat"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from ~/.codechat, or returns defaults if it doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{
		Conversations: []conversation.Conversation{},
		filePath:      path,
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, pErrors.ConfigLoadFailed(path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, pErrors.ConfigLoadFailed(path, err)
	}

	// Must run before Validate, which only reads.
	cfg.ensureInitialized()

	if err := cfg.Validate(); err != nil {
		return nil, pErrors.ConfigLoadFailed(path, err)
	}

	return cfg, nil
}

// NewInMemory returns a config that is never written to disk.
func NewInMemory() *Config {
	return &Config{Conversations: []conversation.Conversation{}}
}

// ensureInitialized replaces nil slices and unknown enum values with defaults.
// Not thread-safe: only call before the Config is shared.
func (c *Config) ensureInitialized() {
	if c.Conversations == nil {
		c.Conversations = []conversation.Conversation{}
	}
	if c.Theme != ThemeLight && c.Theme != ThemeDark {
		c.Theme = ""
	}
	if c.SidebarCollapsed != "true" && c.SidebarCollapsed != "false" {
		c.SidebarCollapsed = ""
	}
}

// Validate checks that the cached conversation list is internally consistent.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[conversation.ID]bool)
	for _, conv := range c.Conversations {
		if conv.ID.IsZero() {
			return fmt.Errorf("conversation with empty ID found")
		}
		if seen[conv.ID] {
			return fmt.Errorf("duplicate conversation ID: %s", conv.ID)
		}
		seen[conv.ID] = true
	}
	return nil
}

// Path returns the file the config saves to, or "" for in-memory configs.
func (c *Config) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// Save writes the config to disk atomically. In-memory configs are a no-op.
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.filePath == "" {
		return nil
	}

	dir := filepath.Dir(c.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return pErrors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return pErrors.ConfigSaveFailed(c.filePath, err)
	}

	tmp, err := os.CreateTemp(dir, ".config-*.json")
	if err != nil {
		return pErrors.ConfigSaveFailed(c.filePath, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return pErrors.ConfigSaveFailed(c.filePath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return pErrors.ConfigSaveFailed(c.filePath, err)
	}
	if err := os.Rename(tmpName, c.filePath); err != nil {
		os.Remove(tmpName)
		return pErrors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// GetTheme returns the theme name, defaulting to light.
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.Theme == "" {
		return ThemeLight
	}
	return c.Theme
}

// SetTheme sets the theme name. Unknown names are ignored.
func (c *Config) SetTheme(theme string) {
	if theme != ThemeLight && theme != ThemeDark {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetSidebarCollapsed returns the persisted sidebar state.
func (c *Config) GetSidebarCollapsed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.SidebarCollapsed == "true"
}

// SetSidebarCollapsed persists the sidebar state as "true" or "false".
func (c *Config) SetSidebarCollapsed(collapsed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if collapsed {
		c.SidebarCollapsed = "true"
	} else {
		c.SidebarCollapsed = "false"
	}
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}
