package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"sambanova-go/llm"
)

// Config represents the application configuration
type Config struct {
	DefaultChatModel   string `json:"default_chat_model"`
	DefaultVisionModel string `json:"default_vision_model"`
	Cookie             string `json:"cookie,omitempty"`
}

// Manager handles configuration persistence
type Manager struct {
	configPath string
	config     *Config
}

// NewManager creates a new config manager
func NewManager() (*Manager, error) {
	// Get user's home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	// Create config directory if it doesn't exist
	configDir := filepath.Join(homeDir, ".sambanova-go")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, "config.json")

	m := &Manager{
		configPath: configPath,
		config:     &Config{},
	}

	// Load existing config if it exists
	if err := m.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return m, nil
}

// Load reads the configuration from disk
func (m *Manager) Load() error {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, m.config); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	return nil
}

// Save writes the configuration to disk
func (m *Manager) Save() error {
	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Cookie may be stored here, keep the file private
	if err := os.WriteFile(m.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetDefaultChatModel returns the default chat model
func (m *Manager) GetDefaultChatModel() string {
	if m.config.DefaultChatModel == "" {
		return llm.DefaultChatModel
	}
	return m.config.DefaultChatModel
}

// GetDefaultVisionModel returns the default vision model
func (m *Manager) GetDefaultVisionModel() string {
	if m.config.DefaultVisionModel == "" {
		return llm.DefaultVisionModel
	}
	return m.config.DefaultVisionModel
}

// GetCookie returns the stored session cookie, if any
func (m *Manager) GetCookie() string {
	return m.config.Cookie
}

// SetDefaults updates the default chat and vision models
func (m *Manager) SetDefaults(chatModel, visionModel string) error {
	m.config.DefaultChatModel = chatModel
	m.config.DefaultVisionModel = visionModel
	return m.Save()
}

// SetCookie persists the session cookie
func (m *Manager) SetCookie(cookie string) error {
	m.config.Cookie = cookie
	return m.Save()
}
