// Package config provides configuration management for the rijndael CLI tool
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Davincible/rijndael/pkg/crypto/rijndael"
)

const (
	OutputHex    = "hex"
	OutputBase64 = "base64"

	KeyPolicyStrict = "strict"
	KeyPolicyPad    = "pad"

	minKDFIterations = 10000
)

// Config represents the main configuration structure
type Config struct {
	Version  string          `json:"version"`
	Defaults DefaultSettings `json:"defaults"`
	UI       UIConfig        `json:"ui"`
	Storage  StorageConfig   `json:"storage"`
}

// DefaultSettings contains default values for common operations
type DefaultSettings struct {
	Output    string `json:"output"`     // hex or base64
	KeyPolicy string `json:"key_policy"` // strict or pad
	KeySize   int    `json:"key_size"`   // bytes, used by key generate
}

// UIConfig contains user interface settings
type UIConfig struct {
	UseColor bool `json:"use_color"`
}

// StorageConfig contains keyfile settings
type StorageConfig struct {
	KeyfilePath   string `json:"keyfile_path"`
	KDFIterations int    `json:"kdf_iterations"`
}

// Manager manages configuration loading and saving
type Manager struct {
	config     *Config
	configPath string
}

// NewManager resolves the config path from the environment and loads it,
// writing the defaults on first use.
func NewManager() (*Manager, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return NewManagerAt(configPath)
}

// NewManagerAt is NewManager with an explicit file path.
func NewManagerAt(configPath string) (*Manager, error) {
	m := &Manager{configPath: configPath}

	if err := m.LoadConfig(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		m.config = DefaultConfig()
		if err := m.SaveConfig(); err != nil {
			return nil, fmt.Errorf("failed to save default config: %w", err)
		}
	}

	return m, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0.0",
		Defaults: DefaultSettings{
			Output:    OutputHex,
			KeyPolicy: KeyPolicyStrict,
			KeySize:   rijndael.Key128,
		},
		UI: UIConfig{
			UseColor: true,
		},
		Storage: StorageConfig{
			KeyfilePath:   "",
			KDFIterations: 100000,
		},
	}
}

// LoadConfig loads the configuration from disk. Fields missing from the file
// keep their default values.
func (m *Manager) LoadConfig() error {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return err
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", m.configPath, err)
	}

	m.config = config
	return nil
}

// SaveConfig saves the configuration to disk
func (m *Manager) SaveConfig() error {
	if err := m.config.Validate(); err != nil {
		return err
	}

	configDir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetConfig returns the current configuration
func (m *Manager) GetConfig() *Config {
	return m.config
}

// SetConfig updates the configuration
func (m *Manager) SetConfig(config *Config) {
	m.config = config
}

func (m *Manager) Path() string {
	return m.configPath
}

// KeyfilePath returns the configured keyfile, defaulting to key.json next to
// the config file.
func (m *Manager) KeyfilePath() string {
	if m.config.Storage.KeyfilePath != "" {
		return m.config.Storage.KeyfilePath
	}
	return filepath.Join(filepath.Dir(m.configPath), "key.json")
}

// Validate rejects values the CLI cannot act on.
func (c *Config) Validate() error {
	if err := ValidateOutput(c.Defaults.Output); err != nil {
		return err
	}
	if err := ValidateKeyPolicy(c.Defaults.KeyPolicy); err != nil {
		return err
	}
	if _, err := rijndael.ExpandedKeySize(c.Defaults.KeySize); err != nil {
		return fmt.Errorf("defaults.key_size: %w", err)
	}
	if c.Storage.KDFIterations < minKDFIterations {
		return fmt.Errorf("storage.kdf_iterations must be at least %d, got %d", minKDFIterations, c.Storage.KDFIterations)
	}
	return nil
}

func ValidateOutput(output string) error {
	switch output {
	case OutputHex, OutputBase64:
		return nil
	default:
		return fmt.Errorf("output format must be %q or %q, got %q", OutputHex, OutputBase64, output)
	}
}

func ValidateKeyPolicy(policy string) error {
	switch policy {
	case KeyPolicyStrict, KeyPolicyPad:
		return nil
	default:
		return fmt.Errorf("key policy must be %q or %q, got %q", KeyPolicyStrict, KeyPolicyPad, policy)
	}
}

// getConfigPath returns the configuration file path
func getConfigPath() (string, error) {
	if customPath := os.Getenv("RIJNDAEL_CONFIG"); customPath != "" {
		return customPath, nil
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "rijndael", "config.json"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "rijndael", "config.json"), nil
}
