// Package config handles CLI configuration loading and management.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration.
type Config struct {
	// ProjectID is the CapybaraDB project ID.
	ProjectID string `yaml:"project_id"`
	// BaseURL overrides the API base URL (optional).
	BaseURL string `yaml:"base_url,omitempty"`
	// DefaultDatabase is used when --db is not passed.
	DefaultDatabase string `yaml:"default_database"`
	// DefaultCollection is used when --collection is not passed.
	DefaultCollection string `yaml:"default_collection"`
	// APIKeyEnv names an environment variable to read the API key from
	// before falling back to the keystore.
	APIKeyEnv string `yaml:"api_key_env,omitempty"`
}

// DefaultConfigPath returns the default configuration file path for the current platform.
// - macOS/Linux: ~/.capybaradb/config.yaml
// - Windows: %USERPROFILE%\.capybaradb\config.yaml
func DefaultConfigPath() string {
	var homeDir string

	if runtime.GOOS == "windows" {
		homeDir = os.Getenv("USERPROFILE")
	} else {
		homeDir = os.Getenv("HOME")
	}

	if homeDir == "" {
		// Fallback to current directory
		return "config.yaml"
	}

	return filepath.Join(homeDir, ".capybaradb", "config.yaml")
}

// LoadConfig loads configuration from the specified path.
// If the file doesn't exist, returns an empty config without error.
// Returns an error only if the file exists but cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Missing config file is not an error
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
