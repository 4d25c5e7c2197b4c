// ABOUTME: Configuration for the Charm KV backend connection
// ABOUTME: Handles server settings, auto-sync and auto-backup preferences

package charm

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
)

const (
	// DefaultCharmHost is the public charm cloud server.
	DefaultCharmHost = "cloud.charm.sh"

	// AppName is the application name for the Charm KV database.
	AppName = "mgr-sop"

	// ConfigFileName is where we store local config.
	ConfigFileName = "charm-config.json"
)

// Config holds charm connection settings.
type Config struct {
	// Host is the charm server hostname
	Host string `json:"host,omitempty"`

	// AutoSync enables a background cloud sync after every write operation
	AutoSync bool `json:"auto_sync"`

	// AutoBackup enables a snapshot export when the CLI exits
	AutoBackup bool `json:"auto_backup"`
}

// DefaultConfig returns a new config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Host:     DefaultCharmHost,
		AutoSync: true,
	}
}

// configPath returns the path to the config file.
func configPath() (string, error) {
	dataDir := filepath.Join(xdg.DataHome, AppName)
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(dataDir, ConfigFileName), nil
}

// LoadConfig loads config from disk, or returns defaults if not found.
// A .env file and MGR_* environment variables override stored values.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	path, err := configPath()
	if err == nil {
		if data, err := os.ReadFile(path); err == nil {
			var stored Config
			if json.Unmarshal(data, &stored) == nil {
				cfg = &stored
			}
		}
	}

	// Env overrides. Missing .env is fine.
	_ = godotenv.Load()
	if host := os.Getenv("MGR_CHARM_HOST"); host != "" {
		cfg.Host = host
	}
	if v := os.Getenv("MGR_AUTO_SYNC"); v != "" {
		cfg.AutoSync = v == "1" || v == "true"
	}

	if cfg.Host == "" {
		cfg.Host = DefaultCharmHost
	}

	return cfg, nil
}

// Save persists the config to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// SetHost sets the charm server host and saves.
func (c *Config) SetHost(host string) error {
	c.Host = host
	return c.Save()
}

// SetAutoSync enables or disables auto-sync and saves.
func (c *Config) SetAutoSync(enabled bool) error {
	c.AutoSync = enabled
	return c.Save()
}

// SetAutoBackup enables or disables exit backups and saves.
func (c *Config) SetAutoBackup(enabled bool) error {
	c.AutoBackup = enabled
	return c.Save()
}
