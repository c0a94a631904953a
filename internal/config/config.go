// Package config handles the configuration directory and backend settings.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	// AppName is the application directory name.
	AppName = "tdo"

	// TokenFile is the stored bearer token filename.
	TokenFile = "token"

	// APIURLEnv is the environment variable selecting the backend origin.
	APIURLEnv = "TDO_API_URL"

	// DefaultAPIURL is the backend origin used when APIURLEnv is unset.
	DefaultAPIURL = "http://localhost:8000"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// APIBaseURL is the backend origin, without a trailing slash.
	APIBaseURL string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/tdo or $HOME/.config/tdo.
// The backend origin comes from TDO_API_URL, with a .env file consulted first.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	// A missing .env is not an error; the process environment still applies.
	_ = godotenv.Load()

	baseURL := os.Getenv(APIURLEnv)
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}

	return &Config{Dir: dir, APIBaseURL: baseURL}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// TokenPath returns the path to the stored bearer token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
