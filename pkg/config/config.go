// Package config loads the gazeta application configuration from a TOML
// file. All settings have working defaults; a missing config file is normal
// and yields the default configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application settings shared by all commands.
type Config struct {
	// BaseURL is the root of the gazette archive.
	BaseURL string `toml:"base_url"`

	// UserAgent is the User-Agent header sent with archive requests.
	UserAgent string `toml:"user_agent"`

	// RequestsPerSecond caps the request rate against the archive.
	RequestsPerSecond float64 `toml:"requests_per_second"`

	// MaxRetries is the number of additional download attempts after a
	// transient failure.
	MaxRetries int `toml:"max_retries"`

	// CacheDir is the directory for the edition disk cache. Empty disables
	// caching.
	CacheDir string `toml:"cache_dir"`

	// CacheTTLHours is the cache entry time-to-live in hours.
	CacheTTLHours int `toml:"cache_ttl_hours"`

	// ProfileDir is the directory of segmentation profile YAML files.
	ProfileDir string `toml:"profile_dir"`

	// Profile names the segmentation profile to use.
	Profile string `toml:"profile"`
}

// Default returns the configuration used when no config file exists.
// The cache lives under the user's cache directory; past editions never
// change, so a long TTL is safe.
func Default() Config {
	cacheDir := ""
	if userCache, err := os.UserCacheDir(); err == nil {
		cacheDir = filepath.Join(userCache, "gazeta")
	}

	return Config{
		RequestsPerSecond: 1,
		MaxRetries:        3,
		CacheDir:          cacheDir,
		CacheTTLHours:     24 * 30,
	}
}

// DefaultPath returns the default config file location,
// ~/.config/gazeta/config.toml or the platform equivalent.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, "gazeta", "config.toml")
}

// Load reads the configuration from the given path, falling back to
// DefaultPath when path is empty. A missing file returns Default().
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
