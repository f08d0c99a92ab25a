// Package config loads the canopy configuration file.
//
// The file is TOML and everything in it is optional; defaults cover a
// local setup with a file-backed diagram cache and an in-memory graph
// store. A missing file is not an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// appName is used for the XDG config and cache directories.
const appName = "canopy"

// Config is the resolved application configuration.
type Config struct {
	Render RenderConfig `toml:"render"`
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
	Redis  RedisConfig  `toml:"redis"`
	Mongo  MongoConfig  `toml:"mongo"`
}

// RenderConfig holds default rendering options.
type RenderConfig struct {
	// Flags lists renderer config names applied to every render unless
	// overridden, e.g. "node-index-label". Unknown names are ignored.
	Flags []string `toml:"flags"`
}

// ServerConfig holds HTTP service options.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// CacheConfig selects the diagram cache backend.
type CacheConfig struct {
	// Backend is "file", "redis", or "none".
	Backend string `toml:"backend"`
	// Dir overrides the cache directory for the file backend.
	Dir string `toml:"dir"`
	// TTL bounds entry lifetime, e.g. "24h". Zero means no expiration.
	TTL Duration `toml:"ttl"`
}

// RedisConfig holds connection settings for the redis cache backend.
type RedisConfig struct {
	Addr string `toml:"addr"`
}

// MongoConfig holds connection settings for the mongo graph store.
// An empty URI selects the in-memory store.
type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// Duration is a time.Duration that decodes from TOML strings like "24h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8420"},
		Cache:  CacheConfig{Backend: "file", TTL: Duration{24 * time.Hour}},
		Redis:  RedisConfig{Addr: "localhost:6379"},
		Mongo:  MongoConfig{Database: appName},
	}
}

// Load reads the configuration at path, layered over [Default]. An
// empty path selects [DefaultPath]; a missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultPath returns the config file location using the XDG standard
// (~/.config/canopy/canopy.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, appName+".toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, appName+".toml"), nil
}

// CacheDir returns the diagram cache directory, honoring the configured
// override and falling back to the XDG cache standard (~/.cache/canopy/).
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
