package storage

import (
	"fmt"
	"os"
	"strings"
)

// Config contains blob storage configuration.
type Config struct {
	// BasePath is the root directory for filesystem storage.
	// Default: ".data/blobs"
	BasePath string `toml:"base_path"`

	// PublicBaseURL is the prefix under which stored keys resolve publicly.
	// Default: "http://localhost:8080/blobs"
	PublicBaseURL string `toml:"public_base_url"`
}

// Env maps environment variable names for storage configuration.
type Env struct {
	BasePath      string
	PublicBaseURL string
}

// Finalize applies defaults, loads environment overrides, and validates the storage configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.PublicBaseURL != "" {
		c.PublicBaseURL = overlay.PublicBaseURL
	}
}

func (c *Config) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = ".data/blobs"
	}
	if c.PublicBaseURL == "" {
		c.PublicBaseURL = "http://localhost:8080/blobs"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.BasePath != "" {
		if v := os.Getenv(env.BasePath); v != "" {
			c.BasePath = v
		}
	}
	if env.PublicBaseURL != "" {
		if v := os.Getenv(env.PublicBaseURL); v != "" {
			c.PublicBaseURL = v
		}
	}
}

func (c *Config) validate() error {
	if c.BasePath == "" {
		return fmt.Errorf("base_path required")
	}
	if c.PublicBaseURL == "" {
		return fmt.Errorf("public_base_url required")
	}
	c.PublicBaseURL = strings.TrimSuffix(c.PublicBaseURL, "/")
	return nil
}
