package config

import (
	"fmt"
	"os"
	"time"

	"github.com/docker/go-units"
)

const (
	// EnvIngestMaxUploadSize overrides the maximum upload size.
	EnvIngestMaxUploadSize = "INGEST_MAX_UPLOAD_SIZE"

	// EnvIngestInlineTextLimit overrides the inline transcript threshold.
	EnvIngestInlineTextLimit = "INGEST_INLINE_TEXT_LIMIT"

	// EnvIngestOpTimeout overrides the per-operation I/O timeout.
	EnvIngestOpTimeout = "INGEST_OP_TIMEOUT"
)

// IngestConfig contains ingestion pipeline configuration. Sizes are parsed
// with binary units (1MiB = 1024KiB), matching the 10·1024·1024 byte limit
// enforced by the mobile clients.
type IngestConfig struct {
	// MaxUploadSize is the largest accepted payload. Default: "10MiB".
	MaxUploadSize string `toml:"max_upload_size"`

	// InlineTextLimit is the largest pasted transcript stored inline in the
	// metadata record; larger text is persisted as a text/plain blob.
	// Default: "8KiB".
	InlineTextLimit string `toml:"inline_text_limit"`

	// OpTimeout bounds each storage and metadata I/O call. Default: "30s".
	OpTimeout string `toml:"op_timeout"`

	maxUploadSizeVal   int64
	inlineTextLimitVal int64
}

// MaxUploadSizeBytes returns the parsed maximum upload size.
func (c *IngestConfig) MaxUploadSizeBytes() int64 {
	return c.maxUploadSizeVal
}

// InlineTextLimitBytes returns the parsed inline transcript threshold.
func (c *IngestConfig) InlineTextLimitBytes() int64 {
	return c.inlineTextLimitVal
}

// OpTimeoutDuration parses and returns the per-operation timeout as a time.Duration.
func (c *IngestConfig) OpTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.OpTimeout)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the ingest configuration.
func (c *IngestConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *IngestConfig) Merge(overlay *IngestConfig) {
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}
	if overlay.InlineTextLimit != "" {
		c.InlineTextLimit = overlay.InlineTextLimit
	}
	if overlay.OpTimeout != "" {
		c.OpTimeout = overlay.OpTimeout
	}
}

func (c *IngestConfig) loadDefaults() {
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "10MiB"
	}
	if c.InlineTextLimit == "" {
		c.InlineTextLimit = "8KiB"
	}
	if c.OpTimeout == "" {
		c.OpTimeout = "30s"
	}
}

func (c *IngestConfig) loadEnv() {
	if v := os.Getenv(EnvIngestMaxUploadSize); v != "" {
		c.MaxUploadSize = v
	}
	if v := os.Getenv(EnvIngestInlineTextLimit); v != "" {
		c.InlineTextLimit = v
	}
	if v := os.Getenv(EnvIngestOpTimeout); v != "" {
		c.OpTimeout = v
	}
}

func (c *IngestConfig) validate() error {
	size, err := units.RAMInBytes(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	c.maxUploadSizeVal = size

	limit, err := units.RAMInBytes(c.InlineTextLimit)
	if err != nil {
		return fmt.Errorf("invalid inline_text_limit: %w", err)
	}
	if limit < 0 {
		return fmt.Errorf("inline_text_limit cannot be negative")
	}
	if limit > size {
		return fmt.Errorf("inline_text_limit cannot exceed max_upload_size")
	}
	c.inlineTextLimitVal = limit

	if _, err := time.ParseDuration(c.OpTimeout); err != nil {
		return fmt.Errorf("invalid op_timeout: %w", err)
	}
	return nil
}
