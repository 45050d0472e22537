package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	if c.Parser.MaxTotalBytes == 0 {
		c.Parser.MaxTotalBytes = defaultMaxTotalBytes
	}
	if c.Parser.MaxEntries == 0 {
		c.Parser.MaxEntries = defaultMaxEntries
	}
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Parser.MaxTotalBytes < 0 {
		return fmt.Errorf("parser.max_total_bytes must be positive, got %d", c.Parser.MaxTotalBytes)
	}
	if c.Parser.MaxEntries < 0 {
		return fmt.Errorf("parser.max_entries must be positive, got %d", c.Parser.MaxEntries)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
