package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSheet(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateSheet() error {
	if c.Sheet.HeaderScanRows < 1 {
		return errors.New("sheet.header_scan_rows must be at least 1")
	}
	if c.Sheet.DefaultDataStartRow < 0 {
		return errors.New("sheet.default_data_start_row must be zero or positive")
	}
	if c.Sheet.SimilarityThreshold <= 0 || c.Sheet.SimilarityThreshold > 1 {
		return errors.New("sheet.similarity_threshold must be in (0, 1]")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
