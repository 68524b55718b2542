package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.Sheet.Name = strings.TrimSpace(c.Sheet.Name)
	c.Output.Prefix = strings.TrimSpace(c.Output.Prefix)
	if c.Output.Prefix == "" {
		c.Output.Prefix = defaultOutputPrefix
	}
	c.Columns.PlateNumber = cleanList(c.Columns.PlateNumber)
	c.Columns.WorkHistory = cleanList(c.Columns.WorkHistory)
	c.Columns.ShelfNumber = cleanList(c.Columns.ShelfNumber)
	c.Columns.PreviewImage = cleanList(c.Columns.PreviewImage)
	c.Columns.BoxSize = cleanList(c.Columns.BoxSize)
	c.Assets.ModelExtensions = cleanList(c.Assets.ModelExtensions)
	c.Assets.ImageExtensions = cleanList(c.Assets.ImageExtensions)
	c.Lock.RedColors = cleanList(c.Lock.RedColors)
	c.Lock.LockedPlates = cleanList(c.Lock.LockedPlates)
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if c.Paths.InfoFile == "" {
		if value, ok := os.LookupEnv("PLATEMANAGER_INFO_FILE"); ok {
			c.Paths.InfoFile = strings.TrimSpace(value)
		}
	}
	if c.Paths.ModelsDir == "" {
		if value, ok := os.LookupEnv("PLATEMANAGER_MODELS_DIR"); ok {
			c.Paths.ModelsDir = strings.TrimSpace(value)
		}
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}

	fields := []struct {
		key   string
		value *string
	}{
		{"paths.info_file", &c.Paths.InfoFile},
		{"paths.models_dir", &c.Paths.ModelsDir},
		{"paths.output_dir", &c.Paths.OutputDir},
		{"paths.images_dir", &c.Paths.ImagesDir},
		{"paths.locked_plates_file", &c.Paths.LockedPlatesFile},
	}
	for _, f := range fields {
		expanded, err := expandPath(strings.TrimSpace(*f.value))
		if err != nil {
			return fmt.Errorf("%s: %w", f.key, err)
		}
		*f.value = expanded
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func cleanList(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
