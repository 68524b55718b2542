package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains input and output locations.
type Paths struct {
	InfoFile         string `toml:"info_file"`
	ModelsDir        string `toml:"models_dir"`
	OutputDir        string `toml:"output_dir"`
	ImagesDir        string `toml:"images_dir"`
	LockedPlatesFile string `toml:"locked_plates_file"`
}

// Sheet contains worksheet selection and header detection settings.
type Sheet struct {
	// Name selects the worksheet; empty means the first one.
	Name                string  `toml:"name"`
	HeaderScanRows      int     `toml:"header_scan_rows"`
	DefaultDataStartRow int     `toml:"default_data_start_row"`
	SimilarityThreshold float64 `toml:"similarity_threshold"`
}

// Columns contains header keywords per logical column.
type Columns struct {
	PlateNumber  []string `toml:"plate_number"`
	WorkHistory  []string `toml:"work_history"`
	ShelfNumber  []string `toml:"shelf_number"`
	PreviewImage []string `toml:"preview_image"`
	BoxSize      []string `toml:"box_size"`
}

// Assets contains the file extensions that classify asset files.
type Assets struct {
	ModelExtensions []string `toml:"model_extensions"`
	ImageExtensions []string `toml:"image_extensions"`
}

// Lock contains lock detection settings.
type Lock struct {
	// RedColors are fill colors that mark a plate locked.
	RedColors []string `toml:"red_colors"`
	// LockedPlates are plate numbers that are always locked.
	LockedPlates []string `toml:"locked_plates"`
}

// Output contains inventory document settings.
type Output struct {
	Prefix string `toml:"prefix"`
	Pretty bool   `toml:"pretty"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for the plate manager.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Sheet   Sheet   `toml:"sheet"`
	Columns Columns `toml:"columns"`
	Assets  Assets  `toml:"assets"`
	Lock    Lock    `toml:"lock"`
	Output  Output  `toml:"output"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/platemanager/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded. The second and third results are the
// resolved path and whether a file was found there.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("platemanager.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
