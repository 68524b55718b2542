package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/szborok/BRK-CNC-ClampingPlateManager/internal/config"
)

func TestLoadDefaultsUseEnvAndExpandPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("PLATEMANAGER_INFO_FILE", "~/register.xlsx")
	t.Setenv("PLATEMANAGER_MODELS_DIR", "~/models")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, filepath.Join(tempHome, ".config", "platemanager", "config.toml"), resolved)

	assert.Equal(t, filepath.Join(tempHome, "register.xlsx"), cfg.Paths.InfoFile)
	assert.Equal(t, filepath.Join(tempHome, "models"), cfg.Paths.ModelsDir)
	assert.True(t, filepath.IsAbs(cfg.Paths.OutputDir))
	assert.Empty(t, cfg.Paths.ImagesDir)
	assert.Equal(t, 5, cfg.Sheet.HeaderScanRows)
	assert.Equal(t, 2, cfg.Sheet.DefaultDataStartRow)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "plates", cfg.Output.Prefix)
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "platemanager.toml")

	type payload struct {
		Paths struct {
			InfoFile  string `toml:"info_file"`
			ModelsDir string `toml:"models_dir"`
		} `toml:"paths"`
		Sheet struct {
			Name string `toml:"name"`
		} `toml:"sheet"`
		Lock struct {
			LockedPlates []string `toml:"locked_plates"`
		} `toml:"lock"`
		Logging struct {
			Format string `toml:"format"`
			Level  string `toml:"level"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.InfoFile = filepath.Join(tempDir, "plates.xlsx")
	custom.Paths.ModelsDir = filepath.Join(tempDir, "models")
	custom.Sheet.Name = " Tányérok "
	custom.Lock.LockedPlates = []string{" 12 ", "", "7"}
	custom.Logging.Format = "JSON"
	custom.Logging.Level = "Debug"
	data, err := toml.Marshal(custom)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(configPath, data, 0o644))

	cfg, resolved, exists, err := config.Load(configPath)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, configPath, resolved)
	assert.Equal(t, "Tányérok", cfg.Sheet.Name)
	assert.Equal(t, []string{"12", "7"}, cfg.Lock.LockedPlates)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, custom.Paths.ModelsDir, cfg.Paths.ModelsDir)
	assert.Equal(t, 0.7, cfg.Sheet.SimilarityThreshold)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"format":    "[logging]\nformat = \"xml\"\n",
		"scan rows": "[sheet]\nheader_scan_rows = 0\n",
		"threshold": "[sheet]\nsimilarity_threshold = 1.5\n",
		"unknown":   "[paths]\nbogus = 1\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".toml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, _, _, err := config.Load(path)
			assert.Error(t, err)
		})
	}
}

func TestSampleConfigLoads(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "sample.toml")
	require.NoError(t, config.CreateSample(path))

	cfg, _, exists, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Output.Pretty)
}
