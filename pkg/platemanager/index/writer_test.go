package index

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/szborok/BRK-CNC-ClampingPlateManager/pkg/platemanager/models"
)

func TestWriterRefusesInvalidReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w := &Writer{Dir: dir}

	_, err := w.Write(models.Inventory{}, models.ValidationReport{Valid: false})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr), "output directory must not be created")
}

func TestWriterCreatesTimestampedFiles(t *testing.T) {
	dir := t.TempDir()
	fixed := time.Date(2026, 10, 16, 8, 30, 0, 123, time.UTC)
	w := &Writer{Dir: dir, Pretty: true, Now: func() time.Time { return fixed }}

	inv := Build([]models.MatchedPlate{{PlateRecord: models.PlateRecord{PlateNumber: "1"}}}, BuildOptions{})
	valid := models.ValidationReport{Valid: true}

	first, err := w.Write(inv, valid)
	require.NoError(t, err)
	second, err := w.Write(inv, valid)
	require.NoError(t, err)

	assert.Equal(t, "plates-20261016T083000.000000123Z.json", filepath.Base(first))
	assert.Equal(t, "plates-20261016T083000.000000123Z-1.json", filepath.Base(second))

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	for _, key := range []string{"metadata", "plates", "modelIndex", "workHistoryIndex"} {
		assert.Contains(t, decoded, key)
	}

	var doc models.Inventory
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.Plates, 1)
	assert.Equal(t, models.OccupancyFree, doc.Plates[0].Occupancy)
}
