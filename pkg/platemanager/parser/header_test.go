package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/szborok/BRK-CNC-ClampingPlateManager/pkg/platemanager/models"
)

func TestResolveHeaderDetectsHungarianHeader(t *testing.T) {
	rows := [][]string{
		{"Készülék nyilvántartás"},
		{"Tányér szám", "Munka", "Polc", "Kép", "Doboz méret"},
		{"1", "A: -100", "P1", "", "300x200"},
	}
	res := ResolveHeader(rows, DefaultHeaderOptions())

	assert.True(t, res.Found())
	assert.Equal(t, 1, res.HeaderRow)
	assert.Equal(t, 2, res.DataStartRow)
	assert.Equal(t, 0, res.Detected[models.FieldPlateNumber])
	assert.Equal(t, 2, res.Detected[models.FieldShelfNumber])
}

func TestResolveHeaderAlwaysUsesCanonicalLayout(t *testing.T) {
	// Headers in a shuffled order still resolve to the fixed layout.
	rows := [][]string{
		{"Shelf", "Plate", "Image"},
		{"P1", "1", "1.png"},
	}
	res := ResolveHeader(rows, DefaultHeaderOptions())

	assert.True(t, res.Found())
	assert.Equal(t, 1, res.DataStartRow)
	assert.Equal(t, 0, res.Detected[models.FieldShelfNumber])
	for i, field := range models.Fields {
		idx, ok := res.Columns.Index(field)
		assert.True(t, ok)
		assert.Equal(t, i, idx, "field %s", field)
	}
}

func TestResolveHeaderFallsBack(t *testing.T) {
	rows := [][]string{
		{"1", "A: -100"},
		{"", "B: -100b"},
		{"2", ""},
	}
	res := ResolveHeader(rows, DefaultHeaderOptions())

	assert.False(t, res.Found())
	assert.Equal(t, -1, res.HeaderRow)
	assert.Equal(t, 2, res.DataStartRow)
	assert.Equal(t, 5, res.Columns.Len())
}

func TestResolveHeaderFuzzyMatch(t *testing.T) {
	// "shelv" and "plates" are within edit distance of the keywords.
	rows := [][]string{{"Plates", "Shelv"}}
	res := ResolveHeader(rows, DefaultHeaderOptions())
	assert.True(t, res.Found())
}

func TestResolveHeaderOnlyScansLeadingRows(t *testing.T) {
	rows := make([][]string, 6)
	rows[5] = []string{"Plate", "Shelf"}
	opts := DefaultHeaderOptions()
	res := ResolveHeader(rows, opts)
	assert.False(t, res.Found())

	opts.ScanRows = 6
	res = ResolveHeader(rows, opts)
	assert.Equal(t, 5, res.HeaderRow)
}
