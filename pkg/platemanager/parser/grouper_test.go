package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/szborok/BRK-CNC-ClampingPlateManager/pkg/platemanager/models"
)

func fallbackResolution(start int) HeaderResolution {
	return HeaderResolution{Columns: models.CanonicalColumns(), DataStartRow: start, HeaderRow: -1}
}

func TestGroupRowsMergedContinuation(t *testing.T) {
	sheet := &Worksheet{Name: "Sheet1", Rows: [][]string{
		{"1", "A: -100", "P1", "", "S"},
		{"", "B: -100b", "", "", ""},
	}}
	res, err := GroupRows(sheet, fallbackResolution(0), nil)
	require.NoError(t, err)
	require.Len(t, res.Records, 1)

	rec := res.Records[0]
	assert.Equal(t, "1", rec.PlateNumber)
	assert.Equal(t, []int{1, 2}, rec.SourceRows)
	require.Len(t, rec.WorkHistoryEntries, 2)
	assert.Equal(t, "A", rec.WorkHistoryEntries[0].Project())
	assert.Equal(t, "-100", rec.WorkHistoryEntries[0].WorkOrder)
	assert.Equal(t, "B", rec.WorkHistoryEntries[1].Project())
	assert.Equal(t, "-100b", rec.WorkHistoryEntries[1].WorkOrder)
}

func TestGroupRowsBackfillFirstNonEmptyWins(t *testing.T) {
	sheet := &Worksheet{Rows: [][]string{
		{"hdr"}, {"hdr"},
		{"10", "", "", "", "L"},
		{"", "", "P7", "", ""},
		{"", "", "P8", "10.png", ""},
		{"", "", "", "other.png", "XL"},
		{"11", "", "P9", "", ""},
	}}
	res, err := GroupRows(sheet, fallbackResolution(2), nil)
	require.NoError(t, err)
	require.Len(t, res.Records, 2)

	first := res.Records[0]
	assert.Equal(t, "P7", first.ShelfNumber)
	assert.Equal(t, "10.png", first.PreviewImageRef)
	assert.Equal(t, "L", first.BoxSize)
	assert.Equal(t, []int{3, 4, 5, 6}, first.SourceRows)
	assert.Empty(t, first.WorkHistoryEntries)

	assert.Equal(t, "11", res.Records[1].PlateNumber)
	assert.Equal(t, []int{7}, res.Records[1].SourceRows)
}

func TestGroupRowsSkipsBlankAndOrphanRows(t *testing.T) {
	sheet := &Worksheet{Rows: [][]string{
		{"", "orphan", "", "", ""},
		{"", "", "", "", ""},
		{"3", "", "P1"},
		{"  ", " ", ""},
		{"", "C: 5"},
	}}
	res, err := GroupRows(sheet, fallbackResolution(0), nil)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, res.OrphanRows)
	require.Len(t, res.Records, 1)
	assert.Equal(t, []int{3, 5}, res.Records[0].SourceRows)
	require.Len(t, res.Records[0].WorkHistoryEntries, 1)
}

func TestGroupRowsRecordCountMatchesDistinctPlates(t *testing.T) {
	sheet := &Worksheet{Rows: [][]string{
		{"5", "A: 1"},
		{"", "A: 2"},
		{"6"},
		{"5", "B: 3", "P5"},
		{"7"},
		{"", "", "P7"},
	}}
	res, err := GroupRows(sheet, fallbackResolution(0), nil)
	require.NoError(t, err)

	var numbers []string
	for _, r := range res.Records {
		numbers = append(numbers, r.PlateNumber)
	}
	assert.Equal(t, []string{"5", "6", "7"}, numbers)

	merged := res.Records[0]
	assert.Equal(t, []int{1, 2, 4}, merged.SourceRows)
	assert.Len(t, merged.WorkHistoryEntries, 3)
	assert.Equal(t, "P5", merged.ShelfNumber)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, 4, res.Warnings[0].Row)
}

func TestGroupRowsDetectsLockOnAnchorRowOnly(t *testing.T) {
	red := CellFill{Pattern: "solid", Colors: []string{"FF0000"}}
	sheet := &Worksheet{
		Rows: [][]string{
			{"1", "A: 1"},
			{"", "A: 2"},
			{"2"},
		},
		fills: stubFills{{1, 0}: red},
	}
	res, err := GroupRows(sheet, fallbackResolution(0), CompositeLockDetector{Fill: NewFillLockDetector(nil)})
	require.NoError(t, err)
	require.Len(t, res.Records, 2)
	assert.False(t, res.Records[0].IsLocked, "continuation row fill must not lock plate 1")
	assert.False(t, res.Records[1].IsLocked)

	sheet.fills = stubFills{{0, 0}: red}
	res, err = GroupRows(sheet, fallbackResolution(0), CompositeLockDetector{Fill: NewFillLockDetector(nil)})
	require.NoError(t, err)
	assert.True(t, res.Records[0].IsLocked)
}

func TestGroupRowsManualListWithoutStyles(t *testing.T) {
	sheet := &Worksheet{Rows: [][]string{{"1"}, {"2"}}}
	detector := CompositeLockDetector{Manual: NewManualLockList([]string{"2"}), Fill: NewFillLockDetector(nil)}
	res, err := GroupRows(sheet, fallbackResolution(0), detector)
	require.NoError(t, err)
	require.Len(t, res.Records, 2)
	assert.False(t, res.Records[0].IsLocked)
	assert.True(t, res.Records[1].IsLocked)
}

func TestPlateBuilderRejectsWritesAfterSeal(t *testing.T) {
	b := newPlateBuilder("9", 3)
	require.NoError(t, b.addWorkHistory("A: 1"))
	rec := b.seal()

	assert.ErrorIs(t, b.addRow(4), ErrBuilderSealed)
	assert.ErrorIs(t, b.addWorkHistory("B: 2"), ErrBuilderSealed)
	assert.ErrorIs(t, b.backfill("P", "x.png"), ErrBuilderSealed)
	assert.ErrorIs(t, b.setLocked(true), ErrBuilderSealed)
	assert.ErrorIs(t, b.setBoxSize("L"), ErrBuilderSealed)

	assert.Equal(t, []int{3}, rec.SourceRows)
	assert.Len(t, rec.WorkHistoryEntries, 1)
	assert.False(t, rec.IsLocked)
}

func TestGroupRowsFromWorkbook(t *testing.T) {
	path := writeWorkbook(t, [][]string{
		{"Tányérszám", "Munkaszám", "Polc", "Kép", "Doboz"},
		{"1", "A: -100", "P1", "", ""},
		{"", "B: -100b", "", "", ""},
		{"2", "", "P2", "", ""},
	}, map[string]string{"A4": "C00000"})

	wb, err := OpenWorkbook(path)
	require.NoError(t, err)
	defer wb.Close()
	sheet, err := wb.Sheet("Sheet1")
	require.NoError(t, err)

	resolution := ResolveHeader(sheet.Rows, DefaultHeaderOptions())
	require.True(t, resolution.Found())

	res, err := GroupRows(sheet, resolution, CompositeLockDetector{Fill: NewFillLockDetector(nil)})
	require.NoError(t, err)
	require.Len(t, res.Records, 2)
	assert.Equal(t, []int{2, 3}, res.Records[0].SourceRows)
	assert.False(t, res.Records[0].IsLocked)
	assert.True(t, res.Records[1].IsLocked)
}

type stubFills map[[2]int]CellFill

func (s stubFills) Fill(row, col int) (CellFill, error) {
	if fill, ok := s[[2]int{row, col}]; ok {
		return fill, nil
	}
	return CellFill{Pattern: "none"}, nil
}
