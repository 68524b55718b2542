package parser

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook saves rows to Sheet1 of a new xlsx file and fills the listed
// cells solid with the given color.
func writeWorkbook(t *testing.T, rows [][]string, fills map[string]string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Sheet1"
	for r, row := range rows {
		for c, value := range row {
			if value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellStr(sheetName, cell, value))
		}
	}
	for cell, color := range fills {
		style, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
		})
		require.NoError(t, err)
		require.NoError(t, f.SetCellStyle(sheetName, cell, cell, style))
	}

	path := filepath.Join(t.TempDir(), "plates.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestOpenWorkbookReadsRowsAndFills(t *testing.T) {
	path := writeWorkbook(t, [][]string{
		{"Tányérszám", "Munkaszám", "Polc"},
		{"1", "A: -100", "P1"},
		{"2", "", "P2"},
	}, map[string]string{"A3": "FF0000"})

	wb, err := Open(path)
	require.NoError(t, err)
	defer wb.Close()

	require.Equal(t, []string{"Sheet1"}, wb.SheetNames())
	sheet, err := wb.Sheet("Sheet1")
	require.NoError(t, err)
	require.True(t, sheet.HasStyles())
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "A: -100", sheet.Rows[1][1])

	fill := sheet.Fill(2, 0)
	require.NotNil(t, fill)
	assert.Equal(t, "solid", fill.Pattern)
	require.NotEmpty(t, fill.Colors)
	assert.Equal(t, "FF0000", normalizeColor(fill.Colors[0]))

	plain := sheet.Fill(1, 0)
	require.NotNil(t, plain)
	assert.NotEqual(t, "solid", plain.Pattern)
}

// rewriteParts copies the xlsx package at path, passing every part through
// edit. Parts for which edit reports false are dropped.
func rewriteParts(t *testing.T, path string, edit func(name string, data []byte) ([]byte, bool)) string {
	t.Helper()
	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, part := range r.File {
		src, err := part.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(src)
		src.Close()
		require.NoError(t, err)

		data, keep := edit(part.Name, data)
		if !keep {
			continue
		}
		dst, err := w.Create(part.Name)
		require.NoError(t, err)
		_, err = dst.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	out := filepath.Join(t.TempDir(), "rewritten.xlsx")
	require.NoError(t, os.WriteFile(out, buf.Bytes(), 0o644))
	return out
}

func TestOpenWorkbookFillWithoutThemePart(t *testing.T) {
	path := writeWorkbook(t, [][]string{{"Tányér"}, {"1"}}, map[string]string{"A2": "FF0000"})
	path = rewriteParts(t, path, func(name string, data []byte) ([]byte, bool) {
		return data, !strings.HasPrefix(name, "xl/theme/")
	})

	wb, err := OpenWorkbook(path)
	require.NoError(t, err)
	defer wb.Close()
	sheet, err := wb.Sheet("Sheet1")
	require.NoError(t, err)

	fill := sheet.Fill(1, 0)
	require.NotNil(t, fill)
	assert.Equal(t, "solid", fill.Pattern)
	require.NotEmpty(t, fill.Colors)
	assert.True(t, NewFillLockDetector(nil).IsMarkedLocked(LockCandidate{PlateNumber: "1", Fill: fill}))
}

func TestOpenWorkbookFillThemeReference(t *testing.T) {
	path := writeWorkbook(t, [][]string{{"Tányér"}, {"1"}}, map[string]string{"A2": "FF0000"})
	path = rewriteParts(t, path, func(name string, data []byte) ([]byte, bool) {
		if name == "xl/styles.xml" {
			data = bytes.ReplaceAll(data, []byte(`rgb="FFFF0000"`), []byte(`theme="5"`))
		}
		return data, true
	})

	wb, err := OpenWorkbook(path)
	require.NoError(t, err)
	defer wb.Close()
	sheet, err := wb.Sheet("Sheet1")
	require.NoError(t, err)

	fill := sheet.Fill(1, 0)
	require.NotNil(t, fill)
	assert.Contains(t, fill.Colors, "theme:5")
	assert.True(t, NewFillLockDetector([]string{"theme:5"}).IsMarkedLocked(LockCandidate{PlateNumber: "1", Fill: fill}))
	assert.False(t, NewFillLockDetector([]string{"C00000"}).IsMarkedLocked(LockCandidate{PlateNumber: "1", Fill: fill}))
}

func TestOpenWorkbookMissingSheet(t *testing.T) {
	path := writeWorkbook(t, [][]string{{"1"}}, nil)
	wb, err := OpenWorkbook(path)
	require.NoError(t, err)
	defer wb.Close()

	_, err = wb.Sheet("Nope")
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestOpenRejectsUnknownExtension(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "plates.ods"))
	assert.Error(t, err)
}

func TestOpenCSVDetectsSemicolonAndLatin2(t *testing.T) {
	dir := t.TempDir()
	// "Tányér;Polc" in ISO-8859-2: á=0xE1, é=0xE9
	data := []byte("T\xe1ny\xe9r;Polc\n1;P1\n;P2\n")
	path := filepath.Join(dir, "plates.csv")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	wb, err := Open(path)
	require.NoError(t, err)
	defer wb.Close()

	require.Equal(t, []string{"plates"}, wb.SheetNames())
	sheet, err := wb.Sheet("plates")
	require.NoError(t, err)
	assert.False(t, sheet.HasStyles())
	assert.Nil(t, sheet.Fill(1, 0))
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, []string{"Tányér", "Polc"}, sheet.Rows[0])
	assert.Equal(t, []string{"", "P2"}, sheet.Rows[2])
}

func TestOpenCSVStripsUTF8BOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plates.csv")
	require.NoError(t, os.WriteFile(path, []byte("\xef\xbb\xbfplate,shelf\n7,\"A: 1, B: 2\"\n"), 0o644))

	wb, err := OpenCSV(path)
	require.NoError(t, err)
	sheet, err := wb.Sheet("plates")
	require.NoError(t, err)
	assert.Equal(t, "plate", sheet.Rows[0][0])
	assert.Equal(t, "A: 1, B: 2", sheet.Rows[1][1])
}
