// Package parser reads plate worksheets and reconstructs plate records.
package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrSheetNotFound indicates the requested worksheet does not exist.
var ErrSheetNotFound = errors.New("worksheet not found")

// CellFill is the fill metadata of one cell.
type CellFill struct {
	// Pattern is the fill pattern name ("none", "solid", "gray125", ...).
	Pattern string
	// Colors holds the fill colors as RGB hex, "indexed:N" or "theme:N".
	Colors []string
}

// FillSource yields fill metadata by zero-based row and column.
type FillSource interface {
	Fill(row, col int) (CellFill, error)
}

// Worksheet is the cell text of one worksheet plus optional fill metadata.
type Worksheet struct {
	// Name is the worksheet name.
	Name string
	// Rows holds cell strings, indexed [row][col] from zero.
	Rows [][]string

	fills FillSource
}

// HasStyles reports whether the reader supplied fill metadata.
func (w *Worksheet) HasStyles() bool {
	return w != nil && w.fills != nil
}

// Fill returns the fill of a cell, or nil when the reader has no style
// metadata or the style could not be read.
func (w *Worksheet) Fill(row, col int) *CellFill {
	if !w.HasStyles() {
		return nil
	}
	fill, err := w.fills.Fill(row, col)
	if err != nil {
		return nil
	}
	return &fill
}

// Workbook is a spreadsheet opened for reading.
type Workbook interface {
	// SheetNames lists worksheets in workbook order.
	SheetNames() []string
	// Sheet loads one worksheet by name.
	Sheet(name string) (*Worksheet, error)
	Close() error
}

// Open opens path with the reader matching its extension.
func Open(path string) (Workbook, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return OpenCSV(path)
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return OpenWorkbook(path)
	default:
		return nil, fmt.Errorf("unsupported spreadsheet format %q", filepath.Ext(path))
	}
}

// fillPatterns follows the ECMA-376 patternType order used by excelize.
var fillPatterns = []string{
	"none", "solid", "mediumGray", "darkGray", "lightGray",
	"darkHorizontal", "darkVertical", "darkDown", "darkUp", "darkGrid",
	"darkTrellis", "lightHorizontal", "lightVertical", "lightDown", "lightUp",
	"lightGrid", "lightTrellis", "gray125", "gray0625",
}

// ExcelWorkbook reads xlsx workbooks, including cell fill styles.
type ExcelWorkbook struct {
	f *excelize.File
}

// OpenWorkbook opens an xlsx workbook.
func OpenWorkbook(path string) (*ExcelWorkbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return &ExcelWorkbook{f: f}, nil
}

// SheetNames lists worksheets in workbook order.
func (w *ExcelWorkbook) SheetNames() []string {
	return w.f.GetSheetList()
}

// Sheet loads the cell strings of one worksheet.
func (w *ExcelWorkbook) Sheet(name string) (*Worksheet, error) {
	if idx, err := w.f.GetSheetIndex(name); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	rows, err := w.f.GetRows(name)
	if err != nil {
		return nil, err
	}
	return &Worksheet{
		Name:  name,
		Rows:  rows,
		fills: &excelFills{f: w.f, sheet: name, cache: make(map[int]CellFill)},
	}, nil
}

// Close releases the workbook.
func (w *ExcelWorkbook) Close() error {
	return w.f.Close()
}

type excelFills struct {
	f     *excelize.File
	sheet string
	cache map[int]CellFill
}

func (e *excelFills) Fill(row, col int) (CellFill, error) {
	cellName, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return CellFill{}, err
	}
	styleID, err := e.f.GetCellStyle(e.sheet, cellName)
	if err != nil {
		return CellFill{}, err
	}
	if fill, ok := e.cache[styleID]; ok {
		return fill, nil
	}

	style, err := e.f.GetStyle(styleID)
	if err != nil {
		return CellFill{}, err
	}
	fill := CellFill{Pattern: "none"}
	if style != nil {
		fill = convertFill(style.Fill)
	}
	fill.Colors = append(fill.Colors, rawFillColors(e.f, styleID, len(fill.Colors) == 0)...)
	e.cache[styleID] = fill
	return fill, nil
}

func convertFill(fill excelize.Fill) CellFill {
	out := CellFill{Pattern: "none"}
	switch fill.Type {
	case "gradient":
		out.Pattern = "gradient"
	case "pattern":
		if fill.Pattern >= 0 && fill.Pattern < len(fillPatterns) {
			out.Pattern = fillPatterns[fill.Pattern]
		}
	}
	for _, c := range fill.Color {
		if c = strings.TrimSpace(c); c != "" {
			out.Colors = append(out.Colors, c)
		}
	}
	return out
}

// rawFillColors returns the unresolved pattern fill colors of a cell style
// as "theme:N" and "indexed:N" references. excelize resolves fill colors
// through the workbook theme and yields nothing when the theme part is
// missing; withRGB adds the literal RGB values for that case.
func rawFillColors(f *excelize.File, styleID int, withRGB bool) []string {
	s := f.Styles
	if s == nil || s.CellXfs == nil || s.Fills == nil || styleID < 0 || styleID >= len(s.CellXfs.Xf) {
		return nil
	}
	fillID := s.CellXfs.Xf[styleID].FillID
	if fillID == nil || *fillID < 0 || *fillID >= len(s.Fills.Fill) {
		return nil
	}
	raw := s.Fills.Fill[*fillID]
	if raw == nil || raw.PatternFill == nil {
		return nil
	}

	var out []string
	add := func(rgb string, indexed int, theme *int) {
		switch {
		case rgb != "":
			if withRGB {
				out = append(out, rgb)
			}
		case theme != nil:
			out = append(out, "theme:"+strconv.Itoa(*theme))
		case indexed > 0:
			out = append(out, "indexed:"+strconv.Itoa(indexed))
		}
	}
	if c := raw.PatternFill.FgColor; c != nil {
		add(c.RGB, c.Indexed, c.Theme)
	}
	if c := raw.PatternFill.BgColor; c != nil {
		add(c.RGB, c.Indexed, c.Theme)
	}
	return out
}
