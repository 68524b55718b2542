package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWorkbook is a style-free single-sheet workbook read from a CSV export.
type CSVWorkbook struct {
	sheet Worksheet
}

// OpenCSV reads a CSV export. Comma and semicolon delimiters are detected
// from the first line; non-UTF-8 input without a BOM is decoded as ISO-8859-2.
func OpenCSV(path string) (*CSVWorkbook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	decoded, err := decodeText(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.Comma = sniffDelimiter(decoded)

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &CSVWorkbook{sheet: Worksheet{Name: name, Rows: rows}}, nil
}

// SheetNames returns the single sheet name (the file's base name).
func (c *CSVWorkbook) SheetNames() []string {
	return []string{c.sheet.Name}
}

// Sheet returns the CSV rows. It has no fill metadata.
func (c *CSVWorkbook) Sheet(name string) (*Worksheet, error) {
	if name != c.sheet.Name {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	sheet := c.sheet
	return &sheet, nil
}

// Close is a no-op.
func (c *CSVWorkbook) Close() error {
	return nil
}

func decodeText(data []byte) ([]byte, error) {
	if utf8.Valid(data) {
		return bytes.TrimPrefix(data, utf8BOM), nil
	}
	decoded, _, err := transform.Bytes(unicode.BOMOverride(charmap.ISO8859_2.NewDecoder()), data)
	return decoded, err
}

func sniffDelimiter(data []byte) rune {
	line := data
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		line = data[:idx]
	}
	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}
	return ','
}
