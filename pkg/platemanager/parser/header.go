package parser

import (
	"strings"

	"github.com/szborok/BRK-CNC-ClampingPlateManager/internal/textutil"
	"github.com/szborok/BRK-CNC-ClampingPlateManager/pkg/platemanager/models"
)

// HeaderOptions configures header detection.
type HeaderOptions struct {
	// ScanRows is how many leading rows are inspected.
	ScanRows int
	// DefaultDataStartRow is the zero-based first data row used when no
	// header row is detected.
	DefaultDataStartRow int
	// SimilarityThreshold is the minimum edit-distance similarity for a
	// fuzzy keyword match.
	SimilarityThreshold float64
	// Keywords lists header keywords per field.
	Keywords map[models.Field][]string
}

// DefaultHeaderOptions returns the detection settings for the plate register.
func DefaultHeaderOptions() HeaderOptions {
	return HeaderOptions{
		ScanRows:            5,
		DefaultDataStartRow: 2,
		SimilarityThreshold: 0.7,
		Keywords:            DefaultHeaderKeywords(),
	}
}

// DefaultHeaderKeywords returns Hungarian and English header keywords.
func DefaultHeaderKeywords() map[models.Field][]string {
	return map[models.Field][]string{
		models.FieldPlateNumber:  {"tányér", "tányérszám", "lemez", "plate", "number", "azonosító"},
		models.FieldWorkHistory:  {"munka", "munkaszám", "előzmény", "work", "history", "projekt"},
		models.FieldShelfNumber:  {"polc", "hely", "shelf", "location"},
		models.FieldPreviewImage: {"kép", "előnézet", "image", "preview", "picture"},
		models.FieldBoxSize:      {"doboz", "méret", "box", "size"},
	}
}

// HeaderResolution is the outcome of header detection.
type HeaderResolution struct {
	// Columns is the layout used for grouping. It is always the canonical layout.
	Columns models.ColumnMap
	// DataStartRow is the zero-based first data row.
	DataStartRow int
	// HeaderRow is the zero-based detected header row, or -1.
	HeaderRow int
	// Detected is the heuristic field-to-column mapping of the header row.
	// It is informational only.
	Detected map[models.Field]int
}

// Found reports whether a header row was detected.
func (h HeaderResolution) Found() bool {
	return h.HeaderRow >= 0
}

// ResolveHeader looks for a header row among the first rows. A row matching
// at least two fields counts as the header. The canonical column layout is
// returned regardless; detection only moves the data start row.
func ResolveHeader(rows [][]string, opts HeaderOptions) HeaderResolution {
	opts = opts.withDefaults()
	res := HeaderResolution{
		Columns:      models.CanonicalColumns(),
		DataStartRow: opts.DefaultDataStartRow,
		HeaderRow:    -1,
	}

	limit := min(opts.ScanRows, len(rows))
	for rowIdx := 0; rowIdx < limit; rowIdx++ {
		detected := detectFields(rows[rowIdx], opts)
		if len(detected) >= 2 {
			res.HeaderRow = rowIdx
			res.DataStartRow = rowIdx + 1
			res.Detected = detected
			return res
		}
	}
	return res
}

func (o HeaderOptions) withDefaults() HeaderOptions {
	def := DefaultHeaderOptions()
	if o.ScanRows <= 0 {
		o.ScanRows = def.ScanRows
	}
	if o.DefaultDataStartRow < 0 {
		o.DefaultDataStartRow = def.DefaultDataStartRow
	}
	if o.SimilarityThreshold <= 0 {
		o.SimilarityThreshold = def.SimilarityThreshold
	}
	if len(o.Keywords) == 0 {
		o.Keywords = def.Keywords
	}
	return o
}

// detectFields maps each field to the first cell in row that matches one of
// its keywords. A column is claimed by at most one field.
func detectFields(row []string, opts HeaderOptions) map[models.Field]int {
	detected := make(map[models.Field]int)
	claimed := make(map[int]bool)
	for _, field := range models.Fields {
		keywords := opts.Keywords[field]
		for colIdx, cell := range row {
			if claimed[colIdx] {
				continue
			}
			folded := textutil.Fold(cell)
			if folded == "" {
				continue
			}
			if matchesKeyword(folded, keywords, opts.SimilarityThreshold) {
				detected[field] = colIdx
				claimed[colIdx] = true
				break
			}
		}
	}
	return detected
}

func matchesKeyword(cell string, keywords []string, threshold float64) bool {
	for _, kw := range keywords {
		kw = textutil.Fold(kw)
		if kw == "" {
			continue
		}
		if strings.Contains(cell, kw) {
			return true
		}
		if textutil.Similarity(cell, kw) > threshold {
			return true
		}
	}
	return false
}
