// Package models defines data structures for plate inventory ingestion.
package models

// Field names a logical spreadsheet column.
type Field string

const (
	// FieldPlateNumber is the plate identifier column.
	FieldPlateNumber Field = "plateNumber"
	// FieldWorkHistory is the free-text work-history column.
	FieldWorkHistory Field = "workHistory"
	// FieldShelfNumber is the shelf location column.
	FieldShelfNumber Field = "shelfNumber"
	// FieldPreviewImage is the preview image reference column.
	FieldPreviewImage Field = "previewImage"
	// FieldBoxSize is the box size column.
	FieldBoxSize Field = "boxSize"
)

// Fields lists every logical field in canonical column order.
var Fields = []Field{
	FieldPlateNumber,
	FieldWorkHistory,
	FieldShelfNumber,
	FieldPreviewImage,
	FieldBoxSize,
}

// ColumnMap maps logical fields to zero-based column indices.
// The zero value maps nothing; build one with CanonicalColumns.
type ColumnMap struct {
	indices map[Field]int
}

// CanonicalColumns returns the fixed worksheet layout: columns 0-4 hold
// plateNumber, workHistory, shelfNumber, previewImage and boxSize.
func CanonicalColumns() ColumnMap {
	m := make(map[Field]int, len(Fields))
	for i, f := range Fields {
		m[f] = i
	}
	return ColumnMap{indices: m}
}

// Index returns the column index of field and whether it is mapped.
func (c ColumnMap) Index(field Field) (int, bool) {
	idx, ok := c.indices[field]
	return idx, ok
}

// Len returns the number of mapped fields.
func (c ColumnMap) Len() int {
	return len(c.indices)
}

// Cell returns the value of field in row, or "" if unmapped or out of range.
func (c ColumnMap) Cell(row []string, field Field) string {
	idx, ok := c.indices[field]
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// AsMap returns a copy of the mapping, suitable for logging or JSON.
func (c ColumnMap) AsMap() map[Field]int {
	cp := make(map[Field]int, len(c.indices))
	for k, v := range c.indices {
		cp[k] = v
	}
	return cp
}
