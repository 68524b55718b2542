package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/szborok/BRK-CNC-ClampingPlateManager/pkg/platemanager/models"
)

// ErrBuilderSealed is returned when a sealed plate record is written to.
var ErrBuilderSealed = errors.New("plate record already sealed")

// GroupWarning is a non-fatal grouping diagnostic.
type GroupWarning struct {
	// Row is the 1-based worksheet row.
	Row int `json:"row"`
	// PlateNumber is the plate concerned.
	PlateNumber string `json:"plateNumber"`
	// Message describes the problem.
	Message string `json:"message"`
}

// GroupResult is the outcome of grouping a worksheet.
type GroupResult struct {
	// Records holds one record per distinct plate number, in first-appearance order.
	Records []models.PlateRecord
	// OrphanRows lists 1-based rows with data but no plate to attach to.
	OrphanRows []int
	// Warnings holds duplicate-plate diagnostics.
	Warnings []GroupWarning
}

// plateBuilder accumulates one plate while its continuation rows are read.
type plateBuilder struct {
	record models.PlateRecord
	sealed bool
}

func newPlateBuilder(plateNumber string, row int) *plateBuilder {
	return &plateBuilder{record: models.PlateRecord{
		PlateNumber: plateNumber,
		SourceRows:  []int{row},
	}}
}

func (b *plateBuilder) setLocked(locked bool) error {
	if b.sealed {
		return ErrBuilderSealed
	}
	b.record.IsLocked = locked
	return nil
}

func (b *plateBuilder) setBoxSize(value string) error {
	if b.sealed {
		return ErrBuilderSealed
	}
	if b.record.BoxSize == "" {
		b.record.BoxSize = value
	}
	return nil
}

// backfill sets shelf and preview values that are still empty.
func (b *plateBuilder) backfill(shelf, preview string) error {
	if b.sealed {
		return ErrBuilderSealed
	}
	if b.record.ShelfNumber == "" {
		b.record.ShelfNumber = shelf
	}
	if b.record.PreviewImageRef == "" {
		b.record.PreviewImageRef = preview
	}
	return nil
}

func (b *plateBuilder) addWorkHistory(text string) error {
	if b.sealed {
		return ErrBuilderSealed
	}
	b.record.WorkHistoryEntries = append(b.record.WorkHistoryEntries, TokenizeWorkHistory(text)...)
	return nil
}

func (b *plateBuilder) addRow(row int) error {
	if b.sealed {
		return ErrBuilderSealed
	}
	b.record.SourceRows = append(b.record.SourceRows, row)
	return nil
}

// seal closes the builder and returns the finished record.
func (b *plateBuilder) seal() models.PlateRecord {
	b.sealed = true
	rec := b.record
	rec.SourceRows = append([]int(nil), b.record.SourceRows...)
	rec.WorkHistoryEntries = append([]models.WorkHistoryEntry(nil), b.record.WorkHistoryEntries...)
	return rec
}

// rowCells is one worksheet row projected onto the logical fields.
type rowCells struct {
	plate, history, shelf, preview, box string
}

func (r rowCells) empty() bool {
	return r.plate == "" && r.history == "" && r.shelf == "" && r.preview == "" && r.box == ""
}

func projectRow(row []string, cols models.ColumnMap) rowCells {
	return rowCells{
		plate:   strings.TrimSpace(cols.Cell(row, models.FieldPlateNumber)),
		history: strings.TrimSpace(cols.Cell(row, models.FieldWorkHistory)),
		shelf:   strings.TrimSpace(cols.Cell(row, models.FieldShelfNumber)),
		preview: strings.TrimSpace(cols.Cell(row, models.FieldPreviewImage)),
		box:     strings.TrimSpace(cols.Cell(row, models.FieldBoxSize)),
	}
}

// GroupRows walks the worksheet from the resolved data start row and groups
// each plate-number row with the continuation rows below it. Lock status is
// detected once per plate, on its first row.
func GroupRows(sheet *Worksheet, res HeaderResolution, detector LockDetector) (GroupResult, error) {
	var (
		result GroupResult
		active *plateBuilder
		sealed []models.PlateRecord
	)
	if sheet == nil {
		return result, nil
	}

	plateCol, _ := res.Columns.Index(models.FieldPlateNumber)
	emit := func() {
		if active != nil {
			sealed = append(sealed, active.seal())
			active = nil
		}
	}

	for rowIdx := max(res.DataStartRow, 0); rowIdx < len(sheet.Rows); rowIdx++ {
		cells := projectRow(sheet.Rows[rowIdx], res.Columns)
		if cells.empty() {
			continue
		}
		rowNum := rowIdx + 1

		if cells.plate != "" {
			emit()
			active = newPlateBuilder(cells.plate, rowNum)
			locked := false
			if detector != nil {
				locked = detector.IsMarkedLocked(LockCandidate{
					PlateNumber: cells.plate,
					Fill:        sheet.Fill(rowIdx, plateCol),
				})
			}
			if err := seedBuilder(active, cells, locked); err != nil {
				return result, fmt.Errorf("row %d: %w", rowNum, err)
			}
			continue
		}

		if active == nil {
			result.OrphanRows = append(result.OrphanRows, rowNum)
			continue
		}
		if err := continueBuilder(active, cells, rowNum); err != nil {
			return result, fmt.Errorf("row %d: %w", rowNum, err)
		}
	}
	emit()

	result.Records, result.Warnings = mergeDuplicates(sealed)
	return result, nil
}

func seedBuilder(b *plateBuilder, cells rowCells, locked bool) error {
	if err := b.setLocked(locked); err != nil {
		return err
	}
	if err := b.setBoxSize(cells.box); err != nil {
		return err
	}
	if err := b.backfill(cells.shelf, cells.preview); err != nil {
		return err
	}
	return b.addWorkHistory(cells.history)
}

func continueBuilder(b *plateBuilder, cells rowCells, rowNum int) error {
	if err := b.addRow(rowNum); err != nil {
		return err
	}
	if cells.history != "" {
		if err := b.addWorkHistory(cells.history); err != nil {
			return err
		}
	}
	return b.backfill(cells.shelf, cells.preview)
}

// mergeDuplicates folds later records with an already seen plate number into
// the first one. Empty fields of the first record are filled from the later
// record; a lock on either marks the merged plate locked.
func mergeDuplicates(records []models.PlateRecord) ([]models.PlateRecord, []GroupWarning) {
	var (
		out      []models.PlateRecord
		warnings []GroupWarning
	)
	position := make(map[string]int, len(records))
	for _, rec := range records {
		idx, seen := position[rec.PlateNumber]
		if !seen {
			position[rec.PlateNumber] = len(out)
			out = append(out, rec)
			continue
		}

		first := out[idx]
		warnings = append(warnings, GroupWarning{
			Row:         rec.SourceRows[0],
			PlateNumber: rec.PlateNumber,
			Message:     fmt.Sprintf("plate %s repeats row %d; rows merged into the first occurrence", rec.PlateNumber, first.SourceRows[0]),
		})

		merged := first
		merged.SourceRows = append(append([]int(nil), first.SourceRows...), rec.SourceRows...)
		merged.WorkHistoryEntries = append(append([]models.WorkHistoryEntry(nil), first.WorkHistoryEntries...), rec.WorkHistoryEntries...)
		merged.IsLocked = first.IsLocked || rec.IsLocked
		if merged.ShelfNumber == "" {
			merged.ShelfNumber = rec.ShelfNumber
		}
		if merged.PreviewImageRef == "" {
			merged.PreviewImageRef = rec.PreviewImageRef
		}
		if merged.BoxSize == "" {
			merged.BoxSize = rec.BoxSize
		}
		out[idx] = merged
	}
	return out, warnings
}
