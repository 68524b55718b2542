// Package index assembles the inventory document from matched plates and
// writes it to a new timestamped file.
package index

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/szborok/BRK-CNC-ClampingPlateManager/internal/textutil"
	"github.com/szborok/BRK-CNC-ClampingPlateManager/pkg/platemanager/models"
)

// BuildOptions configures inventory assembly.
type BuildOptions struct {
	// SourceFile is the spreadsheet the plates were read from.
	SourceFile string
	// Worksheet is the worksheet name recorded in every plate's source.
	Worksheet string
	// PreviewPaths overrides a plate's preview image path by plate number,
	// typically with the names produced by CopyPreviewImages.
	PreviewPaths map[string]string
	// Now returns the generation time. Defaults to time.Now.
	Now func() time.Time
	// NewID returns a fresh plate ID. Defaults to a random UUID.
	NewID func() string
}

// DeriveHealth returns locked for locked plates, used for plates with work
// history and new otherwise.
func DeriveHealth(rec models.PlateRecord) models.Health {
	switch {
	case rec.IsLocked:
		return models.HealthLocked
	case len(rec.WorkHistoryEntries) > 0:
		return models.HealthUsed
	default:
		return models.HealthNew
	}
}

// NormalizeWorkOrder returns the work-history index key for a work order.
func NormalizeWorkOrder(order string) string {
	return strings.ToUpper(textutil.CollapseSpace(order))
}

// Build assembles the inventory document. Every plate starts free.
func Build(plates []models.MatchedPlate, opts BuildOptions) models.Inventory {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	newID := uuid.NewString
	if opts.NewID != nil {
		newID = opts.NewID
	}

	inv := models.Inventory{
		Metadata: models.Metadata{
			GeneratedDate: now().UTC(),
			SourceFile:    opts.SourceFile,
			Worksheet:     opts.Worksheet,
			TotalPlates:   len(plates),
		},
		Plates:           make([]models.Plate, 0, len(plates)),
		ModelIndex:       make(map[string][]models.ModelIndexEntry),
		WorkHistoryIndex: make(map[string][]models.WorkHistoryIndexEntry),
	}

	for _, mp := range plates {
		plate := models.Plate{
			ID:                 newID(),
			PlateNumber:        mp.PlateNumber,
			ShelfNumber:        mp.ShelfNumber,
			BoxSize:            mp.BoxSize,
			Health:             DeriveHealth(mp.PlateRecord),
			Occupancy:          models.OccupancyFree,
			IsLocked:           mp.IsLocked,
			ModelFiles:         []string{},
			ModelStatus:        mp.ModelStatus,
			PreviewImage:       previewPath(mp, opts.PreviewPaths),
			WorkHistoryEntries: mp.WorkHistoryEntries,
			ExcelSource: models.ExcelSource{
				Worksheet: opts.Worksheet,
				Rows:      append([]int(nil), mp.SourceRows...),
			},
		}
		if plate.WorkHistoryEntries == nil {
			plate.WorkHistoryEntries = []models.WorkHistoryEntry{}
		}

		if mp.LinkedModel != nil {
			plate.CurrentModelFile = mp.LinkedModel.RelativePath
			inv.Metadata.PlatesWithModels++
		}
		for _, m := range mp.ModelFiles {
			plate.ModelFiles = append(plate.ModelFiles, m.RelativePath)
			inv.ModelIndex[m.RelativePath] = append(inv.ModelIndex[m.RelativePath], models.ModelIndexEntry{
				PlateID:     plate.ID,
				PlateNumber: plate.PlateNumber,
				Primary:     m.RelativePath == plate.CurrentModelFile,
			})
		}

		if len(mp.WorkHistoryEntries) > 0 {
			inv.Metadata.PlatesWithWorkHistory++
		}
		seen := make(map[string]bool)
		for _, entry := range mp.WorkHistoryEntries {
			key := NormalizeWorkOrder(entry.WorkOrder)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			inv.WorkHistoryIndex[key] = append(inv.WorkHistoryIndex[key], models.WorkHistoryIndexEntry{
				PlateID:     plate.ID,
				PlateNumber: plate.PlateNumber,
				ProjectCode: entry.Project(),
			})
		}

		if plate.IsLocked {
			inv.Metadata.LockedPlates++
		}
		inv.Plates = append(inv.Plates, plate)
	}
	return inv
}

func previewPath(mp models.MatchedPlate, overrides map[string]string) string {
	if p, ok := overrides[mp.PlateNumber]; ok {
		return p
	}
	if mp.PreviewImage != nil {
		return mp.PreviewImage.RelativePath
	}
	return mp.PreviewImageRef
}
