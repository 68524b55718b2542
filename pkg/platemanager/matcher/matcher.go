// Package matcher links plate records to asset folders by exact name.
//
// A plate links to the folder whose name is byte-for-byte equal to its plate
// number. There is no normalization, prefix or substring matching and no
// shelf-based fallback: plate "12" never links to folder "12A".
package matcher

import (
	"fmt"
	"sort"

	"github.com/szborok/BRK-CNC-ClampingPlateManager/pkg/platemanager/models"
)

// Conflict records a folder claimed by more than one plate.
type Conflict struct {
	// FolderName is the contested folder.
	FolderName string `json:"folderName"`
	// WinnerRow is the first worksheet row of the plate that kept the link.
	WinnerRow int `json:"winnerRow"`
	// RejectedRow is the first worksheet row of the plate left unlinked.
	RejectedRow int `json:"rejectedRow"`
}

// Result is the outcome of matching.
type Result struct {
	// Plates holds one entry per input record, in input order.
	Plates []models.MatchedPlate
	// Linked counts plates with a linked model.
	Linked int
	// Conflicts lists folders claimed more than once.
	Conflicts []Conflict
	// UnusedFolders lists folders no plate linked to, in name order.
	UnusedFolders []string
}

type folderGroup struct {
	models []models.ModelFileDescriptor
	images []models.ModelFileDescriptor
}

// Match links every record to at most one folder. When two records carry the
// same plate number the first keeps the folder and the later one is left
// unlinked with a conflict status.
func Match(records []models.PlateRecord, descriptors []models.ModelFileDescriptor) Result {
	groups := make(map[string]*folderGroup)
	for _, d := range descriptors {
		g, ok := groups[d.FolderName]
		if !ok {
			g = &folderGroup{}
			groups[d.FolderName] = g
		}
		switch d.Kind {
		case models.KindModel:
			g.models = append(g.models, d)
		case models.KindImage:
			g.images = append(g.images, d)
		}
	}
	for _, g := range groups {
		sortByPath(g.models)
		sortByPath(g.images)
	}

	result := Result{Plates: make([]models.MatchedPlate, 0, len(records))}
	claimedBy := make(map[string]int)

	for _, rec := range records {
		mp := models.MatchedPlate{PlateRecord: rec}
		g, ok := groups[rec.PlateNumber]
		switch {
		case !ok:
			mp.ModelStatus = fmt.Sprintf("no model folder found for plate %s", rec.PlateNumber)
		case claimed(claimedBy, rec.PlateNumber):
			winner := claimedBy[rec.PlateNumber]
			mp.ModelStatus = fmt.Sprintf("model folder %s already linked to the plate at row %d", rec.PlateNumber, winner)
			result.Conflicts = append(result.Conflicts, Conflict{
				FolderName:  rec.PlateNumber,
				WinnerRow:   winner,
				RejectedRow: firstRow(rec),
			})
		case len(g.models) == 0:
			claimedBy[rec.PlateNumber] = firstRow(rec)
			mp.ModelStatus = fmt.Sprintf("model folder %s has no model file", rec.PlateNumber)
			mp.PreviewImage = first(g.images)
		default:
			claimedBy[rec.PlateNumber] = firstRow(rec)
			linked := g.models[0]
			mp.LinkedModel = &linked
			mp.ModelFiles = append([]models.ModelFileDescriptor(nil), g.models...)
			mp.PreviewImage = first(g.images)
			result.Linked++
		}
		result.Plates = append(result.Plates, mp)
	}

	for name := range groups {
		if _, ok := claimedBy[name]; !ok {
			result.UnusedFolders = append(result.UnusedFolders, name)
		}
	}
	sort.Strings(result.UnusedFolders)
	return result
}

func claimed(claimedBy map[string]int, folder string) bool {
	_, ok := claimedBy[folder]
	return ok
}

func firstRow(rec models.PlateRecord) int {
	if len(rec.SourceRows) == 0 {
		return 0
	}
	return rec.SourceRows[0]
}

func first(d []models.ModelFileDescriptor) *models.ModelFileDescriptor {
	if len(d) == 0 {
		return nil
	}
	cp := d[0]
	return &cp
}

func sortByPath(d []models.ModelFileDescriptor) {
	sort.SliceStable(d, func(i, j int) bool { return d[i].RelativePath < d[j].RelativePath })
}
