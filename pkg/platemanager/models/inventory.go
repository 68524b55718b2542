package models

import "time"

// Health is the lifecycle condition of a plate.
type Health string

const (
	// HealthNew marks a plate with no recorded work.
	HealthNew Health = "new"
	// HealthUsed marks a plate with work history.
	HealthUsed Health = "used"
	// HealthLocked marks a plate withdrawn from use.
	HealthLocked Health = "locked"
)

// Occupancy is the availability of a plate.
type Occupancy string

const (
	// OccupancyFree marks a plate available for a new job.
	OccupancyFree Occupancy = "free"
	// OccupancyInUse marks a plate mounted for a running job.
	OccupancyInUse Occupancy = "in-use"
)

// Inventory is the document written by one ingestion run.
type Inventory struct {
	// Metadata summarizes the run.
	Metadata Metadata `json:"metadata"`
	// Plates lists the plates in worksheet order.
	Plates []Plate `json:"plates"`
	// ModelIndex maps a model file's relative path to the plates using it.
	ModelIndex map[string][]ModelIndexEntry `json:"modelIndex"`
	// WorkHistoryIndex maps a normalized work order to the plates it ran on.
	WorkHistoryIndex map[string][]WorkHistoryIndexEntry `json:"workHistoryIndex"`
}

// Metadata holds run-level counters.
type Metadata struct {
	GeneratedDate         time.Time `json:"generatedDate"`
	SourceFile            string    `json:"sourceFile,omitempty"`
	Worksheet             string    `json:"worksheet,omitempty"`
	TotalPlates           int       `json:"totalPlates"`
	PlatesWithModels      int       `json:"platesWithModels"`
	PlatesWithWorkHistory int       `json:"platesWithWorkHistory"`
	LockedPlates          int       `json:"lockedPlates"`
}

// Plate is one plate as published in the inventory document.
type Plate struct {
	// ID is an opaque generated identifier.
	ID string `json:"id"`
	// PlateNumber is the identifier from the worksheet.
	PlateNumber string `json:"plateNumber"`
	// ShelfNumber is the shelf location.
	ShelfNumber string `json:"shelfNumber"`
	// BoxSize is the box size annotation.
	BoxSize string `json:"boxSize,omitempty"`
	// Health is derived from lock status and work history.
	Health Health `json:"health"`
	// Occupancy is always free for ingested plates.
	Occupancy Occupancy `json:"occupancy"`
	// IsLocked reports the administrative lock.
	IsLocked bool `json:"isLocked"`
	// CurrentModelFile is the relative path of the primary model, empty if none.
	CurrentModelFile string `json:"currentModelFile"`
	// ModelFiles lists relative paths of every model file for the plate.
	ModelFiles []string `json:"modelFiles"`
	// ModelStatus explains a missing model link.
	ModelStatus string `json:"modelStatus,omitempty"`
	// PreviewImage is the preview image path (copied file name or relative path).
	PreviewImage string `json:"previewImage"`
	// WorkHistoryEntries holds the parsed work history.
	WorkHistoryEntries []WorkHistoryEntry `json:"workHistoryEntries"`
	// ExcelSource locates the plate in the source worksheet.
	ExcelSource ExcelSource `json:"excelSource"`
}

// ExcelSource locates a plate's rows in the source worksheet.
type ExcelSource struct {
	Worksheet string `json:"worksheet"`
	Rows      []int  `json:"rows"`
}

// ModelIndexEntry references a plate from the model index.
type ModelIndexEntry struct {
	PlateID     string `json:"plateId"`
	PlateNumber string `json:"plateNumber"`
	// Primary is true when the file is the plate's current model.
	Primary bool `json:"primary"`
}

// WorkHistoryIndexEntry references a plate from the work-history index.
type WorkHistoryIndexEntry struct {
	PlateID     string `json:"plateId"`
	PlateNumber string `json:"plateNumber"`
	ProjectCode string `json:"projectCode,omitempty"`
}
