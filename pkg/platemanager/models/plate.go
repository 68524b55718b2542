package models

// PlateRecord is the logical record reconstructed for one plate from one or
// more consecutive worksheet rows.
type PlateRecord struct {
	// PlateNumber is the plate identifier (required).
	PlateNumber string `json:"plateNumber"`
	// ShelfNumber is the shelf location.
	ShelfNumber string `json:"shelfNumber"`
	// BoxSize is the box size annotation.
	BoxSize string `json:"boxSize,omitempty"`
	// PreviewImageRef is the preview image reference written in the sheet.
	PreviewImageRef string `json:"previewImageRef,omitempty"`
	// IsLocked reports whether the plate is administratively locked.
	IsLocked bool `json:"isLocked"`
	// WorkHistoryEntries holds the parsed work history in sheet order.
	WorkHistoryEntries []WorkHistoryEntry `json:"workHistoryEntries"`
	// SourceRows lists the 1-based worksheet rows that make up the record.
	// The rows of one block are contiguous; a plate number repeated later in
	// the sheet is merged in, so the list may then have gaps.
	SourceRows []int `json:"sourceRows"`
}

// MatchedPlate is a PlateRecord linked (or not) to its asset folder.
type MatchedPlate struct {
	PlateRecord
	// LinkedModel is the primary model file, nil when no folder matched.
	LinkedModel *ModelFileDescriptor `json:"linkedModel"`
	// ModelFiles lists every model file found in the matched folder.
	ModelFiles []ModelFileDescriptor `json:"modelFiles,omitempty"`
	// PreviewImage is the image file found in the matched folder.
	PreviewImage *ModelFileDescriptor `json:"previewImage,omitempty"`
	// ModelStatus explains why LinkedModel is nil.
	ModelStatus string `json:"modelStatus,omitempty"`
}
