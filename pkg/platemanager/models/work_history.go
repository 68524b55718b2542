package models

// WorkHistoryEntry is one parsed segment of a work-history cell.
type WorkHistoryEntry struct {
	// ProjectCode is the single-letter project prefix, nil when the segment
	// did not have the "X: ..." form.
	ProjectCode *string `json:"projectCode"`
	// WorkOrder is the work order reference.
	WorkOrder string `json:"workOrder"`
	// FullEntry is the trimmed segment as written in the sheet.
	FullEntry string `json:"fullEntry"`
}

// Project returns the project code or "" when unset.
func (e WorkHistoryEntry) Project() string {
	if e.ProjectCode == nil {
		return ""
	}
	return *e.ProjectCode
}
