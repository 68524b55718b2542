package models

// IssueKind names a per-folder validation problem.
type IssueKind string

const (
	// IssueMissingModel means the folder holds no model file.
	IssueMissingModel IssueKind = "missing_model"
	// IssueMultipleModels means the folder holds more than one model file.
	IssueMultipleModels IssueKind = "multiple_models"
	// IssueMissingImage means the folder holds no preview image.
	IssueMissingImage IssueKind = "missing_image"
	// IssueMultipleImages means the folder holds more than one preview image.
	IssueMultipleImages IssueKind = "multiple_images"
)

// ValidationIssue is one problem found in one asset folder.
type ValidationIssue struct {
	// Kind is the problem type.
	Kind IssueKind `json:"kind"`
	// FolderName is the offending folder.
	FolderName string `json:"folderName"`
	// Detail is a human-readable description.
	Detail string `json:"detail"`
	// Files lists the offending files for multiple-file problems.
	Files []string `json:"files,omitempty"`
}

// ValidationReport summarizes the asset folder validation pass.
type ValidationReport struct {
	// Valid is true when every folder holds exactly one model and one image.
	Valid bool `json:"valid"`
	// TotalFolders is the number of folders scanned.
	TotalFolders int `json:"totalFolders"`
	// ValidFolders is the number of folders without issues.
	ValidFolders int `json:"validFolders"`
	// Issues lists every problem found, grouped by folder in scan order.
	Issues []ValidationIssue `json:"issues"`
}

// InvalidFolders returns each folder with at least one issue, once, in scan order.
func (r ValidationReport) InvalidFolders() []string {
	var out []string
	seen := make(map[string]struct{})
	for _, issue := range r.Issues {
		if _, ok := seen[issue.FolderName]; ok {
			continue
		}
		seen[issue.FolderName] = struct{}{}
		out = append(out, issue.FolderName)
	}
	return out
}

// IssuesFor returns the issues recorded for folder.
func (r ValidationReport) IssuesFor(folder string) []ValidationIssue {
	var out []ValidationIssue
	for _, issue := range r.Issues {
		if issue.FolderName == folder {
			out = append(out, issue)
		}
	}
	return out
}
