package assets

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/szborok/BRK-CNC-ClampingPlateManager/pkg/platemanager/models"
)

var issueLabels = map[models.IssueKind]string{
	models.IssueMissingModel:   "missing model",
	models.IssueMultipleModels: "multiple models",
	models.IssueMissingImage:   "missing image",
	models.IssueMultipleImages: "multiple images",
}

// FormatReport renders the validation outcome for an operator: a summary
// table of failing folders followed by the exact files behind every
// multiple-file problem.
func FormatReport(report models.ValidationReport) string {
	var b strings.Builder
	if report.Valid {
		fmt.Fprintf(&b, "Asset validation passed: %d/%d folders valid\n", report.ValidFolders, report.TotalFolders)
		return b.String()
	}

	invalid := report.InvalidFolders()
	fmt.Fprintf(&b, "Asset validation failed: %d of %d folders have problems\n\n", len(invalid), report.TotalFolders)

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Folder", "Models", "Images", "Problems"})
	for _, folder := range invalid {
		issues := report.IssuesFor(folder)
		modelCount, imageCount := issueCounts(issues)
		labels := make([]string, 0, len(issues))
		for _, issue := range issues {
			labels = append(labels, issueLabels[issue.Kind])
		}
		tw.AppendRow(table.Row{folder, modelCount, imageCount, strings.Join(labels, ", ")})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	b.WriteString(tw.Render())
	b.WriteString("\n")

	for _, folder := range invalid {
		for _, issue := range report.IssuesFor(folder) {
			if len(issue.Files) == 0 {
				continue
			}
			fmt.Fprintf(&b, "\n%s: %s\n", folder, issue.Detail)
			for _, f := range issue.Files {
				fmt.Fprintf(&b, "  - %s\n", f)
			}
		}
	}
	b.WriteString("\nEach folder must contain exactly one model file and one preview image.\n")
	return b.String()
}

// issueCounts renders the model and image counts implied by a folder's
// issues; "1" when the folder had no problem of that kind.
func issueCounts(issues []models.ValidationIssue) (string, string) {
	modelCount, imageCount := "1", "1"
	for _, issue := range issues {
		switch issue.Kind {
		case models.IssueMissingModel:
			modelCount = "0"
		case models.IssueMultipleModels:
			modelCount = strconv.Itoa(len(issue.Files))
		case models.IssueMissingImage:
			imageCount = "0"
		case models.IssueMultipleImages:
			imageCount = strconv.Itoa(len(issue.Files))
		}
	}
	return modelCount, imageCount
}
