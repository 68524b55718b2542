package parser

import (
	"regexp"
	"strings"

	"github.com/szborok/BRK-CNC-ClampingPlateManager/pkg/platemanager/models"
)

var projectEntryRe = regexp.MustCompile(`^([A-Z]):\s*(.+)$`)

// TokenizeWorkHistory splits a work-history cell on commas and semicolons.
// Segments of the form "X: order" carry project code X; anything else is
// kept whole as the work order. Blank segments are dropped.
func TokenizeWorkHistory(text string) []models.WorkHistoryEntry {
	segments := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';'
	})

	var entries []models.WorkHistoryEntry
	for _, segment := range segments {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		if m := projectEntryRe.FindStringSubmatch(segment); m != nil {
			code := m[1]
			entries = append(entries, models.WorkHistoryEntry{
				ProjectCode: &code,
				WorkOrder:   strings.TrimSpace(m[2]),
				FullEntry:   segment,
			})
			continue
		}
		entries = append(entries, models.WorkHistoryEntry{
			WorkOrder: segment,
			FullEntry: segment,
		})
	}
	return entries
}
