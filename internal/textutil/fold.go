package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Fold trims value, composes it to NFC and applies Unicode case folding.
func Fold(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	return cases.Fold().String(norm.NFC.String(trimmed))
}

// CollapseSpace trims value and replaces runs of whitespace with one space.
func CollapseSpace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}
