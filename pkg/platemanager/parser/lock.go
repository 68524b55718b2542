package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LockCandidate is the plate-number cell of a row that starts a plate.
type LockCandidate struct {
	// PlateNumber is the trimmed plate number.
	PlateNumber string
	// Fill is the cell fill, nil when the reader has no style metadata.
	Fill *CellFill
}

// LockDetector decides whether a plate is administratively locked.
type LockDetector interface {
	IsMarkedLocked(cell LockCandidate) bool
}

// DefaultLockColors is the red family used to mark locked plates.
var DefaultLockColors = []string{
	"FF0000", "C00000", "E00000", "CC0000", "B22222", "DC143C",
	"FF3333", "FF5050", "E74C3C", "C0504D", "indexed:2", "indexed:10",
}

// FillLockDetector marks a plate locked when its cell has a solid fill in
// one of the configured colors.
type FillLockDetector struct {
	colors map[string]struct{}
}

// NewFillLockDetector builds a detector for the given colors. Empty input
// falls back to DefaultLockColors.
func NewFillLockDetector(colors []string) *FillLockDetector {
	if len(colors) == 0 {
		colors = DefaultLockColors
	}
	set := make(map[string]struct{}, len(colors))
	for _, c := range colors {
		if key := normalizeColor(c); key != "" {
			set[key] = struct{}{}
		}
	}
	return &FillLockDetector{colors: set}
}

// IsMarkedLocked implements LockDetector.
func (d *FillLockDetector) IsMarkedLocked(cell LockCandidate) bool {
	if d == nil || cell.Fill == nil {
		return false
	}
	if !strings.EqualFold(cell.Fill.Pattern, "solid") {
		return false
	}
	for _, c := range cell.Fill.Colors {
		if _, ok := d.colors[normalizeColor(c)]; ok {
			return true
		}
	}
	return false
}

// normalizeColor turns "#ffc00000", "FFC00000" and "c00000" into "C00000".
// Indexed and theme references are lower-cased and kept as "indexed:N".
func normalizeColor(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return ""
	}
	lower := strings.ToLower(v)
	if strings.HasPrefix(lower, "indexed:") || strings.HasPrefix(lower, "theme:") {
		return strings.ReplaceAll(lower, " ", "")
	}
	v = strings.ToUpper(strings.TrimPrefix(v, "#"))
	if len(v) == 8 {
		v = v[2:]
	}
	return v
}

// ManualLockList marks plates locked by plate number.
type ManualLockList struct {
	plates map[string]struct{}
}

// NewManualLockList builds a list from plate numbers.
func NewManualLockList(plates []string) *ManualLockList {
	set := make(map[string]struct{}, len(plates))
	for _, p := range plates {
		if p = strings.TrimSpace(p); p != "" {
			set[p] = struct{}{}
		}
	}
	return &ManualLockList{plates: set}
}

// IsMarkedLocked implements LockDetector.
func (l *ManualLockList) IsMarkedLocked(cell LockCandidate) bool {
	if l == nil {
		return false
	}
	_, ok := l.plates[strings.TrimSpace(cell.PlateNumber)]
	return ok
}

// Len returns the number of listed plates.
func (l *ManualLockList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.plates)
}

// CompositeLockDetector consults the manual list first and the fill
// detector second. Without fill metadata only the list decides.
type CompositeLockDetector struct {
	Manual *ManualLockList
	Fill   *FillLockDetector
}

// IsMarkedLocked implements LockDetector.
func (c CompositeLockDetector) IsMarkedLocked(cell LockCandidate) bool {
	if c.Manual.IsMarkedLocked(cell) {
		return true
	}
	if cell.Fill == nil {
		return false
	}
	return c.Fill.IsMarkedLocked(cell)
}

// LoadLockedPlates reads plate numbers from a YAML or JSON file. Both a bare
// list and an object with a "locked_plates" list are accepted. A missing
// file yields no plates.
func LoadLockedPlates(path string) ([]string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	data = bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))
	if len(data) == 0 {
		return nil, nil
	}

	var wrapper struct {
		LockedPlates []string `json:"locked_plates" yaml:"locked_plates"`
	}
	var list []string

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if data[0] == '{' {
			err = json.Unmarshal(data, &wrapper)
		} else {
			err = json.Unmarshal(data, &list)
		}
	default:
		var node yaml.Node
		if err = yaml.Unmarshal(data, &node); err == nil && len(node.Content) > 0 {
			if node.Content[0].Kind == yaml.MappingNode {
				err = node.Decode(&wrapper)
			} else {
				err = node.Decode(&list)
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("parse locked plates %s: %w", filepath.Base(path), err)
	}
	if len(wrapper.LockedPlates) > 0 {
		list = wrapper.LockedPlates
	}
	return list, nil
}
