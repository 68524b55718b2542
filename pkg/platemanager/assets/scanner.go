// Package assets scans the per-plate model folders and validates that each
// holds exactly one 3D model and one preview image.
package assets

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/szborok/BRK-CNC-ClampingPlateManager/pkg/platemanager/models"
)

// DefaultModelExtensions lists the 3D model formats recognized by default.
var DefaultModelExtensions = []string{".step", ".stp", ".stl", ".igs", ".iges", ".x_t", ".sldprt", ".obj", ".3mf"}

// DefaultImageExtensions lists the preview image formats recognized by default.
var DefaultImageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp"}

// Scanner classifies files by extension.
type Scanner struct {
	modelExt map[string]struct{}
	imageExt map[string]struct{}
}

// NewScanner builds a scanner. Empty lists fall back to the defaults.
func NewScanner(modelExtensions, imageExtensions []string) *Scanner {
	if len(modelExtensions) == 0 {
		modelExtensions = DefaultModelExtensions
	}
	if len(imageExtensions) == 0 {
		imageExtensions = DefaultImageExtensions
	}
	return &Scanner{
		modelExt: extensionSet(modelExtensions),
		imageExt: extensionSet(imageExtensions),
	}
}

func extensionSet(exts []string) map[string]struct{} {
	set := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}
	return set
}

// Classify returns the kind of a file name and whether it is an asset at all.
func (s *Scanner) Classify(name string) (models.FileKind, bool) {
	ext := strings.ToLower(path.Ext(name))
	if _, ok := s.modelExt[ext]; ok {
		return models.KindModel, true
	}
	if _, ok := s.imageExt[ext]; ok {
		return models.KindImage, true
	}
	return "", false
}

// FolderScan is the content of one plate folder.
type FolderScan struct {
	// Name is the folder name.
	Name string
	// Models lists model files, sorted by relative path.
	Models []models.ModelFileDescriptor
	// Images lists image files, sorted by relative path.
	Images []models.ModelFileDescriptor
	// Ignored lists relative paths of files with other extensions.
	Ignored []string
}

// Valid reports whether the folder holds exactly one model and one image.
func (f FolderScan) Valid() bool {
	return len(f.Models) == 1 && len(f.Images) == 1
}

// ScanResult is the outcome of a scan.
type ScanResult struct {
	// Folders lists plate folders in name order.
	Folders []FolderScan
	// Descriptors lists every classified file across all folders.
	Descriptors []models.ModelFileDescriptor
	// StrayFiles lists files found directly in the root.
	StrayFiles []string
	// Report is the validation outcome.
	Report models.ValidationReport
}

// Scan walks every immediate subdirectory of fsys, collects its files
// recursively and validates every folder. Hidden entries are skipped.
func (s *Scanner) Scan(fsys fs.FS) (ScanResult, error) {
	var result ScanResult

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return result, fmt.Errorf("read asset root: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if isHidden(name) {
			continue
		}
		if !entry.IsDir() {
			result.StrayFiles = append(result.StrayFiles, name)
			continue
		}
		folder, err := s.scanFolder(fsys, name)
		if err != nil {
			return result, err
		}
		result.Folders = append(result.Folders, folder)
		result.Descriptors = append(result.Descriptors, folder.Models...)
		result.Descriptors = append(result.Descriptors, folder.Images...)
	}

	result.Report = Validate(result.Folders)
	return result, nil
}

func (s *Scanner) scanFolder(fsys fs.FS, name string) (FolderScan, error) {
	folder := FolderScan{Name: name}
	err := fs.WalkDir(fsys, name, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != name && isHidden(d.Name()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		kind, ok := s.Classify(d.Name())
		if !ok {
			folder.Ignored = append(folder.Ignored, p)
			return nil
		}
		desc := models.ModelFileDescriptor{
			FolderName:   name,
			FileName:     d.Name(),
			RelativePath: p,
			Kind:         kind,
		}
		if kind == models.KindModel {
			folder.Models = append(folder.Models, desc)
		} else {
			folder.Images = append(folder.Images, desc)
		}
		return nil
	})
	if err != nil {
		return folder, fmt.Errorf("scan folder %q: %w", name, err)
	}
	sortDescriptors(folder.Models)
	sortDescriptors(folder.Images)
	return folder, nil
}

func sortDescriptors(d []models.ModelFileDescriptor) {
	sort.Slice(d, func(i, j int) bool { return d[i].RelativePath < d[j].RelativePath })
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// Validate checks every folder and records all problems.
func Validate(folders []FolderScan) models.ValidationReport {
	report := models.ValidationReport{
		TotalFolders: len(folders),
		Issues:       []models.ValidationIssue{},
	}
	for _, folder := range folders {
		issues := folderIssues(folder)
		if len(issues) == 0 {
			report.ValidFolders++
			continue
		}
		report.Issues = append(report.Issues, issues...)
	}
	report.Valid = len(report.Issues) == 0
	return report
}

func folderIssues(folder FolderScan) []models.ValidationIssue {
	var issues []models.ValidationIssue
	switch n := len(folder.Models); {
	case n == 0:
		issues = append(issues, models.ValidationIssue{
			Kind:       models.IssueMissingModel,
			FolderName: folder.Name,
			Detail:     "no 3D model file found",
		})
	case n > 1:
		issues = append(issues, models.ValidationIssue{
			Kind:       models.IssueMultipleModels,
			FolderName: folder.Name,
			Detail:     fmt.Sprintf("%d model files found, expected 1", n),
			Files:      fileNames(folder.Models),
		})
	}
	switch n := len(folder.Images); {
	case n == 0:
		issues = append(issues, models.ValidationIssue{
			Kind:       models.IssueMissingImage,
			FolderName: folder.Name,
			Detail:     "no preview image found",
		})
	case n > 1:
		issues = append(issues, models.ValidationIssue{
			Kind:       models.IssueMultipleImages,
			FolderName: folder.Name,
			Detail:     fmt.Sprintf("%d image files found, expected 1", n),
			Files:      fileNames(folder.Images),
		})
	}
	return issues
}

func fileNames(d []models.ModelFileDescriptor) []string {
	out := make([]string, len(d))
	for i, desc := range d {
		out[i] = desc.RelativePath
	}
	return out
}
