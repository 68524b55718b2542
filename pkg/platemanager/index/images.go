package index

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/szborok/BRK-CNC-ClampingPlateManager/internal/fileutil"
	"github.com/szborok/BRK-CNC-ClampingPlateManager/pkg/platemanager/models"
)

// PreviewNames returns the file name each plate's preview image is copied
// to: the sanitized plate number plus the lower-cased image extension.
// Plates without a preview image are left out. Names that collide, ignoring
// case, get a "-2", "-3", ... suffix in plate order.
func PreviewNames(plates []models.MatchedPlate) map[string]string {
	names := make(map[string]string)
	taken := make(map[string]bool)
	for _, mp := range plates {
		if mp.PreviewImage == nil {
			continue
		}
		stem := safeFileName(mp.PlateNumber)
		ext := strings.ToLower(filepath.Ext(mp.PreviewImage.FileName))
		name := stem + ext
		for n := 2; taken[strings.ToLower(name)]; n++ {
			name = stem + "-" + strconv.Itoa(n) + ext
		}
		taken[strings.ToLower(name)] = true
		names[mp.PlateNumber] = name
	}
	return names
}

// ImageStage holds preview images copied into a staging directory next to
// their destination. Nothing appears in the destination until Commit.
type ImageStage struct {
	dir     string
	staging string
	names   []string

	// Bytes is the total size of the staged images.
	Bytes int64
}

// StagePreviewImages copies the preview image of every plate listed in names
// from the asset root into a staging directory beside dir.
func StagePreviewImages(root, dir string, plates []models.MatchedPlate, names map[string]string) (*ImageStage, error) {
	parent := filepath.Dir(dir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return nil, fmt.Errorf("create image directory: %w", err)
	}
	staging, err := os.MkdirTemp(parent, "."+filepath.Base(dir)+"-staging-")
	if err != nil {
		return nil, fmt.Errorf("create image staging directory: %w", err)
	}
	stage := &ImageStage{dir: dir, staging: staging}

	for _, mp := range plates {
		name, ok := names[mp.PlateNumber]
		if !ok || mp.PreviewImage == nil {
			continue
		}
		src := filepath.Join(root, filepath.FromSlash(mp.PreviewImage.RelativePath))
		if err := fileutil.CopyFile(src, filepath.Join(staging, name)); err != nil {
			stage.Discard()
			return nil, fmt.Errorf("copy preview image for plate %s: %w", mp.PlateNumber, err)
		}
		if info, err := os.Stat(src); err == nil {
			stage.Bytes += info.Size()
		}
		stage.names = append(stage.names, name)
	}
	return stage, nil
}

// Len returns the number of staged images.
func (s *ImageStage) Len() int {
	return len(s.names)
}

// Commit moves the staged images into the destination directory, replacing
// files of the same name.
func (s *ImageStage) Commit() error {
	if s.staging == "" {
		return errors.New("image stage already closed")
	}
	defer s.Discard()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create image directory: %w", err)
	}
	for _, name := range s.names {
		if err := os.Rename(filepath.Join(s.staging, name), filepath.Join(s.dir, name)); err != nil {
			return fmt.Errorf("move preview image %s: %w", name, err)
		}
	}
	return nil
}

// Discard removes the staging directory. It is a no-op after Commit.
func (s *ImageStage) Discard() {
	if s == nil || s.staging == "" {
		return
	}
	os.RemoveAll(s.staging)
	s.staging = ""
}

// CopyPreviewImages stages and commits the preview images of plates into
// dir. It returns the copied file name per plate number and the total number
// of bytes copied.
func CopyPreviewImages(root, dir string, plates []models.MatchedPlate) (map[string]string, int64, error) {
	names := PreviewNames(plates)
	stage, err := StagePreviewImages(root, dir, plates, names)
	if err != nil {
		return nil, 0, err
	}
	if err := stage.Commit(); err != nil {
		return nil, 0, err
	}
	return names, stage.Bytes, nil
}

var unsafeNameChars = strings.NewReplacer("/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")

func safeFileName(value string) string {
	return unsafeNameChars.Replace(strings.TrimSpace(value))
}
