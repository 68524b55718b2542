package index

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/szborok/BRK-CNC-ClampingPlateManager/internal/fileutil"
	"github.com/szborok/BRK-CNC-ClampingPlateManager/pkg/platemanager/models"
)

// ErrValidationFailed is returned by Writer.Write when asset validation did
// not pass. Nothing is written in that case.
var ErrValidationFailed = errors.New("asset validation failed")

const (
	fileTimeLayout  = "20060102T150405.000000000Z"
	maxNameAttempts = 100
)

// Writer persists inventory documents. Every call creates a new file.
type Writer struct {
	// Dir is the output directory; it is created if missing.
	Dir string
	// Prefix is the file name prefix. Defaults to "plates".
	Prefix string
	// Pretty indents the JSON output.
	Pretty bool
	// Now returns the time embedded in the file name. Defaults to time.Now.
	Now func() time.Time
}

// FileName returns the output file name for t.
func (w *Writer) FileName(t time.Time) string {
	prefix := w.Prefix
	if prefix == "" {
		prefix = "plates"
	}
	return fmt.Sprintf("%s-%s.json", prefix, t.UTC().Format(fileTimeLayout))
}

// Write serializes inv to a new file and returns its path. It refuses to
// write when report is not valid, and never overwrites an existing file.
func (w *Writer) Write(inv models.Inventory, report models.ValidationReport) (string, error) {
	if !report.Valid {
		return "", ErrValidationFailed
	}

	var (
		data []byte
		err  error
	)
	if w.Pretty {
		data, err = json.MarshalIndent(inv, "", "  ")
	} else {
		data, err = json.Marshal(inv)
	}
	if err != nil {
		return "", fmt.Errorf("encode inventory: %w", err)
	}

	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	f, err := fileutil.CreateExclusive(w.Dir, w.FileName(now()), maxNameAttempts)
	if err != nil {
		return "", fmt.Errorf("create output file: %w", err)
	}
	path := f.Name()

	if _, err := f.Write(append(data, '\n')); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}
