package platemanager

import (
	"errors"
	"fmt"

	"github.com/szborok/BRK-CNC-ClampingPlateManager/pkg/platemanager/index"
	"github.com/szborok/BRK-CNC-ClampingPlateManager/pkg/platemanager/models"
)

// ErrFileNotFound indicates an input path does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrNotDirectory indicates the asset root is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// ErrValidationFailed indicates the asset folders did not pass validation.
var ErrValidationFailed = index.ErrValidationFailed

// StructuralInputError reports an input that cannot be read at all.
type StructuralInputError struct {
	Input string // "info file", "models directory", "worksheet"
	Path  string
	Err   error
}

func (e *StructuralInputError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Input, e.Path, e.Err)
}

func (e *StructuralInputError) Unwrap() error {
	return e.Err
}

// ValidationFailure carries the report of a failed asset validation.
type ValidationFailure struct {
	Report models.ValidationReport
}

func (e *ValidationFailure) Error() string {
	return fmt.Sprintf("%v: %d of %d folders invalid, %d issues",
		ErrValidationFailed, len(e.Report.InvalidFolders()), e.Report.TotalFolders, len(e.Report.Issues))
}

func (e *ValidationFailure) Unwrap() error {
	return ErrValidationFailed
}
