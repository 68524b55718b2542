// Package platemanager ingests the clamping plate register and its asset
// folders into a timestamped inventory document.
package platemanager

import (
	"log/slog"
	"time"

	"github.com/szborok/BRK-CNC-ClampingPlateManager/internal/config"
	"github.com/szborok/BRK-CNC-ClampingPlateManager/pkg/platemanager/models"
	"github.com/szborok/BRK-CNC-ClampingPlateManager/pkg/platemanager/parser"
)

// Options configures an ingestion run.
type Options struct {
	// InfoFile is the plate register spreadsheet (.xlsx or .csv).
	InfoFile string
	// ModelsDir holds one folder per plate.
	ModelsDir string
	// OutputDir receives the inventory document.
	OutputDir string
	// ImagesDir receives copies of the preview images. Empty skips copying.
	ImagesDir string
	// SheetName selects the worksheet. Empty selects the first one.
	SheetName string

	Header parser.HeaderOptions

	// ModelExtensions and ImageExtensions classify asset files. Empty lists
	// fall back to the scanner defaults.
	ModelExtensions []string
	ImageExtensions []string

	// RedColors are fill colors marking a plate locked.
	RedColors []string
	// LockedPlates are always locked, whatever their fill.
	LockedPlates []string
	// LockedPlatesFile is an optional YAML or JSON list merged into LockedPlates.
	LockedPlatesFile string

	// Prefix is the output file name prefix.
	Prefix string
	// Pretty indents the output JSON.
	Pretty bool
	// DryRun runs every stage but writes nothing.
	DryRun bool

	// Logger receives progress logs. Nil discards them.
	Logger *slog.Logger
	// Now and NewID override the clock and plate ID source.
	Now   func() time.Time
	NewID func() string
}

// DefaultOptions returns options with default detection settings.
func DefaultOptions() Options {
	return Options{
		Header: parser.DefaultHeaderOptions(),
		Prefix: "plates",
		Pretty: true,
	}
}

// OptionsFromConfig maps a loaded configuration onto ingestion options.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := DefaultOptions()
	if cfg == nil {
		return opts
	}

	opts.InfoFile = cfg.Paths.InfoFile
	opts.ModelsDir = cfg.Paths.ModelsDir
	opts.OutputDir = cfg.Paths.OutputDir
	opts.ImagesDir = cfg.Paths.ImagesDir
	opts.LockedPlatesFile = cfg.Paths.LockedPlatesFile
	opts.SheetName = cfg.Sheet.Name

	opts.Header.ScanRows = cfg.Sheet.HeaderScanRows
	opts.Header.DefaultDataStartRow = cfg.Sheet.DefaultDataStartRow
	opts.Header.SimilarityThreshold = cfg.Sheet.SimilarityThreshold
	overrideKeywords(opts.Header.Keywords, models.FieldPlateNumber, cfg.Columns.PlateNumber)
	overrideKeywords(opts.Header.Keywords, models.FieldWorkHistory, cfg.Columns.WorkHistory)
	overrideKeywords(opts.Header.Keywords, models.FieldShelfNumber, cfg.Columns.ShelfNumber)
	overrideKeywords(opts.Header.Keywords, models.FieldPreviewImage, cfg.Columns.PreviewImage)
	overrideKeywords(opts.Header.Keywords, models.FieldBoxSize, cfg.Columns.BoxSize)

	opts.ModelExtensions = cfg.Assets.ModelExtensions
	opts.ImageExtensions = cfg.Assets.ImageExtensions
	opts.RedColors = cfg.Lock.RedColors
	opts.LockedPlates = cfg.Lock.LockedPlates

	if cfg.Output.Prefix != "" {
		opts.Prefix = cfg.Output.Prefix
	}
	opts.Pretty = cfg.Output.Pretty
	return opts
}

func overrideKeywords(keywords map[models.Field][]string, field models.Field, values []string) {
	if len(values) > 0 {
		keywords[field] = values
	}
}
