package platemanager

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/szborok/BRK-CNC-ClampingPlateManager/internal/logging"
	"github.com/szborok/BRK-CNC-ClampingPlateManager/pkg/platemanager/assets"
	"github.com/szborok/BRK-CNC-ClampingPlateManager/pkg/platemanager/index"
	"github.com/szborok/BRK-CNC-ClampingPlateManager/pkg/platemanager/matcher"
	"github.com/szborok/BRK-CNC-ClampingPlateManager/pkg/platemanager/models"
	"github.com/szborok/BRK-CNC-ClampingPlateManager/pkg/platemanager/parser"
)

// Result is the outcome of a successful ingestion run.
type Result struct {
	Inventory models.Inventory
	// OutputPath is the written document. Empty on a dry run.
	OutputPath  string
	OutputBytes int64

	Header   parser.HeaderResolution
	Grouping parser.GroupResult
	Scan     assets.ScanResult
	Matching matcher.Result

	// ImagesCopied and ImageBytes describe the preview image copy.
	ImagesCopied int
	ImageBytes   int64
}

// Report returns the asset validation report.
func (r *Result) Report() models.ValidationReport {
	return r.Scan.Report
}

// Ingest reads the plate register, validates the asset folders, links plates
// to their folders and writes a new inventory document. Nothing is written
// when any input is unreadable or validation fails.
func Ingest(opts Options) (*Result, error) {
	logger := logging.WithComponent(opts.Logger, "ingest")
	started := time.Now()

	if err := checkInputs(opts); err != nil {
		return nil, err
	}

	wb, sheet, err := readSheet(opts.InfoFile, opts.SheetName)
	if err != nil {
		return nil, err
	}
	defer wb.Close()
	logger.Info("worksheet loaded", "file", opts.InfoFile, "worksheet", sheet.Name, "rows", len(sheet.Rows), "styles", sheet.HasStyles())

	res := &Result{}
	res.Header = parser.ResolveHeader(sheet.Rows, opts.Header)
	if res.Header.Found() {
		logger.Debug("header row detected", "row", res.Header.HeaderRow+1, "fields", len(res.Header.Detected), "columns", res.Header.Columns.AsMap())
	} else {
		logger.Warn("no header row detected, using default layout", "data_start_row", res.Header.DataStartRow+1)
	}

	detector, err := lockDetector(opts)
	if err != nil {
		return nil, err
	}
	res.Grouping, err = parser.GroupRows(sheet, res.Header, detector)
	if err != nil {
		return nil, fmt.Errorf("group rows: %w", err)
	}
	for _, w := range res.Grouping.Warnings {
		logger.Warn(w.Message, "row", w.Row, "plate", w.PlateNumber)
	}
	logger.Info("plates grouped", "plates", len(res.Grouping.Records), "orphan_rows", len(res.Grouping.OrphanRows))

	scan, err := scanAssets(opts)
	if err != nil {
		return nil, err
	}
	res.Scan = scan
	if !scan.Report.Valid {
		logger.Error("asset validation failed", "folders", scan.Report.TotalFolders, "issues", len(scan.Report.Issues))
		return nil, &ValidationFailure{Report: scan.Report}
	}
	logger.Info("asset folders valid", "folders", scan.Report.TotalFolders, "stray_files", len(scan.StrayFiles))

	res.Matching = matcher.Match(res.Grouping.Records, scan.Descriptors)
	for _, c := range res.Matching.Conflicts {
		logger.Warn("model folder claimed twice", "folder", c.FolderName, "winner_row", c.WinnerRow, "rejected_row", c.RejectedRow)
	}
	logger.Info("plates matched", "linked", res.Matching.Linked, "unused_folders", len(res.Matching.UnusedFolders))

	// Images are staged beside ImagesDir and only moved in once the document
	// is written, so a failed run leaves no output behind.
	var (
		previews map[string]string
		stage    *index.ImageStage
	)
	if opts.ImagesDir != "" {
		previews = index.PreviewNames(res.Matching.Plates)
		if !opts.DryRun {
			stage, err = index.StagePreviewImages(opts.ModelsDir, opts.ImagesDir, res.Matching.Plates, previews)
			if err != nil {
				return nil, err
			}
			defer stage.Discard()
		}
	}

	res.Inventory = index.Build(res.Matching.Plates, index.BuildOptions{
		SourceFile:   filepath.Base(opts.InfoFile),
		Worksheet:    sheet.Name,
		PreviewPaths: previews,
		Now:          opts.Now,
		NewID:        opts.NewID,
	})

	if opts.DryRun {
		logger.Info("dry run, inventory not written", "plates", res.Inventory.Metadata.TotalPlates)
		return res, nil
	}

	writer := &index.Writer{Dir: opts.OutputDir, Prefix: opts.Prefix, Pretty: opts.Pretty, Now: opts.Now}
	res.OutputPath, err = writer.Write(res.Inventory, scan.Report)
	if err != nil {
		return nil, err
	}
	if info, err := os.Stat(res.OutputPath); err == nil {
		res.OutputBytes = info.Size()
	}
	if stage != nil {
		if err := stage.Commit(); err != nil {
			os.Remove(res.OutputPath)
			return nil, fmt.Errorf("publish preview images: %w", err)
		}
		res.ImagesCopied, res.ImageBytes = stage.Len(), stage.Bytes
		logger.Info("preview images copied", "dir", opts.ImagesDir, "images", res.ImagesCopied)
	}
	logger.Info("inventory written", "path", res.OutputPath, "plates", res.Inventory.Metadata.TotalPlates, "elapsed", time.Since(started).Round(time.Millisecond))
	return res, nil
}

// Scan validates the asset folders without reading the plate register.
// An invalid report is returned as a ValidationFailure alongside the scan.
func Scan(opts Options) (assets.ScanResult, error) {
	if err := checkDir(opts.ModelsDir); err != nil {
		return assets.ScanResult{}, err
	}
	scan, err := scanAssets(opts)
	if err != nil {
		return scan, err
	}
	if !scan.Report.Valid {
		return scan, &ValidationFailure{Report: scan.Report}
	}
	return scan, nil
}

func checkInputs(opts Options) error {
	if _, err := os.Stat(opts.InfoFile); err != nil {
		return &StructuralInputError{Input: "info file", Path: opts.InfoFile, Err: statError(err)}
	}
	return checkDir(opts.ModelsDir)
}

func checkDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return &StructuralInputError{Input: "models directory", Path: dir, Err: statError(err)}
	}
	if !info.IsDir() {
		return &StructuralInputError{Input: "models directory", Path: dir, Err: ErrNotDirectory}
	}
	return nil
}

func statError(err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return ErrFileNotFound
	}
	return err
}

// readSheet opens the register and loads one worksheet. Fills are read
// lazily, so the workbook stays open until the caller closes it.
func readSheet(path, name string) (parser.Workbook, *parser.Worksheet, error) {
	wb, err := parser.Open(path)
	if err != nil {
		return nil, nil, &StructuralInputError{Input: "info file", Path: path, Err: err}
	}

	if name == "" {
		names := wb.SheetNames()
		if len(names) == 0 {
			wb.Close()
			return nil, nil, &StructuralInputError{Input: "worksheet", Path: path, Err: parser.ErrSheetNotFound}
		}
		name = names[0]
	}
	sheet, err := wb.Sheet(name)
	if err != nil {
		wb.Close()
		return nil, nil, &StructuralInputError{Input: "worksheet", Path: name, Err: err}
	}
	return wb, sheet, nil
}

func lockDetector(opts Options) (parser.LockDetector, error) {
	fromFile, err := parser.LoadLockedPlates(opts.LockedPlatesFile)
	if err != nil {
		return nil, &StructuralInputError{Input: "locked plates file", Path: opts.LockedPlatesFile, Err: err}
	}
	plates := append(append([]string(nil), opts.LockedPlates...), fromFile...)
	return parser.CompositeLockDetector{
		Manual: parser.NewManualLockList(plates),
		Fill:   parser.NewFillLockDetector(opts.RedColors),
	}, nil
}

func scanAssets(opts Options) (assets.ScanResult, error) {
	scanner := assets.NewScanner(opts.ModelExtensions, opts.ImageExtensions)
	scan, err := scanner.Scan(os.DirFS(opts.ModelsDir))
	if err != nil {
		return scan, &StructuralInputError{Input: "models directory", Path: opts.ModelsDir, Err: err}
	}
	return scan, nil
}
