package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/szborok/BRK-CNC-ClampingPlateManager/internal/config"
	"github.com/szborok/BRK-CNC-ClampingPlateManager/pkg/platemanager"
	"github.com/szborok/BRK-CNC-ClampingPlateManager/pkg/platemanager/assets"
)

type pathFlags struct {
	excel  string
	models string
	output string
	images string
	sheet  string
}

func (f *pathFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.excel, "excel", "", "Plate register spreadsheet (.xlsx or .csv)")
	cmd.Flags().StringVar(&f.models, "models", "", "Directory with one folder per plate")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Directory for the inventory document")
	cmd.Flags().StringVar(&f.images, "images", "", "Directory to copy preview images into")
	cmd.Flags().StringVar(&f.sheet, "sheet", "", "Worksheet name (default: first worksheet)")
}

// apply overrides option paths with the flags that were set.
func (f *pathFlags) apply(opts *platemanager.Options) error {
	for _, item := range []struct {
		value string
		dst   *string
	}{
		{f.excel, &opts.InfoFile},
		{f.models, &opts.ModelsDir},
		{f.output, &opts.OutputDir},
		{f.images, &opts.ImagesDir},
	} {
		value := strings.TrimSpace(item.value)
		if value == "" {
			continue
		}
		expanded, err := config.ExpandPath(value)
		if err != nil {
			return err
		}
		*item.dst = expanded
	}
	if sheet := strings.TrimSpace(f.sheet); sheet != "" {
		opts.SheetName = sheet
	}
	return nil
}

func newIngestCommand(ctx *commandContext) *cobra.Command {
	var (
		paths  pathFlags
		dryRun bool
		pretty bool
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Validate model folders and write a new plate inventory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}

			opts := platemanager.OptionsFromConfig(cfg)
			if err := paths.apply(&opts); err != nil {
				return err
			}
			if cmd.Flags().Changed("pretty") {
				opts.Pretty = pretty
			}
			opts.DryRun = dryRun
			opts.Logger = logger
			if opts.InfoFile == "" || opts.ModelsDir == "" {
				return errors.New("info file and models directory are required (set them in the config or pass --excel and --models)")
			}

			res, err := platemanager.Ingest(opts)
			out := cmd.OutOrStdout()
			if err != nil {
				var failure *platemanager.ValidationFailure
				if errors.As(err, &failure) {
					fmt.Fprintln(out, assets.FormatReport(failure.Report))
				}
				return err
			}
			printIngestSummary(out, res)
			return nil
		},
	}

	paths.register(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run every stage without writing files")
	cmd.Flags().BoolVar(&pretty, "pretty", true, "Indent the JSON output")
	return cmd
}

func printIngestSummary(out io.Writer, res *platemanager.Result) {
	meta := res.Inventory.Metadata
	rows := [][]string{
		{"Worksheet", meta.Worksheet},
		{"Plates", strconv.Itoa(meta.TotalPlates)},
		{"With models", strconv.Itoa(meta.PlatesWithModels)},
		{"With work history", strconv.Itoa(meta.PlatesWithWorkHistory)},
		{"Locked", strconv.Itoa(meta.LockedPlates)},
		{"Model folders", strconv.Itoa(res.Scan.Report.TotalFolders)},
		{"Unused folders", strconv.Itoa(len(res.Matching.UnusedFolders))},
		{"Folder conflicts", strconv.Itoa(len(res.Matching.Conflicts))},
		{"Orphan rows", strconv.Itoa(len(res.Grouping.OrphanRows))},
		{"Header detected", yesNo(res.Header.Found())},
	}
	if res.ImagesCopied > 0 {
		rows = append(rows, []string{"Preview images", fmt.Sprintf("%d (%s)", res.ImagesCopied, humanize.Bytes(uint64(res.ImageBytes)))})
	}
	fmt.Fprintln(out, renderTable([]string{"Inventory", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))

	if res.OutputPath == "" {
		fmt.Fprintln(out, "Dry run: nothing written")
		return
	}
	fmt.Fprintf(out, "Wrote %s (%s)\n", res.OutputPath, humanize.Bytes(uint64(res.OutputBytes)))
}
