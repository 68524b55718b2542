package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/szborok/BRK-CNC-ClampingPlateManager/internal/config"
	"github.com/szborok/BRK-CNC-ClampingPlateManager/pkg/platemanager"
	"github.com/szborok/BRK-CNC-ClampingPlateManager/pkg/platemanager/assets"
)

func newValidateCommand(ctx *commandContext) *cobra.Command {
	var modelsFlag string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that every model folder holds one model and one image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			opts := platemanager.OptionsFromConfig(cfg)
			if value := strings.TrimSpace(modelsFlag); value != "" {
				if opts.ModelsDir, err = config.ExpandPath(value); err != nil {
					return err
				}
			}
			if opts.ModelsDir == "" {
				return errors.New("models directory is required (set paths.models_dir or pass --models)")
			}

			scan, err := platemanager.Scan(opts)
			var structural *platemanager.StructuralInputError
			if errors.As(err, &structural) {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, assets.FormatReport(scan.Report))
			for _, name := range scan.StrayFiles {
				fmt.Fprintf(out, "ignored file in models root: %s\n", name)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&modelsFlag, "models", "", "Directory with one folder per plate")
	return cmd
}
