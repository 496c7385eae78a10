package commands

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/salesprep/salesprep/internal/config"
	"github.com/salesprep/salesprep/internal/pipeline"
	"github.com/salesprep/salesprep/internal/report"
)

func newRunCommand() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Format the sales files in the data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := filepath.Abs(cfgPath)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			cfg, err := config.LoadOrDefault(absPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config %s: %w", cfgPath, err)
			}
			// Relative paths in the config are relative to the config file.
			cfg.Resolve(filepath.Dir(absPath))

			logger := log.New(cmd.ErrOrStderr())
			res, err := pipeline.Run(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), cfg, res)
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", config.FileName, "config file (defaults apply if it does not exist)")

	return cmd
}

func printResult(w io.Writer, cfg *config.Config, res *pipeline.Result) error {
	report.Inputs(w, res.Files)
	if err := report.Preview(w, res.Rows, cfg.Report.PreviewRows); err != nil {
		return fmt.Errorf("printing preview: %w", err)
	}
	report.Statistics(w, res.Summary)
	report.Saved(w, res.OutputPath)
	report.Verification(w, res.Reread, res.Mismatches)
	return nil
}
