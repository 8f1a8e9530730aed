package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/leadboard/internal/pipeline"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		outDir   string
		toStdout bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all leads to a CSV file",
		Long: `Export writes every lead to leads_YYYY-MM-DD.csv in the output directory.
With no leads stored nothing is written.

Example:
  leadboard export --out ~/Downloads
  leadboard export --stdout > leads.csv`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(func(svc *pipeline.Service) error {
				exp, err := svc.Export()
				if pipeline.IsNothingToExport(err) {
					fmt.Fprintln(cmd.ErrOrStderr(), "No leads to export.")
					return nil
				}
				if err != nil {
					return err
				}

				if toStdout {
					_, err := cmd.OutOrStdout().Write(exp.Data)
					return err
				}

				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return fmt.Errorf("create output directory: %w", err)
				}
				path := filepath.Join(outDir, exp.FileName)
				if err := os.WriteFile(path, exp.Data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "CSV exported (%d leads) to %s\n", exp.Count, path)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "write the CSV to stdout instead of a file")
	return cmd
}
