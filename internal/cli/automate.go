package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/leadboard/internal/pipeline"
)

func newAutomateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "automate",
		Short: "Flag idle leads for follow-up",
		Long: `Automate flags every lead in stage new or contacted that has not been
updated for at least automation.idle_after (default 48h). Leads already
flagged are not counted again.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(func(svc *pipeline.Service) error {
				n, notice, err := svc.RunAutomation()
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), map[string]any{"flagged": n, "notice": notice})
				}
				fmt.Fprintln(cmd.OutOrStdout(), notice)
				return nil
			})
		},
	}
}
