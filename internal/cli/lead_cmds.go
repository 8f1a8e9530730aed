package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/leadboard/internal/pipeline"
	"github.com/mesh-intelligence/leadboard/pkg/types"
)

func newMoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <stage>",
		Short: "Move a lead to another stage",
		Long: `Move a lead to any stage. Moving to closed or lost clears its follow-up flag.

Valid stages: new, contacted, qualified, closed, lost

Example:
  leadboard move 0190f6d2-8c1e-7a3b-9f00-5a1b2c3d4e5f qualified`,
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			stage, err := types.ParseStage(args[1])
			if err != nil {
				return err
			}
			return a.withService(func(svc *pipeline.Service) error {
				out, err := svc.Move(args[0], stage)
				if err != nil {
					return err
				}
				return a.printOutcome(cmd.OutOrStdout(), out)
			})
		},
	}
}

func newFollowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "follow <id>",
		Short: "Toggle the follow-up flag of a lead",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(func(svc *pipeline.Service) error {
				out, err := svc.ToggleFollowUp(args[0])
				if err != nil {
					return err
				}
				return a.printOutcome(cmd.OutOrStdout(), out)
			})
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a lead permanently",
		Args:    exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(func(svc *pipeline.Service) error {
				out, err := svc.Remove(args[0])
				if err != nil {
					return err
				}
				return a.printOutcome(cmd.OutOrStdout(), out)
			})
		},
	}
}

func newClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored leads",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(func(svc *pipeline.Service) error {
				if err := svc.Clear(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "All leads deleted.")
				return nil
			})
		},
	}
}

// printOutcome reports a single-lead outcome. A lead that was not found is
// a notice, not an error.
func (a *app) printOutcome(w io.Writer, out pipeline.Outcome) error {
	if a.flags.jsonMode {
		return printJSON(w, struct {
			Found  bool        `json:"found"`
			Notice string      `json:"notice"`
			Lead   *types.Lead `json:"lead,omitempty"`
		}{out.Found, out.Notice, leadOrNil(out)})
	}
	_, err := fmt.Fprintln(w, out.Notice)
	return err
}

func leadOrNil(out pipeline.Outcome) *types.Lead {
	if !out.Found {
		return nil
	}
	return &out.Lead
}
