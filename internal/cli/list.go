package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/leadboard/internal/pipeline"
	"github.com/mesh-intelligence/leadboard/pkg/types"
)

func newListCmd(a *app) *cobra.Command {
	var stageFlag string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "board"},
		Short:   "Show leads grouped by stage",
		Long: `List shows every lead grouped into one section per stage, newest first.

Example:
  leadboard list
  leadboard list --stage contacted
  leadboard list --json`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			var only types.Stage
			if stageFlag != "" {
				s, err := types.ParseStage(stageFlag)
				if err != nil {
					return err
				}
				only = s
			}
			return a.withService(func(svc *pipeline.Service) error {
				c, err := svc.List()
				if err != nil {
					return err
				}
				if only != "" {
					c = filterStage(c, only)
				}
				if a.flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), c)
				}
				renderBoard(cmd.OutOrStdout(), c, only)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&stageFlag, "stage", "", "show only this stage")
	return cmd
}

func filterStage(c types.Collection, stage types.Stage) types.Collection {
	out := types.Collection{}
	for _, l := range c {
		if l.Stage == stage {
			out = append(out, l)
		}
	}
	return out
}

// renderBoard prints one section per stage. When only is set just that
// stage is shown. Leads with an unrecognized stage are listed last.
func renderBoard(w io.Writer, c types.Collection, only types.Stage) {
	p := newPalette(w)
	stages := types.Stages
	if only != "" {
		stages = []types.Stage{only}
	}

	groups := make(map[types.Stage]types.Collection)
	var other types.Collection
	for _, l := range c {
		if l.Stage.Valid() {
			groups[l.Stage] = append(groups[l.Stage], l)
		} else {
			other = append(other, l)
		}
	}

	for i, stage := range stages {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, p.section(fmt.Sprintf("%s (%d)", stage, len(groups[stage]))))
		renderLeads(w, p, groups[stage])
	}
	if only == "" && len(other) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, p.section(fmt.Sprintf("other (%d)", len(other))))
		renderLeads(w, p, other)
	}
}

func renderLeads(w io.Writer, p palette, c types.Collection) {
	if len(c) == 0 {
		fmt.Fprintln(w, p.dim.Render("(empty)"))
		return
	}
	rows := make([][]string, 0, len(c))
	for _, l := range c {
		badge := p.ok.Render("OK")
		if l.FollowUp {
			badge = p.warn.Render("FOLLOW-UP")
		}
		rows = append(rows, []string{l.ID, l.Name, l.Phone, l.Interest, badge, l.UpdatedAt.String()})
	}
	fmt.Fprint(w, p.table([]string{"ID", "NAME", "PHONE", "INTEREST", "STATUS", "UPDATED"}, rows))
}
