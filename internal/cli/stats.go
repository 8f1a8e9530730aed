package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/leadboard/internal/pipeline"
	"github.com/mesh-intelligence/leadboard/pkg/leads"
	"github.com/mesh-intelligence/leadboard/pkg/types"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show lead counts per stage",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(func(svc *pipeline.Service) error {
				s, err := svc.Stats()
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), s)
				}
				renderStats(cmd.OutOrStdout(), s)
				return nil
			})
		},
	}
}

// stageLabels names the stages in the stats table.
var stageLabels = map[types.Stage]string{
	types.StageNew:       "New",
	types.StageContacted: "Contacted",
	types.StageQualified: "Qualified",
	types.StageClosed:    "Closed",
	types.StageLost:      "Lost",
}

func renderStats(w io.Writer, s leads.Stats) {
	p := newPalette(w)
	rows := [][]string{{"Total", strconv.Itoa(s.Total)}}
	for _, stage := range types.Stages {
		rows = append(rows, []string{stageLabels[stage], strconv.Itoa(s.ByStage[stage])})
	}
	if s.Unknown > 0 {
		rows = append(rows, []string{"Other", strconv.Itoa(s.Unknown)})
	}
	rows = append(rows, []string{"Needs follow-up", strconv.Itoa(s.FollowUp)})

	fmt.Fprintln(w, p.section("stats"))
	fmt.Fprint(w, p.table([]string{"STAGE", "LEADS"}, rows))
}
