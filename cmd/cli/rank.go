package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/umuturukk/de-propulsion-v2.0/internal/analysis"
)

var rankFrom, rankTo, rankStep float64

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank generator unit sizes by fuel saved against the conventional plant",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadProject()
		if err != nil {
			return err
		}
		p := cfg.RankParams()
		if cmd.Flags().Changed("from") {
			p.Ratings.FromKW = rankFrom
		}
		if cmd.Flags().Changed("to") {
			p.Ratings.ToKW = rankTo
		}
		if cmd.Flags().Changed("step") {
			p.Ratings.StepKW = rankStep
		}

		ranker, err := analysis.NewRanker(cfg.CurveSet())
		if err != nil {
			return err
		}
		ranked, err := ranker.Rank(p)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "rank\tunits\ttransit_t\tmaneuver_t\ttransit_diff_t\tcanal_diff_t\tberthing_diff_t\tunserved")
		for i, r := range ranked {
			fmt.Fprintf(tw, "%d\t%s\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%d\n",
				i+1,
				r.Label,
				r.TransitFuelTonnes,
				r.ManeuverFuelTonnes,
				r.TransitDiffTonnes,
				r.CanalPassageDiffTonnes,
				r.BerthingDiffTonnes,
				r.UnservedSamples,
			)
		}
		return tw.Flush()
	},
}

func init() {
	rankCmd.Flags().Float64Var(&rankFrom, "from", 0, "First unit rating, kW (default: config ranking.from_kw)")
	rankCmd.Flags().Float64Var(&rankTo, "to", 0, "Last unit rating, kW (default: config ranking.to_kw)")
	rankCmd.Flags().Float64Var(&rankStep, "step", 0, "Rating step, kW (default: config ranking.step_kw)")
}
