package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/umuturukk/de-propulsion-v2.0/internal/analysis"
	"github.com/umuturukk/de-propulsion-v2.0/internal/model"
)

var compareFleets []string

var compareCmd = &cobra.Command{
	Use:     "compare",
	Short:   "Sweep several fleets and rank them by total saved fuel",
	Example: `  deprop compare --fleet 3x2400+1x1000 --fleet 4x1800+1x1000 --fleet 2x3600`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadProject()
		if err != nil {
			return err
		}
		fleets := make([]model.Fleet, 0, len(compareFleets))
		for _, s := range compareFleets {
			f, err := model.ParseFleet(s)
			if err != nil {
				return err
			}
			fleets = append(fleets, f)
		}
		engine, err := newEngine(cfg, 0)
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()
		comparisons, err := analysis.CompareFleets(ctx, engine, cfg.SweepParams(), fleets)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "rank\tfleet\ttransit_saved_t\tmaneuver_saved_t\ttotal_saved_t\tberthing_diff_t\tinfeasible")
		for i, c := range comparisons {
			s := c.Summary
			fmt.Fprintf(tw, "%d\t%s\t%.3f\t%.3f\t%.3f\t%.3f\t%d\n",
				i+1, s.Fleet, s.Transit.SavedTonnes, s.Maneuver.SavedTonnes, s.TotalSavedTonnes,
				s.BerthingDiffTonnes, s.Transit.Infeasible+s.Maneuver.Infeasible)
		}
		return tw.Flush()
	},
}

func init() {
	compareCmd.Flags().StringArrayVar(&compareFleets, "fleet", nil, `Fleet as "<qty>x<kW>[+<qty>x<kW>]"; repeat for each fleet`)
	_ = compareCmd.MarkFlagRequired("fleet")
}
