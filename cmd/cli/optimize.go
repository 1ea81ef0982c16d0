package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/umuturukk/de-propulsion-v2.0/internal/combination"
	"github.com/umuturukk/de-propulsion-v2.0/internal/model"
)

var (
	optPowerKW    float64
	optDurationH  float64
	optFleet      string
	optCandidates bool
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Pick the cheapest running-generator set for one power demand",
	Example: `  deprop optimize --power 2600
  deprop optimize --power 4500 --fleet 4x1800+1x1000 --candidates`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if optPowerKW < 0 || math.IsNaN(optPowerKW) || math.IsInf(optPowerKW, 0) {
			return errors.New("--power must be a finite value >= 0")
		}
		if !(optDurationH > 0) || math.IsInf(optDurationH, 0) {
			return errors.New("--duration must be a finite value > 0")
		}
		cfg, err := loadProject()
		if err != nil {
			return err
		}
		fleet := cfg.Fleet
		if optFleet != "" {
			if fleet, err = model.ParseFleet(optFleet); err != nil {
				return err
			}
		}
		opt, err := newOptimizer(cfg)
		if err != nil {
			return err
		}

		res := opt.SelectBest(combination.Request{RequiredKW: optPowerKW, Fleet: fleet, DurationH: optDurationH})

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "fleet:    %s\n", fleet.Label())
		fmt.Fprintf(out, "demand:   %.1f kW for %g h\n", optPowerKW, optDurationH)
		fmt.Fprintf(out, "decision: %s (%s)\n", res.Label, res.Strategy)
		fmt.Fprintf(out, "fuel:     %.4f t\n", res.FuelTonnes)
		if res.Reference.HasBaseline {
			fmt.Fprintf(out, "baseline: %s, %.4f t\n", res.Reference.BaselineLabel, res.Reference.BaselineFuelTonnes)
		}
		if len(res.Units) > 0 {
			fmt.Fprintln(out)
			printUnits(out, res.Units)
		}

		if optCandidates && len(res.Candidates) > 0 {
			fmt.Fprintln(out, "\ncandidates:")
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "strategy\tlabel\tfuel_t")
			for _, c := range res.Candidates {
				fmt.Fprintf(tw, "%s\t%s\t%.4f\n", c.Strategy, c.Label, c.FuelTonnes)
			}
			return tw.Flush()
		}
		return nil
	},
}

func init() {
	optimizeCmd.Flags().Float64VarP(&optPowerKW, "power", "p", 0, "Required electrical power, kW")
	optimizeCmd.Flags().Float64Var(&optDurationH, "duration", 1, "Operating duration, hours")
	optimizeCmd.Flags().StringVar(&optFleet, "fleet", "", `Fleet as "<qty>x<kW>[+<qty>x<kW>]" (default: configured fleet)`)
	optimizeCmd.Flags().BoolVar(&optCandidates, "candidates", false, "Also list every candidate set")
	_ = optimizeCmd.MarkFlagRequired("power")
}

func printUnits(out io.Writer, units []model.UnitLoad) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "class\trating_kw\tload_pct\tpower_kw\tfuel_t")
	for _, u := range units {
		fmt.Fprintf(tw, "%s\t%s\t%.1f\t%.1f\t%.4f\n", u.Class.Label(), model.FormatKW(u.RatingKW), u.LoadPct, u.PowerKW, u.FuelTonnes)
	}
	_ = tw.Flush()
}
