package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/umuturukk/de-propulsion-v2.0/internal/model"
	"github.com/umuturukk/de-propulsion-v2.0/internal/sfoc"
)

var (
	curveFrom, curveTo float64
	curvePoints        int
)

var curveCmd = &cobra.Command{
	Use:   "curve [key]",
	Short: "List the SFOC curves, or sample one fitted curve",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadProject()
		if err != nil {
			return err
		}
		set := cfg.CurveSet()
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

		if len(args) == 0 {
			fmt.Fprintln(tw, "key\tpoints (load%:g/kWh)")
			for _, key := range model.CurveKeys() {
				fmt.Fprintf(tw, "%s\t", key)
				for _, p := range set[key] {
					fmt.Fprintf(tw, "%g:%g ", p.LoadPct, p.SFOC)
				}
				fmt.Fprintln(tw)
			}
			return tw.Flush()
		}

		key := model.CurveKey(args[0])
		c, ok := set[key]
		if !ok {
			return fmt.Errorf("%w: %s", sfoc.ErrMissingCurve, key)
		}
		s, err := sfoc.Fit(c)
		if err != nil {
			return err
		}
		fmt.Fprintln(tw, "load_pct\tsfoc_g_kwh")
		for _, p := range sfoc.Sample(s, curveFrom, curveTo, curvePoints) {
			fmt.Fprintf(tw, "%.2f\t%.3f\n", p.LoadPct, p.SFOC)
		}
		return tw.Flush()
	},
}

func init() {
	curveCmd.Flags().Float64Var(&curveFrom, "from", 0, "First load, % MCR")
	curveCmd.Flags().Float64Var(&curveTo, "to", 110, "Last load, % MCR")
	curveCmd.Flags().IntVar(&curvePoints, "points", 23, "Number of samples")
}
