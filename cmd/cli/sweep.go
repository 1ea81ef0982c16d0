package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/umuturukk/de-propulsion-v2.0/internal/analysis"
	"github.com/umuturukk/de-propulsion-v2.0/internal/config"
	"github.com/umuturukk/de-propulsion-v2.0/internal/model"
	"github.com/umuturukk/de-propulsion-v2.0/internal/sweep"
)

var (
	sweepCSV     string
	sweepXLSX    string
	sweepWorkers int
	sweepFleet   string
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Sweep the transit and maneuver ranges and compare conventional with DE fuel",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadProject()
		if err != nil {
			return err
		}
		params := cfg.SweepParams()
		if sweepFleet != "" {
			if params.Fleet, err = model.ParseFleet(sweepFleet); err != nil {
				return err
			}
		}
		engine, err := newEngine(cfg, sweepWorkers)
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()
		res, err := engine.Run(ctx, params)
		if err != nil {
			return err
		}

		if sweepCSV != "" {
			if err := ensureDir(sweepCSV); err != nil {
				return err
			}
			if err := sweep.WriteLedgerCSV(sweepCSV, res.Ledger); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", len(res.Ledger), sweepCSV)
		}
		if sweepXLSX != "" {
			if err := ensureDir(sweepXLSX); err != nil {
				return err
			}
			if err := sweep.WriteLedgerXLSX(sweepXLSX, res); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote workbook to %s\n", sweepXLSX)
		}

		printSummary(cmd.OutOrStdout(), analysis.Summarize(res))
		return nil
	},
}

func init() {
	sweepCmd.Flags().StringVar(&sweepCSV, "csv", "", "Write the ledger as CSV to this path")
	sweepCmd.Flags().StringVar(&sweepXLSX, "xlsx", "", "Write the ledger as an XLSX workbook to this path")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", 0, "Parallel samples (0 = GOMAXPROCS)")
	sweepCmd.Flags().StringVar(&sweepFleet, "fleet", "", `Fleet as "<qty>x<kW>[+<qty>x<kW>]" (default: configured fleet)`)
}

func newEngine(cfg *config.Config, workers int) (*sweep.Engine, error) {
	opt, err := newOptimizer(cfg)
	if err != nil {
		return nil, err
	}
	return sweep.New(cfg.CurveSet(), sweep.WithSelector(opt), sweep.WithWorkers(workers))
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

func printSummary(out io.Writer, s analysis.Summary) {
	fmt.Fprintf(out, "fleet: %s\n\n", s.Fleet)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "mode\tsamples\tconventional_t\tde_t\tsaved_t\tsaved_pct\tassisted\tinfeasible")
	for _, m := range []analysis.ModeSummary{s.Transit, s.Maneuver} {
		fmt.Fprintf(tw, "%s\t%d\t%.3f\t%.3f\t%.3f\t%.2f\t%d\t%d\n",
			m.Mode, m.Samples, m.ConventionalFuelTonnes, m.DEFuelTonnes, m.SavedTonnes, m.SavedPct, m.Assisted, m.Infeasible)
	}
	_ = tw.Flush()

	fmt.Fprintf(out, "\ntotal saved:        %.3f t\n", s.TotalSavedTonnes)
	fmt.Fprintf(out, "canal passage diff: %.3f t\n", s.CanalPassageDiffTonnes)
	fmt.Fprintf(out, "berthing diff:      %.3f t\n", s.BerthingDiffTonnes)

	codes := make([]string, 0, len(s.Strategies))
	for code := range s.Strategies {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	fmt.Fprintln(out, "\nstrategies:")
	for _, code := range codes {
		fmt.Fprintf(out, "  %-24s %d\n", code, s.Strategies[code])
	}
}
