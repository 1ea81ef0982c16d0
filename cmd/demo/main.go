package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/umuturukk/de-propulsion-v2.0/internal/analysis"
	"github.com/umuturukk/de-propulsion-v2.0/internal/combination"
	"github.com/umuturukk/de-propulsion-v2.0/internal/config"
	"github.com/umuturukk/de-propulsion-v2.0/internal/sfoc"
	"github.com/umuturukk/de-propulsion-v2.0/internal/sweep"
)

// Demo:
// - Build the reference vessel (or load one via --config)
// - Ask the optimizer for a few demand points to show the strategy escalation
// - Run the transit/maneuver sweep and print the saving
func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	demands := flag.String("demands", "0,700,1400,2600,3400,4500,4700,9000", "Comma-separated electrical demands, kW")
	outCSV := flag.String("out", "", "Optional path to write the sweep ledger CSV (e.g. results/sweep.csv)")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			panic(err)
		}
	}

	cc, err := sfoc.NewClassCurves(cfg.CurveSet())
	if err != nil {
		panic(err)
	}
	opt := combination.NewOptimizer(cc, combination.WithPolicy(cfg.Policy))

	fmt.Printf("Fleet: %s\n\n", cfg.Fleet.Label())
	for _, s := range strings.Split(*demands, ",") {
		kw, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			panic(err)
		}
		res := opt.SelectBest(combination.Request{RequiredKW: kw, Fleet: cfg.Fleet, DurationH: 1})
		fmt.Printf("%7.0f kW  %-24s %-52s %.4f t/h\n", kw, res.Strategy, res.Label, res.FuelTonnes)
		if res.Reference.Assisted {
			fmt.Printf("%10s beats %s at %.4f t/h\n", "", res.Reference.BaselineLabel, res.Reference.BaselineFuelTonnes)
		}
	}

	engine, err := sweep.New(cfg.CurveSet(), sweep.WithSelector(opt))
	if err != nil {
		panic(err)
	}
	res, err := engine.Run(context.Background(), cfg.SweepParams())
	if err != nil {
		panic(err)
	}
	sum := analysis.Summarize(res)

	fmt.Printf("\nTransit  %2d samples: conventional %.2f t, DE %.2f t, saved %.2f t (%.1f%%)\n",
		sum.Transit.Samples, sum.Transit.ConventionalFuelTonnes, sum.Transit.DEFuelTonnes, sum.Transit.SavedTonnes, sum.Transit.SavedPct)
	fmt.Printf("Maneuver %2d samples: conventional %.2f t, DE %.2f t, saved %.2f t (%.1f%%)\n",
		sum.Maneuver.Samples, sum.Maneuver.ConventionalFuelTonnes, sum.Maneuver.DEFuelTonnes, sum.Maneuver.SavedTonnes, sum.Maneuver.SavedPct)

	if *outCSV != "" {
		if err := sweep.WriteLedgerCSV(*outCSV, res.Ledger); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote CSV: %s\n", *outCSV)
	}

	fmt.Printf("\nDone. Total saved=%.2f t  Berthing diff=%.2f t\n", sum.TotalSavedTonnes, sum.BerthingDiffTonnes)
}
