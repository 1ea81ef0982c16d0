package sweep

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

var ledgerHeader = []string{
	"index",
	"mode",
	"shaft_kw",
	"demand_kw",
	"duration_h",
	"conventional_fuel_t",
	"main_engine_load_pct",
	"aux_dg_load_pct",
	"de_fuel_t",
	"saved_t",
	"label",
	"strategy",
	"running_units",
	"feasible",
	"assisted",
	"baseline_fuel_t",
	"baseline_label",
}

func ledgerRecord(r LedgerRow) []string {
	return []string{
		strconv.Itoa(r.Index),
		string(r.Mode),
		fmtFloat(r.ShaftKW),
		fmtFloat(r.DemandKW),
		fmtFloat(r.DurationH),
		fmtFloat(r.ConventionalFuelTonnes),
		fmtFloat(r.MainEngineLoadPct),
		fmtFloat(r.AuxDGLoadPct),
		fmtFloat(r.DEFuelTonnes),
		fmtFloat(r.SavedTonnes()),
		r.Label,
		r.Strategy.String(),
		strconv.Itoa(len(r.Units)),
		strconv.FormatBool(r.Feasible),
		strconv.FormatBool(r.Assisted),
		fmtFloat(r.BaselineFuelTonnes),
		r.BaselineLabel,
	}
}

func WriteLedgerCSV(path string, ledger []LedgerRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeLedgerCSV(f, ledger)
}

func EncodeLedgerCSV(out io.Writer, ledger []LedgerRow) error {
	w := csv.NewWriter(out)
	if err := w.Write(ledgerHeader); err != nil {
		return err
	}
	for _, r := range ledger {
		if err := w.Write(ledgerRecord(r)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
