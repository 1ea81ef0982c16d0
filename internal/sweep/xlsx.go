package sweep

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"
)

const (
	sheetLedger = "Ledger"
	sheetUnits  = "Units"
	sheetTotals = "Totals"
)

var unitsHeader = []string{"index", "mode", "shaft_kw", "unit", "class", "rating_kw", "load_pct", "power_kw", "fuel_t"}

func WriteLedgerXLSX(path string, res *Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeLedgerXLSX(f, res)
}

// EncodeLedgerXLSX writes the ledger, per-unit loads and mode totals as three sheets.
func EncodeLedgerXLSX(out io.Writer, res *Result) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetLedger)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	if err := setRow(f, sheetLedger, 1, toAny(ledgerHeader)); err != nil {
		return err
	}
	for i, r := range res.Ledger {
		if err := setRow(f, sheetLedger, i+2, ledgerCells(r)); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(sheetUnits); err != nil {
		return err
	}
	if err := setRow(f, sheetUnits, 1, toAny(unitsHeader)); err != nil {
		return err
	}
	row := 2
	for _, r := range res.Ledger {
		for n, u := range r.Units {
			cells := []any{r.Index, string(r.Mode), r.ShaftKW, n + 1, u.Class.Code(), u.RatingKW, u.LoadPct, u.PowerKW, u.FuelTonnes}
			if err := setRow(f, sheetUnits, row, cells); err != nil {
				return err
			}
			row++
		}
	}

	if _, err := f.NewSheet(sheetTotals); err != nil {
		return err
	}
	if err := setRow(f, sheetTotals, 1, []any{"mode", "samples", "conventional_fuel_t", "de_fuel_t", "saved_t", "infeasible", "assisted"}); err != nil {
		return err
	}
	for i, t := range []ModeTotals{res.Transit, res.Maneuver} {
		cells := []any{string(t.Mode), t.Samples, t.ConventionalFuelTonnes, t.DEFuelTonnes, t.ConventionalFuelTonnes - t.DEFuelTonnes, t.Infeasible, t.Assisted}
		if err := setRow(f, sheetTotals, i+2, cells); err != nil {
			return err
		}
	}

	_, err = f.WriteTo(out)
	return err
}

func ledgerCells(r LedgerRow) []any {
	return []any{
		r.Index,
		string(r.Mode),
		r.ShaftKW,
		r.DemandKW,
		r.DurationH,
		r.ConventionalFuelTonnes,
		r.MainEngineLoadPct,
		r.AuxDGLoadPct,
		r.DEFuelTonnes,
		r.SavedTonnes(),
		r.Label,
		r.Strategy.String(),
		len(r.Units),
		strconv.FormatBool(r.Feasible),
		strconv.FormatBool(r.Assisted),
		r.BaselineFuelTonnes,
		r.BaselineLabel,
	}
}

func setRow(f *excelize.File, sheet string, row int, cells []any) error {
	ref, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, ref, &cells); err != nil {
		return fmt.Errorf("sheet %s row %d: %w", sheet, row, err)
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
