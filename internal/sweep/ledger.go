package sweep

import (
	"github.com/umuturukk/de-propulsion-v2.0/internal/combination"
	"github.com/umuturukk/de-propulsion-v2.0/internal/model"
)

// LedgerRow is one sample of a sweep.
// This is the primary artifact for "what ran and what it burned".
type LedgerRow struct {
	Index int        `json:"index"`
	Mode  model.Mode `json:"mode"`

	ShaftKW   float64 `json:"shaft_kw"`
	DemandKW  float64 `json:"demand_kw"`
	DurationH float64 `json:"duration_h"`

	ConventionalFuelTonnes float64 `json:"conventional_fuel_tonnes"`
	MainEngineLoadPct      float64 `json:"main_engine_load_pct"`
	AuxDGLoadPct           float64 `json:"aux_dg_load_pct,omitempty"`

	DEFuelTonnes float64              `json:"de_fuel_tonnes"`
	Label        string               `json:"label"`
	Strategy     combination.Strategy `json:"strategy"`
	Feasible     bool                 `json:"feasible"`
	Units        []model.UnitLoad     `json:"units"`

	BaselineFuelTonnes float64 `json:"baseline_fuel_tonnes,omitempty"`
	BaselineLabel      string  `json:"baseline_label,omitempty"`
	Assisted           bool    `json:"assisted"`
}

// SavedTonnes is conventional minus DE fuel for the sample.
func (r LedgerRow) SavedTonnes() float64 { return r.ConventionalFuelTonnes - r.DEFuelTonnes }

// ModeTotals aggregates the ledger rows of one mode.
type ModeTotals struct {
	Mode                   model.Mode `json:"mode"`
	Samples                int        `json:"samples"`
	ConventionalFuelTonnes float64    `json:"conventional_fuel_tonnes"`
	DEFuelTonnes           float64    `json:"de_fuel_tonnes"`
	Infeasible             int        `json:"infeasible"`
	Assisted               int        `json:"assisted"`
}

type Result struct {
	Fleet    model.Fleet `json:"fleet"`
	Ledger   []LedgerRow `json:"ledger"`
	Transit  ModeTotals  `json:"transit"`
	Maneuver ModeTotals  `json:"maneuver"`
}

func totals(mode model.Mode, rows []LedgerRow) ModeTotals {
	t := ModeTotals{Mode: mode}
	for _, r := range rows {
		if r.Mode != mode {
			continue
		}
		t.Samples++
		t.ConventionalFuelTonnes += r.ConventionalFuelTonnes
		t.DEFuelTonnes += r.DEFuelTonnes
		if !r.Feasible {
			t.Infeasible++
		}
		if r.Assisted {
			t.Assisted++
		}
	}
	return t
}
