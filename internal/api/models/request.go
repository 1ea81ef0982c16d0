package models

import (
	"github.com/umuturukk/de-propulsion-v2.0/internal/model"
	"github.com/umuturukk/de-propulsion-v2.0/internal/propulsion"
)

// CurveOverrides selects the SFOC curves a request runs with. Preset names a file in the
// curve directory; Curves replaces single curves on top of it. Both are optional.
type CurveOverrides struct {
	Preset string                         `json:"preset,omitempty"`
	Curves map[model.CurveKey]model.Curve `json:"curves,omitempty"`
}

// OptimizeRequest is the body of POST /api/v1/optimize.
//
// An absent duration_h means one hour. An explicit duration_h must be > 0.
type OptimizeRequest struct {
	RequiredPowerKW *float64     `json:"required_power_kw" binding:"required"`
	Fleet           *model.Fleet `json:"fleet,omitempty"`      // default: configured fleet
	DurationH       *float64     `json:"duration_h,omitempty"` // default: 1
	CurveOverrides
	IncludeCandidates bool `json:"include_candidates,omitempty"`
}

// ScenarioOverrides are the sweep inputs a request may change. Absent blocks keep the
// configured values; a fleet block only replaces the non-zero fields it names.
type ScenarioOverrides struct {
	Fleet        *model.Fleet             `json:"fleet,omitempty"`
	Vessel       *model.Vessel            `json:"vessel,omitempty"`
	Efficiencies *propulsion.Efficiencies `json:"efficiencies,omitempty"`
	Transit      *model.ModeInputs        `json:"transit,omitempty"`
	Maneuver     *model.ModeInputs        `json:"maneuver,omitempty"`
	CurveOverrides
}

// SweepRequest is the body of POST /api/v1/sweep.
type SweepRequest struct {
	ScenarioOverrides
	IncludeLedger bool `json:"include_ledger,omitempty"`
}

// CompareRequest is the body of POST /api/v1/compare.
type CompareRequest struct {
	Base       ScenarioOverrides `json:"base"`
	Variations []FleetVariation  `json:"variations" binding:"required,min=1,dive"`
}

// FleetVariation is one fleet to sweep. Zero fields keep the base fleet's values.
type FleetVariation struct {
	Name  string      `json:"name,omitempty"`
	Fleet model.Fleet `json:"fleet"`
}

// RankRequest holds the query of GET /api/v1/rank. Zero values keep the configured range.
type RankRequest struct {
	FromKW float64 `form:"from_kw"`
	ToKW   float64 `form:"to_kw"`
	StepKW float64 `form:"step_kw"`
	Preset string  `form:"preset"`
}

// CurveSamplesRequest holds the query of GET /api/v1/curves/:key/samples.
type CurveSamplesRequest struct {
	Preset  string  `form:"preset"`
	FromPct float64 `form:"from_pct"`
	ToPct   float64 `form:"to_pct"`
	Points  int     `form:"points"`
}

// LedgerRequest holds the query of GET /api/v1/sweep/:id/ledger.
type LedgerRequest struct {
	Format string `form:"format"` // "json" (default), "csv" or "xlsx"
}

// PowerFlowRequest is the body of POST /api/v1/power-flow.
type PowerFlowRequest struct {
	ShaftPowerKW float64                  `json:"shaft_power_kw" binding:"required"`
	Efficiencies *propulsion.Efficiencies `json:"efficiencies,omitempty"`
}
