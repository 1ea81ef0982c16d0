package models

import (
	"time"

	"github.com/umuturukk/de-propulsion-v2.0/internal/analysis"
	"github.com/umuturukk/de-propulsion-v2.0/internal/combination"
	"github.com/umuturukk/de-propulsion-v2.0/internal/model"
	"github.com/umuturukk/de-propulsion-v2.0/internal/propulsion"
	"github.com/umuturukk/de-propulsion-v2.0/internal/sweep"
)

// Error codes used in ErrorDetail.Code.
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeInvalidConfig  = "INVALID_CONFIG"
	CodeInvalidCurve   = "INVALID_CURVE"
	CodePresetNotFound = "PRESET_NOT_FOUND"
	CodeCurveNotFound  = "CURVE_NOT_FOUND"
	CodeRunNotFound    = "RUN_NOT_FOUND"
	CodeSweepFailed    = "SWEEP_ERROR"
	CodeRankFailed     = "RANK_ERROR"
	CodeExportFailed   = "EXPORT_ERROR"
	CodeNotFound       = "NOT_FOUND"
	CodeInternal       = "INTERNAL_ERROR"
)

// OptimizeResponse wraps one optimizer decision.
type OptimizeResponse struct {
	RequiredPowerKW float64            `json:"required_power_kw"`
	Fleet           string             `json:"fleet"`
	Feasible        bool               `json:"feasible"`
	Result          combination.Result `json:"result"`
}

// SweepResponse is returned by POST /api/v1/sweep.
type SweepResponse struct {
	ID        string            `json:"id"`
	CreatedAt time.Time         `json:"created_at"`
	Summary   analysis.Summary  `json:"summary"`
	Ledger    []sweep.LedgerRow `json:"ledger,omitempty"`
}

// LedgerResponse is the JSON form of GET /api/v1/sweep/:id/ledger.
type LedgerResponse struct {
	ID        string            `json:"id"`
	CreatedAt time.Time         `json:"created_at"`
	Fleet     string            `json:"fleet"`
	Ledger    []sweep.LedgerRow `json:"ledger"`
}

// CompareResponse lists fleets by total saved fuel, best first.
type CompareResponse struct {
	Comparison []ComparisonResult `json:"comparison"`
}

// ComparisonResult contains results for one variation.
type ComparisonResult struct {
	Rank    int              `json:"rank"`
	Name    string           `json:"name"`
	Fleet   model.Fleet      `json:"fleet"`
	Summary analysis.Summary `json:"summary"`
}

// RankResponse represents the unit-size ranking, best first.
type RankResponse struct {
	Rankings []Ranking `json:"rankings"`
}

// Ranking is one ranked generator rating.
type Ranking struct {
	Rank int `json:"rank"`
	analysis.UnitSizeRank
	TotalDiffTonnes float64 `json:"total_diff_tonnes"`
}

// CurveInfo describes one SFOC curve.
type CurveInfo struct {
	Key    model.CurveKey `json:"key"`
	Points model.Curve    `json:"points"`
}

// CurvePresetInfo describes a preset file from the curve directory.
type CurvePresetInfo struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Curves      []CurveInfo `json:"curves"`
}

// CurvesResponse is returned by GET /api/v1/curves.
type CurvesResponse struct {
	Builtin []CurveInfo       `json:"builtin"`
	Presets []CurvePresetInfo `json:"presets"`
}

// CurveSamplesResponse is a fitted curve evaluated for plotting.
type CurveSamplesResponse struct {
	Key     model.CurveKey     `json:"key"`
	Preset  string             `json:"preset,omitempty"`
	Degree  int                `json:"degree"`
	Points  model.Curve        `json:"points"`
	Samples []model.CurvePoint `json:"samples"`
}

// PowerFlowResponse gives the DE chain stages for one shaft power, plus the generator
// demand the sweep would request in each mode.
type PowerFlowResponse struct {
	Flow             propulsion.Flow         `json:"flow"`
	TotalLossesKW    float64                 `json:"total_losses_kw"`
	TransitDemandKW  float64                 `json:"transit_demand_kw"`
	ManeuverDemandKW float64                 `json:"maneuver_demand_kw"`
	Efficiencies     propulsion.Efficiencies `json:"efficiencies"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
