package analysis

import (
	"math"
	"sort"

	"github.com/umuturukk/de-propulsion-v2.0/internal/model"
	"github.com/umuturukk/de-propulsion-v2.0/internal/sweep"
)

// BerthingShare is the fraction of the maneuver profile a berthing maneuver represents.
const BerthingShare = 1.0 / 8

// ModeSummary is a mode-level view of a sweep you can use for comparison.
// Per-sample savings are conventional minus DE fuel; infeasible samples count as zero DE fuel.
type ModeSummary struct {
	sweep.ModeTotals

	SavedTonnes float64 `json:"saved_tonnes"`
	SavedPct    float64 `json:"saved_pct"`

	MinSavedTonnes  float64 `json:"min_saved_tonnes"`
	MaxSavedTonnes  float64 `json:"max_saved_tonnes"`
	MeanSavedTonnes float64 `json:"mean_saved_tonnes"`
	P05SavedTonnes  float64 `json:"p05_saved_tonnes"`
	P95SavedTonnes  float64 `json:"p95_saved_tonnes"`

	MeanDemandKW float64 `json:"mean_demand_kw"`
}

type Summary struct {
	Fleet    string      `json:"fleet"`
	Transit  ModeSummary `json:"transit"`
	Maneuver ModeSummary `json:"maneuver"`

	TotalSavedTonnes float64 `json:"total_saved_tonnes"`
	// CanalPassageDiffTonnes treats the whole maneuver profile as a canal passage.
	CanalPassageDiffTonnes float64 `json:"canal_passage_diff_tonnes"`
	// BerthingDiffTonnes compares the full conventional maneuver with a berthing-length DE maneuver.
	BerthingDiffTonnes float64 `json:"berthing_diff_tonnes"`

	// Strategies counts how often each strategy won, keyed by strategy code.
	Strategies map[string]int `json:"strategies"`
}

func Summarize(res *sweep.Result) Summary {
	s := Summary{Strategies: map[string]int{}}
	if res == nil {
		return s
	}
	s.Fleet = res.Fleet.Label()
	s.Transit = summarizeMode(res.Transit, res.Ledger)
	s.Maneuver = summarizeMode(res.Maneuver, res.Ledger)
	s.TotalSavedTonnes = s.Transit.SavedTonnes + s.Maneuver.SavedTonnes
	s.CanalPassageDiffTonnes = s.Maneuver.SavedTonnes
	s.BerthingDiffTonnes = s.Maneuver.ConventionalFuelTonnes - s.Maneuver.DEFuelTonnes*BerthingShare

	for _, r := range res.Ledger {
		s.Strategies[r.Strategy.String()]++
	}
	return s
}

func summarizeMode(t sweep.ModeTotals, ledger []sweep.LedgerRow) ModeSummary {
	m := ModeSummary{ModeTotals: t}
	m.SavedTonnes = t.ConventionalFuelTonnes - t.DEFuelTonnes
	if t.ConventionalFuelTonnes > 0 {
		m.SavedPct = m.SavedTonnes / t.ConventionalFuelTonnes * 100
	}

	vals := make([]float64, 0, t.Samples)
	demand := 0.0
	minv := math.Inf(1)
	maxv := math.Inf(-1)
	for _, r := range ledger {
		if r.Mode != t.Mode {
			continue
		}
		v := r.SavedTonnes()
		vals = append(vals, v)
		demand += r.DemandKW
		if v < minv {
			minv = v
		}
		if v > maxv {
			maxv = v
		}
	}
	if len(vals) == 0 {
		return m
	}
	sort.Float64s(vals)
	m.MinSavedTonnes = minv
	m.MaxSavedTonnes = maxv
	m.MeanSavedTonnes = m.SavedTonnes / float64(len(vals))
	m.P05SavedTonnes = percentileSorted(vals, 0.05)
	m.P95SavedTonnes = percentileSorted(vals, 0.95)
	m.MeanDemandKW = demand / float64(len(vals))
	return m
}

// ForMode picks the mode summary matching mode.
func (s Summary) ForMode(mode model.Mode) ModeSummary {
	if mode == model.ModeManeuver {
		return s.Maneuver
	}
	return s.Transit
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
