package analysis

import (
	"errors"
	"fmt"
	"sort"

	"github.com/umuturukk/de-propulsion-v2.0/internal/combination"
	"github.com/umuturukk/de-propulsion-v2.0/internal/model"
	"github.com/umuturukk/de-propulsion-v2.0/internal/propulsion"
	"github.com/umuturukk/de-propulsion-v2.0/internal/sfoc"
	"github.com/umuturukk/de-propulsion-v2.0/internal/sweep"
)

var ErrNoRatings = errors.New("analysis: rating range is empty")

// RankParams describes a unit-size study: every rating in Ratings is tried as a fleet of
// identical main generators sharing the load per the usage band.
type RankParams struct {
	Ratings      model.PowerRange        `json:"ratings"`
	Vessel       model.Vessel            `json:"vessel"`
	Efficiencies propulsion.Efficiencies `json:"efficiencies"`
	Transit      model.ModeInputs        `json:"transit"`
	Maneuver     model.ModeInputs        `json:"maneuver"`
}

func (p RankParams) Validate() error {
	if err := p.Ratings.Validate(); err != nil {
		return fmt.Errorf("ratings: %w", err)
	}
	if p.Ratings.FromKW <= 0 {
		return errors.New("ratings: from_kw must be > 0")
	}
	if err := p.Vessel.Validate(); err != nil {
		return fmt.Errorf("vessel: %w", err)
	}
	if err := p.Efficiencies.Validate(); err != nil {
		return err
	}
	if err := p.Transit.Validate(); err != nil {
		return fmt.Errorf("transit: %w", err)
	}
	if err := p.Maneuver.Validate(); err != nil {
		return fmt.Errorf("maneuver: %w", err)
	}
	return nil
}

// UnitSizeRank is the outcome for one generator rating.
type UnitSizeRank struct {
	RatingKW float64 `json:"rating_kw"`
	Label    string  `json:"label"`

	TransitFuelTonnes  float64 `json:"transit_fuel_tonnes"`
	ManeuverFuelTonnes float64 `json:"maneuver_fuel_tonnes"`

	TransitDiffTonnes      float64 `json:"transit_diff_tonnes"`
	CanalPassageDiffTonnes float64 `json:"canal_passage_diff_tonnes"`
	BerthingDiffTonnes     float64 `json:"berthing_diff_tonnes"`

	// Samples outside every usage band burn nothing here and are counted instead.
	UnservedSamples int `json:"unserved_samples"`
}

// TotalDiffTonnes is the ranking key.
func (r UnitSizeRank) TotalDiffTonnes() float64 {
	return r.TransitDiffTonnes + r.CanalPassageDiffTonnes
}

type Ranker struct {
	mainDEGen *sfoc.Spline
	mainEng   *sfoc.Spline
	auxDG     *sfoc.Spline
}

func NewRanker(set model.CurveSet) (*Ranker, error) {
	fitted, err := sfoc.FitSet(set)
	if err != nil {
		return nil, err
	}
	r := &Ranker{
		mainDEGen: fitted[model.CurveMainDEGen],
		mainEng:   fitted[model.CurveMainEngine],
		auxDG:     fitted[model.CurveAuxDG],
	}
	if r.mainDEGen == nil || r.mainEng == nil || r.auxDG == nil {
		return nil, fmt.Errorf("%w: ranking needs %s, %s and %s", sfoc.ErrMissingCurve,
			model.CurveMainDEGen, model.CurveMainEngine, model.CurveAuxDG)
	}
	return r, nil
}

// Rank evaluates every rating and sorts descending by TotalDiffTonnes.
// Ratings whose fleet cannot serve a single sample are left out.
func (rk *Ranker) Rank(p RankParams) ([]UnitSizeRank, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	ratings := p.Ratings.Samples()
	if len(ratings) == 0 {
		return nil, ErrNoRatings
	}

	conv := sweep.Conventional{Vessel: p.Vessel, MainEngine: rk.mainEng, AuxDG: rk.auxDG}
	convTransit := rk.conventionalTotal(conv, model.ModeTransit, p.Transit)
	convManeuver := rk.conventionalTotal(conv, model.ModeManeuver, p.Maneuver)

	out := make([]UnitSizeRank, 0, len(ratings))
	for _, rating := range ratings {
		r := UnitSizeRank{
			RatingKW: rating,
			Label:    fmt.Sprintf("%d x %s kW", combination.UsageMaxUnits, model.FormatKW(rating)),
		}
		var unservedT, unservedM int
		r.TransitFuelTonnes, unservedT = rk.generatorTotal(p, model.ModeTransit, p.Transit, rating)
		r.ManeuverFuelTonnes, unservedM = rk.generatorTotal(p, model.ModeManeuver, p.Maneuver, rating)
		r.UnservedSamples = unservedT + unservedM
		if r.TransitFuelTonnes <= 0 && r.ManeuverFuelTonnes <= 0 {
			continue
		}
		r.TransitDiffTonnes = convTransit - r.TransitFuelTonnes
		r.CanalPassageDiffTonnes = convManeuver - r.ManeuverFuelTonnes
		r.BerthingDiffTonnes = convManeuver - r.ManeuverFuelTonnes*BerthingShare
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalDiffTonnes() > out[j].TotalDiffTonnes()
	})
	return out, nil
}

func (rk *Ranker) conventionalTotal(conv sweep.Conventional, mode model.Mode, in model.ModeInputs) float64 {
	total := 0.0
	for _, kw := range in.Range.Samples() {
		total += conv.Fuel(mode, kw, in.DurationH).FuelTonnes
	}
	return total
}

func (rk *Ranker) generatorTotal(p RankParams, mode model.Mode, in model.ModeInputs, rating float64) (float64, int) {
	total := 0.0
	unserved := 0
	for _, kw := range in.Range.Samples() {
		demand, err := p.Efficiencies.SizingDemandKW(mode, kw, p.Vessel.AuxPowerKW)
		if err != nil || demand <= 0 {
			unserved++
			continue
		}
		usage, err := combination.DetermineUsage(demand, rating)
		if err != nil {
			unserved++
			continue
		}
		fuel := sfoc.Fuel(demand, usage.LoadPct, in.DurationH, rk.mainDEGen)
		if fuel <= 0 {
			unserved++
			continue
		}
		total += fuel
	}
	return total, unserved
}
