package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umuturukk/de-propulsion-v2.0/internal/combination"
	"github.com/umuturukk/de-propulsion-v2.0/internal/model"
	"github.com/umuturukk/de-propulsion-v2.0/internal/propulsion"
	"github.com/umuturukk/de-propulsion-v2.0/internal/sweep"
)

func testCurves() model.CurveSet {
	port := map[float64]float64{25: 213, 50: 194, 75: 188, 85: 183, 100: 185}
	return model.CurveSet{
		model.CurveMainEngine: model.CurveFromMap(map[float64]float64{25: 215, 50: 195, 75: 186, 85: 184, 100: 186}),
		model.CurveMainDEGen:  model.CurveFromMap(map[float64]float64{25: 210, 50: 190, 75: 183, 85: 181, 100: 183}),
		model.CurvePortGen:    model.CurveFromMap(port),
		model.CurveAuxDG:      model.CurveFromMap(port),
	}
}

func handLedger() *sweep.Result {
	ledger := []sweep.LedgerRow{
		{Index: 0, Mode: model.ModeTransit, DemandKW: 3000, ConventionalFuelTonnes: 10, DEFuelTonnes: 8, Strategy: combination.StrategyMainEfficient, Feasible: true},
		{Index: 1, Mode: model.ModeTransit, DemandKW: 3200, ConventionalFuelTonnes: 12, DEFuelTonnes: 9, Strategy: combination.StrategyMainEfficient, Feasible: true},
		{Index: 2, Mode: model.ModeManeuver, DemandKW: 2000, ConventionalFuelTonnes: 4, DEFuelTonnes: 2, Strategy: combination.StrategyAssisted, Feasible: true, Assisted: true},
	}
	return &sweep.Result{
		Fleet:    model.Fleet{MainRatingKW: 2400, MainQty: 3, PortRatingKW: 1000, PortQty: 1},
		Ledger:   ledger,
		Transit:  sweep.ModeTotals{Mode: model.ModeTransit, Samples: 2, ConventionalFuelTonnes: 22, DEFuelTonnes: 17},
		Maneuver: sweep.ModeTotals{Mode: model.ModeManeuver, Samples: 1, ConventionalFuelTonnes: 4, DEFuelTonnes: 2, Assisted: 1},
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()
	s := Summarize(handLedger())

	assert.Equal(t, "3x2400kW Ana + 1x1000kW Liman", s.Fleet)
	assert.InDelta(t, 5, s.Transit.SavedTonnes, 1e-12)
	assert.InDelta(t, 5.0/22*100, s.Transit.SavedPct, 1e-12)
	assert.InDelta(t, 2, s.Transit.MinSavedTonnes, 1e-12)
	assert.InDelta(t, 3, s.Transit.MaxSavedTonnes, 1e-12)
	assert.InDelta(t, 2.5, s.Transit.MeanSavedTonnes, 1e-12)
	assert.InDelta(t, 3100, s.Transit.MeanDemandKW, 1e-12)

	assert.InDelta(t, 2, s.Maneuver.SavedTonnes, 1e-12)
	assert.Equal(t, 1, s.Maneuver.Assisted)
	assert.InDelta(t, 7, s.TotalSavedTonnes, 1e-12)
	assert.InDelta(t, 2, s.CanalPassageDiffTonnes, 1e-12)
	assert.InDelta(t, 4-2.0/8, s.BerthingDiffTonnes, 1e-12)

	assert.Equal(t, map[string]int{"main_eff": 2, "assisted": 1}, s.Strategies)
	assert.Equal(t, s.Maneuver, s.ForMode(model.ModeManeuver))
}

func TestSummarize_Nil(t *testing.T) {
	t.Parallel()
	s := Summarize(nil)
	assert.Empty(t, s.Strategies)
	assert.Zero(t, s.TotalSavedTonnes)
}

func TestPercentileSorted(t *testing.T) {
	t.Parallel()
	vals := []float64{1, 2, 3, 4, 5}
	assert.InDelta(t, 3, percentileSorted(vals, 0.5), 1e-12)
	assert.InDelta(t, 2, percentileSorted(vals, 0.25), 1e-12)
	assert.InDelta(t, 1.4, percentileSorted(vals, 0.1), 1e-12)
	assert.InDelta(t, 1, percentileSorted(vals, 0), 1e-12)
	assert.InDelta(t, 5, percentileSorted(vals, 1), 1e-12)
	assert.Zero(t, percentileSorted(nil, 0.5))
}

func rankParams() RankParams {
	return RankParams{
		Ratings:      model.PowerRange{FromKW: 2000, ToKW: 3400, StepKW: 100},
		Vessel:       model.Vessel{MainEngineMCRKW: 7200, AuxDGMCRKW: 800, AuxDGCount: 2, AuxPowerKW: 300},
		Efficiencies: propulsion.DefaultEfficiencies(),
		Transit:      model.ModeInputs{Range: model.PowerRange{FromKW: 3000, ToKW: 4400, StepKW: 100}, DurationH: 48},
		Maneuver:     model.ModeInputs{Range: model.PowerRange{FromKW: 1600, ToKW: 2700, StepKW: 100}, DurationH: 4},
	}
}

func TestRank(t *testing.T) {
	t.Parallel()
	rk, err := NewRanker(testCurves())
	require.NoError(t, err)

	ranks, err := rk.Rank(rankParams())
	require.NoError(t, err)
	require.NotEmpty(t, ranks)
	assert.LessOrEqual(t, len(ranks), 15)

	for i := 1; i < len(ranks); i++ {
		assert.GreaterOrEqual(t, ranks[i-1].TotalDiffTonnes(), ranks[i].TotalDiffTonnes())
	}
	for _, r := range ranks {
		assert.Equal(t, "3 x "+model.FormatKW(r.RatingKW)+" kW", r.Label)
		assert.InDelta(t, r.CanalPassageDiffTonnes+r.ManeuverFuelTonnes*(1-BerthingShare), r.BerthingDiffTonnes, 1e-9)
	}
}

func TestRank_UnservableRatingDropped(t *testing.T) {
	t.Parallel()
	rk, err := NewRanker(testCurves())
	require.NoError(t, err)

	p := rankParams()
	p.Ratings = model.PowerRange{FromKW: 100, ToKW: 100, StepKW: 100}
	ranks, err := rk.Rank(p)
	require.NoError(t, err)
	assert.Empty(t, ranks)

	p.Transit.DurationH = 0
	_, err = rk.Rank(p)
	assert.Error(t, err)
}

type fakeRunner struct {
	saved map[int]float64
	fail  bool
}

func (f fakeRunner) Run(_ context.Context, p sweep.Params) (*sweep.Result, error) {
	if f.fail {
		return nil, errors.New("boom")
	}
	return &sweep.Result{
		Fleet:   p.Fleet,
		Transit: sweep.ModeTotals{Mode: model.ModeTransit, ConventionalFuelTonnes: 100, DEFuelTonnes: 100 - f.saved[p.Fleet.MainQty]},
	}, nil
}

func TestCompareFleets(t *testing.T) {
	t.Parallel()
	fleets := []model.Fleet{
		{MainRatingKW: 2400, MainQty: 2},
		{MainRatingKW: 2400, MainQty: 3},
		{MainRatingKW: 2400, MainQty: 4},
	}
	out, err := CompareFleets(context.Background(), fakeRunner{saved: map[int]float64{2: 1, 3: 7, 4: 4}}, sweep.Params{}, fleets)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, 3, out[0].Fleet.MainQty)
	assert.Equal(t, 4, out[1].Fleet.MainQty)
	assert.Equal(t, 2, out[2].Fleet.MainQty)

	_, err = CompareFleets(context.Background(), fakeRunner{fail: true}, sweep.Params{}, fleets)
	assert.Error(t, err)
}
