package sweep

import (
	"bytes"
	"context"
	"encoding/csv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/umuturukk/de-propulsion-v2.0/internal/combination"
	"github.com/umuturukk/de-propulsion-v2.0/internal/model"
	"github.com/umuturukk/de-propulsion-v2.0/internal/propulsion"
	"github.com/umuturukk/de-propulsion-v2.0/internal/sfoc"
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

func testParams() Params {
	return Params{
		Fleet:        model.Fleet{MainRatingKW: 2400, MainQty: 3, PortRatingKW: 1000, PortQty: 1},
		Vessel:       model.Vessel{MainEngineMCRKW: 7200, AuxDGMCRKW: 800, AuxDGCount: 2, AuxPowerKW: 300},
		Efficiencies: propulsion.DefaultEfficiencies(),
		Transit:      model.ModeInputs{Range: model.PowerRange{FromKW: 3000, ToKW: 3200, StepKW: 100}, DurationH: 48},
		Maneuver:     model.ModeInputs{Range: model.PowerRange{FromKW: 1600, ToKW: 1700, StepKW: 100}, DurationH: 4},
	}
}

func TestRun_LedgerOrderAndTotals(t *testing.T) {
	t.Parallel()
	eng, err := New(testCurves(), WithWorkers(3))
	require.NoError(t, err)

	res, err := eng.Run(context.Background(), testParams())
	require.NoError(t, err)
	require.Len(t, res.Ledger, 5)

	wantModes := []model.Mode{model.ModeTransit, model.ModeTransit, model.ModeTransit, model.ModeManeuver, model.ModeManeuver}
	wantShaft := []float64{3000, 3100, 3200, 1600, 1700}
	for i, row := range res.Ledger {
		assert.Equal(t, i, row.Index)
		assert.Equal(t, wantModes[i], row.Mode)
		assert.InDelta(t, wantShaft[i], row.ShaftKW, 1e-9)
		assert.True(t, row.Feasible, "row %d", i)
		assert.Positive(t, row.ConventionalFuelTonnes)
	}

	assert.Equal(t, 3, res.Transit.Samples)
	assert.Equal(t, 2, res.Maneuver.Samples)
	sum := 0.0
	for _, row := range res.Ledger[:3] {
		sum += row.DEFuelTonnes
	}
	assert.InDelta(t, sum, res.Transit.DEFuelTonnes, 1e-9)
}

func TestRun_MatchesSequentialOptimizer(t *testing.T) {
	t.Parallel()
	eng, err := New(testCurves(), WithWorkers(4))
	require.NoError(t, err)
	p := testParams()

	res, err := eng.Run(context.Background(), p)
	require.NoError(t, err)

	cc, err := sfoc.NewClassCurves(testCurves())
	require.NoError(t, err)
	opt := combination.NewOptimizer(cc)

	for _, row := range res.Ledger {
		demand, err := p.Efficiencies.DemandKW(row.Mode, row.ShaftKW, p.Vessel.AuxPowerKW)
		require.NoError(t, err)
		assert.InDelta(t, demand, row.DemandKW, 1e-9)

		want := opt.SelectBest(combination.Request{RequiredKW: demand, Fleet: p.Fleet, DurationH: row.DurationH})
		assert.Equal(t, want.Label, row.Label)
		assert.Equal(t, want.Strategy, row.Strategy)
		assert.InDelta(t, want.FuelTonnes, row.DEFuelTonnes, 1e-12)
	}
}

func TestRun_ObserverAndSelector(t *testing.T) {
	t.Parallel()
	var observed, selected atomic.Int32
	stub := selectorFunc(func(req combination.Request) combination.Result {
		selected.Add(1)
		return combination.Result{Label: "stub", Strategy: combination.StrategyPortOnly, FuelTonnes: 1}
	})

	eng, err := New(testCurves(),
		WithSelector(stub),
		WithObserver(func(model.Mode, combination.Result) { observed.Add(1) }),
	)
	require.NoError(t, err)

	res, err := eng.Run(context.Background(), testParams())
	require.NoError(t, err)
	assert.EqualValues(t, 5, selected.Load())
	assert.EqualValues(t, 5, observed.Load())
	assert.InDelta(t, 3, res.Transit.DEFuelTonnes, 1e-12)
	for _, row := range res.Ledger {
		assert.Equal(t, "stub", row.Label)
	}
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()
	eng, err := New(testCurves())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = eng.Run(ctx, testParams())
	assert.ErrorIs(t, err, context.Canceled)

	p := testParams()
	p.Transit.DurationH = 0
	_, err = eng.Run(context.Background(), p)
	assert.Error(t, err)

	p = testParams()
	p.Fleet.MainQty = -1
	_, err = eng.Run(context.Background(), p)
	assert.Error(t, err)
}

func TestNew_MissingReferenceCurve(t *testing.T) {
	t.Parallel()
	set := testCurves()
	delete(set, model.CurveAuxDG)
	_, err := New(set)
	assert.ErrorIs(t, err, sfoc.ErrMissingCurve)
}

func TestConventional(t *testing.T) {
	t.Parallel()
	eng, err := New(testCurves())
	require.NoError(t, err)
	v := testParams().Vessel
	conv := eng.Conventional(v)

	// 3600 kW on a 7200 kW engine sits on the 50% sample point (195 g/kWh).
	transit := conv.Fuel(model.ModeTransit, 3600, 48)
	assert.InDelta(t, 50, transit.MainEngineLoadPct, 1e-9)
	assert.InDelta(t, 3600*48*195/1e6, transit.FuelTonnes, 1e-9)
	assert.Zero(t, transit.AuxDGLoadPct)

	maneuver := conv.Fuel(model.ModeManeuver, 3600, 48)
	assert.InDelta(t, 18.75, maneuver.AuxDGLoadPct, 1e-9)
	assert.Greater(t, maneuver.FuelTonnes, transit.FuelTonnes)

	v.AuxPowerKW = 2000
	over := eng.Conventional(v).Fuel(model.ModeManeuver, 3600, 48)
	assert.Zero(t, over.AuxDGLoadPct)
	assert.InDelta(t, transit.FuelTonnes, over.FuelTonnes, 1e-12)

	assert.Zero(t, conv.Fuel(model.ModeTransit, 0, 48).FuelTonnes)
}

func TestEncodeLedger(t *testing.T) {
	t.Parallel()
	eng, err := New(testCurves())
	require.NoError(t, err)
	res, err := eng.Run(context.Background(), testParams())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeLedgerCSV(&buf, res.Ledger))
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(res.Ledger)+1)
	assert.Equal(t, ledgerHeader, records[0])
	assert.Equal(t, "TRANSIT", records[1][1])
	assert.Equal(t, res.Ledger[0].Label, records[1][10])

	buf.Reset()
	require.NoError(t, EncodeLedgerXLSX(&buf, res))
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{sheetLedger, sheetUnits, sheetTotals}, f.GetSheetList())
	rows, err := f.GetRows(sheetLedger)
	require.NoError(t, err)
	assert.Len(t, rows, len(res.Ledger)+1)
	totalsRows, err := f.GetRows(sheetTotals)
	require.NoError(t, err)
	assert.Len(t, totalsRows, 3)
}

type selectorFunc func(combination.Request) combination.Result

func (f selectorFunc) SelectBest(req combination.Request) combination.Result { return f(req) }
