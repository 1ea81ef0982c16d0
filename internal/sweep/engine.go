package sweep

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/umuturukk/de-propulsion-v2.0/internal/combination"
	"github.com/umuturukk/de-propulsion-v2.0/internal/model"
	"github.com/umuturukk/de-propulsion-v2.0/internal/propulsion"
	"github.com/umuturukk/de-propulsion-v2.0/internal/sfoc"
)

var ErrNoSamples = errors.New("sweep: no samples in range")

// Params describes one sweep.
type Params struct {
	Fleet        model.Fleet             `json:"fleet"`
	Vessel       model.Vessel            `json:"vessel"`
	Efficiencies propulsion.Efficiencies `json:"efficiencies"`
	Transit      model.ModeInputs        `json:"transit"`
	Maneuver     model.ModeInputs        `json:"maneuver"`
}

func (p Params) Validate() error {
	if err := p.Fleet.Validate(); err != nil {
		return fmt.Errorf("fleet: %w", err)
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

// Observer is told about every optimizer decision, e.g. to feed metrics.
type Observer func(mode model.Mode, res combination.Result)

type Engine struct {
	selector combination.Selector
	mainEng  *sfoc.Spline
	auxDG    *sfoc.Spline
	workers  int
	observer Observer
}

type Option func(*Engine)

// WithSelector replaces the optimizer, typically with a memoising wrapper.
func WithSelector(s combination.Selector) Option {
	return func(e *Engine) { e.selector = s }
}

func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// New fits the reference curves of set and builds an engine around a default optimizer.
func New(set model.CurveSet, opts ...Option) (*Engine, error) {
	fitted, err := sfoc.FitSet(set)
	if err != nil {
		return nil, err
	}
	for _, key := range []model.CurveKey{model.CurveMainEngine, model.CurveAuxDG} {
		if fitted[key] == nil {
			return nil, fmt.Errorf("%w: %s", sfoc.ErrMissingCurve, key)
		}
	}

	e := &Engine{
		mainEng: fitted[model.CurveMainEngine],
		auxDG:   fitted[model.CurveAuxDG],
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.selector == nil {
		cc, err := sfoc.NewClassCurves(set)
		if err != nil {
			return nil, err
		}
		e.selector = combination.NewOptimizer(cc)
	}
	return e, nil
}

type job struct {
	mode      model.Mode
	shaftKW   float64
	durationH float64
}

// Run sweeps both modes of p. Samples run concurrently; the ledger keeps range order,
// transit first.
func (e *Engine) Run(ctx context.Context, p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var jobs []job
	for _, m := range []struct {
		mode model.Mode
		in   model.ModeInputs
	}{{model.ModeTransit, p.Transit}, {model.ModeManeuver, p.Maneuver}} {
		for _, kw := range m.in.Range.Samples() {
			jobs = append(jobs, job{mode: m.mode, shaftKW: kw, durationH: m.in.DurationH})
		}
	}
	if len(jobs) == 0 {
		return nil, ErrNoSamples
	}

	conv := Conventional{Vessel: p.Vessel, MainEngine: e.mainEng, AuxDG: e.auxDG}
	ledger := make([]LedgerRow, len(jobs))
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, j := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row, err := e.sample(p, conv, j)
			if err != nil {
				return fmt.Errorf("%s sample %.0f kW: %w", j.mode, j.shaftKW, err)
			}
			row.Index = i
			ledger[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{
		Fleet:    p.Fleet,
		Ledger:   ledger,
		Transit:  totals(model.ModeTransit, ledger),
		Maneuver: totals(model.ModeManeuver, ledger),
	}
	zap.S().Named("sweep").Debugw("sweep finished",
		"fleet", p.Fleet.Label(),
		"samples", len(ledger),
		"workers", e.workers,
		"duration", time.Since(start))
	return res, nil
}

func (e *Engine) sample(p Params, conv Conventional, j job) (LedgerRow, error) {
	demand, err := p.Efficiencies.DemandKW(j.mode, j.shaftKW, p.Vessel.AuxPowerKW)
	if err != nil {
		return LedgerRow{}, err
	}
	ref := conv.Fuel(j.mode, j.shaftKW, j.durationH)

	res := e.selector.SelectBest(combination.Request{
		RequiredKW: demand,
		Fleet:      p.Fleet,
		DurationH:  j.durationH,
	})
	if e.observer != nil {
		e.observer(j.mode, res)
	}

	return LedgerRow{
		Mode:                   j.mode,
		ShaftKW:                j.shaftKW,
		DemandKW:               demand,
		DurationH:              j.durationH,
		ConventionalFuelTonnes: ref.FuelTonnes,
		MainEngineLoadPct:      ref.MainEngineLoadPct,
		AuxDGLoadPct:           ref.AuxDGLoadPct,
		DEFuelTonnes:           res.FuelTonnes,
		Label:                  res.Label,
		Strategy:               res.Strategy,
		Feasible:               res.Feasible(),
		Units:                  res.Units,
		BaselineFuelTonnes:     res.Reference.BaselineFuelTonnes,
		BaselineLabel:          res.Reference.BaselineLabel,
		Assisted:               res.Reference.Assisted,
	}, nil
}

// Conventional exposes the reference plant the engine compares against.
func (e *Engine) Conventional(v model.Vessel) Conventional {
	return Conventional{Vessel: v, MainEngine: e.mainEng, AuxDG: e.auxDG}
}
