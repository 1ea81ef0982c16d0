package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/umuturukk/de-propulsion-v2.0/internal/analysis"
	"github.com/umuturukk/de-propulsion-v2.0/internal/api/models"
	"github.com/umuturukk/de-propulsion-v2.0/internal/combination"
	"github.com/umuturukk/de-propulsion-v2.0/internal/config"
	"github.com/umuturukk/de-propulsion-v2.0/internal/data"
	"github.com/umuturukk/de-propulsion-v2.0/internal/model"
	"github.com/umuturukk/de-propulsion-v2.0/internal/sfoc"
	"github.com/umuturukk/de-propulsion-v2.0/internal/sweep"
)

var errUnknownCurve = errors.New("unknown curve key")

// BackendOptions tunes NewBackend. Zero values are usable.
type BackendOptions struct {
	CurveDir string
	Workers  int
	Runs     *data.RunStore

	// Wrap decorates the configured-curve optimizer, e.g. with a result cache.
	// Requests with their own curves always get a fresh optimizer.
	Wrap func(combination.Selector) combination.Selector

	Observer sweep.Observer
	OnSweep  func(samples int, took time.Duration)
}

// Backend is the state shared by all handlers.
type Backend struct {
	cfg      *config.Config
	selector combination.Selector
	engine   *sweep.Engine
	ranker   *analysis.Ranker
	runs     *data.RunStore
	opts     BackendOptions
}

func NewBackend(cfg *config.Config, opts BackendOptions) (*Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if opts.Runs == nil {
		opts.Runs = data.NewRunStore(time.Hour)
	}

	b := &Backend{cfg: cfg, runs: opts.Runs, opts: opts}
	set := cfg.CurveSet()

	var err error
	if b.selector, err = b.newSelector(set); err != nil {
		return nil, err
	}
	if opts.Wrap != nil {
		b.selector = opts.Wrap(b.selector)
	}
	if b.engine, err = b.newEngine(set, b.selector); err != nil {
		return nil, err
	}
	if b.ranker, err = analysis.NewRanker(set); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Backend) Config() *config.Config { return b.cfg }

func (b *Backend) Runs() *data.RunStore { return b.runs }

func (b *Backend) newSelector(set model.CurveSet) (combination.Selector, error) {
	cc, err := sfoc.NewClassCurves(set)
	if err != nil {
		return nil, err
	}
	return combination.NewOptimizer(cc, combination.WithPolicy(b.cfg.Policy)), nil
}

func (b *Backend) newEngine(set model.CurveSet, sel combination.Selector) (*sweep.Engine, error) {
	return sweep.New(set,
		sweep.WithSelector(sel),
		sweep.WithWorkers(b.opts.Workers),
		sweep.WithObserver(b.opts.Observer),
	)
}

// curves resolves the curve set of a request. custom reports whether it differs from the
// configured set.
func (b *Backend) curves(o models.CurveOverrides) (set model.CurveSet, custom bool, err error) {
	set = b.cfg.CurveSet()
	if o.Preset != "" {
		presets, err := data.LoadCurvePresets(b.opts.CurveDir)
		if err != nil {
			return nil, false, err
		}
		p, err := data.FindCurvePreset(presets, o.Preset)
		if err != nil {
			return nil, false, err
		}
		for k, c := range p.Curves {
			set[k] = c
		}
		custom = true
	}
	for k, c := range o.Curves {
		if !knownCurve(k) {
			return nil, false, fmt.Errorf("%w: %q", errUnknownCurve, k)
		}
		if len(c) == 0 {
			continue
		}
		if err := c.Validate(); err != nil {
			return nil, false, fmt.Errorf("curves.%s: %w", k, err)
		}
		set[k] = c.Sorted()
		custom = true
	}
	return set, custom, nil
}

func (b *Backend) selectorFor(o models.CurveOverrides) (combination.Selector, error) {
	set, custom, err := b.curves(o)
	if err != nil || !custom {
		return b.selector, err
	}
	return b.newSelector(set)
}

func (b *Backend) engineFor(o models.CurveOverrides) (*sweep.Engine, error) {
	set, custom, err := b.curves(o)
	if err != nil || !custom {
		return b.engine, err
	}
	sel, err := b.newSelector(set)
	if err != nil {
		return nil, err
	}
	return b.newEngine(set, sel)
}

func (b *Backend) rankerFor(preset string) (*analysis.Ranker, error) {
	set, custom, err := b.curves(models.CurveOverrides{Preset: preset})
	if err != nil || !custom {
		return b.ranker, err
	}
	return analysis.NewRanker(set)
}

// scenario applies o to the configured sweep inputs.
func (b *Backend) scenario(o models.ScenarioOverrides) (sweep.Params, error) {
	p := b.cfg.SweepParams()
	if o.Fleet != nil {
		p.Fleet = config.MergeFleet(p.Fleet, *o.Fleet)
	}
	if o.Vessel != nil {
		p.Vessel = *o.Vessel
	}
	if o.Efficiencies != nil {
		p.Efficiencies = *o.Efficiencies
	}
	if o.Transit != nil {
		p.Transit = *o.Transit
	}
	if o.Maneuver != nil {
		p.Maneuver = *o.Maneuver
	}
	return p, p.Validate()
}

func (b *Backend) observeSweep(samples int, took time.Duration) {
	if b.opts.OnSweep != nil {
		b.opts.OnSweep(samples, took)
	}
}

func knownCurve(k model.CurveKey) bool {
	for _, key := range model.CurveKeys() {
		if key == k {
			return true
		}
	}
	return false
}

func respondError(c *gin.Context, status int, code string, err error) {
	_ = c.Error(err)
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
		},
	})
}

// respondCurveError maps a curve resolution failure to 404 for a missing preset and
// 400 for anything the caller sent.
func respondCurveError(c *gin.Context, err error) {
	if errors.Is(err, data.ErrPresetNotFound) {
		respondError(c, http.StatusNotFound, models.CodePresetNotFound, err)
		return
	}
	respondError(c, http.StatusBadRequest, models.CodeInvalidCurve, err)
}
