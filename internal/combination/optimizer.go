package combination

import (
	"math"
	"sort"

	"github.com/umuturukk/de-propulsion-v2.0/internal/model"
	"github.com/umuturukk/de-propulsion-v2.0/internal/sfoc"
)

// Request is one selection problem.
type Request struct {
	RequiredKW float64     `json:"required_kw"`
	Fleet      model.Fleet `json:"fleet"`
	DurationH  float64     `json:"duration_h"`
}

// Reference carries what the chosen set was compared against.
type Reference struct {
	HasBaseline        bool    `json:"has_baseline"`
	BaselineFuelTonnes float64 `json:"baseline_fuel_tonnes,omitempty"`
	BaselineLabel      string  `json:"baseline_label,omitempty"`
	Assisted           bool    `json:"assisted"`
}

// Result is the selected running-unit set.
type Result struct {
	FuelTonnes float64          `json:"fuel_tonnes"`
	Label      string           `json:"label"`
	Strategy   Strategy         `json:"strategy"`
	Units      []model.UnitLoad `json:"units"`
	Reference  Reference        `json:"reference"`
	// Candidates is every feasible set that was recorded, in the order it was found.
	Candidates []Candidate `json:"candidates,omitempty"`
}

// Feasible is false only when no set could carry the demand.
func (r Result) Feasible() bool { return r.Strategy != StrategyNone }

// Selector is implemented by Optimizer and by anything that memoises it.
type Selector interface {
	SelectBest(req Request) Result
}

type Optimizer struct {
	curves *sfoc.ClassCurves
	policy Policy
}

type Option func(*Optimizer)

func WithPolicy(p Policy) Option {
	return func(o *Optimizer) { o.policy = p }
}

func NewOptimizer(curves *sfoc.ClassCurves, opts ...Option) *Optimizer {
	o := &Optimizer{curves: curves, policy: DefaultPolicy()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Optimizer) Policy() Policy { return o.policy }

// SelectBest returns the lowest-fuel running set for req under the optimizer's policy.
// It never fails: impossible requests yield a result with StrategyNone.
func (o *Optimizer) SelectBest(req Request) Result {
	if math.IsNaN(req.RequiredKW) || math.IsInf(req.RequiredKW, 0) {
		return noFeasible()
	}
	if req.RequiredKW <= 0 {
		return Result{Label: LabelNoLoad, Strategy: StrategyIdle}
	}

	var cs candidateSet
	underloaded := o.mainOnly(req, &cs)
	o.portOnly(req, &cs)
	if underloaded != nil {
		if c, ok := o.assisted(req, *underloaded); ok {
			cs.add(c)
		}
	}
	return o.decide(&cs)
}

// mainOnly records the main-only candidates and returns the cheapest underloaded one, if any.
func (o *Optimizer) mainOnly(req Request, cs *candidateSet) *Candidate {
	f := req.Fleet
	n, err := MinUnitsForPower(req.RequiredKW, f.MainRatingKW, f.MainQty)
	if err != nil || n == 0 {
		return nil
	}
	c, ok := o.uniform(req, model.ClassMain, f.MainRatingKW, n)
	if !ok {
		return nil
	}

	var underloaded *Candidate
	keepUnderloaded := func(c Candidate) {
		if underloaded == nil || cheaper(c, *underloaded) {
			u := c
			underloaded = &u
		}
	}

	load := c.Units[0].LoadPct
	switch {
	case o.policy.efficient(load):
		c.Strategy = StrategyMainEfficient
		cs.add(c)
	case load < o.policy.EfficientMinPct:
		c.Strategy = StrategyMainUnderloaded
		cs.add(c)
		keepUnderloaded(c)
	case n+1 <= f.MainQty:
		next, ok := o.uniform(req, model.ClassMain, f.MainRatingKW, n+1)
		if !ok {
			break
		}
		nextLoad := next.Units[0].LoadPct
		switch {
		case o.policy.efficient(nextLoad):
			next.Strategy = StrategyMainEfficientPlusOne
		case nextLoad < o.policy.EfficientMinPct:
			next.Strategy = StrategyMainUnderloadedPlusOne
			keepUnderloaded(next)
		default:
			next.Strategy = StrategyMainFallbackPlusOne
		}
		cs.add(next)
	default:
		c.Strategy = StrategyMainFallback
		cs.add(c)
	}
	return underloaded
}

func (o *Optimizer) portOnly(req Request, cs *candidateSet) {
	f := req.Fleet
	n, err := MinUnitsForPower(req.RequiredKW, f.PortRatingKW, f.PortQty)
	if err != nil || n == 0 {
		return
	}
	if c, ok := o.uniform(req, model.ClassPort, f.PortRatingKW, n); ok {
		c.Strategy = StrategyPortOnly
		cs.add(c)
	}
}

// assisted sweeps one port unit against small main-unit counts and returns the cheapest
// pairing that beats base.
func (o *Optimizer) assisted(req Request, base Candidate) (Candidate, bool) {
	f := req.Fleet
	p := o.policy
	if f.PortQty < 1 || f.PortRatingKW <= 0 || f.MainQty < 1 || f.MainRatingKW <= 0 {
		return Candidate{}, false
	}
	portCurve, okPort := o.curves.For(model.ClassPort)
	mainCurve, okMain := o.curves.For(model.ClassMain)
	if !okPort || !okMain {
		return Candidate{}, false
	}

	baseMains := 0
	for _, u := range base.Units {
		if u.Class == model.ClassMain {
			baseMains++
		}
	}

	var best Candidate
	found := false
	for _, nMain := range assistedMainCounts(baseMains, f.MainQty) {
		for _, portLoad := range p.portSweep() {
			portKW := f.PortRatingKW * portLoad / 100
			remaining := req.RequiredKW - portKW
			if remaining <= p.EpsilonKW {
				continue
			}
			if float64(nMain)*f.MainRatingKW < remaining-p.EpsilonKW {
				continue
			}
			perMainKW := remaining / float64(nMain)
			mainLoad := perMainKW / f.MainRatingKW * 100
			if !p.assistedMain(mainLoad) {
				continue
			}

			portFuel := sfoc.Fuel(portKW, portLoad, req.DurationH, portCurve)
			mainFuel := sfoc.Fuel(perMainKW, mainLoad, req.DurationH, mainCurve)
			if portFuel <= 0 || mainFuel <= 0 {
				continue
			}
			total := portFuel + mainFuel*float64(nMain)
			if total >= base.FuelTonnes || (found && total >= best.FuelTonnes) {
				continue
			}

			units := make([]model.UnitLoad, 0, nMain+1)
			units = append(units, model.UnitLoad{
				RatingKW: f.PortRatingKW, LoadPct: portLoad, PowerKW: portKW, FuelTonnes: portFuel, Class: model.ClassPort,
			})
			for i := 0; i < nMain; i++ {
				units = append(units, model.UnitLoad{
					RatingKW: f.MainRatingKW, LoadPct: mainLoad, PowerKW: perMainKW, FuelTonnes: mainFuel, Class: model.ClassMain,
				})
			}
			best = Candidate{
				Strategy:   StrategyAssisted,
				FuelTonnes: total,
				Label:      assistedLabel(nMain, f.MainRatingKW, mainLoad, f.PortRatingKW, portLoad),
				Units:      units,
				Baseline:   &Baseline{FuelTonnes: base.FuelTonnes, Label: base.Label},
			}
			found = true
		}
	}
	return best, found
}

// assistedMainCounts is {k-1, 1, k} restricted to 1..qty, ascending.
func assistedMainCounts(k, qty int) []int {
	seen := make(map[int]bool, 3)
	var out []int
	for _, n := range []int{k - 1, 1, k} {
		if n >= 1 && n <= qty && !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	if len(out) == 0 && qty >= 1 {
		out = []int{1}
	}
	sort.Ints(out)
	return out
}

func (o *Optimizer) decide(cs *candidateSet) Result {
	cheapest, ok := cs.cheapest()
	if !ok {
		return noFeasible()
	}

	var chosen *Candidate
	for _, s := range o.policy.Priority {
		c, ok := cs.get(s)
		if !ok {
			continue
		}
		if chosen == nil || cheaper(c, *chosen) {
			pick := c
			chosen = &pick
		}
	}
	if chosen == nil || cheaper(cheapest, *chosen) {
		chosen = &cheapest
	}

	res := Result{
		FuelTonnes: chosen.FuelTonnes,
		Label:      chosen.Label,
		Strategy:   chosen.Strategy,
		Units:      chosen.Units,
		Reference:  Reference{Assisted: chosen.Strategy.Assisted()},
		Candidates: append([]Candidate(nil), cs.list...),
	}
	if chosen.Baseline != nil {
		res.Reference.HasBaseline = true
		res.Reference.BaselineFuelTonnes = chosen.Baseline.FuelTonnes
		res.Reference.BaselineLabel = chosen.Baseline.Label
	}
	return res
}

func (o *Optimizer) uniform(req Request, class model.GeneratorClass, ratingKW float64, n int) (Candidate, bool) {
	alloc, err := Evaluate(req.RequiredKW, model.Units(ratingKW, class, n), o.curves, req.DurationH)
	if err != nil {
		return Candidate{}, false
	}
	return Candidate{
		FuelTonnes: alloc.TotalFuelTonnes,
		Label:      uniformLabel(n, ratingKW, class),
		Units:      alloc.Units,
	}, true
}

func noFeasible() Result {
	return Result{Label: LabelNoFeasible, Strategy: StrategyNone}
}
