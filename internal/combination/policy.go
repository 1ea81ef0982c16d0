package combination

import (
	"errors"
	"fmt"
)

// loadTolerancePct absorbs float drift when a load is compared against a band edge.
const loadTolerancePct = 1e-9

// Policy holds the tunables of the selection rules.
type Policy struct {
	// Main-only sets inside this band need no further improvement.
	EfficientMinPct float64 `json:"efficient_min_pct" yaml:"efficient_min_pct"`
	EfficientMaxPct float64 `json:"efficient_max_pct" yaml:"efficient_max_pct"`

	// The single port unit is swept from PortSweepStartPct down to PortSweepMinPct.
	PortSweepStartPct float64 `json:"port_sweep_start_pct" yaml:"port_sweep_start_pct"`
	PortSweepMinPct   float64 `json:"port_sweep_min_pct" yaml:"port_sweep_min_pct"`
	PortSweepStepPct  float64 `json:"port_sweep_step_pct" yaml:"port_sweep_step_pct"`

	// Band the main units of an assisted set must stay in.
	AssistedMainMinPct float64 `json:"assisted_main_min_pct" yaml:"assisted_main_min_pct"`
	AssistedMainMaxPct float64 `json:"assisted_main_max_pct" yaml:"assisted_main_max_pct"`

	// Power tolerance in kW for the assisted remainder checks.
	EpsilonKW float64 `json:"epsilon_kw" yaml:"epsilon_kw"`

	// Strategies consulted, in order, before the global minimum is considered.
	Priority []Strategy `json:"priority" yaml:"priority"`
}

func DefaultPolicy() Policy {
	return Policy{
		EfficientMinPct:    65,
		EfficientMaxPct:    92,
		PortSweepStartPct:  89,
		PortSweepMinPct:    50,
		PortSweepStepPct:   5,
		AssistedMainMinPct: 50,
		AssistedMainMaxPct: 92,
		EpsilonKW:          1e-3,
		Priority: []Strategy{
			StrategyMainEfficient,
			StrategyMainEfficientPlusOne,
			StrategyAssisted,
			StrategyPortOnly,
		},
	}
}

func (p Policy) Validate() error {
	if p.EfficientMinPct <= 0 || p.EfficientMaxPct <= p.EfficientMinPct {
		return errors.New("efficient band must satisfy 0 < min < max")
	}
	if p.EfficientMaxPct > OverloadPct {
		return fmt.Errorf("efficient_max_pct must be <= %v", OverloadPct)
	}
	if p.PortSweepStepPct <= 0 {
		return errors.New("port_sweep_step_pct must be > 0")
	}
	if p.PortSweepMinPct <= 0 || p.PortSweepStartPct < p.PortSweepMinPct || p.PortSweepStartPct > OverloadPct {
		return errors.New("port sweep must satisfy 0 < min <= start <= overload ceiling")
	}
	if p.AssistedMainMinPct <= 0 || p.AssistedMainMaxPct < p.AssistedMainMinPct {
		return errors.New("assisted main band must satisfy 0 < min <= max")
	}
	if p.EpsilonKW < 0 {
		return errors.New("epsilon_kw must be >= 0")
	}
	for _, s := range p.Priority {
		if s <= StrategyIdle || s >= strategyCount {
			return fmt.Errorf("priority: %s cannot be prioritised", s)
		}
	}
	return nil
}

func (p Policy) efficient(loadPct float64) bool {
	return loadPct >= p.EfficientMinPct && loadPct <= p.EfficientMaxPct
}

func (p Policy) assistedMain(loadPct float64) bool {
	return loadPct >= p.AssistedMainMinPct-loadTolerancePct && loadPct <= p.AssistedMainMaxPct+loadTolerancePct
}

// portSweep lists the port loads tried, highest first.
func (p Policy) portSweep() []float64 {
	var out []float64
	for i := 0; ; i++ {
		load := p.PortSweepStartPct - float64(i)*p.PortSweepStepPct
		if load < p.PortSweepMinPct-loadTolerancePct {
			return out
		}
		out = append(out, load)
	}
}
