package sweep

import (
	"github.com/umuturukk/de-propulsion-v2.0/internal/model"
	"github.com/umuturukk/de-propulsion-v2.0/internal/sfoc"
)

// Conventional is the mechanical reference plant: one main engine on the shaft, plus
// auxiliary gensets carrying the hotel load while maneuvering.
type Conventional struct {
	Vessel     model.Vessel
	MainEngine sfoc.Evaluator
	AuxDG      sfoc.Evaluator
}

type ConventionalPoint struct {
	FuelTonnes        float64
	MainEngineLoadPct float64
	AuxDGLoadPct      float64
}

// Fuel returns the reference consumption for shaftKW over durationH in mode.
// Samples the reference cannot serve contribute zero fuel.
func (c Conventional) Fuel(mode model.Mode, shaftKW, durationH float64) ConventionalPoint {
	var p ConventionalPoint
	v := c.Vessel
	if shaftKW > 0 && v.MainEngineMCRKW > 0 {
		p.MainEngineLoadPct = shaftKW / v.MainEngineMCRKW * 100
		p.FuelTonnes = sfoc.Fuel(shaftKW, p.MainEngineLoadPct, durationH, c.MainEngine)
	}
	if mode != model.ModeManeuver {
		return p
	}

	if v.AuxPowerKW <= 0 || v.AuxDGMCRKW <= 0 || v.AuxDGCount <= 0 {
		return p
	}
	perUnit := v.AuxPowerKW / float64(v.AuxDGCount)
	if perUnit > v.AuxDGMCRKW {
		return p
	}
	p.AuxDGLoadPct = perUnit / v.AuxDGMCRKW * 100
	p.FuelTonnes += sfoc.Fuel(perUnit, p.AuxDGLoadPct, durationH, c.AuxDG) * float64(v.AuxDGCount)
	return p
}
