package propulsion

import (
	"errors"
	"fmt"
	"math"

	"github.com/umuturukk/de-propulsion-v2.0/internal/model"
)

var (
	ErrInvalidEfficiency = errors.New("propulsion: efficiency must be in (0, 1]")
	ErrInvalidPower      = errors.New("propulsion: shaft power must be > 0")
	ErrNonFinite         = errors.New("propulsion: non-finite power")
)

// Efficiencies of the conventional and diesel-electric propulsion paths.
// All values are fractions in (0, 1].
type Efficiencies struct {
	// ConventionalShaft is the mechanical shaft-line efficiency the DE plant replaces.
	ConventionalShaft float64 `json:"conventional_shaft" yaml:"conventional_shaft"`

	Motor       float64 `json:"motor" yaml:"motor"`
	Converter   float64 `json:"converter" yaml:"converter"`
	Switchboard float64 `json:"switchboard" yaml:"switchboard"`
	Alternator  float64 `json:"alternator" yaml:"alternator"`

	// ManeuverPath is the lumped electrical path efficiency used in maneuver.
	ManeuverPath float64 `json:"maneuver_path" yaml:"maneuver_path"`
	// AuxPath is the path efficiency of hotel load fed from the DE bus at sea.
	AuxPath float64 `json:"aux_path" yaml:"aux_path"`
}

func DefaultEfficiencies() Efficiencies {
	return Efficiencies{
		ConventionalShaft: 0.95,
		Motor:             0.97,
		Converter:         0.985,
		Switchboard:       0.995,
		Alternator:        0.98,
		ManeuverPath:      0.93,
		AuxPath:           0.968,
	}
}

func (e Efficiencies) Validate() error {
	for name, v := range map[string]float64{
		"conventional_shaft": e.ConventionalShaft,
		"motor":              e.Motor,
		"converter":          e.Converter,
		"switchboard":        e.Switchboard,
		"alternator":         e.Alternator,
		"maneuver_path":      e.ManeuverPath,
		"aux_path":           e.AuxPath,
	} {
		if !(v > 0 && v <= 1) {
			return fmt.Errorf("%w: %s=%v", ErrInvalidEfficiency, name, v)
		}
	}
	return nil
}

// Electrical is the product of the four DE chain stages.
func (e Efficiencies) Electrical() float64 {
	return e.Motor * e.Converter * e.Switchboard * e.Alternator
}

// DemandKW is the electrical power the generators must supply for shaftKW in mode.
//
// Transit: shaft × conventional shaft efficiency ÷ electrical chain; hotel load is not added.
// Maneuver: shaft × (conventional shaft ÷ maneuver path) + auxKW.
// Non-positive shaft power yields zero demand.
func (e Efficiencies) DemandKW(mode model.Mode, shaftKW, auxKW float64) (float64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}
	shaftKW = math.Max(0, shaftKW)
	auxKW = math.Max(0, auxKW)

	var out float64
	switch mode {
	case model.ModeTransit:
		out = shaftKW * e.ConventionalShaft / e.Electrical()
	case model.ModeManeuver:
		out = shaftKW*(e.ConventionalShaft/e.ManeuverPath) + auxKW
	default:
		return 0, fmt.Errorf("propulsion: unknown mode %q", mode)
	}
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0, ErrNonFinite
	}
	return out, nil
}

// SizingDemandKW is the generator load used when ranking unit sizes.
//
// Transit carries the hotel load on the DE bus: (shaft − aux) through the full chain plus
// aux through AuxPath. Maneuver runs the shaft through the full chain and adds aux as is.
func (e Efficiencies) SizingDemandKW(mode model.Mode, shaftKW, auxKW float64) (float64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}
	shaftKW = math.Max(0, shaftKW)
	auxKW = math.Max(0, auxKW)
	inv := e.ConventionalShaft / e.Electrical()

	var out float64
	switch mode {
	case model.ModeTransit:
		out = math.Max(0, shaftKW-auxKW)*inv + auxKW/e.AuxPath
	case model.ModeManeuver:
		out = shaftKW*inv + auxKW
	default:
		return 0, fmt.Errorf("propulsion: unknown mode %q", mode)
	}
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0, ErrNonFinite
	}
	return out, nil
}
