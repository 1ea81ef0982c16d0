package combination

import (
	"errors"
	"fmt"
	"math"

	"github.com/umuturukk/de-propulsion-v2.0/internal/model"
	"github.com/umuturukk/de-propulsion-v2.0/internal/sfoc"
)

const (
	// OverloadPct is the hard per-unit load ceiling.
	OverloadPct = 110.0
	// CapacityTolerance lets demand exceed running capacity by 0.1% to absorb rounding.
	CapacityTolerance = 0.001
)

var (
	ErrNoUnits         = errors.New("combination: no running units")
	ErrInvalidPower    = errors.New("combination: required power must be >= 0")
	ErrNoCapacity      = errors.New("combination: running capacity must be > 0")
	ErrOverCapacity    = errors.New("combination: required power exceeds running capacity")
	ErrOverload        = errors.New("combination: unit overloaded")
	ErrImplausibleFuel = errors.New("combination: no plausible fuel figure")
)

// Allocation is the outcome of splitting a demand across a running-unit set.
type Allocation struct {
	TotalFuelTonnes float64
	Units           []model.UnitLoad
}

// Evaluate splits requiredKW across units in proportion to their ratings and sums the
// fuel each unit burns over durationH.
//
// A zero demand is a valid idle allocation with no fuel. Any unit that delivers power
// without a plausible fuel figure rejects the whole set.
func Evaluate(requiredKW float64, units []model.RunningUnit, curves *sfoc.ClassCurves, durationH float64) (Allocation, error) {
	if len(units) == 0 {
		return Allocation{}, ErrNoUnits
	}
	if math.IsNaN(requiredKW) || math.IsInf(requiredKW, 0) || requiredKW < 0 {
		return Allocation{}, ErrInvalidPower
	}
	capacity := 0.0
	for _, u := range units {
		if u.RatingKW <= 0 {
			return Allocation{}, fmt.Errorf("%w: unit rating %v kW", ErrNoCapacity, u.RatingKW)
		}
		capacity += u.RatingKW
	}
	if requiredKW > capacity*(1+CapacityTolerance) {
		return Allocation{}, fmt.Errorf("%w: %.1f kW > %.1f kW", ErrOverCapacity, requiredKW, capacity)
	}

	out := Allocation{Units: make([]model.UnitLoad, 0, len(units))}
	for _, u := range units {
		powerKW := requiredKW * u.RatingKW / capacity
		loadPct := powerKW / u.RatingKW * 100
		if loadPct > OverloadPct {
			return Allocation{}, fmt.Errorf("%w: %.1f%% on %s kW %s", ErrOverload, loadPct, model.FormatKW(u.RatingKW), u.Class)
		}
		curve, ok := curves.For(u.Class)
		if !ok {
			return Allocation{}, fmt.Errorf("%w for class %s", sfoc.ErrMissingCurve, u.Class)
		}
		fuel := sfoc.Fuel(powerKW, loadPct, durationH, curve)
		if powerKW > 0 && fuel <= 0 {
			return Allocation{}, fmt.Errorf("%w: %s kW %s at %.1f%%", ErrImplausibleFuel, model.FormatKW(u.RatingKW), u.Class, loadPct)
		}
		out.TotalFuelTonnes += fuel
		out.Units = append(out.Units, model.UnitLoad{
			RatingKW:   u.RatingKW,
			LoadPct:    loadPct,
			PowerKW:    powerKW,
			FuelTonnes: fuel,
			Class:      u.Class,
		})
	}

	if requiredKW == 0 {
		return out, nil
	}
	if out.TotalFuelTonnes <= 0 {
		return Allocation{}, ErrImplausibleFuel
	}
	return out, nil
}
