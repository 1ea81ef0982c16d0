package combination

import (
	"errors"
	"math"
)

// Load band in which a class of identical units may run continuously.
const (
	UsageMinPct   = 40.0
	UsageMaxPct   = 92.0
	UsageMaxUnits = 3
)

var (
	ErrInvalidUnit       = errors.New("combination: unit rating and quantity must be > 0")
	ErrInsufficientFleet = errors.New("combination: not enough units for the required power")
	ErrNoUsageBand       = errors.New("combination: no unit count keeps the load inside the usage band")
)

// MinUnitsForPower returns the smallest number of units of unitRatingKW that can carry
// requiredKW, failing when more than unitQty would be needed.
func MinUnitsForPower(requiredKW, unitRatingKW float64, unitQty int) (int, error) {
	if unitRatingKW <= 0 || unitQty <= 0 {
		return 0, ErrInvalidUnit
	}
	if requiredKW <= 0 {
		return 0, nil
	}
	n := math.Ceil(requiredKW / unitRatingKW)
	if n > float64(unitQty) {
		return 0, ErrInsufficientFleet
	}
	return int(n), nil
}

// Usage is a unit count together with the load each unit carries.
type Usage struct {
	Units   int
	LoadPct float64
}

// DetermineUsage searches 1..UsageMaxUnits identical units of unitKW for the smallest
// count whose per-unit load lies in [UsageMinPct, UsageMaxPct].
func DetermineUsage(totalKW, unitKW float64) (Usage, error) {
	if unitKW <= 0 {
		return Usage{}, ErrInvalidUnit
	}
	if totalKW <= 0 {
		return Usage{}, nil
	}
	for n := 1; n <= UsageMaxUnits; n++ {
		load := totalKW / (float64(n) * unitKW) * 100
		if load >= UsageMinPct && load <= UsageMaxPct {
			return Usage{Units: n, LoadPct: load}, nil
		}
	}
	return Usage{}, ErrNoUsageBand
}
