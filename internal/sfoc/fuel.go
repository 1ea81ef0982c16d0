package sfoc

// MinPlausibleSFOC is the lowest SFOC (g/kWh) accepted from a curve. Lower values mean the
// operating point lies outside the curve's valid region.
const MinPlausibleSFOC = 50.0

// Fuel estimates fuel mass in tonnes for powerKW delivered at loadPct for durationH hours.
//
// Zero power or zero duration burns nothing. An interpolation failure or an implausible
// SFOC also yields 0: callers treat a zero result for positive power as "no usable figure".
func Fuel(powerKW, loadPct, durationH float64, curve Evaluator) float64 {
	if !isFinite(powerKW) || !isFinite(durationH) {
		return 0
	}
	if powerKW <= 0 || durationH <= 0 || curve == nil {
		return 0
	}
	v, err := curve.SFOC(loadPct)
	if err != nil || v < MinPlausibleSFOC {
		return 0
	}
	return powerKW * durationH * v / 1_000_000
}
