package sfoc

import "github.com/umuturukk/de-propulsion-v2.0/internal/model"

// Sample evaluates e at points evenly spaced loads over [fromPct, toPct] and keeps only
// plausible values. It is used to plot a curve.
func Sample(e Evaluator, fromPct, toPct float64, points int) []model.CurvePoint {
	if e == nil || points < 2 || toPct < fromPct {
		return nil
	}
	step := (toPct - fromPct) / float64(points-1)
	out := make([]model.CurvePoint, 0, points)
	for i := 0; i < points; i++ {
		load := fromPct + float64(i)*step
		v, err := e.SFOC(load)
		if err != nil || v < MinPlausibleSFOC {
			continue
		}
		out = append(out, model.CurvePoint{LoadPct: load, SFOC: v})
	}
	return out
}
