package sfoc

import (
	"errors"
	"fmt"

	"github.com/umuturukk/de-propulsion-v2.0/internal/model"
)

var ErrMissingCurve = errors.New("sfoc: no curve registered")

// FitSet fits every curve of set.
func FitSet(set model.CurveSet) (map[model.CurveKey]*Spline, error) {
	out := make(map[model.CurveKey]*Spline, len(set))
	for key, c := range set {
		s, err := Fit(c)
		if err != nil {
			return nil, fmt.Errorf("curve %s: %w", key, err)
		}
		out[key] = s
	}
	return out, nil
}

// ClassCurves maps each generator class to its fitted curve.
// The zero value has no curves registered; use NewClassCurves to get a complete table.
type ClassCurves struct {
	byClass map[model.GeneratorClass]*Spline
}

// NewClassCurves fits the curve of every generator class from set.
// It fails if any class has no curve in set.
func NewClassCurves(set model.CurveSet) (*ClassCurves, error) {
	cc := &ClassCurves{byClass: make(map[model.GeneratorClass]*Spline, len(model.Classes()))}
	for _, class := range model.Classes() {
		c, ok := set[class.CurveKey()]
		if !ok {
			return nil, fmt.Errorf("%w: %s (class %s)", ErrMissingCurve, class.CurveKey(), class)
		}
		s, err := Fit(c)
		if err != nil {
			return nil, fmt.Errorf("curve %s: %w", class.CurveKey(), err)
		}
		cc.byClass[class] = s
	}
	return cc, nil
}

// For returns the curve registered for class.
func (cc *ClassCurves) For(class model.GeneratorClass) (*Spline, bool) {
	if cc == nil || cc.byClass == nil {
		return nil, false
	}
	s, ok := cc.byClass[class]
	return s, ok && s != nil
}
