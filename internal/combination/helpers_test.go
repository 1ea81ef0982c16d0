package combination

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/umuturukk/de-propulsion-v2.0/internal/model"
	"github.com/umuturukk/de-propulsion-v2.0/internal/sfoc"
)

func referenceCurveSet() model.CurveSet {
	return model.CurveSet{
		model.CurveMainDEGen: model.CurveFromMap(map[float64]float64{25: 210, 50: 190, 75: 183, 85: 181, 100: 183}),
		model.CurvePortGen:   model.CurveFromMap(map[float64]float64{25: 213, 50: 194, 75: 188, 85: 183, 100: 185}),
	}
}

func referenceCurves(t *testing.T) *sfoc.ClassCurves {
	t.Helper()
	cc, err := sfoc.NewClassCurves(referenceCurveSet())
	require.NoError(t, err)
	return cc
}

func classCurve(t *testing.T, cc *sfoc.ClassCurves, class model.GeneratorClass) *sfoc.Spline {
	t.Helper()
	s, ok := cc.For(class)
	require.True(t, ok)
	return s
}
