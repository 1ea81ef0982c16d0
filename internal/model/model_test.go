package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurveFromMap_SortsByLoad(t *testing.T) {
	t.Parallel()
	c := CurveFromMap(map[float64]float64{100: 178, 25: 205, 75: 178, 50: 186})
	require.Len(t, c, 4)
	assert.Equal(t, []float64{25, 50, 75, 100}, []float64{c[0].LoadPct, c[1].LoadPct, c[2].LoadPct, c[3].LoadPct})
	assert.Equal(t, 205.0, c[0].SFOC)
}

func TestCurveValidate(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		curve   Curve
		wantErr bool
	}{
		{name: "two points", curve: Curve{{25, 200}, {50, 190}}},
		{name: "one point", curve: Curve{{25, 200}}, wantErr: true},
		{name: "duplicate load", curve: Curve{{25, 200}, {25, 190}, {50, 180}}, wantErr: true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.curve.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGeneratorClass_CurveKeyAndText(t *testing.T) {
	t.Parallel()
	assert.Equal(t, CurveMainDEGen, ClassMain.CurveKey())
	assert.Equal(t, CurvePortGen, ClassPort.CurveKey())

	b, err := ClassPort.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "port", string(b))

	var c GeneratorClass
	require.NoError(t, c.UnmarshalText([]byte("Ana")))
	assert.Equal(t, ClassMain, c)
	assert.Error(t, c.UnmarshalText([]byte("aux")))
}

func TestFleetLabel(t *testing.T) {
	t.Parallel()
	f := Fleet{MainRatingKW: 2400, MainQty: 3, PortRatingKW: 1000, PortQty: 1}
	assert.Equal(t, "3x2400kW Ana + 1x1000kW Liman", f.Label())
	f.PortQty = 0
	assert.Equal(t, "3x2400kW Ana", f.Label())
}

func TestFleetValidate(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Fleet{MainRatingKW: 2400, MainQty: 3}.Validate())
	assert.NoError(t, Fleet{}.Validate())
	assert.Error(t, Fleet{MainQty: 2}.Validate())
	assert.Error(t, Fleet{MainRatingKW: 2400, MainQty: -1}.Validate())
}

func TestParseFleet(t *testing.T) {
	t.Parallel()
	f, err := ParseFleet("3x2400+1x1000")
	require.NoError(t, err)
	assert.Equal(t, Fleet{MainRatingKW: 2400, MainQty: 3, PortRatingKW: 1000, PortQty: 1}, f)

	f, err = ParseFleet("4X1800kW")
	require.NoError(t, err)
	assert.Equal(t, Fleet{MainRatingKW: 1800, MainQty: 4}, f)

	for _, bad := range []string{"", "3", "x2400", "3x", "3x2400+1", "-1x2400"} {
		_, err := ParseFleet(bad)
		assert.Error(t, err, bad)
	}
}

func TestPowerRangeSamples_Inclusive(t *testing.T) {
	t.Parallel()
	got := PowerRange{FromKW: 3000, ToKW: 3300, StepKW: 100}.Samples()
	assert.Equal(t, []float64{3000, 3100, 3200, 3300}, got)

	got = PowerRange{FromKW: 1600, ToKW: 1650, StepKW: 100}.Samples()
	assert.Equal(t, []float64{1600}, got)

	assert.Nil(t, PowerRange{FromKW: 10, ToKW: 5, StepKW: 1}.Samples())
}

func TestPowerRangeValidate_Bounds(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		r       PowerRange
		wantErr bool
	}{
		{name: "ok", r: PowerRange{FromKW: 0, ToKW: 4400, StepKW: 100}},
		{name: "at cap", r: PowerRange{FromKW: 0, ToKW: MaxSamples - 1, StepKW: 1}},
		{name: "infinite end", r: PowerRange{FromKW: 0, ToKW: math.Inf(1), StepKW: 100}, wantErr: true},
		{name: "nan start", r: PowerRange{FromKW: math.NaN(), ToKW: 100, StepKW: 10}, wantErr: true},
		{name: "nan step", r: PowerRange{FromKW: 0, ToKW: 100, StepKW: math.NaN()}, wantErr: true},
		{name: "too many samples", r: PowerRange{FromKW: 0, ToKW: 1e12, StepKW: 1}, wantErr: true},
		{name: "one past cap", r: PowerRange{FromKW: 0, ToKW: MaxSamples, StepKW: 1}, wantErr: true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.r.Validate()
			if tc.wantErr {
				assert.Error(t, err)
				assert.Nil(t, tc.r.Samples())
				return
			}
			require.NoError(t, err)
			assert.LessOrEqual(t, len(tc.r.Samples()), MaxSamples)
		})
	}
}
