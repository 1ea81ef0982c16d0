package propulsion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umuturukk/de-propulsion-v2.0/internal/model"
)

func TestDemandKW(t *testing.T) {
	t.Parallel()
	e := DefaultEfficiencies()
	chain := 0.97 * 0.985 * 0.995 * 0.98

	tests := []struct {
		name  string
		mode  model.Mode
		shaft float64
		aux   float64
		want  float64
	}{
		{name: "transit ignores aux", mode: model.ModeTransit, shaft: 4000, aux: 300, want: 4000 * 0.95 / chain},
		{name: "maneuver adds aux", mode: model.ModeManeuver, shaft: 2000, aux: 300, want: 2000*0.95/0.93 + 300},
		{name: "negative shaft clamps", mode: model.ModeTransit, shaft: -10, aux: 0, want: 0},
		{name: "maneuver idle shaft", mode: model.ModeManeuver, shaft: 0, aux: 300, want: 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := e.DemandKW(tt.mode, tt.shaft, tt.aux)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	_, err := e.DemandKW(model.Mode("DRIFT"), 100, 0)
	assert.Error(t, err)
}

func TestSizingDemandKW(t *testing.T) {
	t.Parallel()
	e := DefaultEfficiencies()
	inv := 0.95 / (0.97 * 0.985 * 0.995 * 0.98)

	got, err := e.SizingDemandKW(model.ModeTransit, 3000, 300)
	require.NoError(t, err)
	assert.InDelta(t, 2700*inv+300/0.968, got, 1e-9)

	got, err = e.SizingDemandKW(model.ModeManeuver, 2000, 300)
	require.NoError(t, err)
	assert.InDelta(t, 2000*inv+300, got, 1e-9)

	got, err = e.SizingDemandKW(model.ModeTransit, 200, 300)
	require.NoError(t, err)
	assert.InDelta(t, 300/0.968, got, 1e-9)
}

func TestValidate(t *testing.T) {
	t.Parallel()
	require.NoError(t, DefaultEfficiencies().Validate())

	e := DefaultEfficiencies()
	e.Motor = 0
	assert.ErrorIs(t, e.Validate(), ErrInvalidEfficiency)

	e = DefaultEfficiencies()
	e.Converter = 1.2
	assert.ErrorIs(t, e.Validate(), ErrInvalidEfficiency)

	_, err := e.DemandKW(model.ModeTransit, 1000, 0)
	assert.ErrorIs(t, err, ErrInvalidEfficiency)
}

func TestPowerFlow(t *testing.T) {
	t.Parallel()
	e := DefaultEfficiencies()

	f, err := PowerFlow(1000, e)
	require.NoError(t, err)

	assert.InDelta(t, 1000/0.97, f.MotorInputKW, 1e-9)
	assert.InDelta(t, f.MotorInputKW/0.985, f.ConverterInputKW, 1e-9)
	assert.InDelta(t, f.ConverterInputKW/0.995, f.SwitchboardInputKW, 1e-9)
	assert.Equal(t, f.SwitchboardInputKW, f.AlternatorOutputKW)
	assert.InDelta(t, f.AlternatorOutputKW/0.98, f.AlternatorMechInputKW, 1e-9)

	// Losses telescope to the overall input minus the shaft.
	assert.InDelta(t, f.AlternatorMechInputKW-f.ShaftKW, f.Losses.TotalKW(), 1e-9)
	assert.Positive(t, f.Losses.MotorKW)
	assert.Positive(t, f.Losses.AlternatorKW)
}

func TestPowerFlow_Failures(t *testing.T) {
	t.Parallel()
	e := DefaultEfficiencies()

	_, err := PowerFlow(0, e)
	assert.ErrorIs(t, err, ErrInvalidPower)

	_, err = PowerFlow(-5, e)
	assert.ErrorIs(t, err, ErrInvalidPower)

	bad := e
	bad.Switchboard = 0
	_, err = PowerFlow(1000, bad)
	assert.ErrorIs(t, err, ErrInvalidEfficiency)

	bad = e
	bad.Motor = 1e-320
	_, err = PowerFlow(1e300, bad)
	assert.ErrorIs(t, err, ErrNonFinite)
}
