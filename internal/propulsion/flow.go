package propulsion

import (
	"fmt"
	"math"
)

// Flow is the power at each stage of the DE chain, from the propeller shaft back to the
// generator prime movers, in kW.
type Flow struct {
	ShaftKW               float64 `json:"shaft_kw"`
	MotorInputKW          float64 `json:"motor_input_kw"`
	ConverterInputKW      float64 `json:"converter_input_kw"`
	SwitchboardInputKW    float64 `json:"switchboard_input_kw"`
	AlternatorOutputKW    float64 `json:"alternator_output_kw"`
	AlternatorMechInputKW float64 `json:"alternator_mech_input_kw"`

	Losses Losses `json:"losses"`
}

type Losses struct {
	MotorKW       float64 `json:"motor_kw"`
	ConverterKW   float64 `json:"converter_kw"`
	SwitchboardKW float64 `json:"switchboard_kw"`
	AlternatorKW  float64 `json:"alternator_kw"`
}

func (l Losses) TotalKW() float64 {
	return l.MotorKW + l.ConverterKW + l.SwitchboardKW + l.AlternatorKW
}

// PowerFlow walks shaftKW back through motor, converter, switchboard and alternator.
// The alternator's electrical output equals the switchboard input.
func PowerFlow(shaftKW float64, e Efficiencies) (Flow, error) {
	if !(shaftKW > 0) || math.IsInf(shaftKW, 0) {
		return Flow{}, fmt.Errorf("%w: %v", ErrInvalidPower, shaftKW)
	}
	for name, v := range map[string]float64{
		"motor":       e.Motor,
		"converter":   e.Converter,
		"switchboard": e.Switchboard,
		"alternator":  e.Alternator,
	} {
		if !(v > 0) {
			return Flow{}, fmt.Errorf("%w: %s=%v", ErrInvalidEfficiency, name, v)
		}
	}

	f := Flow{ShaftKW: shaftKW}
	f.MotorInputKW = shaftKW / e.Motor
	f.ConverterInputKW = f.MotorInputKW / e.Converter
	f.SwitchboardInputKW = f.ConverterInputKW / e.Switchboard
	f.AlternatorOutputKW = f.SwitchboardInputKW
	f.AlternatorMechInputKW = f.AlternatorOutputKW / e.Alternator

	for _, v := range []float64{f.MotorInputKW, f.ConverterInputKW, f.SwitchboardInputKW, f.AlternatorMechInputKW} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Flow{}, ErrNonFinite
		}
	}

	f.Losses = Losses{
		MotorKW:       f.MotorInputKW - f.ShaftKW,
		ConverterKW:   f.ConverterInputKW - f.MotorInputKW,
		SwitchboardKW: f.SwitchboardInputKW - f.ConverterInputKW,
		AlternatorKW:  f.AlternatorMechInputKW - f.AlternatorOutputKW,
	}
	return f, nil
}
