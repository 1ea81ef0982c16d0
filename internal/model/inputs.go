package model

import (
	"errors"
	"fmt"
	"math"
)

// MaxSamples caps the number of points a PowerRange may expand to.
const MaxSamples = 100000

// PowerRange is an inclusive shaft-power sweep [FromKW, ToKW] sampled every StepKW.
type PowerRange struct {
	FromKW float64 `json:"from_kw" yaml:"from_kw"`
	ToKW   float64 `json:"to_kw" yaml:"to_kw"`
	StepKW float64 `json:"step_kw" yaml:"step_kw"`
}

func (r PowerRange) Validate() error {
	for _, v := range []float64{r.FromKW, r.ToKW, r.StepKW} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New("from_kw, to_kw and step_kw must be finite")
		}
	}
	if r.StepKW <= 0 {
		return errors.New("step_kw must be > 0")
	}
	if r.ToKW < r.FromKW {
		return errors.New("to_kw must be >= from_kw")
	}
	if (r.ToKW-r.FromKW)/r.StepKW >= MaxSamples {
		return fmt.Errorf("range expands to more than %d samples", MaxSamples)
	}
	return nil
}

// Samples returns every sample point of the range, including both ends when the
// span is a whole number of steps.
func (r PowerRange) Samples() []float64 {
	if r.Validate() != nil {
		return nil
	}
	// Small epsilon so 3000..4400 step 100 includes 4400 despite float drift.
	n := int(math.Floor((r.ToKW-r.FromKW)/r.StepKW+1e-9)) + 1
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, r.FromKW+float64(i)*r.StepKW)
	}
	return out
}

// ModeInputs is one operating mode of a scenario: which shaft powers to sweep and for how long.
type ModeInputs struct {
	Range     PowerRange `json:"range" yaml:"range"`
	DurationH float64    `json:"duration_h" yaml:"duration_h"`
}

func (m ModeInputs) Validate() error {
	if m.DurationH <= 0 {
		return errors.New("duration_h must be > 0")
	}
	return m.Range.Validate()
}
