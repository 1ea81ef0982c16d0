package model

import (
	"fmt"
	"strings"
)

// GeneratorClass selects which SFOC curve applies to a generator unit.
type GeneratorClass int

const (
	ClassMain GeneratorClass = iota
	ClassPort

	classCount
)

// Classes returns every generator class.
func Classes() []GeneratorClass {
	out := make([]GeneratorClass, 0, classCount)
	for c := GeneratorClass(0); c < classCount; c++ {
		out = append(out, c)
	}
	return out
}

func (c GeneratorClass) Valid() bool { return c >= 0 && c < classCount }

// CurveKey is the reference curve used for units of this class.
func (c GeneratorClass) CurveKey() CurveKey {
	switch c {
	case ClassMain:
		return CurveMainDEGen
	case ClassPort:
		return CurvePortGen
	default:
		return ""
	}
}

// Code is the stable machine-readable name, used in JSON and CSV output.
func (c GeneratorClass) Code() string {
	switch c {
	case ClassMain:
		return "main"
	case ClassPort:
		return "port"
	default:
		return fmt.Sprintf("class(%d)", int(c))
	}
}

// Label is the display name used in combination labels.
func (c GeneratorClass) Label() string {
	switch c {
	case ClassMain:
		return "Ana"
	case ClassPort:
		return "Liman"
	default:
		return c.Code()
	}
}

func (c GeneratorClass) String() string { return c.Code() }

func (c GeneratorClass) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid generator class %d", int(c))
	}
	return []byte(c.Code()), nil
}

func (c *GeneratorClass) UnmarshalText(b []byte) error {
	parsed, err := ParseGeneratorClass(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseGeneratorClass accepts either the code or the display label.
func ParseGeneratorClass(s string) (GeneratorClass, error) {
	s = strings.TrimSpace(s)
	for _, c := range Classes() {
		if strings.EqualFold(s, c.Code()) || strings.EqualFold(s, c.Label()) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown generator class %q", s)
}

// RunningUnit is one online generator in a running-unit set.
type RunningUnit struct {
	RatingKW float64
	Class    GeneratorClass
}

// Units returns n identical running units.
func Units(ratingKW float64, class GeneratorClass, n int) []RunningUnit {
	if n <= 0 {
		return nil
	}
	out := make([]RunningUnit, n)
	for i := range out {
		out[i] = RunningUnit{RatingKW: ratingKW, Class: class}
	}
	return out
}

// UnitLoad is the allocation outcome for one running unit.
type UnitLoad struct {
	RatingKW   float64        `json:"rating_kw"`
	LoadPct    float64        `json:"load_pct"`
	PowerKW    float64        `json:"power_kw"`
	FuelTonnes float64        `json:"fuel_tonnes"`
	Class      GeneratorClass `json:"class"`
}
