package model

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// CurveKey names one of the reference SFOC curves.
type CurveKey string

const (
	CurveMainEngine CurveKey = "main_engine"
	CurveMainDEGen  CurveKey = "main_de_gen"
	CurvePortGen    CurveKey = "port_gen"
	CurveAuxDG      CurveKey = "aux_dg"
)

// CurveKeys returns the reference curve keys in display order.
func CurveKeys() []CurveKey {
	return []CurveKey{CurveMainEngine, CurveMainDEGen, CurvePortGen, CurveAuxDG}
}

// CurvePoint is one sample of an SFOC curve.
// Units:
// - LoadPct: percent of MCR
// - SFOC: g/kWh
type CurvePoint struct {
	LoadPct float64 `json:"load_pct" yaml:"load_pct"`
	SFOC    float64 `json:"sfoc" yaml:"sfoc"`
}

// Curve is a sparse specific fuel oil consumption curve.
// Points may be supplied in any order; callers must not mutate a curve once it is shared.
type Curve []CurvePoint

// CurveSet maps curve keys to reference curves.
type CurveSet map[CurveKey]Curve

// CurveFromMap builds a curve from a load% -> SFOC map, ordered by load.
func CurveFromMap(m map[float64]float64) Curve {
	out := make(Curve, 0, len(m))
	for load, sfoc := range m {
		out = append(out, CurvePoint{LoadPct: load, SFOC: sfoc})
	}
	return out.Sorted()
}

// Sorted returns a copy of the curve ordered by ascending load.
func (c Curve) Sorted() Curve {
	out := make(Curve, len(c))
	copy(out, c)
	sort.SliceStable(out, func(i, j int) bool { return out[i].LoadPct < out[j].LoadPct })
	return out
}

// Map returns the curve as a load% -> SFOC map.
func (c Curve) Map() map[float64]float64 {
	out := make(map[float64]float64, len(c))
	for _, p := range c {
		out[p.LoadPct] = p.SFOC
	}
	return out
}

func (c Curve) Validate() error {
	if len(c) < 2 {
		return errors.New("curve needs at least 2 points")
	}
	seen := make(map[float64]struct{}, len(c))
	for _, p := range c {
		if math.IsNaN(p.LoadPct) || math.IsInf(p.LoadPct, 0) || math.IsNaN(p.SFOC) || math.IsInf(p.SFOC, 0) {
			return fmt.Errorf("curve point (%v, %v) is not finite", p.LoadPct, p.SFOC)
		}
		if _, dup := seen[p.LoadPct]; dup {
			return fmt.Errorf("duplicate load point %v%%", p.LoadPct)
		}
		seen[p.LoadPct] = struct{}{}
	}
	return nil
}

// Clone returns a deep copy of the set.
func (s CurveSet) Clone() CurveSet {
	out := make(CurveSet, len(s))
	for k, c := range s {
		cc := make(Curve, len(c))
		copy(cc, c)
		out[k] = cc
	}
	return out
}
