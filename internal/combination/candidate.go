package combination

import (
	"fmt"

	"github.com/umuturukk/de-propulsion-v2.0/internal/model"
)

const (
	LabelNoLoad     = "0 kW Yük (Yakıt Yok)"
	LabelNoFeasible = "Uygun Kombinasyon Yok (Karar Verilemedi)"
)

// Baseline is the main-only candidate an assisted candidate was measured against.
type Baseline struct {
	FuelTonnes float64 `json:"fuel_tonnes"`
	Label      string  `json:"label"`
}

// Candidate is one evaluated running-unit set.
type Candidate struct {
	Strategy   Strategy         `json:"strategy"`
	FuelTonnes float64          `json:"fuel_tonnes"`
	Label      string           `json:"label"`
	Units      []model.UnitLoad `json:"units"`
	Baseline   *Baseline        `json:"baseline,omitempty"`
}

// cheaper is the single ordering used everywhere a candidate competes on fuel.
// Ties keep the incumbent.
func cheaper(a, b Candidate) bool { return a.FuelTonnes < b.FuelTonnes }

// candidateSet holds at most one candidate per strategy, in first-insertion order.
type candidateSet struct {
	list []Candidate
}

func (cs *candidateSet) add(c Candidate) {
	for i := range cs.list {
		if cs.list[i].Strategy == c.Strategy {
			if cheaper(c, cs.list[i]) {
				cs.list[i] = c
			}
			return
		}
	}
	cs.list = append(cs.list, c)
}

func (cs *candidateSet) get(s Strategy) (Candidate, bool) {
	for _, c := range cs.list {
		if c.Strategy == s {
			return c, true
		}
	}
	return Candidate{}, false
}

func (cs *candidateSet) cheapest() (Candidate, bool) {
	if len(cs.list) == 0 {
		return Candidate{}, false
	}
	best := cs.list[0]
	for _, c := range cs.list[1:] {
		if cheaper(c, best) {
			best = c
		}
	}
	return best, true
}

func uniformLabel(n int, ratingKW float64, class model.GeneratorClass) string {
	return fmt.Sprintf("%dx %skW %s", n, model.FormatKW(ratingKW), class.Label())
}

func assistedLabel(nMain int, mainKW, mainLoad, portKW, portLoad float64) string {
	return fmt.Sprintf("%dx%skW %s (%.1f%%) + 1x%skW %s (%.1f%%)",
		nMain, model.FormatKW(mainKW), model.ClassMain.Label(), mainLoad,
		model.FormatKW(portKW), model.ClassPort.Label(), portLoad)
}
