package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Fleet defines the diesel-electric generator fleet.
// Units:
// - ratings: kW (MCR of one unit)
// - quantities: installed units
type Fleet struct {
	MainRatingKW float64 `json:"main_rating_kw" yaml:"main_rating_kw"`
	MainQty      int     `json:"main_qty" yaml:"main_qty"`
	PortRatingKW float64 `json:"port_rating_kw" yaml:"port_rating_kw"`
	PortQty      int     `json:"port_qty" yaml:"port_qty"`
}

func (f Fleet) Validate() error {
	if f.MainRatingKW < 0 || f.PortRatingKW < 0 {
		return errors.New("generator ratings must be >= 0")
	}
	if f.MainQty < 0 || f.PortQty < 0 {
		return errors.New("generator quantities must be >= 0")
	}
	if f.MainQty > 0 && f.MainRatingKW == 0 {
		return errors.New("main_rating_kw must be > 0 when main_qty > 0")
	}
	if f.PortQty > 0 && f.PortRatingKW == 0 {
		return errors.New("port_rating_kw must be > 0 when port_qty > 0")
	}
	return nil
}

// Label describes the installed fleet, e.g. "3x2400kW Ana + 1x1000kW Liman".
func (f Fleet) Label() string {
	s := fmt.Sprintf("%dx%skW %s", f.MainQty, FormatKW(f.MainRatingKW), ClassMain.Label())
	if f.PortQty > 0 && f.PortRatingKW > 0 {
		s += fmt.Sprintf(" + %dx%skW %s", f.PortQty, FormatKW(f.PortRatingKW), ClassPort.Label())
	}
	return s
}

// Vessel holds the conventional (mechanical shaft) reference plant.
type Vessel struct {
	MainEngineMCRKW float64 `json:"main_engine_mcr_kw" yaml:"main_engine_mcr_kw"`
	AuxDGMCRKW      float64 `json:"aux_dg_mcr_kw" yaml:"aux_dg_mcr_kw"`
	AuxDGCount      int     `json:"aux_dg_count" yaml:"aux_dg_count"`
	AuxPowerKW      float64 `json:"aux_power_kw" yaml:"aux_power_kw"`
}

func (v Vessel) Validate() error {
	if v.MainEngineMCRKW <= 0 {
		return errors.New("main_engine_mcr_kw must be > 0")
	}
	if v.AuxPowerKW < 0 {
		return errors.New("aux_power_kw must be >= 0")
	}
	if v.AuxDGCount < 0 {
		return errors.New("aux_dg_count must be >= 0")
	}
	if v.AuxPowerKW > 0 && v.AuxDGMCRKW <= 0 {
		return errors.New("aux_dg_mcr_kw must be > 0 when aux_power_kw > 0")
	}
	return nil
}

// FormatKW renders a rating without trailing zeros (2400 -> "2400", 912.5 -> "912.5").
func FormatKW(kw float64) string {
	return strconv.FormatFloat(kw, 'f', -1, 64)
}

// ParseFleet reads the compact fleet form "<qty>x<kW>[+<qty>x<kW>]", main class first,
// e.g. "3x2400+1x1000".
func ParseFleet(s string) (Fleet, error) {
	mainPart, portPart, hasPort := strings.Cut(strings.ReplaceAll(s, " ", ""), "+")

	var f Fleet
	var err error
	if f.MainQty, f.MainRatingKW, err = parseUnits(mainPart); err != nil {
		return Fleet{}, fmt.Errorf("fleet %q: %w", s, err)
	}
	if hasPort {
		if f.PortQty, f.PortRatingKW, err = parseUnits(portPart); err != nil {
			return Fleet{}, fmt.Errorf("fleet %q: %w", s, err)
		}
	}
	return f, f.Validate()
}

func parseUnits(s string) (int, float64, error) {
	q, r, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, errors.New(`expected "<qty>x<kW>"`)
	}
	qty, err := strconv.Atoi(q)
	if err != nil {
		return 0, 0, fmt.Errorf("quantity: %w", err)
	}
	rating, err := strconv.ParseFloat(strings.TrimSuffix(r, "kw"), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("rating: %w", err)
	}
	return qty, rating, nil
}
