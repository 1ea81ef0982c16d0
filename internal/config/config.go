package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/umuturukk/de-propulsion-v2.0/internal/analysis"
	"github.com/umuturukk/de-propulsion-v2.0/internal/combination"
	"github.com/umuturukk/de-propulsion-v2.0/internal/model"
	"github.com/umuturukk/de-propulsion-v2.0/internal/propulsion"
	"github.com/umuturukk/de-propulsion-v2.0/internal/sweep"
)

// CurvePoints is the YAML shape of a curve: load% -> g/kWh.
type CurvePoints map[float64]float64

// Config is the on-disk configuration shape (YAML).
// Every field is optional; missing values keep the defaults from Default.
type Config struct {
	// Optional: load SFOC curves from a separate YAML (e.g. curves/*.yaml).
	// Curves given inline override the same keys from CurvesFile.
	CurvesFile string                         `yaml:"curves_file"`
	Curves     map[model.CurveKey]CurvePoints `yaml:"curves"`

	Fleet        model.Fleet             `yaml:"fleet"`
	Vessel       model.Vessel            `yaml:"vessel"`
	Efficiencies propulsion.Efficiencies `yaml:"efficiencies"`
	Transit      model.ModeInputs        `yaml:"transit"`
	Maneuver     model.ModeInputs        `yaml:"maneuver"`

	// Ratings swept by the unit-size ranking.
	Ranking model.PowerRange `yaml:"ranking"`

	Policy combination.Policy `yaml:"policy"`
}

// Default is the reference vessel: 3x2400 kW main + 1x1000 kW port generators replacing a
// 7200 kW main engine, with 300 kW hotel load.
func Default() *Config {
	return &Config{
		Curves: DefaultCurves(),
		Fleet:  model.Fleet{MainRatingKW: 2400, MainQty: 3, PortRatingKW: 1000, PortQty: 1},
		Vessel: model.Vessel{
			MainEngineMCRKW: 7200,
			AuxDGMCRKW:      800,
			AuxDGCount:      2,
			AuxPowerKW:      300,
		},
		Efficiencies: propulsion.DefaultEfficiencies(),
		Transit: model.ModeInputs{
			Range:     model.PowerRange{FromKW: 3000, ToKW: 4400, StepKW: 100},
			DurationH: 48,
		},
		Maneuver: model.ModeInputs{
			Range:     model.PowerRange{FromKW: 1600, ToKW: 2700, StepKW: 100},
			DurationH: 4,
		},
		Ranking: model.PowerRange{FromKW: 2000, ToKW: 3400, StepKW: 100},
		Policy:  combination.DefaultPolicy(),
	}
}

// DefaultCurves returns the built-in reference SFOC curves.
func DefaultCurves() map[model.CurveKey]CurvePoints {
	return map[model.CurveKey]CurvePoints{
		model.CurveMainEngine: {25: 215, 50: 195, 75: 186, 85: 184, 100: 186},
		model.CurveMainDEGen:  {25: 210, 50: 190, 75: 183, 85: 181, 100: 183},
		model.CurvePortGen:    {25: 213, 50: 194, 75: 188, 85: 183, 100: 185},
		model.CurveAuxDG:      {25: 213, 50: 194, 75: 188, 85: 183, 100: 185},
	}
}

// DefaultCurveSet is DefaultCurves as a model.CurveSet.
func DefaultCurveSet() model.CurveSet {
	return toCurveSet(DefaultCurves())
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var inline Config
	if err := yaml.Unmarshal(raw, &inline); err != nil {
		return nil, err
	}

	// Decode again over the defaults so absent keys keep their default values.
	c := Default()
	c.Curves = nil
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, err
	}

	curves := DefaultCurves()
	if c.CurvesFile != "" {
		curvesPath := c.CurvesFile
		if !filepath.IsAbs(curvesPath) {
			// Prefer interpreting relative paths as relative to the config file directory,
			// but fall back to the provided path (relative to cwd) if that doesn't exist.
			cand := filepath.Join(filepath.Dir(path), curvesPath)
			if _, err := os.Stat(cand); err == nil {
				curvesPath = cand
			}
		}
		loaded, err := loadCurvesFile(curvesPath)
		if err != nil {
			return nil, err
		}
		curves = MergeCurves(curves, loaded)
	}
	c.Curves = MergeCurves(curves, inline.Curves)
	return c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	for _, key := range model.CurveKeys() {
		if _, ok := c.Curves[key]; !ok {
			return fmt.Errorf("curves.%s is required", key)
		}
	}
	for key, pts := range c.Curves {
		if err := model.CurveFromMap(pts).Validate(); err != nil {
			return fmt.Errorf("curves.%s: %w", key, err)
		}
	}
	if err := c.Fleet.Validate(); err != nil {
		return fmt.Errorf("fleet: %w", err)
	}
	if err := c.Vessel.Validate(); err != nil {
		return fmt.Errorf("vessel: %w", err)
	}
	if err := c.Efficiencies.Validate(); err != nil {
		return err
	}
	if err := c.Transit.Validate(); err != nil {
		return fmt.Errorf("transit: %w", err)
	}
	if err := c.Maneuver.Validate(); err != nil {
		return fmt.Errorf("maneuver: %w", err)
	}
	if err := c.Ranking.Validate(); err != nil {
		return fmt.Errorf("ranking: %w", err)
	}
	if err := c.Policy.Validate(); err != nil {
		return fmt.Errorf("policy: %w", err)
	}
	return nil
}

// CurveSet returns the configured curves, sorted by load.
func (c *Config) CurveSet() model.CurveSet { return toCurveSet(c.Curves) }

func (c *Config) SweepParams() sweep.Params {
	return sweep.Params{
		Fleet:        c.Fleet,
		Vessel:       c.Vessel,
		Efficiencies: c.Efficiencies,
		Transit:      c.Transit,
		Maneuver:     c.Maneuver,
	}
}

func (c *Config) RankParams() analysis.RankParams {
	return analysis.RankParams{
		Ratings:      c.Ranking,
		Vessel:       c.Vessel,
		Efficiencies: c.Efficiencies,
		Transit:      c.Transit,
		Maneuver:     c.Maneuver,
	}
}

type curvesFileWrapper struct {
	Curves map[model.CurveKey]CurvePoints `yaml:"curves"`
}

func loadCurvesFile(path string) (map[model.CurveKey]CurvePoints, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var w curvesFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return w.Curves, nil
}

// MergeCurves overlays whole curves from override onto base, key by key.
func MergeCurves(base, override map[model.CurveKey]CurvePoints) map[model.CurveKey]CurvePoints {
	out := make(map[model.CurveKey]CurvePoints, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		if len(v) > 0 {
			out[k] = v
		}
	}
	return out
}

// MergeFleet overlays non-zero fields from override onto base.
// This is used when a request only names the fields it changes.
func MergeFleet(base, override model.Fleet) model.Fleet {
	out := base
	if override.MainRatingKW != 0 {
		out.MainRatingKW = override.MainRatingKW
	}
	if override.MainQty != 0 {
		out.MainQty = override.MainQty
	}
	if override.PortRatingKW != 0 {
		out.PortRatingKW = override.PortRatingKW
	}
	// Note: a zero port quantity cannot be expressed as an override; callers remove
	// the port class by setting port_rating_kw and port_qty explicitly on a full fleet.
	if override.PortQty != 0 {
		out.PortQty = override.PortQty
	}
	return out
}

func toCurveSet(in map[model.CurveKey]CurvePoints) model.CurveSet {
	out := make(model.CurveSet, len(in))
	for k, pts := range in {
		out[k] = model.CurveFromMap(pts)
	}
	return out
}
