package data

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/umuturukk/de-propulsion-v2.0/internal/model"
)

var ErrPresetNotFound = errors.New("curve preset not found")

// CurvePreset is a named set of SFOC curves, e.g. one engine maker's data sheets.
type CurvePreset struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Curves      model.CurveSet `json:"curves"`
}

// curvePresetFile is the on-disk shape: curves as load% -> g/kWh maps.
type curvePresetFile struct {
	Name        string                                `yaml:"name"`
	Description string                                `yaml:"description"`
	Curves      map[model.CurveKey]map[float64]float64 `yaml:"curves"`
}

// LoadCurvePreset loads a preset from a YAML file. The preset name defaults to the file
// name without extension.
func LoadCurvePreset(path string) (*CurvePreset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read curve preset: %w", err)
	}

	var f curvePresetFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse curve preset %s: %w", path, err)
	}
	if f.Name == "" {
		f.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if len(f.Curves) == 0 {
		return nil, fmt.Errorf("curve preset %s has no curves", f.Name)
	}

	p := &CurvePreset{Name: f.Name, Description: f.Description, Curves: model.CurveSet{}}
	for key, points := range f.Curves {
		c := model.CurveFromMap(points)
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("curve preset %s, curve %s: %w", f.Name, key, err)
		}
		p.Curves[key] = c
	}
	return p, nil
}

// LoadCurvePresets loads every *.yaml / *.yml file in dir, sorted by name.
// A missing directory yields no presets.
func LoadCurvePresets(dir string) ([]CurvePreset, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read curve directory: %w", err)
	}

	var out []CurvePreset
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		p, err := LoadCurvePreset(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// FindCurvePreset returns the preset called name.
func FindCurvePreset(presets []CurvePreset, name string) (CurvePreset, error) {
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}
	return CurvePreset{}, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
}

// SaveCurvePreset writes p as YAML, creating the directory if needed.
func SaveCurvePreset(p CurvePreset, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := curvePresetFile{
		Name:        p.Name,
		Description: p.Description,
		Curves:      make(map[model.CurveKey]map[float64]float64, len(p.Curves)),
	}
	for key, c := range p.Curves {
		f.Curves[key] = c.Map()
	}
	raw, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal curve preset: %w", err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write curve preset: %w", err)
	}
	return nil
}
