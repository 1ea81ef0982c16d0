package data

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umuturukk/de-propulsion-v2.0/internal/combination"
	"github.com/umuturukk/de-propulsion-v2.0/internal/model"
	"github.com/umuturukk/de-propulsion-v2.0/internal/sweep"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestTTLStore_Expiry(t *testing.T) {
	t.Parallel()
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := newTTLStore[string, int](time.Minute)
	s.now = clock.now

	s.Set("a", 1)
	v, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	clock.t = clock.t.Add(2 * time.Minute)
	_, ok = s.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len())

	assert.Equal(t, 1, s.sweep())
	assert.Zero(t, s.Len())
}

func TestTTLStore_NilIsEmpty(t *testing.T) {
	t.Parallel()
	var s *ttlStore[string, int]
	s.Set("a", 1)
	_, ok := s.Get("a")
	assert.False(t, ok)
	assert.Zero(t, s.Len())
	s.Clear()
	s.Delete("a")
}

type countingSelector struct{ calls atomic.Int32 }

func (c *countingSelector) SelectBest(req combination.Request) combination.Result {
	c.calls.Add(1)
	return combination.Result{FuelTonnes: req.RequiredKW / 1000, Label: "x", Strategy: combination.StrategyMainEfficient}
}

func TestSelectorCache(t *testing.T) {
	t.Parallel()
	next := &countingSelector{}
	c := NewSelectorCache(next, time.Hour)
	fleet := model.Fleet{MainRatingKW: 2400, MainQty: 3}

	a := c.SelectBest(combination.Request{RequiredKW: 3000, Fleet: fleet, DurationH: 1})
	b := c.SelectBest(combination.Request{RequiredKW: 3000, Fleet: fleet, DurationH: 1})
	d := c.SelectBest(combination.Request{RequiredKW: 3000, Fleet: fleet, DurationH: 2})

	assert.Equal(t, a, b)
	assert.InDelta(t, 3, d.FuelTonnes, 1e-12)
	assert.EqualValues(t, 2, next.calls.Load())
	hits, misses := c.Stats()
	assert.EqualValues(t, 1, hits)
	assert.EqualValues(t, 2, misses)
	assert.Equal(t, 2, c.Len())

	c.Clear()
	assert.Zero(t, c.Len())
}

func TestGenerateCacheKey(t *testing.T) {
	t.Parallel()
	base := combination.Request{RequiredKW: 3000, Fleet: model.Fleet{MainRatingKW: 2400, MainQty: 3, PortRatingKW: 1000, PortQty: 1}, DurationH: 48}
	assert.Equal(t, GenerateCacheKey(base), GenerateCacheKey(base))
	assert.Len(t, GenerateCacheKey(base), 64)

	variants := []combination.Request{base, base, base, base, base, base}
	variants[0].RequiredKW = 3000.0000001
	variants[1].Fleet.MainRatingKW = 2500
	variants[2].Fleet.MainQty = 2
	variants[3].Fleet.PortRatingKW = 900
	variants[4].Fleet.PortQty = 0
	variants[5].DurationH = 4

	seen := map[string]bool{GenerateCacheKey(base): true}
	for _, v := range variants {
		k := GenerateCacheKey(v)
		assert.False(t, seen[k], "collision for %+v", v)
		seen[k] = true
	}
}

func TestRunStore(t *testing.T) {
	t.Parallel()
	s := NewRunStore(time.Hour)
	res := &sweep.Result{Fleet: model.Fleet{MainRatingKW: 2400, MainQty: 3}}

	run := s.Put(sweep.Params{}, res)
	assert.NotEqual(t, uuid.Nil, run.ID)
	assert.Equal(t, 1, s.Len())

	got, ok := s.Get(run.ID)
	require.True(t, ok)
	assert.Same(t, res, got.Result)

	_, ok = s.Get(uuid.New())
	assert.False(t, ok)

	s.Delete(run.ID)
	_, ok = s.Get(run.ID)
	assert.False(t, ok)
}

func TestRunStore_CleanupStopsWithContext(t *testing.T) {
	t.Parallel()
	s := NewRunStore(time.Nanosecond)
	s.Put(sweep.Params{}, &sweep.Result{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.StartCleanup(ctx, time.Millisecond)

	assert.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, 5*time.Millisecond)
}

const presetYAML = `
name: medium-speed
description: vendor sheet
curves:
  main_de_gen: {25: 208, 50: 189, 75: 182, 85: 180, 100: 182}
  port_gen:
    25: 212
    50: 193
    100: 184
`

func TestLoadCurvePresets(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte(presetYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a-unnamed.yml"), []byte("curves:\n  aux_dg: {25: 220, 100: 190}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	presets, err := LoadCurvePresets(dir)
	require.NoError(t, err)
	require.Len(t, presets, 2)
	assert.Equal(t, "a-unnamed", presets[0].Name)
	assert.Equal(t, "medium-speed", presets[1].Name)
	assert.Equal(t, "vendor sheet", presets[1].Description)

	main := presets[1].Curves[model.CurveMainDEGen]
	require.Len(t, main, 5)
	assert.Equal(t, model.CurvePoint{LoadPct: 25, SFOC: 208}, main[0])
	assert.Len(t, presets[1].Curves[model.CurvePortGen], 3)

	p, err := FindCurvePreset(presets, "medium-speed")
	require.NoError(t, err)
	assert.Equal(t, presets[1].Name, p.Name)
	_, err = FindCurvePreset(presets, "nope")
	assert.ErrorIs(t, err, ErrPresetNotFound)
}

func TestLoadCurvePresets_MissingDirAndBadFile(t *testing.T) {
	t.Parallel()
	presets, err := LoadCurvePresets(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, presets)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("curves:\n  main_de_gen: {50: 190}\n"), 0o644))
	_, err = LoadCurvePresets(dir)
	assert.Error(t, err)
}

func TestSaveCurvePreset(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "saved.yaml")
	in := CurvePreset{
		Name: "saved",
		Curves: model.CurveSet{
			model.CurvePortGen: model.CurveFromMap(map[float64]float64{25: 213, 50: 194, 100: 185}),
		},
	}
	require.NoError(t, SaveCurvePreset(in, path))

	out, err := LoadCurvePreset(path)
	require.NoError(t, err)
	assert.Equal(t, in, *out)
}
