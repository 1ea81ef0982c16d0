package analysis

import (
	"context"
	"fmt"
	"sort"

	"github.com/umuturukk/de-propulsion-v2.0/internal/model"
	"github.com/umuturukk/de-propulsion-v2.0/internal/sweep"
)

// Runner is satisfied by *sweep.Engine.
type Runner interface {
	Run(ctx context.Context, p sweep.Params) (*sweep.Result, error)
}

type Comparison struct {
	Fleet   model.Fleet `json:"fleet"`
	Summary Summary     `json:"summary"`
}

// CompareFleets sweeps base once per fleet and sorts descending by total saved fuel.
func CompareFleets(ctx context.Context, r Runner, base sweep.Params, fleets []model.Fleet) ([]Comparison, error) {
	out := make([]Comparison, 0, len(fleets))
	for i, f := range fleets {
		p := base
		p.Fleet = f
		res, err := r.Run(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("fleet %d (%s): %w", i, f.Label(), err)
		}
		out = append(out, Comparison{Fleet: f, Summary: Summarize(res)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Summary.TotalSavedTonnes > out[j].Summary.TotalSavedTonnes
	})
	return out, nil
}
