package combination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinUnitsForPower(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		required float64
		rating   float64
		qty      int
		want     int
		wantErr  error
	}{
		{name: "fits in two", required: 4500, rating: 2400, qty: 3, want: 2},
		{name: "exact multiple", required: 4800, rating: 2400, qty: 3, want: 2},
		{name: "zero demand", required: 0, rating: 2400, qty: 3, want: 0},
		{name: "too few units", required: 8000, rating: 2400, qty: 3, wantErr: ErrInsufficientFleet},
		{name: "zero rating", required: 100, rating: 0, qty: 3, wantErr: ErrInvalidUnit},
		{name: "zero quantity", required: 100, rating: 2400, qty: 0, wantErr: ErrInvalidUnit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := MinUnitsForPower(tt.required, tt.rating, tt.qty)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetermineUsage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		total   float64
		unit    float64
		want    Usage
		wantErr error
	}{
		{name: "one unit at half load", total: 1000, unit: 2000, want: Usage{Units: 1, LoadPct: 50}},
		{name: "needs three", total: 5000, unit: 2000, want: Usage{Units: 3, LoadPct: 5000.0 / 6000 * 100}},
		{name: "upper band edge", total: 1840, unit: 2000, want: Usage{Units: 1, LoadPct: 92}},
		{name: "lower band edge", total: 800, unit: 2000, want: Usage{Units: 1, LoadPct: 40}},
		{name: "no demand", total: 0, unit: 2000, want: Usage{}},
		{name: "too much", total: 7000, unit: 2000, wantErr: ErrNoUsageBand},
		{name: "too little", total: 500, unit: 2000, wantErr: ErrNoUsageBand},
		{name: "invalid unit", total: 500, unit: 0, wantErr: ErrInvalidUnit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := DetermineUsage(tt.total, tt.unit)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.Units, got.Units)
			assert.InDelta(t, tt.want.LoadPct, got.LoadPct, 1e-9)
		})
	}
}
