package data

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/umuturukk/de-propulsion-v2.0/internal/sweep"
)

// Run is a completed sweep kept for later ledger retrieval.
type Run struct {
	ID        uuid.UUID     `json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	Params    sweep.Params  `json:"params"`
	Result    *sweep.Result `json:"-"`
}

type RunStore struct {
	store *ttlStore[uuid.UUID, Run]
}

func NewRunStore(ttl time.Duration) *RunStore {
	return &RunStore{store: newTTLStore[uuid.UUID, Run](ttl)}
}

// Put stores res under a fresh id.
func (s *RunStore) Put(p sweep.Params, res *sweep.Result) Run {
	run := Run{
		ID:        uuid.New(),
		CreatedAt: s.store.now().UTC(),
		Params:    p,
		Result:    res,
	}
	s.store.Set(run.ID, run)
	return run
}

func (s *RunStore) Get(id uuid.UUID) (Run, bool) { return s.store.Get(id) }

func (s *RunStore) Delete(id uuid.UUID) { s.store.Delete(id) }

func (s *RunStore) Len() int { return s.store.Len() }

// StartCleanup drops expired runs every interval until ctx is done.
func (s *RunStore) StartCleanup(ctx context.Context, every time.Duration) {
	go s.store.cleanup(ctx, every, func(n int) {
		zap.S().Named("run_store").Infow("expired sweep runs removed", "count", n)
	})
}
