package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/player"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/variant"
)

// PlayerRepository serves fixed rosters keyed by variant id.
type PlayerRepository struct {
	mu        sync.RWMutex
	byVariant map[string][]player.Record
}

func NewPlayerRepository(byVariant map[string][]player.Record) *PlayerRepository {
	copied := make(map[string][]player.Record, len(byVariant))
	for id, records := range byVariant {
		copied[id] = append([]player.Record(nil), records...)
	}
	return &PlayerRepository{byVariant: copied}
}

func (r *PlayerRepository) ListByVariant(_ context.Context, v variant.Variant) ([]player.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records, ok := r.byVariant[v.ID]
	if !ok {
		return nil, fmt.Errorf("%w: no seed roster for variant %s", player.ErrSchemaMismatch, v.ID)
	}
	return append([]player.Record(nil), records...), nil
}

// ReplaceVariant swaps the roster of one variant. The import id is not kept.
func (r *PlayerRepository) ReplaceVariant(_ context.Context, v variant.Variant, _ string, records []player.Record) error {
	r.mu.Lock()
	r.byVariant[v.ID] = append([]player.Record(nil), records...)
	r.mu.Unlock()
	return nil
}
